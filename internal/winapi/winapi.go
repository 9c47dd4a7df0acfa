// Package winapi wraps the handful of Win32 primitives the trim engine
// needs behind a narrow interface, so the engine itself compiles and tests
// on every platform. The real implementation lives behind a windows build
// tag; everywhere else the calls fail with ErrUnsupported.
package winapi

import "errors"

// Process access rights, kept to the minimum the engine needs. Requesting
// broader rights (e.g. PROCESS_ALL_ACCESS) is the usual reason protected
// processes deny the open.
const (
	ProcessQueryInformation        uint32 = 0x0400
	ProcessSetQuota                uint32 = 0x0100
	ProcessQueryLimitedInformation uint32 = 0x1000
)

var (
	// ErrAccessDenied means the caller's privilege level cannot open the
	// target process with the requested rights. Expected and non-fatal.
	ErrAccessDenied = errors.New("access denied")

	// ErrNotFound means the process exited between enumeration and open.
	// Expected and non-fatal.
	ErrNotFound = errors.New("process not found")

	// ErrUnsupported is returned by every call on non-Windows platforms.
	ErrUnsupported = errors.New("working-set trim requires windows")
)

// Handle is an OS process handle. The zero value is never a valid handle.
type Handle uintptr

// API is the set of OS primitives the trim engine drives. Implementations
// must map ERROR_ACCESS_DENIED and exited-pid open failures onto
// ErrAccessDenied and ErrNotFound so callers can classify with errors.Is.
type API interface {
	// OpenProcess opens pid with the given access rights.
	OpenProcess(access uint32, pid uint32) (Handle, error)

	// CloseHandle releases a handle returned by OpenProcess.
	CloseHandle(h Handle) error

	// EmptyWorkingSet asks the OS to evict the process's resident pages.
	// The OS may keep shared or locked pages resident; success does not
	// mean the working set shrank.
	EmptyWorkingSet(h Handle) error

	// WorkingSetSize reports the process's current working-set size in bytes.
	WorkingSetSize(h Handle) (uint64, error)

	// TrimOwnWorkingSet empties the calling process's own working set.
	TrimOwnWorkingSet() error
}
