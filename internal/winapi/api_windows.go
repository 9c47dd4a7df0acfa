//go:build windows

package winapi

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modpsapi                 = windows.NewLazySystemDLL("psapi.dll")
	procEmptyWorkingSet      = modpsapi.NewProc("EmptyWorkingSet")
	procGetProcessMemoryInfo = modpsapi.NewProc("GetProcessMemoryInfo")
)

// processMemoryCounters mirrors PROCESS_MEMORY_COUNTERS for 64-bit Windows.
type processMemoryCounters struct {
	CB                         uint32
	PageFaultCount             uint32
	PeakWorkingSetSize         uint64
	WorkingSetSize             uint64
	QuotaPeakPagedPoolUsage    uint64
	QuotaPagedPoolUsage        uint64
	QuotaPeakNonPagedPoolUsage uint64
	QuotaNonPagedPoolUsage     uint64
	PagefileUsage              uint64
	PeakPagefileUsage          uint64
}

// Win32API is the real implementation of API.
type Win32API struct{}

func New() *Win32API {
	return &Win32API{}
}

func (*Win32API) OpenProcess(access uint32, pid uint32) (Handle, error) {
	h, err := windows.OpenProcess(access, false, pid)
	if err != nil {
		return 0, classifyOpenError(pid, err)
	}
	return Handle(h), nil
}

// classifyOpenError maps OpenProcess failures onto the package sentinels.
// OpenProcess reports an exited pid as ERROR_INVALID_PARAMETER.
func classifyOpenError(pid uint32, err error) error {
	switch err {
	case windows.ERROR_ACCESS_DENIED:
		return fmt.Errorf("open pid %d: %w", pid, ErrAccessDenied)
	case windows.ERROR_INVALID_PARAMETER:
		return fmt.Errorf("open pid %d: %w", pid, ErrNotFound)
	default:
		return fmt.Errorf("open pid %d: %w", pid, err)
	}
}

func (*Win32API) CloseHandle(h Handle) error {
	return windows.CloseHandle(windows.Handle(h))
}

func (*Win32API) EmptyWorkingSet(h Handle) error {
	ret, _, err := procEmptyWorkingSet.Call(uintptr(h))
	if ret == 0 {
		return fmt.Errorf("EmptyWorkingSet: %w", err)
	}
	return nil
}

func (*Win32API) WorkingSetSize(h Handle) (uint64, error) {
	var pmc processMemoryCounters
	pmc.CB = uint32(unsafe.Sizeof(pmc))
	ret, _, err := procGetProcessMemoryInfo.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(&pmc)),
		uintptr(pmc.CB),
	)
	if ret == 0 {
		return 0, fmt.Errorf("GetProcessMemoryInfo: %w", err)
	}
	return pmc.WorkingSetSize, nil
}

func (*Win32API) TrimOwnWorkingSet() error {
	// CurrentProcess returns a pseudo-handle; it must not be closed.
	ret, _, err := procEmptyWorkingSet.Call(uintptr(windows.CurrentProcess()))
	if ret == 0 {
		return fmt.Errorf("EmptyWorkingSet(self): %w", err)
	}
	return nil
}
