//go:build !windows

package winapi

// StubAPI is the placeholder implementation on non-Windows platforms.
// Every primitive fails with ErrUnsupported; the engine degrades to a
// pass where no process can be opened.
type StubAPI struct{}

func New() *StubAPI {
	return &StubAPI{}
}

func (*StubAPI) OpenProcess(access uint32, pid uint32) (Handle, error) {
	return 0, ErrUnsupported
}

func (*StubAPI) CloseHandle(h Handle) error {
	return nil
}

func (*StubAPI) EmptyWorkingSet(h Handle) error {
	return ErrUnsupported
}

func (*StubAPI) WorkingSetSize(h Handle) (uint64, error) {
	return 0, ErrUnsupported
}

func (*StubAPI) TrimOwnWorkingSet() error {
	return ErrUnsupported
}
