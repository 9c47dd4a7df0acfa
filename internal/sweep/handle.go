package sweep

import (
	"errors"
	"fmt"

	"github.com/pranavsinha/memsweep/internal/winapi"
)

// procHandle is a scoped process handle. It is acquired for exactly one
// trim attempt and released by the same worker; Close is idempotent so it
// can sit behind a defer on every exit path.
type procHandle struct {
	api    winapi.API
	raw    winapi.Handle
	closed bool
}

// acquire opens pid with the least rights that allow querying and trimming
// the working set. When the full query right is denied it retries once with
// the limited query right, which some protected processes still allow.
func acquire(api winapi.API, pid int32) (*procHandle, error) {
	h, err := api.OpenProcess(winapi.ProcessQueryInformation|winapi.ProcessSetQuota, uint32(pid))
	if errors.Is(err, winapi.ErrAccessDenied) {
		h, err = api.OpenProcess(winapi.ProcessQueryLimitedInformation|winapi.ProcessSetQuota, uint32(pid))
	}
	if err != nil {
		return nil, err
	}
	return &procHandle{api: api, raw: h}, nil
}

func (p *procHandle) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.api.CloseHandle(p.raw)
}

// trim reads the working-set size, asks the OS to evict it, and reads it
// again. Eviction is a request: the OS keeps shared and locked pages
// resident, so a trim that frees nothing is a valid result. A post-trim
// reading above the baseline is clamped so freed bytes never go negative.
func (p *procHandle) trim() (before, after uint64, err error) {
	before, err = p.api.WorkingSetSize(p.raw)
	if err != nil {
		return 0, 0, fmt.Errorf("read working set: %w", err)
	}
	if err = p.api.EmptyWorkingSet(p.raw); err != nil {
		return 0, 0, fmt.Errorf("empty working set: %w", err)
	}
	after, err = p.api.WorkingSetSize(p.raw)
	if err != nil {
		return 0, 0, fmt.Errorf("reread working set: %w", err)
	}
	if after > before {
		after = before
	}
	return before, after, nil
}
