// Package sweep implements the memory trim engine: it enumerates accessible
// processes, asks the OS to evict each one's resident pages back to the
// pagefile, and aggregates how much working-set memory was released.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/pranavsinha/memsweep/internal/winapi"
	"github.com/pranavsinha/memsweep/pkg/model"
)

// DefaultWorkers bounds the per-process worker pool.
const DefaultWorkers = 10

// ErrPassInProgress is returned when a trim pass is requested while another
// one is still running. The new request is dropped, not queued.
var ErrPassInProgress = errors.New("trim pass already in progress")

// System Idle (0) and System (4) are never opened.
var criticalPids = map[int32]bool{0: true, 4: true}

// Engine drives one trim pass at a time over all visible processes.
type Engine struct {
	api      winapi.API
	listPids func() ([]int32, error)
	workers  int
	exclude  map[int32]bool

	mu      sync.Mutex
	running bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers bounds the worker pool; values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.workers = n
		}
	}
}

// WithExcludedPids adds pids that a pass skips without opening.
func WithExcludedPids(pids []int32) Option {
	return func(e *Engine) {
		for _, pid := range pids {
			e.exclude[pid] = true
		}
	}
}

// WithPidLister overrides process enumeration, mainly for tests.
func WithPidLister(list func() ([]int32, error)) Option {
	return func(e *Engine) {
		e.listPids = list
	}
}

// New builds an Engine over the given OS primitives. Enumeration defaults
// to a gopsutil pid snapshot.
func New(api winapi.API, opts ...Option) *Engine {
	e := &Engine{
		api:      api,
		listPids: process.Pids,
		workers:  DefaultWorkers,
		exclude:  make(map[int32]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes one trim pass and returns the aggregate report.
//
// A pass requested while another is in flight is dropped with
// ErrPassInProgress. Enumeration failure is fatal to the pass: the report
// comes back empty with EnumerationFailed set, alongside the wrapped error.
// Per-process failures are recorded as outcomes and never abort the pass.
//
// Cancelling ctx stops dispatching further processes; attempts already in
// flight run to completion so their handles are released.
func (e *Engine) Run(ctx context.Context) (model.TrimReport, error) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return model.TrimReport{}, ErrPassInProgress
	}
	e.running = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	start := time.Now()

	// Reclaim our own memory first, exactly once per pass, so the caller's
	// contribution is part of the freed total before other processes are
	// touched.
	debug.FreeOSMemory()
	e.api.TrimOwnWorkingSet()

	pids, err := e.listPids()
	if err != nil {
		report := model.NewTrimReport(nil)
		report.EnumerationFailed = true
		report.Elapsed = time.Since(start)
		return report, fmt.Errorf("enumerate processes: %w", err)
	}

	targets := make([]int32, 0, len(pids))
	for _, pid := range pids {
		if criticalPids[pid] || e.exclude[pid] {
			continue
		}
		targets = append(targets, pid)
	}

	// Each slot is written by exactly one worker; merging is just reading
	// the slice back in enumeration order.
	slots := make([]model.TrimOutcome, len(targets))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := e.workers
	if workers > len(targets) {
		workers = len(targets)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				slots[i] = e.trimOne(targets[i])
			}
		}()
	}

dispatch:
	for i := range targets {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	outcomes := make([]model.TrimOutcome, 0, len(slots))
	for _, o := range slots {
		if o.Status == "" {
			continue // never dispatched (cancelled pass)
		}
		outcomes = append(outcomes, o)
	}
	report := model.NewTrimReport(outcomes)
	report.Elapsed = time.Since(start)
	return report, ctx.Err()
}

// trimOne runs the acquire/trim/release sequence for a single process and
// maps every failure onto an outcome. Nothing here is fatal to the pass.
func (e *Engine) trimOne(pid int32) model.TrimOutcome {
	h, err := acquire(e.api, pid)
	if err != nil {
		return model.TrimOutcome{PID: pid, Status: classify(err), Detail: err.Error()}
	}
	defer h.Close()

	before, after, err := h.trim()
	if err != nil {
		return model.TrimOutcome{PID: pid, Status: model.StatusError, Detail: err.Error()}
	}
	return model.TrimOutcome{
		PID:         pid,
		Status:      model.StatusTrimmed,
		BytesBefore: before,
		BytesAfter:  after,
	}
}

func classify(err error) model.TrimStatus {
	switch {
	case errors.Is(err, winapi.ErrAccessDenied):
		return model.StatusAccessDenied
	case errors.Is(err, winapi.ErrNotFound):
		return model.StatusNotFound
	default:
		return model.StatusError
	}
}
