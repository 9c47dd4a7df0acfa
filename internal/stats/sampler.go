// Package stats reads instantaneous CPU and RAM usage for the live display
// and for the trim report footer. Sampling is read-only and independent of
// trimming.
package stats

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/pranavsinha/memsweep/pkg/model"
)

// Sampler produces UsageSamples. CPU percentage is computed by differencing
// accumulated CPU times against the previous call rather than sleeping: New
// primes the counter once, and each Sample reflects usage since the last
// reading. Callers on a fixed interval (the intended use) therefore get a
// per-interval figure without Sample ever blocking.
type Sampler struct{}

// New creates a Sampler and primes the CPU counter so the first real
// sample has a baseline to difference against.
func New() *Sampler {
	cpu.Percent(0, false)
	return &Sampler{}
}

// Sample reads current CPU and RAM usage. It never fails: if the OS
// counters are unavailable the affected fields are zero, since these
// values only feed a display.
func (s *Sampler) Sample() model.UsageSample {
	out := model.UsageSample{Timestamp: time.Now()}

	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		out.CPUPercent = clampPercent(pcts[0])
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		out.RAMUsedBytes = vm.Used
		out.RAMTotalBytes = vm.Total
		out.RAMPercent = clampPercent(vm.UsedPercent)
	}
	return out
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
