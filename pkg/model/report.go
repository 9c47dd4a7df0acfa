package model

import "time"

// TrimStatus is the per-process result of one trim attempt.
type TrimStatus string

const (
	StatusTrimmed      TrimStatus = "trimmed"
	StatusAccessDenied TrimStatus = "access_denied"
	StatusNotFound     TrimStatus = "not_found"
	StatusError        TrimStatus = "error"
)

// TrimOutcome records what happened to a single process during a trim pass.
// BytesBefore/BytesAfter are only meaningful when Status is StatusTrimmed;
// for every other status both are zero. Detail carries the OS error text
// (including the platform error code) for StatusError outcomes.
type TrimOutcome struct {
	PID         int32      `json:"pid"`
	Status      TrimStatus `json:"status"`
	BytesBefore uint64     `json:"bytes_before,omitempty"`
	BytesAfter  uint64     `json:"bytes_after,omitempty"`
	Detail      string     `json:"detail,omitempty"`
}

// Freed returns how many bytes this outcome released.
func (o TrimOutcome) Freed() uint64 {
	if o.Status != StatusTrimmed || o.BytesAfter > o.BytesBefore {
		return 0
	}
	return o.BytesBefore - o.BytesAfter
}

// TrimReport aggregates the outcomes of one trim pass. It is a value type,
// built once per pass and immutable afterwards.
type TrimReport struct {
	Outcomes          []TrimOutcome `json:"outcomes"`
	ProcessCount      int           `json:"process_count"`
	SuccessCount      int           `json:"success_count"`
	TotalBytesFreed   uint64        `json:"total_bytes_freed"`
	EnumerationFailed bool          `json:"enumeration_failed,omitempty"`
	Elapsed           time.Duration `json:"elapsed_ns"`
}

// NewTrimReport builds a report from per-process outcomes, computing the
// aggregate counters from the outcome list so they cannot drift apart.
func NewTrimReport(outcomes []TrimOutcome) TrimReport {
	r := TrimReport{
		Outcomes:     outcomes,
		ProcessCount: len(outcomes),
	}
	for _, o := range outcomes {
		if o.Status == StatusTrimmed {
			r.SuccessCount++
			r.TotalBytesFreed += o.Freed()
		}
	}
	return r
}

// UsageSample is one instantaneous reading of system CPU and RAM usage.
// Samples are caller-owned and carry no persistence.
type UsageSample struct {
	CPUPercent    float64   `json:"cpu_percent"`
	RAMUsedBytes  uint64    `json:"ram_used_bytes"`
	RAMTotalBytes uint64    `json:"ram_total_bytes"`
	RAMPercent    float64   `json:"ram_percent"`
	Timestamp     time.Time `json:"timestamp"`
}
