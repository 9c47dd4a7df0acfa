// Package output renders trim reports and usage samples for the CLI:
// a short human summary, an optional per-process table, and JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/pranavsinha/memsweep/pkg/model"
)

var (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorRed    = "\033[31m"
)

// ToJSON renders any report or sample as indented JSON.
func ToJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}", err
	}
	return string(data), nil
}

// RenderReport prints the one-line summary the original widget showed as a
// toast: freed megabytes plus success/total counts.
func RenderReport(w io.Writer, r model.TrimReport, colorEnabled bool) {
	if r.EnumerationFailed {
		line := "Could not enumerate processes; nothing trimmed"
		if colorEnabled {
			line = colorRed + line + colorReset
		}
		fmt.Fprintln(w, line)
		return
	}

	summary := fmt.Sprintf("Freed %s (%d of %d processes trimmed)",
		FormatBytes(r.TotalBytesFreed), r.SuccessCount, r.ProcessCount)
	if colorEnabled {
		summary = colorGreen + summary + colorReset
	}
	fmt.Fprintln(w, summary)
}

// RenderOutcomes prints the per-process table for verbose mode.
func RenderOutcomes(w io.Writer, r model.TrimReport, colorEnabled bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := " PID\tSTATUS\tBEFORE\tAFTER\tFREED\tDETAIL"
	if colorEnabled {
		fmt.Fprintf(tw, "%s%s%s\n", colorBlue, header, colorReset)
	} else {
		fmt.Fprintln(tw, header)
	}

	for _, o := range r.Outcomes {
		status := string(o.Status)
		if colorEnabled {
			status = statusColor(o.Status) + status + colorReset
		}
		if o.Status == model.StatusTrimmed {
			fmt.Fprintf(tw, " %d\t%s\t%s\t%s\t%s\t\n",
				o.PID, status,
				FormatBytes(o.BytesBefore), FormatBytes(o.BytesAfter), FormatBytes(o.Freed()))
			continue
		}
		fmt.Fprintf(tw, " %d\t%s\t-\t-\t-\t%s\n", o.PID, status, o.Detail)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d processes in %s\n", r.ProcessCount, r.Elapsed.Round(time.Millisecond))
}

func statusColor(s model.TrimStatus) string {
	switch s {
	case model.StatusTrimmed:
		return colorGreen
	case model.StatusAccessDenied:
		return colorYellow
	default:
		return colorRed
	}
}

// RenderSample prints one usage reading in the widget's "RAM: x% CPU: y%"
// shape, with absolute RAM figures appended.
func RenderSample(w io.Writer, s model.UsageSample, colorEnabled bool) {
	line := fmt.Sprintf("RAM: %3.0f%%   CPU: %3.0f%%   (%s / %s)",
		s.RAMPercent, s.CPUPercent,
		FormatBytes(s.RAMUsedBytes), FormatBytes(s.RAMTotalBytes))
	if colorEnabled {
		line = colorBlue + line + colorReset
	}
	fmt.Fprintln(w, line)
}

// FormatBytes renders a byte count the way the original toast did, in
// whole megabytes, switching to GB past 10 GB.
func FormatBytes(b uint64) string {
	const (
		mb = 1 << 20
		gb = 1 << 30
	)
	if b >= 10*gb {
		return fmt.Sprintf("%.1f GB", float64(b)/gb)
	}
	return fmt.Sprintf("%d MB", b/mb)
}
