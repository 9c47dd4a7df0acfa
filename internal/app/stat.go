package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pranavsinha/memsweep/internal/output"
	"github.com/pranavsinha/memsweep/internal/stats"
)

var (
	flagWatch    bool
	flagInterval time.Duration
)

var statCmd = &cobra.Command{
	Use:   "stat",
	Short: "Sample system CPU and RAM usage",
	Long: `Prints one CPU/RAM usage sample, or a live feed with --watch. Sampling
is read-only and independent of trimming.`,
	RunE: runStat,
}

func init() {
	statCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "keep sampling until interrupted")
	statCmd.Flags().DurationVar(&flagInterval, "interval", time.Second, "watch sampling interval")
}

func runStat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	interval := cfg.Interval
	if cmd.Flags().Changed("interval") {
		interval = flagInterval
	}
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", interval)
	}

	sampler := stats.New()
	out := cmd.OutOrStdout()

	emit := func() error {
		sample := sampler.Sample()
		if flagJSON {
			s, err := output.ToJSON(sample)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, s)
			return nil
		}
		output.RenderSample(out, sample, colorEnabled())
		return nil
	}

	if !flagWatch {
		return emit()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := emit(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := emit(); err != nil {
				return err
			}
		}
	}
}
