package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pranavsinha/memsweep/internal/output"
	"github.com/pranavsinha/memsweep/internal/sweep"
	"github.com/pranavsinha/memsweep/internal/winapi"
)

var (
	flagWorkers int
	flagExclude []int32
	flagVerbose bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Run one trim pass over all accessible processes",
	Long: `Runs a single trim pass: reclaims memsweep's own memory, then asks the
OS to empty the working set of every process the caller can open. Denied
and exited processes are recorded and skipped, never fatal.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().IntVar(&flagWorkers, "workers", 0, "trim worker pool size (default from config)")
	cleanCmd.Flags().Int32SliceVar(&flagExclude, "exclude", nil, "pids to skip, comma separated")
	cleanCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "print the per-process outcome table")
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}
	cfg.Exclude = append(cfg.Exclude, flagExclude...)

	engine := sweep.New(winapi.New(),
		sweep.WithWorkers(cfg.Workers),
		sweep.WithExcludedPids(cfg.Exclude),
	)

	// Ctrl-C abandons the pass; in-flight trims finish so no handle leaks.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, runErr := engine.Run(ctx)

	out := cmd.OutOrStdout()
	if flagJSON {
		s, err := output.ToJSON(report)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
	} else {
		output.RenderReport(out, report, colorEnabled())
		if flagVerbose {
			output.RenderOutcomes(out, report, colorEnabled())
		}
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}
