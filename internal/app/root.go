// Package app wires the memsweep CLI: a clean command that runs one trim
// pass and a stat command that samples CPU/RAM usage.
package app

import (
	"github.com/spf13/cobra"

	"github.com/pranavsinha/memsweep/internal/config"
)

var (
	flagConfig  string
	flagNoColor bool
	flagJSON    bool
)

var rootCmd = &cobra.Command{
	Use:   "memsweep",
	Short: "Trim process working sets and watch RAM/CPU usage",
	Long: `memsweep asks Windows to evict the resident pages of every process it can
open back to the pagefile, and reports how much working-set memory that
released. It can also sample system CPU and RAM usage on an interval.

Trimming works best when run elevated: more processes grant the set-quota
right to an elevated caller. memsweep never elevates itself.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default $HOME/.memsweep.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colors")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(cleanCmd, statCmd)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

func colorEnabled() bool {
	return !flagNoColor
}
