package main

import (
	"github.com/spf13/cobra"

	"github.com/pthm-cable/qhabit/runner"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Advance the simulation and write telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := loadInputs(cmd)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		ticks, _ := flags.GetInt("ticks")
		statsWindow, _ := flags.GetInt("stats-window")
		outputDir, _ := flags.GetString("output-dir")
		snapshotDir, _ := flags.GetString("snapshot-dir")
		logStats, _ := flags.GetBool("log-stats")

		r, err := runner.New(in.cfg, runner.Options{
			Seed:        in.seed,
			LogStats:    logStats,
			StatsWindow: statsWindow,
			SnapshotDir: snapshotDir,
			OutputDir:   outputDir,
			MaxTicks:    ticks,
		}, in.engine, in.habits, in.completions)
		if err != nil {
			return err
		}
		defer r.Close()

		return r.Run()
	},
}

func init() {
	f := runCmd.Flags()
	f.Int("ticks", 1200, "number of ticks to advance")
	f.Int("stats-window", 0, "ticks per stats window (0 = use config)")
	f.String("output-dir", "", "directory for CSV logs and config snapshot")
	f.String("snapshot-dir", "", "directory for the final snapshot")
	f.Bool("log-stats", false, "output window stats via slog")
	rootCmd.AddCommand(runCmd)
}
