package main

import (
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/qhabit/runner"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the ranked schedule as CSV without ticking",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := loadInputs(cmd)
		if err != nil {
			return err
		}

		r, err := runner.New(in.cfg, runner.Options{Seed: in.seed}, in.engine, in.habits, in.completions)
		if err != nil {
			return err
		}
		defer r.Close()

		rows := r.Schedule()
		if err := gocsv.Marshal(&rows, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("writing schedule: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}
