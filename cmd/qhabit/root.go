package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/qhabit/config"
	"github.com/pthm-cable/qhabit/engine"
	"github.com/pthm-cable/qhabit/habit"
)

var rootCmd = &cobra.Command{
	Use:           "qhabit",
	Short:         "Habit-state simulation engine",
	Long:          "qhabit maps a batch of habits onto a normalized state vector, evolves it tick by tick and ranks the habits for scheduling.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("habits", "", "path to habits.yaml")
	pf.String("completions", "", "path to completions CSV (habit_id,completed_at)")
	pf.String("config", "", "path to config.yaml (empty = use defaults)")
	pf.Int64("seed", 0, "RNG seed (0 = time-based)")
	pf.String("now", "", "pin the clock to an RFC3339 time")
	pf.Bool("verbose", false, "debug logging")
	_ = rootCmd.MarkPersistentFlagRequired("habits")
}

// inputs is everything a subcommand needs to build a session.
type inputs struct {
	cfg         *config.Config
	seed        int64
	habits      []habit.Habit
	completions habit.Completions
	engine      engine.Options
}

func loadInputs(cmd *cobra.Command) (*inputs, error) {
	flags := cmd.Flags()
	habitsPath, _ := flags.GetString("habits")
	completionsPath, _ := flags.GetString("completions")
	configPath, _ := flags.GetString("config")
	seed, _ := flags.GetInt64("seed")
	now, _ := flags.GetString("now")
	verbose, _ := flags.GetBool("verbose")

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	// Logs go to stderr so schedule CSV on stdout stays clean.
	logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	habits, err := habit.LoadHabits(habitsPath)
	if err != nil {
		return nil, err
	}

	completions := habit.Completions{}
	if completionsPath != "" {
		if completions, err = habit.LoadCompletions(completionsPath); err != nil {
			return nil, err
		}
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	clock := time.Now
	if now != "" {
		pinned, err := time.Parse(time.RFC3339, now)
		if err != nil {
			return nil, fmt.Errorf("parsing --now: %w", err)
		}
		clock = func() time.Time { return pinned }
	}

	return &inputs{
		cfg:         cfg,
		seed:        seed,
		habits:      habits,
		completions: completions,
		engine: engine.Options{
			Rand:   rand.New(rand.NewSource(seed)),
			Clock:  clock,
			Logger: logger,
		},
	}, nil
}
