package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/qhabit/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	assert.Nil(t, om)

	// nil manager swallows writes
	assert.NoError(t, om.WriteTicks(TickStats{}))
	assert.NoError(t, om.WriteSchedule(nil))
	assert.NoError(t, om.WriteConfig(config.Default()))
	assert.NoError(t, om.Close())
	assert.Empty(t, om.Dir())
}

func TestOutputManagerWrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	require.NoError(t, err)

	require.NoError(t, om.WriteTicks(TickStats{WindowEndTick: 60, Particles: 12}))
	require.NoError(t, om.WriteTicks(TickStats{WindowEndTick: 120, Particles: 12}))
	require.NoError(t, om.WritePerf(PerfStats{}, 60))
	require.NoError(t, om.WriteConfig(config.Default()))
	require.NoError(t, om.WriteSchedule([]ScheduleRow{
		{Rank: 1, HabitID: "read", Priority: 0.9},
		{Rank: 2, HabitID: "run", Priority: 0.4},
	}))
	require.NoError(t, om.Close())

	ticks, err := os.ReadFile(filepath.Join(dir, "ticks.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(ticks)), "\n")
	require.Len(t, lines, 3, "one header plus two rows")
	assert.True(t, strings.HasPrefix(lines[0], "window_end,sim_time,"))
	assert.NotContains(t, lines[0], "WindowStartTick")

	schedule, err := os.ReadFile(filepath.Join(dir, "schedule.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(schedule), "rank,habit_id,name,priority,success,effect")
	assert.Contains(t, string(schedule), "read")

	_, err = config.Load(filepath.Join(dir, "config.yaml"))
	assert.NoError(t, err)
}
