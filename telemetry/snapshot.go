package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the state of a session at one tick.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Tick    int     `json:"tick"`
	SimTime float64 `json:"sim_time"`

	Qubits       []QubitState   `json:"qubits"`
	Links        []LinkState    `json:"links"`
	EnergyLevels map[string]int `json:"energy_levels"`
	Particles    int            `json:"particles"`
}

// QubitState holds one qubit and its bound habit.
type QubitState struct {
	Index   int     `json:"index"`
	HabitID string  `json:"habit_id,omitempty"`
	Real    float64 `json:"real"`
	Imag    float64 `json:"imag"`
}

// LinkState holds one entanglement link.
type LinkState struct {
	HabitA      string  `json:"habit_a"`
	HabitB      string  `json:"habit_b"`
	Correlation float32 `json:"correlation"`
	Strength    float32 `json:"strength"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Tick))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
