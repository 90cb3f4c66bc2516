// Package config provides configuration loading for the habit simulation engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Engine       EngineConfig       `yaml:"engine"`
	Particles    ParticlesConfig    `yaml:"particles"`
	Entanglement EntanglementConfig `yaml:"entanglement"`
	Fluctuation  FluctuationConfig  `yaml:"fluctuation"`
	Energy       EnergyConfig       `yaml:"energy"`
	Schedule     ScheduleConfig     `yaml:"schedule"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// EngineConfig holds state vector and tick parameters.
type EngineConfig struct {
	Qubits        int     `yaml:"qubits"`
	DT            float64 `yaml:"dt"`
	HadamardIndex int     `yaml:"hadamard_index"`
	PhaseIndex    int     `yaml:"phase_index"`
}

// ParticlesConfig holds particle seeding and integration parameters.
type ParticlesConfig struct {
	Population             int     `yaml:"population"`
	Scale                  float64 `yaml:"scale"`
	MinSpeed               float64 `yaml:"min_speed"`
	MaxSpeed               float64 `yaml:"max_speed"`
	Size                   float64 `yaml:"size"`
	AmplitudePull          float64 `yaml:"amplitude_pull"`
	MinAmplitude           float64 `yaml:"min_amplitude"`
	MaxAmplitude           float64 `yaml:"max_amplitude"`
	PhaseDrift             float64 `yaml:"phase_drift"`
	SuperpositionFactor    float64 `yaml:"superposition_factor"`
	InterferenceFactor     float64 `yaml:"interference_factor"`
	InterferenceWavelength float64 `yaml:"interference_wavelength"`
	DriftStep              float64 `yaml:"drift_step"`
}

// EntanglementConfig holds link derivation and propagation parameters.
type EntanglementConfig struct {
	Threshold        float64 `yaml:"threshold"`
	ControlThreshold float64 `yaml:"control_threshold"`
	Fluctuation      float64 `yaml:"fluctuation"`
	FluctuationRate  float64 `yaml:"fluctuation_rate"`
	MinStrength      float64 `yaml:"min_strength"`
	MaxStrength      float64 `yaml:"max_strength"`
}

// FluctuationConfig holds the random qubit rotation parameters.
type FluctuationConfig struct {
	Chance   float64 `yaml:"chance"`
	MaxAngle float64 `yaml:"max_angle"`
}

// EnergyConfig holds energy level parameters.
type EnergyConfig struct {
	MaxLevel          int `yaml:"max_level"`
	StreakDivisor     int `yaml:"streak_divisor"`
	DifficultyDivisor int `yaml:"difficulty_divisor"`
}

// ScheduleConfig holds scheduler and predictor weights.
type ScheduleConfig struct {
	EntanglementBonus     float64 `yaml:"entanglement_bonus"`
	RateWeight            float64 `yaml:"rate_weight"`
	AmplitudeWeight       float64 `yaml:"amplitude_weight"`
	StreakWeight          float64 `yaml:"streak_weight"`
	StreakCap             float64 `yaml:"streak_cap"`
	EffectAmplitudeWeight float64 `yaml:"effect_amplitude_weight"`
	EffectPhaseWeight     float64 `yaml:"effect_phase_weight"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // ticks per stats row
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32                   float32 // Engine.DT as float32
	SuperpositionFactor32  float32
	InterferenceFactor32   float32
	InterferenceWavelength float32
	SpeedRange             float64 // Particles.MaxSpeed - Particles.MinSpeed
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Default returns the embedded defaults. It panics if they fail to parse,
// which only happens when defaults.yaml itself is broken.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

func (c *Config) validate() error {
	switch {
	case c.Engine.Qubits <= 0:
		return fmt.Errorf("engine.qubits must be positive, got %d", c.Engine.Qubits)
	case c.Engine.DT <= 0:
		return fmt.Errorf("engine.dt must be positive, got %v", c.Engine.DT)
	case c.Particles.Population < 0:
		return fmt.Errorf("particles.population must not be negative, got %d", c.Particles.Population)
	case c.Particles.MinAmplitude > c.Particles.MaxAmplitude:
		return fmt.Errorf("particles.min_amplitude %v exceeds max_amplitude %v",
			c.Particles.MinAmplitude, c.Particles.MaxAmplitude)
	case c.Entanglement.MinStrength > c.Entanglement.MaxStrength:
		return fmt.Errorf("entanglement.min_strength %v exceeds max_strength %v",
			c.Entanglement.MinStrength, c.Entanglement.MaxStrength)
	case c.Fluctuation.Chance < 0 || c.Fluctuation.Chance > 1:
		return fmt.Errorf("fluctuation.chance must be in [0,1], got %v", c.Fluctuation.Chance)
	case c.Energy.MaxLevel < 0:
		return fmt.Errorf("energy.max_level must not be negative, got %d", c.Energy.MaxLevel)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Engine.DT)
	c.Derived.SuperpositionFactor32 = float32(c.Particles.SuperpositionFactor)
	c.Derived.InterferenceFactor32 = float32(c.Particles.InterferenceFactor)
	c.Derived.InterferenceWavelength = float32(c.Particles.InterferenceWavelength)
	if c.Derived.InterferenceWavelength == 0 {
		c.Derived.InterferenceWavelength = 1
	}
	c.Derived.SpeedRange = max(c.Particles.MaxSpeed-c.Particles.MinSpeed, 0)

	if c.Energy.StreakDivisor <= 0 {
		c.Energy.StreakDivisor = 1
	}
	if c.Energy.DifficultyDivisor <= 0 {
		c.Energy.DifficultyDivisor = 1
	}
	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
