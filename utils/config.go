package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the settings for running and benchmarking the step engine
type Config struct {
	Size                int     `json:"size" yaml:"size"`
	Seed                int64   `json:"seed" yaml:"seed"`
	StartPoints         int     `json:"start_points" yaml:"start_points"`
	Steps               int     `json:"steps" yaml:"steps"`
	Strategy            string  `json:"strategy" yaml:"strategy"`
	Workers             int     `json:"workers" yaml:"workers"` // 0 means one per CPU
	LockMode            string  `json:"lock_mode" yaml:"lock_mode"`
	AutoRestart         bool    `json:"auto_restart" yaml:"auto_restart"`
	StagnationThreshold int     `json:"stagnation_threshold" yaml:"stagnation_threshold"`
	InjectionCount      int     `json:"injection_count" yaml:"injection_count"`
	RandomDensity       float64 `json:"random_density" yaml:"random_density"`
	BenchSizes          []int   `json:"bench_sizes" yaml:"bench_sizes"`
	BenchSteps          int     `json:"bench_steps" yaml:"bench_steps"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Size:                128,
		Seed:                42,
		StartPoints:         3000,
		Steps:               1000,
		Strategy:            "parallel",
		Workers:             0,
		LockMode:            "disjoint",
		AutoRestart:         true,
		StagnationThreshold: 5,
		InjectionCount:      3,
		RandomDensity:       0,
		BenchSizes:          []int{32, 128, 512, 1024},
		BenchSteps:          100,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, picked by extension
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid configuration in file: %+v", filename)
	}

	return config, nil
}

// SaveConfig writes configuration as JSON or YAML, picked by extension
func SaveConfig(filename string, config Config) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return errors.Wrapf(err, "[SaveConfig] failed to marshal config for file: %+v", filename)
	}

	if err = os.WriteFile(filename, data, 0644); err != nil {
		return errors.Wrapf(err, "[SaveConfig] failed to write file: %+v", filename)
	}
	return nil
}

// Validate checks the numeric settings; strategy and lock mode names are
// checked by the engine when the stepper is built
func (c Config) Validate() error {
	switch {
	case c.Size < 1:
		return errors.Errorf("[Validate] size must be at least 1, got %d", c.Size)
	case c.Workers < 0:
		return errors.Errorf("[Validate] workers must not be negative, got %d", c.Workers)
	case c.Steps < 0:
		return errors.Errorf("[Validate] steps must not be negative, got %d", c.Steps)
	case c.StartPoints < 0:
		return errors.Errorf("[Validate] start_points must not be negative, got %d", c.StartPoints)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Errorf("[Validate] random_density must be within [0, 1], got %v", c.RandomDensity)
	case c.BenchSteps < 1:
		return errors.Errorf("[Validate] bench_steps must be at least 1, got %d", c.BenchSteps)
	}
	for _, size := range c.BenchSizes {
		if size < 1 {
			return errors.Errorf("[Validate] bench size must be at least 1, got %d", size)
		}
	}
	return nil
}
