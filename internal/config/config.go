package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Engine holds configuration for the benchmark/scenario-runner binaries.
type Engine struct {
	MapDir         string `yaml:"map_dir"`
	ScenarioDir    string `yaml:"scenario_dir"`
	OutputPath     string `yaml:"output_path"`
	LogLevel       string `yaml:"log_level"` // debug, info, warn, error (default: info)
	MaxConcurrency int    `yaml:"max_concurrency"`
}

// DefaultEngine returns Engine config with sensible defaults.
func DefaultEngine() Engine {
	return Engine{
		MapDir:         "./maps",
		ScenarioDir:    "./scenarios",
		OutputPath:     "./results.csv",
		LogLevel:       "info",
		MaxConcurrency: 4,
	}
}

// LoadEngine loads Engine config from a YAML file. If the file doesn't
// exist, returns defaults.
func LoadEngine(path string) (Engine, error) {
	cfg := DefaultEngine()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
