// Package config loads vectrace settings from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pavanmanishd/vector"
	"github.com/pavanmanishd/vector/internal/xlog"
)

const (
	DefaultPushes = 40
	DefaultPops   = 30
)

type Config struct {
	Policy   vector.Policy  `yaml:"policy"`
	Scenario ScenarioConfig `yaml:"scenario"`
	Log      xlog.Conf      `yaml:"log"`
}

// ScenarioConfig describes the workload replayed by vectrace: Pushes
// appends followed by Pops removals.
type ScenarioConfig struct {
	Name    string `yaml:"name"`
	Pushes  int    `yaml:"pushes"`
	Pops    int    `yaml:"pops"`
	Reserve int    `yaml:"reserve"`
	// Limit caps the demo vector's allocator in elements; 0 is unbounded.
	Limit int `yaml:"limit"`
}

func DefaultConfig() *Config {
	return &Config{
		Policy: vector.DefaultPolicy,
		Scenario: ScenarioConfig{
			Name:   "demo",
			Pushes: DefaultPushes,
			Pops:   DefaultPops,
		},
		Log: xlog.Conf{
			ServiceName: "vectrace",
			Level:       "info",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Policy.Validate(); err != nil {
		return err
	}
	s := c.Scenario
	if s.Pushes < 0 || s.Pops < 0 || s.Reserve < 0 || s.Limit < 0 {
		return fmt.Errorf("%w: scenario counts must not be negative", vector.ErrInvalid)
	}
	return nil
}

// Ops expands the scenario into the operation sequence it describes.
func (s ScenarioConfig) Ops() []vector.Op {
	ops := make([]vector.Op, 0, s.Pushes+s.Pops)
	for i := 0; i < s.Pushes; i++ {
		ops = append(ops, vector.OpPush)
	}
	for i := 0; i < s.Pops; i++ {
		ops = append(ops, vector.OpPop)
	}
	return ops
}
