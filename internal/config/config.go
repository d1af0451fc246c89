package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBodies    = 256
	DefaultSteps     = 1000
	DefaultDt        = 0.001
	DefaultG         = 1.0
	DefaultSoftening = 0.01
	DefaultTheta     = 0.5
	DefaultScale     = 50.0
	DefaultBackend   = "openmp"
	DefaultDist      = "sphere"
)

type Config struct {
	Preset       string  `yaml:"preset"`
	Bodies       int     `yaml:"bodies"`
	Steps        int     `yaml:"steps"`
	Dt           float64 `yaml:"dt"`
	Backend      string  `yaml:"backend"`
	G            float64 `yaml:"g"`
	Softening    float64 `yaml:"softening"`
	Theta        float64 `yaml:"theta"`
	Collisions   bool    `yaml:"collisions"`
	Distribution string  `yaml:"distribution"`
	Scale        float64 `yaml:"scale"`
	Seed         int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Bodies:       DefaultBodies,
		Steps:        DefaultSteps,
		Dt:           DefaultDt,
		Backend:      DefaultBackend,
		G:            DefaultG,
		Softening:    DefaultSoftening,
		Theta:        DefaultTheta,
		Distribution: DefaultDist,
		Scale:        DefaultScale,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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
