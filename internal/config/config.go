package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pendulab/internal/pendulum"
)

const (
	DefaultCount   = 10
	DefaultFPS     = 60
	DefaultWorkers = 1
	DefaultColumns = 10
	DefaultSpacing = 5.0
	MaxCount       = 10000
)

type Config struct {
	Count   int           `yaml:"count"`
	Variant string        `yaml:"variant"`
	FPS     int           `yaml:"fps"`
	Workers int           `yaml:"workers"`
	Physics PhysicsConfig `yaml:"physics"`
	Layout  LayoutConfig  `yaml:"layout"`
}

type PhysicsConfig struct {
	M1 float64 `yaml:"m1"`
	M2 float64 `yaml:"m2"`
	L1 float64 `yaml:"l1"`
	L2 float64 `yaml:"l2"`
	G  float64 `yaml:"g"`
}

type LayoutConfig struct {
	Columns int     `yaml:"columns"`
	Spacing float64 `yaml:"spacing"`
}

func DefaultConfig() *Config {
	return &Config{
		Count:   DefaultCount,
		Variant: pendulum.Reference.String(),
		FPS:     DefaultFPS,
		Workers: DefaultWorkers,
		Physics: PhysicsConfig{
			M1: pendulum.DefaultMass,
			M2: pendulum.DefaultMass,
			L1: pendulum.DefaultLength,
			L2: pendulum.DefaultLength,
			G:  pendulum.DefaultGravity,
		},
		Layout: LayoutConfig{
			Columns: DefaultColumns,
			Spacing: DefaultSpacing,
		},
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Count < 0 || c.Count > MaxCount {
		return fmt.Errorf("count must be in [0, %d], got %d", MaxCount, c.Count)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Layout.Columns < 1 {
		return fmt.Errorf("layout columns must be at least 1, got %d", c.Layout.Columns)
	}
	if _, err := c.Params(); err != nil {
		return err
	}
	return nil
}

// Params builds the physical constants shared by every pendulum.
func (c *Config) Params() (pendulum.Params, error) {
	v, err := pendulum.ParseVariant(c.Variant)
	if err != nil {
		return pendulum.Params{}, err
	}
	p := pendulum.Params{
		M1: c.Physics.M1, M2: c.Physics.M2,
		L1: c.Physics.L1, L2: c.Physics.L2,
		G:       c.Physics.G,
		Variant: v,
	}
	if err := p.Validate(); err != nil {
		return pendulum.Params{}, fmt.Errorf("physics: %w", err)
	}
	return p, nil
}
