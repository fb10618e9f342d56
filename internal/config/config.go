package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/popsim/internal/dynamo"
)

const (
	DefaultGrowthRate        = 0.1
	DefaultCarryingCapacity  = 1000.0
	DefaultInitialPopulation = 50.0
	DefaultMaxTime           = 50.0
	DefaultDt                = 0.1
	DefaultCSVPath           = "population_data.csv"
	DefaultEvery             = 10
)

type Config struct {
	Description       string       `yaml:"description,omitempty"`
	GrowthRate        float64      `yaml:"growth_rate"`
	CarryingCapacity  float64      `yaml:"carrying_capacity"`
	InitialPopulation float64      `yaml:"initial_population"`
	MaxTime           float64      `yaml:"max_time"`
	Dt                float64      `yaml:"dt"`
	Output            OutputConfig `yaml:"output"`
}

type OutputConfig struct {
	CSV   string `yaml:"csv"`
	Every int    `yaml:"every"`
	Plot  bool   `yaml:"plot"`
}

func DefaultConfig() *Config {
	return &Config{
		GrowthRate:        DefaultGrowthRate,
		CarryingCapacity:  DefaultCarryingCapacity,
		InitialPopulation: DefaultInitialPopulation,
		MaxTime:           DefaultMaxTime,
		Dt:                DefaultDt,
		Output: OutputConfig{
			CSV:   DefaultCSVPath,
			Every: DefaultEvery,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the keys present in the file at path onto cfg.
// Keys the file omits keep their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Encode writes cfg as YAML to w.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func (c *Config) Params() dynamo.Parameters {
	return dynamo.Parameters{
		GrowthRate:        c.GrowthRate,
		CarryingCapacity:  c.CarryingCapacity,
		InitialPopulation: c.InitialPopulation,
		MaxTime:           c.MaxTime,
		StepSize:          c.Dt,
	}
}

// Validate rejects non-positive parameters and returns non-fatal warnings
// for settings that are legal but unusual.
func (c *Config) Validate() ([]string, error) {
	params := c.Params()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var warnings []string
	if params.AboveCapacity() {
		warnings = append(warnings, fmt.Sprintf("initial population %.0f >= carrying capacity %.0f", params.InitialPopulation, params.CarryingCapacity))
	}
	if c.Output.Every < 1 {
		warnings = append(warnings, fmt.Sprintf("table interval %d < 1, printing every sample", c.Output.Every))
		c.Output.Every = 1
	}
	return warnings, nil
}
