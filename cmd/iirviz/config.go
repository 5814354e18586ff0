package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-iirviz/dsp/core"
)

// fileConfig is the YAML configuration accepted by -config. Zero values
// leave the defaults in place.
type fileConfig struct {
	Order        int               `yaml:"order"`
	Points       int               `yaml:"points"`
	LogBase      float64           `yaml:"log_base"`
	FloorDB      float64           `yaml:"floor_db"`
	SampleRate   float64           `yaml:"sample_rate"`
	Logarithmic  bool              `yaml:"logarithmic"`
	Coefficients map[string]string `yaml:"coefficients"`
}

func loadConfig(filename string) (*fileConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

func (c *fileConfig) options() []core.AnalysisOption {
	var opts []core.AnalysisOption

	if c.Order != 0 {
		opts = append(opts, core.WithOrder(c.Order))
	}

	if c.Points != 0 {
		opts = append(opts, core.WithResponsePoints(c.Points))
	}

	if c.LogBase != 0 {
		opts = append(opts, core.WithLogBase(c.LogBase))
	}

	if c.FloorDB != 0 {
		opts = append(opts, core.WithFloorDB(c.FloorDB))
	}

	if c.SampleRate != 0 {
		opts = append(opts, core.WithSampleRate(c.SampleRate))
	}

	return opts
}

// edits returns the coefficient assignments sorted by name.
func (c *fileConfig) edits() []edit {
	names := make([]string, 0, len(c.Coefficients))
	for name := range c.Coefficients {
		names = append(names, name)
	}

	sort.Strings(names)

	out := make([]edit, len(names))
	for i, name := range names {
		out[i] = edit{name: name, value: c.Coefficients[name]}
	}

	return out
}
