// Package config provides YAML-based configuration loading for Foreman.
//
// A config file is optional. Default returns the settings that reproduce the
// stock construction project, and any field omitted from a file falls back to
// the same defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Foreman configuration, loaded from foreman.yaml.
type Config struct {
	Seed          uint64         `yaml:"seed"`
	LaborRate     int            `yaml:"labor_rate"`
	CadenceDays   int            `yaml:"cadence_days"`
	Tasks         []string       `yaml:"tasks"`
	Teams         []string       `yaml:"teams"`
	DurationDays  Range          `yaml:"duration_days"`
	LaborHours    Range          `yaml:"labor_hours"`
	MaterialCost  Range          `yaml:"material_cost"`
	EquipmentCost Range          `yaml:"equipment_cost"`
	Paths         Paths          `yaml:"paths"`
	Charts        ChartConfig    `yaml:"charts"`
	Database      DatabaseConfig `yaml:"database"`
	Notify        NotifyConfig   `yaml:"notify"`
}

// Range is a half-open integer interval [Min, Max).
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Paths holds the flat-file locations written by a run.
type Paths struct {
	Raw         string `yaml:"raw"`
	Analysis    string `yaml:"analysis"`
	TeamSummary string `yaml:"team_summary"`
}

// ChartConfig controls where charts are rendered and at what size (inches).
type ChartConfig struct {
	Dir    string  `yaml:"dir"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DatabaseConfig selects the run ledger backend.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

// NotifyConfig holds optional post-run notification targets.
type NotifyConfig struct {
	SlackWebhook   string `yaml:"slack_webhook"`
	DiscordWebhook string `yaml:"discord_webhook"`
}

// Defaults for the stock project.
var (
	DefaultTasks = []string{"Foundation", "Framing", "Plumbing", "Electrical", "Roofing", "Finishing"}
	DefaultTeams = []string{"Team A", "Team B", "Team C", "Team A", "Team B", "Team C"}
)

const (
	DefaultSeed        = 42
	DefaultLaborRate   = 50
	DefaultCadenceDays = 7
)

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOrDefault behaves like Load but returns Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in zero-valued fields.
func (c *Config) applyDefaults() {
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
	if c.LaborRate == 0 {
		c.LaborRate = DefaultLaborRate
	}
	if c.CadenceDays == 0 {
		c.CadenceDays = DefaultCadenceDays
	}
	if len(c.Tasks) == 0 {
		c.Tasks = append([]string(nil), DefaultTasks...)
	}
	if len(c.Teams) == 0 {
		c.Teams = append([]string(nil), DefaultTeams...)
	}
	defaultRange(&c.DurationDays, 5, 15)
	defaultRange(&c.LaborHours, 50, 200)
	defaultRange(&c.MaterialCost, 1000, 10000)
	defaultRange(&c.EquipmentCost, 500, 5000)

	if c.Paths.Raw == "" {
		c.Paths.Raw = "data/resource_data.csv"
	}
	if c.Paths.Analysis == "" {
		c.Paths.Analysis = "data/resource_analysis.csv"
	}
	if c.Paths.TeamSummary == "" {
		c.Paths.TeamSummary = "data/team_summary.csv"
	}
	if c.Charts.Dir == "" {
		c.Charts.Dir = "data/charts"
	}
	if c.Charts.Width == 0 {
		c.Charts.Width = 8
	}
	if c.Charts.Height == 0 {
		c.Charts.Height = 5
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		c.Database.Path = "data/foreman.db"
	}
}

func defaultRange(r *Range, min, max int) {
	if r.Min == 0 && r.Max == 0 {
		r.Min, r.Max = min, max
	}
}

// Validate checks that all required fields are present and consistent.
func (c *Config) Validate() error {
	var errs []string
	if len(c.Tasks) == 0 {
		errs = append(errs, "at least one task is required")
	}
	if len(c.Teams) != len(c.Tasks) {
		errs = append(errs, fmt.Sprintf("teams has %d entries, want one per task (%d)", len(c.Teams), len(c.Tasks)))
	}
	seen := make(map[string]bool, len(c.Tasks))
	for i, name := range c.Tasks {
		if name == "" {
			errs = append(errs, fmt.Sprintf("tasks[%d] is empty", i))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Sprintf("tasks[%d] %q is a duplicate", i, name))
		}
		seen[name] = true
	}
	for i, team := range c.Teams {
		if team == "" {
			errs = append(errs, fmt.Sprintf("teams[%d] is empty", i))
		}
	}
	if c.LaborRate <= 0 {
		errs = append(errs, "labor_rate must be positive")
	}
	if c.CadenceDays < 0 {
		errs = append(errs, "cadence_days must not be negative")
	}
	for _, r := range []struct {
		name string
		r    Range
	}{
		{"duration_days", c.DurationDays},
		{"labor_hours", c.LaborHours},
		{"material_cost", c.MaterialCost},
		{"equipment_cost", c.EquipmentCost},
	} {
		if r.r.Min >= r.r.Max {
			errs = append(errs, fmt.Sprintf("%s: min (%d) must be less than max (%d)", r.name, r.r.Min, r.r.Max))
		}
		if r.r.Min < 0 {
			errs = append(errs, fmt.Sprintf("%s: min must not be negative", r.name))
		}
	}
	if c.Paths.Raw == "" || c.Paths.Analysis == "" || c.Paths.TeamSummary == "" {
		errs = append(errs, "paths.raw, paths.analysis and paths.team_summary are required")
	}
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			errs = append(errs, "database.path is required for sqlite")
		}
	case "mysql":
		if c.Database.DSN == "" {
			errs = append(errs, "database.dsn is required for mysql")
		}
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not supported (sqlite, mysql)", c.Database.Driver))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
