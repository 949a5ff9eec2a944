// Package config loads the regexfsm CLI configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Stages a dump can show.
const (
	StageNFA = "nfa"
	StageDFA = "dfa"
	StageMin = "min"
)

// Dump formats.
const (
	FormatText = "text"
	FormatDOT  = "dot"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds CLI settings. Zero fields are filled from Default.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Stage selects which automaton dump prints.
	Stage string `yaml:"stage"`

	// Format selects text or dot output for dump.
	Format string `yaml:"format"`

	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// TelemetryConfig selects the OpenTelemetry exporters.
type TelemetryConfig struct {
	// TraceExporter is "stdout" or "none".
	TraceExporter string `yaml:"trace_exporter"`

	// MetricExporter is "stdout" or "none".
	MetricExporter string `yaml:"metric_exporter"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Stage:    StageMin,
		Format:   FormatText,
		Telemetry: TelemetryConfig{
			TraceExporter:  "none",
			MetricExporter: "none",
		},
	}
}

// Load reads path and applies defaults. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies defaults and validates the result.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Stage == "" {
		c.Stage = d.Stage
	}
	if c.Format == "" {
		c.Format = d.Format
	}
	if c.Telemetry.TraceExporter == "" {
		c.Telemetry.TraceExporter = d.Telemetry.TraceExporter
	}
	if c.Telemetry.MetricExporter == "" {
		c.Telemetry.MetricExporter = d.Telemetry.MetricExporter
	}
}

// Validate checks every enumerated field.
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.Stage {
	case StageNFA, StageDFA, StageMin:
	default:
		return fmt.Errorf("%w: stage %q", ErrInvalid, c.Stage)
	}
	switch c.Format {
	case FormatText, FormatDOT:
	default:
		return fmt.Errorf("%w: format %q", ErrInvalid, c.Format)
	}
	for _, exp := range []string{c.Telemetry.TraceExporter, c.Telemetry.MetricExporter} {
		if exp != "stdout" && exp != "none" {
			return fmt.Errorf("%w: exporter %q", ErrInvalid, exp)
		}
	}
	return nil
}

// Level maps LogLevel onto slog.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return lvl, nil
}
