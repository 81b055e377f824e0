// Package models defines data structures for configuration and coverage analysis.
package models

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Report formats.
const (
	FormatCSV    = "csv"
	FormatTSV    = "tsv"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatSQLite = "sqlite"
)

// DefaultUserAgent is sent with live fetches unless overridden.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// RunConfig holds runtime configuration for one report run.
// Values come from an optional YAML file, then CLI flags override them.
type RunConfig struct {
	Live           bool          `yaml:"live"`
	Join           JoinMode      `yaml:"join"`
	Fields         []FieldName   `yaml:"fields"`
	Top            int           `yaml:"top"`
	Scope          []string      `yaml:"scope"`
	WorkerCount    int           `yaml:"workers"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout"`
	RunTimeout     time.Duration `yaml:"run_timeout"`
	Retries        int           `yaml:"retries"`
	UserAgent      string        `yaml:"user_agent"`
	DetectLanguage bool          `yaml:"detect_language"`
	Format         string        `yaml:"format"`
	Output         string        `yaml:"output"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() RunConfig {
	return RunConfig{
		Join:         JoinPerURL,
		Fields:       append([]FieldName(nil), AllFields...),
		WorkerCount:  4,
		FetchTimeout: 10 * time.Second,
		RunTimeout:   5 * time.Minute,
		Retries:      2,
		UserAgent:    DefaultUserAgent,
		Format:       FormatCSV,
		Output:       "-",
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (RunConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the config and normalizes field names and format.
func (c *RunConfig) Validate() error {
	if len(c.Fields) == 0 {
		c.Fields = append([]FieldName(nil), AllFields...)
	}
	seen := make(map[FieldName]bool, len(c.Fields))
	fields := make([]FieldName, 0, len(c.Fields))
	for _, f := range c.Fields {
		name, ok := ParseFieldName(string(f))
		if !ok {
			return fmt.Errorf("unknown field %q", f)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		fields = append(fields, name)
	}
	c.Fields = OrderedFields(fields)

	if c.Join != JoinPerURL && c.Join != JoinBroad {
		return fmt.Errorf("unknown join mode %s", c.Join)
	}
	if c.Top < 0 {
		return fmt.Errorf("top must be >= 0, got %d", c.Top)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("workers must be > 0, got %d", c.WorkerCount)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be > 0")
	}
	if c.RunTimeout <= 0 {
		return fmt.Errorf("run_timeout must be > 0")
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must be >= 0, got %d", c.Retries)
	}

	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	switch c.Format {
	case "":
		c.Format = FormatCSV
	case FormatCSV, FormatTSV, FormatJSON, FormatYAML, FormatSQLite:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.Format == FormatSQLite && (c.Output == "" || c.Output == "-") {
		return fmt.Errorf("sqlite format needs an --output file path")
	}
	if c.Output == "" {
		c.Output = "-"
	}
	return nil
}

// OrderedFields returns the given fields in report column order.
func OrderedFields(fields []FieldName) []FieldName {
	want := make(map[FieldName]bool, len(fields))
	for _, f := range fields {
		want[f] = true
	}
	out := make([]FieldName, 0, len(fields))
	for _, f := range AllFields {
		if want[f] {
			out = append(out, f)
		}
	}
	return out
}
