package report

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/query-coverage/models"
	"github.com/urfave/cli/v2"
)

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseFieldsFlag turns "title,h1" into field names. Unknown names are an error.
func ParseFieldsFlag(s string) ([]models.FieldName, error) {
	var fields []models.FieldName
	for _, part := range splitList(s) {
		name, ok := models.ParseFieldName(part)
		if !ok {
			return nil, fmt.Errorf("unknown field %q (want title, meta_description, h1, h2, body)", part)
		}
		fields = append(fields, name)
	}
	return fields, nil
}

// BuildConfig starts from --config (or the defaults) and applies every flag
// the user set explicitly, then validates the result.
func BuildConfig(c *cli.Context) (models.RunConfig, error) {
	cfg := models.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := models.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("live") {
		cfg.Live = c.Bool("live")
	}
	if c.IsSet("join") {
		mode, err := models.ParseJoinMode(c.String("join"))
		if err != nil {
			return cfg, err
		}
		cfg.Join = mode
	}
	if c.IsSet("fields") {
		fields, err := ParseFieldsFlag(c.String("fields"))
		if err != nil {
			return cfg, err
		}
		cfg.Fields = fields
	}
	if c.IsSet("top") {
		cfg.Top = c.Int("top")
	}
	if c.IsSet("scope") {
		cfg.Scope = splitList(c.String("scope"))
	}
	if c.IsSet("workers") {
		cfg.WorkerCount = c.Int("workers")
	}
	if c.IsSet("fetch-timeout") {
		cfg.FetchTimeout = c.Duration("fetch-timeout")
	}
	if c.IsSet("run-timeout") {
		cfg.RunTimeout = c.Duration("run-timeout")
	}
	if c.IsSet("retries") {
		cfg.Retries = c.Int("retries")
	}
	if c.IsSet("user-agent") {
		cfg.UserAgent = c.String("user-agent")
	}
	if c.IsSet("detect-language") {
		cfg.DetectLanguage = c.Bool("detect-language")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
