// Package report wires the coverage pipeline to the command line.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dtnitsch/query-coverage/models"
	"github.com/dtnitsch/query-coverage/pkg/help"
	"github.com/dtnitsch/query-coverage/pkg/loader"
	"github.com/dtnitsch/query-coverage/pkg/report"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func ReportAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	cfg, err := BuildConfig(c)
	if err != nil {
		logger.Error("failed to build configuration", "error", err)
		os.Exit(2)
	}
	logger.Info("Configuration",
		"join", cfg.Join.String(),
		"live", cfg.Live,
		"fields", cfg.Fields,
		"top", cfg.Top,
		"format", cfg.Format,
	)

	in := Inputs{Queries: c.String("queries"), Pages: c.String("pages")}
	result, err := Run(c.Context, logger, cfg, in)
	if err != nil {
		var inErr *loader.InputError
		if errors.As(err, &inErr) {
			path := in.Queries
			if inErr.Input == loader.InputPages {
				path = in.Pages
			}
			logger.Error("unusable input", "input", inErr.Input, "path", path, "error", inErr.Err)
		} else {
			logger.Error("report failed", "error", err)
		}
		os.Exit(2)
	}

	if err := writeReport(cfg, result); err != nil {
		logger.Error("failed to write report", "output", cfg.Output, "error", err)
		os.Exit(2)
	}

	if path := c.String("summary-file"); path != "" {
		if err := writeSummaryFile(path, result.Summary); err != nil {
			logger.Error("failed to write summary", "path", path, "error", err)
			os.Exit(2)
		}
	}

	if !c.Bool("quiet") {
		if err := printSummary(os.Stderr, result.Summary); err != nil {
			logger.Warn("failed to print summary", "error", err)
		}
	}

	logger.Info("Report complete",
		"run_id", result.Summary.RunID,
		"records", result.Summary.Records,
		"seconds", time.Since(startTime).Seconds(),
	)
	return nil
}

// writeReport sends the table to cfg.Output ("-" is stdout).
func writeReport(cfg models.RunConfig, result *Result) error {
	if cfg.Format == models.FormatSQLite {
		return report.WriteSQLite(cfg.Output, result.Table, result.Summary)
	}
	if cfg.Output == "-" {
		return report.Write(os.Stdout, cfg.Format, result.Table, result.Summary)
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", cfg.Output, err)
	}
	if err := report.Write(f, cfg.Format, result.Table, result.Summary); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// writeSummaryFile writes JSON for a .json path and YAML otherwise.
func writeSummaryFile(path string, s report.Summary) error {
	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = yaml.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("error marshalling summary: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func printSummary(w io.Writer, s report.Summary) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "---\n%s", data)
	return err
}

// QuickstartAction prints the YAML cheat sheet.
func QuickstartAction(c *cli.Context) error {
	_, err := fmt.Fprint(c.App.Writer, help.QuickstartYAML)
	return err
}
