package report

import (
	"time"

	"github.com/dtnitsch/query-coverage/models"
	"github.com/urfave/cli/v2"
)

// Flags returns the flags of the report command. Flag defaults mirror
// models.DefaultConfig; only flags the user sets override --config.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "queries",
			Aliases:  []string{"q"},
			Usage:    "Search analytics export (csv/tsv)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "pages",
			Aliases:  []string{"p"},
			Usage:    "Site crawl export (csv/tsv)",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "YAML config file; flags override its values",
		},
		&cli.BoolFlag{
			Name:  "live",
			Usage: "Re-fetch page content instead of using the crawl export columns",
		},
		&cli.StringFlag{
			Name:  "join",
			Value: models.JoinPerURL.String(),
			Usage: "Join mode: per-url or broad",
		},
		&cli.StringFlag{
			Name:  "fields",
			Value: "title,meta_description,h1,h2,body",
			Usage: "Comma-separated fields to test",
		},
		&cli.IntFlag{
			Name:  "top",
			Usage: "Keep only the N queries with most clicks, then impressions (0 = all)",
		},
		&cli.StringFlag{
			Name:  "scope",
			Usage: "Comma-separated URL prefixes; pages outside them are not evaluated",
		},
		&cli.IntFlag{
			Name:  "workers",
			Value: 4,
			Usage: "Concurrent live fetches",
		},
		&cli.DurationFlag{
			Name:  "fetch-timeout",
			Value: 10 * time.Second,
			Usage: "Timeout for each live fetch attempt",
		},
		&cli.DurationFlag{
			Name:  "run-timeout",
			Value: 5 * time.Minute,
			Usage: "Overall bound on live fetching",
		},
		&cli.IntFlag{
			Name:  "retries",
			Value: 2,
			Usage: "Extra attempts after a failed live fetch",
		},
		&cli.StringFlag{
			Name:  "user-agent",
			Value: models.DefaultUserAgent,
			Usage: "User agent sent with live fetches",
		},
		&cli.BoolFlag{
			Name:  "detect-language",
			Usage: "Add a page language distribution to the summary",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: models.FormatCSV,
			Usage: "Output format: csv, tsv, json, yaml, or sqlite",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   "-",
			Usage:   "Output path (- for stdout; required for sqlite)",
		},
		&cli.StringFlag{
			Name:  "summary-file",
			Usage: "Also write the run summary to this file (.json or .yaml)",
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Usage: "Only log errors and skip the summary on stderr",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log debug detail for every page",
		},
	}
}
