package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/query-coverage/internal/report"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "query-coverage",
		Usage: "Report where top search queries appear in the content of crawled pages",
		Commands: []*cli.Command{
			{
				Name:   "report",
				Usage:  "Cross-reference a search analytics export with a site crawl export",
				Action: report.ReportAction,
				Flags:  report.Flags(),
			},
			{
				Name:   "quickstart",
				Usage:  "Print a YAML cheat sheet of common invocations",
				Action: report.QuickstartAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
