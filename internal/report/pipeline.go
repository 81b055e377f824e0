package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/query-coverage/models"
	"github.com/dtnitsch/query-coverage/pkg/content"
	"github.com/dtnitsch/query-coverage/pkg/coverage"
	"github.com/dtnitsch/query-coverage/pkg/fetcher"
	"github.com/dtnitsch/query-coverage/pkg/language"
	"github.com/dtnitsch/query-coverage/pkg/loader"
	"github.com/dtnitsch/query-coverage/pkg/report"
)

// Result is a finished run: the report table and its summary.
type Result struct {
	Table   report.Table
	Summary report.Summary
}

// Inputs names the two exports a run reads.
type Inputs struct {
	Queries string
	Pages   string
}

// Run loads both exports, resolves page content, analyzes coverage and
// assembles the report. Errors are fatal for the run; per-page problems end
// up as warnings in the summary.
func Run(ctx context.Context, logger *slog.Logger, cfg models.RunConfig, in Inputs) (*Result, error) {
	querySet, err := loadQueries(in.Queries)
	if err != nil {
		return nil, err
	}
	pageSet, err := loadPages(in.Pages)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded inputs",
		"queries", len(querySet.Queries),
		"links", len(querySet.Links),
		"pages", len(pageSet.Pages),
		"skipped_query_rows", querySet.Stats.Skipped,
		"unlinked_query_rows", querySet.Stats.Unlinked,
		"skipped_page_rows", pageSet.Stats.Skipped,
	)

	if cfg.Join == models.JoinPerURL && !querySet.HasLandingPage {
		return nil, &loader.InputError{
			Input: loader.InputQueries,
			Err:   fmt.Errorf("%w: landing page (needed for per-url join; use --join broad to test every query against every page)", loader.ErrMissingColumn),
		}
	}

	if cfg.Top > 0 {
		querySet = loader.SelectTop(querySet, cfg.Top)
		logger.Info("Selected top queries", "top", cfg.Top, "queries", len(querySet.Queries))
	}

	opts := coverage.Options{Mode: cfg.Join, Fields: cfg.Fields, Scope: cfg.Scope}
	wanted := coverage.Wanted(querySet.Links, opts)

	runCtx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
	defer cancel()

	pages, warnings := content.ResolveAll(runCtx, newSource(logger, cfg, wanted), pageSet.Pages, cfg.WorkerCount)
	if len(warnings) > 0 {
		logger.Warn("Some pages fell back to crawl export content", "count", len(warnings))
	}

	var languages map[string]int
	if cfg.DetectLanguage {
		languages = tagLanguages(pages, wanted)
	}

	records, stats := coverage.Analyze(querySet.Queries, coverage.NewPageIndex(pages), querySet.Links, opts)
	logger.Info("Analyzed coverage", "records", len(records), "join_misses", stats.JoinMisses, "out_of_scope", stats.OutOfScope)

	summary := report.NewSummary(cfg, records, report.Counters{
		Queries:  querySet.Stats,
		Pages:    pageSet.Stats,
		Analyze:  stats,
		Warnings: warnings,
	})
	summary.Languages = languages

	return &Result{
		Table:   report.ToRows(records, cfg.Fields),
		Summary: summary,
	}, nil
}

func loadQueries(path string) (loader.QuerySet, error) {
	t, err := loader.ReadFile(path)
	if err != nil {
		return loader.QuerySet{}, &loader.InputError{Input: loader.InputQueries, Err: err}
	}
	return loader.LoadQueries(t)
}

func loadPages(path string) (loader.PageSet, error) {
	t, err := loader.ReadFile(path)
	if err != nil {
		return loader.PageSet{}, &loader.InputError{Input: loader.InputPages, Err: err}
	}
	return loader.LoadPages(t)
}

// newSource picks the content source. Live runs only fetch pages the
// analyzer will read; everything else comes from the export.
func newSource(logger *slog.Logger, cfg models.RunConfig, wanted func(models.Page) bool) content.Source {
	static := content.NewStaticSource()
	if !cfg.Live {
		return static
	}
	f := fetcher.NewFetcher(fetcher.Options{
		Timeout:   cfg.FetchTimeout,
		Retries:   cfg.Retries,
		UserAgent: cfg.UserAgent,
	})
	return &content.SelectiveSource{
		Source: content.NewLiveSource(f, logger),
		Rest:   static,
		Want:   wanted,
	}
}

func tagLanguages(pages []models.Page, wanted func(models.Page) bool) map[string]int {
	var positions []int
	var subset []models.Page
	for i, p := range pages {
		if wanted(p) {
			positions = append(positions, i)
			subset = append(subset, p)
		}
	}

	language.NewDetector().Tag(subset)
	for j, i := range positions {
		pages[i].Language = subset[j].Language
	}
	return language.Distribution(subset)
}
