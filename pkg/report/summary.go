package report

import (
	"fmt"
	"time"

	"github.com/dtnitsch/query-coverage/models"
	"github.com/dtnitsch/query-coverage/pkg/coverage"
	"github.com/google/uuid"
)

// Summary is the run-level accounting returned alongside the report.
type Summary struct {
	RunID       string             `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time          `json:"generated_at" yaml:"generated_at"`
	JoinMode    string             `json:"join_mode" yaml:"join_mode"`
	Live        bool               `json:"live" yaml:"live"`
	Fields      []models.FieldName `json:"fields" yaml:"fields"`

	coverage.Metrics `yaml:",inline"`

	SkippedQueryRows int              `json:"skipped_query_rows" yaml:"skipped_query_rows"`
	SkippedPageRows  int              `json:"skipped_page_rows" yaml:"skipped_page_rows"`
	UnlinkedRows     int              `json:"unlinked_query_rows,omitempty" yaml:"unlinked_query_rows,omitempty"`
	JoinMisses       int              `json:"join_misses" yaml:"join_misses"`
	MissedURLs       []string         `json:"missed_urls,omitempty" yaml:"missed_urls,omitempty"`
	OutOfScope       int              `json:"out_of_scope" yaml:"out_of_scope"`
	FetchFailures    int              `json:"fetch_failures" yaml:"fetch_failures"`
	Warnings         []models.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Languages        map[string]int   `json:"languages,omitempty" yaml:"languages,omitempty"`
	Messages         []string         `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// Counters gathers the per-stage accounting threaded through a run.
type Counters struct {
	Queries  models.LoadStats
	Pages    models.LoadStats
	Analyze  models.AnalyzeStats
	Warnings []models.Warning
}

// NewSummary builds the summary for a finished run with a fresh run id.
func NewSummary(cfg models.RunConfig, records []models.CoverageRecord, c Counters) Summary {
	s := Summary{
		RunID:            uuid.NewString(),
		GeneratedAt:      time.Now().UTC(),
		JoinMode:         cfg.Join.String(),
		Live:             cfg.Live,
		Fields:           models.OrderedFields(cfg.Fields),
		Metrics:          coverage.Summarize(records, cfg.Fields),
		SkippedQueryRows: c.Queries.Skipped,
		SkippedPageRows:  c.Pages.Skipped,
		JoinMisses:       c.Analyze.JoinMisses,
		MissedURLs:       c.Analyze.MissedURLs,
		OutOfScope:       c.Analyze.OutOfScope,
		FetchFailures:    len(c.Warnings),
		Warnings:         c.Warnings,
	}
	// broad runs never read landing pages
	if cfg.Join == models.JoinPerURL {
		s.UnlinkedRows = c.Queries.Unlinked
	}
	if len(s.Fields) == 0 {
		s.Fields = append([]models.FieldName(nil), models.AllFields...)
	}
	s.Messages = messages(s)
	return s
}

func messages(s Summary) []string {
	var out []string
	if s.JoinMisses > 0 {
		out = append(out, fmt.Sprintf("%d queries could not be matched to a crawled page.", s.JoinMisses))
	}
	if s.SkippedQueryRows > 0 {
		out = append(out, fmt.Sprintf("%d query rows were skipped (missing query text).", s.SkippedQueryRows))
	}
	if s.UnlinkedRows > 0 {
		out = append(out, fmt.Sprintf("%d query rows had no landing page and were left out of the per-url join.", s.UnlinkedRows))
	}
	if s.SkippedPageRows > 0 {
		out = append(out, fmt.Sprintf("%d crawl rows were skipped (missing or repeated URL).", s.SkippedPageRows))
	}
	if s.OutOfScope > 0 {
		out = append(out, fmt.Sprintf("%d pages or links were outside the configured scope.", s.OutOfScope))
	}
	if s.FetchFailures > 0 {
		out = append(out, fmt.Sprintf("%d pages fell back to crawl export content after a failed live fetch.", s.FetchFailures))
	}
	return out
}
