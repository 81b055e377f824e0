// Package content resolves the text fields of each crawled page, either from
// the crawl export itself or from a live fetch of the page.
package content

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/dtnitsch/query-coverage/models"
	"github.com/dtnitsch/query-coverage/pkg/fetcher"
	"github.com/dtnitsch/query-coverage/pkg/parser"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// Source produces the resolved fields for one page. A non-nil warning means
// the page was resolved in a degraded way; it never means failure.
type Source interface {
	Resolve(ctx context.Context, page models.Page) (models.Page, *models.Warning)
}

// HTMLFetcher is the live fetch collaborator.
type HTMLFetcher interface {
	GetHtmlBytes(ctx context.Context, rawURL string) ([]byte, error)
}

// StaticSource uses the crawl export's own cells, stripped of markup and
// whitespace-normalized.
type StaticSource struct {
	policy *bluemonday.Policy
}

func NewStaticSource() *StaticSource {
	return &StaticSource{policy: bluemonday.StrictPolicy()}
}

func (s *StaticSource) Resolve(_ context.Context, page models.Page) (models.Page, *models.Warning) {
	out := models.Page{URL: page.URL, Fields: models.NewFields(), Language: page.Language}
	for name, raw := range page.Fields {
		out.Fields[name] = s.clean(raw)
	}
	return out, nil
}

// markupTag matches unambiguous HTML: a closing tag, a comment or doctype, a
// tag with attributes, a self-closing tag, or a void element. Text such as
// "a<b>c" or "5 < 10" is left alone.
var markupTag = regexp.MustCompile(`(?i)</[a-z][a-z0-9]*\s*>|<!|<[a-z][a-z0-9]*\s[^<>]*>|<[a-z][a-z0-9]*\s*/>|<(br|hr|img|wbr)\b[^<>]*>`)

func (s *StaticSource) clean(raw string) string {
	if !strings.ContainsAny(raw, "<&") {
		return parser.NormalizeField(raw)
	}
	parts := strings.Split(raw, models.SegmentSeparator)
	for i, p := range parts {
		if markupTag.MatchString(p) {
			p = s.policy.Sanitize(p)
		}
		parts[i] = html.UnescapeString(p)
	}
	return parser.NormalizeField(strings.Join(parts, models.SegmentSeparator))
}

// LiveSource re-derives fields from a fresh fetch of the page and falls back
// to the export values when the fetch or extraction fails.
type LiveSource struct {
	Fetcher  HTMLFetcher
	Parser   *parser.Parser
	Fallback *StaticSource
	Logger   *slog.Logger
}

func NewLiveSource(f HTMLFetcher, logger *slog.Logger) *LiveSource {
	return &LiveSource{
		Fetcher:  f,
		Parser:   &parser.Parser{},
		Fallback: NewStaticSource(),
		Logger:   logger,
	}
}

func (s *LiveSource) Resolve(ctx context.Context, page models.Page) (models.Page, *models.Warning) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	body, err := s.Fetcher.GetHtmlBytes(ctx, page.URL)
	if err != nil {
		w := &models.Warning{URL: page.URL, Kind: fetchErrorKind(err), Message: err.Error()}
		logger.Warn("Live fetch failed, using crawl export content", "url", page.URL, "kind", w.Kind, "error", err)
		resolved, _ := s.Fallback.Resolve(ctx, page)
		return resolved, w
	}

	fields, err := s.Parser.ExtractFields(page.URL, body)
	if err != nil {
		w := &models.Warning{URL: page.URL, Kind: models.WarnParseError, Message: err.Error()}
		logger.Warn("Extraction failed, using crawl export content", "url", page.URL, "error", err)
		resolved, _ := s.Fallback.Resolve(ctx, page)
		return resolved, w
	}

	logger.Debug("Resolved live content", "url", page.URL, "bytes", len(body))
	return models.Page{URL: page.URL, Fields: fields, Language: page.Language}, nil
}

// SelectiveSource resolves pages accepted by Want with Source and all other
// pages with Rest.
type SelectiveSource struct {
	Source Source
	Rest   Source
	Want   func(models.Page) bool
}

func (s *SelectiveSource) Resolve(ctx context.Context, page models.Page) (models.Page, *models.Warning) {
	if s.Want == nil || s.Want(page) {
		return s.Source.Resolve(ctx, page)
	}
	return s.Rest.Resolve(ctx, page)
}

func fetchErrorKind(err error) string {
	switch {
	case errors.Is(err, fetcher.ErrInvalidURL):
		return models.WarnInvalidURL
	case fetcher.IsTimeout(err):
		return models.WarnTimeout
	}
	return models.WarnFetchError
}

// ResolveAll resolves every page with at most workers concurrent calls.
// Output pages and warnings keep input page order.
func ResolveAll(ctx context.Context, src Source, pages []models.Page, workers int) ([]models.Page, []models.Warning) {
	if workers <= 0 {
		workers = 1
	}

	resolved := make([]models.Page, len(pages))
	warnings := make([]*models.Warning, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, page := range pages {
		g.Go(func() error {
			resolved[i], warnings[i] = src.Resolve(gctx, page)
			return nil
		})
	}
	_ = g.Wait()

	var out []models.Warning
	for _, w := range warnings {
		if w != nil {
			out = append(out, *w)
		}
	}
	return resolved, out
}
