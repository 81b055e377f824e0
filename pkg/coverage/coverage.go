// Package coverage tests search queries against the text fields of crawled
// pages and produces one coverage record per evaluated (query, page) pair.
package coverage

import (
	"strings"

	"github.com/dtnitsch/query-coverage/internal/common"
	"github.com/dtnitsch/query-coverage/models"
)

// Options controls which pairs are evaluated and which fields count.
type Options struct {
	Mode models.JoinMode
	// Fields are the tracked fields; empty means all five.
	Fields []models.FieldName
	// Scope restricts evaluation to pages whose URL starts with one of the
	// prefixes. Empty means every crawled page.
	Scope []string
}

type indexedPage struct {
	page     models.Page
	segments map[models.FieldName][]string
}

// PageIndex holds resolved pages keyed by canonical URL, in input order, with
// field text normalized once up front.
type PageIndex struct {
	order []*indexedPage
	byKey map[string]*indexedPage
}

// NewPageIndex indexes pages. Repeat URLs keep the first page.
func NewPageIndex(pages []models.Page) *PageIndex {
	idx := &PageIndex{byKey: make(map[string]*indexedPage, len(pages))}
	for _, p := range pages {
		key := common.CanonicalURL(p.URL)
		if _, dup := idx.byKey[key]; dup {
			continue
		}
		ip := &indexedPage{page: p, segments: make(map[models.FieldName][]string, len(models.AllFields))}
		for _, f := range models.AllFields {
			ip.segments[f] = normalizeSegments(p.Fields[f])
		}
		idx.order = append(idx.order, ip)
		idx.byKey[key] = ip
	}
	return idx
}

// Len returns the number of distinct pages.
func (idx *PageIndex) Len() int { return len(idx.order) }

// Lookup finds a page by URL using the canonical join key.
func (idx *PageIndex) Lookup(rawURL string) (models.Page, bool) {
	ip, ok := idx.byKey[common.CanonicalURL(rawURL)]
	if !ok {
		return models.Page{}, false
	}
	return ip.page, true
}

// Analyze evaluates queries against pages.
//
// In per-URL mode the pairs are the links, deduplicated on (query text, URL);
// links whose URL is not among the pages are counted as join misses. In broad
// mode every query is paired with every in-scope page and links are ignored.
//
// Records are ordered by query input order, then by link order (per-URL) or
// page input order (broad).
func Analyze(queries []models.Query, pages *PageIndex, links []models.Link, opts Options) ([]models.CoverageRecord, models.AnalyzeStats) {
	fields := opts.Fields
	if len(fields) == 0 {
		fields = models.AllFields
	}

	var stats models.AnalyzeStats
	var records []models.CoverageRecord

	switch opts.Mode {
	case models.JoinBroad:
		for _, q := range queries {
			nq := Normalize(q.Text)
			for _, ip := range pages.order {
				if !inScope(ip.page.URL, opts.Scope) {
					continue
				}
				records = append(records, evaluate(q, nq, ip, fields))
			}
		}
		if len(opts.Scope) > 0 {
			for _, ip := range pages.order {
				if !inScope(ip.page.URL, opts.Scope) {
					stats.OutOfScope++
				}
			}
		}

	default:
		byQuery := make(map[string][]models.Link, len(queries))
		for _, l := range links {
			byQuery[l.Query.Text] = append(byQuery[l.Query.Text], l)
		}

		missed := map[string]bool{}
		for _, q := range queries {
			nq := Normalize(q.Text)
			seen := map[string]bool{}
			for _, l := range byQuery[q.Text] {
				key := common.CanonicalURL(l.URL)
				if seen[key] {
					continue
				}
				seen[key] = true

				ip, ok := pages.byKey[key]
				if !ok {
					stats.JoinMisses++
					if !missed[l.URL] {
						missed[l.URL] = true
						stats.MissedURLs = append(stats.MissedURLs, l.URL)
					}
					continue
				}
				if !inScope(ip.page.URL, opts.Scope) {
					stats.OutOfScope++
					continue
				}
				rec := evaluate(l.Query, nq, ip, fields)
				rec.URL = l.URL
				records = append(records, rec)
			}
		}
	}

	return records, stats
}

// Wanted returns a predicate reporting whether Analyze could evaluate a page
// under opts: any in-scope page in broad mode, otherwise only pages some link
// points at. It lets callers skip live fetches for pages nothing will read.
func Wanted(links []models.Link, opts Options) func(models.Page) bool {
	if opts.Mode == models.JoinBroad {
		return func(p models.Page) bool { return inScope(p.URL, opts.Scope) }
	}
	linked := make(map[string]bool, len(links))
	for _, l := range links {
		linked[common.CanonicalURL(l.URL)] = true
	}
	return func(p models.Page) bool {
		return linked[common.CanonicalURL(p.URL)] && inScope(p.URL, opts.Scope)
	}
}

// Evaluate builds the coverage record for a single query and page.
func Evaluate(q models.Query, page models.Page, fields []models.FieldName) models.CoverageRecord {
	if len(fields) == 0 {
		fields = models.AllFields
	}
	ip := &indexedPage{page: page, segments: make(map[models.FieldName][]string, len(fields))}
	for _, f := range fields {
		ip.segments[f] = normalizeSegments(page.Fields[f])
	}
	return evaluate(q, Normalize(q.Text), ip, fields)
}

func evaluate(q models.Query, normalizedQuery string, ip *indexedPage, fields []models.FieldName) models.CoverageRecord {
	rec := models.CoverageRecord{
		Query:     q,
		URL:       ip.page.URL,
		FieldHits: make(map[models.FieldName]bool, len(fields)),
	}
	for _, f := range fields {
		hit := containsAny(ip.segments[f], normalizedQuery)
		rec.FieldHits[f] = hit
		if hit {
			rec.MatchedFieldCount++
		}
	}
	rec.CoverageScore = float64(rec.MatchedFieldCount) / float64(len(fields))
	return rec
}

func inScope(rawURL string, scope []string) bool {
	if len(scope) == 0 {
		return true
	}
	u := common.CanonicalURL(rawURL)
	for _, prefix := range scope {
		if prefix == "" {
			continue
		}
		if strings.HasPrefix(u, common.CanonicalURL(prefix)) || strings.HasPrefix(rawURL, prefix) {
			return true
		}
	}
	return false
}
