// Package loader turns search-analytics and crawl exports into queries and pages.
package loader

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dtnitsch/query-coverage/models"
)

var (
	ErrEmptyInput    = errors.New("file is empty")
	ErrMissingColumn = errors.New("missing required column")
	ErrNoUsableRows  = errors.New("no usable rows")
)

// Input names used in InputError.
const (
	InputQueries = "queries"
	InputPages   = "pages"
)

// InputError reports which input table could not be used.
type InputError struct {
	Input string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s input: %v", e.Input, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// QuerySet is the loaded search-analytics export.
type QuerySet struct {
	// Queries holds one entry per distinct query text, in first-seen order.
	Queries []models.Query
	// Links holds one entry per row that named a landing page.
	Links []models.Link
	// HasLandingPage is true when the export has a landing-page column.
	HasLandingPage bool
	Stats          models.LoadStats
}

// PageSet is the loaded crawl export. Page fields hold raw cell text; the
// content resolver normalizes them.
type PageSet struct {
	Pages []models.Page
	// Columns lists the content fields the export actually carried.
	Columns []models.FieldName
	Stats   models.LoadStats
}

// LoadQueries reads query rows. Rows without query text are skipped; the
// call fails only when no row is usable. A row with a blank landing page
// still contributes its query but no link, and is counted as unlinked.
func LoadQueries(t *Table) (QuerySet, error) {
	var set QuerySet
	if t == nil || len(t.Header) == 0 {
		return set, &InputError{Input: InputQueries, Err: ErrEmptyInput}
	}

	cols := map[string]int{}
	for i, h := range t.Header {
		role, ok := lookupAlias(queryAliases, h)
		if !ok {
			continue
		}
		if _, dup := cols[role]; !dup {
			cols[role] = i
		}
	}

	queryIdx, ok := cols[roleQuery]
	if !ok {
		return set, &InputError{Input: InputQueries, Err: fmt.Errorf("%w: query (looked for %s)", ErrMissingColumn, aliasList(queryAliases, roleQuery))}
	}
	urlIdx, hasURL := cols[roleURL]
	set.HasLandingPage = hasURL

	metricIdx := func(role string) int {
		if i, ok := cols[role]; ok {
			return i
		}
		return -1
	}
	impIdx, clickIdx, posIdx := metricIdx(roleImpressions), metricIdx(roleClicks), metricIdx(rolePosition)

	seen := map[string]bool{}
	for _, row := range t.Rows {
		set.Stats.Rows++
		text := cell(row, queryIdx)
		if text == "" {
			set.Stats.Skipped++
			continue
		}

		q := models.Query{
			Text:        text,
			Impressions: parseMetric(cell(row, impIdx)),
			Clicks:      parseMetric(cell(row, clickIdx)),
			Position:    parseMetric(cell(row, posIdx)),
		}

		if hasURL {
			if u := cell(row, urlIdx); u != "" {
				set.Links = append(set.Links, models.Link{Query: q, URL: u})
			} else {
				set.Stats.Unlinked++
			}
		}

		if !seen[text] {
			seen[text] = true
			set.Queries = append(set.Queries, q)
		}
	}

	if len(set.Queries) == 0 {
		return set, &InputError{Input: InputQueries, Err: fmt.Errorf("%w: %d of %d rows had no query text", ErrNoUsableRows, set.Stats.Skipped, set.Stats.Rows)}
	}
	return set, nil
}

// LoadPages reads crawl rows. Rows without a URL are skipped, as are repeat
// rows for a URL already loaded.
func LoadPages(t *Table) (PageSet, error) {
	var set PageSet
	if t == nil || len(t.Header) == 0 {
		return set, &InputError{Input: InputPages, Err: ErrEmptyInput}
	}

	urlIdx := -1
	fieldCols := map[models.FieldName][]int{}
	for i, h := range t.Header {
		if _, ok := lookupAlias(pageURLAliases, h); ok {
			if urlIdx < 0 {
				urlIdx = i
			}
			continue
		}
		if f, ok := lookupAlias(pageFieldAliases, h); ok {
			fieldCols[f] = append(fieldCols[f], i)
		}
	}
	if urlIdx < 0 {
		return set, &InputError{Input: InputPages, Err: fmt.Errorf("%w: url (looked for %s)", ErrMissingColumn, sortedKeys(pageURLAliases))}
	}
	for _, f := range models.AllFields {
		if len(fieldCols[f]) > 0 {
			set.Columns = append(set.Columns, f)
		}
	}

	seen := map[string]bool{}
	for _, row := range t.Rows {
		set.Stats.Rows++
		u := cell(row, urlIdx)
		if u == "" || seen[u] {
			set.Stats.Skipped++
			continue
		}
		seen[u] = true

		page := models.NewPage(u)
		for f, idxs := range fieldCols {
			var parts []string
			for _, idx := range idxs {
				if v := cell(row, idx); v != "" {
					parts = append(parts, v)
				}
			}
			page.Fields[f] = strings.Join(parts, models.SegmentSeparator)
		}
		set.Pages = append(set.Pages, page)
	}

	if len(set.Pages) == 0 {
		return set, &InputError{Input: InputPages, Err: fmt.Errorf("%w: %d of %d rows had no url", ErrNoUsableRows, set.Stats.Skipped, set.Stats.Rows)}
	}
	return set, nil
}

// SelectTop keeps the n distinct queries ranked highest by clicks, then
// impressions, over all rows. Kept queries and links stay in input order.
// n <= 0 keeps everything.
func SelectTop(set QuerySet, n int) QuerySet {
	if n <= 0 || n >= len(set.Queries) {
		return set
	}

	// rank every row; queries whose rows had no landing page rank by the
	// metrics of their first row
	linked := make(map[string]bool, len(set.Links))
	ranked := append([]models.Link(nil), set.Links...)
	for _, l := range set.Links {
		linked[l.Query.Text] = true
	}
	for _, q := range set.Queries {
		if !linked[q.Text] {
			ranked = append(ranked, models.Link{Query: q})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		ci, cj := metricOrMin(ranked[i].Query.Clicks), metricOrMin(ranked[j].Query.Clicks)
		if ci != cj {
			return ci > cj
		}
		return metricOrMin(ranked[i].Query.Impressions) > metricOrMin(ranked[j].Query.Impressions)
	})

	keep := map[string]bool{}
	for _, r := range ranked {
		if len(keep) == n {
			break
		}
		keep[r.Query.Text] = true
	}

	out := QuerySet{HasLandingPage: set.HasLandingPage, Stats: set.Stats}
	for _, q := range set.Queries {
		if keep[q.Text] {
			out.Queries = append(out.Queries, q)
		}
	}
	for _, l := range set.Links {
		if keep[l.Query.Text] {
			out.Links = append(out.Links, l)
		}
	}
	return out
}

func metricOrMin(v *float64) float64 {
	if v == nil {
		return -1
	}
	return *v
}

func aliasList(aliases map[string]string, role string) string {
	var names []string
	for k, v := range aliases {
		if v == role {
			names = append(names, fmt.Sprintf("%q", k))
		}
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func sortedKeys(m map[string]bool) string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, fmt.Sprintf("%q", k))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
