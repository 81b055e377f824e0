package coverage

import (
	"github.com/dtnitsch/query-coverage/internal/common"
	"github.com/dtnitsch/query-coverage/models"
)

// Metrics aggregates a set of coverage records.
type Metrics struct {
	TotalQueries int `json:"total_queries" yaml:"total_queries"`
	// TotalURLs counts distinct pages by join key.
	TotalURLs int `json:"total_urls" yaml:"total_urls"`
	Records   int `json:"records" yaml:"records"`
	// FieldCoverage is the percentage of records with a hit in each field.
	FieldCoverage map[models.FieldName]float64 `json:"field_coverage" yaml:"field_coverage"`
	// OverallScore is the mean of the field coverage percentages.
	OverallScore float64 `json:"overall_score" yaml:"overall_score"`
	// Uncovered counts records with no hit in any field.
	Uncovered int `json:"uncovered" yaml:"uncovered"`
}

// Summarize computes aggregate metrics over records for the given fields.
func Summarize(records []models.CoverageRecord, fields []models.FieldName) Metrics {
	if len(fields) == 0 {
		fields = models.AllFields
	}

	m := Metrics{
		Records:       len(records),
		FieldCoverage: make(map[models.FieldName]float64, len(fields)),
	}
	if len(records) == 0 {
		for _, f := range fields {
			m.FieldCoverage[f] = 0
		}
		return m
	}

	queries := map[string]bool{}
	urls := map[string]bool{}
	hits := make(map[models.FieldName]int, len(fields))
	for _, r := range records {
		queries[r.Query.Text] = true
		urls[common.CanonicalURL(r.URL)] = true
		if r.MatchedFieldCount == 0 {
			m.Uncovered++
		}
		for _, f := range fields {
			if r.FieldHits[f] {
				hits[f]++
			}
		}
	}
	m.TotalQueries = len(queries)
	m.TotalURLs = len(urls)

	var sum float64
	for _, f := range fields {
		pct := float64(hits[f]) / float64(len(records)) * 100
		m.FieldCoverage[f] = pct
		sum += pct
	}
	m.OverallScore = sum / float64(len(fields))
	return m
}
