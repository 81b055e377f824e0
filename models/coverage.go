package models

// CoverageRecord is the presence result for one (query, page) pair.
type CoverageRecord struct {
	Query             Query              `json:"query" yaml:"query"`
	URL               string             `json:"url" yaml:"url"`
	FieldHits         map[FieldName]bool `json:"field_hits" yaml:"field_hits"`
	MatchedFieldCount int                `json:"matched_field_count" yaml:"matched_field_count"`
	CoverageScore     float64            `json:"coverage_score" yaml:"coverage_score"`
}
