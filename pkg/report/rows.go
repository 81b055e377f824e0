// Package report flattens coverage records into the output table and writes
// it in the supported formats.
package report

import (
	"strconv"

	"github.com/dtnitsch/query-coverage/models"
)

// Row is one flattened coverage record. Hits follow the table's field order.
type Row struct {
	Query             string
	URL               string
	Hits              []bool
	MatchedFieldCount int
	CoverageScore     float64
	Impressions       *float64
	Clicks            *float64
	Position          *float64
}

// Table is the report: fixed columns around one boolean column per tracked
// field.
type Table struct {
	Fields []models.FieldName
	Rows   []Row
}

// ToRows maps records to rows, keeping record order. Fields are put in
// report column order (title, meta_description, h1, h2, body).
func ToRows(records []models.CoverageRecord, fields []models.FieldName) Table {
	if len(fields) == 0 {
		fields = models.AllFields
	}
	t := Table{Fields: models.OrderedFields(fields), Rows: make([]Row, 0, len(records))}
	for _, rec := range records {
		row := Row{
			Query:             rec.Query.Text,
			URL:               rec.URL,
			Hits:              make([]bool, len(t.Fields)),
			MatchedFieldCount: rec.MatchedFieldCount,
			CoverageScore:     rec.CoverageScore,
			Impressions:       rec.Query.Impressions,
			Clicks:            rec.Query.Clicks,
			Position:          rec.Query.Position,
		}
		for i, f := range t.Fields {
			row.Hits[i] = rec.FieldHits[f]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Columns returns the header in output order.
func (t Table) Columns() []string {
	cols := make([]string, 0, len(t.Fields)+7)
	cols = append(cols, "query", "url")
	for _, f := range t.Fields {
		cols = append(cols, string(f))
	}
	return append(cols, "matched_field_count", "coverage_score", "impressions", "clicks", "position")
}

// Strings renders a row as cells matching Columns. Absent metrics are empty.
func (t Table) Strings(r Row) []string {
	out := make([]string, 0, len(t.Fields)+7)
	out = append(out, r.Query, r.URL)
	for _, hit := range r.Hits {
		out = append(out, strconv.FormatBool(hit))
	}
	return append(out,
		strconv.Itoa(r.MatchedFieldCount),
		formatFloat(r.CoverageScore),
		formatMetric(r.Impressions),
		formatMetric(r.Clicks),
		formatMetric(r.Position),
	)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatMetric(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
