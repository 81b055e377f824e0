package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dtnitsch/query-coverage/models"
	"github.com/dtnitsch/query-coverage/pkg/db"
	"gopkg.in/yaml.v3"
)

// Write renders the table (and, for json/yaml, the summary) to w.
// The sqlite format needs a file path; use WriteSQLite.
func Write(w io.Writer, format string, t Table, s Summary) error {
	switch format {
	case models.FormatCSV, "":
		return WriteDelimited(w, t, ',')
	case models.FormatTSV:
		return WriteDelimited(w, t, '\t')
	case models.FormatJSON:
		return WriteJSON(w, t, s)
	case models.FormatYAML:
		return WriteYAML(w, t, s)
	}
	return fmt.Errorf("format %q cannot be written to a stream", format)
}

// WriteDelimited writes the header and rows as a delimited file.
func WriteDelimited(w io.Writer, t Table, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	for _, r := range t.Rows {
		if err := cw.Write(t.Strings(r)); err != nil {
			return fmt.Errorf("error writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// rowValues returns typed cell values in column order.
func (t Table) rowValues(r Row) []any {
	vals := make([]any, 0, len(t.Fields)+7)
	vals = append(vals, r.Query, r.URL)
	for _, hit := range r.Hits {
		vals = append(vals, hit)
	}
	return append(vals, r.MatchedFieldCount, r.CoverageScore, r.Impressions, r.Clicks, r.Position)
}

// WriteJSON writes {"summary": ..., "rows": [...]} with row keys in column order.
func WriteJSON(w io.Writer, t Table, s Summary) error {
	cols := t.Columns()

	var rows bytes.Buffer
	rows.WriteByte('[')
	for i, r := range t.Rows {
		if i > 0 {
			rows.WriteByte(',')
		}
		rows.WriteByte('{')
		for j, v := range t.rowValues(r) {
			if j > 0 {
				rows.WriteByte(',')
			}
			key, _ := json.Marshal(cols[j])
			val, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("error marshalling %s: %w", cols[j], err)
			}
			rows.Write(key)
			rows.WriteByte(':')
			rows.Write(val)
		}
		rows.WriteByte('}')
	}
	rows.WriteByte(']')

	doc := struct {
		Summary Summary         `json:"summary"`
		Rows    json.RawMessage `json:"rows"`
	}{Summary: s, Rows: rows.Bytes()}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling report: %w", err)
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

// WriteYAML writes a summary mapping followed by an ordered row sequence.
func WriteYAML(w io.Writer, t Table, s Summary) error {
	cols := t.Columns()

	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, r := range t.Rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for j, v := range t.rowValues(r) {
			var val yaml.Node
			if err := val.Encode(v); err != nil {
				return fmt.Errorf("error encoding %s: %w", cols[j], err)
			}
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: cols[j]}, &val)
		}
		seq.Content = append(seq.Content, m)
	}

	var summary yaml.Node
	if err := summary.Encode(s); err != nil {
		return fmt.Errorf("error encoding summary: %w", err)
	}
	doc := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: "summary"}, &summary,
		{Kind: yaml.ScalarNode, Value: "rows"}, seq,
	}}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("error writing yaml: %w", err)
	}
	return enc.Close()
}

// WriteSQLite appends the run and its rows to the SQLite file at path.
func WriteSQLite(path string, t Table, s Summary) error {
	database, err := db.Open(path)
	if err != nil {
		return err
	}
	defer database.Close()

	summaryJSON, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("error marshalling summary: %w", err)
	}

	fieldNames := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		fieldNames[i] = string(f)
	}

	run := db.Run{
		RunID:            s.RunID,
		GeneratedAt:      s.GeneratedAt,
		JoinMode:         s.JoinMode,
		Live:             s.Live,
		Fields:           strings.Join(fieldNames, ","),
		Records:          s.Records,
		SkippedQueryRows: s.SkippedQueryRows,
		SkippedPageRows:  s.SkippedPageRows,
		JoinMisses:       s.JoinMisses,
		FetchFailures:    s.FetchFailures,
		OverallScore:     s.OverallScore,
		SummaryJSON:      string(summaryJSON),
	}

	rows := make([]db.CoverageRow, len(t.Rows))
	for i, r := range t.Rows {
		row := db.CoverageRow{
			Query:             r.Query,
			URL:               r.URL,
			MatchedFieldCount: r.MatchedFieldCount,
			CoverageScore:     r.CoverageScore,
			Impressions:       r.Impressions,
			Clicks:            r.Clicks,
			Position:          r.Position,
		}
		for j, f := range t.Fields {
			hit := r.Hits[j]
			switch f {
			case models.FieldTitle:
				row.Title = &hit
			case models.FieldMetaDescription:
				row.MetaDescription = &hit
			case models.FieldH1:
				row.H1 = &hit
			case models.FieldH2:
				row.H2 = &hit
			case models.FieldBody:
				row.Body = &hit
			}
		}
		rows[i] = row
	}

	if err := database.InsertReport(run, rows); err != nil {
		return fmt.Errorf("error writing report to %s: %w", database.Path(), err)
	}
	return nil
}
