package models

import "strings"

// FieldName identifies one of the on-page text fields a query is searched in.
type FieldName string

const (
	FieldTitle           FieldName = "title"
	FieldMetaDescription FieldName = "meta_description"
	FieldH1              FieldName = "h1"
	FieldH2              FieldName = "h2"
	FieldBody            FieldName = "body"
)

// AllFields lists every field in report column order.
var AllFields = []FieldName{FieldTitle, FieldMetaDescription, FieldH1, FieldH2, FieldBody}

// SegmentSeparator joins independent values of one field (H2-1, H2-2, ...).
// A query never matches across a separator.
const SegmentSeparator = "\x1f"

// ParseFieldName resolves a field name as written in config or flags.
func ParseFieldName(s string) (FieldName, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	switch key {
	case "title":
		return FieldTitle, true
	case "meta_description", "meta", "description":
		return FieldMetaDescription, true
	case "h1":
		return FieldH1, true
	case "h2":
		return FieldH2, true
	case "body", "content":
		return FieldBody, true
	}
	return "", false
}

// Fields maps every tracked field to its text. Use NewFields so that every
// field is present.
type Fields map[FieldName]string

// NewFields returns Fields with all five slots set to the empty string.
func NewFields() Fields {
	f := make(Fields, len(AllFields))
	for _, name := range AllFields {
		f[name] = ""
	}
	return f
}

// Clone returns a copy that always carries all five slots.
func (f Fields) Clone() Fields {
	out := NewFields()
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Segments splits a field into its independent values, skipping empty ones.
func (f Fields) Segments(name FieldName) []string {
	raw := f[name]
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, SegmentSeparator)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Page is one crawled URL with its resolved text fields.
type Page struct {
	URL    string `json:"url" yaml:"url"`
	Fields Fields `json:"fields" yaml:"fields"`

	// Language is the ISO-639-1 code of the body text, when detection ran.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}

// NewPage returns a page with every field slot present.
func NewPage(url string) Page {
	return Page{URL: url, Fields: NewFields()}
}
