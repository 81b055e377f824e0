package coverage

import (
	"strings"
	"unicode"

	"github.com/dtnitsch/query-coverage/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize prepares text for matching: control characters become spaces,
// whitespace is trimmed and collapsed, and letters are lowercased. Lowercasing
// rather than case folding keeps "ß" distinct from "ss" and ligatures intact.
func Normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return cases.Lower(language.Und).String(strings.Join(strings.Fields(s), " "))
}

// normalizeSegments normalizes each value of a multi-valued field.
func normalizeSegments(field string) []string {
	if field == "" {
		return nil
	}
	parts := strings.Split(field, models.SegmentSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if n := Normalize(p); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Matches reports whether query occurs in field as a case-insensitive
// substring after normalization. An empty query never matches, and a match
// never spans two values of a multi-valued field.
func Matches(query, field string) bool {
	q := Normalize(query)
	if q == "" {
		return false
	}
	return containsAny(normalizeSegments(field), q)
}

func containsAny(segments []string, normalizedQuery string) bool {
	if normalizedQuery == "" {
		return false
	}
	for _, s := range segments {
		if strings.Contains(s, normalizedQuery) {
			return true
		}
	}
	return false
}
