package loader

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dtnitsch/query-coverage/models"
)

// Column roles.
const (
	roleQuery       = "query"
	roleURL         = "url"
	roleImpressions = "impressions"
	roleClicks      = "clicks"
	rolePosition    = "position"
)

var queryAliases = map[string]string{
	"query":          roleQuery,
	"queries":        roleQuery,
	"top queries":    roleQuery,
	"search query":   roleQuery,
	"search queries": roleQuery,
	"keyword":        roleQuery,
	"search term":    roleQuery,

	"landing page":  roleURL,
	"landing pages": roleURL,
	"page":          roleURL,
	"top pages":     roleURL,
	"url":           roleURL,
	"address":       roleURL,

	"impressions": roleImpressions,
	"impr":        roleImpressions,
	"impr.":       roleImpressions,

	"clicks": roleClicks,

	"position":         rolePosition,
	"average position": rolePosition,
	"avg position":     rolePosition,
	"avg. position":    rolePosition,
}

var pageURLAliases = map[string]bool{
	"address":  true,
	"url":      true,
	"page":     true,
	"page url": true,
}

var pageFieldAliases = map[string]models.FieldName{
	"title":      models.FieldTitle,
	"page title": models.FieldTitle,
	"title tag":  models.FieldTitle,

	"meta description": models.FieldMetaDescription,
	"description":      models.FieldMetaDescription,

	"h1": models.FieldH1,
	"h2": models.FieldH2,

	"post":           models.FieldBody,
	"body":           models.FieldBody,
	"body text":      models.FieldBody,
	"content":        models.FieldBody,
	"main content":   models.FieldBody,
	"page content":   models.FieldBody,
	"extracted text": models.FieldBody,
	"text":           models.FieldBody,
}

var numberedSuffix = regexp.MustCompile(`^(.+?)[\s\-_]+\d+$`)

// normalizeHeader folds a header cell for alias lookup.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}

// lookupAlias tries the header as written, then without a numbered suffix
// ("H2-3", "Title 1").
func lookupAlias[V any](aliases map[string]V, header string) (V, bool) {
	key := normalizeHeader(header)
	if v, ok := aliases[key]; ok {
		return v, true
	}
	if m := numberedSuffix.FindStringSubmatch(key); m != nil {
		if v, ok := aliases[m[1]]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// parseMetric parses a metric cell leniently: thousands separators and a
// trailing percent sign are ignored, anything else unparsable is absent.
func parseMetric(s string) *float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
