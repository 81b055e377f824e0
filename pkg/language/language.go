// Package language tags pages with the language of their text.
package language

import (
	"strings"

	"github.com/dtnitsch/query-coverage/models"
	"github.com/pemistahl/lingua-go"
)

// Unknown is reported when a page has too little text to classify.
const Unknown = "unknown"

// minTextLength is the shortest text worth classifying.
const minTextLength = 20

var supported = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Dutch,
}

type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector builds a detector over the common western European languages.
// Building loads language models, so keep one per run.
func NewDetector() *Detector {
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(supported...).
		WithMinimumRelativeDistance(0.1).
		Build()
	return &Detector{detector: d}
}

// Detect returns the lowercase ISO 639-1 code for text, or Unknown.
func (d *Detector) Detect(text string) string {
	text = strings.TrimSpace(text)
	if len(text) < minTextLength {
		return Unknown
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return Unknown
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

// Tag sets Language on each page from its body text, falling back to the
// title and headings when the body is empty.
func (d *Detector) Tag(pages []models.Page) {
	for i := range pages {
		pages[i].Language = d.Detect(sampleText(pages[i]))
	}
}

func sampleText(p models.Page) string {
	if body := p.Fields.Segments(models.FieldBody); len(body) > 0 {
		return strings.Join(body, " ")
	}
	var parts []string
	for _, f := range []models.FieldName{models.FieldTitle, models.FieldMetaDescription, models.FieldH1, models.FieldH2} {
		parts = append(parts, p.Fields.Segments(f)...)
	}
	return strings.Join(parts, " ")
}

// Distribution counts pages per language tag. Untagged pages are skipped.
func Distribution(pages []models.Page) map[string]int {
	out := map[string]int{}
	for _, p := range pages {
		if p.Language == "" {
			continue
		}
		out[p.Language]++
	}
	return out
}
