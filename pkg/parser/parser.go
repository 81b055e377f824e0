package parser

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/query-coverage/models"
	"github.com/go-shiori/go-readability"
)

// ErrNoContent is returned when a document yields none of the tracked fields.
var ErrNoContent = errors.New("document has no extractable content")

// boilerplate is stripped before falling back to raw body text.
const boilerplate = "script, style, noscript, iframe, template, nav, header, footer"

type Parser struct{}

// ExtractFields derives the tracked fields from a fetched document: the title
// tag, the meta description, the first h1, the first h2, and the readable body
// text. Body text comes from go-readability, falling back to the whole body
// minus boilerplate when readability finds no article.
func (p *Parser) ExtractFields(rawURL string, html []byte) (models.Fields, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	fields := models.NewFields()
	fields[models.FieldTitle] = NormalizeText(doc.Find("title").First().Text())
	fields[models.FieldMetaDescription] = NormalizeText(metaDescription(doc))
	fields[models.FieldH1] = NormalizeText(doc.Find("h1").First().Text())
	fields[models.FieldH2] = NormalizeText(doc.Find("h2").First().Text())

	body := readableText(rawURL, html)
	if body == "" {
		doc.Find(boilerplate).Remove()
		body = doc.Find("body").Text()
	}
	fields[models.FieldBody] = NormalizeText(body)

	for _, v := range fields {
		if v != "" {
			return fields, nil
		}
	}
	return nil, ErrNoContent
}

func metaDescription(doc *goquery.Document) string {
	var content string
	doc.Find("meta").EachWithBreak(func(i int, s *goquery.Selection) bool {
		name, _ := s.Attr("name")
		if !strings.EqualFold(strings.TrimSpace(name), "description") {
			return true
		}
		content, _ = s.Attr("content")
		return false
	})
	return content
}

func readableText(rawURL string, html []byte) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(html), parsedURL)
	if err != nil {
		return ""
	}
	return article.TextContent
}

// NormalizeText trims and collapses internal whitespace to single spaces.
func NormalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// NormalizeField normalizes each segment of a multi-valued field separately
// and drops segments that end up empty.
func NormalizeField(input string) string {
	if !strings.Contains(input, models.SegmentSeparator) {
		return NormalizeText(input)
	}
	parts := strings.Split(input, models.SegmentSeparator)
	out := parts[:0]
	for _, p := range parts {
		if n := NormalizeText(p); n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, models.SegmentSeparator)
}
