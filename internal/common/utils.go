package common

import (
	"net/url"
	"regexp"
	"strings"
)

var markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

// SanitizeURL performs basic cleanup on URLs to handle common copy-paste issues.
// Removes edge whitespace and surrounding quotes/brackets, and extracts the
// target of a markdown link.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// "[click here](https://example.com)" -> "https://example.com"
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	for _, pair := range [][2]string{{"<", ">"}, {"\"", "\""}, {"'", "'"}, {"(", ")"}} {
		if strings.HasPrefix(cleaned, pair[0]) && strings.HasSuffix(cleaned, pair[1]) && len(cleaned) >= 2 {
			cleaned = cleaned[1 : len(cleaned)-1]
		}
	}

	return strings.TrimSpace(cleaned)
}

// CanonicalURL returns the join key for a URL: sanitized, fragment removed,
// scheme and host lowercased, default ports dropped, and an empty path
// written as "/". Path and query are left as-is. Unparsable input is returned
// sanitized.
func CanonicalURL(rawURL string) string {
	cleaned := SanitizeURL(rawURL)
	parsed, err := url.Parse(cleaned)
	if err != nil || parsed.Host == "" {
		return cleaned
	}

	parsed.Fragment = ""
	parsed.RawFragment = ""
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	host := strings.ToLower(parsed.Host)
	switch {
	case parsed.Scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case parsed.Scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}
	parsed.Host = host
	if parsed.Path == "" && parsed.RawPath == "" {
		parsed.Path = "/"
	}
	return parsed.String()
}
