package models

// Warning kinds, matching the fetch pipeline's error types.
const (
	WarnFetchError = "fetch_error"
	WarnTimeout    = "timeout"
	WarnParseError = "parse_error"
	WarnInvalidURL = "invalid_url"
)

// Warning is a non-fatal problem tied to a single URL.
type Warning struct {
	URL     string `json:"url" yaml:"url"`
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

// LoadStats counts rows the loader dropped from one input table.
type LoadStats struct {
	Rows    int `json:"rows" yaml:"rows"`
	Skipped int `json:"skipped" yaml:"skipped"`
	// Unlinked counts query rows kept without a landing page.
	Unlinked int `json:"unlinked,omitempty" yaml:"unlinked,omitempty"`
}

// AnalyzeStats counts pairs the analyzer could not evaluate.
type AnalyzeStats struct {
	JoinMisses int      `json:"join_misses" yaml:"join_misses"`
	MissedURLs []string `json:"missed_urls,omitempty" yaml:"missed_urls,omitempty"`
	OutOfScope int      `json:"out_of_scope" yaml:"out_of_scope"`
}
