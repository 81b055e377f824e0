package models

// Query is one search query from the search-analytics export. Metrics are
// nil when the column is absent or the cell could not be parsed.
type Query struct {
	Text        string   `json:"text" yaml:"text"`
	Impressions *float64 `json:"impressions,omitempty" yaml:"impressions,omitempty"`
	Clicks      *float64 `json:"clicks,omitempty" yaml:"clicks,omitempty"`
	Position    *float64 `json:"position,omitempty" yaml:"position,omitempty"`
}

// Link associates a query row with the landing page it was reported for.
// The link carries the row's own metrics.
type Link struct {
	Query Query  `json:"query" yaml:"query"`
	URL   string `json:"url" yaml:"url"`
}
