package models

import (
	"fmt"
	"strings"
)

// JoinMode selects which (query, page) pairs are evaluated.
type JoinMode int

const (
	// JoinPerURL evaluates each query against the landing page it was reported for.
	JoinPerURL JoinMode = iota
	// JoinBroad evaluates every query against every in-scope crawled page.
	JoinBroad
)

func (m JoinMode) String() string {
	switch m {
	case JoinPerURL:
		return "per-url"
	case JoinBroad:
		return "broad"
	}
	return fmt.Sprintf("JoinMode(%d)", int(m))
}

// ParseJoinMode resolves a join mode flag value.
func ParseJoinMode(s string) (JoinMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "per-url", "per_url", "url":
		return JoinPerURL, nil
	case "broad", "all":
		return JoinBroad, nil
	}
	return 0, fmt.Errorf("unknown join mode %q (want per-url or broad)", s)
}

func (m JoinMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *JoinMode) UnmarshalText(b []byte) error {
	parsed, err := ParseJoinMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
