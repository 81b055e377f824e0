package help

const QuickstartYAML = `# query-coverage Quick Start

inputs:
  queries: "Search analytics export (Search Console): Query, Landing Page, Clicks, Impressions, Position"
  pages: "Site crawl export (Screaming Frog): Address, Title 1, Meta Description 1, H1-1, H2-1..H2-5, Post 1"

join_modes:
  per-url: "Each query is tested against the landing page it was reported for (default)"
  broad: "Every query is tested against every crawled page in scope"

fields:
  - title
  - meta_description
  - h1
  - h2
  - body

commands:
  basic_report: |
    query-coverage report --queries gsc.csv --pages crawl.csv > coverage.csv

  top_queries: |
    query-coverage report --queries gsc.csv --pages crawl.csv --top 10

  broad_scoped: |
    query-coverage report --queries gsc.csv --pages crawl.csv --join broad --scope "https://example.com/blog/"

  live_refresh: |
    query-coverage report --queries gsc.csv --pages crawl.csv --live --workers 8 --fetch-timeout 15s

  field_subset: |
    query-coverage report --queries gsc.csv --pages crawl.csv --fields title,h1

  sqlite_export: |
    query-coverage report --queries gsc.csv --pages crawl.csv --format sqlite --output coverage.db
    sqlite3 coverage.db "SELECT query, url, coverage_score FROM coverage_rows ORDER BY coverage_score"

  config_file: |
    query-coverage report --queries gsc.csv --pages crawl.csv --config coverage.yaml

config_example: |
  join: per-url
  fields: [title, meta_description, h1, h2, body]
  top: 25
  live: true
  workers: 4
  fetch_timeout: 10s
  run_timeout: 5m
  retries: 2
  format: json
  output: coverage.json

matching:
  - "Case-insensitive substring test after whitespace collapse"
  - "No stemming or fuzzy matching: 'buy shoes' does not match 'buying shoes'"
  - "H2-1, H2-2, ... are separate segments; a query never matches across two of them"

output_columns: "query, url, <one boolean per field>, matched_field_count, coverage_score, impressions, clicks, position"

summary:
  - "Printed as YAML to stderr unless --quiet; --summary-file writes it to disk (.json or .yaml)"
  - "Counts skipped rows, join misses, out-of-scope pages, live fetch fallbacks"

error_behavior:
  - "Live fetch failures fall back to crawl export content and are listed as warnings"
  - "Exit codes: 0=report written, 2=fatal (bad flags, unusable input, write failure)"
`
