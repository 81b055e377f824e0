package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- One row per report run
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    generated_at TIMESTAMP NOT NULL,
    join_mode TEXT NOT NULL,
    live BOOLEAN NOT NULL DEFAULT 0,
    fields TEXT NOT NULL,          -- comma-separated tracked fields
    records INTEGER NOT NULL DEFAULT 0,
    skipped_query_rows INTEGER NOT NULL DEFAULT 0,
    skipped_page_rows INTEGER NOT NULL DEFAULT 0,
    join_misses INTEGER NOT NULL DEFAULT 0,
    fetch_failures INTEGER NOT NULL DEFAULT 0,
    overall_score REAL NOT NULL DEFAULT 0,
    summary_json TEXT              -- full run summary
);

-- Report rows; field columns are NULL when the field was not tracked
CREATE TABLE IF NOT EXISTS coverage_rows (
    row_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    position_in_report INTEGER NOT NULL,
    query TEXT NOT NULL,
    url TEXT NOT NULL,
    title BOOLEAN,
    meta_description BOOLEAN,
    h1 BOOLEAN,
    h2 BOOLEAN,
    body BOOLEAN,
    matched_field_count INTEGER NOT NULL,
    coverage_score REAL NOT NULL,
    impressions REAL,
    clicks REAL,
    position REAL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_coverage_rows_run ON coverage_rows(run_id, position_in_report);
CREATE INDEX IF NOT EXISTS idx_coverage_rows_query ON coverage_rows(query);
CREATE INDEX IF NOT EXISTS idx_coverage_rows_url ON coverage_rows(url);
`
