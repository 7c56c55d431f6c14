package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs table: one row per scan invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    start_url TEXT NOT NULL,
    base_language TEXT NOT NULL,
    target_languages TEXT NOT NULL,   -- comma-separated, config order
    max_pages INTEGER NOT NULL,
    pages_crawled INTEGER DEFAULT 0,
    started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    finished_at TIMESTAMP
);

-- Pages table: one row per crawled page in a run
CREATE TABLE IF NOT EXISTS pages (
    page_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    url TEXT NOT NULL,
    detected_language TEXT,
    item_count INTEGER DEFAULT 0,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_pages_run ON pages(run_id);

-- Issues table: classified localization defects
CREATE TABLE IF NOT EXISTS issues (
    issue_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    url TEXT NOT NULL,
    issue_type TEXT NOT NULL,         -- broken_placeholder, fallback_text, mixed_language, suspected_mixed
    severity TEXT NOT NULL,
    text TEXT NOT NULL,
    key TEXT,
    context TEXT,
    details TEXT,
    suggestions TEXT,                 -- JSON object: {"es": "...", "hi": "..."}
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_issues_run ON issues(run_id);
CREATE INDEX IF NOT EXISTS idx_issues_type ON issues(issue_type);

-- Scores table: one row per (run, target language)
CREATE TABLE IF NOT EXISTS scores (
    score_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    language TEXT NOT NULL,
    score INTEGER NOT NULL,
    missing INTEGER DEFAULT 0,
    fallbacks INTEGER DEFAULT 0,
    mixed_language INTEGER DEFAULT 0,
    broken_placeholders INTEGER DEFAULT 0,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, language)
);

CREATE INDEX IF NOT EXISTS idx_scores_run ON scores(run_id);
`
