package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Crawl sessions: one row per completed run
CREATE TABLE IF NOT EXISTS crawl_sessions (
    session_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    locale TEXT NOT NULL,
    url_count INTEGER NOT NULL,
    record_count INTEGER NOT NULL,
    schema_found_count INTEGER NOT NULL,
    output_dir TEXT NOT NULL
);

-- Per-site outcomes within a session, one row per (url, bucket)
CREATE TABLE IF NOT EXISTS session_sites (
    site_id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id INTEGER NOT NULL,
    url TEXT NOT NULL,
    bucket TEXT NOT NULL,
    record_count INTEGER NOT NULL DEFAULT 1,
    error_message TEXT,
    FOREIGN KEY (session_id) REFERENCES crawl_sessions(session_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_sites_session ON session_sites(session_id);
CREATE INDEX IF NOT EXISTS idx_sites_bucket ON session_sites(bucket);
`
