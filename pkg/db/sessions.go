package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Session is one completed crawl run.
type Session struct {
	SessionID        int64
	CreatedAt        time.Time
	Locale           string
	URLCount         int
	RecordCount      int
	SchemaFoundCount int
	OutputDir        string
}

// SiteOutcome is the per-(url, bucket) rollup stored with a session.
type SiteOutcome struct {
	URL          string
	Bucket       string
	RecordCount  int
	ErrorMessage string
}

// InsertSession records a finished run and its per-site outcomes in one
// transaction. Returns the new session id.
func (db *DB) InsertSession(locale string, urlCount, recordCount, schemaFoundCount int, outputDir string, sites []SiteOutcome) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO crawl_sessions (locale, url_count, record_count, schema_found_count, output_dir)
		VALUES (?, ?, ?, ?, ?)
	`, locale, urlCount, recordCount, schemaFoundCount, outputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to insert session: %w", err)
	}

	sessionID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get session id: %w", err)
	}

	for _, site := range sites {
		_, err := tx.Exec(`
			INSERT INTO session_sites (session_id, url, bucket, record_count, error_message)
			VALUES (?, ?, ?, ?, ?)
		`, sessionID, site.URL, site.Bucket, site.RecordCount, nullString(site.ErrorMessage))
		if err != nil {
			return 0, fmt.Errorf("failed to insert site outcome for %s: %w", site.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit session: %w", err)
	}
	return sessionID, nil
}

// ListSessions returns the most recent sessions, newest first.
func (db *DB) ListSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT session_id, created_at, locale, url_count, record_count, schema_found_count, output_dir
		FROM crawl_sessions
		ORDER BY session_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.SessionID, &s.CreatedAt, &s.Locale, &s.URLCount, &s.RecordCount, &s.SchemaFoundCount, &s.OutputDir); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// GetSessionByID returns one session.
func (db *DB) GetSessionByID(sessionID int64) (*Session, error) {
	var s Session
	err := db.QueryRow(`
		SELECT session_id, created_at, locale, url_count, record_count, schema_found_count, output_dir
		FROM crawl_sessions
		WHERE session_id = ?
	`, sessionID).Scan(&s.SessionID, &s.CreatedAt, &s.Locale, &s.URLCount, &s.RecordCount, &s.SchemaFoundCount, &s.OutputDir)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %d not found", sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// GetSessionSites returns a session's per-site outcomes in insertion order.
func (db *DB) GetSessionSites(sessionID int64) ([]SiteOutcome, error) {
	rows, err := db.Query(`
		SELECT url, bucket, record_count, COALESCE(error_message, '')
		FROM session_sites
		WHERE session_id = ?
		ORDER BY site_id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query session sites: %w", err)
	}
	defer rows.Close()

	var sites []SiteOutcome
	for rows.Next() {
		var site SiteOutcome
		if err := rows.Scan(&site.URL, &site.Bucket, &site.RecordCount, &site.ErrorMessage); err != nil {
			return nil, fmt.Errorf("failed to scan site outcome: %w", err)
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
