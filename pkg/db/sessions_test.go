package db

import (
	"testing"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestInsertSession_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	sites := []SiteOutcome{
		{URL: "https://a.example", Bucket: "Product", RecordCount: 2},
		{URL: "https://b.example", Bucket: "CrawlError", RecordCount: 1, ErrorMessage: "status code: 500"},
	}

	sessionID, err := db.InsertSession("en-US", 2, 3, 2, "results", sites)
	if err != nil {
		t.Fatalf("InsertSession() failed: %v", err)
	}
	if sessionID == 0 {
		t.Fatal("InsertSession() returned 0 id")
	}

	session, err := db.GetSessionByID(sessionID)
	if err != nil {
		t.Fatalf("GetSessionByID() failed: %v", err)
	}
	if session.Locale != "en-US" || session.URLCount != 2 || session.RecordCount != 3 || session.SchemaFoundCount != 2 {
		t.Errorf("session = %+v", session)
	}

	got, err := db.GetSessionSites(sessionID)
	if err != nil {
		t.Fatalf("GetSessionSites() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d site outcomes, want 2", len(got))
	}
	if got[0].URL != "https://a.example" || got[0].Bucket != "Product" || got[0].RecordCount != 2 {
		t.Errorf("site 0 = %+v", got[0])
	}
	if got[1].ErrorMessage != "status code: 500" {
		t.Errorf("site 1 error = %q", got[1].ErrorMessage)
	}
}

func TestListSessions(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for i := 0; i < 3; i++ {
		if _, err := db.InsertSession("en-US", 1, 1, 1, "results", nil); err != nil {
			t.Fatalf("InsertSession() failed: %v", err)
		}
	}

	sessions, err := db.ListSessions(2)
	if err != nil {
		t.Fatalf("ListSessions() failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	// Newest first.
	if sessions[0].SessionID <= sessions[1].SessionID {
		t.Errorf("sessions not ordered newest first: %d, %d", sessions[0].SessionID, sessions[1].SessionID)
	}
}

func TestGetSessionByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.GetSessionByID(999); err == nil {
		t.Error("GetSessionByID(999) succeeded, want error")
	}
}
