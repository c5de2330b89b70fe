package state

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		t.Fatalf("failed to init schema: %v", err)
	}

	return db
}

func TestGetSettings_Empty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s, err := getSettings(db)
	if err != nil {
		t.Fatalf("getSettings failed: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil settings on empty db, got %+v", s)
	}
}

func TestSaveAndGetSettings(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	before := time.Now().Add(-time.Second)
	if err := saveSettings(db, Settings{ClassTime: 2700, RestTime: 600, Volume: 0.4}); err != nil {
		t.Fatalf("saveSettings failed: %v", err)
	}

	s, err := getSettings(db)
	if err != nil {
		t.Fatalf("getSettings failed: %v", err)
	}
	if s == nil {
		t.Fatal("expected settings, got nil")
	}
	if s.ClassTime != 2700 {
		t.Errorf("ClassTime = %d, want 2700", s.ClassTime)
	}
	if s.RestTime != 600 {
		t.Errorf("RestTime = %d, want 600", s.RestTime)
	}
	if s.Volume != 0.4 {
		t.Errorf("Volume = %f, want 0.4", s.Volume)
	}
	if s.UpdatedAt.Before(before) {
		t.Errorf("UpdatedAt = %v, want after %v", s.UpdatedAt, before)
	}
}

func TestSaveSettings_Overwrites(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := saveSettings(db, Settings{ClassTime: 100, RestTime: 10, Volume: 1}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := saveSettings(db, Settings{ClassTime: 200, RestTime: 20, Volume: 0}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM settings`).Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("settings rows = %d, want 1", count)
	}

	s, err := getSettings(db)
	if err != nil {
		t.Fatalf("getSettings failed: %v", err)
	}
	if s.ClassTime != 200 || s.RestTime != 20 || s.Volume != 0 {
		t.Errorf("settings = %+v, want class 200 rest 20 volume 0", s)
	}
}

func TestInitSchema_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := initSchema(db); err != nil {
		t.Fatalf("second initSchema failed: %v", err)
	}

	var version int
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&version); err != nil {
		t.Fatalf("version query failed: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("schema version = %d, want %d", version, currentSchemaVersion)
	}
}

func TestManager_ScheduleSaveFlushedOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "classbell.db")

	m, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	m.ScheduleSave(Settings{ClassTime: 1, RestTime: 1, Volume: 1})
	m.ScheduleSave(Settings{ClassTime: 3000, RestTime: 900, Volume: 0.7})
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m, err = OpenPath(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer m.Close()

	s, err := m.Settings()
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if s == nil || s.ClassTime != 3000 || s.RestTime != 900 || s.Volume != 0.7 {
		t.Errorf("Settings() = %+v, want the last scheduled save", s)
	}
}

func TestManager_SaveSettingsCancelsScheduled(t *testing.T) {
	m, err := OpenPath(":memory:")
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	defer m.Close()

	m.ScheduleSave(Settings{ClassTime: 1, RestTime: 1, Volume: 1})
	if err := m.SaveSettings(Settings{ClassTime: 5400, RestTime: 1200, Volume: 0.9}); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	time.Sleep(2 * saveDebounce)

	s, err := m.Settings()
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if s == nil || s.ClassTime != 5400 {
		t.Errorf("Settings() = %+v, want the explicit save to win", s)
	}
}
