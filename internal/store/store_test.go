package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_OpenAndMigrate(t *testing.T) {
	s := newTestStore(t)

	// The settings table must exist after migrations.
	var count int
	err := s.DB().QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'settings'`,
	).Scan(&count)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if count != 1 {
		t.Errorf("settings table count = %d, want 1", count)
	}
}

func TestSettings_GetSet(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	if _, err := settings.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := settings.Set(KeyControlPlugin, "keyboard"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := settings.Get(KeyControlPlugin)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "keyboard" {
		t.Errorf("Get() = %q, want keyboard", got)
	}

	// Set replaces existing values.
	if err := settings.Set(KeyControlPlugin, "system-control"); err != nil {
		t.Fatalf("Set() replace error = %v", err)
	}
	if got := settings.GetString(KeyControlPlugin, ""); got != "system-control" {
		t.Errorf("GetString() after replace = %q, want system-control", got)
	}
}

func TestSettings_TypedAccessors(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	// Missing keys fall back to defaults.
	if got := settings.GetInt(KeyMinDistance, 66); got != 66 {
		t.Errorf("GetInt(missing) = %d, want default 66", got)
	}
	if got := settings.GetBool(KeyEnabled, true); got != true {
		t.Errorf("GetBool(missing) = %v, want default true", got)
	}

	if err := settings.SetInt(KeyMinDistance, 60); err != nil {
		t.Fatalf("SetInt() error = %v", err)
	}
	if got := settings.GetInt(KeyMinDistance, 66); got != 60 {
		t.Errorf("GetInt() = %d, want 60", got)
	}

	if err := settings.SetBool(KeyEnabled, false); err != nil {
		t.Fatalf("SetBool() error = %v", err)
	}
	if got := settings.GetBool(KeyEnabled, true); got != false {
		t.Errorf("GetBool() = %v, want false", got)
	}

	// Malformed values fall back to defaults.
	if err := settings.Set(KeyDebounceMs, "not-a-number"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := settings.GetInt(KeyDebounceMs, 2000); got != 2000 {
		t.Errorf("GetInt(malformed) = %d, want default 2000", got)
	}
}
