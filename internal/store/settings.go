package store

import (
	"database/sql"
	"errors"
	"strconv"
)

// ErrNotFound is returned when a requested setting does not exist.
var ErrNotFound = errors.New("not found")

// Well-known setting keys.
const (
	KeyMinDistance   = "min_distance"
	KeyDebounceMs    = "debounce_ms"
	KeyCameraID      = "camera_id"
	KeyControlPlugin = "control_plugin"
	KeyEnabled       = "enabled"
)

// SettingsRepository provides typed access to the settings table.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get retrieves the raw value for a key.
// Returns ErrNotFound if the key has never been set.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set stores a value for a key, replacing any existing value.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// GetInt retrieves an integer setting, falling back to def when the key is
// missing or malformed.
func (r *SettingsRepository) GetInt(key string, def int) int {
	raw, err := r.Get(key)
	if err != nil {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// SetInt stores an integer setting.
func (r *SettingsRepository) SetInt(key string, value int) error {
	return r.Set(key, strconv.Itoa(value))
}

// GetBool retrieves a boolean setting, falling back to def when the key is
// missing or malformed.
func (r *SettingsRepository) GetBool(key string, def bool) bool {
	raw, err := r.Get(key)
	if err != nil {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}

// SetBool stores a boolean setting.
func (r *SettingsRepository) SetBool(key string, value bool) error {
	return r.Set(key, strconv.FormatBool(value))
}

// GetString retrieves a string setting, falling back to def when missing.
func (r *SettingsRepository) GetString(key, def string) string {
	raw, err := r.Get(key)
	if err != nil {
		return def
	}
	return raw
}
