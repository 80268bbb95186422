package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Bucket keys, one logical bucket per entity type.
const (
	BucketTasks       = "tasks"
	BucketMessages    = "chat_messages"
	BucketGroups      = "chat_groups"
	BucketUsers       = "users"
	BucketPreferences = "preferences"
	BucketActivityLog = "activity_log"
)

// Settings keys for the optional remote-connection override.
const (
	SettingRemoteURL = "custom_supabase_url"
	SettingRemoteKey = "custom_supabase_key"
)

// Store is the always-available local persistence adapter. Each entity type
// lives in its own bucket holding the JSON-encoded list; a missing or
// malformed bucket reads back as empty, never as an error.
type Store struct {
	db *sql.DB
}

func New(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &Store{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS buckets (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS settings (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

// GetBucket decodes the bucket's JSON list into dest (a pointer to a slice).
// A missing or malformed bucket leaves dest untouched and returns nil.
func (s *Store) GetBucket(key string, dest interface{}) error {
	var raw string
	err := s.db.QueryRow("SELECT value FROM buckets WHERE key = ?", key).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return fmt.Errorf("failed to read bucket %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("Malformed bucket %s, treating as empty: %v", key, err)
		return nil
	}
	return nil
}

// SaveBucket overwrites the bucket with the JSON encoding of value.
func (s *Store) SaveBucket(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode bucket %s: %w", key, err)
	}
	_, err = s.db.Exec(
		"INSERT INTO buckets (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, string(raw),
	)
	if err != nil {
		return fmt.Errorf("failed to write bucket %s: %w", key, err)
	}
	return nil
}

// GetSetting returns the stored value for key, or "" when unset.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// DeleteSetting removes an override key; deleting an absent key is a no-op.
func (s *Store) DeleteSetting(key string) error {
	_, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}
