package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jacksmith/hp/internal/model"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SaveKey is the slot the collection is stored under.
const SaveKey = "SavedData"

// SQLiteAdapter stores the collection as a JSON blob in a key/value table.
type SQLiteAdapter struct {
	db  *sql.DB
	key string
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteAdapter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return &SQLiteAdapter{db: db, key: SaveKey}, nil
}

// Close releases the database handle.
func (a *SQLiteAdapter) Close() error {
	return a.db.Close()
}

// Load reads the collection from the SaveKey slot.
func (a *SQLiteAdapter) Load() ([]model.Prospect, error) {
	var payload []byte
	err := a.db.QueryRow(`SELECT payload FROM slots WHERE key = ?`, a.key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return []model.Prospect{}, fmt.Errorf("select %s: %w", a.key, err)
	}

	people, err := model.DecodeProspects(payload)
	if err != nil {
		return []model.Prospect{}, fmt.Errorf("decode %s: %w", a.key, err)
	}
	return people, nil
}

// Save replaces the SaveKey slot in a single statement.
func (a *SQLiteAdapter) Save(people []model.Prospect) error {
	data, err := model.EncodeProspects(people)
	if err != nil {
		return fmt.Errorf("failed to encode prospects: %w", err)
	}
	if _, err := a.db.Exec(`INSERT INTO slots (key, payload) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`, a.key, data); err != nil {
		return fmt.Errorf("upsert %s: %w", a.key, err)
	}
	return nil
}
