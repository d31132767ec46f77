// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists researcher Profiles in a local SQLite
// database so follow-up commands can read profiles produced by earlier
// runs. The engine's own in-memory table stays authoritative during a
// search; this store is the CLI layer's persistence.
// Implements: prd006-store (R1-R3).
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/profile-engine/pkg/types"
)

const dbFile = "profiles.db"

// ErrNotFound marks a profile name absent from the store.
var ErrNotFound = errors.New("profile not found")

// Store manages the profile SQLite database.
type Store struct {
	db  *sql.DB
	dir string
}

// Open opens or creates the profile database at dir/profiles.db and
// creates the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: cfg.Dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS profiles (
		name TEXT PRIMARY KEY,
		specialization TEXT,
		ai_generated INTEGER NOT NULL DEFAULT 0,
		ai_enhanced INTEGER NOT NULL DEFAULT 0,
		data TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Save upserts a profile under its exact name. The full record is
// stored as JSON; name, specialization, and the AI flags are promoted
// to columns for listing.
func (s *Store) Save(ctx context.Context, p *types.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO profiles
		(name, specialization, ai_generated, ai_enhanced, data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			specialization = excluded.specialization,
			ai_generated = excluded.ai_generated,
			ai_enhanced = excluded.ai_enhanced,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		p.Name, p.Specialization, boolInt(p.AIGenerated), boolInt(p.AIEnhanced),
		string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving profile %s: %w", p.Name, err)
	}
	return nil
}

// Get loads the profile stored under the exact name.
func (s *Store) Get(ctx context.Context, name string) (*types.Profile, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM profiles WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", name, err)
	}

	var p types.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("decoding profile %s: %w", name, err)
	}
	return &p, nil
}

// ListEntry summarizes one stored profile.
type ListEntry struct {
	Name           string `json:"name" yaml:"name"`
	Specialization string `json:"specialization,omitempty" yaml:"specialization,omitempty"`
	AIGenerated    bool   `json:"ai_generated" yaml:"ai_generated"`
	AIEnhanced     bool   `json:"ai_enhanced" yaml:"ai_enhanced"`
	UpdatedAt      string `json:"updated_at" yaml:"updated_at"`
}

// List returns summaries of all stored profiles, ordered by name.
func (s *Store) List(ctx context.Context) ([]ListEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, specialization, ai_generated, ai_enhanced, updated_at
		 FROM profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var entries []ListEntry
	for rows.Next() {
		var e ListEntry
		var gen, enh int
		if err := rows.Scan(&e.Name, &e.Specialization, &gen, &enh, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning profile row: %w", err)
		}
		e.AIGenerated = gen != 0
		e.AIEnhanced = enh != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
