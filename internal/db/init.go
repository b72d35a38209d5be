package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Contributed values are kept as text verbatim; the pipeline normalizes
// malformed fields on read instead of rejecting them at ingestion.
const schema = `
CREATE TABLE IF NOT EXISTS sightings (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    species TEXT,
    status TEXT,
    confidence TEXT,
    unsure BOOLEAN NOT NULL DEFAULT FALSE,
    rarity TEXT,
    latitude TEXT,
    longitude TEXT,
    observed_at TEXT,
    created_at TEXT,
    image_ref TEXT
);
`

func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
