// Package repository provides the PostgreSQL record-store adapter for
// sighting records.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/riefhanj02/florasight/internal/models"
)

// ErrNotFound is returned by UpdateOne when no record matches the id.
var ErrNotFound = errors.New("sighting not found")

// PostgresSightingRepository implements the record-store operations
// against a PostgreSQL database.
type PostgresSightingRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSightingRepository creates a repository over the given
// connection. db must be a valid *sql.DB connected to Postgres.
func NewPostgresSightingRepository(db *sql.DB) *PostgresSightingRepository {
	return &PostgresSightingRepository{DB: db}
}

// ScanAll reads every sighting row. Numeric and temporal columns are
// stored as text exactly as contributed; nulls collapse to empty
// strings so downstream normalization sees one missing-value shape.
func (r *PostgresSightingRepository) ScanAll(ctx context.Context) ([]models.RawSighting, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, owner_id, species, status, confidence, unsure, rarity,
		       latitude, longitude, observed_at, created_at, image_ref
		FROM sightings
	`)
	if err != nil {
		return nil, fmt.Errorf("ScanAll: %w", err)
	}
	defer rows.Close()

	var sightings []models.RawSighting
	for rows.Next() {
		var (
			s                               models.RawSighting
			species, status, confidence     sql.NullString
			rarity, latitude, longitude     sql.NullString
			observedAt, createdAt, imageRef sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.OwnerID, &species, &status, &confidence,
			&s.Unsure, &rarity, &latitude, &longitude, &observedAt, &createdAt, &imageRef); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		s.Species = species.String
		s.Status = status.String
		s.Confidence = confidence.String
		s.Rarity = rarity.String
		s.Latitude = latitude.String
		s.Longitude = longitude.String
		s.ObservedAt = observedAt.String
		s.CreatedAt = createdAt.String
		s.ImageRef = imageRef.String
		sightings = append(sightings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ScanAll rows: %w", err)
	}
	return sightings, nil
}

// UpdateOne sets status and the unsure flag on a single record. It is
// a lone conditional write keyed by id; zero matched rows means the
// record does not exist.
func (r *PostgresSightingRepository) UpdateOne(ctx context.Context, id string, status string, unsure bool) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE sightings SET status = $2, unsure = $3 WHERE id = $1
	`, id, status, unsure)
	if err != nil {
		return fmt.Errorf("UpdateOne: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateOne rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
