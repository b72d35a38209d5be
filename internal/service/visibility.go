// Package service implements the record visibility and aggregation
// pipeline: normalization, tier classification, filtering, pagination,
// and map output, delegating persistence to a SightingRepository.
package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/riefhanj02/florasight/internal/models"
)

// confidenceFloor is the score below which a record is treated as
// unsure regardless of its status.
const confidenceFloor = 0.5

// Normalize converts a raw store row into a usable sighting. Malformed
// fields collapse to safe defaults rather than failing: confidence
// defaults to 1.0, coordinates to 0, and the record instant falls back
// from the observed time to the created time to now.
func Normalize(raw models.RawSighting, now time.Time) models.Sighting {
	s := models.Sighting{
		ID:       raw.ID,
		OwnerID:  raw.OwnerID,
		Species:  raw.Species,
		Status:   raw.Status,
		Unsure:   raw.Unsure,
		Rarity:   raw.Rarity,
		ImageRef: raw.ImageRef,
	}

	s.Confidence = 1.0
	if raw.Confidence != "" {
		if c, err := strconv.ParseFloat(strings.TrimSpace(raw.Confidence), 64); err == nil {
			s.Confidence = c
		}
	}

	lat, latErr := strconv.ParseFloat(strings.TrimSpace(raw.Latitude), 64)
	if latErr == nil {
		s.Latitude = lat
	}
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(raw.Longitude), 64)
	if lngErr == nil {
		s.Longitude = lng
	}
	// A usable point needs both coordinates parsed, and (0,0) is the
	// placeholder for missing data, never a real sighting location.
	s.HasCoords = latErr == nil && lngErr == nil && !(s.Latitude == 0 && s.Longitude == 0)

	s.ObservedAt, s.HasInstant = parseInstant(raw.ObservedAt)
	if !s.HasInstant && raw.ObservedAt == "" {
		// Missing entirely: fall back to the created time, then to now.
		if created, ok := parseInstant(raw.CreatedAt); ok {
			s.ObservedAt, s.HasInstant = created, true
		} else {
			s.ObservedAt, s.HasInstant = now, true
		}
	}

	return s
}

// parseInstant accepts RFC 3339 and the date-only form.
func parseInstant(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Classify derives the visibility tier of a sighting. First match wins:
// any doubt signal yields unsure, a rare species yields masked,
// everything else is public. The function is total; it never fails on
// missing or partial fields.
func Classify(s models.Sighting) models.Tier {
	if s.Unsure || s.Status == models.StatusUnsure || s.Status == models.StatusUnknown || s.Confidence < confidenceFloor {
		return models.TierUnsure
	}
	if strings.EqualFold(s.Rarity, "rare") {
		return models.TierMasked
	}
	return models.TierPublic
}
