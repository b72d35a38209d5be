package service

import (
	"time"

	"github.com/riefhanj02/florasight/internal/apperrors"
	"github.com/riefhanj02/florasight/internal/models"
)

// Paginate slices the filtered set into a 1-indexed page. page below 1
// is clamped to 1; pageSize below 1 is rejected. Total always reports
// the pre-pagination count, and slicing past the end yields an empty
// items slice rather than an error.
func Paginate(items []models.Sighting, page, pageSize int) (models.ListResult, error) {
	if pageSize <= 0 {
		return models.ListResult{}, apperrors.New(apperrors.InvalidArgument, "pageSize must be positive")
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return models.ListResult{
		Items:    items[start:end],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// ToFeatureCollection builds the GeoJSON payload for map rendering.
// Records without usable coordinates are silently omitted; they still
// count toward listing totals. Point coordinates are [longitude,
// latitude] — map clients depend on that order.
func ToFeatureCollection(items []models.Sighting) models.FeatureCollection {
	features := make([]models.Feature, 0, len(items))
	for _, s := range items {
		if !s.HasCoords {
			continue
		}
		features = append(features, models.Feature{
			Type: "Feature",
			Geometry: models.Geometry{
				Type:        "Point",
				Coordinates: [2]float64{s.Longitude, s.Latitude},
			},
			Properties: map[string]any{
				"id":         s.ID,
				"species":    s.Species,
				"rarity":     s.Rarity,
				"timestamp":  s.ObservedAt.Format(time.RFC3339),
				"confidence": s.Confidence,
				"status":     s.Status,
			},
		})
	}
	return models.FeatureCollection{Type: "FeatureCollection", Features: features}
}

// ComputeBounds derives the minimal bounding box over all records with
// usable coordinates. ok is false when no point qualifies; that is not
// an error, the client simply keeps its default viewport.
func ComputeBounds(items []models.Sighting) (models.Bounds, bool) {
	var b models.Bounds
	found := false
	for _, s := range items {
		if !s.HasCoords {
			continue
		}
		if !found {
			b = models.Bounds{MinLat: s.Latitude, MaxLat: s.Latitude, MinLng: s.Longitude, MaxLng: s.Longitude}
			found = true
			continue
		}
		if s.Latitude < b.MinLat {
			b.MinLat = s.Latitude
		}
		if s.Latitude > b.MaxLat {
			b.MaxLat = s.Latitude
		}
		if s.Longitude < b.MinLng {
			b.MinLng = s.Longitude
		}
		if s.Longitude > b.MaxLng {
			b.MaxLng = s.Longitude
		}
	}
	return b, found
}
