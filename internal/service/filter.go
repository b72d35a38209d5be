package service

import (
	"strings"

	"github.com/riefhanj02/florasight/internal/models"
)

// Filter applies the query's stages over classified sightings. Each
// stage strictly narrows the set and never reorders it; an empty filter
// field is a no-op for its stage.
//
// Stage order: visibility gate, species substring, rarity exact match,
// inclusive date range.
func Filter(items []models.Sighting, q models.ListQuery) []models.Sighting {
	out := make([]models.Sighting, 0, len(items))
	species := strings.ToLower(strings.TrimSpace(q.Species))
	dateBounded := !q.StartDate.IsZero() || !q.EndDate.IsZero()

	for _, s := range items {
		if !q.IncludeNonPublic && Classify(s) != models.TierPublic {
			continue
		}
		if species != "" && !strings.Contains(strings.ToLower(s.Species), species) {
			continue
		}
		if q.Rarity != "" && s.Rarity != q.Rarity {
			continue
		}
		if dateBounded {
			// Records without a usable instant never match a bound.
			if !s.HasInstant {
				continue
			}
			if !q.StartDate.IsZero() && s.ObservedAt.Before(q.StartDate) {
				continue
			}
			if !q.EndDate.IsZero() && s.ObservedAt.After(q.EndDate) {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}
