// Package http provides HTTP handlers for the sighting catalog:
// listings, map output, and reclassification.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/riefhanj02/florasight/internal/apperrors"
	"github.com/riefhanj02/florasight/internal/models"
)

// CatalogService defines the catalog operations required by the
// sightings handlers.
type CatalogService interface {
	// List returns one page of the filtered catalog.
	List(ctx context.Context, q models.ListQuery, page, pageSize int) (models.ListResult, error)
	// Geo returns the filtered catalog as GeoJSON plus viewport bounds.
	Geo(ctx context.Context, q models.ListQuery) (int, models.FeatureCollection, *models.Bounds, error)
	// Reclassify applies an operator verdict to a single record.
	Reclassify(ctx context.Context, id, action string) (models.ReclassifyResult, error)
}

// SightingsHandler handles HTTP requests for catalog browsing and
// reclassification.
type SightingsHandler struct {
	Catalog CatalogService
}

const (
	defaultPage     = 1
	defaultPageSize = 20
)

// List handles GET /api/sightings.
// Query params: species, rarity, startDate, endDate, includeNonPublic,
// page, pageSize.
func (h *SightingsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := queryFromRequest(r)

	page := intParam(r, "page", defaultPage)
	pageSize := intParam(r, "pageSize", defaultPageSize)

	result, err := h.Catalog.List(r.Context(), q, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Geo handles GET /api/sightings/geo. The response carries the filtered
// count, the GeoJSON collection, and, when any point qualifies, the
// bounding box for viewport fitting.
func (h *SightingsHandler) Geo(w http.ResponseWriter, r *http.Request) {
	q := queryFromRequest(r)

	count, fc, bounds, err := h.Catalog.Geo(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := map[string]any{
		"count":   count,
		"geojson": fc,
	}
	if bounds != nil {
		resp["bounds"] = bounds
	}
	writeJSON(w, http.StatusOK, resp)
}

// ReclassifyRequest is the JSON payload for record reclassification.
type ReclassifyRequest struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

// Reclassify handles POST /api/sightings/reclassify.
func (h *SightingsHandler) Reclassify(w http.ResponseWriter, r *http.Request) {
	var req ReclassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.New(apperrors.InvalidArgument, "invalid request body"))
		return
	}

	result, err := h.Catalog.Reclassify(r.Context(), req.ID, req.Action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// queryFromRequest reads the shared filter params. Absent params leave
// their filter stage inert.
func queryFromRequest(r *http.Request) models.ListQuery {
	v := r.URL.Query()
	q := models.ListQuery{
		Species:          v.Get("species"),
		Rarity:           v.Get("rarity"),
		IncludeNonPublic: v.Get("includeNonPublic") == "true",
	}
	if t, ok := parseDateParam(v.Get("startDate")); ok {
		q.StartDate = t
	}
	if t, ok := parseDateParam(v.Get("endDate")); ok {
		// A bare end date means the whole of that day, inclusive.
		if isBareDate(v.Get("endDate")) {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		q.EndDate = t
	}
	return q
}

// parseDateParam accepts RFC 3339 instants or bare dates.
func parseDateParam(v string) (time.Time, bool) {
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

func isBareDate(v string) bool {
	_, err := time.Parse("2006-01-02", v)
	return err == nil
}

func intParam(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
