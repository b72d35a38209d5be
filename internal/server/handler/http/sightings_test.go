package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riefhanj02/florasight/internal/apperrors"
	"github.com/riefhanj02/florasight/internal/models"
)

// fakeCatalog implements CatalogService for testing.
type fakeCatalog struct {
	listResult models.ListResult
	listErr    error
	lastQuery  models.ListQuery
	lastPage   int
	lastSize   int

	geoCount  int
	geoFC     models.FeatureCollection
	geoBounds *models.Bounds
	geoErr    error

	reclassifyResult models.ReclassifyResult
	reclassifyErr    error
}

func (f *fakeCatalog) List(ctx context.Context, q models.ListQuery, page, pageSize int) (models.ListResult, error) {
	f.lastQuery, f.lastPage, f.lastSize = q, page, pageSize
	return f.listResult, f.listErr
}

func (f *fakeCatalog) Geo(ctx context.Context, q models.ListQuery) (int, models.FeatureCollection, *models.Bounds, error) {
	f.lastQuery = q
	return f.geoCount, f.geoFC, f.geoBounds, f.geoErr
}

func (f *fakeCatalog) Reclassify(ctx context.Context, id, action string) (models.ReclassifyResult, error) {
	return f.reclassifyResult, f.reclassifyErr
}

func TestSightingsList_QueryParams(t *testing.T) {
	catalog := &fakeCatalog{listResult: models.ListResult{Items: []models.Sighting{}, Total: 0, Page: 2, PageSize: 5}}
	h := &SightingsHandler{Catalog: catalog}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET",
		"/sightings?species=nepenthes&rarity=Rare&startDate=2023-12-31&endDate=2024-01-02&includeNonPublic=true&page=2&pageSize=5", nil)
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if catalog.lastQuery.Species != "nepenthes" || catalog.lastQuery.Rarity != "Rare" {
		t.Errorf("query = %+v", catalog.lastQuery)
	}
	if !catalog.lastQuery.IncludeNonPublic {
		t.Error("includeNonPublic should be true")
	}
	if catalog.lastPage != 2 || catalog.lastSize != 5 {
		t.Errorf("page/size = %d/%d", catalog.lastPage, catalog.lastSize)
	}
	wantStart := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	if !catalog.lastQuery.StartDate.Equal(wantStart) {
		t.Errorf("startDate = %v", catalog.lastQuery.StartDate)
	}
	// A bare end date covers the whole day.
	if !catalog.lastQuery.EndDate.After(time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC)) {
		t.Errorf("endDate = %v", catalog.lastQuery.EndDate)
	}
}

func TestSightingsList_Defaults(t *testing.T) {
	catalog := &fakeCatalog{}
	h := &SightingsHandler{Catalog: catalog}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/sightings", nil))

	if catalog.lastPage != defaultPage || catalog.lastSize != defaultPageSize {
		t.Errorf("defaults = %d/%d", catalog.lastPage, catalog.lastSize)
	}
	if catalog.lastQuery.IncludeNonPublic {
		t.Error("includeNonPublic must default to false")
	}
	if !catalog.lastQuery.StartDate.IsZero() || !catalog.lastQuery.EndDate.IsZero() {
		t.Error("absent date params must stay zero")
	}
}

func TestSightingsList_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind string
	}{
		{
			name:     "invalid argument",
			err:      apperrors.New(apperrors.InvalidArgument, "pageSize must be positive"),
			wantCode: http.StatusBadRequest,
			wantKind: "invalid_argument",
		},
		{
			name:     "store failure",
			err:      apperrors.New(apperrors.StoreError, "scanning sightings"),
			wantCode: http.StatusBadGateway,
			wantKind: "store_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &SightingsHandler{Catalog: &fakeCatalog{listErr: tt.err}}
			rec := httptest.NewRecorder()
			h.List(rec, httptest.NewRequest("GET", "/sightings", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["kind"] != tt.wantKind {
				t.Errorf("kind = %q, want %q", body["kind"], tt.wantKind)
			}
		})
	}
}

func TestSightingsGeo(t *testing.T) {
	bounds := &models.Bounds{MinLat: 1.1, MinLng: 110.3, MaxLat: 2.1, MaxLng: 113.0}
	catalog := &fakeCatalog{
		geoCount: 2,
		geoFC: models.FeatureCollection{Type: "FeatureCollection", Features: []models.Feature{{
			Type:     "Feature",
			Geometry: models.Geometry{Type: "Point", Coordinates: [2]float64{110.3442, 1.5569}},
		}}},
		geoBounds: bounds,
	}
	h := &SightingsHandler{Catalog: catalog}

	rec := httptest.NewRecorder()
	h.Geo(rec, httptest.NewRequest("GET", "/sightings/geo", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Count   int                      `json:"count"`
		GeoJSON models.FeatureCollection `json:"geojson"`
		Bounds  *models.Bounds           `json:"bounds"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Count != 2 {
		t.Errorf("count = %d", body.Count)
	}
	if len(body.GeoJSON.Features) != 1 {
		t.Fatalf("features = %d", len(body.GeoJSON.Features))
	}
	if body.GeoJSON.Features[0].Geometry.Coordinates != [2]float64{110.3442, 1.5569} {
		t.Errorf("coordinates = %v", body.GeoJSON.Features[0].Geometry.Coordinates)
	}
	if body.Bounds == nil || *body.Bounds != *bounds {
		t.Errorf("bounds = %+v", body.Bounds)
	}
}

func TestSightingsGeo_OmitsBoundsWhenAbsent(t *testing.T) {
	h := &SightingsHandler{Catalog: &fakeCatalog{geoCount: 0, geoFC: models.FeatureCollection{Type: "FeatureCollection"}}}

	rec := httptest.NewRecorder()
	h.Geo(rec, httptest.NewRequest("GET", "/sightings/geo", nil))

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, present := body["bounds"]; present {
		t.Error("bounds key should be absent when nothing plots")
	}
}

func TestSightingsReclassify(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		catalog      *fakeCatalog
		expectedCode int
	}{
		{
			name: "applied",
			body: `{"id":"s1","action":"unsure"}`,
			catalog: &fakeCatalog{reclassifyResult: models.ReclassifyResult{
				ID: "s1", Action: "unsure", AppliedStatus: "unsure",
			}},
			expectedCode: http.StatusOK,
		},
		{
			name:         "invalid JSON",
			body:         `not a json`,
			catalog:      &fakeCatalog{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown action",
			body:         `{"id":"s1","action":"maybe"}`,
			catalog:      &fakeCatalog{reclassifyErr: apperrors.New(apperrors.InvalidArgument, "bad action")},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing record",
			body:         `{"id":"ghost","action":"sure"}`,
			catalog:      &fakeCatalog{reclassifyErr: apperrors.New(apperrors.NotFound, "record not found")},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &SightingsHandler{Catalog: tt.catalog}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/sightings/reclassify", bytes.NewBufferString(tt.body))
			h.Reclassify(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.expectedCode)
			}
			if tt.expectedCode == http.StatusOK {
				var result models.ReclassifyResult
				if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if result.AppliedStatus != "unsure" {
					t.Errorf("appliedStatus = %q", result.AppliedStatus)
				}
			}
		})
	}
}
