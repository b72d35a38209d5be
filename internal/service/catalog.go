package service

import (
	"context"
	"errors"
	"time"

	"github.com/riefhanj02/florasight/internal/apperrors"
	"github.com/riefhanj02/florasight/internal/models"
	"github.com/riefhanj02/florasight/internal/repository"
)

// SightingRepository defines the record-store operations required by
// the catalog service.
type SightingRepository interface {
	// ScanAll reads every raw sighting row. The store offers no
	// pagination of its own; filtering happens in memory afterwards.
	ScanAll(ctx context.Context) ([]models.RawSighting, error)
	// UpdateOne applies status and unsure-flag to a single record.
	// Returns repository.ErrNotFound when no record matches id.
	UpdateOne(ctx context.Context, id string, status string, unsure bool) error
}

// CatalogService serves listing, map, and reclassification requests
// over the sighting store.
type CatalogService struct {
	repo SightingRepository
	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewCatalogService constructs a CatalogService over the repository.
func NewCatalogService(repo SightingRepository) *CatalogService {
	return &CatalogService{repo: repo, now: time.Now}
}

// load scans, normalizes, and filters. Tier classification is
// recomputed on every read so visibility never goes stale.
func (s *CatalogService) load(ctx context.Context, q models.ListQuery) ([]models.Sighting, error) {
	raws, err := s.repo.ScanAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreError, "scanning sightings", err)
	}
	now := s.now()
	items := make([]models.Sighting, 0, len(raws))
	for _, raw := range raws {
		items = append(items, Normalize(raw, now))
	}
	return Filter(items, q), nil
}

// List returns one page of the filtered catalog.
func (s *CatalogService) List(ctx context.Context, q models.ListQuery, page, pageSize int) (models.ListResult, error) {
	filtered, err := s.load(ctx, q)
	if err != nil {
		return models.ListResult{}, err
	}
	return Paginate(filtered, page, pageSize)
}

// Geo returns the filtered catalog as a GeoJSON feature collection plus
// the bounding box for viewport fitting. Bounds is nil when no record
// carries usable coordinates.
func (s *CatalogService) Geo(ctx context.Context, q models.ListQuery) (int, models.FeatureCollection, *models.Bounds, error) {
	filtered, err := s.load(ctx, q)
	if err != nil {
		return 0, models.FeatureCollection{}, nil, err
	}
	fc := ToFeatureCollection(filtered)
	if b, ok := ComputeBounds(filtered); ok {
		return len(filtered), fc, &b, nil
	}
	return len(filtered), fc, nil, nil
}

// Reclassify applies an operator's verdict to one record. Validation
// happens before any store write; the update is absolute, so repeating
// an action is a no-op that still succeeds.
func (s *CatalogService) Reclassify(ctx context.Context, id, action string) (models.ReclassifyResult, error) {
	if id == "" {
		return models.ReclassifyResult{}, apperrors.New(apperrors.InvalidArgument, "record id is required")
	}
	status, unsure, err := statusFor(action)
	if err != nil {
		return models.ReclassifyResult{}, err
	}

	if err := s.repo.UpdateOne(ctx, id, status, unsure); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.ReclassifyResult{}, apperrors.Wrap(apperrors.NotFound, "record not found", err)
		}
		return models.ReclassifyResult{}, apperrors.Wrap(apperrors.StoreError, "updating record", err)
	}
	return models.ReclassifyResult{ID: id, Action: action, AppliedStatus: status}, nil
}

// statusFor maps an action to the status/unsure pair it writes. Both
// branches share the one update shape; only the values differ.
func statusFor(action string) (string, bool, error) {
	switch action {
	case models.ActionSure:
		return models.StatusIdentified, false, nil
	case models.ActionUnsure:
		return models.StatusUnsure, true, nil
	default:
		return "", false, apperrors.New(apperrors.InvalidArgument, "action must be \"sure\" or \"unsure\"")
	}
}
