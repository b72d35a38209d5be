// Package models defines the core data structures for sighting records,
// visibility tiers, catalog queries, and session tokens.
package models

import "time"

// Tier is the derived visibility classification of a sighting record.
// It is recomputed from the record's current fields on every read and
// is never persisted.
type Tier string

const (
	// TierPublic marks records safe for unrestricted listing.
	TierPublic Tier = "public"
	// TierMasked marks publicly listed but sensitive records (rare species).
	TierMasked Tier = "masked"
	// TierUnsure marks records whose identification is in doubt.
	TierUnsure Tier = "unsure"
)

// Record status values written by the reclassification flow.
const (
	StatusIdentified = "identified"
	StatusUnsure     = "unsure"
	StatusUnknown    = "unknown"
)

// Reclassification actions accepted from operators.
const (
	ActionSure   = "sure"
	ActionUnsure = "unsure"
)

// RawSighting is a sighting row exactly as the record store returns it.
// Contributed records are stored verbatim, so the numeric and temporal
// fields arrive as strings that may be empty or malformed. Normalization
// happens on read, never at the store.
type RawSighting struct {
	// ID is the opaque unique identifier of the record.
	ID string
	// OwnerID identifies the contributing user.
	OwnerID string
	// Species is the free-text species label, possibly empty.
	Species string
	// Status is one of "identified", "unsure", "unknown".
	Status string
	// Confidence is a score in [0,1] as submitted; empty means 1.0.
	Confidence string
	// Unsure is the explicit manual override flag.
	Unsure bool
	// Rarity is an optional categorical label ("Common", "Rare", ...).
	Rarity string
	// Latitude and Longitude are decimal degrees as submitted.
	Latitude  string
	Longitude string
	// ObservedAt is the ISO-8601 observation time as submitted.
	ObservedAt string
	// CreatedAt is the ingestion timestamp, used as a fallback instant.
	CreatedAt string
	// ImageRef is an opaque reference to the record's image asset.
	ImageRef string
}

// Sighting is a normalized sighting record. Every field holds a usable
// value regardless of how malformed the raw row was.
type Sighting struct {
	ID         string  `json:"id"`
	OwnerID    string  `json:"ownerId"`
	Species    string  `json:"species"`
	Status     string  `json:"status"`
	Confidence float64 `json:"confidence"`
	Unsure     bool    `json:"unsure"`
	Rarity     string  `json:"rarity"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	// ObservedAt is the record's instant after the fallback chain
	// (observed time, then created time, then scan time).
	ObservedAt time.Time `json:"observedAt"`
	// HasInstant is false when a timestamp was present but unparsable;
	// such records are excluded from date-bounded queries.
	HasInstant bool `json:"-"`
	// HasCoords is false when coordinates were missing, malformed, or
	// the (0,0) placeholder; such records carry no map point.
	HasCoords bool   `json:"-"`
	ImageRef  string `json:"imageRef"`
}

// ListQuery carries the optional catalog filters. Empty fields are
// no-ops for their filter stage.
type ListQuery struct {
	// Species is matched as a case-insensitive substring.
	Species string
	// Rarity is matched exactly.
	Rarity string
	// StartDate and EndDate are inclusive bounds on the record instant.
	StartDate time.Time
	EndDate   time.Time
	// IncludeNonPublic is the admin override admitting masked and
	// unsure tiers into results.
	IncludeNonPublic bool
}

// ListResult is a paginated catalog listing.
type ListResult struct {
	Items []Sighting `json:"items"`
	// Total is the filtered count before pagination.
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Geometry is a GeoJSON point. Coordinates are [longitude, latitude];
// this ordering is an external contract with map clients.
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Feature is a single GeoJSON point feature for one sighting.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// FeatureCollection is the GeoJSON payload handed to map clients.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Bounds is the minimal bounding box over the plotted coordinates,
// used for client-side viewport fitting.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLng float64 `json:"minLng"`
	MaxLat float64 `json:"maxLat"`
	MaxLng float64 `json:"maxLng"`
}

// TokenSet is the triple issued by the identity provider on login.
// All three are opaque bearer strings to this service.
type TokenSet struct {
	Access   string `json:"access"`
	Identity string `json:"identity"`
	Refresh  string `json:"refresh"`
}

// ReclassifyResult reports the outcome of a reclassification.
type ReclassifyResult struct {
	ID            string `json:"id"`
	Action        string `json:"action"`
	AppliedStatus string `json:"appliedStatus"`
}
