package model

// QueryType labels a search response with the rendering strategy the server
// picked for it. Older server revisions omit the tag entirely.
type QueryType string

const (
	QueryPlaceSearchTemporal QueryType = "place_search_temporal"
	QueryPlaceAttributeCheck QueryType = "place_attribute_check"
	QueryNearbySearch        QueryType = "nearby_search"
	QueryUnclassified        QueryType = "unclassified"
)

// Known reports whether the tag belongs to the fixed set the client renders.
func (q QueryType) Known() bool {
	switch q {
	case QueryPlaceSearchTemporal, QueryPlaceAttributeCheck, QueryNearbySearch, QueryUnclassified:
		return true
	}
	return false
}

// PlaceRecord is a place after alias resolution, independent of which server
// revision produced it. Optional fields are pointers (or nil slices) so an
// absent value stays distinguishable from an empty one. Records are never
// mutated after normalization.
type PlaceRecord struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Rating       *float64 `json:"rating,omitempty"`
	RatingCount  *int     `json:"rating_count,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	Website      *string  `json:"website,omitempty"`
	OpeningHours []string `json:"opening_hours,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
}

// HasCoords reports whether the record carries a geographic position.
func (p PlaceRecord) HasCoords() bool {
	return p.Lat != nil && p.Lng != nil
}

// SearchResponse is a resolved server payload. Exactly one of three shapes:
// Records populated (ranked places, order preserved), Records empty with
// Message set (conversational reply, no place data), or both empty
// (zero matches).
type SearchResponse struct {
	QueryType QueryType     `json:"query_type"`
	Records   []PlaceRecord `json:"records"`
	Message   string        `json:"message,omitempty"`
}

// HasMessage reports whether the server replied with explanatory text
// instead of place records.
func (r SearchResponse) HasMessage() bool {
	return r.Message != ""
}
