package search

import (
	"strconv"
	"strings"

	"github.com/placefind/placefind/internal/model"
)

// Accepted aliases per canonical field, in resolution order. First present
// wins. Server revisions renamed these fields more than once, so the lists
// are data rather than probing scattered through the parser.
var (
	addressAliases = []string{"formatted_address", "address"}
	phoneAliases   = []string{"formatted_phone_number", "phone"}
	idAliases      = []string{"place_id", "id"}
)

// normalizeRecord maps one raw place object to the canonical record. Records
// without a name are dropped. Fields absent under all known aliases stay
// absent so presentation can tell "unknown" from "empty".
func normalizeRecord(raw map[string]any) (model.PlaceRecord, bool) {
	name := stringValue(raw["name"])
	if name == "" {
		return model.PlaceRecord{}, false
	}

	rec := model.PlaceRecord{
		Name:    name,
		ID:      firstString(raw, idAliases),
		Address: firstString(raw, addressAliases),
	}

	if f, ok := floatValue(raw["rating"]); ok {
		rec.Rating = &f
	}
	if f, ok := floatValue(raw["user_ratings_total"]); ok && f >= 0 {
		n := int(f)
		rec.RatingCount = &n
	}
	if s := firstString(raw, phoneAliases); s != "" {
		rec.Phone = &s
	}
	if s := stringValue(raw["website"]); s != "" {
		rec.Website = &s
	}
	rec.OpeningHours = hoursValue(raw["opening_hours"])

	if loc := mapValue(mapValue(raw["geometry"])["location"]); loc != nil {
		if lat, ok := floatValue(loc["lat"]); ok {
			if lng, ok := floatValue(loc["lng"]); ok {
				rec.Lat = &lat
				rec.Lng = &lng
			}
		}
	}

	return rec, true
}

// hoursValue flattens opening hours to day strings. Two source shapes: a
// flat string array, or an object with a weekday_text array.
func hoursValue(v any) []string {
	switch h := v.(type) {
	case []any:
		return stringList(h)
	case map[string]any:
		if wt, ok := h["weekday_text"].([]any); ok {
			return stringList(wt)
		}
	}
	return nil
}

func stringList(items []any) []string {
	var out []string
	for _, it := range items {
		if s := stringValue(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// firstString resolves an ordered alias list against a raw record.
func firstString(raw map[string]any, aliases []string) string {
	for _, key := range aliases {
		if s := stringValue(raw[key]); s != "" {
			return s
		}
	}
	return ""
}

// mapValue converts a decoded JSON value to an object, nil if it isn't one.
// Indexing the nil result is safe, which keeps nested lookups flat.
func mapValue(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// stringValue extracts a string from a decoded JSON value.
func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	}
	return ""
}

// floatValue extracts a number from a decoded JSON value. Handles float64
// and numeric strings, which some server revisions emit for ratings.
func floatValue(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}
