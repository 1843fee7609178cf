// Package render holds the per-query-type rendering strategies. Strategies
// produce plain text lines; the TUI styles them, the headless command prints
// them as-is.
package render

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/placefind/placefind/internal/model"
	"github.com/placefind/placefind/internal/search"
)

// NewRegistry wires the default strategy for every known query type. origin,
// when set, is the reference point for distance annotations on nearby
// results.
func NewRegistry(origin *orb.Point) *search.Registry {
	reg := search.NewRegistry(Generic)
	reg.Register(model.QueryPlaceSearchTemporal, Temporal)
	reg.Register(model.QueryPlaceAttributeCheck, AttributeCheck)
	reg.Register(model.QueryNearbySearch, Nearby(origin))
	return reg
}

// Generic shows every field the record carries.
func Generic(rec model.PlaceRecord) []string {
	lines := []string{rec.Name}
	lines = appendField(lines, "Address", rec.Address)
	lines = appendField(lines, "Rating", ratingText(rec))
	if rec.Phone != nil {
		lines = appendField(lines, "Phone", *rec.Phone)
	}
	if rec.Website != nil {
		lines = appendField(lines, "Website", *rec.Website)
	}
	lines = append(lines, hoursLines(rec)...)
	return lines
}

// Temporal leads with opening hours: these results answered an "open until"
// style query.
func Temporal(rec model.PlaceRecord) []string {
	lines := []string{rec.Name}
	lines = appendField(lines, "Address", rec.Address)
	if hours := hoursLines(rec); hours != nil {
		lines = append(lines, hours...)
	} else {
		lines = append(lines, "  Hours: not published")
	}
	lines = appendField(lines, "Rating", ratingText(rec))
	return lines
}

// AttributeCheck emphasizes the contact surface: attribute questions are
// usually settled by calling or checking the website.
func AttributeCheck(rec model.PlaceRecord) []string {
	lines := []string{rec.Name}
	lines = appendField(lines, "Rating", ratingText(rec))
	if rec.Phone != nil {
		lines = appendField(lines, "Phone", *rec.Phone)
	}
	if rec.Website != nil {
		lines = appendField(lines, "Website", *rec.Website)
	}
	lines = appendField(lines, "Address", rec.Address)
	return lines
}

// Nearby annotates each record with its distance from the configured origin.
// Records without coordinates, or a missing origin, render without the
// annotation.
func Nearby(origin *orb.Point) search.Renderer {
	return func(rec model.PlaceRecord) []string {
		lines := []string{rec.Name}
		if origin != nil && rec.HasCoords() {
			meters := geo.Distance(orb.Point{*rec.Lng, *rec.Lat}, *origin)
			lines = appendField(lines, "Distance", fmt.Sprintf("%.1f km", meters/1000))
		}
		lines = appendField(lines, "Address", rec.Address)
		lines = appendField(lines, "Rating", ratingText(rec))
		if rec.Phone != nil {
			lines = appendField(lines, "Phone", *rec.Phone)
		}
		return lines
	}
}

// Text renders a whole response as plain text: the explanatory message, a
// "no matches" line, or the strategy card for each record.
func Text(reg *search.Registry, resp model.SearchResponse) string {
	if resp.HasMessage() {
		return resp.Message
	}
	if len(resp.Records) == 0 {
		return "No matching places found."
	}

	renderer := reg.For(resp.QueryType)
	var b strings.Builder
	for i, rec := range resp.Records {
		lines := renderer(rec)
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func appendField(lines []string, label, value string) []string {
	if value == "" {
		return lines
	}
	return append(lines, fmt.Sprintf("  %s: %s", label, value))
}

func ratingText(rec model.PlaceRecord) string {
	if rec.Rating == nil {
		return ""
	}
	if rec.RatingCount != nil {
		return fmt.Sprintf("%.1f (%d reviews)", *rec.Rating, *rec.RatingCount)
	}
	return fmt.Sprintf("%.1f", *rec.Rating)
}

func hoursLines(rec model.PlaceRecord) []string {
	if rec.OpeningHours == nil {
		return nil
	}
	lines := []string{"  Hours:"}
	for _, day := range rec.OpeningHours {
		lines = append(lines, "    "+day)
	}
	return lines
}
