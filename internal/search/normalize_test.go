package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressAliasesEquivalent(t *testing.T) {
	a, ok := normalizeRecord(map[string]any{"name": "X", "formatted_address": "1 Main St"})
	require.True(t, ok)
	b, ok := normalizeRecord(map[string]any{"name": "X", "address": "1 Main St"})
	require.True(t, ok)

	assert.Equal(t, a.Address, b.Address)
}

func TestAddressAliasOrder(t *testing.T) {
	rec, _ := normalizeRecord(map[string]any{
		"name":              "X",
		"formatted_address": "canonical",
		"address":           "legacy",
	})
	assert.Equal(t, "canonical", rec.Address, "formatted_address wins when both are present")
}

func TestPhoneAliases(t *testing.T) {
	a, _ := normalizeRecord(map[string]any{"name": "X", "formatted_phone_number": "+49 30 1234"})
	b, _ := normalizeRecord(map[string]any{"name": "X", "phone": "+49 30 1234"})

	require.NotNil(t, a.Phone)
	require.NotNil(t, b.Phone)
	assert.Equal(t, *a.Phone, *b.Phone)
}

func TestOpeningHoursShapesEquivalent(t *testing.T) {
	flat, _ := normalizeRecord(map[string]any{
		"name":          "X",
		"opening_hours": []any{"Mon: 9-5"},
	})
	nested, _ := normalizeRecord(map[string]any{
		"name":          "X",
		"opening_hours": map[string]any{"weekday_text": []any{"Mon: 9-5"}},
	})

	assert.Equal(t, []string{"Mon: 9-5"}, flat.OpeningHours)
	assert.Equal(t, flat.OpeningHours, nested.OpeningHours)
}

func TestAbsentFieldsStayAbsent(t *testing.T) {
	rec, ok := normalizeRecord(map[string]any{"name": "Bare Place"})
	require.True(t, ok)

	assert.Nil(t, rec.Rating)
	assert.Nil(t, rec.RatingCount)
	assert.Nil(t, rec.Phone)
	assert.Nil(t, rec.Website)
	assert.Nil(t, rec.OpeningHours)
	assert.Nil(t, rec.Lat)
	assert.Nil(t, rec.Lng)
	assert.Empty(t, rec.Address)
	assert.Empty(t, rec.ID)
}

func TestNumericFields(t *testing.T) {
	rec, _ := normalizeRecord(map[string]any{
		"name":               "Rated",
		"rating":             4.5,
		"user_ratings_total": float64(120),
	})

	require.NotNil(t, rec.Rating)
	assert.Equal(t, 4.5, *rec.Rating)
	require.NotNil(t, rec.RatingCount)
	assert.Equal(t, 120, *rec.RatingCount)
}

func TestNumericStringsAccepted(t *testing.T) {
	rec, _ := normalizeRecord(map[string]any{"name": "Rated", "rating": "4.2"})

	require.NotNil(t, rec.Rating)
	assert.Equal(t, 4.2, *rec.Rating)
}

func TestNegativeRatingCountDropped(t *testing.T) {
	rec, _ := normalizeRecord(map[string]any{"name": "X", "user_ratings_total": float64(-3)})
	assert.Nil(t, rec.RatingCount)
}

func TestGeometryLocation(t *testing.T) {
	rec, _ := normalizeRecord(map[string]any{
		"name": "Pinned",
		"geometry": map[string]any{
			"location": map[string]any{"lat": 52.52, "lng": 13.405},
		},
	})

	require.True(t, rec.HasCoords())
	assert.Equal(t, 52.52, *rec.Lat)
	assert.Equal(t, 13.405, *rec.Lng)
}

func TestPlaceIDAlias(t *testing.T) {
	rec, _ := normalizeRecord(map[string]any{"name": "X", "place_id": "ChIJ123"})
	assert.Equal(t, "ChIJ123", rec.ID)
}
