package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placefind/placefind/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func ptr[T any](v T) *T { return &v }

func TestSaveAndRecent(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveSearch("pizza in Naples", model.SearchResponse{
		QueryType: model.QueryNearbySearch,
		Records:   []model.PlaceRecord{{Name: "Da Michele", Address: "Via Sersale 1"}},
	})
	require.NoError(t, err)

	_, err = store.SaveSearch("does Starbucks have wifi", model.SearchResponse{
		QueryType: model.QueryPlaceAttributeCheck,
		Message:   "Yes, most locations offer free wifi.",
	})
	require.NoError(t, err)

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "does Starbucks have wifi", entries[0].Query)
	assert.Equal(t, model.QueryPlaceAttributeCheck, entries[0].QueryType)
	assert.Equal(t, 0, entries[0].ResultCount)
	assert.NotEmpty(t, entries[0].Message)

	assert.Equal(t, "pizza in Naples", entries[1].Query)
	assert.Equal(t, 1, entries[1].ResultCount)
}

func TestPlacesRoundTrip(t *testing.T) {
	store := newTestStore(t)

	original := []model.PlaceRecord{
		{
			ID:           "ChIJ123",
			Name:         "Veggie Spot",
			Address:      "123 Mitte St",
			Rating:       ptr(4.5),
			RatingCount:  ptr(120),
			Phone:        ptr("+49 30 1234"),
			Website:      ptr("https://veggiespot.example"),
			OpeningHours: []string{"Mon: 9-5", "Tue: 9-5"},
			Lat:          ptr(52.52),
			Lng:          ptr(13.405),
		},
		{Name: "Bare Place"},
	}

	id, err := store.SaveSearch("vegan restaurants Berlin Mitte", model.SearchResponse{
		QueryType: model.QueryNearbySearch,
		Records:   original,
	})
	require.NoError(t, err)

	got, err := store.Places(id)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, original[0], got[0], "optional fields survive the round trip")

	// Absent stays absent.
	assert.Nil(t, got[1].Rating)
	assert.Nil(t, got[1].Phone)
	assert.Nil(t, got[1].OpeningHours)
	assert.False(t, got[1].HasCoords())
}

func TestRecentLimit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := store.SaveSearch("q", model.SearchResponse{QueryType: model.QueryUnclassified})
		require.NoError(t, err)
	}

	entries, err := store.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestPlacesUnknownSearch(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Places("no-such-id")
	require.NoError(t, err)
	assert.Empty(t, got)
}
