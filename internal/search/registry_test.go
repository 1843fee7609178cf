package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/placefind/placefind/internal/model"
)

func TestRegistryDispatch(t *testing.T) {
	generic := func(model.PlaceRecord) []string { return []string{"generic"} }
	nearby := func(model.PlaceRecord) []string { return []string{"nearby"} }

	reg := NewRegistry(generic)
	reg.Register(model.QueryNearbySearch, nearby)

	assert.Equal(t, []string{"nearby"}, reg.For(model.QueryNearbySearch)(model.PlaceRecord{}))
	assert.Equal(t, []string{"generic"}, reg.For(model.QueryUnclassified)(model.PlaceRecord{}))
}

func TestRegistryFallsBackForUnregisteredTags(t *testing.T) {
	reg := NewRegistry(func(model.PlaceRecord) []string { return []string{"fallback"} })

	// place_attribute_check is a known tag but nothing registered it here.
	assert.Equal(t, []string{"fallback"}, reg.For(model.QueryPlaceAttributeCheck)(model.PlaceRecord{}))
	assert.Equal(t, []string{"fallback"}, reg.For(model.QueryType("made_up_tag"))(model.PlaceRecord{}))
}
