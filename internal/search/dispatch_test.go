package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placefind/placefind/internal/model"
)

func TestResolveTaggedRecords(t *testing.T) {
	resp := Resolve([]byte(`{
		"query_type": "place_search_temporal",
		"results": [
			{"name": "Late Bite", "address": "9 Night Rd", "opening_hours": ["Mon: 9-23"]},
			{"name": "Corner Cafe", "formatted_address": "12 Day St"}
		]
	}`))

	assert.Equal(t, model.QueryPlaceSearchTemporal, resp.QueryType)
	require.Len(t, resp.Records, 2)
	// Server rank order must survive resolution.
	assert.Equal(t, "Late Bite", resp.Records[0].Name)
	assert.Equal(t, "Corner Cafe", resp.Records[1].Name)
	assert.False(t, resp.HasMessage())
}

func TestResolveUntaggedPayload(t *testing.T) {
	resp := Resolve([]byte(`{"results": [{"name": "Old Server Place"}]}`))

	assert.Equal(t, model.QueryUnclassified, resp.QueryType)
	require.Len(t, resp.Records, 1)
}

func TestResolveUnknownTag(t *testing.T) {
	resp := Resolve([]byte(`{"query_type": "street_view_request", "results": [{"name": "Spot"}]}`))

	assert.Equal(t, model.QueryUnclassified, resp.QueryType)
	require.Len(t, resp.Records, 1, "records still normalize under an unknown tag")
}

func TestResolveStringReply(t *testing.T) {
	resp := Resolve([]byte(`{"results": "I couldn't find any places matching your criteria."}`))

	assert.True(t, resp.HasMessage())
	assert.Equal(t, "I couldn't find any places matching your criteria.", resp.Message)
	assert.Empty(t, resp.Records)
}

func TestResolveEmptyResultsIsZeroMatches(t *testing.T) {
	resp := Resolve([]byte(`{"results": []}`))

	require.NotNil(t, resp.Records, "zero matches must stay distinguishable from a missing results field")
	assert.Len(t, resp.Records, 0)
	assert.False(t, resp.HasMessage(), "zero matches is not an explanatory reply")
}

func TestResolveMalformedPayloads(t *testing.T) {
	cases := map[string][]byte{
		"not json":           []byte(`<html>502 Bad Gateway</html>`),
		"missing results":    []byte(`{"status": "ok"}`),
		"results wrong type": []byte(`{"results": 42}`),
		"null results":       []byte(`{"results": null}`),
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := Resolve(body)
			assert.Equal(t, model.QueryUnclassified, resp.QueryType)
			assert.Empty(t, resp.Records)
			assert.False(t, resp.HasMessage())
		})
	}
}

func TestResolveDropsNamelessRecords(t *testing.T) {
	resp := Resolve([]byte(`{"results": [{"name": "Kept"}, {"address": "orphan"}, {"name": ""}]}`))

	require.Len(t, resp.Records, 1)
	assert.Equal(t, "Kept", resp.Records[0].Name)
}
