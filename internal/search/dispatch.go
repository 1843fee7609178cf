package search

import (
	"encoding/json"

	"github.com/placefind/placefind/internal/model"
)

// Resolve interprets a raw /search payload into a SearchResponse. The server
// has shipped three body shapes over time: a bare string reply, an untagged
// record array, and a query_type-tagged record array. All three are accepted;
// anything unparseable degrades to zero records under the unclassified tag
// rather than failing the request.
func Resolve(raw []byte) model.SearchResponse {
	resp := model.SearchResponse{QueryType: model.QueryUnclassified}

	var payload struct {
		QueryType string          `json:"query_type"`
		Results   json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return resp
	}

	// Unrecognized tags route to the unclassified renderer; never an error.
	if tag := model.QueryType(payload.QueryType); tag.Known() {
		resp.QueryType = tag
	}

	if len(payload.Results) == 0 {
		return resp
	}

	// String-typed results carry a conversational reply with no place data.
	var message string
	if err := json.Unmarshal(payload.Results, &message); err == nil {
		resp.Message = message
		return resp
	}

	var items []map[string]any
	if err := json.Unmarshal(payload.Results, &items); err != nil {
		return resp
	}

	// Non-nil even when empty: zero matches is a valid outcome, distinct
	// from the string reply and from a malformed payload.
	records := make([]model.PlaceRecord, 0, len(items))
	for _, item := range items {
		if rec, ok := normalizeRecord(item); ok {
			records = append(records, rec)
		}
	}
	resp.Records = records
	return resp
}
