package search

import "github.com/placefind/placefind/internal/model"

// Renderer produces the detail lines for one place record. Each query type
// gets its own strategy; what that strategy draws is up to the presentation
// layer registering it.
type Renderer func(model.PlaceRecord) []string

// Registry maps query types to renderers. The mapping is data: adding a tag
// is a Register call, not a new dispatch branch. Tags outside the registry
// route to the unclassified entry.
type Registry struct {
	byTag map[model.QueryType]Renderer
}

// NewRegistry builds a registry with the given unclassified fallback.
func NewRegistry(fallback Renderer) *Registry {
	r := &Registry{byTag: make(map[model.QueryType]Renderer)}
	r.Register(model.QueryUnclassified, fallback)
	return r
}

func (r *Registry) Register(tag model.QueryType, fn Renderer) {
	r.byTag[tag] = fn
}

// For returns the renderer for a tag, falling back to unclassified.
func (r *Registry) For(tag model.QueryType) Renderer {
	if fn, ok := r.byTag[tag]; ok {
		return fn
	}
	return r.byTag[model.QueryUnclassified]
}
