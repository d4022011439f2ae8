package extract

import "tcreator/internal/element"

// Registry dispatches source text to the extractor for its kind.
type Registry struct {
	extractors []Extractor
}

// NewRegistry creates a Registry with the item and tile extractors.
func NewRegistry(pairing Pairing) *Registry {
	return &Registry{
		extractors: []Extractor{
			NewItemExtractor(pairing),
			NewTileExtractor(),
		},
	}
}

// Extract applies the kind's patterns to text. Kinds without patterns yield
// an empty mapping.
func (r *Registry) Extract(text string, kind element.Kind) element.Properties {
	for _, e := range r.extractors {
		if e.CanExtract(kind) {
			return e.Extract(text)
		}
	}
	return element.Properties{}
}
