package cache

import (
	"maps"

	"tcreator/internal/element"
	"tcreator/internal/textutil"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

// Entry is the extraction result for one source file's content.
type Entry struct {
	Properties element.Properties
	PlacesTile string
	Dust       string
}

// ExtractionCache remembers extraction results by kind and content hash, so a
// refresh only re-runs the patterns over files whose text changed.
type ExtractionCache struct {
	lru *lru.Cache[string, Entry]
}

// NewExtractionCache creates a cache holding up to size entries. A size below
// one disables caching.
func NewExtractionCache(size int) *ExtractionCache {
	if size < 1 {
		return &ExtractionCache{}
	}
	c, err := lru.New[string, Entry](size)
	if err != nil {
		log.Warn().Err(err).Int("size", size).Msg("Extraction cache disabled")
		return &ExtractionCache{}
	}
	return &ExtractionCache{lru: c}
}

func key(kind element.Kind, content string) string {
	return kind.String() + ":" + textutil.Hash(content)
}

// Get returns a copy of the cached entry for content.
func (c *ExtractionCache) Get(kind element.Kind, content string) (Entry, bool) {
	if c == nil || c.lru == nil {
		return Entry{}, false
	}
	e, ok := c.lru.Get(key(kind, content))
	if !ok {
		return Entry{}, false
	}
	e.Properties = maps.Clone(e.Properties)
	return e, true
}

// Set stores the extraction result for content.
func (c *ExtractionCache) Set(kind element.Kind, content string, e Entry) {
	if c == nil || c.lru == nil {
		return
	}
	e.Properties = maps.Clone(e.Properties)
	c.lru.Add(key(kind, content), e)
}

// Len reports the number of cached entries.
func (c *ExtractionCache) Len() int {
	if c == nil || c.lru == nil {
		return 0
	}
	return c.lru.Len()
}
