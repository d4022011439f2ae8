package element

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownKind is returned when a kind name does not match any element kind.
var ErrUnknownKind = errors.New("unknown element kind")

// Kind identifies the type of game content an element defines.
type Kind int

const (
	Tile Kind = iota
	Item
	Npc
	Projectile
	Dust
	Buff
)

// Kinds lists every element kind in display order.
var Kinds = []Kind{Item, Tile, Npc, Projectile, Dust, Buff}

var kindNames = map[Kind]string{
	Tile:       "tile",
	Item:       "item",
	Npc:        "npc",
	Projectile: "projectile",
	Dust:       "dust",
	Buff:       "buff",
}

// String returns the lower-case kind name, which is also the template name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Folder returns the mod subdirectory holding sources of this kind (Items, Tiles, ...).
func (k Kind) Folder() string {
	name := k.String()
	return strings.ToUpper(name[:1]) + name[1:] + "s"
}

// ParseKind resolves a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == want {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Properties maps a placeholder name to an extracted value. A nil value means
// the pattern for that key did not match; a missing key means the same.
type Properties map[string]*string

// Get returns the value for key and whether it was present and non-null.
func (p Properties) Get(key string) (string, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// GetOr returns the value for key, or fallback when absent.
func (p Properties) GetOr(key, fallback string) string {
	if v, ok := p.Get(key); ok {
		return v
	}
	return fallback
}

// Set stores a present value.
func (p Properties) Set(key, value string) {
	p[key] = &value
}

// SetNull records that key was looked for and not found.
func (p Properties) SetNull(key string) {
	p[key] = nil
}

// Keys returns the property keys in sorted order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Element is a discovered game-content definition inside a mod.
type Element struct {
	Kind       Kind
	Name       string
	Path       string
	Properties Properties
	// PlacesTile is the mod tile an item places, if any.
	PlacesTile string
	// Dust is the mod dust a tile emits, if any.
	Dust string
}
