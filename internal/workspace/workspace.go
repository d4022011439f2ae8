package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tcreator/internal/cache"
	"tcreator/internal/element"
	"tcreator/internal/extract"
	"tcreator/internal/filewalker"

	"github.com/rs/zerolog/log"
)

var (
	// ErrElementNotFound is returned by Find when no element has the given name.
	ErrElementNotFound = errors.New("element not found")
	// ErrInvalidMod is returned by Open for a mod name that is not a single folder.
	ErrInvalidMod = errors.New("invalid mod name")
)

// Workspace is the set of elements discovered in one mod. It is rebuilt in
// full by every Open and never mutated afterwards.
type Workspace struct {
	Root     string
	Mod      string
	Elements []element.Element
}

// Path returns the mod directory.
func (w *Workspace) Path() string {
	return filepath.Join(w.Root, w.Mod)
}

// Loader builds workspaces from mod directories.
type Loader struct {
	registry *extract.Registry
	walker   *filewalker.Walker
	cache    *cache.ExtractionCache
}

// NewLoader creates a Loader. cache may be nil.
func NewLoader(registry *extract.Registry, c *cache.ExtractionCache) *Loader {
	return &Loader{
		registry: registry,
		walker:   filewalker.NewWalker(),
		cache:    c,
	}
}

// ListMods returns the mod directories under root.
func ListMods(root string) []string {
	return filewalker.ListFolders(root)
}

// ValidModName reports whether mod names one folder of the mod location: no
// path separators and neither "." nor "..".
func ValidModName(mod string) bool {
	if mod == "" || mod == "." || mod == ".." {
		return false
	}
	return !strings.ContainsAny(mod, `/\`)
}

// Open scans root/mod and extracts every element source file.
func (l *Loader) Open(root, mod string) (*Workspace, error) {
	if !ValidModName(mod) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMod, mod)
	}
	ws := &Workspace{Root: root, Mod: mod}

	info, err := os.Stat(ws.Path())
	if err != nil {
		return nil, fmt.Errorf("open mod %s: %w", mod, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("mod is not a directory: %s", ws.Path())
	}

	for _, entry := range l.walker.Walk(ws.Path()) {
		ws.Elements = append(ws.Elements, l.load(entry))
	}

	log.Info().
		Str("mod", mod).
		Int("elements", len(ws.Elements)).
		Msg("Workspace opened")
	return ws, nil
}

func (l *Loader) load(entry filewalker.FileEntry) element.Element {
	el := element.Element{
		Kind: entry.Kind,
		Name: entry.Name,
		Path: entry.Path,
	}

	data, err := os.ReadFile(entry.Path)
	if err != nil {
		log.Warn().Err(err).Str("file", entry.Path).Msg("Error opening source file")
		el.Properties = element.Properties{}
		return el
	}
	content := string(data)

	if cached, ok := l.cache.Get(entry.Kind, content); ok {
		el.Properties = cached.Properties
		el.PlacesTile = cached.PlacesTile
		el.Dust = cached.Dust
		return el
	}

	el.Properties = l.registry.Extract(content, entry.Kind)
	switch entry.Kind {
	case element.Item:
		el.PlacesTile, _ = extract.PlaceableTile(content)
	case element.Tile:
		if dustType, ok := el.Properties.Get(extract.KeyDustType); ok {
			el.Dust, _ = extract.ModDust(dustType)
		}
	}

	l.cache.Set(entry.Kind, content, cache.Entry{
		Properties: el.Properties,
		PlacesTile: el.PlacesTile,
		Dust:       el.Dust,
	})
	return el
}

// Find returns the element called name. When several kinds share the name,
// the first in kind order wins unless kinds narrows the search.
func (w *Workspace) Find(name string, kinds ...element.Kind) (element.Element, error) {
	for _, el := range w.Elements {
		if el.Name != name {
			continue
		}
		if len(kinds) > 0 && !containsKind(kinds, el.Kind) {
			continue
		}
		return el, nil
	}
	return element.Element{}, fmt.Errorf("%w: %s", ErrElementNotFound, name)
}

// OfKind returns the elements of one kind, in discovery order.
func (w *Workspace) OfKind(kind element.Kind) []element.Element {
	var out []element.Element
	for _, el := range w.Elements {
		if el.Kind == kind {
			out = append(out, el)
		}
	}
	return out
}

func containsKind(kinds []element.Kind, k element.Kind) bool {
	for _, kk := range kinds {
		if kk == k {
			return true
		}
	}
	return false
}
