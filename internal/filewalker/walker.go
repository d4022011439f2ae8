package filewalker

import (
	"os"
	"path/filepath"
	"strings"

	"tcreator/internal/element"

	"github.com/rs/zerolog/log"
)

// SourceExtension is the suffix of element source files.
const SourceExtension = ".cs"

// ListFiles returns the base names, with suffix stripped, of the files in
// directory ending in suffix. A missing directory yields an empty list.
func ListFiles(directory, suffix string) []string {
	entries, err := os.ReadDir(directory)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("dir", directory).Msg("Error listing directory")
		}
		return []string{}
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), suffix))
	}
	return names
}

// ListFolders returns the names of the subdirectories of path. A missing
// path yields an empty list.
func ListFolders(path string) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("dir", path).Msg("Error listing directory")
		}
		return []string{}
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

// FileEntry is a discovered element source file.
type FileEntry struct {
	Path string
	Kind element.Kind
	Name string
}

// Walker discovers element source files inside a mod directory.
type Walker struct {
	kinds []element.Kind
}

// NewWalker creates a Walker over the given kinds, or every kind if none are given.
func NewWalker(kinds ...element.Kind) *Walker {
	if len(kinds) == 0 {
		kinds = element.Kinds
	}
	return &Walker{kinds: kinds}
}

// Walk lists the source files of every kind folder under modPath, in kind order.
func (w *Walker) Walk(modPath string) []FileEntry {
	var entries []FileEntry

	for _, kind := range w.kinds {
		dir := filepath.Join(modPath, kind.Folder())
		for _, name := range ListFiles(dir, SourceExtension) {
			entries = append(entries, FileEntry{
				Path: filepath.Join(dir, name+SourceExtension),
				Kind: kind,
				Name: name,
			})
		}
	}

	log.Debug().Int("count", len(entries)).Str("mod", modPath).Msg("Discovered element files")
	return entries
}
