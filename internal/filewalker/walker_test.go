package filewalker

import (
	"os"
	"path/filepath"
	"testing"

	"tcreator/internal/element"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("// source"), 0644))
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Sword.cs"))
	writeFile(t, filepath.Join(dir, "Axe.cs"))
	writeFile(t, filepath.Join(dir, "Sword.png"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Nested.cs"), 0755))

	assert.Equal(t, []string{"Axe", "Sword"}, ListFiles(dir, ".cs"))
	assert.Equal(t, []string{"Sword"}, ListFiles(dir, ".png"))
}

func TestListFilesMissingDirectory(t *testing.T) {
	got := ListFiles(filepath.Join(t.TempDir(), "Items"), ".cs")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListFolders(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "ModB"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "ModA"), 0755))
	writeFile(t, filepath.Join(root, "readme.txt"))

	assert.Equal(t, []string{"ModA", "ModB"}, ListFolders(root))
	assert.Empty(t, ListFolders(filepath.Join(root, "nope")))
}

func TestWalk(t *testing.T) {
	mod := t.TempDir()
	writeFile(t, filepath.Join(mod, "Items", "Sword.cs"))
	writeFile(t, filepath.Join(mod, "Tiles", "Block.cs"))
	writeFile(t, filepath.Join(mod, "Buffs", "Haste.cs"))

	entries := NewWalker().Walk(mod)
	require.Len(t, entries, 3)
	assert.Equal(t, FileEntry{Path: filepath.Join(mod, "Items", "Sword.cs"), Kind: element.Item, Name: "Sword"}, entries[0])
	assert.Equal(t, element.Tile, entries[1].Kind)
	assert.Equal(t, element.Buff, entries[2].Kind)

	only := NewWalker(element.Tile).Walk(mod)
	require.Len(t, only, 1)
	assert.Equal(t, "Block", only[0].Name)
}
