package scaffold

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"tcreator/internal/element"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemTemplate = "class <NAME> { damage=<DAMAGE>; useTime=<USETIME>; size=<WIDTH>x<HEIGHT>; rare=<RARE>; }"
const tileTemplate = "class <NAME> { solid=<SOLID>; color=<MAPR>,<MAPG>,<MAPB>; }"

func setup(t *testing.T) (s *Scaffolder, modPath string) {
	t.Helper()
	dir := t.TempDir()
	tmplDir := filepath.Join(dir, "Templates")
	require.NoError(t, os.MkdirAll(tmplDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmplDir, "item.txt"), []byte(itemTemplate), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmplDir, "tile.txt"), []byte(tileTemplate), 0644))

	modPath = filepath.Join(dir, "Mods", "ExampleMod")
	require.NoError(t, os.MkdirAll(modPath, 0755))
	return New(tmplDir), modPath
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNewForm(t *testing.T) {
	t.Run("new item uses defaults", func(t *testing.T) {
		f := NewForm(element.Item, "Sword", nil)
		assert.Equal(t, map[string]string{"<NAME>": "Sword", "<USETIME>": "0", "<DAMAGE>": "0"}, f.Values())
	})

	t.Run("edit tile prefills from properties", func(t *testing.T) {
		props := element.Properties{}
		props.Set("map_color_r", "10")
		props.Set("map_color_g", "20")
		props.SetNull("map_color_b")
		props.Set("solid", "false")

		f := NewForm(element.Tile, "Block", props)
		v := f.Values()
		assert.Equal(t, "10", v["<MAPR>"])
		assert.Equal(t, "20", v["<MAPG>"])
		assert.Equal(t, "0", v["<MAPB>"], "null property falls back to default")
		assert.Equal(t, "false", v["<SOLID>"])
	})

	t.Run("set normalizes keys", func(t *testing.T) {
		f := NewForm(element.Buff, "Haste", nil)
		require.NoError(t, f.Set("duration", "60"))
		got, ok := f.Get("<DURATION>")
		assert.True(t, ok)
		assert.Equal(t, "60", got)
		assert.True(t, f.IsSet("DURATION"))
	})

	t.Run("name cannot be overridden", func(t *testing.T) {
		f := NewForm(element.Tile, "Rack", nil)
		for _, key := range []string{"NAME", "<NAME>", "name"} {
			assert.ErrorIs(t, f.Set(key, "Shelf"), ErrInvalidRequest, key)
		}
		got, _ := f.Get(KeyName)
		assert.Equal(t, "Rack", got)
		assert.Equal(t, "Rack", f.Name)
	})

	t.Run("values is a snapshot", func(t *testing.T) {
		f := NewForm(element.Item, "Sword", nil)
		snap := f.Values()
		require.NoError(t, f.Set("DAMAGE", "99"))
		assert.Equal(t, "0", snap["<DAMAGE>"])
	})
}

func TestSaveItem(t *testing.T) {
	s, modPath := setup(t)

	f := NewForm(element.Item, "Sword", nil)
	require.NoError(t, f.Set("DAMAGE", "25"))

	target, err := s.Save(modPath, f)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(modPath, "Items", "Sword.cs"), target)
	assert.Equal(t, "class Sword { damage=25; useTime=0; size=16x16; rare=<RARE>; }", readFile(t, target))
}

func TestSaveItemReadsSpriteAtSaveTime(t *testing.T) {
	s, modPath := setup(t)
	f := NewForm(element.Item, "Bow", nil)

	// The sprite appears after the form was built.
	sprite := filepath.Join(modPath, "Items", "Bow.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(sprite), 0755))
	out, err := os.Create(sprite)
	require.NoError(t, err)
	require.NoError(t, png.Encode(out, image.NewRGBA(image.Rect(0, 0, 20, 44))))
	require.NoError(t, out.Close())

	target, err := s.Save(modPath, f)
	require.NoError(t, err)
	assert.Contains(t, readFile(t, target), "size=20x44")

	require.NoError(t, f.Set("width", "8"))
	target, err = s.Save(modPath, f)
	require.NoError(t, err)
	assert.Contains(t, readFile(t, target), "size=8x44")
}

func TestSaveTile(t *testing.T) {
	s, modPath := setup(t)

	props := element.Properties{}
	props.Set("map_color_r", "1")
	props.Set("map_color_g", "2")
	props.Set("map_color_b", "3")
	f := NewForm(element.Tile, "Block", props)

	target, err := s.Save(modPath, f)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(modPath, "Tiles", "Block.cs"), target)
	assert.Equal(t, "class Block { solid=true; color=1,2,3; }", readFile(t, target))
}

func TestSaveMissingTemplate(t *testing.T) {
	s, modPath := setup(t)

	_, err := s.Save(modPath, NewForm(element.Npc, "Guide", nil))
	assert.ErrorIs(t, err, ErrTemplateMissing)
}

func TestSaveRejectsInvalidName(t *testing.T) {
	s, modPath := setup(t)

	for _, name := range []string{"", "Two Words", "9Lives", "Bad-Name"} {
		_, err := s.Save(modPath, NewForm(element.Item, name, nil))
		assert.ErrorIs(t, err, ErrInvalidRequest, "name %q", name)
	}
}

func TestValidate(t *testing.T) {
	s := New("Templates")

	assert.NoError(t, s.Validate(Request{Mod: "M", Kind: "tile", Name: "Block_2"}))

	for _, mod := range []string{".", "..", "Mods/Other", `..\Other`} {
		err := s.Validate(Request{Mod: mod, Kind: "tile", Name: "Block"})
		require.ErrorIs(t, err, ErrInvalidRequest, mod)
		assert.Contains(t, err.Error(), "mod must be a single folder name")
	}

	err := s.Validate(Request{Mod: "", Kind: "wall", Name: "Block"})
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "mod is required")
	assert.Contains(t, err.Error(), "kind must be one of")
}

func TestTemplates(t *testing.T) {
	s, _ := setup(t)
	assert.Equal(t, []string{"item", "tile"}, s.Templates())
}
