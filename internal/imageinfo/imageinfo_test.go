package imageinfo

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
}

func TestSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Sword.png")
	writePNG(t, path, 40, 24)

	w, h, err := Size(path)
	require.NoError(t, err)
	assert.Equal(t, 40, w)
	assert.Equal(t, 24, h)
}

func TestSizeOrDefault(t *testing.T) {
	dir := t.TempDir()

	w, h := SizeOrDefault(filepath.Join(dir, "missing.png"))
	assert.Equal(t, DefaultSize, w)
	assert.Equal(t, DefaultSize, h)

	garbage := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0644))
	w, h = SizeOrDefault(garbage)
	assert.Equal(t, 16, w)
	assert.Equal(t, 16, h)
}
