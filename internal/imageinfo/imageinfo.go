package imageinfo

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/rs/zerolog/log"
)

// DefaultSize is the sprite edge length used when an image cannot be read.
const DefaultSize = 16

// Size reads the pixel dimensions of the image at path.
func Size(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// SizeOrDefault is Size with a 16x16 fallback on any read failure.
func SizeOrDefault(path string) (width, height int) {
	w, h, err := Size(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Unable to read image, using default size")
		return DefaultSize, DefaultSize
	}
	return w, h
}
