package extract

import (
	"regexp"
	"strings"

	"tcreator/internal/element"
)

// Tile property keys.
const (
	KeySolid      = "solid"
	KeyMergeDirt  = "merge_dirt"
	KeyBlockLight = "block_light"
	KeyDustType   = "dust_type"
	KeyMapColorR  = "map_color_r"
	KeyMapColorG  = "map_color_g"
	KeyMapColorB  = "map_color_b"
)

// TileExtractor reads the flags and map colour set in a tile's SetStaticDefaults.
type TileExtractor struct{}

func NewTileExtractor() *TileExtractor { return &TileExtractor{} }

func (e *TileExtractor) CanExtract(kind element.Kind) bool {
	return kind == element.Tile
}

var (
	tileSolidPattern      = regexp.MustCompile(`Main\.tileSolid\[Type\]\s+=\s+(.*?);`)
	tileMergeDirtPattern  = regexp.MustCompile(`Main\.tileMergeDirt\[Type\]\s+=\s+(.*?);`)
	tileBlockLightPattern = regexp.MustCompile(`Main\.tileBlockLight\[Type\]\s+=\s+(.*?);`)
	tileDustTypePattern   = regexp.MustCompile(`DustType\s+=\s+(.*?);`)
	tileMapEntryPattern   = regexp.MustCompile(`AddMapEntry\(new Color\((.*?)\)\);`)
)

// modDustPattern captures a mod dust reference inside a DustType value.
var modDustPattern = regexp.MustCompile(`ModContent\.DustType<(?:Dusts\.)?(\w+)>`)

func (e *TileExtractor) Extract(text string) element.Properties {
	props := element.Properties{}

	single := []struct {
		key     string
		pattern *regexp.Regexp
	}{
		{KeySolid, tileSolidPattern},
		{KeyMergeDirt, tileMergeDirtPattern},
		{KeyBlockLight, tileBlockLightPattern},
		{KeyDustType, tileDustTypePattern},
	}
	for _, s := range single {
		if m := s.pattern.FindStringSubmatch(text); m != nil {
			props.Set(s.key, m[1])
		} else {
			props.SetNull(s.key)
		}
	}

	props.SetNull(KeyMapColorR)
	props.SetNull(KeyMapColorG)
	props.SetNull(KeyMapColorB)

	m := tileMapEntryPattern.FindStringSubmatch(text)
	if m == nil {
		return props
	}
	colors := strings.Split(m[1], ",")
	if len(colors) < 3 {
		return props
	}
	props.Set(KeyMapColorR, strings.TrimSpace(colors[0]))
	props.Set(KeyMapColorG, strings.TrimSpace(colors[1]))
	props.Set(KeyMapColorB, strings.TrimSpace(colors[2]))

	return props
}

// ModDust returns the mod dust named by a DustType value, if it references one.
func ModDust(dustType string) (string, bool) {
	m := modDustPattern.FindStringSubmatch(dustType)
	if m == nil {
		return "", false
	}
	return m[1], true
}
