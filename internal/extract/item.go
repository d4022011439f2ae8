package extract

import (
	"regexp"
	"strings"

	"tcreator/internal/element"
)

// ItemExtractor reads Item.* assignments from an item's SetDefaults body.
type ItemExtractor struct {
	pairing Pairing
}

func NewItemExtractor(pairing Pairing) *ItemExtractor {
	return &ItemExtractor{pairing: pairing}
}

func (e *ItemExtractor) CanExtract(kind element.Kind) bool {
	return kind == element.Item
}

// itemValuePattern captures any `identifier = value;` assignment.
var itemValuePattern = regexp.MustCompile(`(\w+)\s+=\s+(.*?);`)

// itemCallPattern captures the right-hand side of `Item.x = value;` and `Tile.x = value;`.
var itemCallPattern = regexp.MustCompile(`(?:Item|Tile)\.\w+\s+=\s+(.*?);`)

// itemNamedPattern captures both the member name and value of an Item./Tile. assignment.
var itemNamedPattern = regexp.MustCompile(`(?:Item|Tile)\.(\w+)\s+=\s+(.*?);`)

// placeableTilePattern captures the mod tile passed to DefaultToPlaceableTile.
var placeableTilePattern = regexp.MustCompile(`Item\.DefaultToPlaceableTile\(ModContent\.TileType<Tiles\.(\w+)>`)

func (e *ItemExtractor) Extract(text string) element.Properties {
	if e.pairing == PairNamed {
		return extractNamed(text)
	}
	return extractPositional(text)
}

func extractPositional(text string) element.Properties {
	props := element.Properties{}

	keys := itemValuePattern.FindAllStringSubmatch(text, -1)
	values := itemCallPattern.FindAllStringSubmatch(text, -1)

	n := min(len(keys), len(values))
	for i := 0; i < n; i++ {
		props.Set(placeholderKey(keys[i][1]), values[i][1])
	}
	return props
}

func extractNamed(text string) element.Properties {
	props := element.Properties{}
	for _, m := range itemNamedPattern.FindAllStringSubmatch(text, -1) {
		props.Set(placeholderKey(m[1]), m[2])
	}
	return props
}

// PlaceableTile returns the name of the mod tile the item places, if any.
func PlaceableTile(text string) (string, bool) {
	m := placeableTilePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func placeholderKey(identifier string) string {
	return "<" + strings.ToUpper(identifier) + ">"
}
