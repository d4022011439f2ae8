package element

import (
	"strconv"
	"strings"
)

// VectorDimensions is the length of every feature vector.
const VectorDimensions = 8

// featureKeys lists, per kind, the properties that feed the feature vector.
// Positions past the list are zero.
var featureKeys = map[Kind][]string{
	Item: {"<DAMAGE>", "<USETIME>", "<USEANIMATION>", "<KNOCKBACK>", "<VALUE>", "<RARE>", "<WIDTH>", "<HEIGHT>"},
	Tile: {"solid", "merge_dirt", "block_light", "map_color_r", "map_color_g", "map_color_b"},
}

// FeatureVector turns the numeric properties of an element into a fixed-length
// vector for similarity search. Booleans map to 0/1; unparsable values are 0.
func FeatureVector(e Element) []float32 {
	vec := make([]float32, VectorDimensions)
	for i, key := range featureKeys[e.Kind] {
		if i >= VectorDimensions {
			break
		}
		raw, ok := e.Properties.Get(key)
		if !ok {
			continue
		}
		vec[i] = parseFeature(raw)
	}
	return vec
}

func parseFeature(raw string) float32 {
	s := strings.TrimSpace(raw)
	switch s {
	case "true":
		return 1
	case "false":
		return 0
	}
	s = strings.TrimRight(s, "fFdDmM")
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0
	}
	return float32(f)
}
