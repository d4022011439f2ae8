package extract

import "tcreator/internal/element"

// Extractor pulls placeholder values out of the text of one element kind.
type Extractor interface {
	// CanExtract returns true if this extractor handles the given kind.
	CanExtract(kind element.Kind) bool
	// Extract scans source text. It never fails: unmatched patterns are
	// absent or null in the result.
	Extract(text string) element.Properties
}

// Pairing selects how item assignments are turned into keys.
type Pairing string

const (
	// PairPositional zips the identifier scan with the Item./Tile. value scan
	// by position, truncating to the shorter sequence.
	PairPositional Pairing = "positional"
	// PairNamed reads key and value from the same Item./Tile. assignment.
	PairNamed Pairing = "named"
)

// ParsePairing maps a config string to a Pairing, defaulting to positional.
func ParsePairing(s string) Pairing {
	if Pairing(s) == PairNamed {
		return PairNamed
	}
	return PairPositional
}
