package workspace

import (
	"encoding/json"
	"fmt"
	"io"

	"tcreator/internal/element"
	"tcreator/internal/textutil"
)

// ExportedElement is the JSON form of an element.
type ExportedElement struct {
	Kind       string             `json:"kind"`
	Name       string             `json:"name"`
	Properties element.Properties `json:"properties"`
	PlacesTile string             `json:"places_tile,omitempty"`
	Dust       string             `json:"dust,omitempty"`
}

// ExportTSV writes one row per element property: kind, name, key, value.
// Null values are written as empty cells; elements without properties get a
// single row with empty key and value.
func ExportTSV(w io.Writer, ws *Workspace) error {
	if _, err := fmt.Fprintln(w, "kind\tname\tkey\tvalue"); err != nil {
		return fmt.Errorf("write TSV header: %w", err)
	}

	for _, el := range ws.Elements {
		keys := el.Properties.Keys()
		if len(keys) == 0 {
			keys = []string{""}
		}
		for _, k := range keys {
			v, _ := el.Properties.Get(k)
			_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				textutil.EscapeTSV(el.Kind.String()),
				textutil.EscapeTSV(el.Name),
				textutil.EscapeTSV(k),
				textutil.EscapeTSV(v),
			)
			if err != nil {
				return fmt.Errorf("write TSV row: %w", err)
			}
		}
	}
	return nil
}

// ExportJSON writes the workspace's elements as an indented JSON array.
func ExportJSON(w io.Writer, ws *Workspace) error {
	out := make([]ExportedElement, 0, len(ws.Elements))
	for _, el := range ws.Elements {
		props := el.Properties
		if props == nil {
			props = element.Properties{}
		}
		out = append(out, ExportedElement{
			Kind:       el.Kind.String(),
			Name:       el.Name,
			Properties: props,
			PlacesTile: el.PlacesTile,
			Dust:       el.Dust,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
