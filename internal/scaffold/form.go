package scaffold

import (
	"fmt"
	"maps"

	"tcreator/internal/element"
	"tcreator/internal/extract"
	"tcreator/internal/template"
)

// Placeholder keys written by every form.
const (
	KeyName   = "<NAME>"
	KeyWidth  = "<WIDTH>"
	KeyHeight = "<HEIGHT>"
)

// Field is one editable value of a kind's form.
type Field struct {
	// Key is the template placeholder the field fills.
	Key   string
	Label string
	// Source is the extracted property that pre-fills the field.
	Source  string
	Default string
}

var itemFields = []Field{
	{Key: "<USETIME>", Label: "Use Time", Source: "<USETIME>", Default: "0"},
	{Key: "<DAMAGE>", Label: "Damage", Source: "<DAMAGE>", Default: "0"},
}

var tileFields = []Field{
	{Key: "<MAPR>", Label: "Map Color R", Source: extract.KeyMapColorR, Default: "0"},
	{Key: "<MAPG>", Label: "Map Color G", Source: extract.KeyMapColorG, Default: "0"},
	{Key: "<MAPB>", Label: "Map Color B", Source: extract.KeyMapColorB, Default: "0"},
	{Key: "<SOLID>", Label: "Solid", Source: extract.KeySolid, Default: "true"},
}

// Fields returns the form fields of kind, excluding the name.
func Fields(kind element.Kind) []Field {
	switch kind {
	case element.Item:
		return itemFields
	case element.Tile:
		return tileFields
	default:
		return nil
	}
}

// Form holds the current values of a create/edit form.
type Form struct {
	Kind element.Kind
	Name string

	values   map[string]string
	explicit map[string]bool
}

// NewForm builds a form for kind, pre-filled from props when editing an
// existing element. props may be nil for a new element.
func NewForm(kind element.Kind, name string, props element.Properties) *Form {
	f := &Form{
		Kind:     kind,
		Name:     name,
		values:   map[string]string{KeyName: name},
		explicit: map[string]bool{},
	}
	for _, field := range Fields(kind) {
		f.values[field.Key] = props.GetOr(field.Source, field.Default)
	}
	return f
}

// Set overrides a value. key may be given with or without angle brackets.
// The name is fixed when the form is built and cannot be overridden.
func (f *Form) Set(key, value string) error {
	tok := template.Token(key)
	if tok == KeyName {
		return fmt.Errorf("%w: %s is set from the element name", ErrInvalidRequest, KeyName)
	}
	f.values[tok] = value
	f.explicit[tok] = true
	return nil
}

// Get returns the current value of key.
func (f *Form) Get(key string) (string, bool) {
	v, ok := f.values[template.Token(key)]
	return v, ok
}

// IsSet reports whether key was overridden with Set.
func (f *Form) IsSet(key string) bool {
	return f.explicit[template.Token(key)]
}

// Values snapshots the current form state for rendering.
func (f *Form) Values() map[string]string {
	return maps.Clone(f.values)
}
