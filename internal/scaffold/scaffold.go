package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"tcreator/internal/element"
	"tcreator/internal/filewalker"
	"tcreator/internal/imageinfo"
	"tcreator/internal/template"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var (
	// ErrTemplateMissing is returned when no template exists for a kind.
	ErrTemplateMissing = errors.New("template not found")
	// ErrInvalidRequest wraps request validation failures.
	ErrInvalidRequest = errors.New("invalid request")
)

// TemplateExtension is the suffix of template files.
const TemplateExtension = ".txt"

// Scaffolder writes element sources from kind templates.
type Scaffolder struct {
	templateDir string
	validate    *validator.Validate
}

func New(templateDir string) *Scaffolder {
	return &Scaffolder{
		templateDir: templateDir,
		validate:    newValidator(),
	}
}

// TemplatePath returns Templates/<kind>.txt.
func (s *Scaffolder) TemplatePath(kind element.Kind) string {
	return filepath.Join(s.templateDir, kind.String()+TemplateExtension)
}

// Templates lists the template names present in the template directory.
func (s *Scaffolder) Templates() []string {
	return filewalker.ListFiles(s.templateDir, TemplateExtension)
}

// TargetPath returns <mod>/<Kind>s/<name>.cs.
func TargetPath(modPath string, kind element.Kind, name string) string {
	return filepath.Join(modPath, kind.Folder(), name+filewalker.SourceExtension)
}

// Validate checks a create/edit request.
func (s *Scaffolder) Validate(req Request) error {
	if err := s.validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Save renders the kind's template with the form's values and writes the
// element source into the mod. Values are collected when Save runs; item
// sprite dimensions are read from <mod>/Items/<name>.png at that point
// unless the form overrides them.
func (s *Scaffolder) Save(modPath string, form *Form) (string, error) {
	if err := s.Validate(Request{Mod: filepath.Base(modPath), Kind: form.Kind.String(), Name: form.Name}); err != nil {
		return "", err
	}

	tmplPath := s.TemplatePath(form.Kind)
	if _, err := os.Stat(tmplPath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateMissing, tmplPath)
	}

	values := form.Values()
	if form.Kind == element.Item {
		resolveSpriteSize(modPath, form, values)
	}

	target := TargetPath(modPath, form.Kind, form.Name)
	if err := template.WriteFile(tmplPath, target, values); err != nil {
		return "", fmt.Errorf("save %s %s: %w", form.Kind, form.Name, err)
	}

	log.Debug().Str("kind", form.Kind.String()).Str("name", form.Name).Int("values", len(values)).Msg("Element saved")
	return target, nil
}

func resolveSpriteSize(modPath string, form *Form, values map[string]string) {
	if form.IsSet(KeyWidth) && form.IsSet(KeyHeight) {
		return
	}
	sprite := filepath.Join(modPath, element.Item.Folder(), form.Name+".png")
	w, h := imageinfo.SizeOrDefault(sprite)
	if !form.IsSet(KeyWidth) {
		values[KeyWidth] = strconv.Itoa(w)
	}
	if !form.IsSet(KeyHeight) {
		values[KeyHeight] = strconv.Itoa(h)
	}
}
