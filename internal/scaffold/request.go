package scaffold

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"tcreator/internal/workspace"

	"github.com/go-playground/validator/v10"
)

// Request names the element to create or rewrite.
type Request struct {
	Mod  string `validate:"required,modname"`
	Kind string `validate:"required,oneof=item tile npc projectile dust buff"`
	Name string `validate:"required,max=100,identifier"`
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("identifier", validateIdentifier)
	_ = v.RegisterValidation("modname", validateModName)
	return v
}

// validateIdentifier requires a class name without spaces.
func validateIdentifier(fl validator.FieldLevel) bool {
	return identifierPattern.MatchString(fl.Field().String())
}

// validateModName requires a single directory name inside the mod location.
func validateModName(fl validator.FieldLevel) bool {
	return workspace.ValidModName(fl.Field().String())
}

// formatValidationError turns validator errors into a single readable error.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid request: %w", err)
	}

	var msgs []string
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
		case "modname":
			msgs = append(msgs, field+" must be a single folder name")
		case "identifier":
			msgs = append(msgs, field+" must be a name without spaces (letters, digits, underscore)")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}
