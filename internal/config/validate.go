package config

import (
	"errors"
	"fmt"
	"go/token"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators registers the configuration-specific rules.
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("goident", validateGoIdent)
}

// validateGoIdent accepts valid Go identifiers that are not keywords.
func validateGoIdent(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return token.IsIdentifier(s) && s != "_"
}

func newValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	if err := RegisterCustomValidators(v); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	return v, nil
}

// Validate checks the configuration. Failures wrap ErrInvalid and name the
// offending keys.
func (c *Config) Validate() error {
	v, err := newValidator()
	if err != nil {
		return err
	}

	err = v.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %q fails %q", keyPath(fe.Namespace()), fe.Value(), fe.Tag()))
	}

	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// keyPath turns "Config.naming.wither_prefix" into "naming.wither_prefix".
func keyPath(namespace string) string {
	_, rest, ok := strings.Cut(namespace, ".")
	if !ok {
		return namespace
	}

	return rest
}
