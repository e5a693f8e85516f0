package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/leapstack-labs/dotviz/internal/render"
)

// validate is a singleton validator instance
var validate *validator.Validate

var cssLengthPattern = regexp.MustCompile(`^\d+(\.\d+)?(px|%|em|rem|vh|vw)$`)

func init() {
	validate = validator.New()
	// Report fields by their koanf key rather than the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("css_length", func(fl validator.FieldLevel) bool {
		return cssLengthPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("css_color", func(fl validator.FieldLevel) bool {
		return render.ValidColor(fl.Field().String())
	})
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError reports the first failing field by its config key.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		key := strings.TrimPrefix(e.Namespace(), "Config.")
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s is required", key)
		case "oneof":
			return fmt.Errorf("%s must be one of [%s], got %q", key, e.Param(), e.Value())
		case "css_length":
			return fmt.Errorf("%s must be a CSS length such as 1000px or 100%%, got %q", key, e.Value())
		case "css_color":
			return fmt.Errorf("%s must be a hex, rgb(), hsl() or named colour, got %q", key, e.Value())
		case "url":
			return fmt.Errorf("%s must be a URL, got %q", key, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", key, e.Tag())
		}
	}

	return err
}
