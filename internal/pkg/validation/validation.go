// Package validation holds the input rules shared by request binding and the services.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	MaxHobbies    = 25
	MaxHobbyChars = 64
)

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// ZipCode reports whether s is a US ZIP or ZIP+4 code.
func ZipCode(s string) bool {
	return zipPattern.MatchString(strings.TrimSpace(s))
}

// Hobbies trims entries, drops blanks and case-insensitive duplicates (first spelling
// wins) and reports whether the result has an acceptable size.
func Hobbies(in []string) ([]string, bool) {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, h := range in {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if utf8.RuneCountInString(h) > MaxHobbyChars {
			return nil, false
		}
		key := strings.ToLower(h)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, h)
	}
	if len(out) == 0 || len(out) > MaxHobbies {
		return nil, false
	}
	return out, true
}

// Register adds the custom tags and JSON field naming to v.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		if i := strings.IndexByte(name, ','); i >= 0 {
			name = name[:i]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	return v.RegisterValidation("zipcode", func(fl validator.FieldLevel) bool {
		return ZipCode(fl.Field().String())
	})
}

// RegisterGin installs Register on gin's default binding engine.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}
	return Register(v)
}

// Message turns a binding error into a short client-facing sentence.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}
	e := verrs[0]
	return fmt.Sprintf("%s %s", e.Field(), friendlyMessage(e))
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "zipcode":
		return "must be a 5-digit ZIP code"
	case "min":
		return fmt.Sprintf("must have at least %s entries", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s", e.Param())
	case "uuid":
		return "must be a valid UUID"
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}
