package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/p-miano/portfolio-api/errs"
	"github.com/p-miano/portfolio-api/models"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "absurl", func(fl validator.FieldLevel) bool {
		return IsAbsoluteURL(fl.Field().String())
	})
	mustRegister(v, "difficulty", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDifficulty(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "password", func(fl validator.FieldLevel) bool {
		return isStrongPassword(fl.Field().String())
	})
	mustRegister(v, "cleantext", func(fl validator.FieldLevel) bool {
		return isCleanText(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// IsAbsoluteURL accepts URLs with a scheme and a host.
func IsAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}

// isStrongPassword needs six characters with upper, lower, digit and symbol.
func isStrongPassword(p string) bool {
	if len(p) < 6 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// isCleanText rejects U+FFFD, which encoding/json substitutes for invalid
// UTF-8, and control characters other than tab and line breaks.
func isCleanText(s string) bool {
	for _, r := range s {
		if r == utf8.RuneError {
			return false
		}
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// fieldErrors runs struct validation and groups messages per JSON field.
// It returns nil when s is valid.
func fieldErrors(s any) map[string][]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return map[string][]string{"": {err.Error()}}
	}

	fields := make(map[string][]string)
	for _, fe := range validationErrs {
		fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "absurl":
		return fmt.Sprintf("%s must be a valid absolute URL", fe.Field())
	case "difficulty":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.Join(models.DifficultyNames(), ", "))
	case "cleantext":
		return fmt.Sprintf("%s contains invalid characters", fe.Field())
	case "password":
		return "password must be at least 6 characters and contain an uppercase letter, a lowercase letter, a digit and a symbol"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// validationError merges extra checks into the struct errors and returns a
// 400 when anything failed.
func validationError(fields map[string][]string, extra map[string]string) error {
	for field, message := range extra {
		if fields == nil {
			fields = make(map[string][]string)
		}
		fields[field] = append(fields[field], message)
	}
	if len(fields) == 0 {
		return nil
	}
	return errs.NewValidationError(fields)
}

// Date accepts either a calendar date or an RFC 3339 timestamp. Anything
// else decodes without error and is reported by the input's validation, so
// it lands in the per-field errors next to every other bad field.
type Date struct {
	time.Time
	invalid bool
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		d.invalid = true
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	d.invalid = true
	return nil
}

func (d *Date) malformed() bool {
	return d != nil && d.invalid
}

func dateError(field string) string {
	return fmt.Sprintf("%s must be a date (YYYY-MM-DD) or an RFC 3339 timestamp", field)
}

func (d *Date) ptr() *time.Time {
	if d == nil || d.invalid || d.IsZero() {
		return nil
	}
	t := d.Time.UTC()
	return &t
}
