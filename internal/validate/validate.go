package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// TagEmailShape is the struct tag for the loose email shape check.
const TagEmailShape = "emailshape"

// emailShape requires something@something.something with no whitespace.
// It is a syntactic sanity check, not RFC 5322 validation.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator wraps go-playground/validator with the rules used by requests.
type Validator struct {
	validator *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation(TagEmailShape, func(fl validator.FieldLevel) bool {
		return IsEmailShape(fl.Field().String())
	})

	// report JSON field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validator: v}
}

// FieldError is one failed rule: the JSON field name and the tag that failed.
type FieldError struct {
	Field string
	Tag   string
}

// Error lists every failed rule of a struct.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Tag)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Has reports whether any field failed the given tag.
func (e *Error) Has(tag string) bool {
	for _, f := range e.Fields {
		if f.Tag == tag {
			return true
		}
	}
	return false
}

// Struct validates s and returns *Error when any rule fails.
func (v *Validator) Struct(s any) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}

// IsEmailShape reports whether s looks like an email address. Any Unicode
// space rejects it; the pattern's \s only covers ASCII.
func IsEmailShape(s string) bool {
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}
	return emailShape.MatchString(s)
}
