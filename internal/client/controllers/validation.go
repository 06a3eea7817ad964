package controllers

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks form payloads and reports problems per field, keyed by the
// field's json name.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator that names fields by their json tag.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Struct returns nil when s is valid, otherwise a field -> message map.
func (fv *Validator) Struct(s any) map[string]string {
	err := fv.v.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = fieldError(fe)
	}
	return out
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "url":
		return field + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// joinErrors renders a field error map in a stable order.
func joinErrors(errs map[string]string) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, errs[k])
	}
	return strings.Join(msgs, "; ")
}
