// Package validation checks request inputs against their `validate` struct
// tags and reports the first failing field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/shopkit/shop-service/pkg/util/errorutil"
)

// Validator wraps go-playground/validator with json field naming.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator whose messages name fields by their json tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s and returns a validation DomainError describing the
// first failing field.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperrors.NewValidationError(message(fieldErrs[0]))
	}
	return apperrors.NewValidationError(err.Error())
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "gte", "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%q must contain at least %s items", field, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%q must be a valid uri", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}
