// Package validation wraps go-playground/validator with field names taken
// from json tags and readable Spanish messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single failed constraint.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// Errors is returned by Validate when one or more fields fail.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Msg
	}
	return strings.Join(msgs, "; ")
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate checks s against its validate tags. It returns nil or Errors.
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Msg: message(fe.Field(), fe.Tag(), fe.Param())})
	}
	return out
}

func message(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s es obligatorio", field)
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s", field, param)
	case "max":
		return fmt.Sprintf("%s debe tener como máximo %s", field, param)
	case "email":
		return fmt.Sprintf("%s debe ser un email válido", field)
	case "url":
		return fmt.Sprintf("%s debe ser una URL válida", field)
	case "uuid":
		return fmt.Sprintf("%s debe ser un ID válido", field)
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, param)
	default:
		return fmt.Sprintf("%s no es válido (%s)", field, tag)
	}
}
