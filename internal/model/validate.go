// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/toeirei/panaderia/internal/i18n"
)

// ErrValidation is matched by every error returned from Validate.
var ErrValidation = errors.New("validation failed")

// FieldError is one failed rule, keyed by the JSON field name.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

// ValidationError lists the failed rules of one record.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks v against its validate tags and returns a
// *ValidationError with translated messages.
func Validate(v any) error {
	err := engine().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: fieldMessage(fe.Field(), fe),
		})
	}
	return out
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return i18n.T("validation.required", field)
	case "email":
		return i18n.T("validation.email", field)
	case "min":
		if fe.Kind() == reflect.String {
			return i18n.T("validation.min_chars", field, fe.Param())
		}
		return i18n.T("validation.min", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return i18n.T("validation.max_chars", field, fe.Param())
		}
		return i18n.T("validation.max", field, fe.Param())
	case "oneof":
		return i18n.T("validation.oneof", field, fe.Param())
	case "gte":
		return i18n.T("validation.gte", field, fe.Param())
	case "gt":
		return i18n.T("validation.gt", field, fe.Param())
	case "datetime":
		return i18n.T("validation.date", field)
	case "url":
		return i18n.T("validation.url", field)
	}
	return i18n.T("validation.invalid", field)
}

// ValidateField checks a single value against tag, reporting it as field.
func ValidateField(field string, v any, tag string) error {
	err := engine().Var(v, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   field,
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: fieldMessage(field, fe),
		})
	}
	return out
}
