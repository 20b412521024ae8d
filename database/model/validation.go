package model

import (
	"strings"
)

const (
	MinZipCode = 10000
	MaxZipCode = 99999
)

// FieldError is a single failed constraint on a model field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned from save hooks when a record breaks one or
// more field constraints.
type ValidationError struct {
	Model  string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	return e.Model + " validation failed: " + strings.Join(e.Messages(), ", ")
}

// Messages returns the human readable message of every failed field.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return msgs
}

type validator struct {
	model  string
	errors []FieldError
}

func (v *validator) add(field, msg string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: msg})
}

func (v *validator) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "Path `"+field+"` is required.")
	}
}

// zipCode checks zip against the allowed range. Unless required, zero means
// the field was left out.
func (v *validator) zipCode(zip int, required bool) {
	switch {
	case zip == 0 && !required:
	case zip < MinZipCode:
		v.add("zipCode", "Zip code too short")
	case zip > MaxZipCode:
		v.add("zipCode", "Zip code too long")
	}
}

func (v *validator) nonNegative(field string, n float64) {
	if n < 0 {
		v.add(field, "Cannot be negative")
	}
}

func (v *validator) err() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Model: v.model, Errors: v.errors}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
