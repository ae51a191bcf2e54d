package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	ErrLeagueNotFound = fmt.Errorf("%w: league", ErrNotFound)
	ErrClubNotFound   = fmt.Errorf("%w: club", ErrNotFound)
	ErrPlayerNotFound = fmt.Errorf("%w: player", ErrNotFound)
	ErrFanNotFound    = fmt.Errorf("%w: fan", ErrNotFound)

	ErrLeagueInUse = fmt.Errorf("%w: league is still referenced by clubs", ErrConflict)
)

// ValidationError carries per-field messages keyed by the JSON/form field
// name. Items of array fields are keyed as "field.index".
type ValidationError struct {
	Fields map[string]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func fieldError(field, message string) *ValidationError {
	v := newValidationError()
	v.Add(field, message)
	return v
}

// Add records message for field unless the field already has one.
func (v *ValidationError) Add(field, message string) {
	if _, exists := v.Fields[field]; !exists {
		v.Fields[field] = message
	}
}

func (v *ValidationError) Has(field string) bool {
	_, ok := v.Fields[field]
	return ok
}

func (v *ValidationError) Empty() bool {
	return len(v.Fields) == 0
}

// Err returns nil when no field failed.
func (v *ValidationError) Err() error {
	if v.Empty() {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(keys, ", "))
}

func (v *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
