package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCancelled marks a live-update computation superseded by a newer
	// edit. It is not a user-facing error.
	ErrCancelled = errors.New("computation cancelled")

	ErrConfigurationGap = errors.New("configuration gap")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every offending field of a scenario.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// First returns the first blocking violation.
func (e *ValidationError) First() FieldError {
	if len(e.Fields) == 0 {
		return FieldError{}
	}
	return e.Fields[0]
}

// Err returns nil when no field was rejected.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid scenario: " + strings.Join(parts, "; ")
}

// ConfigurationGapError reports a program whose defaults are missing or
// incomplete for the scenario at hand.
type ConfigurationGapError struct {
	Program Program
	Detail  string
}

func (e *ConfigurationGapError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("program %q: %s", e.Program, e.Detail)
	}
	return fmt.Sprintf("no program defaults configured for %q", e.Program)
}

func (e *ConfigurationGapError) Unwrap() error {
	return ErrConfigurationGap
}
