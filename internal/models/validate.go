// filepath: internal/models/validate.go
package models

import (
	"fmt"
	"strings"
)

// ValidationError reports the fields that made an insertable shape invalid.
// It is produced before any store mutation takes place.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: missing or invalid field(s): %s", strings.Join(e.Fields, ", "))
}

// newValidationError returns nil when no fields are listed, so Validate
// methods can collect offenders and return the result directly.
func newValidationError(fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// Validate checks that all required user fields are present.
func (in InsertUser) Validate() error {
	var bad []string
	if in.Username == "" {
		bad = append(bad, "username")
	}
	if in.Password == "" {
		bad = append(bad, "password")
	}
	return newValidationError(bad)
}

// Validate checks that all required track fields are present.
// BPM, Key and Featured are optional and default to absent/false.
func (in InsertTrack) Validate() error {
	var bad []string
	if in.Title == "" {
		bad = append(bad, "title")
	}
	if in.FileName == "" {
		bad = append(bad, "fileName")
	}
	if in.Genre == "" {
		bad = append(bad, "genre")
	}
	if in.Mood == "" {
		bad = append(bad, "mood")
	}
	if in.Duration == "" {
		bad = append(bad, "duration")
	}
	return newValidationError(bad)
}

// Validate checks that all required genre fields are present.
func (in InsertGenre) Validate() error {
	var bad []string
	if in.Name == "" {
		bad = append(bad, "name")
	}
	return newValidationError(bad)
}

// Validate checks that all required mood fields are present.
func (in InsertMood) Validate() error {
	var bad []string
	if in.Name == "" {
		bad = append(bad, "name")
	}
	return newValidationError(bad)
}
