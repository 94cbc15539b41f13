package models

import (
	"errors"
	"sort"
	"strings"
)

// Persistence errors shared by every card and profile store implementation.
var (
	ErrMissingUserID    = errors.New("user id is required")
	ErrMissingCardID    = errors.New("card id is required")
	ErrCardNotFound     = errors.New("card not found")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrFieldTooLarge    = errors.New("field exceeds the per-field size ceiling")
	ErrDocumentTooLarge = errors.New("card document exceeds the size ceiling")
	ErrInlineVideo      = errors.New("video url must reference blob storage")

	ErrVideoURLWithoutCompletion = errors.New("video url can only be set with completed status")
	ErrCompletedWithoutVideoURL  = errors.New("completed status requires a video url")
)

// ValidationError lists the request fields that are missing or invalid.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Fields, ", ")
}

// RequireFields returns a ValidationError naming every blank field, or nil.
func RequireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &ValidationError{Fields: missing}
}
