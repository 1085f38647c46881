package forms

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidChoice is recorded when a submitted identifier matches no
	// candidate of a select-style field.
	ErrInvalidChoice = errors.New("not a valid choice")

	// ErrDuplicateField rejects forms declaring two fields with one name.
	ErrDuplicateField = errors.New("forms: duplicate field name")

	// ErrEmptyFieldName rejects fields constructed without a name.
	ErrEmptyFieldName = errors.New("forms: field name is required")

	// ErrReservedSeparator rejects dictionary keys containing the '-' rune,
	// which separates the parent name from the entry key in submitted data.
	ErrReservedSeparator = errors.New("key must not contain '-'")
)

// FieldError aggregates the validation messages recorded on one field.
type FieldError struct {
	Name     string
	Messages []string
}

func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("field %q: %s", e.Name, strings.Join(e.Messages, "; "))
}
