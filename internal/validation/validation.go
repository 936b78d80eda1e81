// Package validation provides request validation for the API layer.
// Validation happens before any service call, so a validation failure can
// never interleave with a mutation.
package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/apperrors"
)

// Error carries field-specific validation messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

// ValidateUUID checks that the given ID is a non-empty, valid UUID.
func ValidateUUID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.ErrEmptyID
	}

	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrInvalidUUID
	}

	return nil
}
