package leads

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidRequest is matched by every *ValidationError.
	ErrInvalidRequest = errors.New("invalid contact request")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")
)

// ValidationError lists the request fields that failed structural checks.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid contact request: " + strings.Join(e.Fields, ", ")
}

// Is lets errors.Is(err, ErrInvalidRequest) match any validation failure.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}
