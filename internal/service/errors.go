package service

import (
	"errors"
	"sort"
	"strings"
)

// Error kinds surfaced by the workflow layer. The transport adapter
// maps each kind to a status code exactly once (handler package).
var (
	// ErrConflict: registration collided with an existing username or
	// email. Which of the two is not disclosed.
	ErrConflict = errors.New("username or email already exists")

	// ErrInvalidCredentials covers both unknown identifier and wrong
	// password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound: the requested resource id does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError carries field-level messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString("validation failed")
	for _, k := range keys {
		b.WriteString("; " + k + ": " + e.Fields[k])
	}
	return b.String()
}
