package gogen

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrorCode represents a machine-readable generation error category.
type ErrorCode string

const (
	// CodeUnsupportedKind: a type kind has no handler in the current context.
	CodeUnsupportedKind ErrorCode = "unsupported_kind"
	// CodeUnresolvedReference: a $ref names a type nobody registered.
	CodeUnresolvedReference ErrorCode = "unresolved_reference"
	// CodeNamingCollision: two artifacts map to the same Go identifier.
	CodeNamingCollision ErrorCode = "naming_collision"
	// CodeUnsupportedDirection: no generation rule exists for the direction.
	CodeUnsupportedDirection ErrorCode = "unsupported_direction"
	// CodeResolutionCycle: a typedef transitively resolves itself.
	CodeResolutionCycle ErrorCode = "resolution_cycle"
)

// Sentinels for errors.Is. They match any *Error with the same code.
var (
	ErrUnsupportedKind      = &Error{Code: CodeUnsupportedKind}
	ErrUnresolvedReference  = &Error{Code: CodeUnresolvedReference}
	ErrNamingCollision      = &Error{Code: CodeNamingCollision}
	ErrUnsupportedDirection = &Error{Code: CodeUnsupportedDirection}
	ErrResolutionCycle      = &Error{Code: CodeResolutionCycle}
)

// Error is a fatal generation error. Details locate the offending schema
// entry (domain, type, command, event, property).
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Details) > 0 {
		b.WriteString(" (")
		for i, k := range slices.Sorted(maps.Keys(e.Details)) {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.Details[k])
		}
		b.WriteString(")")
	}
	return b.String()
}

// Is reports whether target is the sentinel for e's code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Message == "" && t.Code == e.Code
}

// Errorf creates a new generation error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	maps.Copy(details, e.Details)
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// withDetail annotates err with location context. A key that is already set
// is kept, so the innermost location wins.
func withDetail(err error, key string, value any) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	if _, ok := e.Details[key]; ok {
		return err
	}
	return e.WithDetail(key, value)
}
