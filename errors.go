package propgen

import (
	"errors"
	"fmt"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMalformedSchema           = "malformed_schema"
	CodeUnknownType               = "unknown_type"
	CodeUnresolvedReference       = "unresolved_reference"
	CodeUnderspecifiedSchema      = "underspecified_schema"
	CodeMissingPropertyDefinition = "missing_property_definition"
)

// SchemaError is the single error shape surfaced by this package. Every
// failure is terminal for the generation call that raised it; there is no
// retry or partial output behind one of these.
type SchemaError struct {
	Code    string // One of the codes listed above.
	Path    string // JSON Pointer to the offending node (for example: /properties/Name).
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", e.Code, e.Path, e.Message)
}

// CodeOf extracts the error code using errors.As internally. It returns ""
// for nil or foreign errors.
func CodeOf(err error) string {
	var se *SchemaError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}

func schemaErrf(code, path, format string, args ...any) *SchemaError {
	return &SchemaError{Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}
