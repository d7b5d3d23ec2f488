// Where: internal/deployment/errors.go
// What: Typed failure taxonomy for deployment configuration loading.
// Why: Let callers branch on the failure kind instead of matching message text.
package deployment

import "fmt"

// ErrorKind classifies a configuration loading failure.
type ErrorKind string

const (
	// KindConfigNotFound signals no file at the expected path.
	KindConfigNotFound ErrorKind = "ConfigNotFound"
	// KindInvalidFormat signals a JSON parse failure, a non-object document,
	// or a field that fails a format/pattern check.
	KindInvalidFormat ErrorKind = "InvalidFormat"
	// KindMissingField signals an absent required field.
	KindMissingField ErrorKind = "MissingField"
	// KindEmptyField signals a required string that is empty after trimming.
	KindEmptyField ErrorKind = "EmptyField"
	// KindTypeMismatch signals a field present with the wrong JSON type.
	KindTypeMismatch ErrorKind = "TypeMismatch"
)

// Error is the single failure type produced by Load. Field is empty for
// document-level failures (missing file, malformed JSON).
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func errNotFound(path string) *Error {
	return &Error{
		Kind:    KindConfigNotFound,
		Message: fmt.Sprintf("Missing %s at %s", baseName(path), path),
	}
}

func errInvalidJSON(detail string) *Error {
	return &Error{
		Kind:    KindInvalidFormat,
		Message: "Invalid JSON format: " + detail,
	}
}

func errMissingField(field string) *Error {
	return &Error{
		Kind:    KindMissingField,
		Field:   field,
		Message: "Missing required field: " + field,
	}
}

func errEmptyField(field string) *Error {
	return &Error{
		Kind:    KindEmptyField,
		Field:   field,
		Message: field + " cannot be empty",
	}
}

func errTypeMismatch(field, message string) *Error {
	return &Error{
		Kind:    KindTypeMismatch,
		Field:   field,
		Message: message,
	}
}

func errInvalidFormat(field, message string) *Error {
	return &Error{
		Kind:    KindInvalidFormat,
		Field:   field,
		Message: message,
	}
}
