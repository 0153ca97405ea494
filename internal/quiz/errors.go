package quiz

import "fmt"

// ValidationError reports a value that does not have the shape the quiz
// model requires, such as a wrong option count or an unknown label.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Message
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// ParseError reports a stored record whose payload could not be decoded.
type ParseError struct {
	RecordID int64
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse record %d: %v", e.RecordID, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
