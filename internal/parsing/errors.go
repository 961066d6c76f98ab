package parsing

import (
	"errors"
	"fmt"
)

// ErrNoText is returned when a document yields no usable text.
var ErrNoText = errors.New("document has no text")

// ParseError represents a document that could not be turned into text
type ParseError struct {
	Source  string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error for %s: %s", e.Source, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
