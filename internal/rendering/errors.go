// Package rendering projects a resume structure back into plain text for
// previews and template-free export.
package rendering

import "fmt"

// TemplateError represents an error reading, parsing or executing a text template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
