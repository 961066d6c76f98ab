package pdfparse

import (
	"errors"
	"strings"
)

// ErrNoText is returned when the PDF opens but yields no usable lines.
// The message is shown to users as is.
var ErrNoText = errors.New("No se pudo extraer texto del PDF.") //nolint:revive,stylecheck // user-facing message

// ExtractionError is returned when the PDF cannot be opened or read.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	detail := strings.TrimSpace(e.Message)
	if e.Cause != nil {
		if cause := strings.TrimSpace(e.Cause.Error()); cause != "" {
			detail = cause
		}
	}
	if detail == "" {
		detail = "error desconocido."
	}
	return "No se pudo leer el PDF: " + detail
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
