package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/parsing"
	"github.com/jonathan/resume-importer/internal/pdfparse"
	"github.com/jonathan/resume-importer/internal/schemas"
	"github.com/jonathan/resume-importer/internal/types"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "text", Message: "required"}
	assert.Equal(t, "validation error: text - required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: http.StatusOK},
		{name: "ErrValidation", err: &ErrValidation{Field: "text"}, expected: http.StatusBadRequest},
		{name: "MaxBytesError", err: &http.MaxBytesError{Limit: 10}, expected: http.StatusRequestEntityTooLarge},
		{
			name:     "unsupported format",
			err:      &ingestion.IngestError{Source: "cv.exe", Message: "cannot import file", Cause: ingestion.ErrUnsupportedFormat},
			expected: http.StatusUnsupportedMediaType,
		},
		{
			name:     "other ingest failure",
			err:      &ingestion.IngestError{Source: "cv.docx", Message: "corrupt archive"},
			expected: http.StatusUnprocessableEntity,
		},
		{name: "ExtractionError", err: &pdfparse.ExtractionError{Message: "bad"}, expected: http.StatusUnprocessableEntity},
		{name: "wrapped ErrNoText", err: fmt.Errorf("import: %w", pdfparse.ErrNoText), expected: http.StatusUnprocessableEntity},
		{name: "ParseError", err: &parsing.ParseError{Source: "cv.txt", Message: "no usable lines"}, expected: http.StatusUnprocessableEntity},
		{name: "ValidationError", err: &schemas.ValidationError{}, expected: http.StatusUnprocessableEntity},
		{name: "StructureError", err: &types.StructureError{Message: "invalid"}, expected: http.StatusUnprocessableEntity},
		{name: "unknown", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
