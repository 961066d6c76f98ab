package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/parsing"
	"github.com/jonathan/resume-importer/internal/pdfparse"
	"github.com/jonathan/resume-importer/internal/schemas"
	"github.com/jonathan/resume-importer/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		maxBytesErr   *http.MaxBytesError
		ingestErr     *ingestion.IngestError
		extractErr    *pdfparse.ExtractionError
		parseErr      *parsing.ParseError
		schemaErr     *schemas.ValidationError
		structureErr  *types.StructureError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ingestion.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extractErr), errors.Is(err, pdfparse.ErrNoText),
		errors.As(err, &parseErr), errors.As(err, &ingestErr), errors.As(err, &schemaErr),
		errors.As(err, &structureErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
