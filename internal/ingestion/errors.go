package ingestion

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for file extensions the importer cannot read.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// IngestError represents a failure reading or decoding an input document
type IngestError struct {
	Source  string
	Message string
	Cause   error
}

func (e *IngestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingest error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingest error for %s: %s", e.Source, e.Message)
}

func (e *IngestError) Unwrap() error {
	return e.Cause
}
