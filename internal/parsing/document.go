package parsing

import (
	"strings"

	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/pdfparse"
	"github.com/jonathan/resume-importer/internal/types"
)

// PDFParser structures raw PDF bytes. It returns the default structure
// together with any error.
type PDFParser func(data []byte) (types.ResumeStructure, error)

// ParseDocument structures an ingested document. PDFs go through the
// layout-aware importer; text, DOCX and HTML documents are parsed as text.
// On failure the default structure is returned with the error.
func ParseDocument(doc *ingestion.Document) (types.ResumeStructure, error) {
	return ParseDocumentWith(doc, pdfparse.ParsePDF)
}

// ParseDocumentWith is ParseDocument with an explicit PDF importer.
func ParseDocumentWith(doc *ingestion.Document, parsePDF PDFParser) (types.ResumeStructure, error) {
	if doc.Format == ingestion.FormatPDF {
		return parsePDF(doc.Data)
	}
	text, err := doc.Text()
	if err != nil {
		return types.DefaultStructure(), &ParseError{Source: doc.Name, Message: "cannot read document text", Cause: err}
	}
	if strings.TrimSpace(text) == "" {
		return types.DefaultStructure(), &ParseError{Source: doc.Name, Message: "no usable lines", Cause: ErrNoText}
	}
	return ParseResume(text), nil
}
