package ingestion

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format identifies the kind of an input document.
type Format string

// Supported input formats.
const (
	FormatText Format = "text"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// DetectFormat maps a file name to a Format by extension. Unknown
// extensions are reported as ErrUnsupportedFormat.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".text", ".md", "":
		return FormatText, nil
	case ".docx":
		return FormatDOCX, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".pdf":
		return FormatPDF, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Document is an input file read into memory.
type Document struct {
	Name     string
	Format   Format
	Data     []byte
	Metadata *Metadata
}

// NewDocument wraps a payload, detecting its format from name.
func NewDocument(name string, data []byte) (*Document, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, &IngestError{Source: name, Message: "cannot import file", Cause: err}
	}
	return &Document{
		Name:     name,
		Format:   format,
		Data:     data,
		Metadata: NewMetadata(data, name, format),
	}, nil
}

// IngestFromFile reads a document from disk.
func IngestFromFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &IngestError{Source: path, Message: "file not found", Cause: err}
		}
		return nil, &IngestError{Source: path, Message: "failed to read file", Cause: err}
	}
	return NewDocument(filepath.Base(path), data)
}

// Text returns the plain text of a text, DOCX or HTML document. PDF
// documents carry layout and are handled by the PDF importer instead.
func (d *Document) Text() (string, error) {
	var (
		text string
		err  error
	)
	switch d.Format {
	case FormatText:
		if !utf8.Valid(d.Data) {
			return "", &IngestError{Source: d.Name, Message: "text file is not valid UTF-8"}
		}
		text = CleanText(string(d.Data))
	case FormatDOCX:
		text, err = ExtractDOCXText(d.Data)
	case FormatHTML:
		text, err = ExtractHTMLText(bytes.NewReader(d.Data))
	default:
		return "", &IngestError{
			Source:  d.Name,
			Message: fmt.Sprintf("%s documents have no plain text form", d.Format),
			Cause:   ErrUnsupportedFormat,
		}
	}
	if err != nil {
		return "", &IngestError{Source: d.Name, Message: "failed to extract text", Cause: err}
	}
	if d.Metadata != nil {
		d.Metadata.Lines = strings.Count(text, "\n") + 1
	}
	return text, nil
}
