package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBodyPath = "word/document.xml"

// ExtractDOCXText returns the paragraph text of a .docx document, one
// paragraph per line. Numbered or bulleted paragraphs are prefixed with "- ".
func ExtractDOCXText(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive: %w", err)
	}

	var body *zip.File
	for _, f := range archive.File {
		if f.Name == docxBodyPath {
			body = f
			break
		}
	}
	if body == nil {
		return "", fmt.Errorf("docx archive has no %s", docxBodyPath)
	}

	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", docxBodyPath, err)
	}
	defer func() { _ = rc.Close() }()

	text, err := readDocumentXML(rc)
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

// readDocumentXML walks the WordprocessingML token stream. Only local names
// are compared so the w: namespace prefix does not matter.
func readDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var out strings.Builder
	var paragraph strings.Builder
	inText := false
	listItem := false

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", docxBodyPath, err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				paragraph.Reset()
				listItem = false
			case "numPr":
				listItem = true
			case "t":
				inText = true
			case "tab":
				paragraph.WriteString(" ")
			case "br", "cr":
				paragraph.WriteString("\n")
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				line := paragraph.String()
				if listItem && strings.TrimSpace(line) != "" {
					line = "- " + strings.TrimSpace(line)
				}
				out.WriteString(line)
				out.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				paragraph.Write(el)
			}
		}
	}
	return out.String(), nil
}
