package pdfparse

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/lines"
)

// Extractor turns PDF bytes into positioned words and rectangles per page.
type Extractor interface {
	Extract(data []byte) ([]lines.Page, error)
}

// Page size used when a page carries no readable MediaBox (US Letter).
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Glyph grouping thresholds, relative to the font size.
const (
	wordGapFactor     = 0.25
	baselineTolerance = 0.5
	descentFactor     = 0.2
	fallbackLineStep  = 14.0
	fallbackFontSize  = 10.0
)

// LedongthucExtractor reads glyph runs and rectangles with
// github.com/ledongthuc/pdf. When no page yields positioned glyphs it falls
// back to the library's plain text, one synthetic line per text line.
type LedongthucExtractor struct{}

// Extract implements Extractor.
func (LedongthucExtractor) Extract(data []byte) (pages []lines.Page, err error) {
	// the reader panics on some malformed content streams
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("contenido PDF inválido: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	glyphs := 0
	for num := 1; num <= reader.NumPage(); num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}
		width, height := mediaBox(page.V)
		content := page.Content()
		words := groupGlyphs(content.Text, height)
		glyphs += len(content.Text)
		pages = append(pages, lines.Page{
			Number: num,
			Width:  width,
			Height: height,
			Words:  words,
			Rects:  convertRects(content.Rect, height),
		})
	}
	if glyphs > 0 {
		return pages, nil
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return nil, err
	}
	return plainTextPages(buf.String()), nil
}

// mediaBox reads the page size, looking at the parent node when the page
// inherits it.
func mediaBox(v pdf.Value) (float64, float64) {
	for node := v; !node.IsNull(); node = node.Key("Parent") {
		box := node.Key("MediaBox")
		if box.Len() == 4 {
			w := box.Index(2).Float64() - box.Index(0).Float64()
			h := box.Index(3).Float64() - box.Index(1).Float64()
			if w > 0 && h > 0 {
				return w, h
			}
		}
	}
	return defaultPageWidth, defaultPageHeight
}

// groupGlyphs joins consecutive glyphs that share a baseline and sit close
// together into words. Coordinates are flipped to a top-left origin.
func groupGlyphs(texts []pdf.Text, pageHeight float64) []lines.Word {
	var words []lines.Word
	var current *lines.Word
	var lastX, lastY float64

	flush := func() {
		if current != nil && strings.TrimSpace(current.Text) != "" {
			words = append(words, *current)
		}
		current = nil
	}

	for _, glyph := range texts {
		if strings.TrimFunc(glyph.S, unicode.IsSpace) == "" {
			flush()
			continue
		}
		size := glyph.FontSize
		if size <= 0 {
			size = fallbackFontSize
		}
		if current != nil {
			sameBaseline := math.Abs(glyph.Y-lastY) <= baselineTolerance
			gap := glyph.X - lastX
			if !sameBaseline || gap > size*wordGapFactor || gap < -size {
				flush()
			}
		}
		bottom := pageHeight - glyph.Y + size*descentFactor
		if current == nil {
			current = &lines.Word{
				X0:       glyph.X,
				X1:       glyph.X + glyph.W,
				Top:      bottom - size,
				Bottom:   bottom,
				FontName: glyph.Font,
				Size:     size,
			}
		}
		current.Text += glyph.S
		current.X1 = math.Max(current.X1, glyph.X+glyph.W)
		lastX, lastY = glyph.X+glyph.W, glyph.Y
	}
	flush()
	return words
}

func convertRects(rects []pdf.Rect, pageHeight float64) []lines.Rect {
	out := make([]lines.Rect, 0, len(rects))
	for _, r := range rects {
		out = append(out, lines.Rect{
			X0:     math.Min(r.Min.X, r.Max.X),
			X1:     math.Max(r.Min.X, r.Max.X),
			Top:    pageHeight - math.Max(r.Min.Y, r.Max.Y),
			Bottom: pageHeight - math.Min(r.Min.Y, r.Max.Y),
		})
	}
	return out
}

// plainTextPages lays text lines out one below the other on a single page.
func plainTextPages(text string) []lines.Page {
	page := lines.Page{Number: 1, Width: defaultPageWidth, Height: defaultPageHeight}
	for i, line := range ingestion.SplitLines(ingestion.CleanText(text)) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		top := float64(i) * fallbackLineStep
		page.Words = append(page.Words, lines.Word{
			Text:   line,
			X1:     float64(len([]rune(line))) * fallbackFontSize / 2,
			Top:    top,
			Bottom: top + fallbackFontSize,
			Size:   fallbackFontSize,
		})
	}
	if len(page.Words) == 0 {
		return nil
	}
	return []lines.Page{page}
}
