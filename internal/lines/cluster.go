package lines

import (
	"math"
	"sort"
	"strings"
)

// Word is a positioned run of glyphs as produced by a PDF extractor.
// Coordinates use a top-left origin.
type Word struct {
	Text     string
	X0       float64
	X1       float64
	Top      float64
	Bottom   float64
	FontName string
	Size     float64
}

// Rect is a filled or stroked rectangle drawn on a page.
type Rect struct {
	X0     float64
	Top    float64
	X1     float64
	Bottom float64
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Page is the geometry of one PDF page.
type Page struct {
	Number int
	Width  float64
	Height float64
	Words  []Word
	Rects  []Rect
}

// Clustering and rule detection thresholds.
const (
	lineTolerance       = 2.0
	singleGapColumn     = 120.0
	minColumnGap        = 80.0
	columnGapFactor     = 6.0
	ruleMaxHeight       = 1.5
	ruleMinWidthRatio   = 0.7
	ruleBottomTolerance = 1.2
)

// FromPages clusters the words of every page into lines and marks lines
// that sit directly above a horizontal rule.
func FromPages(pages []Page) []Line {
	var out []Line
	for _, page := range pages {
		pageLines := ClusterWords(page.Number, page.Words)
		MarkRules(pageLines, page.Rects, page.Width)
		out = append(out, pageLines...)
	}
	return out
}

// ClusterWords groups words into lines by their rounded top coordinate.
// A word joins the current line while its top stays within lineTolerance
// of the first word's top.
func ClusterWords(page int, words []Word) []Line {
	if len(words) == 0 {
		return nil
	}
	sorted := append([]Word(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ki, kj := roundTenth(sorted[i].Top), roundTenth(sorted[j].Top)
		if ki != kj {
			return ki < kj
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var out []Line
	var current []Word
	currentKey := 0.0
	flush := func() {
		if len(current) == 0 {
			return
		}
		out = append(out, buildLine(page, current))
		current = nil
	}
	for _, word := range sorted {
		key := roundTenth(word.Top)
		if len(current) == 0 {
			currentKey = key
			current = []Word{word}
			continue
		}
		if math.Abs(key-currentKey) > lineTolerance {
			flush()
			currentKey = key
			current = []Word{word}
			continue
		}
		current = append(current, word)
	}
	flush()
	return out
}

func buildLine(page int, words []Word) Line {
	line := Line{
		Text:   JoinWordsWithColumns(words),
		Page:   page,
		X0:     words[0].X0,
		X1:     words[0].X1,
		Top:    words[0].Top,
		Bottom: words[0].Bottom,
	}
	var sizes []float64
	var fonts []string
	for _, w := range words {
		line.X0 = math.Min(line.X0, w.X0)
		line.X1 = math.Max(line.X1, w.X1)
		line.Top = math.Min(line.Top, w.Top)
		line.Bottom = math.Max(line.Bottom, w.Bottom)
		if w.Size > 0 {
			sizes = append(sizes, w.Size)
		}
		if w.FontName != "" {
			fonts = append(fonts, w.FontName)
		}
	}
	line.FontSize = Median(sizes)
	line.FontName = MostCommon(fonts)
	return line
}

// JoinWordsWithColumns joins words left to right, inserting a "|" marker
// where the horizontal gap is wide enough to separate two columns.
func JoinWordsWithColumns(words []Word) string {
	if len(words) == 0 {
		return ""
	}
	ordered := append([]Word(nil), words...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].X0 < ordered[j].X0 })

	gaps := make([]float64, 0, len(ordered)-1)
	for i := 1; i < len(ordered); i++ {
		gaps = append(gaps, ordered[i].X0-ordered[i-1].X1)
	}

	var threshold float64
	switch len(gaps) {
	case 0:
		return NormalizeSpaces(ordered[0].Text)
	case 1:
		threshold = singleGapColumn
	case 2:
		threshold = math.Max(minColumnGap, math.Min(gaps[0], gaps[1])*columnGapFactor)
	default:
		threshold = math.Max(minColumnGap, Median(gaps)*columnGapFactor)
	}

	parts := []string{ordered[0].Text}
	for i := 1; i < len(ordered); i++ {
		if gaps[i-1] >= threshold {
			parts = append(parts, "|")
		}
		parts = append(parts, ordered[i].Text)
	}
	return NormalizeSpaces(strings.Join(parts, " "))
}

// MarkRules sets HasRuleBelow on lines whose bottom touches a thin,
// near full-width rectangle.
func MarkRules(pageLines []Line, rects []Rect, pageWidth float64) {
	if len(rects) == 0 || len(pageLines) == 0 {
		return
	}
	var rules []Rect
	for _, rect := range rects {
		if rect.Height() > ruleMaxHeight {
			continue
		}
		if pageWidth > 0 && rect.Width() < pageWidth*ruleMinWidthRatio {
			continue
		}
		rules = append(rules, rect)
	}
	for i := range pageLines {
		for _, rule := range rules {
			if math.Abs(rule.Top-pageLines[i].Bottom) <= ruleBottomTolerance {
				pageLines[i].HasRuleBelow = true
				break
			}
		}
	}
}

// HasRuleDelimiters reports whether any line sits above a horizontal rule.
func HasRuleDelimiters(all []Line) bool {
	for _, line := range all {
		if line.HasRuleBelow {
			return true
		}
	}
	return false
}

// SortByPosition orders lines by page, then top, then left edge.
func SortByPosition(all []Line) {
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Top != b.Top {
			return a.Top < b.Top
		}
		return a.X0 < b.X0
	})
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
