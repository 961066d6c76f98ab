// Package extras provides assembly of extra-section entries (projects,
// certifications, languages, ...) from section lines, the fragment merge
// pass and entry mode inference.
package extras

import (
	"strings"

	"github.com/jonathan/resume-importer/internal/lines"
	"github.com/jonathan/resume-importer/internal/sections"
)

// Right-column detection inside a block.
const (
	rightColumnMinSpread = 120.0
	rightColumnRatio     = 0.6
)

// Indents describes the horizontal layout of a block.
type Indents struct {
	Base float64
	// Right is the indent from which a line counts as right-aligned. It is
	// only meaningful when HasRight is set.
	Right    float64
	HasRight bool
}

// IsRight reports whether indent falls in the right-hand column.
func (i Indents) IsRight(indent float64) bool {
	return i.HasRight && indent >= i.Right
}

// SplitBlocks cuts section lines into blocks. A blank line closes the
// current block and a heading line opens a new one.
func SplitBlocks(all []lines.Line) [][]lines.Line {
	var blocks [][]lines.Line
	var current []lines.Line
	for _, line := range all {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		if sections.IsHeading(text) && len(current) > 0 {
			blocks = append(blocks, current)
			current = []lines.Line{line}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	if len(blocks) == 0 {
		return [][]lines.Line{nil}
	}
	return blocks
}

// InferIndents finds the base indent of block and, when lines spread over
// at least 120pt, a right-column threshold 60% of the way to the widest indent.
func InferIndents(block []lines.Line) Indents {
	var indents []float64
	for _, line := range block {
		if strings.TrimSpace(line.Text) != "" {
			indents = append(indents, line.Indent)
		}
	}
	if len(indents) == 0 {
		return Indents{}
	}
	lo, hi := indents[0], indents[0]
	for _, v := range indents[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi-lo < rightColumnMinSpread {
		return Indents{Base: lo}
	}
	return Indents{Base: lo, Right: lo + (hi-lo)*rightColumnRatio, HasRight: true}
}
