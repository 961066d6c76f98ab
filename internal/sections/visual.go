package sections

import (
	"strings"

	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/lines"
)

// Visual salience thresholds.
const (
	visualSizeRatio      = 1.18
	visualBoldSizeRatio  = 1.08
	visualUppercaseRatio = 0.25
	visualMaxLen         = 60
	visualMaxIndent      = 8.0
	textUppercaseRatio   = 0.8
	textMaxLen           = 40
)

// knownSectionTitles are accepted as titles on their own, compared after
// NormalizeSectionTitle.
var knownSectionTitles = map[string]bool{
	"EXPERIENCIA":             true,
	"EXPERIENCIA PROFESIONAL": true,
	"EXPERIENCIA LABORAL":     true,
	"EDUCACIÓN":               true,
	"EDUCACION":               true,
	"HABILIDADES":             true,
	"RESUMEN":                 true,
	"PERFIL":                  true,
	"PROYECTOS":               true,
	"CERTIFICACIONES":         true,
	"IDIOMAS":                 true,
	"PUBLICACIONES":           true,
	"VOLUNTARIADO":            true,
	"PREMIOS":                 true,
	"LOGROS":                  true,
	"REFERENCIAS":             true,
	"EXPERIENCE":              true,
	"WORK EXPERIENCE":         true,
	"PROFESSIONAL EXPERIENCE": true,
	"EDUCATION":               true,
	"SKILLS":                  true,
	"SUMMARY":                 true,
	"PROFILE":                 true,
	"PROJECTS":                true,
	"CERTIFICATIONS":          true,
	"LANGUAGES":               true,
	"PUBLICATIONS":            true,
	"AWARDS":                  true,
	"REFERENCES":              true,
}

// NormalizeSectionTitle collapses whitespace and upper-cases a title.
func NormalizeSectionTitle(title string) string {
	return strings.ToUpper(lines.NormalizeSpaces(title))
}

// isStructuralContent rejects lines that can never be titles: empty text,
// bullets, contact data and month date ranges.
func isStructuralContent(line lines.Line) bool {
	if strings.TrimSpace(line.Text) == "" || line.IsBullet {
		return true
	}
	return line.HasContact() || line.HasAnyDateRange()
}

// LooksLikeVisualTitle reports visual salience: a short unindented line
// without commas, digits or dashes whose font is noticeably larger than
// the page median, or bold and slightly larger with upper-case text or a
// trailing colon.
func LooksLikeVisualTitle(line lines.Line) bool {
	if isStructuralContent(line) {
		return false
	}
	text := strings.TrimSpace(line.Text)
	if heuristics.RuneLen(text) > visualMaxLen || strings.Contains(text, ",") || heuristics.HasDigit(text) {
		return false
	}
	if heuristics.ContainsAny(text, []string{" - ", " – ", " — "}) {
		return false
	}
	if line.Indent > visualMaxIndent {
		return false
	}
	if line.SizeRatio >= visualSizeRatio {
		return true
	}
	return line.IsBold && line.SizeRatio >= visualBoldSizeRatio &&
		(line.UppercaseRatio >= visualUppercaseRatio || line.EndsWithColon)
}

// IsSectionTitle decides whether line is a section title. A rule drawn
// below the line is sufficient on its own; otherwise visual salience
// (when useVisual) and textual evidence (when useText) are alternative
// sufficient conditions.
func IsSectionTitle(line lines.Line, useText, useVisual bool) bool {
	if isStructuralContent(line) {
		return false
	}
	if line.HasRuleBelow {
		return true
	}
	if useVisual && LooksLikeVisualTitle(line) {
		return true
	}
	if !useText {
		return false
	}
	text := strings.TrimSpace(line.Text)
	if knownSectionTitles[NormalizeSectionTitle(text)] {
		return true
	}
	return line.UppercaseRatio >= textUppercaseRatio && heuristics.RuneLen(text) <= textMaxLen && !strings.Contains(text, ",")
}

// Policy carries the document-wide heading policy. Once any line sits
// above a horizontal rule the document is rule-delimited and the header
// boundary is found by rules alone.
type Policy struct {
	RuleDelimited bool
}

// NewPolicy inspects every line of a document.
func NewPolicy(all []lines.Line) Policy {
	return Policy{RuleDelimited: lines.HasRuleDelimiters(all)}
}

// IsHeaderBoundary reports whether line ends the header block and opens
// the first section.
func (p Policy) IsHeaderBoundary(line lines.Line) bool {
	return IsSectionTitle(line, !p.RuleDelimited, false)
}

// IsBodyHeading reports whether line opens a new section after the header.
func (p Policy) IsBodyHeading(line lines.Line) bool {
	return IsSectionTitle(line, true, true)
}
