package pdfparse

import (
	"slices"
	"strings"

	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/lines"
	"github.com/jonathan/resume-importer/internal/sections"
)

// Section is a titled run of body lines.
type Section struct {
	Title string
	Lines []lines.Line
}

// Header is what the lines above the first section tell about the owner.
type Header struct {
	Name     string
	Location string
	Email    string
	Phone    string
	Links    []string
	Lines    []lines.Line
}

// Assembly is a PDF document split into its header and sections.
type Assembly struct {
	Header   Header
	Sections []Section
}

// Assemble enriches and orders the extracted lines, finds the end of the
// header and splits the rest into sections. Without any section title the
// whole document is header.
func Assemble(all []lines.Line) Assembly {
	ordered := lines.NonBlank(all)
	lines.Enrich(ordered)
	lines.SortByPosition(ordered)
	policy := sections.NewPolicy(ordered)

	first := len(ordered)
	for i, line := range ordered {
		if policy.IsHeaderBoundary(line) {
			first = i
			break
		}
	}

	var assembly Assembly
	assembly.Header = parseHeader(ordered[:first])

	var current *Section
	for _, line := range ordered[first:] {
		if policy.IsBodyHeading(line) {
			if current != nil {
				assembly.Sections = append(assembly.Sections, *current)
			}
			current = &Section{Title: sections.NormalizeSectionTitle(line.Text)}
			continue
		}
		if current != nil {
			current.Lines = append(current.Lines, line)
		}
	}
	if current != nil {
		assembly.Sections = append(assembly.Sections, *current)
	}
	return assembly
}

// parseHeader takes the first line as the name and collects contact data
// from every header line.
func parseHeader(header []lines.Line) Header {
	h := Header{Lines: header}
	for _, line := range header {
		text := strings.TrimSpace(line.Text)
		if h.Name == "" {
			h.Name = text
		}
		if h.Email == "" {
			h.Email = heuristics.FirstMatch(heuristics.EmailRE, text)
		}
		if h.Phone == "" {
			h.Phone = firstPhone(text)
		}
		for _, url := range heuristics.URLRE.FindAllString(text, -1) {
			if !slices.Contains(h.Links, url) {
				h.Links = append(h.Links, url)
			}
		}
	}
	h.Location = headerLocation(header)
	return h
}

func firstPhone(text string) string {
	for _, match := range heuristics.PhoneRE.FindAllString(text, -1) {
		if !heuristics.HasDateRange(match) {
			return strings.TrimSpace(match)
		}
	}
	return ""
}

// headerLocation prefers a "City, Country · ..." segment and falls back to
// the first short comma segment of a line without email or URL.
func headerLocation(header []lines.Line) string {
	for _, line := range header {
		for _, segment := range pipeSegments(line.Text) {
			if !strings.Contains(segment, "·") || !strings.Contains(segment, ",") {
				continue
			}
			candidate, _, _ := strings.Cut(segment, "·")
			if candidate = strings.TrimSpace(candidate); strings.Contains(candidate, ",") {
				return candidate
			}
		}
	}
	for _, line := range header {
		if line.HasURL || line.HasEmail {
			continue
		}
		for _, segment := range pipeSegments(line.Text) {
			if strings.Contains(segment, ",") && heuristics.RuneLen(segment) <= headerLocationMaxLen &&
				!heuristics.ParseLocation(segment).IsZero() {
				return segment
			}
		}
	}
	return ""
}

const headerLocationMaxLen = 40

func pipeSegments(text string) []string {
	var segments []string
	for _, part := range strings.Split(text, "|") {
		if part = strings.TrimSpace(part); part != "" {
			segments = append(segments, part)
		}
	}
	if len(segments) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return segments
}
