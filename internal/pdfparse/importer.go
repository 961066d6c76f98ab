// Package pdfparse imports PDF resumes using page layout: font size, bold
// faces, indentation and horizontal rules decide where sections and
// entries start.
package pdfparse

import (
	"errors"
	"strings"

	"github.com/jonathan/resume-importer/internal/extras"
	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/lines"
	"github.com/jonathan/resume-importer/internal/sections"
	"github.com/jonathan/resume-importer/internal/types"
)

// Importer turns PDF bytes into a ResumeStructure.
type Importer struct {
	extractor Extractor
}

// NewImporter creates an importer reading pages with extractor.
func NewImporter(extractor Extractor) *Importer {
	return &Importer{extractor: extractor}
}

// ParsePDF imports a PDF with the default extractor. On failure the default
// structure is returned together with an *ExtractionError or ErrNoText.
func ParsePDF(data []byte) (types.ResumeStructure, error) {
	return NewImporter(LedongthucExtractor{}).Parse(data)
}

// Parse extracts, assembles and structures one PDF document.
func (im *Importer) Parse(data []byte) (types.ResumeStructure, error) {
	pages, err := im.extractor.Extract(data)
	if err != nil {
		var extractErr *ExtractionError
		if errors.As(err, &extractErr) {
			return types.DefaultStructure(), extractErr
		}
		return types.DefaultStructure(), &ExtractionError{Cause: err}
	}

	all := lines.NonBlank(lines.FromPages(pages))
	if len(all) == 0 {
		return types.DefaultStructure(), ErrNoText
	}
	return Build(Assemble(all)), nil
}

// Build maps an assembled document onto a ResumeStructure. Core sections
// are recognised by title (Spanish, English or mis-encoded); every other
// section with text becomes an extra section.
func Build(assembly Assembly) types.ResumeStructure {
	result := types.DefaultStructure()
	result.Basics = buildBasics(assembly.Header)
	result.Experience = nil
	result.Education = nil
	result.Skills = nil

	var order []string
	for _, section := range assembly.Sections {
		switch module := sections.CanonicalCoreSection(section.Title); module {
		case types.ModuleExperience:
			result.Experience = append(result.Experience, toExperienceItems(parseExperience(section.Lines))...)
			order = append(order, module)
		case types.ModuleEducation:
			result.Education = append(result.Education, toEducationItems(parseEducation(section.Lines))...)
			order = append(order, module)
		case types.ModuleSkills:
			result.Skills = append(result.Skills, parseSkills(section.Lines)...)
			order = append(order, module)
		default:
			body := lines.NonBlank(section.Lines)
			if len(body) == 0 {
				continue
			}
			extra := parseExtraSection(section.Title, body, len(result.ExtraSections))
			result.ExtraSections = append(result.ExtraSections, extra)
			order = append(order, extra.SectionID)
		}
	}

	result.Meta.CoreOrder = types.BuildCoreOrder(order, result.ExtraSections)
	result.EnsureMinimums()
	result.Normalize()
	return result
}

func buildBasics(h Header) types.Basics {
	basics := types.Basics{
		Name:     h.Name,
		Email:    h.Email,
		Phone:    h.Phone,
		LinkedIn: selectLink(h.Links, "linkedin"),
		GitHub:   selectLink(h.Links, "github"),
	}
	if h.Location != "" {
		loc := heuristics.ParseLocation(h.Location)
		basics.City, basics.Country = loc.City, loc.Country
	}
	contacts := []string{basics.Email, basics.Phone, basics.LinkedIn, basics.GitHub}
	basics.Description = inferDescription(h, contacts)
	return basics
}

func selectLink(links []string, keyword string) string {
	for _, link := range links {
		if strings.Contains(strings.ToLower(link), keyword) {
			return link
		}
	}
	return ""
}

// inferDescription joins the header lines that are not the name, the
// location or contact data.
func inferDescription(h Header, contacts []string) string {
	var parts []string
	for _, line := range h.Lines {
		text := strings.TrimSpace(line.Text)
		if text == "" || text == h.Name || (h.Location != "" && text == h.Location) {
			continue
		}
		if heuristics.URLRE.MatchString(text) || containsAnyValue(text, contacts) {
			continue
		}
		parts = append(parts, text)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func containsAnyValue(text string, values []string) bool {
	for _, v := range values {
		if v != "" && strings.Contains(text, v) {
			return true
		}
	}
	return false
}

// parseExtraSection assembles an extra section generically and, when the
// section reads better as a list of jobs, with the experience parser.
func parseExtraSection(title string, body []lines.Line, index int) types.ExtraSection {
	id := types.ExtraSectionID(index)
	generic, ok := extras.Build(id, title, extras.AssembleEntries(body))
	if !ok {
		generic = types.ExtraSection{SectionID: id, Title: title, Mode: types.ModeSubtitleItems, Entries: []types.ExtraEntry{}}
	}

	experience := toExtraEntries(parseExperience(body))
	if preferExperienceEntries(title, generic.Entries, experience) {
		return types.ExtraSection{
			SectionID: id,
			Title:     title,
			Mode:      types.ModeDetailed,
			Entries:   experience,
		}
	}
	return generic
}

// preferExperienceEntries decides between the generic assembly and the
// experience-shaped reading of an extra section. The experience reading
// needs dated entries with context; it wins for project sections that the
// generic pass split further, and whenever the generic pass
// over-fragments or finds no detailed entry.
func preferExperienceEntries(title string, generic, experience []types.ExtraEntry) bool {
	if len(experience) == 0 {
		return false
	}
	withDates, withContext := 0, 0
	for _, entry := range experience {
		dated := entry.Start != "" || entry.End != ""
		if dated {
			withDates++
		}
		if (entry.Where != "" || entry.Title != "") && (dated || len(entry.Items) > 0 || entry.Tech != "") {
			withContext++
		}
	}
	if withDates == 0 || withContext == 0 {
		return false
	}

	upper := strings.ToUpper(title)
	projectLike := strings.Contains(upper, "PROYECT") || strings.Contains(upper, "PROJECT")
	if projectLike && len(generic) > len(experience) {
		return true
	}

	detailed := 0
	for _, entry := range generic {
		if entry.HasDetail() {
			detailed++
		}
	}
	switch {
	case len(generic) >= len(experience)*2:
		return true
	case detailed == 0:
		return true
	case withContext >= 2 && len(generic)-len(experience) >= 2:
		return true
	}
	return false
}
