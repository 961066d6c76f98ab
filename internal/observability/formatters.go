// Package observability provides the edge logger and formatted output
// utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-importer/internal/schemas"
	"github.com/jonathan/resume-importer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most width runes, ending in "...".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintStructure outputs a human-readable summary of an imported structure.
func (p *Printer) PrintStructure(source string, structure *types.ResumeStructure) {
	if structure == nil {
		return
	}

	var sb strings.Builder
	b := structure.Basics
	sb.WriteString(fmt.Sprintf("Name:     %s\n", b.Name))
	if b.Email != "" || b.Phone != "" {
		sb.WriteString(fmt.Sprintf("Contact:  %s\n", strings.Trim(b.Email+" · "+b.Phone, " ·")))
	}
	if b.City != "" || b.Country != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", strings.Trim(b.City+", "+b.Country, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Order:    %s\n", structure.Meta.CoreOrder))
	sb.WriteString("\n")

	if jobs := filledExperience(structure.Experience); len(jobs) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(jobs)))
		count := min(len(jobs), maxItemsToShow)
		for i := 0; i < count; i++ {
			job := jobs[i]
			sb.WriteString(fmt.Sprintf("  • %s", strings.Trim(job.Role+" @ "+job.Company, " @")))
			if dates := formatDates(job.Start, job.End); dates != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", dates))
			}
			sb.WriteString("\n")
		}
		if len(jobs) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(jobs)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(structure.Education) > 0 && structure.Education[0] != (types.EducationItem{}) {
		sb.WriteString(fmt.Sprintf("Education (%d):\n", len(structure.Education)))
		count := min(len(structure.Education), 3)
		for i := 0; i < count; i++ {
			edu := structure.Education[i]
			sb.WriteString(fmt.Sprintf("  • %s\n", strings.Trim(edu.Degree+" · "+edu.Institution, " ·")))
		}
		sb.WriteString("\n")
	}

	if len(structure.Skills) > 0 && structure.Skills[0] != (types.SkillGroup{}) {
		sb.WriteString("Skills:\n")
		for _, group := range structure.Skills {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", group.Category, group.Items))
		}
		sb.WriteString("\n")
	}

	for _, section := range structure.ExtraSections {
		sb.WriteString(fmt.Sprintf("%s [%s, %s]: %d entries\n", section.Title, section.SectionID, section.Mode, len(section.Entries)))
	}

	title := "IMPORTED RESUME"
	if source != "" {
		title += " · " + source
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

func filledExperience(items []types.ExperienceItem) []types.ExperienceItem {
	out := make([]types.ExperienceItem, 0, len(items))
	for _, item := range items {
		if item.Role != "" || item.Company != "" || len(item.Highlights) > 0 {
			out = append(out, item)
		}
	}
	return out
}

func formatDates(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start + " – actual"
	default:
		return strings.TrimPrefix(start+" – "+end, " – ")
	}
}

// PrintValidation outputs the result of a structure validation.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(errs []schemas.FieldError) {
	if len(errs) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ STRUCTURE IS VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problems:\n\n", len(errs)))

	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", e.Field))
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(e.Message, 45)))
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("VALIDATION PROBLEMS", sb.String())
}
