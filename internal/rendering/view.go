package rendering

import (
	"strings"

	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/types"
)

// TemplateData is the data passed to the text template
type TemplateData struct {
	Basics  types.Basics
	Contact []string
	Modules []ModuleView
}

// ModuleView is one top-level block, in display order. Kind is a core
// module id or "extra".
type ModuleView struct {
	Kind       string
	Experience []types.ExperienceItem
	Education  []types.EducationItem
	Skills     []types.SkillGroup
	Extra      ExtraView
}

// ExtraView is an extra section with its renderable entries.
type ExtraView struct {
	Title   string
	Entries []ExtraEntryView
}

// ExtraEntryView pairs an entry with its effective mode.
type ExtraEntryView struct {
	Entry    types.ExtraEntry
	Detailed bool
}

const kindExtra = "extra"

// untitledExtraTitle heads extra sections saved without a title.
const untitledExtraTitle = "Otros"

// buildTemplateData walks the module order and keeps only modules with
// something to show.
func buildTemplateData(r types.ResumeStructure) TemplateData {
	data := TemplateData{
		Basics:  r.Basics,
		Contact: contactLines(r.Basics),
	}

	ids := types.ExpandExtrasToken(types.SplitCoreOrder(r.Meta.CoreOrder), r.ExtraSections)
	for _, id := range types.SplitCoreOrder(types.BuildCoreOrder(ids, r.ExtraSections)) {
		switch id {
		case types.ModuleExperience:
			if items := experienceWithContent(r.Experience); len(items) > 0 {
				data.Modules = append(data.Modules, ModuleView{Kind: id, Experience: items})
			}
		case types.ModuleEducation:
			if items := educationWithContent(r.Education); len(items) > 0 {
				data.Modules = append(data.Modules, ModuleView{Kind: id, Education: items})
			}
		case types.ModuleSkills:
			if groups := skillsWithContent(r.Skills); len(groups) > 0 {
				data.Modules = append(data.Modules, ModuleView{Kind: id, Skills: groups})
			}
		default:
			section, ok := r.FindExtraSection(id)
			if !ok {
				continue
			}
			if view, ok := extraView(*section); ok {
				data.Modules = append(data.Modules, ModuleView{Kind: kindExtra, Extra: view})
			}
		}
	}
	return data
}

func contactLines(b types.Basics) []string {
	var out []string
	add := func(label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, label+": "+value)
		}
	}
	add("Email", b.Email)
	add("Telefono", b.Phone)
	add("LinkedIn", b.LinkedIn)
	add("GitHub", b.GitHub)
	add("Ubicacion", place(b.City, b.Country))
	return out
}

func experienceWithContent(items []types.ExperienceItem) []types.ExperienceItem {
	var out []types.ExperienceItem
	for _, item := range items {
		if hasText(item.Role, item.Company, item.Start, item.End, item.City, item.Country, item.Technologies) ||
			len(nonBlank(item.Highlights)) > 0 {
			out = append(out, item)
		}
	}
	return out
}

func educationWithContent(items []types.EducationItem) []types.EducationItem {
	var out []types.EducationItem
	for _, item := range items {
		if hasText(item.Degree, item.Institution, item.Start, item.End, item.City, item.Country, item.Honors) {
			out = append(out, item)
		}
	}
	return out
}

func skillsWithContent(groups []types.SkillGroup) []types.SkillGroup {
	var out []types.SkillGroup
	for _, group := range groups {
		if skillLine(group) != "" {
			out = append(out, group)
		}
	}
	return out
}

// extraView keeps entries with content. Untitled sections render under
// untitledExtraTitle.
func extraView(section types.ExtraSection) (ExtraView, bool) {
	title := strings.TrimSpace(section.Title)
	if title == "" {
		title = untitledExtraTitle
	}
	view := ExtraView{Title: title}
	for _, entry := range section.Entries {
		if !entry.HasContent() {
			continue
		}
		mode := entry.Mode
		if mode == "" {
			mode = section.Mode
		}
		view.Entries = append(view.Entries, ExtraEntryView{
			Entry:    entry,
			Detailed: mode != types.ModeSubtitleItems,
		})
	}
	return view, len(view.Entries) > 0
}

func hasText(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func heading(left, right string) string {
	return strings.Join(nonBlank([]string{left, right}), " — ")
}

func place(city, country string) string {
	return heuristics.Location{City: strings.TrimSpace(city), Country: strings.TrimSpace(country)}.String()
}

func dateRange(start, end string) string {
	return heuristics.FormatDateRange(strings.TrimSpace(start), strings.TrimSpace(end))
}

// detailHeading renders "title — where | dates | place" on one line so the
// parts stay attached to their entry when re-parsed.
func detailHeading(entry types.ExtraEntry) string {
	return strings.Join(nonBlank([]string{
		heading(entry.Title, entry.Where),
		dateRange(entry.Start, entry.End),
		place(entry.City, entry.Country),
	}), " | ")
}

// subtitleLines renders a subtitle entry as a bullet with its items on
// the following lines. A lone item without subtitle is promoted.
func subtitleLines(entry types.ExtraEntry) []string {
	subtitle := strings.TrimSpace(entry.Subtitle)
	items := nonBlank(entry.Items)
	if subtitle == "" && len(items) == 1 {
		subtitle, items = items[0], nil
	}
	if subtitle == "" {
		lines := make([]string, 0, len(items))
		for _, item := range items {
			lines = append(lines, "- "+item)
		}
		return lines
	}
	return append([]string{"- " + subtitle}, items...)
}

func skillLine(group types.SkillGroup) string {
	category := strings.TrimSpace(group.Category)
	items := strings.Join(heuristics.SplitEscapedNewlines(group.Items), ", ")
	switch {
	case category != "" && items != "":
		return category + ": " + items
	case category != "":
		return category
	default:
		return items
	}
}

// paragraphs separates description paragraphs with blank lines.
func paragraphs(text string) string {
	return strings.Join(heuristics.SplitEscapedNewlines(text), "\n\n")
}

func underline(title string) string {
	return strings.Repeat("-", max(3, heuristics.RuneLen(title)))
}
