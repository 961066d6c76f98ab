// Package types provides type definitions for structured data used throughout the resume importer.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// Mode selects how an extra section entry is rendered.
type Mode string

const (
	// ModeDetailed exposes title/where/dates/location/tech plus an item list.
	ModeDetailed Mode = "detailed"
	// ModeSubtitleItems exposes a single subtitle line plus an optional item list.
	ModeSubtitleItems Mode = "subtitle_items"
)

// ParseMode maps a raw mode value to a Mode. The legacy values "items" and
// "subtitles" are accepted as aliases of ModeSubtitleItems.
func ParseMode(raw string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ModeDetailed):
		return ModeDetailed, true
	case string(ModeSubtitleItems), "items", "subtitles":
		return ModeSubtitleItems, true
	default:
		return "", false
	}
}

// UnmarshalText normalizes legacy aliases when decoding JSON or YAML.
// Empty values stay empty so entries can fall back to their section mode.
func (m *Mode) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*m = ""
		return nil
	}
	parsed, ok := ParseMode(raw)
	if !ok {
		return fmt.Errorf("unknown mode %q", raw)
	}
	*m = parsed
	return nil
}

// Meta carries document level metadata.
type Meta struct {
	// CoreOrder is a comma-joined list of module ids fixing display order.
	CoreOrder string `json:"core_order" yaml:"core_order" validate:"required"`
}

// Basics holds the header block of a resume.
type Basics struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Email       string `json:"email" yaml:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" yaml:"phone"`
	LinkedIn    string `json:"linkedin" yaml:"linkedin"`
	GitHub      string `json:"github" yaml:"github"`
	City        string `json:"city" yaml:"city"`
	Country     string `json:"country" yaml:"country"`
}

// ExperienceItem is one job entry.
type ExperienceItem struct {
	Role         string   `json:"role" yaml:"role"`
	Company      string   `json:"company" yaml:"company"`
	Start        string   `json:"start" yaml:"start"`
	End          string   `json:"end" yaml:"end"`
	City         string   `json:"city" yaml:"city"`
	Country      string   `json:"country" yaml:"country"`
	Technologies string   `json:"technologies" yaml:"technologies"`
	Highlights   []string `json:"highlights" yaml:"highlights"`
}

// EducationItem is one degree entry.
type EducationItem struct {
	Degree      string `json:"degree" yaml:"degree"`
	Institution string `json:"institution" yaml:"institution"`
	Start       string `json:"start" yaml:"start"`
	End         string `json:"end" yaml:"end"`
	City        string `json:"city" yaml:"city"`
	Country     string `json:"country" yaml:"country"`
	Honors      string `json:"honors" yaml:"honors"`
}

// SkillGroup is a category of skills. Items is user-editable free text,
// not a list.
type SkillGroup struct {
	Category string `json:"category" yaml:"category"`
	Items    string `json:"items" yaml:"items"`
}

// ExtraEntry is one sub-item of an extra section.
type ExtraEntry struct {
	Subtitle string   `json:"subtitle" yaml:"subtitle"`
	Title    string   `json:"title" yaml:"title"`
	Where    string   `json:"where" yaml:"where"`
	Tech     string   `json:"tech" yaml:"tech"`
	Start    string   `json:"start" yaml:"start"`
	End      string   `json:"end" yaml:"end"`
	City     string   `json:"city" yaml:"city"`
	Country  string   `json:"country" yaml:"country"`
	Items    []string `json:"items" yaml:"items"`
	// Mode overrides the section mode for this entry when set.
	Mode Mode `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,oneof=detailed subtitle_items"`
}

// ExtraSection is an open-ended section such as projects or certifications.
type ExtraSection struct {
	SectionID string       `json:"section_id" yaml:"section_id" validate:"required,module_id"`
	Title     string       `json:"title" yaml:"title"`
	Mode      Mode         `json:"mode" yaml:"mode" validate:"omitempty,oneof=detailed subtitle_items"`
	Entries   []ExtraEntry `json:"entries" yaml:"entries" validate:"dive"`
}

// ResumeStructure is the root record produced by every parser.
type ResumeStructure struct {
	Meta          Meta             `json:"meta" yaml:"meta"`
	Basics        Basics           `json:"basics" yaml:"basics"`
	Experience    []ExperienceItem `json:"experience" yaml:"experience"`
	Education     []EducationItem  `json:"education" yaml:"education"`
	Skills        []SkillGroup     `json:"skills" yaml:"skills"`
	ExtraSections []ExtraSection   `json:"extra_sections" yaml:"extra_sections" validate:"dive"`
}

// DefaultStructure returns the empty structure used by editors and as the
// fallback result of failed imports.
func DefaultStructure() ResumeStructure {
	return ResumeStructure{
		Meta:          Meta{CoreOrder: DefaultCoreOrder},
		Experience:    []ExperienceItem{{Highlights: []string{}}},
		Education:     []EducationItem{{}},
		Skills:        []SkillGroup{{}},
		ExtraSections: []ExtraSection{},
	}
}

// EnsureMinimums guarantees at least one (possibly empty) row per core module.
func (r *ResumeStructure) EnsureMinimums() {
	if len(r.Experience) == 0 {
		r.Experience = []ExperienceItem{{Highlights: []string{}}}
	}
	if len(r.Education) == 0 {
		r.Education = []EducationItem{{}}
	}
	if len(r.Skills) == 0 {
		r.Skills = []SkillGroup{{}}
	}
}

// Normalize replaces nil slices with empty ones so encoders emit [] instead of null.
func (r *ResumeStructure) Normalize() {
	if r.Experience == nil {
		r.Experience = []ExperienceItem{}
	}
	for i := range r.Experience {
		if r.Experience[i].Highlights == nil {
			r.Experience[i].Highlights = []string{}
		}
	}
	if r.Education == nil {
		r.Education = []EducationItem{}
	}
	if r.Skills == nil {
		r.Skills = []SkillGroup{}
	}
	if r.ExtraSections == nil {
		r.ExtraSections = []ExtraSection{}
	}
	for i := range r.ExtraSections {
		section := &r.ExtraSections[i]
		if section.Entries == nil {
			section.Entries = []ExtraEntry{}
		}
		for j := range section.Entries {
			if section.Entries[j].Items == nil {
				section.Entries[j].Items = []string{}
			}
		}
	}
}

// FindExtraSection returns the extra section with the given id.
func (r *ResumeStructure) FindExtraSection(id string) (*ExtraSection, bool) {
	for i := range r.ExtraSections {
		if r.ExtraSections[i].SectionID == id {
			return &r.ExtraSections[i], true
		}
	}
	return nil, false
}

// EmptyExtraEntry returns an entry with every field blank.
func EmptyExtraEntry() ExtraEntry {
	return ExtraEntry{Items: []string{}}
}

// HasContent reports whether any field or item of the entry is populated.
func (e ExtraEntry) HasContent() bool {
	if e.Subtitle != "" || e.HasDetail() {
		return true
	}
	for _, item := range e.Items {
		if strings.TrimSpace(item) != "" {
			return true
		}
	}
	return false
}

// HasDetail reports whether any detailed-shape field (including tech) is set.
func (e ExtraEntry) HasDetail() bool {
	for _, value := range []string{e.Title, e.Where, e.Tech, e.Start, e.End, e.City, e.Country} {
		if strings.TrimSpace(value) != "" {
			return true
		}
	}
	return false
}

// IsSubtitleOnly reports whether the entry carries a subtitle and nothing else.
func (e ExtraEntry) IsSubtitleOnly() bool {
	if strings.TrimSpace(e.Subtitle) == "" || e.HasDetail() {
		return false
	}
	for _, item := range e.Items {
		if strings.TrimSpace(item) != "" {
			return false
		}
	}
	return true
}

// ExtraSectionID returns the generated id for the n-th extra section.
func ExtraSectionID(n int) string {
	return fmt.Sprintf("extra-%d", n)
}
