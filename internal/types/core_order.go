package types

import "strings"

// Core module ids.
const (
	ModuleExperience = "experience"
	ModuleEducation  = "education"
	ModuleSkills     = "skills"
)

// ModuleExtras is the legacy order token standing for every extra section.
const ModuleExtras = "extras"

// DefaultCoreOrder is used when no section order could be detected.
const DefaultCoreOrder = "experience,education,skills"

// CoreModules lists the core module ids in default order.
var CoreModules = []string{ModuleExperience, ModuleEducation, ModuleSkills}

// IsCoreModule reports whether id names one of the three core modules.
func IsCoreModule(id string) bool {
	switch id {
	case ModuleExperience, ModuleEducation, ModuleSkills:
		return true
	}
	return false
}

// SplitCoreOrder splits a comma-joined order into trimmed, non-empty ids.
func SplitCoreOrder(order string) []string {
	var ids []string
	for _, part := range strings.Split(order, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// BuildCoreOrder composes the final module order. Detected ids come first in
// detection order, then missing core modules, then extra sections not yet
// mentioned. Unknown ids and duplicates are dropped.
func BuildCoreOrder(detected []string, extras []ExtraSection) string {
	known := make(map[string]bool)
	for _, id := range CoreModules {
		known[id] = true
	}
	for _, section := range extras {
		known[strings.TrimSpace(section.SectionID)] = true
	}

	seen := make(map[string]bool)
	var order []string
	add := func(id string) {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		order = append(order, id)
	}
	for _, id := range detected {
		if known[strings.TrimSpace(id)] {
			add(id)
		}
	}
	for _, id := range CoreModules {
		add(id)
	}
	for _, section := range extras {
		add(section.SectionID)
	}
	return strings.Join(order, ",")
}

// ModuleIDs returns the ids of every module present in the structure:
// the three core modules plus each extra section id.
func (r *ResumeStructure) ModuleIDs() []string {
	ids := append([]string{}, CoreModules...)
	for _, section := range r.ExtraSections {
		ids = append(ids, section.SectionID)
	}
	return ids
}

// ExpandExtrasToken replaces the legacy "extras" token with the ids of all
// extra sections, in section order.
func ExpandExtrasToken(ids []string, extras []ExtraSection) []string {
	expanded := make([]string, 0, len(ids)+len(extras))
	for _, id := range ids {
		if id != ModuleExtras {
			expanded = append(expanded, id)
			continue
		}
		for _, section := range extras {
			expanded = append(expanded, section.SectionID)
		}
	}
	return expanded
}
