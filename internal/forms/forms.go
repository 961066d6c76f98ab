// Package forms decodes the editor's form-encoded edit payload into a ResumeStructure.
//
// Repeated fields carry one value per row. Missing values read as empty
// strings; a malformed payload never fails.
package forms

import (
	"net/url"
	"strings"

	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/types"
)

// FromForm builds a structure from the submitted editor form.
func FromForm(values url.Values) types.ResumeStructure {
	form := payload(values)

	result := types.DefaultStructure()
	result.Basics = types.Basics{
		Name:        form.get("name"),
		Description: form.get("description"),
		Email:       form.get("email"),
		Phone:       form.get("phone"),
		LinkedIn:    form.get("linkedin"),
		GitHub:      form.get("github"),
		City:        form.get("city"),
		Country:     form.get("country"),
	}
	result.Experience = experienceRows(form)
	result.Education = educationRows(form)
	result.Skills = skillRows(form)
	result.ExtraSections = extraSections(form)
	result.Meta.CoreOrder = ResolveOrder(form.get("module_order_map"), form.get("core_order"), result.ExtraSections)

	result.EnsureMinimums()
	result.Normalize()
	return result
}

// payload wraps url.Values with the lookups the decoder needs.
type payload url.Values

func (p payload) get(key string) string {
	return strings.TrimSpace(url.Values(p).Get(key))
}

// list returns the values of the first key present.
func (p payload) list(keys ...string) []string {
	for _, key := range keys {
		if values, ok := p[key]; ok {
			return values
		}
	}
	return nil
}

// at is a bounds-checked index returning "" past the end.
func at(values []string, idx int) string {
	if idx < 0 || idx >= len(values) {
		return ""
	}
	return values[idx]
}

func experienceRows(form payload) []types.ExperienceItem {
	roles := form.list("exp_role", "experience_role")
	companies := form.list("exp_company", "experience_company")
	starts := form.list("exp_start", "experience_start")
	ends := form.list("exp_end", "experience_end")
	cities := form.list("exp_city", "experience_city")
	countries := form.list("exp_country", "experience_country")
	techs := form.list("exp_tech", "experience_tech", "experience_technologies")
	highlights := form.list("exp_highlights", "experience_highlights")

	items := make([]types.ExperienceItem, 0, len(roles))
	for idx, role := range roles {
		items = append(items, types.ExperienceItem{
			Role:         strings.TrimSpace(role),
			Company:      strings.TrimSpace(at(companies, idx)),
			Start:        heuristics.NormalizeDateToken(at(starts, idx)),
			End:          heuristics.NormalizeDateToken(at(ends, idx)),
			City:         strings.TrimSpace(at(cities, idx)),
			Country:      strings.TrimSpace(at(countries, idx)),
			Technologies: strings.TrimSpace(at(techs, idx)),
			Highlights:   highlightLines(at(highlights, idx)),
		})
	}
	return items
}

func highlightLines(raw string) []string {
	out := []string{}
	for _, line := range strings.Split(normalizeNewlines(raw), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if cleaned := heuristics.CleanBullet(line); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

func educationRows(form payload) []types.EducationItem {
	degrees := form.list("edu_degree", "education_degree")
	institutions := form.list("edu_institution", "education_institution")
	starts := form.list("edu_start", "education_start")
	ends := form.list("edu_end", "education_end")
	cities := form.list("edu_city", "education_city")
	countries := form.list("edu_country", "education_country")
	honors := form.list("edu_honors", "education_honors")

	items := make([]types.EducationItem, 0, len(degrees))
	for idx, degree := range degrees {
		items = append(items, types.EducationItem{
			Degree:      strings.TrimSpace(degree),
			Institution: strings.TrimSpace(at(institutions, idx)),
			Start:       heuristics.NormalizeDateToken(at(starts, idx)),
			End:         heuristics.NormalizeDateToken(at(ends, idx)),
			City:        strings.TrimSpace(at(cities, idx)),
			Country:     strings.TrimSpace(at(countries, idx)),
			Honors:      strings.TrimSpace(at(honors, idx)),
		})
	}
	return items
}

func skillRows(form payload) []types.SkillGroup {
	categories := form.list("skill_category", "skills_category")
	items := form.list("skill_items", "skills_items")

	groups := make([]types.SkillGroup, 0, len(categories))
	for idx, category := range categories {
		groups = append(groups, types.SkillGroup{
			Category: strings.TrimSpace(category),
			Items:    strings.TrimSpace(at(items, idx)),
		})
	}
	return groups
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
