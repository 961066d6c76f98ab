package parsing

import (
	"strings"

	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/sections"
	"github.com/jonathan/resume-importer/internal/types"
)

// Category line limits.
const (
	categoryMaxLen       = 48
	categoryMaxWords     = 3
	categoryNextMaxWords = 2
	inlineCategoryMaxLen = 40
)

// skillsParser groups skill lines under category lines.
type skillsParser struct {
	groups   []types.SkillGroup
	category string
	items    []string
}

// ParseSkills reads the skills section into category groups. "Category:
// a, b" lines form a group of their own; other lines are either category
// labels or items of the current category.
func ParseSkills(sectionLines []string) []types.SkillGroup {
	var lines []string
	for _, line := range sectionLines {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	p := &skillsParser{}
	for idx, line := range lines {
		if category, value, ok := inlineSkillPair(line); ok {
			p.flush()
			p.groups = append(p.groups, types.SkillGroup{Category: category, Items: value})
			continue
		}
		next := ""
		if idx+1 < len(lines) {
			next = lines[idx+1]
		}
		if p.isCategoryLine(line, next) {
			p.flush()
			p.category = strings.TrimSuffix(heuristics.CleanBullet(line), ":")
			continue
		}
		p.items = append(p.items, heuristics.CleanBullet(line))
	}
	p.flush()
	return p.groups
}

func (p *skillsParser) flush() {
	if p.category == "" && len(p.items) == 0 {
		return
	}
	p.groups = append(p.groups, types.SkillGroup{
		Category: strings.TrimSpace(p.category),
		Items:    strings.Join(nonEmptyStrings(p.items), ", "),
	})
	p.category, p.items = "", nil
}

func (p *skillsParser) isCategoryLine(line, next string) bool {
	if heuristics.IsBullet(line) || sections.IsHeading(line) {
		return true
	}
	if p.category != "" && len(p.items) == 0 {
		return false
	}
	if strings.Contains(line, ",") || len(line) > categoryMaxLen {
		return false
	}
	if heuristics.EmailRE.MatchString(line) || heuristics.URLRE.MatchString(line) {
		return false
	}
	if heuristics.IsUpper(line) || strings.Contains(line, "/") {
		return true
	}
	padded := " " + heuristics.Fold(line) + " "
	if strings.Contains(padded, " de ") || strings.Contains(padded, " y ") {
		return true
	}
	words := strings.Fields(line)
	titled := 0
	for _, w := range words {
		if heuristics.StartsUpper(w) {
			titled++
		}
	}
	if titled == len(words) {
		return true
	}
	if next == "" {
		return false
	}
	nextWords := strings.Fields(next)
	if len(words) <= categoryMaxWords && len(nextWords) <= categoryNextMaxWords &&
		!strings.Contains(next, ",") && !heuristics.IsBullet(next) {
		return true
	}
	return strings.Contains(next, ",")
}

// inlineSkillPair splits "Category: a, b" lines.
func inlineSkillPair(line string) (string, string, bool) {
	text := heuristics.CleanBullet(line)
	if heuristics.URLRE.MatchString(text) || heuristics.EmailRE.MatchString(text) {
		return "", "", false
	}
	category, value, ok := strings.Cut(text, ":")
	if !ok {
		return "", "", false
	}
	category, value = strings.TrimSpace(category), strings.TrimSpace(value)
	if category == "" || value == "" || heuristics.RuneLen(category) > inlineCategoryMaxLen {
		return "", "", false
	}
	return category, value, true
}
