// Package sections provides section heading recognition (textual keywords,
// ALL-CAPS and colon headings, underlines, visual salience) and the
// splitting of a resume's line stream into core and extra sections.
package sections

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/types"
)

// ModuleExtra is returned by MatchHeading for extra-section headings.
const ModuleExtra = "extra"

// Heading length bounds, in characters.
const (
	headingMinLen       = 3
	headingMaxLen       = 48
	explicitExtraMinLen = 14
	afterSkillsMinLen   = 4
	afterSkillsMaxLen   = 40
)

var underlineRE = regexp.MustCompile(`^[-=_]{3,}$`)

// IsHeading reports whether line reads as a heading: 3 to 48 characters,
// and either ALL-CAPS without commas or digits, or ending with a colon.
func IsHeading(line string) bool {
	if heuristics.IsBullet(line) {
		return false
	}
	stripped := heuristics.NormalizeHeadingLine(line)
	if n := heuristics.RuneLen(stripped); n < headingMinLen || n > headingMaxLen {
		return false
	}
	if heuristics.IsUpper(stripped) {
		return !strings.Contains(stripped, ",") && !heuristics.HasDigit(stripped)
	}
	return strings.HasSuffix(stripped, ":")
}

// MatchHeading resolves line to a core module id or ModuleExtra, with the
// cleaned heading title. Both are empty when line is not a section heading.
// "Key: value" lines are never headings.
func MatchHeading(line string) (string, string) {
	if heuristics.IsBullet(line) {
		return "", ""
	}
	cleaned := heuristics.NormalizeHeadingLine(line)
	if cleaned == "" {
		return "", ""
	}
	if strings.Contains(cleaned, ":") && !strings.HasSuffix(cleaned, ":") {
		left, right, _ := strings.Cut(cleaned, ":")
		if strings.TrimSpace(left) != "" && strings.TrimSpace(right) != "" {
			return "", ""
		}
	}
	if module := matchCoreKeyword(cleaned); module != "" {
		return module, strings.TrimSpace(cleaned)
	}
	if IsExplicitExtraHeading(line) {
		return ModuleExtra, strings.TrimRight(strings.TrimSpace(cleaned), ":")
	}
	return "", ""
}

// matchCoreKeyword returns the core module whose keyword equals or
// prefixes the folded heading.
func matchCoreKeyword(cleaned string) string {
	normalized := strings.Trim(heuristics.Fold(cleaned), ":")
	for _, section := range heuristics.SectionKeywords {
		for _, keyword := range section.Keywords {
			if strings.HasPrefix(normalized, keyword) {
				return section.Module
			}
		}
	}
	return ""
}

func matchesExtraKeyword(normalized string) bool {
	for _, keyword := range heuristics.ExtraKeywords {
		if strings.HasPrefix(normalized, keyword) {
			return true
		}
	}
	return false
}

// IsExtraKeywordHeading reports whether line opens with a known extra
// section keyword (Proyectos, Certifications, ...).
func IsExtraKeywordHeading(line string) bool {
	if heuristics.IsBullet(line) {
		return false
	}
	cleaned := heuristics.NormalizeHeadingLine(line)
	if cleaned == "" {
		return false
	}
	return matchesExtraKeyword(strings.Trim(heuristics.Fold(cleaned), ":"))
}

// IsExplicitExtraHeading reports whether line is unambiguously an extra
// section heading: a known keyword, a trailing colon, or a long multi-word
// ALL-CAPS phrase without commas, digits or slashes.
func IsExplicitExtraHeading(line string) bool {
	if heuristics.IsBullet(line) {
		return false
	}
	cleaned := heuristics.NormalizeHeadingLine(line)
	if cleaned == "" {
		return false
	}
	normalized := strings.Trim(heuristics.Fold(cleaned), ":")
	if matchesExtraKeyword(normalized) {
		return true
	}
	if strings.HasSuffix(cleaned, ":") {
		return true
	}
	if heuristics.IsUpper(cleaned) && len(normalized) >= explicitExtraMinLen && !strings.Contains(normalized, "/") {
		if strings.Contains(cleaned, ",") || heuristics.HasDigit(cleaned) {
			return false
		}
		return len(strings.Fields(normalized)) >= 2
	}
	return false
}

// IsExtraHeadingAfterSkills is the stricter test applied inside the skills
// section, where ALL-CAPS category labels are common: only explicit extra
// headings, colon headings and short ALL-CAPS phrases open a new section.
func IsExtraHeadingAfterSkills(line string) bool {
	if IsExplicitExtraHeading(line) {
		return true
	}
	if heuristics.IsBullet(line) {
		return false
	}
	cleaned := heuristics.NormalizeHeadingLine(line)
	if cleaned == "" {
		return false
	}
	if matchCoreKeyword(cleaned) != "" {
		return false
	}
	if strings.HasSuffix(cleaned, ":") {
		return true
	}
	if heuristics.IsUpper(cleaned) {
		normalized := strings.Trim(heuristics.Fold(cleaned), ":")
		n := len(normalized)
		return n >= afterSkillsMinLen && n <= afterSkillsMaxLen && !strings.Contains(normalized, ",")
	}
	return false
}

// IsUnderline reports whether line is a run of "-", "=" or "_" used to
// underline the heading above it.
func IsUnderline(line string) bool {
	return underlineRE.MatchString(strings.TrimSpace(line))
}

// HeadingTitle returns the display title of a heading line.
func HeadingTitle(line string) string {
	return strings.TrimRight(strings.TrimSpace(heuristics.NormalizeHeadingLine(line)), ":")
}

// CanonicalCoreSection maps a section title to its core module id, or ""
// for extra sections. Titles are compared ASCII-folded after mojibake
// repair, so "EDUCACIÃ“N", "Educación" and "EDUCATION" all resolve.
func CanonicalCoreSection(title string) string {
	folded := strings.Trim(heuristics.Fold(ingestion.RepairMojibake(title)), ": ")
	if folded == "" {
		return ""
	}
	for _, section := range heuristics.SectionKeywords {
		for _, keyword := range section.Keywords {
			if folded == keyword {
				return section.Module
			}
		}
	}
	if module, ok := englishCoreTitles[folded]; ok {
		return module
	}
	return ""
}

var englishCoreTitles = map[string]string{
	"employment history":  types.ModuleExperience,
	"work history":        types.ModuleExperience,
	"academic background": types.ModuleEducation,
	"technical skills":    types.ModuleSkills,
}
