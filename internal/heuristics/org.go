package heuristics

import (
	"regexp"
	"strings"
)

const (
	orgMaxLength     = 80
	orgMinTitleWords = 2
	orgTitleRatio    = 0.6
)

// roleSeparators are tried in priority order by SplitRoleCompany.
var roleSeparators = []*regexp.Regexp{
	regexp.MustCompile(` - `),
	regexp.MustCompile(` — `),
	regexp.MustCompile(` – `),
	regexp.MustCompile(` \| `),
	regexp.MustCompile(`(?i) en `),
	regexp.MustCompile(`(?i) at `),
}

// LooksLikeOrg reports whether line reads as an organization or institution
// name: an org keyword, an ALL-CAPS line, or a mostly Title-Case phrase.
// Degree titles, honors lines and plain locations are rejected.
func LooksLikeOrg(line string) bool {
	trimmed := strings.TrimSpace(line)
	if RuneLen(trimmed) > orgMaxLength {
		return false
	}
	normalized := Fold(line)
	if ContainsAny(normalized, HonorsHints) || ContainsAny(normalized, DegreeHints) {
		return false
	}
	hasOrgHint := HasOrgHint(line)
	if LooksLikeLocation(line) && !hasOrgHint {
		return false
	}
	if hasOrgHint {
		return true
	}
	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}
	if IsUpper(trimmed) {
		return true
	}
	if len(words) == 1 {
		return false
	}
	titled := 0
	for _, w := range words {
		if StartsUpper(w) {
			titled++
		}
	}
	return titled >= orgMinTitleWords && float64(titled)/float64(len(words)) >= orgTitleRatio
}

// SplitRoleCompany splits "Role - Company" style lines. Separators are
// tried in order: " - ", " — ", " – ", " | ", " en ", " at ". When none
// matches the whole line is returned as role with an empty company.
func SplitRoleCompany(line string) (string, string) {
	for _, sep := range roleSeparators {
		if loc := sep.FindStringIndex(line); loc != nil {
			return strings.TrimSpace(line[:loc[0]]), strings.TrimSpace(line[loc[1]:])
		}
	}
	return strings.TrimSpace(line), ""
}

// HasOrgHint reports whether text names an organization or institution
// keyword ("Universidad", "Instituto", "SpA", ...).
func HasOrgHint(text string) bool {
	return ContainsAny(Fold(text), OrgHints)
}

// HasDegreeHint reports whether text names an academic degree.
func HasDegreeHint(text string) bool {
	return ContainsAny(Fold(text), DegreeHints)
}

// StripHonorsPrefix removes an "Honores:"/"Honors:"/"Mención:" label.
func StripHonorsPrefix(text string) string {
	return strings.TrimSpace(HonorsPrefixRE.ReplaceAllString(text, ""))
}

// HasHonorsPrefix reports whether text starts with an honors label.
func HasHonorsPrefix(text string) bool {
	return HonorsPrefixRE.MatchString(text)
}
