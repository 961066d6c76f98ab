// Package entries provides entry-block segmentation for the experience and
// education sections of a plain-text resume.
package entries

import (
	"strings"

	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/sections"
	"github.com/jonathan/resume-importer/internal/types"
)

// Group splits section lines into entry blocks. Blank lines and core
// section headings are dropped; a blank line only matters as a hint that
// the next candidate line may open a new entry. Other heading-shaped lines
// ("DATA ENGINEER - ACME") stay in the stream as entry content. The result
// always holds at least one (possibly empty) block.
func Group(sectionLines []string, module string) [][]string {
	var blocks [][]string
	var current []string
	afterBlank := false

	for _, raw := range sectionLines {
		line := strings.TrimSpace(raw)
		if line == "" {
			afterBlank = true
			continue
		}
		if module, _ := sections.MatchHeading(line); module != "" && module != sections.ModuleExtra {
			continue
		}
		if len(current) > 0 && (LooksLikeEntryStart(line, current, module) || (afterBlank && opensAfterBlank(line, current, module))) {
			blocks = append(blocks, current)
			current = nil
		}
		current = append(current, line)
		afterBlank = false
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	if len(blocks) == 0 {
		return [][]string{nil}
	}
	return blocks
}

// LooksLikeEntryStart reports whether line opens a new entry given the
// lines already collected for the current one. Only organization-looking
// lines qualify, and only once the current block is complete: it has a
// date range or a bullet (experience), or a date range or another
// organization line (education). Once an education block holds a degree,
// only a line naming an institution opens the next one.
func LooksLikeEntryStart(line string, current []string, module string) bool {
	if !isCandidate(line) || !heuristics.LooksLikeOrg(line) {
		return false
	}
	return blockComplete(line, current, module)
}

// opensAfterBlank relaxes the organization test for lines that follow a
// blank line, so lower-case "role - company" headers still split entries.
// Sentences (trailing period) never qualify.
func opensAfterBlank(line string, current []string, module string) bool {
	if !isCandidate(line) || heuristics.ContainsBulletSymbol(line) || strings.HasSuffix(line, ".") {
		return false
	}
	if _, company := heuristics.SplitRoleCompany(line); company == "" {
		return false
	}
	return blockComplete(line, current, module)
}

// isCandidate rejects lines that describe the current entry: bullets, tech
// lists, date ranges and "Label: value" pairs.
func isCandidate(line string) bool {
	return !heuristics.IsBullet(line) && !heuristics.LooksLikeTech(line) &&
		!heuristics.HasDateRange(line) && !isLabelValue(line)
}

func isLabelValue(line string) bool {
	label, value, ok := strings.Cut(line, ":")
	return ok && strings.TrimSpace(label) != "" && strings.TrimSpace(value) != ""
}

func blockComplete(line string, current []string, module string) bool {
	hasDate, hasBullet, hasOrg, hasDegree := false, false, false, false
	for _, prev := range current {
		if heuristics.HasDateRange(prev) {
			hasDate = true
		}
		if heuristics.IsBullet(prev) {
			hasBullet = true
		}
		if heuristics.LooksLikeOrg(prev) {
			hasOrg = true
		}
		if heuristics.HasDegreeHint(prev) {
			hasDegree = true
		}
	}
	switch module {
	case types.ModuleExperience:
		return hasDate || hasBullet
	case types.ModuleEducation:
		return hasDate || (hasOrg && (!hasDegree || heuristics.HasOrgHint(line)))
	}
	return false
}
