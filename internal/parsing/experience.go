package parsing

import (
	"strings"

	"github.com/jonathan/resume-importer/internal/entries"
	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/sections"
	"github.com/jonathan/resume-importer/internal/types"
)

// ParseExperience segments the experience section into entries and reads
// each block line by line.
func ParseExperience(sectionLines []string) []types.ExperienceItem {
	blocks := entries.Group(sectionLines, types.ModuleExperience)
	items := make([]types.ExperienceItem, 0, len(blocks))
	for _, block := range blocks {
		items = append(items, parseExperienceBlock(block))
	}
	return items
}

func parseExperienceBlock(block []string) types.ExperienceItem {
	var item types.ExperienceItem
	var highlights []string

	for _, raw := range block {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if item.Start == "" {
			if dr, rest, ok := heuristics.ExtractDateRange(line); ok && !dr.IsZero() {
				item.Start, item.End = dr.Start, dr.End
				if line = rest; line == "" {
					continue
				}
			}
		}
		if tech := heuristics.ExtractTech(line); tech != "" && item.Technologies == "" {
			item.Technologies = heuristics.TechValue(tech)
			continue
		}
		if item.Technologies == "" && hasExperienceAnchor(item) &&
			!heuristics.HasDateRange(line) && !sections.IsHeading(line) && heuristics.LooksLikeTech(line) {
			item.Technologies = line
			continue
		}
		if heuristics.IsBullet(line) || heuristics.ContainsBulletSymbol(line) {
			highlights = heuristics.AppendHighlight(highlights, line)
			continue
		}
		if item.Role == "" && item.Company == "" {
			if org, loc := heuristics.SplitOrgPlace(line); !loc.IsZero() {
				item.Company = org
				if item.City == "" {
					item.City, item.Country = loc.City, loc.Country
				}
				continue
			}
		}
		if item.City == "" {
			if loc := heuristics.ExtractLocation(line); !loc.IsZero() {
				item.City, item.Country = loc.City, loc.Country
				continue
			}
		}
		switch {
		case item.Role == "" && item.Company == "":
			if role, company := heuristics.SplitRoleCompany(line); company != "" {
				item.Role, item.Company = role, company
			} else {
				item.Company = line
			}
		case item.Role == "":
			item.Role = line
		case item.Company == "":
			item.Company = line
		default:
			highlights = heuristics.AppendHighlight(highlights, line)
		}
	}

	item.Highlights = nonEmptyStrings(highlights)
	return item
}

func hasExperienceAnchor(item types.ExperienceItem) bool {
	return item.Role != "" || item.Company != "" || item.Start != "" || item.End != ""
}

// nonEmptyStrings returns the trimmed non-empty values; never nil.
func nonEmptyStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
