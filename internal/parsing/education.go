package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-importer/internal/entries"
	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/types"
)

// degreeSeparatorRE splits "Degree — Institution" headings. Plain hyphens
// and " en " are left alone: they appear inside degree names.
var degreeSeparatorRE = regexp.MustCompile(`\s+[—–|]\s+`)

// ParseEducation segments the education section into entries and reads
// each block line by line.
func ParseEducation(sectionLines []string) []types.EducationItem {
	blocks := entries.Group(sectionLines, types.ModuleEducation)
	items := make([]types.EducationItem, 0, len(blocks))
	for _, block := range blocks {
		items = append(items, parseEducationBlock(block))
	}
	return items
}

func parseEducationBlock(block []string) types.EducationItem {
	var item types.EducationItem

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
		if heuristics.IsBullet(line) {
			if item.Honors == "" {
				item.Honors = heuristics.CleanBullet(line)
			}
			continue
		}
		if heuristics.HasHonorsHint(line) {
			if _, after, ok := strings.Cut(line, ":"); ok {
				item.Honors = strings.TrimSpace(after)
			} else {
				item.Honors = line
			}
			continue
		}
		if item.City == "" {
			if loc := heuristics.ExtractLocation(line); !loc.IsZero() {
				item.City, item.Country = loc.City, loc.Country
				continue
			}
		}
		if item.Degree == "" && item.Institution == "" {
			if parts := degreeSeparatorRE.Split(line, 2); len(parts) == 2 && parts[0] != "" && parts[1] != "" {
				item.Degree, item.Institution = parts[0], parts[1]
				continue
			}
		}
		switch {
		case item.Institution == "" && heuristics.LooksLikeOrg(line):
			item.Institution = line
		case item.Degree == "":
			item.Degree = line
		case item.Institution == "":
			item.Institution = line
		default:
			item.Degree = joinDegreeDetail(item.Degree, line)
		}
	}
	return item
}

// joinDegreeDetail appends a follow-up line ("Minor en Datos") to the
// degree. The "; " joiner is not a location or degree separator, so the
// rendered heading re-parses into the same fields.
func joinDegreeDetail(degree, detail string) string {
	if degree == "" {
		return detail
	}
	return degree + "; " + detail
}
