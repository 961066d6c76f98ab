package pdfparse

import (
	"strings"

	"github.com/jonathan/resume-importer/internal/lines"
	"github.com/jonathan/resume-importer/internal/types"
)

// defaultSkillGroup titles values read before any group label.
const defaultSkillGroup = "OTRAS"

type skillGroup struct {
	title  string
	values []string
}

// skillCollector groups skill values under the most recent bullet label.
type skillCollector struct {
	groups  []*skillGroup
	current *skillGroup
}

func (c *skillCollector) label(title string) {
	c.current = &skillGroup{title: title}
	c.groups = append(c.groups, c.current)
}

func (c *skillCollector) add(text string) {
	if c.current == nil {
		c.label(defaultSkillGroup)
	}
	if lines.CommaDensity(text) >= minCommaDensity {
		for _, part := range strings.Split(text, ",") {
			if part = lines.NormalizeSpaces(part); part != "" {
				c.current.values = append(c.current.values, part)
			}
		}
		return
	}
	c.current.values = append(c.current.values, text)
}

// parseSkills reads skill groups: bullet lines (or lines ending in a
// bullet glyph) are group labels, other lines are comma lists of values.
// Column markers split a line into segments read the same way.
func parseSkills(section []lines.Line) []types.SkillGroup {
	c := &skillCollector{}
	for _, line := range section {
		raw := lines.NormalizeSpaces(line.Text)
		if raw == "" {
			continue
		}
		if segments := pipeParts(raw); len(segments) > 1 {
			for _, segment := range segments {
				text, isBullet := stripBulletMarkers(segment)
				switch {
				case text == "":
				case isBullet:
					c.label(text)
				default:
					c.add(text)
				}
			}
			continue
		}
		label, trailing := stripTrailingBullet(raw)
		if line.IsBullet || trailing {
			c.label(label)
			continue
		}
		c.add(raw)
	}

	out := make([]types.SkillGroup, 0, len(c.groups))
	for _, group := range c.groups {
		values := dedupeFold(group.values)
		if group.title == "" || len(values) == 0 {
			continue
		}
		out = append(out, types.SkillGroup{Category: group.title, Items: strings.Join(values, ", ")})
	}
	return out
}

func pipeParts(text string) []string {
	var parts []string
	for _, part := range strings.Split(text, "|") {
		if part = lines.NormalizeSpaces(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// dedupeFold drops repeated values, ignoring case.
func dedupeFold(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}
