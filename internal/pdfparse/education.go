package pdfparse

import (
	"strings"

	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/lines"
	"github.com/jonathan/resume-importer/internal/types"
)

type educationBlock struct {
	org       string
	program   string
	honors    string
	location  string
	dateRange string
	extra     []string
}

func (b *educationBlock) isEmpty() bool {
	return b.org == "" && b.program == "" && b.honors == "" && b.dateRange == "" && b.location == ""
}

// parseEducation reads study blocks. A new block opens on an
// organization-like line once the current one has a program or dates.
func parseEducation(section []lines.Line) []educationBlock {
	var blocks []*educationBlock
	var cur *educationBlock
	open := func() {
		cur = &educationBlock{}
		blocks = append(blocks, cur)
	}

	for _, line := range section {
		text := lines.NormalizeSpaces(line.Text)
		if text == "" {
			continue
		}
		isHonors := heuristics.HasHonorsPrefix(text)
		dateRange, remainder := monthDateRange(text)

		if cur == nil {
			open()
		}
		if cur.org != "" && (cur.program != "" || cur.dateRange != "") && !isHonors && looksLikeNewOrg(text) {
			open()
		}

		if isHonors {
			cur.honors = text
			continue
		}
		if dateRange != "" {
			cur.dateRange = dateRange
			switch {
			case remainder == "":
			case cur.program == "":
				cur.program = remainder
			default:
				cur.extra = append(cur.extra, remainder)
			}
			continue
		}
		if org, location := splitOrgLocation(text); location != "" && cur.org == "" {
			cur.org = firstNonEmpty(org, text)
			cur.location = location
			continue
		}
		if strings.Contains(text, ",") && heuristics.RuneLen(text) <= shortLocationMaxLen && cur.location == "" {
			cur.location = text
			continue
		}
		switch {
		case cur.org == "":
			cur.org = text
		case cur.program == "":
			cur.program = text
		default:
			cur.extra = append(cur.extra, text)
		}
	}

	out := make([]educationBlock, 0, len(blocks))
	for _, block := range blocks {
		if !block.isEmpty() {
			out = append(out, *block)
		}
	}
	return out
}

func toEducationItems(blocks []educationBlock) []types.EducationItem {
	items := make([]types.EducationItem, 0, len(blocks))
	for _, block := range blocks {
		start, end := mapDateRange(block.dateRange)
		loc := mapLocation(block.location)
		items = append(items, types.EducationItem{
			Degree:      block.program,
			Institution: block.org,
			Start:       start,
			End:         end,
			City:        loc.City,
			Country:     loc.Country,
			Honors:      heuristics.StripHonorsPrefix(block.honors),
		})
	}
	return items
}
