package extras

import (
	"strings"

	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/lines"
	"github.com/jonathan/resume-importer/internal/sections"
	"github.com/jonathan/resume-importer/internal/types"
)

// ShouldStartNewEntry is the structural boundary test run before a line is
// absorbed. entry is the entry under construction and items its pending
// item list. Plain continuation text under a titled entry never opens a
// new entry, however many commas it carries.
func ShouldStartNewEntry(entry types.ExtraEntry, items []string, line lines.Line, indents Indents) bool {
	text := strings.TrimSpace(line.Text)
	if !entry.HasContent() && len(items) == 0 {
		return false
	}
	if line.IsBullet || heuristics.IsBullet(text) {
		return false
	}
	dated := heuristics.HasDateRange(text)
	if dated && indents.IsRight(line.Indent) {
		return false
	}
	if line.IsBold && entry.HasContent() &&
		(entry.Where != "" || entry.Start != "" || entry.End != "" || entry.Subtitle != "") {
		return true
	}
	if dated {
		return entry.Start != "" || entry.End != ""
	}

	anchored := entry.Where != "" || entry.Title != ""
	noTech := strings.TrimSpace(entry.Tech) == ""
	orgLike := heuristics.LooksLikeOrg(text)
	if anchored && noTech && !line.IsBold && !sections.IsHeading(text) && !orgLike {
		return false
	}
	if (anchored || entry.Start != "" || entry.End != "") && entry.Tech == "" {
		if hasTechLabel(text) || heuristics.LooksLikeTech(text) {
			return false
		}
	}

	leftover, loc := heuristics.SplitTrailingLocation(text)
	if !loc.IsZero() {
		if entry.City != "" {
			return !(anchored && noTech && !line.IsBold && !orgLike)
		}
		return entry.Title != "" && entry.Where != "" && !heuristics.IsLocationPrefixOnly(leftover)
	}

	if !heuristics.LooksLikeLocation(text) {
		if _, where := heuristics.SplitRoleCompany(text); where != "" &&
			(entry.Title != "" || entry.Where != "" || entry.Start != "" || len(items) > 0) {
			return true
		}
		if line.IsBold && (entry.Start != "" || entry.End != "" || entry.City != "") && orgLike {
			return true
		}
	}
	return false
}

// LooksLikeDetailedBullet reports whether bullet text carries entry detail
// (dates, a role/where split, or location and tech lines once the entry
// has detail) and must be parsed as a detail line instead of opening a
// subtitle entry.
func LooksLikeDetailedBullet(entry types.ExtraEntry, bullet string) bool {
	text := strings.TrimSpace(heuristics.CleanBullet(bullet))
	if text == "" {
		return false
	}
	if heuristics.HasDateRange(text) {
		return true
	}
	if _, where := heuristics.SplitRoleCompany(text); where != "" {
		return true
	}
	if !entry.HasDetail() {
		return false
	}
	return heuristics.LooksLikeLocation(text) || heuristics.LooksLikeTech(text) || hasTechLabel(text)
}

// hasTechLabel reports a "Tecnologías:" / "Tecnologias ..." opener.
func hasTechLabel(text string) bool {
	folded := heuristics.Fold(text)
	return strings.HasPrefix(folded, "tecnologias:") || strings.HasPrefix(folded, "tecnologias ")
}
