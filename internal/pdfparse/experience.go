package pdfparse

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/lines"
	"github.com/jonathan/resume-importer/internal/types"
)

var (
	pipeRunRE          = regexp.MustCompile(`\s*\|\s*`)
	trailingLocationRE = regexp.MustCompile(`(?i)(Viña del Mar|Santiago),\s*Chile$`)
)

// Layout limits for experience and education lines.
const (
	shortLocationMaxLen = 40
	newOrgMaxLen        = 65
	indentSlack         = 0.5
	continuationStep    = 8.0
	minCommaDensity     = 0.01
)

// experienceBlock is one job (or project) read from PDF lines.
type experienceBlock struct {
	org       string
	role      string
	location  string
	dateRange string
	tech      string
	items     []string
	extra     []string
}

func (b *experienceBlock) isEmpty() bool {
	return b.org == "" && b.role == "" && len(b.items) == 0 &&
		b.dateRange == "" && b.location == "" && b.tech == ""
}

// bulletIndents returns the smallest positive indent as the bullet indent
// and the next one as the continuation indent.
func bulletIndents(section []lines.Line) (float64, float64) {
	seen := map[float64]bool{}
	var indents []float64
	for _, line := range section {
		if line.Indent > 0 && !seen[line.Indent] {
			seen[line.Indent] = true
			indents = append(indents, line.Indent)
		}
	}
	if len(indents) == 0 {
		return 0, 0
	}
	sort.Float64s(indents)
	if len(indents) > 1 {
		return indents[0], indents[1]
	}
	return indents[0], indents[0] + continuationStep
}

// stripBulletMarkers removes a leading or trailing bullet character.
func stripBulletMarkers(text string) (string, bool) {
	stripped := strings.TrimSpace(text)
	if stripped == "" {
		return text, false
	}
	isBullet := false
	if rest, _, ok := lines.StripBulletPrefix(stripped); ok {
		isBullet = true
		stripped = rest
	}
	if trimmed, ok := stripTrailingBullet(stripped); ok {
		isBullet = true
		stripped = trimmed
	}
	return lines.NormalizeSpaces(stripped), isBullet
}

func stripTrailingBullet(text string) (string, bool) {
	stripped := strings.TrimSpace(text)
	if stripped == "" {
		return text, false
	}
	runes := []rune(stripped)
	if !strings.ContainsRune(lines.BulletChars, runes[len(runes)-1]) {
		return text, false
	}
	return strings.TrimSpace(string(runes[:len(runes)-1])), true
}

// monthDateRange finds a strict month range in text and returns it with
// the rest of the line.
func monthDateRange(text string) (string, string) {
	match, ok := heuristics.FindMonthDateRange(text)
	if !ok {
		return "", ""
	}
	remainder := strings.Replace(text, match, "", 1)
	remainder = pipeRunRE.ReplaceAllString(remainder, " ")
	remainder = strings.Trim(strings.TrimSpace(remainder), " -–—()")
	return match, lines.NormalizeSpaces(remainder)
}

// splitOrgLocation separates "Org | City, Country", "Org | Remoto" or a
// trailing known city from an organization line.
func splitOrgLocation(text string) (string, string) {
	if strings.Contains(text, "|") {
		var parts []string
		for _, part := range strings.Split(text, "|") {
			if part = lines.NormalizeSpaces(part); part != "" {
				parts = append(parts, part)
			}
		}
		for idx := len(parts) - 1; idx > 0; idx-- {
			candidate := parts[idx]
			if (strings.Contains(candidate, ",") && heuristics.RuneLen(candidate) <= shortLocationMaxLen) ||
				heuristics.IsRemoteHint(candidate) {
				return lines.NormalizeSpaces(strings.Join(parts[:idx], " ")), candidate
			}
		}
	}
	if loc := trailingLocationRE.FindStringIndex(text); loc != nil {
		return strings.TrimSpace(text[:loc[0]]), strings.TrimSpace(text[loc[0]:])
	}
	return text, ""
}

func looksLikeNewOrg(text string) bool {
	if heuristics.HasTechPrefix(text) {
		return false
	}
	if _, ok := heuristics.FindMonthDateRange(text); ok {
		return false
	}
	return heuristics.RuneLen(text) <= newOrgMaxLen
}

func isShortLocation(text string) bool {
	return strings.Count(text, ",") == 1 && heuristics.RuneLen(text) <= shortLocationMaxLen
}

// experienceParser walks section lines keeping the open block and the
// bullet that continuation lines extend.
type experienceParser struct {
	blocks       []*experienceBlock
	current      *experienceBlock
	pending      int
	bulletIndent float64
	contIndent   float64
}

// parseExperience reads job blocks from section lines using bullet markers,
// indentation, bold organization lines and month ranges.
func parseExperience(section []lines.Line) []experienceBlock {
	p := &experienceParser{pending: -1}
	p.bulletIndent, p.contIndent = bulletIndents(section)
	for _, line := range section {
		p.consume(line)
	}

	out := make([]experienceBlock, 0, len(p.blocks))
	for _, block := range p.blocks {
		if !block.isEmpty() {
			out = append(out, *block)
		}
	}
	return out
}

func (p *experienceParser) open() {
	p.current = &experienceBlock{}
	p.blocks = append(p.blocks, p.current)
}

func (p *experienceParser) extendPending(text string) {
	item := &p.current.items[p.pending]
	*item = lines.NormalizeSpaces(*item + " " + text)
}

func (p *experienceParser) consume(line lines.Line) {
	raw := lines.NormalizeSpaces(line.Text)
	if raw == "" {
		return
	}
	text, marked := stripBulletMarkers(raw)
	isBullet := line.IsBullet || marked
	isTech := heuristics.HasTechPrefix(text)
	dateRange, remainder := monthDateRange(text)
	isDate := dateRange != ""
	density := lines.CommaDensity(text)
	isLocation := isShortLocation(text)
	indentBullet := p.bulletIndent > 0 && line.Indent >= p.bulletIndent-indentSlack && !isTech && !isDate
	continuation := p.pending >= 0 && p.contIndent > 0 && line.Indent >= p.contIndent-indentSlack

	if p.current == nil {
		p.open()
	}
	cur := p.current

	if continuation && !isBullet {
		p.extendPending(text)
		return
	}
	if isBullet || (indentBullet && line.Indent < p.contIndent-indentSlack) {
		cur.items = append(cur.items, text)
		p.pending = len(cur.items) - 1
		return
	}
	if p.pending >= 0 {
		if !isTech && !isDate && !isLocation && !looksLikeNewOrg(text) {
			p.extendPending(text)
			return
		}
		p.pending = -1
	}

	if cur.org != "" && (cur.role != "" || cur.dateRange != "" || len(cur.items) > 0) && !isTech &&
		(density < minCommaDensity || line.IsBold || strings.Contains(text, "|") || trailingLocationRE.MatchString(text)) &&
		looksLikeNewOrg(text) {
		p.open()
		cur = p.current
	}

	if isDate {
		cur.dateRange = dateRange
		switch {
		case remainder == "":
		case heuristics.HasTechPrefix(remainder):
			cur.tech = remainder
		case cur.role == "":
			cur.role = remainder
		default:
			cur.extra = append(cur.extra, remainder)
		}
		return
	}
	if isTech {
		cur.tech = text
		return
	}
	if cur.org != "" && (cur.role != "" || cur.dateRange != "") && cur.tech == "" &&
		!isLocation && density >= minCommaDensity {
		cur.tech = text
		return
	}

	if org, location := splitOrgLocation(text); location != "" && cur.org == "" {
		cur.org = firstNonEmpty(org, text)
		cur.location = location
		return
	}
	if isLocation && cur.location == "" {
		cur.location = text
		return
	}
	switch {
	case cur.org == "":
		cur.org = text
	case cur.role == "":
		cur.role = text
	default:
		cur.extra = append(cur.extra, text)
	}
}

func mapDateRange(dateRange string) (string, string) {
	if dateRange == "" {
		return "", ""
	}
	dr, _, _ := heuristics.ExtractDateRange(dateRange)
	return dr.Start, dr.End
}

// mapLocation reads a block location. A work-mode word such as "Remoto"
// is kept as the city.
func mapLocation(value string) heuristics.Location {
	value = strings.TrimSpace(value)
	if value == "" {
		return heuristics.Location{}
	}
	if loc := heuristics.ParseLocation(value); !loc.IsZero() {
		return loc
	}
	if heuristics.IsRemoteHint(value) {
		return heuristics.Location{City: value}
	}
	return heuristics.Location{}
}

func mapTech(value string) string {
	if value == "" {
		return ""
	}
	return heuristics.TechValue(value)
}

// highlights returns the block's bullet items followed by its unplaced lines.
func (b experienceBlock) highlights() []string {
	out := make([]string, 0, len(b.items)+len(b.extra))
	for _, text := range append(append([]string{}, b.items...), b.extra...) {
		if text = strings.TrimSpace(text); text != "" {
			out = append(out, text)
		}
	}
	return out
}

func toExperienceItems(blocks []experienceBlock) []types.ExperienceItem {
	items := make([]types.ExperienceItem, 0, len(blocks))
	for _, block := range blocks {
		start, end := mapDateRange(block.dateRange)
		loc := mapLocation(block.location)
		items = append(items, types.ExperienceItem{
			Role:         block.role,
			Company:      block.org,
			Start:        start,
			End:          end,
			City:         loc.City,
			Country:      loc.Country,
			Technologies: mapTech(block.tech),
			Highlights:   block.highlights(),
		})
	}
	return items
}

// inlineLocationSeps split "Org | Remote" style organization fields.
var inlineLocationSeps = []string{"|", "·", "/", " - ", " – ", " — "}

func splitOrgInlineLocation(value string) (string, string) {
	text := strings.TrimSpace(value)
	for _, sep := range inlineLocationSeps {
		left, right, ok := strings.Cut(text, sep)
		if !ok {
			continue
		}
		if left, right = strings.TrimSpace(left), strings.TrimSpace(right); left != "" && right != "" {
			return left, right
		}
	}
	return text, ""
}

// toExtraEntries maps experience-shaped blocks onto detailed extra entries.
func toExtraEntries(blocks []experienceBlock) []types.ExtraEntry {
	entries := make([]types.ExtraEntry, 0, len(blocks))
	for _, block := range blocks {
		start, end := mapDateRange(block.dateRange)
		where, inline := splitOrgInlineLocation(block.org)
		loc := mapLocation(block.location)
		if loc.City == "" && inline != "" {
			loc = mapLocation(inline)
		}
		entry := types.ExtraEntry{
			Title:   strings.TrimSpace(block.role),
			Where:   where,
			Tech:    mapTech(block.tech),
			Start:   start,
			End:     end,
			City:    loc.City,
			Country: loc.Country,
			Items:   block.highlights(),
		}
		if entry.HasContent() {
			entry.Mode = types.ModeDetailed
			entries = append(entries, entry)
		}
	}
	return entries
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
