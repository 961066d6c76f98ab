package extras

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/lines"
	"github.com/jonathan/resume-importer/internal/sections"
	"github.com/jonathan/resume-importer/internal/types"
)

var inlineSeparatorRE = regexp.MustCompile(`\s*[|·•]\s*`)

// assembler is the state of one block: the entry under construction, its
// pending items and a city prefix waiting for its city (PDF columns split
// "San | Pedro, Chile" style locations). Completed entries accumulate in done.
type assembler struct {
	indents       Indents
	entry         types.ExtraEntry
	items         []string
	pendingPrefix string
	done          []types.ExtraEntry
}

// lineState carries what the field steps learned about the current line.
type lineState struct {
	text          string
	bold          bool
	hadDate       bool
	hadLocation   bool
	prefixApplied bool
}

// step is one field-filling rule. It returns true when it consumed the line.
type step func(a *assembler, st *lineState) bool

// detailSteps run in priority order on every non-subtitle line. Steps that
// only rewrite the line (pipes, dates, trailing location) never consume it.
var detailSteps = []step{
	(*assembler).inlineList,
	(*assembler).subtitleItem,
	(*assembler).techLabel,
	(*assembler).techList,
	(*assembler).pipeSegments,
	(*assembler).leadingDate,
	(*assembler).trailingLocation,
	(*assembler).prefixSwap,
	(*assembler).emptyLine,
	(*assembler).techDetail,
	(*assembler).boldAnchor,
	(*assembler).plainLocation,
	(*assembler).freeDetail,
	(*assembler).colonPair,
	(*assembler).firstAnchor,
	(*assembler).secondAnchor,
	(*assembler).headingSubtitle,
}

// AssembleEntries turns the lines of one extra section into entries. The
// result is merged with MergeFragments and never empty.
func AssembleEntries(all []lines.Line) []types.ExtraEntry {
	var out []types.ExtraEntry
	for _, block := range SplitBlocks(all) {
		a := &assembler{indents: InferIndents(block), entry: types.EmptyExtraEntry()}
		for _, line := range block {
			a.feed(line)
		}
		a.flush()
		out = append(out, a.done...)
	}
	out = MergeFragments(out)
	if len(out) == 0 {
		return []types.ExtraEntry{types.EmptyExtraEntry()}
	}
	return out
}

func (a *assembler) feed(line lines.Line) {
	line.Text = strings.TrimSpace(line.Text)
	if line.Text == "" {
		return
	}
	if ShouldStartNewEntry(a.entry, a.items, line, a.indents) {
		a.flush()
	}

	if line.IsBullet || heuristics.IsBullet(line.Text) {
		bullet := heuristics.CleanBullet(line.Text)
		if !LooksLikeDetailedBullet(a.entry, bullet) {
			a.openSubtitle(bullet)
			return
		}
		line.IsBullet = false
		line.Text = bullet
		if ShouldStartNewEntry(a.entry, a.items, line, a.indents) {
			a.flush()
		}
	}

	st := &lineState{text: line.Text, bold: line.IsBold}
	for _, run := range detailSteps {
		if run(a, st) {
			return
		}
	}
	a.appendItems(st.text)
}

// flush closes the entry under construction.
func (a *assembler) flush() {
	a.entry.Items = nonEmpty(a.items)
	a.done = append(a.done, a.entry)
	a.entry = types.EmptyExtraEntry()
	a.items = nil
	a.pendingPrefix = ""
}

// openSubtitle starts a subtitle entry: every plain bullet is its own entry.
func (a *assembler) openSubtitle(bullet string) {
	if a.entry.HasContent() || len(a.items) > 0 {
		a.flush()
	}
	a.entry.Subtitle = bullet
}

func (a *assembler) appendItems(text string) {
	a.items = append(a.items, heuristics.SplitEscapedNewlines(heuristics.CleanBullet(text))...)
}

func (a *assembler) setLocation(loc heuristics.Location, st *lineState) {
	a.entry.City = loc.City
	a.entry.Country = loc.Country
	st.hadLocation = true
	a.applyPendingPrefix(st)
}

func (a *assembler) applyPendingPrefix(st *lineState) {
	if a.pendingPrefix == "" {
		return
	}
	before := a.entry.City
	a.pendingPrefix = applyLocationPrefix(&a.entry, a.pendingPrefix)
	if a.entry.City != before {
		st.prefixApplied = true
	}
}

// inlineList: an "A, B, C" line before any detail becomes the subtitle, or
// items once a subtitle exists.
func (a *assembler) inlineList(st *lineState) bool {
	if !heuristics.LooksLikeInlineList(st.text) || a.entry.HasDetail() {
		return false
	}
	if strings.TrimSpace(a.entry.Subtitle) == "" {
		a.entry.Subtitle = heuristics.CleanBullet(st.text)
	} else {
		a.items = append(a.items, heuristics.SplitItemsText(st.text)...)
	}
	return true
}

// subtitleItem: under a subtitle without detail every plain line is an item.
func (a *assembler) subtitleItem(st *lineState) bool {
	if strings.TrimSpace(a.entry.Subtitle) == "" || a.entry.HasDetail() {
		return false
	}
	if heuristics.HasDateRange(st.text) || sections.IsHeading(st.text) {
		return false
	}
	a.appendItems(st.text)
	return true
}

func (a *assembler) awaitingTech(st *lineState) bool {
	return !strings.Contains(st.text, "|") && (a.entry.Where != "" || a.entry.Title != "") && a.entry.Tech == ""
}

func (a *assembler) techLabel(st *lineState) bool {
	if !a.awaitingTech(st) || !hasTechLabel(st.text) {
		return false
	}
	a.entry.Tech = heuristics.TechValue(st.text)
	return true
}

// techList claims comma lists as tech before location parsing can split them.
func (a *assembler) techList(st *lineState) bool {
	if !a.awaitingTech(st) || heuristics.HasDateRange(st.text) || sections.IsHeading(st.text) {
		return false
	}
	if heuristics.LooksLikeTech(st.text) ||
		(heuristics.LooksLikeInlineList(st.text) && !heuristics.LooksLikeLocation(st.text)) {
		a.entry.Tech = st.text
		return true
	}
	return false
}

// pipeSegments reads dates and location from the right of "left | right"
// and keeps the left side as the line.
func (a *assembler) pipeSegments(st *lineState) bool {
	if !strings.Contains(st.text, "|") {
		return false
	}
	segments := heuristics.SplitFields(st.text, "|")
	var left, right string
	if len(segments) > 0 {
		left = segments[0]
		right = strings.Join(segments[1:], " ")
	}

	if right != "" {
		if a.entry.Start == "" {
			if dr, rest, ok := takeDateRange(right); ok {
				a.entry.Start, a.entry.End = dr.Start, dr.End
				right = rest
				st.hadDate = true
			}
		}
		if a.entry.City == "" && right != "" {
			if leftover, loc := heuristics.SplitTrailingLocation(right); !loc.IsZero() {
				a.setLocation(loc, st)
				right = leftover
			} else if loc := heuristics.ParseLocation(right); !loc.IsZero() {
				a.setLocation(loc, st)
				right = ""
			}
		}
	}
	if right != "" && left != "" && !st.hadDate && !st.hadLocation && heuristics.LooksLikeLocationPrefix(right) {
		a.pendingPrefix = strings.TrimSpace(a.pendingPrefix + " " + right)
		right = ""
	}

	if left != "" {
		st.text = left
	} else {
		st.text = right
	}
	return false
}

func (a *assembler) leadingDate(st *lineState) bool {
	if st.hadDate || a.entry.Start != "" {
		return false
	}
	if dr, rest, ok := takeDateRange(st.text); ok {
		a.entry.Start, a.entry.End = dr.Start, dr.End
		st.text = rest
		st.hadDate = true
	}
	return false
}

// trailingLocation detaches "..., City, Country" and settles title/where
// around it.
func (a *assembler) trailingLocation(st *lineState) bool {
	if st.text == "" {
		return false
	}
	original := st.text
	split, loc := heuristics.SplitTrailingLocation(st.text)
	if loc.IsZero() || a.entry.City != "" {
		// An entry that already has a location keeps comma-rich detail lines whole.
		if loc.IsZero() {
			st.text = split
		}
		return false
	}
	st.text = split

	if st.text == "" && a.entry.Title != "" && a.entry.Where == "" {
		leftPart := strings.TrimSpace(original[:strings.LastIndex(original, ",")])
		altLeft, altCity := heuristics.SplitLocationTailLoose(leftPart)
		if altLeft != "" && altCity != "" && !heuristics.IsLocationPrefixOnly(altLeft) && !heuristics.IsLocationStub(altLeft) {
			st.text = altLeft
			loc.City = altCity
		}
	}
	a.setLocation(loc, st)

	moved := a.entry.Title != "" && mergeTitleLocationPrefix(&a.entry, st.text)
	if moved && a.entry.Title != "" && a.entry.Where == "" && heuristics.IsLocationStub(st.text) {
		a.entry.Where, a.entry.Title = a.entry.Title, ""
	}
	if st.text != "" && a.entry.Title != "" && a.entry.Where == "" && !heuristics.IsLocationStub(st.text) {
		a.entry.Where = strings.TrimSpace(st.text)
		st.text = ""
		if a.entry.City != "" && a.entry.Country != "" {
			if base, prefix := heuristics.SplitTitleLocationSuffix(a.entry.Title); prefix != "" && base != "" {
				a.entry.Title = base
				a.entry.City = prefix + " " + a.entry.City
			}
		}
	}
	return false
}

// prefixSwap: when a pending prefix completed the city, the earlier line
// was the organization and this one is the title.
func (a *assembler) prefixSwap(st *lineState) bool {
	if st.text == "" || !st.hadLocation || !st.prefixApplied || a.entry.Title == "" || a.entry.Where != "" {
		return false
	}
	a.entry.Where = a.entry.Title
	a.entry.Title = strings.TrimSpace(st.text)
	return true
}

func (a *assembler) emptyLine(st *lineState) bool {
	return st.text == ""
}

func (a *assembler) techDetail(st *lineState) bool {
	if strings.TrimSpace(a.entry.Tech) != "" || !hasAnchorOrPlace(a.entry) {
		return false
	}
	if !heuristics.LooksLikeTech(st.text) || heuristics.HasDateRange(st.text) {
		return false
	}
	a.entry.Tech = strings.TrimSpace(st.text)
	return true
}

// boldAnchor: bold lines name the organization (where) or the title.
func (a *assembler) boldAnchor(st *lineState) bool {
	if !st.bold || a.entry.Where != "" || st.hadDate {
		return false
	}
	if st.hadLocation || heuristics.LooksLikeLocation(st.text) || strings.Contains(st.text, ",") {
		a.entry.Where = strings.TrimSpace(st.text)
		return true
	}
	if a.entry.Title == "" {
		a.entry.Title = strings.TrimSpace(st.text)
		return true
	}
	return false
}

func (a *assembler) plainLocation(st *lineState) bool {
	if a.entry.City != "" || !heuristics.LooksLikeLocation(st.text) {
		return false
	}
	loc := heuristics.ParseLocation(st.text)
	if loc.IsZero() {
		return false
	}
	a.setLocation(loc, st)
	return true
}

// freeDetail: with title and where both known, the first free line is the
// detail/tech line rather than an item.
func (a *assembler) freeDetail(st *lineState) bool {
	if strings.TrimSpace(a.entry.Tech) != "" || strings.TrimSpace(a.entry.Title) == "" || strings.TrimSpace(a.entry.Where) == "" {
		return false
	}
	if st.hadLocation || sections.IsHeading(st.text) {
		return false
	}
	a.entry.Tech = strings.TrimSpace(st.text)
	return true
}

// colonPair reads "Label: a, b" as a subtitle with items.
func (a *assembler) colonPair(st *lineState) bool {
	if a.entry.Subtitle != "" {
		return false
	}
	left, right, ok := strings.Cut(st.text, ":")
	if !ok || strings.TrimSpace(right) == "" {
		return false
	}
	a.entry.Subtitle = strings.TrimSpace(left)
	a.items = append(a.items, heuristics.SplitItemsText(right)...)
	return true
}

func (a *assembler) firstAnchor(st *lineState) bool {
	if a.entry.Title != "" || a.entry.Where != "" {
		return false
	}
	title, where := heuristics.SplitRoleCompany(st.text)
	if where != "" {
		a.entry.Title, a.entry.Where = title, where
		return true
	}
	if title == "" {
		title = strings.TrimSpace(st.text)
	}
	if st.hadLocation {
		a.entry.Where = title
	} else {
		a.entry.Title = title
	}
	return true
}

func (a *assembler) secondAnchor(st *lineState) bool {
	if a.entry.Title != "" && a.entry.Where == "" && !sections.IsHeading(st.text) {
		a.entry.Where = strings.TrimSpace(st.text)
		return true
	}
	if a.entry.Where != "" && a.entry.Title == "" && (st.hadDate || !sections.IsHeading(st.text)) {
		a.entry.Title = strings.TrimSpace(st.text)
		return true
	}
	return false
}

func (a *assembler) headingSubtitle(st *lineState) bool {
	if a.entry.Subtitle != "" || !sections.IsHeading(st.text) {
		return false
	}
	a.entry.Subtitle = strings.TrimSpace(st.text)
	return true
}

// takeDateRange removes the first loose date range from text and cleans
// the separators left around it.
func takeDateRange(text string) (heuristics.DateRange, string, bool) {
	match := heuristics.DateRangeRE.FindString(text)
	if match == "" {
		return heuristics.DateRange{}, text, false
	}
	dr, _, _ := heuristics.ExtractDateRange(match)
	rest := strings.Trim(strings.ReplaceAll(text, match, ""), " -–—()")
	rest = strings.TrimSpace(inlineSeparatorRE.ReplaceAllString(rest, " "))
	return dr, rest, true
}

// applyLocationPrefix prepends prefix to the entry city and returns what
// is still pending.
func applyLocationPrefix(entry *types.ExtraEntry, prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ""
	}
	city := strings.TrimSpace(entry.City)
	if city == "" {
		return prefix
	}
	if !strings.HasPrefix(heuristics.Fold(city), heuristics.Fold(prefix)) {
		entry.City = prefix + " " + city
	}
	return ""
}

// mergeTitleLocationPrefix moves a city prefix stuck at the end of the
// title ("Acme San" + "Pedro, Chile") into the city.
func mergeTitleLocationPrefix(entry *types.ExtraEntry, stub string) bool {
	if entry.City == "" || !heuristics.IsLocationStub(stub) {
		return false
	}
	base, prefix := heuristics.SplitLocationPrefixFromText(entry.Title)
	if prefix == "" || strings.HasPrefix(heuristics.Fold(entry.City), heuristics.Fold(prefix)) {
		return false
	}
	entry.Title = base
	entry.City = strings.TrimSpace(prefix + " " + entry.City)
	return true
}

func hasAnchorOrPlace(entry types.ExtraEntry) bool {
	for _, value := range []string{entry.Title, entry.Where, entry.Start, entry.End, entry.City, entry.Country} {
		if strings.TrimSpace(value) != "" {
			return true
		}
	}
	return false
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
