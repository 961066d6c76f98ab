package forms

import (
	"strings"

	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/types"
)

// entryShape is the input group an entry belongs to in the editor.
// Inputs of the other group are disabled and not submitted.
type entryShape int

const (
	shapeSubtitle entryShape = iota
	shapeDetailed
)

func shapeOf(mode types.Mode) entryShape {
	if mode == types.ModeDetailed {
		return shapeDetailed
	}
	return shapeSubtitle
}

// entryColumn reads one repeated extra-entry field. When the field has one
// value per entry it is indexed directly; otherwise values were only
// submitted for entries of the column's shape and are consumed in order.
type entryColumn struct {
	values  []string
	shape   entryShape
	aligned bool
	cursor  int
}

func newEntryColumn(values []string, shape entryShape, entryCount int) *entryColumn {
	return &entryColumn{
		values:  values,
		shape:   shape,
		aligned: entryCount > 0 && len(values) == entryCount,
	}
}

func (c *entryColumn) value(idx int, shape entryShape) string {
	if c.aligned {
		return at(c.values, idx)
	}
	if shape != c.shape {
		return ""
	}
	v := at(c.values, c.cursor)
	c.cursor++
	return v
}

// entryColumns holds every extra-entry field of the payload.
type entryColumns struct {
	subtitle, title, where, tech *entryColumn
	start, end, city, country    *entryColumn
	itemsSubtitle, itemsDetailed *entryColumn
	legacyItems                  []string
	modeItems, pairedItems       bool
}

func readEntryColumns(form payload, count int) *entryColumns {
	col := func(key string, shape entryShape) *entryColumn {
		return newEntryColumn(form.list(key), shape, count)
	}
	itemsSI := form.list("extra_entry_items_si")
	itemsDetailed := form.list("extra_entry_items_detailed")
	legacy := form.list("extra_entry_items")

	return &entryColumns{
		subtitle:      col("extra_entry_subtitle", shapeSubtitle),
		title:         col("extra_entry_title", shapeDetailed),
		where:         col("extra_entry_where", shapeDetailed),
		tech:          col("extra_entry_tech", shapeDetailed),
		start:         col("extra_entry_start", shapeDetailed),
		end:           col("extra_entry_end", shapeDetailed),
		city:          col("extra_entry_city", shapeDetailed),
		country:       col("extra_entry_country", shapeDetailed),
		itemsSubtitle: newEntryColumn(itemsSI, shapeSubtitle, count),
		itemsDetailed: newEntryColumn(itemsDetailed, shapeDetailed, count),
		legacyItems:   legacy,
		modeItems:     len(itemsSI) > 0 || len(itemsDetailed) > 0,
		pairedItems:   count > 0 && len(legacy) == count*2,
	}
}

// rawItems picks the item text of entry idx from whichever encoding the
// payload uses. Paired legacy values hold the detailed text first.
func (c *entryColumns) rawItems(idx int, shape entryShape) string {
	switch {
	case c.modeItems:
		if shape == shapeDetailed {
			return c.itemsDetailed.value(idx, shape)
		}
		return c.itemsSubtitle.value(idx, shape)
	case c.pairedItems:
		primary, secondary := at(c.legacyItems, idx*2), at(c.legacyItems, idx*2+1)
		if shape == shapeDetailed {
			return firstNonEmpty(primary, secondary)
		}
		return firstNonEmpty(secondary, primary)
	default:
		return at(c.legacyItems, idx)
	}
}

func (c *entryColumns) entry(idx int, mode types.Mode) types.ExtraEntry {
	shape := shapeOf(mode)
	entry := types.ExtraEntry{
		Subtitle: strings.TrimSpace(c.subtitle.value(idx, shape)),
		Title:    strings.TrimSpace(c.title.value(idx, shape)),
		Where:    strings.TrimSpace(c.where.value(idx, shape)),
		Tech:     strings.TrimSpace(c.tech.value(idx, shape)),
		Start:    heuristics.NormalizeDateToken(c.start.value(idx, shape)),
		End:      heuristics.NormalizeDateToken(c.end.value(idx, shape)),
		City:     strings.TrimSpace(c.city.value(idx, shape)),
		Country:  strings.TrimSpace(c.country.value(idx, shape)),
		Items:    ParseItems(c.rawItems(idx, shape)),
		Mode:     mode,
	}
	// a subtitle entry typed only as items keeps its first item as subtitle
	if mode == types.ModeSubtitleItems && entry.Subtitle == "" && len(entry.Items) > 0 {
		entry.Subtitle = entry.Items[0]
		entry.Items = entry.Items[1:]
	}
	return entry
}

// ParseItems splits editor item text into one item per line, without
// bullet markers. Digits split one per line are joined back together.
func ParseItems(raw string) []string {
	items := heuristics.SplitItemsText(normalizeNewlines(raw))
	if items == nil {
		return []string{}
	}
	return items
}

func extraSections(form payload) []types.ExtraSection {
	ids := form.list("extra_section_id")
	titles := form.list("extra_title")
	modes := form.list("extra_mode")

	sections := make([]types.ExtraSection, 0, len(ids))
	index := make(map[string]int, len(ids))
	for idx, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			id = types.ExtraSectionID(idx)
		}
		mode, ok := types.ParseMode(at(modes, idx))
		if !ok {
			mode = types.ModeSubtitleItems
		}
		index[id] = len(sections)
		sections = append(sections, types.ExtraSection{
			SectionID: id,
			Title:     strings.TrimSpace(at(titles, idx)),
			Mode:      mode,
			Entries:   []types.ExtraEntry{},
		})
	}

	entrySections := form.list("extra_entry_section")
	columns := readEntryColumns(form, len(entrySections))

	single := ""
	if len(sections) == 1 {
		single = sections[0].SectionID
	}
	lastValid := single
	for idx, raw := range entrySections {
		id := strings.TrimSpace(raw)
		if id == "" {
			id = firstNonEmpty(lastValid, single)
		}
		pos, ok := index[id]
		if !ok {
			continue
		}
		lastValid = id
		section := &sections[pos]
		if entry := columns.entry(idx, section.Mode); entry.HasContent() {
			section.Entries = append(section.Entries, entry)
		}
	}

	kept := make([]types.ExtraSection, 0, len(sections))
	for _, section := range sections {
		if len(section.Entries) == 0 {
			if section.Title == "" {
				continue
			}
			section.Entries = []types.ExtraEntry{types.EmptyExtraEntry()}
		}
		kept = append(kept, section)
	}
	return kept
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
