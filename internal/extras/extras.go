package extras

import (
	"strings"

	"github.com/jonathan/resume-importer/internal/sections"
	"github.com/jonathan/resume-importer/internal/types"
)

// InferEntryMode is detailed when any of title, where, start, end, city or
// country is set, and subtitle_items otherwise.
func InferEntryMode(entry types.ExtraEntry) types.Mode {
	for _, value := range []string{entry.Title, entry.Where, entry.Start, entry.End, entry.City, entry.Country} {
		if value != "" {
			return types.ModeDetailed
		}
	}
	return types.ModeSubtitleItems
}

// InferSectionMode is detailed when any entry infers detailed.
func InferSectionMode(entries []types.ExtraEntry) types.Mode {
	for _, entry := range entries {
		if InferEntryMode(entry) == types.ModeDetailed {
			return types.ModeDetailed
		}
	}
	return types.ModeSubtitleItems
}

// Parse assembles every raw extra section. The i-th raw section gets id
// "extra-i". Empty entries are dropped unless nothing else remains; an
// untitled section with no content is dropped altogether.
func Parse(raw []sections.RawSection) []types.ExtraSection {
	parsed := make([]types.ExtraSection, 0, len(raw))
	for idx, section := range raw {
		if extra, ok := Build(types.ExtraSectionID(idx), section.Title, AssembleEntries(section.Lines)); ok {
			parsed = append(parsed, extra)
		}
	}
	return parsed
}

// Build finishes a section from assembled entries: per-entry modes are
// inferred where missing, empty entries are filtered and the section mode
// is derived.
func Build(id, title string, entries []types.ExtraEntry) (types.ExtraSection, bool) {
	title = strings.TrimSpace(title)
	for i := range entries {
		if entries[i].Mode == "" {
			entries[i].Mode = InferEntryMode(entries[i])
		}
	}

	kept := make([]types.ExtraEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.HasContent() {
			kept = append(kept, entry)
		}
	}
	if len(kept) == 0 {
		if title == "" {
			return types.ExtraSection{}, false
		}
		kept = entries
	}
	if len(kept) == 0 {
		kept = []types.ExtraEntry{types.EmptyExtraEntry()}
	}
	return types.ExtraSection{
		SectionID: id,
		Title:     title,
		Mode:      InferSectionMode(kept),
		Entries:   kept,
	}, true
}
