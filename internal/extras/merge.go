package extras

import (
	"strings"

	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/types"
)

// MergeFragments repairs entries split apart during assembly. A detailed
// entry absorbs the run of subtitle-only entries that follows it (as its
// location, tech or items), and two sparse entries where one carries only
// the core fields and the other only the location are joined.
func MergeFragments(entries []types.ExtraEntry) []types.ExtraEntry {
	if len(entries) < 2 {
		return entries
	}
	merged := make([]types.ExtraEntry, 0, len(entries))
	for i := 0; i < len(entries); {
		current := entries[i]
		if current.HasDetail() {
			absorbed := current
			absorbed.Items = trimmedItems(current.Items)
			next := i + 1
			for next < len(entries) && entries[next].IsSubtitleOnly() {
				absorbSubtitle(&absorbed, strings.TrimSpace(entries[next].Subtitle))
				next++
			}
			if next > i+1 {
				merged = append(merged, absorbed)
				i = next
				continue
			}
		}
		if i+1 < len(entries) && shouldMergeSparse(current, entries[i+1]) {
			if hasCore(current) {
				merged = append(merged, mergeEntries(current, entries[i+1]))
			} else {
				merged = append(merged, mergeEntries(entries[i+1], current))
			}
			i += 2
			continue
		}
		merged = append(merged, current)
		i++
	}
	return merged
}

func absorbSubtitle(entry *types.ExtraEntry, subtitle string) {
	if subtitle == "" {
		return
	}
	if loc := heuristics.ParseLocation(subtitle); !loc.IsZero() && strings.TrimSpace(entry.City) == "" {
		entry.City, entry.Country = loc.City, loc.Country
		return
	}
	if strings.TrimSpace(entry.Tech) == "" && heuristics.LooksLikeTech(subtitle) {
		entry.Tech = subtitle
		return
	}
	entry.Items = append(entry.Items, subtitle)
}

func isSparse(entry types.ExtraEntry) bool {
	return entry.Subtitle == "" && len(trimmedItems(entry.Items)) == 0
}

func hasPlace(entry types.ExtraEntry) bool {
	return entry.Where != "" || entry.City != "" || entry.Country != ""
}

func hasCore(entry types.ExtraEntry) bool {
	return entry.Title != "" || entry.Start != "" || entry.End != ""
}

func shouldMergeSparse(first, second types.ExtraEntry) bool {
	if !isSparse(first) || !isSparse(second) {
		return false
	}
	firstPlace, secondPlace := hasPlace(first), hasPlace(second)
	firstCore, secondCore := hasCore(first), hasCore(second)
	return (firstPlace && !firstCore && secondCore && !secondPlace) ||
		(secondPlace && !secondCore && firstCore && !firstPlace)
}

// mergeEntries joins a core fragment with a location fragment.
func mergeEntries(core, place types.ExtraEntry) types.ExtraEntry {
	return types.ExtraEntry{
		Subtitle: strings.TrimSpace(firstNonEmpty(core.Subtitle, place.Subtitle)),
		Title:    strings.TrimSpace(firstNonEmpty(core.Title, place.Title)),
		Where:    strings.TrimSpace(firstNonEmpty(place.Where, core.Where)),
		Tech:     strings.TrimSpace(firstNonEmpty(core.Tech, place.Tech)),
		Start:    firstNonEmpty(core.Start, place.Start),
		End:      firstNonEmpty(core.End, place.End),
		City:     strings.TrimSpace(firstNonEmpty(place.City, core.City)),
		Country:  strings.TrimSpace(firstNonEmpty(place.Country, core.Country)),
		Items:    append(trimmedItems(core.Items), trimmedItems(place.Items)...),
	}
}

func trimmedItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if cleaned := strings.TrimSpace(item); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
