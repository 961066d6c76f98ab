package forms

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/resume-importer/internal/types"
)

// ResolveOrder computes the module order of an edited structure. Modules
// ranked in orderMap ("id:position" pairs, position >= 1) come first by
// position, then the ids listed in coreOrder, then any module not yet
// placed. The coreOrder token "extras" stands for every extra section.
// Unknown ids are ignored.
func ResolveOrder(orderMap, coreOrder string, extras []types.ExtraSection) string {
	available := availableModules(extras)
	known := make(map[string]bool, len(available))
	for _, id := range available {
		known[id] = true
	}

	ranked := rankedModules(orderMap, known)
	listed := types.ExpandExtrasToken(types.SplitCoreOrder(coreOrder), extras)

	seen := make(map[string]bool, len(available))
	order := make([]string, 0, len(available))
	for _, group := range [][]string{ranked, listed, available} {
		for _, id := range group {
			if known[id] && !seen[id] {
				seen[id] = true
				order = append(order, id)
			}
		}
	}
	return strings.Join(order, ",")
}

func availableModules(extras []types.ExtraSection) []string {
	ids := append([]string{}, types.CoreModules...)
	seen := map[string]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	for _, section := range extras {
		id := strings.TrimSpace(section.SectionID)
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

type rankedModule struct {
	id       string
	position int
}

func rankedModules(orderMap string, known map[string]bool) []string {
	var ranked []rankedModule
	for _, pair := range strings.Split(orderMap, ",") {
		key, raw, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if !known[key] {
			continue
		}
		position, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || position < 1 {
			continue
		}
		ranked = append(ranked, rankedModule{id: key, position: position})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].position < ranked[j].position
	})

	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.id
	}
	return ids
}
