package sections

import (
	"github.com/jonathan/resume-importer/internal/heuristics"
	"github.com/jonathan/resume-importer/internal/lines"
	"github.com/jonathan/resume-importer/internal/types"
)

// RawSection is an extra section before entry assembly.
type RawSection struct {
	Title string
	Lines []lines.Line
}

// Split is the result of splitting a text resume body.
type Split struct {
	// Core holds the lines of each core module keyed by module id.
	Core map[string][]string
	// Extras holds extra sections in discovery order; the i-th one is "extra-i".
	Extras []RawSection
	// Order lists module ids in the order their headings were first seen.
	Order []string
}

// splitter is the state of one left-to-right pass.
type splitter struct {
	core       map[string][]string
	extras     []RawSection
	order      []string
	seenCore   map[string]bool
	current    string
	extraIndex int
}

const sectionOther = "other"

// SplitText walks the body lines once and buckets them into the core
// sections and extra sections. Blank lines are kept inside the active
// section and trimmed at section boundaries.
func SplitText(body []string) Split {
	s := &splitter{
		core: map[string][]string{
			types.ModuleExperience: nil,
			types.ModuleEducation:  nil,
			types.ModuleSkills:     nil,
		},
		seenCore:   make(map[string]bool),
		current:    sectionOther,
		extraIndex: -1,
	}

	for i := 0; i < len(body); i++ {
		line := body[i]
		if line == "" {
			s.appendLine("")
			continue
		}
		if IsUnderline(line) {
			continue
		}
		if i+1 < len(body) && IsUnderline(body[i+1]) && !heuristics.IsBullet(line) {
			s.openUnderlined(line)
			i++
			continue
		}

		if s.current == types.ModuleSkills && IsExtraHeadingAfterSkills(line) {
			s.openExtra(HeadingTitle(line))
			continue
		}

		module, title := MatchHeading(line)
		switch {
		case module == "":
			s.appendLine(line)
		case module == ModuleExtra && s.current == types.ModuleSkills && !IsExtraKeywordHeading(line):
			s.appendLine(line)
		case module == ModuleExtra:
			s.openExtra(title)
		default:
			s.openCore(module)
		}
	}

	for id, bucket := range s.core {
		s.core[id] = trimBlankEdges(bucket)
	}
	for i := range s.extras {
		s.extras[i].Lines = trimBlankLineEdges(s.extras[i].Lines)
	}
	return Split{Core: s.core, Extras: s.extras, Order: s.order}
}

func (s *splitter) openUnderlined(line string) {
	if module, _ := MatchHeading(line); module != "" && module != ModuleExtra {
		s.openCore(module)
		return
	}
	s.openExtra(HeadingTitle(line))
}

func (s *splitter) openCore(module string) {
	s.current = module
	if !s.seenCore[module] {
		s.seenCore[module] = true
		s.order = append(s.order, module)
	}
}

func (s *splitter) openExtra(title string) {
	s.current = ModuleExtra
	s.extras = append(s.extras, RawSection{Title: title})
	s.extraIndex = len(s.extras) - 1
	s.order = append(s.order, types.ExtraSectionID(s.extraIndex))
}

func (s *splitter) appendLine(line string) {
	switch {
	case types.IsCoreModule(s.current):
		s.core[s.current] = append(s.core[s.current], line)
	case s.current == ModuleExtra && s.extraIndex >= 0:
		s.extras[s.extraIndex].Lines = append(s.extras[s.extraIndex].Lines, lines.FromText([]string{line})...)
	}
}

func trimBlankEdges(bucket []string) []string {
	start, end := 0, len(bucket)
	for start < end && bucket[start] == "" {
		start++
	}
	for end > start && bucket[end-1] == "" {
		end--
	}
	return bucket[start:end]
}

func trimBlankLineEdges(bucket []lines.Line) []lines.Line {
	start, end := 0, len(bucket)
	for start < end && bucket[start].IsBlank() {
		start++
	}
	for end > start && bucket[end-1].IsBlank() {
		end--
	}
	return bucket[start:end]
}
