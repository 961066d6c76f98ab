// Package parsing assembles a ResumeStructure from plain resume text: the
// header block, the three core sections and the extra sections, in the
// order their headings appear.
package parsing

import (
	"strings"

	"github.com/jonathan/resume-importer/internal/extras"
	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/sections"
	"github.com/jonathan/resume-importer/internal/types"
)

// ParseResume structures plain resume text. It never fails: text without
// any recognizable section still yields a valid structure with one empty
// row per core module.
func ParseResume(text string) types.ResumeStructure {
	all := ingestion.CompactLines(ingestion.SplitLines(text))
	basics, body := ExtractHeader(all, strings.Join(all, "\n"))
	split := sections.SplitText(body)

	result := types.ResumeStructure{
		Basics:        basics,
		Experience:    ParseExperience(split.Core[types.ModuleExperience]),
		Education:     ParseEducation(split.Core[types.ModuleEducation]),
		Skills:        ParseSkills(split.Core[types.ModuleSkills]),
		ExtraSections: extras.Parse(split.Extras),
	}
	result.Meta.CoreOrder = types.BuildCoreOrder(split.Order, result.ExtraSections)
	result.EnsureMinimums()
	result.Normalize()
	return result
}
