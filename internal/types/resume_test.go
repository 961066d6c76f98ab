//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		raw    string
		want   Mode
		wantOK bool
	}{
		{"detailed", ModeDetailed, true},
		{"subtitle_items", ModeSubtitleItems, true},
		{"items", ModeSubtitleItems, true},
		{" Subtitles ", ModeSubtitleItems, true},
		{"", "", false},
		{"bogus", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseMode(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMode_DecodesLegacyAliases(t *testing.T) {
	var section ExtraSection
	require.NoError(t, json.Unmarshal([]byte(`{"section_id":"extra-0","mode":"items","entries":[]}`), &section))
	assert.Equal(t, ModeSubtitleItems, section.Mode)

	var fromYAML ExtraSection
	require.NoError(t, yaml.Unmarshal([]byte("section_id: extra-1\nmode: subtitles\n"), &fromYAML))
	assert.Equal(t, ModeSubtitleItems, fromYAML.Mode)

	err := json.Unmarshal([]byte(`{"mode":"weird"}`), &section)
	assert.Error(t, err)
}

func TestDefaultStructure(t *testing.T) {
	s := DefaultStructure()
	assert.Equal(t, DefaultCoreOrder, s.Meta.CoreOrder)
	assert.Len(t, s.Experience, 1)
	assert.Len(t, s.Education, 1)
	assert.Len(t, s.Skills, 1)
	assert.Empty(t, s.ExtraSections)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"highlights":[]`)
	assert.Contains(t, string(data), `"extra_sections":[]`)
}

func TestEnsureMinimumsAndNormalize(t *testing.T) {
	var s ResumeStructure
	s.ExtraSections = []ExtraSection{{SectionID: "extra-0", Entries: []ExtraEntry{{Subtitle: "x"}}}}
	s.EnsureMinimums()
	s.Normalize()

	assert.Len(t, s.Experience, 1)
	assert.NotNil(t, s.Experience[0].Highlights)
	assert.NotNil(t, s.ExtraSections[0].Entries[0].Items)
}

func TestExtraEntryPredicates(t *testing.T) {
	tests := []struct {
		name         string
		entry        ExtraEntry
		content      bool
		detail       bool
		subtitleOnly bool
	}{
		{"empty", EmptyExtraEntry(), false, false, false},
		{"subtitle only", ExtraEntry{Subtitle: "AWS"}, true, false, true},
		{"tech counts as detail", ExtraEntry{Tech: "Go"}, true, true, false},
		{"subtitle with items", ExtraEntry{Subtitle: "AWS", Items: []string{"x"}}, true, false, false},
		{"blank items", ExtraEntry{Items: []string{"  "}}, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.content, tt.entry.HasContent())
			assert.Equal(t, tt.detail, tt.entry.HasDetail())
			assert.Equal(t, tt.subtitleOnly, tt.entry.IsSubtitleOnly())
		})
	}
}

func TestBuildCoreOrder(t *testing.T) {
	extras := []ExtraSection{{SectionID: "extra-0"}, {SectionID: "extra-1"}}

	assert.Equal(t, "experience,extra-0,education,skills,extra-1",
		BuildCoreOrder([]string{"experience", "extra-0", "education"}, extras))
	assert.Equal(t, DefaultCoreOrder, BuildCoreOrder(nil, nil))
	assert.Equal(t, "skills,experience,education",
		BuildCoreOrder([]string{"skills", "skills"}, nil))
	assert.Equal(t, "education,experience,skills",
		BuildCoreOrder([]string{"extra-3", "education"}, nil), "unknown ids are dropped")
}

func TestExpandExtrasToken(t *testing.T) {
	extras := []ExtraSection{{SectionID: "extra-0"}, {SectionID: "extra-1"}}
	got := ExpandExtrasToken([]string{"skills", "extras", "experience"}, extras)
	assert.Equal(t, []string{"skills", "extra-0", "extra-1", "experience"}, got)
}

func TestSplitCoreOrder(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitCoreOrder(" a, ,b ,"))
	assert.Nil(t, SplitCoreOrder(""))
}

func TestResumeStructure_Validate(t *testing.T) {
	valid := DefaultStructure()
	valid.ExtraSections = []ExtraSection{{SectionID: "extra-0", Mode: ModeDetailed}}
	valid.Meta.CoreOrder = "experience,extra-0,education,skills"
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*ResumeStructure)
	}{
		{"missing module in order", func(r *ResumeStructure) { r.Meta.CoreOrder = "experience,education,skills" }},
		{"unknown module in order", func(r *ResumeStructure) { r.Meta.CoreOrder += ",extra-9" }},
		{"duplicate module in order", func(r *ResumeStructure) { r.Meta.CoreOrder += ",skills" }},
		{"section id with comma", func(r *ResumeStructure) {
			r.ExtraSections[0].SectionID = "extra,0"
			r.Meta.CoreOrder = "experience,education,skills,extra,0"
		}},
		{"duplicate section ids", func(r *ResumeStructure) {
			r.ExtraSections = append(r.ExtraSections, ExtraSection{SectionID: "extra-0"})
		}},
		{"bad email", func(r *ResumeStructure) { r.Basics.Email = "not-an-email" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			s.ExtraSections = append([]ExtraSection{}, valid.ExtraSections...)
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			var structErr *StructureError
			assert.ErrorAs(t, err, &structErr)
		})
	}
}
