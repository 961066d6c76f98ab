package forms

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-importer/internal/types"
)

func TestFromForm_CoreModules(t *testing.T) {
	values := url.Values{
		"name":            {"  Jane Doe "},
		"email":           {"jane@example.com"},
		"city":            {"Santiago"},
		"country":         {"Chile"},
		"exp_role":        {"Dev", "Analista"},
		"exp_company":     {"Acme"},
		"exp_start":       {"Ene 2020", "2018"},
		"exp_end":         {"Presente", "2019-12"},
		"exp_tech":        {"Go, Docker"},
		"exp_highlights":  {"- Diseñé APIs\r\n\r\n• Bajé costos", ""},
		"edu_degree":      {"Ingeniería"},
		"edu_institution": {"Universidad de Chile"},
		"edu_start":       {"2011"},
		"edu_end":         {"2016"},
		"skill_category":  {"Lenguajes", "Cloud"},
		"skill_items":     {" Go, Python "},
	}

	got := FromForm(values)

	assert.Equal(t, "Jane Doe", got.Basics.Name)
	assert.Equal(t, "jane@example.com", got.Basics.Email)
	assert.Equal(t, "Santiago", got.Basics.City)

	require.Len(t, got.Experience, 2)
	assert.Equal(t, types.ExperienceItem{
		Role:         "Dev",
		Company:      "Acme",
		Start:        "2020-01",
		Technologies: "Go, Docker",
		Highlights:   []string{"Diseñé APIs", "Bajé costos"},
	}, got.Experience[0])
	assert.Equal(t, types.ExperienceItem{
		Role:       "Analista",
		Start:      "2018",
		End:        "2019-12",
		Highlights: []string{},
	}, got.Experience[1], "missing values read as empty")

	assert.Equal(t, []types.EducationItem{{
		Degree:      "Ingeniería",
		Institution: "Universidad de Chile",
		Start:       "2011",
		End:         "2016",
	}}, got.Education)

	assert.Equal(t, []types.SkillGroup{
		{Category: "Lenguajes", Items: "Go, Python"},
		{Category: "Cloud"},
	}, got.Skills)

	assert.Equal(t, types.DefaultCoreOrder, got.Meta.CoreOrder)
	assert.NotNil(t, got.ExtraSections)
	assert.Empty(t, got.ExtraSections)
}

func TestFromForm_LongRowPrefixes(t *testing.T) {
	got := FromForm(url.Values{
		"experience_role":    {"Dev"},
		"experience_company": {"Acme"},
		"education_degree":   {"MBA"},
	})

	require.Len(t, got.Experience, 1)
	assert.Equal(t, "Acme", got.Experience[0].Company)
	require.Len(t, got.Education, 1)
	assert.Equal(t, "MBA", got.Education[0].Degree)
}

func TestFromForm_EmptyPayload(t *testing.T) {
	got := FromForm(url.Values{})
	assert.Equal(t, types.DefaultStructure(), got)
}

func TestFromForm_AlignedExtraEntries(t *testing.T) {
	got := FromForm(url.Values{
		"extra_section_id":           {"extra-0"},
		"extra_title":                {"PROYECTOS"},
		"extra_mode":                 {"detailed"},
		"extra_entry_section":        {"extra-0", "extra-0"},
		"extra_entry_subtitle":       {"", ""},
		"extra_entry_title":          {"Portfolio", "Pipeline"},
		"extra_entry_where":          {"Personal", ""},
		"extra_entry_tech":           {"Astro", ""},
		"extra_entry_start":          {"Ene 2022", "2023-04"},
		"extra_entry_end":            {"Mar 2022", ""},
		"extra_entry_city":           {"", ""},
		"extra_entry_country":        {"", ""},
		"extra_entry_items_si":       {"", ""},
		"extra_entry_items_detailed": {"- Sitio personal", "Carga diaria\nReportes"},
	})

	require.Len(t, got.ExtraSections, 1)
	section := got.ExtraSections[0]
	assert.Equal(t, types.ModeDetailed, section.Mode)
	assert.Equal(t, []types.ExtraEntry{
		{
			Title: "Portfolio",
			Where: "Personal",
			Tech:  "Astro",
			Start: "2022-01",
			End:   "2022-03",
			Items: []string{"Sitio personal"},
			Mode:  types.ModeDetailed,
		},
		{
			Title: "Pipeline",
			Start: "2023-04",
			Items: []string{"Carga diaria", "Reportes"},
			Mode:  types.ModeDetailed,
		},
	}, section.Entries)
	assert.Equal(t, "experience,education,skills,extra-0", got.Meta.CoreOrder)
}

func TestFromForm_SparseExtraEntries(t *testing.T) {
	got := FromForm(url.Values{
		"extra_section_id":           {"langs", "projects"},
		"extra_title":                {"IDIOMAS", "PROYECTOS"},
		"extra_mode":                 {"subtitles", "detailed"},
		"extra_entry_section":        {"langs", "projects", "langs"},
		"extra_entry_subtitle":       {"Inglés", "Portugués"},
		"extra_entry_title":          {"Proyecto X"},
		"extra_entry_start":          {"Ene 2022"},
		"extra_entry_items_si":       {"C1", ""},
		"extra_entry_items_detailed": {"- hice A\n- hice B"},
	})

	require.Len(t, got.ExtraSections, 2)

	langs := got.ExtraSections[0]
	assert.Equal(t, types.ModeSubtitleItems, langs.Mode, "legacy mode names normalize")
	assert.Equal(t, []types.ExtraEntry{
		{Subtitle: "Inglés", Items: []string{"C1"}, Mode: types.ModeSubtitleItems},
		{Subtitle: "Portugués", Items: []string{}, Mode: types.ModeSubtitleItems},
	}, langs.Entries)

	projects := got.ExtraSections[1]
	assert.Equal(t, []types.ExtraEntry{{
		Title: "Proyecto X",
		Start: "2022-01",
		Items: []string{"hice A", "hice B"},
		Mode:  types.ModeDetailed,
	}}, projects.Entries)
}

func TestFromForm_LegacyItems(t *testing.T) {
	t.Run("paired values", func(t *testing.T) {
		got := FromForm(url.Values{
			"extra_section_id":    {"a", "b"},
			"extra_title":         {"DETALLE", "LISTA"},
			"extra_mode":          {"detailed", "subtitle_items"},
			"extra_entry_section": {"a", "b"},
			"extra_entry_title":   {"Proyecto", ""},
			"extra_entry_items":   {"detalle", "ignorado", "", "secundario"},
		})

		require.Len(t, got.ExtraSections, 2)
		assert.Equal(t, []string{"detalle"}, got.ExtraSections[0].Entries[0].Items)
		assert.Equal(t, "secundario", got.ExtraSections[1].Entries[0].Subtitle, "first item promoted to subtitle")
		assert.Empty(t, got.ExtraSections[1].Entries[0].Items)
	})

	t.Run("one value per entry", func(t *testing.T) {
		got := FromForm(url.Values{
			"extra_section_id":    {"certs"},
			"extra_title":         {"CERTIFICACIONES"},
			"extra_mode":          {"items"},
			"extra_entry_section": {"certs"},
			"extra_entry_items":   {"AWS\nScrum\n1\n2"},
		})

		require.Len(t, got.ExtraSections, 1)
		entry := got.ExtraSections[0].Entries[0]
		assert.Equal(t, "AWS", entry.Subtitle)
		assert.Equal(t, []string{"Scrum", "1", "2"}, entry.Items)
	})
}

func TestFromForm_EntrySectionFallbacks(t *testing.T) {
	got := FromForm(url.Values{
		"extra_section_id":     {"only"},
		"extra_title":          {"PREMIOS"},
		"extra_mode":           {"bogus"},
		"extra_entry_section":  {"", "missing", "only"},
		"extra_entry_subtitle": {"Primero", "Perdido", "Tercero"},
	})

	require.Len(t, got.ExtraSections, 1)
	section := got.ExtraSections[0]
	assert.Equal(t, types.ModeSubtitleItems, section.Mode, "unknown modes fall back")
	require.Len(t, section.Entries, 2)
	assert.Equal(t, "Primero", section.Entries[0].Subtitle)
	assert.Equal(t, "Tercero", section.Entries[1].Subtitle)
}

func TestFromForm_SectionsWithoutEntries(t *testing.T) {
	got := FromForm(url.Values{
		"extra_section_id": {"", "titled"},
		"extra_title":      {"", "PREMIOS"},
		"extra_mode":       {"detailed", "detailed"},
	})

	require.Len(t, got.ExtraSections, 1, "untitled empty sections are dropped")
	assert.Equal(t, "titled", got.ExtraSections[0].SectionID)
	require.Len(t, got.ExtraSections[0].Entries, 1)
	assert.False(t, got.ExtraSections[0].Entries[0].HasContent())
}

func TestFromForm_MissingSectionIDGetsPositionalID(t *testing.T) {
	got := FromForm(url.Values{
		"extra_section_id":     {"", ""},
		"extra_title":          {"A", "B"},
		"extra_entry_section":  {"extra-1"},
		"extra_entry_subtitle": {"x"},
	})

	require.Len(t, got.ExtraSections, 2)
	assert.Equal(t, "extra-0", got.ExtraSections[0].SectionID)
	assert.Equal(t, "extra-1", got.ExtraSections[1].SectionID)
	assert.Equal(t, "x", got.ExtraSections[1].Entries[0].Subtitle)
}

func TestResolveOrder(t *testing.T) {
	extras := []types.ExtraSection{{SectionID: "extra-0"}, {SectionID: "extra-1"}}

	tests := []struct {
		name      string
		orderMap  string
		coreOrder string
		want      string
	}{
		{
			name: "defaults",
			want: "experience,education,skills,extra-0,extra-1",
		},
		{
			name:      "core order with extras token",
			coreOrder: "skills, extras ,experience",
			want:      "skills,extra-0,extra-1,experience,education",
		},
		{
			name:      "order map wins",
			orderMap:  "extra-1:1,education:2,skills:2",
			coreOrder: "experience",
			want:      "extra-1,education,skills,experience,extra-0",
		},
		{
			name:     "invalid pairs ignored",
			orderMap: "skills:0,unknown:1,education,experience:x,extra-0:3",
			want:     "extra-0,experience,education,skills,extra-1",
		},
		{
			name:      "unknown ids and duplicates dropped",
			coreOrder: "nope,education,education",
			want:      "education,experience,skills,extra-0,extra-1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveOrder(tt.orderMap, tt.coreOrder, extras))
		})
	}
}

func TestFromForm_ModuleOrder(t *testing.T) {
	got := FromForm(url.Values{
		"extra_section_id": {"extra-0"},
		"extra_title":      {"PROYECTOS"},
		"core_order":       {"extras,experience"},
		"module_order_map": {"skills:1"},
	})
	assert.Equal(t, "skills,extra-0,experience,education", got.Meta.CoreOrder)
	require.NoError(t, got.Validate())
}
