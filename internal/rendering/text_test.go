package rendering

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-importer/internal/parsing"
	"github.com/jonathan/resume-importer/internal/types"
)

func sampleStructure() types.ResumeStructure {
	return types.ResumeStructure{
		Meta: types.Meta{CoreOrder: "experience,education,skills,extra-0"},
		Basics: types.Basics{
			Name:        "Jane Doe",
			Description: "Backend.",
			Email:       "jane@example.com",
			City:        "Santiago",
			Country:     "Chile",
		},
		Experience: []types.ExperienceItem{{
			Role:         "Dev",
			Company:      "Acme",
			Start:        "2020-01",
			Technologies: "Go",
			Highlights:   []string{"Built APIs", " "},
		}},
		Education: []types.EducationItem{{}},
		Skills:    []types.SkillGroup{{Category: "Lenguajes", Items: "Go, SQL"}},
		ExtraSections: []types.ExtraSection{{
			SectionID: "extra-0",
			Title:     "Idiomas",
			Mode:      types.ModeSubtitleItems,
			Entries: []types.ExtraEntry{
				{Subtitle: "Inglés", Items: []string{"Avanzado"}},
				{Subtitle: "Portugués"},
			},
		}},
	}
}

func TestRenderText(t *testing.T) {
	got, err := RenderText(sampleStructure())
	require.NoError(t, err)

	want := []string{
		"Jane Doe",
		"Backend.",
		"",
		"Contacto",
		"- Email: jane@example.com",
		"- Ubicacion: Santiago, Chile",
		"",
		"EXPERIENCIA",
		"",
		"Dev — Acme",
		"Ene 2020 – Actualidad",
		"Tecnologías: Go",
		"- Built APIs",
		"",
		"HABILIDADES",
		"Lenguajes: Go, SQL",
		"",
		"Idiomas",
		"-------",
		"- Inglés",
		"Avanzado",
		"- Portugués",
	}
	assert.Equal(t, strings.Join(want, "\r\n"), got)
}

func TestRenderText_FollowsCoreOrder(t *testing.T) {
	r := sampleStructure()
	r.Meta.CoreOrder = "extras,skills"

	got, err := RenderText(r)
	require.NoError(t, err)

	idiomas := strings.Index(got, "Idiomas")
	skills := strings.Index(got, "HABILIDADES")
	experience := strings.Index(got, "EXPERIENCIA")
	require.True(t, idiomas > 0 && skills > 0 && experience > 0)
	assert.Less(t, idiomas, skills)
	assert.Less(t, skills, experience, "modules missing from the order are appended")
}

func TestRenderText_DetailedExtras(t *testing.T) {
	r := types.DefaultStructure()
	r.ExtraSections = []types.ExtraSection{{
		SectionID: "extra-0",
		Title:     "Proyectos",
		Mode:      types.ModeDetailed,
		Entries: []types.ExtraEntry{
			{Title: "Portfolio", Where: "Freelance", Start: "2022-01", End: "2022-03", City: "Lima", Country: "Perú", Items: []string{"Sitio con Astro"}},
			{},
			{Subtitle: "Charla", Mode: types.ModeSubtitleItems},
		},
	}}
	r.Meta.CoreOrder = types.BuildCoreOrder(nil, r.ExtraSections)

	got, err := RenderText(r)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"Proyectos",
		"---------",
		"",
		"Portfolio — Freelance | Ene 2022 – Mar 2022 | Lima, Perú",
		"- Sitio con Astro",
		"- Charla",
	}, "\r\n"), got)
}

func TestRenderText_EmptyStructure(t *testing.T) {
	got, err := RenderText(types.DefaultStructure())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRenderText_UntitledExtra(t *testing.T) {
	tests := []struct {
		name    string
		entries []types.ExtraEntry
		want    string
	}{
		{
			name:    "entries render under a placeholder heading",
			entries: []types.ExtraEntry{{Subtitle: "Voluntariado en ONG"}},
			want:    "Otros\r\n-----\r\n- Voluntariado en ONG",
		},
		{
			name:    "empty entries render nothing",
			entries: []types.ExtraEntry{{}},
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := types.DefaultStructure()
			r.ExtraSections = []types.ExtraSection{{SectionID: "extra-0", Mode: types.ModeSubtitleItems, Entries: tt.entries}}
			got, err := RenderText(r)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Contains(t, got, tt.want)
		})
	}
}

const roundTripResume = `Jane Doe
Ingeniera de software con foco en backend.
Santiago, Chile · jane@example.com · +56 9 1234 5678

EXPERIENCIA
Desarrolladora Backend - Example Corp
Ene 2020 - Presente
Santiago, Chile
Tecnologías: Go, PostgreSQL, Docker
- Diseñé APIs REST para pagos
- Reduje la latencia en un 40%

Analista - Beta Labs
Mar 2017 - Dic 2019
- Automaticé reportes

EDUCACIÓN
Ingeniería Civil en Computación
Universidad de Chile
2011 - 2016
Honores: Distinción máxima

HABILIDADES
Lenguajes: Go, Python, SQL
Cloud: AWS, GCP
`

func TestRenderText_RoundTrip(t *testing.T) {
	first := parsing.ParseResume(roundTripResume)

	text, err := RenderText(first)
	require.NoError(t, err)
	second := parsing.ParseResume(text)

	assert.Equal(t, first.Basics, second.Basics)
	assert.Equal(t, first.Experience, second.Experience)
	assert.Equal(t, first.Education, second.Education)
	assert.Equal(t, first.Skills, second.Skills)
	assert.Equal(t, first.Meta.CoreOrder, second.Meta.CoreOrder)
}

func TestRenderText_RoundTripKeepsEntries(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "organization with work mode",
			text: "Jane Doe\n\nEXPERIENCIA\nExample Corp | Remote\nDeveloper | Jan 2023 – May 2023\n- Built stuff\n",
		},
		{
			name: "three line education block",
			text: "Jane Doe\n\nEDUCACIÓN\nUniversidad de Chile\nIngeniería Civil\nMinor en Datos\n2010 - 2015\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := parsing.ParseResume(tt.text)

			text, err := RenderText(first)
			require.NoError(t, err)
			second := parsing.ParseResume(text)

			assert.Equal(t, first.Experience, second.Experience)
			assert.Equal(t, first.Education, second.Education)
		})
	}
}

func TestRenderText_RoundTripKeepsEducationDetail(t *testing.T) {
	first := parsing.ParseResume("Jane Doe\n\nEDUCACIÓN\nUniversidad de Chile\nIngeniería Civil\nMinor en Datos\n2010 - 2015\n")
	require.Len(t, first.Education, 1)

	text, err := RenderText(first)
	require.NoError(t, err)
	assert.Contains(t, text, "Minor en Datos")
	assert.Contains(t, parsing.ParseResume(text).Education[0].Degree, "Minor en Datos")
}

func TestRenderTextWithTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(`{{.Basics.Name}}{{range .Contact}} | {{.}}{{end}}`), 0o644))

	got, err := RenderTextWithTemplate(sampleStructure(), path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe | Email: jane@example.com | Ubicacion: Santiago, Chile", got)
}

func TestRenderTextWithTemplate_Errors(t *testing.T) {
	_, err := RenderTextWithTemplate(sampleStructure(), "/nonexistent/template.tmpl")
	var templateErr *TemplateError
	require.ErrorAs(t, err, &templateErr)
	assert.Contains(t, err.Error(), "template file not found")

	path := filepath.Join(t.TempDir(), "bad.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(`{{.Basics.Name`), 0o644))
	_, err = RenderTextWithTemplate(sampleStructure(), path)
	require.ErrorAs(t, err, &templateErr)
	assert.Contains(t, err.Error(), "failed to parse template")
}
