package parsing

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/types"
)

const sampleResume = `Jane Doe
Ingeniera de software con foco en backend.
Santiago, Chile · jane@example.com · +56 9 1234 5678
https://linkedin.com/in/janedoe

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

PROYECTOS
Portfolio Web | Ene 2022 - Mar 2022
- Sitio personal con Astro
`

func TestParseResume_Sample(t *testing.T) {
	got := ParseResume(sampleResume)

	assert.Equal(t, types.Basics{
		Name:        "Jane Doe",
		Description: "Ingeniera de software con foco en backend.",
		Email:       "jane@example.com",
		Phone:       "+56 9 1234 5678",
		LinkedIn:    "https://linkedin.com/in/janedoe",
		City:        "Santiago",
		Country:     "Chile",
	}, got.Basics)

	assert.Equal(t, "experience,education,skills,extra-0", got.Meta.CoreOrder)

	require.Len(t, got.Experience, 2)
	assert.Equal(t, types.ExperienceItem{
		Role:         "Desarrolladora Backend",
		Company:      "Example Corp",
		Start:        "2020-01",
		City:         "Santiago",
		Country:      "Chile",
		Technologies: "Go, PostgreSQL, Docker",
		Highlights:   []string{"Diseñé APIs REST para pagos", "Reduje la latencia en un 40%"},
	}, got.Experience[0])
	assert.Equal(t, types.ExperienceItem{
		Role:       "Analista",
		Company:    "Beta Labs",
		Start:      "2017-03",
		End:        "2019-12",
		Highlights: []string{"Automaticé reportes"},
	}, got.Experience[1])

	require.Len(t, got.Education, 1)
	assert.Equal(t, types.EducationItem{
		Degree:      "Ingeniería Civil en Computación",
		Institution: "Universidad de Chile",
		Start:       "2011",
		End:         "2016",
		Honors:      "Distinción máxima",
	}, got.Education[0])

	assert.Equal(t, []types.SkillGroup{
		{Category: "Lenguajes", Items: "Go, Python, SQL"},
		{Category: "Cloud", Items: "AWS, GCP"},
	}, got.Skills)

	require.Len(t, got.ExtraSections, 1)
	project := got.ExtraSections[0]
	assert.Equal(t, "extra-0", project.SectionID)
	assert.Equal(t, "PROYECTOS", project.Title)
	assert.Equal(t, types.ModeDetailed, project.Mode)
	require.Len(t, project.Entries, 1)
	assert.Equal(t, "Portfolio Web", project.Entries[0].Title)
	assert.Equal(t, []string{"Sitio personal con Astro"}, project.Entries[0].Items)

	require.NoError(t, got.Validate())
}

func TestParseResume_NoHeadings(t *testing.T) {
	got := ParseResume("Solo texto libre\nsin secciones")

	assert.Equal(t, "Solo texto libre", got.Basics.Name)
	assert.Equal(t, "sin secciones", got.Basics.Description)
	assert.Equal(t, types.DefaultCoreOrder, got.Meta.CoreOrder)
	require.Len(t, got.Experience, 1)
	assert.NotNil(t, got.Experience[0].Highlights)
	require.Len(t, got.Education, 1)
	require.Len(t, got.Skills, 1)
	assert.NotNil(t, got.ExtraSections)
	assert.Empty(t, got.ExtraSections)
}

func TestParseResume_Empty(t *testing.T) {
	got := ParseResume("")
	assert.Equal(t, types.DefaultCoreOrder, got.Meta.CoreOrder)
	assert.Len(t, got.Experience, 1)
	assert.Len(t, got.Education, 1)
	assert.Len(t, got.Skills, 1)
}

func TestParseResume_HeadingOrder(t *testing.T) {
	text := "Jane Doe\n\nHABILIDADES\nGo\n\nCERTIFICACIONES\n- AWS Cloud Practitioner\n\nEXPERIENCIA\nDev - Acme\n2020 - 2021"
	got := ParseResume(text)
	assert.Equal(t, "skills,extra-0,experience,education", got.Meta.CoreOrder)
}

func TestParseResume_NoLineLost(t *testing.T) {
	got := ParseResume(sampleResume)

	var fields []string
	for _, item := range got.Experience {
		fields = append(fields, item.Role, item.Company, item.City, item.Technologies)
		fields = append(fields, item.Highlights...)
	}
	joined := strings.Join(fields, "\n")
	for _, want := range []string{"Example Corp", "Beta Labs", "Docker", "latencia", "Automaticé"} {
		assert.Contains(t, joined, want)
	}
}

func TestParseResume_OrgPlaceLine(t *testing.T) {
	got := ParseResume("Jane Doe\n\nEXPERIENCIA\nExample Corp | Remote\nDeveloper | Jan 2023 – May 2023\n- Built stuff")

	assert.Equal(t, []types.ExperienceItem{{
		Role:       "Developer",
		Company:    "Example Corp",
		Start:      "2023-01",
		End:        "2023-05",
		City:       "Remote",
		Highlights: []string{"Built stuff"},
	}}, got.Experience)
}

func TestParseEducation_KeepsEveryLine(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []types.EducationItem
	}{
		{
			name:  "degree follow-up line",
			lines: []string{"Universidad de Chile", "Ingeniería Civil", "Minor en Datos", "2010 - 2015"},
			want: []types.EducationItem{{
				Degree:      "Ingeniería Civil; Minor en Datos",
				Institution: "Universidad de Chile",
				Start:       "2010",
				End:         "2015",
			}},
		},
		{
			name:  "second institution",
			lines: []string{"Universidad de Chile", "Ingeniería Civil", "Instituto Nacional", "Bachillerato"},
			want: []types.EducationItem{
				{Degree: "Ingeniería Civil", Institution: "Universidad de Chile"},
				{Degree: "Bachillerato", Institution: "Instituto Nacional"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEducation(tt.lines))
		})
	}
}

func TestExtractHeader_ContactBlock(t *testing.T) {
	all := []string{
		"Jane Doe",
		"Backend engineer.",
		"",
		"Contacto",
		"- Email: jane@example.com",
		"- Teléfono: +56 9 1234 5678",
		"- LinkedIn: linkedin.com/in/jane",
		"- Ubicacion: Santiago, Chile",
		"",
		"EXPERIENCIA",
		"Dev - Acme",
	}

	basics, rest := ExtractHeader(all, strings.Join(all, "\n"))

	assert.Equal(t, types.Basics{
		Name:        "Jane Doe",
		Description: "Backend engineer.",
		Email:       "jane@example.com",
		Phone:       "+56 9 1234 5678",
		LinkedIn:    "linkedin.com/in/jane",
		City:        "Santiago",
		Country:     "Chile",
	}, basics)
	assert.Equal(t, []string{"EXPERIENCIA", "Dev - Acme"}, rest)
}

func TestExtractHeader_TitleCaseSectionEndsDescription(t *testing.T) {
	all := []string{"Jane Doe", "Resumen breve", "Experiencia", "Dev - Acme"}
	basics, rest := ExtractHeader(all, strings.Join(all, "\n"))
	assert.Equal(t, "Resumen breve", basics.Description)
	assert.Equal(t, []string{"Experiencia", "Dev - Acme"}, rest)
}

func TestExtractContact(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.Basics
	}{
		{
			name: "all fields",
			text: "a@b.io | +1 (555) 123-4567 | https://github.com/ab | https://www.linkedin.com/in/ab",
			want: types.Basics{
				Email:    "a@b.io",
				Phone:    "+1 (555) 123-4567",
				LinkedIn: "https://www.linkedin.com/in/ab",
				GitHub:   "https://github.com/ab",
			},
		},
		{
			name: "year range is not a phone",
			text: "Dev 2019 - 2023",
			want: types.Basics{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractContact(tt.text))
		})
	}
}

func TestParseDocumentWith(t *testing.T) {
	t.Run("text document", func(t *testing.T) {
		doc, err := ingestion.NewDocument("cv.txt", []byte(sampleResume))
		require.NoError(t, err)

		got, err := ParseDocumentWith(doc, nil)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", got.Basics.Name)
	})

	t.Run("html document", func(t *testing.T) {
		html := `<html><body><h1>Jane Doe</h1><h2>EXPERIENCIA</h2><p>Dev - Acme</p><p>2020 - 2021</p></body></html>`
		doc, err := ingestion.NewDocument("cv.html", []byte(html))
		require.NoError(t, err)

		got, err := ParseDocumentWith(doc, nil)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", got.Basics.Name)
		require.Len(t, got.Experience, 1)
		assert.Equal(t, "Acme", got.Experience[0].Company)
	})

	t.Run("pdf goes to the pdf importer", func(t *testing.T) {
		doc, err := ingestion.NewDocument("cv.pdf", []byte("%PDF-1.4"))
		require.NoError(t, err)

		called := false
		fake := func(data []byte) (types.ResumeStructure, error) {
			called = true
			assert.Equal(t, []byte("%PDF-1.4"), data)
			return types.DefaultStructure(), nil
		}
		_, err = ParseDocumentWith(doc, fake)
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("blank text", func(t *testing.T) {
		doc, err := ingestion.NewDocument("cv.txt", []byte("  \n \n"))
		require.NoError(t, err)

		got, err := ParseDocumentWith(doc, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoText))

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "cv.txt", parseErr.Source)
		assert.Equal(t, types.DefaultStructure(), got)
	})
}
