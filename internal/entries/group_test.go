package entries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-importer/internal/types"
)

func TestGroup_Experience(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  [][]string
	}{
		{
			name: "organization line after dates",
			lines: []string{
				"Backend Developer - Acme Corp",
				"Ene 2020 - Dic 2021",
				"- Built APIs",
				"DATA ENGINEER - BETA",
				"Mar 2022 - Presente",
			},
			want: [][]string{
				{"Backend Developer - Acme Corp", "Ene 2020 - Dic 2021", "- Built APIs"},
				{"DATA ENGINEER - BETA", "Mar 2022 - Presente"},
			},
		},
		{
			name:  "blank line before lower-case header",
			lines: []string{"dev - acme", "2019 - 2020", "", "analista - beta", "2021 - 2022"},
			want: [][]string{
				{"dev - acme", "2019 - 2020"},
				{"analista - beta", "2021 - 2022"},
			},
		},
		{
			name:  "blank line before a sentence",
			lines: []string{"Dev - Acme", "2019 - 2020", "", "desarrollo de APIs en Go."},
			want:  [][]string{{"Dev - Acme", "2019 - 2020", "desarrollo de APIs en Go."}},
		},
		{
			name:  "tech line stays in the entry",
			lines: []string{"Dev - Acme", "Ene 2020 - Dic 2021", "Go, Docker, Kubernetes"},
			want:  [][]string{{"Dev - Acme", "Ene 2020 - Dic 2021", "Go, Docker, Kubernetes"}},
		},
		{
			name:  "headings are dropped",
			lines: []string{"EXPERIENCIA", "Dev - Acme"},
			want:  [][]string{{"Dev - Acme"}},
		},
		{
			name:  "labelled location stays in the entry",
			lines: []string{"Developer — Example Corp", "Ene 2023 – May 2023", "Ubicacion: Remote", "- Built stuff"},
			want:  [][]string{{"Developer — Example Corp", "Ene 2023 – May 2023", "Ubicacion: Remote", "- Built stuff"}},
		},
		{
			name:  "org and place line then role with dates",
			lines: []string{"Example Corp | Remote", "Developer | Jan 2023 – May 2023"},
			want:  [][]string{{"Example Corp | Remote", "Developer | Jan 2023 – May 2023"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Group(tt.lines, types.ModuleExperience))
		})
	}
}

func TestGroup_Education(t *testing.T) {
	got := Group([]string{
		"Universidad de Chile",
		"Ingeniería Civil",
		"2015 - 2020",
		"Universidad Católica",
		"Magíster en Datos",
		"2021 - 2022",
	}, types.ModuleEducation)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"Universidad de Chile", "Ingeniería Civil", "2015 - 2020"}, got[0])
	assert.Equal(t, []string{"Universidad Católica", "Magíster en Datos", "2021 - 2022"}, got[1])
}

func TestGroup_EducationDegreeFollowUp(t *testing.T) {
	got := Group([]string{
		"Universidad de Chile",
		"Ingeniería Civil",
		"Minor en Datos",
		"2010 - 2015",
	}, types.ModuleEducation)

	assert.Equal(t, [][]string{{"Universidad de Chile", "Ingeniería Civil", "Minor en Datos", "2010 - 2015"}}, got)
}

func TestGroup_Empty(t *testing.T) {
	got := Group(nil, types.ModuleExperience)
	require.Len(t, got, 1)
	assert.Empty(t, got[0])
}

func TestLooksLikeEntryStart(t *testing.T) {
	dated := []string{"Dev - Acme", "2019 - 2020"}
	bulleted := []string{"Dev - Acme", "- Built APIs"}
	bare := []string{"Dev - Acme"}

	assert.True(t, LooksLikeEntryStart("Beta Corp", dated, types.ModuleExperience))
	assert.True(t, LooksLikeEntryStart("Beta Corp", bulleted, types.ModuleExperience))
	assert.False(t, LooksLikeEntryStart("Beta Corp", bare, types.ModuleExperience))
	assert.False(t, LooksLikeEntryStart("- Beta Corp", dated, types.ModuleExperience))
	assert.False(t, LooksLikeEntryStart("Beta Corp 2021 - 2022", dated, types.ModuleExperience))
	assert.True(t, LooksLikeEntryStart("Instituto Nacional", []string{"Universidad de Chile"}, types.ModuleEducation))
	assert.True(t, LooksLikeEntryStart("Instituto Nacional", []string{"Universidad de Chile", "Ingeniería Civil"}, types.ModuleEducation))
	assert.False(t, LooksLikeEntryStart("Minor en Datos", []string{"Universidad de Chile", "Ingeniería Civil"}, types.ModuleEducation))
	assert.False(t, LooksLikeEntryStart("Ubicacion: Remote", dated, types.ModuleExperience))
	assert.False(t, LooksLikeEntryStart("Beta Corp", dated, types.ModuleSkills))
}
