package rendering

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/resume-importer/internal/types"
)

//go:embed templates/resume.txt.tmpl
var templateFS embed.FS

const defaultTemplate = "templates/resume.txt.tmpl"

var funcs = template.FuncMap{
	"trim":          strings.TrimSpace,
	"heading":       heading,
	"place":         place,
	"dateRange":     dateRange,
	"detailHeading": detailHeading,
	"subtitleLines": subtitleLines,
	"skillLine":     skillLine,
	"paragraphs":    paragraphs,
	"underline":     underline,
	"items":         nonBlank,
}

// RenderText projects r back into plain text: header, "Contacto" block,
// then one block per module in core order. Lines are joined with CRLF and
// blank runs collapse to one blank line.
func RenderText(r types.ResumeStructure) (string, error) {
	tmpl, err := template.New("resume.txt.tmpl").Funcs(funcs).ParseFS(templateFS, defaultTemplate)
	if err != nil {
		return "", &TemplateError{Message: "failed to parse embedded template", Cause: err}
	}
	return execute(tmpl, r)
}

// RenderTextWithTemplate renders r with a custom template file. The
// template sees the same data and functions as the built-in one.
func RenderTextWithTemplate(r types.ResumeStructure, templatePath string) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return execute(tmpl, r)
}

// parseTemplate reads and parses a text template file
func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}

	tmpl, err := template.New("resume").Funcs(funcs).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

func execute(tmpl *template.Template, r types.ResumeStructure) (string, error) {
	var out strings.Builder
	if err := tmpl.Execute(&out, buildTemplateData(r)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return collapseBlankLines(out.String()), nil
}

// collapseBlankLines trims every line, keeps at most one blank line in a
// row and drops leading and trailing blanks.
func collapseBlankLines(text string) string {
	var lines []string
	blank := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			blank = len(lines) > 0
			continue
		}
		if blank {
			lines = append(lines, "")
			blank = false
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\r\n")
}
