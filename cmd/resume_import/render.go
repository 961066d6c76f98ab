package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-importer/internal/rendering"
)

var renderCmd = &cobra.Command{
	Use:   "render STRUCTURE_FILE",
	Short: "Render a structured resume as plain text",
	Long:  "Renders a JSON or YAML structure file to the plain-text resume format, which parses back into the same structure.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var (
	renderTemplate string
	renderOutput   string
)

func init() {
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Path to a text/template file (default built-in layout)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Output file (default stdout)")

	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, args []string) error {
	structure, err := readStructure(args[0])
	if err != nil {
		return err
	}

	var text string
	if renderTemplate != "" {
		text, err = rendering.RenderTextWithTemplate(structure, renderTemplate)
	} else {
		text, err = rendering.RenderText(structure)
	}
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}

	if renderOutput == "" {
		text += "\n"
	}
	return writeOutput(renderOutput, []byte(text))
}
