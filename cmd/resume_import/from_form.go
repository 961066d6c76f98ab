package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-importer/internal/forms"
	"github.com/jonathan/resume-importer/internal/schemas"
)

var fromFormCmd = &cobra.Command{
	Use:   "from-form FORM_FILE",
	Short: "Build a structured resume from an editor form submission",
	Long:  "Reads a URL-encoded form body (as posted by the resume editor) and writes the structure it describes.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFromForm,
}

var (
	fromFormFormat   string
	fromFormOutput   string
	fromFormValidate bool
)

func init() {
	fromFormCmd.Flags().StringVarP(&fromFormFormat, "format", "f", "", "Output format: json or yaml (default from config)")
	fromFormCmd.Flags().StringVarP(&fromFormOutput, "out", "o", "", "Output file (default stdout)")
	fromFormCmd.Flags().BoolVar(&fromFormValidate, "validate", false, "Validate the structure against the schema before writing")

	rootCmd.AddCommand(fromFormCmd)
}

func runFromForm(_ *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	body, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read form file: %w", err)
	}
	values, err := url.ParseQuery(strings.TrimSpace(string(body)))
	if err != nil {
		return fmt.Errorf("failed to parse form body: %w", err)
	}

	structure := forms.FromForm(values)
	if fromFormValidate || cfg.ValidateOutput {
		if err := schemas.ValidateStructure(structure); err != nil {
			return err
		}
	}

	format := fromFormFormat
	if format == "" {
		format = cfg.OutputFormat
	}
	data, err := encodeStructure(structure, format)
	if err != nil {
		return err
	}
	return writeOutput(fromFormOutput, data)
}
