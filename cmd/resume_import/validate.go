package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-importer/internal/observability"
	"github.com/jonathan/resume-importer/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate STRUCTURE_FILE",
	Short: "Validate a structure file against the resume schema",
	Long: `Validates a JSON or YAML structure file against the resume structure schema and
its invariants (core_order names each module once, section ids are unique).
With --schema, the file is checked against that JSON schema only.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var validateSchema string

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Path to a JSON schema file (default embedded resume schema)")

	rootCmd.AddCommand(validateCmd)
}

// errInvalidStructure is returned after the problems have been printed.
var errInvalidStructure = errors.New("structure is invalid")

func runValidate(_ *cobra.Command, args []string) error {
	var err error
	if validateSchema != "" {
		schemaPath := schemas.ResolveSchemaPath(validateSchema)
		if schemaPath == "" {
			return fmt.Errorf("schema file not found: %s", validateSchema)
		}
		err = schemas.ValidateJSON(schemaPath, args[0])
	} else {
		var data []byte
		data, err = readStructureJSON(args[0])
		if err != nil {
			return err
		}
		err = schemas.ValidateStructureDocument(data)
	}

	printer := observability.NewPrinter(os.Stdout)
	var validationErr *schemas.ValidationError
	switch {
	case err == nil:
		printer.PrintValidation(nil)
		return nil
	case errors.As(err, &validationErr):
		printer.PrintValidation(validationErr.Errors)
		return errInvalidStructure
	default:
		return err
	}
}
