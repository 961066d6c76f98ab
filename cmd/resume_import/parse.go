package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/observability"
	"github.com/jonathan/resume-importer/internal/parsing"
	"github.com/jonathan/resume-importer/internal/schemas"
	"github.com/jonathan/resume-importer/internal/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Parse resume files into structured resumes",
	Long: `Parse one or more resume files (.pdf, .docx, .html, .txt) into the structured resume model.

With several files, parsing runs concurrently and --out must name a directory;
each structure is written as <name>.json or <name>.yaml inside it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

var (
	parseFormat   string
	parseOutput   string
	parseValidate bool
	parseVerbose  bool
	parseJobs     int
)

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "Output format: json or yaml (default from config)")
	parseCmd.Flags().StringVarP(&parseOutput, "out", "o", "", "Output file, or directory when parsing several files (default stdout)")
	parseCmd.Flags().BoolVar(&parseValidate, "validate", false, "Validate each structure against the schema before writing")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Log at debug level and print a summary of each structure")
	parseCmd.Flags().IntVarP(&parseJobs, "jobs", "j", runtime.NumCPU(), "Maximum files parsed concurrently")

	rootCmd.AddCommand(parseCmd)
}

type parseResult struct {
	metadata  *ingestion.Metadata
	structure types.ResumeStructure
	encoded   []byte
	err       error
}

func runParse(_ *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, parseVerbose)

	format := parseFormat
	if format == "" {
		format = cfg.OutputFormat
	}
	if _, err := encodeStructure(types.DefaultStructure(), format); err != nil {
		return err
	}
	validate := parseValidate || cfg.ValidateOutput

	results := make([]parseResult, len(args))
	var g errgroup.Group
	g.SetLimit(max(parseJobs, 1))
	for i, path := range args {
		g.Go(func() error {
			results[i] = parseFile(path, format, validate)
			return nil
		})
	}
	_ = g.Wait()

	printer := observability.NewPrinter(os.Stderr)
	failed := 0
	for i, path := range args {
		result := results[i]
		entry := logger.WithField("file", path)
		if result.metadata != nil {
			entry = entry.WithFields(logrus.Fields{
				"format": result.metadata.Format,
				"bytes":  result.metadata.Bytes,
				"hash":   result.metadata.Hash,
			})
		}
		if result.err != nil {
			failed++
			entry.WithError(result.err).Warn("parse failed")
			continue
		}
		entry.WithFields(logrus.Fields{
			"experience": len(result.structure.Experience),
			"education":  len(result.structure.Education),
			"extras":     len(result.structure.ExtraSections),
			"core_order": result.structure.Meta.CoreOrder,
		}).Debug("parsed resume")
		if parseVerbose {
			printer.PrintStructure(filepath.Base(path), &result.structure)
		}

		data := result.encoded
		if parseOutput == "" && i > 0 && isYAMLFormat(format) {
			data = append([]byte("---\n"), data...)
		}
		dest := outputPath(parseOutput, path, format, len(args))
		if err := writeOutput(dest, data); err != nil {
			return err
		}
		if dest != "" {
			entry.WithField("out", dest).Info("structure written")
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, len(args))
	}
	return nil
}

// parseFile ingests, parses, optionally validates and encodes one file.
func parseFile(path, format string, validate bool) parseResult {
	doc, err := ingestion.IngestFromFile(path)
	if err != nil {
		return parseResult{err: err}
	}
	result := parseResult{metadata: doc.Metadata}
	result.structure, result.err = parsing.ParseDocument(doc)
	if result.err != nil {
		return result
	}
	result.structure.Normalize()
	if validate {
		if result.err = schemas.ValidateStructure(result.structure); result.err != nil {
			return result
		}
	}
	result.encoded, result.err = encodeStructure(result.structure, format)
	return result
}

// outputPath picks where the structure of input goes. An empty result
// means stdout.
func outputPath(out, input, format string, count int) string {
	if out == "" {
		return ""
	}
	if count > 1 || strings.HasSuffix(out, string(os.PathSeparator)) || isDir(out) {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		ext := ".json"
		if isYAMLFormat(format) {
			ext = ".yaml"
		}
		return filepath.Join(out, base+ext)
	}
	return out
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isYAMLFormat(format string) bool {
	return strings.EqualFold(format, "yaml") || strings.EqualFold(format, "yml")
}
