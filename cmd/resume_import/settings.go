package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-importer/internal/config"
	"github.com/jonathan/resume-importer/internal/observability"
	"github.com/jonathan/resume-importer/internal/types"
)

// loadSettings resolves the effective configuration: defaults, then the
// --config file, then RESUME_IMPORT_* variables, then --log-level.
func loadSettings() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = fileCfg.MergeWithDefaults(config.Default())
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.Config, verbose bool) *logrus.Logger {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return observability.NewLogger(level, cfg.LogFormat)
}

// encodeStructure serializes a structure as indented JSON or YAML.
func encodeStructure(structure types.ResumeStructure, format string) ([]byte, error) {
	structure.Normalize()
	switch strings.ToLower(format) {
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(structure); err != nil {
			return nil, fmt.Errorf("failed to marshal structure YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to marshal structure YAML: %w", err)
		}
		return buf.Bytes(), nil
	case "json", "":
		data, err := json.MarshalIndent(structure, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal structure JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want json or yaml)", format)
	}
}

func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// readStructureJSON reads a structure file as JSON bytes. YAML files are
// converted so they can go through the JSON schema.
func readStructureJSON(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read structure file: %w", err)
	}
	if !isYAMLPath(path) {
		return data, nil
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse structure YAML: %w", err)
	}
	converted, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert structure YAML: %w", err)
	}
	return converted, nil
}

// readStructure loads a JSON or YAML structure file.
func readStructure(path string) (types.ResumeStructure, error) {
	var structure types.ResumeStructure
	data, err := readStructureJSON(path)
	if err != nil {
		return structure, err
	}
	if err := json.Unmarshal(data, &structure); err != nil {
		return structure, fmt.Errorf("failed to parse structure: %w", err)
	}
	return structure, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
