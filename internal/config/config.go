// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration read from strings such as "15s" in both
// YAML and JSON files.
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText renders the duration in Go syntax.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// RateLimit configures the per-client limiter of the HTTP server.
type RateLimit struct {
	Disabled          bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	RequestsPerMinute int  `json:"requests_per_minute,omitempty" yaml:"requests_per_minute,omitempty"`
	Burst             int  `json:"burst,omitempty" yaml:"burst,omitempty"`
}

// Config is loaded from a YAML or JSON file. All fields are optional;
// missing values come from Default() or CLI flags.
type Config struct {
	// Server
	Port           int      `json:"port,omitempty" yaml:"port,omitempty"`
	MaxUploadBytes int64    `json:"max_upload_bytes,omitempty" yaml:"max_upload_bytes,omitempty"` // multipart body limit
	ReadTimeout    Duration `json:"read_timeout,omitempty" yaml:"read_timeout,omitempty"`
	WriteTimeout   Duration `json:"write_timeout,omitempty" yaml:"write_timeout,omitempty"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`   // logrus level name
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // text or json

	// Output
	OutputFormat   string `json:"output_format,omitempty" yaml:"output_format,omitempty"` // json or yaml
	ValidateOutput bool   `json:"validate_output,omitempty" yaml:"validate_output,omitempty"`

	RateLimit RateLimit `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`
}

// Accepted enum values.
var (
	LogFormats    = []string{"text", "json"}
	OutputFormats = []string{"json", "yaml"}
	LogLevels     = []string{"panic", "fatal", "error", "warn", "warning", "info", "debug", "trace"}
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:           8080,
		MaxUploadBytes: 10 << 20,
		ReadTimeout:    Duration(15 * time.Second),
		WriteTimeout:   Duration(30 * time.Second),
		LogLevel:       "info",
		LogFormat:      "text",
		OutputFormat:   "json",
		RateLimit: RateLimit{
			RequestsPerMinute: 60,
			Burst:             10,
		},
	}
}

// LoadConfig loads configuration from a YAML (.yaml, .yml) or JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Zero values are
// accepted since they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return fmt.Errorf("config error: timeouts must be non-negative")
	}
	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("config error: 'rate_limit' values must be non-negative")
	}

	if err := checkEnum("log_level", c.LogLevel, LogLevels); err != nil {
		return err
	}
	if err := checkEnum("log_format", c.LogFormat, LogFormats); err != nil {
		return err
	}
	return checkEnum("output_format", c.OutputFormat, OutputFormats)
}

func checkEnum(field, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, candidate := range allowed {
		if strings.EqualFold(value, candidate) {
			return nil
		}
	}
	return fmt.Errorf("config error: '%s' must be one of %s, got %q", field, strings.Join(allowed, ", "), value)
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.ReadTimeout == 0 {
		result.ReadTimeout = defaults.ReadTimeout
	}
	if result.WriteTimeout == 0 {
		result.WriteTimeout = defaults.WriteTimeout
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.OutputFormat == "" {
		result.OutputFormat = defaults.OutputFormat
	}
	if result.RateLimit.RequestsPerMinute == 0 {
		result.RateLimit.RequestsPerMinute = defaults.RateLimit.RequestsPerMinute
	}
	if result.RateLimit.Burst == 0 {
		result.RateLimit.Burst = defaults.RateLimit.Burst
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RESUME_IMPORT_"

// ApplyEnv overrides fields from RESUME_IMPORT_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := lookup("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sPORT: %w", EnvPrefix, err)
		}
		c.Port = port
	}
	if v, ok := lookup("MAX_UPLOAD_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sMAX_UPLOAD_BYTES: %w", EnvPrefix, err)
		}
		c.MaxUploadBytes = n
	}
	for name, target := range map[string]*Duration{"READ_TIMEOUT": &c.ReadTimeout, "WRITE_TIMEOUT": &c.WriteTimeout} {
		if v, ok := lookup(name); ok {
			if err := target.UnmarshalText([]byte(v)); err != nil {
				return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
			}
		}
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		c.LogFormat = v
	}
	if v, ok := lookup("OUTPUT_FORMAT"); ok {
		c.OutputFormat = v
	}
	if v, ok := lookup("VALIDATE_OUTPUT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sVALIDATE_OUTPUT: %w", EnvPrefix, err)
		}
		c.ValidateOutput = b
	}
	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
