package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"port": 9090,
		"log_level": "debug",
		"output_format": "yaml",
		"read_timeout": "5s",
		"validate_output": true,
		"rate_limit": {"requests_per_minute": 30, "burst": 5}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout.Std())
	assert.True(t, cfg.ValidateOutput)
	assert.Equal(t, RateLimit{RequestsPerMinute: 30, Burst: 5}, cfg.RateLimit)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
port: 7070
log_format: json
write_timeout: 1m
max_upload_bytes: 1024
rate_limit:
  disabled: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, time.Minute, cfg.WriteTimeout.Std())
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.True(t, cfg.RateLimit.Disabled)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantMsg string
	}{
		{
			name:    "empty path",
			path:    func(*testing.T) string { return "" },
			wantMsg: "config path is empty",
		},
		{
			name:    "missing file",
			path:    func(*testing.T) string { return "/nonexistent/path/config.json" },
			wantMsg: "failed to read config file",
		},
		{
			name:    "invalid JSON",
			path:    func(t *testing.T) string { return writeConfig(t, "config.json", "{ invalid json }") },
			wantMsg: "failed to parse config JSON",
		},
		{
			name:    "invalid YAML",
			path:    func(t *testing.T) string { return writeConfig(t, "config.yml", "port: [1, 2") },
			wantMsg: "failed to parse config YAML",
		},
		{
			name:    "bad duration",
			path:    func(t *testing.T) string { return writeConfig(t, "config.json", `{"read_timeout": "soon"}`) },
			wantMsg: "invalid duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path(t))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantMsg string
	}{
		{name: "zero config", cfg: Config{}},
		{name: "defaults", cfg: Default()},
		{name: "case-insensitive enums", cfg: Config{LogLevel: "DEBUG", OutputFormat: "YAML"}},
		{name: "port out of range", cfg: Config{Port: 70000}, wantMsg: "'port'"},
		{name: "negative upload limit", cfg: Config{MaxUploadBytes: -1}, wantMsg: "'max_upload_bytes'"},
		{name: "negative timeout", cfg: Config{ReadTimeout: Duration(-time.Second)}, wantMsg: "timeouts"},
		{name: "negative burst", cfg: Config{RateLimit: RateLimit{Burst: -1}}, wantMsg: "'rate_limit'"},
		{name: "unknown log level", cfg: Config{LogLevel: "loud"}, wantMsg: "'log_level'"},
		{name: "unknown log format", cfg: Config{LogFormat: "xml"}, wantMsg: "'log_format'"},
		{name: "unknown output format", cfg: Config{OutputFormat: "toml"}, wantMsg: "'output_format'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{Port: 9000, OutputFormat: "yaml", RateLimit: RateLimit{Burst: 3}}
	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "yaml", merged.OutputFormat)
	assert.Equal(t, "info", merged.LogLevel)
	assert.Equal(t, "text", merged.LogFormat)
	assert.Equal(t, int64(10<<20), merged.MaxUploadBytes)
	assert.Equal(t, 15*time.Second, merged.ReadTimeout.Std())
	assert.Equal(t, 30*time.Second, merged.WriteTimeout.Std())
	assert.Equal(t, 60, merged.RateLimit.RequestsPerMinute)
	assert.Equal(t, 3, merged.RateLimit.Burst)

	// original untouched
	assert.Empty(t, cfg.LogLevel)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("RESUME_IMPORT_PORT", "8181")
	t.Setenv("RESUME_IMPORT_LOG_LEVEL", "warn")
	t.Setenv("RESUME_IMPORT_OUTPUT_FORMAT", "yaml")
	t.Setenv("RESUME_IMPORT_READ_TIMEOUT", "2s")
	t.Setenv("RESUME_IMPORT_VALIDATE_OUTPUT", "true")
	t.Setenv("RESUME_IMPORT_LOG_FORMAT", " ")

	cfg := Config{LogFormat: "json"}
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, 8181, cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.Equal(t, 2*time.Second, cfg.ReadTimeout.Std())
	assert.True(t, cfg.ValidateOutput)
	assert.Equal(t, "json", cfg.LogFormat, "blank variables are ignored")
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port", key: "RESUME_IMPORT_PORT", value: "eighty"},
		{name: "upload", key: "RESUME_IMPORT_MAX_UPLOAD_BYTES", value: "lots"},
		{name: "timeout", key: "RESUME_IMPORT_WRITE_TIMEOUT", value: "later"},
		{name: "validate", key: "RESUME_IMPORT_VALIDATE_OUTPUT", value: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg := Config{}
			err := cfg.ApplyEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
