package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-importer/internal/config"
	"github.com/jonathan/resume-importer/internal/server"
	"github.com/jonathan/resume-importer/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the parse, form, render and validate operations as REST endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	logger := newLogger(cfg, false)

	srv := server.New(serverConfig(cfg), logger)
	return srv.Start(cmd.Context())
}

// serverConfig maps the file configuration onto the server and limiter.
func serverConfig(cfg config.Config) server.Config {
	return server.Config{
		Port:           cfg.Port,
		MaxUploadBytes: cfg.MaxUploadBytes,
		ReadTimeout:    cfg.ReadTimeout.Std(),
		WriteTimeout:   cfg.WriteTimeout.Std(),
		ValidateOutput: cfg.ValidateOutput,
		RateLimit:      rateLimitConfig(cfg.RateLimit),
	}
}

// rateLimitConfig applies the file settings to the limiter defaults; the
// RATE_LIMIT_* variables still win.
func rateLimitConfig(rl config.RateLimit) *ratelimit.Config {
	base := ratelimit.DefaultConfig()
	base.Enabled = !rl.Disabled
	if rl.RequestsPerMinute > 0 {
		base.DefaultLimit = rl.RequestsPerMinute
	}
	if rl.Burst > 0 {
		base.DefaultBurst = rl.Burst
	}
	return ratelimit.ConfigFromEnv(base)
}
