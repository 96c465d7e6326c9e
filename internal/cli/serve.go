package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"atsresume/internal/config"
	"atsresume/internal/observability"
	"atsresume/internal/server"
	"atsresume/internal/vocabulary"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP server for resume analysis",
		Long: `Start an HTTP server that provides REST API endpoints for resume analysis.

Available endpoints:
- POST /analyze: Score a resume (multipart upload or JSON), optionally against a job description
- POST /parse: Extract structured data from resume text
- POST /cover-letter: Generate a cover letter from resume text
- POST /clean-text: Strip non-ASCII sequences from text
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info

Every POST endpoint accepts ?format=json|text|markdown|csv.

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server
- Use --cert-file and --key-file for TLS certificates`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	cmd.Flags().String("host", "", "Host to bind to (default from config)")
	cmd.Flags().String("tls-mode", "", "TLS mode: disabled, server (overrides config)")
	cmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	cmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	// Validate TLS configuration after applying overrides
	if err := applyServeOverrides(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	vocab, err := vocabulary.LoadOrDefault(cfg.App.VocabularyFile)
	if err != nil {
		return err
	}

	om, err := observability.NewObservabilityManager(observability.GetObservabilityConfig(cfg, Version), logger)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := om.Shutdown(ctx); err != nil {
			logger.LogError(err, "Failed to shut down observability")
		}
	}()

	srv, err := server.NewServer(cfg, server.NewServerConfig(cfg, Version), vocab, om, logger)
	if err != nil {
		return err
	}
	return srv.Start()
}

// applyServeOverrides copies explicitly set flags over the loaded config
func applyServeOverrides(cmd *cobra.Command, cfg *config.Config) error {
	overrides := map[string]*string{
		"host":      &cfg.Server.Host,
		"port":      &cfg.Server.Port,
		"tls-mode":  &cfg.Server.TLS.Mode,
		"cert-file": &cfg.Server.TLS.CertFile,
		"key-file":  &cfg.Server.TLS.KeyFile,
	}
	for name, target := range overrides {
		if !cmd.Flags().Changed(name) {
			continue
		}
		value, err := cmd.Flags().GetString(name)
		if err != nil {
			return err
		}
		*target = value
	}
	return nil
}
