package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"atsresume/internal/analyzer"
	"atsresume/internal/common"
	"atsresume/internal/config"
	"atsresume/internal/errors"
	"atsresume/internal/extract"
	"atsresume/internal/linkcheck"
	"atsresume/internal/observability"
	"atsresume/internal/vocabulary"
)

const shutdownTimeout = 5 * time.Second

// session holds what a single file-based command needs for one run
type session struct {
	cfg    *config.Config
	logger *errors.Logger
	om     *observability.ObservabilityManager
}

// newSession reads the config and logger from the command context and sets
// up observability. One-shot commands never start the Prometheus endpoint.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return nil, err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return nil, err
	}

	obsConfig := observability.GetObservabilityConfig(cfg, Version)
	obsConfig.Prometheus.Enabled = false
	om, err := observability.NewObservabilityManager(obsConfig, logger)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, om: om}, nil
}

// close flushes telemetry
func (s *session) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.om.Shutdown(ctx); err != nil {
		s.logger.LogError(err, "Failed to shut down observability")
	}
}

// runner creates a command runner printing to the command's output
func (s *session) runner(cmd *cobra.Command) *common.Runner {
	extractor := extract.New(s.cfg.App.MaxFileSize, s.logger, extract.WithObserver(s.om.RecordExtraction))
	return common.NewRunner(extractor, cmd.OutOrStdout(), s.logger)
}

// pipeline loads the configured vocabulary and builds a parser and engine
// for it. Link checking is enabled by checkLinks or the analysis config.
func (s *session) pipeline(checkLinks bool) (*analyzer.Pipeline, error) {
	vocab, err := vocabulary.LoadOrDefault(s.cfg.App.VocabularyFile)
	if err != nil {
		return nil, err
	}

	opts := []analyzer.Option{
		analyzer.WithLogger(s.logger),
		analyzer.WithRecorder(s.om),
		analyzer.WithTracer(s.om.Tracer("atsresume.analyzer")),
	}
	if checkLinks || s.cfg.Analysis.CheckLinks {
		checker := linkcheck.New(s.cfg.Analysis, s.logger, linkcheck.WithObserver(s.om.RecordLinkCheck))
		opts = append(opts, analyzer.WithLinkChecker(checker))
	}
	return analyzer.NewPipeline(vocab, opts...), nil
}

// outputConfig resolves the output format against the configured formats
func (s *session) outputConfig(format, outputFile string) (common.CommandConfig, error) {
	format, err := common.ResolveOutputFormat(format, s.cfg.App.DefaultFormat, s.cfg.App.SupportedFormats)
	if err != nil {
		return common.CommandConfig{}, errors.NewValidationError(errors.ErrCodeInvalidFormat, err.Error(), nil)
	}
	return common.CommandConfig{OutputFile: outputFile, OutputFormat: format}, nil
}

// addOutputFlags registers the --format and --output flags shared by the
// file-based commands
func addOutputFlags(cmd *cobra.Command, format, outputFile *string) {
	cmd.Flags().StringVarP(outputFile, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(format, "format", "", "Output format: json, text, markdown or csv")

	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}
