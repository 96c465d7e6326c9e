// Package server exposes the parser and the scoring engine over HTTP.
package server

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"

	"atsresume/internal/analyzer"
	"atsresume/internal/config"
	"atsresume/internal/errors"
	"atsresume/internal/extract"
	"atsresume/internal/linkcheck"
	"atsresume/internal/observability"
	"atsresume/internal/vocabulary"
)

// AnalyzeRequest is the JSON body accepted by /analyze
type AnalyzeRequest struct {
	ResumeText     string `json:"resumeText" validate:"required"`
	JobDescription string `json:"jobDescription"`
}

// ParseRequest is the JSON body accepted by /parse
type ParseRequest struct {
	ResumeText string `json:"resumeText" validate:"required"`
}

// CoverLetterRequest is the JSON body accepted by /cover-letter
type CoverLetterRequest struct {
	Name       string `json:"name" validate:"max=200"`
	ResumeText string `json:"resumeText" validate:"required"`
}

// CleanTextRequest is the JSON body accepted by /clean-text
type CleanTextRequest struct {
	Text string `json:"text" validate:"required"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limits
	MaxRequestSize int64
	MaxUploadSize  int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *errors.Logger

	vocab     *vocabulary.Store
	pipeline  atomic.Pointer[analyzer.Pipeline]
	extractor *extract.Extractor
	checker   *linkcheck.HTTPChecker
	certs     *CertReloader
	om        *observability.ObservabilityManager
	validate  *validator.Validate
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	MaxUploadSize  int64
	RateLimit      *config.RateLimitConfig
}

// NewServerConfig maps the application configuration onto a ServerConfig
func NewServerConfig(appCfg *config.Config, version string) ServerConfig {
	return ServerConfig{
		Host:           appCfg.Server.Host,
		Port:           appCfg.Server.Port,
		Version:        version,
		TLSConfig:      appCfg.Server.TLS,
		APIKeys:        appCfg.Server.APIKeys,
		ReadTimeout:    appCfg.Server.ReadTimeout,
		WriteTimeout:   appCfg.Server.WriteTimeout,
		IdleTimeout:    appCfg.Server.IdleTimeout,
		MaxRequestSize: appCfg.Server.MaxRequestSize,
		MaxUploadSize:  appCfg.Server.MaxUploadSize,
		RateLimit:      &appCfg.Server.RateLimit,
	}
}

// NewServer creates a new Server instance. vocab is the initial vocabulary and
// om may be nil, in which case observability is disabled.
func NewServer(appCfg *config.Config, cfg ServerConfig, vocab *vocabulary.Vocabulary, om *observability.ObservabilityManager, logger *errors.Logger) (*Server, error) {
	if logger == nil {
		logger = errors.Discard()
	}
	if om == nil {
		var err error
		if om, err = observability.NewObservabilityManager(observability.ObservabilityConfig{}, logger); err != nil {
			return nil, err
		}
	}

	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(*cfg.RateLimit, logger)
	}

	s := &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		MaxUploadSize:  cfg.MaxUploadSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
		vocab:          vocabulary.NewStore(vocab),
		extractor:      extract.New(appCfg.App.MaxFileSize, logger, extract.WithObserver(om.RecordExtraction)),
		om:             om,
		validate:       validator.New(),
	}

	if appCfg.Analysis.CheckLinks {
		s.checker = linkcheck.New(appCfg.Analysis, logger, linkcheck.WithObserver(om.RecordLinkCheck))
	}
	s.pipeline.Store(s.buildPipeline(vocab))

	return s, nil
}

// buildPipeline creates a parser and engine pair for vocab wired to the
// server's logger, metrics and link checker.
func (s *Server) buildPipeline(vocab *vocabulary.Vocabulary) *analyzer.Pipeline {
	opts := []analyzer.Option{
		analyzer.WithLogger(s.Logger),
		analyzer.WithRecorder(s.om),
		analyzer.WithTracer(s.om.Tracer("atsresume.analyzer")),
	}
	if s.checker != nil {
		opts = append(opts, analyzer.WithLinkChecker(s.checker))
	}
	return analyzer.NewPipeline(vocab, opts...)
}

// onVocabularyReload swaps in a pipeline built from a reloaded vocabulary.
// A rejected reload leaves the active pipeline untouched.
func (s *Server) onVocabularyReload(vocab *vocabulary.Vocabulary, err error) {
	s.om.RecordVocabularyReload(context.Background(), err == nil)
	if err != nil {
		return
	}
	s.pipeline.Store(s.buildPipeline(vocab))
}
