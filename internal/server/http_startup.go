package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atsresume/internal/vocabulary"
)

// Start serves the API until SIGINT or SIGTERM and then shuts down gracefully
func (s *Server) Start() error {
	httpServer := s.setupHTTPServer()

	if err := s.configureTLS(httpServer); err != nil {
		return err
	}
	if err := s.startCertWatcher(); err != nil {
		return err
	}

	watcher, err := s.startVocabularyWatcher()
	if err != nil {
		s.cleanup(nil)
		return err
	}

	s.displayServerInfo()

	return s.startWithGracefulShutdown(httpServer, watcher)
}

// setupHTTPServer creates and configures the HTTP server
func (s *Server) setupHTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%s", s.Host, s.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.ReadTimeout,
		WriteTimeout:      s.WriteTimeout,
		IdleTimeout:       s.IdleTimeout,
	}
}

// startVocabularyWatcher hot-reloads the configured vocabulary file. It
// returns nil when no file is configured or watching is disabled.
func (s *Server) startVocabularyWatcher() (*vocabulary.Watcher, error) {
	path := s.AppConfig.App.VocabularyFile
	if path == "" || !s.AppConfig.Server.WatchVocabulary {
		return nil, nil
	}

	watcher := vocabulary.NewWatcher(path, s.vocab, s.AppConfig.Server.DebounceDelay, s.onVocabularyReload, s.Logger)
	if err := watcher.Start(); err != nil {
		return nil, fmt.Errorf("failed to watch vocabulary file: %w", err)
	}
	return watcher, nil
}

// startWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func (s *Server) startWithGracefulShutdown(server *http.Server, watcher *vocabulary.Watcher) error {
	// Channel to receive OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	// Channel to receive server errors
	serverErrors := make(chan error, 1)

	go func() {
		s.Logger.Info("Starting HTTP server",
			"address", server.Addr,
			"tls_enabled", server.TLSConfig != nil)

		var err error
		if server.TLSConfig != nil {
			// Certificates are already loaded into the TLS config
			err = server.ListenAndServeTLS("", "")
		} else {
			err = server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		s.cleanup(watcher)
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-quit:
		s.Logger.Info("Received shutdown signal, starting graceful shutdown",
			"signal", sig.String())

		return s.performGracefulShutdown(server, watcher)
	}
}

// performGracefulShutdown handles the graceful shutdown process
func (s *Server) performGracefulShutdown(server *http.Server, watcher *vocabulary.Watcher) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.cleanup(watcher)

	s.Logger.Info("Shutting down HTTP server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown server gracefully, forcing close")
		return server.Close()
	}

	s.Logger.Info("Server shutdown completed successfully")
	return nil
}

// cleanup stops the file watchers and the rate limiter
func (s *Server) cleanup(watcher *vocabulary.Watcher) {
	if watcher != nil {
		if err := watcher.Stop(); err != nil {
			s.Logger.LogError(err, "Failed to stop vocabulary watcher")
		}
	}

	if s.certs != nil {
		if err := s.certs.Stop(); err != nil {
			s.Logger.LogError(err, "Failed to stop certificate watcher")
		}
	}

	if s.RateLimiter != nil {
		s.RateLimiter.Close()
		s.Logger.Info("Rate limiter cleaned up")
	}
}
