package server

import (
	"crypto/tls"
	"fmt"
	"net/http"
)

// configureTLS sets up TLS configuration based on the mode
func (s *Server) configureTLS(httpServer *http.Server) error {
	switch s.TLSConfig.Mode {
	case "server":
		tlsConfig, err := s.buildTLSConfig()
		if err != nil {
			return fmt.Errorf("failed to set up TLS: %w", err)
		}
		httpServer.TLSConfig = tlsConfig
		s.Logger.Info("TLS enabled", "mode", "server", "min_version", s.TLSConfig.MinVersion)
		return nil
	case "disabled", "":
		s.Logger.Info("TLS disabled, serving plain HTTP")
		return nil
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be 'disabled' or 'server')", s.TLSConfig.Mode)
	}
}

// buildTLSConfig loads the server certificate and applies the minimum version.
// The certificate is served through GetCertificate so it can be reloaded.
func (s *Server) buildTLSConfig() (*tls.Config, error) {
	if s.TLSConfig.CertFile == "" || s.TLSConfig.KeyFile == "" {
		return nil, fmt.Errorf("TLS certificate and key files are required")
	}

	certs, err := NewCertReloader(s.TLSConfig.CertFile, s.TLSConfig.KeyFile, s.AppConfig.Server.DebounceDelay, nil, s.Logger)
	if err != nil {
		return nil, err
	}
	s.certs = certs

	return &tls.Config{
		GetCertificate: certs.GetCertificate,
		MinVersion:     s.TLSConfig.MinTLSVersion(),
		ClientAuth:     tls.NoClientCert,
	}, nil
}

// startCertWatcher watches the certificate files when TLS is on and
// autoReload is set.
func (s *Server) startCertWatcher() error {
	if s.certs == nil || !s.TLSConfig.AutoReload {
		return nil
	}
	if err := s.certs.Start(); err != nil {
		return fmt.Errorf("failed to watch certificate files: %w", err)
	}
	return nil
}
