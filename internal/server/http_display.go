package server

import (
	"fmt"
	"io"
	"os"

	"atsresume/internal/utils"
)

// displayServerInfo prints the startup banner to stdout
func (s *Server) displayServerInfo() {
	s.writeServerInfo(os.Stdout)
}

// writeServerInfo describes the listening address, endpoints and the
// protections in effect
func (s *Server) writeServerInfo(w io.Writer) {
	scheme := "http"
	if s.TLSConfig.Enabled() {
		scheme = "https"
	}
	fmt.Fprintf(w, "atsresume %s listening on %s://%s:%s\n", s.Version, scheme, s.Host, s.Port)
	fmt.Fprintf(w, "Vocabulary: %s\n", s.pipeline.Load().Vocabulary().Version)

	fmt.Fprintln(w, "Available endpoints:")
	for _, rt := range apiRoutes {
		fmt.Fprintf(w, "  %-4s %-14s - %s\n", rt.method, rt.path, rt.description)
	}

	if len(s.APIKeys) > 0 {
		fmt.Fprintf(w, "API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
	} else {
		fmt.Fprintln(w, "API authentication: DISABLED (POST endpoints are publicly accessible)")
	}

	fmt.Fprintf(w, "Request limits: JSON %s, uploads %s, documents %s\n",
		utils.FormatFileSize(s.MaxRequestSize),
		utils.FormatFileSize(max(s.MaxRequestSize, s.MaxUploadSize)),
		utils.FormatFileSize(s.AppConfig.App.MaxFileSize))

	if s.RateLimiter == nil {
		fmt.Fprintln(w, "Rate limiting: DISABLED")
	} else {
		var keys []string
		if s.RateLimit.ByAPIKey {
			keys = append(keys, "api key")
		}
		if s.RateLimit.ByIP {
			keys = append(keys, "ip")
		}
		fmt.Fprintf(w, "Rate limiting: ENABLED (%d requests per %s, burst %d, keyed by %v)\n",
			s.RateLimit.RequestsPerMin, windowOrMinute(s.RateLimit.Window), s.RateLimit.BurstCapacity, keys)
	}

	if s.certs != nil && s.TLSConfig.AutoReload {
		fmt.Fprintf(w, "Certificate reload: ENABLED (watching %v)\n", s.certs.WatchedFiles())
	}

	if s.checker != nil {
		fmt.Fprintln(w, "Link checks: ENABLED")
	}
}
