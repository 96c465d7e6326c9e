package server

import (
	"net/http"
)

// route is one API endpoint. Public routes skip authentication, rate
// limiting and body limits.
type route struct {
	method      string
	path        string
	description string
	public      bool
	upload      bool
	handler     func(*Server) http.HandlerFunc
}

var apiRoutes = []route{
	{method: http.MethodGet, path: "/health", description: "Health check", public: true,
		handler: func(s *Server) http.HandlerFunc { return s.healthHandler }},
	{method: http.MethodGet, path: "/stats", description: "Server statistics", public: true,
		handler: func(s *Server) http.HandlerFunc { return s.statsHandler }},
	{method: http.MethodPost, path: "/analyze", description: "Analyze a resume, optionally against a job description", upload: true,
		handler: func(s *Server) http.HandlerFunc { return s.analyzeHandler }},
	{method: http.MethodPost, path: "/parse", description: "Extract structured resume data",
		handler: func(s *Server) http.HandlerFunc { return s.parseHandler }},
	{method: http.MethodPost, path: "/cover-letter", description: "Generate a cover letter",
		handler: func(s *Server) http.HandlerFunc { return s.coverLetterHandler }},
	{method: http.MethodPost, path: "/clean-text", description: "Strip non-ASCII characters",
		handler: func(s *Server) http.HandlerFunc { return s.cleanTextHandler }},
}

// setupRoutes registers apiRoutes behind their middleware chains
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	rateLimit := s.rateLimitMiddleware()
	jsonLimit := s.requestSizeLimitMiddleware(s.MaxRequestSize)
	uploadLimit := s.requestSizeLimitMiddleware(max(s.MaxRequestSize, s.MaxUploadSize))

	for _, rt := range apiRoutes {
		h := rt.handler(s)
		if !rt.public {
			limit := jsonLimit
			if rt.upload {
				limit = uploadLimit
			}
			h = rateLimit(s.authMiddleware(limit(h)))
		}
		mux.HandleFunc(rt.method+" "+rt.path, s.instrument(rt.path, h))
	}
	return mux
}

// Handler returns the routed API wrapped in the OpenTelemetry HTTP middleware
func (s *Server) Handler() http.Handler {
	return s.om.HTTPMiddleware()(s.setupRoutes())
}

// authMiddleware provides API key authentication
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Skip authentication if no API keys are configured
		if len(s.APIKeys) == 0 {
			next(w, r)
			return
		}

		apiKey := requestAPIKey(r)
		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", getClientIP(r))
			writeErrorResponse(w, "Missing API key", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		// Validate API key
		if !s.APIKeys[apiKey] {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", getClientIP(r),
				"api_key_prefix", maskAPIKey(apiKey))
			writeErrorResponse(w, "Invalid API key", "Unauthorized access", http.StatusUnauthorized)
			return
		}

		s.Logger.Debug("API authentication successful",
			"endpoint", r.URL.Path,
			"client_ip", getClientIP(r),
			"api_key_prefix", maskAPIKey(apiKey))

		next(w, r)
	}
}

// requestSizeLimitMiddleware limits the size of incoming requests to limit bytes
func (s *Server) requestSizeLimitMiddleware(limit int64) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if limit > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}

			next(w, r)
		}
	}
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument counts every request to route by its response status
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.om.RecordHTTPRequest(r.Context(), route, rec.status)
	}
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
