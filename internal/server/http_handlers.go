package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"atsresume/internal/advanced"
	"atsresume/internal/errors"
	"atsresume/internal/extract"
	"atsresume/internal/formatters"
)

// multipartMemory is the part of a multipart form kept in memory; the rest
// spills to temporary files.
const multipartMemory = 8 << 20

// healthHandler reports liveness together with the active vocabulary version
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":     "healthy",
		"service":    "atsresume",
		"version":    s.Version,
		"vocabulary": s.pipeline.Load().Vocabulary().Version,
	}

	linkChecks := map[string]any{"enabled": s.checker != nil}
	if s.checker != nil {
		linkChecks["breakers_healthy"] = s.checker.Breakers().IsHealthy()
	}
	response["link_checks"] = linkChecks

	s.writeJSON(w, http.StatusOK, response)
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"service":    "atsresume",
		"version":    s.Version,
		"vocabulary": s.pipeline.Load().Vocabulary().Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
			"max_upload_size_bytes":  s.MaxUploadSize,
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	if s.checker != nil {
		response["circuit_breakers"] = s.checker.Breakers().GetStats()
	} else {
		response["circuit_breakers"] = map[string]any{
			"enabled": false,
		}
	}

	s.writeJSON(w, http.StatusOK, response)
}

// analyzeHandler scores a resume, optionally against a job description.
// It accepts either a multipart upload or a JSON body.
func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.om.Tracer("atsresume.api").Start(r.Context(), "api.analyze")
	defer span.End()

	resume, jd, err := s.readAnalyzeInput(r)
	if err != nil {
		s.writeError(w, span, err)
		return
	}

	span.SetAttributes(
		attribute.Int("request.resume_length", len(resume)),
		attribute.Int("request.job_length", len(jd)),
	)

	report := s.pipeline.Load().Run(ctx, resume, jd)
	span.SetAttributes(
		attribute.String("analysis.id", report.Analysis.ID),
		attribute.Float64("analysis.overall_score", report.Analysis.OverallScore),
	)

	s.writeFormatted(w, r, span, report)
}

// parseHandler returns the structured document extracted from resume text
func (s *Server) parseHandler(w http.ResponseWriter, r *http.Request) {
	_, span := s.om.Tracer("atsresume.api").Start(r.Context(), "api.parse")
	defer span.End()

	var req ParseRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.writeError(w, span, err)
		return
	}

	s.writeFormatted(w, r, span, s.pipeline.Load().Parse(req.ResumeText))
}

// coverLetterHandler fills the cover letter template from the parsed resume.
// A non-empty name overrides the parsed one.
func (s *Server) coverLetterHandler(w http.ResponseWriter, r *http.Request) {
	_, span := s.om.Tracer("atsresume.api").Start(r.Context(), "api.cover_letter")
	defer span.End()

	var req CoverLetterRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.writeError(w, span, err)
		return
	}

	doc := s.pipeline.Load().Parse(req.ResumeText)
	name := req.Name
	if name == "" {
		name = doc.Name
	}

	s.writeFormatted(w, r, span, advanced.CoverLetter(name, doc.Skills.AllTechnical))
}

// cleanTextHandler strips non-ASCII sequences from text
func (s *Server) cleanTextHandler(w http.ResponseWriter, r *http.Request) {
	_, span := s.om.Tracer("atsresume.api").Start(r.Context(), "api.clean_text")
	defer span.End()

	var req CleanTextRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.writeError(w, span, err)
		return
	}

	s.writeFormatted(w, r, span, advanced.CleanText(req.Text))
}

// readAnalyzeInput returns the resume text and job description from either
// a multipart form or a JSON body
func (s *Server) readAnalyzeInput(r *http.Request) (resume, jd string, err error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		return s.readMultipartInput(r)
	case "application/json":
		var req AnalyzeRequest
		if err := s.decodeRequest(r, &req); err != nil {
			return "", "", err
		}
		return req.ResumeText, normalizeJobDescription(req.JobDescription), nil
	default:
		return "", "", errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"content-type must be multipart/form-data or application/json", nil)
	}
}

func (s *Server) readMultipartInput(r *http.Request) (resume, jd string, err error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return "", "", bodyError(err, "invalid multipart form")
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	resume, found, err := s.readUpload(r, "resume")
	if err != nil {
		return "", "", err
	}
	if !found {
		return "", "", errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"resume file is required", nil)
	}

	jd, found, err = s.readUpload(r, "job_description")
	if err != nil {
		return "", "", err
	}
	if !found {
		jd = normalizeJobDescription(r.FormValue("job_description_text"))
	}
	return resume, jd, nil
}

// readUpload extracts the text of the file posted as field. found is false
// when the field is absent.
func (s *Server) readUpload(r *http.Request, field string) (text string, found bool, err error) {
	file, header, err := r.FormFile(field)
	if stderrors.Is(err, http.ErrMissingFile) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("cannot read %s upload", field), err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.Logger.LogError(err, "Failed to close upload", "field", field)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", false, bodyError(err, fmt.Sprintf("cannot read %s upload", field))
	}

	text, err = s.extractor.Extract(header.Filename, data)
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

// normalizeJobDescription converts pasted HTML into plain text
func normalizeJobDescription(jd string) string {
	if extract.LooksLikeHTML(jd) {
		return extract.HTMLToText(jd)
	}
	return jd
}

// decodeRequest parses a JSON request body into v and validates it
func (s *Server) decodeRequest(r *http.Request, v any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"content-type must be application/json", nil)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return bodyError(err, "failed to read request body")
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			s.Logger.LogError(err, "Failed to close request body")
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, "failed to parse JSON", err)
	}

	if err := s.validate.Struct(v); err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidInput, validationMessage(err), err)
	}
	return nil
}

// bodyError wraps a body read failure, reporting oversized bodies distinctly
func bodyError(err error, message string) error {
	var maxBytesErr *http.MaxBytesError
	if stderrors.As(err, &maxBytesErr) {
		return errors.NewValidationError(errors.ErrCodeFileTooLarge,
			fmt.Sprintf("request body too large (limit is %d bytes)", maxBytesErr.Limit), err)
	}
	return errors.NewValidationError(errors.ErrCodeInvalidRequest, message, err)
}

// validationMessage reports the first failed field of a validator error
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if stderrors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}

// statusFor maps an application error onto an HTTP status code
func statusFor(err error) int {
	appErr, ok := errors.As(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch appErr.Code {
	case errors.ErrCodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	}

	switch appErr.Type {
	case errors.ErrorTypeValidation, errors.ErrorTypeIO:
		return http.StatusBadRequest
	case errors.ErrorTypeExtraction:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError records err on the span and writes it as an ErrorResponse
func (s *Server) writeError(w http.ResponseWriter, span trace.Span, err error) {
	status := statusFor(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.Int("http.response.status_code", status))

	response := ErrorResponse{Error: http.StatusText(status), Message: err.Error()}
	if appErr, ok := errors.As(err); ok {
		span.SetAttributes(attribute.String("error.type", string(appErr.Type)))
		response.Message = appErr.Message
		response.Code = appErr.Code
	}
	if status >= http.StatusInternalServerError {
		s.Logger.LogError(err, "Request failed")
	}

	s.writeJSON(w, status, response)
}

// writeFormatted writes data in the format named by the "format" query
// parameter, defaulting to JSON
func (s *Server) writeFormatted(w http.ResponseWriter, r *http.Request, span trace.Span, data any) {
	format := r.URL.Query().Get("format")
	if format == "" || format == "json" {
		s.writeJSON(w, http.StatusOK, data)
		return
	}

	if !formatters.GlobalRegistry.Supports(format, data) {
		s.writeError(w, span, errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("format %q is not available for this endpoint", format), nil))
		return
	}

	out, err := formatters.GlobalRegistry.Format(data, format)
	if err != nil {
		s.writeError(w, span, errors.NewInternalError(errors.ErrCodeWriteFailed, "failed to format response", err))
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, out); err != nil {
		s.Logger.LogError(err, "Failed to write response")
	}
}

var contentTypes = map[string]string{
	"text":     "text/plain; charset=utf-8",
	"markdown": "text/markdown; charset=utf-8",
	"csv":      "text/csv; charset=utf-8",
}

// writeJSON writes v as a JSON response with the given status
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.LogError(err, "Failed to encode response")
	}
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	_ = json.NewEncoder(w).Encode(response)
}
