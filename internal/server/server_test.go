package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atsresume/internal/config"
	"atsresume/internal/errors"
	"atsresume/internal/types"
	"atsresume/internal/vocabulary"
)

const testResume = `Jane Doe
jane.doe@example.com | (555) 123-4567

Summary
Senior Software Engineer with 6 years of experience building Python and Go services.

Experience
Acme Corp, Jan 2020 - Dec 2021
Developed microservices on AWS and Docker. Increased throughput by 40%.

Education
Bachelor of Science in Computer Science, 2015

Skills
Python, Go, Docker, Kubernetes, Leadership
`

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{MaxFileSize: 1024 * 1024},
		Server: config.ServerConfig{
			Host:           "localhost",
			Port:           "0",
			MaxRequestSize: 64 * 1024,
			MaxUploadSize:  1024 * 1024,
			TLS:            config.TLSConfig{Mode: "disabled"},
		},
	}
}

func newTestServer(t *testing.T, mutate func(*config.Config)) (*Server, *httptest.Server) {
	t.Helper()
	cfg := testConfig()
	if mutate != nil {
		mutate(cfg)
	}

	s, err := NewServer(cfg, NewServerConfig(cfg, "test"), vocabulary.Default(), nil, errors.Discard())
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		if s.RateLimiter != nil {
			s.RateLimiter.Close()
		}
	})
	return s, ts
}

func postJSON(t *testing.T, url string, body any, headers ...string) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

type upload struct {
	field, filename, content string
}

func postMultipart(t *testing.T, url string, files []upload, fields map[string]string) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = io.WriteString(part, f.content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	resp, err := http.Post(url, mw.FormDataContentType(), &body)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHealthAndStats(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	health := decode[map[string]any](t, resp)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, vocabulary.DefaultVersion, health["vocabulary"])
	assert.Equal(t, map[string]any{"enabled": false}, health["link_checks"])

	resp, err = http.Get(ts.URL + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	stats := decode[map[string]any](t, resp)
	assert.Equal(t, map[string]any{"enabled": false}, stats["rate_limiting"])
	assert.Equal(t, map[string]any{"enabled": false}, stats["circuit_breakers"])
}

func TestAnalyzeJSON(t *testing.T) {
	_, ts := newTestServer(t, nil)

	t.Run("without job description", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/analyze", AnalyzeRequest{ResumeText: testResume})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		report := decode[types.Report](t, resp)
		assert.Equal(t, "Jane Doe", report.Document.Name)
		assert.NotEmpty(t, report.Analysis.ID)
		assert.Nil(t, report.Analysis.KeywordMatch)
		assert.Len(t, report.Analysis.Scores, len(types.ScoreKeys))
	})

	t.Run("html job description is converted", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/analyze", AnalyzeRequest{
			ResumeText:     testResume,
			JobDescription: "<html><body><ul><li>Python</li><li>Kubernetes</li></ul></body></html>",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		report := decode[types.Report](t, resp)
		require.NotNil(t, report.Analysis.KeywordMatch)
		assert.Equal(t, []string{"python", "kubernetes"}, report.Analysis.KeywordMatch.MatchedKeywords)
		assert.Equal(t, []string{"python kubernetes"}, report.Analysis.KeywordMatch.MissingKeywords)
	})

	t.Run("missing resume text", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/analyze", AnalyzeRequest{JobDescription: "Go"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decode[ErrorResponse](t, resp)
		assert.Equal(t, errors.ErrCodeInvalidInput, body.Code)
		assert.Equal(t, "validation error: ResumeText - required", body.Message)
	})

	t.Run("unsupported content type", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/analyze", "text/plain", strings.NewReader(testResume))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("text format", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/analyze?format=text", AnalyzeRequest{ResumeText: testResume})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "ATS RESUME ANALYSIS REPORT")
	})

	t.Run("wrong method", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/analyze")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestAnalyzeMultipart(t *testing.T) {
	_, ts := newTestServer(t, nil)

	t.Run("resume and job description text", func(t *testing.T) {
		resp := postMultipart(t, ts.URL+"/analyze",
			[]upload{{"resume", "resume.txt", testResume}},
			map[string]string{"job_description_text": "Python Kubernetes Terraform"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		report := decode[types.Report](t, resp)
		require.NotNil(t, report.Analysis.SkillsMatch)
		assert.Contains(t, report.Analysis.SkillsMatch.MatchedSkills, "Python")
		assert.Contains(t, report.Analysis.KeywordMatch.MissingKeywords, "terraform")
	})

	t.Run("job description file wins over text", func(t *testing.T) {
		resp := postMultipart(t, ts.URL+"/analyze",
			[]upload{
				{"resume", "resume.md", testResume},
				{"job_description", "jd.html", "<p>Docker</p>"},
			},
			map[string]string{"job_description_text": "Terraform"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		report := decode[types.Report](t, resp)
		assert.Equal(t, []string{"docker"}, report.Analysis.KeywordMatch.MatchedKeywords)
		assert.Empty(t, report.Analysis.KeywordMatch.MissingKeywords)
	})

	tests := []struct {
		name   string
		files  []upload
		status int
		code   string
	}{
		{"missing resume", nil, http.StatusBadRequest, errors.ErrCodeInvalidRequest},
		{"legacy doc", []upload{{"resume", "resume.doc", "binary"}}, http.StatusUnsupportedMediaType, errors.ErrCodeUnsupportedFormat},
		{"blank document", []upload{{"resume", "resume.txt", "   \n"}}, http.StatusBadRequest, errors.ErrCodeEmptyDocument},
		{"corrupt pdf", []upload{{"resume", "resume.pdf", "not a pdf"}}, http.StatusUnprocessableEntity, errors.ErrCodeExtractionFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postMultipart(t, ts.URL+"/analyze", tt.files, map[string]string{"job_description_text": "Go"})
			require.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, decode[ErrorResponse](t, resp).Code)
		})
	}
}

func TestRequestSizeLimit(t *testing.T) {
	_, ts := newTestServer(t, func(c *config.Config) {
		c.Server.MaxRequestSize = 128
		c.Server.MaxUploadSize = 0
	})

	resp := postJSON(t, ts.URL+"/parse", ParseRequest{ResumeText: strings.Repeat("word ", 100)})
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeFileTooLarge, decode[ErrorResponse](t, resp).Code)
}

func TestParseCoverLetterAndCleanText(t *testing.T) {
	_, ts := newTestServer(t, nil)

	t.Run("parse", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/parse", ParseRequest{ResumeText: testResume})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		doc := decode[types.ParsedDocument](t, resp)
		assert.Equal(t, []string{"jane.doe@example.com"}, doc.Contact.Emails)
		assert.True(t, doc.Sections["skills"])
	})

	t.Run("cover letter uses the parsed name", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/cover-letter", CoverLetterRequest{ResumeText: testResume})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		letter := decode[types.CoverLetter](t, resp)
		assert.Equal(t, "Jane Doe", letter.Name)
		assert.Contains(t, letter.Letter, "Dear Hiring Manager")
		assert.Contains(t, letter.Letter, "Python")
	})

	t.Run("cover letter name override", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/cover-letter", CoverLetterRequest{Name: "J. Doe", ResumeText: testResume})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "J. Doe", decode[types.CoverLetter](t, resp).Name)
	})

	t.Run("cover letter has no csv format", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/cover-letter?format=csv", CoverLetterRequest{ResumeText: testResume})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, errors.ErrCodeInvalidFormat, decode[ErrorResponse](t, resp).Code)
	})

	t.Run("clean text", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/clean-text", CleanTextRequest{Text: "Café • résumé"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		cleaned := decode[types.CleanText](t, resp)
		assert.Equal(t, "Caf    r sum ", cleaned.Text)
		assert.Equal(t, 4, cleaned.RemovedSequences)
	})
}

func TestAuthMiddleware(t *testing.T) {
	_, ts := newTestServer(t, func(c *config.Config) {
		c.Server.APIKeys = []string{"secret-key-123"}
	})
	body := CleanTextRequest{Text: "plain"}

	resp := postJSON(t, ts.URL+"/clean-text", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Missing API key", decode[ErrorResponse](t, resp).Error)

	resp = postJSON(t, ts.URL+"/clean-text", body, "X-API-Key", "wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/clean-text", body, "X-API-Key", "secret-key-123")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/clean-text", body, "Authorization", "Bearer secret-key-123")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Health stays public.
	health, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

func TestRateLimitMiddleware(t *testing.T) {
	s, ts := newTestServer(t, func(c *config.Config) {
		c.Server.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMin: 1, BurstCapacity: 1, ByIP: true}
	})
	body := CleanTextRequest{Text: "plain"}

	resp := postJSON(t, ts.URL+"/clean-text", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/clean-text", body)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	stats := s.RateLimiter.GetStats()
	assert.Equal(t, 1, stats["active_clients"])
	assert.Equal(t, 1, stats["burst_capacity"])
	assert.Equal(t, "1m0s", stats["window"])
	assert.Equal(t, map[string]int{"ip": 1}, stats["rejected"])
}

func TestVocabularyReloadSwapsPipeline(t *testing.T) {
	s, ts := newTestServer(t, nil)

	next := vocabulary.Default()
	next.Version = "custom-2"
	s.onVocabularyReload(next, nil)
	assert.Equal(t, "custom-2", s.pipeline.Load().Vocabulary().Version)

	s.onVocabularyReload(nil, errors.NewValidationError(errors.ErrCodeInvalidVocabulary, "bad", nil))
	assert.Equal(t, "custom-2", s.pipeline.Load().Vocabulary().Version)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "custom-2", decode[map[string]any](t, resp)["vocabulary"])
}

func TestLinkCheckerWiring(t *testing.T) {
	s, _ := newTestServer(t, func(c *config.Config) {
		c.Analysis = config.AnalysisConfig{
			CheckLinks:       true,
			LinkTimeout:      100 * time.Millisecond,
			LinkCheckTimeout: 200 * time.Millisecond,
		}
	})
	require.NotNil(t, s.checker)

	rec := httptest.NewRecorder()
	s.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Contains(t, rec.Body.String(), `"breakers_healthy":true`)
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		byAPIKey bool
		byIP     bool
		want     string
	}{
		{"api key header", map[string]string{"X-API-Key": "k1"}, true, true, "api:k1"},
		{"bearer token", map[string]string{"Authorization": "Bearer k2"}, true, false, "api:k2"},
		{"falls back to ip", nil, true, true, "ip:192.0.2.1"},
		{"forwarded for", map[string]string{"X-Forwarded-For": "bogus, 203.0.113.7"}, false, true, "ip:203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.2"}, false, true, "ip:198.51.100.2"},
		{"disabled", map[string]string{"X-API-Key": "k1"}, false, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/analyze", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getRateLimitKey(r, tt.byAPIKey, tt.byIP))
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.NewValidationError(errors.ErrCodeInvalidInput, "x", nil), http.StatusBadRequest},
		{errors.NewValidationError(errors.ErrCodeFileTooLarge, "x", nil), http.StatusRequestEntityTooLarge},
		{errors.NewValidationError(errors.ErrCodeUnsupportedFormat, "x", nil), http.StatusUnsupportedMediaType},
		{errors.NewValidationError(errors.ErrCodeEmptyDocument, "x", nil), http.StatusBadRequest},
		{errors.NewExtractionError(errors.ErrCodeExtractionFailed, "x", nil), http.StatusUnprocessableEntity},
		{errors.NewIOError(errors.ErrCodeFileNotReadable, "x", nil), http.StatusBadRequest},
		{errors.NewInternalError(errors.ErrCodeWriteFailed, "x", nil), http.StatusInternalServerError},
		{io.EOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "abcdefgh****", maskAPIKey("abcdefghijkl"))
}

func TestWriteServerInfo(t *testing.T) {
	s, _ := newTestServer(t, func(c *config.Config) {
		c.Server.APIKeys = []string{"secret-key-123"}
		c.Server.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMin: 30, BurstCapacity: 5, ByIP: true}
	})

	var out bytes.Buffer
	s.writeServerInfo(&out)
	info := out.String()

	assert.Contains(t, info, "listening on http://")
	for _, rt := range apiRoutes {
		assert.Contains(t, info, rt.path)
	}
	assert.Contains(t, info, "API authentication: ENABLED (1 keys configured)")
	assert.Contains(t, info, "Rate limiting: ENABLED (30 requests per 1m0s, burst 5, keyed by [ip])")
}
