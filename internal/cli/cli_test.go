package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atsresume/internal/config"
	"atsresume/internal/errors"
	"atsresume/internal/types"
)

const testResume = `Jane Doe
jane.doe@example.com | (555) 123-4567

Professional Summary
Senior Software Engineer with 6 years of experience building Python and Go services.

Experience
Senior Software Engineer
Acme Corp, Jan 2020 - Dec 2021
Developed microservices on AWS and Docker. Increased throughput by 40%.

Education
Bachelor of Science in Computer Science, State University, 2015

Skills
Python, Go, Docker, Kubernetes, PostgreSQL, Git, Agile, Leadership
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	cfg.Observability.Enabled = false
	return cfg
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(withRuntime(context.Background(), cfg, errors.Discard()))
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, testConfig(t), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "atsresume version dev")
	assert.Contains(t, out, "Git commit: unknown")
}

func TestAnalyzeCommand(t *testing.T) {
	cfg := testConfig(t)
	resume := writeFile(t, "resume.txt", testResume)

	t.Run("summary by default", func(t *testing.T) {
		out, err := runCLI(t, cfg, "analyze", "--resume", resume, "--jd-text", "<p>Python and <b>Terraform</b></p>")
		require.NoError(t, err)
		assert.Contains(t, out, "ATS Resume Analysis")
		assert.Contains(t, out, "keyword_match")
		assert.Contains(t, out, "Keywords")
		assert.Contains(t, out, "terraform")
	})

	t.Run("json report", func(t *testing.T) {
		jd := writeFile(t, "jd.html", "<ul><li>Docker</li><li>Rust</li></ul>")
		out, err := runCLI(t, cfg, "analyze", "-r", resume, "--jd", jd, "--format", "json")
		require.NoError(t, err)

		var report types.Report
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, "Jane Doe", report.Document.Name)
		require.NotNil(t, report.Analysis.KeywordMatch)
		assert.Contains(t, report.Analysis.KeywordMatch.MatchedKeywords, "docker")
		assert.Contains(t, report.Analysis.KeywordMatch.MissingKeywords, "rust")
		assert.Nil(t, report.Analysis.LinkValidation)
	})

	t.Run("output file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reports", "report.md")
		out, err := runCLI(t, cfg, "analyze", "-r", resume, "--format", "markdown", "-o", path)
		require.NoError(t, err)
		assert.Empty(t, out)

		written, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotEmpty(t, written)
	})

	t.Run("output file without format uses the default", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.json")
		_, err := runCLI(t, cfg, "analyze", "-r", resume, "-o", path)
		require.NoError(t, err)

		written, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, json.Valid(written))
	})

	t.Run("resume is required", func(t *testing.T) {
		_, err := runCLI(t, cfg, "analyze")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `required flag(s) "resume" not set`)
	})

	t.Run("job description sources are exclusive", func(t *testing.T) {
		_, err := runCLI(t, cfg, "analyze", "-r", resume, "--jd", resume, "--jd-text", "Go")
		require.Error(t, err)
	})

	t.Run("unsupported output format", func(t *testing.T) {
		_, err := runCLI(t, cfg, "analyze", "-r", resume, "--format", "xml")
		require.Error(t, err)
		appErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeInvalidFormat, appErr.Code)
	})

	t.Run("unsupported input format", func(t *testing.T) {
		doc := writeFile(t, "resume.doc", testResume)
		_, err := runCLI(t, cfg, "analyze", "-r", doc)
		require.Error(t, err)
		appErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeUnsupportedFormat, appErr.Code)
	})
}

func TestParseCommand(t *testing.T) {
	cfg := testConfig(t)
	resume := writeFile(t, "resume.md", testResume)

	out, err := runCLI(t, cfg, "parse", "-r", resume, "--format", "json")
	require.NoError(t, err)

	var doc types.ParsedDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Jane Doe", doc.Name)
	assert.Equal(t, []string{"jane.doe@example.com"}, doc.Contact.Emails)
	assert.True(t, doc.Sections["skills"])
}

func TestParseCommandUsesVocabularyFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.App.VocabularyFile = filepath.Join(t.TempDir(), "missing.yaml")
	resume := writeFile(t, "resume.txt", testResume)

	_, err := runCLI(t, cfg, "parse", "-r", resume)
	require.Error(t, err)
}

func TestCoverLetterCommand(t *testing.T) {
	cfg := testConfig(t)
	resume := writeFile(t, "resume.txt", testResume)

	out, err := runCLI(t, cfg, "cover-letter", "-r", resume, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Dear Hiring Manager,")
	assert.Contains(t, out, "Sincerely,\nJane Doe")

	out, err = runCLI(t, cfg, "cover-letter", "-r", resume, "--name", "Ada Lovelace", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Sincerely,\nAda Lovelace")

	_, err = runCLI(t, cfg, "cover-letter", "-r", resume, "--format", "csv")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestCleanCommand(t *testing.T) {
	cfg := testConfig(t)
	input := writeFile(t, "notes.txt", "Café • résumé")

	out, err := runCLI(t, cfg, "clean", "-i", input, "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "Caf    r sum \n", out)

	out, err = runCLI(t, cfg, "clean", "-i", input, "--format", "json")
	require.NoError(t, err)
	var clean types.CleanText
	require.NoError(t, json.Unmarshal([]byte(out), &clean))
	assert.Equal(t, 4, clean.RemovedSequences)
}

func TestApplyServeOverrides(t *testing.T) {
	cfg := testConfig(t)
	cmd := newServeCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--port", "9999", "--tls-mode", "server", "--cert-file", "c.pem"}))

	require.NoError(t, applyServeOverrides(cmd, cfg))
	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "server", cfg.Server.TLS.Mode)
	assert.Equal(t, "c.pem", cfg.Server.TLS.CertFile)

	err := cfg.ValidateTLSConfig()
	assert.Error(t, err, "server mode without a key file")
}

func TestRenderSummary(t *testing.T) {
	report := &types.Report{
		Document: &types.ParsedDocument{},
		Analysis: &types.AnalysisResult{
			OverallScore:    72.5,
			Rating:          types.RatingGood,
			Scores:          map[string]float64{types.ScoreImpact: 50},
			Strengths:       []string{"Clear structure"},
			Recommendations: []string{"Add metrics"},
		},
	}

	out := renderSummary(report)
	assert.Contains(t, out, "72.5/100")
	assert.Contains(t, out, types.RatingGood)
	assert.Contains(t, out, "Clear structure")
	assert.Contains(t, out, "Add metrics")
	assert.NotContains(t, out, "Keywords")
	assert.NotContains(t, out, "Career")
}

func TestScoreBar(t *testing.T) {
	tests := []struct {
		score  float64
		filled int
	}{
		{0, 0},
		{50, 10},
		{72.5, 15},
		{100, 20},
		{140, 20},
		{-5, 0},
	}
	for _, tt := range tests {
		bar := scoreBar(tt.score)
		assert.Equal(t, tt.filled, strings.Count(bar, "█"), tt.score)
		assert.Equal(t, barWidth-tt.filled, strings.Count(bar, "░"), tt.score)
	}
}
