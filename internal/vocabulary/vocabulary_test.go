package vocabulary

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atsresume/internal/errors"
	"atsresume/internal/types"
)

func writeVocab(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	v := Default()
	require.NoError(t, v.Validate())
	assert.Equal(t, DefaultVersion, v.Version)
	assert.Equal(t, []string{"contact", "summary", "experience", "education", "skills", "projects", "certifications", "achievements"}, v.SectionNames())

	// Each call returns an independent copy.
	v.SoftSkills[0] = "changed"
	assert.Equal(t, "Leadership", Default().SoftSkills[0])
}

func TestRating(t *testing.T) {
	v := Default()
	tests := []struct {
		score float64
		want  string
	}{
		{100, types.RatingExcellent},
		{80, types.RatingExcellent},
		{79.9, types.RatingGood},
		{60, types.RatingGood},
		{40, types.RatingFair},
		{39, types.RatingNeedsImprovement},
		{0, types.RatingNeedsImprovement},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, v.Rating(tt.score), "score %v", tt.score)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(v *Vocabulary)
	}{
		{"no categories", func(v *Vocabulary) { v.TechnicalSkills = nil }},
		{"unnamed category", func(v *Vocabulary) { v.TechnicalSkills[0].Name = "" }},
		{"missing required section", func(v *Vocabulary) { v.SectionHeaders = v.SectionHeaders[1:] }},
		{"missing weight", func(v *Vocabulary) { delete(v.Weights, types.ScoreEducation) }},
		{"negative weight", func(v *Vocabulary) {
			v.Weights[types.ScoreEducation] = -0.1
			v.Weights[types.ScoreKeywordMatch] = 0.45
		}},
		{"weights do not sum to one", func(v *Vocabulary) { v.Weights[types.ScoreEducation] = 0.5 }},
		{"thresholds out of order", func(v *Vocabulary) { v.Thresholds.Good = 90 }},
		{"excellent above 100", func(v *Vocabulary) { v.Thresholds.Excellent = 101 }},
		{"role without skills", func(v *Vocabulary) { v.Roles = append(v.Roles, RoleProfile{Name: "Empty"}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Default()
			tt.mutate(v)
			err := v.Validate()
			require.Error(t, err)
			appErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeInvalidVocabulary, appErr.Code)
		})
	}
}

func TestHelpers(t *testing.T) {
	v := Default()
	assert.True(t, v.IsStopWord("the"))
	assert.False(t, v.IsStopWord("python"))
	assert.Nil(t, v.Synonyms("hobbies"))
	assert.Contains(t, v.Synonyms("experience"), "employment")

	all := v.AllSkills()
	assert.Equal(t, "Python", all[0])
	assert.Equal(t, "Strategic Planning", all[len(all)-1])
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeVocab(t, dir, "vocab.yaml", `
version: test-2
softSkills:
  - Mentoring
thresholds:
  excellent: 90
  good: 70
  fair: 50
`)

	v, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test-2", v.Version)
	assert.Equal(t, []string{"Mentoring"}, v.SoftSkills)
	assert.Equal(t, Default().TechnicalSkills, v.TechnicalSkills)
	assert.Equal(t, types.RatingGood, v.Rating(85))
}

func TestLoadVersionFallsBackToFileName(t *testing.T) {
	path := writeVocab(t, t.TempDir(), "custom.json", `{"stopWords": ["and"]}`)

	v, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom.json", v.Version)
	assert.Equal(t, []string{"and"}, v.StopWords)
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "absent.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
	})

	t.Run("partial weights", func(t *testing.T) {
		path := writeVocab(t, dir, "weights.yaml", `
weights:
  keyword_match: 0.5
  skills_match: 0.5
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "weights must cover exactly 7 scores")
	})
}

func TestLoadOrDefault(t *testing.T) {
	v, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, v.Version)
}

func TestStore(t *testing.T) {
	s := NewStore(Default())
	assert.Equal(t, DefaultVersion, s.Get().Version)

	next := Default()
	next.Version = "next"
	s.Swap(next)
	assert.Same(t, next, s.Get())
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeVocab(t, dir, "vocab.yaml", "version: v1\n")
	initial, err := Load(path)
	require.NoError(t, err)

	store := NewStore(initial)
	var reloads, failures atomic.Int32
	w := NewWatcher(path, store, 10*time.Millisecond, func(v *Vocabulary, err error) {
		if err != nil {
			failures.Add(1)
			return
		}
		reloads.Add(1)
	}, nil)
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })

	assert.Error(t, w.Start(), "second start")

	rewrite := func(content string, offset time.Duration) {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		future := time.Now().Add(offset)
		require.NoError(t, os.Chtimes(path, future, future))
	}

	rewrite("version: v2\n", time.Minute)
	require.Eventually(t, func() bool { return reloads.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, "v2", store.Get().Version)

	rewrite("thresholds:\n  good: 95\n", 2*time.Minute)
	require.Eventually(t, func() bool { return failures.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, "v2", store.Get().Version, "invalid file keeps the previous vocabulary")

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
