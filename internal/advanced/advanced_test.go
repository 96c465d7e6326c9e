package advanced

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atsresume/internal/types"
	"atsresume/internal/vocabulary"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestReadability(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		assert.Equal(t, &types.Readability{}, Readability(""))
		assert.Equal(t, &types.Readability{}, Readability("  \n\t "))
	})

	t.Run("simple sentences", func(t *testing.T) {
		r := Readability("The cat sat on the red mat. The dog ran to the big park.")
		assert.Equal(t, 14, r.WordCount)
		// 14 one-syllable words over 2 sentences.
		assert.Equal(t, 115.13, r.FleschReadingEase)
		assert.Equal(t, -1.06, r.GradeLevel)
		assert.Equal(t, 0.63, r.ReadingTime)
	})

	t.Run("harder text scores lower", func(t *testing.T) {
		easy := Readability("I like to run. You like to swim. We go out.")
		hard := Readability("Architected comprehensive infrastructure modernization initiatives across organizational boundaries.")
		assert.Greater(t, easy.FleschReadingEase, hard.FleschReadingEase)
		assert.Less(t, easy.GradeLevel, hard.GradeLevel)
	})
}

func TestSyllableCount(t *testing.T) {
	tests := map[string]int{
		"cat":         1,
		"make":        1,
		"table":       2,
		"engineering": 4,
		"rhythm":      1,
		"xyz":         1,
		"developer":   4,
	}
	for word, want := range tests {
		assert.Equal(t, want, syllableCount(word), word)
	}
}

func TestSentenceCountIgnoresFragments(t *testing.T) {
	assert.Equal(t, 1, sentenceCount("Hi. This is a full sentence."))
	assert.Equal(t, 1, sentenceCount("no punctuation at all"))
	assert.Equal(t, 1, sentenceCount(""))
}

func TestTone(t *testing.T) {
	text := strings.Join([]string{
		"  Responsible for the build pipeline  ",
		"Was promoted twice and was recognized",
		"Helped with onboarding",
		"Assisted in audits",
		"Led a team of five",
		"Code was reviewed weekly",
		"Tests were automated",
	}, "\n")

	tone := Tone(text)
	assert.Equal(t, 6, tone.PassiveSentencesCount)
	assert.Equal(t, 70.0, tone.Score)
	require.Len(t, tone.Samples, 5)
	assert.Equal(t, "Responsible for the build pipeline", tone.Samples[0])

	t.Run("clean text scores 100", func(t *testing.T) {
		clean := Tone("Led migration\nShipped features")
		assert.Equal(t, 100.0, clean.Score)
		assert.Empty(t, clean.Samples)
	})

	t.Run("score floors at zero", func(t *testing.T) {
		lines := make([]string, 25)
		for i := range lines {
			lines[i] = "responsible for things"
		}
		assert.Equal(t, 0.0, Tone(strings.Join(lines, "\n")).Score)
	})
}

func TestCareerPath(t *testing.T) {
	vocab := vocabulary.Default()

	t.Run("gap between roles", func(t *testing.T) {
		exp := types.Experience{
			DateRanges:     []string{"Aug 2022 - Present", "Jan 2020 - Dec 2021"},
			DetectedTitles: []string{"Senior Software Engineer", "Junior Developer"},
		}
		career := CareerPath(exp, vocab, fixedNow)

		assert.Equal(t, []string{"Gap of 8 months between Dec 2021 and Aug 2022"}, career.Gaps)
		assert.Equal(t, SenioritySenior, career.SeniorityLevel)
		// junior (1) then "engineer" (2) since rank keywords are checked in order.
		assert.Equal(t, 70.0, career.GrowthScore)
		assert.Equal(t, []string{
			"Promotion/Growth detected: Junior Developer",
			"Promotion/Growth detected: Senior Software Engineer",
		}, career.CareerProgression)
	})

	t.Run("short gap is ignored", func(t *testing.T) {
		exp := types.Experience{DateRanges: []string{"Jan 2020 - Jun 2020", "Sep 2020 - Present"}}
		assert.Empty(t, CareerPath(exp, vocab, fixedNow).Gaps)
	})

	t.Run("unparseable ranges are skipped", func(t *testing.T) {
		exp := types.Experience{DateRanges: []string{"sometime", "Jan 2020 - Feb 2020"}}
		career := CareerPath(exp, vocab, fixedNow)
		assert.Empty(t, career.Gaps)
		assert.Equal(t, SeniorityEntry, career.SeniorityLevel)
		assert.Equal(t, 50.0, career.GrowthScore)
		assert.Empty(t, career.CareerProgression)
	})

	t.Run("growth is capped", func(t *testing.T) {
		titles := []string{"Director", "Manager", "Lead", "Senior", "Engineer", "Junior"}
		career := CareerPath(types.Experience{DetectedTitles: titles}, vocab, fixedNow)
		assert.Equal(t, 100.0, career.GrowthScore)
		assert.Len(t, career.CareerProgression, 6)
	})
}

func TestSeniority(t *testing.T) {
	vocab := vocabulary.Default()
	tests := []struct {
		name string
		exp  types.Experience
		want string
	}{
		{"senior title", types.Experience{DetectedTitles: []string{"Lead Engineer"}}, SenioritySenior},
		{"senior by years", types.Experience{YearsMentioned: []string{"4", "3"}}, SenioritySenior},
		{"mid title", types.Experience{DetectedTitles: []string{"Associate Engineer"}}, SeniorityMid},
		{"mid by years", types.Experience{YearsMentioned: []string{"3"}}, SeniorityMid},
		{"non numeric years ignored", types.Experience{YearsMentioned: []string{"x", "2"}}, SeniorityEntry},
		{"nothing", types.Experience{}, SeniorityEntry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Seniority(tt.exp, vocab))
		})
	}
}

func TestRoleSuitability(t *testing.T) {
	roles := vocabulary.Default().Roles

	skills := types.Skills{AllTechnical: []string{"Docker", "Kubernetes", "AWS", "Terraform", "Python"}}
	got := RoleSuitability(skills, roles)

	require.Len(t, got, 3)
	// The single-letter "r" fragment matches any skill containing that letter.
	assert.Equal(t, "Data Scientist", got[0].Role)
	assert.Equal(t, 40.0, got[0].Suitability)
	assert.Equal(t, []string{"docker", "kubernetes", "terraform"}, got[0].MatchedCoreSkills)
	assert.Equal(t, "DevOps Engineer", got[1].Role)
	assert.Equal(t, 36.36, got[1].Suitability)
	assert.Equal(t, []string{"docker", "kubernetes", "aws"}, got[1].MatchedCoreSkills)
	assert.Equal(t, "Full Stack Developer", got[2].Role)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Suitability, got[i].Suitability)
	}

	t.Run("no skills keeps declaration order", func(t *testing.T) {
		empty := RoleSuitability(types.Skills{}, roles)
		require.Len(t, empty, 3)
		assert.Equal(t, "Full Stack Developer", empty[0].Role)
		assert.Equal(t, 0.0, empty[0].Suitability)
		assert.NotNil(t, empty[0].MatchedCoreSkills)
	})
}

func TestRoadmap(t *testing.T) {
	entry := Roadmap(SeniorityEntry, "")
	assert.Equal(t, "Mid-Level Professional", entry.TargetNextLevel)
	assert.Equal(t, "Obtain a professional certification in Software Professional", entry.Steps[0])

	assert.Equal(t, "Obtain a professional certification in DevOps Engineer",
		Roadmap(SeniorityEntry, "DevOps Engineer").Steps[0])
	assert.Equal(t, "Senior Professional", Roadmap(SeniorityMid, "").TargetNextLevel)
	assert.Equal(t, "Architect / Manager", Roadmap(SenioritySenior, "").TargetNextLevel)
	assert.Len(t, Roadmap(SenioritySenior, "").Steps, 3)
}

func TestCoverLetter(t *testing.T) {
	letter := CoverLetter("Jane Doe", []string{"Go", "Python", "Docker", "AWS", "Git", "Kubernetes"})
	assert.Equal(t, "Jane Doe", letter.Name)
	assert.Contains(t, letter.Letter, "strong background in Go, Python, Docker, AWS, Git, I am confident")
	assert.Contains(t, letter.Letter, "My expertise in Go aligns")
	assert.True(t, strings.HasPrefix(letter.Letter, "Dear Hiring Manager,\n\n"))
	assert.True(t, strings.HasSuffix(letter.Letter, "Sincerely,\nJane Doe"))

	fallback := CoverLetter(types.NotFound, nil)
	assert.Equal(t, "Candidate", fallback.Name)
	assert.Contains(t, fallback.Letter, "My expertise in industry standard practices aligns")
}

func TestCleanText(t *testing.T) {
	got := CleanText("Café • Résumé — done")
	assert.Equal(t, "Caf    R sum    done", got.Text)
	assert.Equal(t, 5, got.RemovedSequences)

	plain := CleanText("plain ascii")
	assert.Equal(t, "plain ascii", plain.Text)
	assert.Zero(t, plain.RemovedSequences)
}
