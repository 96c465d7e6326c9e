package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atsresume/internal/types"
	"atsresume/internal/vocabulary"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567 | linkedin.com/in/janedoe | github.com/janedoe

Professional Summary
Senior Software Engineer with 6 years of experience building Python and Go services.

Experience
Senior Software Engineer
Acme Corp, Jan 2020 - Dec 2021
Developed microservices on AWS and Docker. Increased throughput by 40%.

Software Engineer
Beta Inc, Aug 2022 - Present

Education
Bachelor of Science in Computer Science, State University, 2015

Skills
Python, Go, Docker, Kubernetes, PostgreSQL, Git, Agile, Leadership, Communication
`

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestParser() *Parser {
	return New(vocabulary.Default(), WithClock(func() time.Time { return fixedNow }))
}

func TestParseSampleResume(t *testing.T) {
	doc := newTestParser().Parse(sampleResume)

	t.Run("Name", func(t *testing.T) {
		assert.Equal(t, "Jane Doe", doc.Name)
	})

	t.Run("Contact", func(t *testing.T) {
		assert.Equal(t, []string{"jane.doe@example.com"}, doc.Contact.Emails)
		assert.Equal(t, []string{"(555) 123-4567"}, doc.Contact.Phones)
		assert.Equal(t, "linkedin.com/in/janedoe", doc.Contact.LinkedIn)
		assert.Equal(t, "github.com/janedoe", doc.Contact.GitHub)
	})

	t.Run("Skills", func(t *testing.T) {
		assert.Equal(t, []string{"Python", "Go"}, doc.Skills.Technical["programming_languages"])
		assert.Equal(t, []string{"AWS", "Kubernetes", "Docker"}, doc.Skills.Technical["cloud_platforms"])
		assert.Equal(t, []string{"Git", "GitHub"}, doc.Skills.Technical["tools"])
		assert.NotContains(t, doc.Skills.Technical, "web_technologies")
		assert.Equal(t, []string{
			"Python", "Go", "PostgreSQL", "AWS", "Kubernetes", "Docker", "Git", "GitHub", "Agile", "Microservices",
		}, doc.Skills.AllTechnical)
		assert.Equal(t, []string{"Leadership", "Communication"}, doc.Skills.Soft)
	})

	t.Run("Education", func(t *testing.T) {
		assert.Equal(t, []string{"Bachelor", "Computer Science", "Software", "University"}, doc.Education.Degrees)
		assert.Equal(t, []string{"2020", "2021", "2022", "2015"}, doc.Education.Years)
		assert.True(t, doc.Education.HasSection)
	})

	t.Run("Experience", func(t *testing.T) {
		assert.Equal(t, []string{"6"}, doc.Experience.YearsMentioned)
		assert.Equal(t, []string{"Jan 2020 - Dec 2021", "Aug 2022 - Present"}, doc.Experience.DateRanges)
		assert.Equal(t, []string{"Senior Software Engineer", "Software Engineer"}, doc.Experience.DetectedTitles)
		assert.True(t, doc.Experience.HasSection)
		assert.Contains(t, doc.Experience.KeywordsFound, types.KeywordCount{Keyword: "senior", Count: 2})
	})

	t.Run("Timeline", func(t *testing.T) {
		require.Len(t, doc.Timeline.Roles, 2)
		assert.Equal(t, 23, doc.Timeline.Roles[0].Months)
		assert.Equal(t, 22, doc.Timeline.Roles[1].Months)
		assert.Equal(t, 45, doc.Timeline.TotalExperienceMonths)
		assert.Equal(t, 3.8, doc.Timeline.TotalYears)
		assert.Empty(t, doc.Timeline.Risks)
	})

	t.Run("Sections", func(t *testing.T) {
		assert.Len(t, doc.Sections, 8)
		assert.Equal(t, map[string]bool{
			"contact": false, "summary": true, "experience": true, "education": true,
			"skills": true, "projects": false, "certifications": false, "achievements": false,
		}, doc.Sections)
	})
}

func TestParseEmptyText(t *testing.T) {
	doc := newTestParser().Parse("")

	assert.Equal(t, types.NotFound, doc.Name)
	assert.Empty(t, doc.Contact.Emails)
	assert.Empty(t, doc.Contact.Phones)
	assert.Empty(t, doc.Contact.LinkedIn)
	assert.NotNil(t, doc.Skills.Technical)
	assert.Empty(t, doc.Skills.AllTechnical)
	assert.Empty(t, doc.Experience.DateRanges)
	assert.Empty(t, doc.Timeline.Roles)
	assert.Len(t, doc.Sections, 8)
	assert.Equal(t, types.Statistics{}, doc.Statistics)
}

func TestParseUsesInjectedVocabulary(t *testing.T) {
	vocab := vocabulary.Default()
	vocab.TechnicalSkills = []vocabulary.Category{{Name: "langs", Skills: []string{"Zig"}}}
	vocab.SoftSkills = nil

	doc := New(vocab).Parse("Zig and Python developer")

	assert.Equal(t, map[string][]string{"langs": {"Zig"}}, doc.Skills.Technical)
	assert.Equal(t, []string{"Zig"}, doc.Skills.AllTechnical)
	assert.Empty(t, doc.Skills.Soft)
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"first line", "John Smith\nEngineer", "John Smith"},
		{"skips contact line", "john@example.com\nJohn Smith", "John Smith"},
		{"skips long banner", "Curriculum Vitae of the applicant below\nAda Lovelace", "Ada Lovelace"},
		{"too short", "Al\n555 1234", types.NotFound},
		{"only first five lines", "1\n2\n3\n4\n5\nGrace Hopper", types.NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractName(tt.text))
		})
	}
}

func TestExtractContactDeduplicates(t *testing.T) {
	c := ExtractContact("a@b.io a@b.io 555-123-4567 555.123.4567 555-123-4567 LinkedIn.com/in/first linkedin.com/in/second")
	assert.Equal(t, []string{"a@b.io"}, c.Emails)
	assert.Equal(t, []string{"555-123-4567", "555.123.4567"}, c.Phones)
	assert.Equal(t, "LinkedIn.com/in/first", c.LinkedIn)
	assert.Empty(t, c.GitHub)
}

func TestYearsOfExperience(t *testing.T) {
	assert.Equal(t, []string{"5", "3"}, YearsOfExperience("5+ years of experience in go, 3 yrs exp in rust"))
	assert.Equal(t, []string{"10"}, YearsOfExperience("10 years industry leadership"))
	assert.Equal(t, []string{"8"}, YearsOfExperience("over 8+ years building systems"))
	assert.Empty(t, YearsOfExperience("8 years building systems"))
}

func TestDetectTitles(t *testing.T) {
	lines := make([]string, 0, 12)
	for range 12 {
		lines = append(lines, "Data Analyst")
	}
	lines = append(lines, "lead engineer", "Product Manager who shipped many large products")

	titles := DetectTitles(strings.Join(lines, "\n"), vocabulary.Default().TitleKeywords)
	assert.Len(t, titles, maxTitles)
	assert.Equal(t, "Data Analyst", titles[0])

	assert.Empty(t, DetectTitles("lead engineer", vocabulary.Default().TitleKeywords))
}

func TestWordStatistics(t *testing.T) {
	tests := []struct {
		text string
		want types.Statistics
	}{
		{"", types.Statistics{}},
		{"Hello world. Hello World!", types.Statistics{TotalWords: 4, UniqueWords: 3, Sentences: 2}},
		{"Wait... what?!  Really", types.Statistics{TotalWords: 3, UniqueWords: 3, Sentences: 2}},
		{"a\tb\nc   a", types.Statistics{TotalWords: 4, UniqueWords: 3, Sentences: 0}},
	}
	for _, tt := range tests {
		got := WordStatistics(tt.text)
		assert.Equal(t, tt.want, got, tt.text)
		assert.LessOrEqual(t, got.UniqueWords, got.TotalWords)
		assert.Equal(t, len(strings.Fields(tt.text)), got.TotalWords)
	}
}

func BenchmarkParse(b *testing.B) {
	p := newTestParser()
	for b.Loop() {
		p.Parse(sampleResume)
	}
}
