package analyzer

import (
	"fmt"
	"time"

	"atsresume/internal/errors"
	"atsresume/internal/types"
	"atsresume/internal/vocabulary"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

// newTestPipeline returns a pipeline with a fixed clock and sequential IDs.
func newTestPipeline(opts ...Option) *Pipeline {
	n := 0
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("analysis-%d", n)
		}),
		WithLogger(errors.Discard()),
	}
	return NewPipeline(vocabulary.Default(), append(base, opts...)...)
}

// completeDoc has every required section and contact detail.
func completeDoc() *types.ParsedDocument {
	return &types.ParsedDocument{
		Contact: types.ContactInfo{
			Emails:   []string{"a@b.io"},
			Phones:   []string{"555-123-4567"},
			LinkedIn: "linkedin.com/in/a",
		},
		Skills: types.Skills{
			AllTechnical: []string{"Go", "Rust", "Python", "Java", "C#", "Ruby", "Perl", "Scala", "R"},
		},
		Education:  types.Education{Degrees: []string{"Bachelor"}},
		Experience: types.Experience{HasSection: true},
		Sections: map[string]bool{
			"contact": true, "summary": true, "experience": true, "education": true,
			"skills": true, "projects": false, "certifications": false, "achievements": false,
		},
		Statistics: types.Statistics{TotalWords: 400},
	}
}
