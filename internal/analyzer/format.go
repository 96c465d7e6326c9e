package analyzer

import (
	"regexp"
	"strings"

	"atsresume/internal/types"
	"atsresume/internal/vocabulary"
)

const (
	minWords           = 200
	maxWords           = 1200
	maxSpecialChars    = 80
	atsFriendlyMinimum = 70
)

var requiredSections = []string{"contact", "experience", "education", "skills"}

// specialCharPattern matches anything other than letters, digits, whitespace
// and the punctuation commonly found in resumes.
var specialCharPattern = regexp.MustCompile(`[^\p{L}\p{N}\p{M}\p{Z}_\s\v.,()@+/-]`)

// FormatCheck deducts points from 100 for structural problems that trip up
// applicant tracking systems. The score never drops below zero.
func FormatCheck(doc *types.ParsedDocument, text string, vocab *vocabulary.Vocabulary) *types.FormatCheck {
	report := &types.FormatCheck{Issues: []string{}, Warnings: []string{}}
	score := 100

	for _, s := range requiredSections {
		if !doc.Sections[s] {
			report.Issues = append(report.Issues, "Missing "+s+" section")
			score -= 15
		}
	}

	if len(doc.Contact.Emails) == 0 {
		report.Issues = append(report.Issues, "Email not found")
		score -= 10
	}
	if len(doc.Contact.Phones) == 0 {
		report.Issues = append(report.Issues, "Phone number not found")
		score -= 10
	}

	switch words := doc.Statistics.TotalWords; {
	case words < minWords:
		report.Issues = append(report.Issues, "Resume too short (< 200 words)")
		score -= 15
	case words > maxWords:
		report.Issues = append(report.Issues, "Resume too long (> 1200 words)")
		score -= 5
	}

	lower := strings.ToLower(text)
	for _, pitfall := range vocab.ATSPitfalls {
		if strings.Contains(lower, strings.ToLower(pitfall)) {
			report.Warnings = append(report.Warnings, "Detected potential ATS block: "+pitfall)
			score -= 2
		}
	}

	if len(specialCharPattern.FindAllStringIndex(text, -1)) > maxSpecialChars {
		report.Issues = append(report.Issues, "Too many special characters/symbols")
		score -= 10
	}

	report.Score = float64(max(score, 0))
	report.IsATSFriendly = score >= atsFriendlyMinimum
	return report
}
