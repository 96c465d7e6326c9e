package analyzer

import (
	"atsresume/internal/types"
	"atsresume/internal/utils"
	"atsresume/internal/vocabulary"
)

// Without a job description only these three scores contribute.
const (
	noJDImpactWeight       = 0.4
	noJDFormatWeight       = 0.4
	noJDCompletenessWeight = 0.2
)

// Completeness rewards the presence of sections, contact details, skills,
// degrees and an experience section.
func Completeness(doc *types.ParsedDocument) float64 {
	score := 0.0

	present := 0
	for _, ok := range doc.Sections {
		if ok {
			present++
		}
	}
	score += float64(present) / float64(max(len(doc.Sections), 1)) * 40

	if len(doc.Contact.Emails) > 0 {
		score += 10
	}
	if len(doc.Contact.Phones) > 0 {
		score += 5
	}
	if doc.Contact.LinkedIn != "" {
		score += 5
	}

	switch n := len(doc.Skills.AllTechnical); {
	case n > 8:
		score += 20
	case n > 0:
		score += 10
	}

	if len(doc.Education.Degrees) > 0 {
		score += 10
	}
	if doc.Experience.HasSection {
		score += 10
	}

	return utils.Round(score, 2)
}

// ExperienceRelevance is a coarse signal: a base of 50 plus 20 each for an
// experience section and for any stated years of experience.
func ExperienceRelevance(exp types.Experience) float64 {
	score := 50
	if exp.HasSection {
		score += 20
	}
	if len(exp.YearsMentioned) > 0 {
		score += 20
	}
	return float64(min(score, 100))
}

// EducationScore is 100 with a recognised degree, 50 with only an education
// section and 0 otherwise.
func EducationScore(edu types.Education) float64 {
	switch {
	case len(edu.Degrees) > 0:
		return 100
	case edu.HasSection:
		return 50
	default:
		return 0
	}
}

// Overall combines the sub-scores, rounded to two decimals. With a job
// description every score is weighted by the vocabulary; without one the fixed
// impact, format and completeness weights apply.
func Overall(scores map[string]float64, withJD bool, vocab *vocabulary.Vocabulary) float64 {
	return utils.Round(weightedOverall(scores, withJD, vocab), 2)
}

// weightedOverall is Overall before rounding. The rating is taken from it.
func weightedOverall(scores map[string]float64, withJD bool, vocab *vocabulary.Vocabulary) float64 {
	var overall float64
	if withJD {
		for _, key := range types.ScoreKeys {
			overall += scores[key] * vocab.Weights[key]
		}
	} else {
		overall = scores[types.ScoreImpact]*noJDImpactWeight +
			scores[types.ScoreFormatATSFriendly]*noJDFormatWeight +
			scores[types.ScoreCompleteness]*noJDCompletenessWeight
	}
	return overall
}
