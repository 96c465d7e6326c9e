package advanced

import (
	"regexp"
	"strings"

	"atsresume/internal/types"
	"atsresume/internal/utils"
)

const (
	maxToneSamples     = 5
	tonePenaltyPerLine = 5
)

var passivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:am|is|are|was|were|be|been|being)\b\s+\w+ed\b`),
	regexp.MustCompile(`(?i)\bresponsible\s+for\b`),
	regexp.MustCompile(`(?i)\bhelped\s+with\b`),
	regexp.MustCompile(`(?i)\bassisted\s+in\b`),
}

// Tone counts lines written in passive or weak voice. A line is counted once
// no matter how many patterns it matches.
func Tone(text string) *types.ToneAnalysis {
	report := &types.ToneAnalysis{Samples: []string{}}

	for _, line := range strings.Split(text, "\n") {
		if !isPassive(line) {
			continue
		}
		report.PassiveSentencesCount++
		if len(report.Samples) < maxToneSamples {
			report.Samples = append(report.Samples, strings.TrimSpace(line))
		}
	}

	report.Score = utils.Clamp(float64(100-report.PassiveSentencesCount*tonePenaltyPerLine), 0, 100)
	return report
}

func isPassive(line string) bool {
	for _, p := range passivePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
