package advanced

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"atsresume/internal/parser"
	"atsresume/internal/types"
	"atsresume/internal/vocabulary"
)

// Seniority tiers
const (
	SeniorityEntry  = "Entry-Level"
	SeniorityMid    = "Mid-Career"
	SenioritySenior = "Senior / Executive"
)

const (
	gapThresholdDays = 180
	seniorYears      = 7
	midYears         = 3
	baseGrowthScore  = 50
	growthStep       = 10
)

type span struct {
	start, end time.Time
}

// CareerPath reports employment gaps, the seniority tier and signs of
// promotion in the work history.
func CareerPath(exp types.Experience, vocab *vocabulary.Vocabulary, now time.Time) *types.CareerAnalysis {
	growth, progression := growthSignals(exp.DetectedTitles, vocab.SeniorityRanks)
	return &types.CareerAnalysis{
		Gaps:              gaps(exp.DateRanges, now),
		SeniorityLevel:    Seniority(exp, vocab),
		GrowthScore:       growth,
		CareerProgression: progression,
	}
}

// gaps reports every break of more than six months between consecutive ranges
// once they are ordered by start date.
func gaps(ranges []string, now time.Time) []string {
	var spans []span
	for _, r := range ranges {
		start, end, ok := parser.ParseDateRange(r, now)
		if !ok {
			continue
		}
		spans = append(spans, span{start: start.Time(), end: end.Time()})
	}
	slices.SortStableFunc(spans, func(a, b span) int {
		return a.start.Compare(b.start)
	})

	out := []string{}
	for i := 0; i+1 < len(spans); i++ {
		days := int(spans[i+1].start.Sub(spans[i].end).Hours() / 24)
		if days > gapThresholdDays {
			out = append(out, fmt.Sprintf("Gap of %d months between %s and %s",
				days/30, spans[i].end.Format("Jan 2006"), spans[i+1].start.Format("Jan 2006")))
		}
	}
	return out
}

// Seniority classifies the candidate from title keywords and the years of
// experience they state.
func Seniority(exp types.Experience, vocab *vocabulary.Vocabulary) string {
	titles := strings.ToLower(strings.Join(exp.DetectedTitles, " "))

	years := 0
	for _, y := range exp.YearsMentioned {
		if n, err := strconv.Atoi(y); err == nil {
			years += n
		}
	}

	switch {
	case containsAny(titles, vocab.SeniorKeywords) || years >= seniorYears:
		return SenioritySenior
	case containsAny(titles, vocab.MidKeywords) || years >= midYears:
		return SeniorityMid
	default:
		return SeniorityEntry
	}
}

// growthSignals walks titles oldest first, assuming resumes list the most
// recent role at the top, and records each step up the rank ladder.
func growthSignals(titles []string, ranks []vocabulary.Rank) (float64, []string) {
	score := baseGrowthScore
	progression := []string{}
	current := 0

	for i := len(titles) - 1; i >= 0; i-- {
		title := strings.ToLower(titles[i])
		for _, r := range ranks {
			if !strings.Contains(title, r.Keyword) {
				continue
			}
			if r.Level > current {
				score += growthStep
				progression = append(progression, "Promotion/Growth detected: "+titles[i])
			}
			current = r.Level
			break
		}
	}
	return float64(min(score, 100)), progression
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
