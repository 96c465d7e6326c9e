package analyzer

import (
	"regexp"

	"atsresume/internal/textmatch"
	"atsresume/internal/types"
	"atsresume/internal/utils"
)

const (
	maxVerbSamples   = 10
	maxMetricSamples = 5
)

// metricPatterns are matched against lower-cased text, in this order.
var metricPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+%`),
	regexp.MustCompile(`\$\d+`),
	regexp.MustCompile(`\b\d{1,3}(?:,\d{3})*\b`),
	regexp.MustCompile(`\d+\s+(?:users|customers|clients|projects|employees|team members|revenue|growth|reduction|improvement)`),
	regexp.MustCompile(`\bincreased\s+by\s+\d+`),
	regexp.MustCompile(`\bsaved\s+\d+`),
	regexp.MustCompile(`\breduced\s+by\s+\d+`),
}

// Impact scores action verb and quantified-result usage. A number can be
// counted by more than one metric pattern.
func Impact(lower string, verbs []textmatch.Term) *types.ImpactAnalysis {
	found := textmatch.Found(verbs, lower)

	var metrics []string
	for _, p := range metricPatterns {
		metrics = append(metrics, p.FindAllString(lower, -1)...)
	}

	verbScore := min(len(found)*5, 50)
	metricScore := min(len(metrics)*10, 50)

	return &types.ImpactAnalysis{
		Score:         float64(verbScore + metricScore),
		VerbsFound:    len(found),
		MetricsFound:  len(metrics),
		FoundVerbs:    append([]string{}, utils.Head(found, maxVerbSamples)...),
		MetricsSample: append([]string{}, utils.Head(metrics, maxMetricSamples)...),
	}
}
