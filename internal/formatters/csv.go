package formatters

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"atsresume/internal/types"
)

// ReportCSVFormatter renders one row per score followed by summary rows for
// each sub-report that is present.
type ReportCSVFormatter struct{}

func (rcf *ReportCSVFormatter) Format(data any) (string, error) {
	report, err := asPointer[types.Report](data)
	if err != nil {
		return "", err
	}
	result := report.Analysis
	if result == nil {
		return "", fmt.Errorf("report is missing its analysis")
	}

	rows := [][]string{{"section", "metric", "value"}}
	for _, key := range types.ScoreKeys {
		rows = append(rows, []string{"score", key, decimal(result.Scores[key])})
	}
	rows = append(rows,
		[]string{"overall", "overall_score", decimal(result.OverallScore)},
		[]string{"overall", "rating", result.Rating},
	)

	if km := result.KeywordMatch; km != nil {
		rows = append(rows,
			[]string{"keyword_match", "total_jd_keywords", strconv.Itoa(km.TotalJDKeywords)},
			[]string{"keyword_match", "matched", strconv.Itoa(len(km.MatchedKeywords))},
		)
	}
	if sm := result.SkillsMatch; sm != nil {
		rows = append(rows,
			[]string{"skills_match", "matched", strconv.Itoa(len(sm.MatchedSkills))},
			[]string{"skills_match", "missing", strings.Join(sm.MissingSkills, "; ")},
		)
	}
	if fc := result.FormatCheck; fc != nil {
		rows = append(rows,
			[]string{"format_check", "is_ats_friendly", strconv.FormatBool(fc.IsATSFriendly)},
			[]string{"format_check", "issues", strconv.Itoa(len(fc.Issues))},
		)
	}
	if ia := result.ImpactAnalysis; ia != nil {
		rows = append(rows,
			[]string{"impact", "verbs_found", strconv.Itoa(ia.VerbsFound)},
			[]string{"impact", "metrics_found", strconv.Itoa(ia.MetricsFound)},
		)
	}
	if r := result.Readability; r != nil {
		rows = append(rows,
			[]string{"readability", "flesch_reading_ease", decimal(r.FleschReadingEase)},
			[]string{"readability", "grade_level", decimal(r.GradeLevel)},
		)
	}
	if t := result.ToneAnalysis; t != nil {
		rows = append(rows, []string{"tone", "score", decimal(t.Score)})
	}
	if ca := result.CareerAnalysis; ca != nil {
		rows = append(rows,
			[]string{"career", "seniority", ca.SeniorityLevel},
			[]string{"career", "growth_score", decimal(ca.GrowthScore)},
		)
	}
	for _, rs := range result.RoleSuitability {
		rows = append(rows, []string{"role_suitability", rs.Role, decimal(rs.Suitability)})
	}
	for _, link := range result.LinkValidation {
		rows = append(rows, []string{"link", link.Name, link.Status})
	}

	var output strings.Builder
	w := csv.NewWriter(&output)
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("failed to write csv: %w", err)
	}
	return output.String(), nil
}

func (rcf *ReportCSVFormatter) SupportedType() string {
	return TypeReport
}

func decimal(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
