package formatters

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"atsresume/internal/types"
	"atsresume/internal/utils"
)

const (
	ruleWidth  = 80
	labelWidth = 40
)

var (
	heavyRule = strings.Repeat("=", ruleWidth)
	lightRule = strings.Repeat("-", ruleWidth)
)

// ReportTextFormatter renders the full analysis report as plain text
type ReportTextFormatter struct{}

func (rtf *ReportTextFormatter) Format(data any) (string, error) {
	report, err := asPointer[types.Report](data)
	if err != nil {
		return "", err
	}
	doc, result := report.Document, report.Analysis
	if doc == nil || result == nil {
		return "", fmt.Errorf("report is missing its document or analysis")
	}

	var output strings.Builder
	section := func(title string) {
		output.WriteString("\n" + heavyRule + "\n")
		output.WriteString(title + ":\n")
		output.WriteString(lightRule + "\n")
	}

	output.WriteString(heavyRule + "\n")
	output.WriteString("ATS RESUME ANALYSIS REPORT\n")
	output.WriteString(heavyRule + "\n\n")
	output.WriteString(fmt.Sprintf("Generated: %s\n", result.AnalyzedAt.Format("2006-01-02 15:04:05")))
	output.WriteString(fmt.Sprintf("Analysis ID: %s\n", result.ID))
	output.WriteString(fmt.Sprintf("Candidate: %s\n\n", doc.Name))
	output.WriteString(heavyRule + "\n")
	output.WriteString(fmt.Sprintf("OVERALL SCORE: %.2f/100\n", result.OverallScore))
	output.WriteString(fmt.Sprintf("Rating: %s\n", result.Rating))
	output.WriteString(heavyRule + "\n\n")

	output.WriteString("DETAILED SCORES:\n")
	output.WriteString(lightRule + "\n")
	for _, key := range types.ScoreKeys {
		output.WriteString(fmt.Sprintf("%s %.2f/100\n", dotted(titleCase(key), labelWidth), result.Scores[key]))
	}

	section("CONTACT INFORMATION")
	output.WriteString(fmt.Sprintf("Email(s): %s\n", orNotFound(doc.Contact.Emails)))
	output.WriteString(fmt.Sprintf("Phone(s): %s\n", orNotFound(doc.Contact.Phones)))
	output.WriteString(fmt.Sprintf("LinkedIn: %s\n", stringOrNotFound(doc.Contact.LinkedIn)))
	output.WriteString(fmt.Sprintf("GitHub: %s\n", stringOrNotFound(doc.Contact.GitHub)))

	section("SKILLS ANALYSIS")
	for _, category := range slices.Sorted(maps.Keys(doc.Skills.Technical)) {
		output.WriteString(fmt.Sprintf("\n%s:\n  %s\n", titleCase(category), strings.Join(doc.Skills.Technical[category], ", ")))
	}
	if len(doc.Skills.Soft) > 0 {
		output.WriteString(fmt.Sprintf("\nSoft Skills:\n  %s\n", strings.Join(doc.Skills.Soft, ", ")))
	}
	if sm := result.SkillsMatch; sm != nil {
		output.WriteString("\n" + lightRule + "\n")
		output.WriteString(fmt.Sprintf("Skills Match Score: %.2f/100\n", sm.Score))
		output.WriteString(fmt.Sprintf("Matched Skills: %d\n", len(sm.MatchedSkills)))
		output.WriteString(fmt.Sprintf("Missing Skills: %d\n", len(sm.MissingSkills)))
		if len(sm.MissingSkills) > 0 {
			output.WriteString(fmt.Sprintf("\nMissing Skills (from Job Description):\n  %s\n", strings.Join(utils.Head(sm.MissingSkills, 10), ", ")))
		}
	}
	if km := result.KeywordMatch; km != nil {
		output.WriteString(fmt.Sprintf("Keyword Match: %d of %d job description keywords\n", len(km.MatchedKeywords), km.TotalJDKeywords))
	}

	section("SECTIONS DETECTED")
	for _, name := range slices.Sorted(maps.Keys(doc.Sections)) {
		status := "✗ Missing"
		if doc.Sections[name] {
			status = "✓ Present"
		}
		output.WriteString(fmt.Sprintf("%s %s\n", dotted(titleCase(name), labelWidth), status))
	}

	if fc := result.FormatCheck; fc != nil {
		section("FORMAT CHECK")
		output.WriteString(fmt.Sprintf("ATS-Friendly Score: %.2f/100\n", fc.Score))
		if fc.IsATSFriendly {
			output.WriteString("Status: ✓ ATS-Friendly\n")
		} else {
			output.WriteString("Status: ✗ Needs Improvement\n")
		}
		if len(fc.Issues) > 0 {
			output.WriteString("\nIssues Found:\n")
			for _, issue := range fc.Issues {
				output.WriteString(fmt.Sprintf("  • %s\n", issue))
			}
		}
	}

	if ca := result.CareerAnalysis; ca != nil {
		section("CAREER")
		output.WriteString(fmt.Sprintf("Seniority: %s\n", ca.SeniorityLevel))
		output.WriteString(fmt.Sprintf("Growth Score: %.0f/100\n", ca.GrowthScore))
		for _, gap := range ca.Gaps {
			output.WriteString(fmt.Sprintf("  • %s\n", gap))
		}
		for _, role := range result.RoleSuitability {
			output.WriteString(fmt.Sprintf("%s %.2f%%\n", dotted(role.Role, labelWidth), role.Suitability))
		}
	}

	section("STRENGTHS")
	if len(result.Strengths) > 0 {
		for _, strength := range result.Strengths {
			output.WriteString(fmt.Sprintf("  ✓ %s\n", strength))
		}
	} else {
		output.WriteString("  No significant strengths identified\n")
	}

	section("RECOMMENDATIONS")
	if len(result.Recommendations) > 0 {
		for i, rec := range result.Recommendations {
			output.WriteString(fmt.Sprintf("  %d. %s\n", i+1, rec))
		}
	} else {
		output.WriteString("  No recommendations - resume looks good!\n")
	}

	section("STATISTICS")
	output.WriteString(fmt.Sprintf("Total Words: %d\n", doc.Statistics.TotalWords))
	output.WriteString(fmt.Sprintf("Unique Words: %d\n", doc.Statistics.UniqueWords))
	output.WriteString(fmt.Sprintf("Sentences: %d\n", doc.Statistics.Sentences))

	output.WriteString("\n" + heavyRule + "\n")
	output.WriteString("END OF REPORT\n")
	output.WriteString(heavyRule + "\n")

	return output.String(), nil
}

func (rtf *ReportTextFormatter) SupportedType() string {
	return TypeReport
}

// ReportMarkdownFormatter renders the analysis report as markdown
type ReportMarkdownFormatter struct{}

func (rmf *ReportMarkdownFormatter) Format(data any) (string, error) {
	report, err := asPointer[types.Report](data)
	if err != nil {
		return "", err
	}
	doc, result := report.Document, report.Analysis
	if doc == nil || result == nil {
		return "", fmt.Errorf("report is missing its document or analysis")
	}

	var output strings.Builder

	output.WriteString("# ATS Resume Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Candidate:** %s  \n", doc.Name))
	output.WriteString(fmt.Sprintf("**Overall Score:** %.2f/100 (%s)\n\n", result.OverallScore, result.Rating))

	output.WriteString("## Scores\n\n")
	output.WriteString("| Category | Score |\n|---|---|\n")
	for _, key := range types.ScoreKeys {
		output.WriteString(fmt.Sprintf("| %s | %.2f |\n", titleCase(key), result.Scores[key]))
	}
	output.WriteString("\n")

	if sm := result.SkillsMatch; sm != nil && len(sm.MissingSkills) > 0 {
		output.WriteString("## Missing Skills\n\n")
		for _, skill := range sm.MissingSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	if km := result.KeywordMatch; km != nil && len(km.MissingKeywords) > 0 {
		output.WriteString("## Missing Keywords\n\n")
		output.WriteString(strings.Join(km.MissingKeywords, ", "))
		output.WriteString("\n\n")
	}

	if len(result.Strengths) > 0 {
		output.WriteString("## Strengths\n\n")
		for _, strength := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		output.WriteString("## Recommendations\n\n")
		for i, rec := range result.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
		output.WriteString("\n")
	}

	if ca := result.CareerAnalysis; ca != nil {
		output.WriteString("## Career\n\n")
		output.WriteString(fmt.Sprintf("- **Seniority:** %s\n", ca.SeniorityLevel))
		output.WriteString(fmt.Sprintf("- **Growth score:** %.0f\n", ca.GrowthScore))
		for _, gap := range ca.Gaps {
			output.WriteString(fmt.Sprintf("- %s\n", gap))
		}
		output.WriteString("\n")
	}

	if rm := result.CareerRoadmap; rm != nil {
		output.WriteString(fmt.Sprintf("### Next step: %s\n\n", rm.TargetNextLevel))
		for _, step := range rm.Steps {
			output.WriteString(fmt.Sprintf("- %s\n", step))
		}
	}

	return output.String(), nil
}

func (rmf *ReportMarkdownFormatter) SupportedType() string {
	return TypeReport
}
