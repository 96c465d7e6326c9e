package analyzer

import (
	"fmt"
	"strings"

	"atsresume/internal/types"
	"atsresume/internal/utils"
)

const (
	minMetrics             = 3
	minVerbs               = 5
	missingSkillsToList    = 5
	strongImpact           = 70
	strongFormat           = 90
	strongSkillsMatch      = 70
	extensiveSkillsMinimum = 15
)

// recommendations lists actionable advice in a fixed order. Duplicates are kept.
func recommendations(r *types.AnalysisResult, doc *types.ParsedDocument) []string {
	recs := []string{}

	if fc := r.FormatCheck; fc != nil {
		for _, issue := range fc.Issues {
			recs = append(recs, "URGENT: "+issue)
		}
		for _, warning := range fc.Warnings {
			recs = append(recs, "Warning: "+warning)
		}
	}

	if ia := r.ImpactAnalysis; ia != nil {
		if ia.MetricsFound < minMetrics {
			recs = append(recs, "Use more quantifiable metrics (%, $, numbers) to demonstrate your impact")
		}
		if ia.VerbsFound < minVerbs {
			recs = append(recs, "Start your bullet points with strong action verbs (e.g., 'Spearheaded', 'Optimized')")
		}
	}

	if sm := r.SkillsMatch; sm != nil && len(sm.MissingSkills) > 0 {
		top := utils.Head(sm.MissingSkills, missingSkillsToList)
		recs = append(recs, "Add these missing keywords: "+strings.Join(top, ", "))
	}

	if !doc.Sections["summary"] {
		recs = append(recs, "Add a powerful Professional Summary with 3-4 lines highlighting your USP")
	}
	return recs
}

func strengths(r *types.AnalysisResult, doc *types.ParsedDocument) []string {
	out := []string{}

	if r.Scores[types.ScoreImpact] >= strongImpact {
		out = append(out, "High-impact language and metrics used")
	}
	if r.Scores[types.ScoreFormatATSFriendly] >= strongFormat {
		out = append(out, "Perfect ATS-friendly formatting")
	}
	if r.SkillsMatch != nil && r.SkillsMatch.Score >= strongSkillsMatch {
		out = append(out, "Strong skills alignment with the job description")
	}
	if n := len(doc.Skills.AllTechnical); n >= extensiveSkillsMinimum {
		out = append(out, fmt.Sprintf("Extensive technical expertise (%d skills identified)", n))
	}
	return out
}
