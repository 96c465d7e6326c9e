package analyzer

import (
	"slices"
	"strings"

	"atsresume/internal/textmatch"
	"atsresume/internal/types"
	"atsresume/internal/utils"
)

// neutralSkillsScore is used when the job description names no known skill.
const neutralSkillsScore = 50

// SkillsMatch compares the resume's skills with the vocabulary skills the job
// description mentions. Every vocabulary skill found in the job description
// counts as required, including the ones the resume already has.
func SkillsMatch(skills types.Skills, jd string, vocabSkills []textmatch.Term) *types.SkillsMatch {
	jdLower := strings.ToLower(jd)

	resumeSkills := utils.Dedupe(append(slices.Clone(skills.AllTechnical), skills.Soft...))
	matched := []string{}
	for _, s := range resumeSkills {
		if textmatch.ContainsPhrase(jdLower, s) {
			matched = append(matched, s)
		}
	}

	required := utils.Dedupe(textmatch.Found(vocabSkills, jdLower))
	missing := []string{}
	for _, s := range required {
		if !slices.Contains(matched, s) {
			missing = append(missing, s)
		}
	}

	score := float64(neutralSkillsScore)
	if len(required) > 0 {
		score = utils.Clamp(utils.Round(float64(len(matched))/float64(len(required))*100, 2), 0, 100)
	}

	return &types.SkillsMatch{
		Score:          score,
		MatchedSkills:  matched,
		RequiredSkills: required,
		MissingSkills:  missing,
	}
}
