package advanced

import (
	"strings"

	"atsresume/internal/types"
	"atsresume/internal/utils"
)

const (
	coverLetterSkills = 5
	fallbackSkills    = "various professional skills"
	fallbackExpertise = "industry standard practices"
	fallbackName      = "Candidate"
)

// CoverLetter fills the standard cover letter template with the candidate's
// name and leading skills.
func CoverLetter(name string, skills []string) *types.CoverLetter {
	if name == "" || name == types.NotFound {
		name = fallbackName
	}

	top := utils.Head(skills, coverLetterSkills)
	skillsStr, expertise := fallbackSkills, fallbackExpertise
	if len(top) > 0 {
		skillsStr = strings.Join(top, ", ")
		expertise = top[0]
	}

	var b strings.Builder
	b.WriteString("Dear Hiring Manager,\n\n")
	b.WriteString("I am writing to express my enthusiastic interest in the position as advertised. ")
	b.WriteString("With a strong background in " + skillsStr + ", I am confident that I can contribute effectively to your team.\n\n")
	b.WriteString("Throughout my career, I have focused on delivering high-quality results and continuous improvement. ")
	b.WriteString("My expertise in " + expertise + " aligns well with the requirements mentioned in your job description.\n\n")
	b.WriteString("I am particularly impressed by your company's commitment to excellence and would welcome the opportunity ")
	b.WriteString("to discuss how my skills and experiences can benefit your organization.\n\n")
	b.WriteString("Sincerely,\n" + name)

	return &types.CoverLetter{Name: name, Letter: b.String()}
}
