package parser

import (
	"regexp"
	"strings"

	"atsresume/internal/textmatch"
	"atsresume/internal/types"
	"atsresume/internal/utils"
)

const maxTitles = 10

var (
	yearPattern            = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	experienceYearsPattern = regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?)(?:\s+of)?\s+(?:experience|exp|working|industry)`)
	plusYearsPattern       = regexp.MustCompile(`(\d+)\+\s*(?:years?|yrs?)`)
	dateRangePattern       = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{4}\s*(?:-|to|until)\s*(?:present|(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{4})`)
	sentenceEndPattern     = regexp.MustCompile(`[.!?]+`)
)

// extractSkills tests each vocabulary skill as a whole word. Empty categories are omitted.
func (p *Parser) extractSkills(lower string) types.Skills {
	skills := types.Skills{
		Technical:    map[string][]string{},
		AllTechnical: []string{},
		Soft:         []string{},
	}

	for _, c := range p.categories {
		found := textmatch.Found(c.terms, lower)
		if len(found) == 0 {
			continue
		}
		skills.Technical[c.name] = found
		skills.AllTechnical = append(skills.AllTechnical, found...)
	}
	skills.AllTechnical = utils.Dedupe(skills.AllTechnical)

	if soft := textmatch.Found(p.soft, lower); soft != nil {
		skills.Soft = soft
	}
	return skills
}

func (p *Parser) extractEducation(text, lower string, sections map[string]bool) types.Education {
	var years []string
	for _, m := range yearPattern.FindAllStringSubmatch(text, -1) {
		years = append(years, m[1])
	}

	return types.Education{
		Degrees:    utils.Dedupe(textmatch.Found(p.education, lower)),
		Years:      utils.Dedupe(years),
		HasSection: sections["education"],
	}
}

func (p *Parser) extractExperience(text, lower string, sections map[string]bool) types.Experience {
	exp := types.Experience{
		YearsMentioned: YearsOfExperience(lower),
		KeywordsFound:  []types.KeywordCount{},
		DateRanges:     dateRangePattern.FindAllString(text, -1),
		DetectedTitles: DetectTitles(text, p.vocab.TitleKeywords),
		HasSection:     sections["experience"],
	}
	if exp.DateRanges == nil {
		exp.DateRanges = []string{}
	}

	for _, kw := range p.experienceKws {
		if n := kw.Count(lower); n > 0 {
			exp.KeywordsFound = append(exp.KeywordsFound, types.KeywordCount{Keyword: kw.Text, Count: n})
		}
	}
	return exp
}

// YearsOfExperience returns the numbers from phrases like "5 years of experience".
// When none are present it falls back to bare "N+ years" mentions anywhere.
func YearsOfExperience(lower string) []string {
	years := []string{}
	for _, m := range experienceYearsPattern.FindAllStringSubmatch(lower, -1) {
		years = append(years, m[1])
	}
	if len(years) > 0 {
		return years
	}
	for _, m := range plusYearsPattern.FindAllStringSubmatch(lower, -1) {
		years = append(years, m[1])
	}
	return years
}

// DetectTitles returns up to ten trimmed lines that contain a title keyword
// (case-sensitive) and have fewer than six words. It does not look at layout,
// so short bullet points such as "Worked with the Lead" also qualify.
func DetectTitles(text string, keywords []string) []string {
	titles := []string{}
	for _, line := range strings.Split(text, "\n") {
		if len(strings.Fields(line)) >= 6 || !containsAny(line, keywords) {
			continue
		}
		titles = append(titles, strings.TrimSpace(line))
		if len(titles) == maxTitles {
			break
		}
	}
	return titles
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// WordStatistics counts whitespace-delimited words, distinct words
// (case-sensitive) and runs of sentence-ending punctuation.
func WordStatistics(text string) types.Statistics {
	words := strings.Fields(text)
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	return types.Statistics{
		TotalWords:  len(words),
		UniqueWords: len(unique),
		Sentences:   len(sentenceEndPattern.FindAllStringIndex(text, -1)),
	}
}
