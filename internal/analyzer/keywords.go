package analyzer

import (
	"slices"
	"strings"
	"unicode/utf8"

	"atsresume/internal/textmatch"
	"atsresume/internal/types"
	"atsresume/internal/utils"
	"atsresume/internal/vocabulary"
)

const (
	maxMatchedKeywords = 30
	maxMissingKeywords = 20
	minKeywordLength   = 3
)

type candidate struct {
	text   string
	weight int
	order  int
}

// KeywordMatch scores how much of the job description's vocabulary appears in
// the resume. Candidates are non-stop-word unigrams longer than two
// characters plus 2- and 3-grams free of stop words; each is weighted by how
// often it occurs in the job description.
func KeywordMatch(resumeLower, jd string, vocab *vocabulary.Vocabulary) *types.KeywordMatch {
	report := &types.KeywordMatch{MatchedKeywords: []string{}, MissingKeywords: []string{}}

	candidates := keywordCandidates(textmatch.Tokens(jd), vocab)
	if len(candidates) == 0 {
		return report
	}

	var matched, missing []candidate
	total, earned := 0, 0
	for _, c := range candidates {
		total += c.weight
		if textmatch.ContainsPhrase(resumeLower, c.text) {
			earned += c.weight
			matched = append(matched, c)
		} else {
			missing = append(missing, c)
		}
	}

	report.Score = utils.Round(float64(earned)/float64(total)*100, 2)
	report.MatchedKeywords = topKeywords(matched, maxMatchedKeywords)
	report.MissingKeywords = topKeywords(missing, maxMissingKeywords)
	report.TotalJDKeywords = len(candidates)
	return report
}

// keywordCandidates returns the distinct candidates in first-appearance order,
// unigrams before n-grams.
func keywordCandidates(tokens []string, vocab *vocabulary.Vocabulary) []candidate {
	freq := make(map[string]int)
	var singles, phrases []string

	for _, tok := range tokens {
		if vocab.IsStopWord(tok) || utf8.RuneCountInString(tok) < minKeywordLength {
			continue
		}
		singles = append(singles, tok)
		freq[tok]++
	}

	for _, n := range []int{2, 3} {
		for i := 0; i+n <= len(tokens); i++ {
			gram := tokens[i : i+n]
			phrase := strings.Join(gram, " ")
			freq[phrase]++
			if !slices.ContainsFunc(gram, vocab.IsStopWord) {
				phrases = append(phrases, phrase)
			}
		}
	}

	seen := make(map[string]bool)
	var out []candidate
	for _, kw := range append(singles, phrases...) {
		if seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, candidate{text: kw, weight: max(freq[kw], 1), order: len(out)})
	}
	return out
}

func topKeywords(cands []candidate, n int) []string {
	slices.SortStableFunc(cands, func(a, b candidate) int {
		if a.weight != b.weight {
			return b.weight - a.weight
		}
		return a.order - b.order
	})

	out := make([]string, 0, min(len(cands), n))
	for _, c := range utils.Head(cands, n) {
		out = append(out, c.text)
	}
	return out
}
