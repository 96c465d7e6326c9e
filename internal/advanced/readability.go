// Package advanced holds the secondary resume analyses: readability, tone,
// career path, role fit and the text generators built on top of a parsed
// document. Each function is pure and tolerates empty input.
package advanced

import (
	"regexp"
	"strings"
	"unicode"

	"atsresume/internal/types"
	"atsresume/internal/utils"
)

const (
	msPerChar = 14.69

	// Sentence fragments this short are ignored when counting sentences.
	minSentenceWords = 3
)

var (
	sentencePattern = regexp.MustCompile(`\b[^.!?]+[.!?]*`)
	vowelGroups     = regexp.MustCompile(`[aeiouy]+`)
)

// Readability computes Flesch reading ease, Flesch-Kincaid grade level and an
// estimated reading time in seconds.
func Readability(text string) *types.Readability {
	words := lexicon(text)
	if len(words) == 0 {
		return &types.Readability{}
	}

	syllables := 0
	for _, w := range words {
		syllables += syllableCount(w)
	}

	asl := float64(len(words)) / float64(sentenceCount(text))
	asw := float64(syllables) / float64(len(words))

	return &types.Readability{
		FleschReadingEase: utils.Round(206.835-1.015*asl-84.6*asw, 2),
		GradeLevel:        utils.Round(0.39*asl+11.8*asw-15.59, 2),
		ReadingTime:       readingTime(text),
		WordCount:         len(words),
	}
}

// lexicon returns the whitespace-separated words of text with punctuation removed.
func lexicon(text string) []string {
	var words []string
	for _, f := range strings.Fields(text) {
		w := strings.Map(func(r rune) rune {
			if unicode.IsPunct(r) || unicode.IsSymbol(r) {
				return -1
			}
			return r
		}, f)
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

func sentenceCount(text string) int {
	sentences := sentencePattern.FindAllString(text, -1)
	ignored := 0
	for _, s := range sentences {
		if len(lexicon(s)) < minSentenceWords {
			ignored++
		}
	}
	return max(1, len(sentences)-ignored)
}

// syllableCount estimates syllables as vowel groups, discounting a silent
// trailing "e". Every word has at least one syllable.
func syllableCount(word string) int {
	w := strings.ToLower(word)
	n := len(vowelGroups.FindAllStringIndex(w, -1))
	if n > 1 && strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") {
		n--
	}
	return max(1, n)
}

func readingTime(text string) float64 {
	chars := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			chars++
		}
	}
	return utils.Round(float64(chars)*msPerChar/1000, 2)
}
