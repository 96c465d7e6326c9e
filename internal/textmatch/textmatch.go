// Package textmatch provides the whole-word and token matching primitives shared
// by the parser and the scoring engine. All matching is done against
// lower-cased text.
package textmatch

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Term is a vocabulary entry with its lower-cased match form.
type Term struct {
	Text  string
	lower string
}

// Compile prepares a list of terms, preserving order.
func Compile(terms []string) []Term {
	out := make([]Term, 0, len(terms))
	for _, t := range terms {
		out = append(out, Term{Text: t, lower: strings.ToLower(t)})
	}
	return out
}

// In reports whether the term occurs as a whole word in lower.
func (t Term) In(lower string) bool {
	return len(wholeWordIndex(lower, t.lower, 1)) > 0
}

// Count returns the number of non-overlapping whole-word occurrences in lower.
func (t Term) Count(lower string) int {
	return len(wholeWordIndex(lower, t.lower, -1))
}

// wholeWordIndex returns the leftmost non-overlapping occurrences of needle in
// s that sit on word boundaries, up to n of them (all when n < 0). A boundary
// is a change between word and non-word runes, where letters, digits and
// underscore of any script are word runes. This is \b with Unicode classes.
func wholeWordIndex(s, needle string, n int) [][2]int {
	if needle == "" {
		return nil
	}
	var hits [][2]int
	for pos := 0; pos <= len(s)-len(needle) && n != 0; {
		i := strings.Index(s[pos:], needle)
		if i < 0 {
			break
		}
		start, end := pos+i, pos+i+len(needle)
		if atBoundary(s, start) && atBoundary(s, end) {
			hits = append(hits, [2]int{start, end})
			pos = end
			n--
			continue
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		pos = start + size
	}
	return hits
}

// atBoundary reports whether the word-ness of the runes on either side of i differs.
func atBoundary(s string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = isWordRune(r)
	}
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = isWordRune(r)
	}
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Found returns the terms present in lower, in declaration order.
func Found(terms []Term, lower string) []string {
	var found []string
	for _, t := range terms {
		if t.In(lower) {
			found = append(found, t.Text)
		}
	}
	return found
}

// AnyIn reports whether any term occurs in lower.
func AnyIn(terms []Term, lower string) bool {
	for _, t := range terms {
		if t.In(lower) {
			return true
		}
	}
	return false
}

// ContainsPhrase reports whether phrase occurs in lower bounded by word boundaries.
func ContainsPhrase(lower, phrase string) bool {
	return len(wholeWordIndex(lower, strings.ToLower(phrase), 1)) > 0
}

// Tokens splits text into lower-cased alphanumeric runs.
func Tokens(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}
