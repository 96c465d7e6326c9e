package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"atsresume/internal/types"
	"atsresume/internal/utils"
)

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedInPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	gitHubPattern   = regexp.MustCompile(`(?i)github\.com/[\w-]+`)
)

// ExtractName returns the first of the leading five lines that looks like a
// name: at most four words, more than three characters, no digits and no "@".
//
// Resumes that open with a contact line or a decorative banner defeat this
// heuristic and yield whichever short line comes first.
func ExtractName(text string) string {
	lines := strings.Split(text, "\n")
	for _, line := range utils.Head(lines, 5) {
		line = strings.TrimSpace(line)
		if line == "" || len(strings.Fields(line)) > 4 || utf8.RuneCountInString(line) <= 3 {
			continue
		}
		if strings.ContainsFunc(line, func(r rune) bool { return r == '@' || unicode.IsDigit(r) }) {
			continue
		}
		return line
	}
	return types.NotFound
}

// ExtractContact finds e-mail addresses, phone numbers and profile links.
func ExtractContact(text string) types.ContactInfo {
	contact := types.ContactInfo{
		Emails: utils.Dedupe(emailPattern.FindAllString(text, -1)),
	}

	var phones []string
	for _, m := range phonePattern.FindAllString(text, -1) {
		phones = append(phones, strings.TrimSpace(m))
	}
	contact.Phones = utils.Dedupe(phones)

	if m := linkedInPattern.FindString(text); m != "" {
		contact.LinkedIn = m
	}
	if m := gitHubPattern.FindString(text); m != "" {
		contact.GitHub = m
	}

	return contact
}
