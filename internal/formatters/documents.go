package formatters

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"atsresume/internal/types"
)

// DocumentTextFormatter renders the parsed resume fields
type DocumentTextFormatter struct{}

func (dtf *DocumentTextFormatter) Format(data any) (string, error) {
	doc, err := asPointer[types.ParsedDocument](data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("=== PARSED RESUME ===\n\n")
	output.WriteString(fmt.Sprintf("Name: %s\n", doc.Name))
	output.WriteString(fmt.Sprintf("Email(s): %s\n", orNotFound(doc.Contact.Emails)))
	output.WriteString(fmt.Sprintf("Phone(s): %s\n", orNotFound(doc.Contact.Phones)))
	output.WriteString(fmt.Sprintf("LinkedIn: %s\n", stringOrNotFound(doc.Contact.LinkedIn)))
	output.WriteString(fmt.Sprintf("GitHub: %s\n\n", stringOrNotFound(doc.Contact.GitHub)))

	output.WriteString("=== SKILLS ===\n")
	for _, category := range slices.Sorted(maps.Keys(doc.Skills.Technical)) {
		output.WriteString(fmt.Sprintf("%s: %s\n", titleCase(category), strings.Join(doc.Skills.Technical[category], ", ")))
	}
	output.WriteString(fmt.Sprintf("Soft Skills: %s\n\n", orNotFound(doc.Skills.Soft)))

	output.WriteString("=== EDUCATION ===\n")
	output.WriteString(fmt.Sprintf("Keywords: %s\n", orNotFound(doc.Education.Degrees)))
	output.WriteString(fmt.Sprintf("Years: %s\n\n", orNotFound(doc.Education.Years)))

	output.WriteString("=== EXPERIENCE ===\n")
	output.WriteString(fmt.Sprintf("Titles: %s\n", orNotFound(doc.Experience.DetectedTitles)))
	output.WriteString(fmt.Sprintf("Date Ranges: %s\n", orNotFound(doc.Experience.DateRanges)))
	output.WriteString(fmt.Sprintf("Total Experience: %.1f years across %d roles\n", doc.Timeline.TotalYears, len(doc.Timeline.Roles)))
	for _, risk := range doc.Timeline.Risks {
		output.WriteString(fmt.Sprintf("  ! %s\n", risk))
	}
	output.WriteString("\n")

	output.WriteString("=== SECTIONS ===\n")
	for _, name := range slices.Sorted(maps.Keys(doc.Sections)) {
		mark := "✗"
		if doc.Sections[name] {
			mark = "✓"
		}
		output.WriteString(fmt.Sprintf("%s %s\n", mark, titleCase(name)))
	}

	output.WriteString(fmt.Sprintf("\nWords: %d (unique %d), sentences: %d\n",
		doc.Statistics.TotalWords, doc.Statistics.UniqueWords, doc.Statistics.Sentences))

	return output.String(), nil
}

func (dtf *DocumentTextFormatter) SupportedType() string {
	return TypeParsedDocument
}

// CoverLetterTextFormatter prints the letter body only
type CoverLetterTextFormatter struct{}

func (ctf *CoverLetterTextFormatter) Format(data any) (string, error) {
	letter, err := asPointer[types.CoverLetter](data)
	if err != nil {
		return "", err
	}
	return letter.Letter + "\n", nil
}

func (ctf *CoverLetterTextFormatter) SupportedType() string {
	return TypeCoverLetter
}

// CleanTextFormatter prints the cleaned text only
type CleanTextFormatter struct{}

func (ctf *CleanTextFormatter) Format(data any) (string, error) {
	clean, err := asPointer[types.CleanText](data)
	if err != nil {
		return "", err
	}
	return clean.Text + "\n", nil
}

func (ctf *CleanTextFormatter) SupportedType() string {
	return TypeCleanText
}
