package advanced

import (
	"regexp"

	"atsresume/internal/types"
)

var nonASCIIPattern = regexp.MustCompile(`[^\x00-\x7F]+`)

// CleanText replaces every run of non-ASCII characters with a single space so
// the text survives older ATS parsers.
func CleanText(text string) *types.CleanText {
	removed := 0
	cleaned := nonASCIIPattern.ReplaceAllStringFunc(text, func(string) string {
		removed++
		return " "
	})
	return &types.CleanText{Text: cleaned, RemovedSequences: removed}
}
