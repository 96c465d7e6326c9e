package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"atsresume/internal/types"
	"atsresume/internal/utils"
)

const (
	barWidth       = 20
	summaryItems   = 5
	summaryPadding = 24
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	fairStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	poorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)
)

// renderSummary prints the headline numbers of a report for the terminal
func renderSummary(report *types.Report) string {
	a := report.Analysis

	header := fmt.Sprintf("%s\n%s %s  %s",
		titleStyle.Render("ATS Resume Analysis"),
		scoreStyle(a.OverallScore).Render(fmt.Sprintf("%.1f/100", a.OverallScore)),
		scoreBar(a.OverallScore),
		scoreStyle(a.OverallScore).Render(a.Rating))

	var b strings.Builder
	b.WriteString(boxStyle.Render(header))
	b.WriteString("\n\n")

	b.WriteString(headingStyle.Render("Scores") + "\n")
	for _, key := range types.ScoreKeys {
		score := a.Scores[key]
		fmt.Fprintf(&b, "  %-*s %s %5.1f\n", summaryPadding, key, scoreBar(score), score)
	}

	if a.KeywordMatch != nil {
		b.WriteString("\n" + headingStyle.Render("Keywords") + "\n")
		writeList(&b, "matched", a.KeywordMatch.MatchedKeywords, goodStyle)
		writeList(&b, "missing", a.KeywordMatch.MissingKeywords, poorStyle)
	}

	writeSection(&b, "Strengths", a.Strengths, goodStyle)
	writeSection(&b, "Recommendations", a.Recommendations, fairStyle)

	if a.CareerAnalysis != nil {
		b.WriteString("\n" + headingStyle.Render("Career") + "\n")
		fmt.Fprintf(&b, "  seniority: %s\n", a.CareerAnalysis.SeniorityLevel)
		if len(a.RoleSuitability) > 0 {
			top := a.RoleSuitability[0]
			fmt.Fprintf(&b, "  best fit:  %s (%.1f%%)\n", top.Role, top.Suitability)
		}
	}

	b.WriteString("\n" + mutedStyle.Render("Use --format json for the full report") + "\n")
	return b.String()
}

func writeSection(b *strings.Builder, title string, items []string, style lipgloss.Style) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n" + headingStyle.Render(title) + "\n")
	for _, item := range utils.Head(items, summaryItems) {
		b.WriteString("  " + style.Render("•") + " " + item + "\n")
	}
}

func writeList(b *strings.Builder, label string, items []string, style lipgloss.Style) {
	value := mutedStyle.Render("none")
	if len(items) > 0 {
		value = style.Render(strings.Join(utils.Head(items, summaryItems*2), ", "))
	}
	fmt.Fprintf(b, "  %s: %s\n", label, value)
}

// scoreBar draws a fixed-width bar filled in proportion to a 0-100 score
func scoreBar(score float64) string {
	filled := int(math.Round(utils.Clamp(score, 0, 100) / 100 * barWidth))
	return scoreStyle(score).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))
}

func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 70:
		return goodStyle
	case score >= 50:
		return fairStyle
	default:
		return poorStyle
	}
}
