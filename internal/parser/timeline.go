package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"atsresume/internal/types"
	"atsresume/internal/utils"
)

const (
	// maxRoleMonths bounds a plausible single role; longer spans are treated as malformed.
	maxRoleMonths = 480

	jobHoppingTenureMonths = 12
	stabilityTenureMonths  = 60
)

const (
	monthNameExpr = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}`
	numericExpr   = `\d{1,2}/\d{4}`
)

var timelinePattern = regexp.MustCompile(`(?i)\b(` + monthNameExpr + `|` + numericExpr + `)\s*(?:-|–|—|to|until)\s*(` +
	monthNameExpr + `|` + numericExpr + `|present|current|now)\b`)

var monthIndex = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// ExtractTimeline parses every date range in text into roles.
//
// Durations use exclusive month arithmetic: Jan 2020 - Dec 2021 is 23 months.
// Ranges that fail to parse, or whose duration is not within (0, 480) months,
// are skipped.
func ExtractTimeline(text string, now time.Time) types.Timeline {
	timeline := types.Timeline{Roles: []types.Role{}, Risks: []string{}}

	for _, m := range timelinePattern.FindAllStringSubmatch(text, -1) {
		role, ok := buildRole(m[1], m[2], now)
		if !ok {
			continue
		}
		timeline.Roles = append(timeline.Roles, role)
		timeline.TotalExperienceMonths += role.Months
	}
	timeline.TotalYears = utils.Round(float64(timeline.TotalExperienceMonths)/12, 1)
	timeline.Risks = timelineRisks(timeline)

	return timeline
}

// ParseDateRange parses a single "start - end" expression into its bounds
// without applying any duration checks.
func ParseDateRange(s string, now time.Time) (start, end types.MonthYear, ok bool) {
	m := timelinePattern.FindStringSubmatch(s)
	if m == nil {
		return start, end, false
	}
	return parseBounds(m[1], m[2], now)
}

func parseBounds(startExpr, endExpr string, now time.Time) (start, end types.MonthYear, ok bool) {
	if start, ok = parseMonthYear(startExpr); !ok {
		return start, end, false
	}

	switch strings.ToLower(endExpr) {
	case "present", "current", "now":
		end = types.MonthYear{Month: int(now.Month()), Year: now.Year()}
	default:
		if end, ok = parseMonthYear(endExpr); !ok {
			return start, end, false
		}
	}
	return start, end, true
}

func buildRole(startExpr, endExpr string, now time.Time) (types.Role, bool) {
	start, end, ok := parseBounds(startExpr, endExpr, now)
	if !ok {
		return types.Role{}, false
	}

	months := end.Index() - start.Index()
	if months <= 0 || months >= maxRoleMonths {
		return types.Role{}, false
	}

	return types.Role{
		Start:  start,
		End:    end,
		Months: months,
		Years:  utils.Round(float64(months)/12, 1),
	}, true
}

// parseMonthYear accepts "Mon YYYY", "Month YYYY" or "MM/YYYY".
func parseMonthYear(s string) (types.MonthYear, bool) {
	s = strings.TrimSpace(strings.ToLower(s))

	if before, after, found := strings.Cut(s, "/"); found {
		month, err1 := strconv.Atoi(before)
		year, err2 := strconv.Atoi(after)
		if err1 != nil || err2 != nil || month < 1 || month > 12 {
			return types.MonthYear{}, false
		}
		return types.MonthYear{Month: month, Year: year}, true
	}

	fields := strings.Fields(s)
	if len(fields) != 2 || len(fields[0]) < 3 {
		return types.MonthYear{}, false
	}
	month, ok := monthIndex[fields[0][:3]]
	if !ok {
		return types.MonthYear{}, false
	}
	year, err := strconv.Atoi(fields[1])
	if err != nil {
		return types.MonthYear{}, false
	}
	return types.MonthYear{Month: month, Year: year}, true
}

func timelineRisks(t types.Timeline) []string {
	risks := []string{}
	if len(t.Roles) > 1 {
		mean := float64(t.TotalExperienceMonths) / float64(len(t.Roles))
		if mean < jobHoppingTenureMonths {
			risks = append(risks, fmt.Sprintf("Job Hopping: average tenure of %.1f months across %d roles", mean, len(t.Roles)))
		}
	}

	longest := 0
	for _, r := range t.Roles {
		longest = max(longest, r.Months)
	}
	if longest > stabilityTenureMonths {
		risks = append(risks, fmt.Sprintf("Stability: a single role lasted %d months", longest))
	}
	return risks
}
