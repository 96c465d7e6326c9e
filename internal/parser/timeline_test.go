package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atsresume/internal/types"
)

func TestExtractTimelineSingleRole(t *testing.T) {
	tl := ExtractTimeline("Engineer, Jan 2020 - Dec 2021", fixedNow)

	require.Len(t, tl.Roles, 1)
	role := tl.Roles[0]
	assert.Equal(t, types.MonthYear{Month: 1, Year: 2020}, role.Start)
	assert.Equal(t, types.MonthYear{Month: 12, Year: 2021}, role.End)
	assert.Equal(t, 23, role.Months)
	assert.Equal(t, 1.9, role.Years)
	assert.Equal(t, 23, tl.TotalExperienceMonths)
	assert.Equal(t, 1.9, tl.TotalYears)
	assert.Empty(t, tl.Risks)
}

func TestExtractTimelineFormats(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		months []int
	}{
		{"numeric months", "01/2019 to 03/2019", []int{2}},
		{"full month names", "September 2018 until March 2019", []int{6}},
		{"abbreviation with dot", "Sept. 2018 - Mar. 2019", []int{6}},
		{"present uses the clock", "Jan 2024 - Present", []int{5}},
		{"current and now", "Jan 2023 - current; 02/2024 - Now", []int{17, 4}},
		{"en dash", "Mar 2020 – Mar 2021", []int{12}},
		{"invalid month is skipped", "13/2020 - 01/2021", nil},
		{"zero length is skipped", "Jan 2020 - Jan 2020", nil},
		{"reversed range is skipped", "Dec 2021 - Jan 2020", nil},
		{"forty years is skipped", "Jan 1970 - Jan 2015", nil},
		{"mixed valid and invalid", "Feb 2015 - Feb 2016, 00/2017 - 05/2017", []int{12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := ExtractTimeline(tt.text, fixedNow)
			var got []int
			for _, r := range tl.Roles {
				got = append(got, r.Months)
			}
			assert.Equal(t, tt.months, got)
		})
	}
}

func TestExtractTimelineRisks(t *testing.T) {
	t.Run("job hopping", func(t *testing.T) {
		tl := ExtractTimeline("Jan 2020 - Jun 2020\nJul 2020 - Dec 2020\nJan 2021 - Apr 2021", fixedNow)
		require.Len(t, tl.Risks, 1)
		assert.Contains(t, tl.Risks[0], "Job Hopping")
		assert.Contains(t, tl.Risks[0], "3 roles")
	})

	t.Run("single short role is not hopping", func(t *testing.T) {
		tl := ExtractTimeline("Jan 2020 - Jun 2020", fixedNow)
		assert.Empty(t, tl.Risks)
	})

	t.Run("stability", func(t *testing.T) {
		tl := ExtractTimeline("Jan 2010 - Jan 2016\nFeb 2016 - Mar 2016", fixedNow)
		require.Len(t, tl.Risks, 1)
		assert.Equal(t, "Stability: a single role lasted 72 months", tl.Risks[0])
	})
}

func TestParseDateRange(t *testing.T) {
	start, end, ok := ParseDateRange("October 2020 to Present", fixedNow)
	require.True(t, ok)
	assert.Equal(t, types.MonthYear{Month: 10, Year: 2020}, start)
	assert.Equal(t, types.MonthYear{Month: 6, Year: 2024}, end)

	start, end, ok = ParseDateRange("Jun 2024 - Present", fixedNow)
	require.True(t, ok)
	assert.Equal(t, start, end)

	_, _, ok = ParseDateRange("sometime last year", fixedNow)
	assert.False(t, ok)
}
