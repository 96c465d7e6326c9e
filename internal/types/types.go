package types

import "time"

// NotFound is the sentinel used for text fields the parser could not extract.
const NotFound = "Not Found"

// ParsedDocument represents the structured data extracted from resume text
type ParsedDocument struct {
	Name       string          `json:"name"`
	Contact    ContactInfo     `json:"contact"`
	Skills     Skills          `json:"skills"`
	Education  Education       `json:"education"`
	Experience Experience      `json:"experience"`
	Timeline   Timeline        `json:"timeline"`
	Sections   map[string]bool `json:"sections"`
	Statistics Statistics      `json:"statistics"`
}

// ContactInfo holds the contact details found in the text.
// Emails and phones are de-duplicated in first-seen order.
type ContactInfo struct {
	Emails   []string `json:"emails"`
	Phones   []string `json:"phones"`
	LinkedIn string   `json:"linkedin,omitempty"`
	GitHub   string   `json:"github,omitempty"`
}

// Skills represents technical skills grouped by category plus soft skills
type Skills struct {
	Technical    map[string][]string `json:"technical"`
	AllTechnical []string            `json:"allTechnical"`
	Soft         []string            `json:"soft"`
}

// Education represents degree keywords and candidate graduation years
type Education struct {
	Degrees    []string `json:"degrees"`
	Years      []string `json:"years"`
	HasSection bool     `json:"hasSection"`
}

// KeywordCount is an experience keyword with its number of occurrences
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// Experience represents work-history signals found in the text
type Experience struct {
	YearsMentioned []string       `json:"yearsMentioned"`
	KeywordsFound  []KeywordCount `json:"keywordsFound"`
	DateRanges     []string       `json:"dateRanges"`
	DetectedTitles []string       `json:"detectedTitles"`
	HasSection     bool           `json:"hasSection"`
}

// MonthYear is a calendar month; Month is 1-12.
type MonthYear struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Index returns the month as a count of months since year zero.
func (m MonthYear) Index() int {
	return m.Year*12 + m.Month - 1
}

// Time returns the first day of the month in UTC.
func (m MonthYear) Time() time.Time {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC)
}

// Role is one normalized date range from the work history
type Role struct {
	Start  MonthYear `json:"start"`
	End    MonthYear `json:"end"`
	Months int       `json:"months"`
	Years  float64   `json:"years"`
}

// Timeline aggregates the valid roles found in the text
type Timeline struct {
	Roles                 []Role   `json:"roles"`
	TotalExperienceMonths int      `json:"totalExperienceMonths"`
	TotalYears            float64  `json:"totalYears"`
	Risks                 []string `json:"risks"`
}

// Statistics holds word and sentence counts
type Statistics struct {
	TotalWords  int `json:"totalWords"`
	UniqueWords int `json:"uniqueWords"`
	Sentences   int `json:"sentences"`
}
