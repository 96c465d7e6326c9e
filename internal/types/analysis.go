package types

import "time"

// Score names used as keys of AnalysisResult.Scores
const (
	ScoreKeywordMatch        = "keyword_match"
	ScoreSkillsMatch         = "skills_match"
	ScoreFormatATSFriendly   = "format_ats_friendly"
	ScoreImpact              = "impact_score"
	ScoreCompleteness        = "completeness"
	ScoreExperienceRelevance = "experience_relevance"
	ScoreEducation           = "education"
)

// ScoreKeys lists every score name in reporting order.
var ScoreKeys = []string{
	ScoreKeywordMatch,
	ScoreSkillsMatch,
	ScoreFormatATSFriendly,
	ScoreImpact,
	ScoreCompleteness,
	ScoreExperienceRelevance,
	ScoreEducation,
}

// Rating labels
const (
	RatingExcellent        = "Excellent"
	RatingGood             = "Good"
	RatingFair             = "Fair"
	RatingNeedsImprovement = "Needs Improvement"
)

// AnalysisResult represents the complete output of the scoring engine
type AnalysisResult struct {
	ID              string             `json:"id"`
	AnalyzedAt      time.Time          `json:"analyzedAt"`
	Scores          map[string]float64 `json:"scores"`
	OverallScore    float64            `json:"overallScore"`
	Rating          string             `json:"rating"`
	Recommendations []string           `json:"recommendations"`
	Strengths       []string           `json:"strengths"`

	KeywordMatch    *KeywordMatch     `json:"keywordMatch,omitempty"`
	SkillsMatch     *SkillsMatch      `json:"skillsMatch,omitempty"`
	FormatCheck     *FormatCheck      `json:"formatCheck,omitempty"`
	ImpactAnalysis  *ImpactAnalysis   `json:"impactAnalysis,omitempty"`
	Readability     *Readability      `json:"readability,omitempty"`
	ToneAnalysis    *ToneAnalysis     `json:"toneAnalysis,omitempty"`
	CareerAnalysis  *CareerAnalysis   `json:"careerAnalysis,omitempty"`
	LinkValidation  []LinkStatus      `json:"linkValidation,omitempty"`
	RoleSuitability []RoleSuitability `json:"roleSuitability,omitempty"`
	CareerRoadmap   *CareerRoadmap    `json:"careerRoadmap,omitempty"`
}

// KeywordMatch reports job-description keyword coverage
type KeywordMatch struct {
	Score           float64  `json:"score"`
	MatchedKeywords []string `json:"matchedKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
	TotalJDKeywords int      `json:"totalJdKeywords"`
}

// SkillsMatch reports vocabulary skill coverage against the job description
type SkillsMatch struct {
	Score          float64  `json:"score"`
	MatchedSkills  []string `json:"matchedSkills"`
	RequiredSkills []string `json:"requiredSkills"`
	MissingSkills  []string `json:"missingSkills"`
}

// FormatCheck reports ATS formatting problems
type FormatCheck struct {
	Score         float64  `json:"score"`
	Issues        []string `json:"issues"`
	Warnings      []string `json:"warnings"`
	IsATSFriendly bool     `json:"isAtsFriendly"`
}

// ImpactAnalysis reports action verb and metric usage
type ImpactAnalysis struct {
	Score         float64  `json:"score"`
	VerbsFound    int      `json:"verbsFound"`
	MetricsFound  int      `json:"metricsFound"`
	FoundVerbs    []string `json:"foundVerbs"`
	MetricsSample []string `json:"metricsSample"`
}

// Readability holds Flesch-family readability metrics
type Readability struct {
	FleschReadingEase float64 `json:"fleschReadingEase"`
	GradeLevel        float64 `json:"gradeLevel"`
	ReadingTime       float64 `json:"readingTimeSeconds"`
	WordCount         int     `json:"wordCount"`
}

// ToneAnalysis reports passive and weak phrasing
type ToneAnalysis struct {
	Score                 float64  `json:"score"`
	PassiveSentencesCount int      `json:"passiveSentencesCount"`
	Samples               []string `json:"samples"`
}

// CareerAnalysis reports gaps, seniority and growth
type CareerAnalysis struct {
	Gaps              []string `json:"gaps"`
	SeniorityLevel    string   `json:"seniorityLevel"`
	GrowthScore       float64  `json:"growthScore"`
	CareerProgression []string `json:"careerProgression"`
}

// Link statuses
const (
	LinkActive  = "Active"
	LinkBroken  = "Broken"
	LinkTimeout = "Timeout/Error"
)

// Link is a profile URL to check
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// LinkStatus is the liveness result for one link
type LinkStatus struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

// RoleSuitability scores the fit against one reference role
type RoleSuitability struct {
	Role              string   `json:"role"`
	Suitability       float64  `json:"suitability"`
	MatchedCoreSkills []string `json:"matchedCoreSkills"`
}

// CareerRoadmap is the next-step advice for the detected seniority tier
type CareerRoadmap struct {
	TargetNextLevel string   `json:"targetNextLevel"`
	Steps           []string `json:"steps"`
}

// Report bundles a parsed document with its analysis for rendering
type Report struct {
	Document *ParsedDocument `json:"document"`
	Analysis *AnalysisResult `json:"analysis"`
}

// CoverLetter is the output of the cover letter generator
type CoverLetter struct {
	Name   string `json:"name"`
	Letter string `json:"coverLetter"`
}

// CleanText is ATS-safe plain text derived from a resume
type CleanText struct {
	Text             string `json:"text"`
	RemovedSequences int    `json:"removedSequences"`
}
