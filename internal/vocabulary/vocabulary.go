// Package vocabulary holds the dictionaries, weights and thresholds that drive
// parsing and scoring. A Vocabulary is treated as immutable once built; callers
// that need different data construct a new one.
package vocabulary

import (
	"fmt"
	"log"
	"math"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"atsresume/internal/errors"
	"atsresume/internal/types"
)

// Category is a named group of technical skills
type Category struct {
	Name   string   `mapstructure:"name" json:"name"`
	Skills []string `mapstructure:"skills" json:"skills"`
}

// Section is a canonical resume section and the header words that signal it
type Section struct {
	Name     string   `mapstructure:"name" json:"name"`
	Synonyms []string `mapstructure:"synonyms" json:"synonyms"`
}

// RoleProfile is a reference job role with its core skill fragments
type RoleProfile struct {
	Name   string   `mapstructure:"name" json:"name"`
	Skills []string `mapstructure:"skills" json:"skills"`
}

// Rank maps a title keyword to a seniority level
type Rank struct {
	Keyword string `mapstructure:"keyword" json:"keyword"`
	Level   int    `mapstructure:"level" json:"level"`
}

// Thresholds are the lower bounds of each rating band
type Thresholds struct {
	Excellent float64 `mapstructure:"excellent" json:"excellent"`
	Good      float64 `mapstructure:"good" json:"good"`
	Fair      float64 `mapstructure:"fair" json:"fair"`
}

// Vocabulary is the read-only configuration shared by the parser and the scoring engine
type Vocabulary struct {
	Version            string             `mapstructure:"version" json:"version"`
	TechnicalSkills    []Category         `mapstructure:"technicalSkills" json:"technicalSkills"`
	SoftSkills         []string           `mapstructure:"softSkills" json:"softSkills"`
	EducationKeywords  []string           `mapstructure:"educationKeywords" json:"educationKeywords"`
	ExperienceKeywords []string           `mapstructure:"experienceKeywords" json:"experienceKeywords"`
	SectionHeaders     []Section          `mapstructure:"sectionHeaders" json:"sectionHeaders"`
	TitleKeywords      []string           `mapstructure:"titleKeywords" json:"titleKeywords"`
	ActionVerbs        []string           `mapstructure:"actionVerbs" json:"actionVerbs"`
	StopWords          []string           `mapstructure:"stopWords" json:"stopWords"`
	ATSPitfalls        []string           `mapstructure:"atsPitfalls" json:"atsPitfalls"`
	Weights            map[string]float64 `mapstructure:"weights" json:"weights"`
	Thresholds         Thresholds         `mapstructure:"thresholds" json:"thresholds"`
	Roles              []RoleProfile      `mapstructure:"roles" json:"roles"`
	SeniorKeywords     []string           `mapstructure:"seniorKeywords" json:"seniorKeywords"`
	MidKeywords        []string           `mapstructure:"midKeywords" json:"midKeywords"`
	SeniorityRanks     []Rank             `mapstructure:"seniorityRanks" json:"seniorityRanks"`
}

// AllSkills returns every technical skill in category order followed by the soft skills.
func (v *Vocabulary) AllSkills() []string {
	var all []string
	for _, c := range v.TechnicalSkills {
		all = append(all, c.Skills...)
	}
	return append(all, v.SoftSkills...)
}

// SectionNames returns the canonical section names in declaration order.
func (v *Vocabulary) SectionNames() []string {
	names := make([]string, 0, len(v.SectionHeaders))
	for _, s := range v.SectionHeaders {
		names = append(names, s.Name)
	}
	return names
}

// Synonyms returns the header words for a section, or nil if it is not declared.
func (v *Vocabulary) Synonyms(section string) []string {
	for _, s := range v.SectionHeaders {
		if s.Name == section {
			return s.Synonyms
		}
	}
	return nil
}

// IsStopWord reports whether w (already lower-cased) is a stop word.
func (v *Vocabulary) IsStopWord(w string) bool {
	return slices.Contains(v.StopWords, w)
}

// Rating maps an overall score onto the threshold ladder.
func (v *Vocabulary) Rating(score float64) string {
	switch {
	case score >= v.Thresholds.Excellent:
		return types.RatingExcellent
	case score >= v.Thresholds.Good:
		return types.RatingGood
	case score >= v.Thresholds.Fair:
		return types.RatingFair
	default:
		return types.RatingNeedsImprovement
	}
}

// Validate checks the structural rules every vocabulary must satisfy.
func (v *Vocabulary) Validate() error {
	if len(v.TechnicalSkills) == 0 {
		return invalid("at least one technical skill category is required")
	}
	for _, c := range v.TechnicalSkills {
		if c.Name == "" {
			return invalid("technical skill category name cannot be empty")
		}
	}

	required := []string{"contact", "summary", "experience", "education", "skills"}
	for _, name := range required {
		if v.Synonyms(name) == nil {
			return invalid(fmt.Sprintf("section %q must declare at least one header", name))
		}
	}

	if len(v.Weights) != len(types.ScoreKeys) {
		return invalid(fmt.Sprintf("weights must cover exactly %d scores, got %d", len(types.ScoreKeys), len(v.Weights)))
	}
	var sum float64
	for _, key := range types.ScoreKeys {
		w, ok := v.Weights[key]
		if !ok {
			return invalid(fmt.Sprintf("missing weight for %s", key))
		}
		if w < 0 {
			return invalid(fmt.Sprintf("weight for %s cannot be negative", key))
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return invalid(fmt.Sprintf("weights must sum to 1.0, got %.4f", sum))
	}

	t := v.Thresholds
	if t.Fair < 0 || t.Fair >= t.Good || t.Good >= t.Excellent || t.Excellent > 100 {
		return invalid(fmt.Sprintf("thresholds must satisfy 0 <= fair < good < excellent <= 100, got %.0f/%.0f/%.0f",
			t.Fair, t.Good, t.Excellent))
	}

	for _, r := range v.Roles {
		if len(r.Skills) == 0 {
			return invalid(fmt.Sprintf("role %q has no skills", r.Name))
		}
	}

	return nil
}

func invalid(msg string) error {
	return errors.NewValidationError(errors.ErrCodeInvalidVocabulary, msg, nil)
}

// Load reads a vocabulary file (yaml, toml or json) and overlays it on the
// built-in defaults. Keys absent from the file keep their default values;
// lists present in the file replace the default list entirely.
func Load(path string) (*Vocabulary, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(strings.TrimPrefix(filepath.Ext(path), "."))

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"failed to read vocabulary file", err).WithContext("path", path)
	}

	vocab := Default()
	vocab.Version = ""
	if err := v.Unmarshal(vocab, func(dc *mapstructure.DecoderConfig) {
		dc.ZeroFields = true
	}); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"failed to decode vocabulary file", err).WithContext("path", path)
	}
	if vocab.Version == "" {
		vocab.Version = filepath.Base(path)
	}

	if err := vocab.Validate(); err != nil {
		return nil, err
	}

	log.Printf("[CONFIG] Loaded vocabulary %s from %s (%d categories, %d soft skills)",
		vocab.Version, path, len(vocab.TechnicalSkills), len(vocab.SoftSkills))
	return vocab, nil
}

// LoadOrDefault loads path when it is set and falls back to Default otherwise.
func LoadOrDefault(path string) (*Vocabulary, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
