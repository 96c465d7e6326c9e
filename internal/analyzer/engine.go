// Package analyzer scores a parsed resume, optionally against a job
// description, and runs the advanced sub-analyses.
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"atsresume/internal/advanced"
	"atsresume/internal/errors"
	"atsresume/internal/linkcheck"
	"atsresume/internal/textmatch"
	"atsresume/internal/types"
	"atsresume/internal/utils"
	"atsresume/internal/vocabulary"
)

const tracerName = "atsresume.analyzer"

// Recorder receives a summary of every completed analysis.
type Recorder interface {
	RecordAnalysis(ctx context.Context, result *types.AnalysisResult, withJD bool, duration time.Duration)
}

// Engine scores resumes against a fixed vocabulary. It is safe for concurrent
// use.
type Engine struct {
	vocab    *vocabulary.Vocabulary
	skills   []textmatch.Term
	verbs    []textmatch.Term
	checker  linkcheck.Checker
	logger   *errors.Logger
	recorder Recorder
	tracer   trace.Tracer
	now      func() time.Time
	newID    func() string
}

// Option configures an Engine
type Option func(*Engine)

// WithLinkChecker enables profile link validation. Without one the
// LinkValidation report is omitted.
func WithLinkChecker(c linkcheck.Checker) Option {
	return func(e *Engine) {
		e.checker = c
	}
}

// WithLogger sets the logger used for sub-analysis failures.
func WithLogger(l *errors.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithRecorder registers a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithClock sets the clock used for timestamps and open-ended date ranges.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator replaces the random analysis ID source.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// WithTracer replaces the globally registered tracer.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// New compiles the vocabulary into an Engine.
func New(vocab *vocabulary.Vocabulary, opts ...Option) *Engine {
	e := &Engine{
		vocab:  vocab,
		skills: textmatch.Compile(vocab.AllSkills()),
		verbs:  textmatch.Compile(vocab.ActionVerbs),
		logger: errors.Discard(),
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Vocabulary returns the vocabulary the engine was built from.
func (e *Engine) Vocabulary() *vocabulary.Vocabulary {
	return e.vocab
}

// Analyze scores doc, the parsed form of text. An empty or blank jd selects
// the resume-only weighting and leaves the keyword and skills reports out.
//
// Analyze never fails. A panic inside an advanced sub-analysis replaces that
// report with its default and is logged.
func (e *Engine) Analyze(ctx context.Context, text string, doc *types.ParsedDocument, jd string) *types.AnalysisResult {
	withJD := strings.TrimSpace(jd) != ""

	ctx, span := e.tracer.Start(ctx, "analyzer.Analyze", trace.WithAttributes(
		attribute.Bool("analysis.with_jd", withJD),
		attribute.Int("analysis.words", doc.Statistics.TotalWords),
	))
	defer span.End()

	started := e.now()
	links := e.startLinkCheck(ctx, doc.Contact)

	lower := strings.ToLower(text)
	result := &types.AnalysisResult{
		ID:             e.newID(),
		AnalyzedAt:     started,
		FormatCheck:    FormatCheck(doc, text, e.vocab),
		ImpactAnalysis: Impact(lower, e.verbs),
	}

	scores := map[string]float64{
		types.ScoreKeywordMatch:        0,
		types.ScoreSkillsMatch:         0,
		types.ScoreFormatATSFriendly:   result.FormatCheck.Score,
		types.ScoreImpact:              result.ImpactAnalysis.Score,
		types.ScoreCompleteness:        Completeness(doc),
		types.ScoreExperienceRelevance: ExperienceRelevance(doc.Experience),
		types.ScoreEducation:           EducationScore(doc.Education),
	}
	if withJD {
		result.KeywordMatch = KeywordMatch(lower, jd, e.vocab)
		result.SkillsMatch = SkillsMatch(doc.Skills, jd, e.skills)
		scores[types.ScoreKeywordMatch] = result.KeywordMatch.Score
		scores[types.ScoreSkillsMatch] = result.SkillsMatch.Score
	}
	result.Scores = scores
	overall := weightedOverall(scores, withJD, e.vocab)
	result.OverallScore = utils.Round(overall, 2)
	result.Rating = e.vocab.Rating(overall)
	result.Recommendations = recommendations(result, doc)
	result.Strengths = strengths(result, doc)

	e.runAdvanced(ctx, text, doc, result)
	result.LinkValidation = <-links

	span.SetAttributes(
		attribute.Float64("analysis.overall_score", result.OverallScore),
		attribute.String("analysis.rating", result.Rating),
	)
	span.SetStatus(codes.Ok, "")

	if e.recorder != nil {
		e.recorder.RecordAnalysis(ctx, result, withJD, e.now().Sub(started))
	}
	return result
}

func (e *Engine) runAdvanced(ctx context.Context, text string, doc *types.ParsedDocument, result *types.AnalysisResult) {
	now := e.now()

	result.Readability = isolate(ctx, e.logger, "readability", &types.Readability{}, func() *types.Readability {
		return advanced.Readability(text)
	})
	result.ToneAnalysis = isolate(ctx, e.logger, "tone", defaultTone(), func() *types.ToneAnalysis {
		return advanced.Tone(text)
	})
	result.CareerAnalysis = isolate(ctx, e.logger, "career_path", defaultCareer(), func() *types.CareerAnalysis {
		return advanced.CareerPath(doc.Experience, e.vocab, now)
	})
	result.RoleSuitability = isolate(ctx, e.logger, "role_suitability", []types.RoleSuitability{}, func() []types.RoleSuitability {
		return advanced.RoleSuitability(doc.Skills, e.vocab.Roles)
	})

	topRole := ""
	if len(result.RoleSuitability) > 0 {
		topRole = result.RoleSuitability[0].Role
	}
	seniority := result.CareerAnalysis.SeniorityLevel
	result.CareerRoadmap = isolate(ctx, e.logger, "career_roadmap", advanced.Roadmap(advanced.SeniorityEntry, ""), func() *types.CareerRoadmap {
		return advanced.Roadmap(seniority, topRole)
	})
}

// startLinkCheck checks the profile links in the background. The returned
// channel yields exactly one value: nil when link checking is disabled.
func (e *Engine) startLinkCheck(ctx context.Context, contact types.ContactInfo) <-chan []types.LinkStatus {
	out := make(chan []types.LinkStatus, 1)
	if e.checker == nil {
		out <- nil
		return out
	}

	go func() {
		out <- isolate(ctx, e.logger, "link_validation", []types.LinkStatus{}, func() []types.LinkStatus {
			return e.checker.Check(ctx, linkcheck.LinksFor(contact))
		})
	}()
	return out
}

// isolate runs fn and returns fallback if it panics.
func isolate[T any](ctx context.Context, logger *errors.Logger, name string, fallback T, fn func() T) (out T) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.NewInternalError(errors.ErrCodeSubAnalysisFailed,
				"sub-analysis panicked", fmt.Errorf("%v", r)).WithContext("analysis", name)
			logger.LogError(err, "Sub-analysis failed, using default report")
			trace.SpanFromContext(ctx).RecordError(err)
			out = fallback
		}
	}()
	return fn()
}

func defaultTone() *types.ToneAnalysis {
	return &types.ToneAnalysis{Score: 100, Samples: []string{}}
}

func defaultCareer() *types.CareerAnalysis {
	return &types.CareerAnalysis{
		Gaps:              []string{},
		SeniorityLevel:    advanced.SeniorityEntry,
		GrowthScore:       50,
		CareerProgression: []string{},
	}
}
