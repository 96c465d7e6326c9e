// Package parser turns plain resume text into a types.ParsedDocument.
//
// Every extractor is a best-effort heuristic over the raw text. Parse never
// fails: anything that cannot be found is reported as an empty collection or
// the types.NotFound sentinel.
package parser

import (
	"strings"
	"time"

	"atsresume/internal/textmatch"
	"atsresume/internal/types"
	"atsresume/internal/vocabulary"
)

type category struct {
	name  string
	terms []textmatch.Term
}

type section struct {
	name    string
	headers []textmatch.Term
}

// Parser extracts structured data from resume text. It is safe for concurrent
// use; all state is built once in New and only read afterwards.
type Parser struct {
	vocab         *vocabulary.Vocabulary
	categories    []category
	soft          []textmatch.Term
	education     []textmatch.Term
	experienceKws []textmatch.Term
	sections      []section
	now           func() time.Time
}

// Option configures a Parser
type Option func(*Parser)

// WithClock sets the clock used to resolve "Present" style range ends.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// New compiles the vocabulary into a Parser.
func New(vocab *vocabulary.Vocabulary, opts ...Option) *Parser {
	p := &Parser{
		vocab:         vocab,
		soft:          textmatch.Compile(vocab.SoftSkills),
		education:     textmatch.Compile(vocab.EducationKeywords),
		experienceKws: textmatch.Compile(vocab.ExperienceKeywords),
		now:           time.Now,
	}
	for _, c := range vocab.TechnicalSkills {
		p.categories = append(p.categories, category{name: c.Name, terms: textmatch.Compile(c.Skills)})
	}
	for _, s := range vocab.SectionHeaders {
		p.sections = append(p.sections, section{name: s.Name, headers: textmatch.Compile(s.Synonyms)})
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Vocabulary returns the vocabulary the parser was built from.
func (p *Parser) Vocabulary() *vocabulary.Vocabulary {
	return p.vocab
}

// Parse extracts every field of a ParsedDocument from text.
func (p *Parser) Parse(text string) *types.ParsedDocument {
	lower := strings.ToLower(text)
	sections := p.detectSections(lower)

	return &types.ParsedDocument{
		Name:       ExtractName(text),
		Contact:    ExtractContact(text),
		Skills:     p.extractSkills(lower),
		Education:  p.extractEducation(text, lower, sections),
		Experience: p.extractExperience(text, lower, sections),
		Timeline:   ExtractTimeline(text, p.now()),
		Sections:   sections,
		Statistics: WordStatistics(text),
	}
}

func (p *Parser) detectSections(lower string) map[string]bool {
	found := make(map[string]bool, len(p.sections))
	for _, s := range p.sections {
		found[s.name] = textmatch.AnyIn(s.headers, lower)
	}
	return found
}
