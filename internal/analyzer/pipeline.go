package analyzer

import (
	"context"

	"atsresume/internal/parser"
	"atsresume/internal/types"
	"atsresume/internal/vocabulary"
)

// Pipeline pairs a Parser and an Engine built from the same vocabulary so
// that both can be replaced together when the vocabulary is reloaded.
type Pipeline struct {
	parser *parser.Parser
	engine *Engine
}

// NewPipeline builds a parser and an engine for vocab. The parser shares the
// engine's clock.
func NewPipeline(vocab *vocabulary.Vocabulary, opts ...Option) *Pipeline {
	engine := New(vocab, opts...)
	return &Pipeline{
		parser: parser.New(vocab, parser.WithClock(engine.now)),
		engine: engine,
	}
}

// Parse extracts the structured document from text.
func (p *Pipeline) Parse(text string) *types.ParsedDocument {
	return p.parser.Parse(text)
}

// Run parses text and analyzes it against jd.
func (p *Pipeline) Run(ctx context.Context, text, jd string) *types.Report {
	doc := p.parser.Parse(text)
	return &types.Report{
		Document: doc,
		Analysis: p.engine.Analyze(ctx, text, doc, jd),
	}
}

// Vocabulary returns the vocabulary both stages were built from.
func (p *Pipeline) Vocabulary() *vocabulary.Vocabulary {
	return p.engine.vocab
}
