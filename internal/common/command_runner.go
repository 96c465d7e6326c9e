package common

import (
	"context"
	"io"

	"atsresume/internal/errors"
	"atsresume/internal/extract"
)

// OperationFunc turns the extracted text of the input files into a result.
type OperationFunc[Output any] func(ctx context.Context, texts []string) (Output, error)

// PresentFunc renders a result for the terminal.
type PresentFunc[Output any] func(result Output) string

// Runner encapsulates the common logic of file-based CLI commands: extract
// every input file, run the operation, then write or present the result.
type Runner struct {
	Extractor *extract.Extractor
	Output    *OutputHandler
	Logger    *errors.Logger
}

// NewRunner creates a runner printing results to w
func NewRunner(extractor *extract.Extractor, w io.Writer, logger *errors.Logger) *Runner {
	if logger == nil {
		logger = errors.Discard()
	}
	return &Runner{
		Extractor: extractor,
		Output:    NewOutputHandlerTo(w, logger),
		Logger:    logger,
	}
}

// RunCommand extracts paths, applies operation and hands the result to the
// output handler. present is used instead of a formatter when cmdConfig asks
// for a summary and no output file is set; it may be nil.
func RunCommand[Output any](
	ctx context.Context,
	r *Runner,
	cmdConfig CommandConfig,
	paths []string,
	operation OperationFunc[Output],
	present PresentFunc[Output],
) error {
	texts := make([]string, 0, len(paths))
	for _, path := range paths {
		text, err := r.Extractor.ExtractFile(path)
		if err != nil {
			return err
		}
		r.Logger.Debug("Input extracted", "file", path, "chars", len(text))
		texts = append(texts, text)
	}

	result, err := operation(ctx, texts)
	if err != nil {
		return err
	}

	if present != nil && cmdConfig.Summary && cmdConfig.OutputFile == "" {
		return r.Output.Print(present(result))
	}
	return r.Output.HandleOutput(result, cmdConfig)
}
