// Package extract turns resume and job description files into plain text.
package extract

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"atsresume/internal/errors"
	"atsresume/internal/utils"
)

// Supported file formats, keyed by extension
const (
	FormatPDF      = ".pdf"
	FormatDOCX     = ".docx"
	FormatText     = ".txt"
	FormatMarkdown = ".md"
	FormatHTML     = ".html"
	FormatHTM      = ".htm"
)

// SupportedFormats lists every extension the extractor accepts.
var SupportedFormats = []string{FormatPDF, FormatDOCX, FormatText, FormatMarkdown, FormatHTML, FormatHTM}

// Extractor reads documents of the supported formats and returns their text.
type Extractor struct {
	maxSize int64
	logger  *errors.Logger
	observe func(format string, err error)
}

// Option configures an Extractor
type Option func(*Extractor)

// WithObserver registers a callback invoked after every extraction attempt.
func WithObserver(fn func(format string, err error)) Option {
	return func(x *Extractor) {
		x.observe = fn
	}
}

// New creates an extractor that rejects documents larger than maxSize bytes.
func New(maxSize int64, logger *errors.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = errors.Discard()
	}
	x := &Extractor{maxSize: maxSize, logger: logger}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// ExtractFile validates path and extracts its text.
func (x *Extractor) ExtractFile(path string) (string, error) {
	if err := checkFormat(path); err != nil {
		x.record(utils.GetFileExtension(path), err)
		return "", err
	}
	if err := utils.ValidateInputFile(path, x.maxSize); err != nil {
		x.record(utils.GetFileExtension(path), err)
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("cannot read file %s", path), err).WithContext("path", path)
		x.record(utils.GetFileExtension(path), err)
		return "", err
	}
	return x.Extract(path, data)
}

// Extract returns the text of data, choosing the decoder by the extension of
// filename. It is used for uploads, where only the original name is known.
func (x *Extractor) Extract(filename string, data []byte) (text string, err error) {
	format := utils.GetFileExtension(filename)
	defer func() { x.record(format, err) }()

	if err := checkFormat(filename); err != nil {
		return "", err
	}
	if x.maxSize > 0 && int64(len(data)) > x.maxSize {
		return "", errors.NewValidationError(errors.ErrCodeFileTooLarge,
			fmt.Sprintf("%s is %s, limit is %s", filename, utils.FormatFileSize(int64(len(data))), utils.FormatFileSize(x.maxSize)), nil)
	}

	switch format {
	case FormatPDF:
		text, err = pdfText(bytes.NewReader(data), int64(len(data)))
	case FormatDOCX:
		text, err = docxText(bytes.NewReader(data), int64(len(data)))
	case FormatHTML, FormatHTM:
		text = HTMLToText(string(data))
	default:
		text = string(data)
	}
	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			fmt.Sprintf("failed to extract text from %s", filename), err).WithContext("format", format)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.NewValidationError(errors.ErrCodeEmptyDocument,
			fmt.Sprintf("no text found in %s", filename), nil).WithContext("format", format)
	}

	x.logger.Debug("Extracted document text", "file", filename, "format", format, "chars", len(text))
	return text, nil
}

func (x *Extractor) record(format string, err error) {
	if x.observe != nil {
		x.observe(format, err)
	}
}

func checkFormat(filename string) error {
	ext := utils.GetFileExtension(filename)
	for _, f := range SupportedFormats {
		if ext == f {
			return nil
		}
	}
	return errors.NewValidationError(errors.ErrCodeUnsupportedFormat,
		fmt.Sprintf("unsupported file format %q, supported: %s", ext, strings.Join(SupportedFormats, ", ")), nil).
		WithContext("path", filename)
}
