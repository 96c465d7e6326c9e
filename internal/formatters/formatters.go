package formatters

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"atsresume/internal/types"
)

// Data type names used as registry keys
const (
	TypeAny            = "any"
	TypeReport         = "Report"
	TypeParsedDocument = "ParsedDocument"
	TypeCoverLetter    = "CoverLetter"
	TypeCleanText      = "CleanText"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", TypeAny, &JSONFormatter{})
	registry.RegisterFormatter("text", TypeReport, &ReportTextFormatter{})
	registry.RegisterFormatter("markdown", TypeReport, &ReportMarkdownFormatter{})
	registry.RegisterFormatter("csv", TypeReport, &ReportCSVFormatter{})
	registry.RegisterFormatter("text", TypeParsedDocument, &DocumentTextFormatter{})
	registry.RegisterFormatter("text", TypeCoverLetter, &CoverLetterTextFormatter{})
	registry.RegisterFormatter("text", TypeCleanText, &CleanTextFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		if formatter, exists := formatters[TypeAny]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// Supports reports whether format has a formatter for data
func (fr *FormatterRegistry) Supports(format string, data any) bool {
	formatters, exists := fr.formatters[format]
	if !exists {
		return false
	}
	_, typed := formatters[getDataType(data)]
	_, generic := formatters[TypeAny]
	return typed || generic
}

// GetSupportedFormats returns all supported formats in sorted order
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	slices.Sort(formats)
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case *types.Report, types.Report:
		return TypeReport
	case *types.ParsedDocument, types.ParsedDocument:
		return TypeParsedDocument
	case *types.CoverLetter, types.CoverLetter:
		return TypeCoverLetter
	case *types.CleanText, types.CleanText:
		return TypeCleanText
	default:
		return TypeAny
	}
}

// asPointer normalizes a value or pointer argument to a non-nil pointer.
func asPointer[T any](data any) (*T, error) {
	switch v := data.(type) {
	case *T:
		if v == nil {
			return nil, fmt.Errorf("expected %T, got nil", v)
		}
		return v, nil
	case T:
		return &v, nil
	default:
		var zero T
		return nil, fmt.Errorf("expected %T, got %T", zero, data)
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return TypeAny
}

// titleCase turns a snake_case key into "Title Case".
func titleCase(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// dotted left-aligns label in a field of dots, like "Education.......".
func dotted(label string, width int) string {
	if n := width - utf8.RuneCountInString(label); n > 0 {
		return label + strings.Repeat(".", n)
	}
	return label
}

func orNotFound(values []string) string {
	if len(values) == 0 {
		return "Not found"
	}
	return strings.Join(values, ", ")
}

func stringOrNotFound(s string) string {
	if s == "" {
		return "Not found"
	}
	return s
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
