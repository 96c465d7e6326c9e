package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"atsresume/internal/errors"
)

// ValidateInputFile checks that filename names a readable regular file no larger than maxSize bytes.
// A maxSize of zero disables the size check.
func ValidateInputFile(filename string, maxSize int64) error {
	if filename == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidInput, "filename cannot be empty", nil)
	}

	info, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("file not found: %s", filename), err).WithContext("path", filename)
		}
		return errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("cannot access file %s", filename), err).WithContext("path", filename)
	}

	if info.IsDir() {
		return errors.NewValidationError(errors.ErrCodeInvalidInput,
			fmt.Sprintf("path is a directory, not a file: %s", filename), nil)
	}

	if maxSize > 0 && info.Size() > maxSize {
		return errors.NewValidationError(errors.ErrCodeFileTooLarge,
			fmt.Sprintf("file %s is %s, limit is %s", filename, FormatFileSize(info.Size()), FormatFileSize(maxSize)), nil)
	}

	return nil
}

// ValidateOutputFile checks if the output file path is valid, creating its directory when needed
func ValidateOutputFile(filename string) error {
	if filename == "" {
		return nil // stdout is valid
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return errors.NewIOError(errors.ErrCodeWriteFailed,
					fmt.Sprintf("cannot create directory %s", dir), err)
			}
		}
	}

	return nil
}

// GetFileExtension returns the file extension in lowercase
func GetFileExtension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// IsTextFile checks if the file has a plain-text extension
func IsTextFile(filename string) bool {
	textExtensions := []string{".txt", ".md", ".markdown", ".text"}
	return slices.Contains(textExtensions, GetFileExtension(filename))
}

// IsHTMLFile checks if the file has an HTML extension
func IsHTMLFile(filename string) bool {
	return slices.Contains([]string{".html", ".htm"}, GetFileExtension(filename))
}

// FormatFileSize returns a human-readable file size
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
