package config

import (
	"fmt"
	"strings"
)

// LoadError represents a structured error encountered while parsing or
// validating a single unit file.
type LoadError struct {
	FilePath  string // full path to the file that caused the error
	FileName  string // base name of the file
	ErrorType string // "parse", "validation", "io"
	Message   string
	Details   string
}

func (le LoadError) Error() string {
	return fmt.Sprintf("%s: %s", le.FileName, le.Message)
}

// DetailedError returns a multi-line message including the file path and any
// extra context, used by the CLI when reporting load failures.
func (le LoadError) DetailedError() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("unit load error in %s", le.FilePath))
	parts = append(parts, fmt.Sprintf("  type: %s", le.ErrorType))
	parts = append(parts, fmt.Sprintf("  error: %s", le.Message))
	if le.Details != "" {
		parts = append(parts, fmt.Sprintf("  details: %s", le.Details))
	}
	return strings.Join(parts, "\n")
}

// LoadErrorCollection accumulates every LoadError encountered while scanning
// a unit directory so a single `wpmctl reload` reports all problems at once
// instead of stopping at the first one.
type LoadErrorCollection struct {
	Errors []LoadError
}

func (lec LoadErrorCollection) Error() string {
	if len(lec.Errors) == 0 {
		return "no load errors"
	}
	if len(lec.Errors) == 1 {
		return lec.Errors[0].Error()
	}
	return fmt.Sprintf("%d unit load errors: %s (and %d more)",
		len(lec.Errors), lec.Errors[0].Error(), len(lec.Errors)-1)
}

func (lec *LoadErrorCollection) HasErrors() bool {
	return len(lec.Errors) > 0
}

func (lec *LoadErrorCollection) Add(err LoadError) {
	lec.Errors = append(lec.Errors, err)
}

// GetDetailedReport renders every accumulated error for CLI/log output.
func (lec *LoadErrorCollection) GetDetailedReport() string {
	if len(lec.Errors) == 0 {
		return "no unit load errors"
	}
	var parts []string
	parts = append(parts, fmt.Sprintf("%d unit load error(s):", len(lec.Errors)))
	for i, err := range lec.Errors {
		parts = append(parts, fmt.Sprintf("\n[%d] %s", i+1, err.DetailedError()))
	}
	return strings.Join(parts, "\n")
}

func NewLoadError(filePath, fileName, errorType, message string) LoadError {
	return LoadError{FilePath: filePath, FileName: fileName, ErrorType: errorType, Message: message}
}
