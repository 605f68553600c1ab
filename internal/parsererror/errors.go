// Package parsererror defines the typed errors produced while converting a
// bank export. Row-local errors (ParseError, DataExtractionError) cause a
// single row to be skipped; the others abort the conversion.
package parsererror

import (
	"fmt"
	"strings"
)

// ParseError represents an error during parsing
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingColumnsError is returned when the detected header lacks one or more
// columns the conversion depends on.
type MissingColumnsError struct {
	Missing []string
	Found   []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns in input: [%s]. Found columns: [%s]",
		quoteJoin(e.Missing), quoteJoin(e.Found))
}

// UnknownEncodingError is returned when a forced text encoding name cannot be resolved.
type UnknownEncodingError struct {
	Name string
}

func (e *UnknownEncodingError) Error() string {
	return fmt.Sprintf("unknown encoding: %q", e.Name)
}

// DataExtractionError represents an error where specific required data could not be extracted
// from a row, even if the file format itself is valid.
type DataExtractionError struct {
	FieldName string
	Reason    string
}

func (e *DataExtractionError) Error() string {
	return fmt.Sprintf("data extraction failed for field '%s': %s", e.FieldName, e.Reason)
}

func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return strings.Join(quoted, ", ")
}
