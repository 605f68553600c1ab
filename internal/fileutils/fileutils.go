// Package fileutils provides the file operations of the converter: loading
// an export as text with encoding detection, and opening the output target.
package fileutils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/logging"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/models"
)

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ReadTextFile reads the whole file and decodes it with DecodeText.
// It returns the text and the name of the encoding used.
func ReadTextFile(filePath, forcedEncoding string, logger logging.Logger) (string, string, error) {
	data, err := os.ReadFile(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return "", "", fmt.Errorf("failed to read file: %w", err)
	}

	text, enc, err := DecodeText(data, forcedEncoding)
	if err != nil {
		return "", "", err
	}

	if logger != nil {
		fields := []logging.Field{
			{Key: logging.FieldInputFile, Value: filePath},
			{Key: logging.FieldEncoding, Value: enc},
		}
		if enc == EncodingUTF8Replace {
			logger.Warn("No encoding decoded the file cleanly, invalid bytes were replaced", fields...)
		} else {
			logger.Debug("Decoded input file", fields...)
		}
	}
	return text, enc, nil
}

// IsStdout reports whether dest names standard output: empty, "-" or
// "stdout" in any letter case.
func IsStdout(dest string) bool {
	return dest == "" || dest == "-" || strings.EqualFold(dest, "stdout")
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// OpenOutput opens the conversion target. Standard-output destinations return
// stdout wrapped so that Close is a no-op; anything else creates or truncates
// the named file.
func OpenOutput(dest string, stdout io.Writer) (io.WriteCloser, error) {
	if IsStdout(dest) {
		return nopWriteCloser{stdout}, nil
	}

	file, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, models.PermissionOutputFile) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}
