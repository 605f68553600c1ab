// Package common contains shared functionality for command handlers
package common

import (
	"fmt"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/fileutils"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/logging"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/parser"
)

// ProcessFile converts inputFile to outputFile with p, which logs through log.
func ProcessFile(p parser.FullParser, inputFile, outputFile string, log logging.Logger) error {
	p.SetLogger(log)

	if !fileutils.FileExists(inputFile) {
		return fmt.Errorf("input file not found: %s", inputFile)
	}

	if err := p.ConvertToCSV(inputFile, outputFile); err != nil {
		return err
	}
	log.Debug("Conversion completed successfully",
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile})
	return nil
}
