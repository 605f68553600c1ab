package parser

import (
	"io"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/logging"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/models"
)

// Parser turns already-decoded export text into YNAB transactions.
type Parser interface {
	// Parse reads the whole export from r and returns the transactions that
	// could be mapped. Rows that fail are skipped and reported through the
	// logger; structural problems such as missing columns are returned as
	// errors (see the parsererror package).
	Parse(r io.Reader) ([]models.YNABTransaction, error)
}

// LoggerConfigurable is implemented by parsers whose logger can be replaced.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
}

// CSVConverter converts an input file into a YNAB CSV file in one step.
type CSVConverter interface {
	ConvertToCSV(inputFile, outputFile string) error
}

// FullParser is the complete parser surface used by the command line.
type FullParser interface {
	Parser
	LoggerConfigurable
	CSVConverter
}
