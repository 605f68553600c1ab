// Package parser provides the base parser functionality and common interfaces.
package parser

import (
	"io"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/common"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/logging"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/models"
)

// BaseParser holds what every parser shares: its logger and the YNAB
// writer. Parsers embed it:
//
//	type MyParser struct {
//		parser.BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a BaseParser. A nil logger is replaced by a
// logrus logger at info level writing text to stderr.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	return BaseParser{
		logger: logger,
	}
}

// SetLogger implements LoggerConfigurable. A nil logger is ignored.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// WriteToCSV writes transactions in YNAB layout to w.
func (b *BaseParser) WriteToCSV(transactions []models.YNABTransaction, w io.Writer, useCRLF bool) error {
	b.logger.Debug("Writing YNAB transactions",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	return common.WriteYNABTransactions(w, transactions, useCRLF)
}
