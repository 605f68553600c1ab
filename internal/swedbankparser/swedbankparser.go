// Package swedbankparser converts Swedbank transaction exports into YNAB
// import files.
//
// An export may start with account summary lines before the real header,
// may use ',' or ';' between fields and may be encoded as UTF-8 (with or
// without BOM), Windows-1252 or ISO-8859-1. Rows that cannot be converted
// are skipped with a warning; a header lacking a required column aborts the
// conversion.
package swedbankparser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/common"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/fileutils"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/logging"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/models"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/parser"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/textutils"
)

// Name identifies this parser in log output.
const Name = "swedbank"

// Options configures a Parser.
type Options struct {
	Mapping MapOptions
	// Encoding forces the input encoding. Empty means detect.
	Encoding string
	// UseCRLF ends output lines with \r\n instead of \n.
	UseCRLF bool
	// Stdout receives the output when the destination is "-" or "stdout".
	// Defaults to os.Stdout.
	Stdout io.Writer
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{Mapping: DefaultMapOptions(), UseCRLF: true}
}

// ConversionStats summarizes the last Parse or ConvertToCSV run.
type ConversionStats struct {
	HeaderLine int // 1-based
	Delimiter  rune
	Encoding   string
	Rows       int
	Converted  int
	Skipped    int
}

// Parser converts Swedbank exports. It implements parser.FullParser.
type Parser struct {
	parser.BaseParser
	opts  Options
	stats ConversionStats
}

var _ parser.FullParser = (*Parser)(nil)

// NewParser creates a Parser. A nil logger falls back to the default
// stderr logger.
func NewParser(logger logging.Logger, opts Options) *Parser {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	return &Parser{
		BaseParser: parser.NewBaseParser(logger),
		opts:       opts,
	}
}

// Options returns the parser configuration.
func (p *Parser) Options() Options {
	return p.opts
}

// LastStats returns the statistics of the most recent successful run.
func (p *Parser) LastStats() ConversionStats {
	return p.stats
}

// Parse reads already-decoded export text from r.
func (p *Parser) Parse(r io.Reader) ([]models.YNABTransaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return p.parseText(string(data), "")
}

// ConvertToCSV reads inputFile, converts it and writes the YNAB file to
// outputFile ("-" or "stdout" for standard output).
func (p *Parser) ConvertToCSV(inputFile, outputFile string) (err error) {
	logger := p.GetLogger().WithFields(
		logging.Field{Key: logging.FieldParser, Value: Name},
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
	)

	text, enc, err := fileutils.ReadTextFile(inputFile, p.opts.Encoding, logger)
	if err != nil {
		return err
	}

	transactions, err := p.parseText(text, enc)
	if err != nil {
		return err
	}

	out, err := fileutils.OpenOutput(outputFile, p.opts.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	if err := p.WriteToCSV(transactions, out, p.opts.UseCRLF); err != nil {
		return err
	}

	logger.Info("Conversion finished",
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile},
		logging.Field{Key: logging.FieldConverted, Value: p.stats.Converted},
		logging.Field{Key: logging.FieldSkipped, Value: p.stats.Skipped})
	return nil
}

func (p *Parser) parseText(text, enc string) ([]models.YNABTransaction, error) {
	if err := p.opts.Mapping.Validate(); err != nil {
		return nil, err
	}
	logger := p.GetLogger()

	lines := textutils.SplitLines(text)
	headerIdx := FindHeaderIndex(lines)
	delimiter := common.SniffDelimiter(sniffSample(lines, headerIdx))

	var body string
	if headerIdx < len(lines) {
		body = strings.Join(lines[headerIdx:], "\n")
	}
	header, records, err := common.ReadRecords(body, delimiter)
	if err != nil {
		return nil, err
	}

	logger.Debug("Located header",
		logging.Field{Key: logging.FieldHeaderLine, Value: headerIdx + 1},
		logging.Field{Key: logging.FieldDelimiter, Value: string(delimiter)},
		logging.Field{Key: logging.FieldColumns, Value: header})

	if err := ValidateColumns(header, p.opts.Mapping); err != nil {
		return nil, err
	}

	for i := range records {
		records[i].Line += headerIdx
	}
	transactions := ConvertRows(records, p.opts.Mapping, logger)

	p.stats = ConversionStats{
		HeaderLine: headerIdx + 1,
		Delimiter:  delimiter,
		Encoding:   enc,
		Rows:       len(records),
		Converted:  len(transactions),
		Skipped:    len(records) - len(transactions),
	}
	return transactions, nil
}
