// Package converter is the library entry point for turning Swedbank CSV
// exports into YNAB import CSV files.
package converter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/fileutils"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/logging"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/models"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/swedbankparser"
)

// OutputSuffix is appended to the base name of every file BatchConvert writes.
const OutputSuffix = "-ynab.csv"

// Options controls a conversion. The zero value is not valid; start from
// DefaultOptions.
type Options struct {
	// DateField is Bokföringsdag, Transaktionsdag or Valutadag.
	DateField string
	// PayeeField is Beskrivning or Referens.
	PayeeField    string
	ProductInMemo bool
	// Encoding forces the input encoding; empty means detect.
	Encoding string
	CRLF     bool
	// Logger receives row warnings and progress. Nil discards everything.
	Logger logging.Logger
}

// DefaultOptions returns booking date, description as payee and automatic
// encoding detection.
func DefaultOptions() Options {
	return Options{
		DateField:  models.ColumnBookingDate,
		PayeeField: models.ColumnDescription,
		CRLF:       true,
	}
}

// Stats reports what a conversion did.
type Stats = swedbankparser.ConversionStats

func (o Options) parser(stdout io.Writer) *swedbankparser.Parser {
	logger := o.Logger
	if logger == nil {
		logger = logging.NewLogrusAdapterWithOutput("error", "text", io.Discard)
	}
	return swedbankparser.NewParser(logger, swedbankparser.Options{
		Mapping: swedbankparser.MapOptions{
			DateField:     o.DateField,
			PayeeField:    o.PayeeField,
			ProductInMemo: o.ProductInMemo,
		},
		Encoding: o.Encoding,
		UseCRLF:  o.CRLF,
		Stdout:   stdout,
	})
}

// Convert reads a raw export from r, detecting its encoding, and writes the
// YNAB CSV to w.
func Convert(r io.Reader, w io.Writer, opts Options) (Stats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read input: %w", err)
	}

	text, enc, err := fileutils.DecodeText(data, opts.Encoding)
	if err != nil {
		return Stats{}, err
	}

	p := opts.parser(w)
	transactions, err := p.Parse(strings.NewReader(text))
	if err != nil {
		return Stats{}, err
	}
	if err := p.WriteToCSV(transactions, w, opts.CRLF); err != nil {
		return Stats{}, err
	}

	stats := p.LastStats()
	stats.Encoding = enc
	return stats, nil
}

// ConvertFile converts inputFile and writes the result to outputFile
// ("-" or "stdout" for standard output).
func ConvertFile(inputFile, outputFile string, opts Options) (Stats, error) {
	p := opts.parser(os.Stdout)
	if err := p.ConvertToCSV(inputFile, outputFile); err != nil {
		return Stats{}, err
	}
	return p.LastStats(), nil
}

// BatchConvert converts every .csv file directly inside inputDir and writes
// <name>-ynab.csv files to outputDir, creating it if needed. Files that fail
// are reported through opts.Logger and skipped. It returns the number of
// files converted.
func BatchConvert(inputDir, outputDir string, opts Options) (int, error) {
	if err := os.MkdirAll(outputDir, models.PermissionDirectory); err != nil {
		return 0, fmt.Errorf("error creating output directory: %w", err)
	}

	files, err := os.ReadDir(inputDir)
	if err != nil {
		return 0, fmt.Errorf("error reading input directory: %w", err)
	}

	count := 0
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.EqualFold(filepath.Ext(name), ".csv") || strings.HasSuffix(name, OutputSuffix) {
			continue
		}

		inputPath := filepath.Join(inputDir, name)
		outputPath := filepath.Join(outputDir, strings.TrimSuffix(name, filepath.Ext(name))+OutputSuffix)

		if _, err := ConvertFile(inputPath, outputPath, opts); err != nil {
			if opts.Logger != nil {
				opts.Logger.WithError(err).Warn("Failed to convert file, skipping",
					logging.Field{Key: logging.FieldInputFile, Value: inputPath})
			}
			continue
		}
		count++
	}

	return count, nil
}
