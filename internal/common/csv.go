// Package common provides the CSV plumbing shared by the conversion pipeline:
// delimiter sniffing, header-keyed record reading and YNAB output writing.
package common

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/models"

	"github.com/gocarina/gocsv"
)

// Record is one data line of the input together with its 1-based line
// number within the text handed to ReadRecords.
type Record struct {
	Line int
	Row  models.SourceRow
}

// ReadRecords parses text as delimiter-separated records. The first record
// supplies the column names and every following record becomes a
// SourceRow keyed by them. Blank lines are skipped, quoting is lenient and
// records may have any number of fields: extra values are dropped, missing
// trailing columns are left out of the row.
//
// Text without any record yields an empty header and no rows.
func ReadRecords(text string, delimiter rune) ([]string, []Record, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []string{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	var records []Record
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading CSV record: %w", err)
		}

		line, _ := reader.FieldPos(0)
		row := make(models.SourceRow, len(header))
		for i, value := range fields {
			if i < len(header) {
				row[header[i]] = value
			}
		}
		records = append(records, Record{Line: line, Row: row})
	}

	return header, records, nil
}

// MissingColumns returns the entries of required that are not in header,
// without duplicates and in the order given.
func MissingColumns(header, required []string) []string {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}

	missing := []string{}
	seen := make(map[string]bool)
	for _, col := range required {
		if !present[col] && !seen[col] {
			missing = append(missing, col)
		}
		seen[col] = true
	}
	return missing
}

// WriteYNABTransactions writes the YNAB header followed by one line per
// transaction, comma separated. useCRLF switches line endings to \r\n.
func WriteYNABTransactions(w io.Writer, transactions []models.YNABTransaction, useCRLF bool) error {
	if transactions == nil {
		transactions = []models.YNABTransaction{}
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.UseCRLF = useCRLF

	if err := gocsv.MarshalCSV(transactions, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
