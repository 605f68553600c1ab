package swedbankparser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/common"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/currencyutils"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/dateutils"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/logging"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/models"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/parsererror"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/textutils"
)

const memoSeparator = " | "

// MapOptions selects the source columns for date and payee and whether the
// product name is appended to the memo.
type MapOptions struct {
	DateField     string
	PayeeField    string
	ProductInMemo bool
}

// DefaultMapOptions uses the booking date and the description as payee.
func DefaultMapOptions() MapOptions {
	return MapOptions{
		DateField:  models.ColumnBookingDate,
		PayeeField: models.ColumnDescription,
	}
}

// Validate checks the selected columns against the allowed choices.
func (o MapOptions) Validate() error {
	if !slices.Contains(models.DateColumns(), o.DateField) {
		return fmt.Errorf("invalid date field %q (must be one of %s)", o.DateField, strings.Join(models.DateColumns(), ", "))
	}
	if !slices.Contains(models.PayeeColumns(), o.PayeeField) {
		return fmt.Errorf("invalid payee field %q (must be one of %s)", o.PayeeField, strings.Join(models.PayeeColumns(), ", "))
	}
	return nil
}

// RequiredColumns returns the columns the header must contain for opts:
// the selected date column, the amount and the selected payee column.
func RequiredColumns(opts MapOptions) []string {
	return []string{opts.DateField, models.ColumnAmount, opts.PayeeField}
}

// ValidateColumns returns a *parsererror.MissingColumnsError when header
// lacks any of the required columns.
func ValidateColumns(header []string, opts MapOptions) error {
	missing := common.MissingColumns(header, RequiredColumns(opts))
	if len(missing) == 0 {
		return nil
	}
	return &parsererror.MissingColumnsError{
		Missing: missing,
		Found:   append([]string{}, header...),
	}
}

// MapRow converts one source row into a YNAB transaction.
//
// The date falls back to the booking date when the selected date column is
// absent or empty. The memo holds the reference when it differs from the
// description and, if requested, the product in brackets.
func MapRow(row models.SourceRow, opts MapOptions) (models.YNABTransaction, error) {
	rawDate := row.Get(opts.DateField)
	if rawDate == "" {
		rawDate = row.Get(models.ColumnBookingDate)
	}
	if rawDate == "" {
		return models.YNABTransaction{}, &parsererror.DataExtractionError{
			FieldName: opts.DateField,
			Reason:    "no date value in row",
		}
	}
	date, err := dateutils.ParseDate(rawDate)
	if err != nil {
		return models.YNABTransaction{}, err
	}

	payee := textutils.CleanText(row.Get(opts.PayeeField))
	reference := textutils.CleanText(row.Get(models.ColumnReference))
	description := textutils.CleanText(row.Get(models.ColumnDescription))
	product := textutils.CleanText(row.Get(models.ColumnProduct))

	rawAmount, ok := row.Lookup(models.ColumnAmount)
	if !ok {
		rawAmount = "0"
	}
	amount, err := currencyutils.NormalizeAmount(rawAmount)
	if err != nil {
		return models.YNABTransaction{}, err
	}

	var memo []string
	if reference != "" && reference != description {
		memo = append(memo, reference)
	}
	if opts.ProductInMemo && product != "" {
		memo = append(memo, "["+product+"]")
	}

	return models.YNABTransaction{
		Date:   date,
		Payee:  payee,
		Memo:   strings.Join(memo, memoSeparator),
		Amount: amount,
	}, nil
}

// RowResult is the outcome of mapping one record. Exactly one of
// Transaction and Err is meaningful.
type RowResult struct {
	Line        int
	Transaction models.YNABTransaction
	Err         error
}

// MapRecords maps every record, keeping failures alongside successes.
func MapRecords(records []common.Record, opts MapOptions) []RowResult {
	results := make([]RowResult, 0, len(records))
	for _, rec := range records {
		tx, err := MapRow(rec.Row, opts)
		results = append(results, RowResult{Line: rec.Line, Transaction: tx, Err: err})
	}
	return results
}

// ConvertRows maps records and returns the successful transactions in input
// order. Each failed record is reported as a warning and skipped.
func ConvertRows(records []common.Record, opts MapOptions, logger logging.Logger) []models.YNABTransaction {
	transactions := make([]models.YNABTransaction, 0, len(records))
	for _, res := range MapRecords(records, opts) {
		if res.Err != nil {
			if logger != nil {
				logger.WithError(res.Err).Warn("Skipping row that could not be converted",
					logging.Field{Key: logging.FieldLine, Value: res.Line})
			}
			continue
		}
		transactions = append(transactions, res.Transaction)
	}
	return transactions
}
