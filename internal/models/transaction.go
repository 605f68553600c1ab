// Package models defines the data structures shared by the conversion pipeline:
// the Swedbank column schema, raw source rows and the YNAB output record.
package models

// SourceRow is one Swedbank data line keyed by the header labels.
// Columns missing from a short line are absent from the map, which is
// different from a column that is present but empty.
type SourceRow map[string]string

// Lookup returns the raw value for column and whether the column was present.
func (r SourceRow) Lookup(column string) (string, bool) {
	v, ok := r[column]
	return v, ok
}

// Get returns the raw value for column, or "" when absent.
func (r SourceRow) Get(column string) string {
	return r[column]
}

// YNABTransaction is one row of a YNAB import file.
// All four fields are always set; Memo may be empty.
type YNABTransaction struct {
	Date   string `csv:"Date" yaml:"date"`
	Payee  string `csv:"Payee" yaml:"payee"`
	Memo   string `csv:"Memo" yaml:"memo"`
	Amount string `csv:"Amount" yaml:"amount"`
}
