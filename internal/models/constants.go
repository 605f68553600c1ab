package models

// Swedbank export column labels. The export header uses these exact
// strings; they are matched byte-for-byte after decoding.
const (
	ColumnRowNumber       = "Radnummer"
	ColumnClearingNumber  = "Clearingnummer"
	ColumnAccountNumber   = "Kontonummer"
	ColumnProduct         = "Produkt"
	ColumnCurrency        = "Valuta"
	ColumnBookingDate     = "Bokföringsdag"
	ColumnTransactionDate = "Transaktionsdag"
	ColumnValueDate       = "Valutadag"
	ColumnReference       = "Referens"
	ColumnDescription     = "Beskrivning"
	ColumnAmount          = "Belopp"
	ColumnBalance         = "Bokfört saldo"
)

// File permissions
const (
	PermissionOutputFile = 0644
	PermissionDirectory  = 0750
)

// YNAB import header, in column order.
const (
	YNABColumnDate   = "Date"
	YNABColumnPayee  = "Payee"
	YNABColumnMemo   = "Memo"
	YNABColumnAmount = "Amount"
)

// SwedbankColumns returns the Swedbank column labels in export order.
func SwedbankColumns() []string {
	return []string{
		ColumnRowNumber,
		ColumnClearingNumber,
		ColumnAccountNumber,
		ColumnProduct,
		ColumnCurrency,
		ColumnBookingDate,
		ColumnTransactionDate,
		ColumnValueDate,
		ColumnReference,
		ColumnDescription,
		ColumnAmount,
		ColumnBalance,
	}
}

// DateColumns returns the columns that may be selected as the transaction date.
func DateColumns() []string {
	return []string{ColumnBookingDate, ColumnTransactionDate, ColumnValueDate}
}

// PayeeColumns returns the columns that may be selected as the payee.
func PayeeColumns() []string {
	return []string{ColumnDescription, ColumnReference}
}

// YNABHeader returns the fixed YNAB import header.
func YNABHeader() []string {
	return []string{YNABColumnDate, YNABColumnPayee, YNABColumnMemo, YNABColumnAmount}
}
