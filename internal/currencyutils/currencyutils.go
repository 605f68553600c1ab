// Package currencyutils parses and formats transaction amounts using exact
// decimal arithmetic. Amounts may use either a decimal comma (Swedish
// locale, optionally with '.' thousands separators) or a decimal point.
package currencyutils

import (
	"strings"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/parsererror"

	"github.com/shopspring/decimal"
)

const nbsp = "\u00a0"

// ParseAmount parses a locale-formatted amount such as "1.234,56", "1234,56",
// "-125.50" or "1 234,56".
//
// When both '.' and ',' occur, '.' is taken as the thousands separator and
// ',' as the decimal separator. A lone ',' is the decimal separator.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, &parsererror.ParseError{
			Parser: "decimal",
			Field:  "amount",
			Value:  standardized,
			Err:    err,
		}
	}
	return amount, nil
}

// StandardizeAmount rewrites an amount string into the form accepted by
// decimal.NewFromString without validating it. Digit grouping with spaces or
// underscores is removed.
func StandardizeAmount(amountStr string) string {
	s := strings.TrimSpace(strings.ReplaceAll(amountStr, nbsp, " "))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}
	return s
}

// FormatAmount renders amount with exactly two fraction digits, keeping the
// sign. Ties round half to even, and a negative amount that rounds to zero
// is rendered as "-0.00".
func FormatAmount(amount decimal.Decimal) string {
	return withSign(amount.StringFixedBank(2), amount.Sign() < 0)
}

// NormalizeAmount parses amountStr and renders it with FormatAmount. The
// minus sign of a negative zero such as "-0" or "-0,00" is kept, which
// decimal.Decimal cannot represent on its own.
func NormalizeAmount(amountStr string) (string, error) {
	amount, err := ParseAmount(amountStr)
	if err != nil {
		return "", err
	}
	negative := amount.Sign() < 0 || strings.HasPrefix(StandardizeAmount(amountStr), "-")
	return withSign(amount.StringFixedBank(2), negative), nil
}

func withSign(formatted string, negative bool) string {
	if negative && !strings.HasPrefix(formatted, "-") {
		return "-" + formatted
	}
	return formatted
}
