// Package dateutils normalizes the date notations found in bank exports to
// ISO 8601 calendar dates.
package dateutils

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/parsererror"
)

// DateLayoutISO is the output layout (YYYY-MM-DD).
const DateLayoutISO = "2006-01-02"

// InputLayouts lists the accepted input layouts in the order they are tried.
// Month, day and time components accept one or two digits. The separator-free
// YYYYMMDD form is handled by compactDate.
var InputLayouts = []string{
	"2006-1-2",        // YYYY-MM-DD
	"2006-1-2 15:4:5", // YYYY-MM-DD HH:MM:SS
	"2006-1-2 15:4",   // YYYY-MM-DD HH:MM
	"2006/1/2",        // YYYY/MM/DD
}

// compactDate matches YYYYMMDD with one- or two-digit month and day, such as
// "2024035". Alternatives are listed in order of preference, so "2024111"
// reads as November 1st.
var compactDate = regexp.MustCompile(`^(\d{4})(1[0-2]|0[1-9]|[1-9])(3[01]|[12]\d|0[1-9]|[1-9]| [1-9])$`)

// ErrUnrecognizedDate is wrapped by ParseDate failures.
var ErrUnrecognizedDate = errors.New("unrecognized date")

// embeddedDate matches a YYYY-MM-DD or YYYY/MM/DD shape anywhere in a string.
// Matches are not checked against the calendar.
var embeddedDate = regexp.MustCompile(`(\d{4})[-/](\d{2})[-/](\d{2})`)

// ParseDate normalizes dateStr to YYYY-MM-DD.
//
// The layouts in InputLayouts are tried first. If none matches, the first
// substring shaped like a date is extracted as-is.
func ParseDate(dateStr string) (string, error) {
	s := strings.TrimSpace(dateStr)

	for _, layout := range InputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayoutISO), nil
		}
	}
	if date, ok := parseCompactDate(s); ok {
		return date, nil
	}

	if m := embeddedDate.FindStringSubmatch(s); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3], nil
	}

	return "", &parsererror.ParseError{
		Parser: "date",
		Field:  "date",
		Value:  s,
		Err:    ErrUnrecognizedDate,
	}
}

// parseCompactDate reads s as YYYYMMDD. Dates outside the calendar are
// rejected.
func parseCompactDate(s string) (string, bool) {
	m := compactDate.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	t, err := time.Parse("2006-1-2", m[1]+"-"+m[2]+"-"+strings.TrimSpace(m[3]))
	if err != nil {
		return "", false
	}
	return t.Format(DateLayoutISO), true
}
