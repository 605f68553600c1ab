package swedbankparser

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/logging"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/models"
	"github.com/jonix/swedbank-ynab-csv-converter/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportHeader = "Radnummer;Clearingnummer;Kontonummer;Produkt;Valuta;Bokföringsdag;Transaktionsdag;Valutadag;Referens;Beskrivning;Belopp;Bokfört saldo"

func exportText(rows ...string) string {
	return strings.Join(append([]string{exportHeader}, rows...), "\n") + "\n"
}

func newTestParser(opts Options) (*Parser, *logging.MockLogger, *bytes.Buffer) {
	logger := logging.NewMockLogger()
	stdout := &bytes.Buffer{}
	opts.Stdout = stdout
	return NewParser(logger, opts), logger, stdout
}

func writeInput(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, content, 0600))
	return path
}

func TestParser_Parse(t *testing.T) {
	p, _, _ := newTestParser(DefaultOptions())

	transactions, err := p.Parse(strings.NewReader(exportText(
		"1;8327-9;123456789;Privatkonto;SEK;2024-03-05;2024-03-04;2024-03-05;ICA MAXI;ICA Maxi;-125,50;1000,00",
		"2;8327-9;123456789;Privatkonto;SEK;2024-03-25;2024-03-25;2024-03-25;Lön;Lön;25000,00;26000,00",
	)))
	require.NoError(t, err)

	assert.Equal(t, []models.YNABTransaction{
		{Date: "2024-03-05", Payee: "ICA Maxi", Memo: "ICA MAXI", Amount: "-125.50"},
		{Date: "2024-03-25", Payee: "Lön", Memo: "", Amount: "25000.00"},
	}, transactions)

	stats := p.LastStats()
	assert.Equal(t, 1, stats.HeaderLine)
	assert.Equal(t, ';', stats.Delimiter)
	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 2, stats.Converted)
	assert.Equal(t, 0, stats.Skipped)
}

func TestParser_Parse_PreambleAndCommaDelimiter(t *testing.T) {
	p, logger, _ := newTestParser(DefaultOptions())

	input := "* Transaktioner Privatkonto\n" +
		"Kontonummer 8327-9 123456789\n" +
		"Radnummer,Bokföringsdag,Referens,Beskrivning,Belopp\n" +
		"1,2024-03-05,Swish,Anna,\"-200,00\"\n" +
		"2,2024-03-06,Kort,Kaffe,oops\n" +
		"3,2024-03-07,Kort,Bageri,-45.00\n"

	transactions, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "-200.00", transactions[0].Amount)
	assert.Equal(t, "Bageri", transactions[1].Payee)

	stats := p.LastStats()
	assert.Equal(t, 3, stats.HeaderLine)
	assert.Equal(t, ',', stats.Delimiter)
	assert.Equal(t, 1, stats.Skipped)

	warnings := logger.GetEntriesByLevel("WARN")
	require.Len(t, warnings, 1)
	line, _ := warnings[0].Field(logging.FieldLine)
	assert.Equal(t, 5, line)
}

func TestParser_Parse_MissingColumns(t *testing.T) {
	p, _, _ := newTestParser(DefaultOptions())

	_, err := p.Parse(strings.NewReader("Radnummer;Bokföringsdag;Beskrivning\n1;2024-03-05;ICA\n"))
	require.Error(t, err)

	var missingErr *parsererror.MissingColumnsError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, []string{"Belopp"}, missingErr.Missing)
	assert.Equal(t, []string{"Radnummer", "Bokföringsdag", "Beskrivning"}, missingErr.Found)
}

func TestParser_Parse_EmptyInput(t *testing.T) {
	p, _, _ := newTestParser(DefaultOptions())

	_, err := p.Parse(strings.NewReader(""))
	var missingErr *parsererror.MissingColumnsError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, []string{"Bokföringsdag", "Belopp", "Beskrivning"}, missingErr.Missing)
	assert.Empty(t, missingErr.Found)
}

func TestParser_Parse_InvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Mapping.PayeeField = "Produkt"
	p, _, _ := newTestParser(opts)

	_, err := p.Parse(strings.NewReader(exportText()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid payee field")
}

func TestParser_ConvertToCSV_RoundTrip(t *testing.T) {
	input := writeInput(t, []byte(exportText(
		"1;8327-9;123456789;Privatkonto;SEK;2024-03-05;2024-03-04;2024-03-05;ICA;ICA;-125,50;1000,00",
	)))
	output := filepath.Join(t.TempDir(), "ynab.csv")

	p, logger, stdout := newTestParser(DefaultOptions())
	require.NoError(t, p.ConvertToCSV(input, output))

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Date,Payee,Memo,Amount\r\n2024-03-05,ICA,,-125.50\r\n", string(content))
	assert.Empty(t, stdout.String())
	assert.Equal(t, "utf-8-sig", p.LastStats().Encoding)
	assert.True(t, logger.HasEntry("INFO", "Conversion finished"))
}

func TestParser_ConvertToCSV_Stdout(t *testing.T) {
	input := writeInput(t, []byte(exportText(
		"1;8327-9;123456789;Privatkonto;SEK;2024-03-05;2024-03-04;2024-03-05;Ref;Butik;10;1000,00",
	)))

	opts := DefaultOptions()
	opts.UseCRLF = false
	opts.Mapping.ProductInMemo = true
	p, _, stdout := newTestParser(opts)
	require.NoError(t, p.ConvertToCSV(input, "STDOUT"))

	assert.Equal(t, "Date,Payee,Memo,Amount\n2024-03-05,Butik,Ref | [Privatkonto],10.00\n", stdout.String())
}

func TestParser_ConvertToCSV_Windows1252(t *testing.T) {
	// "Bokföringsdag" and "Lön" encoded as Windows-1252
	content := "Radnummer;Bokf\xf6ringsdag;Beskrivning;Belopp\r\n1;2024-03-25;L\xf6n;25000,00\r\n"
	input := writeInput(t, []byte(content))

	p, _, stdout := newTestParser(DefaultOptions())
	require.NoError(t, p.ConvertToCSV(input, "-"))

	assert.Equal(t, "Date,Payee,Memo,Amount\r\n2024-03-25,Lön,,25000.00\r\n", stdout.String())
	assert.Equal(t, "windows-1252", p.LastStats().Encoding)
}

func TestParser_ConvertToCSV_UTF8BOM(t *testing.T) {
	input := writeInput(t, append([]byte("\xef\xbb\xbf"), []byte(exportText(
		"1;8327-9;123456789;Privatkonto;SEK;2024-03-05;2024-03-04;2024-03-05;;Hyra;-8000;1000,00",
	))...))

	p, _, stdout := newTestParser(DefaultOptions())
	require.NoError(t, p.ConvertToCSV(input, "-"))

	assert.Equal(t, "Date,Payee,Memo,Amount\r\n2024-03-05,Hyra,,-8000.00\r\n", stdout.String())
	assert.Equal(t, "utf-8-sig", p.LastStats().Encoding)
}

func TestParser_ConvertToCSV_MissingColumnsWritesNothing(t *testing.T) {
	input := writeInput(t, []byte("Radnummer;Beskrivning\n1;ICA\n"))
	output := filepath.Join(t.TempDir(), "ynab.csv")

	p, _, _ := newTestParser(DefaultOptions())
	err := p.ConvertToCSV(input, output)

	var missingErr *parsererror.MissingColumnsError
	require.True(t, errors.As(err, &missingErr))
	assert.NoFileExists(t, output)
}

func TestParser_ConvertToCSV_UnknownEncoding(t *testing.T) {
	input := writeInput(t, []byte(exportText()))

	opts := DefaultOptions()
	opts.Encoding = "klingon-8"
	p, _, _ := newTestParser(opts)

	err := p.ConvertToCSV(input, "-")
	var encErr *parsererror.UnknownEncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, "klingon-8", encErr.Name)
}

func TestParser_ConvertToCSV_MissingInput(t *testing.T) {
	p, _, _ := newTestParser(DefaultOptions())

	err := p.ConvertToCSV(filepath.Join(t.TempDir(), "missing.csv"), "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParser_ConvertToCSV_OutputDirectoryMissing(t *testing.T) {
	input := writeInput(t, []byte(exportText()))
	output := filepath.Join(t.TempDir(), "no-such-dir", "ynab.csv")

	p, _, _ := newTestParser(DefaultOptions())
	err := p.ConvertToCSV(input, output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create file")
}

func TestNewParser_Defaults(t *testing.T) {
	p := NewParser(nil, DefaultOptions())

	assert.NotNil(t, p.GetLogger())
	assert.Equal(t, os.Stdout, p.Options().Stdout)
	assert.Equal(t, models.ColumnBookingDate, p.Options().Mapping.DateField)
	assert.Equal(t, models.ColumnDescription, p.Options().Mapping.PayeeField)
}
