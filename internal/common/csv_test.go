package common

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecords(t *testing.T) {
	text := "Radnummer;Beskrivning;Belopp\n" +
		"1;ICA Maxi;-125,50\n" +
		"\n" +
		"2;\"Semi;colon\";10\n" +
		"3;Kort\n" +
		"4;Extra;1;unexpected\n"

	header, records, err := ReadRecords(text, ';')
	require.NoError(t, err)
	assert.Equal(t, []string{"Radnummer", "Beskrivning", "Belopp"}, header)
	require.Len(t, records, 4)

	assert.Equal(t, 2, records[0].Line)
	assert.Equal(t, models.SourceRow{"Radnummer": "1", "Beskrivning": "ICA Maxi", "Belopp": "-125,50"}, records[0].Row)

	assert.Equal(t, 4, records[1].Line, "blank line is skipped but counted")
	assert.Equal(t, "Semi;colon", records[1].Row["Beskrivning"])

	_, ok := records[2].Row.Lookup("Belopp")
	assert.False(t, ok, "short record leaves trailing column absent")

	assert.Len(t, records[3].Row, 3, "extra values are dropped")
}

func TestReadRecords_Empty(t *testing.T) {
	header, records, err := ReadRecords("", ',')
	require.NoError(t, err)
	assert.Empty(t, header)
	assert.Empty(t, records)
}

func TestReadRecords_LazyQuotes(t *testing.T) {
	_, records, err := ReadRecords("A,B\nsay \"hi\",2\n", ',')
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, `say "hi"`, records[0].Row["A"])
}

func TestMissingColumns(t *testing.T) {
	header := []string{"Radnummer", "Bokföringsdag", "Beskrivning"}

	assert.Equal(t, []string{}, MissingColumns(header, []string{"Bokföringsdag", "Beskrivning"}))
	assert.Equal(t, []string{"Belopp"}, MissingColumns(header, []string{"Bokföringsdag", "Belopp", "Beskrivning"}))
	assert.Equal(t, []string{"Valutadag", "Belopp"},
		MissingColumns(header, []string{"Valutadag", "Belopp", "Valutadag"}))
	assert.Equal(t, []string{"Belopp"}, MissingColumns(nil, []string{"Belopp"}))
}

func TestWriteYNABTransactions(t *testing.T) {
	transactions := []models.YNABTransaction{
		{Date: "2024-03-05", Payee: "ICA Maxi", Memo: "", Amount: "-125.50"},
		{Date: "2024-03-06", Payee: "Lön, mars", Memo: "ref | [Privatkonto]", Amount: "25000.00"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteYNABTransactions(&buf, transactions, false))

	expected := "Date,Payee,Memo,Amount\n" +
		"2024-03-05,ICA Maxi,,-125.50\n" +
		"2024-03-06,\"Lön, mars\",ref | [Privatkonto],25000.00\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteYNABTransactions_CRLF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYNABTransactions(&buf, []models.YNABTransaction{
		{Date: "2024-03-05", Payee: "A", Amount: "1.00"},
	}, true))

	assert.Equal(t, "Date,Payee,Memo,Amount\r\n2024-03-05,A,,1.00\r\n", buf.String())
}

func TestWriteYNABTransactions_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYNABTransactions(&buf, nil, false))
	assert.Equal(t, "Date,Payee,Memo,Amount\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteYNABTransactions_WriteError(t *testing.T) {
	err := WriteYNABTransactions(failingWriter{}, []models.YNABTransaction{{Date: "2024-03-05"}}, false)
	assert.Error(t, err)
}
