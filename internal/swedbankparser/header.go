package swedbankparser

import (
	"strings"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/models"
)

// sniffSampleLines is the number of lines, header included, handed to the
// delimiter sniffer.
const sniffSampleLines = 10

// FindHeaderIndex returns the index of the header line: the first line that
// mentions the amount column together with the description or reference
// column. Exports may start with account summary lines. When no line
// qualifies the first line is assumed to be the header.
func FindHeaderIndex(lines []string) int {
	for i, line := range lines {
		if !strings.Contains(line, models.ColumnAmount) {
			continue
		}
		if strings.Contains(line, models.ColumnDescription) || strings.Contains(line, models.ColumnReference) {
			return i
		}
	}
	return 0
}

// sniffSample joins the header line and up to nine following lines.
func sniffSample(lines []string, headerIdx int) string {
	if headerIdx >= len(lines) {
		return ""
	}
	end := min(headerIdx+sniffSampleLines, len(lines))
	return strings.Join(lines[headerIdx:end], "\n")
}
