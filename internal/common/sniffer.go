package common

import (
	"slices"
	"strings"
	"unicode"
)

// DelimiterCandidates are the field delimiters SniffDelimiter chooses from,
// in order of preference when the sample is equally consistent for both.
var DelimiterCandidates = []rune{',', ';'}

// SniffDelimiter picks ',' or ';' for sample, normally the header line plus
// a few data lines.
//
// Delimiters next to quoted fields are considered first, then how
// consistently each candidate occurs per line. When neither analysis is
// conclusive the first line decides: the more frequent of ';' and ',' wins,
// with ties going to ';'.
func SniffDelimiter(sample string) rune {
	if d, ok := sniffQuoted(sample); ok {
		return d
	}
	if d, ok := sniffConsistency(sample); ok {
		return d
	}
	return countDelimiter(firstLine(sample))
}

func sniffQuoted(sample string) (rune, bool) {
	text := []rune(sample)
	for _, match := range quotedFieldMatchers {
		delims, matched := findQuotedDelimiters(text, match)
		if !matched {
			continue
		}

		counts := make(map[rune]int)
		var order []rune
		for _, d := range delims {
			if !slices.Contains(DelimiterCandidates, d) {
				continue
			}
			if counts[d] == 0 {
				order = append(order, d)
			}
			counts[d]++
		}
		if len(order) == 0 {
			return 0, false
		}

		best := order[0]
		for _, d := range order[1:] {
			if counts[d] > counts[best] {
				best = d
			}
		}
		return best, true
	}
	return 0, false
}

// quotedFieldMatcher tries to match a quoted field at position i. It returns
// the end of the match and the delimiter found next to the field, which is
// zero when the shape has none.
type quotedFieldMatcher func(text []rune, i int) (end int, delim rune, ok bool)

// quotedFieldMatchers are tried in order and the first with any match is
// used: a quoted field between two equal delimiters, a quoted field at the
// start of a line followed by a delimiter, and a quoted field at the end of
// a line preceded by a delimiter.
var quotedFieldMatchers = []quotedFieldMatcher{
	matchBetweenDelimiters,
	matchLineStart,
	matchLineEnd,
}

// findQuotedDelimiters scans text for non-overlapping matches, leftmost first.
func findQuotedDelimiters(text []rune, match quotedFieldMatcher) ([]rune, bool) {
	var delims []rune
	matched := false
	for i := 0; i < len(text); {
		end, d, ok := match(text, i)
		if !ok {
			i++
			continue
		}
		matched = true
		delims = append(delims, d)
		i = end
	}
	return delims, matched
}

func matchBetweenDelimiters(text []rune, i int) (int, rune, bool) {
	d := text[i]
	if !isDelimiterChar(d) {
		return 0, 0, false
	}
	q, ok := openingQuote(text, i+1)
	if !ok {
		return 0, 0, false
	}
	for j := q + 1; j+1 < len(text); j++ {
		if text[j] == text[q] && text[j+1] == d {
			return j + 2, d, true
		}
	}
	return 0, 0, false
}

func matchLineStart(text []rune, i int) (int, rune, bool) {
	var q int
	switch {
	case (i == 0 || text[i-1] == '\n') && isQuote(text[i]):
		q = i
	case text[i] == '\n' && i+1 < len(text) && isQuote(text[i+1]):
		q = i + 1
	default:
		return 0, 0, false
	}
	for j := q + 1; j+1 < len(text); j++ {
		if text[j] == text[q] && isDelimiterChar(text[j+1]) {
			end := j + 2
			if end < len(text) && text[end] == ' ' {
				end++
			}
			return end, text[j+1], true
		}
	}
	return 0, 0, false
}

func matchLineEnd(text []rune, i int) (int, rune, bool) {
	d := text[i]
	if !isDelimiterChar(d) {
		return 0, 0, false
	}
	q, ok := openingQuote(text, i+1)
	if !ok {
		return 0, 0, false
	}
	for j := q + 1; j < len(text); j++ {
		if text[j] == text[q] && (j+1 == len(text) || text[j+1] == '\n') {
			return j + 1, d, true
		}
	}
	return 0, 0, false
}

// openingQuote finds a quote at i, or at i+1 after a single space.
func openingQuote(text []rune, i int) (int, bool) {
	if i+1 < len(text) && text[i] == ' ' && isQuote(text[i+1]) {
		return i + 1, true
	}
	if i < len(text) && isQuote(text[i]) {
		return i, true
	}
	return 0, false
}

func isQuote(r rune) bool {
	return r == '"' || r == '\''
}

// isDelimiterChar reports whether r can delimit a quoted field: anything but
// a word character, a newline or a quote.
func isDelimiterChar(r rune) bool {
	return r != '\n' && r != '_' && !isQuote(r) && !unicode.IsLetter(r) && !unicode.IsNumber(r)
}

// mode is the most common per-line count of a delimiter together with its
// net support: lines having that count minus lines having any other count.
type mode struct {
	count   int
	support int
}

const sniffChunkLines = 10

func sniffConsistency(sample string) (rune, bool) {
	var lines []string
	for _, line := range strings.Split(sample, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return 0, false
	}

	// per delimiter: count-per-line -> number of lines, in first-seen order
	frequencies := make(map[rune]*frequencyTable)
	for _, d := range DelimiterCandidates {
		frequencies[d] = &frequencyTable{lines: make(map[int]int)}
	}

	chunk := min(sniffChunkLines, len(lines))
	var consistent map[rune]mode
	for start, iteration := 0, 1; start < len(lines); start, iteration = start+chunk, iteration+1 {
		end := min(start+chunk, len(lines))
		for _, line := range lines[start:end] {
			for _, d := range DelimiterCandidates {
				frequencies[d].add(strings.Count(line, string(d)))
			}
		}

		modes := make(map[rune]mode)
		for _, d := range DelimiterCandidates {
			if m, ok := frequencies[d].mode(); ok {
				modes[d] = m
			}
		}

		total := float64(min(chunk*iteration, len(lines)))
		consistent = make(map[rune]mode)
		// The threshold steps down by repeated float subtraction, so the
		// last one tried is just above 0.91.
		for threshold := 1.0; len(consistent) == 0 && threshold >= 0.9; threshold -= 0.01 {
			for d, m := range modes {
				if m.count > 0 && m.support > 0 && float64(m.support)/total >= threshold {
					consistent[d] = m
				}
			}
		}

		if len(consistent) == 1 {
			for d := range consistent {
				return d, true
			}
		}
	}

	for _, d := range DelimiterCandidates {
		if _, ok := consistent[d]; ok {
			return d, true
		}
	}
	return 0, false
}

type frequencyTable struct {
	lines map[int]int
	order []int
}

func (f *frequencyTable) add(count int) {
	if _, seen := f.lines[count]; !seen {
		f.order = append(f.order, count)
	}
	f.lines[count]++
}

// mode returns false when the delimiter never occurs.
func (f *frequencyTable) mode() (mode, bool) {
	if len(f.order) == 1 && f.order[0] == 0 {
		return mode{}, false
	}

	best := f.order[0]
	for _, count := range f.order[1:] {
		if f.lines[count] > f.lines[best] {
			best = count
		}
	}

	support := f.lines[best]
	for _, count := range f.order {
		if count != best {
			support -= f.lines[count]
		}
	}
	return mode{count: best, support: support}, true
}

func countDelimiter(line string) rune {
	if strings.Count(line, ";") >= strings.Count(line, ",") {
		return ';'
	}
	return ','
}

func firstLine(sample string) string {
	if i := strings.IndexAny(sample, "\r\n"); i >= 0 {
		return sample[:i]
	}
	return sample
}
