package fileutils

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/parsererror"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Canonical names of the built-in candidate encodings.
const (
	EncodingUTF8SIG     = "utf-8-sig"
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingLatin1      = "iso-8859-1"
	// EncodingUTF8Replace is reported when no candidate decoded cleanly and
	// invalid sequences were substituted with U+FFFD.
	EncodingUTF8Replace = "utf-8 (replace)"
)

// DefaultEncodings is the fallback order tried after any forced encoding.
var DefaultEncodings = []string{
	EncodingUTF8SIG,
	EncodingUTF8,
	EncodingWindows1252,
	EncodingLatin1,
}

var (
	utf8BOM         = []byte{0xEF, 0xBB, 0xBF}
	replacementChar = []byte("\uFFFD")
)

// decodeFunc returns the decoded text and whether decoding was clean.
type decodeFunc func(data []byte) (string, bool)

var aliases = map[string]string{
	"utf-8-sig":    EncodingUTF8SIG,
	"utf8-sig":     EncodingUTF8SIG,
	"utf-8":        EncodingUTF8,
	"utf8":         EncodingUTF8,
	"cp1252":       EncodingWindows1252,
	"windows-1252": EncodingWindows1252,
	"1252":         EncodingWindows1252,
	"latin-1":      EncodingLatin1,
	"latin1":       EncodingLatin1,
	"l1":           EncodingLatin1,
	"iso-8859-1":   EncodingLatin1,
	"iso8859-1":    EncodingLatin1,
}

var builtin = map[string]decodeFunc{
	EncodingUTF8SIG:     decodeUTF8SIG,
	EncodingUTF8:        decodeUTF8,
	EncodingWindows1252: decodeWindows1252,
	EncodingLatin1:      decodeWith(charmap.ISO8859_1),
}

// resolveEncoding maps an encoding name to a decoder. Common short
// names resolve through the alias table, the rest through the IANA and
// WHATWG registries.
func resolveEncoding(name string) (string, decodeFunc, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if canonical, ok := aliases[key]; ok {
		return canonical, builtin[canonical], nil
	}

	if enc, err := ianaindex.IANA.Encoding(key); err == nil && enc != nil {
		canonical, _ := ianaindex.IANA.Name(enc)
		if canonical == "" {
			canonical = key
		}
		return canonical, decodeWith(enc), nil
	}

	if enc, err := htmlindex.Get(key); err == nil {
		canonical, _ := htmlindex.Name(enc)
		if canonical == "" {
			canonical = key
		}
		return canonical, decodeWith(enc), nil
	}

	return "", nil, &parsererror.UnknownEncodingError{Name: name}
}

// DecodeText decodes data trying forcedEncoding first (when non-empty) and
// then DefaultEncodings. It returns the text and the name of the encoding
// that decoded it. Only an unknown forcedEncoding produces an error; when
// every candidate fails the data is decoded as UTF-8 with U+FFFD
// substituted for invalid bytes.
func DecodeText(data []byte, forcedEncoding string) (string, string, error) {
	type candidate struct {
		name   string
		decode decodeFunc
	}

	var candidates []candidate
	if forcedEncoding != "" {
		name, decode, err := resolveEncoding(forcedEncoding)
		if err != nil {
			return "", "", err
		}
		candidates = append(candidates, candidate{name, decode})
	}
	for _, name := range DefaultEncodings {
		candidates = append(candidates, candidate{name, builtin[name]})
	}

	for _, c := range candidates {
		if text, ok := c.decode(data); ok {
			return text, c.name, nil
		}
	}

	text, _ := unicode.UTF8.NewDecoder().Bytes(data)
	return string(text), EncodingUTF8Replace, nil
}

func decodeUTF8(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

func decodeUTF8SIG(data []byte) (string, bool) {
	return decodeUTF8(bytes.TrimPrefix(data, utf8BOM))
}

// Windows-1252 leaves five byte values unassigned.
var windows1252Undefined = []byte{0x81, 0x8D, 0x8F, 0x90, 0x9D}

func decodeWindows1252(data []byte) (string, bool) {
	for _, b := range windows1252Undefined {
		if bytes.IndexByte(data, b) >= 0 {
			return "", false
		}
	}
	return decodeWith(charmap.Windows1252)(data)
}

// decodeWith wraps an x/text encoding. Decoding counts as failed when the
// decoder had to invent replacement characters.
func decodeWith(enc encoding.Encoding) decodeFunc {
	return func(data []byte) (string, bool) {
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		if bytes.Contains(out, replacementChar) && !bytes.Contains(data, replacementChar) {
			return "", false
		}
		return string(out), true
	}
}
