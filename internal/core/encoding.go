package core

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// utf8BOM is the byte order mark some spreadsheet tools prepend to UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// encodingCandidate is one entry in the decoding fallback chain.
type encodingCandidate struct {
	name string
	enc  encoding.Encoding // nil means the bytes are used as-is
	bom  bool              // require and strip a UTF-8 byte order mark
}

// importEncodings is the fallback chain for uploaded files, tried in
// order. cp932 is the Windows superset of Shift_JIS; the same decoder
// handles both.
var importEncodings = []encodingCandidate{
	{name: "utf-8-sig", bom: true},
	{name: "utf-8"},
	{name: "shift_jis", enc: japanese.ShiftJIS},
	{name: "cp932", enc: japanese.ShiftJIS},
}

// tryDecode attempts one candidate and reports whether it can represent
// the input.
func tryDecode(raw []byte, c encodingCandidate) ([]byte, bool) {
	if c.enc == nil {
		if c.bom {
			if !bytes.HasPrefix(raw, utf8BOM) {
				return nil, false
			}
			raw = raw[len(utf8BOM):]
		}
		if !utf8.Valid(raw) {
			return nil, false
		}
		return raw, true
	}

	decoded, _, err := transform.Bytes(c.enc.NewDecoder(), raw)
	if err != nil {
		return nil, false
	}
	// The decoder substitutes U+FFFD for bytes it cannot map instead of
	// failing, so finding one means the candidate does not fit.
	if !utf8.Valid(decoded) || bytes.ContainsRune(decoded, utf8.RuneError) {
		return nil, false
	}
	return decoded, true
}

// DecodeAndParse decodes an uploaded file and parses it as CSV. The
// fallback chain is tried in order and a candidate only wins when the
// decoded text also parses from start to finish. When every candidate
// fails, the returned error lists the encodings tried.
func DecodeAndParse(raw []byte) ([]Row, string, error) {
	tried := make([]string, 0, len(importEncodings))
	for _, c := range importEncodings {
		tried = append(tried, c.name)
		decoded, ok := tryDecode(raw, c)
		if !ok {
			continue
		}
		rows, err := parseCSV(decoded)
		if err != nil {
			continue
		}
		return rows, c.name, nil
	}
	return nil, "", &ImportDecodingError{Tried: tried}
}
