// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package charset

import (
	"bytes"
	"unicode/utf8"

	"github.com/saintfish/chardet"
)

// =============================================================================
// CHARSET DETECTION
// =============================================================================

// Detection is the result of DetectCharset.
type Detection struct {
	// Name is the detected family, or the fallback.
	Name Name
	// BOM is set when a BOM was found for a UTF-8 or UTF-16 result.
	// Which BOM is not re-derived.
	BOM bool
	// Detected is false when the fallback was returned.
	Detected bool
}

// ISO-2022-JP designation sequences.
var jisEscapes = [][]byte{
	{0x1B, '$', '@'},
	{0x1B, '$', 'B'},
	{0x1B, '$', '(', 'D'},
	{0x1B, '(', 'I'},
	{0x1B, '(', 'J'},
}

var textDetector = chardet.NewTextDetector()

// chardetNames maps the chardet charsets the table can hold.
var chardetNames = map[string]Name{
	"UTF-8":       UTF8,
	"ISO-2022-JP": JIS,
	"EUC-JP":      EUCJP,
	"Shift_JIS":   SJIS,
}

// preference breaks confidence ties, and is the probe order when chardet
// has no usable answer.
var preference = []Name{UTF8, JIS, EUCJP, SJIS}

// DetectCharset guesses the encoding of b. When nothing in the table matches
// (empty input, binary data, plain ASCII, UTF-32 or unrecognised bytes) the
// fallback is returned with Detected unset.
//
// UTF-32, UTF-16, binary data, ISO-2022-JP and ASCII are recognised from
// their byte structure. Everything else is ranked by chardet, and only
// candidates whose byte structure is well-formed are accepted. UTF-16
// without a BOM is only recognised when it holds Latin text.
func DetectCharset(b []byte, fallback Name) Detection {
	name := probe(b)
	if name == UTF16 {
		if isUTF16BE(b) {
			name = UTF16BE
		} else {
			name = UTF16LE
		}
	}

	d, ok := Lookup(name)
	if name == None || !ok || d.Key == Unicode {
		return Detection{Name: fallback}
	}

	det := Detection{Name: name, Detected: true}
	switch name {
	case UTF8, UTF16BE, UTF16LE:
		det.BOM = DetectBOM(b) != None
	}
	return det
}

func probe(b []byte) Name {
	switch {
	case len(b) == 0:
		return None
	case isUTF32(b):
		return None
	case isUTF16(b):
		return UTF16
	case isBinary(b):
		return None
	case isJIS(b):
		return JIS
	case isASCII(b):
		return ASCII
	}

	name := rank(b)
	if name == None {
		for _, candidate := range preference {
			if wellFormed(b, candidate) {
				name = candidate
				break
			}
		}
	}
	if name == EUCJP && isHalfWidthKana(b) {
		name = SJIS
	}
	return name
}

// rank returns chardet's most confident well-formed candidate, or None.
func rank(b []byte) Name {
	results, err := textDetector.DetectAll(b)
	if err != nil {
		return None
	}
	best, bestConfidence := None, 0
	for _, r := range results {
		name, ok := chardetNames[r.Charset]
		if !ok || !wellFormed(b, name) {
			continue
		}
		if r.Confidence > bestConfidence ||
			(r.Confidence == bestConfidence && preferred(name, best)) {
			best, bestConfidence = name, r.Confidence
		}
	}
	return best
}

func preferred(a, b Name) bool {
	for _, name := range preference {
		switch name {
		case a:
			return true
		case b:
			return false
		}
	}
	return false
}

func wellFormed(b []byte, name Name) bool {
	switch name {
	case UTF8:
		return utf8.Valid(b)
	case JIS:
		return isJIS(b)
	case EUCJP:
		return isEUCJP(b)
	case SJIS:
		return isSJIS(b)
	}
	return false
}

// isHalfWidthKana reports whether every non-ASCII byte of b is a Shift_JIS
// half-width katakana and, read as EUC-JP, no pair falls in the kana or
// punctuation rows. Such input is also well-formed EUC-JP kanji, which
// chardet prefers when there are few characters.
func isHalfWidthKana(b []byte) bool {
	high := 0
	for _, c := range b {
		if c < 0x80 {
			continue
		}
		if c < 0xA1 || c > 0xDF {
			return false
		}
		high++
	}
	if high == 0 {
		return false
	}
	for i := 0; i < len(b); i++ {
		if b[i] < 0x80 {
			continue
		}
		switch b[i] {
		case 0xA1, 0xA4, 0xA5:
			return false
		}
		i++
	}
	return true
}

func isUTF32(b []byte) bool {
	return bytes.HasPrefix(b, []byte{0x00, 0x00, 0xFE, 0xFF}) ||
		bytes.HasPrefix(b, []byte{0xFF, 0xFE, 0x00, 0x00})
}

// isUTF16 accepts a UTF-16 BOM, or a NUL byte paired with an ASCII byte on
// either side, which is how Latin text looks in both byte orders.
func isUTF16(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	if bytes.HasPrefix(b, bomUTF16BE) || bytes.HasPrefix(b, bomUTF16LE) {
		return true
	}
	pos := bytes.IndexByte(b, 0x00)
	if pos < 0 {
		return false
	}
	if pos+1 < len(b) && b[pos+1] > 0x00 && b[pos+1] < 0x80 {
		return true
	}
	if pos > 0 && b[pos-1] > 0x00 && b[pos-1] < 0x80 {
		return true
	}
	return false
}

// isUTF16BE is the byte-order probe run after isUTF16. A BOM decides;
// otherwise the first NUL on an even offset means the high byte comes first.
// Ties go to big-endian.
func isUTF16BE(b []byte) bool {
	if bytes.HasPrefix(b, bomUTF16BE) {
		return true
	}
	if bytes.HasPrefix(b, bomUTF16LE) {
		return false
	}
	pos := bytes.IndexByte(b, 0x00)
	return pos < 0 || pos%2 == 0
}

func isBinary(b []byte) bool {
	for _, c := range b {
		if c <= 0x06 {
			return true
		}
	}
	return false
}

func isJIS(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	for _, esc := range jisEscapes {
		if bytes.Contains(b, esc) {
			return true
		}
	}
	return false
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

func isEUCJP(b []byte) bool {
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case c < 0x80:
		case c == 0x8E: // half-width kana
			if i+1 >= len(b) || b[i+1] < 0xA1 || b[i+1] > 0xDF {
				return false
			}
			i++
		case c == 0x8F: // JIS X 0212
			if i+2 >= len(b) || !eucTrail(b[i+1]) || !eucTrail(b[i+2]) {
				return false
			}
			i += 2
		case eucTrail(c):
			if i+1 >= len(b) || !eucTrail(b[i+1]) {
				return false
			}
			i++
		default:
			return false
		}
	}
	return true
}

func eucTrail(c byte) bool {
	return c >= 0xA1 && c <= 0xFE
}

func isSJIS(b []byte) bool {
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case c < 0x80:
		case c >= 0xA1 && c <= 0xDF: // half-width kana
		case (c >= 0x81 && c <= 0x9F) || (c >= 0xE0 && c <= 0xFC):
			if i+1 >= len(b) {
				return false
			}
			t := b[i+1]
			if t < 0x40 || t > 0xFC || t == 0x7F {
				return false
			}
			i++
		default:
			return false
		}
	}
	return true
}
