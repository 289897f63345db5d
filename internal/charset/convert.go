// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package charset

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// =============================================================================
// CONVERSION
// =============================================================================

// OutputType selects the shape of Convert's result. Only OutputString is
// implemented; the others exist so callers can ask and be refused.
type OutputType int

const (
	// OutputString returns the converted text as its encoded byte sequence.
	OutputString OutputType = iota
	// OutputArray would return decoded code points.
	OutputArray
	// OutputArrayBuffer would return a raw buffer view.
	OutputArrayBuffer
)

// Options configures Convert.
type Options struct {
	// From and To are table keys (or families).
	From Name
	To   Name
	// BOM is applied to the output after transcoding.
	BOM BOMPolicy
	// Output must be OutputString.
	Output OutputType
}

// Convert transcodes data from opts.From to opts.To and then applies the BOM
// policy, which only looks at the target family's own BOM. A BOM on the
// input is consumed by decoding. Runes that cannot be represented in the
// target are substituted and malformed input decodes to U+FFFD; neither is
// an error.
func Convert(data []byte, opts Options) ([]byte, error) {
	if opts.Output != OutputString {
		return nil, fmt.Errorf("%w: output type %d", ErrUnsupportedOperation, opts.Output)
	}
	from, err := familyOf(opts.From)
	if err != nil {
		return nil, fmt.Errorf("convert from: %w", err)
	}
	to, err := familyOf(opts.To)
	if err != nil {
		return nil, fmt.Errorf("convert to: %w", err)
	}

	text, err := decode(data, from)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", from, err)
	}
	out, err := encode(text, to)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", to, err)
	}

	switch opts.BOM {
	case BOMRequired:
		if mark := bomFor(to); mark != nil && !bytes.HasPrefix(out, mark) {
			out = append(append(make([]byte, 0, len(mark)+len(out)), mark...), out...)
		}
	case BOMAbsent:
		out = bytes.TrimPrefix(out, outputBOM(to))
	}
	return out, nil
}

// outputBOM returns the BOM a family's output can start with. The working
// representation shares UTF-8's.
func outputBOM(family Name) []byte {
	if family == Unicode {
		return bomUTF8
	}
	return bomFor(family)
}

// Decode converts file bytes in encoding key into the working representation.
// The result never starts with a BOM.
func Decode(data []byte, key Name) (string, error) {
	if err := ValidateFileEncoding(key); err != nil {
		return "", err
	}
	out, err := Convert(data, Options{From: key, To: Unicode, BOM: BOMAbsent})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Encode converts working text into file bytes for key, honouring the
// table's BOM policy for key.
func Encode(text string, key Name) ([]byte, error) {
	if err := ValidateFileEncoding(key); err != nil {
		return nil, err
	}
	d, _ := Lookup(key)
	return Convert([]byte(text), Options{From: Unicode, To: key, BOM: d.BOM})
}

// codec returns the x/text encoding for a family, or nil for the families
// that share the working representation's byte form.
func codec(family Name) (encoding.Encoding, error) {
	switch family {
	case Unicode, UTF8:
		return nil, nil
	case SJIS:
		return japanese.ShiftJIS, nil
	case EUCJP:
		return japanese.EUCJP, nil
	case JIS:
		return japanese.ISO2022JP, nil
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, string(family))
}

func decode(data []byte, family Name) (string, error) {
	if family == Unicode {
		return strings.TrimPrefix(string(data), "\uFEFF"), nil
	}
	dec := unicode.UTF8.NewDecoder()
	if family != UTF8 {
		enc, err := codec(family)
		if err != nil {
			return "", err
		}
		dec = enc.NewDecoder()
	}
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(string(out), "\uFEFF"), nil
}

func encode(text string, family Name) ([]byte, error) {
	text = strings.ToValidUTF8(text, "\uFFFD")
	enc, err := codec(family)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return []byte(text), nil
	}
	out, _, err := transform.Bytes(encoding.ReplaceUnsupported(enc.NewEncoder()), []byte(text))
	if err != nil {
		return nil, err
	}
	return out, nil
}
