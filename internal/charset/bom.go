// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package charset

import "bytes"

// =============================================================================
// BYTE ORDER MARKS
// =============================================================================

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// DetectBOM reports which BOM b starts with: UTF8, UTF16BE, UTF16LE or None.
// Only the leading signature bytes are inspected.
func DetectBOM(b []byte) Name {
	switch {
	case bytes.HasPrefix(b, bomUTF8):
		return UTF8
	case bytes.HasPrefix(b, bomUTF16BE):
		return UTF16BE
	case bytes.HasPrefix(b, bomUTF16LE):
		return UTF16LE
	}
	return None
}

// bomFor returns the canonical BOM of a family, or nil if it has none.
func bomFor(family Name) []byte {
	switch family {
	case UTF8:
		return bomUTF8
	case UTF16BE:
		return bomUTF16BE
	case UTF16LE:
		return bomUTF16LE
	}
	return nil
}

// AddBOM prepends the BOM of enc to b unless b already starts with one.
// enc may be a family or any table key of that family. Encodings without a
// BOM leave b unchanged. The input slice is never modified.
func AddBOM(b []byte, enc Name) []byte {
	if DetectBOM(b) != None {
		return b
	}
	family := enc
	if d, ok := Lookup(enc); ok {
		family = d.Family
	}
	mark := bomFor(family)
	if mark == nil {
		return b
	}
	out := make([]byte, 0, len(mark)+len(b))
	out = append(out, mark...)
	return append(out, b...)
}

// RemoveBOM strips the detected BOM from the front of b.
func RemoveBOM(b []byte) []byte {
	if mark := bomFor(DetectBOM(b)); mark != nil {
		return b[len(mark):]
	}
	return b
}
