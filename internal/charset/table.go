// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package charset

import (
	"errors"
	"fmt"
)

// =============================================================================
// ENCODING TABLE
// =============================================================================

// Name is a key of the encoding table.
type Name string

// Table keys. UTF16 and ASCII only appear as intermediate detector results
// and are not part of the table.
const (
	None       Name = ""
	UTF8       Name = "UTF8"
	UTF8BOM    Name = "UTF8_BOM"
	SJIS       Name = "SJIS"
	JIS        Name = "JIS"
	EUCJP      Name = "EUCJP"
	UTF16BE    Name = "UTF16BE"
	UTF16LE    Name = "UTF16LE"
	UTF16BEBOM Name = "UTF16BE_BOM"
	UTF16LEBOM Name = "UTF16LE_BOM"
	Unicode    Name = "UNICODE"

	UTF16 Name = "UTF16"
	ASCII Name = "ASCII"
)

// BOMPolicy says what Convert does with a byte order mark after transcoding.
type BOMPolicy int

const (
	// BOMUnspecified leaves the output untouched.
	BOMUnspecified BOMPolicy = iota
	// BOMNone marks encodings without a BOM concept; the output is untouched.
	BOMNone
	// BOMRequired ensures the output starts with the family's BOM.
	BOMRequired
	// BOMAbsent strips a leading BOM from the output.
	BOMAbsent
)

func (p BOMPolicy) String() string {
	switch p {
	case BOMNone:
		return "none"
	case BOMRequired:
		return "required"
	case BOMAbsent:
		return "absent"
	default:
		return "unspecified"
	}
}

// Descriptor describes one table entry.
type Descriptor struct {
	Key    Name
	Family Name
	BOM    BOMPolicy
}

// Label returns a human readable label for pickers and status lines.
func (d Descriptor) Label() string {
	switch d.Key {
	case UTF8:
		return "UTF-8"
	case UTF8BOM:
		return "UTF-8 (BOM)"
	case SJIS:
		return "Shift_JIS"
	case JIS:
		return "ISO-2022-JP"
	case EUCJP:
		return "EUC-JP"
	case UTF16BE:
		return "UTF-16BE"
	case UTF16LE:
		return "UTF-16LE"
	case UTF16BEBOM:
		return "UTF-16BE (BOM)"
	case UTF16LEBOM:
		return "UTF-16LE (BOM)"
	default:
		return string(d.Key)
	}
}

var table = []Descriptor{
	{Key: UTF8, Family: UTF8, BOM: BOMAbsent},
	{Key: UTF8BOM, Family: UTF8, BOM: BOMRequired},
	{Key: SJIS, Family: SJIS, BOM: BOMNone},
	{Key: JIS, Family: JIS, BOM: BOMNone},
	{Key: EUCJP, Family: EUCJP, BOM: BOMNone},
	{Key: UTF16BE, Family: UTF16BE, BOM: BOMAbsent},
	{Key: UTF16LE, Family: UTF16LE, BOM: BOMAbsent},
	{Key: UTF16BEBOM, Family: UTF16BE, BOM: BOMRequired},
	{Key: UTF16LEBOM, Family: UTF16LE, BOM: BOMRequired},
	{Key: Unicode, Family: Unicode, BOM: BOMAbsent},
}

// Errors returned by table lookups and conversions.
var (
	// ErrUnknownEncoding indicates a name outside the encoding table.
	ErrUnknownEncoding = errors.New("unknown encoding")

	// ErrInternalEncoding indicates UNICODE was used where a file encoding is required.
	ErrInternalEncoding = errors.New("UNICODE is an internal encoding")

	// ErrUnsupportedOperation indicates a conversion into a non-string output type.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// Lookup returns the table entry for name.
func Lookup(name Name) (Descriptor, bool) {
	for _, d := range table {
		if d.Key == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Names returns the encodings a file may be read or written in, in table order.
func Names() []Name {
	names := make([]Name, 0, len(table)-1)
	for _, d := range table {
		if d.Key != Unicode {
			names = append(names, d.Key)
		}
	}
	return names
}

// ValidateFileEncoding reports whether name may be used for a file on disk.
func ValidateFileEncoding(name Name) error {
	if name == Unicode {
		return ErrInternalEncoding
	}
	if _, ok := Lookup(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEncoding, string(name))
	}
	return nil
}

// WithBOM maps a detected family and BOM flag onto a table key.
func WithBOM(family Name, bom bool) Name {
	if !bom {
		return family
	}
	switch family {
	case UTF8:
		return UTF8BOM
	case UTF16BE:
		return UTF16BEBOM
	case UTF16LE:
		return UTF16LEBOM
	}
	return family
}

// familyOf resolves a key or family name to its family.
func familyOf(name Name) (Name, error) {
	d, ok := Lookup(name)
	if !ok {
		return None, fmt.Errorf("%w: %q", ErrUnknownEncoding, string(name))
	}
	return d.Family, nil
}
