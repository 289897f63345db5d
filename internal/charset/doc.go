// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package charset detects and converts the character encodings simplememo
// can read and write.
//
// The set of encodings is closed: UTF-8 (with or without BOM), Shift_JIS,
// ISO-2022-JP, EUC-JP and UTF-16 in both byte orders (with or without BOM).
// In memory every memo is a Go string; the pseudo-encoding UNICODE names that
// working representation and is never written to disk.
//
// # Key Types
//
//   - Name: a key of the encoding table (e.g. "UTF8_BOM", "SJIS")
//   - Descriptor: the family and BOM policy behind a Name
//   - Detection: the result of DetectCharset
//
// # Usage
//
//	det := charset.DetectCharset(raw, charset.UTF8)
//	name := charset.WithBOM(det.Name, det.BOM)
//	text, err := charset.Decode(raw, name)
//
//	out, err := charset.Encode(text, charset.SJIS)
//
// Detection ranks candidates with chardet and accepts only those whose bytes
// are well-formed in the candidate encoding.
//
// BOM handling is kept separate from transcoding so the BOM-bearing variants
// share one conversion path and differ only in their BOM policy.
package charset
