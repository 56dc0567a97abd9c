// Copyright 2025 The unreal-git-names Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package uasset

import (
	"bytes"
	"encoding/binary"
	"unicode/utf16"
)

// findTag searches the whole buffer for the 16-byte property tag that
// binds the label name to the StrProperty type: the two name-table
// indices, each followed by a zero instance number. The tag lives in
// the export data region, whose offset we never computed, so the search
// covers the raw buffer rather than a header-derived window.
func findTag(data []byte, labelIdx, strIdx int, policy TagPolicy) (tagOff int, ok bool) {
	var key [tagSize]byte
	binary.LittleEndian.PutUint32(key[0:4], uint32(labelIdx))
	binary.LittleEndian.PutUint32(key[8:12], uint32(strIdx))

	var off int
	if policy == LastOccurrence {
		off = bytes.LastIndex(data, key[:])
	} else {
		off = bytes.Index(data, key[:])
	}
	if off < 0 {
		return 0, false
	}
	return off, true
}

// readValue scans a bounded window after the tag for the first
// plausible length-prefixed string and decodes it. The fields between
// tag and value (size, array index, and on newer releases a GUID flag)
// differ across engine versions, so the scan advances byte by byte
// instead of modeling them.
func readValue(data []byte, tagOff int) (string, bool) {
	size := len(data)
	start := tagOff + tagSize
	end := min(start+valueWindow, size)

	for i := start; i < end-4; i++ {
		p := le32(data, i)
		if 0 < p && p < maxValueLength {
			// ASCII, NUL-terminated; the prefix counts the NUL.
			strEnd := i + 4 + p - 1
			if strEnd <= end {
				if v := data[i+4 : strEnd]; len(v) > 0 && printableASCII(v) {
					return string(v), true
				}
			}
		} else if -maxValueLength < p && p < 0 {
			// UTF-16LE; the prefix counts code units including the NUL.
			strEnd := i + 4 + -p*2 - 2
			if strEnd <= end {
				if v := data[i+4 : strEnd]; len(v) > 0 {
					return decodeUTF16LE(v), true
				}
			}
		}
	}
	return "", false
}

// printableASCII reports whether every byte is printable ASCII. Labels
// never contain control characters, so anything at or below 0x1F (or
// past 0x7F) means the candidate is binary noise, not a value.
func printableASCII(v []byte) bool {
	for _, c := range v {
		if c <= 31 || c >= 128 {
			return false
		}
	}
	return true
}

// decodeUTF16LE converts UTF-16LE bytes to a string, dropping unpaired
// surrogates outright. A mangled value should still yield whatever text
// is recoverable rather than replacement runes or a failure.
func decodeUTF16LE(b []byte) string {
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		units = append(units, binary.LittleEndian.Uint16(b[i:]))
	}

	runes := make([]rune, 0, len(units))
	for i := 0; i < len(units); i++ {
		switch c := units[i]; {
		case c < 0xD800 || c > 0xDFFF:
			runes = append(runes, rune(c))
		case c < 0xDC00 && i+1 < len(units) && units[i+1] >= 0xDC00 && units[i+1] <= 0xDFFF:
			runes = append(runes, utf16.DecodeRune(rune(c), rune(units[i+1])))
			i++
		}
	}
	return string(runes)
}
