// Copyright 2025 The unreal-git-names Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package uasset

import (
	"bytes"
)

// findHeader locates the name table without modeling the summary
// header, whose field layout shifts between engine releases. It returns
// the table's entry count and byte offset.
//
// The anchor is the package-name string: the first length-prefixed
// string after the fixed version block, reading "/Game/..." or "None"
// for transient packages. The name count and name table offset sit at a
// fixed distance past its terminator, so finding the string instead of
// decoding version fields keeps one code path valid from UE 4.26
// through 5.7.
func findHeader(data []byte) (nameCount, nameOffset int, ok bool) {
	size := len(data)
	if size < minPackageSize || !bytes.Equal(data[:4], packageMagic[:]) {
		return 0, 0, false
	}

	window := min(size, headerScanLimit)

	// Fast path: the package name almost always starts with '/', and its
	// length prefix sits 4 bytes before the slash.
	start := minPackageSize
	if s := bytes.IndexByte(data[minPackageSize:window], '/'); s >= 0 {
		s += minPackageSize
		if s >= minPackageSize+4 {
			if p := le32(data, s-4); 0 < p && p < maxHeaderString {
				start = s - 4
			}
		}
	}

	// Byte-granular scan for a plausible length prefix followed by a
	// package-name-shaped string. The fast path only picks the starting
	// point; a false '/' hit is stepped over here.
	limit := window - minPackageSize
	for off := start; off < limit; off++ {
		p := le32(data, off)
		if p <= 0 || p >= maxHeaderString {
			continue
		}
		strEnd := off + 4 + p
		if strEnd > limit {
			// Every later candidate would end deeper still; the header
			// is not where we expect it.
			break
		}
		c := data[off+4]
		if c != '/' && !(c == 'N' && string(data[off+4:off+8]) == "None") {
			continue
		}
		base := strEnd
		if base+12 > window {
			continue
		}
		nc := le32(data, base+4)
		no := le32(data, base+8)
		if 0 < nc && nc < maxNameCount && 0 < no && no < size {
			return nc, no, true
		}
	}
	return 0, 0, false
}
