// Copyright 2025 The unreal-git-names Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package uasset

import (
	"encoding/binary"
)

// Limits bounding every scan. They are load-bearing: each one turns a
// corrupt or adversarial buffer into a cheap "no label" instead of a
// long walk through garbage.
const (
	// headerScanLimit is how deep into the file the summary header is
	// searched. Real headers put the package name well inside 1 KiB.
	headerScanLimit = 1024
	// maxHeaderString caps the plausible length prefix of the
	// package-name string.
	maxHeaderString = 256
	// maxNameCount caps the name table size; bigger counts are header
	// misreads, not real tables.
	maxNameCount = 100000
	// valueWindow is how far past a property tag the value's length
	// prefix may sit. The tag trailer grew over engine releases but
	// stays far below this.
	valueWindow = 150
	// maxValueLength caps the plausible length prefix of a label value.
	maxValueLength = 128

	// tagSize is the serialized property tag: name index and instance
	// number, type index and instance number, 4 bytes each.
	tagSize = 16
	// minPackageSize is the magic plus the fixed version block; the
	// package name never starts earlier.
	minPackageSize = 20
)

// packageMagic is the package signature 0x9E2A83C1 as it appears on
// disk, little endian.
var packageMagic = [4]byte{0xC1, 0x83, 0x2A, 0x9E}

// Kind identifies which label-carrying property a value came from.
type Kind uint8

const (
	// KindNone is the zero Kind; no label was recovered.
	KindNone Kind = iota
	// KindActorLabel is the editor display name of an actor.
	KindActorLabel
	// KindFolderLabel is the display name of a world outliner folder.
	KindFolderLabel
	// KindLabel is the bare Label property some asset types carry.
	KindLabel
)

var kindNames = [...]string{"", "ActorLabel", "FolderLabel", "Label"}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return ""
	}
	return kindNames[k]
}

// Label is a display name recovered from a package.
type Label struct {
	Kind Kind
	Text string
}

// TagPolicy selects which occurrence of the property tag is decoded
// when the 16-byte binding pattern appears more than once in a buffer.
type TagPolicy uint8

const (
	// FirstOccurrence decodes the earliest tag in the buffer.
	FirstOccurrence TagPolicy = iota
	// LastOccurrence decodes the final tag. On packages where the raw
	// pattern also shows up in unrelated export data, the real property
	// tag tends to be the later one.
	LastOccurrence
)

// Config adjusts parsing. The zero value is ready to use and decodes
// the first tag occurrence.
type Config struct {
	Tag TagPolicy
}

// Parse scans one complete package buffer for an actor or folder label.
// It reports ok == false for any buffer it cannot confidently decode:
// wrong magic, truncated data, no recognizable header, or no label
// property. It never panics on malformed input and never modifies data.
func Parse(data []byte, cfg Config) (label Label, ok bool) {
	nameCount, nameOffset, ok := findHeader(data)
	if !ok {
		return Label{}, false
	}
	labelIdx, strIdx, kind, ok := scanNames(data, nameCount, nameOffset)
	if !ok {
		return Label{}, false
	}
	tagOff, ok := findTag(data, labelIdx, strIdx, cfg.Tag)
	if !ok {
		return Label{}, false
	}
	text, ok := readValue(data, tagOff)
	if !ok {
		return Label{}, false
	}
	return Label{Kind: kind, Text: text}, true
}

// le32 reads a little-endian signed 32-bit integer, widened to int so
// callers can do offset arithmetic without overflow. Callers guarantee
// off+4 <= len(data).
func le32(data []byte, off int) int {
	return int(int32(binary.LittleEndian.Uint32(data[off:])))
}
