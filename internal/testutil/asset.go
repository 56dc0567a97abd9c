// Copyright 2025 The unreal-git-names Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package testutil builds synthetic One File Per Actor packages for
// tests and corpus generation. The layout mirrors what modern engine
// releases serialize closely enough to exercise every parser path:
// summary header with a package-name anchor, a name table with optional
// per-entry extra words, and a property tag followed by a
// length-prefixed value.
package testutil

import (
	"bytes"
	"encoding/binary"
	"slices"
	"unicode/utf16"
)

// Magic is the on-disk package signature, little endian.
var Magic = [4]byte{0xC1, 0x83, 0x2A, 0x9E}

// versionBlock fills the 16 bytes between the magic and the
// package-name string: legacy file version, legacy UE3 version, UE4
// version, licensee version. The values are typical for a 5.x package
// and contain no byte that could be mistaken for a string anchor.
var versionBlock = [4]int32{-8, 864, 522, 0}

// Asset describes a synthetic package. The zero value is not useful;
// start from Minimal and override fields. Names lists the name table in
// index order, and LabelIndex/TypeIndex are serialized verbatim into
// the property tag, so a test may deliberately point them at the wrong
// entries.
type Asset struct {
	PackageName string   // header anchor string, e.g. "/Game/Maps/Test"
	Names       []string // name table entries, in index order
	LabelIndex  int      // tag's name slot
	TypeIndex   int      // tag's type slot
	LabelText   string   // property value
	WideLabel   bool     // encode LabelText as UTF-16LE
	WideNames   []int    // table indices stored as UTF-16LE
	ExtraWords  bool     // append a 32-bit word after every name entry
	Extras      []int32  // per-index extra words; missing entries get 0

	HeaderPad int    // zero filler between header fields and the name table
	TagGap    int    // bytes between tag and value prefix; 8 emits size+index
	OmitTag   bool   // serialize no property tag or value
	Duplicate string // nonempty: emit a second tag and this value after the first
	Trailer   []byte // raw bytes appended after everything else
}

// Minimal is a well-formed actor package: ten names with ActorLabel at
// index 3 and StrProperty at index 7, one matching tag, and "Door_01"
// as the value.
func Minimal() Asset {
	return Asset{
		PackageName: "/Game/Maps/Test",
		Names: []string{
			"None", "Package", "PackageMetaData", "ActorLabel",
			"/Script/Engine", "StaticMeshActor", "RootComponent",
			"StrProperty", "SceneComponent", "Default__StaticMeshActor",
		},
		LabelIndex: 3,
		TypeIndex:  7,
		LabelText:  "Door_01",
		TagGap:     8,
	}
}

// Build serializes the package. The name count and name table offset
// are patched into the header after assembly, the same way the engine
// backfills summary fields once their targets are written.
func (a Asset) Build() []byte {
	var b bytes.Buffer

	b.Write(Magic[:])
	for _, v := range versionBlock {
		writeInt32(&b, v)
	}
	writeString(&b, a.PackageName, false)

	// Package flags (PKG_FilterEditorOnly, as cooked packages carry),
	// then placeholders for name count and name table offset.
	writeUint32(&b, 0x80000000)
	countOff := b.Len()
	writeInt32(&b, 0)
	writeInt32(&b, 0)

	if a.HeaderPad > 0 {
		b.Write(make([]byte, a.HeaderPad))
	}

	nameOff := b.Len()
	for i, name := range a.Names {
		writeString(&b, name, slices.Contains(a.WideNames, i))
		if a.ExtraWords {
			var extra int32
			if i < len(a.Extras) {
				extra = a.Extras[i]
			}
			writeInt32(&b, extra)
		}
	}

	if !a.OmitTag {
		// A little unrelated export data between table and tag.
		b.Write(make([]byte, 32))
		a.writeTagged(&b, a.LabelText)
		if a.Duplicate != "" {
			b.Write(make([]byte, 24))
			a.writeTagged(&b, a.Duplicate)
		}
	}

	b.Write(a.Trailer)

	data := b.Bytes()
	binary.LittleEndian.PutUint32(data[countOff:], uint32(len(a.Names)))
	binary.LittleEndian.PutUint32(data[countOff+4:], uint32(nameOff))
	return data
}

// writeTagged emits the 16-byte property tag, the gap fields, and the
// length-prefixed value. A TagGap of exactly 8 reproduces the usual
// size and array-index fields; any other width is zero filler.
func (a Asset) writeTagged(b *bytes.Buffer, text string) {
	writeInt32(b, int32(a.LabelIndex))
	writeInt32(b, 0)
	writeInt32(b, int32(a.TypeIndex))
	writeInt32(b, 0)

	var value bytes.Buffer
	writeString(&value, text, a.WideLabel)

	if a.TagGap == 8 {
		writeInt32(b, int32(value.Len()))
		writeInt32(b, 0)
	} else if a.TagGap > 0 {
		b.Write(make([]byte, a.TagGap))
	}
	b.Write(value.Bytes())
}

// writeString emits a serialized FString: a signed 32-bit count of
// NUL-terminated characters, negative for UTF-16LE, then the bytes and
// the terminator. An empty string writes nothing at all, which lets
// tests assemble packages with missing fields.
func writeString(b *bytes.Buffer, s string, wide bool) {
	if s == "" {
		return
	}
	if wide {
		units := utf16.Encode([]rune(s))
		writeInt32(b, -int32(len(units)+1))
		for _, u := range units {
			var w [2]byte
			binary.LittleEndian.PutUint16(w[:], u)
			b.Write(w[:])
		}
		b.Write([]byte{0, 0})
		return
	}
	writeInt32(b, int32(len(s)+1))
	b.WriteString(s)
	b.WriteByte(0)
}

func writeInt32(b *bytes.Buffer, v int32) {
	writeUint32(b, uint32(v))
}

func writeUint32(b *bytes.Buffer, v uint32) {
	var w [4]byte
	binary.LittleEndian.PutUint32(w[:], v)
	b.Write(w[:])
}
