// Copyright 2025 The unreal-git-names Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package uasset

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jus2Cat/unreal-git-names/internal/testutil"
)

func put32(b *bytes.Buffer, v int32) {
	var w [4]byte
	binary.LittleEndian.PutUint32(w[:], uint32(v))
	b.Write(w[:])
}

// rawHeader assembles just enough of a summary header for findHeader:
// magic, version filler, the anchor string, a flags word, then the name
// count and name table offset, followed by tail.
func rawHeader(anchor string, nc, no int32, tail []byte) []byte {
	var b bytes.Buffer
	b.Write(packageMagic[:])
	b.Write(make([]byte, 16))
	if anchor != "" {
		put32(&b, int32(len(anchor)+1))
		b.WriteString(anchor)
		b.WriteByte(0)
	}
	put32(&b, 0) // package flags
	put32(&b, nc)
	put32(&b, no)
	b.Write(tail)
	return b.Bytes()
}

func TestFindHeader_Golden(t *testing.T) {
	data := testutil.Minimal().Build()

	nc, no, ok := findHeader(data)
	require.True(t, ok)
	assert.Equal(t, 10, nc)
	// the offset must land on the first table entry, "None"
	require.Less(t, no+4, len(data))
	assert.Equal(t, 5, le32(data, no))
}

func TestFindHeader_RejectsShortOrBadMagic(t *testing.T) {
	good := testutil.Minimal().Build()

	for _, data := range [][]byte{
		nil,
		{},
		good[:4],
		good[:minPackageSize-1],
	} {
		_, _, ok := findHeader(data)
		require.False(t, ok)
	}

	corrupt := bytes.Clone(good)
	corrupt[0] ^= 0xFF
	_, _, ok := findHeader(corrupt)
	require.False(t, ok)
}

func TestFindHeader_NoneAnchor(t *testing.T) {
	// A transient package names itself "None". No other name may contain
	// a '/' here, or the fast path would anchor past the real string.
	data := rawHeader("None", 3, 64, make([]byte, 64))

	nc, no, ok := findHeader(data)
	require.True(t, ok)
	assert.Equal(t, 3, nc)
	assert.Equal(t, 64, no)
}

func TestFindHeader_FastPathFalseSlash(t *testing.T) {
	// A stray '/' with an implausible length prefix before it must not
	// derail the scan; the real anchor sits later.
	var b bytes.Buffer
	b.Write(packageMagic[:])
	b.Write(make([]byte, 16))
	b.Write([]byte{0xFE, 0xFF, 0xFF, 0xFF, 0xFF, '/', 0xEE, 0xDD})
	put32(&b, int32(len("/Game/X")+1))
	b.WriteString("/Game/X")
	b.WriteByte(0)
	put32(&b, 0)
	put32(&b, 7)
	put32(&b, 60)
	b.Write(make([]byte, 64))
	data := b.Bytes()

	nc, no, ok := findHeader(data)
	require.True(t, ok)
	assert.Equal(t, 7, nc)
	assert.Equal(t, 60, no)
}

func TestFindHeader_RejectsBogusCounts(t *testing.T) {
	tail := make([]byte, 64)
	for _, tc := range []struct {
		nc, no int32
	}{
		{0, 64},
		{-1, 64},
		{maxNameCount, 64},
		{10, 0},
		{10, -5},
		{10, 1 << 30}, // past end of buffer
	} {
		data := rawHeader("/Game/Maps/Test", tc.nc, tc.no, tail)
		_, _, ok := findHeader(data)
		require.False(t, ok, "nc=%d no=%d", tc.nc, tc.no)
	}
}

func TestFindHeader_AnchorPastWindow(t *testing.T) {
	// The anchor string starts inside the window but ends beyond it;
	// the scan gives up rather than trusting a straddling string.
	var b bytes.Buffer
	b.Write(packageMagic[:])
	b.Write(make([]byte, headerScanLimit-minPackageSize-6))
	put32(&b, int32(len("/Game/Far")+1))
	b.WriteString("/Game/Far")
	b.WriteByte(0)
	put32(&b, 0)
	put32(&b, 5)
	put32(&b, 40)
	b.Write(make([]byte, 2048))
	data := b.Bytes()

	_, _, ok := findHeader(data)
	require.False(t, ok)
}

func TestFindHeader_SmallFileWindow(t *testing.T) {
	// Files smaller than the scan window are still parsed; the window
	// clamps to the buffer.
	data := rawHeader("/Game/Tiny", 2, 48, make([]byte, 16))
	require.Less(t, len(data), headerScanLimit)

	nc, no, ok := findHeader(data)
	require.True(t, ok)
	assert.Equal(t, 2, nc)
	assert.Equal(t, 48, no)
}
