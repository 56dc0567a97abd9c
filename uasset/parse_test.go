// Copyright 2025 The unreal-git-names Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package uasset

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"github.com/Jus2Cat/unreal-git-names/internal/testutil"
)

var fuzzSeed = sha256.Sum256([]byte("unreal-git-names parse fuzz"))

func TestParse_Golden(t *testing.T) {
	data := testutil.Minimal().Build()

	label, ok := Parse(data, Config{})
	require.True(t, ok)
	assert.Equal(t, KindActorLabel, label.Kind)
	assert.Equal(t, "Door_01", label.Text)
}

func TestParse_Deterministic(t *testing.T) {
	data := testutil.Minimal().Build()

	first, ok := Parse(data, Config{})
	require.True(t, ok)
	again, ok := Parse(data, Config{})
	require.True(t, ok)
	assert.Equal(t, first, again)
}

func TestParse_FolderLabel(t *testing.T) {
	a := testutil.Minimal()
	a.Names[3] = "FolderLabel"
	a.LabelText = "Lighting/Interior"

	label, ok := Parse(a.Build(), Config{})
	require.True(t, ok)
	assert.Equal(t, KindFolderLabel, label.Kind)
	assert.Equal(t, "Lighting/Interior", label.Text)
}

func TestParse_WideLabel(t *testing.T) {
	a := testutil.Minimal()
	a.LabelText = "Дверь_01"
	a.WideLabel = true

	label, ok := Parse(a.Build(), Config{})
	require.True(t, ok)
	assert.Equal(t, "Дверь_01", label.Text)
}

func TestParse_WideNameEntries(t *testing.T) {
	a := testutil.Minimal()
	a.Names[1] = "Пакет"
	a.Names[8] = "シーン"
	a.WideNames = []int{1, 8}

	label, ok := Parse(a.Build(), Config{})
	require.True(t, ok)
	assert.Equal(t, "Door_01", label.Text)
}

func TestParse_ExtraNameWords(t *testing.T) {
	hashes := make([]int32, 10)
	for i := range hashes {
		hashes[i] = int32(0x77000000 + i*1315423911)
	}

	a := testutil.Minimal()
	a.ExtraWords = true

	label, ok := Parse(a.Build(), Config{})
	require.True(t, ok, "zero extra words")
	assert.Equal(t, "Door_01", label.Text)

	a.Extras = hashes
	label, ok = Parse(a.Build(), Config{})
	require.True(t, ok, "hash extra words")
	assert.Equal(t, "Door_01", label.Text)
}

func TestParse_TagPolicy(t *testing.T) {
	a := testutil.Minimal()
	a.Duplicate = "Door_02"
	data := a.Build()

	label, ok := Parse(data, Config{})
	require.True(t, ok)
	assert.Equal(t, "Door_01", label.Text)

	label, ok = Parse(data, Config{Tag: LastOccurrence})
	require.True(t, ok)
	assert.Equal(t, "Door_02", label.Text)
}

func TestParse_HeaderPad(t *testing.T) {
	a := testutil.Minimal()
	a.HeaderPad = 100

	label, ok := Parse(a.Build(), Config{})
	require.True(t, ok)
	assert.Equal(t, "Door_01", label.Text)
}

func TestParse_Negatives(t *testing.T) {
	noTag := testutil.Minimal()
	noTag.OmitTag = true

	noLabelName := testutil.Minimal()
	noLabelName.Names[3] = "ActorLabet" // same length, wrong bytes

	noStrProperty := testutil.Minimal()
	noStrProperty.Names[7] = "IntProperty" // not the type we bind to

	mismatchedTag := testutil.Minimal()
	mismatchedTag.LabelIndex = 5 // tag points at the wrong name entry

	for name, a := range map[string]testutil.Asset{
		"no tag":         noTag,
		"no label name":  noLabelName,
		"no StrProperty": noStrProperty,
		"mismatched tag": mismatchedTag,
	} {
		_, ok := Parse(a.Build(), Config{})
		require.False(t, ok, name)
	}
}

func TestParse_ValueBeyondWindow(t *testing.T) {
	// Push the value's length prefix past the scan window with an
	// oversized gap between tag and value.
	a := testutil.Minimal()
	a.TagGap = valueWindow

	_, ok := Parse(a.Build(), Config{})
	require.False(t, ok)
}

func TestParse_TruncationsNeverPanic(t *testing.T) {
	a := testutil.Minimal()
	a.Duplicate = "Door_02"
	data := a.Build()

	for n := 0; n <= len(data); n++ {
		label, ok := Parse(data[:n], Config{})
		if ok {
			require.NotEmpty(t, label.Text)
		}
	}
}

func TestParse_BitFlipsNeverPanic(t *testing.T) {
	src := frand.NewCustom(fuzzSeed[:], 32, 12)
	orig := testutil.Minimal().Build()

	for i := 0; i < 2000; i++ {
		data := bytes.Clone(orig)
		for j := 0; j < 1+src.Intn(8); j++ {
			data[src.Intn(len(data))] ^= byte(1 + src.Intn(255))
		}
		label, ok := Parse(data, Config{})
		if ok {
			require.NotEqual(t, KindNone, label.Kind)
		}
	}
}

func TestParse_RandomBuffersNeverPanic(t *testing.T) {
	src := frand.NewCustom(fuzzSeed[:], 32, 12)

	for i := 0; i < 2000; i++ {
		data := src.Bytes(src.Intn(4096))
		Parse(data, Config{})

		// the same noise behind a valid magic exercises the deeper stages
		if len(data) >= 4 {
			copy(data, packageMagic[:])
			Parse(data, Config{})
			Parse(data, Config{Tag: LastOccurrence})
		}
	}
}
