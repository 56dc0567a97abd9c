// Copyright 2025 The unreal-git-names Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package testutil

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_PatchesHeader(t *testing.T) {
	a := Minimal()
	data := a.Build()

	require.True(t, len(data) > 52)
	assert.Equal(t, Magic[:], data[:4])

	// the name count lives right after the package name and flags
	countOff := 20 + 4 + len(a.PackageName) + 1 + 4
	count := binary.LittleEndian.Uint32(data[countOff:])
	tableOff := binary.LittleEndian.Uint32(data[countOff+4:])
	assert.Equal(t, uint32(len(a.Names)), count)

	// the patched offset must land on the first entry's length prefix
	first := int32(binary.LittleEndian.Uint32(data[tableOff:]))
	assert.Equal(t, int32(len(a.Names[0])+1), first)
}

func TestBuild_Deterministic(t *testing.T) {
	a := Minimal()
	a.ExtraWords = true
	a.Duplicate = "Door_02"

	assert.Equal(t, a.Build(), a.Build())
}

func TestBuild_WideStrings(t *testing.T) {
	a := Minimal()
	a.WideNames = []int{0}
	a.Names[0] = "Ф"

	data := a.Build()
	tableOff := 20 + 4 + len(a.PackageName) + 1 + 12
	prefix := int32(binary.LittleEndian.Uint32(data[tableOff:]))
	assert.Equal(t, int32(-2), prefix, "one code unit plus the NUL, negated")
}

func TestBuild_ExtraWordsWidenTable(t *testing.T) {
	a := Minimal()
	plain := a.Build()
	a.ExtraWords = true
	wide := a.Build()

	assert.Equal(t, len(plain)+4*len(a.Names), len(wide))
}
