// Copyright 2025 The unreal-git-names Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

//go:build !unix

package mmap

import (
	"os"
)

// ReaderAt is a read-only view of a file's contents, backed by a plain
// read on platforms without memory mapping.
type ReaderAt struct {
	data []byte
}

// Open reads the named file into memory.
func Open(path string) (*ReaderAt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &ReaderAt{data: data}, nil
}

// Data returns the file bytes.
func (r *ReaderAt) Data() []byte { return r.data }

// Len returns the file size.
func (r *ReaderAt) Len() int { return len(r.data) }

// Close releases the buffer. Closing twice is harmless.
func (r *ReaderAt) Close() error {
	r.data = nil
	return nil
}
