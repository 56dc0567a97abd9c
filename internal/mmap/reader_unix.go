// Copyright 2025 The unreal-git-names Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

//go:build unix

package mmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ReaderAt is a read-only view of a file's contents. The data must not
// be written to and is only valid until Close.
type ReaderAt struct {
	data []byte
}

// Open maps the named file for reading. Zero-length files yield a
// valid, empty ReaderAt.
func Open(path string) (*ReaderAt, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	size := fi.Size()
	if size == 0 {
		return &ReaderAt{data: []byte{}}, nil
	}
	if size != int64(int(size)) {
		return nil, fmt.Errorf("mmap %s: file too large", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	// Parsers sweep the buffer front to back.
	if err := unix.Madvise(data, unix.MADV_SEQUENTIAL); err != nil {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("madvise %s: %w", path, err)
	}
	return &ReaderAt{data: data}, nil
}

// Data returns the mapped bytes.
func (r *ReaderAt) Data() []byte { return r.data }

// Len returns the size of the mapped file.
func (r *ReaderAt) Len() int { return len(r.data) }

// Close unmaps the data. Slices from Data must not be used afterwards.
// Closing twice is harmless.
func (r *ReaderAt) Close() error {
	data := r.data
	r.data = nil
	if len(data) == 0 {
		return nil
	}
	return unix.Munmap(data)
}
