// Copyright 2025 The unreal-git-names Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package unrealnames maps Unreal Engine One File Per Actor packages
// back to the display labels their filenames no longer carry.
//
// The engine names OFPA packages after content hashes, which makes git
// history unreadable: a diff says KCBX0GWLTFQT9RJ8M1LY8.uasset changed,
// not that it was the actor "Door_01". Extract and ExtractFile recover
// that label from the package bytes so commit hooks, textconv drivers,
// and repository tooling can translate paths for humans.
package unrealnames

import (
	"github.com/Jus2Cat/unreal-git-names/internal/mmap"
	"github.com/Jus2Cat/unreal-git-names/uasset"
)

// Extractor recovers labels using a fixed configuration.
type Extractor struct {
	cfg uasset.Config
}

// Option adjusts an Extractor.
type Option func(*Extractor)

// WithTagPolicy selects which property-tag occurrence is decoded when a
// package carries the binding pattern more than once.
func WithTagPolicy(p uasset.TagPolicy) Option {
	return func(e *Extractor) {
		e.cfg.Tag = p
	}
}

// New returns an Extractor. The zero-argument form is equivalent to the
// package-level functions.
func New(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses one complete package held in memory. It reports
// ok == false for anything it cannot confidently decode and never
// panics on malformed input.
func (e *Extractor) Extract(data []byte) (uasset.Label, bool) {
	return uasset.Parse(data, e.cfg)
}

// ExtractFile maps the file at path and parses it. The error covers
// I/O only: a readable file with no recoverable label returns
// ok == false and a nil error.
func (e *Extractor) ExtractFile(path string) (label uasset.Label, ok bool, err error) {
	r, err := mmap.Open(path)
	if err != nil {
		return uasset.Label{}, false, err
	}
	defer func() {
		_ = r.Close()
	}()
	label, ok = uasset.Parse(r.Data(), e.cfg)
	return label, ok, nil
}

var defaultExtractor = New()

// Extract parses one complete package buffer with the default
// configuration.
func Extract(data []byte) (uasset.Label, bool) {
	return defaultExtractor.Extract(data)
}

// ExtractFile maps and parses the package at path with the default
// configuration.
func ExtractFile(path string) (uasset.Label, bool, error) {
	return defaultExtractor.ExtractFile(path)
}
