// Copyright 2025 The unreal-git-names Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package uasset recovers actor and folder display labels from Unreal
// Engine package files without loading the engine's serialization
// machinery.
//
// One File Per Actor (OFPA) packages carry content-hash filenames like
// KCBX0GWLTFQT9RJ8M1LY8.uasset, but the display label a level designer
// sees in the editor is still serialized inside. A package generally
// looks like:
//
//	┌────────────────────┐
//	│ summary header     │ magic, version block, package name,
//	│                    │ name count and name table offset
//	├────────────────────┤
//	│ name table         │ length-prefixed strings, each optionally
//	│                    │ followed by a 32-bit extra word
//	├────────────────────┤
//	│ imports, exports   │
//	├────────────────────┤
//	│ export data        │ property tags and values; a tag is
//	│                    │ (name index, instance, type index, instance)
//	└────────────────────┘
//
// The summary header layout shifts between engine releases, so nothing
// here trusts fixed offsets. Parse instead scans a bounded window for
// the package-name string, derives the name table location from the
// fields that follow it, records the table indices of the label name
// and the StrProperty type name, and searches the raw buffer for the
// 16-byte tag binding those two indices. The length-prefixed string
// after that tag is the label.
//
// Parsing is read-only and best effort: a buffer the heuristics cannot
// confidently decode yields no label, never an error or a panic. This
// keeps one code path working across UE 4.26 through 5.7 and keeps
// malformed or truncated packages harmless.
package uasset
