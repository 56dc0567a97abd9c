// Copyright 2025 The unreal-git-names Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package uasset

// nameToken is a name-table literal the scanner looks for. prefix is
// the entry's serialized length field: the literal's byte length plus
// one for the NUL terminator.
type nameToken struct {
	text   string
	prefix int
	kind   Kind
}

// labelTokens are the label-carrying property names, in priority order.
// Scanning keeps the first table entry matching any of them and ignores
// later ones, so a package holding both ActorLabel and FolderLabel
// resolves to whichever the engine serialized first.
var labelTokens = [...]nameToken{
	{"ActorLabel", 11, KindActorLabel},
	{"FolderLabel", 12, KindFolderLabel},
	{"Label", 6, KindLabel},
}

// strPropertyToken is the declared type of every label property.
var strPropertyToken = nameToken{text: "StrProperty", prefix: 12}

// scanNames walks the name table recording the table indices of the
// label name and the StrProperty type name, stopping as soon as both
// are known.
//
// An entry is a signed 32-bit length prefix followed by that many bytes
// of ASCII (positive count, NUL included) or twice that many bytes of
// UTF-16LE (negative count). Depending on the engine release an entry
// may be followed by a 32-bit hash or instance word; a following word
// that is zero or far outside the plausible prefix range is treated as
// one and skipped, since a real next-entry prefix is a small nonzero
// number.
func scanNames(data []byte, nameCount, nameOffset int) (labelIdx, strIdx int, kind Kind, ok bool) {
	size := len(data)
	pos := nameOffset
	labelIdx, strIdx = -1, -1

	for i := 0; i < nameCount && pos+4 <= size; i++ {
		n := le32(data, pos)
		pos += 4

		if n > 0 {
			end := pos + n
			if end > size {
				break
			}
			if labelIdx < 0 {
				for _, t := range labelTokens {
					if n == t.prefix && string(data[pos:pos+len(t.text)]) == t.text {
						labelIdx, kind = i, t.kind
						break
					}
				}
			}
			if n == strPropertyToken.prefix && string(data[pos:pos+len(strPropertyToken.text)]) == strPropertyToken.text {
				// Unlike label tokens, a re-encountered StrProperty
				// overwrites the recorded index.
				strIdx = i
			}
			pos = end
			if labelIdx >= 0 && strIdx >= 0 {
				break
			}
		} else if n < 0 {
			pos += -n * 2
		}

		if pos+4 <= size {
			if v := le32(data, pos); v == 0 || v < -512 || v > 512 {
				pos += 4
			}
		}
	}

	if labelIdx < 0 || strIdx < 0 {
		return 0, 0, KindNone, false
	}
	return labelIdx, strIdx, kind, true
}
