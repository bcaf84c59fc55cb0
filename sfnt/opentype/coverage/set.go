// seehuhn.de/go/gridfont - compile pixel-grid glyph sources into fonts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package coverage implements OpenType coverage tables.
// https://learn.microsoft.com/en-us/typography/opentype/spec/chapter2#coverage-table
package coverage

import (
	"encoding/binary"
	"maps"
	"slices"

	"seehuhn.de/go/sfnt/glyph"
)

// Set is a coverage table, but with the coverage indices omitted.
type Set map[glyph.ID]bool

// Glyphs returns the glyphs covered by the Set, in order of increasing
// glyph ID.  The coverage index of a glyph is its position in this list.
func (set Set) Glyphs() []glyph.ID {
	return slices.Sorted(maps.Keys(set))
}

// Encode returns the binary form of the coverage table.
// The more compact of formats 1 and 2 is used.
func (set Set) Encode() []byte {
	glyphs := set.Glyphs()

	type glyphRange struct {
		first, last glyph.ID
	}
	var ranges []glyphRange
	for i, gid := range glyphs {
		if i > 0 && gid == ranges[len(ranges)-1].last+1 {
			ranges[len(ranges)-1].last = gid
		} else {
			ranges = append(ranges, glyphRange{gid, gid})
		}
	}

	format1Size := 4 + 2*len(glyphs)
	format2Size := 4 + 6*len(ranges)
	if format1Size <= format2Size {
		buf := make([]byte, 0, format1Size)
		buf = binary.BigEndian.AppendUint16(buf, 1)
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(glyphs)))
		for _, gid := range glyphs {
			buf = binary.BigEndian.AppendUint16(buf, uint16(gid))
		}
		return buf
	}

	buf := make([]byte, 0, format2Size)
	buf = binary.BigEndian.AppendUint16(buf, 2)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(ranges)))
	idx := 0
	for _, r := range ranges {
		buf = binary.BigEndian.AppendUint16(buf, uint16(r.first))
		buf = binary.BigEndian.AppendUint16(buf, uint16(r.last))
		buf = binary.BigEndian.AppendUint16(buf, uint16(idx))
		idx += int(r.last-r.first) + 1
	}
	return buf
}
