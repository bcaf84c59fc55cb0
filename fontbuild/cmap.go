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

package fontbuild

import (
	"encoding/binary"
	"maps"
	"slices"

	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
)

// makeCmap returns the "cmap" table.  Characters in the BMP are mapped by
// format 4 subtables.  If the font has characters outside the BMP, format
// 12 subtables covering all characters are added.
func (f *Font) makeCmap() []byte {
	bmp := cmap.Format4{}
	needsFull := false
	for r, gid := range f.cmap {
		if r > 0xFFFF {
			needsFull = true
			continue
		}
		bmp[uint16(r)] = gid
	}

	bmpData := bmp.Encode(0)
	ss := cmap.Table{
		{PlatformID: 0, EncodingID: 3}: bmpData,
		{PlatformID: 3, EncodingID: 1}: bmpData,
	}
	if needsFull {
		fullData := encodeFormat12(f.cmap)
		ss[cmap.Key{PlatformID: 0, EncodingID: 4}] = fullData
		ss[cmap.Key{PlatformID: 3, EncodingID: 10}] = fullData
	}
	return ss.Encode()
}

// encodeFormat12 returns a format 12 "cmap" subtable.
// https://learn.microsoft.com/en-us/typography/opentype/spec/cmap#format-12-segmented-coverage
func encodeFormat12(m map[rune]glyph.ID) []byte {
	type group struct {
		start, end rune
		gid        glyph.ID
	}
	var groups []group
	for _, r := range slices.Sorted(maps.Keys(m)) {
		gid := m[r]
		if n := len(groups); n > 0 {
			g := &groups[n-1]
			if r == g.end+1 && gid == g.gid+glyph.ID(r-g.start) {
				g.end = r
				continue
			}
		}
		groups = append(groups, group{start: r, end: r, gid: gid})
	}

	length := 16 + 12*len(groups)
	buf := make([]byte, 0, length)
	buf = binary.BigEndian.AppendUint16(buf, 12)
	buf = binary.BigEndian.AppendUint16(buf, 0)
	buf = binary.BigEndian.AppendUint32(buf, uint32(length))
	buf = binary.BigEndian.AppendUint32(buf, 0) // language
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(groups)))
	for _, g := range groups {
		buf = binary.BigEndian.AppendUint32(buf, uint32(g.start))
		buf = binary.BigEndian.AppendUint32(buf, uint32(g.end))
		buf = binary.BigEndian.AppendUint32(buf, uint32(g.gid))
	}
	return buf
}
