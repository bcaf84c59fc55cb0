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

// Package post writes "post" tables.
// https://learn.microsoft.com/en-us/typography/opentype/spec/post
package post

import (
	"bytes"
	"encoding/binary"
	"math"

	"seehuhn.de/go/postscript/funit"
)

// Info contains information for the "post" table.
type Info struct {
	ItalicAngle        float64     // Italic angle in degrees
	UnderlinePosition  funit.Int16 // Underline position (negative)
	UnderlineThickness funit.Int16 // Underline thickness
	IsFixedPitch       bool

	// Names, if non-nil, gives the glyph names in glyph order.
	// If Names is nil, a version 3.0 table without glyph names is written.
	Names []string
}

// numMacGlyphs is the number of glyph names in the standard Macintosh
// glyph set.  Glyph name indices starting from this value refer to names
// stored in the table.
const numMacGlyphs = 258

// Encode encodes the "post" table.
//
// Glyph names must be at most 255 bytes long.  Apart from ".notdef", all
// names are stored in the table, rather than being referenced from the
// standard Macintosh glyph set.
func (info *Info) Encode() []byte {
	version := uint32(0x00030000)
	if info.Names != nil {
		version = 0x00020000
	}

	header := &postEnc{
		Version:            version,
		ItalicAngle:        int32(math.Round(info.ItalicAngle * 65536)),
		UnderlinePosition:  info.UnderlinePosition,
		UnderlineThickness: info.UnderlineThickness,
	}
	if info.IsFixedPitch {
		header.IsFixedPitch = 1
	}
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.BigEndian, header)

	if version == 0x00020000 {
		numGlyphs := len(info.Names)
		buf.Write([]byte{byte(numGlyphs >> 8), byte(numGlyphs)})

		seen := make(map[string]int)
		var stringData []byte
		for _, name := range info.Names {
			if name == ".notdef" {
				buf.Write([]byte{0, 0})
				continue
			}
			if len(name) > 255 {
				panic("sfnt/post: glyph name too long")
			}
			idx, ok := seen[name]
			if !ok {
				idx = numMacGlyphs + len(seen)
				seen[name] = idx
				stringData = append(stringData, byte(len(name)))
				stringData = append(stringData, name...)
			}
			buf.Write([]byte{byte(idx >> 8), byte(idx)})
		}
		buf.Write(stringData)
	}

	return buf.Bytes()
}

type postEnc struct {
	Version            uint32
	ItalicAngle        int32
	UnderlinePosition  funit.Int16
	UnderlineThickness funit.Int16
	IsFixedPitch       uint32
	MinMemType42       uint32
	MaxMemType42       uint32
	MinMemType1        uint32
	MaxMemType1        uint32
}
