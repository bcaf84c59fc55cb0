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

// Package maxp writes "maxp" tables for TrueType fonts.
// https://learn.microsoft.com/en-us/typography/opentype/spec/maxp
package maxp

import (
	"encoding/binary"
	"errors"
)

// Info contains the information for a version 1.0 "maxp" table.
// Fonts without hinting instructions and composite glyphs only need the
// glyph count and the outline sizes.
type Info struct {
	// NumGlyphs is number of glyphs in the font, in the range 1, ..., 65535.
	NumGlyphs int

	MaxPoints   uint16
	MaxContours uint16
}

// Encode encodes the "maxp" table.
func (info *Info) Encode() []byte {
	if info.NumGlyphs < 1 || info.NumGlyphs >= 1<<16 {
		panic("sfnt/maxp: numGlyphs out of range")
	}

	buf := make([]byte, 32)
	binary.BigEndian.PutUint32(buf[0:], 0x00010000)
	binary.BigEndian.PutUint16(buf[4:], uint16(info.NumGlyphs))
	binary.BigEndian.PutUint16(buf[6:], info.MaxPoints)
	binary.BigEndian.PutUint16(buf[8:], info.MaxContours)
	// maxCompositePoints and maxCompositeContours stay zero
	binary.BigEndian.PutUint16(buf[14:], 1) // maxZones: no twilight zone
	// the remaining limits refer to instructions and composite glyphs
	return buf
}

// Decode reads a version 1.0 "maxp" table.
func Decode(data []byte) (*Info, error) {
	if len(data) < 32 {
		return nil, errors.New("sfnt/maxp: table too short")
	}
	if binary.BigEndian.Uint32(data) != 0x00010000 {
		return nil, errors.New("sfnt/maxp: unknown version")
	}
	info := &Info{
		NumGlyphs:   int(binary.BigEndian.Uint16(data[4:])),
		MaxPoints:   binary.BigEndian.Uint16(data[6:]),
		MaxContours: binary.BigEndian.Uint16(data[8:]),
	}
	if info.NumGlyphs == 0 {
		return nil, errors.New("sfnt/maxp: numGlyphs is zero")
	}
	return info, nil
}
