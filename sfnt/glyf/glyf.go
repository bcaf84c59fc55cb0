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

// Package glyf writes the "glyf" and "loca" tables.
//
// Only simple glyphs are supported, with all points on the curve and
// without hinting instructions.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/glyf
// https://learn.microsoft.com/en-us/typography/opentype/spec/loca
package glyf

import (
	"encoding/binary"
	"fmt"
	"math"

	"seehuhn.de/go/postscript/funit"
)

// Point is an on-curve point of a glyph outline.
type Point struct {
	X, Y funit.Int16
}

// Contour is a closed polygon.
type Contour []Point

// Glyph is a simple TrueType glyph.
// A glyph without contours is encoded as an empty "glyf" entry.
type Glyph struct {
	Contours []Contour
}

// BBox returns the bounding box of all points in the glyph.
func (g *Glyph) BBox() funit.Rect16 {
	var bbox funit.Rect16
	first := true
	for _, c := range g.Contours {
		for _, p := range c {
			if first {
				bbox = funit.Rect16{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
				first = false
				continue
			}
			bbox.LLx = min(bbox.LLx, p.X)
			bbox.LLy = min(bbox.LLy, p.Y)
			bbox.URx = max(bbox.URx, p.X)
			bbox.URy = max(bbox.URy, p.Y)
		}
	}
	return bbox
}

// NumPoints returns the total number of points in the glyph.
func (g *Glyph) NumPoints() int {
	n := 0
	for _, c := range g.Contours {
		n += len(c)
	}
	return n
}

// Encoded holds the binary "glyf" and "loca" tables.
type Encoded struct {
	GlyfData []byte
	LocaData []byte

	// LongOffsets is set if the "loca" table uses 32-bit offsets.
	// This must be recorded in the indexToLocFormat field of the "head"
	// table.
	LongOffsets bool
}

// glyfAlign is the alignment of glyph data in the "glyf" table.
const glyfAlign = 2

// Encode encodes the glyphs into "glyf" and "loca" tables.
func Encode(glyphs []*Glyph) (*Encoded, error) {
	var glyfData []byte
	offs := make([]int, len(glyphs)+1)
	for i, g := range glyphs {
		var err error
		glyfData, err = g.append(glyfData)
		if err != nil {
			return nil, fmt.Errorf("glyph %d: %w", i, err)
		}
		for len(glyfData)%glyfAlign != 0 {
			glyfData = append(glyfData, 0)
		}
		offs[i+1] = len(glyfData)
	}

	locaData, long := encodeLoca(offs)
	return &Encoded{
		GlyfData:    glyfData,
		LocaData:    locaData,
		LongOffsets: long,
	}, nil
}

func encodeLoca(offs []int) ([]byte, bool) {
	if offs[len(offs)-1] <= 2*0xFFFF {
		locaData := make([]byte, 2*len(offs))
		for i, off := range offs {
			binary.BigEndian.PutUint16(locaData[2*i:], uint16(off/2))
		}
		return locaData, false
	}
	locaData := make([]byte, 4*len(offs))
	for i, off := range offs {
		binary.BigEndian.PutUint32(locaData[4*i:], uint32(off))
	}
	return locaData, true
}

// Flags for the points of a simple glyph.
const (
	flagOnCurve  = 0x01
	flagXShort   = 0x02
	flagYShort   = 0x04
	flagRepeat   = 0x08
	flagXSameOrP = 0x10 // x is same, or short x is positive
	flagYSameOrP = 0x20 // y is same, or short y is positive
)

func (g *Glyph) append(buf []byte) ([]byte, error) {
	if len(g.Contours) == 0 {
		return buf, nil
	}
	if len(g.Contours) > math.MaxInt16 {
		return nil, fmt.Errorf("sfnt/glyf: %d contours", len(g.Contours))
	}
	numPoints := g.NumPoints()
	if numPoints > math.MaxUint16 {
		return nil, fmt.Errorf("sfnt/glyf: %d points", numPoints)
	}

	bbox := g.BBox()
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(g.Contours)))
	buf = binary.BigEndian.AppendUint16(buf, uint16(bbox.LLx))
	buf = binary.BigEndian.AppendUint16(buf, uint16(bbox.LLy))
	buf = binary.BigEndian.AppendUint16(buf, uint16(bbox.URx))
	buf = binary.BigEndian.AppendUint16(buf, uint16(bbox.URy))

	end := -1
	for _, c := range g.Contours {
		if len(c) == 0 {
			return nil, fmt.Errorf("sfnt/glyf: empty contour")
		}
		end += len(c)
		buf = binary.BigEndian.AppendUint16(buf, uint16(end))
	}
	buf = append(buf, 0, 0) // instructionLength

	flags := make([]byte, 0, numPoints)
	var xs, ys []byte
	var prev Point
	for _, c := range g.Contours {
		for _, p := range c {
			flag := byte(flagOnCurve)
			var dx, dy int
			dx = int(p.X) - int(prev.X)
			dy = int(p.Y) - int(prev.Y)
			prev = p

			switch {
			case dx == 0:
				flag |= flagXSameOrP
			case dx >= -255 && dx <= 255:
				flag |= flagXShort
				if dx > 0 {
					flag |= flagXSameOrP
				} else {
					dx = -dx
				}
				xs = append(xs, byte(dx))
			default:
				xs = binary.BigEndian.AppendUint16(xs, uint16(int16(dx)))
			}

			switch {
			case dy == 0:
				flag |= flagYSameOrP
			case dy >= -255 && dy <= 255:
				flag |= flagYShort
				if dy > 0 {
					flag |= flagYSameOrP
				} else {
					dy = -dy
				}
				ys = append(ys, byte(dy))
			default:
				ys = binary.BigEndian.AppendUint16(ys, uint16(int16(dy)))
			}

			flags = append(flags, flag)
		}
	}

	buf = appendFlags(buf, flags)
	buf = append(buf, xs...)
	buf = append(buf, ys...)
	return buf, nil
}

// appendFlags appends the point flags to buf, using the repeat flag to
// compress runs of identical flags.
func appendFlags(buf []byte, flags []byte) []byte {
	for i := 0; i < len(flags); {
		f := flags[i]
		n := 1
		for i+n < len(flags) && flags[i+n] == f && n < 256 {
			n++
		}
		if n > 1 {
			buf = append(buf, f|flagRepeat, byte(n-1))
		} else {
			buf = append(buf, f)
		}
		i += n
	}
	return buf
}
