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

// Package hmtx writes the "hhea" and "hmtx" tables.
//
// For glyphs without contours the left side bearing is zero.  For all
// other glyphs it equals xMin from the "glyf" table.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/hhea
// https://learn.microsoft.com/en-us/typography/opentype/spec/hmtx
package hmtx

import (
	"bytes"
	"encoding/binary"
	"math"

	"seehuhn.de/go/postscript/funit"
)

// Info contains information relating to the "hhea" and "hmtx" tables.
type Info struct {
	Widths      []uint16
	GlyphExtent []funit.Rect16
	Ascent      funit.Int16
	Descent     funit.Int16 // negative
	LineGap     funit.Int16
}

// Encode returns the binary "hhea" and "hmtx" tables.
// Trailing glyphs with the same advance width share one long metric
// record, which makes monospaced fonts particularly compact.
func (info *Info) Encode() (hhea, hmtx []byte) {
	numGlyphs := len(info.Widths)
	numWidths := numGlyphs
	for numWidths > 1 && info.Widths[numWidths-1] == info.Widths[numWidths-2] {
		numWidths--
	}

	hh := &binaryHhea{
		Version:             0x00010000,
		Ascent:              info.Ascent,
		Descent:             info.Descent,
		LineGap:             info.LineGap,
		CaretSlopeRise:      1,
		CaretSlopeRun:       0,
		NumOfLongHorMetrics: uint16(numWidths),
	}

	lsbs := make([]funit.Int16, numGlyphs)
	minLsb := funit.Int16(math.MaxInt16)
	minRsb := funit.Int16(math.MaxInt16)
	var xMaxExtent funit.Int16
	for i, w := range info.Widths {
		hh.AdvanceWidthMax = max(hh.AdvanceWidthMax, w)

		bbox := info.GlyphExtent[i]
		if bbox.IsZero() {
			continue
		}
		lsbs[i] = bbox.LLx
		minLsb = min(minLsb, bbox.LLx)
		minRsb = min(minRsb, funit.Int16(w)-bbox.URx)
		xMaxExtent = max(xMaxExtent, bbox.URx)
	}
	if minLsb < math.MaxInt16 {
		hh.MinLeftSideBearing = minLsb
		hh.MinRightSideBearing = minRsb
		hh.XMaxExtent = xMaxExtent
	}

	buf := bytes.NewBuffer(make([]byte, 0, hheaLength))
	_ = binary.Write(buf, binary.BigEndian, hh)
	hhea = buf.Bytes()

	hmtx = make([]byte, 0, 4*numWidths+2*(numGlyphs-numWidths))
	for i := range numGlyphs {
		if i < numWidths {
			hmtx = binary.BigEndian.AppendUint16(hmtx, info.Widths[i])
		}
		hmtx = binary.BigEndian.AppendUint16(hmtx, uint16(lsbs[i]))
	}
	return hhea, hmtx
}

const hheaLength = 36

type binaryHhea struct {
	Version             uint32
	Ascent              funit.Int16
	Descent             funit.Int16
	LineGap             funit.Int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  funit.Int16
	MinRightSideBearing funit.Int16
	XMaxExtent          funit.Int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	_                   [4]int16
	MetricDataFormat    int16
	NumOfLongHorMetrics uint16
}
