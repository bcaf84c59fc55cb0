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

// Package head writes the "head" table of sfnt fonts.
// https://learn.microsoft.com/en-us/typography/opentype/spec/head
package head

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"seehuhn.de/go/postscript/funit"
)

// Info contains the information for the "head" table.
type Info struct {
	FontRevision   Version // set by font manufacturer
	UnitsPerEm     uint16  // font design units per em square
	Created        time.Time
	Modified       time.Time
	FontBBox       funit.Rect16
	IsBold         bool
	IsItalic       bool
	LowestRecPPEM  uint16 // smallest readable size in pixels
	HasLongOffsets bool   // 'loca' table uses 32 bit offsets
}

// Length is the size of an encoded "head" table.
const Length = 54

// Encode returns the binary representation of the head table.
// The checkSumAdjustment field is left zero; it is filled in when the
// font file is written.
func (info *Info) Encode() []byte {
	var flags uint16
	flags |= 1 << 0 // baseline at y=0
	flags |= 1 << 1 // left sidebearing point at x=0
	flags |= 1 << 3 // integer scaling

	var macStyle uint16
	if info.IsBold {
		macStyle |= 1 << 0
	}
	if info.IsItalic {
		macStyle |= 1 << 1
	}

	enc := &binaryHead{
		Version:           0x00010000,
		FontRevision:      uint32(info.FontRevision),
		MagicNumber:       0x5F0F3CF5,
		Flags:             flags,
		UnitsPerEm:        info.UnitsPerEm,
		Created:           encodeTime(info.Created),
		Modified:          encodeTime(info.Modified),
		XMin:              int16(info.FontBBox.LLx),
		YMin:              int16(info.FontBBox.LLy),
		XMax:              int16(info.FontBBox.URx),
		YMax:              int16(info.FontBBox.URy),
		MacStyle:          macStyle,
		LowestRecPPEM:     info.LowestRecPPEM,
		FontDirectionHint: 2,
	}
	if info.HasLongOffsets {
		enc.IndexToLocFormat = 1
	}

	buf := bytes.NewBuffer(make([]byte, 0, Length))
	_ = binary.Write(buf, binary.BigEndian, enc)
	return buf.Bytes()
}

type binaryHead struct {
	Version            uint32
	FontRevision       uint32
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64
	Modified           int64

	XMin int16
	YMin int16
	XMax int16
	YMax int16

	MacStyle uint16

	LowestRecPPEM     uint16
	FontDirectionHint int16

	IndexToLocFormat int16
	GlyphDataFormat  int16
}

// Version represents the font revision in 16.16 fixed point format.
type Version uint32

// ParseVersion converts a version string like "1.002" into a Version.
func ParseVersion(s string) (Version, error) {
	var x float64
	_, err := fmt.Sscanf(s, "%f", &x)
	if err != nil || x < 0 || x >= 65536 {
		return 0, fmt.Errorf("sfnt/head: invalid version %q", s)
	}
	return Version(math.Round(x * 65536)), nil
}

func (v Version) String() string {
	return fmt.Sprintf("%.03f", float64(v)/65536)
}

// start of January 1904 in GMT/UTC time zone
var zeroTime int64 = -2082844800

func encodeTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix() - zeroTime
}
