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

// Package os2 writes "OS/2" tables.
// https://learn.microsoft.com/en-us/typography/opentype/spec/os2
package os2

import (
	"bytes"
	"encoding/binary"

	"seehuhn.de/go/postscript/funit"
)

// Weight is the visual weight (degree of blackness) of the glyphs.
type Weight uint16

// These are the weight classes used for regular and bold fonts.
const (
	WeightNormal Weight = 400
	WeightBold   Weight = 700
)

// Info contains the information for a version 4 "OS/2" table.
type Info struct {
	WeightClass Weight

	IsBold    bool
	IsItalic  bool
	IsRegular bool

	// IsFixedPitch marks the font as monospaced in the PANOSE
	// classification.
	IsFixedPitch bool

	AvgGlyphWidth funit.Int16

	Ascent    funit.Int16
	Descent   funit.Int16 // negative
	LineGap   funit.Int16
	CapHeight funit.Int16
	XHeight   funit.Int16

	// WinAscent and WinDescent give the clipping region on Windows.
	// Both values are positive.
	WinAscent  funit.Int16
	WinDescent funit.Int16

	SubscriptXSize     funit.Int16
	SubscriptYSize     funit.Int16
	SubscriptXOffset   funit.Int16
	SubscriptYOffset   funit.Int16
	SuperscriptXSize   funit.Int16
	SuperscriptYSize   funit.Int16
	SuperscriptXOffset funit.Int16
	SuperscriptYOffset funit.Int16
	StrikeoutSize      funit.Int16
	StrikeoutPosition  funit.Int16

	// Vendor is the four-character vendor ID.  Shorter values are padded
	// with spaces.
	Vendor string

	// Chars lists the characters mapped by the font, in any order.
	Chars []rune

	// MaxContext is the longest sequence of glyphs consumed by a
	// substitution.
	MaxContext uint16
}

// Encode returns the binary form of the "OS/2" table.
func (info *Info) Encode() []byte {
	var unicodeRange [4]uint32
	setUniBit := func(b int) {
		unicodeRange[b/32] |= 1 << (b % 32)
	}

	var first, last uint16
	if len(info.Chars) > 0 {
		lo, hi := info.Chars[0], info.Chars[0]
		for _, r := range info.Chars {
			lo = min(lo, r)
			hi = max(hi, r)
			switch {
			case r < 0x80:
				setUniBit(0) // Basic Latin
			case r < 0x100:
				setUniBit(1) // Latin-1 Supplement
			case r >= 0x2500 && r < 0x2580:
				setUniBit(43) // Box Drawing
			case r >= 0x2580 && r < 0x25A0:
				setUniBit(44) // Block Elements
			case r > 0xFFFF:
				setUniBit(57) // Non-Plane 0
			}
		}
		first = uint16(min(lo, 0xFFFF))
		last = uint16(min(hi, 0xFFFF))
	}

	var sel uint16
	if info.IsRegular {
		sel |= 0x0040
	} else {
		if info.IsItalic {
			sel |= 0x0001
		}
		if info.IsBold {
			sel |= 0x0020
		}
	}
	sel |= 0x0080 // always use Typo{A,De}scender

	vendor := [4]byte{' ', ' ', ' ', ' '}
	copy(vendor[:], info.Vendor)

	var panose [10]byte
	if info.IsFixedPitch {
		panose[0] = 2 // Latin Text
		panose[3] = 9 // Monospaced
	}

	buf := &bytes.Buffer{}
	v0 := &v0Data{
		Version:            4,
		AvgCharWidth:       info.AvgGlyphWidth,
		WeightClass:        uint16(info.WeightClass),
		WidthClass:         5, // medium
		Type:               0, // installable embedding
		SubscriptXSize:     info.SubscriptXSize,
		SubscriptYSize:     info.SubscriptYSize,
		SubscriptXOffset:   info.SubscriptXOffset,
		SubscriptYOffset:   info.SubscriptYOffset,
		SuperscriptXSize:   info.SuperscriptXSize,
		SuperscriptYSize:   info.SuperscriptYSize,
		SuperscriptXOffset: info.SuperscriptXOffset,
		SuperscriptYOffset: info.SuperscriptYOffset,
		StrikeoutSize:      info.StrikeoutSize,
		StrikeoutPosition:  info.StrikeoutPosition,
		Panose:             panose,
		UnicodeRange:       unicodeRange,
		VendID:             vendor,
		Selection:          sel,
		FirstCharIndex:     first,
		LastCharIndex:      last,
	}
	_ = binary.Write(buf, binary.BigEndian, v0)

	v0ms := &v0MsData{
		TypoAscender:  info.Ascent,
		TypoDescender: info.Descent,
		TypoLineGap:   info.LineGap,
		WinAscent:     info.WinAscent,
		WinDescent:    info.WinDescent,
	}
	_ = binary.Write(buf, binary.BigEndian, v0ms)

	// code page range: Latin 1
	buf.Write([]byte{0, 0, 0, 1, 0, 0, 0, 0})

	v2 := &v2Data{
		XHeight:     info.XHeight,
		CapHeight:   info.CapHeight,
		DefaultChar: 0,
		BreakChar:   ' ',
		MaxContext:  info.MaxContext,
	}
	_ = binary.Write(buf, binary.BigEndian, v2)

	return buf.Bytes()
}

type v0Data struct {
	Version            uint16
	AvgCharWidth       funit.Int16
	WeightClass        uint16
	WidthClass         uint16
	Type               uint16
	SubscriptXSize     funit.Int16
	SubscriptYSize     funit.Int16
	SubscriptXOffset   funit.Int16
	SubscriptYOffset   funit.Int16
	SuperscriptXSize   funit.Int16
	SuperscriptYSize   funit.Int16
	SuperscriptXOffset funit.Int16
	SuperscriptYOffset funit.Int16
	StrikeoutSize      funit.Int16
	StrikeoutPosition  funit.Int16
	FamilyClass        int16
	Panose             [10]byte
	UnicodeRange       [4]uint32
	VendID             [4]byte
	Selection          uint16
	FirstCharIndex     uint16
	LastCharIndex      uint16
}

type v0MsData struct {
	TypoAscender  funit.Int16
	TypoDescender funit.Int16
	TypoLineGap   funit.Int16
	WinAscent     funit.Int16
	WinDescent    funit.Int16
}

type v2Data struct {
	XHeight     funit.Int16
	CapHeight   funit.Int16
	DefaultChar uint16
	BreakChar   uint16
	MaxContext  uint16
}
