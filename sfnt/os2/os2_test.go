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

package os2

import (
	"encoding/binary"
	"testing"
)

func TestEncode(t *testing.T) {
	info := &Info{
		WeightClass:  WeightBold,
		IsBold:       true,
		IsFixedPitch: true,
		Ascent:       768,
		Descent:      -256,
		WinAscent:    768,
		WinDescent:   256,
		Vendor:       "AB",
		Chars:        []rune{'~', ' ', 0x2588, 0x1F600},
		MaxContext:   2,
	}
	data := info.Encode()
	if len(data) != 96 {
		t.Fatalf("table has %d bytes, want 96", len(data))
	}

	u16 := func(off int) uint16 { return binary.BigEndian.Uint16(data[off:]) }
	if v := u16(0); v != 4 {
		t.Errorf("version %d", v)
	}
	if w := u16(4); w != 700 {
		t.Errorf("weight class %d", w)
	}
	if data[32] != 2 || data[35] != 9 {
		t.Errorf("panose % x", data[32:42])
	}
	r0 := binary.BigEndian.Uint32(data[42:])
	r1 := binary.BigEndian.Uint32(data[46:])
	if r0 != 1 || r1 != 1<<(44-32)|1<<(57-32) {
		t.Errorf("unicode range %08x %08x", r0, r1)
	}
	if v := string(data[58:62]); v != "AB  " {
		t.Errorf("vendor %q", v)
	}
	if s := u16(62); s != 0x00A0 {
		t.Errorf("fsSelection %04x", s)
	}
	if f, l := u16(64), u16(66); f != 0x20 || l != 0xFFFF {
		t.Errorf("char range %04x..%04x", f, l)
	}
	if a, d := int16(u16(68)), int16(u16(70)); a != 768 || d != -256 {
		t.Errorf("typo ascender %d, descender %d", a, d)
	}
	if c := u16(94); c != 2 {
		t.Errorf("maxContext %d", c)
	}
}
