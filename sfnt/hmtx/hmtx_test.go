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

package hmtx

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/postscript/funit"
)

func TestEncode(t *testing.T) {
	info := &Info{
		Widths: []uint16{512, 1024, 512, 512},
		GlyphExtent: []funit.Rect16{
			{LLx: 64, LLy: 0, URx: 448, URy: 768},
			{LLx: 0, LLy: -128, URx: 1024, URy: 640},
			{},
			{LLx: 128, LLy: 0, URx: 192, URy: 64},
		},
		Ascent:  768,
		Descent: -256,
	}
	hhea, hmtx := info.Encode()
	if len(hhea) != hheaLength {
		t.Fatalf("hhea has %d bytes", len(hhea))
	}

	get := func(off int) int16 { return int16(binary.BigEndian.Uint16(hhea[off:])) }
	got := []int16{
		get(4),  // ascender
		get(6),  // descender
		get(10), // advanceWidthMax
		get(12), // minLeftSideBearing
		get(14), // minRightSideBearing
		get(16), // xMaxExtent
		get(18), // caretSlopeRise
		get(34), // numberOfHMetrics
	}
	want := []int16{768, -256, 1024, 0, 0, 1024, 1, 3}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("hhea (-want +got):\n%s", d)
	}

	wantHmtx := []byte{
		0x02, 0x00, 0x00, 64,
		0x04, 0x00, 0x00, 0,
		0x02, 0x00, 0x00, 0, // no outline
		0x00, 128, // shares the previous advance width
	}
	if d := cmp.Diff(wantHmtx, hmtx); d != "" {
		t.Errorf("hmtx (-want +got):\n%s", d)
	}
}
