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

package maxp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncode(t *testing.T) {
	info := &Info{NumGlyphs: 97, MaxPoints: 48, MaxContours: 12}
	data := info.Encode()
	if len(data) != 32 {
		t.Fatalf("table has %d bytes", len(data))
	}
	if data[15] != 1 {
		t.Errorf("maxZones = %d", data[15])
	}
	back, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(info, back); d != "" {
		t.Errorf("decoded table differs (-want +got):\n%s", d)
	}
}

func TestEncodeRange(t *testing.T) {
	for _, n := range []int{0, 65536} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%d glyphs accepted", n)
				}
			}()
			(&Info{NumGlyphs: n}).Encode()
		}()
	}
}
