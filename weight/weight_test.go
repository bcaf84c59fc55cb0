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

package weight

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/gridfont/glyphsrc"
)

func grid(rows ...string) [][]bool {
	res := make([][]bool, len(rows))
	for y, row := range rows {
		res[y] = make([]bool, len(row))
		for x, c := range row {
			res[y][x] = c == 'X'
		}
	}
	return res
}

func TestEmbolden(t *testing.T) {
	in := grid(
		"X...",
		".X.X",
		"XX..",
		"....",
	)
	want := grid(
		"XX..",
		".XXX",
		"XXX.",
		"....",
	)
	got := Embolden(in)
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected grid (-want +got):\n%s", d)
	}
	if d := cmp.Diff(grid("X...", ".X.X", "XX..", "...."), in); d != "" {
		t.Errorf("input was modified:\n%s", d)
	}
}

func TestEmboldenRightmost(t *testing.T) {
	in := make([][]bool, 16)
	for y := range in {
		in[y] = make([]bool, 8)
	}
	in[5][7] = true
	got := Embolden(in)
	if d := cmp.Diff(in, got); d != "" {
		t.Errorf("rightmost pixel changed the grid:\n%s", d)
	}
	got[0][0] = true
	if in[0][0] {
		t.Error("result shares rows with the input")
	}
}

func TestDeriveBold(t *testing.T) {
	a := &glyphsrc.Record{Path: "a", Label: "a", Codepoint: 'a', HasCodepoint: true,
		Grid: grid("X."), Raw: []string{"X."}}
	b := &glyphsrc.Record{Path: "b", Label: "b", Codepoint: 'b', HasCodepoint: true,
		Grid: grid("X."), Raw: []string{"X."}}
	bBold := &glyphsrc.Record{Path: "b-bold", Label: "b", Codepoint: 'b', HasCodepoint: true,
		Weight: glyphsrc.Bold, Grid: grid("XX"), Raw: []string{"XX"}}
	ab := &glyphsrc.Record{Path: "ab", Label: "ab", Ligature: true,
		Components: []string{"a", "b"}, Grid: grid("X..."), Raw: []string{"X..."}}

	in := []*glyphsrc.Record{a, b, bBold, ab}
	out := DeriveBold(in)

	if len(out) != 6 {
		t.Fatalf("got %d records, want 6", len(out))
	}
	for i, rec := range in {
		if out[i] != rec {
			t.Errorf("record %d was replaced", i)
		}
	}

	aBold := out[4]
	wantA := &glyphsrc.Record{Path: "a", Label: "a", Codepoint: 'a', HasCodepoint: true,
		Weight: glyphsrc.Bold, Derived: true, Grid: grid("XX"), Raw: []string{"XX"}}
	if d := cmp.Diff(wantA, aBold); d != "" {
		t.Errorf("derived record (-want +got):\n%s", d)
	}

	abBold := out[5]
	if abBold.Label != "ab" || abBold.Weight != glyphsrc.Bold || !abBold.Derived {
		t.Errorf("unexpected ligature record %v", abBold)
	}
	abBold.Components[0] = "z"
	abBold.Grid[0][3] = true
	if ab.Components[0] != "a" || ab.Grid[0][3] {
		t.Error("derived record shares storage with its source")
	}
	if a.Weight != glyphsrc.Regular || a.Derived || a.Grid[0][1] {
		t.Error("source record was modified")
	}
}

func TestDeriveBoldNoDuplicates(t *testing.T) {
	// two regular records for the same codepoint yield one derived glyph
	r1 := &glyphsrc.Record{Path: "1", Label: "x", Codepoint: 'x', HasCodepoint: true, Grid: grid("X")}
	r2 := &glyphsrc.Record{Path: "2", Label: "x2", Codepoint: 'x', HasCodepoint: true, Grid: grid("X")}
	out := DeriveBold([]*glyphsrc.Record{r1, r2})
	if len(out) != 3 || out[2].Path != "1" {
		t.Errorf("unexpected result %v", out)
	}
}
