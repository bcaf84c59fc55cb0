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

package gtab

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/sfnt/glyph"
)

func TestScriptListEncode(t *testing.T) {
	info := ScriptListInfo{
		"latn": {Required: NoRequiredFeature, Optional: []FeatureIndex{0, 2}},
	}
	got := info.encode()
	want := []byte{
		0, 1, // scriptCount
		'l', 'a', 't', 'n', 0, 8, // ScriptRecord
		0, 4, 0, 0, // Script table
		0, 0, 0xFF, 0xFF, 0, 2, 0, 0, 0, 2, // LangSys table
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected encoding (-want +got):\n%s", d)
	}
}

func TestFeatureListEncode(t *testing.T) {
	info := FeatureListInfo{
		{Tag: "liga", Lookups: []LookupIndex{0}},
		{Tag: "calt", Lookups: []LookupIndex{1, 2}},
	}
	got := info.encode()
	want := []byte{
		0, 2,
		'l', 'i', 'g', 'a', 0, 14,
		'c', 'a', 'l', 't', 0, 20,
		0, 0, 0, 1, 0, 0,
		0, 0, 0, 2, 0, 1, 0, 2,
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected encoding (-want +got):\n%s", d)
	}
}

func TestLigatureRoundTrip(t *testing.T) {
	ligs := []Ligature{
		{In: []glyph.ID{5, 6}, Out: 20},
		{In: []glyph.ID{5, 6, 7}, Out: 21},
		{In: []glyph.ID{3, 3}, Out: 22},
		{In: []glyph.ID{9, 4, 4, 4}, Out: 23},
	}
	info := NewLigatureInfo(ligs)
	data, err := info.Encode()
	if err != nil {
		t.Fatal(err)
	}

	got := decodeLigatures(t, data)
	// grouped by first glyph, longest first
	want := []Ligature{
		{In: []glyph.ID{3, 3}, Out: 22},
		{In: []glyph.ID{5, 6, 7}, Out: 21},
		{In: []glyph.ID{5, 6}, Out: 20},
		{In: []glyph.ID{9, 4, 4, 4}, Out: 23},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected ligatures (-want +got):\n%s", d)
	}
}

func TestLigatureTooShort(t *testing.T) {
	info := NewLigatureInfo([]Ligature{{In: []glyph.ID{1}, Out: 2}})
	_, err := info.Encode()
	if err == nil {
		t.Error("single-glyph ligature accepted")
	}
}

// decodeLigatures reads back the ligatures from the first lookup of a
// "GSUB" table, after checking that the "liga" feature refers to it.
func decodeLigatures(t *testing.T, data []byte) []Ligature {
	t.Helper()
	u16 := func(pos int) int {
		return int(binary.BigEndian.Uint16(data[pos:]))
	}

	if u16(0) != 1 || u16(2) != 0 {
		t.Fatalf("wrong version %d.%d", u16(0), u16(2))
	}
	featureList := u16(6)
	lookupList := u16(8)

	if u16(featureList) != 1 || string(data[featureList+2:featureList+6]) != "liga" {
		t.Fatal("missing liga feature")
	}
	feature := featureList + u16(featureList+6)
	if u16(feature+2) != 1 || u16(feature+4) != 0 {
		t.Fatal("liga does not refer to lookup 0")
	}

	if u16(lookupList) != 1 {
		t.Fatalf("%d lookups", u16(lookupList))
	}
	lookup := lookupList + u16(lookupList+2)
	if u16(lookup) != 4 || u16(lookup+4) != 1 {
		t.Fatalf("unexpected lookup type %d", u16(lookup))
	}
	sub := lookup + u16(lookup+6)
	if u16(sub) != 1 {
		t.Fatalf("unexpected subtable format %d", u16(sub))
	}

	cov := sub + u16(sub+2)
	if u16(cov) != 1 {
		t.Fatalf("unexpected coverage format %d", u16(cov))
	}
	n := u16(sub + 4)
	if u16(cov+2) != n {
		t.Fatalf("coverage has %d glyphs, expected %d", u16(cov+2), n)
	}

	var res []Ligature
	for i := range n {
		first := glyph.ID(u16(cov + 4 + 2*i))
		set := sub + u16(sub+6+2*i)
		for j := range u16(set) {
			lig := set + u16(set+2+2*j)
			l := Ligature{Out: glyph.ID(u16(lig)), In: []glyph.ID{first}}
			for k := range u16(lig+2) - 1 {
				l.In = append(l.In, glyph.ID(u16(lig+4+2*k)))
			}
			res = append(res, l)
		}
	}
	return res
}
