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

package validate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/gridfont/config"
	"seehuhn.de/go/gridfont/glyphsrc"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Width = 2
	cfg.Height = 3
	cfg.Baseline = 2
	cfg.Required = config.Range{First: 'a', Last: 'c'}
	return cfg
}

func raster(width, height int) ([][]bool, []string) {
	grid := make([][]bool, height)
	raw := make([]string, height)
	for y := range grid {
		grid[y] = make([]bool, width)
		raw[y] = strings.Repeat(".", width)
	}
	return grid, raw
}

func glyph(path string, cp rune) *glyphsrc.Record {
	grid, raw := raster(2, 3)
	return &glyphsrc.Record{
		Path:         path,
		Label:        string(cp),
		Codepoint:    cp,
		HasCodepoint: true,
		Grid:         grid,
		Raw:          raw,
	}
}

func ligature(path, label string, comps ...string) *glyphsrc.Record {
	grid, raw := raster(2*len(comps), 3)
	return &glyphsrc.Record{
		Path:       path,
		Label:      label,
		Ligature:   true,
		Components: comps,
		Grid:       grid,
		Raw:        raw,
	}
}

func complete() []*glyphsrc.Record {
	return []*glyphsrc.Record{glyph("a.txt", 'a'), glyph("b.txt", 'b'), glyph("c.txt", 'c')}
}

func TestValid(t *testing.T) {
	cfg := testConfig()
	cfg.Ligatures = true
	recs := append(complete(), ligature("ab.txt", "ab", "a", "b"))
	errs, warnings := Corpus(recs, cfg)
	if len(errs) != 0 || len(warnings) != 0 {
		t.Errorf("errors %v, warnings %v", errs, warnings)
	}
}

func TestMissing(t *testing.T) {
	cfg := testConfig()
	recs := complete()
	recs = append(recs[:1], recs[2:]...) // drop 'b'

	errs, _ := Corpus(recs, cfg)
	want := []Error{{Ref: "U+0062", Msg: "missing glyph 'b' (LATIN SMALL LETTER B)"}}
	if d := cmp.Diff(want, errs); d != "" {
		t.Errorf("unexpected errors (-want +got):\n%s", d)
	}
}

func TestMissingBoldOnly(t *testing.T) {
	// a bold glyph does not satisfy the required range
	cfg := testConfig()
	recs := complete()
	recs[0].Weight = glyphsrc.Bold
	errs, _ := Corpus(recs, cfg)
	if len(errs) != 1 || errs[0].Ref != "U+0061" {
		t.Errorf("unexpected errors %v", errs)
	}
}

func TestDuplicate(t *testing.T) {
	cfg := testConfig()
	recs := append(complete(), glyph("b2.txt", 'b'))
	errs, _ := Corpus(recs, cfg)

	var dups []Error
	for _, e := range errs {
		if strings.Contains(e.Msg, "duplicate codepoint") {
			dups = append(dups, e)
		}
	}
	if len(dups) != 1 {
		t.Fatalf("got %d duplicate errors, want 1: %v", len(dups), errs)
	}
	if !strings.Contains(dups[0].Msg, "b.txt, b2.txt") {
		t.Errorf("duplicate error does not name both files: %s", dups[0])
	}
}

func TestDuplicateAcrossWeights(t *testing.T) {
	cfg := testConfig()
	bold := glyph("bold/b.txt", 'b')
	bold.Weight = glyphsrc.Bold
	errs, _ := Corpus(append(complete(), bold), cfg)
	if len(errs) != 0 {
		t.Errorf("unexpected errors %v", errs)
	}
}

func TestRecordChecks(t *testing.T) {
	cfg := testConfig()

	short := glyph("a.txt", 'a')
	short.Grid = short.Grid[:2]
	short.Raw = short.Raw[:2]

	ragged := glyph("b.txt", 'b')
	ragged.Grid[1] = make([]bool, 3)
	ragged.Raw[1] = "..."

	foreign := glyph("c.txt", 'c')
	foreign.Raw[2] = ".o"

	high := glyph("d.txt", 0x110000)
	high.Label = "high"
	surrogate := glyph("e.txt", 0xD800)
	surrogate.Label = "surrogate"

	errs, _ := Corpus([]*glyphsrc.Record{surrogate, high, foreign, ragged, short}, cfg)
	want := []Error{
		{"a.txt", "raster has 2 rows, expected 3"},
		{"b.txt", "row 2 has 3 columns, expected 2"},
		{"c.txt", `row 3 contains invalid characters: ".o"`},
		{"d.txt", "codepoint U+110000 out of range"},
		{"e.txt", "codepoint U+D800 is a surrogate"},
	}
	if d := cmp.Diff(want, errs); d != "" {
		t.Errorf("unexpected errors (-want +got):\n%s", d)
	}
}

func TestLigatureChecks(t *testing.T) {
	cfg := testConfig()
	cfg.Ligatures = true

	wrongWidth := ligature("l1.txt", "ab", "a", "b")
	for y := range wrongWidth.Grid {
		wrongWidth.Grid[y] = wrongWidth.Grid[y][:3]
		wrongWidth.Raw[y] = wrongWidth.Raw[y][:3]
	}
	noComps := ligature("l2.txt", "x")
	noComps.Grid, noComps.Raw = raster(2, 3)
	unknown := ligature("l3.txt", "az", "a", "z")

	recs := append(complete(), wrongWidth, noComps, unknown)
	errs, warnings := Corpus(recs, cfg)

	wantErrs := []Error{
		{"l1.txt", "row 1 has 3 columns, expected 4"},
		{"l1.txt", "row 2 has 3 columns, expected 4"},
		{"l1.txt", "row 3 has 3 columns, expected 4"},
		{"l2.txt", "ligature without components"},
	}
	if d := cmp.Diff(wantErrs, errs); d != "" {
		t.Errorf("unexpected errors (-want +got):\n%s", d)
	}
	wantWarnings := []Error{
		{"l3.txt", `unknown component "z", ligature "az" will not be used`},
	}
	if d := cmp.Diff(wantWarnings, warnings); d != "" {
		t.Errorf("unexpected warnings (-want +got):\n%s", d)
	}

	unresolved := Unresolved(recs)
	if d := cmp.Diff(map[string]bool{"az": true}, unresolved); d != "" {
		t.Errorf("Unresolved (-want +got):\n%s", d)
	}
}

func TestLigatureComponentChecks(t *testing.T) {
	cfg := testConfig()
	cfg.Ligatures = true

	single := ligature("aa.txt", "aa", "a")
	first := ligature("ab.txt", "ab", "a", "b")
	second := ligature("ab2.txt", "ab2", "a", "b")
	other := ligature("ba.txt", "ba", "b", "a")

	recs := append(complete(), second, single, other, first)
	errs, warnings := Corpus(recs, cfg)

	wantErrs := []Error{
		{"aa.txt", `ligature needs at least two components, found "a"`},
		{"ab.txt", `ligatures with the same components "a b" (regular) in ab.txt, ab2.txt`},
	}
	if d := cmp.Diff(wantErrs, errs); d != "" {
		t.Errorf("unexpected errors (-want +got):\n%s", d)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings %v", warnings)
	}
}

func TestLigatureComponentsAcrossWeights(t *testing.T) {
	cfg := testConfig()
	cfg.Ligatures = true

	bold := ligature("ab-bold.txt", "ab", "a", "b")
	bold.Weight = glyphsrc.Bold
	recs := append(complete(), ligature("ab.txt", "ab", "a", "b"), bold)
	errs, _ := Corpus(recs, cfg)
	if len(errs) != 0 {
		t.Errorf("unexpected errors %v", errs)
	}
}

func TestLigaturesDisabled(t *testing.T) {
	cfg := testConfig()
	lig := ligature("ab.txt", "ab", "a", "q")
	lig.Raw[0] = "??" // not checked, the glyph is ignored
	errs, warnings := Corpus(append(complete(), lig), cfg)
	if len(errs) != 0 {
		t.Errorf("unexpected errors %v", errs)
	}
	want := []Error{{"ab.txt", "ligature support is disabled, glyph ignored"}}
	if d := cmp.Diff(want, warnings); d != "" {
		t.Errorf("unexpected warnings (-want +got):\n%s", d)
	}
}

func TestDuplicateLabels(t *testing.T) {
	cfg := testConfig()
	recs := complete()
	recs[2].Label = "a"
	errs, _ := Corpus(recs, cfg)
	want := []Error{{"a.txt", `duplicate label "a" (regular) in a.txt, c.txt`}}
	if d := cmp.Diff(want, errs); d != "" {
		t.Errorf("unexpected errors (-want +got):\n%s", d)
	}
}

func TestDeterministic(t *testing.T) {
	cfg := testConfig()
	recs := []*glyphsrc.Record{glyph("z.txt", 'x'), glyph("y.txt", 'x'), glyph("x.txt", 0xDFFF)}
	recs[2].Label = "surrogate"
	first, _ := Corpus(recs, cfg)
	for i := range 10 {
		recs[0], recs[1], recs[2] = recs[1], recs[2], recs[0]
		again, _ := Corpus(recs, cfg)
		if d := cmp.Diff(first, again); d != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, d)
		}
	}
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		r    rune
		want string
	}{
		{'A', " 'A' (LATIN CAPITAL LETTER A)"},
		{' ', " (SPACE)"},
		{0x07, ""},
	}
	for _, tc := range cases {
		if got := describe(tc.r); got != tc.want {
			t.Errorf("describe(%s) = %q, want %q", fmt.Sprintf("%U", tc.r), got, tc.want)
		}
	}
}
