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

package compact

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func parseGrid(rows ...string) [][]bool {
	grid := make([][]bool, len(rows))
	for y, row := range rows {
		grid[y] = make([]bool, len(row))
		for x, c := range row {
			grid[y][x] = c == 'X'
		}
	}
	return grid
}

func emptyGrid(rows, cols int) [][]bool {
	return Fill(nil, rows, cols)
}

func TestRects(t *testing.T) {
	cases := []struct {
		name string
		grid [][]bool
		want []Rect
	}{
		{
			name: "no rows",
			grid: nil,
			want: nil,
		},
		{
			name: "single pixel",
			grid: parseGrid("...", ".X.", "..."),
			want: []Rect{{X: 1, Y: 1, W: 1, H: 1}},
		},
		{
			name: "box",
			grid: parseGrid("XXX", "X.X", "XXX"),
			want: []Rect{
				{X: 0, Y: 0, W: 3, H: 1},
				{X: 0, Y: 1, W: 1, H: 1},
				{X: 2, Y: 1, W: 1, H: 1},
				{X: 0, Y: 2, W: 3, H: 1},
			},
		},
		{
			name: "separated runs",
			grid: parseGrid("X.", "X.", "..", "X.", "XX"),
			want: []Rect{
				{X: 0, Y: 0, W: 1, H: 2},
				{X: 0, Y: 3, W: 1, H: 1},
				{X: 0, Y: 4, W: 2, H: 1},
			},
		},
		{
			name: "rotated T",
			grid: parseGrid("X.", "XX", "X."),
			want: []Rect{
				{X: 0, Y: 0, W: 1, H: 1},
				{X: 0, Y: 1, W: 2, H: 1},
				{X: 0, Y: 2, W: 1, H: 1},
			},
		},
		{
			name: "two columns",
			grid: parseGrid("X..X", "X..X", "X..X"),
			want: []Rect{
				{X: 0, Y: 0, W: 1, H: 3},
				{X: 3, Y: 0, W: 1, H: 3},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Rects(tc.grid)
			if d := cmp.Diff(tc.want, got); d != "" {
				t.Errorf("unexpected rectangles (-want +got):\n%s", d)
			}
		})
	}
}

func TestRectsBar(t *testing.T) {
	grid := emptyGrid(16, 8)
	for x := range 8 {
		grid[6][x] = true
		grid[7][x] = true
	}
	got := Rects(grid)
	want := []Rect{{X: 0, Y: 6, W: 8, H: 2}}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected rectangles (-want +got):\n%s", d)
	}
}

func TestRectsEmpty(t *testing.T) {
	if got := Rects(emptyGrid(16, 8)); len(got) != 0 {
		t.Errorf("empty glyph gave %v", got)
	}
}

func TestRectsRagged(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ragged grid accepted")
		}
	}()
	Rects(parseGrid("XX", "X"))
}

func randomGrid(rng *rand.Rand, rows, cols int, density float64) [][]bool {
	grid := emptyGrid(rows, cols)
	for y := range grid {
		for x := range grid[y] {
			grid[y][x] = rng.Float64() < density
		}
	}
	return grid
}

// TestCoverage checks on random grids that the rectangles cover exactly
// the filled cells, that they do not overlap, and that compacting the
// reconstructed grid gives the same rectangles again.
func TestCoverage(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := range 500 {
		rows := 1 + rng.IntN(20)
		cols := 1 + rng.IntN(20)
		density := rng.Float64()
		grid := randomGrid(rng, rows, cols, density)

		rects := Rects(grid)
		for _, r := range rects {
			if r.W <= 0 || r.H <= 0 {
				t.Fatalf("%d: degenerate rectangle %s", i, r)
			}
		}
		if a, b, ok := Overlap(rects); ok {
			t.Fatalf("%d: %s and %s overlap", i, rects[a], rects[b])
		}

		back := Fill(rects, rows, cols)
		if d := cmp.Diff(grid, back); d != "" {
			t.Fatalf("%d: coverage differs (-grid +rects):\n%s", i, d)
		}

		area := 0
		for _, r := range rects {
			area += r.Area()
		}
		filled := 0
		for _, row := range grid {
			for _, v := range row {
				if v {
					filled++
				}
			}
		}
		if area != filled {
			t.Fatalf("%d: area %d != %d filled cells", i, area, filled)
		}

		if d := cmp.Diff(rects, Rects(back)); d != "" {
			t.Fatalf("%d: re-tiling differs (-first +second):\n%s", i, d)
		}
	}
}

func TestOverlap(t *testing.T) {
	rects := []Rect{
		{X: 0, Y: 0, W: 2, H: 2},
		{X: 2, Y: 0, W: 1, H: 2},
		{X: 1, Y: 1, W: 1, H: 1},
	}
	i, j, ok := Overlap(rects)
	if !ok || i != 0 || j != 2 {
		t.Errorf("Overlap() = %d, %d, %t", i, j, ok)
	}
	if _, _, ok := Overlap(rects[:2]); ok {
		t.Error("adjacent rectangles reported as overlapping")
	}
}

func BenchmarkRects(b *testing.B) {
	rng := rand.New(rand.NewPCG(3, 4))
	grid := randomGrid(rng, 16, 8, 0.5)
	for b.Loop() {
		Rects(grid)
	}
}
