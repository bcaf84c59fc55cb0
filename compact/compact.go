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

// Package compact decomposes a pixel raster into axis-aligned rectangles.
//
// The decomposition works in two phases.  First, every row is split into
// maximal horizontal spans of filled pixels.  Then spans with the same
// horizontal extent in consecutive rows are merged into taller rectangles.
// The result always tiles the filled pixels exactly, but it is not always
// the smallest possible set of rectangles.  For example, a "T" rotated by 90
// degrees gives three rectangles, where a full-height stem plus one arm would
// only need two.
package compact

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

// Rect is a rectangle of pixels.  X and Y give the column and row of the
// top-left pixel, W and H the size in pixels.
type Rect struct {
	X, Y int
	W, H int
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

// Contains reports whether pixel (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Area returns the number of pixels covered by r.
func (r Rect) Area() int {
	return r.W * r.H
}

type spanKey struct {
	x, w int
}

// Rects returns a set of non-overlapping rectangles which covers exactly
// the true cells of grid.  The rectangles are sorted by Y, then by X.
//
// All rows of grid must have the same length.
func Rects(grid [][]bool) []Rect {
	for y, row := range grid {
		if len(row) != len(grid[0]) {
			panic(fmt.Sprintf("compact: row %d has %d cells, want %d",
				y, len(row), len(grid[0])))
		}
	}

	// phase 1: horizontal runs, collected by extent
	rows := make(map[spanKey][]int)
	for y, row := range grid {
		x := 0
		for x < len(row) {
			if !row[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] {
				x++
			}
			k := spanKey{start, x - start}
			rows[k] = append(rows[k], y)
		}
	}

	// phase 2: merge runs of consecutive rows
	var res []Rect
	for _, k := range slices.SortedFunc(maps.Keys(rows), compareKeys) {
		ys := rows[k] // ascending, since rows were scanned top to bottom
		cur := Rect{X: k.x, Y: ys[0], W: k.w, H: 1}
		for _, y := range ys[1:] {
			if y == cur.Y+cur.H {
				cur.H++
				continue
			}
			res = append(res, cur)
			cur = Rect{X: k.x, Y: y, W: k.w, H: 1}
		}
		res = append(res, cur)
	}

	slices.SortFunc(res, func(a, b Rect) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return res
}

func compareKeys(a, b spanKey) int {
	if c := cmp.Compare(a.x, b.x); c != 0 {
		return c
	}
	return cmp.Compare(a.w, b.w)
}

// Fill returns a grid with the given dimensions where exactly the cells
// covered by rects are set.  Cells outside the grid are ignored.
func Fill(rects []Rect, rows, cols int) [][]bool {
	grid := make([][]bool, rows)
	for y := range grid {
		grid[y] = make([]bool, cols)
	}
	for _, r := range rects {
		for y := max(r.Y, 0); y < min(r.Y+r.H, rows); y++ {
			for x := max(r.X, 0); x < min(r.X+r.W, cols); x++ {
				grid[y][x] = true
			}
		}
	}
	return grid
}

// Overlap returns the first pair of indices i < j such that rects[i] and
// rects[j] share a pixel.  If no rectangles overlap, ok is false.
func Overlap(rects []Rect) (i, j int, ok bool) {
	for i = range rects {
		a := rects[i]
		for j = i + 1; j < len(rects); j++ {
			b := rects[j]
			if a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}
