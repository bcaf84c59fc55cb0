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

// Package proof verifies compiled glyphs and fonts by reading them back.
//
// Outlines are rendered back to pixel grids with an anti-aliasing
// rasterizer.  Since all outline coordinates lie on pixel boundaries,
// every pixel is either fully covered or empty, and the rendered grid
// must equal the source raster exactly.
package proof

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"seehuhn.de/go/gridfont/outline"
)

// Rasterize renders the contours onto a grid with the given number of
// rows and columns.  The mapping from design units to pixels is the inverse
// of the one used by [outline.Map].
func Rasterize(contours []outline.Contour, p outline.Params, rows, cols int) [][]bool {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	z := vector.NewRasterizer(cols, rows)
	px := float32(p.Pixel)
	for _, c := range contours {
		if len(c) == 0 {
			continue
		}
		z.MoveTo(float32(c[0].X)/px, float32(p.Baseline)-float32(c[0].Y)/px)
		for _, pt := range c[1:] {
			z.LineTo(float32(pt.X)/px, float32(p.Baseline)-float32(pt.Y)/px)
		}
		z.ClosePath()
	}
	return toGrid(z, rows, cols)
}

// RasterizeSegments renders glyph outlines read back from a font file.
// The segments must have been loaded at a size of one pixel per design
// unit, that is with ppem equal to the units per em of the font.
func RasterizeSegments(segs sfnt.Segments, p outline.Params, rows, cols int) [][]bool {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	z := vector.NewRasterizer(cols, rows)

	// Segment coordinates use 26.6 fixed point with y pointing down.
	scale := float32(64 * p.Pixel)
	pt := func(a fixed.Point26_6) (float32, float32) {
		return float32(a.X) / scale, float32(p.Baseline) + float32(a.Y)/scale
	}
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			z.ClosePath()
			z.MoveTo(pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			z.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			z.QuadTo(x1, y1, x2, y2)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			x3, y3 := pt(seg.Args[2])
			z.CubeTo(x1, y1, x2, y2, x3, y3)
		}
	}
	z.ClosePath()
	return toGrid(z, rows, cols)
}

func toGrid(z *vector.Rasterizer, rows, cols int) [][]bool {
	img := image.NewAlpha(image.Rect(0, 0, cols, rows))
	z.Draw(img, img.Bounds(), image.Opaque, image.Point{})

	grid := make([][]bool, rows)
	for y := range grid {
		grid[y] = make([]bool, cols)
		for x := range grid[y] {
			grid[y][x] = img.AlphaAt(x, y).A >= 0x80
		}
	}
	return grid
}

// Diff returns a description of the pixels where got and want differ, or
// the empty string if the grids are equal.
func Diff(want, got [][]bool) string {
	if len(want) != len(got) {
		return fmt.Sprintf("%d rows, expected %d", len(got), len(want))
	}
	var b strings.Builder
	for y := range want {
		if len(want[y]) != len(got[y]) {
			fmt.Fprintf(&b, "row %d: %d columns, expected %d\n", y, len(got[y]), len(want[y]))
			continue
		}
		for x := range want[y] {
			if want[y][x] != got[y][x] {
				fmt.Fprintf(&b, "pixel (%d,%d): got %t, expected %t\n", x, y, got[y][x], want[y][x])
			}
		}
	}
	return b.String()
}
