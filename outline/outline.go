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

// Package outline converts pixel rectangles into glyph outlines.
//
// Raster rows are numbered from the top, starting at 0.  Outline
// coordinates are in font design units, with x increasing to the right and
// y increasing upwards from the baseline.  The pixel row Baseline-1 is the
// lowest row above the baseline.
package outline

import (
	"fmt"
	"math"
	"strings"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/gridfont/compact"
	"seehuhn.de/go/gridfont/glyphsrc"
)

// Params describes the mapping from pixels to font design units.
type Params struct {
	// Pixel is the side length of one pixel in design units.
	Pixel int

	// Baseline is the index of the first pixel row below the baseline.
	Baseline int

	// BaseWidth is the width of a standalone glyph, in pixels.
	BaseWidth int
}

// Point is a point in font design units.
type Point struct {
	X, Y funit.Int16
}

// Contour is a closed polygon.  The last point is connected back to the
// first.
type Contour []Point

// Area returns the signed area enclosed by the contour.  The area is
// negative for clockwise contours and positive for anti-clockwise ones.
func (c Contour) Area() int64 {
	var sum int64
	for i, p := range c {
		q := c[(i+1)%len(c)]
		sum += int64(p.X)*int64(q.Y) - int64(q.X)*int64(p.Y)
	}
	return sum / 2
}

// Glyph is the outline of one glyph, together with the information the
// font assembly needs.
type Glyph struct {
	// Name is a PostScript-style glyph name, used for diagnostics.
	Name string

	// Label is the label of the source record.
	Label string

	// Unicode is the character for this glyph.  This is only valid if
	// HasUnicode is set.
	Unicode    rune
	HasUnicode bool

	// Components lists the characters replaced by a ligature glyph, in
	// order.  This is nil for standalone glyphs and for ligatures whose
	// components could not be resolved.
	Components []rune

	Ligature bool

	Advance  funit.Int16
	Contours []Contour
}

// Map converts rectangles of pixels into contours.  Each contour has the
// four corners of one rectangle, in the order top-left, top-right,
// bottom-right, bottom-left.  This is clockwise, since y points upwards.
//
// Map panics if a coordinate does not fit into 16 bits.
func Map(rects []compact.Rect, p Params) []Contour {
	if len(rects) == 0 {
		return nil
	}
	res := make([]Contour, len(rects))
	for i, r := range rects {
		left := toUnit(r.X * p.Pixel)
		right := toUnit((r.X + r.W) * p.Pixel)
		top := toUnit((p.Baseline - r.Y) * p.Pixel)
		bottom := toUnit((p.Baseline - (r.Y + r.H)) * p.Pixel)
		res[i] = Contour{
			{left, top},
			{right, top},
			{right, bottom},
			{left, bottom},
		}
	}
	return res
}

// Build creates the outline for a glyph source record, given the
// rectangles obtained from its raster.
//
// Standalone glyphs have an advance width of BaseWidth pixels, ligatures
// are as wide as their raster.  The Components field of the result is left
// empty; mapping component labels to characters requires knowledge of the
// whole corpus.
func Build(rec *glyphsrc.Record, rects []compact.Rect, p Params) *Glyph {
	g := &Glyph{
		Name:     GlyphName(rec),
		Label:    rec.Label,
		Ligature: rec.Ligature,
		Contours: Map(rects, p),
	}
	if rec.HasCodepoint && !rec.Ligature {
		g.Unicode = rec.Codepoint
		g.HasUnicode = true
	}
	if rec.Ligature {
		g.Advance = toUnit(rec.Width() * p.Pixel)
	} else {
		g.Advance = toUnit(p.BaseWidth * p.Pixel)
	}
	return g
}

// GlyphName returns a glyph name for the record, following the Adobe
// glyph naming conventions where possible.
func GlyphName(rec *glyphsrc.Record) string {
	switch {
	case rec.Ligature:
		return "lig." + sanitize(rec.Label)
	case rec.HasCodepoint && rec.Codepoint <= 0xFFFF:
		return fmt.Sprintf("uni%04X", rec.Codepoint)
	case rec.HasCodepoint:
		return fmt.Sprintf("u%X", rec.Codepoint)
	default:
		return sanitize(rec.Label)
	}
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}

// NumPoints returns the total number of points in all contours.
func (g *Glyph) NumPoints() int {
	n := 0
	for _, c := range g.Contours {
		n += len(c)
	}
	return n
}

// BBox returns the bounding box of the glyph outline.  The bounding box of
// an empty glyph is the zero rectangle.
func (g *Glyph) BBox() funit.Rect16 {
	var bbox funit.Rect16
	first := true
	for _, c := range g.Contours {
		for _, p := range c {
			if first {
				bbox = funit.Rect16{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
				first = false
				continue
			}
			bbox.LLx = min(bbox.LLx, p.X)
			bbox.LLy = min(bbox.LLy, p.Y)
			bbox.URx = max(bbox.URx, p.X)
			bbox.URy = max(bbox.URy, p.Y)
		}
	}
	return bbox
}

func toUnit(v int) funit.Int16 {
	if v < math.MinInt16 || v > math.MaxInt16 {
		panic(fmt.Sprintf("outline: coordinate %d out of range", v))
	}
	return funit.Int16(v)
}
