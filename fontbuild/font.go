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

// Package fontbuild assembles glyph outlines into TrueType fonts.
//
// The glyph order of an assembled font is ".notdef" first, then the
// glyphs with a codepoint sorted by codepoint, and finally the ligature
// glyphs sorted by name.
package fontbuild

import (
	"cmp"
	"fmt"
	"slices"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/gridfont/outline"
	"seehuhn.de/go/gridfont/sfnt/opentype/gtab"
)

// InvalidFontError is returned if the glyphs cannot be assembled into a
// valid font.
type InvalidFontError struct {
	SubSystem string
	Reason    string
}

func (err *InvalidFontError) Error() string {
	return err.SubSystem + ": " + err.Reason
}

// Font is an assembled font.
// The font is immutable and can be written any number of times.
type Font struct {
	Info *Info

	// Glyphs lists the glyphs in glyph order.  Glyphs[0] is ".notdef".
	Glyphs []*outline.Glyph

	// Ligatures lists the substitutions of the "GSUB" table.
	Ligatures []gtab.Ligature

	cmap   map[rune]glyph.ID
	tables map[string][]byte
}

// Assemble builds a font from the given glyph outlines.
//
// Ligature glyphs with components are made reachable through a "liga"
// feature.  All components of such a ligature must be mapped by the
// font.  Ligature glyphs without components are included in the font,
// but can only be accessed by glyph ID.
func Assemble(glyphs []*outline.Glyph, info *Info) (*Font, error) {
	if info.UnitsPerEm < 16 {
		return nil, &InvalidFontError{"head", fmt.Sprintf("%d units per em is too small", info.UnitsPerEm)}
	}

	order, err := glyphOrder(glyphs, info)
	if err != nil {
		return nil, err
	}

	f := &Font{
		Info:   info,
		Glyphs: order,
		cmap:   make(map[rune]glyph.ID),
	}
	for i, g := range order {
		if g.HasUnicode {
			f.cmap[g.Unicode] = glyph.ID(i)
		}
	}

	f.Ligatures, err = f.makeLigatures()
	if err != nil {
		return nil, err
	}

	f.tables, err = f.makeTables()
	if err != nil {
		return nil, err
	}
	return f, nil
}

// NumGlyphs returns the number of glyphs in the font, including ".notdef".
func (f *Font) NumGlyphs() int {
	return len(f.Glyphs)
}

// GlyphID returns the glyph for the character r.
func (f *Font) GlyphID(r rune) (glyph.ID, bool) {
	gid, ok := f.cmap[r]
	return gid, ok
}

// glyphOrder sorts the glyphs into glyph order and prepends ".notdef".
func glyphOrder(glyphs []*outline.Glyph, info *Info) ([]*outline.Glyph, error) {
	var chars, ligs []*outline.Glyph
	for _, g := range glyphs {
		switch {
		case g.HasUnicode:
			chars = append(chars, g)
		case g.Ligature:
			ligs = append(ligs, g)
		default:
			return nil, &InvalidFontError{"cmap", fmt.Sprintf("glyph %q has no codepoint", g.Name)}
		}
	}
	slices.SortStableFunc(chars, func(a, b *outline.Glyph) int {
		return cmp.Compare(a.Unicode, b.Unicode)
	})
	slices.SortStableFunc(ligs, func(a, b *outline.Glyph) int {
		return cmp.Compare(a.Name, b.Name)
	})
	for i := 1; i < len(chars); i++ {
		if chars[i].Unicode == chars[i-1].Unicode {
			return nil, &InvalidFontError{"cmap",
				fmt.Sprintf("glyphs %q and %q both map U+%04X",
					chars[i-1].Label, chars[i].Label, chars[i].Unicode)}
		}
	}

	numGlyphs := 1 + len(chars) + len(ligs)
	if numGlyphs > 0xFFFF {
		return nil, &InvalidFontError{"maxp", fmt.Sprintf("too many glyphs (%d)", numGlyphs)}
	}

	advance := funit.Int16(info.UnitsPerEm / 2)
	if len(chars) > 0 {
		advance = chars[0].Advance
	}

	order := make([]*outline.Glyph, 0, numGlyphs)
	order = append(order, notdefGlyph(advance, info.Ascent))
	order = append(order, chars...)
	order = append(order, ligs...)

	seen := make(map[string]bool, numGlyphs)
	for _, g := range order {
		if len(g.Name) > 255 {
			return nil, &InvalidFontError{"post", fmt.Sprintf("glyph name %q too long", g.Name)}
		}
		if seen[g.Name] {
			return nil, &InvalidFontError{"post", fmt.Sprintf("duplicate glyph name %q", g.Name)}
		}
		seen[g.Name] = true
	}
	return order, nil
}

// notdefGlyph returns a hollow box which fills the given advance width.
func notdefGlyph(advance, height funit.Int16) *outline.Glyph {
	s := max(advance/8, 1)
	g := &outline.Glyph{
		Name:    ".notdef",
		Advance: advance,
	}
	if advance < 3*s || height < 2*s {
		return g
	}

	// The outer contour runs clockwise and the inner one anti-clockwise,
	// so that the inside of the box is left empty.
	x0, x1 := s, advance-s
	y0, y1 := funit.Int16(0), height-s
	g.Contours = append(g.Contours, outline.Contour{
		{X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}, {X: x0, Y: y0},
	})
	if x1-x0 > 2*s && y1-y0 > 2*s {
		x0, x1, y0, y1 = x0+s, x1-s, y0+s, y1-s
		g.Contours = append(g.Contours, outline.Contour{
			{X: x0, Y: y1}, {X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1},
		})
	}
	return g
}

// makeLigatures converts the ligature components into glyph IDs.
func (f *Font) makeLigatures() ([]gtab.Ligature, error) {
	var res []gtab.Ligature
	seen := make(map[string]string)
	for i, g := range f.Glyphs {
		if !g.Ligature || len(g.Components) == 0 {
			continue
		}
		if len(g.Components) < 2 {
			return nil, &InvalidFontError{"GSUB",
				fmt.Sprintf("ligature %q has only one component", g.Label)}
		}

		lig := gtab.Ligature{Out: glyph.ID(i)}
		for _, r := range g.Components {
			gid, ok := f.cmap[r]
			if !ok {
				return nil, &InvalidFontError{"GSUB",
					fmt.Sprintf("component U+%04X of ligature %q is not in the font", r, g.Label)}
			}
			lig.In = append(lig.In, gid)
		}

		key := string(g.Components)
		if other, dup := seen[key]; dup {
			return nil, &InvalidFontError{"GSUB",
				fmt.Sprintf("ligatures %q and %q have the same components", other, g.Label)}
		}
		seen[key] = g.Label

		res = append(res, lig)
	}
	return res, nil
}
