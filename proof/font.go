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

package proof

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/gridfont/fontbuild"
	"seehuhn.de/go/gridfont/outline"
)

// CheckFont parses the TrueType data with an independent font reader and
// compares the result with the font the data was written from.
// The number of glyphs, the character map, the advance widths, the glyph
// names and the glyph bounding boxes are checked.
func CheckFont(data []byte, want *fontbuild.Font) error {
	fnt, err := sfnt.Parse(data)
	if err != nil {
		return err
	}

	if n := fnt.NumGlyphs(); n != want.NumGlyphs() {
		return fmt.Errorf("font has %d glyphs, expected %d", n, want.NumGlyphs())
	}
	upem := fnt.UnitsPerEm()
	if int(upem) != int(want.Info.UnitsPerEm) {
		return fmt.Errorf("font has %d units per em, expected %d", upem, want.Info.UnitsPerEm)
	}
	ppem := fixed.I(int(upem))

	var errs []error
	buf := &sfnt.Buffer{}
	for i, g := range want.Glyphs {
		gid := sfnt.GlyphIndex(i)

		if g.HasUnicode {
			x, err := fnt.GlyphIndex(buf, g.Unicode)
			if err != nil {
				return err
			}
			if x != gid {
				errs = append(errs, fmt.Errorf("U+%04X maps to glyph %d, expected %d", g.Unicode, x, gid))
			}
		}

		adv, err := fnt.GlyphAdvance(buf, gid, ppem, font.HintingNone)
		if err != nil {
			return err
		}
		if adv != fixed.I(int(g.Advance)) {
			errs = append(errs, fmt.Errorf("glyph %q has advance %d, expected %d", g.Name, adv.Round(), g.Advance))
		}

		name, err := fnt.GlyphName(buf, gid)
		if err != nil {
			return err
		}
		if name != g.Name {
			errs = append(errs, fmt.Errorf("glyph %d is named %q, expected %q", gid, name, g.Name))
		}

		segs, err := fnt.LoadGlyph(buf, gid, ppem, nil)
		if err != nil {
			return fmt.Errorf("glyph %q: %w", g.Name, err)
		}
		if len(g.Contours) > 0 {
			bbox := g.BBox()
			got := segs.Bounds()
			wantBounds := fixed.Rectangle26_6{
				Min: fixed.P(int(bbox.LLx), -int(bbox.URy)),
				Max: fixed.P(int(bbox.URx), -int(bbox.LLy)),
			}
			if got != wantBounds {
				errs = append(errs, fmt.Errorf("glyph %q has bounds %v, expected %v", g.Name, got, wantBounds))
			}
		} else if len(segs) > 0 {
			errs = append(errs, fmt.Errorf("glyph %q should be empty", g.Name))
		}
	}
	return errors.Join(errs...)
}

// Grid is the source raster of one glyph of a compiled font.
type Grid struct {
	GID  glyph.ID
	Name string
	Grid [][]bool
}

// CheckGrids loads the given glyphs from the TrueType data, renders them
// and compares the result with the source rasters.
func CheckGrids(data []byte, grids []Grid, p outline.Params) error {
	fnt, err := sfnt.Parse(data)
	if err != nil {
		return err
	}
	ppem := fixed.I(int(fnt.UnitsPerEm()))

	var errs []error
	buf := &sfnt.Buffer{}
	for _, g := range grids {
		segs, err := fnt.LoadGlyph(buf, sfnt.GlyphIndex(g.GID), ppem, nil)
		if err != nil {
			return fmt.Errorf("glyph %q: %w", g.Name, err)
		}
		rows := len(g.Grid)
		cols := 0
		if rows > 0 {
			cols = len(g.Grid[0])
		}
		got := RasterizeSegments(segs, p, rows, cols)
		if d := Diff(g.Grid, got); d != "" {
			errs = append(errs, fmt.Errorf("glyph %q does not match its source:\n%s", g.Name, d))
		}
	}
	return errors.Join(errs...)
}

// CheckLigatures shapes the component text of every ligature of want with
// HarfBuzz and checks that the result is the single ligature glyph.
func CheckLigatures(data []byte, want *fontbuild.Font) error {
	if len(want.Ligatures) == 0 {
		return nil
	}

	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return err
	}
	shaper := &shaping.HarfbuzzShaper{}

	var errs []error
	for _, lig := range want.Ligatures {
		g := want.Glyphs[lig.Out]
		text := g.Components
		input := shaping.Input{
			Text:      text,
			RunStart:  0,
			RunEnd:    len(text),
			Direction: di.DirectionLTR,
			Face:      face,
			Size:      fixed.I(int(want.Info.UnitsPerEm)),
			Script:    language.Latin,
			Language:  language.NewLanguage("en"),
		}
		out := shaper.Shape(input)

		var gids []int
		for _, sg := range out.Glyphs {
			gids = append(gids, int(sg.GlyphID))
		}
		if len(gids) != 1 || gids[0] != int(lig.Out) {
			errs = append(errs, fmt.Errorf("%q shapes to glyphs %v, expected [%d]", string(text), gids, lig.Out))
		}
	}
	return errors.Join(errs...)
}
