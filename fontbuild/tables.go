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

package fontbuild

import (
	"fmt"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/gridfont/outline"
	"seehuhn.de/go/gridfont/sfnt/glyf"
	"seehuhn.de/go/gridfont/sfnt/head"
	"seehuhn.de/go/gridfont/sfnt/hmtx"
	"seehuhn.de/go/gridfont/sfnt/maxp"
	"seehuhn.de/go/gridfont/sfnt/name"
	"seehuhn.de/go/gridfont/sfnt/opentype/gtab"
	"seehuhn.de/go/gridfont/sfnt/os2"
	"seehuhn.de/go/gridfont/sfnt/post"
)

// metrics collects per-glyph information used by several tables.
type metrics struct {
	widths      []uint16
	extents     []funit.Rect16
	bbox        funit.Rect16
	maxPoints   int
	maxContours int
}

func (f *Font) makeTables() (map[string][]byte, error) {
	tables := make(map[string][]byte)

	gg := make([]*glyf.Glyph, len(f.Glyphs))
	m := &metrics{
		widths:  make([]uint16, len(f.Glyphs)),
		extents: make([]funit.Rect16, len(f.Glyphs)),
	}
	first := true
	for i, g := range f.Glyphs {
		if g.Advance < 0 {
			return nil, &InvalidFontError{"hmtx", fmt.Sprintf("glyph %q has negative width", g.Name)}
		}
		gg[i] = toGlyf(g)
		m.widths[i] = uint16(g.Advance)
		m.extents[i] = gg[i].BBox()
		m.maxPoints = max(m.maxPoints, gg[i].NumPoints())
		m.maxContours = max(m.maxContours, len(g.Contours))

		if len(g.Contours) == 0 {
			continue
		}
		if first {
			m.bbox = m.extents[i]
			first = false
		} else {
			m.bbox = extend(m.bbox, m.extents[i])
		}
	}
	if m.maxPoints > 0xFFFF || m.maxContours > 0xFFFF {
		return nil, &InvalidFontError{"maxp", "glyph too complex"}
	}

	enc, err := glyf.Encode(gg)
	if err != nil {
		return nil, err
	}
	tables["glyf"] = enc.GlyfData
	tables["loca"] = enc.LocaData

	tables["head"] = f.makeHead(m, enc.LongOffsets)
	tables["hhea"], tables["hmtx"] = f.makeHmtx(m)
	tables["maxp"] = f.makeMaxp(m)
	tables["OS/2"] = f.makeOS2(m)
	tables["cmap"] = f.makeCmap()
	tables["name"] = f.makeName()
	tables["post"] = f.makePost()

	if len(f.Ligatures) > 0 {
		gsub := gtab.NewLigatureInfo(f.Ligatures)
		data, err := gsub.Encode()
		if err != nil {
			return nil, err
		}
		tables["GSUB"] = data
	}

	return tables, nil
}

func toGlyf(g *outline.Glyph) *glyf.Glyph {
	res := &glyf.Glyph{
		Contours: make([]glyf.Contour, len(g.Contours)),
	}
	for i, c := range g.Contours {
		cc := make(glyf.Contour, len(c))
		for j, p := range c {
			cc[j] = glyf.Point{X: p.X, Y: p.Y}
		}
		res.Contours[i] = cc
	}
	return res
}

func extend(a, b funit.Rect16) funit.Rect16 {
	return funit.Rect16{
		LLx: min(a.LLx, b.LLx),
		LLy: min(a.LLy, b.LLy),
		URx: max(a.URx, b.URx),
		URy: max(a.URy, b.URy),
	}
}

func (f *Font) makeHead(m *metrics, longOffsets bool) []byte {
	headInfo := &head.Info{
		FontRevision:   f.Info.Version,
		UnitsPerEm:     f.Info.UnitsPerEm,
		Created:        f.Info.Created,
		Modified:       f.Info.Modified,
		FontBBox:       m.bbox,
		IsBold:         f.Info.IsBold(),
		LowestRecPPEM:  f.Info.LowestRecPPEM,
		HasLongOffsets: longOffsets,
	}
	return headInfo.Encode()
}

func (f *Font) makeHmtx(m *metrics) ([]byte, []byte) {
	hmtxInfo := &hmtx.Info{
		Widths:      m.widths,
		GlyphExtent: m.extents,
		Ascent:      f.Info.Ascent,
		Descent:     f.Info.Descent,
		LineGap:     f.Info.LineGap,
	}
	return hmtxInfo.Encode()
}

func (f *Font) makeMaxp(m *metrics) []byte {
	maxpInfo := &maxp.Info{
		NumGlyphs:   len(f.Glyphs),
		MaxPoints:   uint16(m.maxPoints),
		MaxContours: uint16(m.maxContours),
	}
	return maxpInfo.Encode()
}

func (f *Font) makeOS2(m *metrics) []byte {
	avgGlyphWidth := 0
	count := 0
	for _, w := range m.widths {
		if w > 0 {
			avgGlyphWidth += int(w)
			count++
		}
	}
	if count > 0 {
		avgGlyphWidth = (avgGlyphWidth + count/2) / count
	}

	capHeight := f.Info.CapHeight
	if capHeight == 0 {
		capHeight = f.letterHeight('H', f.Info.Ascent)
	}
	xHeight := f.Info.XHeight
	if xHeight == 0 {
		xHeight = f.letterHeight('x', capHeight*2/3)
	}

	chars := make([]rune, 0, len(f.cmap))
	for r := range f.cmap {
		chars = append(chars, r)
	}

	var maxContext uint16
	for _, lig := range f.Ligatures {
		maxContext = max(maxContext, uint16(len(lig.In)))
	}

	upem := funit.Int16(f.Info.UnitsPerEm)
	os2Info := &os2.Info{
		WeightClass: f.Info.Weight,

		IsBold:       f.Info.IsBold(),
		IsRegular:    !f.Info.IsBold(),
		IsFixedPitch: f.isFixedPitch(),

		AvgGlyphWidth: funit.Int16(avgGlyphWidth),

		Ascent:    f.Info.Ascent,
		Descent:   f.Info.Descent,
		LineGap:   f.Info.LineGap,
		CapHeight: capHeight,
		XHeight:   xHeight,

		WinAscent:  max(f.Info.Ascent, m.bbox.URy),
		WinDescent: max(-f.Info.Descent, -m.bbox.LLy),

		SubscriptXSize:     upem * 13 / 20,
		SubscriptYSize:     upem * 13 / 20,
		SubscriptYOffset:   upem * 3 / 20,
		SuperscriptXSize:   upem * 13 / 20,
		SuperscriptYSize:   upem * 13 / 20,
		SuperscriptYOffset: upem * 7 / 20,
		StrikeoutSize:      f.Info.UnderlineThickness,
		StrikeoutPosition:  xHeight / 2,

		Vendor:     f.Info.Vendor,
		Chars:      chars,
		MaxContext: maxContext,
	}
	return os2Info.Encode()
}

// letterHeight returns the top of the glyph for r, or def if the font has
// no such glyph.
func (f *Font) letterHeight(r rune, def funit.Int16) funit.Int16 {
	gid, ok := f.cmap[r]
	if !ok || len(f.Glyphs[gid].Contours) == 0 {
		return def
	}
	return f.Glyphs[gid].BBox().URy
}

// isFixedPitch reports whether all glyphs reachable through the "cmap"
// table have the same width.  Ligature glyphs span several cells and are
// not considered.
func (f *Font) isFixedPitch() bool {
	var width funit.Int16
	for _, gid := range f.cmap {
		w := f.Glyphs[gid].Advance
		if width == 0 {
			width = w
		} else if w != width {
			return false
		}
	}
	return width != 0
}

func (f *Font) makeName() []byte {
	fullName := f.Info.FullName()
	version := f.Info.Version.String()
	vendor := f.Info.Vendor
	if vendor == "" {
		vendor = "NONE"
	}
	t := &name.Table{
		Copyright:      f.Info.Copyright,
		Family:         f.Info.FamilyName,
		Subfamily:      f.Info.Subfamily(),
		Identifier:     version + ";" + vendor + ";" + f.Info.PostScriptName(),
		FullName:       fullName,
		Version:        "Version " + version,
		PostScriptName: f.Info.PostScriptName(),
	}
	return t.Encode(f.Info.Language)
}

func (f *Font) makePost() []byte {
	names := make([]string, len(f.Glyphs))
	for i, g := range f.Glyphs {
		names[i] = g.Name
	}
	postInfo := &post.Info{
		UnderlinePosition:  f.Info.UnderlinePosition,
		UnderlineThickness: f.Info.UnderlineThickness,
		IsFixedPitch:       f.isFixedPitch(),
		Names:              names,
	}
	return postInfo.Encode()
}
