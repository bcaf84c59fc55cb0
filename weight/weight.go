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

// Package weight derives bold glyphs from regular ones.
package weight

import (
	"fmt"

	"seehuhn.de/go/gridfont/glyphsrc"
)

// Embolden returns a new grid in which every filled pixel also fills its
// right neighbour.  Pixels in the rightmost column are not extended.
// The input grid is not modified.
func Embolden(grid [][]bool) [][]bool {
	res := make([][]bool, len(grid))
	for y, row := range grid {
		out := make([]bool, len(row))
		for x, v := range row {
			if !v {
				continue
			}
			out[x] = true
			if x+1 < len(row) {
				out[x+1] = true
			}
		}
		res[y] = out
	}
	return res
}

// identity returns the key under which regular and bold versions of a glyph
// are matched: the label for ligatures, the codepoint otherwise.
func identity(rec *glyphsrc.Record) string {
	if rec.Ligature || !rec.HasCodepoint {
		return "L:" + rec.Label
	}
	return fmt.Sprintf("U:%X", rec.Codepoint)
}

// DeriveBold returns recs, extended by a derived bold record for every
// regular record which has no explicit bold counterpart.  Derived records
// are appended after the input records, in input order.
//
// Neither the input records nor their grids are modified, and derived
// records share no slices with their originals.
func DeriveBold(recs []*glyphsrc.Record) []*glyphsrc.Record {
	haveBold := make(map[string]bool)
	for _, rec := range recs {
		if rec.Weight == glyphsrc.Bold {
			haveBold[identity(rec)] = true
		}
	}

	res := make([]*glyphsrc.Record, len(recs), len(recs)+len(recs)/2)
	copy(res, recs)
	for _, rec := range recs {
		if rec.Weight != glyphsrc.Regular {
			continue
		}
		id := identity(rec)
		if haveBold[id] {
			continue
		}
		haveBold[id] = true

		bold := rec.Clone()
		bold.Weight = glyphsrc.Bold
		bold.Derived = true
		bold.Grid = Embolden(rec.Grid)
		bold.Raw = rasterText(bold.Grid)
		res = append(res, bold)
	}
	return res
}

func rasterText(grid [][]bool) []string {
	res := make([]string, len(grid))
	for y, row := range grid {
		buf := make([]byte, len(row))
		for x, v := range row {
			if v {
				buf[x] = 'X'
			} else {
				buf[x] = '.'
			}
		}
		res[y] = string(buf)
	}
	return res
}
