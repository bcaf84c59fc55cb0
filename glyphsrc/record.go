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

// Package glyphsrc reads glyph source files.
//
// A glyph source file is a UTF-8 text file consisting of header lines,
// which start with "#", followed by the glyph raster.  Raster rows use "X"
// for a filled pixel and "." for an empty one:
//
//	# Latin Capital Letter A (U+0041)
//	# weight: regular
//	........
//	...XX...
//	..X..X..
//
// The first header line which is not a field supplies the glyph label.
// Ligature composites are marked with "(ligature)" instead of a codepoint
// and list the labels they replace in a "components:" field.
package glyphsrc

import (
	"fmt"
	"strings"
)

// Weight is the font weight a glyph is drawn for.
type Weight int

// These are the supported weights.
const (
	Regular Weight = iota
	Bold
)

func (w Weight) String() string {
	switch w {
	case Regular:
		return "regular"
	case Bold:
		return "bold"
	default:
		return fmt.Sprintf("Weight(%d)", int(w))
	}
}

// ParseWeight converts a weight name to a Weight.  The comparison is
// case-insensitive.
func ParseWeight(s string) (Weight, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regular":
		return Regular, nil
	case "bold":
		return Bold, nil
	}
	return 0, fmt.Errorf("unknown weight %q", s)
}

// Record is one parsed glyph source file.
//
// Records are not modified after parsing.  Transformations such as the
// derivation of bold glyphs return new records.
type Record struct {
	// Path is the name of the source file.
	Path string

	// Label is the short name of the glyph, in Unicode normal form C.
	Label string

	// Codepoint is the Unicode value of the glyph.  This is only valid if
	// HasCodepoint is set.  Values outside the Unicode range are
	// recorded as given.
	Codepoint    rune
	HasCodepoint bool

	// Ligature is set for composite glyphs which replace a sequence of
	// other glyphs.
	Ligature bool

	Weight Weight

	// Components lists the labels of the glyphs replaced by a ligature.
	Components []string

	// Grid holds the raster, row by row from top to bottom.  Rows may have
	// different lengths if the source was ragged.
	Grid [][]bool

	// Raw holds the raster rows exactly as they appear in the source.
	Raw []string

	// Derived is set for records which were computed from another record
	// rather than read from a file.
	Derived bool
}

// Width returns the length of the first raster row, or 0 if the raster is
// empty.
func (r *Record) Width() int {
	if len(r.Grid) == 0 {
		return 0
	}
	return len(r.Grid[0])
}

// Clone returns a deep copy of r.  No slices are shared between r and the
// copy.
func (r *Record) Clone() *Record {
	res := *r
	if r.Components != nil {
		res.Components = append([]string(nil), r.Components...)
	}
	if r.Grid != nil {
		res.Grid = make([][]bool, len(r.Grid))
		for i, row := range r.Grid {
			res.Grid[i] = append([]bool(nil), row...)
		}
	}
	if r.Raw != nil {
		res.Raw = append([]string(nil), r.Raw...)
	}
	return &res
}

func (r *Record) String() string {
	if r.HasCodepoint {
		return fmt.Sprintf("%s (U+%04X, %s)", r.Label, r.Codepoint, r.Weight)
	}
	if r.Ligature {
		return fmt.Sprintf("%s (ligature, %s)", r.Label, r.Weight)
	}
	return fmt.Sprintf("%s (%s)", r.Label, r.Weight)
}
