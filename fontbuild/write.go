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
	"io"
	"maps"
	"slices"

	"seehuhn.de/go/gridfont/sfnt/header"
	"seehuhn.de/go/gridfont/woff2"
)

// Tables returns a copy of the sfnt tables of the font.
// The checkSumAdjustment field of the "head" table is filled in.
func (f *Font) Tables() map[string][]byte {
	tables := f.copyTables()
	_, _ = header.Write(io.Discard, header.ScalerTrueType, tables)
	return tables
}

// WriteTrueType writes the font as a TrueType file.
func (f *Font) WriteTrueType(w io.Writer) (int64, error) {
	return header.Write(w, header.ScalerTrueType, f.copyTables())
}

// WriteWOFF2 writes the font as a WOFF2 file.
func (f *Font) WriteWOFF2(w io.Writer) (int64, error) {
	return woff2.Encode(w, header.ScalerTrueType, f.Tables())
}

// copyTables returns a copy of the table map where the "head" table,
// which is modified while writing, is not shared with f.
func (f *Font) copyTables() map[string][]byte {
	tables := maps.Clone(f.tables)
	tables["head"] = slices.Clone(f.tables["head"])
	return tables
}
