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

package gtab

import (
	"encoding/binary"
	"maps"
	"slices"
)

// ScriptListInfo contains the information of a ScriptList table.
// It maps OpenType script tags, like "DFLT" or "latn", to the features of
// the default language system of the script.
type ScriptListInfo map[string]*Features

// Features describes the mandatory and optional features for a script/language.
type Features struct {
	Required FeatureIndex // 0xFFFF, if no required feature
	Optional []FeatureIndex
}

// https://learn.microsoft.com/en-us/typography/opentype/spec/chapter2#script-list-table-and-script-record
func (info ScriptListInfo) encode() []byte {
	scripts := slices.Sorted(maps.Keys(info))

	// Each Script table is followed directly by its default LangSys table.
	offs := make([]int, len(scripts))
	totalSize := 2 + 6*len(scripts)
	for i, script := range scripts {
		offs[i] = totalSize
		totalSize += 4 + 6 + 2*len(info[script].Optional)
	}
	if totalSize > 0xFFFF {
		panic("sfnt/gtab: script list too large")
	}

	buf := make([]byte, 0, totalSize)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(scripts)))
	for i, script := range scripts {
		if len(script) != 4 {
			panic("sfnt/gtab: invalid script tag " + script)
		}
		buf = append(buf, script...)
		buf = binary.BigEndian.AppendUint16(buf, uint16(offs[i]))
	}
	for _, script := range scripts {
		ff := info[script]

		// Script table
		buf = binary.BigEndian.AppendUint16(buf, 4) // defaultLangSysOffset
		buf = binary.BigEndian.AppendUint16(buf, 0) // langSysCount

		// LangSys table
		buf = binary.BigEndian.AppendUint16(buf, 0) // lookupOrderOffset
		buf = binary.BigEndian.AppendUint16(buf, uint16(ff.Required))
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(ff.Optional)))
		for _, idx := range ff.Optional {
			buf = binary.BigEndian.AppendUint16(buf, uint16(idx))
		}
	}
	return buf
}
