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
	"fmt"
)

// FeatureIndex enumerates features.
// It is used as an index into the FeatureListInfo.
// Valid values are in the range from 0 to 0xFFFE.
// The special value 0xFFFF is used to indicate the absence of required
// features in the `Features` struct.
type FeatureIndex uint16

// NoRequiredFeature marks a language system without a required feature.
const NoRequiredFeature FeatureIndex = 0xFFFF

// FeatureListInfo contains the contents of an OpenType "Feature List" table.
type FeatureListInfo []*Feature

// Feature describes an OpenType feature, used either in a "GPOS" or "GSUB"
// table.
type Feature struct {
	// Tag describes the function of this feature.
	// https://learn.microsoft.com/en-us/typography/opentype/spec/featuretags
	Tag string

	// Lookups is a list of lookup indices that are used by this feature.
	Lookups []LookupIndex
}

func (f Feature) String() string {
	return fmt.Sprintf("%s:%v", f.Tag, f.Lookups)
}

// https://learn.microsoft.com/en-us/typography/opentype/spec/chapter2#feature-list-table
func (info FeatureListInfo) encode() []byte {
	offs := make([]int, len(info))
	totalSize := 2 + 6*len(info)
	for i, f := range info {
		offs[i] = totalSize
		totalSize += 4 + 2*len(f.Lookups)
	}
	if len(info) > 0 && offs[len(info)-1] > 0xFFFF {
		panic("sfnt/gtab: feature list too large")
	}

	buf := make([]byte, 0, totalSize)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(info)))
	for i, f := range info {
		if len(f.Tag) != 4 {
			panic("sfnt/gtab: invalid feature tag " + f.Tag)
		}
		buf = append(buf, f.Tag...)
		buf = binary.BigEndian.AppendUint16(buf, uint16(offs[i]))
	}
	for _, f := range info {
		buf = append(buf, 0, 0) // featureParamsOffset
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(f.Lookups)))
		for _, l := range f.Lookups {
			buf = binary.BigEndian.AppendUint16(buf, uint16(l))
		}
	}
	return buf
}
