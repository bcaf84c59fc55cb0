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

// Package gtab writes OpenType "GSUB" tables.
//
// Only ligature substitutions (lookup type 4) are supported.  This is
// enough to replace fixed sequences of glyphs by composite glyphs.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/gsub
package gtab

import (
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/gridfont/sfnt/opentype/coverage"
)

// LookupIndex enumerates lookups.
// It is used as an index into a LookupList.
type LookupIndex uint16

// Info contains the information for a "GSUB" table.
type Info struct {
	ScriptList  ScriptListInfo
	FeatureList FeatureListInfo
	LookupList  []*Lookup
}

// Lookup is a lookup table with one ligature substitution subtable.
type Lookup struct {
	Flags     uint16
	Ligatures  []Ligature
}

// Ligature replaces the glyph sequence In by the single glyph Out.
// In must contain at least two glyphs.
type Ligature struct {
	In  []glyph.ID
	Out glyph.ID
}

// NewLigatureInfo returns the "GSUB" information for a font where the
// given ligatures are enabled by the "liga" feature, for the default
// script and for Latin script.
func NewLigatureInfo(ligs []Ligature) *Info {
	ff := &Features{Required: NoRequiredFeature, Optional: []FeatureIndex{0}}
	return &Info{
		ScriptList: ScriptListInfo{
			"DFLT": ff,
			"latn": ff,
		},
		FeatureList: FeatureListInfo{
			{Tag: "liga", Lookups: []LookupIndex{0}},
		},
		LookupList: []*Lookup{
			{Ligatures: ligs},
		},
	}
}

// Encode returns the binary form of the "GSUB" table.
func (info *Info) Encode() ([]byte, error) {
	scriptList := info.ScriptList.encode()
	featureList := info.FeatureList.encode()
	lookupList, err := encodeLookupList(info.LookupList)
	if err != nil {
		return nil, err
	}

	const headerSize = 10
	scriptOffs := headerSize
	featureOffs := scriptOffs + len(scriptList)
	lookupOffs := featureOffs + len(featureList)
	if lookupOffs > 0xFFFF {
		return nil, errTooLarge
	}

	buf := make([]byte, 0, lookupOffs+len(lookupList))
	buf = binary.BigEndian.AppendUint16(buf, 1) // majorVersion
	buf = binary.BigEndian.AppendUint16(buf, 0) // minorVersion
	buf = binary.BigEndian.AppendUint16(buf, uint16(scriptOffs))
	buf = binary.BigEndian.AppendUint16(buf, uint16(featureOffs))
	buf = binary.BigEndian.AppendUint16(buf, uint16(lookupOffs))
	buf = append(buf, scriptList...)
	buf = append(buf, featureList...)
	buf = append(buf, lookupList...)
	return buf, nil
}

var errTooLarge = errors.New("sfnt/gtab: GSUB table too large")

// https://learn.microsoft.com/en-us/typography/opentype/spec/chapter2#lookup-list-table
func encodeLookupList(lookups []*Lookup) ([]byte, error) {
	subtables := make([][]byte, len(lookups))
	offs := make([]int, len(lookups))
	totalSize := 2 + 2*len(lookups)
	for i, l := range lookups {
		sub, err := encodeLigatureSubst(l.Ligatures)
		if err != nil {
			return nil, fmt.Errorf("lookup %d: %w", i, err)
		}
		subtables[i] = sub
		offs[i] = totalSize
		totalSize += 8 + len(sub) // Lookup table with one subtable
	}
	if len(lookups) > 0 && offs[len(lookups)-1] > 0xFFFF {
		return nil, errTooLarge
	}

	buf := make([]byte, 0, totalSize)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(lookups)))
	for _, o := range offs {
		buf = binary.BigEndian.AppendUint16(buf, uint16(o))
	}
	for i, l := range lookups {
		buf = binary.BigEndian.AppendUint16(buf, 4) // lookupType: ligature
		buf = binary.BigEndian.AppendUint16(buf, l.Flags)
		buf = binary.BigEndian.AppendUint16(buf, 1) // subTableCount
		buf = binary.BigEndian.AppendUint16(buf, 8) // subtableOffset
		buf = append(buf, subtables[i]...)
	}
	return buf, nil
}

// encodeLigatureSubst encodes a ligature substitution subtable (format 1).
// Ligatures are grouped by their first glyph.  Within each group, longer
// ligatures come first so that they take precedence over their prefixes.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/gsub#lookuptype-4-ligature-substitution-subtable
func encodeLigatureSubst(ligs []Ligature) ([]byte, error) {
	cov := coverage.Set{}
	byFirst := make(map[glyph.ID][]Ligature)
	for _, l := range ligs {
		if len(l.In) < 2 {
			return nil, fmt.Errorf("sfnt/gtab: ligature for %v has fewer than two components", l.In)
		}
		cov[l.In[0]] = true
		byFirst[l.In[0]] = append(byFirst[l.In[0]], l)
	}
	firsts := cov.Glyphs()
	for _, gid := range firsts {
		slices.SortStableFunc(byFirst[gid], func(a, b Ligature) int {
			if c := cmp.Compare(len(b.In), len(a.In)); c != 0 {
				return c
			}
			return slices.Compare(a.In, b.In)
		})
	}

	covData := cov.Encode()

	// layout: header, LigatureSet tables with their Ligature tables,
	// coverage table
	headerSize := 6 + 2*len(firsts)
	setOffs := make([]int, len(firsts))
	pos := headerSize
	for i, gid := range firsts {
		setOffs[i] = pos
		pos += 2 + 2*len(byFirst[gid])
		for _, l := range byFirst[gid] {
			pos += 4 + 2*(len(l.In)-1)
		}
	}
	covOffs := pos
	if covOffs > 0xFFFF {
		return nil, errTooLarge
	}

	buf := make([]byte, 0, covOffs+len(covData))
	buf = binary.BigEndian.AppendUint16(buf, 1) // substFormat
	buf = binary.BigEndian.AppendUint16(buf, uint16(covOffs))
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(firsts)))
	for _, o := range setOffs {
		buf = binary.BigEndian.AppendUint16(buf, uint16(o))
	}
	for _, gid := range firsts {
		set := byFirst[gid]
		// offsets are relative to the start of the LigatureSet table
		o := 2 + 2*len(set)
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(set)))
		for _, l := range set {
			buf = binary.BigEndian.AppendUint16(buf, uint16(o))
			o += 4 + 2*(len(l.In)-1)
		}
		for _, l := range set {
			buf = binary.BigEndian.AppendUint16(buf, uint16(l.Out))
			buf = binary.BigEndian.AppendUint16(buf, uint16(len(l.In)))
			for _, c := range l.In[1:] {
				buf = binary.BigEndian.AppendUint16(buf, uint16(c))
			}
		}
	}
	buf = append(buf, covData...)
	return buf, nil
}
