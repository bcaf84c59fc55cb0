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

// Package name writes OpenType "name" tables.
// These tables contain the localized strings associated with a font.
// https://learn.microsoft.com/en-us/typography/opentype/spec/name
package name

import (
	"encoding/binary"
	"errors"
	"maps"
	"slices"
	"unicode/utf16"

	"golang.org/x/text/language"
)

// ID identifies a string in the "name" table.
type ID uint16

// These are the name IDs written by this package.
const (
	IDCopyright      ID = 0
	IDFamily         ID = 1
	IDSubfamily      ID = 2
	IDIdentifier     ID = 3
	IDFullName       ID = 4
	IDVersion        ID = 5
	IDPostScriptName ID = 6
	IDDescription    ID = 10
)

// Table contains the strings for one language.
// Empty strings are omitted from the encoded table.
type Table struct {
	Copyright      string
	Family         string
	Subfamily      string
	Identifier     string
	FullName       string
	Version        string
	PostScriptName string
	Description    string
}

func (t *Table) entries() map[ID]string {
	res := map[ID]string{
		IDCopyright:      t.Copyright,
		IDFamily:         t.Family,
		IDSubfamily:      t.Subfamily,
		IDIdentifier:     t.Identifier,
		IDFullName:       t.FullName,
		IDVersion:        t.Version,
		IDPostScriptName: t.PostScriptName,
		IDDescription:    t.Description,
	}
	maps.DeleteFunc(res, func(_ ID, v string) bool { return v == "" })
	return res
}

// Windows platform, Unicode BMP encoding.  This must match the encoding
// of the Windows subtables in the "cmap" table.
const (
	platformWindows = 3
	encodingUnicode = 1

	langEnglishUS = 0x0409
)

// Encode converts the strings into the binary form of a "name" table.
// The strings are written for the Windows language closest to lang.
// If this is not US English, an US English copy is written as well,
// since some applications only look for this language.
func (t *Table) Encode(lang language.Tag) []byte {
	langIDs := []uint16{langEnglishUS}
	if id := LanguageID(lang); id != langEnglishUS {
		langIDs = append(langIDs, id)
	}
	slices.Sort(langIDs)

	type recInfo struct {
		langID uint16
		nameID ID
		offset uint16
		length uint16
	}
	var records []recInfo
	b := newNameBuilder()
	entries := t.entries()
	for _, langID := range langIDs {
		for _, nameID := range slices.Sorted(maps.Keys(entries)) {
			offset, length := b.Add(utf16Encode(entries[nameID]))
			records = append(records, recInfo{langID, nameID, offset, length})
		}
	}

	numRec := len(records)
	startOfStrings := 6 + 12*numRec
	res := make([]byte, startOfStrings+len(b.data))
	binary.BigEndian.PutUint16(res[2:], uint16(numRec))
	binary.BigEndian.PutUint16(res[4:], uint16(startOfStrings))
	for i, rec := range records {
		base := 6 + 12*i
		binary.BigEndian.PutUint16(res[base:], platformWindows)
		binary.BigEndian.PutUint16(res[base+2:], encodingUnicode)
		binary.BigEndian.PutUint16(res[base+4:], rec.langID)
		binary.BigEndian.PutUint16(res[base+6:], uint16(rec.nameID))
		binary.BigEndian.PutUint16(res[base+8:], rec.length)
		binary.BigEndian.PutUint16(res[base+10:], rec.offset)
	}
	copy(res[startOfStrings:], b.data)
	return res
}

// Decode reads the Windows Unicode strings from a "name" table.
// The result maps Windows language IDs to the strings for that language.
func Decode(data []byte) (map[uint16]map[ID]string, error) {
	if len(data) < 6 {
		return nil, errMalformed
	}
	numRec := int(binary.BigEndian.Uint16(data[2:]))
	storage := int(binary.BigEndian.Uint16(data[4:]))
	if 6+12*numRec > len(data) || storage > len(data) {
		return nil, errMalformed
	}

	res := make(map[uint16]map[ID]string)
	for i := range numRec {
		rec := data[6+12*i:]
		platform := binary.BigEndian.Uint16(rec)
		encoding := binary.BigEndian.Uint16(rec[2:])
		if platform != platformWindows || encoding != encodingUnicode {
			continue
		}
		langID := binary.BigEndian.Uint16(rec[4:])
		nameID := ID(binary.BigEndian.Uint16(rec[6:]))
		length := int(binary.BigEndian.Uint16(rec[8:]))
		offset := storage + int(binary.BigEndian.Uint16(rec[10:]))
		if offset+length > len(data) {
			return nil, errMalformed
		}
		if res[langID] == nil {
			res[langID] = make(map[ID]string)
		}
		res[langID][nameID] = utf16Decode(data[offset : offset+length])
	}
	return res, nil
}

var errMalformed = errors.New("sfnt/name: malformed name table")

type nameBuilder struct {
	data []byte
	idx  map[string]uint16
}

func newNameBuilder() *nameBuilder {
	return &nameBuilder{
		idx: make(map[string]uint16),
	}
}

// Add appends b to the string storage, unless an identical string is
// already stored.
func (nb *nameBuilder) Add(b []byte) (offs, length uint16) {
	key := string(b)
	if idx, ok := nb.idx[key]; ok {
		return idx, uint16(len(b))
	}
	idx := uint16(len(nb.data))
	nb.idx[key] = idx
	nb.data = append(nb.data, b...)
	return idx, uint16(len(b))
}

func utf16Encode(s string) []byte {
	rr := utf16.Encode([]rune(s))
	res := make([]byte, len(rr)*2)
	for i, r := range rr {
		binary.BigEndian.PutUint16(res[2*i:], r)
	}
	return res
}

func utf16Decode(buf []byte) string {
	words := make([]uint16, len(buf)/2)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(buf[2*i:])
	}
	return string(utf16.Decode(words))
}
