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

// Package header writes the table directory of sfnt files.
// https://learn.microsoft.com/en-us/typography/opentype/spec/otff#table-directory
package header

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/bits"
	"slices"
	"strings"
)

// ScalerTrueType is the sfnt version for fonts with TrueType outlines.
const ScalerTrueType = 0x00010000

// Write writes an sfnt file containing the given tables.
// Tables are written in the recommended order, see [Order].
//
// This changes the checkSumAdjustment field in the "head" table in place.
func Write(w io.Writer, scalerType uint32, tables map[string][]byte) (int64, error) {
	names := Order(tables)
	numTables := len(names)

	entrySelector := bits.Len(uint(numTables)) - 1
	hdr := &offsets{
		ScalerType:    scalerType,
		NumTables:     uint16(numTables),
		SearchRange:   1 << (entrySelector + 4),
		EntrySelector: uint16(entrySelector),
		RangeShift:    uint16(16 * (numTables - 1<<entrySelector)),
	}

	head := tables["head"]
	if head != nil {
		binary.BigEndian.PutUint32(head[8:12], 0)
	}

	var total uint32
	offset := uint32(12 + 16*numTables)
	records := make([]record, numTables)
	for i, name := range names {
		body := tables[name]
		sum := Checksum(body)
		copy(records[i].Tag[:], name)
		records[i].CheckSum = sum
		records[i].Offset = offset
		records[i].Length = uint32(len(body))

		total += sum
		offset += uint32(Pad4(len(body)))
	}
	slices.SortFunc(records, func(a, b record) int {
		return bytes.Compare(a.Tag[:], b.Tag[:])
	})

	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.BigEndian, hdr)
	_ = binary.Write(buf, binary.BigEndian, records)
	dir := buf.Bytes()
	total += Checksum(dir)

	if head != nil {
		binary.BigEndian.PutUint32(head[8:12], 0xB1B0AFBA-total)
	}

	var n int64
	k, err := w.Write(dir)
	n += int64(k)
	if err != nil {
		return n, err
	}
	var pad [3]byte
	for _, name := range names {
		body := tables[name]
		k, err := w.Write(body)
		n += int64(k)
		if err != nil {
			return n, err
		}
		if r := len(body) % 4; r != 0 {
			k, err := w.Write(pad[:4-r])
			n += int64(k)
			if err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// Order returns the names of the tables to write, in the order recommended
// for TrueType fonts.  Tables with nil data and names which are not
// four-character ASCII tags are skipped.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/recom#optimized-table-ordering
func Order(tables map[string][]byte) []string {
	names := make([]string, 0, len(tables))
	for name, data := range tables {
		if data != nil && isTag(name) {
			names = append(names, name)
		}
	}
	slices.SortFunc(names, func(a, b string) int {
		if pa, pb := tableOrder[a], tableOrder[b]; pa != pb {
			return pb - pa
		}
		return strings.Compare(a, b)
	})
	return names
}

// Checksum computes the sfnt checksum of a table: the sum of all big-endian
// 32-bit words, where the data is padded with zeros to a multiple of four
// bytes.
func Checksum(data []byte) uint32 {
	var sum uint32
	for len(data) >= 4 {
		sum += binary.BigEndian.Uint32(data)
		data = data[4:]
	}
	if len(data) > 0 {
		var last [4]byte
		copy(last[:], data)
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}

// Pad4 rounds n up to the next multiple of four.
func Pad4(n int) int {
	return (n + 3) &^ 3
}

func isTag(name string) bool {
	if len(name) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if name[i] < 0x20 || name[i] > 0x7E {
			return false
		}
	}
	return true
}

type offsets struct {
	ScalerType    uint32
	NumTables     uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
}

type record struct {
	Tag      [4]byte
	CheckSum uint32
	Offset   uint32
	Length   uint32
}

var tableOrder = map[string]int{
	"head": 95,
	"hhea": 90,
	"maxp": 85,
	"OS/2": 80,
	"hmtx": 75,
	"LTSH": 70,
	"VDMX": 65,
	"hdmx": 60,
	"cmap": 55,
	"fpgm": 50,
	"prep": 45,
	"cvt ": 40,
	"loca": 35,
	"glyf": 30,
	"kern": 25,
	"name": 20,
	"post": 15,
	"gasp": 10,
	"DSIG": 5,
}
