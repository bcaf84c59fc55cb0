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

// Package woff2 writes fonts in the WOFF2 container format.
//
// Tables are stored without transformation and compressed as a single
// Brotli stream.  This is the simplest form of WOFF2 which every conforming
// user agent can read.
//
// https://www.w3.org/TR/WOFF2/
package woff2

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/andybalholm/brotli"

	"seehuhn.de/go/gridfont/sfnt/header"
)

// Signature is the magic number at the start of every WOFF2 file.
const Signature = 0x774F4632 // "wOF2"

// Quality is the Brotli compression level used by [Encode].
var Quality = brotli.BestCompression

// Encode writes a WOFF2 file containing the given sfnt tables to w.
// The flavor is the sfnt version of the original font, for example
// [header.ScalerTrueType].
//
// The "head" table should already carry the checksum adjustment of the
// corresponding sfnt file, as computed by [header.Write].
func Encode(w io.Writer, flavor uint32, tables map[string][]byte) (int64, error) {
	tags := Order(tables)
	if len(tags) == 0 {
		return 0, errors.New("woff2: no tables")
	}

	var dir []byte
	var stream bytes.Buffer
	sfntSize := 12 + 16*len(tags)
	for _, tag := range tags {
		body := tables[tag]
		dir = appendDirEntry(dir, tag, len(body))
		stream.Write(body)
		sfntSize += header.Pad4(len(body))
	}

	var compressed bytes.Buffer
	bw := brotli.NewWriterLevel(&compressed, Quality)
	_, err := bw.Write(stream.Bytes())
	if err != nil {
		return 0, err
	}
	err = bw.Close()
	if err != nil {
		return 0, err
	}

	const headerSize = 48
	total := headerSize + len(dir) + compressed.Len()
	padded := header.Pad4(total)
	hdr := &fileHeader{
		Signature:           Signature,
		Flavor:              flavor,
		Length:              uint32(padded),
		NumTables:           uint16(len(tags)),
		TotalSfntSize:       uint32(sfntSize),
		TotalCompressedSize: uint32(compressed.Len()),
		MajorVersion:        1,
	}

	buf := make([]byte, 0, padded)
	buf, _ = binary.Append(buf, binary.BigEndian, hdr)
	buf = append(buf, dir...)
	buf = append(buf, compressed.Bytes()...)
	for len(buf) < padded {
		buf = append(buf, 0)
	}

	n, err := w.Write(buf)
	return int64(n), err
}

// Order returns the table tags in the order used for the table directory.
// Tables are sorted by tag, except that "loca" immediately follows "glyf".
func Order(tables map[string][]byte) []string {
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		if tag != "loca" {
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	if _, ok := tables["loca"]; ok {
		i := slices.Index(tags, "glyf")
		if i < 0 {
			tags = append(tags, "loca")
		} else {
			tags = slices.Insert(tags, i+1, "loca")
		}
	}
	return tags
}

func appendDirEntry(buf []byte, tag string, length int) []byte {
	idx, known := knownTagIndex[tag]
	flags := byte(idx)
	if !known {
		flags = customTag
	}
	if tag == "glyf" || tag == "loca" {
		flags |= nullTransform
	}
	buf = append(buf, flags)
	if !known {
		var t [4]byte
		copy(t[:], tag)
		buf = append(buf, t[:]...)
	}
	return AppendUIntBase128(buf, uint32(length))
}

const (
	customTag     = 0x3F
	transformMask = 0xC0

	// For "glyf" and "loca", transform version 3 is the null transform.
	// For all other tables, version 0 is.
	nullTransform = 0xC0
)

// AppendUIntBase128 appends the variable-length encoding of x to buf.
func AppendUIntBase128(buf []byte, x uint32) []byte {
	var tmp [5]byte
	i := len(tmp) - 1
	tmp[i] = byte(x & 0x7F)
	x >>= 7
	for x > 0 {
		i--
		tmp[i] = byte(x&0x7F) | 0x80
		x >>= 7
	}
	return append(buf, tmp[i:]...)
}

// ReadUIntBase128 decodes a variable-length integer from the start of buf.
// It returns the value and the number of bytes consumed.
func ReadUIntBase128(buf []byte) (uint32, int, error) {
	var x uint32
	for i := 0; i < 5; i++ {
		if i >= len(buf) {
			return 0, 0, errMalformed
		}
		b := buf[i]
		if i == 0 && b == 0x80 {
			return 0, 0, errMalformed // leading zeros
		}
		if x&0xFE000000 != 0 {
			return 0, 0, errMalformed // overflow
		}
		x = x<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return x, i + 1, nil
		}
	}
	return 0, 0, errMalformed
}

// Decode reads a WOFF2 file with untransformed tables, as written by
// [Encode].  It returns the sfnt flavor and the table data.
func Decode(data []byte) (uint32, map[string][]byte, error) {
	hdr := &fileHeader{}
	_, err := binary.Decode(data, binary.BigEndian, hdr)
	if err != nil {
		return 0, nil, errMalformed
	}
	if hdr.Signature != Signature {
		return 0, nil, errors.New("woff2: invalid signature")
	}
	if int(hdr.Length) != len(data) {
		return 0, nil, fmt.Errorf("woff2: length %d, expected %d", len(data), hdr.Length)
	}

	type entry struct {
		tag    string
		length uint32
	}
	pos := 48
	entries := make([]entry, hdr.NumTables)
	for i := range entries {
		if pos >= len(data) {
			return 0, nil, errMalformed
		}
		flags := data[pos]
		pos++
		var tag string
		if flags&customTag == customTag {
			if pos+4 > len(data) {
				return 0, nil, errMalformed
			}
			tag = string(data[pos : pos+4])
			pos += 4
		} else {
			tag = knownTags[flags&customTag]
		}
		version := flags & transformMask
		if (tag == "glyf" || tag == "loca") && version != nullTransform ||
			tag != "glyf" && tag != "loca" && version != 0 {
			return 0, nil, fmt.Errorf("woff2: transformed %q table not supported", tag)
		}
		length, n, err := ReadUIntBase128(data[pos:])
		if err != nil {
			return 0, nil, err
		}
		pos += n
		entries[i] = entry{tag, length}
	}

	end := pos + int(hdr.TotalCompressedSize)
	if end > len(data) {
		return 0, nil, errMalformed
	}
	stream, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data[pos:end])))
	if err != nil {
		return 0, nil, fmt.Errorf("woff2: %w", err)
	}

	tables := make(map[string][]byte, len(entries))
	pos = 0
	for _, e := range entries {
		if pos+int(e.length) > len(stream) {
			return 0, nil, errMalformed
		}
		tables[e.tag] = stream[pos : pos+int(e.length)]
		pos += int(e.length)
	}
	if pos != len(stream) {
		return 0, nil, errMalformed
	}
	return hdr.Flavor, tables, nil
}

var errMalformed = errors.New("woff2: malformed file")

type fileHeader struct {
	Signature           uint32
	Flavor              uint32
	Length              uint32
	NumTables           uint16
	Reserved            uint16
	TotalSfntSize       uint32
	TotalCompressedSize uint32
	MajorVersion        uint16
	MinorVersion        uint16
	MetaOffset          uint32
	MetaLength          uint32
	MetaOrigLength      uint32
	PrivOffset          uint32
	PrivLength          uint32
}

// knownTags lists the tags which can be stored as a 6-bit index.
var knownTags = [63]string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca", "prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern", "LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS", "GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL", "SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar", "fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar", "mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat", "Gloc", "Feat", "Sill",
}

var knownTagIndex = func() map[string]int {
	m := make(map[string]int, len(knownTags))
	for i, tag := range knownTags {
		m[tag] = i
	}
	return m
}()
