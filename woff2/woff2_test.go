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

package woff2

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/gridfont/sfnt/header"
)

func TestUIntBase128(t *testing.T) {
	cases := []struct {
		x   uint32
		enc []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7F}},
		{128, []byte{0x81, 0x00}},
		{16383, []byte{0xFF, 0x7F}},
		{0x3FFF + 1, []byte{0x81, 0x80, 0x00}},
		{0xFFFFFFFF, []byte{0x8F, 0xFF, 0xFF, 0xFF, 0x7F}},
	}
	for _, tc := range cases {
		enc := AppendUIntBase128(nil, tc.x)
		if !bytes.Equal(enc, tc.enc) {
			t.Errorf("%d: got % x, want % x", tc.x, enc, tc.enc)
		}
		x, n, err := ReadUIntBase128(enc)
		if err != nil {
			t.Errorf("%d: %v", tc.x, err)
			continue
		}
		if x != tc.x || n != len(enc) {
			t.Errorf("%d: decoded %d using %d bytes", tc.x, x, n)
		}
	}
}

func TestUIntBase128Invalid(t *testing.T) {
	bad := [][]byte{
		{0x80, 0x01},                   // leading zero
		{0x90, 0x80, 0x80, 0x80, 0x00}, // overflow
		{0x81, 0x81, 0x81, 0x81, 0x81}, // too long
		{0x81},                         // truncated
	}
	for _, b := range bad {
		if _, _, err := ReadUIntBase128(b); err == nil {
			t.Errorf("% x: no error", b)
		}
	}
}

func TestOrder(t *testing.T) {
	tables := map[string][]byte{
		"OS/2": nil, "cmap": nil, "glyf": nil, "head": nil,
		"hhea": nil, "loca": nil, "maxp": nil, "zzzz": nil,
	}
	got := Order(tables)
	want := []string{"OS/2", "cmap", "glyf", "loca", "head", "hhea", "maxp", "zzzz"}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected order (-want +got):\n%s", d)
	}
}

func TestRoundTrip(t *testing.T) {
	tables := map[string][]byte{
		"head": bytes.Repeat([]byte{1}, 54),
		"glyf": bytes.Repeat([]byte{2, 3, 4}, 100),
		"loca": {0, 0, 0, 150},
		"name": []byte("abc"),
		"test": []byte("custom table"),
	}

	buf := &bytes.Buffer{}
	n, err := Encode(buf, header.ScalerTrueType, tables)
	if err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	if int(n) != len(data) || len(data)%4 != 0 {
		t.Fatalf("wrote %d bytes, buffer has %d", n, len(data))
	}
	if binary.BigEndian.Uint32(data) != Signature {
		t.Error("wrong signature")
	}

	wantSfntSize := 12 + 16*5 + 56 + 300 + 4 + 4 + 12
	if got := binary.BigEndian.Uint32(data[16:]); got != uint32(wantSfntSize) {
		t.Errorf("totalSfntSize = %d, want %d", got, wantSfntSize)
	}

	flavor, got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if flavor != header.ScalerTrueType {
		t.Errorf("flavor = %08x", flavor)
	}
	if d := cmp.Diff(tables, got); d != "" {
		t.Errorf("unexpected tables (-want +got):\n%s", d)
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, _, err := Decode([]byte("wOF2 but not really"))
	if err == nil {
		t.Error("garbage accepted")
	}
}
