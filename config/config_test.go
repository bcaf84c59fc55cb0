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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Check(); err != nil {
		t.Fatal(err)
	}
	if cfg.UnitsPerEm() != 1024 {
		t.Errorf("UnitsPerEm() = %d, want 1024", cfg.UnitsPerEm())
	}
}

func TestDecode(t *testing.T) {
	in := `
family: Test Grid
dirs: [a, b]
baseline: 13
required: {first: 0x41, last: 0x5A}
ligatures: true
weights: [regular, Bold]
`
	cfg, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}

	want := Default()
	want.Family = "Test Grid"
	want.Dirs = []string{"a", "b"}
	want.Baseline = 13
	want.Required = Range{First: 'A', Last: 'Z'}
	want.Ligatures = true
	want.Weights = []string{"regular", "Bold"}
	if d := cmp.Diff(want, cfg); d != "" {
		t.Errorf("unexpected config (-want +got):\n%s", d)
	}
	if !cfg.HasWeight("bold") {
		t.Error("bold weight not found")
	}
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(Default(), cfg); d != "" {
		t.Errorf("unexpected config (-want +got):\n%s", d)
	}
}

func TestDecodeUnknownKey(t *testing.T) {
	_, err := Decode(strings.NewReader("colour: red\n"))
	if err == nil {
		t.Fatal("unknown key not rejected")
	}
}

func TestCheck(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero pixel", func(c *Config) { c.Pixel = 0 }},
		{"baseline below raster", func(c *Config) { c.Baseline = 17 }},
		{"empty range", func(c *Config) { c.Required = Range{First: 'b', Last: 'a'} }},
		{"range beyond unicode", func(c *Config) { c.Required.Last = 0x110000 }},
		{"long vendor", func(c *Config) { c.Vendor = "ABCDE" }},
		{"no weights", func(c *Config) { c.Weights = nil }},
		{"unknown weight", func(c *Config) { c.Weights = []string{"light"} }},
		{"overflow", func(c *Config) { c.Pixel = 4096 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)
			if err := cfg.Check(); err == nil {
				t.Error("invalid configuration accepted")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "font.yaml")
	err := os.WriteFile(fname, []byte("pixel: 32\nwoff2: true\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(fname)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Pixel != 32 || !cfg.WOFF2 {
		t.Errorf("got pixel=%d woff2=%t", cfg.Pixel, cfg.WOFF2)
	}
}
