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

// Package config describes the parameters of a glyph corpus and of the fonts
// compiled from it.
//
// The same configuration object is read by the validator (raster dimensions,
// required codepoints) and by the outline builder (baseline, pixel size).
// Configurations are usually loaded from a YAML file:
//
//	family: GridMono
//	dirs: [glyphs, ligatures]
//	width: 8
//	height: 16
//	baseline: 12
//	pixel: 64
//	required: {first: 0x20, last: 0x7E}
//	ligatures: true
//	weights: [regular, bold]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config contains the corpus and font parameters.
type Config struct {
	// Family is the font family name written to the "name" table.
	Family string `yaml:"family"`

	// Version is the font version, for example "1.000".
	Version string `yaml:"version"`

	// Vendor is the four-character vendor ID for the "OS/2" table.
	Vendor string `yaml:"vendor"`

	// Language is a BCP 47 tag selecting the "name" table language.
	Language string `yaml:"language"`

	// Dirs lists the directories containing glyph source files.
	Dirs []string `yaml:"dirs"`

	// Width is the raster width of a standalone glyph, in pixels.
	// Ligature rasters are an integer multiple of this width.
	Width int `yaml:"width"`

	// Height is the raster height of every glyph, in pixels.
	Height int `yaml:"height"`

	// Baseline is the index of the first raster row at or below the
	// baseline.  Row Baseline-1 is the lowest row above the baseline.
	Baseline int `yaml:"baseline"`

	// Pixel is the size of one raster pixel in font design units.
	Pixel int `yaml:"pixel"`

	// Required is the range of codepoints which must be present in the
	// regular weight.
	Required Range `yaml:"required"`

	// Ligatures enables ligature composites and the "GSUB" table.
	Ligatures bool `yaml:"ligatures"`

	// Weights lists the font weights to compile.
	Weights []string `yaml:"weights"`

	// Output is the directory where compiled fonts are written.
	Output string `yaml:"output"`

	// WOFF2 enables writing a WOFF2 file next to each TrueType file.
	WOFF2 bool `yaml:"woff2"`

	// Proof enables reading back every compiled font and comparing its
	// glyphs with the source rasters.
	Proof bool `yaml:"proof"`
}

// Range is an inclusive range of codepoints.
type Range struct {
	First rune `yaml:"first"`
	Last  rune `yaml:"last"`
}

// Contains reports whether r lies in the range.
func (rr Range) Contains(r rune) bool {
	return r >= rr.First && r <= rr.Last
}

func (rr Range) String() string {
	return fmt.Sprintf("U+%04X..U+%04X", rr.First, rr.Last)
}

// Default returns the standard configuration: 8x16 glyphs, baseline at row
// 12, 64 units per pixel and the printable ASCII range.
func Default() *Config {
	return &Config{
		Family:   "GridMono",
		Version:  "1.000",
		Vendor:   "NONE",
		Language: "en-US",
		Dirs:     []string{"glyphs"},
		Width:    8,
		Height:   16,
		Baseline: 12,
		Pixel:    64,
		Required: Range{First: 0x20, Last: 0x7E},
		Weights:  []string{"regular"},
		Output:   ".",
	}
}

// Load reads a YAML configuration file.  Values missing from the file are
// taken from [Default].
func Load(fname string) (*Config, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return cfg, nil
}

// Decode reads a YAML configuration from r and overlays it on the default
// configuration.  Unknown keys are an error.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	err = cfg.Check()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// UnitsPerEm returns the em size of the compiled font.
// One em corresponds to the full raster height.
func (cfg *Config) UnitsPerEm() int {
	return cfg.Height * cfg.Pixel
}

// HasWeight reports whether the given weight (case-insensitive) is listed
// in cfg.Weights.
func (cfg *Config) HasWeight(w string) bool {
	for _, x := range cfg.Weights {
		if strings.EqualFold(x, w) {
			return true
		}
	}
	return false
}

// Check verifies that the configuration is usable.
func (cfg *Config) Check() error {
	var errs []error
	if cfg.Width <= 0 {
		errs = append(errs, fmt.Errorf("width must be positive, got %d", cfg.Width))
	}
	if cfg.Height <= 0 {
		errs = append(errs, fmt.Errorf("height must be positive, got %d", cfg.Height))
	}
	if cfg.Pixel <= 0 {
		errs = append(errs, fmt.Errorf("pixel must be positive, got %d", cfg.Pixel))
	}
	if cfg.Baseline < 0 || cfg.Baseline > cfg.Height {
		errs = append(errs, fmt.Errorf("baseline %d outside 0..%d", cfg.Baseline, cfg.Height))
	}
	if cfg.Required.First < 0 || cfg.Required.Last < cfg.Required.First {
		errs = append(errs, fmt.Errorf("invalid required range %s", cfg.Required))
	}
	if cfg.Required.Last > 0x10FFFF {
		errs = append(errs, fmt.Errorf("required range %s exceeds U+10FFFF", cfg.Required))
	}
	if len(cfg.Vendor) > 4 {
		errs = append(errs, fmt.Errorf("vendor %q longer than 4 characters", cfg.Vendor))
	}
	if len(cfg.Weights) == 0 {
		errs = append(errs, errors.New("no weights selected"))
	}
	for _, w := range cfg.Weights {
		if !strings.EqualFold(w, "regular") && !strings.EqualFold(w, "bold") {
			errs = append(errs, fmt.Errorf("unknown weight %q", w))
		}
	}

	// All outline coordinates must fit into 16 bits.  Ligatures may be up
	// to maxLigatureCells base widths wide.
	if cfg.Pixel > 0 && cfg.Width > 0 && cfg.Height > 0 {
		if cfg.Height*cfg.Pixel > math.MaxUint16 {
			errs = append(errs, fmt.Errorf("units per em %d too large", cfg.Height*cfg.Pixel))
		}
		if cfg.MaxAdvance() > math.MaxInt16 {
			errs = append(errs, fmt.Errorf("glyph width %d units too large", cfg.MaxAdvance()))
		}
		if cfg.Height*cfg.Pixel > math.MaxInt16 {
			errs = append(errs, fmt.Errorf("glyph height %d units too large", cfg.Height*cfg.Pixel))
		}
	}

	return errors.Join(errs...)
}

// MaxAdvance returns the largest advance width a glyph can have.
func (cfg *Config) MaxAdvance() int {
	n := 1
	if cfg.Ligatures {
		n = MaxLigatureComponents
	}
	return n * cfg.Width * cfg.Pixel
}

// MaxLigatureComponents is the largest number of components a ligature
// composite may have.
const MaxLigatureComponents = 8
