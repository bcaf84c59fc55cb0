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

// Package pipeline compiles a glyph corpus into fonts.
//
// [Run] reads the glyph sources, validates the corpus and, if no errors
// were found, builds one font for each configured weight.  Validation is
// a hard gate: if any error is found, no font is built at all.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/gridfont/compact"
	"seehuhn.de/go/gridfont/config"
	"seehuhn.de/go/gridfont/fontbuild"
	"seehuhn.de/go/gridfont/glyphsrc"
	"seehuhn.de/go/gridfont/outline"
	"seehuhn.de/go/gridfont/proof"
	"seehuhn.de/go/gridfont/sfnt/head"
	"seehuhn.de/go/gridfont/sfnt/os2"
	"seehuhn.de/go/gridfont/validate"
	"seehuhn.de/go/gridfont/weight"
)

// Result is the outcome of [Run].
type Result struct {
	// Errors lists the parse and validation errors.  If this is non-empty,
	// Fonts is empty.
	Errors []validate.Error

	// Warnings lists problems which caused ligatures to be dropped.
	Warnings []validate.Error

	// Fonts contains one font per configured weight.
	Fonts []*Output
}

// Failed reports whether the corpus failed validation.
func (res *Result) Failed() bool {
	return len(res.Errors) > 0
}

// Output is a compiled font.
type Output struct {
	Weight   glyphsrc.Weight
	Font     *fontbuild.Font
	TrueType []byte
	WOFF2    []byte // nil unless WOFF2 output is enabled
}

// Run compiles the glyph corpus described by cfg.
//
// The returned error is only used for problems outside the corpus, like
// I/O errors or an invalid configuration.  Problems in the corpus are
// reported in Result.Errors.
func Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	log := Logger()
	start := time.Now()

	err := cfg.Check()
	if err != nil {
		return nil, err
	}
	// catch problems with version and language before any work is done
	_, err = fontInfo(cfg, glyphsrc.Regular)
	if err != nil {
		return nil, err
	}

	recs, perrs, err := glyphsrc.ReadDirs(ctx, cfg.Dirs...)
	if err != nil {
		return nil, err
	}
	log.Info("corpus read", "dirs", cfg.Dirs, "records", len(recs), "parseErrors", len(perrs))

	res := &Result{}
	for _, perr := range perrs {
		ref := perr.Path
		if perr.Line > 0 {
			ref = fmt.Sprintf("%s:%d", perr.Path, perr.Line)
		}
		res.Errors = append(res.Errors, validate.Error{Ref: ref, Msg: perr.Reason})
	}
	errs, warnings := validate.Corpus(recs, cfg)
	res.Errors = append(res.Errors, errs...)
	res.Warnings = warnings
	for _, w := range warnings {
		log.Warn(w.Msg, "ref", w.Ref)
	}
	if res.Failed() {
		log.Info("validation failed", "errors", len(res.Errors))
		return res, nil
	}

	recs = usable(recs, cfg)
	if cfg.HasWeight("bold") {
		n := len(recs)
		recs = weight.DeriveBold(recs)
		log.Info("bold glyphs derived", "count", len(recs)-n)
	}

	seen := make(map[glyphsrc.Weight]bool)
	for _, name := range cfg.Weights {
		w, err := glyphsrc.ParseWeight(name)
		if err != nil {
			return nil, err
		}
		if seen[w] {
			continue
		}
		seen[w] = true

		out, err := build(ctx, recs, w, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s font: %w", w, err)
		}
		res.Fonts = append(res.Fonts, out)
	}

	log.Info("done", "fonts", len(res.Fonts), "duration", time.Since(start))
	return res, nil
}

// usable removes the records which must not be compiled: ligatures, if
// ligature support is disabled, and ligatures with unknown components.
func usable(recs []*glyphsrc.Record, cfg *config.Config) []*glyphsrc.Record {
	var unresolved map[string]bool
	if cfg.Ligatures {
		unresolved = validate.Unresolved(recs)
	}
	res := make([]*glyphsrc.Record, 0, len(recs))
	for _, rec := range recs {
		if rec.Ligature && (!cfg.Ligatures || unresolved[rec.Label]) {
			Logger().Debug("ligature dropped", "path", rec.Path, "label", rec.Label)
			continue
		}
		res = append(res, rec)
	}
	return res
}

// Params returns the outline parameters for the configuration.
func Params(cfg *config.Config) outline.Params {
	return outline.Params{
		Pixel:     cfg.Pixel,
		Baseline:  cfg.Baseline,
		BaseWidth: cfg.Width,
	}
}

// Compile converts the raster of a validated record into a glyph outline.
// Ligature components are not resolved.
func Compile(rec *glyphsrc.Record, cfg *config.Config) *outline.Glyph {
	rects := compact.Rects(rec.Grid)
	return outline.Build(rec, rects, Params(cfg))
}

// build compiles and assembles the font for one weight.
func build(ctx context.Context, recs []*glyphsrc.Record, w glyphsrc.Weight, cfg *config.Config) (*Output, error) {
	log := Logger()

	var sel []*glyphsrc.Record
	for _, rec := range recs {
		if rec.Weight == w {
			sel = append(sel, rec)
		}
	}
	labels := validate.StandaloneLabels(recs)

	glyphs := make([]*outline.Glyph, len(sel))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, rec := range sel {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			gl := Compile(rec, cfg)
			if rec.Ligature {
				for _, c := range rec.Components {
					gl.Components = append(gl.Components, labels[c])
				}
			}
			log.Debug("glyph compiled", "path", rec.Path, "name", gl.Name, "contours", len(gl.Contours))
			glyphs[i] = gl
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		return nil, err
	}

	info, err := fontInfo(cfg, w)
	if err != nil {
		return nil, err
	}
	f, err := fontbuild.Assemble(glyphs, info)
	if err != nil {
		return nil, err
	}

	out := &Output{Weight: w, Font: f}
	buf := &bytes.Buffer{}
	_, err = f.WriteTrueType(buf)
	if err != nil {
		return nil, err
	}
	out.TrueType = buf.Bytes()

	if cfg.WOFF2 {
		buf := &bytes.Buffer{}
		_, err = f.WriteWOFF2(buf)
		if err != nil {
			return nil, err
		}
		out.WOFF2 = buf.Bytes()
	}

	if cfg.Proof {
		err = proofFont(out, sel, glyphs, cfg)
		if err != nil {
			return nil, fmt.Errorf("proof failed: %w", err)
		}
		log.Info("font proofed", "font", info.FullName())
	}

	log.Info("font assembled",
		"font", info.FullName(),
		"glyphs", f.NumGlyphs(),
		"ligatures", len(f.Ligatures),
		"size", len(out.TrueType))
	return out, nil
}

// proofFont reads back the compiled font and compares it with the source
// records.  The glyphs must be the outlines compiled from recs, in the
// same order.
func proofFont(out *Output, recs []*glyphsrc.Record, glyphs []*outline.Glyph, cfg *config.Config) error {
	err := proof.CheckFont(out.TrueType, out.Font)
	if err != nil {
		return err
	}

	gid := make(map[*outline.Glyph]glyph.ID, len(out.Font.Glyphs))
	for i, g := range out.Font.Glyphs {
		gid[g] = glyph.ID(i)
	}
	grids := make([]proof.Grid, len(recs))
	for i, rec := range recs {
		grids[i] = proof.Grid{
			GID:  gid[glyphs[i]],
			Name: glyphs[i].Name,
			Grid: rec.Grid,
		}
	}
	err = proof.CheckGrids(out.TrueType, grids, Params(cfg))
	if err != nil {
		return err
	}

	return proof.CheckLigatures(out.TrueType, out.Font)
}

// fontInfo returns the font-wide information for the given weight.
func fontInfo(cfg *config.Config, w glyphsrc.Weight) (*fontbuild.Info, error) {
	version, err := head.ParseVersion(cfg.Version)
	if err != nil {
		return nil, err
	}
	lang, err := language.Parse(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("invalid language %q: %w", cfg.Language, err)
	}

	weightClass := os2.WeightNormal
	if w == glyphsrc.Bold {
		weightClass = os2.WeightBold
	}

	pixel := funit.Int16(cfg.Pixel)
	info := &fontbuild.Info{
		FamilyName:         cfg.Family,
		Weight:             weightClass,
		Version:            version,
		Vendor:             cfg.Vendor,
		Language:           lang,
		UnitsPerEm:         uint16(cfg.UnitsPerEm()),
		Ascent:             funit.Int16(cfg.Baseline) * pixel,
		Descent:            -funit.Int16(cfg.Height-cfg.Baseline) * pixel,
		UnderlinePosition:  -pixel,
		UnderlineThickness: pixel,
		LowestRecPPEM:      uint16(cfg.Height),
	}
	return info, nil
}

// WriteFiles writes the compiled fonts into the directory dir, creating it
// if needed.  It returns the names of the files written.
func (res *Result) WriteFiles(dir string) ([]string, error) {
	if len(res.Fonts) == 0 {
		return nil, nil
	}
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, err
	}

	var names []string
	write := func(base, ext string, data []byte) error {
		fname := filepath.Join(dir, base+ext)
		err := os.WriteFile(fname, data, 0o644)
		if err != nil {
			return err
		}
		names = append(names, fname)
		return nil
	}
	for _, out := range res.Fonts {
		base := out.Font.Info.PostScriptName()
		err := write(base, ".ttf", out.TrueType)
		if err != nil {
			return names, err
		}
		if out.WOFF2 != nil {
			err = write(base, ".woff2", out.WOFF2)
			if err != nil {
				return names, err
			}
		}
	}
	return names, nil
}
