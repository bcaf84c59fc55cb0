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

// Package validate checks a glyph corpus for structural errors.
//
// All checks are run on every call, so that a single run reports the
// complete list of problems.  The corpus is only compiled into a font if
// no errors are found.
package validate

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/runenames"

	"seehuhn.de/go/gridfont/config"
	"seehuhn.de/go/gridfont/glyphsrc"
)

// Error describes a problem found in the corpus.
type Error struct {
	// Ref identifies the source of the problem, normally a file name.
	Ref string
	Msg string
}

func (e Error) Error() string {
	if e.Ref == "" {
		return e.Msg
	}
	return e.Ref + ": " + e.Msg
}

// Corpus runs all checks on the given records.
//
// Problems which prevent a font from being built are returned in errs.
// The corpus is valid if and only if errs is empty.  Problems which only
// cause individual ligatures to be dropped are returned in warnings.
//
// Errors for individual records come first, in order of the record paths,
// followed by the corpus-wide checks.
func Corpus(recs []*glyphsrc.Record, cfg *config.Config) (errs, warnings []Error) {
	recs = slices.Clone(recs)
	slices.SortStableFunc(recs, func(a, b *glyphsrc.Record) int {
		return strings.Compare(a.Path, b.Path)
	})

	var active []*glyphsrc.Record
	for _, rec := range recs {
		if rec.Ligature && !cfg.Ligatures {
			warnings = append(warnings, Error{rec.Path, "ligature support is disabled, glyph ignored"})
			continue
		}
		active = append(active, rec)
		errs = append(errs, checkRecord(rec, cfg)...)
	}

	errs = append(errs, duplicateCodepoints(active)...)
	errs = append(errs, missingCodepoints(active, cfg.Required)...)
	errs = append(errs, duplicateLabels(active)...)
	errs = append(errs, duplicateComponents(active)...)

	if cfg.Ligatures {
		warnings = append(warnings, unresolvedComponents(active)...)
	}

	return errs, warnings
}

func checkRecord(rec *glyphsrc.Record, cfg *config.Config) []Error {
	var errs []Error
	add := func(format string, args ...any) {
		errs = append(errs, Error{rec.Path, fmt.Sprintf(format, args...)})
	}

	if len(rec.Grid) != cfg.Height {
		add("raster has %d rows, expected %d", len(rec.Grid), cfg.Height)
	}

	width := cfg.Width
	widthOK := true
	if rec.Ligature {
		if n := len(rec.Components); n > 0 {
			width = n * cfg.Width
		} else {
			width = rec.Width()
		}
		if width <= 0 || width%cfg.Width != 0 {
			add("raster width %d is not a positive multiple of %d", width, cfg.Width)
			widthOK = false
		} else if width/cfg.Width > config.MaxLigatureComponents {
			add("ligature is %d glyphs wide, at most %d are supported",
				width/cfg.Width, config.MaxLigatureComponents)
			widthOK = false
		}
	}
	if widthOK {
		for i, row := range rec.Grid {
			if len(row) != width {
				add("row %d has %d columns, expected %d", i+1, len(row), width)
			}
		}
	}

	for i, raw := range rec.Raw {
		if strings.Trim(raw, ".X") != "" {
			add("row %d contains invalid characters: %q", i+1, raw)
		}
	}

	if rec.HasCodepoint {
		cp := rec.Codepoint
		switch {
		case cp < 0 || cp > unicode.MaxRune:
			add("codepoint U+%04X out of range", uint32(cp))
		case cp >= 0xD800 && cp <= 0xDFFF:
			add("codepoint U+%04X is a surrogate", cp)
		}
	}

	switch {
	case rec.Ligature && len(rec.Components) == 0:
		add("ligature without components")
	case rec.Ligature && len(rec.Components) == 1:
		add("ligature needs at least two components, found %q", rec.Components[0])
	case !rec.Ligature && len(rec.Components) > 0:
		add("components given for a glyph which is not a ligature")
	case !rec.Ligature && !rec.HasCodepoint:
		add("glyph has no codepoint")
	}

	return errs
}

type cpKey struct {
	weight glyphsrc.Weight
	cp     rune
}

func duplicateCodepoints(recs []*glyphsrc.Record) []Error {
	groups := make(map[cpKey][]string)
	for _, rec := range recs {
		if rec.Ligature || !rec.HasCodepoint {
			continue
		}
		k := cpKey{rec.Weight, rec.Codepoint}
		groups[k] = append(groups[k], rec.Path)
	}

	keys := slices.SortedFunc(maps.Keys(groups), func(a, b cpKey) int {
		if c := cmp.Compare(a.weight, b.weight); c != 0 {
			return c
		}
		return cmp.Compare(a.cp, b.cp)
	})
	var errs []Error
	for _, k := range keys {
		paths := groups[k]
		if len(paths) < 2 {
			continue
		}
		errs = append(errs, Error{
			Ref: paths[0],
			Msg: fmt.Sprintf("duplicate codepoint U+%04X (%s) in %s",
				k.cp, k.weight, strings.Join(paths, ", ")),
		})
	}
	return errs
}

func missingCodepoints(recs []*glyphsrc.Record, required config.Range) []Error {
	have := make(map[rune]bool)
	for _, rec := range recs {
		if !rec.Ligature && rec.HasCodepoint && rec.Weight == glyphsrc.Regular {
			have[rec.Codepoint] = true
		}
	}

	var errs []Error
	for r := required.First; r <= required.Last; r++ {
		if have[r] {
			continue
		}
		errs = append(errs, Error{
			Ref: fmt.Sprintf("U+%04X", r),
			Msg: "missing glyph" + describe(r),
		})
	}
	return errs
}

// describe returns a human-readable rendering of r, with a leading space.
func describe(r rune) string {
	name := runenames.Name(r)
	switch {
	case r != ' ' && unicode.IsPrint(r) && name != "":
		return fmt.Sprintf(" %q (%s)", r, name)
	case r != ' ' && unicode.IsPrint(r):
		return fmt.Sprintf(" %q", r)
	case name != "" && !strings.HasPrefix(name, "<"):
		return " (" + name + ")"
	}
	return ""
}

type labelKey struct {
	weight glyphsrc.Weight
	label  string
}

func duplicateLabels(recs []*glyphsrc.Record) []Error {
	groups := make(map[labelKey][]string)
	for _, rec := range recs {
		k := labelKey{rec.Weight, rec.Label}
		groups[k] = append(groups[k], rec.Path)
	}

	keys := slices.SortedFunc(maps.Keys(groups), func(a, b labelKey) int {
		if c := cmp.Compare(a.weight, b.weight); c != 0 {
			return c
		}
		return strings.Compare(a.label, b.label)
	})
	var errs []Error
	for _, k := range keys {
		paths := groups[k]
		if len(paths) < 2 {
			continue
		}
		errs = append(errs, Error{
			Ref: paths[0],
			Msg: fmt.Sprintf("duplicate label %q (%s) in %s",
				k.label, k.weight, strings.Join(paths, ", ")),
		})
	}
	return errs
}

// duplicateComponents reports ligatures of the same weight which replace
// the same sequence of glyphs.
func duplicateComponents(recs []*glyphsrc.Record) []Error {
	groups := make(map[labelKey][]*glyphsrc.Record)
	for _, rec := range recs {
		if !rec.Ligature || len(rec.Components) < 2 {
			continue
		}
		k := labelKey{rec.Weight, strings.Join(rec.Components, " ")}
		groups[k] = append(groups[k], rec)
	}

	keys := slices.SortedFunc(maps.Keys(groups), func(a, b labelKey) int {
		if c := cmp.Compare(a.weight, b.weight); c != 0 {
			return c
		}
		return strings.Compare(a.label, b.label)
	})
	var errs []Error
	for _, k := range keys {
		group := groups[k]
		if len(group) < 2 {
			continue
		}
		var paths []string
		for _, rec := range group {
			paths = append(paths, rec.Path)
		}
		errs = append(errs, Error{
			Ref: paths[0],
			Msg: fmt.Sprintf("ligatures with the same components %q (%s) in %s",
				k.label, k.weight, strings.Join(paths, ", ")),
		})
	}
	return errs
}

func unresolvedComponents(recs []*glyphsrc.Record) []Error {
	labels := StandaloneLabels(recs)
	var warnings []Error
	for _, rec := range recs {
		if !rec.Ligature {
			continue
		}
		for _, c := range rec.Components {
			if _, ok := labels[c]; !ok {
				warnings = append(warnings, Error{
					Ref: rec.Path,
					Msg: fmt.Sprintf("unknown component %q, ligature %q will not be used", c, rec.Label),
				})
			}
		}
	}
	return warnings
}

// StandaloneLabels maps the labels of all regular-weight glyphs with a
// codepoint to that codepoint.  Ligature components are resolved using
// this map.
func StandaloneLabels(recs []*glyphsrc.Record) map[string]rune {
	labels := make(map[string]rune)
	for _, rec := range recs {
		if rec.Ligature || !rec.HasCodepoint || rec.Weight != glyphsrc.Regular {
			continue
		}
		if _, seen := labels[rec.Label]; !seen {
			labels[rec.Label] = rec.Codepoint
		}
	}
	return labels
}

// Unresolved returns the labels of all ligatures which have at least one
// component that does not name a regular-weight standalone glyph.
// These ligatures must not be registered for substitution.
func Unresolved(recs []*glyphsrc.Record) map[string]bool {
	labels := StandaloneLabels(recs)
	res := make(map[string]bool)
	for _, rec := range recs {
		if !rec.Ligature {
			continue
		}
		for _, c := range rec.Components {
			if _, ok := labels[c]; !ok {
				res[rec.Label] = true
				break
			}
		}
	}
	return res
}
