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

package glyphsrc

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ParseError is returned when a glyph source file cannot be parsed.
type ParseError struct {
	Path   string
	Line   int // 1-based, 0 if the error does not refer to a line
	Reason string
}

func (err *ParseError) Error() string {
	if err.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", err.Path, err.Line, err.Reason)
	}
	return err.Path + ": " + err.Reason
}

type headerKind int

const (
	headerWeight headerKind = iota
	headerComponents
	headerLabel
	headerComment
)

var (
	weightLine     = regexp.MustCompile(`^(?i:weight)\s*:\s*(.*)$`)
	componentsLine = regexp.MustCompile(`^(?i:components)\s*:\s*(.*)$`)
	labelLine      = regexp.MustCompile(`^(.*?)\s*\((?:U\+([0-9A-Fa-f]+)|(ligature))\)$`)

	codepointFile = regexp.MustCompile(`^U\+([0-9A-Fa-f]+)(?:_(.*))?$`)
	ligatureFile  = regexp.MustCompile(`^lig_(.+)$`)
)

// classify determines the kind of a header line.  The text excludes the
// leading "#".  Fields are recognised anywhere in the header; only the
// first non-field line can be a label.
func classify(text string, haveLabel bool) (headerKind, []string) {
	if m := weightLine.FindStringSubmatch(text); m != nil {
		return headerWeight, m
	}
	if m := componentsLine.FindStringSubmatch(text); m != nil {
		return headerComponents, m
	}
	if !haveLabel && text != "" {
		return headerLabel, labelLine.FindStringSubmatch(text)
	}
	return headerComment, nil
}

// Parse parses the contents of a glyph source file.
// The path is used for error messages and as a fallback source for the
// label and codepoint.
//
// If the file is malformed, the error is a *ParseError.
func Parse(path string, data []byte) (*Record, error) {
	perr := func(line int, format string, args ...any) error {
		return &ParseError{Path: path, Line: line, Reason: fmt.Sprintf(format, args...)}
	}
	if !utf8.Valid(data) {
		return nil, perr(0, "invalid UTF-8")
	}

	rec := &Record{Path: path}

	var (
		label        string
		haveLabel    bool
		headerCP     rune
		headerHasCP  bool
		headerLig    bool
		seenWeight   bool
		seenComps    bool
		inRaster     bool
		pendingBlank int
	)

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lineNo := i + 1
		line = strings.TrimSuffix(line, "\r")
		blank := strings.TrimSpace(line) == ""

		if !inRaster {
			if blank {
				continue
			}
			if !strings.HasPrefix(line, "#") {
				inRaster = true
			}
		}

		if inRaster {
			if blank {
				if pendingBlank == 0 {
					pendingBlank = lineNo
				}
				continue
			}
			if pendingBlank > 0 {
				return nil, perr(pendingBlank, "blank line inside raster")
			}
			if strings.HasPrefix(line, "#") {
				return nil, perr(lineNo, "header line after start of raster")
			}
			rec.Raw = append(rec.Raw, line)
			rec.Grid = append(rec.Grid, rasterRow(line))
			continue
		}

		text := strings.TrimSpace(line[1:])
		kind, m := classify(text, haveLabel)
		switch kind {
		case headerWeight:
			if seenWeight {
				return nil, perr(lineNo, "duplicate weight field")
			}
			seenWeight = true
			w, err := ParseWeight(m[1])
			if err != nil {
				return nil, perr(lineNo, "%s", err)
			}
			rec.Weight = w
		case headerComponents:
			if seenComps {
				return nil, perr(lineNo, "duplicate components field")
			}
			seenComps = true
			comps := strings.Fields(m[1])
			if len(comps) == 0 {
				return nil, perr(lineNo, "empty components field")
			}
			for i, c := range comps {
				comps[i] = norm.NFC.String(c)
			}
			rec.Components = comps
		case headerLabel:
			haveLabel = true
			if m == nil {
				label = text
				break
			}
			label = m[1]
			if m[3] != "" {
				headerLig = true
				break
			}
			cp, err := strconv.ParseInt(m[2], 16, 32)
			if err != nil {
				return nil, perr(lineNo, "invalid codepoint U+%s", m[2])
			}
			headerCP = rune(cp)
			headerHasCP = true
		}
	}

	fileLabel, fileCP, fileHasCP, fileLig := fromFilename(path)

	switch {
	case headerLig:
		rec.Ligature = true
	case headerHasCP:
		rec.Codepoint = headerCP
		rec.HasCodepoint = true
	default:
		rec.Ligature = fileLig
		if !fileLig && fileHasCP {
			rec.Codepoint = fileCP
			rec.HasCodepoint = true
		}
	}

	if label == "" {
		label = fileLabel
	}
	rec.Label = norm.NFC.String(label)

	return rec, nil
}

func rasterRow(line string) []bool {
	row := make([]bool, 0, len(line))
	for _, c := range line {
		row = append(row, c == 'X')
	}
	return row
}

// fromFilename derives label and identity from a file name of the form
// "U+0041_A.txt" or "lig_fi.txt".
func fromFilename(path string) (label string, cp rune, hasCP bool, lig bool) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if m := ligatureFile.FindStringSubmatch(base); m != nil {
		return m[1], 0, false, true
	}
	if m := codepointFile.FindStringSubmatch(base); m != nil {
		label = m[2]
		if label == "" {
			label = base
		}
		x, err := strconv.ParseInt(m[1], 16, 32)
		if err != nil {
			return label, 0, false, false
		}
		return label, rune(x), true, false
	}
	return base, 0, false, false
}
