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

package fontbuild

import (
	"regexp"
	"time"

	"golang.org/x/text/language"
	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/gridfont/sfnt/head"
	"seehuhn.de/go/gridfont/sfnt/os2"
)

// Info contains the font-wide information for [Assemble].
type Info struct {
	FamilyName string
	Weight     os2.Weight

	Version  head.Version
	Created  time.Time
	Modified time.Time

	Copyright string
	Vendor    string

	// Language selects the language of the "name" table strings.
	Language language.Tag

	UnitsPerEm uint16

	Ascent  funit.Int16
	Descent funit.Int16 // negative
	LineGap funit.Int16

	// CapHeight and XHeight are the heights of capital and lower case
	// letters.  If zero, they are taken from the glyphs for "H" and "x".
	CapHeight funit.Int16
	XHeight   funit.Int16

	UnderlinePosition  funit.Int16 // negative
	UnderlineThickness funit.Int16

	// LowestRecPPEM is the smallest recommended size in pixels per em.
	LowestRecPPEM uint16
}

// IsBold reports whether the font is a bold font.
func (info *Info) IsBold() bool {
	return info.Weight >= os2.WeightBold
}

// Subfamily returns the subfamily name of the font.
func (info *Info) Subfamily() string {
	if info.IsBold() {
		return "Bold"
	}
	return "Regular"
}

// FullName returns the full name of the font.
func (info *Info) FullName() string {
	return info.FamilyName + " " + info.Subfamily()
}

// PostScriptName returns the PostScript name of the font.
func (info *Info) PostScriptName() string {
	name := info.FamilyName + "-" + info.Subfamily()
	return psNameInvalid.ReplaceAllString(name, "")
}

var psNameInvalid = regexp.MustCompile(`[^!-$&-'*-.0-;=?-Z\\^-z|~]+`)

