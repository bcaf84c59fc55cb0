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

package name

import (
	"slices"
	"sync"

	"golang.org/x/text/language"
)

// LanguageID returns the Windows language ID which best matches the given
// tag.  If no language matches, US English is used.
func LanguageID(tag language.Tag) uint16 {
	ids, matcher := windowsMatcher()
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return langEnglishUS
	}
	return ids[idx]
}

var windowsMatcher = sync.OnceValues(func() ([]uint16, language.Matcher) {
	ids := make([]uint16, 0, len(msBCP))
	for id := range msBCP {
		ids = append(ids, id)
	}
	// US English first, so that it is the fallback of the matcher
	slices.SortFunc(ids, func(a, b uint16) int {
		switch {
		case a == b:
			return 0
		case a == langEnglishUS:
			return -1
		case b == langEnglishUS:
			return 1
		case a < b:
			return -1
		default:
			return 1
		}
	})
	tags := make([]language.Tag, len(ids))
	for i, id := range ids {
		tags[i] = language.MustParse(msBCP[id])
	}
	return ids, language.NewMatcher(tags)
})

// https://learn.microsoft.com/en-us/openspecs/office_standards/ms-oe376/6c085406-a698-4e12-9d4d-c3b0ee3dbc4a
var msBCP = map[uint16]string{
	0x0436: "af-ZA",      // Afrikaans, South Africa
	0x041c: "sq-AL",      // Albanian, Albania
	0x0c01: "ar-EG",      // Arabic, Egypt
	0x0401: "ar-SA",      // Arabic, Saudi Arabia
	0x042b: "hy-AM",      // Armenian, Armenia
	0x042d: "eu-ES",      // Basque, Basque
	0x0423: "be-BY",      // Belarusian, Belarus
	0x0402: "bg-BG",      // Bulgarian, Bulgaria
	0x0403: "ca-ES",      // Catalan, Catalan
	0x0804: "zh-CN",      // Chinese, PRC
	0x0c04: "zh-HK",      // Chinese, Hong Kong S.A.R.
	0x0404: "zh-TW",      // Chinese, Taiwan
	0x041a: "hr-HR",      // Croatian, Croatia
	0x0405: "cs-CZ",      // Czech, Czech Republic
	0x0406: "da-DK",      // Danish, Denmark
	0x0413: "nl-NL",      // Dutch, Netherlands
	0x0c09: "en-AU",      // English, Australia
	0x1009: "en-CA",      // English, Canada
	0x1809: "en-IE",      // English, Ireland
	0x0809: "en-GB",      // English, United Kingdom
	0x0409: "en-US",      // English, United States
	0x0425: "et-EE",      // Estonian, Estonia
	0x040b: "fi-FI",      // Finnish, Finland
	0x040c: "fr-FR",      // French, France
	0x0c0c: "fr-CA",      // French, Canada
	0x0437: "ka-GE",      // Georgian, Georgia
	0x0407: "de-DE",      // German, Germany
	0x0c07: "de-AT",      // German, Austria
	0x0807: "de-CH",      // German, Switzerland
	0x0408: "el-GR",      // Greek, Greece
	0x040d: "he-IL",      // Hebrew, Israel
	0x0439: "hi-IN",      // Hindi, India
	0x040e: "hu-HU",      // Hungarian, Hungary
	0x040f: "is-IS",      // Icelandic, Iceland
	0x0421: "id-ID",      // Indonesian, Indonesia
	0x0410: "it-IT",      // Italian, Italy
	0x0411: "ja-JP",      // Japanese, Japan
	0x0412: "ko-KR",      // Korean, Korea
	0x0426: "lv-LV",      // Latvian, Latvia
	0x0427: "lt-LT",      // Lithuanian, Lithuania
	0x0414: "nb-NO",      // Norwegian (Bokmal), Norway
	0x0415: "pl-PL",      // Polish, Poland
	0x0416: "pt-BR",      // Portuguese, Brazil
	0x0816: "pt-PT",      // Portuguese, Portugal
	0x0418: "ro-RO",      // Romanian, Romania
	0x0419: "ru-RU",      // Russian, Russia
	0x0c1a: "sr-Cyrl-RS", // Serbian (Cyrillic), Serbia
	0x081a: "sr-Latn-RS", // Serbian (Latin), Serbia
	0x041b: "sk-SK",      // Slovak, Slovakia
	0x0424: "sl-SI",      // Slovenian, Slovenia
	0x0c0a: "es-ES",      // Spanish, Spain
	0x080a: "es-MX",      // Spanish, Mexico
	0x041d: "sv-SE",      // Swedish, Sweden
	0x041e: "th-TH",      // Thai, Thailand
	0x041f: "tr-TR",      // Turkish, Turkey
	0x0422: "uk-UA",      // Ukrainian, Ukraine
	0x042a: "vi-VN",      // Vietnamese, Vietnam
	0x0452: "cy-GB",      // Welsh, United Kingdom
}
