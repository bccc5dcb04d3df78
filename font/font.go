// seehuhn.de/go/streampdf - write PDF files in a single pass
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

// Package font provides font metrics and font embedding.
//
// Fonts are used as simple fonts with WinAnsiEncoding: every character of a
// string is represented by one byte in the content stream.  Characters which
// cannot be represented in this encoding are replaced by a question mark.
//
// All widths and heights returned by this package are in PDF text space
// units, i.e. in points for a given font size.
package font

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/sfnt"
)

// Font holds the metrics of a TrueType or OpenType font, used as a simple
// font with WinAnsiEncoding.
type Font struct {
	info *sfnt.Font

	// widths holds the advance width of every character code, in PDF glyph
	// space units (1/1000 of the font size).
	widths       [256]float64
	missingWidth float64

	ascent  float64
	descent float64
	lineGap float64

	isFallback bool
}

// New extracts the metrics needed for text layout from a font.
func New(info *sfnt.Font) (*Font, error) {
	if info == nil {
		return nil, errors.New("missing font data")
	}
	if info.UnitsPerEm == 0 {
		return nil, fmt.Errorf("font %q: invalid unitsPerEm", info.FamilyName)
	}
	cmap, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", info.FamilyName, err)
	}

	q := 1000 / float64(info.UnitsPerEm)
	f := &Font{
		info:         info,
		missingWidth: math.Round(info.GlyphWidthPDF(0)),
		ascent:       info.Ascent.AsFloat(q),
		descent:      info.Descent.AsFloat(q),
		lineGap:      info.LineGap.AsFloat(q),
	}
	for c := firstChar; c <= lastChar; c++ {
		r := decodeWinAnsi(byte(c))
		gid := cmap.Lookup(r)
		if gid == 0 {
			f.widths[c] = f.missingWidth
			continue
		}
		f.widths[c] = math.Round(info.GlyphWidthPDF(gid))
	}
	for c := 0; c < firstChar; c++ {
		f.widths[c] = f.missingWidth
	}
	return f, nil
}

// FamilyName returns the family name stored in the font file.
func (f *Font) FamilyName() string {
	return f.info.FamilyName
}

// PostScriptName returns the PostScript name of the font.
func (f *Font) PostScriptName() string {
	return f.info.PostScriptName()
}

// IsFallback reports whether this is the built-in font, used because the
// requested font could not be found.
func (f *Font) IsFallback() bool {
	return f.isFallback
}

// Encode converts a string to the byte sequence used in the content stream.
func (f *Font) Encode(text string) []byte {
	return encodeWinAnsi(text)
}

// StringWidth returns the width of text when set in this font at the given
// size.  The width is the sum of the advance widths of all characters,
// scaled by size/1000.
func (f *Font) StringWidth(size float64, text string) float64 {
	return f.EncodedWidth(size, f.Encode(text))
}

// EncodedWidth returns the width of an already encoded string.
func (f *Font) EncodedWidth(size float64, s []byte) float64 {
	var w float64
	for _, c := range s {
		w += f.widths[c]
	}
	return w * size / 1000
}

// CodeWidth returns the advance width of a character code, in PDF glyph
// space units.
func (f *Font) CodeWidth(c byte) float64 {
	return f.widths[c]
}

// Ascent returns the distance from the baseline to the top of the tallest
// glyphs, at the given font size.
func (f *Font) Ascent(size float64) float64 {
	return f.ascent * size / 1000
}

// Descent returns the (negative) distance from the baseline to the bottom of
// the lowest glyphs, at the given font size.
func (f *Font) Descent(size float64) float64 {
	return f.descent * size / 1000
}

// LineSpacing returns the distance between the baselines of consecutive
// lines of text, at the given font size.
func (f *Font) LineSpacing(size float64) float64 {
	return (f.ascent - f.descent + f.lineGap) * size / 1000
}
