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

package font

import (
	"math"

	"seehuhn.de/go/streampdf/pdf"
)

// Flags represents PDF Font Descriptor Flags.
// See section 9.8.2 of PDF 32000-1:2008.
type Flags uint32

// Possible values for PDF Font Descriptor Flags.
const (
	FlagFixedPitch  Flags = 1 << 0 // All glyphs have the same width.
	FlagSerif       Flags = 1 << 1 // Glyphs have serifs.
	FlagSymbolic    Flags = 1 << 2 // Font contains glyphs outside the Adobe standard Latin character set.
	FlagScript      Flags = 1 << 3 // Glyphs resemble cursive handwriting.
	FlagNonsymbolic Flags = 1 << 5 // Font uses the Adobe standard Latin character set or a subset of it.
	FlagItalic      Flags = 1 << 6 // Glyphs have dominant vertical strokes that are slanted.
)

// Descriptor represents a PDF font descriptor.
//
// See section 9.8.1 of PDF 32000-1:2008.
type Descriptor struct {
	FontName string

	IsFixedPitch bool
	IsSerif      bool
	IsSymbolic   bool
	IsScript     bool
	IsItalic     bool

	FontBBox     *pdf.Rectangle
	ItalicAngle  float64
	Ascent       float64
	Descent      float64
	CapHeight    float64
	StemV        float64
	MissingWidth float64
}

// Flags returns the /Flags value of the font descriptor.
func (d *Descriptor) Flags() Flags {
	var flags Flags
	if d.IsFixedPitch {
		flags |= FlagFixedPitch
	}
	if d.IsSerif {
		flags |= FlagSerif
	}
	if d.IsSymbolic {
		flags |= FlagSymbolic
	} else {
		flags |= FlagNonsymbolic
	}
	if d.IsScript {
		flags |= FlagScript
	}
	if d.IsItalic {
		flags |= FlagItalic
	}
	return flags
}

// AsDict converts the font descriptor to a PDF dictionary.
// The caller must add the entry for the embedded font file.
func (d *Descriptor) AsDict() pdf.Dict {
	res := pdf.Dict{
		"Type":        pdf.Name("FontDescriptor"),
		"FontName":    pdf.Name(d.FontName),
		"Flags":       pdf.Integer(d.Flags()),
		"FontBBox":    d.FontBBox,
		"ItalicAngle": pdf.Number(d.ItalicAngle),
		"Ascent":      pdf.Number(math.Round(d.Ascent)),
		"Descent":     pdf.Number(math.Round(d.Descent)),
		"CapHeight":   pdf.Number(math.Round(d.CapHeight)),
		"StemV":       pdf.Number(d.StemV),
	}
	if d.MissingWidth != 0 {
		res["MissingWidth"] = pdf.Number(d.MissingWidth)
	}
	return res
}

// descriptor returns the font descriptor for f.
func (f *Font) descriptor() *Descriptor {
	info := f.info
	q := 1000 / float64(info.UnitsPerEm)

	bbox := info.FontBBox()
	capHeight := info.CapHeight.AsFloat(q)
	if capHeight == 0 {
		capHeight = f.ascent
	}
	stemV := 80.0
	if info.IsBold {
		stemV = 140
	}

	return &Descriptor{
		FontName:     info.PostScriptName(),
		IsFixedPitch: info.IsFixedPitch(),
		IsSerif:      info.IsSerif,
		IsScript:     info.IsScript,
		IsItalic:     info.IsItalic,
		FontBBox: &pdf.Rectangle{
			LLx: math.Round(bbox.LLx.AsFloat(q)),
			LLy: math.Round(bbox.LLy.AsFloat(q)),
			URx: math.Round(bbox.URx.AsFloat(q)),
			URy: math.Round(bbox.URy.AsFloat(q)),
		},
		ItalicAngle:  info.ItalicAngle,
		Ascent:       f.ascent,
		Descent:      f.descent,
		CapHeight:    capHeight,
		StemV:        stemV,
		MissingWidth: f.missingWidth,
	}
}
