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
	"fmt"

	"seehuhn.de/go/streampdf/pdf"
)

// Embed writes the font dictionary, the font descriptor and the font file
// to the PDF file.  The font dictionary is stored at ref.
//
// The complete font is embedded.  TrueType outlines are stored in a
// /FontFile2 stream, CFF-based OpenType fonts in a /FontFile3 stream.
func (f *Font) Embed(w *pdf.Writer, ref pdf.Reference) error {
	info := f.info
	if !info.IsGlyf() && !info.IsCFF() {
		return fmt.Errorf("font %q: unsupported outline format", f.PostScriptName())
	}

	descRef := w.Alloc()
	fileRef := w.Alloc()

	widths := make(pdf.Array, lastChar-firstChar+1)
	for c := firstChar; c <= lastChar; c++ {
		widths[c-firstChar] = pdf.Number(f.widths[c])
	}

	subtype := pdf.Name("TrueType")
	if info.IsCFF() {
		subtype = "Type1"
	}
	fontDict := pdf.Dict{
		"Type":           pdf.Name("Font"),
		"Subtype":        subtype,
		"BaseFont":       pdf.Name(f.PostScriptName()),
		"FirstChar":      pdf.Integer(firstChar),
		"LastChar":       pdf.Integer(lastChar),
		"Widths":         widths,
		"Encoding":       pdf.Name(WinAnsiEncoding),
		"FontDescriptor": descRef,
	}
	err := w.Put(ref, fontDict)
	if err != nil {
		return err
	}

	descDict := f.descriptor().AsDict()
	if info.IsGlyf() {
		descDict["FontFile2"] = fileRef
	} else {
		descDict["FontFile3"] = fileRef
	}
	err = w.Put(descRef, descDict)
	if err != nil {
		return err
	}

	if info.IsGlyf() {
		length1Ref := w.Alloc()
		fontStmDict := pdf.Dict{
			"Length1": length1Ref,
		}
		fontStm, err := w.OpenStream(fileRef, fontStmDict, pdf.FilterFlate{})
		if err != nil {
			return fmt.Errorf("open TrueType stream: %w", err)
		}
		l1, err := info.WriteTrueTypePDF(fontStm)
		if err != nil {
			return fmt.Errorf("write TrueType stream: %w", err)
		}
		err = fontStm.Close()
		if err != nil {
			return fmt.Errorf("close TrueType stream: %w", err)
		}
		err = w.Put(length1Ref, pdf.Integer(l1))
		if err != nil {
			return fmt.Errorf("TrueType stream: length1: %w", err)
		}
		return nil
	}

	fontStmDict := pdf.Dict{
		"Subtype": pdf.Name("OpenType"),
	}
	fontStm, err := w.OpenStream(fileRef, fontStmDict, pdf.FilterFlate{})
	if err != nil {
		return fmt.Errorf("open OpenType/CFF stream: %w", err)
	}
	err = info.WriteOpenTypeCFFPDF(fontStm)
	if err != nil {
		return fmt.Errorf("write OpenType/CFF stream: %w", err)
	}
	err = fontStm.Close()
	if err != nil {
		return fmt.Errorf("close OpenType/CFF stream: %w", err)
	}
	return nil
}
