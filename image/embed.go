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

package image

import (
	"seehuhn.de/go/streampdf/pdf"
)

// Embed writes the image to the PDF file, as an image XObject.
// If the image has a soft mask, the mask is written first.
func (img *Image) Embed(w *pdf.Writer) (pdf.Reference, error) {
	dict := pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(img.Width),
		"Height":           pdf.Integer(img.Height),
		"ColorSpace":       img.ColorSpace,
		"BitsPerComponent": pdf.Integer(img.BitsPerComponent),
		"Filter":           img.Filter,
	}
	if img.Decode != nil {
		dict["Decode"] = img.Decode
	}
	if img.Mask != nil {
		maskRef, err := img.Mask.Embed(w)
		if err != nil {
			return pdf.Reference{}, err
		}
		dict["SMask"] = maskRef
	}

	ref := w.Alloc()
	stream, err := w.OpenStream(ref, dict)
	if err != nil {
		return pdf.Reference{}, err
	}
	_, err = stream.Write(img.Data)
	if err != nil {
		return pdf.Reference{}, err
	}
	err = stream.Close()
	if err != nil {
		return pdf.Reference{}, err
	}
	return ref, nil
}
