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

package streampdf

import (
	"strconv"
	"strings"

	"seehuhn.de/go/streampdf/font"
	"seehuhn.de/go/streampdf/image"
	"seehuhn.de/go/streampdf/pdf"
)

// Font refers to a font of a Document.
//
// The zero Font is not valid.
type Font struct {
	doc   *Document
	index int
}

type fontState struct {
	face *font.Font
	name pdf.Name
	ref  pdf.Reference // allocated when the first page using the font is finished
}

func (f Font) face() *font.Font {
	return f.doc.fontSlots[f.index].face
}

// IsFallback reports whether the requested font family could not be found
// and the built-in font is used instead.
func (f Font) IsFallback() bool {
	return f.face().IsFallback()
}

// StringWidth returns the width of text at the given font size.
func (f Font) StringWidth(size float64, text string) float64 {
	return f.face().StringWidth(size, text)
}

// LineSpacing returns the distance between consecutive baselines at the
// given font size.
func (f Font) LineSpacing(size float64) float64 {
	return f.face().LineSpacing(size)
}

// Ascent returns the height of the font above the baseline at the given
// font size.
func (f Font) Ascent(size float64) float64 {
	return f.face().Ascent(size)
}

// Descent returns the (negative) depth of the font below the baseline at
// the given font size.
func (f Font) Descent(size float64) float64 {
	return f.face().Descent(size)
}

// CreateFont returns the font for the given family name.
//
// If the family cannot be found, a built-in font is used instead; use
// [Font.IsFallback] to detect this case.  Requesting the same family twice
// returns the same Font, and all families which resolve to the same font
// file share one embedded copy.
func (doc *Document) CreateFont(family string) (Font, error) {
	if doc.closed {
		return Font{}, &pdf.StateError{Op: "CreateFont", Err: pdf.ErrClosed}
	}
	key := strings.ToLower(strings.TrimSpace(family))
	if idx, ok := doc.fontByName[key]; ok {
		return Font{doc: doc, index: idx}, nil
	}

	face, err := doc.fonts.Resolve(family)
	if err != nil {
		return Font{}, &pdf.ResourceError{Op: "create font", Name: family, Err: err}
	}
	if face.IsFallback() {
		doc.logger.Printf("font %q not found, using %s", family, face.PostScriptName())
	}

	idx, ok := doc.fontByFace[face]
	if !ok {
		idx = len(doc.fontSlots)
		doc.fontSlots = append(doc.fontSlots, &fontState{
			face: face,
			name: pdf.Name("F" + strconv.Itoa(idx+1)),
		})
		doc.fontByFace[face] = idx
	}
	doc.fontByName[key] = idx
	return Font{doc: doc, index: idx}, nil
}

// embedFont writes the font to the file, if this has not been done before.
func (doc *Document) embedFont(fs *fontState) error {
	if !fs.ref.IsZero() {
		return nil
	}
	ref := doc.out.Alloc()
	err := fs.face.Embed(doc.out, ref)
	if err != nil {
		return err
	}
	fs.ref = ref
	return nil
}

// Image refers to an image of a Document.
//
// The zero Image is not valid.
type Image struct {
	doc   *Document
	index int
}

type imageState struct {
	width, height int
	name          pdf.Name
	ref           pdf.Reference
}

// Size returns the width and height of the image, in pixels.
func (img Image) Size() (width, height int) {
	is := img.doc.imageSlots[img.index]
	return is.width, is.height
}

// LoadImage reads an image file and adds it to the document.  The image is
// written to the output immediately and can then be drawn on any page of
// the document.
//
// If the file cannot be read, a *pdf.ResourceError is returned.  If the file
// contents cannot be decoded, a *pdf.DecodeError is returned.
func (doc *Document) LoadImage(path string) (Image, error) {
	if doc.closed {
		return Image{}, &pdf.StateError{Op: "LoadImage", Err: pdf.ErrClosed}
	}
	img, err := image.Load(path, doc.decoder)
	if err != nil {
		return Image{}, err
	}
	return doc.AddImage(img)
}

// AddImage adds an already decoded image to the document.
func (doc *Document) AddImage(img *image.Image) (Image, error) {
	if doc.closed {
		return Image{}, &pdf.StateError{Op: "AddImage", Err: pdf.ErrClosed}
	}
	ref, err := img.Embed(doc.out)
	if err != nil {
		return Image{}, err
	}
	idx := len(doc.imageSlots)
	doc.imageSlots = append(doc.imageSlots, &imageState{
		width:  img.Width,
		height: img.Height,
		name:   pdf.Name("Im" + strconv.Itoa(idx+1)),
		ref:    ref,
	})
	return Image{doc: doc, index: idx}, nil
}
