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
	"errors"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/streampdf/layout"
	"seehuhn.de/go/streampdf/pdf"
)

// Painter draws on the pages of a document.
//
// A Painter is bound to at most one page at a time, and keeps track of the
// current font and font size.  The font setting is kept when the Painter
// is moved to a different page.
type Painter struct {
	doc  *Document
	page int

	font     Font
	hasFont  bool
	fontSize float64
}

var errForeign = errors.New("belongs to a different document")

// NewPainter returns a Painter for the document.  Before anything can be
// drawn, the Painter must be bound to a page using SetPage.
func (doc *Document) NewPainter() *Painter {
	return &Painter{doc: doc, page: -1}
}

// SetPage binds the Painter to a page.  If the Painter is already bound to
// a different page, that page must be finished first.
func (p *Painter) SetPage(page Page) error {
	const op = "SetPage"
	if p.doc.closed {
		return &pdf.StateError{Op: op, Err: pdf.ErrClosed}
	}
	if page.doc != p.doc {
		return &pdf.StateError{Op: op, Err: errForeign}
	}
	if p.page >= 0 && p.page != page.index && !p.doc.pages[p.page].finished {
		return &pdf.StateError{Op: op, Err: pdf.ErrUnfinished}
	}
	if p.doc.pages[page.index].finished {
		return &pdf.StateError{Op: op, Err: pdf.ErrFinished}
	}
	p.page = page.index
	return nil
}

// Page returns the page the Painter is bound to.
// The second return value is false if the Painter is not bound to a page.
func (p *Painter) Page() (Page, bool) {
	if p.page < 0 {
		return Page{}, false
	}
	return Page{doc: p.doc, index: p.page}, true
}

// current returns the page the Painter draws on.
func (p *Painter) current(op string) (*pageState, error) {
	if p.doc.closed {
		return nil, &pdf.StateError{Op: op, Err: pdf.ErrClosed}
	}
	if p.page < 0 {
		return nil, &pdf.StateError{Op: op, Err: pdf.ErrNoPage}
	}
	ps := p.doc.pages[p.page]
	if ps.finished {
		return nil, &pdf.StateError{Op: op, Err: pdf.ErrFinished}
	}
	return ps, nil
}

// SetFont sets the font and font size for subsequent text.
func (p *Painter) SetFont(f Font, size float64) error {
	const op = "SetFont"
	if p.doc.closed {
		return &pdf.StateError{Op: op, Err: pdf.ErrClosed}
	}
	if f.doc != p.doc {
		return &pdf.StateError{Op: op, Err: errForeign}
	}
	p.font = f
	p.fontSize = size
	p.hasFont = true
	return nil
}

// Font returns the current font and font size.
// The last return value is false if no font has been set.
func (p *Painter) Font() (Font, float64, bool) {
	return p.font, p.fontSize, p.hasFont
}

// textPage returns the current page, after making sure that the current
// font is selected in its content stream.
func (p *Painter) textPage(op string) (*pageState, error) {
	ps, err := p.current(op)
	if err != nil {
		return nil, err
	}
	if !p.hasFont {
		return nil, &pdf.StateError{Op: op, Err: pdf.ErrNoFont}
	}
	if ps.curFont != p.font.index || ps.curSize != p.fontSize {
		fs := p.doc.fontSlots[p.font.index]
		err := ps.content.SetFont(fs.name, p.fontSize)
		if err != nil {
			return nil, err
		}
		ps.curFont = p.font.index
		ps.curSize = p.fontSize
	}
	ps.fonts[p.font.index] = true
	return ps, nil
}

// DrawText draws a line of text, with the left end of the baseline at
// (x, y).
func (p *Painter) DrawText(x, y float64, text string) error {
	ps, err := p.textPage("DrawText")
	if err != nil {
		return err
	}
	return ps.content.ShowText(x, y, p.font.face().Encode(text))
}

// DrawTextAligned draws a line of text inside a box of width boxWidth,
// which starts at x.  The baseline of the text is at y.
func (p *Painter) DrawTextAligned(x, y, boxWidth float64, text string, align layout.HAlign) error {
	ps, err := p.textPage("DrawTextAligned")
	if err != nil {
		return err
	}
	face := p.font.face()
	s := face.Encode(text)
	width := face.EncodedWidth(p.fontSize, s)
	return ps.content.ShowText(x+layout.Offset(align, boxWidth, width), y, s)
}

// DrawMultiLineText draws text inside the box with lower-left corner
// (x, y) and the given width and height.
//
// The text is broken into lines at spaces and newline characters.  A word
// which is wider than the box is put on a line of its own.  Lines which do
// not fit into the box vertically are discarded.
func (p *Painter) DrawMultiLineText(x, y, boxWidth, boxHeight float64, text string, hAlign layout.HAlign, vAlign layout.VAlign) error {
	_, err := p.textPage("DrawMultiLineText")
	if err != nil {
		return err
	}

	face := p.font.face()
	size := p.fontSize
	measure := func(s string) float64 {
		return face.StringWidth(size, s)
	}
	lineSpacing := face.LineSpacing(size)
	lines := layout.Wrap(text, boxWidth, measure)
	lines = layout.Truncate(lines, lineSpacing, boxHeight)

	yPos := layout.FirstBaseline(vAlign, y, boxHeight, len(lines), lineSpacing, face.Ascent(size))
	for _, line := range lines {
		if line != "" {
			err := p.DrawTextAligned(x, yPos, boxWidth, line, hAlign)
			if err != nil {
				return err
			}
		}
		yPos -= lineSpacing
	}
	return nil
}

// Rectangle adds a rectangle with lower-left corner (x, y) to the current
// path.
func (p *Painter) Rectangle(x, y, width, height float64) error {
	ps, err := p.current("Rectangle")
	if err != nil {
		return err
	}
	return ps.content.Rectangle(x, y, width, height)
}

// Stroke draws the outline of the current path.
func (p *Painter) Stroke() error {
	ps, err := p.current("Stroke")
	if err != nil {
		return err
	}
	return ps.content.Stroke()
}

// Fill fills the current path.
func (p *Painter) Fill() error {
	ps, err := p.current("Fill")
	if err != nil {
		return err
	}
	return ps.content.Fill()
}

// SetLineWidth sets the width of stroked lines.
func (p *Painter) SetLineWidth(width float64) error {
	ps, err := p.current("SetLineWidth")
	if err != nil {
		return err
	}
	return ps.content.SetLineWidth(width)
}

// SetStrokeColor sets the colour used for stroking.
// The red, green and blue components are in the range 0 to 1.
func (p *Painter) SetStrokeColor(r, g, b float64) error {
	ps, err := p.current("SetStrokeColor")
	if err != nil {
		return err
	}
	return ps.content.SetStrokeRGB(r, g, b)
}

// SetFillColor sets the colour used for filling and for text.
// The red, green and blue components are in the range 0 to 1.
func (p *Painter) SetFillColor(r, g, b float64) error {
	ps, err := p.current("SetFillColor")
	if err != nil {
		return err
	}
	return ps.content.SetFillRGB(r, g, b)
}

// DrawImage draws an image with the lower-left corner at (x, y).  At
// scale 1, one image pixel takes up one PDF point.
func (p *Painter) DrawImage(x, y float64, img Image, scaleX, scaleY float64) error {
	const op = "DrawImage"
	ps, err := p.current(op)
	if err != nil {
		return err
	}
	if img.doc != p.doc {
		return &pdf.StateError{Op: op, Err: errForeign}
	}
	is := p.doc.imageSlots[img.index]
	M := matrix.Matrix{
		float64(is.width) * scaleX, 0,
		0, float64(is.height) * scaleY,
		x, y,
	}
	err = ps.content.DrawXObject(is.name, M)
	if err != nil {
		return err
	}
	ps.images[img.index] = true
	return nil
}

// FinishPage completes the current page and writes it to the output.
// After this, no more drawing on the page is possible.  The Painter stays
// bound to the finished page until SetPage is called.
func (p *Painter) FinishPage() error {
	const op = "FinishPage"
	if p.doc.closed {
		return &pdf.StateError{Op: op, Err: pdf.ErrClosed}
	}
	if p.page < 0 {
		return &pdf.StateError{Op: op, Err: pdf.ErrNoPage}
	}
	return p.doc.finishPage(p.page)
}
