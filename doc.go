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

// Package streampdf creates PDF documents containing text and images.
//
// The output is written in a single pass: fonts, images and finished pages
// are written to the output as soon as possible, and only a small amount of
// bookkeeping data is kept in memory.  A document is used as follows:
//
//	doc, err := streampdf.CreateFile("out.pdf", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	font, err := doc.CreateFont("Helvetica")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	w, h := paper.Standard(paper.A4, false)
//	err = doc.DrawPage(w, h, func(p *streampdf.Painter) error {
//	    err := p.SetFont(font, 12)
//	    if err != nil {
//	        return err
//	    }
//	    return p.DrawText(72, h-72, "Hello World")
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = doc.Close()
//
// Pages can also be managed manually, using [Document.NewPage],
// [Painter.SetPage] and [Painter.FinishPage].  Every page must be finished
// before the document can be closed.
//
// Coordinates are given in PDF points (1/72 inch), with the origin in the
// bottom-left corner of the page.  Text is set with the baseline at the
// given y coordinate.
//
// A Document is not safe for concurrent use.
package streampdf
