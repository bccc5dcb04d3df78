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
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/streampdf/content"
	"seehuhn.de/go/streampdf/pdf"
)

// Page refers to a page of a Document.
type Page struct {
	doc   *Document
	index int
}

// Size returns the width and height of the page.
func (p Page) Size() (width, height float64) {
	ps := p.doc.pages[p.index]
	return ps.width, ps.height
}

// Number returns the page number, starting at 1.
func (p Page) Number() int {
	return p.index + 1
}

// IsFinished reports whether the page has been finished.
// After the document is closed, all pages are considered finished.
func (p Page) IsFinished() bool {
	if p.doc.closed {
		return true
	}
	return p.doc.pages[p.index].finished
}

type pageState struct {
	width, height float64
	content       *content.Stream
	finished      bool

	// the font and size last selected in the content stream
	curFont int
	curSize float64

	fonts  map[int]bool
	images map[int]bool

	// dict is the page dictionary, kept until all earlier pages have been
	// finished.
	dict pdf.Dict
}

var errPageSize = errors.New("invalid page size")

// NewPage adds a new, empty page to the document.  The page has the given
// width and height, in PDF points.
func (doc *Document) NewPage(width, height float64) (Page, error) {
	if doc.closed {
		return Page{}, &pdf.StateError{Op: "NewPage", Err: pdf.ErrClosed}
	}
	if !(width > 0 && height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return Page{}, &pdf.ResourceError{
			Op:  "create page",
			Err: fmt.Errorf("%gx%g: %w", width, height, errPageSize),
		}
	}
	ps := &pageState{
		width:   width,
		height:  height,
		content: content.New(),
		curFont: -1,
		fonts:   make(map[int]bool),
		images:  make(map[int]bool),
	}
	doc.pages = append(doc.pages, ps)
	return Page{doc: doc, index: len(doc.pages) - 1}, nil
}

// finishPage writes the page contents and all resources used by the page
// which have not been written before.
//
// A page is finished even if writing it fails.  Since the page is then
// missing from the output, the document is marked as failed and no further
// pages are written.
func (doc *Document) finishPage(idx int) error {
	const op = "FinishPage"
	if doc.closed {
		return &pdf.StateError{Op: op, Err: pdf.ErrClosed}
	}
	ps := doc.pages[idx]
	if ps.finished {
		return &pdf.StateError{Op: op, Err: pdf.ErrFinished}
	}
	ps.finished = true
	if doc.failed != nil {
		ps.content = nil
		return doc.failed
	}

	err := doc.writePage(ps)
	if err == nil {
		err = doc.flushPages()
	}
	if err != nil {
		doc.failed = err
		return err
	}
	return nil
}

func (doc *Document) writePage(ps *pageState) error {
	body, err := ps.content.Finish()
	if err != nil {
		return err
	}

	fontDict := pdf.Dict{}
	for _, i := range sortedKeys(ps.fonts) {
		fs := doc.fontSlots[i]
		err := doc.embedFont(fs)
		if err != nil {
			return err
		}
		fontDict[fs.name] = fs.ref
	}
	xobjDict := pdf.Dict{}
	for _, i := range sortedKeys(ps.images) {
		is := doc.imageSlots[i]
		xobjDict[is.name] = is.ref
	}

	procSet := pdf.Array{pdf.Name("PDF")}
	if len(fontDict) > 0 {
		procSet = append(procSet, pdf.Name("Text"))
	}
	if len(xobjDict) > 0 {
		procSet = append(procSet, pdf.Name("ImageB"), pdf.Name("ImageC"))
	}
	resources := pdf.Dict{"ProcSet": procSet}
	if len(fontDict) > 0 {
		resources["Font"] = fontDict
	}
	if len(xobjDict) > 0 {
		resources["XObject"] = xobjDict
	}

	contentRef := doc.out.Alloc()
	var filters []pdf.Filter
	if doc.compress {
		filters = append(filters, pdf.FilterFlate{})
	}
	stm, err := doc.out.OpenStream(contentRef, nil, filters...)
	if err != nil {
		return err
	}
	_, err = stm.Write(body)
	if err != nil {
		stm.Close()
		return err
	}
	err = stm.Close()
	if err != nil {
		return err
	}

	ps.dict = pdf.Dict{
		"MediaBox":  &pdf.Rectangle{URx: ps.width, URy: ps.height},
		"Resources": resources,
		"Contents":  contentRef,
	}
	ps.fonts = nil
	ps.images = nil
	return nil
}

// flushPages passes finished pages to the page tree, in the order in which
// the pages were created.
func (doc *Document) flushPages() error {
	for doc.nextFlush < len(doc.pages) {
		ps := doc.pages[doc.nextFlush]
		if !ps.finished {
			break
		}
		_, err := doc.tree.AppendPage(ps.dict)
		if err != nil {
			return err
		}
		ps.dict = nil
		ps.content = nil
		doc.nextFlush++
	}
	return nil
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
