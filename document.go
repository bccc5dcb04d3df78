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
	"io"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"

	"seehuhn.de/go/streampdf/font"
	"seehuhn.de/go/streampdf/image"
	"seehuhn.de/go/streampdf/metadata"
	"seehuhn.de/go/streampdf/pagetree"
	"seehuhn.de/go/streampdf/pdf"
)

// Producer is the default value of the /Producer entry in the document
// information dictionary.
const Producer = "seehuhn.de/go/streampdf"

// Document is a PDF document which is being written.
//
// Pages, fonts and images are owned by the Document and are referred to
// by small handle values.  All resources are released when the document
// is closed.
type Document struct {
	out  *pdf.Writer
	tree *pagetree.Writer

	fonts     *font.Provider
	ownsFonts bool
	decoder   image.Decoder
	logger    *log.Logger

	compress bool
	xmp      bool
	lang     language.Tag
	info     pdf.Info

	pages     []*pageState
	nextFlush int // first page not yet passed to the page tree

	fontSlots  []*fontState
	fontByFace map[*font.Font]int
	fontByName map[string]int

	imageSlots []*imageState

	// failed is the first error which left the output incomplete.
	failed error
	closed bool
}

// Create starts a new PDF document, written to w.  If w implements
// io.Closer, it is closed when the document is closed.
func Create(w io.Writer, opt *Options) (*Document, error) {
	if opt == nil {
		opt = &Options{}
	}
	ver := opt.Version
	if ver == 0 {
		ver = defaultVersion
	}
	out, err := pdf.NewWriter(w, &pdf.WriterOptions{Version: ver, ID: opt.ID})
	if err != nil {
		return nil, err
	}
	return newDocument(out, opt), nil
}

// CreateFile starts a new PDF document, written to the named file.
// If the file already exists, it is overwritten.
func CreateFile(name string, opt *Options) (*Document, error) {
	fd, err := os.Create(name)
	if err != nil {
		return nil, &pdf.ResourceError{Op: "create", Name: name, Err: err}
	}
	doc, err := Create(fd, opt)
	if err != nil {
		fd.Close()
		return nil, err
	}
	return doc, nil
}

func newDocument(out *pdf.Writer, opt *Options) *Document {
	logger := opt.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	doc := &Document{
		out:        out,
		tree:       pagetree.NewWriter(out),
		fonts:      opt.Fonts,
		decoder:    opt.Images,
		logger:     logger,
		compress:   !opt.HumanReadable,
		xmp:        opt.XMP,
		lang:       opt.Language,
		fontByFace: make(map[*font.Font]int),
		fontByName: make(map[string]int),
	}
	if doc.fonts == nil {
		matcher := &font.SystemMatcher{Logger: opt.Logger}
		doc.fonts = font.NewProvider(matcher, opt.Logger)
		doc.ownsFonts = true
	}
	if doc.decoder == nil {
		doc.decoder = image.DefaultDecoder
	}
	return doc
}

// SetInfo sets the document information (title, author, and so on).
// If info.Producer is empty, it is set to [Producer] when the document is
// closed.  Missing creation and modification dates are set to the
// time of closing.
func (doc *Document) SetInfo(info *pdf.Info) error {
	if doc.closed {
		return &pdf.StateError{Op: "SetInfo", Err: pdf.ErrClosed}
	}
	if info == nil {
		doc.info = pdf.Info{}
	} else {
		doc.info = *info
	}
	return nil
}

// SetLanguage sets the natural language of the document text.
func (doc *Document) SetLanguage(lang language.Tag) error {
	if doc.closed {
		return &pdf.StateError{Op: "SetLanguage", Err: pdf.ErrClosed}
	}
	doc.lang = lang
	return nil
}

// NumPages returns the number of pages created so far.
func (doc *Document) NumPages() int {
	return len(doc.pages)
}

// DrawPage adds a new page to the document and calls fn to draw its
// contents.  The page is finished when fn returns, also if fn returns an
// error or panics.  If fn fails, the error returned by fn is reported and
// any error from finishing the page is discarded.
func (doc *Document) DrawPage(width, height float64, fn func(p *Painter) error) (err error) {
	page, err := doc.NewPage(width, height)
	if err != nil {
		return err
	}
	p := doc.NewPainter()
	err = p.SetPage(page)
	if err != nil {
		return err
	}

	defer func() {
		if page.IsFinished() {
			return
		}
		finishErr := doc.finishPage(page.index)
		if err == nil {
			err = finishErr
		}
	}()

	return fn(p)
}

// Close finishes the document.  It writes the page tree, the document
// catalog, the document information and the cross-reference table, and
// then closes the output.
//
// All pages must be finished before Close is called.  If there are
// unfinished pages, a *pdf.StateError is returned and the document stays
// open, so that the caller can finish the pages and try again.
//
// If writing a page has failed earlier, the file cannot be completed.
// In this case Close only closes the output and returns the original error.
// The output is also closed if writing the trailer fails.
func (doc *Document) Close() error {
	if doc.closed {
		return &pdf.StateError{Op: "close document", Err: pdf.ErrClosed}
	}
	if doc.failed != nil {
		doc.closed = true
		err := errors.Join(doc.failed, doc.out.Abort())
		return doc.release(err)
	}
	var open []string
	for i, p := range doc.pages {
		if !p.finished {
			open = append(open, fmt.Sprint(i+1))
		}
	}
	if len(open) > 0 {
		return &pdf.StateError{
			Op:  "close document",
			Err: fmt.Errorf("page %s: %w", strings.Join(open, ", "), pdf.ErrUnfinished),
		}
	}
	if len(doc.pages) == 0 {
		return &pdf.StateError{Op: "close document", Err: pdf.ErrNoPages}
	}

	doc.closed = true
	err := doc.writeTrailer()
	if err != nil {
		err = errors.Join(err, doc.out.Abort())
	}
	return doc.release(err)
}

func (doc *Document) release(err error) error {
	doc.fontByFace = nil
	doc.fontByName = nil
	if doc.ownsFonts {
		err = errors.Join(err, doc.fonts.Close())
	}
	return err
}

func (doc *Document) writeTrailer() error {
	pagesRef, err := doc.tree.Close()
	if err != nil {
		return err
	}

	now := time.Now()
	info := doc.info
	if info.Producer == "" {
		info.Producer = Producer
	}
	if info.CreationDate.IsZero() {
		info.CreationDate = now
	}
	if info.ModDate.IsZero() {
		info.ModDate = now
	}
	infoRef, err := doc.out.Write(info.AsDict())
	if err != nil {
		return err
	}

	catalog := &pdf.Catalog{
		Pages: pagesRef,
		Lang:  doc.lang,
	}
	if doc.xmp {
		packet, err := metadata.FromInfo(&info, doc.out.Version(), doc.lang)
		if err != nil {
			return err
		}
		catalog.Metadata, err = metadata.Embed(doc.out, packet)
		if err != nil {
			return err
		}
	}
	catRef, err := doc.out.Write(catalog.AsDict())
	if err != nil {
		return err
	}

	return doc.out.Close(catRef, infoRef)
}
