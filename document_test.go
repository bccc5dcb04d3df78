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
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/text/language"

	"seehuhn.de/go/streampdf/font"
	"seehuhn.de/go/streampdf/internal/pdftest"
	"seehuhn.de/go/streampdf/layout"
	"seehuhn.de/go/streampdf/paper"
	"seehuhn.de/go/streampdf/pdf"
)

func testOptions() *Options {
	return &Options{
		Fonts: font.NewProvider(font.MapMatcher{"Go Mono": gomono.TTF}, nil),
	}
}

func parseOutput(t *testing.T, data []byte) *pdftest.File {
	t.Helper()
	file, err := pdftest.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	return file
}

// pageContents returns the decoded content streams of all pages.
func pageContents(t *testing.T, file *pdftest.File) [][]byte {
	t.Helper()
	pages, err := file.Pages()
	if err != nil {
		t.Fatal(err)
	}
	var res [][]byte
	for _, page := range pages {
		body, err := file.Decode(page["Contents"])
		if err != nil {
			t.Fatal(err)
		}
		res = append(res, body)
	}
	return res
}

func TestRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	doc, err := Create(buf, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	mono, err := doc.CreateFont("Go Mono")
	if err != nil {
		t.Fatal(err)
	}
	err = doc.SetInfo(&pdf.Info{Title: "Round Trip", Author: "Test"})
	if err != nil {
		t.Fatal(err)
	}
	err = doc.DrawPage(612, 792, func(p *Painter) error {
		err := p.SetFont(mono, 12)
		if err != nil {
			return err
		}
		return p.DrawText(72, 700, "Hello Wörld")
	})
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}

	file := parseOutput(t, buf.Bytes())
	if file.Version != "1.7" {
		t.Errorf("wrong version %q", file.Version)
	}
	pages, err := file.Pages()
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	if d := cmp.Diff(pages[0]["MediaBox"], []any{int64(0), int64(0), int64(612), int64(792)}); d != "" {
		t.Errorf("MediaBox (-got +want):\n%s", d)
	}

	body := pageContents(t, file)[0]
	shown, err := pdftest.ShownStrings(body)
	if err != nil {
		t.Fatal(err)
	}
	if len(shown) != 1 || font.DecodeWinAnsi(shown[0]) != "Hello Wörld" {
		t.Errorf("unexpected text %q", shown)
	}

	res, err := file.GetDict(pages[0]["Resources"])
	if err != nil {
		t.Fatal(err)
	}
	fonts, err := file.GetDict(res["Font"])
	if err != nil {
		t.Fatal(err)
	}
	fontDict, err := file.GetDict(fonts["F1"])
	if err != nil {
		t.Fatal(err)
	}
	if fontDict["Subtype"] != pdftest.Name("TrueType") {
		t.Errorf("wrong font type %v", fontDict["Subtype"])
	}

	info, err := file.GetDict(file.Trailer["Info"])
	if err != nil {
		t.Fatal(err)
	}
	for key, want := range map[pdftest.Name]string{
		"Title":    "Round Trip",
		"Author":   "Test",
		"Producer": Producer,
	} {
		got, _ := info[key].([]byte)
		if string(got) != want {
			t.Errorf("info %s = %q, want %q", key, got, want)
		}
	}
	if _, ok := info["CreationDate"]; !ok {
		t.Error("missing creation date")
	}
	if _, ok := file.Trailer["ID"]; !ok {
		t.Error("missing file ID")
	}
}

func TestFinishTwice(t *testing.T) {
	doc, err := Create(&bytes.Buffer{}, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	page, err := doc.NewPage(100, 100)
	if err != nil {
		t.Fatal(err)
	}
	p := doc.NewPainter()
	err = p.SetPage(page)
	if err != nil {
		t.Fatal(err)
	}
	err = p.FinishPage()
	if err != nil {
		t.Fatal(err)
	}
	if !page.IsFinished() {
		t.Error("page not marked as finished")
	}

	err = p.FinishPage()
	var stateErr *pdf.StateError
	if !errors.As(err, &stateErr) || !errors.Is(err, pdf.ErrFinished) {
		t.Errorf("second FinishPage: got %v", err)
	}
	err = p.Rectangle(0, 0, 10, 10)
	if !errors.Is(err, pdf.ErrFinished) {
		t.Errorf("drawing on finished page: got %v", err)
	}
	err = p.SetPage(page)
	if !errors.Is(err, pdf.ErrFinished) {
		t.Errorf("binding finished page: got %v", err)
	}
}

func TestCloseUnfinished(t *testing.T) {
	buf := &bytes.Buffer{}
	doc, err := Create(buf, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	page, err := doc.NewPage(100, 100)
	if err != nil {
		t.Fatal(err)
	}

	err = doc.Close()
	var stateErr *pdf.StateError
	if !errors.As(err, &stateErr) || !errors.Is(err, pdf.ErrUnfinished) {
		t.Fatalf("Close with unfinished page: got %v", err)
	}

	// the document stays usable
	p := doc.NewPainter()
	err = p.SetPage(page)
	if err != nil {
		t.Fatal(err)
	}
	err = p.FinishPage()
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}
	parseOutput(t, buf.Bytes())
}

func TestClose(t *testing.T) {
	doc, err := Create(&bytes.Buffer{}, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Close()
	if !errors.Is(err, pdf.ErrNoPages) {
		t.Errorf("Close without pages: got %v", err)
	}

	err = doc.DrawPage(10, 10, func(*Painter) error { return nil })
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}

	err = doc.Close()
	if !errors.Is(err, pdf.ErrClosed) {
		t.Errorf("second Close: got %v", err)
	}
	_, err = doc.NewPage(10, 10)
	if !errors.Is(err, pdf.ErrClosed) {
		t.Errorf("NewPage after Close: got %v", err)
	}
	_, err = doc.CreateFont("Go Mono")
	if !errors.Is(err, pdf.ErrClosed) {
		t.Errorf("CreateFont after Close: got %v", err)
	}
}

func TestPageSize(t *testing.T) {
	doc, err := Create(&bytes.Buffer{}, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	for _, size := range [][2]float64{{0, 100}, {100, -1}, {math.NaN(), 10}, {math.Inf(1), 10}} {
		_, err := doc.NewPage(size[0], size[1])
		var resErr *pdf.ResourceError
		if !errors.As(err, &resErr) {
			t.Errorf("NewPage(%g, %g): got %v", size[0], size[1], err)
		}
	}
	if doc.NumPages() != 0 {
		t.Errorf("invalid pages were added")
	}
}

func TestPainterState(t *testing.T) {
	doc, err := Create(&bytes.Buffer{}, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	p := doc.NewPainter()
	err = p.Stroke()
	if !errors.Is(err, pdf.ErrNoPage) {
		t.Errorf("drawing without page: got %v", err)
	}

	page1, _ := doc.NewPage(100, 100)
	page2, _ := doc.NewPage(100, 100)
	err = p.SetPage(page1)
	if err != nil {
		t.Fatal(err)
	}
	err = p.DrawText(10, 10, "x")
	if !errors.Is(err, pdf.ErrNoFont) {
		t.Errorf("text without font: got %v", err)
	}
	err = p.SetPage(page2)
	if !errors.Is(err, pdf.ErrUnfinished) {
		t.Errorf("rebinding with unfinished page: got %v", err)
	}

	other, err := Create(&bytes.Buffer{}, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	otherPage, _ := other.NewPage(100, 100)
	err = p.SetPage(otherPage)
	var stateErr *pdf.StateError
	if !errors.As(err, &stateErr) {
		t.Errorf("binding page of other document: got %v", err)
	}
}

func TestCenteredText(t *testing.T) {
	buf := &bytes.Buffer{}
	opt := testOptions()
	opt.HumanReadable = true
	doc, err := Create(buf, opt)
	if err != nil {
		t.Fatal(err)
	}
	mono, err := doc.CreateFont("Go Mono")
	if err != nil {
		t.Fatal(err)
	}

	width, height := paper.Standard(paper.Letter, true)
	if width != 792 || height != 612 {
		t.Fatalf("wrong Letter landscape size %gx%g", width, height)
	}
	err = doc.DrawPage(width, height, func(p *Painter) error {
		err := p.SetFont(mono, 20)
		if err != nil {
			return err
		}
		return p.DrawTextAligned(0, 300, width, "X", layout.Center)
	})
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}

	body := pageContents(t, parseOutput(t, buf.Bytes()))[0]
	ops, err := pdftest.Ops(body)
	if err != nil {
		t.Fatal(err)
	}
	wantX := (width - mono.StringWidth(20, "X")) / 2
	found := false
	for _, op := range ops {
		if op.Name != "Tm" || len(op.Args) != 6 {
			continue
		}
		found = true
		x, _ := pdftest.Float(op.Args[4])
		y, _ := pdftest.Float(op.Args[5])
		if math.Abs(x-wantX) > 1e-3 || y != 300 {
			t.Errorf("text at (%g, %g), want (%g, 300)", x, y, wantX)
		}
	}
	if !found {
		t.Error("no text positioning operator found")
	}
}

func TestMultiLineText(t *testing.T) {
	cases := []struct {
		boxHeight float64 // in units of the line spacing
		want      []string
	}{
		{3, []string{"aaaa bbbb", "cccc dddd", "e"}},
		{2.5, []string{"aaaa bbbb", "cccc dddd"}},
		{0.5, nil},
	}
	for _, test := range cases {
		buf := &bytes.Buffer{}
		doc, err := Create(buf, testOptions())
		if err != nil {
			t.Fatal(err)
		}
		mono, err := doc.CreateFont("Go Mono")
		if err != nil {
			t.Fatal(err)
		}
		charWidth := mono.StringWidth(10, "a")
		ls := mono.LineSpacing(10)
		err = doc.DrawPage(500, 500, func(p *Painter) error {
			err := p.SetFont(mono, 10)
			if err != nil {
				return err
			}
			return p.DrawMultiLineText(10, 10, 10*charWidth, test.boxHeight*ls,
				"aaaa bbbb cccc dddd e", layout.Left, layout.Top)
		})
		if err != nil {
			t.Fatal(err)
		}
		err = doc.Close()
		if err != nil {
			t.Fatal(err)
		}

		body := pageContents(t, parseOutput(t, buf.Bytes()))[0]
		shown, err := pdftest.ShownStrings(body)
		if err != nil {
			t.Fatal(err)
		}
		var got []string
		for _, s := range shown {
			got = append(got, string(s))
		}
		if d := cmp.Diff(got, test.want); d != "" {
			t.Errorf("box height %g (-got +want):\n%s", test.boxHeight, d)
		}
	}
}

func TestPageOrder(t *testing.T) {
	buf := &bytes.Buffer{}
	doc, err := Create(buf, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	page1, _ := doc.NewPage(100, 100)
	page2, _ := doc.NewPage(200, 100)
	page3, _ := doc.NewPage(300, 100)
	for _, page := range []Page{page3, page1, page2} {
		p := doc.NewPainter()
		err := p.SetPage(page)
		if err != nil {
			t.Fatal(err)
		}
		err = p.FinishPage()
		if err != nil {
			t.Fatal(err)
		}
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}

	pages, err := parseOutput(t, buf.Bytes()).Pages()
	if err != nil {
		t.Fatal(err)
	}
	var widths []int64
	for _, page := range pages {
		box, _ := page["MediaBox"].([]any)
		w, _ := box[2].(int64)
		widths = append(widths, w)
	}
	if d := cmp.Diff(widths, []int64{100, 200, 300}); d != "" {
		t.Errorf("page order (-got +want):\n%s", d)
	}
}

func TestFontSharing(t *testing.T) {
	buf := &bytes.Buffer{}
	doc, err := Create(buf, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	arial, err := doc.CreateFont("Arial")
	if err != nil {
		t.Fatal(err)
	}
	helvetica, err := doc.CreateFont("Helvetica")
	if err != nil {
		t.Fatal(err)
	}
	if !arial.IsFallback() || arial != helvetica {
		t.Error("fallback fonts are not shared")
	}
	mono1, _ := doc.CreateFont("Go Mono")
	mono2, _ := doc.CreateFont("go mono")
	if mono1 != mono2 || mono1 == arial {
		t.Error("wrong font handles")
	}

	for i := 0; i < 2; i++ {
		err = doc.DrawPage(200, 200, func(p *Painter) error {
			for _, f := range []Font{arial, helvetica, mono1} {
				err := p.SetFont(f, 10)
				if err != nil {
					return err
				}
				err = p.DrawText(10, 10, "abc")
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}

	file := parseOutput(t, buf.Bytes())
	pages, err := file.Pages()
	if err != nil {
		t.Fatal(err)
	}
	var refs []pdftest.Ref
	for _, page := range pages {
		res, err := file.GetDict(page["Resources"])
		if err != nil {
			t.Fatal(err)
		}
		fonts, err := file.GetDict(res["Font"])
		if err != nil {
			t.Fatal(err)
		}
		if len(fonts) != 2 {
			t.Errorf("page uses %d fonts, want 2", len(fonts))
		}
		refs = append(refs, fonts["F1"].(pdftest.Ref))
	}
	if refs[0] != refs[1] {
		t.Error("font embedded twice")
	}
	numFontFiles := bytes.Count(buf.Bytes(), []byte("/FontFile2"))
	if numFontFiles != 2 {
		t.Errorf("found %d embedded font files, want 2", numFontFiles)
	}
}

func TestMetadata(t *testing.T) {
	buf := &bytes.Buffer{}
	opt := testOptions()
	opt.XMP = true
	opt.Language = language.German
	doc, err := Create(buf, opt)
	if err != nil {
		t.Fatal(err)
	}
	err = doc.SetInfo(&pdf.Info{Title: "Testdatei"})
	if err != nil {
		t.Fatal(err)
	}
	err = doc.DrawPage(10, 10, func(*Painter) error { return nil })
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}

	file := parseOutput(t, buf.Bytes())
	cat, err := file.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	lang, _ := cat["Lang"].([]byte)
	if string(lang) != "de" {
		t.Errorf("wrong language %q", lang)
	}
	body, err := file.Decode(cat["Metadata"])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(body, []byte("Testdatei")) {
		t.Error("title missing from XMP metadata")
	}
}

func TestCreateFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "test.pdf")
	doc, err := CreateFile(name, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	err = doc.DrawPage(100, 100, func(p *Painter) error {
		err := p.Rectangle(10, 10, 80, 80)
		if err != nil {
			return err
		}
		return p.Stroke()
	})
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	parseOutput(t, data)

	_, err = CreateFile(filepath.Join(t.TempDir(), "missing", "test.pdf"), testOptions())
	var resErr *pdf.ResourceError
	if !errors.As(err, &resErr) {
		t.Errorf("creating file in missing directory: got %v", err)
	}
}

var errDiskFull = errors.New("disk full")

// failingSink rejects all writes while fail is set.
type failingSink struct {
	bytes.Buffer
	fail   bool
	closed bool
}

func (s *failingSink) Write(p []byte) (int, error) {
	if s.fail {
		return 0, errDiskFull
	}
	return s.Buffer.Write(p)
}

func (s *failingSink) Close() error {
	s.closed = true
	return nil
}

func TestWriteFailure(t *testing.T) {
	sink := &failingSink{}
	doc, err := Create(sink, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	mono, err := doc.CreateFont("Go Mono")
	if err != nil {
		t.Fatal(err)
	}

	var pages []Page
	for i := 0; i < 2; i++ {
		page, err := doc.NewPage(200, 200)
		if err != nil {
			t.Fatal(err)
		}
		p := doc.NewPainter()
		err = p.SetPage(page)
		if err != nil {
			t.Fatal(err)
		}
		err = p.SetFont(mono, 10)
		if err != nil {
			t.Fatal(err)
		}
		err = p.DrawText(10, 10, "text")
		if err != nil {
			t.Fatal(err)
		}
		pages = append(pages, page)
	}

	// a single write fails while the first page is written
	sink.fail = true
	err = doc.finishPage(pages[0].index)
	sink.fail = false
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("finishing page 1: got %v", err)
	}
	if !pages[0].IsFinished() {
		t.Error("page 1 is not finished")
	}

	err = doc.finishPage(pages[1].index)
	if !errors.Is(err, errDiskFull) {
		t.Errorf("finishing page 2: got %v", err)
	}
	err = doc.DrawPage(100, 100, func(p *Painter) error { return nil })
	if !errors.Is(err, errDiskFull) {
		t.Errorf("DrawPage: got %v", err)
	}

	err = doc.Close()
	if !errors.Is(err, errDiskFull) {
		t.Errorf("Close: got %v", err)
	}
	if !sink.closed {
		t.Error("output was not closed")
	}
	if bytes.Contains(sink.Bytes(), []byte("%%EOF")) {
		t.Error("incomplete file has a trailer")
	}
	if err := doc.Close(); !errors.Is(err, pdf.ErrClosed) {
		t.Errorf("second Close: got %v", err)
	}
}

func TestTrailerFailure(t *testing.T) {
	sink := &failingSink{}
	doc, err := Create(sink, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	err = doc.DrawPage(100, 100, func(p *Painter) error {
		return p.Rectangle(10, 10, 80, 80)
	})
	if err != nil {
		t.Fatal(err)
	}

	sink.fail = true
	err = doc.Close()
	if !errors.Is(err, errDiskFull) {
		t.Errorf("Close: got %v", err)
	}
	if !sink.closed {
		t.Error("output was not closed after failed trailer")
	}
}
