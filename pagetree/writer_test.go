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

package pagetree

import (
	"bytes"
	"errors"
	"testing"

	"seehuhn.de/go/streampdf/internal/pdftest"
	"seehuhn.de/go/streampdf/pdf"
)

func TestPageOrder(t *testing.T) {
	for _, numPages := range []int{1, 2, 15, 16, 17, 40, 300} {
		buf := &bytes.Buffer{}
		w, err := pdf.NewWriter(buf, nil)
		if err != nil {
			t.Fatal(err)
		}

		tree := NewWriter(w)
		for i := 0; i < numPages; i++ {
			_, err := tree.AppendPage(pdf.Dict{
				"MediaBox": &pdf.Rectangle{URx: 100, URy: 100},
				"PageNo":   pdf.Integer(i),
			})
			if err != nil {
				t.Fatal(err)
			}
		}
		if tree.NumPages() != numPages {
			t.Errorf("NumPages() = %d, want %d", tree.NumPages(), numPages)
		}
		root, err := tree.Close()
		if err != nil {
			t.Fatal(err)
		}
		cat, err := w.Write((&pdf.Catalog{Pages: root}).AsDict())
		if err != nil {
			t.Fatal(err)
		}
		err = w.Close(cat, pdf.Reference{})
		if err != nil {
			t.Fatal(err)
		}

		file, err := pdftest.Parse(buf.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		rootDict, err := file.Catalog()
		if err != nil {
			t.Fatal(err)
		}
		pagesDict, err := file.GetDict(rootDict["Pages"])
		if err != nil {
			t.Fatal(err)
		}
		if pagesDict["Count"] != int64(numPages) {
			t.Errorf("%d pages: root /Count is %v", numPages, pagesDict["Count"])
		}
		if _, hasParent := pagesDict["Parent"]; hasParent {
			t.Errorf("%d pages: root has a parent", numPages)
		}
		pages, err := file.Pages()
		if err != nil {
			t.Fatal(err)
		}
		if len(pages) != numPages {
			t.Fatalf("found %d pages, want %d", len(pages), numPages)
		}
		for i, page := range pages {
			if page["PageNo"] != int64(i) {
				t.Errorf("page %d has number %v", i, page["PageNo"])
			}
			if _, ok := page["Parent"].(pdftest.Ref); !ok {
				t.Errorf("page %d has no parent", i)
			}
		}
		kids, _ := pagesDict["Kids"].([]any)
		if len(kids) > maxDegree {
			t.Errorf("root has %d kids", len(kids))
		}
	}
}

func TestEmptyTree(t *testing.T) {
	w, err := pdf.NewWriter(&bytes.Buffer{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	tree := NewWriter(w)
	_, err = tree.Close()
	if !errors.Is(err, pdf.ErrNoPages) {
		t.Errorf("expected ErrNoPages, got %v", err)
	}
}

func TestAppendAfterClose(t *testing.T) {
	w, err := pdf.NewWriter(&bytes.Buffer{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	tree := NewWriter(w)
	_, err = tree.AppendPage(pdf.Dict{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = tree.Close()
	if err != nil {
		t.Fatal(err)
	}
	_, err = tree.AppendPage(pdf.Dict{})
	if !errors.Is(err, pdf.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}
