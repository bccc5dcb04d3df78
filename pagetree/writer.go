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

// Package pagetree writes balanced PDF page trees.
//
// Page dictionaries are held back until their parent node is known.  Once
// maxDegree siblings have accumulated, the siblings are written to the file
// together with a freshly allocated parent, so that at most
// maxDegree-1 nodes per tree level are kept in memory.
package pagetree

import (
	"errors"

	"seehuhn.de/go/streampdf/pdf"
)

const maxDegree = 16

// Writer writes a page tree to a PDF file.
type Writer struct {
	out *pdf.Writer

	// levels[0] holds pending page objects, levels[i] for i>0 holds
	// pending /Pages nodes of height i.
	levels [][]*node

	numPages int
	isClosed bool
}

type node struct {
	ref   pdf.Reference
	dict  pdf.Dict
	count int
}

// NewWriter creates a new page tree which adds pages to the PDF file w.
func NewWriter(w *pdf.Writer) *Writer {
	return &Writer{
		out: w,
	}
}

// AppendPage adds a page to the tree.  The /Type and /Parent entries of
// the page dictionary are filled in automatically.  The returned reference
// is where the page dictionary will be stored; the dictionary itself may
// only be written to the file at a later time.
func (t *Writer) AppendPage(pageDict pdf.Dict) (pdf.Reference, error) {
	if t.isClosed {
		return pdf.Reference{}, &pdf.StateError{Op: "append page", Err: pdf.ErrClosed}
	}

	dict := make(pdf.Dict, len(pageDict)+2)
	for key, val := range pageDict {
		dict[key] = val
	}
	dict["Type"] = pdf.Name("Page")

	ref := t.out.Alloc()
	err := t.push(0, &node{ref: ref, dict: dict, count: 1})
	if err != nil {
		return pdf.Reference{}, err
	}
	t.numPages++
	return ref, nil
}

// NumPages returns the number of pages added so far.
func (t *Writer) NumPages() int {
	return t.numPages
}

// Close writes all pending nodes and returns the reference of the root of
// the page tree.  The tree must contain at least one page.
func (t *Writer) Close() (pdf.Reference, error) {
	if t.isClosed {
		return pdf.Reference{}, &pdf.StateError{Op: "close page tree", Err: pdf.ErrClosed}
	}
	if t.numPages == 0 {
		return pdf.Reference{}, &pdf.StateError{Op: "close page tree", Err: pdf.ErrNoPages}
	}

	for level := 0; level < len(t.levels); level++ {
		nodes := t.levels[level]
		isTop := level == len(t.levels)-1
		if isTop && level > 0 && len(nodes) == 1 {
			root := nodes[0]
			err := t.out.Put(root.ref, root.dict)
			if err != nil {
				return pdf.Reference{}, err
			}
			t.levels = nil
			t.isClosed = true
			return root.ref, nil
		}
		if len(nodes) > 0 {
			err := t.collapse(level)
			if err != nil {
				return pdf.Reference{}, err
			}
		}
	}
	return pdf.Reference{}, errors.New("page tree has no root")
}

func (t *Writer) push(level int, n *node) error {
	for len(t.levels) <= level {
		t.levels = append(t.levels, nil)
	}
	t.levels[level] = append(t.levels[level], n)
	if len(t.levels[level]) < maxDegree {
		return nil
	}
	return t.collapse(level)
}

// collapse writes all pending nodes at the given level and adds a new
// parent node for them one level up.
func (t *Writer) collapse(level int) error {
	nodes := t.levels[level]
	t.levels[level] = nil

	parentRef := t.out.Alloc()
	kids := make(pdf.Array, len(nodes))
	count := 0
	for i, n := range nodes {
		n.dict["Parent"] = parentRef
		err := t.out.Put(n.ref, n.dict)
		if err != nil {
			return err
		}
		kids[i] = n.ref
		count += n.count
	}

	parent := &node{
		ref: parentRef,
		dict: pdf.Dict{
			"Type":  pdf.Name("Pages"),
			"Kids":  kids,
			"Count": pdf.Integer(count),
		},
		count: count,
	}
	return t.push(level+1, parent)
}
