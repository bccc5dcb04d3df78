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

// Package paper provides the standard paper sizes.
//
// All sizes are given in PDF points (1/72 inch).  The PDF coordinate system
// has its origin in the bottom left corner of the page, with the y-axis
// pointing upwards.
package paper

import (
	"fmt"
	"strings"

	"seehuhn.de/go/streampdf/pdf"
)

// Name identifies a standard paper size.
type Name int

// The supported paper sizes.
const (
	A4 Name = iota
	A3
	A5
	B5
	Letter
	Legal
	Tabloid
	Executive
)

type size struct {
	name          string
	width, height float64
}

var sizes = []size{
	A4:        {"A4", 595, 842},
	A3:        {"A3", 842, 1191},
	A5:        {"A5", 420, 595},
	B5:        {"B5", 499, 709},
	Letter:    {"Letter", 612, 792},
	Legal:     {"Legal", 612, 1008},
	Tabloid:   {"Tabloid", 792, 1224},
	Executive: {"Executive", 522, 756},
}

// All lists all supported paper sizes.
func All() []Name {
	res := make([]Name, len(sizes))
	for i := range sizes {
		res[i] = Name(i)
	}
	return res
}

func (n Name) String() string {
	if n < 0 || int(n) >= len(sizes) {
		return fmt.Sprintf("paper.Name(%d)", int(n))
	}
	return sizes[n].name
}

// Standard returns the width and height of the given paper size.
// If landscape is true, width and height are swapped so that the page is
// wider than it is tall.  Unknown names give the size of A4 paper.
func Standard(n Name, landscape bool) (width, height float64) {
	if n < 0 || int(n) >= len(sizes) {
		n = A4
	}
	width, height = sizes[n].width, sizes[n].height
	if landscape {
		width, height = height, width
	}
	return width, height
}

// Rect returns the paper size as a PDF rectangle, suitable for use as a
// page's media box.
func Rect(n Name, landscape bool) *pdf.Rectangle {
	w, h := Standard(n, landscape)
	return &pdf.Rectangle{URx: w, URy: h}
}

// Parse converts a paper size name like "letter" or "A4" into a Name.
// Case is ignored.
func Parse(s string) (Name, error) {
	for i, sz := range sizes {
		if strings.EqualFold(sz.name, s) {
			return Name(i), nil
		}
	}
	return 0, fmt.Errorf("unknown paper size %q", s)
}
