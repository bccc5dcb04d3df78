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

// Package content records the drawing operations of a page and
// serializes them into a PDF content stream.
//
// A Stream is append-only.  Once Finish has been called, the stream is
// immutable and all further operations fail with a *pdf.StateError.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/streampdf/pdf"
)

// Operator is a single PDF content stream operator, together with its
// operands.
type Operator struct {
	Name pdf.Name
	Args []pdf.Object
}

// Stream is the list of drawing operations for one page.
type Stream struct {
	ops      []Operator
	finished bool
}

// New returns an empty content stream.
func New() *Stream {
	return &Stream{}
}

// Len returns the number of operators recorded so far.
func (s *Stream) Len() int {
	return len(s.ops)
}

// IsFinished reports whether Finish has been called.
func (s *Stream) IsFinished() bool {
	return s.finished
}

// ErrNotFinite is returned when an operand is NaN or infinite.
// Such values cannot be represented in a content stream.
var ErrNotFinite = errors.New("operand is not a finite number")

func (s *Stream) addOp(op string, name pdf.Name, xs ...float64) error {
	if s.finished {
		return &pdf.StateError{Op: op, Err: pdf.ErrFinished}
	}
	args, err := numbers(op, xs...)
	if err != nil {
		return err
	}
	s.ops = append(s.ops, Operator{Name: name, Args: args})
	return nil
}

// SetFont selects the font resource and size for subsequent text.
//
// This implements the PDF text state operator "Tf".
func (s *Stream) SetFont(font pdf.Name, size float64) error {
	if s.finished {
		return &pdf.StateError{Op: "SetFont", Err: pdf.ErrFinished}
	}
	args, err := numbers("SetFont", size)
	if err != nil {
		return err
	}
	s.ops = append(s.ops, Operator{Name: "Tf", Args: append([]pdf.Object{font}, args...)})
	return nil
}

// ShowText draws the already encoded string text, with the baseline
// starting at (x, y).  The text is wrapped in its own text object.
//
// This uses the PDF operators "BT", "Tm", "Tj" and "ET".
func (s *Stream) ShowText(x, y float64, text []byte) error {
	if s.finished {
		return &pdf.StateError{Op: "ShowText", Err: pdf.ErrFinished}
	}
	M := matrix.Translate(x, y)
	args, err := numbers("ShowText", M[:]...)
	if err != nil {
		return err
	}
	s.ops = append(s.ops,
		Operator{Name: "BT"},
		Operator{Name: "Tm", Args: args},
		Operator{Name: "Tj", Args: []pdf.Object{pdf.String(text)}},
		Operator{Name: "ET"},
	)
	return nil
}

// Rectangle appends a closed rectangle to the current path.
//
// This implements the PDF path construction operator "re".
func (s *Stream) Rectangle(x, y, width, height float64) error {
	return s.addOp("Rectangle", "re", x, y, width, height)
}

// Stroke strokes the current path.
//
// This implements the PDF path painting operator "S".
func (s *Stream) Stroke() error {
	return s.addOp("Stroke", "S")
}

// Fill fills the current path, using the nonzero winding number rule.
//
// This implements the PDF path painting operator "f".
func (s *Stream) Fill() error {
	return s.addOp("Fill", "f")
}

// SetLineWidth sets the line width for stroking operations.
//
// This implements the PDF graphics state operator "w".
func (s *Stream) SetLineWidth(width float64) error {
	return s.addOp("SetLineWidth", "w", width)
}

// SetStrokeRGB sets the stroking colour in the DeviceRGB colour space.
// The components are in the range 0 to 1.
//
// This implements the PDF colour operator "RG".
func (s *Stream) SetStrokeRGB(r, g, b float64) error {
	return s.addOp("SetStrokeRGB", "RG", r, g, b)
}

// SetFillRGB sets the non-stroking colour in the DeviceRGB colour space.
// This colour is also used for text.
//
// This implements the PDF colour operator "rg".
func (s *Stream) SetFillRGB(r, g, b float64) error {
	return s.addOp("SetFillRGB", "rg", r, g, b)
}

// DrawXObject paints the named XObject, transformed by M.  For an image,
// M maps the unit square onto the area covered by the image.
//
// This uses the PDF operators "q", "cm", "Do" and "Q".
func (s *Stream) DrawXObject(name pdf.Name, M matrix.Matrix) error {
	if s.finished {
		return &pdf.StateError{Op: "DrawXObject", Err: pdf.ErrFinished}
	}
	args, err := numbers("DrawXObject", M[:]...)
	if err != nil {
		return err
	}
	s.ops = append(s.ops,
		Operator{Name: "q"},
		Operator{Name: "cm", Args: args},
		Operator{Name: "Do", Args: []pdf.Object{name}},
		Operator{Name: "Q"},
	)
	return nil
}

// Finish serializes the recorded operators.  After Finish has returned,
// the stream is immutable; calling Finish a second time fails.
func (s *Stream) Finish() ([]byte, error) {
	if s.finished {
		return nil, &pdf.StateError{Op: "Finish", Err: pdf.ErrFinished}
	}
	s.finished = true

	buf := &bytes.Buffer{}
	for _, op := range s.ops {
		for _, arg := range op.Args {
			err := arg.PDF(buf)
			if err != nil {
				return nil, err
			}
			buf.WriteByte(' ')
		}
		buf.WriteString(string(op.Name))
		buf.WriteByte('\n')
	}
	s.ops = nil
	return buf.Bytes(), nil
}

func numbers(op string, xs ...float64) ([]pdf.Object, error) {
	args := make([]pdf.Object, len(xs))
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%s: %g: %w", op, x, ErrNotFinite)
		}
		args[i] = pdf.Number(x)
	}
	return args, nil
}
