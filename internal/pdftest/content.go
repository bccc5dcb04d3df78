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

package pdftest

import (
	"errors"
	"io"
)

// Op is one operator of a content stream, together with its operands.
type Op struct {
	Name string
	Args []any
}

// Ops splits a content stream into operators.
func Ops(content []byte) ([]Op, error) {
	l := &lexer{data: content}
	var res []Op
	var args []any
	for {
		obj, err := l.object()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if op, ok := obj.(Operator); ok {
			res = append(res, Op{Name: string(op), Args: args})
			args = nil
			continue
		}
		args = append(args, obj)
	}
	if len(args) > 0 {
		return nil, errors.New("operands without operator at end of content stream")
	}
	return res, nil
}

// ShownStrings returns the raw strings shown by the Tj operators of a
// content stream, in order.
func ShownStrings(content []byte) ([][]byte, error) {
	ops, err := Ops(content)
	if err != nil {
		return nil, err
	}
	var res [][]byte
	for _, op := range ops {
		if op.Name != "Tj" || len(op.Args) != 1 {
			continue
		}
		if s, ok := op.Args[0].([]byte); ok {
			res = append(res, s)
		}
	}
	return res, nil
}

// Float converts a numeric operand to float64.
func Float(obj any) (float64, bool) {
	switch x := obj.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
