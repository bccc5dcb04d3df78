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

// Package pdftest implements a small PDF reader, used by the tests to check
// the files produced by this module.
//
// The reader only understands the subset of PDF written by this module:
// a classical cross-reference table, uncompressed objects and
// FlateDecode-compressed streams.
package pdftest

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Ref is a reference to an indirect object.
type Ref struct {
	Number     uint32
	Generation uint16
}

// Name is a PDF name, without the leading slash.
type Name string

// Operator is a bare keyword, for example a content stream operator.
type Operator string

// Dict is a PDF dictionary.
type Dict map[Name]any

// Stream is a PDF stream, with the undecoded stream data.
type Stream struct {
	Dict Dict
	Data []byte
}

// File is a parsed PDF file.
type File struct {
	Data    []byte
	Version string
	Offsets map[uint32]int64
	Trailer Dict
}

// Parse reads the header, the cross-reference table and the trailer of a
// PDF file.  Every object listed in the cross-reference table is checked to
// start at the recorded offset.
func Parse(data []byte) (*File, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, errors.New("missing PDF header")
	}
	eol := bytes.IndexByte(data, '\n')
	if eol < 0 {
		return nil, errors.New("malformed PDF header")
	}
	f := &File{
		Data:    data,
		Version: string(data[5:eol]),
		Offsets: make(map[uint32]int64),
	}

	trimmed := bytes.TrimRight(data, "\r\n")
	if !bytes.HasSuffix(trimmed, []byte("%%EOF")) {
		return nil, errors.New("missing %%EOF marker")
	}
	idx := bytes.LastIndex(data, []byte("startxref"))
	if idx < 0 {
		return nil, errors.New("missing startxref")
	}
	l := &lexer{data: data, pos: idx + len("startxref")}
	obj, err := l.object()
	if err != nil {
		return nil, err
	}
	xrefPos, ok := obj.(int64)
	if !ok || xrefPos < 0 || xrefPos >= int64(len(data)) {
		return nil, fmt.Errorf("invalid startxref value %v", obj)
	}

	l.pos = int(xrefPos)
	if !l.keyword("xref") {
		return nil, fmt.Errorf("no xref table at offset %d", xrefPos)
	}
	for {
		l.skipSpace()
		if l.keyword("trailer") {
			break
		}
		start, err1 := l.object()
		count, err2 := l.object()
		if err1 != nil || err2 != nil {
			return nil, errors.New("malformed xref subsection header")
		}
		s, _ := start.(int64)
		n, _ := count.(int64)
		l.skipSpace()
		for i := int64(0); i < n; i++ {
			if l.pos+20 > len(data) {
				return nil, io.ErrUnexpectedEOF
			}
			entry := string(data[l.pos : l.pos+20])
			l.pos += 20
			if len(entry) != 20 || entry[18:] != "\r\n" && entry[18:] != " \n" {
				return nil, fmt.Errorf("malformed xref entry %q", entry)
			}
			if entry[17] != 'n' {
				continue
			}
			pos, err := strconv.ParseInt(entry[:10], 10, 64)
			if err != nil {
				return nil, err
			}
			f.Offsets[uint32(s+i)] = pos
		}
	}
	trailer, err := l.object()
	if err != nil {
		return nil, err
	}
	f.Trailer, ok = trailer.(Dict)
	if !ok {
		return nil, errors.New("trailer is not a dictionary")
	}

	for num, pos := range f.Offsets {
		prefix := []byte(strconv.FormatUint(uint64(num), 10) + " 0 obj")
		if pos >= int64(len(data)) || !bytes.HasPrefix(data[pos:], prefix) {
			return nil, fmt.Errorf("object %d not found at offset %d", num, pos)
		}
	}
	return f, nil
}

// Get reads the indirect object with the given reference.
func (f *File) Get(ref Ref) (any, error) {
	pos, ok := f.Offsets[ref.Number]
	if !ok {
		return nil, fmt.Errorf("object %d not in xref table", ref.Number)
	}
	l := &lexer{data: f.Data, pos: int(pos)}
	num, _ := l.object()
	gen, _ := l.object()
	if num != int64(ref.Number) || gen != int64(ref.Generation) || !l.keyword("obj") {
		return nil, fmt.Errorf("malformed object header for %d", ref.Number)
	}
	obj, err := l.object()
	if err != nil {
		return nil, err
	}
	dict, isDict := obj.(Dict)
	if !isDict {
		return obj, nil
	}
	save := l.pos
	if !l.keyword("stream") {
		l.pos = save
		return obj, nil
	}
	if l.pos < len(f.Data) && f.Data[l.pos] == '\r' {
		l.pos++
	}
	if l.pos < len(f.Data) && f.Data[l.pos] == '\n' {
		l.pos++
	}
	lengthObj, err := f.Resolve(dict["Length"])
	if err != nil {
		return nil, err
	}
	length, ok := lengthObj.(int64)
	if !ok || l.pos+int(length) > len(f.Data) {
		return nil, fmt.Errorf("invalid stream length %v", lengthObj)
	}
	data := f.Data[l.pos : l.pos+int(length)]
	l.pos += int(length)
	if !l.keyword("endstream") {
		return nil, fmt.Errorf("stream %d: missing endstream", ref.Number)
	}
	return &Stream{Dict: dict, Data: data}, nil
}

// Resolve follows references until a direct object is found.
func (f *File) Resolve(obj any) (any, error) {
	for i := 0; i < 16; i++ {
		ref, ok := obj.(Ref)
		if !ok {
			return obj, nil
		}
		var err error
		obj, err = f.Get(ref)
		if err != nil {
			return nil, err
		}
	}
	return nil, errors.New("too many levels of indirection")
}

// GetDict resolves obj and checks that the result is a dictionary.
func (f *File) GetDict(obj any) (Dict, error) {
	obj, err := f.Resolve(obj)
	if err != nil {
		return nil, err
	}
	switch x := obj.(type) {
	case Dict:
		return x, nil
	case *Stream:
		return x.Dict, nil
	}
	return nil, fmt.Errorf("expected a dictionary but got %T", obj)
}

// Decode returns the decoded contents of a stream.
func (f *File) Decode(obj any) ([]byte, error) {
	obj, err := f.Resolve(obj)
	if err != nil {
		return nil, err
	}
	stm, ok := obj.(*Stream)
	if !ok {
		return nil, fmt.Errorf("expected a stream but got %T", obj)
	}
	switch filter := stm.Dict["Filter"]; filter {
	case nil:
		return stm.Data, nil
	case Name("FlateDecode"):
		r, err := zlib.NewReader(bytes.NewReader(stm.Data))
		if err != nil {
			return nil, err
		}
		return io.ReadAll(r)
	default:
		return nil, fmt.Errorf("unsupported filter %v", filter)
	}
}

// Catalog returns the document catalog.
func (f *File) Catalog() (Dict, error) {
	return f.GetDict(f.Trailer["Root"])
}

// Pages returns the page dictionaries in document order.
func (f *File) Pages() ([]Dict, error) {
	cat, err := f.Catalog()
	if err != nil {
		return nil, err
	}
	var res []Dict
	var walk func(obj any, depth int) error
	walk = func(obj any, depth int) error {
		if depth > 32 {
			return errors.New("page tree too deep")
		}
		node, err := f.GetDict(obj)
		if err != nil {
			return err
		}
		switch node["Type"] {
		case Name("Page"):
			res = append(res, node)
		case Name("Pages"):
			kids, _ := node["Kids"].([]any)
			for _, kid := range kids {
				err := walk(kid, depth+1)
				if err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("unexpected page tree node type %v", node["Type"])
		}
		return nil
	}
	err = walk(cat["Pages"], 0)
	if err != nil {
		return nil, err
	}
	return res, nil
}
