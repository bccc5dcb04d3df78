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

package pdf

import (
	"crypto/md5"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"time"
)

// Writer represents a PDF file open for writing.
//
// Objects are written to the output as soon as they are passed to the
// Writer.  Only the byte offsets of the objects are kept in memory, for the
// cross-reference table written by Close.
type Writer struct {
	w        *posWriter
	ver      Version
	id       [][]byte
	xref     map[uint32]int64
	nextRef  uint32
	inStream bool
	closed   bool
}

// WriterOptions allows to influence the way a PDF file is generated.
type WriterOptions struct {
	// Version is the PDF version written into the file header.
	// The default is PDF 1.7.
	Version Version

	// ID, if set, is used as the file identifier in the trailer.  It must
	// consist of two byte slices.  If ID is nil, an identifier is computed
	// from the current time and the file contents.
	ID [][]byte
}

var defaultWriterOptions = &WriterOptions{
	Version: V1_7,
}

// NewWriter prepares a PDF file for writing.
// The PDF header is written immediately.
func NewWriter(w io.Writer, opt *WriterOptions) (*Writer, error) {
	if opt == nil {
		opt = defaultWriterOptions
	}
	ver := opt.Version
	if ver == 0 {
		ver = V1_7
	}
	versionString, err := ver.ToString()
	if err != nil {
		return nil, err
	}
	if opt.ID != nil && len(opt.ID) != 2 {
		return nil, fmt.Errorf("invalid file ID: need 2 elements, got %d", len(opt.ID))
	}

	pdf := &Writer{
		w:       &posWriter{w: w, h: md5.New()},
		ver:     ver,
		id:      opt.ID,
		xref:    make(map[uint32]int64),
		nextRef: 1,
	}
	fmt.Fprintf(pdf.w.h, "%d\n", time.Now().UnixNano())

	_, err = fmt.Fprintf(pdf.w, "%%PDF-%s\n%%\x80\x80\x80\x80\n", versionString)
	if err != nil {
		return nil, &ResourceError{Op: "write PDF header", Err: err}
	}
	return pdf, nil
}

// Create creates the named PDF file and opens it for output.  If a previous
// file with the same name exists, it is overwritten.  After writing is
// complete, Close() must be called to write the trailer and to close the
// underlying file.
func Create(name string, opt *WriterOptions) (*Writer, error) {
	fd, err := os.Create(name)
	if err != nil {
		return nil, &ResourceError{Op: "create", Name: name, Err: err}
	}
	pdf, err := NewWriter(fd, opt)
	if err != nil {
		fd.Close()
		return nil, err
	}
	return pdf, nil
}

// Version returns the PDF version of the file being written.
func (pdf *Writer) Version() Version {
	return pdf.ver
}

// Alloc allocates an object number for an indirect object.
// Object numbers are allocated sequentially, starting at 1.
func (pdf *Writer) Alloc() Reference {
	ref := Reference{Number: pdf.nextRef}
	pdf.nextRef++
	return ref
}

// Put writes obj to the PDF file, as the indirect object with the given
// reference.  The reference must have been allocated using Alloc and
// each reference can only be written once.
func (pdf *Writer) Put(ref Reference, obj Object) error {
	err := pdf.checkWritable("write object", ref)
	if err != nil {
		return err
	}

	pos := pdf.w.pos
	_, err = fmt.Fprintf(pdf.w, "%d %d obj\n", ref.Number, ref.Generation)
	if err != nil {
		return pdf.ioError(err)
	}
	if obj == nil {
		_, err = io.WriteString(pdf.w, "null")
	} else {
		err = obj.PDF(pdf.w)
	}
	if err != nil {
		return pdf.ioError(err)
	}
	_, err = io.WriteString(pdf.w, "\nendobj\n")
	if err != nil {
		return pdf.ioError(err)
	}

	pdf.xref[ref.Number] = pos
	return nil
}

// Write allocates a new object number and writes obj to the file as an
// indirect object with this number.
func (pdf *Writer) Write(obj Object) (Reference, error) {
	ref := pdf.Alloc()
	err := pdf.Put(ref, obj)
	if err != nil {
		return Reference{}, err
	}
	return ref, nil
}

// OpenStream adds a stream object with the given reference to the PDF file.
// The returned io.WriteCloser is used to write the stream contents; the
// filters are applied to the data on the fly.  The stream must be closed
// before any other objects are written.
//
// The length of the encoded data is not known in advance, so /Length is
// written as an indirect object after the stream.  If dict already contains
// a /Filter entry and no filters are given, the data is assumed to be
// encoded already and is copied unchanged.
func (pdf *Writer) OpenStream(ref Reference, dict Dict, filters ...Filter) (io.WriteCloser, error) {
	err := pdf.checkWritable("open stream", ref)
	if err != nil {
		return nil, err
	}

	streamDict := make(Dict, len(dict)+3)
	for key, val := range dict {
		streamDict[key] = val
	}
	if len(filters) > 0 {
		var names, parms Array
		hasParms := false
		for _, filter := range filters {
			name, p := filter.Info()
			names = append(names, name)
			if p != nil {
				hasParms = true
				parms = append(parms, p)
			} else {
				parms = append(parms, nil)
			}
		}
		if len(names) == 1 {
			streamDict["Filter"] = names[0]
			if hasParms {
				streamDict["DecodeParms"] = parms[0]
			}
		} else {
			streamDict["Filter"] = names
			if hasParms {
				streamDict["DecodeParms"] = parms
			}
		}
	}
	lengthRef := pdf.Alloc()
	streamDict["Length"] = lengthRef

	pos := pdf.w.pos
	_, err = fmt.Fprintf(pdf.w, "%d %d obj\n", ref.Number, ref.Generation)
	if err != nil {
		return nil, pdf.ioError(err)
	}
	err = streamDict.PDF(pdf.w)
	if err != nil {
		return nil, pdf.ioError(err)
	}
	_, err = io.WriteString(pdf.w, "\nstream\n")
	if err != nil {
		return nil, pdf.ioError(err)
	}
	pdf.xref[ref.Number] = pos

	var out io.WriteCloser = withoutClose{pdf.w}
	for i := len(filters) - 1; i >= 0; i-- {
		out, err = filters[i].Encode(out)
		if err != nil {
			return nil, err
		}
	}

	pdf.inStream = true
	return &streamWriter{
		parent:    pdf,
		w:         out,
		start:     pdf.w.pos,
		lengthRef: lengthRef,
	}, nil
}

// Err returns the first error encountered while writing to the output,
// or nil if all writes so far have succeeded.  Once a write has failed,
// the output is incomplete and all further write operations fail.
func (pdf *Writer) Err() error {
	if pdf.w.err == nil {
		return nil
	}
	return pdf.ioError(pdf.w.err)
}

// Close writes the cross-reference table and the trailer, and closes the
// underlying io.Writer if it has a Close() method.  The catalog reference is
// required, info may be the zero reference.  After Close has been called,
// all further write operations fail.
//
// If an earlier write has failed, no trailer is written.  The underlying
// io.Writer is closed in all cases, except when the Writer was closed
// already.
func (pdf *Writer) Close(catalog Reference, info Reference) error {
	if pdf.closed {
		return &StateError{Op: "close", Err: ErrClosed}
	}
	if err := pdf.Err(); err != nil {
		return errors.Join(err, pdf.Abort())
	}
	if pdf.inStream {
		return &StateError{Op: "close", Err: ErrStreamOpen}
	}
	if catalog.IsZero() {
		return &StateError{Op: "close", Err: fmt.Errorf("missing /Catalog")}
	}

	id := pdf.id
	if id == nil {
		sum := pdf.w.h.Sum(nil)
		id = [][]byte{sum, sum}
	}
	trailer := Dict{
		"Size": Integer(pdf.nextRef),
		"Root": catalog,
		"ID":   Array{String(id[0]), String(id[1])},
	}
	if !info.IsZero() {
		trailer["Info"] = info
	}

	xRefPos := pdf.w.pos
	err := pdf.writeXRefTable(trailer)
	if err == nil {
		_, err = fmt.Fprintf(pdf.w, "\nstartxref\n%d\n%%%%EOF\n", xRefPos)
	}
	if err != nil {
		pdf.closed = true
		return errors.Join(pdf.ioError(err), pdf.closeOutput())
	}
	pdf.closed = true
	return pdf.closeOutput()
}

// Abort closes the underlying io.Writer, if it has a Close() method,
// without writing the trailer.  This releases the output of a PDF file
// which cannot be completed.  The returned error only reports problems
// with closing the output.  Calling Abort on a closed Writer does nothing.
func (pdf *Writer) Abort() error {
	if pdf.closed {
		return nil
	}
	pdf.closed = true
	return pdf.closeOutput()
}

func (pdf *Writer) closeOutput() error {
	closer, ok := pdf.w.w.(io.Closer)
	if !ok {
		return nil
	}
	err := closer.Close()
	if err != nil {
		return &ResourceError{Op: "close PDF output", Err: err}
	}
	return nil
}

func (pdf *Writer) writeXRefTable(trailer Dict) error {
	_, err := fmt.Fprintf(pdf.w, "xref\n0 %d\n", pdf.nextRef)
	if err != nil {
		return err
	}
	for i := uint32(0); i < pdf.nextRef; i++ {
		pos, ok := pdf.xref[i]
		if ok {
			_, err = fmt.Fprintf(pdf.w, "%010d %05d n\r\n", pos, 0)
		} else {
			// free object
			_, err = io.WriteString(pdf.w, "0000000000 65535 f\r\n")
		}
		if err != nil {
			return err
		}
	}

	_, err = io.WriteString(pdf.w, "trailer\n")
	if err != nil {
		return err
	}
	return trailer.PDF(pdf.w)
}

func (pdf *Writer) checkWritable(op string, ref Reference) error {
	if err := pdf.Err(); err != nil {
		return err
	}
	switch {
	case pdf.closed:
		return &StateError{Op: op, Err: ErrClosed}
	case pdf.inStream:
		return &StateError{Op: op, Err: ErrStreamOpen}
	case ref.IsZero() || ref.Number >= pdf.nextRef:
		return fmt.Errorf("%s: reference %s was not allocated", op, ref)
	}
	if _, seen := pdf.xref[ref.Number]; seen {
		return &StateError{Op: op + " " + ref.String(), Err: ErrDuplicate}
	}
	return nil
}

func (pdf *Writer) ioError(err error) error {
	return &ResourceError{Op: "write PDF output", Err: err}
}

type streamWriter struct {
	parent    *Writer
	w         io.WriteCloser
	start     int64
	lengthRef Reference
	closed    bool
}

func (w *streamWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, &StateError{Op: "write stream", Err: ErrClosed}
	}
	if err := w.parent.Err(); err != nil {
		return 0, err
	}
	n, err := w.w.Write(p)
	if err != nil {
		return n, w.parent.ioError(err)
	}
	return n, nil
}

func (w *streamWriter) Close() error {
	pdf := w.parent
	if w.closed {
		return &StateError{Op: "close stream", Err: ErrClosed}
	}
	w.closed = true
	err := w.w.Close()
	if err == nil {
		err = pdf.Err()
	}
	if err != nil {
		pdf.inStream = false
		return err
	}
	length := pdf.w.pos - w.start
	_, err = io.WriteString(pdf.w, "\nendstream\nendobj\n")
	if err != nil {
		return pdf.ioError(err)
	}
	pdf.inStream = false
	return pdf.Put(w.lengthRef, Integer(length))
}

// posWriter keeps track of the current position in the output and
// feeds all data into a hash, for the file identifier.  After the first
// failed write, all further writes fail with the same error.
type posWriter struct {
	w   io.Writer
	pos int64
	h   hash.Hash
	err error
}

func (w *posWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	w.pos += int64(n)
	w.h.Write(p[:n])
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	w.err = err
	return n, err
}

type withoutClose struct {
	io.Writer
}

func (w withoutClose) Close() error {
	return nil
}
