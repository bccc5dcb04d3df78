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
	"bytes"
	"compress/zlib"
	"io"
)

// Filter represents a PDF stream filter used for encoding stream data.
type Filter interface {
	// Info returns the name of the filter and the /DecodeParms dictionary,
	// which may be nil.
	Info() (Name, Dict)

	// Encode returns a writer which encodes data and writes the result to
	// w.  Closing the returned writer flushes all data, but does not close
	// w.
	Encode(w io.WriteCloser) (io.WriteCloser, error)
}

// FilterFlate is the FlateDecode filter.
// Data is compressed using the zlib format.
type FilterFlate struct{}

// Info implements the Filter interface.
func (FilterFlate) Info() (Name, Dict) {
	return "FlateDecode", nil
}

// Encode implements the Filter interface.
func (FilterFlate) Encode(w io.WriteCloser) (io.WriteCloser, error) {
	zw, err := zlib.NewWriterLevel(w, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	return &flateWriter{zw: zw, w: w}, nil
}

type flateWriter struct {
	zw *zlib.Writer
	w  io.WriteCloser
}

func (fw *flateWriter) Write(p []byte) (int, error) {
	return fw.zw.Write(p)
}

func (fw *flateWriter) Close() error {
	err := fw.zw.Close()
	if err != nil {
		return err
	}
	return fw.w.Close()
}

// Compress compresses data using the zlib format, as expected by the
// FlateDecode filter.
func Compress(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw, err := zlib.NewWriterLevel(buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	_, err = zw.Write(data)
	if err != nil {
		return nil, err
	}
	err = zw.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
