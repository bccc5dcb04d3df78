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
	"log"

	"golang.org/x/text/language"

	"seehuhn.de/go/streampdf/font"
	"seehuhn.de/go/streampdf/image"
	"seehuhn.de/go/streampdf/pdf"
)

// Options allows to influence the way a PDF document is written.
// A nil *Options is equivalent to the zero value.
type Options struct {
	// Version is the PDF version written to the file header.
	// The default is PDF 1.7.
	Version pdf.Version

	// HumanReadable disables the compression of content streams,
	// to make the output easier to inspect.
	HumanReadable bool

	// ID, if set, is used as the file identifier in the trailer.
	ID [][]byte

	// Fonts is used to resolve font family names.  The provider can be
	// shared between documents and is not closed when the document is
	// closed.  If Fonts is nil, a new provider which searches the fonts
	// installed on the system is used for this document.
	Fonts *font.Provider

	// Images is used to decode image files.  If this is nil,
	// image.DefaultDecoder is used.
	Images image.Decoder

	// Language, if set, is stored as the natural language of the document.
	Language language.Tag

	// XMP enables writing an XMP metadata stream, mirroring the document
	// information dictionary.
	XMP bool

	// Logger, if not nil, receives diagnostic messages, for example
	// when a font is replaced by the fallback font.
	Logger *log.Logger
}

const defaultVersion = pdf.V1_7
