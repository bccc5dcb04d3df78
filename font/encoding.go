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

package font

import (
	"golang.org/x/text/encoding/charmap"
)

// The range of character codes listed in the /Widths array.
const (
	firstChar = 32
	lastChar  = 255
)

// WinAnsiEncoding is the PDF name of the encoding used for all fonts.
// For the printable characters it coincides with Windows code page 1252.
const WinAnsiEncoding = "WinAnsiEncoding"

func encodeWinAnsi(text string) []byte {
	res := make([]byte, 0, len(text))
	for _, r := range text {
		if r == '\t' {
			r = ' '
		}
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok || c < firstChar {
			c = '?'
		}
		res = append(res, c)
	}
	return res
}

// DecodeWinAnsi converts an encoded string back to text.
func DecodeWinAnsi(s []byte) string {
	rr := make([]rune, len(s))
	for i, c := range s {
		rr[i] = decodeWinAnsi(c)
	}
	return string(rr)
}

func decodeWinAnsi(c byte) rune {
	return charmap.Windows1252.DecodeByte(c)
}
