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

// Package layout places lines of text inside boxes.
//
// All functions in this package are pure.  Text widths are obtained from a
// caller-supplied measuring function, so that the same code works for any
// font and size.
package layout

import (
	"math"
	"strings"
)

// HAlign describes the horizontal alignment of a line inside its box.
type HAlign int

// These are the supported horizontal alignments.
const (
	Left HAlign = iota
	Center
	Right
)

func (a HAlign) String() string {
	switch a {
	case Left:
		return "left"
	case Center:
		return "center"
	case Right:
		return "right"
	default:
		return "HAlign(?)"
	}
}

// VAlign describes the vertical alignment of a block of lines inside its
// box.
type VAlign int

// These are the supported vertical alignments.
const (
	Top VAlign = iota
	Middle
	Bottom
)

func (a VAlign) String() string {
	switch a {
	case Top:
		return "top"
	case Middle:
		return "middle"
	case Bottom:
		return "bottom"
	default:
		return "VAlign(?)"
	}
}

// Wrap breaks text into lines no wider than width.
//
// Words are separated by white space and are added to the current line as
// long as the line, including the joining space, still fits.  A word which
// is wider than width on its own is placed on a line by itself and is never
// split.  A newline character always starts a new line.
func Wrap(text string, width float64, measure func(string) float64) []string {
	if text == "" {
		return nil
	}

	var lines []string
	for _, par := range strings.Split(text, "\n") {
		words := strings.Fields(par)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if measure(candidate) <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}

// Truncate returns the longest prefix of lines which fits into a box of
// height boxHeight, where each line takes up lineHeight.
func Truncate(lines []string, lineHeight, boxHeight float64) []string {
	if lineHeight <= 0 {
		return lines
	}
	n := MaxLines(lineHeight, boxHeight)
	if n < len(lines) {
		return lines[:n]
	}
	return lines
}

// MaxLines returns the largest n with n*lineHeight <= boxHeight.
func MaxLines(lineHeight, boxHeight float64) int {
	if boxHeight < 0 {
		return 0
	}
	// allow for rounding errors in box heights computed by the caller
	n := math.Floor(boxHeight/lineHeight + 1e-9)
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// Offset returns the horizontal offset of a line of width lineWidth inside
// a box of width boxWidth.  The offset is negative if the line is wider than
// the box and not left-aligned.
func Offset(align HAlign, boxWidth, lineWidth float64) float64 {
	switch align {
	case Center:
		return (boxWidth - lineWidth) / 2
	case Right:
		return boxWidth - lineWidth
	default:
		return 0
	}
}

// FirstBaseline returns the y coordinate of the first baseline, when n lines
// with the given line spacing are placed inside a box with lower edge y and
// height boxHeight.  The top of the first line is ascent above its
// baseline.
func FirstBaseline(align VAlign, y, boxHeight float64, n int, lineSpacing, ascent float64) float64 {
	used := float64(n) * lineSpacing
	var offset float64
	switch align {
	case Middle:
		offset = (boxHeight - used) / 2
	case Bottom:
		offset = boxHeight - used
	}
	return y + boxHeight - offset - ascent
}
