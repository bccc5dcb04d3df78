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

package float

import "testing"

func TestFormat(t *testing.T) {
	testCases := []struct {
		in   float64
		prec int
		out  string
	}{
		{0, 2, "0"},
		{1, 2, "1"},
		{12.5, 2, "12.5"},
		{0.5, 2, ".5"},
		{-0.5, 2, "-.5"},
		{-0.001, 2, "0"},
		{612, 3, "612"},
		{595.276, 2, "595.28"},
		{100.10, 3, "100.1"},
		{-3, 0, "-3"},
	}
	for _, test := range testCases {
		got := Format(test.in, test.prec)
		if got != test.out {
			t.Errorf("Format(%g, %d) = %q, want %q", test.in, test.prec, got, test.out)
		}
	}
}

func TestRound(t *testing.T) {
	if got := Round(1.23456, 2); got != 1.23 {
		t.Errorf("Round(1.23456, 2) = %g", got)
	}
	if got := Round(-2.5, 0); got != -3 {
		t.Errorf("Round(-2.5, 0) = %g", got)
	}
}
