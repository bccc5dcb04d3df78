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
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in  Object
		out string
	}{
		{nil, "null"},
		{Bool(true), "true"},
		{Integer(-12), "-12"},
		{Real(2), "2."},
		{Real(0.25), "0.25"},
		{Number(612), "612"},
		{Number(0.5), ".5"},
		{Number(595.2756), "595.2756"},
		{String("hello"), "(hello)"},
		{String("a(b)c"), "(a(b)c)"},
		{String("a)b"), `(a\)b)`},
		{String(`x\y`), `(x\\y)`},
		{String("line 1\r\nline 2"), "(line 1\\r\nline 2)"},
		{String("\x00\x01\x02\x03"), "<00010203>"},
		{Name("Type"), "/Type"},
		{Name("A B"), "/A#20B"},
		{Name("x#y"), "/x#23y"},
		{Array{Integer(1), nil, Name("x")}, "[1 null /x]"},
		{Dict{"B": Integer(2), "A": Integer(1), "C": nil}, "<<\n/A 1\n/B 2\n>>"},
		{Reference{Number: 7}, "7 0 R"},
		{Reference{}, "null"},
		{&Rectangle{URx: 792, URy: 612}, "[0 0 792 612]"},
	}
	for _, test := range cases {
		got := Format(test.in)
		if got != test.out {
			t.Errorf("Format(%#v) = %q, want %q", test.in, got, test.out)
		}
	}
}

func TestTextString(t *testing.T) {
	if d := cmp.Diff(TextString("Title"), String("Title")); d != "" {
		t.Error(d)
	}
	got := TextString("Grüße")
	want := String("\xfe\xff\x00G\x00r\x00\xfc\x00\xdf\x00e")
	if d := cmp.Diff(got, want); d != "" {
		t.Errorf("TextString mismatch (-got +want):\n%s", d)
	}
}

func TestDate(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	tm := time.Date(2026, 10, 16, 9, 30, 5, 0, loc)
	got := string(Date(tm))
	if got != "D:20261016093005+02'00" {
		t.Errorf("wrong date string %q", got)
	}
}

func TestVersion(t *testing.T) {
	for _, s := range []string{"1.0", "1.4", "1.7", "2.0"} {
		v, err := ParseVersion(s)
		if err != nil {
			t.Fatal(err)
		}
		if v.String() != s {
			t.Errorf("round trip of %q gave %q", s, v.String())
		}
	}
	if _, err := ParseVersion("3.1"); err == nil {
		t.Error("invalid version accepted")
	}
}

func TestInfoDict(t *testing.T) {
	info := &Info{
		Title:        "Title of This Page",
		Author:       "Someone",
		Keywords:     "PDF;Example",
		CreationDate: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Custom:       map[string]string{"Department": "Print", "Title": "ignored"},
	}
	got := info.AsDict()
	want := Dict{
		"Title":        String("Title of This Page"),
		"Author":       String("Someone"),
		"Keywords":     String("PDF;Example"),
		"CreationDate": String("D:20260102030405+00'00"),
		"Department":   String("Print"),
	}
	if d := cmp.Diff(got, want); d != "" {
		t.Errorf("info dict mismatch (-got +want):\n%s", d)
	}
}

func TestCatalogDict(t *testing.T) {
	cat := &Catalog{
		Pages: Reference{Number: 1},
		Lang:  language.BritishEnglish,
	}
	got := cat.AsDict()
	want := Dict{
		"Type":  Name("Catalog"),
		"Pages": Reference{Number: 1},
		"Lang":  String("en-GB"),
	}
	if d := cmp.Diff(got, want); d != "" {
		t.Errorf("catalog mismatch (-got +want):\n%s", d)
	}
}
