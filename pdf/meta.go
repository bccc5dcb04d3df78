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
	"strconv"
	"time"

	"golang.org/x/text/language"
)

// Version represents a version of PDF standard.
type Version int

// PDF versions supported by this library.
const (
	_ Version = iota
	V1_0
	V1_1
	V1_2
	V1_3
	V1_4
	V1_5
	V1_6
	V1_7
	V2_0
)

// ParseVersion parses a PDF version string like "1.7".
func ParseVersion(verString string) (Version, error) {
	for v := V1_0; v <= V2_0; v++ {
		s, _ := v.ToString()
		if s == verString {
			return v, nil
		}
	}
	return 0, errVersion
}

// ToString returns the string representation of ver, e.g. "1.7".
// If ver does not correspond to a supported PDF version, an error is
// returned.
func (ver Version) ToString() (string, error) {
	if ver >= V1_0 && ver <= V1_7 {
		return "1." + string([]byte{byte(ver - V1_0 + '0')}), nil
	}
	if ver == V2_0 {
		return "2.0", nil
	}
	return "", errVersion
}

func (ver Version) String() string {
	versionString, err := ver.ToString()
	if err != nil {
		versionString = "pdf.Version(" + strconv.Itoa(int(ver)) + ")"
	}
	return versionString
}

// Catalog represents a PDF Document Catalog.  Only the fields used by this
// library are included.
//
// The Document Catalog is documented in section 7.7.2 of PDF 32000-1:2008.
type Catalog struct {
	Pages    Reference
	Metadata Reference
	Lang     language.Tag
}

// AsDict returns the catalog as a PDF dictionary.
func (cat *Catalog) AsDict() Dict {
	res := Dict{
		"Type":  Name("Catalog"),
		"Pages": cat.Pages,
	}
	if !cat.Metadata.IsZero() {
		res["Metadata"] = cat.Metadata
	}
	if cat.Lang != language.Und {
		res["Lang"] = TextString(cat.Lang.String())
	}
	return res
}

// Info represents a PDF Document Information Dictionary.
// All fields in this structure are optional.
//
// The Document Information Dictionary is documented in section
// 14.3.3 of PDF 32000-1:2008.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Keywords string

	// Creator gives the name of the application that created the original
	// document, if the document was converted to PDF from another format.
	Creator string

	// Producer gives the name of the application that converted the document
	// to PDF.
	Producer string

	CreationDate time.Time
	ModDate      time.Time

	// Custom contains all non-standard fields in the Info dictionary.
	Custom map[string]string
}

// AsDict returns the information dictionary.  Empty fields are omitted.
func (info *Info) AsDict() Dict {
	res := Dict{}
	text := func(key Name, val string) {
		if val != "" {
			res[key] = TextString(val)
		}
	}
	text("Title", info.Title)
	text("Author", info.Author)
	text("Subject", info.Subject)
	text("Keywords", info.Keywords)
	text("Creator", info.Creator)
	text("Producer", info.Producer)
	if !info.CreationDate.IsZero() {
		res["CreationDate"] = Date(info.CreationDate)
	}
	if !info.ModDate.IsZero() {
		res["ModDate"] = Date(info.ModDate)
	}

	for key, val := range info.Custom {
		if _, builtin := res[Name(key)]; builtin {
			continue
		}
		text(Name(key), val)
	}
	return res
}
