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

// Package metadata converts the document information dictionary into an
// XMP metadata stream.
package metadata

import (
	"golang.org/x/text/language"

	"seehuhn.de/go/xmp"

	"seehuhn.de/go/streampdf/pdf"
)

// PDF is the XMP namespace for PDF metadata.
// See https://developer.adobe.com/xmp/docs/XMPNamespaces/pdf/
type PDF struct {
	_          xmp.Namespace `xmp:"http://ns.adobe.com/pdf/1.3/"`
	_          xmp.Prefix    `xmp:"pdf"`
	Keywords   xmp.Text
	PDFVersion xmp.Text
	Producer   xmp.AgentName
}

// FromInfo builds an XMP packet which mirrors the fields of info.
// Localized values (title and subject) are stored under the x-default
// language, and additionally under lang if lang is not undefined.
func FromInfo(info *pdf.Info, ver pdf.Version, lang language.Tag) (*xmp.Packet, error) {
	dc := &xmp.DublinCore{}
	localized := func(l *xmp.Localized, val string) {
		if val == "" {
			return
		}
		l.Set(xDefault, val)
		if lang != language.Und {
			l.Set(lang, val)
		}
	}
	localized(&dc.Title, info.Title)
	localized(&dc.Description, info.Subject)
	if info.Author != "" {
		dc.Creator.Append(xmp.NewProperName(info.Author))
	}

	basic := &xmp.Basic{}
	if !info.CreationDate.IsZero() {
		basic.CreateDate = xmp.NewDate(info.CreationDate)
	}
	if !info.ModDate.IsZero() {
		basic.ModifyDate = xmp.NewDate(info.ModDate)
	}

	pdfInfo := &PDF{}
	if info.Keywords != "" {
		pdfInfo.Keywords = xmp.NewText(info.Keywords)
	}
	if info.Producer != "" {
		pdfInfo.Producer = xmp.NewAgentName(info.Producer)
	}
	if s, err := ver.ToString(); err == nil {
		pdfInfo.PDFVersion = xmp.NewText(s)
	}

	packet := xmp.NewPacket()
	err := packet.Set(dc, basic, pdfInfo)
	if err != nil {
		return nil, err
	}
	return packet, nil
}

// Embed writes packet to w as a metadata stream and returns the reference
// to be used for the /Metadata entry of the document catalog.
//
// The stream is never compressed, so that the metadata stays readable by
// tools which do not understand PDF.
func Embed(w *pdf.Writer, packet *xmp.Packet) (pdf.Reference, error) {
	ref := w.Alloc()
	dict := pdf.Dict{
		"Type":    pdf.Name("Metadata"),
		"Subtype": pdf.Name("XML"),
	}
	stm, err := w.OpenStream(ref, dict)
	if err != nil {
		return pdf.Reference{}, err
	}
	err = packet.Write(stm, &xmp.PacketOptions{Pretty: true})
	if err != nil {
		stm.Close()
		return pdf.Reference{}, err
	}
	err = stm.Close()
	if err != nil {
		return pdf.Reference{}, err
	}
	return ref, nil
}

var xDefault = language.MustParse("x-default")
