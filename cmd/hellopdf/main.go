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

// Hellopdf writes a one-page PDF file with text, a rectangle and an image.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"golang.org/x/text/language"

	"seehuhn.de/go/streampdf"
	"seehuhn.de/go/streampdf/layout"
	"seehuhn.de/go/streampdf/paper"
	"seehuhn.de/go/streampdf/pdf"
)

const description = `Hellopdf creates a small PDF file containing a page of text and an
image, and stores it in the given output file.  The page shows a
right-aligned line of text inside a rectangle, a centered title, a
paragraph of text which is wrapped to fit inside a box, and an image
which is scaled to half its size and centered at the bottom of the
page.  If the output file is "-", the PDF data is written to standard
output.`

type config struct {
	paper         string
	portrait      bool
	fontFamily    string
	imagePath     string
	humanReadable bool
	xmp           bool
	lang          string
	verbose       bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("hellopdf: ")

	cfg := &config{}
	flags := pflag.NewFlagSet("hellopdf", pflag.ExitOnError)
	flags.StringVarP(&cfg.paper, "paper", "p", "letter", "paper size ("+paperNames()+")")
	flags.BoolVar(&cfg.portrait, "portrait", false, "use portrait instead of landscape orientation")
	flags.StringVarP(&cfg.fontFamily, "font", "f", "Arial", "font family used for all text")
	flags.StringVarP(&cfg.imagePath, "image", "i", "image.jpg", "image to place at the bottom of the page (empty to omit)")
	flags.BoolVar(&cfg.humanReadable, "human-readable", false, "do not compress the page contents")
	flags.BoolVar(&cfg.xmp, "xmp", false, "include an XMP metadata stream")
	flags.StringVar(&cfg.lang, "lang", "en", "language of the document text")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "report font substitutions")
	flags.Usage = func() {
		out := os.Stderr
		fmt.Fprintln(out, "Usage: hellopdf [flags] output.pdf")
		fmt.Fprintln(out)
		fmt.Fprintln(out, wordwrap.String(description, helpWidth()))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Flags:")
		flags.PrintDefaults()
	}

	err := flags.Parse(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(2)
	}

	err = run(flags.Arg(0), cfg)
	if err != nil {
		log.Fatal(err)
	}
}

func run(outName string, cfg *config) error {
	size, err := paper.Parse(cfg.paper)
	if err != nil {
		return err
	}
	lang, err := language.Parse(cfg.lang)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", cfg.lang, err)
	}

	opt := &streampdf.Options{
		HumanReadable: cfg.humanReadable,
		XMP:           cfg.xmp,
		Language:      lang,
	}
	if cfg.verbose {
		opt.Logger = log.New(os.Stderr, "hellopdf: ", 0)
	}

	var doc *streampdf.Document
	if outName == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("refusing to write PDF data to a terminal")
		}
		doc, err = streampdf.Create(nopCloser{os.Stdout}, opt)
	} else {
		doc, err = streampdf.CreateFile(outName, opt)
	}
	if err != nil {
		return err
	}

	err = helloWorld(doc, size, !cfg.portrait, cfg)
	if err != nil {
		return err
	}
	return doc.Close()
}

func helloWorld(doc *streampdf.Document, size paper.Name, landscape bool, cfg *config) error {
	const (
		leftMargin   = 20
		rightMargin  = 20
		topMargin    = 20
		bottomMargin = 30
	)

	font, err := doc.CreateFont(cfg.fontFamily)
	if err != nil {
		return err
	}
	var img streampdf.Image
	hasImage := cfg.imagePath != ""
	if hasImage {
		img, err = doc.LoadImage(cfg.imagePath)
		if err != nil {
			return err
		}
	}

	width, height := paper.Standard(size, landscape)
	err = doc.DrawPage(width, height, func(p *streampdf.Painter) error {
		msgText := "Some text here."
		err := p.SetFont(font, 8)
		if err != nil {
			return err
		}
		textWidth := font.StringWidth(8, msgText)
		textHeight := font.LineSpacing(8)
		x := width - rightMargin - textWidth
		err = p.DrawText(x, bottomMargin+textHeight, msgText)
		if err != nil {
			return err
		}
		err = p.Rectangle(x, bottomMargin+textHeight-3, textWidth, textHeight)
		if err != nil {
			return err
		}
		err = p.Stroke()
		if err != nil {
			return err
		}

		boxWidth := width - (leftMargin + rightMargin)
		err = p.SetFont(font, 18)
		if err != nil {
			return err
		}
		err = p.DrawTextAligned(leftMargin, height-topMargin-20, boxWidth,
			"Title of This Page", layout.Center)
		if err != nil {
			return err
		}

		err = p.SetFont(font, 11)
		if err != nil {
			return err
		}
		par := strings.Repeat("A parragraph a parragraph a parragraph a parragraph"+
			" a parragraph a parragraph a parragraph. ", 8) + " End"
		const boxHeight = 150
		err = p.DrawMultiLineText(leftMargin, height-topMargin-boxHeight-30,
			boxWidth, boxHeight, par, layout.Left, layout.Top)
		if err != nil {
			return err
		}

		if hasImage {
			const scale = 0.5
			imgWidth, _ := img.Size()
			x := leftMargin + (width-float64(imgWidth)*scale-(leftMargin+rightMargin))/2
			err = p.DrawImage(x, bottomMargin, img, scale, scale)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return doc.SetInfo(&pdf.Info{
		Creator:  "hellopdf - a seehuhn.de/go/streampdf test application",
		Author:   "Jochen Voss",
		Title:    "Hello World",
		Subject:  "Testing the streampdf library",
		Keywords: "Test;PDF;Hello World;",
	})
}

func paperNames() string {
	var names []string
	for _, n := range paper.All() {
		names = append(names, strings.ToLower(n.String()))
	}
	return strings.Join(names, ", ")
}

// helpWidth returns the width used for the help text.
func helpWidth() int {
	fd := int(os.Stderr.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 20 {
			return min(w, 80)
		}
	}
	return 72
}

// nopCloser prevents the document from closing standard output.
type nopCloser struct {
	io.Writer
}
