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
	"bytes"
	"io"
	"log"
	"strings"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/streampdf/pdf"
)

// Provider resolves font family names to fonts.
//
// Loaded fonts are cached for the lifetime of the Provider, so that each
// font file is read and parsed only once.  A Provider is meant to be
// shared by all documents created during one run of a program.  Close
// releases the cached fonts.
type Provider struct {
	matcher Matcher
	logger  *log.Logger

	cache    map[string]*Font
	fallback *Font
	closed   bool
}

// NewProvider creates a new Provider which uses m to locate font files.
// If m is nil, only the built-in fallback font is available.
// If logger is not nil, fallback decisions are reported there.
func NewProvider(m Matcher, logger *log.Logger) *Provider {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Provider{
		matcher: m,
		logger:  logger,
		cache:   make(map[string]*Font),
	}
}

// Resolve returns the font for the given family name.
//
// If the family cannot be found, or if the font file cannot be used, the
// built-in fallback font is returned instead.  An error is only returned
// if even the fallback font cannot be loaded, or if the Provider has been
// closed.
func (p *Provider) Resolve(family string) (*Font, error) {
	if p.closed {
		return nil, &pdf.StateError{Op: "resolve font " + family, Err: pdf.ErrClosed}
	}

	key := strings.ToLower(strings.TrimSpace(family))
	if f, ok := p.cache[key]; ok {
		return f, nil
	}

	var f *Font
	if p.matcher != nil && key != "" {
		data, err := p.matcher.Match(family)
		if err == nil {
			f, err = load(data)
		}
		if err != nil {
			p.logger.Printf("font %q: %v, using fallback font", family, err)
		}
	}
	if f == nil {
		fallback, err := p.Fallback()
		if err != nil {
			return nil, err
		}
		f = fallback
	}

	p.cache[key] = f
	return f, nil
}

// Fallback returns the built-in font, used when a requested font cannot be
// found.
func (p *Provider) Fallback() (*Font, error) {
	if p.closed {
		return nil, &pdf.StateError{Op: "load fallback font", Err: pdf.ErrClosed}
	}
	if p.fallback == nil {
		f, err := load(goregular.TTF)
		if err != nil {
			return nil, &pdf.ResourceError{Op: "load built-in font", Err: err}
		}
		f.isFallback = true
		p.fallback = f
	}
	return p.fallback, nil
}

// Close releases all cached fonts.  After Close has been called, Resolve
// fails.
func (p *Provider) Close() error {
	if p.closed {
		return &pdf.StateError{Op: "close font provider", Err: pdf.ErrClosed}
	}
	p.cache = nil
	p.fallback = nil
	p.closed = true
	return nil
}

func load(data []byte) (*Font, error) {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return New(info)
}
