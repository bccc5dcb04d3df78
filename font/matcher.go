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
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/go-text/typesetting/fontscan"
)

// ErrNotFound is returned by a Matcher if no font for the requested family
// is available.
var ErrNotFound = errors.New("font not found")

// Matcher locates font files by family name.
type Matcher interface {
	// Match returns the contents of a TrueType or OpenType font file for
	// the given family.  If no such font is known, ErrNotFound is
	// returned.
	Match(family string) ([]byte, error)
}

// MapMatcher is a Matcher which serves fonts from memory.
// Family names are compared case-insensitively.
type MapMatcher map[string][]byte

// Match implements the Matcher interface.
func (m MapMatcher) Match(family string) ([]byte, error) {
	for name, data := range m {
		if strings.EqualFold(name, family) {
			return data, nil
		}
	}
	return nil, ErrNotFound
}

// SystemMatcher finds fonts installed on the system.
//
// The index of system fonts is built on first use.  Building the index
// may take a few seconds, the result is cached in CacheDir.
type SystemMatcher struct {
	// CacheDir is the directory used to store the font index.  If this is
	// empty, a directory inside the user's cache directory is used.
	CacheDir string

	// Logger, if not nil, receives messages about problems encountered
	// while scanning the system fonts.
	Logger *log.Logger

	fm      *fontscan.FontMap
	scanErr error
}

// Match implements the Matcher interface.
func (m *SystemMatcher) Match(family string) ([]byte, error) {
	if m.fm == nil && m.scanErr == nil {
		logger := m.Logger
		if logger == nil {
			logger = log.New(io.Discard, "", 0)
		}
		fm := fontscan.NewFontMap(logger)
		err := fm.UseSystemFonts(m.CacheDir)
		if err != nil {
			m.scanErr = fmt.Errorf("scanning system fonts: %w", err)
		} else {
			m.fm = fm
		}
	}
	if m.scanErr != nil {
		return nil, m.scanErr
	}

	loc, ok := m.fm.FindSystemFont(family)
	if !ok {
		return nil, ErrNotFound
	}
	if loc.Index > 0 {
		// only the first font of a font collection can be used
		return nil, fmt.Errorf("%s: font %d in collection: %w", loc.File, loc.Index, ErrNotFound)
	}
	return os.ReadFile(loc.File)
}
