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

package pdftest

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type lexer struct {
	data []byte
	pos  int
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	return strings.IndexByte("()<>[]{}/%", c) >= 0
}

func isRegular(c byte) bool {
	return !isSpace(c) && !isDelimiter(c)
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if c == '%' {
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
			continue
		}
		if !isSpace(c) {
			return
		}
		l.pos++
	}
}

// keyword skips white space and consumes kw, if kw is next in the input.
func (l *lexer) keyword(kw string) bool {
	l.skipSpace()
	end := l.pos + len(kw)
	if end > len(l.data) || string(l.data[l.pos:end]) != kw {
		return false
	}
	if end < len(l.data) && isRegular(l.data[end]) {
		return false
	}
	l.pos = end
	return true
}

func (l *lexer) regular() string {
	start := l.pos
	for l.pos < len(l.data) && isRegular(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

// object reads the next object.  Numbers are returned as int64 or float64,
// strings as []byte, arrays as []any.
func (l *lexer) object() (any, error) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return nil, io.EOF
	}

	switch c := l.data[l.pos]; {
	case c == '/':
		l.pos++
		return l.name()
	case c == '(':
		l.pos++
		return l.literalString()
	case c == '<' && l.pos+1 < len(l.data) && l.data[l.pos+1] == '<':
		l.pos += 2
		return l.dict()
	case c == '<':
		l.pos++
		end := strings.IndexByte(string(l.data[l.pos:]), '>')
		if end < 0 {
			return nil, io.ErrUnexpectedEOF
		}
		s := strings.Map(func(r rune) rune {
			if isSpace(byte(r)) {
				return -1
			}
			return r
		}, string(l.data[l.pos:l.pos+end]))
		l.pos += end + 1
		if len(s)%2 == 1 {
			s += "0"
		}
		return hex.DecodeString(s)
	case c == '[':
		l.pos++
		var res []any
		for {
			l.skipSpace()
			if l.pos < len(l.data) && l.data[l.pos] == ']' {
				l.pos++
				return res, nil
			}
			obj, err := l.object()
			if err != nil {
				return nil, err
			}
			res = append(res, obj)
		}
	case c == '+' || c == '-' || c == '.' || c >= '0' && c <= '9':
		return l.number()
	case isRegular(c):
		word := l.regular()
		switch word {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null":
			return nil, nil
		}
		return Operator(word), nil
	default:
		return nil, fmt.Errorf("unexpected character %q at offset %d", c, l.pos)
	}
}

func (l *lexer) number() (any, error) {
	word := l.regular()
	if !strings.Contains(word, ".") {
		x, err := strconv.ParseInt(word, 10, 64)
		if err != nil {
			return nil, err
		}

		// check for a reference "n g R"
		save := l.pos
		l.skipSpace()
		if l.pos < len(l.data) && l.data[l.pos] >= '0' && l.data[l.pos] <= '9' {
			gen, err := strconv.ParseUint(l.regular(), 10, 16)
			if err == nil && x >= 0 && l.keyword("R") {
				return Ref{Number: uint32(x), Generation: uint16(gen)}, nil
			}
		}
		l.pos = save
		return x, nil
	}
	return strconv.ParseFloat(word, 64)
}

func (l *lexer) name() (Name, error) {
	word := l.regular()
	var b strings.Builder
	for i := 0; i < len(word); i++ {
		if word[i] == '#' && i+2 < len(word) {
			c, err := strconv.ParseUint(word[i+1:i+3], 16, 8)
			if err != nil {
				return "", err
			}
			b.WriteByte(byte(c))
			i += 2
			continue
		}
		b.WriteByte(word[i])
	}
	return Name(b.String()), nil
}

func (l *lexer) literalString() ([]byte, error) {
	var res []byte
	level := 0
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '(':
			level++
		case ')':
			if level == 0 {
				return res, nil
			}
			level--
		case '\\':
			if l.pos >= len(l.data) {
				return nil, io.ErrUnexpectedEOF
			}
			c = l.data[l.pos]
			l.pos++
			switch c {
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 't':
				c = '\t'
			case 'b':
				c = '\b'
			case 'f':
				c = '\f'
			case '\n':
				continue
			default:
				if c >= '0' && c <= '7' {
					val := int(c - '0')
					for k := 0; k < 2 && l.pos < len(l.data); k++ {
						d := l.data[l.pos]
						if d < '0' || d > '7' {
							break
						}
						val = 8*val + int(d-'0')
						l.pos++
					}
					c = byte(val)
				}
			}
		}
		res = append(res, c)
	}
	return nil, io.ErrUnexpectedEOF
}

func (l *lexer) dict() (Dict, error) {
	res := Dict{}
	for {
		l.skipSpace()
		if l.pos+1 < len(l.data) && l.data[l.pos] == '>' && l.data[l.pos+1] == '>' {
			l.pos += 2
			return res, nil
		}
		key, err := l.object()
		if err != nil {
			return nil, err
		}
		name, ok := key.(Name)
		if !ok {
			return nil, errors.New("dictionary key is not a name")
		}
		val, err := l.object()
		if err != nil {
			return nil, err
		}
		res[name] = val
	}
}
