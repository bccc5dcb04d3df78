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
	"errors"
)

// These errors are the causes of a StateError.
// Use errors.Is to test for them.
var (
	ErrClosed     = errors.New("already closed")
	ErrFinished   = errors.New("page already finished")
	ErrUnfinished = errors.New("page not finished")
	ErrNoPage     = errors.New("no page selected")
	ErrNoFont     = errors.New("no font selected")
	ErrNoPages    = errors.New("document has no pages")
	ErrStreamOpen = errors.New("a stream is still open")
	ErrDuplicate  = errors.New("object already written")
)

var errVersion = errors.New("unsupported PDF version")

// StateError indicates that an operation was called at a time where it is
// not allowed, for example drawing on a finished page or writing to a closed
// file.
type StateError struct {
	Op  string
	Err error
}

func (err *StateError) Error() string {
	return err.Op + ": " + err.Err.Error()
}

func (err *StateError) Unwrap() error {
	return err.Err
}

// ResourceError indicates that a page, font or image could not be created,
// or that the output could not be written.
type ResourceError struct {
	Op   string
	Name string
	Err  error
}

func (err *ResourceError) Error() string {
	msg := err.Op
	if err.Name != "" {
		msg += " " + err.Name
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *ResourceError) Unwrap() error {
	return err.Err
}

// DecodeError indicates that the contents of an image file could not be
// understood.
type DecodeError struct {
	Name string
	Err  error
}

func (err *DecodeError) Error() string {
	middle := ""
	if err.Name != "" {
		middle = " " + err.Name
	}
	return "cannot decode image" + middle + ": " + err.Err.Error()
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}
