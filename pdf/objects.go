// exactpdf - generate PDF files with an exact byte size
// Copyright (C) 2026  The exactpdf authors
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

// Package pdf implements the minimal PDF object model and serializer
// used by exactpdf.
//
// The serialization is fully deterministic: dictionary keys are
// written in sorted order and all whitespace is fixed.  A given object
// graph therefore always encodes to the same number of bytes, which is
// what allows the overhead of a fixed document shape to be measured
// once and relied upon.
package pdf

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Object represents an object in a PDF file.  The native types Bool,
// Integer, Real, Name, String, Array, Dict, Reference and Stream
// implement this interface.
type Object interface {
	// PDF writes the PDF file representation of the object to w.
	PDF(w io.Writer) error
}

// Bool represents a boolean value in a PDF file.
type Bool bool

// PDF implements the Object interface.
func (x Bool) PDF(w io.Writer) error {
	s := "false"
	if x {
		s = "true"
	}
	_, err := io.WriteString(w, s)
	return err
}

// Integer represents an integer constant in a PDF file.
type Integer int64

// PDF implements the Object interface.
func (x Integer) PDF(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatInt(int64(x), 10))
	return err
}

// Real represents a real number in a PDF file.
type Real float64

// PDF implements the Object interface.  Whole values keep a fractional
// part, so Real(0) is written as "0.0".
func (x Real) PDF(w io.Writer) error {
	s := strconv.FormatFloat(float64(x), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	_, err := io.WriteString(w, s)
	return err
}

// String represents a raw string in a PDF file.
type String []byte

// PDF implements the Object interface.  The string is written in
// literal form; parentheses, backslashes and control characters other
// than newline and tab are escaped.
func (x String) PDF(w io.Writer) error {
	if _, err := io.WriteString(w, "("); err != nil {
		return err
	}
	pos := 0
	for i := 0; i < len(x); i++ {
		esc := escapeLiteral(x[i])
		if esc == "" {
			continue
		}
		if pos < i {
			if _, err := w.Write(x[pos:i]); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, esc); err != nil {
			return err
		}
		pos = i + 1
	}
	if pos < len(x) {
		if _, err := w.Write(x[pos:]); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, ")")
	return err
}

// escapeLiteral returns the escape sequence for c inside a literal
// string, or "" if c can be written as is.
func escapeLiteral(c byte) string {
	switch c {
	case '(':
		return `\(`
	case ')':
		return `\)`
	case '\\':
		return `\\`
	case '\r':
		return `\r`
	case '\n', '\t':
		return ""
	}
	if c < 32 {
		return fmt.Sprintf(`\%03o`, c)
	}
	return ""
}

// Name represents a name object in a PDF file.
type Name string

// PDF implements the Object interface.
func (x Name) PDF(w io.Writer) error {
	var sb strings.Builder
	sb.WriteByte('/')
	for i := 0; i < len(x); i++ {
		c := x[i]
		if c < 0x21 || c > 0x7e || c == '#' || isDelimiter(c) {
			fmt.Fprintf(&sb, "#%02x", c)
		} else {
			sb.WriteByte(c)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// Array represents an array of objects in a PDF file.
type Array []Object

// PDF implements the Object interface.
func (x Array) PDF(w io.Writer) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for _, val := range x {
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := writeValue(w, val); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, " ]")
	return err
}

// Dict represents a dictionary object in a PDF file.  Keys are written
// in sorted order, so equal dictionaries always serialize to the same
// bytes.
type Dict map[Name]Object

// PDF implements the Object interface.
func (x Dict) PDF(w io.Writer) error {
	if x == nil {
		_, err := io.WriteString(w, "null")
		return err
	}

	keys := maps.Keys(x)
	slices.Sort(keys)

	if _, err := io.WriteString(w, "<<"); err != nil {
		return err
	}
	for _, name := range keys {
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := name.PDF(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := writeValue(w, x[name]); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, " >>")
	return err
}

// Reference represents an indirect reference to an object.
type Reference struct {
	Number     int
	Generation int
}

// PDF implements the Object interface.
func (x Reference) PDF(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d %d R", x.Number, x.Generation)
	return err
}

// Stream represents a stream object in a PDF file.  The stream data is
// held in memory so that the same object graph can be serialized
// repeatedly; the /Length entry is derived from the data at write
// time.
type Stream struct {
	Dict
	Data []byte
}

// PDF implements the Object interface.
func (x *Stream) PDF(w io.Writer) error {
	dict := maps.Clone(x.Dict)
	if dict == nil {
		dict = Dict{}
	}
	dict["Length"] = Integer(len(x.Data))
	if err := dict.PDF(w); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\nstream\n"); err != nil {
		return err
	}
	if _, err := w.Write(x.Data); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\nendstream")
	return err
}

func writeValue(w io.Writer, val Object) error {
	if val == nil {
		_, err := io.WriteString(w, "null")
		return err
	}
	return val.PDF(w)
}
