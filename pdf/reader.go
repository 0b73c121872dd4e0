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

package pdf

import (
	"bytes"
	"fmt"
	"strconv"
)

// This file implements a small structural reader.  It is not a general
// PDF parser: it reads back exactly the kind of file the writer
// produces (header, uncompressed objects, a single classic
// cross-reference table) so that generated output can be verified.

// MalformedError indicates that a file is not structured the way this
// reader expects.
type MalformedError struct {
	Pos int64
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("pdf: malformed file at byte %d: %v", e.Pos, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// Info summarizes the structure of a serialized PDF file.
type Info struct {
	// Version is the version number from the file header, e.g. "1.5".
	Version string

	// XRefPos is the byte offset of the cross-reference table.
	XRefPos int64

	// Size is the trailer /Size entry: highest object number plus one.
	Size int

	// Root is the trailer /Root reference.
	Root Reference

	// Offsets holds the byte offset of each object; Offsets[i] belongs
	// to object number i+1.  Free objects are recorded as -1.
	Offsets []int64
}

// ReadInfo checks the header of a serialized file, resolves its
// startxref pointer and parses the cross-reference table and trailer.
func ReadInfo(buf []byte) (*Info, error) {
	if !bytes.HasPrefix(buf, []byte("%PDF-")) {
		return nil, &MalformedError{Err: fmt.Errorf("missing %%PDF header")}
	}
	eol := bytes.IndexByte(buf, '\n')
	if eol < 0 {
		return nil, &MalformedError{Err: fmt.Errorf("truncated header")}
	}
	version := string(bytes.TrimRight(buf[len("%PDF-"):eol], "\r"))

	idx := bytes.LastIndex(buf, []byte("startxref"))
	if idx < 0 {
		return nil, &MalformedError{
			Pos: int64(len(buf)),
			Err: fmt.Errorf("startxref not found"),
		}
	}
	s := &scanner{buf: buf, pos: idx + len("startxref")}
	xrefPos, err := s.readInt()
	if err != nil {
		return nil, err
	}
	if xrefPos < 0 || xrefPos >= int64(len(buf)) {
		return nil, &MalformedError{
			Pos: int64(idx),
			Err: fmt.Errorf("startxref offset %d out of range", xrefPos),
		}
	}

	s = &scanner{buf: buf, pos: int(xrefPos)}
	if err := s.expectKeyword("xref"); err != nil {
		return nil, err
	}
	first, err := s.readInt()
	if err != nil {
		return nil, err
	}
	count, err := s.readInt()
	if err != nil {
		return nil, err
	}
	if first != 0 || count < 1 {
		return nil, &MalformedError{
			Pos: xrefPos,
			Err: fmt.Errorf("unsupported xref subsection %d %d", first, count),
		}
	}

	// The count comes from the file, so it cannot be trusted as an
	// allocation size.
	capHint := count - 1
	if capHint > 1024 {
		capHint = 1024
	}
	offsets := make([]int64, 0, capHint)
	for i := int64(0); i < count; i++ {
		offset, err := s.readInt()
		if err != nil {
			return nil, err
		}
		if _, err := s.readInt(); err != nil { // generation
			return nil, err
		}
		s.skipWhite()
		if s.pos >= len(s.buf) {
			return nil, s.errorf("truncated xref entry")
		}
		kind := s.buf[s.pos]
		s.pos++
		switch kind {
		case 'n':
			if i > 0 {
				offsets = append(offsets, offset)
			}
		case 'f':
			if i > 0 {
				offsets = append(offsets, -1)
			}
		default:
			return nil, s.errorf("bad xref entry type %q", kind)
		}
	}

	if err := s.expectKeyword("trailer"); err != nil {
		return nil, err
	}
	obj, err := s.readObject()
	if err != nil {
		return nil, err
	}
	trailer, ok := obj.(Dict)
	if !ok {
		return nil, s.errorf("trailer is not a dictionary")
	}
	root, ok := trailer["Root"].(Reference)
	if !ok {
		return nil, s.errorf("trailer has no /Root reference")
	}
	size, ok := trailer["Size"].(Integer)
	if !ok {
		return nil, s.errorf("trailer has no /Size entry")
	}

	return &Info{
		Version: version,
		XRefPos: xrefPos,
		Size:    int(size),
		Root:    root,
		Offsets: offsets,
	}, nil
}

// ReadIndirect parses the indirect object with the given number.
// Stream objects are returned as *Stream with their raw data.
func ReadIndirect(buf []byte, info *Info, num int) (Object, error) {
	if num < 1 || num > len(info.Offsets) || info.Offsets[num-1] < 0 {
		return nil, &MalformedError{Err: fmt.Errorf("no such object %d 0", num)}
	}
	s := &scanner{buf: buf, pos: int(info.Offsets[num-1])}

	gotNum, err := s.readInt()
	if err != nil {
		return nil, err
	}
	if _, err := s.readInt(); err != nil { // generation
		return nil, err
	}
	if err := s.expectKeyword("obj"); err != nil {
		return nil, err
	}
	if gotNum != int64(num) {
		return nil, s.errorf("expected object %d, found %d", num, gotNum)
	}

	obj, err := s.readObject()
	if err != nil {
		return nil, err
	}

	dict, ok := obj.(Dict)
	if !ok || !s.atKeyword("stream") {
		return obj, nil
	}

	// stream data follows; its extent is given by /Length
	if err := s.expectKeyword("stream"); err != nil {
		return nil, err
	}
	if s.peek() == '\r' {
		s.pos++
	}
	if s.peek() != '\n' {
		return nil, s.errorf("missing newline after stream keyword")
	}
	s.pos++
	length, ok := dict["Length"].(Integer)
	if !ok {
		return nil, s.errorf("stream has no direct /Length")
	}
	end := s.pos + int(length)
	if end > len(s.buf) {
		return nil, s.errorf("stream data truncated")
	}
	data := s.buf[s.pos:end]
	s.pos = end
	if err := s.expectKeyword("endstream"); err != nil {
		return nil, err
	}
	return &Stream{Dict: dict, Data: data}, nil
}

// ReadObject parses a single object from the start of buf and returns
// it together with the number of bytes consumed.
func ReadObject(buf []byte) (Object, int, error) {
	s := &scanner{buf: buf}
	obj, err := s.readObject()
	if err != nil {
		return nil, 0, err
	}
	return obj, s.pos, nil
}

type scanner struct {
	buf []byte
	pos int
}

func (s *scanner) errorf(format string, a ...interface{}) error {
	return &MalformedError{Pos: int64(s.pos), Err: fmt.Errorf(format, a...)}
}

func isWhite(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isRegular(c byte) bool {
	return !isWhite(c) && !isDelimiter(c)
}

func (s *scanner) skipWhite() {
	for s.pos < len(s.buf) {
		c := s.buf[s.pos]
		if isWhite(c) {
			s.pos++
		} else if c == '%' {
			for s.pos < len(s.buf) && s.buf[s.pos] != '\n' && s.buf[s.pos] != '\r' {
				s.pos++
			}
		} else {
			return
		}
	}
}

func (s *scanner) peek() byte {
	if s.pos < len(s.buf) {
		return s.buf[s.pos]
	}
	return 0
}

func (s *scanner) readKeyword() string {
	s.skipWhite()
	start := s.pos
	for s.pos < len(s.buf) && isRegular(s.buf[s.pos]) {
		s.pos++
	}
	return string(s.buf[start:s.pos])
}

func (s *scanner) expectKeyword(word string) error {
	if got := s.readKeyword(); got != word {
		return s.errorf("expected %q, found %q", word, got)
	}
	return nil
}

// atKeyword reports whether the next token is the given keyword,
// without consuming it.
func (s *scanner) atKeyword(word string) bool {
	save := s.pos
	got := s.readKeyword()
	s.pos = save
	return got == word
}

func (s *scanner) readInt() (int64, error) {
	tok := s.readKeyword()
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, s.errorf("expected integer, found %q", tok)
	}
	return n, nil
}

func (s *scanner) readObject() (Object, error) {
	s.skipWhite()
	switch c := s.peek(); {
	case c == '/':
		return s.readName()
	case c == '(':
		return s.readLiteralString()
	case c == '[':
		return s.readArray()
	case c == '<':
		if s.pos+1 < len(s.buf) && s.buf[s.pos+1] == '<' {
			return s.readDict()
		}
		return s.readHexString()
	case c == '+' || c == '-' || c == '.' || c >= '0' && c <= '9':
		return s.readNumberOrReference()
	default:
		switch kw := s.readKeyword(); kw {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		case "null":
			return nil, nil
		default:
			return nil, s.errorf("unexpected token %q", kw)
		}
	}
}

func (s *scanner) readName() (Object, error) {
	s.pos++ // the slash
	var out []byte
	for s.pos < len(s.buf) && isRegular(s.buf[s.pos]) {
		c := s.buf[s.pos]
		if c == '#' && s.pos+2 < len(s.buf) {
			n, err := strconv.ParseUint(string(s.buf[s.pos+1:s.pos+3]), 16, 8)
			if err != nil {
				return nil, s.errorf("bad name escape")
			}
			out = append(out, byte(n))
			s.pos += 3
			continue
		}
		out = append(out, c)
		s.pos++
	}
	return Name(out), nil
}

func (s *scanner) readLiteralString() (Object, error) {
	s.pos++ // the opening parenthesis
	var out []byte
	depth := 1
	for s.pos < len(s.buf) {
		c := s.buf[s.pos]
		s.pos++
		switch c {
		case '(':
			depth++
			out = append(out, c)
		case ')':
			depth--
			if depth == 0 {
				return String(out), nil
			}
			out = append(out, c)
		case '\\':
			if s.pos >= len(s.buf) {
				return nil, s.errorf("unterminated string escape")
			}
			e := s.buf[s.pos]
			s.pos++
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '(', ')', '\\':
				out = append(out, e)
			case '\n':
				// line continuation
			case '\r':
				if s.pos < len(s.buf) && s.buf[s.pos] == '\n' {
					s.pos++
				}
			default:
				if e >= '0' && e <= '7' {
					n := int(e - '0')
					for i := 0; i < 2 && s.pos < len(s.buf); i++ {
						d := s.buf[s.pos]
						if d < '0' || d > '7' {
							break
						}
						n = n*8 + int(d-'0')
						s.pos++
					}
					out = append(out, byte(n))
				} else {
					out = append(out, e)
				}
			}
		default:
			out = append(out, c)
		}
	}
	return nil, s.errorf("unterminated literal string")
}

func (s *scanner) readHexString() (Object, error) {
	s.pos++ // the opening angle bracket
	var out []byte
	var hi byte
	haveHi := false
	for s.pos < len(s.buf) {
		c := s.buf[s.pos]
		s.pos++
		if c == '>' {
			if haveHi {
				out = append(out, hi<<4)
			}
			return String(out), nil
		}
		if isWhite(c) {
			continue
		}
		n, err := strconv.ParseUint(string([]byte{c}), 16, 8)
		if err != nil {
			return nil, s.errorf("bad hex digit %q", c)
		}
		if haveHi {
			out = append(out, hi<<4|byte(n))
			haveHi = false
		} else {
			hi = byte(n)
			haveHi = true
		}
	}
	return nil, s.errorf("unterminated hex string")
}

func (s *scanner) readArray() (Object, error) {
	s.pos++ // the opening bracket
	var out Array
	for {
		s.skipWhite()
		if s.peek() == ']' {
			s.pos++
			return out, nil
		}
		if s.pos >= len(s.buf) {
			return nil, s.errorf("unterminated array")
		}
		obj, err := s.readObject()
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
}

func (s *scanner) readDict() (Object, error) {
	s.pos += 2 // the opening brackets
	out := Dict{}
	for {
		s.skipWhite()
		if s.peek() == '>' {
			if s.pos+1 >= len(s.buf) || s.buf[s.pos+1] != '>' {
				return nil, s.errorf("unterminated dictionary")
			}
			s.pos += 2
			return out, nil
		}
		if s.peek() != '/' {
			return nil, s.errorf("dictionary key is not a name")
		}
		keyObj, err := s.readName()
		if err != nil {
			return nil, err
		}
		val, err := s.readObject()
		if err != nil {
			return nil, err
		}
		out[keyObj.(Name)] = val
	}
}

func (s *scanner) readNumberOrReference() (Object, error) {
	start := s.pos
	for s.pos < len(s.buf) && isRegular(s.buf[s.pos]) {
		s.pos++
	}
	tok := string(s.buf[start:s.pos])

	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		// could be the first half of an indirect reference "n g R"
		save := s.pos
		s.skipWhite()
		genStart := s.pos
		for s.pos < len(s.buf) && s.buf[s.pos] >= '0' && s.buf[s.pos] <= '9' {
			s.pos++
		}
		if s.pos > genStart {
			gen, _ := strconv.ParseInt(string(s.buf[genStart:s.pos]), 10, 64)
			s.skipWhite()
			if s.peek() == 'R' &&
				(s.pos+1 >= len(s.buf) || !isRegular(s.buf[s.pos+1])) {
				s.pos++
				return Reference{Number: int(n), Generation: int(gen)}, nil
			}
		}
		s.pos = save
		return Integer(n), nil
	}

	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil, s.errorf("bad number %q", tok)
	}
	return Real(f), nil
}
