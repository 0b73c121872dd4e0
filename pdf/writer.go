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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/maps"
)

// WriteTo serializes the document: header, indirect objects in number
// order, cross-reference table, trailer and startxref.  It implements
// io.WriterTo and returns the number of bytes written.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	pw := &posWriter{w: w}
	err := d.encode(pw)
	return pw.pos, err
}

// EncodedLength returns the number of bytes WriteTo would produce,
// without keeping any of them.
func (d *Document) EncodedLength() (int64, error) {
	return d.WriteTo(io.Discard)
}

// Save writes the document to the named file.  If writing fails the
// file is removed: a partially written document is never left behind.
func (d *Document) Save(name string) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(fd)
	if _, err = d.WriteTo(w); err == nil {
		err = w.Flush()
	}
	if err2 := fd.Close(); err == nil {
		err = err2
	}
	if err != nil {
		os.Remove(name)
	}
	return err
}

func (d *Document) encode(w *posWriter) error {
	if d.Trailer["Root"] == nil {
		return errors.New("pdf: missing document catalog")
	}

	version := d.Version
	if version == "" {
		version = "1.5"
	}
	_, err := fmt.Fprintf(w, "%%PDF-%s\n%%\x80\x80\x80\x80\n", version)
	if err != nil {
		return err
	}

	offsets := make([]int64, len(d.objects))
	for i, obj := range d.objects {
		if obj == nil {
			return fmt.Errorf("pdf: object %d 0 allocated but never set", i+1)
		}
		offsets[i] = w.pos
		if _, err = fmt.Fprintf(w, "%d 0 obj\n", i+1); err != nil {
			return err
		}
		if err = obj.PDF(w); err != nil {
			return err
		}
		if _, err = io.WriteString(w, "\nendobj\n"); err != nil {
			return err
		}
	}

	xrefPos := w.pos
	if _, err = fmt.Fprintf(w, "xref\n0 %d\n", len(d.objects)+1); err != nil {
		return err
	}
	if _, err = io.WriteString(w, "0000000000 65535 f\r\n"); err != nil {
		return err
	}
	for _, pos := range offsets {
		if _, err = fmt.Fprintf(w, "%010d %05d n\r\n", pos, 0); err != nil {
			return err
		}
	}

	if _, err = io.WriteString(w, "trailer\n"); err != nil {
		return err
	}
	trailer := maps.Clone(d.Trailer)
	trailer["Size"] = Integer(len(d.objects) + 1)
	if err = trailer.PDF(w); err != nil {
		return err
	}
	if _, err = fmt.Fprintf(w, "\nstartxref\n%d\n%%%%EOF", xrefPos); err != nil {
		return err
	}
	for i := 0; i < d.ExtraEOL; i++ {
		if _, err = io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

type posWriter struct {
	w   io.Writer
	pos int64
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}
