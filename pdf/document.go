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

import "fmt"

// Document is an assembled PDF object graph.  Object numbers are
// assigned in allocation order, starting at 1; generation numbers are
// always 0.
type Document struct {
	// Version is the PDF version written into the header.
	Version string

	// Trailer holds the trailer dictionary.  The Root entry must be
	// set before the document can be written; the Size entry is filled
	// in automatically.
	Trailer Dict

	// ExtraEOL is the number of extra end-of-line bytes appended after
	// the %%EOF marker.  The PDF grammar permits them, and since they
	// follow the startxref offset they shift no recorded position.
	ExtraEOL int

	objects []Object
}

// NewDocument returns an empty PDF 1.5 document.
func NewDocument() *Document {
	return &Document{
		Version: "1.5",
		Trailer: Dict{},
	}
}

// Alloc reserves the next object number without supplying the object
// yet.  This allows objects to reference each other cyclically; the
// object must be provided with Set before the document is written.
func (d *Document) Alloc() Reference {
	d.objects = append(d.objects, nil)
	return Reference{Number: len(d.objects)}
}

// Add allocates the next object number and stores obj under it.
func (d *Document) Add(obj Object) Reference {
	ref := d.Alloc()
	d.objects[ref.Number-1] = obj
	return ref
}

// Set stores obj under a previously allocated reference.
func (d *Document) Set(ref Reference, obj Object) error {
	if ref.Number < 1 || ref.Number > len(d.objects) {
		return fmt.Errorf("pdf: reference %d %d R was never allocated",
			ref.Number, ref.Generation)
	}
	d.objects[ref.Number-1] = obj
	return nil
}

// NumObjects returns the number of allocated indirect objects.
func (d *Document) NumObjects() int {
	return len(d.objects)
}
