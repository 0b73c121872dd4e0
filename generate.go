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

package exactpdf

import (
	"fmt"

	"github.com/exactpdf/exactpdf/pdf"
)

// fillByte is the payload filler.  It needs no escaping inside a PDF
// literal string, so one payload byte always costs one file byte.
const fillByte = '4'

const (
	// maxSizingRounds bounds the measure-and-adjust loop.  The
	// closed-form estimate is off by a few bytes at most, so two
	// rounds already suffice in practice.
	maxSizingRounds = 4

	// maxEOLPadding is the largest number of end-of-line bytes
	// appended after %%EOF.  A one-byte payload increment can grow the
	// file by up to three bytes when digit widths bump, so targets can
	// be unreachable by payload adjustment alone by at most two bytes.
	maxEOLPadding = 2
)

// Generate builds a single-page document that serializes to exactly
// targetSize bytes.  It returns a *SizeError if targetSize is below
// MinSize.  The returned document is independent of any other call;
// Generate is safe for concurrent use.
func Generate(targetSize int64) (*pdf.Document, error) {
	overhead, err := EstimateOverhead(targetSize)
	if err != nil {
		return nil, err
	}

	fill := newFillBuffer(targetSize - overhead.Total())

	// The estimate can miss the target by a few bytes when a counter
	// value sits at a power of ten.  Re-measure the real encoded
	// length and shift the payload by the difference until the two
	// agree.
	var best *pdf.Document
	bestLen := int64(-1)
	length := targetSize - overhead.Total()
	for round := 0; round < maxSizingRounds; round++ {
		if length < 0 {
			return nil, &SizeError{Requested: targetSize}
		}
		doc, err := buildDocument(fill.take(length))
		if err != nil {
			return nil, err
		}
		n, err := doc.EncodedLength()
		if err != nil {
			return nil, fmt.Errorf("measuring document: %w", err)
		}
		if n == targetSize {
			return doc, nil
		}
		if n < targetSize && n > bestLen {
			best, bestLen = doc, n
		}
		length += targetSize - n
	}

	// A payload increment that bumps a digit width grows the file by
	// two bytes, so the loop above oscillates around such targets.
	// End-of-line bytes after %%EOF are valid PDF and shift no
	// cross-reference offset; close the last gap with those.
	if best != nil && targetSize-bestLen <= maxEOLPadding {
		best.ExtraEOL = int(targetSize - bestLen)
		return best, nil
	}
	return nil, fmt.Errorf("sizing did not converge for %d bytes", targetSize)
}

// buildDocument assembles the fixed document shape around the given
// payload: a Courier font resource, a content stream showing the
// payload as a literal string, one page, the page tree root and the
// catalog.  Object numbers are fixed: 1 page tree, 2 content stream,
// 3 page, 4 catalog.
//
// Every name, key and operand below is part of the measured skeleton.
// Changing any of them, or the serialization format of the pdf
// package, requires re-measuring the constants in overhead.go.
func buildDocument(payload []byte) (*pdf.Document, error) {
	doc := pdf.NewDocument()
	pagesRef := doc.Alloc()

	content := pdf.Content{
		Operations: []pdf.Operation{
			pdf.Op("BT"),
			pdf.Op("Tf", pdf.Name("F1"), pdf.Real(0)),
			pdf.Op("Td", pdf.Integer(100), pdf.Integer(600)),
			pdf.Op("Tj", pdf.String(payload)),
			pdf.Op("ET"),
		},
	}
	encoded, err := content.Encode()
	if err != nil {
		return nil, err
	}
	contentRef := doc.Add(&pdf.Stream{Dict: pdf.Dict{}, Data: encoded})

	pageRef := doc.Add(pdf.Dict{
		"Type":     pdf.Name("Page"),
		"Parent":   pagesRef,
		"Contents": contentRef,
	})

	err = doc.Set(pagesRef, pdf.Dict{
		"Type":  pdf.Name("Pages"),
		"Kids":  pdf.Array{pageRef},
		"Count": pdf.Integer(1),
		"Resources": pdf.Dict{
			"Font": pdf.Dict{
				"F1": pdf.Dict{
					"Type":     pdf.Name("Font"),
					"Subtype":  pdf.Name("Type1"),
					"BaseFont": pdf.Name("Courier"),
				},
			},
		},
		// A4 in default user space units.
		"MediaBox": pdf.Array{
			pdf.Integer(0), pdf.Integer(0),
			pdf.Integer(595), pdf.Integer(842),
		},
	})
	if err != nil {
		return nil, err
	}

	catalogRef := doc.Add(pdf.Dict{
		"Type":  pdf.Name("Catalog"),
		"Pages": pagesRef,
	})
	doc.Trailer["Root"] = catalogRef

	return doc, nil
}

// fillBuffer owns the payload bytes.  The sizing loop changes the
// requested length by a few bytes between rounds, so the buffer keeps
// some slack to avoid reallocating a payload that can be hundreds of
// megabytes.
type fillBuffer struct {
	buf []byte
}

const fillSlack = 16

func newFillBuffer(n int64) *fillBuffer {
	if n < 0 {
		n = 0
	}
	return &fillBuffer{buf: filled(n + fillSlack)}
}

// take returns a payload of exactly n bytes.
func (b *fillBuffer) take(n int64) []byte {
	if int64(len(b.buf)) < n {
		b.buf = filled(n + fillSlack)
	}
	return b.buf[:n]
}

func filled(n int64) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = fillByte
	}
	return buf
}
