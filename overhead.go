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

// MinSize is the smallest total file size that can be produced.  With
// an empty payload the document still costs baseOverhead bytes plus
// two digits for the /Length counter and three digits for the
// startxref offset.
const MinSize = 544

// The three constants below were measured against the serialization
// format of the pdf subpackage for the document shape built by
// buildDocument.  Any change to that shape, to the serialization
// format, or to the PDF version invalidates them; writer_test.go in
// the pdf package pins the byte layout they depend on.
const (
	// baseOverhead is the byte cost of everything except the payload
	// and the two variable-width decimal fields: header and binary
	// marker, the four object skeletons, the content stream operators,
	// the cross-reference table and the trailer.
	baseOverhead = 539

	// streamOverhead is the per-stream encapsulation cost separating
	// the content stream's /Length counter from the rest of the
	// skeleton.  It is counted on top of the payload when predicting
	// the value of the counter.
	streamOverhead = 31

	// xrefTailOffset is the distance from the end of the file back to
	// the start of the cross-reference table, as seen by a file whose
	// startxref offset has three digits.
	xrefTailOffset = 162
)

// Overhead is the number of bytes a generated file spends on document
// structure, broken down into the fixed skeleton cost and the widths
// of the two size-dependent decimal fields.
type Overhead struct {
	// Base is the fixed skeleton cost, independent of the target size.
	Base int64

	// Start is the digit width of the content stream's /Length entry.
	Start int64

	// End is the digit width of the startxref offset.
	End int64
}

// Total returns the total overhead in bytes.  The payload length for a
// target size t is t - Total().
func (o Overhead) Total() int64 {
	return o.Base + o.Start + o.End
}

// EstimateOverhead predicts the structural overhead of a file with the
// given total size.  It returns a *SizeError if target is below
// MinSize.
//
// Both variable fields are self-referential: the printed width of the
// /Length counter is part of the file, so it shifts the payload length
// it is counting, and likewise for the startxref offset.  The estimate
// resolves this with a single corrective subtraction instead of
// iterating to a fixed point:
//
//	content = target - baseOverhead + streamOverhead
//	Start   = digitWidth(content - digitWidth(content))
//	End     = digitWidth(target - xrefTailOffset)
//
// Subtracting the digit width moves the counter value by at most a few
// bytes, which changes its own width only when the value sits right at
// a power of ten.  Generate compensates for that residual by
// re-measuring the encoded document.
func EstimateOverhead(target int64) (Overhead, error) {
	if target < MinSize {
		return Overhead{}, &SizeError{Requested: target}
	}

	content := target - baseOverhead + streamOverhead
	width := digitWidth(content)
	start := digitWidth(content - width)
	end := digitWidth(target - xrefTailOffset)
	if width == 0 || start == 0 || end == 0 {
		// cannot happen for target >= MinSize
		return Overhead{}, &SizeError{Requested: target}
	}

	return Overhead{Base: baseOverhead, Start: start, End: end}, nil
}

// digitWidth returns the number of decimal digits needed to print n,
// or 0 if n is not positive.
func digitWidth(n int64) int64 {
	var w int64
	for n > 0 {
		w++
		n /= 10
	}
	return w
}
