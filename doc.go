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

// Package exactpdf builds single-page PDF documents whose serialized
// length equals a requested byte count exactly.
//
// A PDF file contains two fields whose printed width depends on the
// total file size: the /Length entry of the content stream and the
// byte offset recorded after the startxref keyword.  Both are written
// as plain decimal numbers, so the number of bytes they occupy changes
// at every power of ten.  Hitting an exact total size therefore means
// solving a small fixed-point problem: the payload length determines
// the width of the counters, and the width of the counters determines
// the payload length.
//
// EstimateOverhead solves this with a closed-form, single-step
// correction.  Generate additionally re-measures the assembled
// document and adjusts the payload until the encoded length matches
// the target, so the result is exact for every size in range, not just
// away from digit-width boundaries.
package exactpdf
