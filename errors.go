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

import "strconv"

// SizeError indicates that a requested file size is below MinSize,
// the smallest total size the fixed document shape can reach.
// The request is rejected, never clamped.
type SizeError struct {
	Requested int64
}

func (e *SizeError) Error() string {
	return "a generated PDF cannot be smaller than " +
		strconv.Itoa(MinSize) + " bytes due to structural overhead; " +
		strconv.FormatInt(e.Requested, 10) + " bytes requested"
}
