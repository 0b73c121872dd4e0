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

import "bytes"

// Operation is a single content stream operation: its operands in
// order, followed by the operator.
type Operation struct {
	Operator string
	Operands []Object
}

// Op builds an Operation.
func Op(operator string, operands ...Object) Operation {
	return Operation{Operator: operator, Operands: operands}
}

// Content is a sequence of content stream operations.
type Content struct {
	Operations []Operation
}

// Encode serializes the operations into content stream data.  Each
// operand is followed by a single space, each operation by a newline.
func (c Content) Encode() ([]byte, error) {
	buf := &bytes.Buffer{}
	for _, op := range c.Operations {
		for _, arg := range op.Operands {
			if err := writeValue(buf, arg); err != nil {
				return nil, err
			}
			buf.WriteByte(' ')
		}
		buf.WriteString(op.Operator)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
