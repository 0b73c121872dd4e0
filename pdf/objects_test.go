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
	"testing"
)

func format(t *testing.T, obj Object) string {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := writeValue(buf, obj); err != nil {
		t.Fatalf("formatting %v: %v", obj, err)
	}
	return buf.String()
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in  Object
		out string
	}{
		{nil, "null"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Integer(0), "0"},
		{Integer(-12), "-12"},
		{Real(0), "0.0"},
		{Real(1.5), "1.5"},
		{Real(-0.25), "-0.25"},
		{Name("F1"), "/F1"},
		{Name("A B"), "/A#20B"},
		{String(nil), "()"},
		{String("4444"), "(4444)"},
		{String("a(b"), `(a\(b)`},
		{String("a)b"), `(a\)b)`},
		{String(`back\slash`), `(back\\slash)`},
		{String("cr\rlf\n"), "(cr\\rlf\n)"},
		{String("\x01"), `(\001)`},
		{Array{Integer(0), Integer(0), Integer(595), Integer(842)},
			"[ 0 0 595 842 ]"},
		{Array{Integer(1), nil, Integer(3)}, "[ 1 null 3 ]"},
		{Dict{"Type": Name("Page")}, "<< /Type /Page >>"},
		{Dict{"B": Integer(2), "A": Integer(1)}, "<< /A 1 /B 2 >>"},
		{Dict(nil), "null"},
		{Reference{Number: 3}, "3 0 R"},
		{&Stream{Dict: Dict{}, Data: []byte("BT\nET\n")},
			"<< /Length 6 >>\nstream\nBT\nET\n\nendstream"},
	}
	for _, test := range cases {
		if out := format(t, test.in); out != test.out {
			t.Errorf("wrongly formatted, expected %q but got %q",
				test.out, out)
		}
	}
}

func TestFormatDeterministic(t *testing.T) {
	dict := Dict{
		"Root": Reference{Number: 4},
		"Size": Integer(5),
		"Kids": Array{Reference{Number: 3}},
	}
	first := format(t, dict)
	for i := 0; i < 10; i++ {
		if got := format(t, dict); got != first {
			t.Fatalf("serialization not deterministic: %q vs %q", first, got)
		}
	}
}

func TestContentEncode(t *testing.T) {
	content := Content{
		Operations: []Operation{
			Op("BT"),
			Op("Tf", Name("F1"), Real(0)),
			Op("Td", Integer(100), Integer(600)),
			Op("Tj", String("44")),
			Op("ET"),
		},
	}
	got, err := content.Encode()
	if err != nil {
		t.Fatal(err)
	}
	want := "BT\n/F1 0.0 Tf\n100 600 Td\n(44) Tj\nET\n"
	if string(got) != want {
		t.Errorf("expected %q but got %q", want, got)
	}
}
