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
	"bytes"
	"errors"
	"testing"

	"github.com/exactpdf/exactpdf/pdf"
)

func generatedLength(t *testing.T, target int64) int64 {
	t.Helper()
	doc, err := Generate(target)
	if err != nil {
		t.Fatalf("Generate(%d): %v", target, err)
	}
	n, err := doc.EncodedLength()
	if err != nil {
		t.Fatalf("measuring Generate(%d): %v", target, err)
	}
	return n
}

func TestGenerateExact(t *testing.T) {
	var targets []int64
	// Every size in a small dense window, crossing the /Length
	// boundary at 610/611 and the startxref boundary around 1162.
	for target := int64(MinSize); target <= 1600; target++ {
		targets = append(targets, target)
	}
	// Sizes where a one-byte payload increment grows the file by two
	// bytes, so the target is only reachable with end-of-line padding.
	targets = append(targets, 610, 1162, 1512, 10163, 10514, 100164, 100516)
	// Digit-width boundaries of both variable fields further out.
	for _, center := range []int64{10000, 100000, 1000000} {
		for delta := int64(-5); delta <= 5; delta++ {
			targets = append(targets, center+delta)
		}
	}
	targets = append(targets, 54321, 1<<20, (1<<20)+1)
	if !testing.Short() {
		targets = append(targets, (1<<24)+12345, 1<<26)
	}

	for _, target := range targets {
		if n := generatedLength(t, target); n != target {
			t.Errorf("Generate(%d) serialized to %d bytes", target, n)
		}
	}
}

func TestGenerateTooSmall(t *testing.T) {
	for _, target := range []int64{MinSize - 1, 0} {
		_, err := Generate(target)
		var sizeErr *SizeError
		if !errors.As(err, &sizeErr) {
			t.Errorf("Generate(%d) returned %v, expected *SizeError",
				target, err)
			continue
		}
		if sizeErr.Requested != target {
			t.Errorf("error reports %d bytes requested, expected %d",
				sizeErr.Requested, target)
		}
	}
	if n := generatedLength(t, MinSize); n != MinSize {
		t.Errorf("Generate(%d) serialized to %d bytes", int64(MinSize), n)
	}
}

// Target 610 cannot be hit by payload adjustment alone: a 65-byte
// payload gives 609 bytes and a 66-byte payload gives 611, because the
// /Length counter grows from 99 to 100 in between.  The generator
// closes the gap with a newline after %%EOF.
func TestGeneratePadding(t *testing.T) {
	doc, err := Generate(610)
	if err != nil {
		t.Fatal(err)
	}
	if doc.ExtraEOL != 1 {
		t.Errorf("expected 1 padding byte, got %d", doc.ExtraEOL)
	}
	buf := &bytes.Buffer{}
	n, err := doc.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 610 {
		t.Errorf("Generate(610) serialized to %d bytes", n)
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("%%EOF\n")) {
		t.Error("padding byte missing after the EOF marker")
	}
}

func TestGenerateIdempotentLength(t *testing.T) {
	first := generatedLength(t, 77777)
	second := generatedLength(t, 77777)
	if first != second {
		t.Errorf("two calls produced %d and %d bytes", first, second)
	}
}

// End-to-end: serialize a 10000-byte document and read it back.
func TestGenerateRoundTrip(t *testing.T) {
	const target = 10000

	doc, err := Generate(target)
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	n, err := doc.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != target || buf.Len() != target {
		t.Fatalf("serialized to %d bytes, expected %d", buf.Len(), target)
	}

	info, err := pdf.ReadInfo(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if info.Version != "1.5" {
		t.Errorf("unexpected version %q", info.Version)
	}
	if info.Size != 5 || len(info.Offsets) != 4 {
		t.Errorf("expected 4 objects, trailer says %d", info.Size-1)
	}

	catalog := readDict(t, buf.Bytes(), info, info.Root.Number)
	if catalog["Type"] != pdf.Name("Catalog") {
		t.Fatalf("trailer root is %v, expected the catalog", catalog["Type"])
	}
	pages := readDict(t, buf.Bytes(), info,
		catalog["Pages"].(pdf.Reference).Number)
	if pages["Count"] != pdf.Integer(1) {
		t.Errorf("page tree count is %v, expected 1", pages["Count"])
	}
	kids := pages["Kids"].(pdf.Array)
	if len(kids) != 1 {
		t.Fatalf("page tree has %d kids, expected 1", len(kids))
	}
	page := readDict(t, buf.Bytes(), info, kids[0].(pdf.Reference).Number)
	if page["Type"] != pdf.Name("Page") {
		t.Errorf("kid is %v, expected a page", page["Type"])
	}

	obj, err := pdf.ReadIndirect(buf.Bytes(), info,
		page["Contents"].(pdf.Reference).Number)
	if err != nil {
		t.Fatal(err)
	}
	stream, ok := obj.(*pdf.Stream)
	if !ok {
		t.Fatalf("contents are %T, expected a stream", obj)
	}
	if stream.Dict["Length"] != pdf.Integer(len(stream.Data)) {
		t.Errorf("/Length %v does not match %d data bytes",
			stream.Dict["Length"], len(stream.Data))
	}

	// The payload is the literal string operand of the Tj operation.
	// It must decode to exactly the fill length, every byte '4'.
	overhead, err := EstimateOverhead(target)
	if err != nil {
		t.Fatal(err)
	}
	wantFill := target - overhead.Total()
	start := bytes.IndexByte(stream.Data, '(')
	if start < 0 {
		t.Fatal("no literal string in the content stream")
	}
	strObj, _, err := pdf.ReadObject(stream.Data[start:])
	if err != nil {
		t.Fatal(err)
	}
	payload, ok := strObj.(pdf.String)
	if !ok {
		t.Fatalf("operand is %T, expected pdf.String", strObj)
	}
	if int64(len(payload)) != wantFill {
		t.Errorf("payload decodes to %d bytes, expected %d",
			len(payload), wantFill)
	}
	for _, c := range payload {
		if c != fillByte {
			t.Errorf("payload contains byte %q", c)
			break
		}
	}
}

func readDict(t *testing.T, buf []byte, info *pdf.Info, num int) pdf.Dict {
	t.Helper()
	obj, err := pdf.ReadIndirect(buf, info, num)
	if err != nil {
		t.Fatal(err)
	}
	dict, ok := obj.(pdf.Dict)
	if !ok {
		t.Fatalf("object %d is %T, expected Dict", num, obj)
	}
	return dict
}
