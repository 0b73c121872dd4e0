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

// Package textgen creates plain-text files of a given size, filled with
// deterministic pseudo-random words.
package textgen

import (
	"io"
	"math/rand/v2"
	"os"
)

const (
	// maxLineWidth is the longest line the generator emits, newline
	// excluded.
	maxLineWidth = 72

	minWordLen = 2
	maxWordLen = 12
)

// A Reader produces exactly Size bytes of random lower-case words
// separated by spaces and newlines.  The byte stream is fully
// determined by the seed.
type Reader struct {
	size int64
	pos  int64
	rng  *rand.Rand

	line int // bytes emitted on the current line
	word []byte
}

// New returns a Reader which yields size bytes before reporting io.EOF.
func New(size int64, seed uint64) *Reader {
	return &Reader{
		size: size,
		rng:  rand.New(rand.NewPCG(seed, 0)),
	}
}

func (r *Reader) Read(p []byte) (int, error) {
	if r.pos >= r.size {
		return 0, io.EOF
	}

	n := 0
	for n < len(p) && r.pos < r.size {
		if len(r.word) == 0 {
			r.nextWord()
		}
		p[n] = r.word[0]
		r.word = r.word[1:]
		n++
		r.pos++
	}
	// The stream stops at exactly size bytes, even mid-word.  Make the
	// final byte a newline so the file ends like a text file.
	if r.pos == r.size {
		p[n-1] = '\n'
	}
	return n, nil
}

// nextWord refills r.word with a random word plus its separator.
func (r *Reader) nextWord() {
	length := minWordLen + r.rng.IntN(maxWordLen-minWordLen+1)
	word := make([]byte, length+1)
	for i := 0; i < length; i++ {
		word[i] = byte('a' + r.rng.IntN(26))
	}
	if r.line+length >= maxLineWidth {
		word[length] = '\n'
		r.line = 0
	} else {
		word[length] = ' '
		r.line += length + 1
	}
	r.word = word
}

// WriteFile writes size bytes of generated text to the named file.  On
// error the partially written file is removed.
func WriteFile(name string, size int64, seed uint64) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(fd, New(size, seed))
	if err2 := fd.Close(); err == nil {
		err = err2
	}
	if err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
