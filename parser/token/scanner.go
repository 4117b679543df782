package token

import (
	"io"
	"sort"
	"unicode/utf8"
)

// Scanner holds the complete text of a source stream and resolves byte
// offsets within it to source locations.
type Scanner struct {
	file  string
	buf   []byte
	lines []int // byte offset of the first byte of each line
}

// NewScanner reads all of r and returns a Scanner for its contents.
func NewScanner(file string, r io.Reader) (*Scanner, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewScannerBytes(file, buf), nil
}

// NewScannerBytes returns a Scanner for buf.
func NewScannerBytes(file string, buf []byte) *Scanner {
	s := &Scanner{
		file:  file,
		buf:   buf,
		lines: []int{0},
	}
	for i, c := range buf {
		if c == '\n' {
			s.lines = append(s.lines, i+1)
		}
	}
	return s
}

// File returns the name of the source stream.
func (s *Scanner) File() string {
	return s.file
}

// Bytes returns the source text.  The returned slice must not be modified.
func (s *Scanner) Bytes() []byte {
	return s.buf
}

// Loc returns the location of the byte at offset pos.  Columns are counted in
// runes.
func (s *Scanner) Loc(pos int) *Location {
	if pos > len(s.buf) {
		pos = len(s.buf)
	}
	line := sort.Search(len(s.lines), func(i int) bool { return s.lines[i] > pos }) - 1
	if line < 0 {
		line = 0
	}
	start := s.lines[line]
	return &Location{
		File: s.file,
		Pos:  pos,
		Line: line + 1,
		Col:  utf8.RuneCount(s.buf[start:pos]) + 1,
	}
}
