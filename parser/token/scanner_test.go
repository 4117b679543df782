package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerLoc(t *testing.T) {
	s, err := NewScanner("test", strings.NewReader("ab\nλc\n\nd"))
	require.NoError(t, err)
	assert.Equal(t, "test", s.File())
	tests := []struct {
		pos int
		loc string
	}{
		{0, "test:1:1"},
		{1, "test:1:2"},
		{3, "test:2:1"},
		{5, "test:2:2"}, // λ is two bytes
		{7, "test:3:1"},
		{8, "test:4:1"},
		{100, "test:4:2"},
	}
	for _, test := range tests {
		assert.Equal(t, test.loc, s.Loc(test.pos).String(), "pos %d", test.pos)
	}
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "f[3]", (&Location{File: "f", Pos: 3}).String())
	assert.Equal(t, "f:2", (&Location{File: "f", Pos: 3, Line: 2}).String())
	assert.Equal(t, "f:2:1", (&Location{File: "f", Pos: 3, Line: 2, Col: 1}).String())
}
