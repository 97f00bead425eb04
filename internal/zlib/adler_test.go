package zlib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdler32EmptyInputIsOne(t *testing.T) {
	require.Equal(t, uint32(1), Adler32(1, nil))
}

func TestAdler32MatchesHandComputedChecksum(t *testing.T) {
	// s1: 1 -> 2 -> 4 -> 7 -> 11; s2: 0 -> 2 -> 6 -> 13 -> 24.
	require.Equal(t, uint32(0x18000B), Adler32(1, []byte{1, 2, 3, 4}))
}

func TestAdler32ResumesFromPriorChecksum(t *testing.T) {
	whole := Adler32(1, []byte{1, 2, 3, 4})
	split := Adler32(Adler32(1, []byte{1, 2}), []byte{3, 4})
	require.Equal(t, whole, split)
}
