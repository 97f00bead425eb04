package gifcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetCodeLength(t *testing.T) {
	cases := []struct {
		code uint32
		want int
	}{
		{0b00000000000000000000000000000001, 1},
		{0b00000000000000000000000000000000, 1},
		{0b10000000000000000000000000000000, 32},
		{0b00000000000001000000000000000000, 19},
		{0b00000000000000000000100000000000, 12},
		{0b00000000000000001000000000000000, 16},
		{0b00000000001000000000000000000000, 22},
		{0b00000000000000000001000000000000, 13},
	}
	for _, c := range cases {
		require.Equal(t, c.want, getCodeLength(c.code))
	}
}

func TestEncodeProducesExpectedCodes(t *testing.T) {
	data := []byte{5, 6, 7, 8, 5, 6, 7, 5, 6, 7, 7, 6, 5, 4}
	encoding := Encode(data, 4095, 0)

	want := []Code{
		{5, 8},
		{6, 9},
		{7, 9},
		{8, 9},
		{256, 9},
		{7, 9},
		{260, 9},
		{7, 9},
		{6, 9},
		{5, 9},
		{4, 9},
	}
	require.Equal(t, want, encoding.Codes)
	require.Equal(t, len(data), encoding.BytesProcessed)
}

func TestDecodeReproducesOriginalData(t *testing.T) {
	data := []byte{5, 6, 7, 8, 5, 6, 7, 5, 6, 7, 7, 6, 5, 4}
	encoding := Encode(data, 4095, 0)
	decoded, err := Decode(encoding.Codes, 0)
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func TestDecodeReproducesRepetitiveBlocks(t *testing.T) {
	data := make([]byte, 2000)
	for i := range data {
		data[i] = 5
	}
	encoding := Encode(data, 4095, 2)
	decoded, err := Decode(encoding.Codes, 2)
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func sawtoothData(n int) []byte {
	data := make([]byte, n)
	i := 0
	for j := range data {
		data[j] = byte(i)
		i = (i + 131) % 256
	}
	return data
}

func TestDecodeWorksForLargeData(t *testing.T) {
	data := sawtoothData(30000)
	encoding := Encode(data, 4095, 0)
	decoded, err := Decode(encoding.Codes, 0)
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func TestEncodeStopsAtMaxEncodings(t *testing.T) {
	data := sawtoothData(30000)
	encoding := Encode(data, 511, 0)
	require.NotEqual(t, 30000, encoding.BytesProcessed)
	require.Less(t, encoding.BytesProcessed, 30000)
}

func TestEncodeDecodeWithReservedCodes(t *testing.T) {
	data := sawtoothData(30000)
	encoding := Encode(data, 4095, 12)
	decoded, err := Decode(encoding.Codes, 12)
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func TestEncodeAllDoesNotCorruptData(t *testing.T) {
	data := sawtoothData(30000)
	segments := EncodeAll(data, 511, 0)
	require.Greater(t, len(segments), 1)

	var decoded []byte
	for _, segment := range segments {
		chunk, err := Decode(segment.Codes, 0)
		require.NoError(t, err)
		decoded = append(decoded, chunk...)
	}
	require.Equal(t, data, decoded)
}

func TestEncodeEmptyInput(t *testing.T) {
	encoding := Encode(nil, 4095, 2)
	require.Empty(t, encoding.Codes)
	require.Equal(t, 0, encoding.BytesProcessed)
}

func TestDecodeRejectsUnexplainedMissingCode(t *testing.T) {
	// Right after the first code, with two reserved codes, only 258 (the
	// next code the dictionary will allocate) is legal as the KwKwK case;
	// 999 is neither in the dictionary nor that code.
	_, err := Decode([]Code{{Value: 5, Length: 9}, {Value: 999, Length: 9}}, 2)
	require.ErrorIs(t, err, ErrCorruptStream)
}

func TestDecodeRejectsEmptyCodeList(t *testing.T) {
	_, err := Decode(nil, 0)
	require.ErrorIs(t, err, ErrEmptyCodes)

	_, err = Decode([]Code{}, 2)
	require.ErrorIs(t, err, ErrEmptyCodes)
}
