package gifcore

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGifImageByteExactSinglePixel(t *testing.T) {
	raster := NewIndexedRaster(1, 1, RGB{0, 0, 0})
	img := NewGifImage(raster)

	var buf bytes.Buffer
	n, err := img.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)

	data := buf.Bytes()
	require.Equal(t, []byte("GIF89a"), data[0:6])
	require.Equal(t, []byte{1, 0}, data[6:8], "width little-endian")
	require.Equal(t, []byte{1, 0}, data[8:10], "height little-endian")
	require.Equal(t, byte(0xF7), data[10])
	require.Equal(t, byte(0x00), data[11])
	require.Equal(t, byte(0x00), data[12])

	colorTable := data[13:781]
	require.Len(t, colorTable, 768)
	require.Equal(t, make([]byte, 768), colorTable, "every entry black")

	require.Equal(t, byte(0x2C), data[781])
	require.Equal(t, []byte{0, 0, 0, 0}, data[782:786])
	require.Equal(t, []byte{1, 0}, data[786:788])
	require.Equal(t, []byte{1, 0}, data[788:790])
	require.Equal(t, byte(0x00), data[790])
	require.Equal(t, byte(0x08), data[791])

	// clear(256,9) + pixel-code(0,9) + EOI(257,9) = 27 bits -> 4 bytes.
	stream := NewBitStream(nil)
	stream.Append(FromCode(clearCode, 9))
	stream.Append(FromCode(0, 9))
	stream.Append(FromCode(eoiCode, 9))
	packed := stream.Bytes()
	require.Len(t, packed, 4)

	wantSubBlock := append([]byte{byte(len(packed))}, packed...)
	wantSubBlock = append(wantSubBlock, 0x00)
	require.Equal(t, wantSubBlock, data[792:792+len(wantSubBlock)])

	require.Equal(t, byte(0x3B), data[len(data)-1])
	require.Equal(t, 792+len(wantSubBlock)+1, len(data))
}

func TestGifImageRejectsTooManyColors(t *testing.T) {
	raster := NewIndexedRaster(2, 2, RGB{0, 0, 0})
	for i := 0; i < 300; i++ {
		raster.Palette.Index(RGB{byte(i % 255), byte(i / 255), 1})
	}
	img := NewGifImage(raster)

	var buf bytes.Buffer
	_, err := img.WriteTo(&buf)
	require.ErrorIs(t, err, ErrTooManyColors)
}

func TestGifImageRejectsOversizedDimensions(t *testing.T) {
	raster := &IndexedRaster{
		Palette: NewPalette(),
		Canvas:  &Canvas[int]{Width: 70000, Height: 1, Pixels: make([]int, 70000)},
	}
	raster.Palette.Index(RGB{0, 0, 0})
	img := NewGifImage(raster)

	var buf bytes.Buffer
	_, err := img.WriteTo(&buf)
	require.ErrorIs(t, err, ErrImageTooLarge)
}

func TestWriteSubBlocksTerminatesExactMultipleOf255(t *testing.T) {
	buf := newOutputBuffer()
	data := make([]byte, 255)
	writeSubBlocks(buf, data)
	got := buf.bytes()
	require.Equal(t, byte(255), got[0])
	require.Equal(t, byte(0x00), got[len(got)-1])
	require.Len(t, got, 1+255+1)
}

func TestBuildCodeStreamHandlesEmptyRaster(t *testing.T) {
	codes := buildCodeStream(nil)
	require.Equal(t, []Code{{clearCode, 9}, {eoiCode, 9}}, codes)
}
