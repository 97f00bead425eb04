package gifcore

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	clearCode           = 256
	eoiCode             = 257
	reservedCodeCount   = 2
	maxDictionarySize   = 4095
	globalColorTableLen = 256
)

var gifSignature = []byte("GIF89a")

// GifImage is an IndexedRaster prepared for a single GIF89a emission. It
// holds no animation state: one frame, one global color table, no local
// color tables, no transparency.
type GifImage struct {
	raster *IndexedRaster
}

// NewGifImage wraps raster for emission. The raster is read, never mutated,
// during WriteTo/Write.
func NewGifImage(raster *IndexedRaster) *GifImage {
	return &GifImage{raster: raster}
}

// WriteTo assembles the full GIF89a byte stream for the image and writes it
// to w in one call. It returns ErrTooManyColors if the palette holds more
// than 256 colors, or ErrImageTooLarge if either dimension exceeds 65535.
func (g *GifImage) WriteTo(w io.Writer) (int64, error) {
	data, err := g.encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), errors.Wrap(err, "gifcore: write GIF data")
}

// Write creates (truncating if necessary) the file at path and writes the
// assembled GIF89a byte stream to it, closing the file on every exit path.
func (g *GifImage) Write(path string) error {
	data, err := g.encode()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "gifcore: create %s", path)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return errors.Wrapf(err, "gifcore: write %s", path)
	}
	return nil
}

func (g *GifImage) encode() ([]byte, error) {
	if g.raster.Palette.Len() > globalColorTableLen {
		return nil, ErrTooManyColors
	}
	width := g.raster.Canvas.Width
	height := g.raster.Canvas.Height
	if width > 0xFFFF || height > 0xFFFF {
		return nil, ErrImageTooLarge
	}

	buf := newOutputBuffer()
	buf.writeBytes(gifSignature)
	writeUint16LE(buf, uint16(width))
	writeUint16LE(buf, uint16(height))
	buf.writeByte(0xF7)
	buf.writeByte(0x00)
	buf.writeByte(0x00)

	writeColorTable(buf, g.raster.Palette)

	buf.writeByte(0x2C)
	buf.writeBytes([]byte{0, 0, 0, 0})
	writeUint16LE(buf, uint16(width))
	writeUint16LE(buf, uint16(height))
	buf.writeByte(0x00)
	buf.writeByte(0x08)

	packed := packCodeStream(buildCodeStream(pixelBytes(g.raster.Canvas)))
	writeSubBlocks(buf, packed)

	buf.writeByte(0x3B)
	return buf.bytes(), nil
}

func writeUint16LE(buf *outputBuffer, v uint16) {
	buf.writeByte(byte(v))
	buf.writeByte(byte(v >> 8))
}

func writeColorTable(buf *outputBuffer, palette *Palette) {
	for i := 0; i < globalColorTableLen; i++ {
		if rgb, ok := palette.Color(i); ok {
			buf.writeByte(rgb.Red)
			buf.writeByte(rgb.Green)
			buf.writeByte(rgb.Blue)
			continue
		}
		buf.writeByte(0)
		buf.writeByte(0)
		buf.writeByte(0)
	}
}

func pixelBytes(canvas *Canvas[int]) []byte {
	out := make([]byte, len(canvas.Pixels))
	for i, idx := range canvas.Pixels {
		out[i] = byte(idx)
	}
	return out
}

// buildCodeStream wraps the raw pixel indices with the clear/EOI control
// codes the GIF LZW sub-stream requires: one leading clear, one intermittent
// clear between every pair of dictionary-limited segments, and a trailing
// EOI at the bit width the last emitted data code used.
func buildCodeStream(pixels []byte) []Code {
	codes := []Code{{Value: clearCode, Length: 9}}
	segments := EncodeAll(pixels, maxDictionarySize, reservedCodeCount)
	lastWidth := 9
	for i, segment := range segments {
		codes = append(codes, segment.Codes...)
		if len(segment.Codes) > 0 {
			lastWidth = segment.Codes[len(segment.Codes)-1].Length
		}
		if i != len(segments)-1 {
			codes = append(codes, Code{Value: clearCode, Length: 12})
		}
	}
	codes = append(codes, Code{Value: eoiCode, Length: lastWidth})
	return codes
}

func packCodeStream(codes []Code) []byte {
	stream := NewBitStream(nil)
	for _, code := range codes {
		stream.Append(FromCode(code.Value, code.Length))
	}
	return stream.Bytes()
}

// writeSubBlocks frames data into GIF sub-blocks: a length byte (1..255)
// followed by that many data bytes, repeated until all of data is written
// (only the last block may hold fewer than 255 bytes), followed by a single
// terminating zero byte. A data length that is
// an exact multiple of 255 does not get a spurious zero-length sub-block
// ahead of the terminator; the terminator alone closes the sequence.
func writeSubBlocks(buf *outputBuffer, data []byte) {
	for len(data) > 0 {
		n := len(data)
		if n > 255 {
			n = 255
		}
		buf.writeByte(byte(n))
		buf.writeBytes(data[:n])
		data = data[n:]
	}
	buf.writeByte(0x00)
}
