// Package png is an abandoned PNG chunk writer. HeaderChunk and
// PaletteChunk serialize correctly; DataChunk and EndChunk were never
// finished and their Append methods are no-ops. Nothing in this module
// writes a PNG file through this package; it is kept as an inert
// collaborator alongside the GIF emitter it was originally built next to.
package png

import (
	"encoding/binary"

	"github.com/castellan-io/gifcore/internal/crc"
)

var (
	headerSignature  = [4]byte{0x49, 0x48, 0x44, 0x52}
	paletteSignature = [4]byte{0x50, 0x4c, 0x54, 0x45}
	dataSignature    = [4]byte{0x49, 0x44, 0x41, 0x54}
	endSignature     = [4]byte{0x49, 0x45, 0x4e, 0x44}
)

// Chunk is one length-prefixed, CRC-suffixed PNG chunk.
type Chunk interface {
	Append(bytes []byte) []byte
}

func chunkBytes(signature [4]byte, data []byte) []byte {
	out := make([]byte, 0, 12+len(data))
	out = binary.BigEndian.AppendUint32(out, uint32(len(data)))
	out = append(out, signature[:]...)
	out = append(out, data...)
	checked := out[4:]
	checksum := crc.Calculate(checked)
	out = binary.BigEndian.AppendUint32(out, checksum)
	return out
}

// ColorType is the PNG IHDR color type field.
type ColorType byte

const (
	ColorTypeGrayScale      ColorType = 0
	ColorTypeTrueColor      ColorType = 2
	ColorTypePalette        ColorType = 3
	ColorTypeGrayScaleAlpha ColorType = 4
	ColorTypeTrueColorAlpha ColorType = 6
)

// InterlaceType is the PNG IHDR interlace method field.
type InterlaceType byte

const (
	InterlaceNone  InterlaceType = 0
	InterlaceAdam7 InterlaceType = 1
)

// HeaderChunk is the IHDR chunk. Bit depth is fixed at 8.
type HeaderChunk struct {
	Width     uint32
	Height    uint32
	ColorType ColorType
	Interlace InterlaceType
}

// Append serializes the IHDR chunk and appends it to bytes.
func (h HeaderChunk) Append(bytes []byte) []byte {
	data := make([]byte, 0, 13)
	data = binary.BigEndian.AppendUint32(data, h.Width)
	data = binary.BigEndian.AppendUint32(data, h.Height)
	data = append(data, 8, byte(h.ColorType), 0, 0, byte(h.Interlace))
	return append(bytes, chunkBytes(headerSignature, data)...)
}

// PaletteValue is one PLTE entry.
type PaletteValue struct {
	Red, Green, Blue byte
}

// PaletteChunk is the PLTE chunk.
type PaletteChunk struct {
	Entries []PaletteValue
}

// Append serializes the PLTE chunk and appends it to bytes.
func (p PaletteChunk) Append(bytes []byte) []byte {
	data := make([]byte, 0, len(p.Entries)*3)
	for _, entry := range p.Entries {
		data = append(data, entry.Red, entry.Green, entry.Blue)
	}
	return append(bytes, chunkBytes(paletteSignature, data)...)
}

// Scanline is one row of a PNG image's filtered, uncompressed sample data.
type Scanline struct {
	Samples []byte
}

// DataChunk would be the IDAT chunk. It was never wired up to the deflate
// compressor this format requires, so Append is a no-op: it leaves bytes
// untouched and returns it unchanged.
type DataChunk struct {
	Scanlines []Scanline
}

// Append does nothing; see DataChunk.
func (DataChunk) Append(bytes []byte) []byte {
	return bytes
}

// EndChunk would be the IEND chunk. Like DataChunk, it was never finished.
type EndChunk struct{}

// Append does nothing; see EndChunk.
func (EndChunk) Append(bytes []byte) []byte {
	return bytes
}
