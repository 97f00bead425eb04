// Package gifcore turns an in-memory indexed-color raster into a byte-exact
// GIF89a file.
//
// The package is split into three layers: a bit-level packer (BitStream),
// an LZW codec built on top of it (Encode/EncodeAll/Decode), and the GIF89a
// container emitter (GifImage) that drives both to produce a complete file.
// Everything here is single-threaded and allocation-only; there is no
// animation, no local color tables, and no transparency support.
package gifcore
