package gifcore

import "github.com/pkg/errors"

// Sentinel errors returned by this package. Wrap them with errors.Wrap/Wrapf
// from github.com/pkg/errors when adding context; callers can still match
// with errors.Is against the values below.
var (
	// ErrTooManyColors is returned by GifImage.WriteTo and GifImage.Write
	// when the raster's palette holds more than 256 colors.
	ErrTooManyColors = errors.New("gifcore: palette holds more than 256 colors")

	// ErrCorruptStream is returned by Decode when a code is encountered that
	// is neither in the dictionary nor explained by the KwKwK special case.
	ErrCorruptStream = errors.New("gifcore: corrupt LZW stream")

	// ErrEmptyCodes is returned by Decode when given an empty code list,
	// which is malformed input rather than a degenerate empty result.
	ErrEmptyCodes = errors.New("gifcore: no codes to decode")

	// ErrImageTooLarge is returned when a canvas dimension does not fit in
	// the 16-bit fields of the GIF logical screen descriptor.
	ErrImageTooLarge = errors.New("gifcore: image dimensions exceed 65535")

	// ErrBitRange is returned by BitStream.Range when the requested window
	// falls outside the stored bits.
	ErrBitRange = errors.New("gifcore: bit range out of bounds")
)
