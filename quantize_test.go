package gifcore

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func checkerboardImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.RGBA{255, 0, 0, 255})
			} else {
				img.Set(x, y, color.RGBA{0, 0, 255, 255})
			}
		}
	}
	return img
}

func TestNewRasterFromImageProducesCorrectDimensions(t *testing.T) {
	img := checkerboardImage(8, 8)
	raster, err := NewRasterFromImage(img, QuantizeOptions{})
	require.NoError(t, err)
	require.Equal(t, uint32(8), raster.Canvas.Width)
	require.Equal(t, uint32(8), raster.Canvas.Height)
	require.LessOrEqual(t, raster.Palette.Len(), 256)
}

func TestNewRasterFromImagePaletteWithinGifLimit(t *testing.T) {
	img := checkerboardImage(32, 32)
	raster, err := NewRasterFromImage(img, QuantizeOptions{SampleFactor: 1})
	require.NoError(t, err)
	require.LessOrEqual(t, raster.Palette.Len(), 256)
}

func TestNewRasterFromImageRejectsEmptyImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	_, err := NewRasterFromImage(img, QuantizeOptions{})
	require.Error(t, err)
}

func TestNewRasterFromImageWithDitheringProducesSameDimensions(t *testing.T) {
	img := checkerboardImage(16, 16)
	raster, err := NewRasterFromImage(img, QuantizeOptions{Dither: DitherFloydSteinberg, Serpentine: true})
	require.NoError(t, err)
	require.Equal(t, uint32(16), raster.Canvas.Width)
	require.Equal(t, uint32(16), raster.Canvas.Height)
}

func TestKernelForUnknownMethodDisablesDithering(t *testing.T) {
	_, ok := kernelFor(DitherNone)
	require.False(t, ok)
	_, ok = kernelFor("not-a-real-method")
	require.False(t, ok)
	_, ok = kernelFor(DitherAtkinson)
	require.True(t, ok)
}

func TestNeuQuantLookupStaysWithinPaletteBounds(t *testing.T) {
	pixels := make([]byte, 0, 64*3)
	for i := 0; i < 64; i++ {
		pixels = append(pixels, byte(i*4), byte(255-i*4), byte(i))
	}
	nq := newNeuQuant(pixels, 1)
	nq.buildColormap()

	idx := nq.lookupRGB(10, 200, 5)
	require.GreaterOrEqual(t, idx, 0)
	require.Less(t, idx, netsize)
}
