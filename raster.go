package gifcore

// RGB is a single 24-bit true color sample.
type RGB struct {
	Red   byte
	Green byte
	Blue  byte
}

// Canvas is a width*height grid of pixels of any value type, stored
// row-major. The zero value of T fills every pixel until it is set.
type Canvas[T any] struct {
	Width  uint32
	Height uint32
	Pixels []T
}

// NewCanvas allocates a width*height canvas with every pixel set to the
// zero value of T.
func NewCanvas[T any](width, height uint32) *Canvas[T] {
	return &Canvas[T]{
		Width:  width,
		Height: height,
		Pixels: make([]T, width*height),
	}
}

// Pixel returns the value at (x, y).
func (c *Canvas[T]) Pixel(x, y uint32) T {
	return c.Pixels[y*c.Width+x]
}

// SetPixel stores value at (x, y).
func (c *Canvas[T]) SetPixel(x, y uint32, value T) {
	c.Pixels[y*c.Width+x] = value
}

// Palette assigns a stable integer index to each distinct RGB color it is
// asked about, in first-seen order, and can map back from index to color.
type Palette struct {
	colorToIndex map[RGB]int
	indexToColor map[int]RGB
}

// NewPalette returns an empty palette.
func NewPalette() *Palette {
	return &Palette{
		colorToIndex: make(map[RGB]int),
		indexToColor: make(map[int]RGB),
	}
}

// Index returns rgb's index, assigning it the next unused index the first
// time it is seen.
func (p *Palette) Index(rgb RGB) int {
	if idx, ok := p.colorToIndex[rgb]; ok {
		return idx
	}
	idx := len(p.colorToIndex)
	p.colorToIndex[rgb] = idx
	p.indexToColor[idx] = rgb
	return idx
}

// Color returns the color stored at index, and whether that index has been
// assigned.
func (p *Palette) Color(index int) (RGB, bool) {
	rgb, ok := p.indexToColor[index]
	return rgb, ok
}

// Len reports how many distinct colors the palette holds.
func (p *Palette) Len() int {
	return len(p.colorToIndex)
}

// setIndexedColor assigns rgb to index directly, without interning through
// Index's next-available-slot bookkeeping. It exists for building a palette
// from a fixed-size color table (the quantizer's 256-entry colormap) where
// two indices may legitimately hold the same color; Index's first-seen
// numbering would otherwise silently collapse and renumber such entries.
func (p *Palette) setIndexedColor(index int, rgb RGB) {
	if _, ok := p.colorToIndex[rgb]; !ok {
		p.colorToIndex[rgb] = index
	}
	p.indexToColor[index] = rgb
}

// IndexedRaster is a true-color image stored as a palette plus a canvas of
// palette indices, the shape a GIF frame needs on the wire.
type IndexedRaster struct {
	Palette *Palette
	Canvas  *Canvas[int]
}

// NewIndexedRaster allocates a width*height raster with every pixel set to
// initialColor, which becomes palette index 0.
func NewIndexedRaster(width, height uint32, initialColor RGB) *IndexedRaster {
	palette := NewPalette()
	palette.Index(initialColor)
	return &IndexedRaster{
		Palette: palette,
		Canvas:  NewCanvas[int](width, height),
	}
}

// SetPixel assigns value at (x, y), indexing it into the palette first if
// it is a color the raster has not seen before.
func (r *IndexedRaster) SetPixel(x, y uint32, value RGB) {
	r.Canvas.SetPixel(x, y, r.Palette.Index(value))
}

// Pixel returns the true color stored at (x, y).
func (r *IndexedRaster) Pixel(x, y uint32) RGB {
	idx := r.Canvas.Pixel(x, y)
	rgb, _ := r.Palette.Color(idx)
	return rgb
}
