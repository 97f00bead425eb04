package gifcore

/*
NeuQuant Neural-Net Quantization Algorithm
------------------------------------------

Copyright (c) 1994 Anthony Dekker

NEUQUANT Neural-Net quantization algorithm by Anthony Dekker, 1994.
See "Kohonen neural networks for optimal colour quantization"
in "Network: Computation in Neural Systems" Vol. 5 (1994) pp 351-367.

Any party obtaining a copy of these files from the author, directly or
indirectly, is granted, free of charge, a full and unrestricted irrevocable,
world-wide, paid up, royalty-free, nonexclusive right and license to deal
in this software and documentation files (the "Software"), including without
limitation the rights to use, copy, modify, merge, publish, distribute, sublicense,
and/or sell copies of the Software, and to permit persons who receive
copies from any such party to do so, with the only requirement being
that this copyright notice remain intact.
*/

import (
	"image"

	"github.com/pkg/errors"
)

// QuantizeOptions controls how NewRasterFromImage reduces a true-color image
// down to the 256-color palette a GifImage requires.
type QuantizeOptions struct {
	// SampleFactor trades quality for speed, 1 (best, slowest) to 30
	// (worst, fastest). Zero defaults to 10.
	SampleFactor int
	// Dither selects an error-diffusion kernel, or DitherNone for plain
	// nearest-color mapping.
	Dither DitherMethod
	// Serpentine reverses scan direction on alternating rows when
	// dithering, which hides directional banding.
	Serpentine bool
}

// DitherMethod names an error-diffusion kernel.
type DitherMethod string

const (
	DitherNone                DitherMethod = "none"
	DitherFloydSteinberg      DitherMethod = "FloydSteinberg"
	DitherFalseFloydSteinberg DitherMethod = "FalseFloydSteinberg"
	DitherStucki              DitherMethod = "Stucki"
	DitherAtkinson            DitherMethod = "Atkinson"
)

// ditherKernel is a list of (weight, dx, dy) triples describing how a
// pixel's quantization error is spread to its neighbors.
type ditherKernel [][3]float64

var (
	falseFloydSteinberg = ditherKernel{
		{3.0 / 8.0, 1, 0},
		{3.0 / 8.0, 0, 1},
		{2.0 / 8.0, 1, 1},
	}
	floydSteinberg = ditherKernel{
		{7.0 / 16.0, 1, 0},
		{3.0 / 16.0, -1, 1},
		{5.0 / 16.0, 0, 1},
		{1.0 / 16.0, 1, 1},
	}
	stucki = ditherKernel{
		{8.0 / 42.0, 1, 0},
		{4.0 / 42.0, 2, 0},
		{2.0 / 42.0, -2, 1},
		{4.0 / 42.0, -1, 1},
		{8.0 / 42.0, 0, 1},
		{4.0 / 42.0, 1, 1},
		{2.0 / 42.0, 2, 1},
		{1.0 / 42.0, -2, 2},
		{2.0 / 42.0, -1, 2},
		{4.0 / 42.0, 0, 2},
		{2.0 / 42.0, 1, 2},
		{1.0 / 42.0, 2, 2},
	}
	atkinson = ditherKernel{
		{1.0 / 8.0, 1, 0},
		{1.0 / 8.0, 2, 0},
		{1.0 / 8.0, -1, 1},
		{1.0 / 8.0, 0, 1},
		{1.0 / 8.0, 1, 1},
		{1.0 / 8.0, 0, 2},
	}
)

func kernelFor(method DitherMethod) (ditherKernel, bool) {
	switch method {
	case DitherFalseFloydSteinberg:
		return falseFloydSteinberg, true
	case DitherFloydSteinberg:
		return floydSteinberg, true
	case DitherStucki:
		return stucki, true
	case DitherAtkinson:
		return atkinson, true
	default:
		return nil, false
	}
}

// NewRasterFromImage quantizes img down to 256 colors with the NeuQuant
// neural network and maps every source pixel into an IndexedRaster, either
// by plain nearest-color lookup or through the requested error-diffusion
// kernel.
func NewRasterFromImage(img image.Image, opts QuantizeOptions) (*IndexedRaster, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, errors.New("gifcore: image has no pixels to quantize")
	}

	sampleFactor := opts.SampleFactor
	if sampleFactor <= 0 {
		sampleFactor = 10
	}

	rgbPixels := make([]byte, 0, width*height*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			rgbPixels = append(rgbPixels, byte(r>>8), byte(g>>8), byte(b>>8))
		}
	}

	nq := newNeuQuant(rgbPixels, sampleFactor)
	nq.buildColormap()
	colormap := nq.getColormap()

	palette := NewPalette()
	for i := 0; i < netsize; i++ {
		palette.setIndexedColor(i, RGB{Red: colormap[i*3], Green: colormap[i*3+1], Blue: colormap[i*3+2]})
	}

	raster := &IndexedRaster{
		Palette: palette,
		Canvas:  NewCanvas[int](uint32(width), uint32(height)),
	}

	kernel, dithering := kernelFor(opts.Dither)
	if !dithering {
		quantizeNearest(raster, nq, rgbPixels, width, height)
	} else {
		quantizeDithered(raster, nq, rgbPixels, width, height, kernel, opts.Serpentine)
	}
	return raster, nil
}

func quantizeNearest(raster *IndexedRaster, nq *neuQuant, pixels []byte, width, height int) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := (y*width + x) * 3
			colorIdx := nq.lookupRGB(pixels[idx], pixels[idx+1], pixels[idx+2])
			raster.Canvas.SetPixel(uint32(x), uint32(y), colorIdx)
		}
	}
}

// quantizeDithered walks the image once per the teacher's scanning
// discipline, diffusing each pixel's quantization error into its
// not-yet-visited neighbors before they are themselves quantized.
func quantizeDithered(raster *IndexedRaster, nq *neuQuant, pixels []byte, width, height int, kernel ditherKernel, serpentine bool) {
	data := append([]byte(nil), pixels...)
	direction := 1
	if serpentine {
		direction = -1
	}

	for y := 0; y < height; y++ {
		if serpentine {
			direction = -direction
		}
		var x, xEnd int
		if direction == 1 {
			x, xEnd = 0, width
		} else {
			x, xEnd = width-1, -1
		}

		for x != xEnd {
			idx := (y*width + x) * 3
			r1, g1, b1 := int(data[idx]), int(data[idx+1]), int(data[idx+2])

			colorIdx := nq.lookupRGB(byte(r1), byte(g1), byte(b1))
			raster.Canvas.SetPixel(uint32(x), uint32(y), colorIdx)

			quantized, _ := raster.Palette.Color(colorIdx)
			er := r1 - int(quantized.Red)
			eg := g1 - int(quantized.Green)
			eb := b1 - int(quantized.Blue)

			var i, iEnd int
			if direction == 1 {
				i, iEnd = 0, len(kernel)
			} else {
				i, iEnd = len(kernel)-1, -1
			}
			for i != iEnd {
				dx := int(kernel[i][1])
				dy := int(kernel[i][2])
				nx, ny := x+dx, y+dy
				if nx >= 0 && nx < width && ny >= 0 && ny < height {
					weight := kernel[i][0]
					nIdx := (ny*width + nx) * 3
					data[nIdx] = clampByte(int(data[nIdx]) + int(float64(er)*weight))
					data[nIdx+1] = clampByte(int(data[nIdx+1]) + int(float64(eg)*weight))
					data[nIdx+2] = clampByte(int(data[nIdx+2]) + int(float64(eb)*weight))
				}
				if direction == 1 {
					i++
				} else {
					i--
				}
			}
			x += direction
		}
	}
}

func clampByte(value int) byte {
	if value < 0 {
		return 0
	}
	if value > 255 {
		return 255
	}
	return byte(value)
}

const (
	ncycles         = 100
	netsize         = 256
	maxnetpos       = netsize - 1
	netbiasshift    = 4
	intbiasshift    = 16
	intbias         = 1 << intbiasshift
	gammashift      = 10
	gammaconst      = 1 << gammashift
	betashift       = 10
	betaconst       = intbias >> betashift
	betagamma       = intbias << (gammashift - betashift)
	initrad         = netsize >> 3
	radiusbiasshift = 6
	radiusbias      = 1 << radiusbiasshift
	initradius      = initrad * radiusbias
	radiusdec       = 30
	alphabiasshift  = 10
	initalpha       = 1 << alphabiasshift
	radbiasshift    = 8
	radbias         = 1 << radbiasshift
	alpharadbshift  = alphabiasshift + radbiasshift
	alpharadbias    = 1 << alpharadbshift
	prime1          = 499
	prime2          = 491
	prime3          = 487
	prime4          = 503
	minpicturebytes = 3 * prime4
)

// neuQuant is a Kohonen self-organizing-map color quantizer: it trains a
// 256-neuron network on a sample of the image's pixels until the neurons'
// positions settle on a good 256-color approximation of the image's color
// distribution.
type neuQuant struct {
	network   [][]int32
	netindex  []int32
	bias      []int32
	freq      []int32
	radpower  []int32
	pixels    []byte
	samplefac int
}

func newNeuQuant(pixels []byte, samplefac int) *neuQuant {
	return &neuQuant{
		network:   make([][]int32, netsize),
		netindex:  make([]int32, 256),
		bias:      make([]int32, netsize),
		freq:      make([]int32, netsize),
		radpower:  make([]int32, initrad),
		pixels:    pixels,
		samplefac: samplefac,
	}
}

func (nq *neuQuant) init() {
	for i := 0; i < netsize; i++ {
		v := int32((i << (netbiasshift + 8)) / netsize)
		nq.network[i] = []int32{v, v, v, 0}
		nq.freq[i] = intbias / netsize
		nq.bias[i] = 0
	}
}

func (nq *neuQuant) buildColormap() {
	nq.init()
	nq.learn()
	nq.pixels = nil
	nq.unbiasnet()
	nq.inxbuild()
}

func (nq *neuQuant) getColormap() []byte {
	colormap := make([]byte, netsize*3)
	index := make([]int, netsize)

	for i := 0; i < netsize; i++ {
		index[nq.network[i][3]] = i
	}

	k := 0
	for i := 0; i < netsize; i++ {
		j := index[i]
		colormap[k] = byte(nq.network[j][0])
		k++
		colormap[k] = byte(nq.network[j][1])
		k++
		colormap[k] = byte(nq.network[j][2])
		k++
	}
	return colormap
}

// lookupRGB finds the closest trained neuron to (r, g, b) and returns its
// palette index.
func (nq *neuQuant) lookupRGB(r, g, b byte) int {
	return nq.inxsearch(int32(r), int32(g), int32(b))
}

func (nq *neuQuant) unbiasnet() {
	for i := 0; i < netsize; i++ {
		nq.network[i][0] >>= netbiasshift
		nq.network[i][1] >>= netbiasshift
		nq.network[i][2] >>= netbiasshift
		nq.network[i][3] = int32(i)
	}
}

func (nq *neuQuant) altersingle(alpha, i int32, b, g, r int32) {
	nq.network[i][0] -= (alpha * (nq.network[i][0] - b)) / initalpha
	nq.network[i][1] -= (alpha * (nq.network[i][1] - g)) / initalpha
	nq.network[i][2] -= (alpha * (nq.network[i][2] - r)) / initalpha
}

func (nq *neuQuant) alterneigh(radius int, i int, b, g, r int32) {
	lo := absInt(i - radius)
	hi := i + radius
	if hi > netsize {
		hi = netsize
	}

	j := i + 1
	k := i - 1
	m := 1

	for j < hi || k > lo {
		a := nq.radpower[m]
		m++

		if j < hi {
			p := nq.network[j]
			p[0] -= (a * (p[0] - b)) / alpharadbias
			p[1] -= (a * (p[1] - g)) / alpharadbias
			p[2] -= (a * (p[2] - r)) / alpharadbias
			j++
		}

		if k > lo {
			p := nq.network[k]
			p[0] -= (a * (p[0] - b)) / alpharadbias
			p[1] -= (a * (p[1] - g)) / alpharadbias
			p[2] -= (a * (p[2] - r)) / alpharadbias
			k--
		}
	}
}

func (nq *neuQuant) contest(b, g, r int32) int {
	bestd := int32(0x7FFFFFFF)
	bestbiasd := bestd
	bestpos := -1
	bestbiaspos := bestpos

	for i := 0; i < netsize; i++ {
		n := nq.network[i]
		dist := abs32(n[0]-b) + abs32(n[1]-g) + abs32(n[2]-r)

		if dist < bestd {
			bestd = dist
			bestpos = i
		}

		biasdist := dist - (nq.bias[i] >> (intbiasshift - netbiasshift))
		if biasdist < bestbiasd {
			bestbiasd = biasdist
			bestbiaspos = i
		}

		betafreq := nq.freq[i] >> betashift
		nq.freq[i] -= betafreq
		nq.bias[i] += betafreq << gammashift
	}

	nq.freq[bestpos] += betaconst
	nq.bias[bestpos] -= betagamma

	return bestbiaspos
}

func (nq *neuQuant) learn() {
	lengthcount := len(nq.pixels)
	alphadec := int32(30 + ((nq.samplefac - 1) / 3))
	samplepixels := lengthcount / (3 * nq.samplefac)
	delta := samplepixels / ncycles
	if delta == 0 {
		delta = 1
	}

	alpha := int32(initalpha)
	radius := int32(initradius)

	rad := int(radius >> radiusbiasshift)
	if rad <= 1 {
		rad = 0
	}

	for i := 0; i < rad; i++ {
		nq.radpower[i] = alpha * ((int32(rad*rad-i*i) * radbias) / int32(rad*rad))
	}

	var step int
	switch {
	case lengthcount < minpicturebytes:
		nq.samplefac = 1
		step = 3
	case lengthcount%prime1 != 0:
		step = 3 * prime1
	case lengthcount%prime2 != 0:
		step = 3 * prime2
	case lengthcount%prime3 != 0:
		step = 3 * prime3
	default:
		step = 3 * prime4
	}

	pix := 0
	i := 0

	for i < samplepixels {
		b := (int32(nq.pixels[pix]) & 0xff) << netbiasshift
		g := (int32(nq.pixels[pix+1]) & 0xff) << netbiasshift
		r := (int32(nq.pixels[pix+2]) & 0xff) << netbiasshift

		j := nq.contest(b, g, r)

		nq.altersingle(alpha, int32(j), b, g, r)
		if rad != 0 {
			nq.alterneigh(rad, j, b, g, r)
		}

		pix += step
		if pix >= lengthcount {
			pix -= lengthcount
		}

		i++

		if i%delta == 0 {
			alpha -= alpha / alphadec
			radius -= radius / radiusdec
			rad = int(radius >> radiusbiasshift)

			if rad <= 1 {
				rad = 0
			}
			for j := 0; j < rad; j++ {
				nq.radpower[j] = alpha * ((int32(rad*rad-j*j) * radbias) / int32(rad*rad))
			}
		}
	}
}

func (nq *neuQuant) inxbuild() {
	previouscol := int32(0)
	startpos := 0

	for i := 0; i < netsize; i++ {
		p := nq.network[i]
		smallpos := i
		smallval := p[1]

		for j := i + 1; j < netsize; j++ {
			q := nq.network[j]
			if q[1] < smallval {
				smallpos = j
				smallval = q[1]
			}
		}

		if i != smallpos {
			nq.network[i], nq.network[smallpos] = nq.network[smallpos], nq.network[i]
		}

		if smallval != previouscol {
			nq.netindex[previouscol] = int32((startpos + i) >> 1)
			for j := previouscol + 1; j < smallval; j++ {
				nq.netindex[j] = int32(i)
			}
			previouscol = smallval
			startpos = i
		}
	}

	nq.netindex[previouscol] = int32((startpos + maxnetpos) >> 1)
	for j := previouscol + 1; j < 256; j++ {
		nq.netindex[j] = maxnetpos
	}
}

func (nq *neuQuant) inxsearch(b, g, r int32) int {
	bestd := int32(1000)
	best := -1

	i := int(nq.netindex[g])
	j := i - 1

	for i < netsize || j >= 0 {
		if i < netsize {
			p := nq.network[i]
			dist := p[1] - g

			if dist >= bestd {
				i = netsize
			} else {
				i++
				if dist < 0 {
					dist = -dist
				}
				a := p[0] - b
				if a < 0 {
					a = -a
				}
				dist += a

				if dist < bestd {
					a = p[2] - r
					if a < 0 {
						a = -a
					}
					dist += a

					if dist < bestd {
						bestd = dist
						best = int(p[3])
					}
				}
			}
		}

		if j >= 0 {
			p := nq.network[j]
			dist := g - p[1]

			if dist >= bestd {
				j = -1
			} else {
				j--
				if dist < 0 {
					dist = -dist
				}
				a := p[0] - b
				if a < 0 {
					a = -a
				}
				dist += a

				if dist < bestd {
					a = p[2] - r
					if a < 0 {
						a = -a
					}
					dist += a

					if dist < bestd {
						bestd = dist
						best = int(p[3])
					}
				}
			}
		}
	}

	return best
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
