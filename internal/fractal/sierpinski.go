// Package fractal draws a Sierpinski triangle onto an IndexedRaster. It is
// presentation code carried over from beside the GIF emitter; nothing in
// this module's GIF path calls it.
package fractal

import (
	"math"

	"github.com/castellan-io/gifcore"
)

type coord struct {
	x, y int
}

type triangle struct {
	a, b, c coord
}

// SierpinskiTriangle draws a Sierpinski triangle of the given recursion
// depth into a freshly allocated width*height raster, with the outer
// triangle in triangleColor against backgroundColor.
func SierpinskiTriangle(width, height uint32, iterations int, triangleColor, backgroundColor gifcore.RGB) *gifcore.IndexedRaster {
	raster := gifcore.NewIndexedRaster(width, height, backgroundColor)
	w, h := int(width), int(height)
	initial := triangle{
		a: coord{w / 2, h},
		b: coord{0, 0},
		c: coord{w, 0},
	}
	drawTriangle(raster, initial.a, initial.b, initial.c, triangleColor)
	sierpinskiRec(raster, initial, iterations, backgroundColor)
	return raster
}

func sierpinskiRec(raster *gifcore.IndexedRaster, t triangle, iterations int, removeColor gifcore.RGB) {
	if iterations == 0 {
		return
	}
	mid := [3]coord{
		{(t.a.x + t.b.x) / 2, (t.a.y + t.b.y) / 2},
		{(t.b.x + t.c.x) / 2, (t.b.y + t.c.y) / 2},
		{(t.c.x + t.a.x) / 2, (t.c.y + t.a.y) / 2},
	}
	drawTriangle(raster, mid[0], mid[1], mid[2], removeColor)
	children := [3]triangle{
		{t.a, mid[0], mid[2]},
		{t.b, mid[0], mid[1]},
		{t.c, mid[1], mid[2]},
	}
	for _, child := range children {
		sierpinskiRec(raster, child, iterations-1, removeColor)
	}
}

func lineCoords(set map[coord]struct{}, a, b coord) {
	distX := b.x - a.x
	distY := b.y - a.y
	absX, absY := distX, distY
	if absX < 0 {
		absX = -absX
	}
	if absY < 0 {
		absY = -absY
	}
	lineLength := absX
	if absY > lineLength {
		lineLength = absY
	}
	if lineLength == 0 {
		set[a] = struct{}{}
		return
	}
	deltaX := float64(distX) / float64(lineLength)
	deltaY := float64(distY) / float64(lineLength)
	for i := 0; i <= lineLength; i++ {
		fi := float64(i)
		set[coord{a.x + int(deltaX*fi), a.y + int(deltaY*fi)}] = struct{}{}
	}
}

func triangleCoords(set map[coord]struct{}, t triangle) {
	lineCoords(set, t.a, t.b)
	lineCoords(set, t.a, t.c)
	lineCoords(set, t.b, t.c)
	floodFill(set, triangleMidpoint(t))
}

func triangleMidpoint(t triangle) coord {
	m0x, m0y := float64(t.a.x+t.b.x)/2.0, float64(t.a.y+t.b.y)/2.0
	m1x, m1y := float64(t.a.x+t.c.x)/2.0, float64(t.a.y+t.c.y)/2.0
	x := math.Round((m0x + m1x) / 2.0)
	y := math.Round((m0y + m1y) / 2.0)
	return coord{int(x), int(y)}
}

func floodFill(set map[coord]struct{}, initial coord) {
	stack := []coord{initial}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		neighbors := [4]coord{
			{c.x + 1, c.y},
			{c.x - 1, c.y},
			{c.x, c.y + 1},
			{c.x, c.y - 1},
		}
		for _, n := range neighbors {
			if _, ok := set[n]; !ok {
				set[n] = struct{}{}
				stack = append(stack, n)
			}
		}
	}
}

func drawTriangle(raster *gifcore.IndexedRaster, a, b, c coord, color gifcore.RGB) {
	set := make(map[coord]struct{})
	triangleCoords(set, triangle{a, b, c})
	setPixelsFromCoords(raster, set, color)
}

func setPixelsFromCoords(raster *gifcore.IndexedRaster, set map[coord]struct{}, color gifcore.RGB) {
	width := int(raster.Canvas.Width)
	height := int(raster.Canvas.Height)
	for c := range set {
		if c.x >= 0 && c.x < width && c.y >= 0 && c.y < height {
			raster.SetPixel(uint32(c.x), uint32(c.y), color)
		}
	}
}
