package viz

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// starting at U+2800.
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Plane selects the two base-frame axes a Canvas projects onto.
type Plane int

const (
	PlaneXZ Plane = iota
	PlaneXY
	PlaneYZ
)

func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "x-y"
	case PlaneYZ:
		return "y-z"
	}
	return "x-z"
}

func (p Plane) axes() (int, int) {
	switch p {
	case PlaneXY:
		return 0, 1
	case PlaneYZ:
		return 1, 2
	}
	return 0, 2
}

// Canvas is a braille dot grid of Width x Height cells, i.e. Width*2 by
// Height*4 dots, with a world viewport centred on the origin.
type Canvas struct {
	Width, Height int
	Plane         Plane
	// Extent is the world half-size mapped onto the shorter canvas side.
	Extent float64

	grid [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Extent: 1}
	c.grid = make([][]rune, h)
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set raises the dot at (x, y) in dot coordinates; out of range is ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= pixelMap[y%4][x%2]
}

// Dot reports whether the dot at (x, y) is raised.
func (c *Canvas) Dot(x, y int) bool {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return false
	}
	return c.grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = brailleBlank
		}
	}
}

// Project maps a base-frame point to dot coordinates. Up on screen is the
// second axis of the plane.
func (c *Canvas) Project(p mgl64.Vec3) (int, int) {
	a, b := c.Plane.axes()
	w, h := c.Width*2, c.Height*4
	scale := float64(min(w, h)) / 2 / c.Extent
	x := float64(w)/2 + p[a]*scale
	y := float64(h)/2 - p[b]*scale
	return int(math.Round(x)), int(math.Round(y))
}

// FitExtent sets Extent so every point fits with a small margin.
func (c *Canvas) FitExtent(points []mgl64.Vec3) {
	a, b := c.Plane.axes()
	ext := 0.0
	for _, p := range points {
		ext = max(ext, math.Abs(p[a]), math.Abs(p[b]))
	}
	if ext == 0 {
		ext = 1
	}
	c.Extent = ext * 1.1
}

// Segment draws a line between two base-frame points with Bresenham's
// algorithm.
func (c *Canvas) Segment(p0, p1 mgl64.Vec3) {
	x0, y0 := c.Project(p0)
	x1, y1 := c.Project(p1)

	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Mark draws a 3x3 dot blob at a base-frame point.
func (c *Canvas) Mark(p mgl64.Vec3) {
	x, y := c.Project(p)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
