// Package export renders sweeps and tree projections as standalone SVG
// documents.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/dyntree/internal/viz"
	"gonum.org/v1/gonum/floats"
)

// ErrTooFewPoints is returned when a series cannot form a path.
var ErrTooFewPoints = errors.New("export: need at least two points")

const background = "#0a0a0a"

// CanvasToSVG draws every raised dot of canvas as a circle, scale pixels
// apart.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}

	dotsX, dotsY := canvas.Width*2, canvas.Height*4
	width := float64(dotsX) * scale
	height := float64(dotsY) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, background, fill)

	r := scale * 0.4
	for y := 0; y < dotsY; y++ {
		for x := 0; x < dotsX; x++ {
			if !canvas.Dot(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, r)
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// SeriesToSVG plots ys against xs as a single polyline with a 10% margin on
// each axis.
func SeriesToSVG(xs, ys []float64, width, height int, stroke string) (string, error) {
	if len(xs) != len(ys) {
		return "", fmt.Errorf("export: %d x values for %d y values", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return "", ErrTooFewPoints
	}

	minX, maxX := padded(floats.Min(xs), floats.Max(xs))
	minY, maxY := padded(floats.Min(ys), floats.Max(ys))
	rangeX, rangeY := maxX-minX, maxY-minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, stroke)

	for i := range xs {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}

	sb.WriteString("\"/>\n</svg>\n")
	return sb.String(), nil
}

func padded(lo, hi float64) (float64, float64) {
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}
	return lo - rng*0.1, hi + rng*0.1
}
