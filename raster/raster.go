// seehuhn.de/go/maplabel - label placement for vector maps
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package raster converts glyph outlines and other vector paths to
// anti-aliased pixel coverage.
//
// The coverage of a pixel is the fraction of its area covered by the filled
// or stroked path, from 0 (outside) to 1 (inside). Results are delivered
// row by row through a callback, so that callers can composite them onto
// any kind of image.
package raster

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage values of pixels xMin, xMin+1, ... in
// row y. The slice is only valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a line segment in device coordinates, oriented top to bottom.
type edge struct {
	x0, y0 float64 // upper end point
	x1, y1 float64 // lower end point
	dxdy   float64
	sign   float32 // +1 if the original segment pointed downwards
}

// xAt returns the x coordinate of the edge at height y.
func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

// Rasterizer computes pixel coverage for filled and stroked paths.
// Internal buffers are reused between calls.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space. Must be non-singular.
	CTM matrix.Matrix

	// Clip limits the output to this device-space rectangle.
	// Coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximum distance, in device pixels, between a curve
	// and its polygonal approximation.
	Flatness float64

	// Width is the stroke width in user-space units.
	Width float64

	// Cap is the style for the ends of open stroked subpaths.
	Cap graphics.LineCapStyle

	// Join is the style for corners of stroked paths.
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of miter joins, relative to the stroke
	// width. Longer miters are drawn as bevels.
	MiterLimit float64

	// Dash is the dash pattern in user-space units, alternating on and
	// off lengths. Nil means solid.
	Dash []float64

	// DashPhase is the distance into the dash pattern at which each
	// subpath starts.
	DashPhase float64

	edges       []edge
	cover       []float32
	area        []float32
	rowHasEdges []bool

	bbFirst                bool
	bbX0, bbX1, bbY0, bbY1 float64

	// stroke state, see stroke.go
	lines  []polyline
	points []vec.Vec2
	run    []vec.Vec2
	piece  []vec.Vec2
}

// NewRasterizer returns a Rasterizer for the given clip rectangle, with the
// identity CTM and default stroke parameters.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffer capacity is kept.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
	r.Dash = nil
	r.DashPhase = 0
}

// Fill fills the path using the nonzero winding rule.
// Open subpaths are closed implicitly.
func (r *Rasterizer) Fill(p *path.Data, emit EmitFunc) {
	r.edges = r.edges[:0]
	r.bbFirst = true

	var start, current vec.Vec2
	r.walk(p, func(cmd path.Command, a, b vec.Vec2) {
		switch cmd {
		case path.CmdMoveTo:
			if current != start {
				r.addEdge(current, start)
			}
			start, current = b, b
		case path.CmdLineTo:
			r.addEdge(a, b)
			current = b
		case path.CmdClose:
			if current != start {
				r.addEdge(current, start)
			}
			current = start
		}
	})
	if current != start {
		r.addEdge(current, start)
	}

	r.render(emit)
}

// walk reduces p to a sequence of move, line and close operations, in user
// space. Curves are replaced by line segments. The callback receives the
// current point a and the new point b.
func (r *Rasterizer) walk(p *path.Data, visit func(cmd path.Command, a, b vec.Vec2)) {
	var current, start vec.Vec2
	lineTo := func(a, b vec.Vec2) {
		visit(path.CmdLineTo, a, b)
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			visit(path.CmdMoveTo, current, p.Coords[k])
			current = p.Coords[k]
			start = current
			k++
		case path.CmdLineTo:
			lineTo(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], lineTo)
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], lineTo)
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			visit(path.CmdClose, current, start)
			current = start
		}
	}
}

// devScale returns the largest factor by which the CTM stretches lengths.
func (r *Rasterizer) devScale() float64 {
	sx := math.Hypot(r.CTM[0], r.CTM[1])
	sy := math.Hypot(r.CTM[2], r.CTM[3])
	return max(sx, sy)
}

// flattenQuadratic approximates a quadratic Bézier curve by line segments.
func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, lineTo func(a, b vec.Vec2)) {
	dev := p0.Sub(p1.Mul(2)).Add(p2).Length() * r.devScale() / 4
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		lineTo(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments,
// using Wang's formula for the number of segments.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, lineTo func(a, b vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2).Length()
	d2 := p1.Sub(p2.Mul(2)).Add(p3).Length()
	dev := max(d1, d2) * r.devScale()
	n := 1
	if dev > 0 {
		n = max(1, int(math.Ceil(math.Sqrt(3*dev/(4*r.Flatness)))))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		lineTo(prev, pt)
		prev = pt
	}
}

// addEdge transforms a user-space segment to device space and records it.
func (r *Rasterizer) addEdge(a, b vec.Vec2) {
	m := r.CTM
	ax := m[0]*a.X + m[2]*a.Y + m[4]
	ay := m[1]*a.X + m[3]*a.Y + m[5]
	bx := m[0]*b.X + m[2]*b.Y + m[4]
	by := m[1]*b.X + m[3]*b.Y + m[5]

	if math.Abs(by-ay) < horizontalEdgeThreshold {
		return
	}

	e := edge{x0: ax, y0: ay, x1: bx, y1: by, sign: 1}
	if by < ay {
		e = edge{x0: bx, y0: by, x1: ax, y1: ay, sign: -1}
	}
	e.dxdy = (e.x1 - e.x0) / (e.y1 - e.y0)
	r.edges = append(r.edges, e)

	xLo, xHi := min(ax, bx), max(ax, bx)
	if r.bbFirst {
		r.bbX0, r.bbX1, r.bbY0, r.bbY1 = xLo, xHi, e.y0, e.y1
		r.bbFirst = false
		return
	}
	r.bbX0 = min(r.bbX0, xLo)
	r.bbX1 = max(r.bbX1, xHi)
	r.bbY0 = min(r.bbY0, e.y0)
	r.bbY1 = max(r.bbY1, e.y1)
}

// Coverage accumulation:
//
// For every pixel two values are collected. cover is the signed vertical
// extent of all edge pieces inside the pixel, area additionally weights
// each piece by the part of the pixel to its right. Scanning a row from
// left to right, the coverage of pixel i is
//
//	sum(cover[0:i]) + area[i]
//
// clamped to [0, 1] after taking the absolute value (nonzero rule).

// render converts the collected edges to coverage and emits all rows.
func (r *Rasterizer) render(emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(r.bbX0)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.bbX1))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.bbY0)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.bbY1))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	r.rowHasEdges = slices.Grow(r.rowHasEdges[:0], height)[:height]
	clear(r.cover)
	clear(r.area)
	clear(r.rowHasEdges)

	for i := range r.edges {
		e := &r.edges[i]
		first := max(int(math.Floor(e.y0)), yMin)
		last := min(int(math.Floor(e.y1))+1, yMax)
		for y := first; y < last; y++ {
			row := y - yMin
			lo, hi := row*width, (row+1)*width
			accumulate(e, y, r.cover[lo:hi], r.area[lo:hi], xMin)
			r.rowHasEdges[row] = true
		}
	}

	for row := range height {
		if !r.rowHasEdges[row] {
			continue
		}
		lo, hi := row*width, (row+1)*width
		coverage := r.cover[lo:hi]
		integrate(coverage, r.area[lo:hi])
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// accumulate adds the part of e inside scanline y to the row buffers.
// Index 0 of the buffers corresponds to device column xMin; contributions
// left of xMin are folded into column 0, those right of the buffer are
// dropped.
func accumulate(e *edge, y int, cover, area []float32, xMin int) {
	top := max(float64(y), e.y0)
	bot := min(float64(y+1), e.y1)
	if bot <= top {
		return
	}

	add := func(col int, dy, xMid float64) {
		c := e.sign * float32(dy)
		switch idx := col - xMin; {
		case idx < 0:
			cover[0] += c
			area[0] += c
		case idx < len(cover):
			cover[idx] += c
			area[idx] += c * float32(1-(xMid-float64(col)))
		}
	}

	xTop, xBot := e.xAt(top), e.xAt(bot)
	left, right := min(xTop, xBot), max(xTop, xBot)
	colLeft := int(math.Floor(left))
	colRight := int(math.Floor(right))
	if colLeft == colRight {
		add(colLeft, bot-top, (xTop+xBot)/2)
		return
	}

	// the edge crosses several columns: split it at the column boundaries
	dydx := 1 / e.dxdy
	for col := colLeft; col <= colRight; col++ {
		ya := e.y0 + dydx*(float64(col)-e.x0)
		yb := e.y0 + dydx*(float64(col+1)-e.x0)
		lo := max(min(ya, yb), top)
		hi := min(max(ya, yb), bot)
		if hi <= lo {
			continue
		}
		add(col, hi-lo, e.xAt((lo+hi)/2))
	}
}

// integrate turns the cover/area buffers of one row into coverage values,
// in place, using the nonzero winding rule.
func integrate(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// trimZeros strips zero coverage from both ends of a row.
// It returns nil if the whole row is zero.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is the default curve approximation tolerance in
	// device pixels.
	defaultFlatness = 0.25

	// defaultMiterLimit is the PostScript default miter limit.
	defaultMiterLimit = 10.0

	// horizontalEdgeThreshold is the minimum vertical extent of an edge
	// which contributes to coverage.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the minimum length of a stroked segment.
	zeroLengthThreshold = 1e-10
)
