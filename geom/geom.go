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

// Package geom provides the geometry model used for label placement.
//
// All geometries store their vertices in a single flat coordinate slice
// with a fixed stride, so that placement code can address sub-ranges of the
// coordinates by index. Only the first two values of every vertex (x and y)
// are used; additional dimensions are carried along unchanged.
package geom

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Type identifies the kind of a geometry.
type Type int

// These are the supported geometry types.
const (
	TypePoint Type = iota
	TypeMultiPoint
	TypeLineString
	TypeMultiLineString
	TypePolygon
	TypeMultiPolygon
	TypeCircle
)

func (t Type) String() string {
	switch t {
	case TypePoint:
		return "Point"
	case TypeMultiPoint:
		return "MultiPoint"
	case TypeLineString:
		return "LineString"
	case TypeMultiLineString:
		return "MultiLineString"
	case TypePolygon:
		return "Polygon"
	case TypeMultiPolygon:
		return "MultiPolygon"
	case TypeCircle:
		return "Circle"
	default:
		return "Unknown"
	}
}

// Geometry is implemented by all geometry types in this package.
type Geometry interface {
	Type() Type
	Extent() rect.Rect
	FlatCoordinates() []float64
	Stride() int
}

// Point is a single location.
type Point struct {
	flat []float64
}

// NewPoint returns a point at (x, y).
func NewPoint(x, y float64) *Point {
	return &Point{flat: []float64{x, y}}
}

func (p *Point) Type() Type { return TypePoint }
func (p *Point) Extent() rect.Rect { return flatExtent(p.flat, 0, len(p.flat), 2) }
func (p *Point) FlatCoordinates() []float64 { return p.flat }
func (p *Point) Stride() int { return 2 }

// MultiPoint is a collection of points.
type MultiPoint struct {
	flat   []float64
	stride int
}

// NewMultiPoint returns a multi-point with the given flat coordinates.
func NewMultiPoint(flat []float64, stride int) *MultiPoint {
	return &MultiPoint{flat: flat, stride: stride}
}

func (m *MultiPoint) Type() Type { return TypeMultiPoint }
func (m *MultiPoint) Extent() rect.Rect { return flatExtent(m.flat, 0, len(m.flat), m.stride) }
func (m *MultiPoint) FlatCoordinates() []float64 { return m.flat }
func (m *MultiPoint) Stride() int { return m.stride }

// LineString is a connected sequence of vertices.
type LineString struct {
	flat   []float64
	stride int
}

// NewLineString returns a line string with the given flat coordinates.
func NewLineString(flat []float64, stride int) *LineString {
	return &LineString{flat: flat, stride: stride}
}

// LineStringFromPoints returns a two-dimensional line string through pts.
func LineStringFromPoints(pts ...vec.Vec2) *LineString {
	return NewLineString(flatten(pts), 2)
}

func (l *LineString) Type() Type { return TypeLineString }
func (l *LineString) Extent() rect.Rect { return flatExtent(l.flat, 0, len(l.flat), l.stride) }
func (l *LineString) FlatCoordinates() []float64 { return l.flat }
func (l *LineString) Stride() int { return l.stride }

// FlatMidpoint returns the point half-way along the line, measured by path
// length, as an (x, y) pair.
func (l *LineString) FlatMidpoint() []float64 {
	return InterpolatePoint(l.flat, 0, len(l.flat), l.stride, 0.5, nil)
}

// MultiLineString is a collection of line strings sharing one coordinate
// slice. Ends holds the end index of every component.
type MultiLineString struct {
	flat   []float64
	ends   []int
	stride int
}

// NewMultiLineString returns a multi-line string. The components are
// flat[0:ends[0]], flat[ends[0]:ends[1]], and so on.
func NewMultiLineString(flat []float64, ends []int, stride int) *MultiLineString {
	return &MultiLineString{flat: flat, ends: ends, stride: stride}
}

func (m *MultiLineString) Type() Type { return TypeMultiLineString }
func (m *MultiLineString) Extent() rect.Rect { return flatExtent(m.flat, 0, len(m.flat), m.stride) }
func (m *MultiLineString) FlatCoordinates() []float64 { return m.flat }
func (m *MultiLineString) Stride() int { return m.stride }
func (m *MultiLineString) Ends() []int { return m.ends }

// FlatMidpoints returns the midpoint of every component, as consecutive
// (x, y) pairs.
func (m *MultiLineString) FlatMidpoints() []float64 {
	var res []float64
	offset := 0
	for _, end := range m.ends {
		res = InterpolatePoint(m.flat, offset, end, m.stride, 0.5, res)
		offset = end
	}
	return res
}

// Polygon is an area bounded by an outer ring with optional holes.
// Every ring repeats its first vertex at the end.
type Polygon struct {
	flat   []float64
	ends   []int
	stride int
}

// NewPolygon returns a polygon. The first ring is the outer boundary,
// further rings are holes.
func NewPolygon(flat []float64, ends []int, stride int) *Polygon {
	return &Polygon{flat: flat, ends: ends, stride: stride}
}

func (p *Polygon) Type() Type { return TypePolygon }
func (p *Polygon) Extent() rect.Rect { return flatExtent(p.flat, 0, len(p.flat), p.stride) }
func (p *Polygon) FlatCoordinates() []float64 { return p.flat }
func (p *Polygon) Stride() int { return p.stride }
func (p *Polygon) Ends() []int { return p.ends }

// FlatInteriorPoint returns a point inside the polygon together with the
// length of the horizontal chord through it, as (x, y, length).
func (p *Polygon) FlatInteriorPoint() []float64 {
	return interiorPoint(p.flat, 0, p.ends, p.stride, nil)
}

// MultiPolygon is a collection of polygons sharing one coordinate slice.
type MultiPolygon struct {
	flat   []float64
	endss  [][]int
	stride int
}

// NewMultiPolygon returns a multi-polygon. Each element of endss holds
// the ring ends of one polygon.
func NewMultiPolygon(flat []float64, endss [][]int, stride int) *MultiPolygon {
	return &MultiPolygon{flat: flat, endss: endss, stride: stride}
}

func (m *MultiPolygon) Type() Type { return TypeMultiPolygon }
func (m *MultiPolygon) Extent() rect.Rect { return flatExtent(m.flat, 0, len(m.flat), m.stride) }
func (m *MultiPolygon) FlatCoordinates() []float64 { return m.flat }
func (m *MultiPolygon) Stride() int { return m.stride }
func (m *MultiPolygon) Endss() [][]int { return m.endss }

// FlatInteriorPoints returns one (x, y, length) triple per component
// polygon, see [Polygon.FlatInteriorPoint].
func (m *MultiPolygon) FlatInteriorPoints() []float64 {
	var res []float64
	offset := 0
	for _, ends := range m.endss {
		if len(ends) == 0 {
			continue
		}
		res = interiorPoint(m.flat, offset, ends, m.stride, res)
		offset = ends[len(ends)-1]
	}
	return res
}

// Circle is a disc given by centre and radius.
type Circle struct {
	flat []float64 // cx, cy, cx+radius, cy
}

// NewCircle returns a circle.
func NewCircle(cx, cy, radius float64) *Circle {
	return &Circle{flat: []float64{cx, cy, cx + radius, cy}}
}

func (c *Circle) Type() Type { return TypeCircle }
func (c *Circle) FlatCoordinates() []float64 { return c.flat }
func (c *Circle) Stride() int { return 2 }

// Radius returns the radius of the circle.
func (c *Circle) Radius() float64 {
	return c.flat[2] - c.flat[0]
}

// Center returns the centre of the circle as an (x, y) pair.
func (c *Circle) Center() []float64 {
	return c.flat[:2]
}

func (c *Circle) Extent() rect.Rect {
	r := c.Radius()
	return rect.Rect{LLx: c.flat[0] - r, LLy: c.flat[1] - r, URx: c.flat[0] + r, URy: c.flat[1] + r}
}

func flatten(pts []vec.Vec2) []float64 {
	flat := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		flat = append(flat, p.X, p.Y)
	}
	return flat
}

// flatExtent returns the bounding box of the vertices in flat[offset:end].
// For an empty range, the result has LLx > URx.
func flatExtent(flat []float64, offset, end, stride int) rect.Rect {
	r := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for i := offset; i < end; i += stride {
		x, y := flat[i], flat[i+1]
		r.LLx = min(r.LLx, x)
		r.LLy = min(r.LLy, y)
		r.URx = max(r.URx, x)
		r.URy = max(r.URy, y)
	}
	return r
}

// Intersects reports whether the two extents overlap. Touching edges count
// as overlap; empty extents never intersect anything.
func Intersects(a, b rect.Rect) bool {
	return a.LLx <= b.URx && a.URx >= b.LLx && a.LLy <= b.URy && a.URy >= b.LLy
}

// Buffer returns r grown by d on every side.
func Buffer(r rect.Rect, d float64) rect.Rect {
	return rect.Rect{LLx: r.LLx - d, LLy: r.LLy - d, URx: r.URx + d, URy: r.URy + d}
}
