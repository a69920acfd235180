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

package raster

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// polyline is a flattened subpath, stored as points[start:end].
type polyline struct {
	start, end int
	closed     bool
}

// Stroke renders the outline of the path using Width, Cap, Join,
// MiterLimit, Dash and DashPhase.
//
// The stroke is built as a union of simple convex pieces: one quadrilateral
// per segment, plus pieces for the joins and caps. All pieces have the
// same orientation, so that filling them together with the nonzero rule
// gives their union.
func (r *Rasterizer) Stroke(p *path.Data, emit EmitFunc) {
	r.edges = r.edges[:0]
	r.bbFirst = true
	if r.Width <= 0 {
		return
	}

	r.flatten(p)
	dashed := r.dashPattern()
	for _, l := range r.lines {
		pts := r.points[l.start:l.end]
		if dashed {
			r.dashPolyline(pts, l.closed)
		} else {
			r.strokePolyline(pts, l.closed)
		}
	}

	r.render(emit)
}

// flatten splits p into polylines. Consecutive duplicate points are
// removed.
func (r *Rasterizer) flatten(p *path.Data) {
	r.points = r.points[:0]
	r.lines = r.lines[:0]

	begin := -1
	finish := func(closed bool) {
		if begin >= 0 {
			r.lines = append(r.lines, polyline{start: begin, end: len(r.points), closed: closed})
		}
		begin = -1
	}

	r.walk(p, func(cmd path.Command, a, b vec.Vec2) {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			begin = len(r.points)
			r.points = append(r.points, b)
		case path.CmdLineTo:
			if begin < 0 {
				begin = len(r.points)
				r.points = append(r.points, a)
			}
			if b.Sub(r.points[len(r.points)-1]).Length() > zeroLengthThreshold {
				r.points = append(r.points, b)
			}
		case path.CmdClose:
			if begin < 0 {
				return
			}
			if n := len(r.points); n-begin > 1 &&
				r.points[n-1].Sub(r.points[begin]).Length() <= zeroLengthThreshold {
				r.points = r.points[:n-1]
			}
			finish(true)
		}
	})
	finish(false)
}

// strokePolyline adds the pieces for one polyline.
func (r *Rasterizer) strokePolyline(pts []vec.Vec2, closed bool) {
	n := len(pts)
	if n == 0 {
		return
	}
	if n == 1 {
		// no direction is known, only round caps are visible
		if r.Cap == graphics.LineCapRound {
			r.addDisc(pts[0])
		}
		return
	}
	if n < 3 {
		closed = false
	}

	for i := 1; i < n; i++ {
		r.addSegment(pts[i-1], pts[i])
	}
	for i := 1; i < n-1; i++ {
		r.addJoin(pts[i-1], pts[i], pts[i+1])
	}

	if closed {
		r.addSegment(pts[n-1], pts[0])
		r.addJoin(pts[n-2], pts[n-1], pts[0])
		r.addJoin(pts[n-1], pts[0], pts[1])
		return
	}

	r.addCap(pts[0], unit(pts[0].Sub(pts[1])))
	r.addCap(pts[n-1], unit(pts[n-1].Sub(pts[n-2])))
}

// addSegment adds the rectangle covering the segment from a to b.
func (r *Rasterizer) addSegment(a, b vec.Vec2) {
	n := leftNormal(unit(b.Sub(a))).Mul(r.Width / 2)
	r.addPiece(a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
}

// addJoin adds the join piece at p, between the segments prev-p and p-next.
func (r *Rasterizer) addJoin(prev, p, next vec.Vec2) {
	d0 := unit(p.Sub(prev))
	d1 := unit(next.Sub(p))
	cross := d0.X*d1.Y - d0.Y*d1.X
	dot := d0.Dot(d1)
	if math.Abs(cross) < 1e-12 && dot > 0 {
		return
	}

	hw := r.Width / 2
	side := hw
	if cross > 0 {
		side = -hw
	}
	o0 := leftNormal(d0).Mul(side)
	o1 := leftNormal(d1).Mul(side)

	switch r.Join {
	case graphics.LineJoinRound:
		r.addDisc(p)
	case graphics.LineJoinMiter:
		// cosHalf is the cosine of half the turning angle
		cosHalf := math.Sqrt(max(0, (1+dot)/2))
		if cosHalf > 0 && 1/cosHalf <= r.MiterLimit {
			tip := p.Add(unit(o0.Add(o1)).Mul(hw / cosHalf))
			r.addPiece(p, p.Add(o0), tip, p.Add(o1))
			return
		}
		fallthrough
	default:
		r.addPiece(p, p.Add(o0), p.Add(o1))
	}
}

// addCap adds the cap at the end point p of an open polyline. The unit
// vector d points away from the line.
func (r *Rasterizer) addCap(p, d vec.Vec2) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addDisc(p)
	case graphics.LineCapSquare:
		r.addSquare(p, d)
	}
}

// addSquare adds the square cap of a line ending at p in direction d.
func (r *Rasterizer) addSquare(p, d vec.Vec2) {
	hw := r.Width / 2
	n := leftNormal(d).Mul(hw)
	e := d.Mul(hw)
	r.addPiece(p.Add(n), p.Add(n).Add(e), p.Sub(n).Add(e), p.Sub(n))
}

// addDisc adds a circle of diameter Width around p.
func (r *Rasterizer) addDisc(p vec.Vec2) {
	hw := r.Width / 2
	rDev := hw * r.devScale()
	steps := 8
	if rDev > r.Flatness {
		steps = max(steps, int(math.Ceil(math.Pi/math.Acos(1-r.Flatness/rDev))))
	}

	r.piece = r.piece[:0]
	for i := range steps {
		phi := 2 * math.Pi * float64(i) / float64(steps)
		r.piece = append(r.piece, vec.Vec2{
			X: p.X + hw*math.Cos(phi),
			Y: p.Y + hw*math.Sin(phi),
		})
	}
	r.addPolygon(r.piece)
}

func (r *Rasterizer) addPiece(corners ...vec.Vec2) {
	r.piece = append(r.piece[:0], corners...)
	r.addPolygon(r.piece)
}

// addPolygon adds the edges of a closed polygon, reversed if needed so
// that every piece has positive orientation.
func (r *Rasterizer) addPolygon(pts []vec.Vec2) {
	var area float64
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		area += a.X*b.Y - a.Y*b.X
	}
	if area == 0 {
		return
	}
	if area < 0 {
		slices.Reverse(pts)
	}
	for i, a := range pts {
		r.addEdge(a, pts[(i+1)%len(pts)])
	}
}

// dashPattern reports whether the dash pattern is in effect. Patterns with
// negative entries or without positive length are ignored.
func (r *Rasterizer) dashPattern() bool {
	var total float64
	for _, d := range r.Dash {
		if d < 0 {
			return false
		}
		total += d
	}
	return total > 0
}

// dashStart finds the dash which is active at the start of each subpath.
func (r *Rasterizer) dashStart() (idx int, left float64, on bool) {
	var total float64
	for _, d := range r.Dash {
		total += d
	}
	phase := math.Mod(r.DashPhase, total)
	if phase < 0 {
		phase += total
	}

	on = true
	for phase > 0 && phase >= r.Dash[idx] {
		phase -= r.Dash[idx]
		idx = (idx + 1) % len(r.Dash)
		on = !on
	}
	return idx, r.Dash[idx] - phase, on
}

// dashPolyline splits a polyline into dashes and strokes each of them as
// an open polyline.
func (r *Rasterizer) dashPolyline(pts []vec.Vec2, closed bool) {
	n := len(pts)
	if n < 2 {
		r.strokePolyline(pts, false)
		return
	}
	segments := n - 1
	if closed && n > 2 {
		segments = n
	}

	idx, left, on := r.dashStart()
	run := r.run[:0]
	if on {
		run = append(run, pts[0])
	}

	var dir vec.Vec2
	for i := range segments {
		a, b := pts[i], pts[(i+1)%n]
		l := b.Sub(a).Length()
		dir = b.Sub(a).Mul(1 / l)

		pos := 0.0
		for l-pos > left {
			pos += left
			q := a.Add(dir.Mul(pos))
			if on {
				run = append(run, q)
				r.strokeDash(run, dir)
				run = run[:0]
			} else {
				run = append(run[:0], q)
			}
			on = !on
			idx = (idx + 1) % len(r.Dash)
			left = r.Dash[idx]
		}
		left -= l - pos
		if on {
			run = append(run, b)
		}
	}
	if on && len(run) > 0 {
		r.strokeDash(run, dir)
	}
	r.run = run
}

// strokeDash strokes a single dash. Zero-length dashes take their
// orientation from the underlying path.
func (r *Rasterizer) strokeDash(run []vec.Vec2, dir vec.Vec2) {
	run = slices.CompactFunc(run, func(a, b vec.Vec2) bool {
		return b.Sub(a).Length() <= zeroLengthThreshold
	})
	if len(run) > 1 {
		r.strokePolyline(run, false)
		return
	}
	switch r.Cap {
	case graphics.LineCapRound:
		r.addDisc(run[0])
	case graphics.LineCapSquare:
		r.addSquare(run[0], dir)
		r.addSquare(run[0], dir.Mul(-1))
	}
}

func unit(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// leftNormal returns v rotated by 90 degrees counter-clockwise.
func leftNormal(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -v.Y, Y: v.X}
}
