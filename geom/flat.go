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

package geom

import (
	"math"
	"slices"
)

// LineLength returns the path length of the vertices in flat[offset:end].
func LineLength(flat []float64, offset, end, stride int) float64 {
	length := 0.0
	for i := offset + stride; i < end; i += stride {
		length += math.Hypot(flat[i]-flat[i-stride], flat[i+1]-flat[i-stride+1])
	}
	return length
}

// InterpolatePoint appends to dest the point at the given fraction of the
// path length of flat[offset:end] and returns the extended slice.
// An empty range appends NaN coordinates.
func InterpolatePoint(flat []float64, offset, end, stride int, fraction float64, dest []float64) []float64 {
	n := (end - offset) / stride
	switch {
	case n == 0:
		return append(dest, math.NaN(), math.NaN())
	case n == 1:
		return append(dest, flat[offset], flat[offset+1])
	}

	cumulative := make([]float64, 0, n)
	length := 0.0
	cumulative = append(cumulative, 0)
	for i := offset + stride; i < end; i += stride {
		length += math.Hypot(flat[i]-flat[i-stride], flat[i+1]-flat[i-stride+1])
		cumulative = append(cumulative, length)
	}
	target := fraction * length

	// index of the first vertex at or beyond the target distance
	k, found := slices.BinarySearch(cumulative, target)
	if found || k == 0 {
		i := offset + k*stride
		return append(dest, flat[i], flat[i+1])
	}
	if k >= n {
		i := end - stride
		return append(dest, flat[i], flat[i+1])
	}
	t := (target - cumulative[k-1]) / (cumulative[k] - cumulative[k-1])
	i0 := offset + (k-1)*stride
	i1 := i0 + stride
	return append(dest,
		flat[i0]+t*(flat[i1]-flat[i0]),
		flat[i0+1]+t*(flat[i1+1]-flat[i0+1]))
}

// interiorPoint appends (x, y, length) to dest, where (x, y) lies inside the
// polygon whose rings end at ends, and length is the length of the
// horizontal chord through (x, y) that is inside the polygon.
//
// The chord is taken on the horizontal line through the centre of the outer
// ring's extent; of all chords whose midpoint lies inside, the longest wins.
// If there is none, the extent centre is used and length is -Inf.
// A polygon without an outer ring gives (NaN, NaN, -Inf).
func interiorPoint(flat []float64, offset int, ends []int, stride int, dest []float64) []float64 {
	if len(ends) == 0 || ends[0]-offset < stride {
		return append(dest, math.NaN(), math.NaN(), math.Inf(-1))
	}
	outer := flatExtent(flat, offset, ends[0], stride)
	cx := (outer.LLx + outer.URx) / 2
	y := (outer.LLy + outer.URy) / 2

	var xs []float64
	start := offset
	for _, end := range ends {
		if end-start < stride {
			start = end
			continue
		}
		x1 := flat[end-stride]
		y1 := flat[end-stride+1]
		for i := start; i < end; i += stride {
			x2, y2 := flat[i], flat[i+1]
			if y1 != y2 && ((y <= y1 && y2 <= y) || (y1 <= y && y <= y2)) {
				xs = append(xs, (y-y1)/(y2-y1)*(x2-x1)+x1)
			}
			x1, y1 = x2, y2
		}
		start = end
	}
	slices.Sort(xs)

	pointX := math.NaN()
	best := math.Inf(-1)
	for i := 1; i < len(xs); i++ {
		chord := xs[i] - xs[i-1]
		if chord <= best {
			continue
		}
		x := (xs[i-1] + xs[i]) / 2
		if ringsContain(flat, offset, ends, stride, x, y) {
			pointX = x
			best = chord
		}
	}
	if math.IsNaN(pointX) {
		pointX = cx
	}
	return append(dest, pointX, y, best)
}

// ringContains reports whether (x, y) is inside the ring flat[offset:end],
// using the winding number.
func ringContains(flat []float64, offset, end, stride int, x, y float64) bool {
	if end-offset < stride {
		return false
	}
	wn := 0
	x1 := flat[end-stride]
	y1 := flat[end-stride+1]
	for i := offset; i < end; i += stride {
		x2, y2 := flat[i], flat[i+1]
		side := (x2-x1)*(y-y1) - (x-x1)*(y2-y1)
		if y1 <= y {
			if y2 > y && side > 0 {
				wn++
			}
		} else if y2 <= y && side < 0 {
			wn--
		}
		x1, y1 = x2, y2
	}
	return wn != 0
}

// ringsContain reports whether (x, y) is inside the first ring and outside
// all remaining rings.
func ringsContain(flat []float64, offset int, ends []int, stride int, x, y float64) bool {
	if len(ends) == 0 || !ringContains(flat, offset, ends[0], stride, x, y) {
		return false
	}
	for i := 1; i < len(ends); i++ {
		if ringContains(flat, ends[i-1], ends[i], stride, x, y) {
			return false
		}
	}
	return true
}
