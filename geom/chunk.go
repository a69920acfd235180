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

	"seehuhn.de/go/geom/vec"
)

// StraightChunk returns the end index of the longest chain of vertices,
// starting at offset, along which the accumulated absolute change of
// direction does not exceed maxAngle (in radians).
//
// The chain always contains the vertex at offset, and the first segment
// if there is one. The vertex at which the threshold is exceeded starts
// the next chain. Zero-length segments do not change the direction.
func StraightChunk(maxAngle float64, flat []float64, offset, end, stride int) int {
	if offset+stride >= end {
		return end
	}

	var dir vec.Vec2
	haveDir := false
	turned := 0.0
	for i := offset + stride; i < end; i += stride {
		d := vec.Vec2{X: flat[i] - flat[i-stride], Y: flat[i+1] - flat[i-stride+1]}
		l := d.Length()
		if l == 0 {
			continue
		}
		d = d.Mul(1 / l)
		if haveDir {
			turned += math.Acos(max(-1, min(1, dir.Dot(d))))
			if turned > maxAngle {
				return i
			}
		}
		dir = d
		haveDir = true
	}
	return end
}

// StraightChunks splits flat[offset:end] into consecutive chains using
// [StraightChunk] and returns their end indices. The chains partition the
// range: the first starts at offset, each further chain starts where the
// previous one ends, and the last one ends at end.
func StraightChunks(maxAngle float64, flat []float64, offset, end, stride int) []int {
	var ends []int
	for offset < end {
		chunkEnd := StraightChunk(maxAngle, flat, offset, end, stride)
		ends = append(ends, chunkEnd)
		offset = chunkEnd
	}
	return ends
}
