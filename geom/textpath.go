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
)

// PlacedChar is one character positioned along a path.
type PlacedChar struct {
	X, Y  float64 // centre of the character on the path
	Angle float64 // direction of the baseline, in radians
	Width float64
	Char  string
}

// TextOnPath distributes the characters of text along the path
// flat[offset:end], starting at distance startM from the first vertex.
// The measure function returns the advance width of a string.
//
// Text is kept upright: if the path runs from right to left, characters are
// placed in reverse order. The function fails if two consecutive characters
// differ in direction by more than maxAngle, or if the path has fewer than
// two vertices.
func TextOnPath(flat []float64, offset, end, stride int, text string, measure func(string) float64, startM, maxAngle float64) ([]PlacedChar, bool) {
	if end-offset < 2*stride {
		return nil, false
	}
	chars := []rune(text)
	numChars := len(chars)
	reverse := flat[offset] > flat[end-stride]

	x1, y1 := flat[offset], flat[offset+1]
	offset += stride
	x2, y2 := flat[offset], flat[offset+1]
	segmentM := 0.0
	segmentLength := math.Hypot(x2-x1, y2-y1)

	res := make([]PlacedChar, numChars)
	chunk := ""
	chunkLength := 0.0
	previousAngle := math.NaN()
	for i := range numChars {
		index := i
		if reverse {
			index = numChars - i - 1
		}
		char := string(chars[index])
		if reverse {
			chunk = char + chunk
		} else {
			chunk += char
		}
		charLength := measure(chunk) - chunkLength
		chunkLength += charLength
		charM := startM + charLength/2

		for offset < end-stride && segmentM+segmentLength < charM {
			x1, y1 = x2, y2
			offset += stride
			x2, y2 = flat[offset], flat[offset+1]
			segmentM += segmentLength
			segmentLength = math.Hypot(x2-x1, y2-y1)
		}

		angle := math.Atan2(y2-y1, x2-x1)
		if reverse {
			if angle > 0 {
				angle -= math.Pi
			} else {
				angle += math.Pi
			}
		}
		if !math.IsNaN(previousAngle) {
			delta := angle - previousAngle
			if delta > math.Pi {
				delta -= 2 * math.Pi
			} else if delta < -math.Pi {
				delta += 2 * math.Pi
			}
			if math.Abs(delta) > maxAngle {
				return nil, false
			}
		}
		previousAngle = angle

		t := 0.0
		if segmentLength > 0 {
			t = (charM - segmentM) / segmentLength
		}
		res[index] = PlacedChar{
			X:     x1 + t*(x2-x1),
			Y:     y1 + t*(y2-y1),
			Angle: angle,
			Width: charLength,
			Char:  char,
		}
		startM += charLength
	}
	return res, true
}
