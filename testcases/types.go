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


package testcases

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/maplabel/geom"
	"seehuhn.de/go/maplabel/style"
)

// TestCase defines a single labelling scenario.
//
// The map extent covers the image: map coordinates run from (0, 0) at the
// bottom left to (Width, Height) × Resolution at the top right.
type TestCase struct {
	Name     string        // lowercase a-z and _ only
	Geometry geom.Geometry // the labelled geometry, in map units
	Style    *style.Text
	Width    int // image width in pixels
	Height   int // image height in pixels

	Resolution float64 // map units per pixel (zero means 1)
	PixelRatio float64 // device pixels per pixel (zero means 1)

	// Empty is set if no label is expected in the image.
	Empty bool
}

// Extent returns the map area shown by the test case.
func (tc *TestCase) Extent() rect.Rect {
	res := tc.MapResolution()
	return rect.Rect{URx: float64(tc.Width) * res, URy: float64(tc.Height) * res}
}

// MapResolution returns the resolution, with the default applied.
func (tc *TestCase) MapResolution() float64 {
	if tc.Resolution <= 0 {
		return 1
	}
	return tc.Resolution
}

// DevicePixelRatio returns the pixel ratio, with the default applied.
func (tc *TestCase) DevicePixelRatio() float64 {
	if tc.PixelRatio <= 0 {
		return 1
	}
	return tc.PixelRatio
}

// DeviceSize returns the size of the output image in device pixels.
func (tc *TestCase) DeviceSize() (int, int) {
	r := tc.DevicePixelRatio()
	return int(math.Ceil(float64(tc.Width) * r)), int(math.Ceil(float64(tc.Height) * r))
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// filled returns a text style painted in black.
func filled(text string) *style.Text {
	return &style.Text{Text: text, Fill: &style.Fill{}}
}

// halo returns a black text style with a white outline.
func halo(text string, width float64) *style.Text {
	return &style.Text{
		Text:   text,
		Fill:   &style.Fill{},
		Stroke: &style.Stroke{Color: white, Width: width},
	}
}

// along returns a style for text following a line.
func along(text string) *style.Text {
	return &style.Text{Text: text, Fill: &style.Fill{}, Placement: style.PlacementLine}
}

// rectRing returns the closed ring of an axis-parallel rectangle,
// counter-clockwise.
func rectRing(x0, y0, x1, y1 float64) []float64 {
	return []float64{x0, y0, x1, y0, x1, y1, x0, y1, x0, y0}
}

// arc returns n+1 points on a circular arc from angle a0 to a1.
func arc(cx, cy, r, a0, a1 float64, n int) []vec.Vec2 {
	pts := make([]vec.Vec2, n+1)
	for i := range pts {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		pts[i] = pt(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	return pts
}
