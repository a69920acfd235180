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


// Package maplabel places text labels on vector maps.
//
// The work is split into sub-packages: [seehuhn.de/go/maplabel/replay]
// records label instructions for geometries, and executes them onto
// images. [seehuhn.de/go/maplabel/canvas] measures and draws text using
// the rasterizer in [seehuhn.de/go/maplabel/raster], and
// [seehuhn.de/go/maplabel/cache] holds the label bitmaps shared between
// replays. This package runs the test cases in
// [seehuhn.de/go/maplabel/testcases] through the whole pipeline.
package maplabel

//go:generate go run ./testcases/export
//go:generate go run ./testcases/genpng

import (
	"image"

	"seehuhn.de/go/maplabel/cache"
	"seehuhn.de/go/maplabel/replay"
	"seehuhn.de/go/maplabel/testcases"
)

// Record places the label of a test case and returns the replay holding
// the instruction streams. Label bitmaps are stored in labels; if labels
// is nil, the shared default cache is used.
func Record(tc testcases.TestCase, labels *cache.Cache[*image.RGBA]) (*replay.TextReplay, error) {
	r := replay.NewTextReplay(&replay.Options{
		MaxExtent:  tc.Extent(),
		Resolution: tc.MapResolution(),
		PixelRatio: tc.DevicePixelRatio(),
		LabelCache: labels,
	})
	if err := r.SetTextStyle(tc.Style, tc.Name); err != nil {
		return nil, err
	}
	r.DrawText(tc.Geometry, tc.Name)
	return r, nil
}

// RenderExample renders a test case into a new image.
// The image has the size of the test case in device pixels and is
// transparent where no label was painted.
func RenderExample(tc testcases.TestCase) (*image.RGBA, error) {
	r, err := Record(tc, nil)
	if err != nil {
		return nil, err
	}

	w, h := tc.DeviceSize()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	transform := replay.ViewTransform(tc.Extent(), tc.MapResolution(), tc.DevicePixelRatio())
	replay.NewExecutor(r, transform).Execute(img)
	return img, nil
}
