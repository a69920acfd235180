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
	"image/color"

	"seehuhn.de/go/maplabel/geom"
	"seehuhn.de/go/maplabel/style"
)

var (
	white = color.White
	red   = color.NRGBA{R: 200, G: 30, B: 30, A: 255}
	sky   = color.NRGBA{R: 200, G: 220, B: 255, A: 255}
)

var styleCases = []TestCase{
	{
		Name:     "halo",
		Geometry: geom.NewPoint(64, 32),
		Style:    halo("Halo", 3),
		Width:    128,
		Height:   64,
	},
	{
		Name:     "stroke_only",
		Geometry: geom.NewPoint(64, 32),
		Style: &style.Text{
			Text:   "Hollow",
			Font:   "bold 24px sans-serif",
			Stroke: &style.Stroke{Color: red, Width: 1},
		},
		Width:  128,
		Height: 64,
	},
	{
		Name:     "dashed",
		Geometry: geom.NewPoint(64, 32),
		Style: &style.Text{
			Text: "Dash",
			Font: "bold 28px sans-serif",
			Stroke: &style.Stroke{
				Color:    red,
				Width:    2,
				LineCap:  style.LineCapButt,
				LineJoin: style.LineJoinMiter,
				LineDash: []float64{3, 2},
			},
		},
		Width:  128,
		Height: 64,
	},
	{
		Name:     "multi_line",
		Geometry: geom.NewPoint(64, 32),
		Style:    filled("first line\nsecond\nthird"),
		Width:    128,
		Height:   64,
	},
	{
		Name:     "scaled",
		Geometry: geom.NewPoint(64, 32),
		Style: &style.Text{
			Text:  "Big",
			Fill:  &style.Fill{Color: red},
			Scale: 2.5,
		},
		Width:  128,
		Height: 64,
	},
	{
		Name:     "fonts",
		Geometry: geom.NewMultiPoint([]float64{64, 48, 64, 32, 64, 16}, 2),
		Style: &style.Text{
			Text: "Font",
			Font: "italic bold 12pt serif",
			Fill: &style.Fill{},
		},
		Width:  128,
		Height: 64,
	},
	{
		Name:     "monospace",
		Geometry: geom.NewPoint(64, 32),
		Style: &style.Text{
			Text: "mono 0123",
			Font: "16px monospace",
			Fill: &style.Fill{},
		},
		Width:  128,
		Height: 64,
	},
	{
		Name:     "background",
		Geometry: geom.NewPoint(64, 32),
		Style: &style.Text{
			Text:             "Boxed",
			Fill:             &style.Fill{},
			BackgroundFill:   &style.Fill{Color: sky},
			BackgroundStroke: &style.Stroke{Color: red, Width: 1},
			Padding:          []float64{2, 6, 2, 6},
		},
		Width:  128,
		Height: 64,
	},
	{
		Name:       "pixel_ratio",
		Geometry:   geom.NewPoint(64, 32),
		Style:      halo("HiDPI", 2),
		Width:      128,
		Height:     64,
		PixelRatio: 2,
	},
	{
		Name:       "resolution",
		Geometry:   geom.NewLineString([]float64{16, 64, 240, 64}, 2),
		Style:      along("zoomed out"),
		Width:      128,
		Height:     64,
		Resolution: 2,
	},
}
