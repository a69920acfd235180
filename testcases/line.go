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

	"seehuhn.de/go/maplabel/geom"
	"seehuhn.de/go/maplabel/style"
)

var lineCases = []TestCase{
	{
		Name:     "straight",
		Geometry: geom.NewLineString([]float64{8, 32, 120, 32}, 2),
		Style:    along("along the road"),
		Width:    128,
		Height:   64,
	},
	{
		Name:     "diagonal",
		Geometry: geom.NewLineString([]float64{8, 8, 120, 56}, 2),
		Style:    along("uphill"),
		Width:    128,
		Height:   64,
	},
	{
		Name:     "reversed",
		Geometry: geom.NewLineString([]float64{120, 32, 8, 32}, 2),
		Style:    along("westwards"),
		Width:    128,
		Height:   64,
	},
	{
		Name:     "bend",
		Geometry: geom.NewLineString([]float64{8, 48, 64, 48, 120, 48, 120, 24, 120, 0}, 2),
		Style:    along("corner"),
		Width:    128,
		Height:   64,
	},
	{
		Name:     "arc",
		Geometry: geom.LineStringFromPoints(arc(64, 0, 56, math.Pi*0.9, math.Pi*0.1, 32)...),
		Style:    along("curve"),
		Width:    128,
		Height:   64,
	},
	{
		Name:     "arc_centred",
		Geometry: geom.LineStringFromPoints(arc(64, 0, 56, math.Pi*0.9, math.Pi*0.1, 32)...),
		Style: &style.Text{
			Text:      "centred",
			Fill:      &style.Fill{},
			Placement: style.PlacementLine,
			TextAlign: style.AlignCenter,
		},
		Width:  128,
		Height: 64,
	},
	{
		Name: "multi_line",
		Geometry: geom.NewMultiLineString(
			[]float64{8, 16, 120, 16, 8, 48, 120, 48}, []int{4, 8}, 2),
		Style:  along("twice"),
		Width:  128,
		Height: 64,
	},
	{
		Name:     "halo",
		Geometry: geom.NewLineString([]float64{8, 32, 120, 32}, 2),
		Style: &style.Text{
			Text:      "outlined",
			Fill:      &style.Fill{},
			Stroke:    &style.Stroke{Color: white, Width: 3},
			Placement: style.PlacementLine,
		},
		Width:  128,
		Height: 64,
	},
	{
		Name:     "too_short",
		Geometry: geom.NewLineString([]float64{56, 32, 72, 32}, 2),
		Style:    along("this does not fit"),
		Width:    128,
		Height:   64,
		Empty:    true,
	},
	{
		Name:     "overflow",
		Geometry: geom.NewLineString([]float64{40, 32, 88, 32}, 2),
		Style: &style.Text{
			Text:      "spills over the ends",
			Fill:      &style.Fill{},
			Placement: style.PlacementLine,
			Overflow:  true,
		},
		Width:  128,
		Height: 64,
	},
	{
		Name:     "outside",
		Geometry: geom.NewLineString([]float64{200, 32, 300, 32}, 2),
		Style:    along("gone"),
		Width:    128,
		Height:   64,
		Empty:    true,
	},
}
