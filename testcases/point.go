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

var pointCases = []TestCase{
	{
		Name:     "centred",
		Geometry: geom.NewPoint(64, 32),
		Style:    filled("Label"),
		Width:    128,
		Height:   64,
	},
	{
		Name:     "multi_point",
		Geometry: geom.NewMultiPoint([]float64{32, 16, 64, 32, 96, 48}, 2),
		Style:    filled("abc"),
		Width:    128,
		Height:   64,
	},
	{
		Name:     "circle",
		Geometry: geom.NewCircle(64, 32, 20),
		Style:    filled("centre"),
		Width:    128,
		Height:   64,
	},
	{
		Name:     "align_left",
		Geometry: geom.NewPoint(64, 32),
		Style:    aligned("left", style.AlignLeft, style.BaselineMiddle),
		Width:    128,
		Height:   64,
	},
	{
		Name:     "align_right",
		Geometry: geom.NewPoint(64, 32),
		Style:    aligned("right", style.AlignRight, style.BaselineMiddle),
		Width:    128,
		Height:   64,
	},
	{
		Name:     "baseline_top",
		Geometry: geom.NewPoint(64, 32),
		Style:    aligned("top", style.AlignCenter, style.BaselineTop),
		Width:    128,
		Height:   64,
	},
	{
		Name:     "baseline_bottom",
		Geometry: geom.NewPoint(64, 32),
		Style:    aligned("bottom", style.AlignCenter, style.BaselineBottom),
		Width:    128,
		Height:   64,
	},
	{
		Name:     "offset",
		Geometry: geom.NewPoint(64, 32),
		Style: &style.Text{
			Text:    "moved",
			Fill:    &style.Fill{},
			OffsetX: 20,
			OffsetY: -10,
		},
		Width:  128,
		Height: 64,
	},
	{
		Name:     "rotated",
		Geometry: geom.NewPoint(64, 32),
		Style: &style.Text{
			Text:     "rotated",
			Fill:     &style.Fill{},
			Rotation: math.Pi / 6,
		},
		Width:  128,
		Height: 64,
	},
	{
		Name:     "outside",
		Geometry: geom.NewPoint(500, 500),
		Style:    filled("gone"),
		Width:    128,
		Height:   64,
		Empty:    true,
	},
}

func aligned(text string, align style.Align, baseline style.Baseline) *style.Text {
	return &style.Text{
		Text:         text,
		Fill:         &style.Fill{},
		TextAlign:    align,
		TextBaseline: baseline,
	}
}
