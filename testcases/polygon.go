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
	"slices"

	"seehuhn.de/go/maplabel/geom"
	"seehuhn.de/go/maplabel/style"
)

var polygonCases = []TestCase{
	{
		Name:     "interior",
		Geometry: geom.NewPolygon(rectRing(16, 8, 112, 56), []int{10}, 2),
		Style:    filled("Park"),
		Width:    128,
		Height:   64,
	},
	{
		Name: "hole",
		Geometry: geom.NewPolygon(
			slices.Concat(rectRing(8, 8, 120, 56), rectRing(40, 16, 88, 48)),
			[]int{10, 20}, 2),
		Style:  filled("Lake"),
		Width:  128,
		Height: 64,
	},
	{
		Name:     "too_narrow",
		Geometry: geom.NewPolygon(rectRing(56, 8, 72, 56), []int{10}, 2),
		Style:    filled("Narrow strip"),
		Width:    128,
		Height:   64,
		Empty:    true,
	},
	{
		Name:     "overflow",
		Geometry: geom.NewPolygon(rectRing(56, 8, 72, 56), []int{10}, 2),
		Style: &style.Text{
			Text:     "Narrow strip",
			Fill:     &style.Fill{},
			Overflow: true,
		},
		Width:  128,
		Height: 64,
	},
	{
		Name: "multi_polygon",
		Geometry: geom.NewMultiPolygon(
			slices.Concat(rectRing(4, 8, 60, 56), rectRing(100, 8, 108, 56), rectRing(68, 20, 96, 44)),
			[][]int{{10}, {20}, {30}}, 2),
		Style:  filled("Isle"),
		Width:  128,
		Height: 64,
	},
	{
		Name:     "outline",
		Geometry: geom.NewPolygon(rectRing(16, 8, 112, 56), []int{10}, 2),
		Style:    along("boundary"),
		Width:    128,
		Height:   64,
	},
	{
		Name: "outline_multi",
		Geometry: geom.NewMultiPolygon(
			slices.Concat(rectRing(4, 4, 60, 60), rectRing(20, 20, 44, 44), rectRing(68, 4, 124, 60)),
			[][]int{{10, 20}, {30}}, 2),
		Style:  along("edge"),
		Width:  128,
		Height: 64,
	},
}
