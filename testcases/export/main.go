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


// Command export writes the instruction streams of all test cases to JSON.
// Run from the maplabel module root directory.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/maplabel"
	"seehuhn.de/go/maplabel/replay"
	"seehuhn.de/go/maplabel/testcases"
)

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			r, err := maplabel.Record(tc, nil)
			if err != nil {
				panic(err)
			}
			out.TestCases = append(out.TestCases, toJSON(category, tc, r))
		}
	}

	if err := os.MkdirAll("testdata", 0755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name            string            `json:"name"`
	Width           int               `json:"width"`
	Height          int               `json:"height"`
	Resolution      float64           `json:"resolution"`
	PixelRatio      float64           `json:"pixel_ratio"`
	Geometry        string            `json:"geometry"`
	Coordinates     []float64         `json:"coordinates"`
	Instructions    []jsonInstruction `json:"instructions"`
	HitInstructions []jsonInstruction `json:"hit_instructions"`
}

type jsonInstruction struct {
	Op      string    `json:"op"`
	Begin   int       `json:"begin,omitempty"`
	End     int       `json:"end,omitempty"`
	Color   string    `json:"color,omitempty"`
	Width   int       `json:"width,omitempty"`
	Height  int       `json:"height,omitempty"`
	AnchorX float64   `json:"anchor_x,omitempty"`
	AnchorY float64   `json:"anchor_y,omitempty"`
	Scale   float64   `json:"scale,omitempty"`
	Padding []float64 `json:"padding,omitempty"`
	Text    string    `json:"text,omitempty"`
	TextKey string    `json:"text_key,omitempty"`
	FillKey string    `json:"fill_key,omitempty"`
	Stroke  string    `json:"stroke_key,omitempty"`
}

func toJSON(category string, tc testcases.TestCase, r *replay.TextReplay) jsonTestCase {
	return jsonTestCase{
		Name:            category + "_" + tc.Name,
		Width:           tc.Width,
		Height:          tc.Height,
		Resolution:      tc.MapResolution(),
		PixelRatio:      tc.DevicePixelRatio(),
		Geometry:        tc.Geometry.Type().String(),
		Coordinates:     r.Coordinates(),
		Instructions:    instructionsToJSON(r.Instructions()),
		HitInstructions: instructionsToJSON(r.HitDetectionInstructions()),
	}
}

func instructionsToJSON(instructions []replay.Instruction) []jsonInstruction {
	res := make([]jsonInstruction, 0, len(instructions))
	for _, ins := range instructions {
		j := jsonInstruction{Op: ins.Op().String()}
		switch ins := ins.(type) {
		case *replay.BeginGeometry:
			j.End = ins.End
		case *replay.SetFillStyle:
			j.Color = ins.Fill.Key()
		case *replay.SetStrokeStyle:
			j.Color = ins.Stroke.Key()
		case *replay.DrawImage:
			j.Begin, j.End = ins.Begin, ins.End
			j.Width, j.Height = int(ins.Width), int(ins.Height)
			j.AnchorX, j.AnchorY = ins.AnchorX, ins.AnchorY
			j.Scale = ins.Scale
			j.Padding = ins.Padding
		case *replay.DrawChars:
			j.Begin, j.End = ins.Begin, ins.End
			j.Scale = ins.Scale
			j.Text = ins.Text
			j.TextKey, j.FillKey, j.Stroke = ins.TextKey, ins.FillKey, ins.StrokeKey
		}
		res = append(res, j)
	}
	return res
}
