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


// Command genpng renders all test cases to PNG files, which the tests use
// as reference images.
// Run from the maplabel module root directory.
package main

import (
	"fmt"
	"image"
	"golang.org/x/image/draw"
	"image/png"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/maplabel"
	"seehuhn.de/go/maplabel/testcases"
)

const refDir = "testdata/reference"

func main() {
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			img, err := maplabel.RenderExample(tc)
			if err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if err := writePNG(filepath.Join(refDir, name+".png"), img); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

// writePNG stores img as a non-premultiplied PNG file.
func writePNG(fname string, img *image.RGBA) (err error) {
	nrgba := image.NewNRGBA(img.Bounds())
	draw.Draw(nrgba, nrgba.Bounds(), img, img.Bounds().Min, draw.Src)

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, nrgba)
}
