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

package canvas

import (
	"errors"
	"image"
	"image/color"
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/maplabel/style"
)

func TestParseFont(t *testing.T) {
	tests := []struct {
		desc     string
		italic   bool
		weight   int
		size     float64
		families []string
	}{
		{"10px sans-serif", false, 400, 10, []string{"sans-serif"}},
		{"italic bold 12pt 'Go Mono', monospace", true, 700, 16, []string{"Go Mono", "monospace"}},
		{"300 2em Go", false, 300, 32, []string{"Go"}},
		{"bold 12px/1.5 serif", false, 700, 12, []string{"serif"}},
		{"normal small-caps large \"Go\"", false, 400, 18, []string{"Go"}},
		{"oblique 1.5rem  Go,serif", true, 400, 24, []string{"Go", "serif"}},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			f, err := ParseFont(tc.desc)
			if err != nil {
				t.Fatal(err)
			}
			if f.Italic != tc.italic || f.Weight != tc.weight {
				t.Errorf("italic=%t weight=%d, want %t %d", f.Italic, f.Weight, tc.italic, tc.weight)
			}
			if math.Abs(f.Size-tc.size) > 1e-9 {
				t.Errorf("size = %g, want %g", f.Size, tc.size)
			}
			if !slices.Equal(f.Families, tc.families) {
				t.Errorf("families = %q, want %q", f.Families, tc.families)
			}
		})
	}
}

func TestParseFontErrors(t *testing.T) {
	for _, desc := range []string{"", "sans-serif", "12px", "12px ,", "fancy 12px Go", "-3px Go"} {
		_, err := ParseFont(desc)
		if !errors.Is(err, ErrBadFont) {
			t.Errorf("%q: got %v, want ErrBadFont", desc, err)
		}
		if !errors.Is(err, ErrUnknownFont) {
			t.Errorf("%q: error does not match ErrUnknownFont", desc)
		}
	}
}

func TestCheckFont(t *testing.T) {
	lib := NewLibrary()
	for _, desc := range []string{"10px sans-serif", "bold 10px Arial, monospace", "italic 700 14px GO"} {
		if err := lib.CheckFont(desc); err != nil {
			t.Errorf("%q: %v", desc, err)
		}
	}

	err := lib.CheckFont("10px Arial")
	if !errors.Is(err, ErrUnknownFont) || errors.Is(err, ErrBadFont) {
		t.Errorf("unregistered family: got %v", err)
	}
}

func TestFaceSharing(t *testing.T) {
	lib := NewLibrary()
	a, err := lib.Face("10px sans-serif")
	if err != nil {
		t.Fatal(err)
	}
	b, err := lib.Face("10px Go")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("same font and size should share a face")
	}
	c, _ := lib.Face("bold 10px Go")
	if c == a {
		t.Error("bold face must differ from regular face")
	}
}

func TestMeasure(t *testing.T) {
	lib := NewLibrary()

	narrow := lib.MeasureTextWidth("10px sans-serif", "iii")
	wide := lib.MeasureTextWidth("10px sans-serif", "WWW")
	if !(0 < narrow && narrow < wide) {
		t.Errorf("widths: iii=%g WWW=%g", narrow, wide)
	}

	w10 := lib.MeasureTextWidth("10px monospace", "label")
	w20 := lib.MeasureTextWidth("20px monospace", "label")
	if math.Abs(w20-2*w10) > 0.1 {
		t.Errorf("width does not scale with size: %g, %g", w10, w20)
	}

	h10 := lib.MeasureTextHeight("10px sans-serif")
	h20 := lib.MeasureTextHeight("20px sans-serif")
	if h10 <= 0 || math.Abs(h20-2*h10) > 0.1 {
		t.Errorf("line heights: %g, %g", h10, h20)
	}

	if w := lib.MeasureTextWidth("10px Nope", "x"); w != 0 {
		t.Errorf("unknown font: width %g", w)
	}
}

// inkBounds returns the bounding box and the number of pixels with
// non-zero alpha.
func inkBounds(img *image.RGBA) (image.Rectangle, int) {
	var box image.Rectangle
	count := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A == 0 {
				continue
			}
			count++
			box = box.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return box, count
}

func TestFillText(t *testing.T) {
	lib := NewLibrary()
	ctx := lib.NewContext(80, 40)
	ctx.SetFont("20px sans-serif")
	ctx.SetFillColor(color.NRGBA{R: 255, A: 255})
	ctx.FillText("Hm", 40, 20)

	img := ctx.Image()
	box, count := inkBounds(img)
	if count == 0 {
		t.Fatal("nothing drawn")
	}

	center := float64(box.Min.X+box.Max.X) / 2
	if math.Abs(center-40) > 3 {
		t.Errorf("text centered at x=%g, want 40", center)
	}
	middle := float64(box.Min.Y+box.Max.Y) / 2
	if math.Abs(middle-20) > 4 {
		t.Errorf("text centered at y=%g, want 20", middle)
	}

	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			if c := img.RGBAAt(x, y); c.G != 0 || c.B != 0 {
				t.Fatalf("pixel (%d,%d) = %v, want pure red", x, y, c)
			}
		}
	}
}

func TestStrokeText(t *testing.T) {
	lib := NewLibrary()

	draw := func(stroke bool) int {
		ctx := lib.NewContext(80, 40)
		ctx.SetFont("bold 20px sans-serif")
		if stroke {
			ctx.SetStrokeStyle(StrokeStyle{
				Color:      color.Black,
				Width:      3,
				Cap:        style.LineCapRound,
				Join:       style.LineJoinRound,
				MiterLimit: 10,
			})
			ctx.StrokeText("Go", 40, 20)
		} else {
			ctx.FillText("Go", 40, 20)
		}
		_, count := inkBounds(ctx.Image())
		return count
	}

	filled := draw(false)
	stroked := draw(true)
	if filled == 0 || stroked <= filled {
		t.Errorf("stroked text covers %d pixels, filled text %d", stroked, filled)
	}
}

func TestScale(t *testing.T) {
	lib := NewLibrary()

	// ink returns the total alpha of the drawn glyph
	ink := func(scale float64) float64 {
		ctx := lib.NewContext(100, 60)
		ctx.Scale(scale, scale)
		ctx.SetFont("12px sans-serif")
		ctx.FillText("A", 20, 12)
		var sum float64
		pix := ctx.Image().Pix
		for i := 3; i < len(pix); i += 4 {
			sum += float64(pix[i])
		}
		return sum
	}

	one, two := ink(1), ink(2)
	ratio := two / one
	if ratio < 3.5 || ratio > 4.5 {
		t.Errorf("scaling by 2 changed the ink by %g, want about 4", ratio)
	}
}

func TestNoFont(t *testing.T) {
	ctx := NewLibrary().NewContext(20, 20)
	ctx.SetFont("10px Nope")
	ctx.FillText("x", 10, 10)
	if _, count := inkBounds(ctx.Image()); count != 0 {
		t.Errorf("%d pixels drawn without a font", count)
	}
}

func TestDashPattern(t *testing.T) {
	if got := dashPattern([]float64{1, 2, 3}); !slices.Equal(got, []float64{1, 2, 3, 1, 2, 3}) {
		t.Errorf("odd pattern: %v", got)
	}
	if got := dashPattern([]float64{1, 2}); !slices.Equal(got, []float64{1, 2}) {
		t.Errorf("even pattern: %v", got)
	}
}
