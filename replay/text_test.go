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

package replay

import (
	"errors"
	"image"
	"image/color"
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/maplabel/cache"
	"seehuhn.de/go/maplabel/canvas"
	"seehuhn.de/go/maplabel/geom"
	"seehuhn.de/go/maplabel/style"
)

func newTestReplay(ts canvas.Typesetter, opts Options) *TextReplay {
	opts.Typesetter = ts
	if opts.LabelCache == nil {
		opts.LabelCache = cache.New[*image.RGBA](100, nil)
	}
	return NewTextReplay(&opts)
}

func filledText(text string) *style.Text {
	return &style.Text{Text: text, Fill: &style.Fill{}}
}

// ops lists the kinds of the given instructions.
func ops(instructions []Instruction) []Op {
	var res []Op
	for _, ins := range instructions {
		res = append(res, ins.Op())
	}
	return res
}

func TestMultiLineMetrics(t *testing.T) {
	ts := newFakeTypesetter()
	ts.widths = map[string]float64{"AB": 20, "CDE": 35}
	r := newTestReplay(ts, Options{})

	st := filledText("AB\nCDE")
	st.Scale = 2
	if err := r.SetTextStyle(st, nil); err != nil {
		t.Fatal(err)
	}
	s := r.Style()
	label := r.GetImage(s.Text, s.TextKey, s.FillKey, s.StrokeKey)

	if w, h := label.Bounds().Dx(), label.Bounds().Dy(); w != 70 || h != 40 {
		t.Errorf("label size %dx%d, want 70x40", w, h)
	}

	ctx := ts.contexts[0]
	if ctx.scale != 2 {
		t.Errorf("context scale %g, want 2", ctx.scale)
	}
	want := []string{`fill "AB" 17.5 5`, `fill "CDE" 17.5 15`}
	if !slices.Equal(ctx.calls, want) {
		t.Errorf("drawing calls %q, want %q", ctx.calls, want)
	}
}

func TestLabelStroke(t *testing.T) {
	ts := newFakeTypesetter()
	ts.widths = map[string]float64{"AB": 20, "CDE": 35}
	r := newTestReplay(ts, Options{})

	st := filledText("AB\nCDE")
	st.TextAlign = style.AlignLeft
	st.Stroke = &style.Stroke{Width: 2}
	if err := r.SetTextStyle(st, nil); err != nil {
		t.Fatal(err)
	}
	s := r.Style()
	label := r.GetImage(s.Text, s.TextKey, s.FillKey, s.StrokeKey)

	if w, h := label.Bounds().Dx(), label.Bounds().Dy(); w != 37 || h != 22 {
		t.Errorf("label size %dx%d, want 37x22", w, h)
	}

	// left aligned: x = 0*w + 0.5*strokeWidth, shifted by half the line width
	want := []string{
		`stroke "AB" 11 6`, `stroke "CDE" 18.5 16`,
		`fill "AB" 11 6`, `fill "CDE" 18.5 16`,
	}
	if calls := ts.contexts[0].calls; !slices.Equal(calls, want) {
		t.Errorf("drawing calls %q, want %q", calls, want)
	}
}

func TestGetImageCaching(t *testing.T) {
	ts := newFakeTypesetter()
	labels := cache.New[*image.RGBA](100, nil)
	opts := Options{LabelCache: labels}

	base := func() *style.Text {
		return &style.Text{
			Text: "label",
			Font: "10px sans-serif",
			Fill: &style.Fill{Color: color.Black},
			Stroke: &style.Stroke{
				Color:      color.White,
				Width:      2,
				LineCap:    style.LineCapRound,
				LineJoin:   style.LineJoinRound,
				MiterLimit: 10,
			},
		}
	}
	label := func(opts Options, st *style.Text) *image.RGBA {
		r := newTestReplay(ts, opts)
		if err := r.SetTextStyle(st, nil); err != nil {
			t.Fatal(err)
		}
		s := r.Style()
		return r.GetImage(s.Text, s.TextKey, s.FillKey, s.StrokeKey)
	}

	ref := label(opts, base())
	if again := label(opts, base()); again != ref {
		t.Error("identical styles gave different bitmaps")
	}
	if n := len(ts.contexts); n != 1 {
		t.Errorf("%d bitmaps rendered, want 1", n)
	}

	variants := map[string]func(*style.Text){
		"text":        func(s *style.Text) { s.Text = "Label" },
		"font":        func(s *style.Text) { s.Font = "12px sans-serif" },
		"scale":       func(s *style.Text) { s.Scale = 1.5 },
		"align":       func(s *style.Text) { s.TextAlign = style.AlignRight },
		"fill color":  func(s *style.Text) { s.Fill.Color = color.NRGBA{R: 255, A: 255} },
		"no fill":     func(s *style.Text) { s.Fill = nil },
		"stroke":      func(s *style.Text) { s.Stroke.Color = color.NRGBA{B: 255, A: 255} },
		"width":       func(s *style.Text) { s.Stroke.Width = 3 },
		"cap":         func(s *style.Text) { s.Stroke.LineCap = style.LineCapButt },
		"join":        func(s *style.Text) { s.Stroke.LineJoin = style.LineJoinBevel },
		"miter":       func(s *style.Text) { s.Stroke.MiterLimit = 4 },
		"dash":        func(s *style.Text) { s.Stroke.LineDash = []float64{1, 2} },
		"dash offset": func(s *style.Text) { s.Stroke.LineDashOffset = 1 },
		"no stroke":   func(s *style.Text) { s.Stroke = nil },
	}
	seen := map[*image.RGBA]string{ref: "reference"}
	for name, modify := range variants {
		st := base()
		modify(st)
		img := label(opts, st)
		if other, dup := seen[img]; dup {
			t.Errorf("%s: same bitmap as %s", name, other)
		}
		seen[img] = name
	}

	hiDPI := opts
	hiDPI.PixelRatio = 2
	if img := label(hiDPI, base()); img == ref {
		t.Error("pixel ratio 2: same bitmap as pixel ratio 1")
	}
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("a", "bc", "", "", 1)
	b := CacheKey("ab", "c", "", "", 1)
	if a == b {
		t.Errorf("keys collide: %q", a)
	}
	if CacheKey("s", "t", "x", "f", 1) != CacheKey("s", "t", "x", "f", 1) {
		t.Error("keys are not deterministic")
	}
	if CacheKey("s", "t", "x", "f", 1) == CacheKey("s", "t", "x", "f", 2) {
		t.Error("pixel ratio is not part of the key")
	}

	k1 := (&TextState{Font: "10px sans-serif, foo", Scale: 12}).Key()
	k2 := (&TextState{Font: "10px sans-serif, foo1", Scale: 2}).Key()
	if k1 == k2 {
		t.Errorf("text keys collide: %q", k1)
	}
}

func TestFontScaleKeys(t *testing.T) {
	ts := newFakeTypesetter()
	labels := cache.New[*image.RGBA](100, nil)

	tests := []struct {
		font  string
		scale float64
		width int
	}{
		{"10px sans-serif, foo", 12, 60},
		{"10px sans-serif, foo1", 2, 10},
	}
	keys := map[string]bool{}
	for _, tc := range tests {
		r := newTestReplay(ts, Options{LabelCache: labels})
		st := filledText("x")
		st.Font = tc.font
		st.Scale = tc.scale
		if err := r.SetTextStyle(st, nil); err != nil {
			t.Fatal(err)
		}
		s := r.Style()
		if keys[s.TextKey] {
			t.Errorf("%q at scale %g: text key %q already used", tc.font, tc.scale, s.TextKey)
		}
		keys[s.TextKey] = true

		img := r.GetImage(s.Text, s.TextKey, s.FillKey, s.StrokeKey)
		if w := img.Bounds().Dx(); w != tc.width {
			t.Errorf("%q at scale %g: bitmap width %d, want %d", tc.font, tc.scale, w, tc.width)
		}
	}
	if n := len(ts.contexts); n != 2 {
		t.Errorf("%d bitmaps rendered, want 2", n)
	}
}

func TestStyleDefaults(t *testing.T) {
	st := NewStyleState(&style.Text{Text: "x", Stroke: &style.Stroke{}}, nil)
	if st.Font != style.DefaultFont || st.Scale != 1 || st.MaxAngle != style.DefaultMaxAngle {
		t.Errorf("text defaults: %+v", st.TextState)
	}
	if st.TextBaseline != style.DefaultTextBaseline {
		t.Errorf("baseline %q", st.TextBaseline)
	}
	s := st.Stroke
	if s.LineWidth != 1 || s.LineCap != style.LineCapRound || s.LineJoin != style.LineJoinRound || s.MiterLimit != 10 {
		t.Errorf("stroke defaults: %+v", s)
	}
	if st.Fill != nil || st.FillKey != "" {
		t.Errorf("unexpected fill %+v", st.Fill)
	}
	if st.TextKey != `"10px sans-serif"|1|?` {
		t.Errorf("text key %q", st.TextKey)
	}
	if want := "rgba(0,0,0,1)round0|1round10[]"; st.StrokeKey != want {
		t.Errorf("stroke key %q, want %q", st.StrokeKey, want)
	}

	st = NewStyleState(&style.Text{Text: "x", MaxAngle: 1e-6}, nil)
	if st.MaxAngle != 1e-6 {
		t.Errorf("max angle %g, want 1e-6", st.MaxAngle)
	}
}

func TestPointPlacement(t *testing.T) {
	for _, pixelRatio := range []float64{1, 2} {
		ts := newFakeTypesetter()
		r := newTestReplay(ts, Options{PixelRatio: pixelRatio})
		st := filledText("X")
		st.TextAlign = style.AlignCenter
		if err := r.SetTextStyle(st, "group"); err != nil {
			t.Fatal(err)
		}
		r.DrawText(geom.NewPoint(0, 0), "feature")

		want := []Op{OpBeginGeometry, OpDrawImage, OpEndGeometry}
		if got := ops(r.Instructions()); !slices.Equal(got, want) {
			t.Fatalf("instructions %v, want %v", got, want)
		}
		if got := ops(r.HitDetectionInstructions()); !slices.Equal(got, want) {
			t.Fatalf("hit detection instructions %v, want %v", got, want)
		}
		if coords := r.Coordinates(); !slices.Equal(coords, []float64{0, 0}) {
			t.Errorf("coordinates %v", coords)
		}

		begin := r.Instructions()[0].(*BeginGeometry)
		if begin.End != 2 || begin.Feature != "feature" {
			t.Errorf("begin geometry %+v", begin)
		}

		img := r.Instructions()[1].(*DrawImage)
		hit := r.HitDetectionInstructions()[1].(*DrawImage)
		w := float64(img.Image.Bounds().Dx())
		if math.Abs(img.AnchorX-w/2) > 1e-9 {
			t.Errorf("pixel ratio %g: anchor x %g, want %g", pixelRatio, img.AnchorX, w/2)
		}
		if img.Begin != 0 || img.End != 2 || img.DeclutterGroup != "group" {
			t.Errorf("image instruction %+v", img)
		}
		if img.Image != hit.Image || img.AnchorX != hit.AnchorX || img.AnchorY != hit.AnchorY {
			t.Error("hit detection instruction differs from image instruction")
		}
		if img.Scale != 1 || hit.Scale != 1/pixelRatio {
			t.Errorf("scales %g and %g", img.Scale, hit.Scale)
		}
	}
}

func TestImageOffsetsAndPadding(t *testing.T) {
	ts := newFakeTypesetter()
	r := newTestReplay(ts, Options{PixelRatio: 2})
	st := filledText("XX") // 10x10, at pixel ratio 2: 20x20
	st.TextAlign = style.AlignLeft
	st.TextBaseline = style.BaselineBottom
	st.OffsetX = 3
	st.OffsetY = -4
	st.Rotation = 0.5
	st.RotateWithView = true
	st.Padding = []float64{1, 2, 3, 4}
	if err := r.SetTextStyle(st, nil); err != nil {
		t.Fatal(err)
	}
	r.DrawText(geom.NewPoint(1, 2), nil)

	img := r.Instructions()[1].(*DrawImage)
	hit := r.HitDetectionInstructions()[1].(*DrawImage)
	if img.AnchorX != (0-3)*2 || img.AnchorY != (10+4)*2 {
		t.Errorf("anchor (%g, %g)", img.AnchorX, img.AnchorY)
	}
	if !slices.Equal(img.Padding, []float64{2, 4, 6, 8}) || !slices.Equal(hit.Padding, st.Padding) {
		t.Errorf("padding %v and %v", img.Padding, hit.Padding)
	}
	if img.Rotation != 0.5 || !img.RotateWithView {
		t.Errorf("rotation %g, %t", img.Rotation, img.RotateWithView)
	}
}

func TestAnchors(t *testing.T) {
	square := func(x, y, size float64) []float64 {
		return []float64{x, y, x + size, y, x + size, y + size, x, y + size, x, y}
	}

	tests := []struct {
		name   string
		g      geom.Geometry
		coords []float64
	}{
		{"point", geom.NewPoint(1, 2), []float64{1, 2}},
		{"multi-point", geom.NewMultiPoint([]float64{1, 2, 9, 3, 4, 9}, 3), []float64{1, 2, 3, 4}},
		{"line", geom.NewLineString([]float64{0, 0, 10, 0, 10, 10}, 2), []float64{10, 0}},
		{"multi-line", geom.NewMultiLineString([]float64{0, 0, 4, 0, 0, 5, 0, 7}, []int{4, 8}, 2), []float64{2, 0, 0, 6}},
		{"circle", geom.NewCircle(3, 4, 5), []float64{3, 4}},
		{"polygon", geom.NewPolygon(square(0, 0, 100), []int{10}, 2), []float64{50, 50}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestReplay(newFakeTypesetter(), Options{})
			if err := r.SetTextStyle(filledText("X"), nil); err != nil {
				t.Fatal(err)
			}
			r.DrawText(tc.g, nil)
			if got := r.Coordinates(); !slices.Equal(got, tc.coords) {
				t.Errorf("anchors %v, want %v", got, tc.coords)
			}
		})
	}
}

func TestEmptyGeometries(t *testing.T) {
	tests := []struct {
		name   string
		g      geom.Geometry
		coords []float64
	}{
		{"polygon", geom.NewPolygon(nil, nil, 2), nil},
		{"polygon without vertices", geom.NewPolygon(nil, []int{0}, 2), nil},
		{"line", geom.NewLineString(nil, 2), nil},
		{"multi-line", geom.NewMultiLineString([]float64{0, 0, 10, 0}, []int{4, 4}, 2), []float64{5, 0}},
		{"multi-polygon", geom.NewMultiPolygon(nil, [][]int{{0}}, 2), nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestReplay(newFakeTypesetter(), Options{})
			st := filledText("X")
			st.Overflow = true
			if err := r.SetTextStyle(st, nil); err != nil {
				t.Fatal(err)
			}
			r.DrawText(tc.g, nil)
			if got := r.Coordinates(); !slices.Equal(got, tc.coords) {
				t.Errorf("anchors %v, want %v", got, tc.coords)
			}
			if tc.coords == nil && len(r.Instructions()) > 0 {
				t.Errorf("instructions %v for an empty geometry", ops(r.Instructions()))
			}
		})
	}
}

func TestOverflow(t *testing.T) {
	// the label "XXXX" is 20 pixels wide, the polygon 10 map units
	flat := []float64{0, 0, 10, 0, 10, 10, 0, 10, 0, 0}

	tests := []struct {
		resolution float64
		overflow   bool
		drawn      bool
	}{
		{1, false, false},
		{1, true, true},
		{0.5, false, true},  // 10 / 0.5 = 20 pixels
		{0.25, false, true}, // 40 pixels
		{0.6, false, false},
	}
	for _, tc := range tests {
		r := newTestReplay(newFakeTypesetter(), Options{Resolution: tc.resolution})
		st := filledText("XXXX")
		st.Overflow = tc.overflow
		if err := r.SetTextStyle(st, nil); err != nil {
			t.Fatal(err)
		}
		r.DrawText(geom.NewPolygon(flat, []int{10}, 2), nil)

		drawn := len(r.Instructions()) > 0
		if drawn != tc.drawn {
			t.Errorf("resolution %g, overflow %t: drawn=%t, want %t",
				tc.resolution, tc.overflow, drawn, tc.drawn)
		}
	}
}

func TestMultiPolygonOverflow(t *testing.T) {
	small := []float64{0, 0, 10, 0, 10, 10, 0, 10, 0, 0}
	large := []float64{100, 0, 150, 0, 150, 50, 100, 50, 100, 0}
	flat := append(slices.Clone(small), large...)
	mp := geom.NewMultiPolygon(flat, [][]int{{10}, {20}}, 2)

	r := newTestReplay(newFakeTypesetter(), Options{})
	if err := r.SetTextStyle(filledText("XXXX"), nil); err != nil {
		t.Fatal(err)
	}
	r.DrawText(mp, nil)
	if got := r.Coordinates(); !slices.Equal(got, []float64{125, 25}) {
		t.Errorf("anchors %v, want only the large polygon", got)
	}

	// no component fits
	r = newTestReplay(newFakeTypesetter(), Options{})
	if err := r.SetTextStyle(filledText("XXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX"), nil); err != nil {
		t.Fatal(err)
	}
	r.DrawText(mp, nil)
	if n := len(r.Instructions()); n != 0 {
		t.Errorf("%d instructions for a label which fits nowhere", n)
	}
}

func TestLinePlacement(t *testing.T) {
	// a 90 degree bend at (100, 0)
	bend := geom.NewLineString([]float64{0, 0, 50, 0, 100, 0, 100, 50, 100, 100}, 2)

	r := newTestReplay(newFakeTypesetter(), Options{})
	st := filledText("follow")
	st.Placement = style.PlacementLine
	st.MaxAngle = math.Pi / 4
	if err := r.SetTextStyle(st, nil); err != nil {
		t.Fatal(err)
	}
	r.DrawText(bend, nil)

	var chars []*DrawChars
	for _, ins := range r.Instructions() {
		if dc, ok := ins.(*DrawChars); ok {
			chars = append(chars, dc)
		}
	}
	if len(chars) < 2 {
		t.Fatalf("%d character instructions, want at least 2", len(chars))
	}

	// the pieces partition the coordinates
	pos := 0
	for _, dc := range chars {
		if dc.Begin != pos || dc.End <= dc.Begin {
			t.Errorf("piece [%d, %d) does not continue at %d", dc.Begin, dc.End, pos)
		}
		pos = dc.End
	}
	if flat := bend.FlatCoordinates(); pos != len(flat) || !slices.Equal(r.Coordinates(), flat) {
		t.Errorf("pieces cover %d of %d coordinates", pos, len(flat))
	}

	hit := 0
	for _, ins := range r.HitDetectionInstructions() {
		if _, ok := ins.(*DrawChars); ok {
			hit++
		}
	}
	if hit != len(chars) {
		t.Errorf("%d hit detection instructions for %d character instructions", hit, len(chars))
	}
}

func TestLinePlacementAligned(t *testing.T) {
	bend := geom.NewLineString([]float64{0, 0, 50, 0, 100, 0, 100, 50, 100, 100}, 2)

	r := newTestReplay(newFakeTypesetter(), Options{})
	st := filledText("follow")
	st.Placement = style.PlacementLine
	st.TextAlign = style.AlignCenter
	if err := r.SetTextStyle(st, nil); err != nil {
		t.Fatal(err)
	}
	r.DrawText(bend, nil)

	want := []Op{OpBeginGeometry, OpDrawChars, OpEndGeometry}
	if got := ops(r.Instructions()); !slices.Equal(got, want) {
		t.Errorf("instructions %v, want %v", got, want)
	}
}

func TestLinePlacementRings(t *testing.T) {
	outer := []float64{0, 0, 100, 0, 100, 100, 0, 100, 0, 0}
	hole := []float64{40, 40, 60, 40, 60, 60, 40, 60, 40, 40}
	second := []float64{200, 0, 300, 0, 300, 100, 200, 100, 200, 0}
	flat := slices.Concat(outer, hole, second)
	mp := geom.NewMultiPolygon(flat, [][]int{{10, 20}, {30}}, 2)

	r := newTestReplay(newFakeTypesetter(), Options{})
	st := filledText("ring")
	st.Placement = style.PlacementLine
	st.TextAlign = style.AlignLeft
	if err := r.SetTextStyle(st, nil); err != nil {
		t.Fatal(err)
	}
	r.DrawText(mp, nil)

	want := slices.Concat(outer, second)
	if got := r.Coordinates(); !slices.Equal(got, want) {
		t.Errorf("coordinates %v, want the outer rings %v", got, want)
	}
}

func TestLineOutsideExtent(t *testing.T) {
	r := newTestReplay(newFakeTypesetter(), Options{
		MaxExtent:    rect.Rect{LLx: 1000, LLy: 1000, URx: 2000, URy: 2000},
		Renderbuffer: 10,
	})
	st := filledText("far")
	st.Placement = style.PlacementLine
	if err := r.SetTextStyle(st, nil); err != nil {
		t.Fatal(err)
	}
	r.DrawText(geom.NewLineString([]float64{0, 0, 100, 0}, 2), nil)
	if n := len(r.Instructions()); n != 0 {
		t.Errorf("%d instructions for a line outside the extent", n)
	}

	// the render buffer brings this line into view
	r.DrawText(geom.NewLineString([]float64{0, 995, 1005, 995}, 2), nil)
	if n := len(r.Instructions()); n == 0 {
		t.Error("no instructions for a line inside the buffered extent")
	}
}

func TestCharMeasure(t *testing.T) {
	ts := newFakeTypesetter()
	r := newTestReplay(ts, Options{PixelRatio: 2})
	st := filledText("abc")
	st.Placement = style.PlacementLine
	st.Scale = 1.5
	st.Stroke = &style.Stroke{Width: 4}
	if err := r.SetTextStyle(st, nil); err != nil {
		t.Fatal(err)
	}
	r.DrawText(geom.NewLineString([]float64{0, 0, 100, 0}, 2), nil)

	dc := r.Instructions()[1].(*DrawChars)
	hit := r.HitDetectionInstructions()[1].(*DrawChars)
	if got := dc.Measure("ab"); got != 10*1.5*2 {
		t.Errorf("measure = %g, want 30", got)
	}
	if got := hit.Measure("ab"); got != 10*1.5 {
		t.Errorf("hit detection measure = %g, want 15", got)
	}
	if dc.StrokeWidth != 4*1.5/2*2 || hit.StrokeWidth != 4*1.5/2 {
		t.Errorf("stroke widths %g and %g", dc.StrokeWidth, hit.StrokeWidth)
	}
	if dc.Widths != hit.Widths {
		t.Error("instructions do not share the width table")
	}

	calls := ts.measureCalls
	dc.Measure("ab")
	hit.Measure("ab")
	if ts.measureCalls != calls {
		t.Error("widths are not memoized")
	}
}

func TestNothingToDraw(t *testing.T) {
	tests := map[string]*style.Text{
		"nil style":  nil,
		"empty text": filledText(""),
		"no paint":   {Text: "invisible"},
	}
	for name, st := range tests {
		r := newTestReplay(newFakeTypesetter(), Options{})
		if err := r.SetTextStyle(st, nil); err != nil {
			t.Fatal(err)
		}
		r.DrawText(geom.NewPoint(0, 0), nil)
		if n := len(r.Instructions()); n != 0 {
			t.Errorf("%s: %d instructions", name, n)
		}
	}
}

func TestUnknownFont(t *testing.T) {
	r := newTestReplay(newFakeTypesetter(), Options{})
	if err := r.SetTextStyle(filledText("ok"), nil); err != nil {
		t.Fatal(err)
	}
	prev := r.Style()

	st := filledText("bad")
	st.Font = "10px unknown"
	err := r.SetTextStyle(st, nil)
	if !errors.Is(err, canvas.ErrUnknownFont) {
		t.Errorf("got %v, want ErrUnknownFont", err)
	}
	if r.Style() != prev {
		t.Error("failed SetTextStyle changed the style")
	}
}

func TestBackground(t *testing.T) {
	r := newTestReplay(newFakeTypesetter(), Options{})
	st := filledText("boxed")
	st.BackgroundFill = &style.Fill{Color: color.White}
	st.BackgroundStroke = &style.Stroke{Width: 1}
	if err := r.SetTextStyle(st, nil); err != nil {
		t.Fatal(err)
	}
	r.DrawText(geom.NewPoint(0, 0), nil)

	want := []Op{OpBeginGeometry, OpSetFillStyle, OpSetStrokeStyle, OpDrawImage, OpEndGeometry}
	for _, stream := range [][]Instruction{r.Instructions(), r.HitDetectionInstructions()} {
		if got := ops(stream); !slices.Equal(got, want) {
			t.Fatalf("instructions %v, want %v", got, want)
		}
		img := stream[3].(*DrawImage)
		if !img.BackgroundFill || !img.BackgroundStroke {
			t.Error("background flags not set")
		}
	}
}

func TestRegistries(t *testing.T) {
	r := newTestReplay(newFakeTypesetter(), Options{})
	a := filledText("a")
	a.Fill.Color = color.NRGBA{R: 255, A: 255}
	b := filledText("b")
	b.Fill.Color = color.RGBA{R: 255, A: 255} // same color, different type

	if err := r.SetTextStyle(a, nil); err != nil {
		t.Fatal(err)
	}
	first := r.Style()
	if err := r.SetTextStyle(b, nil); err != nil {
		t.Fatal(err)
	}
	second := r.Style()

	if first.FillKey != second.FillKey {
		t.Errorf("fill keys %q and %q differ", first.FillKey, second.FillKey)
	}
	if len(r.FillStates) != 1 || len(r.TextStates) != 1 {
		t.Errorf("%d fill states, %d text states", len(r.FillStates), len(r.TextStates))
	}
	if first == second {
		t.Error("style state was reused")
	}
}

func TestNewTextReplayPrunes(t *testing.T) {
	labels := cache.New[*image.RGBA](4, nil)
	for i := range 20 {
		labels.Set(string(rune('a'+i)), image.NewRGBA(image.Rect(0, 0, 1, 1)))
	}
	newTestReplay(newFakeTypesetter(), Options{LabelCache: labels})
	if n := labels.Len(); n > 4 {
		t.Errorf("cache holds %d labels after creating a replay, want at most 4", n)
	}
}

func TestAppendFlatCoordinates(t *testing.T) {
	b := NewBase(0, rect.Rect{URx: 10, URy: 10}, 1, 1, false, 0)
	flat := []float64{-5, 5, -6, 5, -7, 5, 5, 5, 6, 6}
	end := b.AppendFlatCoordinates(flat, 0, len(flat), 2, false, false)

	want := []float64{-5, 5, -7, 5, 5, 5, 6, 6}
	if got := b.Coordinates(); !slices.Equal(got, want) || end != len(want) {
		t.Errorf("coordinates %v (end %d), want %v", got, end, want)
	}
}
