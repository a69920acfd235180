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
	"fmt"
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"seehuhn.de/go/maplabel/canvas"
)

// fakeTypesetter measures every character as charWidth wide, unless the
// string is listed in widths.
type fakeTypesetter struct {
	charWidth  float64
	widths     map[string]float64
	lineHeight float64

	measureCalls int
	contexts     []*fakeContext
}

func newFakeTypesetter() *fakeTypesetter {
	return &fakeTypesetter{charWidth: 5, lineHeight: 10}
}

func (f *fakeTypesetter) CheckFont(desc string) error {
	if strings.Contains(desc, "unknown") {
		return fmt.Errorf("%w: %q", canvas.ErrUnknownFont, desc)
	}
	return nil
}

func (f *fakeTypesetter) MeasureTextWidth(desc, text string) float64 {
	f.measureCalls++
	if w, ok := f.widths[text]; ok {
		return w
	}
	return f.charWidth * float64(utf8.RuneCountInString(text))
}

func (f *fakeTypesetter) MeasureTextHeight(desc string) float64 {
	return f.lineHeight
}

func (f *fakeTypesetter) NewContext(width, height int) canvas.Context {
	ctx := &fakeContext{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	f.contexts = append(f.contexts, ctx)
	return ctx
}

// fakeContext records the drawing calls.
type fakeContext struct {
	img   *image.RGBA
	scale float64
	font  string
	calls []string
}

func (c *fakeContext) Scale(sx, sy float64) { c.scale = sx }
func (c *fakeContext) SetFont(desc string) { c.font = desc }
func (c *fakeContext) SetFillColor(col color.Color) {}
func (c *fakeContext) SetStrokeStyle(s canvas.StrokeStyle) {}
func (c *fakeContext) Image() *image.RGBA { return c.img }
func (c *fakeContext) FillText(text string, x, y float64) { c.record("fill", text, x, y) }
func (c *fakeContext) StrokeText(text string, x, y float64) { c.record("stroke", text, x, y) }

func (c *fakeContext) record(op, text string, x, y float64) {
	c.calls = append(c.calls, fmt.Sprintf("%s %q %g %g", op, text, x, y))
}
