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

// Package canvas provides the text drawing primitives used for label
// bitmaps: font descriptor parsing, text measurement and offscreen
// drawing contexts.
//
// Glyph outlines are taken from the fonts with the sfnt package and
// painted with the coverage rasterizer from package raster.
package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/maplabel/raster"
	"seehuhn.de/go/maplabel/style"
)

// StrokeStyle describes how text outlines are stroked.
type StrokeStyle struct {
	Color      color.Color
	Width      float64
	Cap        style.LineCap
	Join       style.LineJoin
	MiterLimit float64
	Dash       []float64
	DashOffset float64
}

// Context draws text onto an offscreen bitmap.
//
// Text is always placed with center alignment and middle baseline: the
// point (x, y) given to FillText and StrokeText is the center of the
// text's advance box.
type Context interface {
	// Scale multiplies the current transformation by a scaling.
	Scale(sx, sy float64)

	// SetFont selects the font for the following text operations.
	SetFont(desc string)

	// SetFillColor sets the color used by FillText.
	SetFillColor(c color.Color)

	// SetStrokeStyle sets the parameters used by StrokeText.
	SetStrokeStyle(s StrokeStyle)

	FillText(text string, x, y float64)
	StrokeText(text string, x, y float64)

	// Image returns the bitmap drawn on.
	Image() *image.RGBA
}

// Canvas is the Context implementation of a Library.
type Canvas struct {
	lib    *Library
	img    *image.RGBA
	mask   *image.Alpha
	ctm    matrix.Matrix
	face   *Face
	fill   color.Color
	stroke StrokeStyle

	ras     *raster.Rasterizer
	outline path.Data
}

// NewCanvas allocates a transparent bitmap of the given size.
func NewCanvas(lib *Library, width, height int) *Canvas {
	bounds := image.Rect(0, 0, max(width, 0), max(height, 0))
	return &Canvas{
		lib:  lib,
		img:  image.NewRGBA(bounds),
		mask: image.NewAlpha(bounds),
		ctm:  matrix.Identity,
		fill: style.DefaultFillColor,
		stroke: StrokeStyle{
			Color:      style.DefaultStrokeColor,
			Width:      style.DefaultLineWidth,
			Cap:        style.DefaultLineCap,
			Join:       style.DefaultLineJoin,
			MiterLimit: style.DefaultMiterLimit,
		},
		ras: raster.NewRasterizer(rect.Rect{URx: float64(width), URy: float64(height)}),
	}
}

// Scale implements the Context interface.
func (c *Canvas) Scale(sx, sy float64) {
	m := c.ctm
	c.ctm = matrix.Matrix{m[0] * sx, m[1] * sx, m[2] * sy, m[3] * sy, m[4], m[5]}
}

// SetFont implements the Context interface.
// Unknown fonts leave the current font unchanged.
func (c *Canvas) SetFont(desc string) {
	if face, err := c.lib.Face(desc); err == nil {
		c.face = face
	}
}

// SetFillColor implements the Context interface.
func (c *Canvas) SetFillColor(col color.Color) {
	c.fill = col
}

// SetStrokeStyle implements the Context interface.
func (c *Canvas) SetStrokeStyle(s StrokeStyle) {
	c.stroke = s
}

// FillText implements the Context interface.
func (c *Canvas) FillText(text string, x, y float64) {
	if !c.layout(text, x, y) {
		return
	}
	c.ras.Reset(c.ras.Clip)
	c.ras.CTM = c.ctm
	c.paint(c.fill, func(emit raster.EmitFunc) { c.ras.Fill(&c.outline, emit) })
}

// StrokeText implements the Context interface.
func (c *Canvas) StrokeText(text string, x, y float64) {
	if c.stroke.Width <= 0 || !c.layout(text, x, y) {
		return
	}
	c.ras.Reset(c.ras.Clip)
	c.ras.CTM = c.ctm
	c.stroke.Apply(c.ras)
	c.paint(c.stroke.Color, func(emit raster.EmitFunc) { c.ras.Stroke(&c.outline, emit) })
}

// Apply copies the stroke parameters to a rasterizer.
func (s StrokeStyle) Apply(r *raster.Rasterizer) {
	r.Width = s.Width
	r.Cap = lineCap(s.Cap)
	r.Join = lineJoin(s.Join)
	r.MiterLimit = s.MiterLimit
	r.Dash = dashPattern(s.Dash)
	r.DashPhase = s.DashOffset
}

// Image implements the Context interface.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// paint composites a solid color onto the bitmap, through the coverage
// produced by render.
func (c *Canvas) paint(col color.Color, render func(emit raster.EmitFunc)) {
	PaintCoverage(c.img, c.mask, col, render)
}

// PaintCoverage composites the solid color col onto dst, using the
// coverage values produced by render as a mask. The mask must have the
// bounds of dst; it is overwritten. Nil colors paint nothing.
func PaintCoverage(dst *image.RGBA, mask *image.Alpha, col color.Color, render func(emit raster.EmitFunc)) {
	if col == nil {
		return
	}

	clear(mask.Pix)
	bounds := mask.Bounds()
	dirty := image.Rectangle{}
	render(func(y, xMin int, coverage []float32) {
		row := mask.Pix[mask.PixOffset(xMin, y):]
		for i, v := range coverage {
			row[i] = uint8(v*255 + 0.5)
		}
		dirty = dirty.Union(image.Rect(xMin, y, xMin+len(coverage), y+1))
	})
	dirty = dirty.Intersect(bounds)
	if dirty.Empty() {
		return
	}

	draw.DrawMask(dst, dirty, image.NewUniform(col), image.Point{}, mask, dirty.Min, draw.Over)
}

// layout converts text to glyph outlines in c.outline, centered
// horizontally at x with the middle of the em box at y.
// It returns false if there is nothing to draw.
func (c *Canvas) layout(text string, x, y float64) bool {
	c.outline.Cmds = c.outline.Cmds[:0]
	c.outline.Coords = c.outline.Coords[:0]
	if c.face == nil || text == "" {
		return false
	}

	face := c.face
	ppem := face.ppem()
	metrics := face.measure.Metrics()
	origin := vec.Vec2{
		X: x - fromFixed(font.MeasureString(face.measure, text))/2,
		Y: y + fromFixed(metrics.Ascent-metrics.Descent)/2,
	}

	pen := origin
	prev, hasPrev := sfnt.GlyphIndex(0), false
	for _, r := range text {
		gid, err := face.Font.GlyphIndex(&face.buf, r)
		if err != nil {
			continue
		}
		if hasPrev {
			if kern, err := face.Font.Kern(&face.buf, prev, gid, ppem, font.HintingNone); err == nil {
				pen.X += fromFixed(kern)
			}
		}
		c.appendGlyph(face, gid, pen)

		adv, err := face.Font.GlyphAdvance(&face.buf, gid, ppem, font.HintingNone)
		if err == nil {
			pen.X += fromFixed(adv)
		}
		prev, hasPrev = gid, true
	}
	return len(c.outline.Cmds) > 0
}

// appendGlyph adds the outline of one glyph, with its origin at pen.
func (c *Canvas) appendGlyph(face *Face, gid sfnt.GlyphIndex, pen vec.Vec2) {
	segments, err := face.Font.LoadGlyph(&face.buf, gid, face.ppem(), nil)
	if err != nil {
		return
	}

	p := &c.outline
	open := false
	for _, seg := range segments {
		var n int
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Cmds = append(p.Cmds, path.CmdClose)
			}
			p.Cmds = append(p.Cmds, path.CmdMoveTo)
			n, open = 1, true
		case sfnt.SegmentOpLineTo:
			p.Cmds = append(p.Cmds, path.CmdLineTo)
			n = 1
		case sfnt.SegmentOpQuadTo:
			p.Cmds = append(p.Cmds, path.CmdQuadTo)
			n = 2
		case sfnt.SegmentOpCubeTo:
			p.Cmds = append(p.Cmds, path.CmdCubeTo)
			n = 3
		}
		for _, a := range seg.Args[:n] {
			p.Coords = append(p.Coords, vec.Vec2{
				X: pen.X + fromFixed(a.X),
				Y: pen.Y + fromFixed(a.Y),
			})
		}
	}
	if open {
		p.Cmds = append(p.Cmds, path.CmdClose)
	}
}

func lineCap(c style.LineCap) graphics.LineCapStyle {
	switch c {
	case style.LineCapButt:
		return graphics.LineCapButt
	case style.LineCapSquare:
		return graphics.LineCapSquare
	default:
		return graphics.LineCapRound
	}
}

func lineJoin(j style.LineJoin) graphics.LineJoinStyle {
	switch j {
	case style.LineJoinMiter:
		return graphics.LineJoinMiter
	case style.LineJoinBevel:
		return graphics.LineJoinBevel
	default:
		return graphics.LineJoinRound
	}
}

// dashPattern repeats odd-length patterns, as HTML canvas does.
func dashPattern(d []float64) []float64 {
	if len(d)%2 == 1 {
		return append(d[:len(d):len(d)], d...)
	}
	return d
}
