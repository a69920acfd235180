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
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/maplabel/canvas"
	"seehuhn.de/go/maplabel/geom"
	"seehuhn.de/go/maplabel/raster"
)

// Executor paints the instructions of a TextReplay onto an image.
// Decluttering is not performed: all labels are drawn.
type Executor struct {
	Replay *TextReplay

	// Transform maps map coordinates to device pixels.
	Transform matrix.Matrix

	// ViewRotation is added to the rotation of labels which rotate with
	// the view, in radians.
	ViewRotation float64

	pixels   []float64
	bgFill   *FillState
	bgStroke *StrokeState
	ras      *raster.Rasterizer
	mask     *image.Alpha
	box      path.Data
}

// NewExecutor returns an Executor for r.
func NewExecutor(r *TextReplay, transform matrix.Matrix) *Executor {
	return &Executor{
		Replay:    r,
		Transform: transform,
		ras:       raster.NewRasterizer(rect.Rect{}),
	}
}

// ViewTransform returns the transformation which maps the top left corner
// of extent to the origin of the device, with the given map resolution
// and pixel ratio. Device y coordinates grow downwards.
func ViewTransform(extent rect.Rect, resolution, pixelRatio float64) matrix.Matrix {
	s := pixelRatio / resolution
	return matrix.Matrix{s, 0, 0, -s, -extent.LLx * s, extent.URy * s}
}

// Execute paints the rendering instructions onto dst.
func (e *Executor) Execute(dst *image.RGBA) {
	e.execute(dst, e.Replay.Instructions())
}

// ExecuteHitDetection paints the hit detection instructions onto dst.
func (e *Executor) ExecuteHitDetection(dst *image.RGBA) {
	e.execute(dst, e.Replay.HitDetectionInstructions())
}

func (e *Executor) execute(dst *image.RGBA, instructions []Instruction) {
	m := e.Transform
	coords := e.Replay.Coordinates()
	e.pixels = e.pixels[:0]
	for i := 0; i+1 < len(coords); i += 2 {
		x, y := coords[i], coords[i+1]
		e.pixels = append(e.pixels, m[0]*x+m[2]*y+m[4], m[1]*x+m[3]*y+m[5])
	}

	bounds := dst.Bounds()
	if e.mask == nil || e.mask.Bounds() != bounds {
		e.mask = image.NewAlpha(bounds)
	}
	e.bgFill, e.bgStroke = nil, nil

	for _, ins := range instructions {
		switch ins := ins.(type) {
		case *SetFillStyle:
			e.bgFill = ins.Fill
		case *SetStrokeStyle:
			e.bgStroke = ins.Stroke
		case *DrawImage:
			rotation := ins.Rotation
			if ins.RotateWithView {
				rotation += e.ViewRotation
			}
			for i := ins.Begin; i+1 < ins.End; i += 2 {
				x, y := e.pixels[i], e.pixels[i+1]
				if ins.SnapToPixel {
					x, y = math.Round(x), math.Round(y)
				}
				e.drawImage(dst, ins.Image, x, y, ins.AnchorX, ins.AnchorY, rotation, ins.Scale, ins)
			}
		case *DrawChars:
			e.drawChars(dst, ins)
		}
	}
}

// drawChars paints the characters of ins along their path.
func (e *Executor) drawChars(dst *image.RGBA, ins *DrawChars) {
	pathLength := geom.LineLength(e.pixels, ins.Begin, ins.End, 2)
	textLength := ins.Measure(ins.Text)
	if !ins.Overflow && textLength > pathLength {
		return
	}

	align := 0.5
	if ts := e.Replay.TextStates[ins.TextKey]; ts != nil {
		align = ts.align()
	}
	startM := (pathLength - textLength) * align
	parts, ok := geom.TextOnPath(e.pixels, ins.Begin, ins.End, 2, ins.Text, ins.Measure, startM, ins.MaxAngle)
	if !ok {
		return
	}

	if ins.StrokeKey != "" {
		for _, part := range parts {
			label := e.Replay.GetImage(part.Char, ins.TextKey, "", ins.StrokeKey)
			h := float64(label.Bounds().Dy())
			anchorX := part.Width/2 + ins.StrokeWidth
			anchorY := ins.Baseline*h + (0.5-ins.Baseline)*2*ins.StrokeWidth - ins.OffsetY
			e.drawImage(dst, label, part.X, part.Y, anchorX, anchorY, part.Angle, ins.Scale, nil)
		}
	}
	if ins.FillKey != "" {
		for _, part := range parts {
			label := e.Replay.GetImage(part.Char, ins.TextKey, ins.FillKey, "")
			h := float64(label.Bounds().Dy())
			anchorX := part.Width / 2
			anchorY := ins.Baseline*h - ins.OffsetY
			e.drawImage(dst, label, part.X, part.Y, anchorX, anchorY, part.Angle, ins.Scale, nil)
		}
	}
}

// drawImage paints img so that the bitmap point (anchorX, anchorY) lands
// on (x, y), scaled and rotated clockwise around that point. If bg is not
// nil, its background box is painted first.
func (e *Executor) drawImage(dst *image.RGBA, img *image.RGBA, x, y, anchorX, anchorY, rotation, scale float64, bg *DrawImage) {
	sin, cos := math.Sincos(rotation)
	aff := f64.Aff3{
		scale * cos, -scale * sin, x - scale*(cos*anchorX-sin*anchorY),
		scale * sin, scale * cos, y - scale*(sin*anchorX+cos*anchorY),
	}

	if bg != nil && (bg.BackgroundFill || bg.BackgroundStroke) {
		e.drawBackground(dst, img, aff, bg)
	}
	if img.Bounds().Empty() {
		return
	}
	draw.BiLinear.Transform(dst, aff, img, img.Bounds(), draw.Over, nil)
}

// drawBackground paints the box behind a label, enlarged by the padding.
func (e *Executor) drawBackground(dst *image.RGBA, img *image.RGBA, aff f64.Aff3, bg *DrawImage) {
	var pad [4]float64
	copy(pad[:], bg.Padding)
	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())

	e.box.Cmds = e.box.Cmds[:0]
	e.box.Coords = e.box.Coords[:0]
	e.box.MoveTo(vec.Vec2{X: -pad[3], Y: -pad[0]}).
		LineTo(vec.Vec2{X: w + pad[1], Y: -pad[0]}).
		LineTo(vec.Vec2{X: w + pad[1], Y: h + pad[2]}).
		LineTo(vec.Vec2{X: -pad[3], Y: h + pad[2]}).
		Close()

	clip := dst.Bounds()
	ctm := matrix.Matrix{aff[0], aff[3], aff[1], aff[4], aff[2], aff[5]}

	if bg.BackgroundFill && e.bgFill != nil {
		e.ras.Reset(rect.Rect{LLx: float64(clip.Min.X), LLy: float64(clip.Min.Y), URx: float64(clip.Max.X), URy: float64(clip.Max.Y)})
		e.ras.CTM = ctm
		canvas.PaintCoverage(dst, e.mask, e.bgFill.Color, func(emit raster.EmitFunc) {
			e.ras.Fill(&e.box, emit)
		})
	}
	if bg.BackgroundStroke && e.bgStroke != nil {
		e.ras.Reset(rect.Rect{LLx: float64(clip.Min.X), LLy: float64(clip.Min.Y), URx: float64(clip.Max.X), URy: float64(clip.Max.Y)})
		e.ras.CTM = ctm
		e.bgStroke.canvasStyle().Apply(e.ras)
		canvas.PaintCoverage(dst, e.mask, e.bgStroke.Color, func(emit raster.EmitFunc) {
			e.ras.Stroke(&e.box, emit)
		})
	}
}
