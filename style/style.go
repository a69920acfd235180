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

// Package style describes how features are painted: fill and stroke
// parameters, text labels and their placement, and icon images.
//
// Style values are plain data. Unset fields select the defaults listed
// below; the renderer resolves them when a style is applied.
package style

import (
	"fmt"
	"image/color"
	"math"
)

// Defaults used for unset style fields.
const (
	DefaultFont         = "10px sans-serif"
	DefaultLineCap      = LineCapRound
	DefaultLineJoin     = LineJoinRound
	DefaultLineWidth    = 1.0
	DefaultMiterLimit   = 10.0
	DefaultTextAlign    = AlignCenter
	DefaultTextBaseline = BaselineMiddle
	DefaultMaxAngle     = math.Pi / 4
)

// Default colours for fills and strokes without a colour.
var (
	DefaultFillColor   color.Color = color.Black
	DefaultStrokeColor color.Color = color.Black
)

// Fill describes how the interior of a shape or glyph is painted.
type Fill struct {
	// Color is the fill colour. Nil selects DefaultFillColor.
	Color color.Color
}

// LineCap is the shape at the end of open stroked lines.
type LineCap string

// These are the supported line caps.
const (
	LineCapButt   LineCap = "butt"
	LineCapRound  LineCap = "round"
	LineCapSquare LineCap = "square"
)

// LineJoin is the shape at corners of stroked lines.
type LineJoin string

// These are the supported line joins.
const (
	LineJoinBevel LineJoin = "bevel"
	LineJoinRound LineJoin = "round"
	LineJoinMiter LineJoin = "miter"
)

// Stroke describes how outlines are painted.
type Stroke struct {
	Color          color.Color // nil selects DefaultStrokeColor
	LineCap        LineCap     // empty selects DefaultLineCap
	LineJoin       LineJoin    // empty selects DefaultLineJoin
	LineDash       []float64   // nil means solid
	LineDashOffset float64
	Width          float64 // zero selects DefaultLineWidth
	MiterLimit     float64 // zero selects DefaultMiterLimit
}

// Placement selects how a label attaches to its geometry.
type Placement int

// These are the supported placements.
const (
	// PlacementPoint anchors the label at one point per geometry.
	PlacementPoint Placement = iota

	// PlacementLine draws the label character by character along the
	// geometry's lines or outer rings.
	PlacementLine
)

func (p Placement) String() string {
	switch p {
	case PlacementPoint:
		return "point"
	case PlacementLine:
		return "line"
	default:
		return fmt.Sprintf("Placement(%d)", int(p))
	}
}

// Align is the horizontal alignment of a label relative to its anchor.
type Align string

// These are the supported horizontal alignments.
const (
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignCenter Align = "center"
	AlignStart  Align = "start"
	AlignEnd    Align = "end"
)

// Fraction returns the anchor position as a fraction of the label width,
// from 0 (left edge) to 1 (right edge). Unknown values map to the centre.
func (a Align) Fraction() float64 {
	switch a {
	case AlignLeft, AlignStart:
		return 0
	case AlignRight, AlignEnd:
		return 1
	default:
		return 0.5
	}
}

// Baseline is the vertical alignment of a label relative to its anchor.
type Baseline string

// These are the supported vertical alignments.
const (
	BaselineTop         Baseline = "top"
	BaselineHanging     Baseline = "hanging"
	BaselineMiddle      Baseline = "middle"
	BaselineAlphabetic  Baseline = "alphabetic"
	BaselineIdeographic Baseline = "ideographic"
	BaselineBottom      Baseline = "bottom"
)

// Fraction returns the anchor position as a fraction of the label height,
// from 0 (top) to 1 (bottom). Unknown values map to the middle.
func (b Baseline) Fraction() float64 {
	switch b {
	case BaselineTop:
		return 0
	case BaselineHanging:
		return 0.2
	case BaselineAlphabetic, BaselineIdeographic:
		return 0.8
	case BaselineBottom:
		return 1
	default:
		return 0.5
	}
}

// Text describes a text label.
type Text struct {
	Text string

	// Font is a CSS font shorthand, for example "bold 12px sans-serif".
	// Empty selects DefaultFont.
	Font string

	// Scale enlarges the rendered label. Zero selects 1.
	Scale float64

	Rotation       float64 // in radians, clockwise
	RotateWithView bool
	OffsetX        float64 // in pixels, positive to the right
	OffsetY        float64 // in pixels, positive downwards

	// TextAlign is the horizontal alignment. If it is empty, point labels
	// are centred and line labels are drawn on the straightest part of the
	// line.
	TextAlign Align

	TextBaseline Baseline // empty selects DefaultTextBaseline

	Placement Placement

	// MaxAngle limits the change of direction along a line label, in
	// radians. Zero selects DefaultMaxAngle; a line which must be straight
	// needs a small positive value instead.
	MaxAngle float64

	// Overflow allows labels wider than the polygon they belong to.
	Overflow bool

	Fill   *Fill
	Stroke *Stroke

	// BackgroundFill and BackgroundStroke paint a box behind point labels.
	BackgroundFill   *Fill
	BackgroundStroke *Stroke

	// Padding around the text for the background box, in pixels, in the
	// order top, right, bottom, left. Nil means no padding.
	Padding []float64
}

// ColorString returns a canonical string for c. Colours which are equal
// after conversion to non-premultiplied 8-bit RGBA give the same string.
func ColorString(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", n.R, n.G, n.B, float64(n.A)/255)
}
