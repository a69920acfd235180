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

	"seehuhn.de/go/maplabel/geom"
)

// DeclutterGroup is an opaque value identifying labels which are
// decluttered together. It is passed through unchanged.
type DeclutterGroup any

// Op identifies the kind of an instruction.
type Op int

// These are the instruction kinds.
const (
	OpBeginGeometry Op = iota
	OpEndGeometry
	OpSetFillStyle
	OpSetStrokeStyle
	OpDrawImage
	OpDrawChars
)

func (op Op) String() string {
	switch op {
	case OpBeginGeometry:
		return "BeginGeometry"
	case OpEndGeometry:
		return "EndGeometry"
	case OpSetFillStyle:
		return "SetFillStyle"
	case OpSetStrokeStyle:
		return "SetStrokeStyle"
	case OpDrawImage:
		return "DrawImage"
	case OpDrawChars:
		return "DrawChars"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Instruction is an element of an instruction stream.
type Instruction interface {
	Op() Op
}

// BeginGeometry starts the instructions for one geometry.
// End is the index of the matching EndGeometry instruction.
type BeginGeometry struct {
	Geometry geom.Geometry
	Feature  any
	End      int
}

// EndGeometry ends the instructions for one geometry.
type EndGeometry struct {
	Geometry geom.Geometry
	Feature  any
}

// SetFillStyle selects the fill for label backgrounds.
type SetFillStyle struct {
	Fill *FillState
}

// SetStrokeStyle selects the stroke for label backgrounds.
type SetStrokeStyle struct {
	Stroke *StrokeState
}

// DrawImage draws a label bitmap at every anchor in
// coordinates[Begin:End].
type DrawImage struct {
	Begin, End int

	Image *image.RGBA

	// AnchorX and AnchorY give the position in the bitmap, in device
	// pixels, which is placed on the anchor.
	AnchorX, AnchorY float64

	DeclutterGroup DeclutterGroup

	Height, Width    float64 // of the bitmap, in device pixels
	Opacity          float64
	OriginX, OriginY float64
	RotateWithView   bool
	Rotation         float64

	// Scale maps bitmap pixels to output pixels.
	Scale float64

	SnapToPixel bool

	// Padding of the background box: top, right, bottom, left.
	Padding []float64

	BackgroundFill   bool
	BackgroundStroke bool
}

// DrawChars draws text along the path in coordinates[Begin:End], one
// character at a time.
type DrawChars struct {
	Begin, End int

	// Baseline is the vertical alignment fraction of the text.
	Baseline float64

	DeclutterGroup DeclutterGroup
	Overflow       bool
	MaxAngle       float64

	FillKey   string
	StrokeKey string
	TextKey   string
	Text      string

	// OffsetY shifts the text perpendicular to the path, in device pixels.
	OffsetY float64

	// StrokeWidth is half the scaled stroke width, in output pixels.
	StrokeWidth float64

	Scale float64

	// Widths holds the unscaled text widths. Font, TextScale and
	// PixelRatio convert them to output pixels.
	Widths     *WidthTable
	Font       string
	TextScale  float64
	PixelRatio float64
}

// Measure returns the width of text in output pixels.
func (d *DrawChars) Measure(text string) float64 {
	return d.Widths.Width(d.Font, text) * d.TextScale * d.PixelRatio
}

func (*BeginGeometry) Op() Op { return OpBeginGeometry }
func (*EndGeometry) Op() Op { return OpEndGeometry }
func (*SetFillStyle) Op() Op { return OpSetFillStyle }
func (*SetStrokeStyle) Op() Op { return OpSetStrokeStyle }
func (*DrawImage) Op() Op { return OpDrawImage }
func (*DrawChars) Op() Op { return OpDrawChars }
