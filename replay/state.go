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
	"image/color"
	"slices"
	"strconv"
	"strings"

	"seehuhn.de/go/maplabel/canvas"
	"seehuhn.de/go/maplabel/style"
)

// FillState is a resolved fill.
type FillState struct {
	Color color.Color
}

// Key returns the fill key: the canonical color string.
func (f *FillState) Key() string {
	if f == nil {
		return ""
	}
	return style.ColorString(f.Color)
}

// StrokeState is a resolved stroke, with all defaults applied.
type StrokeState struct {
	Color          color.Color
	LineCap        style.LineCap
	LineJoin       style.LineJoin
	LineDash       []float64
	LineDashOffset float64
	LineWidth      float64
	MiterLimit     float64
}

// Key returns the stroke key, which covers every field affecting the
// rendered pixels.
func (s *StrokeState) Key() string {
	if s == nil {
		return ""
	}
	dash := make([]string, len(s.LineDash))
	for i, d := range s.LineDash {
		dash[i] = formatNumber(d)
	}
	return style.ColorString(s.Color) +
		string(s.LineCap) + formatNumber(s.LineDashOffset) +
		"|" + formatNumber(s.LineWidth) +
		string(s.LineJoin) + formatNumber(s.MiterLimit) +
		"[" + strings.Join(dash, ",") + "]"
}

// canvasStyle converts the stroke to the parameters of a drawing context.
func (s *StrokeState) canvasStyle() canvas.StrokeStyle {
	return canvas.StrokeStyle{
		Color:      s.Color,
		Width:      s.LineWidth,
		Cap:        s.LineCap,
		Join:       s.LineJoin,
		MiterLimit: s.MiterLimit,
		Dash:       s.LineDash,
		DashOffset: s.LineDashOffset,
	}
}

// TextState is a resolved text style.
type TextState struct {
	Font  string
	Scale float64

	// TextAlign is empty if no alignment was requested.
	TextAlign    style.Align
	TextBaseline style.Baseline

	Placement        style.Placement
	MaxAngle         float64
	Overflow         bool
	BackgroundFill   *FillState
	BackgroundStroke *StrokeState
	Padding          []float64
}

// Key returns the text key: font, scale and alignment. The font is quoted,
// so that no font name can absorb the other parts.
func (t *TextState) Key() string {
	align := string(t.TextAlign)
	if align == "" {
		align = "?"
	}
	return strconv.Quote(t.Font) + "|" + formatNumber(t.Scale) + "|" + align
}

// align returns the horizontal alignment fraction, using the default
// alignment if none was requested.
func (t *TextState) align() float64 {
	if t.TextAlign == "" {
		return style.DefaultTextAlign.Fraction()
	}
	return t.TextAlign.Fraction()
}

// StyleState is the complete style applied by a call to SetTextStyle.
// It is not modified after creation.
type StyleState struct {
	Text   string
	Fill   *FillState   // nil if the text is not filled
	Stroke *StrokeState // nil if the text is not stroked
	TextState

	OffsetX, OffsetY float64
	Rotation         float64
	RotateWithView   bool

	FillKey, StrokeKey, TextKey string

	DeclutterGroup DeclutterGroup
}

// NewStyleState resolves a text style. Unset fields are replaced by their
// defaults. The font is not checked.
func NewStyleState(t *style.Text, group DeclutterGroup) *StyleState {
	st := &StyleState{
		Text:           t.Text,
		Fill:           resolveFill(t.Fill),
		Stroke:         resolveStroke(t.Stroke),
		OffsetX:        t.OffsetX,
		OffsetY:        t.OffsetY,
		Rotation:       t.Rotation,
		RotateWithView: t.RotateWithView,
		DeclutterGroup: group,
		TextState: TextState{
			Font:             t.Font,
			Scale:            t.Scale,
			TextAlign:        t.TextAlign,
			TextBaseline:     t.TextBaseline,
			Placement:        t.Placement,
			MaxAngle:         t.MaxAngle,
			Overflow:         t.Overflow,
			BackgroundFill:   resolveFill(t.BackgroundFill),
			BackgroundStroke: resolveStroke(t.BackgroundStroke),
			Padding:          slices.Clone(t.Padding),
		},
	}
	if st.Font == "" {
		st.Font = style.DefaultFont
	}
	if st.Scale == 0 {
		st.Scale = 1
	}
	if st.TextBaseline == "" {
		st.TextBaseline = style.DefaultTextBaseline
	}
	if st.MaxAngle == 0 {
		st.MaxAngle = style.DefaultMaxAngle
	}

	st.FillKey = st.Fill.Key()
	st.StrokeKey = st.Stroke.Key()
	st.TextKey = st.TextState.Key()
	return st
}

func resolveFill(f *style.Fill) *FillState {
	if f == nil {
		return nil
	}
	res := &FillState{Color: f.Color}
	if res.Color == nil {
		res.Color = style.DefaultFillColor
	}
	return res
}

func resolveStroke(s *style.Stroke) *StrokeState {
	if s == nil {
		return nil
	}
	res := &StrokeState{
		Color:          s.Color,
		LineCap:        s.LineCap,
		LineJoin:       s.LineJoin,
		LineDash:       slices.Clone(s.LineDash),
		LineDashOffset: s.LineDashOffset,
		LineWidth:      s.Width,
		MiterLimit:     s.MiterLimit,
	}
	if res.Color == nil {
		res.Color = style.DefaultStrokeColor
	}
	if res.LineCap == "" {
		res.LineCap = style.DefaultLineCap
	}
	if res.LineJoin == "" {
		res.LineJoin = style.DefaultLineJoin
	}
	if res.LineWidth == 0 {
		res.LineWidth = style.DefaultLineWidth
	}
	if res.MiterLimit == 0 {
		res.MiterLimit = style.DefaultMiterLimit
	}
	return res
}

// CacheKey returns the label cache key for the given text, style keys and
// pixel ratio. Each part is quoted, so that different combinations of
// parts never give the same key.
func CacheKey(strokeKey, textKey, text, fillKey string, pixelRatio float64) string {
	var b strings.Builder
	for _, part := range []string{strokeKey, textKey, text, fillKey} {
		b.WriteString(strconv.Quote(part))
	}
	b.WriteString(formatNumber(pixelRatio))
	return b.String()
}

func formatNumber(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
