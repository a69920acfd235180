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
	"math"
	"strings"

	"seehuhn.de/go/maplabel/cache"
	"seehuhn.de/go/maplabel/canvas"
	"seehuhn.de/go/maplabel/geom"
	"seehuhn.de/go/maplabel/style"
)

// TextReplay records the instructions for text labels.
//
// A TextReplay is not safe for concurrent use. Replays sharing a label
// cache must not be used concurrently either.
type TextReplay struct {
	Builder

	labels *cache.Cache[*image.RGBA]
	ts     canvas.Typesetter
	widths *WidthTable

	// state is the style of the last successful SetTextStyle call,
	// or nil if no text is drawn.
	state *StyleState

	// FillStates, StrokeStates and TextStates map the style keys seen so
	// far to their states.
	FillStates   map[string]*FillState
	StrokeStates map[string]*StrokeState
	TextStates   map[string]*TextState
}

// NewTextReplay returns an empty TextReplay. The label cache is pruned.
func NewTextReplay(opts *Options) *TextReplay {
	o := opts.withDefaults()
	o.LabelCache.Prune()
	return &TextReplay{
		Builder:      o.Builder,
		labels:       o.LabelCache,
		ts:           o.Typesetter,
		widths:       NewWidthTable(o.Typesetter),
		FillStates:   make(map[string]*FillState),
		StrokeStates: make(map[string]*StrokeState),
		TextStates:   make(map[string]*TextState),
	}
}

// Style returns the current style, or nil if no text is drawn.
func (r *TextReplay) Style() *StyleState {
	return r.state
}

// Widths returns the width table used by the character instructions.
func (r *TextReplay) Widths() *WidthTable {
	return r.widths
}

// SetTextStyle sets the style for the following DrawText calls.
// A nil style disables text drawing. If the font cannot be used, the
// current style is kept and an error wrapping [canvas.ErrUnknownFont] is
// returned.
func (r *TextReplay) SetTextStyle(t *style.Text, group DeclutterGroup) error {
	if t == nil {
		r.state = nil
		return nil
	}

	st := NewStyleState(t, group)
	if err := r.ts.CheckFont(st.Font); err != nil {
		return fmt.Errorf("text style: %w", err)
	}

	if st.Fill != nil {
		if _, ok := r.FillStates[st.FillKey]; !ok {
			r.FillStates[st.FillKey] = st.Fill
		}
	}
	if st.Stroke != nil {
		if _, ok := r.StrokeStates[st.StrokeKey]; !ok {
			r.StrokeStates[st.StrokeKey] = st.Stroke
		}
	}
	if _, ok := r.TextStates[st.TextKey]; !ok {
		ts := st.TextState
		r.TextStates[st.TextKey] = &ts
	}

	r.state = st
	return nil
}

// DrawText records the instructions for labelling g with the current
// style. Nothing is recorded if there is no text, if the text is neither
// filled nor stroked, or if no anchor qualifies.
func (r *TextReplay) DrawText(g geom.Geometry, feature any) {
	st := r.state
	if st == nil || st.Text == "" || (st.Fill == nil && st.Stroke == nil) {
		return
	}

	if st.Placement == style.PlacementLine {
		r.drawAlongLine(st, g, feature)
	} else {
		r.drawAtPoint(st, g, feature)
	}
}

// drawAlongLine records character instructions for the lines of g, or
// for the outer rings of polygons.
func (r *TextReplay) drawAlongLine(st *StyleState, g geom.Geometry, feature any) {
	if !geom.Intersects(r.BufferedMaxExtent(), g.Extent()) {
		return
	}

	flat := g.FlatCoordinates()
	stride := g.Stride()
	var ends []int
	switch g := g.(type) {
	case *geom.LineString:
		ends = []int{len(flat)}
	case *geom.MultiLineString:
		ends = g.Ends()
	case *geom.Polygon:
		ends = g.Ends()[:min(1, len(g.Ends()))]
	case *geom.MultiPolygon:
		for _, polyEnds := range g.Endss() {
			if len(polyEnds) > 0 {
				ends = append(ends, polyEnds[0])
			}
		}
	default:
		return
	}

	r.BeginGeometry(g, feature)
	begin := len(r.Coordinates())
	offset := 0
	for _, chainEnd := range ends {
		var chunks []int
		if st.TextAlign == "" {
			chunks = geom.StraightChunks(st.MaxAngle, flat, offset, chainEnd, stride)
		} else {
			chunks = []int{chainEnd}
		}
		for _, chunkEnd := range chunks {
			end := r.AppendCoordinates(flat, offset, chunkEnd, stride)
			r.drawChars(st, begin, end)
			begin = end
			offset = chunkEnd
		}
		offset = r.nextChainStart(g, chainEnd)
	}
	r.EndGeometry(g, feature)
}

// nextChainStart returns where the chain following the one ending at end
// starts. For polygons, holes are skipped.
func (r *TextReplay) nextChainStart(g geom.Geometry, end int) int {
	mp, ok := g.(*geom.MultiPolygon)
	if !ok {
		return end
	}
	for _, polyEnds := range mp.Endss() {
		if len(polyEnds) > 0 && polyEnds[0] == end {
			return polyEnds[len(polyEnds)-1]
		}
	}
	return end
}

// drawAtPoint records image instructions at one anchor per part of g.
func (r *TextReplay) drawAtPoint(st *StyleState, g geom.Geometry, feature any) {
	label := r.GetImage(st.Text, st.TextKey, st.FillKey, st.StrokeKey)
	pixelRatio := r.PixelRatio()
	resolution := r.Resolution()
	width := float64(label.Bounds().Dx()) / pixelRatio

	var flat []float64
	stride := 2
	switch g := g.(type) {
	case *geom.Point, *geom.MultiPoint:
		flat = g.FlatCoordinates()
		stride = g.Stride()
	case *geom.LineString:
		flat = g.FlatMidpoint()
	case *geom.Circle:
		flat = g.Center()
	case *geom.MultiLineString:
		flat = g.FlatMidpoints()
	case *geom.Polygon:
		flat = g.FlatInteriorPoint()
		if !st.Overflow && flat[2]/resolution < width {
			return
		}
		stride = 3
	case *geom.MultiPolygon:
		points := g.FlatInteriorPoints()
		for i := 0; i+2 < len(points); i += 3 {
			if st.Overflow || points[i+2]/resolution >= width {
				flat = append(flat, points[i], points[i+1])
			}
		}
		if len(flat) == 0 {
			return
		}
	default:
		return
	}
	flat = dropUndefined(flat, stride)
	if len(flat) == 0 {
		return
	}

	begin := len(r.Coordinates())
	end := r.AppendFlatCoordinates(flat, 0, len(flat), stride, false, false)
	r.BeginGeometry(g, feature)
	if bg := st.BackgroundFill; bg != nil {
		r.Push(&SetFillStyle{Fill: bg}, &SetFillStyle{Fill: bg})
	}
	if bg := st.BackgroundStroke; bg != nil {
		r.Push(&SetStrokeStyle{Stroke: bg}, &SetStrokeStyle{Stroke: bg})
	}
	r.drawTextImage(st, label, begin, end)
	r.EndGeometry(g, feature)
}

// dropUndefined returns the anchors of flat which have finite coordinates.
// Empty lines and polygons have NaN anchors.
func dropUndefined(flat []float64, stride int) []float64 {
	var res []float64
	for i := 0; i+1 < len(flat); i += stride {
		if math.IsNaN(flat[i]) || math.IsNaN(flat[i+1]) {
			continue
		}
		res = append(res, flat[i:min(i+stride, len(flat))]...)
	}
	return res
}

// drawTextImage records the image instructions for a label bitmap.
func (r *TextReplay) drawTextImage(st *StyleState, label *image.RGBA, begin, end int) {
	pixelRatio := r.PixelRatio()
	align := st.align()
	baseline := st.TextBaseline.Fraction()
	strokeWidth := 0.0
	if st.Stroke != nil {
		strokeWidth = st.Stroke.LineWidth
	}

	w := float64(label.Bounds().Dx())
	h := float64(label.Bounds().Dy())
	anchorX := align*w/pixelRatio + 2*(0.5-align)*strokeWidth
	anchorY := baseline*h/pixelRatio + 2*(0.5-baseline)*strokeWidth

	var padding []float64
	if st.Padding != nil {
		padding = make([]float64, len(st.Padding))
		for i, p := range st.Padding {
			padding[i] = p * pixelRatio
		}
	}

	render := &DrawImage{
		Begin:            begin,
		End:              end,
		Image:            label,
		AnchorX:          (anchorX - st.OffsetX) * pixelRatio,
		AnchorY:          (anchorY - st.OffsetY) * pixelRatio,
		DeclutterGroup:   st.DeclutterGroup,
		Height:           h,
		Width:            w,
		Opacity:          1,
		RotateWithView:   st.RotateWithView,
		Rotation:         st.Rotation,
		Scale:            1,
		SnapToPixel:      true,
		Padding:          padding,
		BackgroundFill:   st.BackgroundFill != nil,
		BackgroundStroke: st.BackgroundStroke != nil,
	}
	hit := *render
	hit.Scale = 1 / pixelRatio
	hit.Padding = st.Padding
	r.Push(render, &hit)
}

// drawChars records the character instructions for the path in
// coordinates[begin:end].
func (r *TextReplay) drawChars(st *StyleState, begin, end int) {
	pixelRatio := r.PixelRatio()
	strokeWidth := 0.0
	if st.Stroke != nil {
		strokeWidth = st.Stroke.LineWidth * st.Scale / 2
	}

	render := &DrawChars{
		Begin:          begin,
		End:            end,
		Baseline:       st.TextBaseline.Fraction(),
		DeclutterGroup: st.DeclutterGroup,
		Overflow:       st.Overflow,
		MaxAngle:       st.MaxAngle,
		FillKey:        st.FillKey,
		StrokeKey:      st.StrokeKey,
		TextKey:        st.TextKey,
		Text:           st.Text,
		OffsetY:        st.OffsetY * pixelRatio,
		StrokeWidth:    strokeWidth * pixelRatio,
		Scale:          1,
		Widths:         r.widths,
		Font:           st.Font,
		TextScale:      st.Scale,
		PixelRatio:     pixelRatio,
	}
	hit := *render
	hit.StrokeWidth = strokeWidth
	hit.Scale = 1 / pixelRatio
	hit.PixelRatio = 1
	r.Push(render, &hit)
}

// GetImage returns the bitmap of text rendered with the styles registered
// under the given keys. Empty fill or stroke keys disable filling or
// stroking. Keys which are not registered fall back to the current style.
//
// Bitmaps are cached: calls with the same arguments and pixel ratio return
// the same image, which must not be modified.
func (r *TextReplay) GetImage(text, textKey, fillKey, strokeKey string) *image.RGBA {
	pixelRatio := r.PixelRatio()
	key := CacheKey(strokeKey, textKey, text, fillKey, pixelRatio)
	if label, ok := r.labels.Get(key); ok {
		return label
	}

	var cur *StyleState
	if r.state != nil {
		cur = r.state
	} else {
		cur = &StyleState{}
	}
	var stroke *StrokeState
	if strokeKey != "" {
		stroke = r.StrokeStates[strokeKey]
		if stroke == nil {
			stroke = cur.Stroke
		}
	}
	var fill *FillState
	if fillKey != "" {
		fill = r.FillStates[fillKey]
		if fill == nil {
			fill = cur.Fill
		}
	}
	textState := r.TextStates[textKey]
	if textState == nil {
		textState = &cur.TextState
	}

	scale := textState.Scale * pixelRatio
	align := textState.align()
	strokeWidth := 0.0
	if stroke != nil {
		strokeWidth = stroke.LineWidth
	}

	lines := strings.Split(text, "\n")
	widths := make([]float64, len(lines))
	width := 0.0
	for i, line := range lines {
		widths[i] = r.ts.MeasureTextWidth(textState.Font, line)
		width = max(width, widths[i])
	}
	lineHeight := r.ts.MeasureTextHeight(textState.Font)
	height := lineHeight * float64(len(lines))

	ctx := r.ts.NewContext(
		int(math.Ceil((width+strokeWidth)*scale)),
		int(math.Ceil((height+strokeWidth)*scale)))
	label := ctx.Image()
	if scale != 1 {
		ctx.Scale(scale, scale)
	}
	ctx.SetFont(textState.Font)

	leftRight := 0.5 - align
	x := align*float64(label.Bounds().Dx())/scale + leftRight*strokeWidth
	lineY := func(i int) float64 {
		return 0.5*(strokeWidth+lineHeight) + float64(i)*lineHeight
	}
	if stroke != nil {
		ctx.SetStrokeStyle(stroke.canvasStyle())
		for i, line := range lines {
			ctx.StrokeText(line, x+leftRight*widths[i], lineY(i))
		}
	}
	if fill != nil {
		ctx.SetFillColor(fill.Color)
		for i, line := range lines {
			ctx.FillText(line, x+leftRight*widths[i], lineY(i))
		}
	}

	r.labels.Set(key, label)
	return label
}
