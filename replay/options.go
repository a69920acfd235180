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

// Package replay decides where text labels attach to map geometries and
// records the drawing as instruction streams.
//
// A [TextReplay] receives a text style with [TextReplay.SetTextStyle] and
// geometries with [TextReplay.DrawText]. For point placement it renders
// the label once into a bitmap, shared through a process-wide cache, and
// emits image instructions at one anchor per geometry part. For line
// placement it splits lines into nearly straight pieces and emits
// character instructions, so that the text can follow the line when the
// instructions are executed.
//
// Every drawing instruction is recorded twice: once for rendering, and
// once, at lower resolution, for hit detection. An [Executor] replays the
// rendering stream onto an image.
package replay

import (
	"image"
	"math"
	"sync"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/maplabel/cache"
	"seehuhn.de/go/maplabel/canvas"
)

// DefaultLabelCacheSize is the size of DefaultLabelCache.
const DefaultLabelCacheSize = 2048

// DefaultLabelCache holds label bitmaps shared by all replays which do not
// set Options.LabelCache. It is pruned whenever a replay is created.
var DefaultLabelCache = cache.New[*image.RGBA](DefaultLabelCacheSize, nil)

var defaultTypesetter = sync.OnceValue(func() canvas.Typesetter {
	return canvas.NewLibrary()
})

// Options configures a TextReplay. The zero value is usable.
type Options struct {
	// Tolerance is the simplification tolerance of the rendered geometries,
	// in map units.
	Tolerance float64

	// MaxExtent is the area of the map which is drawn. The zero rectangle
	// means unbounded.
	MaxExtent rect.Rect

	// Resolution is the size of a pixel in map units. Zero selects 1.
	Resolution float64

	// PixelRatio is the number of device pixels per pixel. Zero selects 1.
	PixelRatio float64

	// Overlaps indicates that geometries may overlap.
	Overlaps bool

	// Renderbuffer grows MaxExtent for line labels, in pixels.
	Renderbuffer float64

	// LabelCache holds the label bitmaps. Nil selects DefaultLabelCache.
	LabelCache *cache.Cache[*image.RGBA]

	// Typesetter measures and draws text. Nil selects a shared
	// [canvas.Library] with the built-in fonts.
	Typesetter canvas.Typesetter

	// Builder records the instructions. Nil selects a new [Base].
	Builder Builder
}

// withDefaults returns a copy of o with zero fields replaced by defaults.
func (o *Options) withDefaults() Options {
	res := Options{}
	if o != nil {
		res = *o
	}
	if res.MaxExtent == (rect.Rect{}) {
		res.MaxExtent = rect.Rect{
			LLx: math.Inf(-1), LLy: math.Inf(-1),
			URx: math.Inf(1), URy: math.Inf(1),
		}
	}
	if res.Resolution <= 0 {
		res.Resolution = 1
	}
	if res.PixelRatio <= 0 {
		res.PixelRatio = 1
	}
	if res.LabelCache == nil {
		res.LabelCache = DefaultLabelCache
	}
	if res.Typesetter == nil {
		res.Typesetter = defaultTypesetter()
	}
	if res.Builder == nil {
		res.Builder = NewBase(res.Tolerance, res.MaxExtent, res.Resolution, res.PixelRatio, res.Overlaps, res.Renderbuffer)
	}
	return res
}
