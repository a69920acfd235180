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
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/maplabel/geom"
)

// Builder is the bookkeeping shared by all replays: a coordinate buffer,
// the two instruction streams and the geometry brackets around the
// instructions of each geometry.
type Builder interface {
	// Coordinates returns the coordinate buffer, as (x, y) pairs in map
	// units.
	Coordinates() []float64

	// AppendFlatCoordinates adds the vertices flat[offset:end] to the
	// coordinate buffer, omitting runs of vertices outside the buffered
	// maximum extent. It returns the new length of the buffer.
	AppendFlatCoordinates(flat []float64, offset, end, stride int, closed, skipFirst bool) int

	// AppendCoordinates adds all vertices flat[offset:end] to the
	// coordinate buffer and returns its new length.
	AppendCoordinates(flat []float64, offset, end, stride int) int

	BeginGeometry(g geom.Geometry, feature any)
	EndGeometry(g geom.Geometry, feature any)

	// Push appends one instruction to each of the two streams.
	Push(render, hit Instruction)

	Instructions() []Instruction
	HitDetectionInstructions() []Instruction

	// BufferedMaxExtent returns the maximum extent grown by the render
	// buffer.
	BufferedMaxExtent() rect.Rect

	Resolution() float64
	PixelRatio() float64
}

// Base is the default Builder.
type Base struct {
	tolerance    float64
	maxExtent    rect.Rect
	resolution   float64
	pixelRatio   float64
	overlaps     bool
	renderbuffer float64

	coordinates     []float64
	instructions    []Instruction
	hitInstructions []Instruction

	begin, hitBegin *BeginGeometry
}

// NewBase returns an empty Builder. The renderbuffer is given in pixels.
func NewBase(tolerance float64, maxExtent rect.Rect, resolution, pixelRatio float64, overlaps bool, renderbuffer float64) *Base {
	return &Base{
		tolerance:    tolerance,
		maxExtent:    maxExtent,
		resolution:   resolution,
		pixelRatio:   pixelRatio,
		overlaps:     overlaps,
		renderbuffer: renderbuffer,
	}
}

// Coordinates implements the Builder interface.
func (b *Base) Coordinates() []float64 {
	return b.coordinates
}

// AppendFlatCoordinates implements the Builder interface.
//
// A vertex outside the extent is kept if its neighbour lies in a different
// region relative to the extent, so that the visible parts of lines stay
// intact.
func (b *Base) AppendFlatCoordinates(flat []float64, offset, end, stride int, closed, skipFirst bool) int {
	extent := b.BufferedMaxExtent()
	if skipFirst {
		offset += stride
	}
	if offset >= end {
		return len(b.coordinates)
	}

	lastX, lastY := flat[offset], flat[offset+1]
	lastRel := relationship(extent, lastX, lastY)
	b.coordinates = append(b.coordinates, lastX, lastY)
	skipped := false

	for i := offset + stride; i < end; i += stride {
		x, y := flat[i], flat[i+1]
		rel := relationship(extent, x, y)
		switch {
		case rel != lastRel:
			if skipped {
				b.coordinates = append(b.coordinates, lastX, lastY)
			}
			b.coordinates = append(b.coordinates, x, y)
			skipped = false
		case rel == inside:
			b.coordinates = append(b.coordinates, x, y)
			skipped = false
		default:
			skipped = true
		}
		lastX, lastY, lastRel = x, y, rel
	}

	if closed && skipped {
		b.coordinates = append(b.coordinates, lastX, lastY)
	}
	return len(b.coordinates)
}

// AppendCoordinates implements the Builder interface.
func (b *Base) AppendCoordinates(flat []float64, offset, end, stride int) int {
	for i := offset; i < end; i += stride {
		b.coordinates = append(b.coordinates, flat[i], flat[i+1])
	}
	return len(b.coordinates)
}

// BeginGeometry implements the Builder interface.
func (b *Base) BeginGeometry(g geom.Geometry, feature any) {
	b.begin = &BeginGeometry{Geometry: g, Feature: feature}
	b.instructions = append(b.instructions, b.begin)
	b.hitBegin = &BeginGeometry{Geometry: g, Feature: feature}
	b.hitInstructions = append(b.hitInstructions, b.hitBegin)
}

// EndGeometry implements the Builder interface.
func (b *Base) EndGeometry(g geom.Geometry, feature any) {
	if b.begin != nil {
		b.begin.End = len(b.instructions)
		b.hitBegin.End = len(b.hitInstructions)
		b.begin, b.hitBegin = nil, nil
	}
	b.instructions = append(b.instructions, &EndGeometry{Geometry: g, Feature: feature})
	b.hitInstructions = append(b.hitInstructions, &EndGeometry{Geometry: g, Feature: feature})
}

// Push implements the Builder interface.
func (b *Base) Push(render, hit Instruction) {
	b.instructions = append(b.instructions, render)
	b.hitInstructions = append(b.hitInstructions, hit)
}

// Instructions implements the Builder interface.
func (b *Base) Instructions() []Instruction {
	return b.instructions
}

// HitDetectionInstructions implements the Builder interface.
func (b *Base) HitDetectionInstructions() []Instruction {
	return b.hitInstructions
}

// BufferedMaxExtent implements the Builder interface.
func (b *Base) BufferedMaxExtent() rect.Rect {
	return geom.Buffer(b.maxExtent, b.renderbuffer*b.resolution)
}

// Resolution implements the Builder interface.
func (b *Base) Resolution() float64 {
	return b.resolution
}

// PixelRatio implements the Builder interface.
func (b *Base) PixelRatio() float64 {
	return b.pixelRatio
}

// Tolerance returns the simplification tolerance in map units.
func (b *Base) Tolerance() float64 {
	return b.tolerance
}

// Overlaps reports whether geometries may overlap.
func (b *Base) Overlaps() bool {
	return b.overlaps
}

// relationship classifies a point relative to an extent. Points inside
// the extent (including its boundary) are inside; all other points are
// described by the sides of the extent they are beyond.
func relationship(r rect.Rect, x, y float64) int {
	rel := inside
	if x < r.LLx {
		rel |= left
	} else if x > r.URx {
		rel |= right
	}
	if y < r.LLy {
		rel |= below
	} else if y > r.URy {
		rel |= above
	}
	return rel
}

const (
	inside = 0
	left   = 1 << iota
	right
	below
	above
)
