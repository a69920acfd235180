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

import "seehuhn.de/go/maplabel/canvas"

type widthKey struct {
	font, text string
}

// WidthTable memoizes text widths by font and string.
type WidthTable struct {
	ts     canvas.Typesetter
	widths map[widthKey]float64
}

// NewWidthTable returns an empty table which measures with ts.
func NewWidthTable(ts canvas.Typesetter) *WidthTable {
	return &WidthTable{
		ts:     ts,
		widths: make(map[widthKey]float64),
	}
}

// Width returns the width of text in the given font, in unscaled pixels.
func (w *WidthTable) Width(font, text string) float64 {
	key := widthKey{font: font, text: text}
	width, ok := w.widths[key]
	if !ok {
		width = w.ts.MeasureTextWidth(font, text)
		w.widths[key] = width
	}
	return width
}

// Len returns the number of memoized widths.
func (w *WidthTable) Len() int {
	return len(w.widths)
}
