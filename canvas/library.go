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

package canvas

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Typesetter provides the text primitives used to build label bitmaps.
type Typesetter interface {
	// CheckFont returns an error wrapping ErrUnknownFont if the font
	// descriptor cannot be used.
	CheckFont(desc string) error

	// MeasureTextWidth returns the advance width of a single line of text,
	// in pixels.
	MeasureTextWidth(desc, text string) float64

	// MeasureTextHeight returns the line height of the font, in pixels.
	MeasureTextHeight(desc string) float64

	// NewContext allocates an offscreen bitmap with a drawing context.
	NewContext(width, height int) Context
}

// variant selects one of the four faces of a font family.
type variant int

const (
	regular variant = iota
	bold
	italic
	boldItalic
)

// faceKey identifies a font face by font and pixel size.
type faceKey struct {
	font *sfnt.Font
	size float64
}

// Face is a font at a given pixel size.
type Face struct {
	Font *sfnt.Font
	Size float64

	measure font.Face // unhinted, for text measurement
	buf     sfnt.Buffer
}

// Library is a Typesetter which renders with the fonts registered in it.
// The Go fonts are always available under the family names "Go" and
// "Go Mono", and the generic families "sans-serif", "serif", "system-ui"
// and "monospace" map to them.
//
// A Library is not safe for concurrent use.
type Library struct {
	families map[string]*[4]*sfnt.Font // lower-case family name
	faces    map[faceKey]*Face
	resolved map[string]*Face // font descriptor -> face
}

// NewLibrary returns a Library with the Go fonts registered.
func NewLibrary() *Library {
	l := &Library{
		families: make(map[string]*[4]*sfnt.Font),
		faces:    make(map[faceKey]*Face),
		resolved: make(map[string]*Face),
	}

	builtin := []struct {
		families []string
		variants [4][]byte
	}{
		{
			families: []string{"go", "sans-serif", "serif", "system-ui"},
			variants: [4][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF},
		},
		{
			families: []string{"go mono", "monospace"},
			variants: [4][]byte{gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF},
		},
	}
	for _, b := range builtin {
		for v, data := range b.variants {
			f, err := sfnt.Parse(data)
			if err != nil {
				panic(err)
			}
			for _, name := range b.families {
				l.addFont(name, variant(v), f)
			}
		}
	}
	return l
}

// AddFont registers a TrueType or OpenType font under the given family
// name. Fonts registered later replace earlier ones for the same family
// and style.
func (l *Library) AddFont(family string, isBold, isItalic bool, data []byte) error {
	f, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("font family %q: %w", family, err)
	}

	v := regular
	if isBold {
		v |= bold
	}
	if isItalic {
		v |= italic
	}
	l.addFont(family, v, f)
	clear(l.resolved)
	return nil
}

func (l *Library) addFont(family string, v variant, f *sfnt.Font) {
	key := strings.ToLower(family)
	fam := l.families[key]
	if fam == nil {
		fam = &[4]*sfnt.Font{}
		l.families[key] = fam
	}
	fam[v] = f
}

// Face resolves a font descriptor to a face. The first family in the
// descriptor which is registered is used. Missing bold or italic styles
// fall back to the closest available style.
func (l *Library) Face(desc string) (*Face, error) {
	if face, ok := l.resolved[desc]; ok {
		return face, nil
	}

	spec, err := ParseFont(desc)
	if err != nil {
		return nil, err
	}

	v := regular
	if spec.Bold() {
		v |= bold
	}
	if spec.Italic {
		v |= italic
	}

	for _, family := range spec.Families {
		fam := l.families[strings.ToLower(family)]
		if fam == nil {
			continue
		}
		f := fam[v]
		for _, fallback := range []variant{v &^ italic, v &^ bold, regular} {
			if f != nil {
				break
			}
			f = fam[fallback]
		}
		if f == nil {
			continue
		}

		face, err := l.face(f, spec.Size)
		if err != nil {
			return nil, err
		}
		l.resolved[desc] = face
		return face, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFont, desc)
}

func (l *Library) face(f *sfnt.Font, size float64) (*Face, error) {
	key := faceKey{font: f, size: size}
	if face, ok := l.faces[key]; ok {
		return face, nil
	}

	// At 72 DPI, one point is one pixel.
	measure, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}

	face := &Face{Font: f, Size: size, measure: measure}
	l.faces[key] = face
	return face, nil
}

// CheckFont implements the Typesetter interface.
func (l *Library) CheckFont(desc string) error {
	_, err := l.Face(desc)
	return err
}

// MeasureTextWidth implements the Typesetter interface.
// Unknown fonts have width 0.
func (l *Library) MeasureTextWidth(desc, text string) float64 {
	face, err := l.Face(desc)
	if err != nil {
		return 0
	}
	return fromFixed(font.MeasureString(face.measure, text))
}

// MeasureTextHeight implements the Typesetter interface.
// Unknown fonts have height 0.
func (l *Library) MeasureTextHeight(desc string) float64 {
	face, err := l.Face(desc)
	if err != nil {
		return 0
	}
	return fromFixed(face.measure.Metrics().Height)
}

// NewContext implements the Typesetter interface.
func (l *Library) NewContext(width, height int) Context {
	return NewCanvas(l, width, height)
}

// ppem returns the face size in the units used by the sfnt package.
func (f *Face) ppem() fixed.Int26_6 {
	return toFixed(f.Size)
}

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

func toFixed(x float64) fixed.Int26_6 {
	return fixed.Int26_6(x*64 + 0.5)
}
