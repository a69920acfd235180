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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownFont is returned when a font descriptor does not resolve to
	// any registered font family.
	ErrUnknownFont = errors.New("unknown font")

	// ErrBadFont is returned for font descriptors which cannot be parsed.
	// It wraps ErrUnknownFont.
	ErrBadFont = fmt.Errorf("%w: malformed descriptor", ErrUnknownFont)
)

// Font is a parsed CSS font shorthand, like "italic bold 12px Go, sans-serif".
type Font struct {
	Italic   bool
	Weight   int     // 100 to 900, 400 is normal
	Size     float64 // in pixels
	Families []string
}

// Bold reports whether a bold face should be used.
func (f *Font) Bold() bool {
	return f.Weight >= 600
}

// ParseFont parses a CSS font shorthand. Style, variant and weight keywords
// may precede the size, which is followed by an optional line height and
// a comma-separated list of families.
func ParseFont(desc string) (*Font, error) {
	res := &Font{Weight: 400}

	rest := strings.TrimSpace(desc)
	for {
		token, tail, _ := strings.Cut(rest, " ")
		if token == "" {
			return nil, fmt.Errorf("%w: %q has no size", ErrBadFont, desc)
		}

		if size, ok := parseSize(token); ok {
			res.Size = size
			rest = strings.TrimSpace(tail)
			break
		}

		switch token {
		case "normal", "small-caps":
			// variant keywords are accepted but ignored
		case "italic", "oblique":
			res.Italic = true
		case "bold", "bolder":
			res.Weight = 700
		case "lighter":
			res.Weight = 300
		default:
			w, err := strconv.Atoi(token)
			if err != nil || w < 1 || w > 1000 {
				return nil, fmt.Errorf("%w: unexpected %q in %q", ErrBadFont, token, desc)
			}
			res.Weight = w
		}
		rest = strings.TrimSpace(tail)
	}

	for family := range strings.SplitSeq(rest, ",") {
		family = strings.Trim(strings.TrimSpace(family), `"'`)
		if family != "" {
			res.Families = append(res.Families, family)
		}
	}
	if len(res.Families) == 0 {
		return nil, fmt.Errorf("%w: %q has no font family", ErrBadFont, desc)
	}
	return res, nil
}

// parseSize parses a font size with an optional "/line-height" suffix.
// The line height is ignored.
func parseSize(token string) (float64, bool) {
	token, _, _ = strings.Cut(token, "/")
	if px, ok := absoluteSizes[token]; ok {
		return px, true
	}

	for _, u := range units {
		num, found := strings.CutSuffix(token, u.suffix)
		if !found {
			continue
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil || v <= 0 {
			return 0, false
		}
		return v * u.px, true
	}
	return 0, false
}

// units lists the supported size units, in pixels. "rem" must come
// before "em".
var units = []struct {
	suffix string
	px     float64
}{
	{"px", 1},
	{"pt", 4.0 / 3.0},
	{"rem", 16},
	{"em", 16},
	{"%", 0.16},
}

var absoluteSizes = map[string]float64{
	"xx-small": 9,
	"x-small":  10,
	"small":    13,
	"medium":   16,
	"large":    18,
	"x-large":  24,
	"xx-large": 32,
}
