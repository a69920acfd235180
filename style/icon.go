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

package style

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"seehuhn.de/go/maplabel/cache"
)

// ImageState is the loading state of an [IconImage].
type ImageState int

// These are the possible image states.
const (
	ImageIdle ImageState = iota
	ImageLoading
	ImageLoaded
	ImageError
)

// Loader fetches the image for a source URL or path.
type Loader func(src string) (image.Image, error)

// IconImage is an icon bitmap shared by all styles which use the same
// source, cross-origin setting and colour.
type IconImage struct {
	src         string
	crossOrigin string
	color       color.Color

	state ImageState
	img   image.Image

	listeners map[int]func(*IconImage)
	nextID    int
}

// NewIconImage returns an idle icon image. If c is not nil, the loaded
// image is tinted with c.
func NewIconImage(src, crossOrigin string, c color.Color) *IconImage {
	return &IconImage{src: src, crossOrigin: crossOrigin, color: c}
}

// Src returns the image source.
func (i *IconImage) Src() string {
	return i.src
}

// State returns the current loading state.
func (i *IconImage) State() ImageState {
	return i.state
}

// Image returns the loaded (and possibly tinted) image, or nil if the image
// is not loaded.
func (i *IconImage) Image() image.Image {
	return i.img
}

// Listen registers fn to be called whenever the state of the image changes.
// The returned function removes the listener again.
func (i *IconImage) Listen(fn func(*IconImage)) (unlisten func()) {
	if i.listeners == nil {
		i.listeners = make(map[int]func(*IconImage))
	}
	id := i.nextID
	i.nextID++
	i.listeners[id] = fn
	return func() { delete(i.listeners, id) }
}

// HasListener reports whether anybody waits for state changes of the image.
// Images with listeners are kept in the [IconImageCache].
func (i *IconImage) HasListener() bool {
	return len(i.listeners) > 0
}

func (i *IconImage) setState(s ImageState) {
	i.state = s
	for _, fn := range i.listeners {
		fn(i)
	}
}

// Load fetches the image using load, unless this was done before.
func (i *IconImage) Load(load Loader) error {
	if i.state != ImageIdle {
		return nil
	}
	i.setState(ImageLoading)
	img, err := load(i.src)
	if err != nil {
		i.setState(ImageError)
		return fmt.Errorf("loading icon %q: %w", i.src, err)
	}
	if i.color != nil {
		img = tint(img, i.color)
	}
	i.img = img
	i.setState(ImageLoaded)
	return nil
}

// tint multiplies the colour channels of every pixel by c.
func tint(src image.Image, c color.Color) image.Image {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)

	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := dst.Pix[(y-b.Min.Y)*dst.Stride:]
		for x := 0; x < b.Dx(); x++ {
			px := row[4*x : 4*x+4]
			px[0] = uint8(uint16(px[0]) * uint16(n.R) / 255)
			px[1] = uint8(uint16(px[1]) * uint16(n.G) / 255)
			px[2] = uint8(uint16(px[2]) * uint16(n.B) / 255)
		}
	}
	return dst
}

// DefaultIconCacheSize is the maximum size of a new [IconImageCache].
const DefaultIconCacheSize = 32

// IconImageCache holds icon images by source, cross-origin setting and
// colour. Images which still have listeners are never evicted.
type IconImageCache struct {
	c *cache.Cache[*IconImage]
}

// NewIconImageCache returns an empty cache with room for
// DefaultIconCacheSize images.
func NewIconImageCache() *IconImageCache {
	return &IconImageCache{
		c: cache.New(DefaultIconCacheSize, (*IconImage).HasListener),
	}
}

func iconKey(src, crossOrigin string, c color.Color) string {
	colorString := "null"
	if c != nil {
		colorString = ColorString(c)
	}
	return crossOrigin + ":" + src + ":" + colorString
}

// Get returns the cached image for the given parameters, or nil.
func (ic *IconImageCache) Get(src, crossOrigin string, c color.Color) *IconImage {
	img, _ := ic.c.Get(iconKey(src, crossOrigin, c))
	return img
}

// Set stores img in the cache.
func (ic *IconImageCache) Set(src, crossOrigin string, c color.Color, img *IconImage) {
	ic.c.Set(iconKey(src, crossOrigin, c), img)
}

// Icon returns the cached image for the given parameters, creating and
// caching a new idle image if needed.
func (ic *IconImageCache) Icon(src, crossOrigin string, c color.Color) *IconImage {
	if img := ic.Get(src, crossOrigin, c); img != nil {
		return img
	}
	img := NewIconImage(src, crossOrigin, c)
	ic.Set(src, crossOrigin, c, img)
	return img
}

// Len returns the number of cached images.
func (ic *IconImageCache) Len() int {
	return ic.c.Len()
}

// Clear removes all images.
func (ic *IconImageCache) Clear() {
	ic.c.Clear()
}

// Expire evicts some unused images if the cache is over its size limit.
func (ic *IconImageCache) Expire() {
	ic.c.Expire()
}

// SetSize changes the maximum number of cached images. Increase this if
// a map uses many different icons which are not cached elsewhere.
func (ic *IconImageCache) SetSize(n int) {
	ic.c.SetMaxSize(n)
}
