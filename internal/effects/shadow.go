/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package effects implements compositing effects applied to a canvas before
// or after text and pattern placement: drop shadows and gradient fills. All
// operations mutate the canvas in place and hold no state between calls.
package effects

import (
	"image"
	"image/color"
	"math"

	"poddesign/internal/canvas"
)

// ShadowColor is the translucent silhouette color used for drop shadows.
var ShadowColor = color.NRGBA{A: 160}

// Shadow offset and blur scale with the font size of the shadowed content.
const (
	shadowOffsetRatio = 0.02
	shadowBlurRatio   = 0.015
)

// ShadowParams derives the pixel offset and blur radius for a given font
// size. Both have small floors so shadows stay visible at tiny sizes.
func ShadowParams(fontSize float64) (offset image.Point, blur int) {
	off := int(math.Round(fontSize * shadowOffsetRatio))
	if off < 2 {
		off = 2
	}
	blur = int(math.Round(fontSize * shadowBlurRatio))
	if blur < 2 {
		blur = 2
	}
	return image.Point{X: off, Y: off}, blur
}

// DropShadow paints a silhouette through the paint callback into a scratch
// layer, blurs it, and composites it onto dst at the given offset. The
// callback must draw the content in the desired shadow color at its normal
// position; the offset is applied during compositing. Callers draw the
// primary content afterwards so it sits above its shadow.
func DropShadow(dst *canvas.Canvas, paint func(layer *canvas.Canvas), offset image.Point, blur int) {
	w, h := dst.Size()
	layer := canvas.New(w, h, canvas.ModeTransparent)
	paint(layer)
	Blur(layer.Image(), blur)
	dst.Composite(layer, offset)
}

// Blur approximates a Gaussian blur with three box-blur passes. It is a
// deterministic function of its input. A non-positive radius is a no-op.
func Blur(img *image.NRGBA, radius int) {
	if radius <= 0 {
		return
	}
	for i := 0; i < 3; i++ {
		boxBlur(img, radius)
	}
}

// boxBlur runs one horizontal and one vertical box pass over premultiplied
// channel values, then unpremultiplies, so transparent neighborhoods do not
// bleed black into the result.
func boxBlur(img *image.NRGBA, radius int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	pre := make([][4]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			a := float64(c.A)
			pre[y*w+x] = [4]float64{float64(c.R) * a, float64(c.G) * a, float64(c.B) * a, a}
		}
	}

	tmp := make([][4]float64, w*h)
	passLine := func(src, dst [][4]float64, stride, length, lines, lineStride int) {
		for line := 0; line < lines; line++ {
			base := line * lineStride
			var sum [4]float64
			count := 0
			// initial window
			for i := 0; i <= radius && i < length; i++ {
				for k := 0; k < 4; k++ {
					sum[k] += src[base+i*stride][k]
				}
				count++
			}
			for i := 0; i < length; i++ {
				for k := 0; k < 4; k++ {
					dst[base+i*stride][k] = sum[k] / float64(count)
				}
				if lead := i + radius + 1; lead < length {
					for k := 0; k < 4; k++ {
						sum[k] += src[base+lead*stride][k]
					}
					count++
				}
				if trail := i - radius; trail >= 0 {
					for k := 0; k < 4; k++ {
						sum[k] -= src[base+trail*stride][k]
					}
					count--
				}
			}
		}
	}
	passLine(pre, tmp, 1, w, h, w) // horizontal
	passLine(tmp, pre, w, h, w, 1) // vertical

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := pre[y*w+x]
			a := p[3]
			var c color.NRGBA
			if a > 0 {
				c = color.NRGBA{
					R: clamp8(p[0]/a),
					G: clamp8(p[1]/a),
					B: clamp8(p[2]/a),
					A: clamp8(a),
				}
			}
			img.SetNRGBA(b.Min.X+x, b.Min.Y+y, c)
		}
	}
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
