/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"poddesign/internal/fontlib"
	"poddesign/internal/vector"
)

// DrawString draws an axis-aligned glyph run with the baseline dot at the
// given point.
func (c *Canvas) DrawString(face font.Face, s string, dot vector.Pt, col color.NRGBA) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: floatToFixed(dot.X), Y: floatToFixed(dot.Y)},
	}
	d.DrawString(s)
}

// DrawStringRotated draws a glyph run rotated by angle radians with its ink
// box centered at the given point. The run is rendered to a scratch layer and
// resampled bilinearly, matching how arced characters are placed.
func (c *Canvas) DrawStringRotated(face font.Face, s string, center vector.Pt, angle float64, col color.NRGBA) {
	ext := fontlib.MeasureFace(face, s)
	if ext.Width <= 0 || ext.Height <= 0 {
		return
	}
	const pad = 4
	sw := int(math.Ceil(ext.Width)) + 2*pad
	sh := int(math.Ceil(ext.Height)) + 2*pad
	scratch := image.NewNRGBA(image.Rect(0, 0, sw, sh))
	d := &font.Drawer{
		Dst:  scratch,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: floatToFixed(pad - ext.MinX), Y: floatToFixed(pad - ext.MinY)},
	}
	d.DrawString(s)
	c.compositeRotated(scratch, center, angle)
}

// compositeRotated maps the scratch image onto the canvas so that the scratch
// center lands on dstCenter rotated by angle.
func (c *Canvas) compositeRotated(scratch *image.NRGBA, dstCenter vector.Pt, angle float64) {
	sb := scratch.Bounds()
	scx := float64(sb.Dx()) / 2
	scy := float64(sb.Dy()) / 2

	fwd := vector.Translate(dstCenter.X, dstCenter.Y).
		Mul(vector.Rotate(angle)).
		Mul(vector.Translate(-scx, -scy))
	inv := fwd.Invert()

	// Destination bbox from the transformed scratch corners.
	corners := []vector.Pt{
		fwd.Apply(vector.Pt{X: 0, Y: 0}),
		fwd.Apply(vector.Pt{X: float64(sb.Dx()), Y: 0}),
		fwd.Apply(vector.Pt{X: 0, Y: float64(sb.Dy())}),
		fwd.Apply(vector.Pt{X: float64(sb.Dx()), Y: float64(sb.Dy())}),
	}
	bbox := vector.R(corners[0].X, corners[0].Y, 0, 0)
	for _, p := range corners[1:] {
		bbox = bbox.Union(vector.R(p.X, p.Y, 0, 0))
	}
	r := image.Rect(
		int(math.Floor(bbox.X)), int(math.Floor(bbox.Y)),
		int(math.Ceil(bbox.X+bbox.W))+1, int(math.Ceil(bbox.Y+bbox.H))+1,
	).Intersect(c.img.Bounds())

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			src := inv.Apply(vector.Pt{X: float64(x) + 0.5, Y: float64(y) + 0.5})
			col, ok := sampleBilinear(scratch, src.X-0.5, src.Y-0.5)
			if !ok || col.A == 0 {
				continue
			}
			blendOver(c.img, x, y, col)
		}
	}
}

// sampleBilinear samples the image at a fractional position. Out-of-bounds
// taps contribute transparent pixels.
func sampleBilinear(img *image.NRGBA, x, y float64) (color.NRGBA, bool) {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	b := img.Bounds()
	if x0 < b.Min.X-1 || y0 < b.Min.Y-1 || x0 > b.Max.X || y0 > b.Max.Y {
		return color.NRGBA{}, false
	}

	var r, g, bl, a float64
	tap := func(px, py int, w float64) {
		if w == 0 || px < b.Min.X || py < b.Min.Y || px >= b.Max.X || py >= b.Max.Y {
			return
		}
		c := img.NRGBAAt(px, py)
		wa := w * float64(c.A)
		r += wa * float64(c.R)
		g += wa * float64(c.G)
		bl += wa * float64(c.B)
		a += wa
	}
	tap(x0, y0, (1-fx)*(1-fy))
	tap(x0+1, y0, fx*(1-fy))
	tap(x0, y0+1, (1-fx)*fy)
	tap(x0+1, y0+1, fx*fy)

	if a == 0 {
		return color.NRGBA{}, true
	}
	return color.NRGBA{
		R: uint8(r/a + 0.5),
		G: uint8(g/a + 0.5),
		B: uint8(bl/a + 0.5),
		A: uint8(a + 0.5),
	}, true
}

// blendOver alpha-composites a non-premultiplied source pixel over the image.
func blendOver(img *image.NRGBA, x, y int, src color.NRGBA) {
	dst := img.NRGBAAt(x, y)
	sa := float64(src.A) / 255
	da := float64(dst.A) / 255
	outA := sa + da*(1-sa)
	if outA == 0 {
		img.SetNRGBA(x, y, color.NRGBA{})
		return
	}
	blend := func(s, d uint8) uint8 {
		v := (float64(s)*sa + float64(d)*da*(1-sa)) / outA
		return uint8(v + 0.5)
	}
	img.SetNRGBA(x, y, color.NRGBA{
		R: blend(src.R, dst.R),
		G: blend(src.G, dst.G),
		B: blend(src.B, dst.B),
		A: uint8(outA*255 + 0.5),
	})
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
