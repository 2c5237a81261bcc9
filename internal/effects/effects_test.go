/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package effects

import (
	"image"
	"image/color"
	"testing"

	"poddesign/internal/canvas"
	"poddesign/internal/vector"
)

var (
	black = color.NRGBA{A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
)

func TestShadowParamsScaleWithSize(t *testing.T) {
	offSmall, blurSmall := ShadowParams(10)
	if offSmall.X < 2 || blurSmall < 2 {
		t.Fatalf("floors not applied: %+v %d", offSmall, blurSmall)
	}
	offBig, blurBig := ShadowParams(400)
	if offBig.X <= offSmall.X || blurBig <= blurSmall {
		t.Fatalf("params should grow with font size: %+v/%d vs %+v/%d", offBig, blurBig, offSmall, blurSmall)
	}
}

func TestDropShadowCompositesOffsetSilhouette(t *testing.T) {
	dst := canvas.New(40, 40, canvas.ModeTransparent)
	DropShadow(dst, func(layer *canvas.Canvas) {
		layer.FillShape(canvas.ShapePrimitive{Kind: canvas.KindRect, Center: vector.Pt{X: 10, Y: 10}, Size: 4, Fill: ShadowColor})
	}, image.Point{X: 6, Y: 6}, 0)

	img := dst.Image()
	if img.NRGBAAt(16, 16).A == 0 {
		t.Fatalf("shadow not composited at offset")
	}
	if img.NRGBAAt(3, 3).A != 0 {
		t.Fatalf("shadow painted at unshifted position")
	}
}

func TestBlurSpreadsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 21, 21))
	img.SetNRGBA(10, 10, black)
	Blur(img, 2)
	if img.NRGBAAt(10, 10).A == 0 {
		t.Fatalf("blur erased the source pixel entirely")
	}
	if img.NRGBAAt(12, 10).A == 0 {
		t.Fatalf("blur did not spread alpha to neighbors")
	}
	if img.NRGBAAt(20, 20).A != 0 {
		t.Fatalf("blur reached pixels outside its radius")
	}
}

func TestBlurZeroRadiusIsNoop(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	img.SetNRGBA(2, 2, red)
	Blur(img, 0)
	if img.NRGBAAt(2, 2) != red || img.NRGBAAt(1, 2).A != 0 {
		t.Fatalf("zero radius blur modified the image")
	}
}

func TestLinearGradientMonotonic(t *testing.T) {
	c := canvas.New(1, 100, canvas.ModeTransparent)
	Linear(c, c.Bounds(), vector.Pt{X: 0, Y: 0}, vector.Pt{X: 0, Y: 100}, []Stop{
		{Offset: 0, Color: black},
		{Offset: 1, Color: white},
	})
	img := c.Image()
	prev := -1
	for y := 0; y < 100; y++ {
		v := int(img.NRGBAAt(0, y).R)
		if v < prev {
			t.Fatalf("gradient not monotonic at y=%d: %d < %d", y, v, prev)
		}
		prev = v
	}
	if img.NRGBAAt(0, 0).R > 16 && img.NRGBAAt(0, 99).R < 240 {
		t.Fatalf("gradient endpoints wrong")
	}
}

func TestLinearGradientThreeStops(t *testing.T) {
	c := canvas.New(100, 1, canvas.ModeTransparent)
	Linear(c, c.Bounds(), vector.Pt{X: 0, Y: 0}, vector.Pt{X: 100, Y: 0}, []Stop{
		{Offset: 0, Color: black},
		{Offset: 0.5, Color: red},
		{Offset: 1, Color: white},
	})
	mid := c.Image().NRGBAAt(50, 0)
	if mid.R < 200 || mid.G > 60 {
		t.Fatalf("middle stop color not hit: %+v", mid)
	}
}

func TestRadialGradientCenterAndEdge(t *testing.T) {
	c := canvas.New(101, 101, canvas.ModeTransparent)
	Radial(c, c.Bounds(), vector.Pt{X: 50.5, Y: 50.5}, 50, []Stop{
		{Offset: 0, Color: white},
		{Offset: 1, Color: black},
	})
	img := c.Image()
	if img.NRGBAAt(50, 50).R < 240 {
		t.Fatalf("center should be near white: %+v", img.NRGBAAt(50, 50))
	}
	if img.NRGBAAt(0, 0).R > 16 {
		t.Fatalf("corner should be padded with edge stop: %+v", img.NRGBAAt(0, 0))
	}
}

func TestGradientIdempotentOnFreshRegion(t *testing.T) {
	paint := func() []uint8 {
		c := canvas.New(20, 20, canvas.ModeTransparent)
		Linear(c, c.Bounds(), vector.Pt{}, vector.Pt{X: 20, Y: 0}, []Stop{
			{Offset: 0, Color: red}, {Offset: 1, Color: white},
		})
		// Applying again must not change anything: Src semantics.
		Linear(c, c.Bounds(), vector.Pt{}, vector.Pt{X: 20, Y: 0}, []Stop{
			{Offset: 0, Color: red}, {Offset: 1, Color: white},
		})
		return c.Image().Pix
	}
	a := paint()
	b := paint()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("gradient not deterministic at byte %d", i)
		}
	}
}
