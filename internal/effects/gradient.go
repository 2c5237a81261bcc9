/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package effects

import (
	"image/color"
	"math"
	"sort"

	"poddesign/internal/canvas"
	"poddesign/internal/vector"
)

// Stop is one color stop of a gradient. Offsets are in [0, 1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Linear writes a linear gradient into the region, pixel by pixel. The
// parameter t is the projection of the pixel onto the start-end axis;
// interpolation between adjacent stops is monotonic and values beyond the
// axis are padded with the edge stop colors.
func Linear(c *canvas.Canvas, region vector.Rect, start, end vector.Pt, stops []Stop) {
	dx := end.X - start.X
	dy := end.Y - start.Y
	lengthSq := dx*dx + dy*dy
	sorted := sortStops(stops)

	writeRegion(c, region, func(x, y float64) color.NRGBA {
		if lengthSq == 0 {
			return edgeColor(sorted, 0)
		}
		t := ((x-start.X)*dx + (y-start.Y)*dy) / lengthSq
		return colorAt(sorted, t)
	})
}

// Radial writes a radial gradient from center outwards. t is distance over
// radius, padded beyond 1.
func Radial(c *canvas.Canvas, region vector.Rect, center vector.Pt, radius float64, stops []Stop) {
	sorted := sortStops(stops)
	writeRegion(c, region, func(x, y float64) color.NRGBA {
		if radius <= 0 {
			return edgeColor(sorted, 0)
		}
		t := math.Hypot(x-center.X, y-center.Y) / radius
		return colorAt(sorted, t)
	})
}

func writeRegion(c *canvas.Canvas, region vector.Rect, at func(x, y float64) color.NRGBA) {
	img := c.Image()
	b := img.Bounds()
	x0 := maxInt(b.Min.X, int(math.Floor(region.X)))
	y0 := maxInt(b.Min.Y, int(math.Floor(region.Y)))
	x1 := minInt(b.Max.X, int(math.Ceil(region.X+region.W)))
	y1 := minInt(b.Max.Y, int(math.Ceil(region.Y+region.H)))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetNRGBA(x, y, at(float64(x)+0.5, float64(y)+0.5))
		}
	}
}

func sortStops(stops []Stop) []Stop {
	out := append([]Stop(nil), stops...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

func edgeColor(sorted []Stop, side int) color.NRGBA {
	if len(sorted) == 0 {
		return color.NRGBA{}
	}
	if side <= 0 {
		return sorted[0].Color
	}
	return sorted[len(sorted)-1].Color
}

// colorAt interpolates between the two stops surrounding t. Pad extension:
// t outside [first, last] clamps to the edge stop.
func colorAt(sorted []Stop, t float64) color.NRGBA {
	if len(sorted) == 0 {
		return color.NRGBA{}
	}
	if t <= sorted[0].Offset {
		return sorted[0].Color
	}
	last := sorted[len(sorted)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(sorted); i++ {
		if t <= sorted[i].Offset {
			lo, hi := sorted[i-1], sorted[i]
			span := hi.Offset - lo.Offset
			if span <= 0 {
				return hi.Color
			}
			return lerpColor(lo.Color, hi.Color, (t-lo.Offset)/span)
		}
	}
	return last.Color
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: lerp(a.A, b.A),
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
