/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package pattern produces seeded procedural shape patterns. A render is a
// pure function of (style, seed, palette, zone): every random draw comes from
// one rand source seeded once per render, and the draw order per shape is
// fixed, so the same inputs always yield the same shape list and pixels.
package pattern

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"sort"

	"poddesign/internal/canvas"
	"poddesign/internal/palette"
	"poddesign/internal/vector"
)

// Style selects a pattern generator.
type Style string

const (
	Geometric    Style = "geometric"
	Circles      Style = "circles"
	Triangles    Style = "triangles"
	Grid         Style = "grid"
	Tessellation Style = "tessellation"
)

// ErrUnknownStyle reports a style name outside the registered set.
var ErrUnknownStyle = errors.New("unknown pattern style")

// Styles returns the registered style names, sorted.
func Styles() []string {
	names := []string{string(Geometric), string(Circles), string(Triangles), string(Grid), string(Tessellation)}
	sort.Strings(names)
	return names
}

// Spec describes one pattern render.
type Spec struct {
	Style   Style
	Seed    int64
	Palette string // palette name; empty selects "neon"
}

func (s Spec) paletteName() string {
	if s.Palette == "" {
		return "neon"
	}
	return s.Palette
}

// Shapes computes the full shape list for a spec without touching pixels.
// The list is what Render rasterizes, in order; tests and tooling can inspect
// placement and per-shape color draws directly.
func Shapes(spec Spec, zone vector.Rect) ([]canvas.ShapePrimitive, error) {
	colors, err := palette.Palette(spec.paletteName())
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(spec.Seed))
	switch spec.Style {
	case Geometric:
		return geometric(rng, zone, colors), nil
	case Circles:
		return circles(rng, zone, colors), nil
	case Triangles:
		return triangles(rng, zone, colors), nil
	case Grid:
		return grid(rng, zone, colors), nil
	case Tessellation:
		return tessellation(rng, zone, colors), nil
	default:
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownStyle, spec.Style, Styles())
	}
}

// Render rasterizes the spec's shapes onto the canvas, restricted by the
// shape centers to the given zone.
func Render(c *canvas.Canvas, spec Spec, zone vector.Rect) error {
	shapes, err := Shapes(spec, zone)
	if err != nil {
		return err
	}
	for _, s := range shapes {
		c.FillShape(s)
	}
	return nil
}

// randIn returns an integer in [lo, hi] from the render's stream.
func randIn(rng *rand.Rand, lo, hi int) float64 {
	return float64(lo + rng.Intn(hi-lo+1))
}

// randPt draws a center inside the zone. x before y, always.
func randPt(rng *rand.Rand, zone vector.Rect) vector.Pt {
	x := zone.X + rng.Float64()*zone.W
	y := zone.Y + rng.Float64()*zone.H
	return vector.Pt{X: x, Y: y}
}

func randColor(rng *rand.Rand, colors []color.NRGBA) color.NRGBA {
	return colors[rng.Intn(len(colors))]
}

// geometric scatters a random mix of all shape kinds.
// Per shape the draw order is: kind, x, y, size, color.
func geometric(rng *rand.Rand, zone vector.Rect, colors []color.NRGBA) []canvas.ShapePrimitive {
	kinds := []canvas.Kind{canvas.KindCircle, canvas.KindTriangle, canvas.KindDiamond, canvas.KindHexagon, canvas.KindStar}
	count := int(randIn(rng, 20, 40))
	shapes := make([]canvas.ShapePrimitive, 0, count)
	for i := 0; i < count; i++ {
		kind := kinds[rng.Intn(len(kinds))]
		center := randPt(rng, zone)
		size := randIn(rng, 40, 200)
		shapes = append(shapes, canvas.ShapePrimitive{
			Kind:   kind,
			Center: center,
			Size:   size,
			Fill:   randColor(rng, colors),
		})
	}
	return shapes
}

// circles scatters filled discs and outline rings, roughly half and half.
// Per shape the draw order is: x, y, radius, color, filled?, [stroke width].
func circles(rng *rand.Rand, zone vector.Rect, colors []color.NRGBA) []canvas.ShapePrimitive {
	count := int(randIn(rng, 25, 50))
	shapes := make([]canvas.ShapePrimitive, 0, count)
	for i := 0; i < count; i++ {
		center := randPt(rng, zone)
		r := randIn(rng, 20, 250)
		col := randColor(rng, colors)
		s := canvas.ShapePrimitive{Kind: canvas.KindCircle, Center: center, Size: r, Fill: col}
		if rng.Float64() <= 0.5 {
			s.Fill.A = 200
			s.StrokeWidth = randIn(rng, 3, 10)
		}
		shapes = append(shapes, s)
	}
	return shapes
}

// triangles scatters rotated triangles.
// Per shape the draw order is: x, y, size, rotation, color.
func triangles(rng *rand.Rand, zone vector.Rect, colors []color.NRGBA) []canvas.ShapePrimitive {
	count := int(randIn(rng, 20, 40))
	shapes := make([]canvas.ShapePrimitive, 0, count)
	for i := 0; i < count; i++ {
		center := randPt(rng, zone)
		size := randIn(rng, 40, 200)
		rot := rng.Float64() * 360
		shapes = append(shapes, canvas.ShapePrimitive{
			Kind:     canvas.KindTriangle,
			Center:   center,
			Size:     size,
			Rotation: rot,
			Fill:     randColor(rng, colors),
		})
	}
	return shapes
}

// gridCellSize derives the lattice pitch from the zone alone, so the cell
// count is a function of the bounds and never of the seed.
func gridCellSize(zone vector.Rect) float64 {
	return clampF(math.Min(zone.W, zone.H)/18, 24, 200)
}

// grid fills a regular lattice with one shape kind. The kind is the first
// seeded draw; after that each cell takes exactly one color draw, row by row,
// left to right.
func grid(rng *rand.Rand, zone vector.Rect, colors []color.NRGBA) []canvas.ShapePrimitive {
	cell := gridCellSize(zone)
	kinds := []canvas.Kind{canvas.KindCircle, canvas.KindDiamond, canvas.KindHexagon}
	kind := kinds[rng.Intn(len(kinds))]

	var shapes []canvas.ShapePrimitive
	for y := zone.Y; y+cell <= zone.Y+zone.H+0.5; y += cell {
		for x := zone.X; x+cell <= zone.X+zone.W+0.5; x += cell {
			shapes = append(shapes, canvas.ShapePrimitive{
				Kind:   kind,
				Center: vector.Pt{X: x + cell/2, Y: y + cell/2},
				Size:   cell / 3,
				Fill:   randColor(rng, colors),
			})
		}
	}
	return shapes
}

// tessellation tiles staggered hexagon rows. Tile geometry comes from the
// zone alone; each tile takes one color draw in row-major order. Adjacent
// tiles may draw the same color: there is no adjacency constraint.
func tessellation(rng *rand.Rand, zone vector.Rect, colors []color.NRGBA) []canvas.ShapePrimitive {
	hexSize := clampF(math.Min(zone.W, zone.H)/30, 12, 100)
	rowStep := hexSize * math.Sqrt(3) / 2
	gap := math.Max(1, hexSize*0.05)

	var shapes []canvas.ShapePrimitive
	row := 0
	for y := zone.Y; y < zone.Y+zone.H+hexSize; y += rowStep {
		x := zone.X
		if row%2 == 1 {
			x += hexSize * 1.5
		}
		for ; x < zone.X+zone.W+hexSize; x += hexSize * 3 {
			shapes = append(shapes, canvas.ShapePrimitive{
				Kind:   canvas.KindHexagon,
				Center: vector.Pt{X: x, Y: y},
				Size:   hexSize - gap,
				Fill:   randColor(rng, colors),
			})
		}
		row++
	}
	return shapes
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
