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
	"image/draw"
	"math"

	xvector "golang.org/x/image/vector"

	"poddesign/internal/vector"
)

// Kind enumerates the drawable shape primitives.
type Kind string

const (
	KindCircle   Kind = "circle"
	KindTriangle Kind = "triangle"
	KindDiamond  Kind = "diamond"
	KindHexagon  Kind = "hexagon"
	KindStar     Kind = "star"
	KindRect     Kind = "rect"
)

// ShapePrimitive is one drawable unit emitted by the pattern engine.
// Size is the outer radius (half extent for rects). A positive StrokeWidth
// on a circle draws an outline ring instead of a filled disc.
type ShapePrimitive struct {
	Kind        Kind
	Center      vector.Pt
	Size        float64
	Inner       float64 // star inner radius; defaults to Size/2
	Points      int     // star points; defaults to 5
	W, H        float64 // rect extents; default to 2*Size each
	Rotation    float64 // degrees
	Fill        color.NRGBA
	StrokeWidth float64
}

// FillShape rasterizes the primitive onto the canvas with anti-aliasing.
func (c *Canvas) FillShape(s ShapePrimitive) {
	switch s.Kind {
	case KindCircle:
		if s.StrokeWidth > 0 {
			c.fillRing(s.Center, s.Size, s.StrokeWidth, s.Fill)
		} else {
			c.fillCircle(s.Center, s.Size, s.Fill)
		}
	case KindTriangle:
		c.fillPolygon(regularPolygon(s.Center, s.Size, 3, s.Rotation-90), s.Fill)
	case KindDiamond:
		c.fillPolygon(regularPolygon(s.Center, s.Size, 4, s.Rotation-90), s.Fill)
	case KindHexagon:
		c.fillPolygon(regularPolygon(s.Center, s.Size, 6, s.Rotation-30), s.Fill)
	case KindStar:
		c.fillPolygon(starPolygon(s.Center, s.Size, s.Inner, s.Points, s.Rotation-90), s.Fill)
	case KindRect:
		w, h := s.W, s.H
		if w <= 0 {
			w = 2 * s.Size
		}
		if h <= 0 {
			h = 2 * s.Size
		}
		c.fillPolygon(rectPolygon(s.Center, w, h, s.Rotation), s.Fill)
	}
}

// regularPolygon returns the vertices of a regular n-gon. startDeg is the
// angle of the first vertex in degrees.
func regularPolygon(center vector.Pt, r float64, n int, startDeg float64) []vector.Pt {
	pts := make([]vector.Pt, n)
	for i := 0; i < n; i++ {
		a := (startDeg + float64(i)*360/float64(n)) * math.Pi / 180
		pts[i] = vector.Pt{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
	}
	return pts
}

func starPolygon(center vector.Pt, outer, inner float64, points int, startDeg float64) []vector.Pt {
	if points <= 0 {
		points = 5
	}
	if inner <= 0 {
		inner = outer / 2
	}
	pts := make([]vector.Pt, 0, points*2)
	step := 360 / float64(points*2)
	for i := 0; i < points*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := (startDeg + float64(i)*step) * math.Pi / 180
		pts = append(pts, vector.Pt{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)})
	}
	return pts
}

func rectPolygon(center vector.Pt, w, h, rotDeg float64) []vector.Pt {
	m := vector.RotateAround(rotDeg*math.Pi/180, center)
	pts := []vector.Pt{
		{X: center.X - w/2, Y: center.Y - h/2},
		{X: center.X + w/2, Y: center.Y - h/2},
		{X: center.X + w/2, Y: center.Y + h/2},
		{X: center.X - w/2, Y: center.Y + h/2},
	}
	for i := range pts {
		pts[i] = m.Apply(pts[i])
	}
	return pts
}

// shapeRasterizer builds a bbox-local rasterizer so large canvases do not pay
// for full-surface rasterization per shape.
func (c *Canvas) shapeRasterizer(bbox vector.Rect) (*xvector.Rasterizer, image.Rectangle, bool) {
	minX := int(math.Floor(bbox.X)) - 1
	minY := int(math.Floor(bbox.Y)) - 1
	maxX := int(math.Ceil(bbox.X+bbox.W)) + 1
	maxY := int(math.Ceil(bbox.Y+bbox.H)) + 1

	r := image.Rect(minX, minY, maxX, maxY).Intersect(c.img.Bounds())
	if r.Empty() {
		return nil, r, false
	}
	ras := xvector.NewRasterizer(r.Dx(), r.Dy())
	ras.DrawOp = draw.Over
	return ras, r, true
}

func (c *Canvas) fillPolygon(pts []vector.Pt, col color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	bbox := vector.R(pts[0].X, pts[0].Y, 0, 0)
	for _, p := range pts[1:] {
		bbox = bbox.Union(vector.R(p.X, p.Y, 0, 0))
	}
	ras, r, ok := c.shapeRasterizer(bbox)
	if !ok {
		return
	}
	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	ras.MoveTo(float32(pts[0].X)-ox, float32(pts[0].Y)-oy)
	for _, p := range pts[1:] {
		ras.LineTo(float32(p.X)-ox, float32(p.Y)-oy)
	}
	ras.ClosePath()
	ras.Draw(c.img, r, image.NewUniform(col), image.Point{})
}

func (c *Canvas) fillCircle(center vector.Pt, radius float64, col color.NRGBA) {
	if radius <= 0 {
		return
	}
	bbox := vector.R(center.X-radius, center.Y-radius, 2*radius, 2*radius)
	ras, r, ok := c.shapeRasterizer(bbox)
	if !ok {
		return
	}
	off := vector.Pt{X: float64(r.Min.X), Y: float64(r.Min.Y)}
	appendCircle(ras, vector.Pt{X: center.X - off.X, Y: center.Y - off.Y}, radius, false)
	ras.Draw(c.img, r, image.NewUniform(col), image.Point{})
}

// fillRing draws a circle outline of the given stroke width centered on the
// radius, using opposite winding for the inner contour.
func (c *Canvas) fillRing(center vector.Pt, radius, width float64, col color.NRGBA) {
	outer := radius + width/2
	inner := radius - width/2
	if outer <= 0 {
		return
	}
	if inner < 0 {
		inner = 0
	}
	bbox := vector.R(center.X-outer, center.Y-outer, 2*outer, 2*outer)
	ras, r, ok := c.shapeRasterizer(bbox)
	if !ok {
		return
	}
	local := vector.Pt{X: center.X - float64(r.Min.X), Y: center.Y - float64(r.Min.Y)}
	appendCircle(ras, local, outer, false)
	if inner > 0 {
		appendCircle(ras, local, inner, true)
	}
	ras.Draw(c.img, r, image.NewUniform(col), image.Point{})
}

// kappa is the cubic Bezier circle constant.
const kappa = 0.5522847498307936

// appendCircle adds a circle contour from four cubic segments. reverse flips
// the winding so the contour subtracts instead of adds.
func appendCircle(ras *xvector.Rasterizer, c vector.Pt, r float64, reverse bool) {
	k := kappa * r
	x, y := float32(c.X), float32(c.Y)
	rr, kk := float32(r), float32(k)
	if !reverse {
		ras.MoveTo(x+rr, y)
		ras.CubeTo(x+rr, y+kk, x+kk, y+rr, x, y+rr)
		ras.CubeTo(x-kk, y+rr, x-rr, y+kk, x-rr, y)
		ras.CubeTo(x-rr, y-kk, x-kk, y-rr, x, y-rr)
		ras.CubeTo(x+kk, y-rr, x+rr, y-kk, x+rr, y)
	} else {
		ras.MoveTo(x+rr, y)
		ras.CubeTo(x+rr, y-kk, x+kk, y-rr, x, y-rr)
		ras.CubeTo(x-kk, y-rr, x-rr, y-kk, x-rr, y)
		ras.CubeTo(x-rr, y+kk, x-kk, y+rr, x, y+rr)
		ras.CubeTo(x+kk, y+rr, x+rr, y+kk, x+rr, y)
	}
	ras.ClosePath()
}
