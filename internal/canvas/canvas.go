/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package canvas owns the mutable pixel surface a design is rendered onto.
// A Canvas belongs to exactly one render call; drawing is sequential and the
// result is fully determined by the sequence of draw commands.
package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"poddesign/internal/vector"
)

// Mode selects the background semantics of the finished image.
type Mode int

const (
	// ModeTransparent keeps an alpha channel (t-shirts, stickers).
	ModeTransparent Mode = iota
	// ModeOpaque flattens to an opaque image (posters).
	ModeOpaque
)

// Canvas is a fixed-size pixel surface with non-premultiplied RGBA storage.
type Canvas struct {
	img  *image.NRGBA
	mode Mode
}

// New creates a blank canvas. The buffer starts fully transparent; opaque
// products fill a background before drawing.
func New(w, h int, mode Mode) *Canvas {
	return &Canvas{img: image.NewNRGBA(image.Rect(0, 0, w, h)), mode: mode}
}

// Mode returns the canvas background mode.
func (c *Canvas) Mode() Mode { return c.mode }

// Size returns the pixel dimensions.
func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Bounds returns the full canvas rectangle in drawing coordinates.
func (c *Canvas) Bounds() vector.Rect {
	b := c.img.Bounds()
	return vector.R(0, 0, float64(b.Dx()), float64(b.Dy()))
}

// FillBackground floods the whole surface with a solid color.
func (c *Canvas) FillBackground(col color.NRGBA) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Composite alpha-blends a same-sized layer over the canvas at the given
// pixel offset.
func (c *Canvas) Composite(layer *Canvas, offset image.Point) {
	r := layer.img.Bounds().Add(offset)
	draw.Draw(c.img, r, layer.img, image.Point{}, draw.Over)
}

// Image exposes the backing buffer for in-place effects.
func (c *Canvas) Image() *image.NRGBA { return c.img }

// Finalize returns the finished image. Opaque canvases are flattened so the
// encoded file carries no alpha.
func (c *Canvas) Finalize() image.Image {
	if c.mode == ModeTransparent {
		return c.img
	}
	flat := image.NewRGBA(c.img.Bounds())
	draw.Draw(flat, flat.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), c.img, image.Point{}, draw.Over)
	return flat
}
