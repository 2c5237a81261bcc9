/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package design assembles complete product artwork from the layout, pattern
// and effects building blocks. Each design kind is a Generator; callers pick
// one by tag and render it per product.
package design

import (
	"image/color"

	"poddesign/internal/canvas"
	"poddesign/internal/domain"
	"poddesign/internal/effects"
	"poddesign/internal/fontlib"
	"poddesign/internal/layout"
	"poddesign/internal/metadata"
	"poddesign/internal/palette"
)

// Generator produces one design image per product.
type Generator interface {
	Generate(product domain.ProductSpec) (*canvas.Canvas, error)
	// Meta describes the design for listing-metadata generation.
	Meta() metadata.Input
}

// RenderAll generates the design for every product, keyed by product name.
func RenderAll(g Generator, products []domain.ProductSpec) (map[string]*canvas.Canvas, error) {
	out := make(map[string]*canvas.Canvas, len(products))
	for _, p := range products {
		c, err := g.Generate(p)
		if err != nil {
			return nil, err
		}
		out[p.Name] = c
	}
	return out, nil
}

// newProductCanvas allocates the canvas for a product and fills the resolved
// background when the product is not transparent.
func newProductCanvas(p domain.ProductSpec, pair palette.Pair) *canvas.Canvas {
	mode := canvas.ModeTransparent
	if !p.Transparent {
		mode = canvas.ModeOpaque
	}
	c := canvas.New(p.Width, p.Height, mode)
	if pair.HasBG {
		c.FillBackground(pair.BG)
	}
	return c
}

// renderRuns draws every glyph run of a layout result in one color.
func renderRuns(c *canvas.Canvas, fonts fontlib.Provider, h fontlib.Handle, res *layout.Result, col color.NRGBA) error {
	face, err := fonts.Face(h, res.FontSize)
	if err != nil {
		return err
	}
	for _, run := range res.Runs {
		if run.Anchor == layout.AnchorCenter {
			c.DrawStringRotated(face, run.Text, run.Pos, run.Angle, col)
		} else {
			c.DrawString(face, run.Text, run.Pos, col)
		}
	}
	return nil
}

// renderText draws a laid-out text block, with its drop shadow first when
// requested so the text always sits above it.
func renderText(c *canvas.Canvas, fonts fontlib.Provider, h fontlib.Handle, res *layout.Result, fg color.NRGBA, shadow bool) error {
	if shadow {
		offset, blur := effects.ShadowParams(res.FontSize)
		var paintErr error
		effects.DropShadow(c, func(layer *canvas.Canvas) {
			paintErr = renderRuns(layer, fonts, h, res, effects.ShadowColor)
		}, offset, blur)
		if paintErr != nil {
			return paintErr
		}
	}
	return renderRuns(c, fonts, h, res, fg)
}
