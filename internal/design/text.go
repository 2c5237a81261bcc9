/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package design

import (
	"poddesign/internal/canvas"
	"poddesign/internal/domain"
	"poddesign/internal/fontlib"
	"poddesign/internal/layout"
	"poddesign/internal/metadata"
	"poddesign/internal/palette"
)

// TextDesign renders a quote or slogan with one of the layout strategies.
type TextDesign struct {
	Fonts   fontlib.Provider
	Font    fontlib.Handle
	Text    string
	Color   string // shortcut name or raw hex
	Palette string
	Layout  layout.Strategy
	Shadow  bool
}

func (d *TextDesign) Generate(p domain.ProductSpec) (*canvas.Canvas, error) {
	pair := palette.ResolvePair(d.Color, d.Palette, p.Transparent)
	c := newProductCanvas(p, pair)

	res, err := layout.Layout(d.Fonts, layout.Spec{
		Text:     d.Text,
		Font:     d.Font,
		Strategy: d.Layout,
		Shadow:   d.Shadow,
	}, p.Bounds())
	if err != nil {
		return nil, err
	}
	if err := renderText(c, d.Fonts, d.Font, res, pair.FG, d.Shadow); err != nil {
		return nil, err
	}
	return c, nil
}

func (d *TextDesign) Meta() metadata.Input {
	return metadata.Input{Text: d.Text, DesignType: "text"}
}
