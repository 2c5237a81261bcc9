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
	"poddesign/internal/metadata"
	"poddesign/internal/palette"
	"poddesign/internal/pattern"
)

// PatternDesign renders a seeded procedural pattern across the safe zone.
type PatternDesign struct {
	Style   pattern.Style
	Palette string
	Seed    int64
	Color   string // optional background shortcut
}

func (d *PatternDesign) Generate(p domain.ProductSpec) (*canvas.Canvas, error) {
	pair := palette.ResolvePair(d.Color, d.Palette, p.Transparent)
	c := newProductCanvas(p, pair)
	spec := pattern.Spec{Style: d.Style, Seed: d.Seed, Palette: d.Palette}
	if err := pattern.Render(c, spec, p.SafeZone()); err != nil {
		return nil, err
	}
	return c, nil
}

func (d *PatternDesign) Meta() metadata.Input {
	return metadata.Input{DesignType: "pattern", Style: string(d.Style)}
}
