/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package design

import (
	"math/rand"

	"poddesign/internal/canvas"
	"poddesign/internal/domain"
	"poddesign/internal/fontlib"
	"poddesign/internal/layout"
	"poddesign/internal/metadata"
	"poddesign/internal/palette"
)

// FontSource resolves font names and provides faces; *fontlib.Library is the
// production implementation.
type FontSource interface {
	fontlib.Provider
	Resolve(name string) (fontlib.Handle, error)
}

// NicheDesign renders themed text designs driven by a JSON template.
type NicheDesign struct {
	Fonts    FontSource
	Theme    string
	Template Template
	Text     string // overrides the template phrase pool when set
	Seed     int64  // phrase selection seed
}

// phrase picks the rendered text: explicit text wins, otherwise one seeded
// draw from the template's phrase pool.
func (d *NicheDesign) phrase() string {
	if d.Text != "" {
		return d.Text
	}
	phrases := d.Template.Phrases
	if len(phrases) == 0 {
		return "Design"
	}
	rng := rand.New(rand.NewSource(d.Seed))
	return phrases[rng.Intn(len(phrases))]
}

func (d *NicheDesign) Generate(p domain.ProductSpec) (*canvas.Canvas, error) {
	style := d.Template.Style.withDefaults()
	h, err := d.Fonts.Resolve(style.Font)
	if err != nil {
		return nil, err
	}

	pair := palette.ResolvePair(style.Colors, "", p.Transparent)
	c := newProductCanvas(p, pair)
	if style.Background != nil && !p.Transparent {
		if err := paintGradient(c, *style.Background); err != nil {
			return nil, err
		}
	}

	res, err := layout.Layout(d.Fonts, layout.Spec{
		Text:     d.phrase(),
		Font:     h,
		Strategy: layout.Strategy(style.Layout),
		Shadow:   style.shadowOn(),
	}, p.Bounds())
	if err != nil {
		return nil, err
	}
	if err := renderText(c, d.Fonts, h, res, pair.FG, style.shadowOn()); err != nil {
		return nil, err
	}
	return c, nil
}

func (d *NicheDesign) Meta() metadata.Input {
	return metadata.Input{
		Text:       d.phrase(),
		DesignType: "niche",
		Theme:      d.Theme,
		ExtraTags:  d.Template.Tags,
	}
}
