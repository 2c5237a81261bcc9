/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package fontlib

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Extents describes the rendered ink box of a string at one size.
// MinX/MinY locate the ink box relative to the baseline origin: placing the
// ink box top-left at (x, y) means drawing with the dot at (x-MinX, y-MinY).
type Extents struct {
	Width    float64
	Height   float64
	MinX     float64
	MinY     float64
	Advances []float64 // per-rune advance, kerning-aware
}

// Provider resolves font handles into concrete faces and measurements.
// Implementations must be safe for concurrent read-only use.
type Provider interface {
	Face(h Handle, size float64) (font.Face, error)
	Measure(h Handle, text string, size float64) (Extents, error)
}

// MeasureFace measures text on a concrete face.
func MeasureFace(face font.Face, text string) Extents {
	d := &font.Drawer{Face: face}
	bounds, _ := font.BoundString(face, text)

	ext := Extents{
		Width:  fixedToFloat(bounds.Max.X) - fixedToFloat(bounds.Min.X),
		Height: fixedToFloat(bounds.Max.Y) - fixedToFloat(bounds.Min.Y),
		MinX:   fixedToFloat(bounds.Min.X),
		MinY:   fixedToFloat(bounds.Min.Y),
	}
	prev := rune(-1)
	for _, r := range text {
		ext.Advances = append(ext.Advances, runeAdvance(d, prev, r))
		prev = r
	}
	if text == "" {
		ext.Width, ext.Height = 0, 0
	}
	return ext
}

// runeAdvance measures one rune's advance with kerning against prev.
// Kerning is approximated by measuring the pair and subtracting the previous
// advance; fonts without kerning fall back to the single-rune advance.
func runeAdvance(d *font.Drawer, prev, cur rune) float64 {
	if prev < 0 {
		return fixedToFloat(d.MeasureString(string(cur)))
	}
	pair := fixedToFloat(d.MeasureString(string([]rune{prev, cur})))
	prevAdv := fixedToFloat(d.MeasureString(string(prev)))
	adv := pair - prevAdv
	if adv <= 0 {
		adv = fixedToFloat(d.MeasureString(string(cur)))
	}
	return adv
}

// fixedToFloat converts a 26.6 fixed-point value to float64 pixels.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// BasicProvider measures with x/image/basicfont Face7x13 regardless of the
// requested size. Deterministic and file-free; intended for tests.
type BasicProvider struct{}

func (BasicProvider) Face(Handle, float64) (font.Face, error) {
	return basicfont.Face7x13, nil
}

func (BasicProvider) Measure(_ Handle, text string, _ float64) (Extents, error) {
	return MeasureFace(basicfont.Face7x13, text), nil
}
