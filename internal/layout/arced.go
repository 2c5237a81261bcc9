/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	"math"

	"poddesign/internal/fontlib"
	"poddesign/internal/vector"
)

const (
	// arcRadiusRatio scales the arc radius from the usable square.
	arcRadiusRatio = 0.38
	// arcSizeDivisor derives the starting font size from the usable square.
	arcSizeDivisor = 8
	// arcMaxSpan caps the angular span so the arc never closes on itself.
	arcMaxSpan = 1.9 * math.Pi
	// arcShrinkFactor is applied per retry when a size does not fit.
	arcShrinkFactor = 0.9
)

// layoutArced places one rune per run along the upper half of a circle
// centered in usable. The angular step between consecutive runes is the
// rune's advance width divided by the radius, so spacing on the arc tracks
// the glyph widths and angles grow strictly monotonically. Each rune is
// rotated to its local tangent.
func layoutArced(p fontlib.Provider, spec Spec, usable vector.Rect) (*Result, error) {
	center := usable.Center()
	minDim := math.Min(usable.W, usable.H)
	radius := arcRadiusRatio * minDim

	size := math.Min(spec.maxSize(), minDim/arcSizeDivisor)
	floor := spec.minSize()
	if size < floor {
		size = floor
	}

	runes := []rune(spec.Text)
	for iter := 0; iter < sizeSearchCap; iter++ {
		res, ok, err := tryArc(p, spec.Font, runes, size, radius, center, usable)
		if err != nil {
			return nil, err
		}
		if ok {
			return res, nil
		}
		size *= arcShrinkFactor
		if size < floor {
			return nil, ErrInfeasible
		}
	}
	return nil, ErrInfeasible
}

// tryArc builds the arc at one candidate size and reports whether every
// placed rune stays inside usable and the span stays open.
func tryArc(p fontlib.Provider, h fontlib.Handle, runes []rune, size, radius float64, center vector.Pt, usable vector.Rect) (*Result, bool, error) {
	ext, err := p.Measure(h, string(runes), size)
	if err != nil {
		return nil, false, err
	}
	advances := ext.Advances
	if len(advances) != len(runes) {
		// Provider without per-rune advances: fall back to even division.
		advances = make([]float64, len(runes))
		for i := range advances {
			advances[i] = ext.Width / float64(len(runes))
		}
	}

	var span float64
	for _, adv := range advances {
		if adv <= 0 {
			adv = size * 0.1
		}
		span += adv / radius
	}
	if span > arcMaxSpan {
		return nil, false, nil
	}

	// Arc is centered on the top of the circle.
	theta := -math.Pi/2 - span/2
	res := &Result{FontSize: size}
	for i, r := range runes {
		adv := advances[i]
		if adv <= 0 {
			adv = size * 0.1
		}
		step := adv / radius
		mid := theta + step/2
		theta += step

		pos := vector.Pt{
			X: center.X + radius*math.Cos(mid),
			Y: center.Y + radius*math.Sin(mid),
		}
		rext, err := p.Measure(h, string(r), size)
		if err != nil {
			return nil, false, err
		}
		// Conservative placed box: half the ink diagonal in every
		// direction covers any rotation of the glyph.
		halfDiag := math.Hypot(rext.Width, rext.Height) / 2
		ink := vector.R(pos.X-halfDiag, pos.Y-halfDiag, 2*halfDiag, 2*halfDiag)
		if !usable.ContainsRect(ink) {
			return nil, false, nil
		}
		run := GlyphRun{
			Text:   string(r),
			Pos:    pos,
			Angle:  mid + math.Pi/2,
			Anchor: AnchorCenter,
			Ink:    ink,
		}
		res.Runs = append(res.Runs, run)
		if i == 0 {
			res.Ink = ink
		} else {
			res.Ink = res.Ink.Union(ink)
		}
	}
	return res, true, nil
}
