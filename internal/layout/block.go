/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	"strings"

	"poddesign/internal/fontlib"
	"poddesign/internal/vector"
)

// layoutBlock implements the centered strategy: the whole text, with any
// explicit line breaks, is treated as one block and the largest font size
// that keeps the block inside usable is found by binary search.
func layoutBlock(p fontlib.Provider, spec Spec, usable vector.Rect, spacing float64) (*Result, error) {
	lines := splitLines(spec.Text)
	size, err := searchSize(spec.minSize(), spec.maxSize(), func(size float64) (bool, error) {
		m, err := measureLines(p, spec.Font, lines, size, spacing)
		if err != nil {
			return false, err
		}
		return m.width <= usable.W && m.height <= usable.H, nil
	})
	if err != nil {
		return nil, err
	}
	m, err := measureLines(p, spec.Font, lines, size, spacing)
	if err != nil {
		return nil, err
	}
	return placeBlock(lines, m, size, spacing, usable), nil
}

// layoutStacked implements the stacked strategy: explicit line breaks define
// the lines, a logical line that cannot fit usable width at the floor size is
// word-wrapped, then all lines share the single largest size that fits.
func layoutStacked(p fontlib.Provider, spec Spec, usable vector.Rect) (*Result, error) {
	spacing := spec.lineSpacing()
	lines, err := wrapOverflowing(p, spec.Font, splitLines(spec.Text), spec.minSize(), usable.W)
	if err != nil {
		return nil, err
	}
	size, err := searchSize(spec.minSize(), spec.maxSize(), func(size float64) (bool, error) {
		m, err := measureLines(p, spec.Font, lines, size, spacing)
		if err != nil {
			return false, err
		}
		return m.width <= usable.W && m.height <= usable.H, nil
	})
	if err != nil {
		return nil, err
	}
	m, err := measureLines(p, spec.Font, lines, size, spacing)
	if err != nil {
		return nil, err
	}
	return placeBlock(lines, m, size, spacing, usable), nil
}

// wrapOverflowing greedily splits any line whose ink at the floor size
// exceeds maxWidth. Lines that already fit pass through untouched, so text
// with deliberate breaks keeps its shape.
func wrapOverflowing(p fontlib.Provider, h fontlib.Handle, lines []string, floorSize, maxWidth float64) ([]string, error) {
	var out []string
	for _, line := range lines {
		ext, err := p.Measure(h, line, floorSize)
		if err != nil {
			return nil, err
		}
		if ext.Width <= maxWidth || !strings.Contains(line, " ") {
			out = append(out, line)
			continue
		}
		words := strings.Fields(line)
		cur := words[0]
		for _, w := range words[1:] {
			cand := cur + " " + w
			ext, err := p.Measure(h, cand, floorSize)
			if err != nil {
				return nil, err
			}
			if ext.Width <= maxWidth {
				cur = cand
			} else {
				out = append(out, cur)
				cur = w
			}
		}
		out = append(out, cur)
	}
	return out, nil
}
