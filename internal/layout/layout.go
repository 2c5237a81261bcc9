/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package layout computes glyph-run placement for the three text strategies:
// centered auto-sized, stacked multi-line, and arced. All measurement goes
// through a fontlib.Provider; the package never touches pixels, it only
// produces poses a canvas can draw.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"poddesign/internal/fontlib"
	"poddesign/internal/vector"
)

// Strategy selects a placement algorithm.
type Strategy string

const (
	Centered Strategy = "centered"
	Stacked  Strategy = "stacked"
	Arced    Strategy = "arced"
)

// ErrInfeasible reports text that overflows the usable bounds even at the
// minimum font size. The caller must change its inputs; retrying cannot help.
var ErrInfeasible = errors.New("layout infeasible: text cannot fit within bounds at minimum font size")

const (
	// MarginPct is the safety margin reserved on each side for print bleed.
	MarginPct = 0.05

	defaultMaxFontSize = 400
	defaultMinFontSize = 24
	defaultLineSpacing = 1.3

	// sizeSearchCap bounds every font-size search loop.
	sizeSearchCap = 64
)

// Spec describes one text layout request.
type Spec struct {
	Text        string
	Font        fontlib.Handle
	Strategy    Strategy
	Shadow      bool
	MaxFontSize float64 // 0 selects the default
	MinFontSize float64 // 0 selects the default floor
	LineSpacing float64 // 0 selects the default factor
}

func (s Spec) maxSize() float64 {
	if s.MaxFontSize > 0 {
		return s.MaxFontSize
	}
	return defaultMaxFontSize
}

func (s Spec) minSize() float64 {
	if s.MinFontSize > 0 {
		return s.MinFontSize
	}
	return defaultMinFontSize
}

func (s Spec) lineSpacing() float64 {
	if s.LineSpacing > 0 {
		return s.LineSpacing
	}
	return defaultLineSpacing
}

// Anchor states how a run's Pos is interpreted when drawing.
type Anchor int

const (
	// AnchorBaseline: Pos is the baseline dot of the run.
	AnchorBaseline Anchor = iota
	// AnchorCenter: Pos is the center of the run's ink box; used by arced
	// runs which are drawn rotated around that center.
	AnchorCenter
)

// GlyphRun is one placed run sharing a font size and baseline.
type GlyphRun struct {
	Text   string
	Pos    vector.Pt
	Angle  float64 // radians; 0 for centered/stacked
	Anchor Anchor
	Ink    vector.Rect // placed ink box on the canvas
}

// Result is the full placement for one request.
type Result struct {
	Runs     []GlyphRun
	FontSize float64
	Ink      vector.Rect // union of all run ink boxes
}

// Layout computes glyph placement for the spec within the canvas bounds.
// The safety margin is applied internally; every returned ink box lies
// inside bounds inset by MarginPct per side.
func Layout(p fontlib.Provider, spec Spec, bounds vector.Rect) (*Result, error) {
	if strings.TrimSpace(spec.Text) == "" {
		return nil, errors.New("empty text")
	}
	if bounds.W <= 0 || bounds.H <= 0 {
		return nil, fmt.Errorf("degenerate bounds %+v", bounds)
	}
	usable := bounds.Inset(bounds.W*MarginPct, bounds.H*MarginPct)

	switch spec.Strategy {
	case Centered, "":
		return layoutBlock(p, spec, usable, 1.0)
	case Stacked:
		return layoutStacked(p, spec, usable)
	case Arced:
		return layoutArced(p, spec, usable)
	default:
		return nil, fmt.Errorf("unknown layout strategy %q", spec.Strategy)
	}
}

// splitLines splits on explicit line breaks, dropping blank lines.
func splitLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	if len(lines) == 0 {
		lines = []string{strings.TrimSpace(text)}
	}
	return lines
}

// lineMetrics is the measured extents of each line at one candidate size.
type lineMetrics struct {
	exts   []fontlib.Extents
	width  float64 // widest line ink
	height float64 // stacked ink height including spacing gaps
}

// measureLines measures all lines at a size. Inter-line gaps scale each
// line's ink height by the spacing factor, except after the last line.
func measureLines(p fontlib.Provider, h fontlib.Handle, lines []string, size, spacing float64) (lineMetrics, error) {
	m := lineMetrics{}
	for i, line := range lines {
		ext, err := p.Measure(h, line, size)
		if err != nil {
			return m, err
		}
		m.exts = append(m.exts, ext)
		if ext.Width > m.width {
			m.width = ext.Width
		}
		if i < len(lines)-1 {
			m.height += ext.Height * spacing
		} else {
			m.height += ext.Height
		}
	}
	return m, nil
}

// searchSize binary-searches the largest integer font size in [min, max]
// satisfying fits. Returns ErrInfeasible when no size fits.
func searchSize(minSize, maxSize float64, fits func(size float64) (bool, error)) (float64, error) {
	lo := int(minSize)
	hi := int(maxSize)
	if hi < lo {
		hi = lo
	}
	best := -1
	for iter := 0; lo <= hi && iter < sizeSearchCap; iter++ {
		mid := (lo + hi) / 2
		ok, err := fits(float64(mid))
		if err != nil {
			return 0, err
		}
		if ok {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if best < 0 {
		return 0, ErrInfeasible
	}
	return float64(best), nil
}

// placeBlock positions measured lines as a centered block inside usable and
// emits one baseline-anchored run per line.
func placeBlock(lines []string, m lineMetrics, size, spacing float64, usable vector.Rect) *Result {
	res := &Result{FontSize: size}
	blockTop := usable.Y + (usable.H-m.height)/2
	y := blockTop
	for i, line := range lines {
		ext := m.exts[i]
		x := usable.X + (usable.W-ext.Width)/2
		run := GlyphRun{
			Text:   line,
			Pos:    vector.Pt{X: x - ext.MinX, Y: y - ext.MinY},
			Anchor: AnchorBaseline,
			Ink:    vector.R(x, y, ext.Width, ext.Height),
		}
		res.Runs = append(res.Runs, run)
		if i == 0 {
			res.Ink = run.Ink
		} else {
			res.Ink = res.Ink.Union(run.Ink)
		}
		if i < len(lines)-1 {
			y += ext.Height * spacing
		}
	}
	return res
}
