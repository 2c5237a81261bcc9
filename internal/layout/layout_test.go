/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/image/font"

	"poddesign/internal/fontlib"
	"poddesign/internal/vector"
)

// scaledProvider is a measurement stub whose extents scale linearly with the
// font size: every rune advances 0.6*size and the line is size tall with the
// baseline 0.8*size below the ink top. That makes size searches observable
// without loading a real font.
type scaledProvider struct{}

func (scaledProvider) Face(h fontlib.Handle, size float64) (font.Face, error) {
	return nil, errors.New("scaledProvider has no faces")
}

func (scaledProvider) Measure(h fontlib.Handle, text string, size float64) (fontlib.Extents, error) {
	runes := []rune(text)
	adv := 0.6 * size
	ext := fontlib.Extents{
		Width:  adv * float64(len(runes)),
		Height: size,
		MinX:   0,
		MinY:   -0.8 * size,
	}
	for range runes {
		ext.Advances = append(ext.Advances, adv)
	}
	return ext, nil
}

func squareBounds(side float64) vector.Rect {
	return vector.R(0, 0, side, side)
}

func TestCenteredShortTextReachesMaxSize(t *testing.T) {
	res, err := Layout(scaledProvider{}, Spec{Text: "HI", Strategy: Centered}, squareBounds(1000))
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	// "HI" at the 400 cap is 480x400 ink inside a 900x900 usable area, so
	// the search must max out rather than stop early.
	if res.FontSize != 400 {
		t.Fatalf("FontSize = %v, want 400", res.FontSize)
	}
	if len(res.Runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(res.Runs))
	}
}

func TestCenteredInkStaysInsideMargin(t *testing.T) {
	bounds := squareBounds(1000)
	res, err := Layout(scaledProvider{}, Spec{Text: "WIDE TEXT SAMPLE", Strategy: Centered}, bounds)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	usable := bounds.Inset(bounds.W*MarginPct, bounds.H*MarginPct)
	if !usable.ContainsRect(res.Ink) {
		t.Fatalf("ink %+v escapes usable %+v", res.Ink, usable)
	}
}

func TestCenteredBlockIsCentered(t *testing.T) {
	bounds := squareBounds(1000)
	res, err := Layout(scaledProvider{}, Spec{Text: "MID", Strategy: Centered}, bounds)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	c := res.Ink.Center()
	if diff := c.X - 500; diff > 1 || diff < -1 {
		t.Fatalf("ink center x = %v, want ~500", c.X)
	}
	if diff := c.Y - 500; diff > 1 || diff < -1 {
		t.Fatalf("ink center y = %v, want ~500", c.Y)
	}
}

func TestOverlongTextIsInfeasible(t *testing.T) {
	text := strings.Repeat("x", 500)
	for _, strat := range []Strategy{Centered, Stacked} {
		_, err := Layout(scaledProvider{}, Spec{Text: text, Strategy: strat}, squareBounds(100))
		if !errors.Is(err, ErrInfeasible) {
			t.Fatalf("%s: err = %v, want ErrInfeasible", strat, err)
		}
	}
}

func TestStackedSplitsOnLineBreaks(t *testing.T) {
	bounds := squareBounds(1000)
	res, err := Layout(scaledProvider{}, Spec{Text: "ONE\nTWO\nTHREE", Strategy: Stacked}, bounds)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(res.Runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(res.Runs))
	}
	usable := bounds.Inset(bounds.W*MarginPct, bounds.H*MarginPct)
	if !usable.ContainsRect(res.Ink) {
		t.Fatalf("ink %+v escapes usable %+v", res.Ink, usable)
	}
	for i := 1; i < len(res.Runs); i++ {
		if res.Runs[i].Ink.Y <= res.Runs[i-1].Ink.Y {
			t.Fatalf("run %d not below run %d", i, i-1)
		}
	}
}

func TestStackedSharesOneSizeAcrossLines(t *testing.T) {
	// The long line must constrain the short line's size too.
	long, err := Layout(scaledProvider{}, Spec{Text: "A\nA VERY MUCH LONGER LINE", Strategy: Stacked, LineSpacing: 1.3}, squareBounds(1000))
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	short, err := Layout(scaledProvider{}, Spec{Text: "A\nB", Strategy: Stacked, LineSpacing: 1.3}, squareBounds(1000))
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if long.FontSize >= short.FontSize {
		t.Fatalf("long block size %v should be below short block size %v", long.FontSize, short.FontSize)
	}
}

func TestStackedWrapsOverflowingLine(t *testing.T) {
	// 40 words at the floor size cannot fit one usable row, so the line
	// has to wrap into several runs.
	words := make([]string, 40)
	for i := range words {
		words[i] = "word"
	}
	res, err := Layout(scaledProvider{}, Spec{Text: strings.Join(words, " "), Strategy: Stacked}, squareBounds(1000))
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(res.Runs) < 2 {
		t.Fatalf("got %d runs, want wrapped lines", len(res.Runs))
	}
}

func TestArcedAnglesStrictlyIncrease(t *testing.T) {
	res, err := Layout(scaledProvider{}, Spec{Text: "CURVED", Strategy: Arced}, squareBounds(1000))
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(res.Runs) != 6 {
		t.Fatalf("got %d runs, want 6", len(res.Runs))
	}
	for i := 1; i < len(res.Runs); i++ {
		if res.Runs[i].Angle <= res.Runs[i-1].Angle {
			t.Fatalf("angle[%d]=%v not above angle[%d]=%v", i, res.Runs[i].Angle, i-1, res.Runs[i-1].Angle)
		}
	}
}

func TestArcedArcIsCenteredOnTop(t *testing.T) {
	res, err := Layout(scaledProvider{}, Spec{Text: "ARC", Strategy: Arced}, squareBounds(1000))
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	// The middle rune sits at the top of the circle: tangent angle ~0.
	mid := res.Runs[1]
	if mid.Angle > 0.05 || mid.Angle < -0.05 {
		t.Fatalf("middle rune angle = %v, want ~0", mid.Angle)
	}
	first, last := res.Runs[0], res.Runs[2]
	if first.Pos.X >= last.Pos.X {
		t.Fatalf("first rune x %v should be left of last %v", first.Pos.X, last.Pos.X)
	}
	if first.Pos.Y <= mid.Pos.Y || last.Pos.Y <= mid.Pos.Y {
		t.Fatalf("middle rune should be highest: first %v mid %v last %v", first.Pos.Y, mid.Pos.Y, last.Pos.Y)
	}
}

func TestArcedShrinksToFit(t *testing.T) {
	long, err := Layout(scaledProvider{}, Spec{Text: "A VERY MUCH LONGER ARCED HEADLINE SAMPLE TEXT", Strategy: Arced}, squareBounds(1000))
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	short, err := Layout(scaledProvider{}, Spec{Text: "ARC", Strategy: Arced}, squareBounds(1000))
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if long.FontSize >= short.FontSize {
		t.Fatalf("long arc size %v should be below short arc size %v", long.FontSize, short.FontSize)
	}
}

func TestArcedRunsStayInsideMargin(t *testing.T) {
	bounds := squareBounds(1000)
	res, err := Layout(scaledProvider{}, Spec{Text: "CURVED TITLE", Strategy: Arced}, bounds)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	usable := bounds.Inset(bounds.W*MarginPct, bounds.H*MarginPct)
	for i, run := range res.Runs {
		if !usable.ContainsRect(run.Ink) {
			t.Fatalf("run %d ink %+v escapes usable %+v", i, run.Ink, usable)
		}
	}
}

func TestUnknownStrategyRejected(t *testing.T) {
	if _, err := Layout(scaledProvider{}, Spec{Text: "X", Strategy: "spiral"}, squareBounds(100)); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestEmptyTextRejected(t *testing.T) {
	if _, err := Layout(scaledProvider{}, Spec{Text: "  \n "}, squareBounds(100)); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestSameSpecIsDeterministic(t *testing.T) {
	spec := Spec{Text: "REPEAT", Strategy: Centered}
	a, err := Layout(scaledProvider{}, spec, squareBounds(800))
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	b, err := Layout(scaledProvider{}, spec, squareBounds(800))
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if a.FontSize != b.FontSize || len(a.Runs) != len(b.Runs) {
		t.Fatalf("results differ: %+v vs %+v", a, b)
	}
	for i := range a.Runs {
		if a.Runs[i] != b.Runs[i] {
			t.Fatalf("run %d differs: %+v vs %+v", i, a.Runs[i], b.Runs[i])
		}
	}
}
