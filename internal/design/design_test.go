/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package design

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"poddesign/internal/canvas"
	"poddesign/internal/domain"
	"poddesign/internal/fontlib"
	"poddesign/internal/layout"
	"poddesign/internal/pattern"
)

// testFonts measures with the file-free basic face and resolves every name.
type testFonts struct{ fontlib.BasicProvider }

func (testFonts) Resolve(string) (fontlib.Handle, error) { return fontlib.Handle{}, nil }

var (
	miniTransparent = domain.ProductSpec{Name: "mini", Width: 200, Height: 200, Transparent: true, MarginPct: 0.05}
	miniOpaque      = domain.ProductSpec{Name: "mini", Width: 200, Height: 200, Transparent: false, MarginPct: 0.05}
)

func anyInk(c *canvas.Canvas) bool {
	pix := c.Image().Pix
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 0 {
			return true
		}
	}
	return false
}

func TestTextDesignTransparentProduct(t *testing.T) {
	d := &TextDesign{Fonts: testFonts{}, Text: "HELLO", Layout: layout.Centered}
	c, err := d.Generate(miniTransparent)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if c.Mode() != canvas.ModeTransparent {
		t.Fatal("transparent product should produce a transparent canvas")
	}
	if !anyInk(c) {
		t.Fatal("no glyphs painted")
	}
	// Corners stay clear on transparent products.
	if a := c.Image().NRGBAAt(0, 0).A; a != 0 {
		t.Fatalf("corner alpha = %d, want 0", a)
	}
}

func TestTextDesignOpaqueBackgroundFilled(t *testing.T) {
	d := &TextDesign{Fonts: testFonts{}, Text: "HELLO", Color: "white-on-black", Layout: layout.Centered}
	c, err := d.Generate(miniOpaque)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	got := c.Image().NRGBAAt(0, 0)
	if got.R != 0 || got.G != 0 || got.B != 0 || got.A != 255 {
		t.Fatalf("corner = %+v, want opaque black", got)
	}
}

func TestTextDesignInfeasiblePropagates(t *testing.T) {
	long := bytes.Repeat([]byte("x"), 500)
	d := &TextDesign{Fonts: testFonts{}, Text: string(long), Layout: layout.Centered}
	_, err := d.Generate(domain.ProductSpec{Name: "tiny", Width: 100, Height: 100, Transparent: true, MarginPct: 0.05})
	if !errors.Is(err, layout.ErrInfeasible) {
		t.Fatalf("err = %v, want ErrInfeasible", err)
	}
}

func TestPatternDesignDeterministic(t *testing.T) {
	d := &PatternDesign{Style: pattern.Geometric, Palette: "neon", Seed: 9}
	a, err := d.Generate(miniTransparent)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := d.Generate(miniTransparent)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.Equal(a.Image().Pix, b.Image().Pix) {
		t.Fatal("same seed produced different pixels")
	}
}

func TestRenderAllKeysByProduct(t *testing.T) {
	d := &PatternDesign{Style: pattern.Grid, Palette: "cool", Seed: 1}
	out, err := RenderAll(d, []domain.ProductSpec{miniTransparent, miniOpaque})
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if len(out) != 1 {
		// both specs share the name "mini"
		t.Fatalf("got %d entries", len(out))
	}
	if _, ok := out["mini"]; !ok {
		t.Fatal("missing product key")
	}
}

func TestNicheDesignBuiltinTheme(t *testing.T) {
	tmpl, err := LoadTemplate(t.TempDir(), "gym")
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	d := &NicheDesign{Fonts: testFonts{}, Theme: "gym", Template: tmpl, Text: "ONE MORE REP"}
	c, err := d.Generate(miniTransparent)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !anyInk(c) {
		t.Fatal("no glyphs painted")
	}
	meta := d.Meta()
	if meta.Theme != "gym" || meta.DesignType != "niche" {
		t.Fatalf("Meta = %+v", meta)
	}
}

func TestNicheDesignPhraseSeeded(t *testing.T) {
	tmpl, _ := LoadTemplate(t.TempDir(), "motivational")
	a := &NicheDesign{Fonts: testFonts{}, Theme: "motivational", Template: tmpl, Seed: 4}
	b := &NicheDesign{Fonts: testFonts{}, Theme: "motivational", Template: tmpl, Seed: 4}
	if a.phrase() != b.phrase() {
		t.Fatalf("same seed picked different phrases: %q vs %q", a.phrase(), b.phrase())
	}
	if a.phrase() == "" {
		t.Fatal("empty phrase")
	}
}

func TestNicheGradientBackground(t *testing.T) {
	tmpl, err := LoadTemplate(t.TempDir(), "retro")
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if tmpl.Style.Background == nil {
		t.Fatal("retro template should carry a gradient")
	}
	d := &NicheDesign{Fonts: testFonts{}, Theme: "retro", Template: tmpl, Text: "RAD"}
	c, err := d.Generate(miniOpaque)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	top := c.Image().NRGBAAt(2, 2)
	bottom := c.Image().NRGBAAt(2, 197)
	if top == bottom {
		t.Fatalf("gradient did not vary: top %+v bottom %+v", top, bottom)
	}
}

func TestLoadTemplateFileOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	doc := `{"phrases": ["Custom Phrase"], "style": {"font": "anton", "layout": "centered"}}`
	if err := os.WriteFile(filepath.Join(dir, "gym.json"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	tmpl, err := LoadTemplate(dir, "gym")
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if len(tmpl.Phrases) != 1 || tmpl.Phrases[0] != "Custom Phrase" {
		t.Fatalf("file did not override builtin: %+v", tmpl)
	}
}

func TestLoadTemplateRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	doc := `{"phrases": [], "style": {"layout": "spiral"}}`
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if _, err := LoadTemplate(dir, "bad"); err == nil {
		t.Fatal("expected schema validation error")
	}
}

func TestLoadTemplateUnknownTheme(t *testing.T) {
	_, err := LoadTemplate(t.TempDir(), "nosuchtheme")
	if !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("err = %v, want ErrUnknownTheme", err)
	}
}

func TestThemesListsBuiltinsAndFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "custom.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	names := Themes(dir)
	var hasCustom, hasGym bool
	for _, n := range names {
		if n == "custom" {
			hasCustom = true
		}
		if n == "gym" {
			hasGym = true
		}
	}
	if !hasCustom || !hasGym {
		t.Fatalf("Themes = %v", names)
	}
}
