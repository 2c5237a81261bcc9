/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package palette resolves color shortcuts and named palettes into concrete
// RGBA values. Palettes are ordered; pattern rendering depends on that order
// for deterministic color selection.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownPalette reports a palette name with no registered color list.
var ErrUnknownPalette = errors.New("unknown palette")

// ParseHex parses "#RRGGBB" or "#RRGGBBAA" into a non-premultiplied color.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	if len(h) == 6 {
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustHex parses a hex color and panics on failure. For static tables only.
func MustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Pair is a foreground/background combination. Background may be absent for
// transparent products.
type Pair struct {
	FG    color.NRGBA
	BG    color.NRGBA
	HasBG bool
}

// shortcuts maps a named combination to (foreground, background) hex values.
// An empty background means transparent.
var shortcuts = map[string][2]string{
	"white-on-black":       {"#FFFFFF", "#000000"},
	"black-on-white":       {"#000000", "#FFFFFF"},
	"neon-on-dark":         {"#39FF14", "#1A1A2E"},
	"gold-on-black":        {"#FFD700", "#000000"},
	"pink-on-dark":         {"#FF69B4", "#2D1B3D"},
	"cyan-on-dark":         {"#00FFFF", "#0D1B2A"},
	"white-on-transparent": {"#FFFFFF", ""},
	"black-on-transparent": {"#000000", ""},
	"red-on-black":         {"#FF3333", "#000000"},
	"sunset":               {"#FF6B35", "#1A0A2E"},
}

// palettes are ordered lists of foreground-friendly colors.
var palettes = map[string][]string{
	"warm":   {"#FF6B35", "#F7931E", "#FFD700", "#FF3333", "#FF69B4"},
	"cool":   {"#00BFFF", "#00FFFF", "#7B68EE", "#4169E1", "#48D1CC"},
	"neon":   {"#39FF14", "#FF073A", "#00FFFF", "#FF61F6", "#FFE600"},
	"pastel": {"#FFB3BA", "#BAFFC9", "#BAE1FF", "#FFFFBA", "#E8BAFF"},
	"earth":  {"#8B4513", "#D2691E", "#DEB887", "#556B2F", "#BC8F8F"},
}

// Palette returns the ordered color list for a named palette.
func Palette(name string) ([]color.NRGBA, error) {
	hexes, ok := palettes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownPalette, name, strings.Join(Names(), ", "))
	}
	out := make([]color.NRGBA, len(hexes))
	for i, h := range hexes {
		out[i] = MustHex(h)
	}
	return out, nil
}

// Names returns the sorted list of registered palette names.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ShortcutNames returns the sorted list of registered color shortcuts.
func ShortcutNames() []string {
	names := make([]string, 0, len(shortcuts))
	for n := range shortcuts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ResolvePair resolves CLI color arguments into a foreground/background pair.
// Resolution order: shortcut name, raw hex, first palette color, default
// white. When transparent is set the background is always dropped.
func ResolvePair(colorArg, paletteArg string, transparent bool) Pair {
	if colorArg != "" {
		key := strings.ToLower(strings.ReplaceAll(colorArg, " ", "-"))
		if sc, ok := shortcuts[key]; ok {
			return makePair(sc[0], sc[1], transparent)
		}
		if strings.HasPrefix(colorArg, "#") {
			if fg, err := ParseHex(colorArg); err == nil {
				p := Pair{FG: fg}
				if !transparent {
					p.BG = MustHex("#000000")
					p.HasBG = true
				}
				return p
			}
		}
	}
	if paletteArg != "" {
		if cols, err := Palette(paletteArg); err == nil {
			p := Pair{FG: cols[0]}
			if !transparent {
				p.BG = MustHex("#1A1A2E")
				p.HasBG = true
			}
			return p
		}
	}
	return makePair("#FFFFFF", "#000000", transparent)
}

func makePair(fgHex, bgHex string, transparent bool) Pair {
	p := Pair{FG: MustHex(fgHex)}
	if bgHex != "" && !transparent {
		p.BG = MustHex(bgHex)
		p.HasBG = true
	}
	return p
}
