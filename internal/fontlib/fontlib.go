/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package fontlib loads TrueType fonts and measures text for the layout
// engine. Font files are resolved by shortname or category; parsed fonts and
// faces are cached per (stem, size) behind a mutex so a library instance can
// be shared read-only across concurrent renders.
package fontlib

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// Handle identifies a loaded typeface by filename stem. Immutable.
type Handle struct {
	Stem string
}

// registry maps shortnames to filename stems.
var registry = map[string]string{
	"russo":            "RussoOne-Regular",
	"russoone":         "RussoOne-Regular",
	"anton":            "Anton-Regular",
	"bebas":            "BebasNeue-Regular",
	"bebasneue":        "BebasNeue-Regular",
	"pacifico":         "Pacifico-Regular",
	"caveat":           "Caveat-VariableFont_wght",
	"shadows":          "ShadowsIntoLight-Regular",
	"shadowsintolight": "ShadowsIntoLight-Regular",
	"patrickhand":      "PatrickHand-Regular",
	"patrick":          "PatrickHand-Regular",
}

// categories groups stems by style class.
var categories = map[string][]string{
	"bold":   {"RussoOne-Regular", "Anton-Regular", "BebasNeue-Regular"},
	"script": {"Pacifico-Regular", "Caveat-VariableFont_wght", "ShadowsIntoLight-Regular"},
	"clean":  {"PatrickHand-Regular"},
}

type faceKey struct {
	stem string
	size float64
}

// Library loads and caches OpenType fonts from a fonts directory.
type Library struct {
	dir string

	mu    sync.Mutex
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

// NewLibrary creates a library reading TTF files from dir.
func NewLibrary(dir string) *Library {
	return &Library{
		dir:   dir,
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

// Resolve maps a shortname or filename stem to a font handle.
func (l *Library) Resolve(name string) (Handle, error) {
	key := strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(name))
	if stem, ok := registry[key]; ok {
		return Handle{Stem: stem}, nil
	}
	if _, err := os.Stat(filepath.Join(l.dir, name+".ttf")); err == nil {
		return Handle{Stem: name}, nil
	}
	return Handle{}, fmt.Errorf("unknown font %q (available: %s)", name, strings.Join(l.Available(), ", "))
}

// ByCategory picks a font from a style category (bold/script/clean).
func (l *Library) ByCategory(category string, index int) (Handle, error) {
	stems, ok := categories[strings.ToLower(category)]
	if !ok || len(stems) == 0 {
		return Handle{}, fmt.Errorf("unknown font category %q", category)
	}
	return Handle{Stem: stems[index%len(stems)]}, nil
}

// Available returns shortnames whose font file is present on disk.
func (l *Library) Available() []string {
	seen := make(map[string]bool)
	var names []string
	for short, stem := range registry {
		if seen[short] {
			continue
		}
		if _, err := os.Stat(filepath.Join(l.dir, stem+".ttf")); err == nil {
			names = append(names, short)
			seen[short] = true
		}
	}
	sort.Strings(names)
	return names
}

// Face returns a sized face for the handle, loading and caching as needed.
func (l *Library) Face(h Handle, size float64) (font.Face, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := faceKey{stem: h.Stem, size: size}
	if f, ok := l.faces[key]; ok {
		return f, nil
	}
	f, err := l.fontLocked(h.Stem)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("create face %s@%g: %w", h.Stem, size, err)
	}
	l.faces[key] = face
	return face, nil
}

// Measure implements Provider using the cached face for the handle.
func (l *Library) Measure(h Handle, text string, size float64) (Extents, error) {
	face, err := l.Face(h, size)
	if err != nil {
		return Extents{}, err
	}
	return MeasureFace(face, text), nil
}

func (l *Library) fontLocked(stem string) (*opentype.Font, error) {
	if f, ok := l.fonts[stem]; ok {
		return f, nil
	}
	path := filepath.Join(l.dir, stem+".ttf")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	l.fonts[stem] = f
	return f, nil
}
