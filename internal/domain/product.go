/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package domain defines the product targets a design can be rendered for.
// Dimensions are fixed per product and are inputs to the rendering core,
// never derived by it.
package domain

import (
	"fmt"
	"sort"
	"strings"

	"poddesign/internal/vector"
)

// ProductSpec describes one upload target: canvas size, background mode and
// the bleed margin reserved on each side.
type ProductSpec struct {
	Name        string
	Width       int
	Height      int
	Transparent bool
	MarginPct   float64 // safe zone on each side, fraction of the dimension
}

// Bounds returns the full canvas rectangle.
func (p ProductSpec) Bounds() vector.Rect {
	return vector.R(0, 0, float64(p.Width), float64(p.Height))
}

// SafeZone returns the usable rectangle with the bleed margin removed.
func (p ProductSpec) SafeZone() vector.Rect {
	mx := float64(p.Width) * p.MarginPct
	my := float64(p.Height) * p.MarginPct
	return p.Bounds().Inset(mx, my)
}

// products is the fixed registry of upload targets.
var products = map[string]ProductSpec{
	"tshirt":  {Name: "tshirt", Width: 2875, Height: 3900, Transparent: true, MarginPct: 0.05},
	"sticker": {Name: "sticker", Width: 2800, Height: 2800, Transparent: true, MarginPct: 0.05},
	"poster":  {Name: "poster", Width: 3840, Height: 3840, Transparent: false, MarginPct: 0.05},
}

// Product looks up a product spec by name.
func Product(name string) (ProductSpec, error) {
	p, ok := products[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ProductSpec{}, fmt.Errorf("unknown product %q (available: %s)", name, strings.Join(ProductNames(), ", "))
	}
	return p, nil
}

// ProductNames returns the sorted registry keys.
func ProductNames() []string {
	names := make([]string, 0, len(products))
	for n := range products {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseProducts parses a comma-separated product list; empty input selects
// the default target.
func ParseProducts(arg string) ([]ProductSpec, error) {
	if strings.TrimSpace(arg) == "" {
		arg = "tshirt"
	}
	var specs []ProductSpec
	for _, part := range strings.Split(arg, ",") {
		p, err := Product(part)
		if err != nil {
			return nil, err
		}
		specs = append(specs, p)
	}
	return specs, nil
}
