/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package design

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"poddesign/internal/canvas"
	"poddesign/internal/effects"
	"poddesign/internal/palette"
	"poddesign/internal/vector"
)

// ErrUnknownTheme reports a theme with neither a template file nor a builtin.
var ErrUnknownTheme = errors.New("unknown theme")

// Template is a niche theme definition, loaded from <templates>/<theme>.json
// or taken from the builtin set.
type Template struct {
	Category    string        `json:"category,omitempty"`
	Description string        `json:"description,omitempty"`
	Phrases     []string      `json:"phrases"`
	Style       TemplateStyle `json:"style"`
	Tags        []string      `json:"tags,omitempty"`
}

// TemplateStyle carries the rendering choices of a template. Zero values
// fall back to the defaults in withDefaults.
type TemplateStyle struct {
	Font       string        `json:"font,omitempty"`
	Colors     string        `json:"colors,omitempty"`
	Layout     string        `json:"layout,omitempty"`
	Shadow     *bool         `json:"shadow,omitempty"`
	Background *GradientSpec `json:"background,omitempty"`
}

// GradientSpec describes an optional background gradient for opaque products.
type GradientSpec struct {
	Kind   string   `json:"kind"` // "linear" or "radial"
	Colors []string `json:"colors"`
	Angle  float64  `json:"angle,omitempty"` // linear direction, degrees
}

func (s TemplateStyle) withDefaults() TemplateStyle {
	if s.Font == "" {
		s.Font = "anton"
	}
	if s.Colors == "" {
		s.Colors = "white-on-black"
	}
	if s.Layout == "" {
		s.Layout = "centered"
	}
	return s
}

func (s TemplateStyle) shadowOn() bool {
	return s.Shadow == nil || *s.Shadow
}

// templateSchema validates template files before decoding, so a typo in a
// hand-edited JSON fails with a field-level message instead of a silent
// zero value.
const templateSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["phrases", "style"],
  "properties": {
    "category": {"type": "string"},
    "description": {"type": "string"},
    "phrases": {"type": "array", "items": {"type": "string", "minLength": 1}, "minItems": 1},
    "tags": {"type": "array", "items": {"type": "string"}},
    "style": {
      "type": "object",
      "properties": {
        "font": {"type": "string"},
        "colors": {"type": "string"},
        "layout": {"enum": ["centered", "stacked", "arced"]},
        "shadow": {"type": "boolean"},
        "background": {
          "type": "object",
          "required": ["kind", "colors"],
          "properties": {
            "kind": {"enum": ["linear", "radial"]},
            "colors": {"type": "array", "items": {"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"}, "minItems": 2},
            "angle": {"type": "number"}
          },
          "additionalProperties": false
        }
      },
      "additionalProperties": false
    }
  },
  "additionalProperties": false
}`

// ValidateTemplate checks raw template JSON against the schema.
func ValidateTemplate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(templateSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate template: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid template: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// LoadTemplate resolves a theme to its template. Files under dir override
// builtins of the same name.
func LoadTemplate(dir, theme string) (Template, error) {
	path := filepath.Join(dir, theme+".json")
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := ValidateTemplate(data); err != nil {
			return Template{}, fmt.Errorf("template %s: %w", path, err)
		}
		var t Template
		if err := json.Unmarshal(data, &t); err != nil {
			return Template{}, fmt.Errorf("template %s: %w", path, err)
		}
		return t, nil
	case os.IsNotExist(err):
		if t, ok := builtinTemplates[theme]; ok {
			return t, nil
		}
		return Template{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownTheme, theme, strings.Join(Themes(dir), ", "))
	default:
		return Template{}, fmt.Errorf("read template: %w", err)
	}
}

// Themes lists available theme names: template files in dir plus builtins.
func Themes(dir string) []string {
	set := map[string]bool{}
	for name := range builtinTemplates {
		set[name] = true
	}
	if entries, err := os.ReadDir(dir); err == nil {
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
				set[strings.TrimSuffix(e.Name(), ".json")] = true
			}
		}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var builtinTemplates = map[string]Template{
	"motivational": {
		Category: "inspiration",
		Phrases: []string{
			"Dream Big\nWork Hard",
			"No Excuses",
			"Make It Happen",
			"Progress Over Perfection",
		},
		Style: TemplateStyle{Font: "anton", Colors: "white-on-black", Layout: "stacked"},
		Tags:  []string{"motivation", "inspiration", "hustle"},
	},
	"gym": {
		Category: "fitness",
		Phrases: []string{
			"Lift Heavy",
			"One More Rep",
			"Beast Mode",
			"Sore Today\nStrong Tomorrow",
		},
		Style: TemplateStyle{Font: "russo", Colors: "red-on-black", Layout: "stacked"},
		Tags:  []string{"gym", "fitness", "workout", "lifting"},
	},
	"coffee": {
		Category: "food",
		Phrases: []string{
			"But First Coffee",
			"Powered By Caffeine",
			"Espresso Yourself",
		},
		Style: TemplateStyle{Font: "pacifico", Colors: "gold-on-black", Layout: "arced"},
		Tags:  []string{"coffee", "caffeine", "espresso"},
	},
	"retro": {
		Category: "aesthetic",
		Phrases: []string{
			"Stay Rad",
			"Good Vibes Only",
			"Vintage Soul",
		},
		Style: TemplateStyle{
			Font:   "bebas",
			Colors: "sunset",
			Layout: "arced",
			Background: &GradientSpec{
				Kind:   "linear",
				Colors: []string{"#1A0A2E", "#FF6B35", "#FFD700"},
				Angle:  90,
			},
		},
		Tags: []string{"retro", "vintage", "sunset", "80s"},
	},
}

// paintGradient fills the whole canvas with the template's background
// gradient. Stops are spread evenly over the color list.
func paintGradient(c *canvas.Canvas, g GradientSpec) error {
	stops := make([]effects.Stop, len(g.Colors))
	for i, hex := range g.Colors {
		col, err := palette.ParseHex(hex)
		if err != nil {
			return fmt.Errorf("gradient color %q: %w", hex, err)
		}
		off := 0.0
		if len(g.Colors) > 1 {
			off = float64(i) / float64(len(g.Colors)-1)
		}
		stops[i] = effects.Stop{Offset: off, Color: col}
	}
	b := c.Bounds()
	switch g.Kind {
	case "radial":
		effects.Radial(c, b, b.Center(), math.Max(b.W, b.H)/2, stops)
	default:
		rad := g.Angle * math.Pi / 180
		dir := vector.Pt{X: math.Cos(rad), Y: math.Sin(rad)}
		half := (math.Abs(dir.X)*b.W + math.Abs(dir.Y)*b.H) / 2
		center := b.Center()
		start := vector.Pt{X: center.X - dir.X*half, Y: center.Y - dir.Y*half}
		end := vector.Pt{X: center.X + dir.X*half, Y: center.Y + dir.Y*half}
		effects.Linear(c, b, start, end, stops)
	}
	return nil
}
