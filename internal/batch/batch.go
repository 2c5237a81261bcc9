/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package batch reads a JSON job config and generates every design in it.
// Entries are independent, so they run on a small worker pool; each worker
// owns its canvases and per-entry random state.
package batch

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"poddesign/internal/design"
	"poddesign/internal/domain"
	"poddesign/internal/export"
	"poddesign/internal/layout"
	applog "poddesign/internal/log"
	"poddesign/internal/metadata"
	"poddesign/internal/pattern"
	"poddesign/internal/storage"
	"poddesign/internal/telemetry"
)

// Entry is one design job in a batch config.
type Entry struct {
	Type     string   `json:"type,omitempty"` // "text", "pattern" or "niche"; default "text"
	Filename string   `json:"filename,omitempty"`
	Products []string `json:"products,omitempty"`
	Text     string   `json:"text,omitempty"`
	Font     string   `json:"font,omitempty"`
	Colors   string   `json:"colors,omitempty"`
	Palette  string   `json:"palette,omitempty"`
	Layout   string   `json:"layout,omitempty"`
	Shadow   *bool    `json:"shadow,omitempty"`
	Style    string   `json:"style,omitempty"`
	Seed     int64    `json:"seed,omitempty"`
	Theme    string   `json:"theme,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Config is the top-level batch file.
type Config struct {
	Designs []Entry `json:"designs"`
}

// configSchema rejects malformed batch files with field-level messages
// before any rendering starts.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["designs"],
  "properties": {
    "designs": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "properties": {
          "type": {"enum": ["text", "pattern", "niche"]},
          "filename": {"type": "string"},
          "products": {"type": "array", "items": {"type": "string"}},
          "text": {"type": "string"},
          "font": {"type": "string"},
          "colors": {"type": "string"},
          "palette": {"type": "string"},
          "layout": {"enum": ["centered", "stacked", "arced"]},
          "shadow": {"type": "boolean"},
          "style": {"type": "string"},
          "seed": {"type": "integer"},
          "theme": {"type": "string"},
          "tags": {"type": "array", "items": {"type": "string"}}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

// LoadConfig reads, validates and decodes a batch config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read batch config: %w", err)
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return Config{}, fmt.Errorf("validate batch config: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return Config{}, fmt.Errorf("invalid batch config %s: %s", path, strings.Join(msgs, "; "))
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode batch config: %w", err)
	}
	return cfg, nil
}

// Runner executes batch configs.
type Runner struct {
	Fonts        design.FontSource
	OutputDir    string
	TemplatesDir string
	Workers      int     // <= 0 selects 1
	DB           *sql.DB // optional design index
}

// Run generates every entry and returns all written paths (images and
// metadata sidecars). The first entry error aborts remaining work.
func (r *Runner) Run(ctx context.Context, cfg Config) ([]string, error) {
	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}
	l := applog.WithComponent("batch")
	l.Info("batch start", slog.Int("designs", len(cfg.Designs)), slog.Int("workers", workers))
	start := time.Now()

	var (
		mu       sync.Mutex
		paths    []string
		firstErr error
	)
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, entry := range cfg.Designs {
		if ctx.Err() != nil {
			break
		}
		mu.Lock()
		failed := firstErr != nil
		mu.Unlock()
		if failed {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, entry Entry) {
			defer wg.Done()
			defer func() { <-sem }()

			written, err := r.runEntry(ctx, i, entry)
			mu.Lock()
			defer mu.Unlock()
			if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("design %d (%s): %w", i, entry.name(i), err)
				return
			}
			paths = append(paths, written...)
		}(i, entry)
	}
	wg.Wait()
	telemetry.Batch(len(cfg.Designs), workers, time.Since(start), firstErr != nil)

	if firstErr != nil {
		l.Error("batch failed", slog.Any("err", firstErr))
		return paths, firstErr
	}
	if err := ctx.Err(); err != nil {
		return paths, err
	}
	l.Info("batch done", slog.Int("files", len(paths)))
	return paths, nil
}

func (e Entry) name(i int) string {
	if e.Filename != "" {
		return e.Filename
	}
	return fmt.Sprintf("batch_%03d", i)
}

func (e Entry) kind() string {
	if e.Type == "" {
		return "text"
	}
	return e.Type
}

func (e Entry) shadowOn() bool {
	return e.Shadow == nil || *e.Shadow
}

// runEntry renders one entry for all its products and writes images,
// metadata sidecars, and index records.
func (r *Runner) runEntry(ctx context.Context, i int, entry Entry) ([]string, error) {
	gen, err := r.buildGenerator(entry)
	if err != nil {
		return nil, err
	}
	products, err := domain.ParseProducts(strings.Join(entry.Products, ","))
	if err != nil {
		return nil, err
	}

	metaIn := gen.Meta()
	metaIn.ExtraTags = append(metaIn.ExtraTags, entry.Tags...)
	meta := metadata.Generate(metaIn)

	name := entry.name(i)
	var written []string
	for _, p := range products {
		renderStart := time.Now()
		c, err := gen.Generate(p)
		if err != nil {
			return written, err
		}
		path, err := export.SavePNG(c, r.OutputDir, p.Name, name)
		if err != nil {
			return written, err
		}
		telemetry.Render(entry.kind(), p.Name, time.Since(renderStart))
		written = append(written, path)

		sidecar, err := metadata.Save(meta, path)
		if err != nil {
			return written, err
		}
		written = append(written, sidecar)

		if r.DB != nil {
			rec := storage.DesignRecord{
				Name:    name,
				Type:    entry.kind(),
				Product: p.Name,
				Path:    path,
				Text:    entry.Text,
				Style:   entry.Style,
				Seed:    entry.Seed,
			}
			if _, err := storage.RecordDesign(ctx, r.DB, rec); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

func (r *Runner) buildGenerator(entry Entry) (design.Generator, error) {
	switch entry.kind() {
	case "text":
		font := entry.Font
		if font == "" {
			font = "anton"
		}
		h, err := r.Fonts.Resolve(font)
		if err != nil {
			return nil, err
		}
		strat := layout.Strategy(entry.Layout)
		if strat == "" {
			strat = layout.Centered
		}
		text := entry.Text
		if text == "" {
			text = "Design"
		}
		return &design.TextDesign{
			Fonts:   r.Fonts,
			Font:    h,
			Text:    text,
			Color:   entry.Colors,
			Palette: entry.Palette,
			Layout:  strat,
			Shadow:  entry.shadowOn(),
		}, nil
	case "pattern":
		style := entry.Style
		if style == "" {
			style = string(pattern.Geometric)
		}
		return &design.PatternDesign{
			Style:   pattern.Style(style),
			Palette: entry.Palette,
			Seed:    entry.Seed,
			Color:   entry.Colors,
		}, nil
	case "niche":
		theme := entry.Theme
		if theme == "" {
			theme = "motivational"
		}
		tmpl, err := design.LoadTemplate(r.TemplatesDir, theme)
		if err != nil {
			return nil, err
		}
		return &design.NicheDesign{
			Fonts:    r.Fonts,
			Theme:    theme,
			Template: tmpl,
			Text:     entry.Text,
			Seed:     entry.Seed,
		}, nil
	default:
		return nil, fmt.Errorf("unknown design type %q", entry.Type)
	}
}
