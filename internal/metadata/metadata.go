/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package metadata derives upload listing text (title, description, tags)
// from a design's inputs and writes it as a JSON sidecar next to the image.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// maxTags caps the tag list; marketplaces reject longer lists.
const maxTags = 15

// titleLimit is where long design text gets truncated in titles.
const titleLimit = 60

// Meta is the listing sidecar written next to each exported design.
type Meta struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Input carries everything the generator knows about a design.
type Input struct {
	Text       string
	DesignType string // "text", "pattern" or "niche"
	Theme      string
	Style      string
	ExtraTags  []string
}

var wordRe = regexp.MustCompile(`[a-zA-Z]+`)

// Generate builds listing metadata. Output is deterministic: tags come out
// sorted and capped at the marketplace limit.
func Generate(in Input) Meta {
	clean := strings.ReplaceAll(strings.TrimSpace(in.Text), "\n", " ")
	return Meta{
		Title:       title(clean, in),
		Description: description(clean, in),
		Tags:        tags(clean, in),
	}
}

// Save writes the sidecar next to designPath, swapping the extension for
// .json, and returns the sidecar path.
func Save(m Meta, designPath string) (string, error) {
	ext := filepath.Ext(designPath)
	sidecar := strings.TrimSuffix(designPath, ext) + ".json"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(sidecar, data, 0o644); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	return sidecar, nil
}

func title(clean string, in Input) string {
	if in.DesignType == "pattern" {
		return "Abstract Pattern Design"
	}
	short := clean
	if utf8.RuneCountInString(short) > titleLimit {
		short = strings.TrimSpace(string([]rune(short)[:titleLimit]))
		if i := strings.LastIndex(short, " "); i > 0 {
			short = short[:i]
		}
		short += "..."
	}
	if in.Theme != "" {
		return fmt.Sprintf("%s - %s Design", short, titleCase(in.Theme))
	}
	return short + " - Typography Design"
}

func description(clean string, in Input) string {
	var parts []string
	switch in.DesignType {
	case "pattern":
		style := in.Style
		if style == "" {
			style = "geometric"
		}
		parts = append(parts, fmt.Sprintf("Abstract %s pattern design.", style))
	case "niche":
		if in.Theme != "" {
			parts = append(parts, fmt.Sprintf("%q - %s themed design.", clean, in.Theme))
			break
		}
		fallthrough
	default:
		parts = append(parts, fmt.Sprintf("%q typography design.", clean))
	}
	parts = append(parts,
		"Available on t-shirts, stickers, posters, and more.",
		"High-quality print-on-demand artwork.")
	return strings.Join(parts, " ")
}

func tags(clean string, in Input) []string {
	set := map[string]bool{}
	for _, w := range wordRe.FindAllString(strings.ToLower(clean), -1) {
		if len(w) >= 3 {
			set[w] = true
		}
	}
	switch in.DesignType {
	case "text":
		for _, t := range []string{"typography", "quote", "text-design", "lettering"} {
			set[t] = true
		}
	case "pattern":
		for _, t := range []string{"pattern", "abstract", "geometric"} {
			set[t] = true
		}
		if in.Style != "" {
			set[strings.ToLower(in.Style)] = true
		}
	case "niche":
		set["themed"] = true
		set["niche"] = true
	}
	if in.Theme != "" {
		set[strings.ToLower(in.Theme)] = true
	}
	for _, t := range []string{"print-on-demand", "design", "art"} {
		set[t] = true
	}
	for _, t := range in.ExtraTags {
		set[strings.ToLower(t)] = true
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	if len(out) > maxTags {
		out = out[:maxTags]
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
