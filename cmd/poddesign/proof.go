/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"poddesign/internal/config"
	"poddesign/internal/export"
)

// writeProofSheet collects the batch's PNG outputs into one review PDF at
// <output>/proof.pdf.
func writeProofSheet(cfg config.AppConfig, paths []string) (string, error) {
	var entries []export.ProofEntry
	for _, p := range paths {
		if !strings.HasSuffix(p, ".png") {
			continue
		}
		f, err := os.Open(p)
		if err != nil {
			return "", fmt.Errorf("open %s: %w", p, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", p, err)
		}
		entries = append(entries, export.ProofEntry{
			Product: filepath.Base(filepath.Dir(p)),
			Title:   strings.TrimSuffix(filepath.Base(p), ".png"),
			Image:   img,
		})
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("no images for proof sheet")
	}
	out := filepath.Join(cfg.Paths.OutputDir, "proof.pdf")
	if err := export.ProofSheet(out, entries); err != nil {
		return "", err
	}
	return out, nil
}
