/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes finished designs to disk: one PNG per product, plus
// an optional PDF proof sheet for reviewing a batch before upload.
package export

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"poddesign/internal/canvas"
)

// SavePNG writes the finalized canvas as <outDir>/<product>/<name>.png,
// creating directories as needed, and returns the written path.
// Transparent canvases keep their alpha channel; opaque ones are flattened.
func SavePNG(c *canvas.Canvas, outDir, product, name string) (string, error) {
	dir := filepath.Join(outDir, product)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, name+".png")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	if err := png.Encode(f, c.Finalize()); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
