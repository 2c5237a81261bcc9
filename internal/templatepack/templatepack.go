/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package templatepack

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"poddesign/internal/design"
	applog "poddesign/internal/log"
)

const manifestName = "templatepack.manifest.txt"

// Export zips all theme templates (*.json) from the templates directory into a
// single .zip file. The archive carries a small manifest at the root named
// templatepack.manifest.txt for quick human inspection. If the templates
// directory does not exist or is empty, the archive still gets created with
// only the manifest.
func Export(templatesDir string, destZipPath string) error {
	l := applog.WithOperation(applog.WithComponent("templatepack"), "export").With(slog.String("dir", templatesDir))
	if strings.TrimSpace(templatesDir) == "" {
		return errors.New("templatesDir is required")
	}
	if strings.TrimSpace(destZipPath) == "" {
		return errors.New("destZipPath is required")
	}
	if err := os.MkdirAll(templatesDir, 0o755); err != nil {
		return fmt.Errorf("ensure templates dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(destZipPath), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}
	// On Windows, remove destination if present before create
	_ = os.Remove(destZipPath)

	zf, err := os.Create(destZipPath)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer func() { _ = zf.Close() }()
	zw := zip.NewWriter(zf)
	defer func() { _ = zw.Close() }()

	manifest := fmt.Sprintf("poddesign Template Pack\nCreated: %s\nSource: %s\n\nContents are theme template JSON files for the niche generator.\n",
		time.Now().Format(time.RFC3339), templatesDir)
	w, err := zw.Create(manifestName)
	if err != nil {
		return fmt.Errorf("add manifest: %w", err)
	}
	if _, err := w.Write([]byte(manifest)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	entries, err := os.ReadDir(templatesDir)
	if err != nil {
		return fmt.Errorf("read templates dir: %w", err)
	}
	added := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".json") {
			continue
		}
		fw, err := zw.Create(e.Name())
		if err != nil {
			return fmt.Errorf("build zip: %w", err)
		}
		f, err := os.Open(filepath.Join(templatesDir, e.Name()))
		if err != nil {
			return fmt.Errorf("build zip: %w", err)
		}
		if _, err := io.Copy(fw, f); err != nil {
			_ = f.Close()
			return fmt.Errorf("build zip: %w", err)
		}
		_ = f.Close()
		added++
	}
	l.Info("template pack exported", slog.Int("templates", added), slog.String("zip", destZipPath))
	return nil
}

// Install extracts the given .zip pack into the templates directory. Every
// template is validated against the theme template schema before it is
// written; an invalid template aborts the install. Existing files are not
// overwritten, they are skipped. Returns the count of templates installed
// (skipped files are not counted).
func Install(templatesDir string, packZipPath string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("templatepack"), "install").With(slog.String("dir", templatesDir))
	if strings.TrimSpace(templatesDir) == "" {
		return 0, errors.New("templatesDir is required")
	}
	if strings.TrimSpace(packZipPath) == "" {
		return 0, errors.New("packZipPath is required")
	}
	if err := os.MkdirAll(templatesDir, 0o755); err != nil {
		return 0, fmt.Errorf("ensure templates dir: %w", err)
	}

	r, err := zip.OpenReader(packZipPath)
	if err != nil {
		return 0, fmt.Errorf("open pack: %w", err)
	}
	defer func() { _ = r.Close() }()

	installed := 0
	for _, f := range r.File {
		if f.FileInfo().IsDir() || f.Name == manifestName {
			continue
		}
		// Flatten: templates live at the archive root; nested paths keep
		// only their base name so a pack cannot write outside the dir.
		name := filepath.Base(filepath.FromSlash(f.Name))
		if !strings.HasSuffix(strings.ToLower(name), ".json") {
			continue
		}
		targetPath := filepath.Join(templatesDir, name)
		if _, err := os.Stat(targetPath); err == nil {
			l.Warn("skip existing template", slog.String("path", targetPath))
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return installed, err
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return installed, err
		}
		if err := design.ValidateTemplate(data); err != nil {
			return installed, fmt.Errorf("template %s: %w", name, err)
		}
		if err := os.WriteFile(targetPath, data, 0o644); err != nil {
			return installed, err
		}
		installed++
	}
	l.Info("template pack installed", slog.Int("templates", installed))
	return installed, nil
}
