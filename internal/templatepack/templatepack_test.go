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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validTemplate = `{
  "category": "test",
  "description": "a test theme",
  "phrases": ["HELLO"],
  "style": {"font": "anton", "layout": "centered"},
  "tags": ["test"]
}`

func TestExportAndInstallPack(t *testing.T) {
	srcDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(srcDir, "ocean.json"), []byte(validTemplate), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatalf("write extra: %v", err)
	}

	zipPath := filepath.Join(t.TempDir(), "pack.zip")
	if err := Export(srcDir, zipPath); err != nil {
		t.Fatalf("export: %v", err)
	}

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	names := map[string]bool{}
	for _, f := range r.File {
		names[f.Name] = true
	}
	_ = r.Close()
	if !names["templatepack.manifest.txt"] {
		t.Fatalf("manifest missing from archive: %v", names)
	}
	if !names["ocean.json"] {
		t.Fatalf("template missing from archive: %v", names)
	}
	if names["notes.txt"] {
		t.Fatalf("non-template file should not be archived")
	}

	destDir := t.TempDir()
	n, err := Install(destDir, zipPath)
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if n != 1 {
		t.Fatalf("installed = %d, want 1", n)
	}
	if _, err := os.Stat(filepath.Join(destDir, "ocean.json")); err != nil {
		t.Fatalf("installed template missing: %v", err)
	}
}

func TestInstallSkipsExisting(t *testing.T) {
	srcDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(srcDir, "ocean.json"), []byte(validTemplate), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	zipPath := filepath.Join(t.TempDir(), "pack.zip")
	if err := Export(srcDir, zipPath); err != nil {
		t.Fatalf("export: %v", err)
	}

	destDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(destDir, "ocean.json"), []byte(`{"local": true}`), 0o644); err != nil {
		t.Fatalf("seed existing: %v", err)
	}
	n, err := Install(destDir, zipPath)
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if n != 0 {
		t.Fatalf("installed = %d, want 0 (existing skipped)", n)
	}
	data, err := os.ReadFile(filepath.Join(destDir, "ocean.json"))
	if err != nil {
		t.Fatalf("read existing: %v", err)
	}
	if !strings.Contains(string(data), "local") {
		t.Fatalf("existing template was overwritten: %s", data)
	}
}

func TestInstallRejectsInvalidTemplate(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "pack.zip")
	zf, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(zf)
	w, err := zw.Create("bad.json")
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	// layout outside the allowed set
	if _, err := w.Write([]byte(`{"phrases": ["X"], "style": {"layout": "spiral"}}`)); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := zf.Close(); err != nil {
		t.Fatalf("file close: %v", err)
	}

	if _, err := Install(t.TempDir(), zipPath); err == nil {
		t.Fatalf("expected invalid template to abort install")
	}
}

func TestExportRequiresArgs(t *testing.T) {
	if err := Export("", "x.zip"); err == nil {
		t.Fatalf("expected error for empty templatesDir")
	}
	if err := Export(t.TempDir(), ""); err == nil {
		t.Fatalf("expected error for empty destZipPath")
	}
	if _, err := Install("", "x.zip"); err == nil {
		t.Fatalf("expected error for empty templatesDir")
	}
	if _, err := Install(t.TempDir(), ""); err == nil {
		t.Fatalf("expected error for empty packZipPath")
	}
}
