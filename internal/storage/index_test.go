/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestOpenIndexCreatesWALDatabase(t *testing.T) {
	root := t.TempDir()
	db, err := OpenIndex(root)
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(IndexPath(root)); err != nil {
		t.Fatalf("index file missing: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var mode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode;").Scan(&mode); err != nil {
		t.Fatalf("read journal_mode: %v", err)
	}
	if mode != "wal" && mode != "WAL" {
		t.Fatalf("journal_mode = %s, want WAL", mode)
	}

	var schema int
	if err := db.QueryRowContext(ctx, "SELECT schema FROM version WHERE id=1").Scan(&schema); err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if schema != schemaVersion {
		t.Fatalf("schema = %d, want %d", schema, schemaVersion)
	}
}

func TestOpenIndexIsIdempotent(t *testing.T) {
	root := t.TempDir()
	db, err := OpenIndex(root)
	if err != nil {
		t.Fatalf("first OpenIndex: %v", err)
	}
	db.Close()

	db, err = OpenIndex(root)
	if err != nil {
		t.Fatalf("second OpenIndex: %v", err)
	}
	db.Close()
}

func TestOpenIndexRejectsEmptyRoot(t *testing.T) {
	if _, err := OpenIndex("  "); err == nil {
		t.Fatal("expected error for empty root")
	}
}

func TestRecordAndListDesigns(t *testing.T) {
	root := t.TempDir()
	db, err := OpenIndex(root)
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	recs := []DesignRecord{
		{Name: "quote1", Type: "text", Product: "tshirt", Path: "out/tshirt/quote1.png", Text: "HI", CreatedAt: base},
		{Name: "pat1", Type: "pattern", Product: "poster", Path: "out/poster/pat1.png", Style: "grid", Seed: 42, CreatedAt: base.Add(time.Minute)},
		{Name: "quote2", Type: "text", Product: "sticker", Path: "out/sticker/quote2.png", Text: "YO", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, rec := range recs {
		if _, err := RecordDesign(ctx, db, rec); err != nil {
			t.Fatalf("RecordDesign(%s): %v", rec.Name, err)
		}
	}

	all, err := ListDesigns(ctx, db, "", 0)
	if err != nil {
		t.Fatalf("ListDesigns: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d designs, want 3", len(all))
	}
	if all[0].Name != "quote2" {
		t.Fatalf("newest first: got %q", all[0].Name)
	}

	texts, err := ListDesigns(ctx, db, "text", 0)
	if err != nil {
		t.Fatalf("ListDesigns(text): %v", err)
	}
	if len(texts) != 2 {
		t.Fatalf("got %d text designs, want 2", len(texts))
	}

	limited, err := ListDesigns(ctx, db, "", 1)
	if err != nil {
		t.Fatalf("ListDesigns(limit): %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("got %d designs, want 1", len(limited))
	}

	pat := all[1]
	if pat.Style != "grid" || pat.Seed != 42 {
		t.Fatalf("pattern fields lost: %+v", pat)
	}
	if !pat.CreatedAt.Equal(base.Add(time.Minute)) {
		t.Fatalf("created_at mismatch: %v", pat.CreatedAt)
	}
}
