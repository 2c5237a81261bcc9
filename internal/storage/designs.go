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
	"database/sql"
	"fmt"
	"time"
)

// DesignRecord is one generated design file as cataloged in the index.
type DesignRecord struct {
	ID        int64
	Name      string
	Type      string // "text", "pattern" or "niche"
	Product   string
	Path      string
	Text      string
	Style     string
	Seed      int64
	CreatedAt time.Time
}

// RecordDesign inserts a record and returns its row id. CreatedAt defaults
// to the current time when zero.
func RecordDesign(ctx context.Context, db *sql.DB, rec DesignRecord) (int64, error) {
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO designs (name, type, product, path, text, style, seed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Name, rec.Type, rec.Product, rec.Path, rec.Text, rec.Style, rec.Seed,
		created.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("record design: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record design id: %w", err)
	}
	return id, nil
}

// ListDesigns returns cataloged designs, newest first. An empty typeFilter
// matches all types; limit <= 0 means no limit.
func ListDesigns(ctx context.Context, db *sql.DB, typeFilter string, limit int) ([]DesignRecord, error) {
	q := `SELECT id, name, type, product, path, COALESCE(text,''), COALESCE(style,''), COALESCE(seed,0), created_at
	      FROM designs`
	var args []any
	if typeFilter != "" {
		q += ` WHERE type = ?`
		args = append(args, typeFilter)
	}
	q += ` ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	defer rows.Close()

	var out []DesignRecord
	for rows.Next() {
		var rec DesignRecord
		var created string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Type, &rec.Product, &rec.Path, &rec.Text, &rec.Style, &rec.Seed, &created); err != nil {
			return nil, fmt.Errorf("scan design: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			rec.CreatedAt = ts
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	return out, nil
}
