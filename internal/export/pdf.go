/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// ProofEntry is one page of a proof sheet.
type ProofEntry struct {
	Product string
	Title   string
	Image   image.Image
}

// proofDPI maps design pixels to PDF points; print assets are produced at
// 300 dpi, PDF points are 72 per inch.
const proofDPI = 300

const proofHeaderPt = 28

// ProofSheet writes a multi-page PDF with one design per page, sized so each
// page matches the product's print dimensions plus a header strip. Built-in
// Helvetica keeps the file free of font embedding.
func ProofSheet(outPath string, entries []ProofEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("proof sheet needs at least one entry")
	}

	first := pageSize(entries[0].Image)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: first.Wd, Ht: first.Ht + proofHeaderPt},
		OrientationStr: "",
	})
	pdf.SetTitle("Design proof sheet", false)
	pdf.SetAutoPageBreak(false, 0)

	for i, e := range entries {
		size := pageSize(e.Image)
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: size.Wd, Ht: size.Ht + proofHeaderPt})

		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(6, 6)
		pdf.CellFormat(size.Wd-12, 14, fmt.Sprintf("%s  [%s]", e.Title, e.Product), "", 0, "L", false, 0, "")

		var buf bytes.Buffer
		if err := png.Encode(&buf, e.Image); err != nil {
			return fmt.Errorf("encode proof image %d: %w", i, err)
		}
		name := fmt.Sprintf("proof-%d", i)
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.ImageOptions(name, 0, proofHeaderPt, size.Wd, size.Ht, false, opts, 0, "")
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create proof dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write proof sheet: %w", err)
	}
	return nil
}

func pageSize(img image.Image) gofpdf.SizeType {
	b := img.Bounds()
	scale := 72.0 / proofDPI
	return gofpdf.SizeType{
		Wd: float64(b.Dx()) * scale,
		Ht: float64(b.Dy()) * scale,
	}
}
