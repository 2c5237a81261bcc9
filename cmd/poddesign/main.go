/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"poddesign/internal/batch"
	"poddesign/internal/config"
	"poddesign/internal/crash"
	"poddesign/internal/design"
	"poddesign/internal/domain"
	"poddesign/internal/export"
	"poddesign/internal/fontlib"
	"poddesign/internal/layout"
	applog "poddesign/internal/log"
	"poddesign/internal/metadata"
	"poddesign/internal/palette"
	"poddesign/internal/pattern"
	"poddesign/internal/storage"
	"poddesign/internal/telemetry"
	"poddesign/internal/templatepack"
	"poddesign/internal/version"
)

func usage() {
	fmt.Println("poddesign — print-on-demand design generator")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  poddesign text -text <s> [-font anton] [-layout centered|stacked|arced] [-colors <shortcut|#hex>] [-palette <name>] [-no-shadow] [-products tshirt,sticker] [-name <file>]")
	fmt.Println("  poddesign pattern -style <geometric|circles|triangles|grid|tessellation> [-seed N] [-palette neon] [-products ...] [-name <file>]")
	fmt.Println("  poddesign niche -theme <name> [-text <s>] [-seed N] [-products ...] [-name <file>]")
	fmt.Println("  poddesign batch <config.json> [-workers N] [-proof]")
	fmt.Println("  poddesign list [-type text|pattern|niche] [-limit N]")
	fmt.Println("  poddesign fonts")
	fmt.Println("  poddesign themes [export <pack.zip> | import <pack.zip>]")
	fmt.Println("  poddesign version|-v|--version")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")

	args := os.Args
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}
	defer func() { crash.Recover(cfg.Paths.OutputDir) }()

	telemetry.Command(args[1])

	var exitErr error
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println(version.String())
		return
	case "text":
		exitErr = cmdText(cfg, args[2:])
	case "pattern":
		exitErr = cmdPattern(cfg, args[2:])
	case "niche":
		exitErr = cmdNiche(cfg, args[2:])
	case "batch":
		exitErr = cmdBatch(cfg, args[2:])
	case "list":
		exitErr = cmdList(cfg, args[2:])
	case "fonts":
		exitErr = cmdFonts(cfg)
	case "themes":
		exitErr = cmdThemes(cfg, args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if exitErr != nil {
		l.Error("command failed", slog.String("cmd", args[1]), slog.Any("err", exitErr))
		fmt.Println("Error:", exitErr)
		os.Exit(1)
	}
}

// saveDesign renders a generator for every product, writes PNGs and the
// metadata sidecars, and records each file in the design index.
func saveDesign(cfg config.AppConfig, gen design.Generator, kind, name, productsArg string, extra batch.Entry) error {
	products, err := domain.ParseProducts(productsArg)
	if err != nil {
		return err
	}
	meta := metadata.Generate(gen.Meta())

	db, err := storage.OpenIndex(cfg.Paths.OutputDir)
	if err != nil {
		return err
	}
	defer db.Close()
	ctx := context.Background()

	for _, p := range products {
		start := time.Now()
		c, err := gen.Generate(p)
		if err != nil {
			return err
		}
		path, err := export.SavePNG(c, cfg.Paths.OutputDir, p.Name, name)
		if err != nil {
			return err
		}
		telemetry.Render(kind, p.Name, time.Since(start))
		if _, err := metadata.Save(meta, path); err != nil {
			return err
		}
		rec := storage.DesignRecord{
			Name:    name,
			Type:    kind,
			Product: p.Name,
			Path:    path,
			Text:    extra.Text,
			Style:   extra.Style,
			Seed:    extra.Seed,
		}
		if _, err := storage.RecordDesign(ctx, db, rec); err != nil {
			return err
		}
		fmt.Println("Wrote", path)
	}
	return nil
}

func cmdText(cfg config.AppConfig, args []string) error {
	fs := flag.NewFlagSet("text", flag.ExitOnError)
	text := fs.String("text", "", "design text (use \\n for line breaks)")
	font := fs.String("font", "anton", "font name")
	layoutArg := fs.String("layout", "centered", "layout strategy")
	colors := fs.String("colors", "", "color shortcut or #hex")
	paletteArg := fs.String("palette", "", "palette name")
	noShadow := fs.Bool("no-shadow", false, "disable drop shadow")
	productsArg := fs.String("products", "", "comma-separated products")
	name := fs.String("name", "design", "output file name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *text == "" {
		return fmt.Errorf("text requires -text")
	}

	fonts := fontlib.NewLibrary(cfg.Paths.FontsDir)
	h, err := fonts.Resolve(*font)
	if err != nil {
		return err
	}
	gen := &design.TextDesign{
		Fonts:   fonts,
		Font:    h,
		Text:    strings.ReplaceAll(*text, `\n`, "\n"),
		Color:   *colors,
		Palette: *paletteArg,
		Layout:  layout.Strategy(*layoutArg),
		Shadow:  !*noShadow,
	}
	return saveDesign(cfg, gen, "text", *name, *productsArg, batch.Entry{Text: *text})
}

func cmdPattern(cfg config.AppConfig, args []string) error {
	fs := flag.NewFlagSet("pattern", flag.ExitOnError)
	style := fs.String("style", string(pattern.Geometric), "pattern style")
	seed := fs.Int64("seed", 0, "random seed")
	paletteArg := fs.String("palette", "neon", "palette name")
	colors := fs.String("colors", "", "background shortcut")
	productsArg := fs.String("products", "", "comma-separated products")
	name := fs.String("name", "pattern", "output file name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	gen := &design.PatternDesign{
		Style:   pattern.Style(*style),
		Palette: *paletteArg,
		Seed:    *seed,
		Color:   *colors,
	}
	return saveDesign(cfg, gen, "pattern", *name, *productsArg, batch.Entry{Style: *style, Seed: *seed})
}

func cmdNiche(cfg config.AppConfig, args []string) error {
	fs := flag.NewFlagSet("niche", flag.ExitOnError)
	theme := fs.String("theme", "", "theme name")
	text := fs.String("text", "", "override template phrase")
	seed := fs.Int64("seed", 0, "phrase selection seed")
	productsArg := fs.String("products", "", "comma-separated products")
	name := fs.String("name", "", "output file name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *theme == "" {
		return fmt.Errorf("niche requires -theme (available: %s)", strings.Join(design.Themes(cfg.Paths.TemplatesDir), ", "))
	}

	tmpl, err := design.LoadTemplate(cfg.Paths.TemplatesDir, *theme)
	if err != nil {
		return err
	}
	fonts := fontlib.NewLibrary(cfg.Paths.FontsDir)
	gen := &design.NicheDesign{
		Fonts:    fonts,
		Theme:    *theme,
		Template: tmpl,
		Text:     *text,
		Seed:     *seed,
	}
	outName := *name
	if outName == "" {
		outName = *theme
	}
	return saveDesign(cfg, gen, "niche", outName, *productsArg, batch.Entry{Text: *text, Seed: *seed})
}

func cmdBatch(cfg config.AppConfig, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	workers := fs.Int("workers", 2, "parallel design workers")
	proof := fs.Bool("proof", false, "also write a PDF proof sheet")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("batch requires a config file")
	}

	bcfg, err := batch.LoadConfig(fs.Arg(0))
	if err != nil {
		return err
	}
	db, err := storage.OpenIndex(cfg.Paths.OutputDir)
	if err != nil {
		return err
	}
	defer db.Close()

	runner := &batch.Runner{
		Fonts:        fontlib.NewLibrary(cfg.Paths.FontsDir),
		OutputDir:    cfg.Paths.OutputDir,
		TemplatesDir: cfg.Paths.TemplatesDir,
		Workers:      *workers,
		DB:           db,
	}
	paths, err := runner.Run(context.Background(), bcfg)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println("Wrote", p)
	}
	if *proof {
		proofPath, err := writeProofSheet(cfg, paths)
		if err != nil {
			return err
		}
		fmt.Println("Wrote", proofPath)
	}
	return nil
}

func cmdList(cfg config.AppConfig, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	typeFilter := fs.String("type", "", "filter by design type")
	limit := fs.Int("limit", 50, "max rows")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := storage.OpenIndex(cfg.Paths.OutputDir)
	if err != nil {
		return err
	}
	defer db.Close()

	recs, err := storage.ListDesigns(context.Background(), db, *typeFilter, *limit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No designs recorded.")
		return nil
	}
	for _, r := range recs {
		fmt.Printf("%-20s %-8s %-8s %s\n", r.Name, r.Type, r.Product, r.Path)
	}
	return nil
}

func cmdFonts(cfg config.AppConfig) error {
	fonts := fontlib.NewLibrary(cfg.Paths.FontsDir)
	names := fonts.Available()
	if len(names) == 0 {
		fmt.Printf("No fonts found in %s\n", cfg.Paths.FontsDir)
		fmt.Println("Palettes:", strings.Join(palette.Names(), ", "))
		fmt.Println("Shortcuts:", strings.Join(palette.ShortcutNames(), ", "))
		return nil
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func cmdThemes(cfg config.AppConfig, args []string) error {
	if len(args) == 0 {
		for _, t := range design.Themes(cfg.Paths.TemplatesDir) {
			fmt.Println(t)
		}
		return nil
	}
	if len(args) != 2 {
		return errors.New("themes takes either no arguments, or: export <pack.zip> | import <pack.zip>")
	}
	switch args[0] {
	case "export":
		if err := templatepack.Export(cfg.Paths.TemplatesDir, args[1]); err != nil {
			return err
		}
		fmt.Println("Wrote", args[1])
		return nil
	case "import":
		n, err := templatepack.Install(cfg.Paths.TemplatesDir, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Installed %d template(s) into %s\n", n, cfg.Paths.TemplatesDir)
		return nil
	default:
		return fmt.Errorf("unknown themes action %q", args[0])
	}
}
