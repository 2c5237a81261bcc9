/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.ConfigVersion != 1 {
		t.Fatalf("expected config version 1, got %d", cfg.ConfigVersion)
	}
	if cfg.Paths.FontsDir == "" || cfg.Paths.OutputDir == "" || cfg.Paths.TemplatesDir == "" {
		t.Fatalf("default paths must not be empty: %+v", cfg.Paths)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.Logging.Level)
	}
}

func TestMergeIntoKeepsDefaultsForEmptyFields(t *testing.T) {
	dst := Defaults()
	var src AppConfig
	if err := yaml.Unmarshal([]byte("paths:\n  output_dir: /tmp/designs\nlogging:\n  level: DEBUG\n"), &src); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	mergeInto(&dst, &src)
	if dst.Paths.OutputDir != "/tmp/designs" {
		t.Fatalf("output dir not merged: %q", dst.Paths.OutputDir)
	}
	if dst.Paths.FontsDir != Defaults().Paths.FontsDir {
		t.Fatalf("fonts dir should keep default, got %q", dst.Paths.FontsDir)
	}
	if dst.Logging.Level != "debug" {
		t.Fatalf("expected normalized level debug, got %q", dst.Logging.Level)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvFontsDir, "/opt/fonts")
	t.Setenv(EnvLogFormat, "JSON")
	cfg := Defaults()
	applyEnvOverrides(&cfg)
	if cfg.Paths.FontsDir != "/opt/fonts" {
		t.Fatalf("env fonts dir override missing: %q", cfg.Paths.FontsDir)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("env log format override missing: %q", cfg.Logging.Format)
	}
	if env, ok := EnvOverrideFor("paths.fonts_dir"); !ok || env != EnvFontsDir {
		t.Fatalf("EnvOverrideFor mismatch: %q %v", env, ok)
	}
	if _, ok := EnvOverrideFor("paths.output_dir"); ok {
		t.Fatalf("output dir should not report an override")
	}
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Paths.TemplatesDir = "niche-templates"
	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back AppConfig
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Paths.TemplatesDir != "niche-templates" {
		t.Fatalf("round trip lost templates dir: %+v", back.Paths)
	}
}
