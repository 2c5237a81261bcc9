/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestPrettyHandlerFormatsAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &prettyTextHandler{level: slog.LevelInfo, w: &buf}
	l := slog.New(h).With(slog.String("component", "export"))
	l.Info("saved design", slog.String("product", "tshirt"), slog.Int("w", 2875))

	out := buf.String()
	if !strings.Contains(out, "INF saved design") {
		t.Fatalf("missing level/message in output: %q", out)
	}
	if !strings.Contains(out, "component=export") || !strings.Contains(out, "product=tshirt") || !strings.Contains(out, "w=2875") {
		t.Fatalf("missing attrs in output: %q", out)
	}
}

func TestPrettyHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	h := &prettyTextHandler{level: slog.LevelWarn, w: &buf}
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info should be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("error should be enabled at warn level")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitAndComponentLogger(t *testing.T) {
	Init(Options{Level: "debug", Format: "console"})
	l := WithComponent("layout")
	if l == nil {
		t.Fatalf("nil component logger")
	}
	l = WithOperation(l, "centered")
	if l == nil {
		t.Fatalf("nil operation logger")
	}
}
