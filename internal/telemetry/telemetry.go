/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package telemetry sends anonymous, strictly opt-in usage events (which
// subcommands run, which generators and products get rendered, how long a
// batch took) and optional crash uploads. Events carry no design text, file
// paths, or any other user content.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	applog "poddesign/internal/log"
	"poddesign/internal/version"
)

// Config holds runtime configuration for telemetry and crash uploads.
// Everything is disabled by default.
//
// Environment variables (read by FromEnv):
// - PDG_TELEMETRY_OPT_IN: "1", "true", "yes" to enable metrics
// - PDG_TELEMETRY_URL: base URL to POST JSON events to
// - PDG_CRASH_UPLOAD_URL: URL to POST crash reports to
// - PDG_TELEMETRY_TIMEOUT_MS: optional request timeout, default 1500ms
// - PDG_TELEMETRY_DEBUG: if set, logs event send attempts
//
// If no URLs are set, events are dropped (no-ops), even if opt-in is true.
type Config struct {
	OptIn        bool
	EventsURL    string
	CrashURL     string
	Timeout      time.Duration
	DebugLogging bool
}

func FromEnv() Config {
	cfg := Config{
		OptIn:        parseBool(os.Getenv("PDG_TELEMETRY_OPT_IN")),
		EventsURL:    strings.TrimSpace(os.Getenv("PDG_TELEMETRY_URL")),
		CrashURL:     strings.TrimSpace(os.Getenv("PDG_CRASH_UPLOAD_URL")),
		Timeout:      1500 * time.Millisecond,
		DebugLogging: os.Getenv("PDG_TELEMETRY_DEBUG") != "",
	}
	if ms := strings.TrimSpace(os.Getenv("PDG_TELEMETRY_TIMEOUT_MS")); ms != "" {
		if v, err := time.ParseDuration(ms + "ms"); err == nil {
			cfg.Timeout = v
		}
	}
	return cfg
}

func parseBool(v string) bool {
	s := strings.ToLower(strings.TrimSpace(v))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// Event is one usage measurement. Props must stay non-PII: generator kinds,
// product names, durations and counts only.
type Event struct {
	Name  string
	Props map[string]any
}

// Client is a minimal async sender; it drops events silently on errors and
// never blocks a render.
type Client struct {
	cfg    Config
	log    *slog.Logger
	cli    *http.Client
	q      chan Event
	once   sync.Once
	closed chan struct{}
}

var defaultClient *Client
var defaultOnce sync.Once

// InitDefault initializes the package-level default client from env when first used.
func InitDefault() {
	defaultOnce.Do(func() {
		NewDefault(FromEnv())
	})
}

// NewDefault creates and installs the default client with cfg.
func NewDefault(cfg Config) {
	defaultClient = New(cfg)
}

// New constructs a client.
func New(cfg Config) *Client {
	c := &Client{
		cfg:    cfg,
		log:    applog.WithComponent("telemetry"),
		cli:    &http.Client{Timeout: cfg.Timeout},
		q:      make(chan Event, 64),
		closed: make(chan struct{}),
	}
	go c.loop()
	return c
}

// Enabled reports whether anonymous telemetry is enabled and an endpoint is configured.
func (c *Client) Enabled() bool { return c != nil && c.cfg.OptIn && c.cfg.EventsURL != "" }

// Enabled reports whether anonymous telemetry is enabled using the default client.
func Enabled() bool {
	InitDefault()
	return defaultClient.Enabled()
}

// Send queues an event if enabled. Safe to call from anywhere.
func (c *Client) Send(ev Event) {
	if !c.Enabled() || ev.Name == "" {
		return
	}
	select {
	case c.q <- ev:
	default:
		// drop if queue full
	}
}

// Command records a CLI subcommand invocation on the default client.
func Command(cmd string) {
	InitDefault()
	defaultClient.Send(Event{Name: "command", Props: map[string]any{"cmd": cmd}})
}

// Render records one finished design render on the default client.
func Render(kind, product string, d time.Duration) {
	InitDefault()
	defaultClient.Send(Event{Name: "render", Props: map[string]any{
		"kind":    kind,
		"product": product,
		"ms":      d.Milliseconds(),
	}})
}

// Batch records a completed batch run on the default client.
func Batch(designs, workers int, d time.Duration, failed bool) {
	InitDefault()
	defaultClient.Send(Event{Name: "batch", Props: map[string]any{
		"designs": designs,
		"workers": workers,
		"ms":      d.Milliseconds(),
		"failed":  failed,
	}})
}

// Flush waits briefly for the queue to drain.
func (c *Client) Flush(ctx context.Context) {
	deadline := time.Now().Add(500 * time.Millisecond)
	for {
		if len(c.q) == 0 || time.Now().After(deadline) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(25 * time.Millisecond):
		}
	}
}

// Close stops the background goroutine.
func (c *Client) Close() { c.once.Do(func() { close(c.closed) }) }

func (c *Client) loop() {
	for {
		select {
		case <-c.closed:
			return
		case ev := <-c.q:
			c.post(ev)
		}
	}
}

// post wraps the event in an envelope (timestamp, version, platform) and
// fires it at the configured endpoint.
func (c *Client) post(ev Event) {
	payload := map[string]any{
		"name":    ev.Name,
		"ts":      time.Now().UTC().Format(time.RFC3339Nano),
		"version": version.String(),
		"os":      runtime.GOOS,
		"arch":    runtime.GOARCH,
	}
	for k, v := range ev.Props {
		payload[k] = v
	}
	buf, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, c.cfg.EventsURL, bytes.NewReader(buf))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.cli.Do(req)
	if err != nil {
		if c.cfg.DebugLogging {
			c.log.Debug("telemetry send failed", slog.Any("err", err))
		}
		return
	}
	_ = resp.Body.Close()
	if c.cfg.DebugLogging {
		c.log.Debug("telemetry event sent", slog.String("name", ev.Name))
	}
}

// UploadCrash posts an already-serialized crash report to the configured crash URL if opt-in.
func (c *Client) UploadCrash(report []byte) {
	if c == nil || !c.cfg.OptIn || c.cfg.CrashURL == "" {
		return
	}
	go func(b []byte) {
		req, err := http.NewRequest(http.MethodPost, c.cfg.CrashURL, bytes.NewReader(b))
		if err != nil {
			return
		}
		req.Header.Set("Content-Type", "text/plain; charset=utf-8")
		resp, err := c.cli.Do(req)
		if err != nil {
			if c.cfg.DebugLogging {
				c.log.Debug("crash upload failed", slog.Any("err", err))
			}
			return
		}
		_ = resp.Body.Close()
		if c.cfg.DebugLogging {
			c.log.Debug("crash report uploaded")
		}
	}(append([]byte(nil), report...))
}

// UploadCrash using default client.
func UploadCrash(report []byte) { InitDefault(); defaultClient.UploadCrash(report) }
