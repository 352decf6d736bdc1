// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/skyline/lib/codec"
	"github.com/bureau-foundation/skyline/lib/config"
	"github.com/bureau-foundation/skyline/lib/skyline"
	"github.com/bureau-foundation/skyline/lib/testutil"
)

func TestParseFlagsDefaults(t *testing.T) {
	flags, _, err := parseFlags(nil, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if flags.listen != "127.0.0.1:4242" {
		t.Errorf("listen = %q, want 127.0.0.1:4242", flags.listen)
	}
	if flags.stdin || flags.metricsListen != "" || flags.logLevel != "info" {
		t.Errorf("unexpected defaults: %+v", flags)
	}
}

func TestParseFlagsRejectsArguments(t *testing.T) {
	if _, _, err := parseFlags([]string{"extra"}, io.Discard); err == nil {
		t.Error("expected error for positional argument")
	}
}

func TestResolveConfig(t *testing.T) {
	directory := t.TempDir()
	configPath := filepath.Join(directory, "skyline.yaml")
	if err := os.WriteFile(configPath, []byte("host: skyline.internal\nport: 2025\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    []string
		env     string
		want    skyline.Config
		wantErr string
	}{
		{
			name: "flags only",
			args: []string{"--host", "10.1.2.3", "--port", "1500"},
			want: skyline.Config{Host: "10.1.2.3", Port: 1500},
		},
		{
			name: "config file",
			args: []string{"--config", configPath},
			want: skyline.Config{Host: "skyline.internal", Port: 2025},
		},
		{
			name: "flag overrides file",
			args: []string{"--config", configPath, "--port", "3000"},
			want: skyline.Config{Host: "skyline.internal", Port: 3000},
		},
		{
			name: "environment",
			env:  configPath,
			args: []string{"--host", "override"},
			want: skyline.Config{Host: "override", Port: 2025},
		},
		{
			name:    "nothing",
			wantErr: "no configuration",
		},
		{
			name:    "host without port",
			args:    []string{"--host", "skyline"},
			wantErr: "no configuration",
		},
		{
			name:    "invalid port override",
			args:    []string{"--config", configPath, "--port", "0"},
			wantErr: "invalid configuration",
		},
		{
			name:    "missing file",
			args:    []string{"--config", filepath.Join(directory, "absent.yaml")},
			wantErr: "absent.yaml",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv(config.EnvironmentVariable, test.env)
			flags, flagSet, err := parseFlags(test.args, io.Discard)
			if err != nil {
				t.Fatalf("parseFlags: %v", err)
			}

			got, err := resolveConfig(flags, flagSet)
			if test.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), test.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveConfig: %v", err)
			}
			if got != test.want {
				t.Errorf("config = %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestRunVersion(t *testing.T) {
	var stdout strings.Builder
	if err := run(context.Background(), []string{"--version"}, nil, &stdout, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "skyline-relay ") {
		t.Errorf("version output = %q", stdout.String())
	}
}

func TestRunRequiresAListener(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	err := run(context.Background(), []string{"--host", "127.0.0.1", "--port", "9", "--listen", ""}, nil, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "nothing to serve") {
		t.Errorf("error = %v, want nothing to serve", err)
	}
}

func TestRunForwardsStdin(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	listener := testutil.ListenUDP(t, 16)

	args := []string{
		"--host", "127.0.0.1",
		"--port", strconv.Itoa(listener.Port()),
		"--listen", "",
		"--stdin",
		"--log-level", "error",
	}
	input := strings.NewReader("put cpu.load 1700000000 42.5 host=a dc=b\nput broken\n")

	var stdout strings.Builder
	if err := run(context.Background(), args, input, &stdout, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}

	payload := testutil.RequireReceive(t, listener.Datagrams, 5*time.Second, "waiting for datagram")
	datapoint, err := codec.Msgpack.Decode(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if datapoint.Name != "cpu.load.dc_b.host_a" || datapoint.Value != codec.Float(42.5) {
		t.Errorf("datapoint = %+v", datapoint)
	}
	if !strings.HasPrefix(stdout.String(), "put: ") {
		t.Errorf("stdout = %q, want put error", stdout.String())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	ctx, cancel := context.WithCancel(context.Background())

	args := []string{
		"--host", "127.0.0.1",
		"--port", strconv.Itoa(testutil.UnusedUDPPort(t)),
		"--listen", "127.0.0.1:0",
		"--metrics-listen", "127.0.0.1:0",
		"--log-level", "error",
	}
	done := make(chan error, 1)
	go func() { done <- run(ctx, args, nil, io.Discard, io.Discard) }()

	cancel()
	if err := testutil.RequireReceive(t, done, 10*time.Second, "relay shutdown"); err != nil {
		t.Errorf("run returned %v", err)
	}
}

func TestMetricsHandler(t *testing.T) {
	listener := testutil.ListenUDP(t, 16)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := skyline.NewPublisher(context.Background(),
		skyline.Config{Host: "127.0.0.1", Port: listener.Port()},
		skyline.WithLogger(logger))
	t.Cleanup(func() { publisher.Shutdown() })

	publisher.PublishInt("requests", 1700000000, 3, map[string]string{"route": "api"})
	testutil.RequireReceive(t, listener.Datagrams, 5*time.Second, "waiting for datagram")

	handler, err := newMetricsHandler(publisher)
	if err != nil {
		t.Fatalf("newMetricsHandler: %v", err)
	}
	server := httptest.NewServer(handler)
	defer server.Close()

	response, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	for _, want := range []string{
		"skyline_emitter_ready 1",
		"skyline_datagrams_sent_total 1",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}

	health, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	health.Body.Close()
	if health.StatusCode != http.StatusOK {
		t.Errorf("/health status = %d", health.StatusCode)
	}
}
