// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/skyline/lib/logging"
	"github.com/bureau-foundation/skyline/lib/opentsdb"
	"github.com/bureau-foundation/skyline/lib/skyline"
	"github.com/bureau-foundation/skyline/lib/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type relayFlags struct {
	configPath    string
	host          string
	port          int
	listen        string
	stdin         bool
	metricsListen string
	logLevel      string
	showVersion   bool
}

func parseFlags(args []string, output io.Writer) (relayFlags, *pflag.FlagSet, error) {
	var flags relayFlags
	flagSet := pflag.NewFlagSet("skyline-relay", pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.StringVar(&flags.configPath, "config", "", "config file (.yaml, .json, .jsonc, or opentsdb.conf); defaults to $SKYLINE_CONFIG")
	flagSet.StringVar(&flags.host, "host", "", "Skyline host (overrides config)")
	flagSet.IntVar(&flags.port, "port", 0, "Skyline UDP port (overrides config)")
	flagSet.StringVar(&flags.listen, "listen", "127.0.0.1:4242", "TCP address for the put protocol (empty disables)")
	flagSet.BoolVar(&flags.stdin, "stdin", false, "also read put lines from stdin; the relay exits at end of input")
	flagSet.StringVar(&flags.metricsListen, "metrics-listen", "", "address to serve Prometheus /metrics on (empty disables)")
	flagSet.StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flagSet.BoolVar(&flags.showVersion, "version", false, "print version information and exit")

	if err := flagSet.Parse(args); err != nil {
		return relayFlags{}, nil, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return relayFlags{}, nil, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	return flags, flagSet, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags, flagSet, err := parseFlags(args, stderr)
	if err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	if flags.showVersion {
		fmt.Fprintf(stdout, "skyline-relay %s\n", version.Info())
		return nil
	}

	logger, err := logging.NewWriter(stderr, flags.logLevel)
	if err != nil {
		return err
	}

	config, err := resolveConfig(flags, flagSet)
	if err != nil {
		return err
	}

	if flags.listen == "" && !flags.stdin {
		return fmt.Errorf("nothing to serve: --listen is empty and --stdin is not set")
	}

	publisher := skyline.NewPublisher(ctx, config, skyline.WithLogger(logger))
	defer func() {
		if err := publisher.Shutdown(); err != nil {
			logger.Warn("closing skyline socket", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Servers that stop on cancellation report on done. The stdin
	// reader cannot be interrupted, so nothing waits for it after the
	// relay starts shutting down.
	done := make(chan error, 2)
	stdinDone := make(chan error, 1)
	running := 0

	server := opentsdb.NewServer(publisher, logger)
	if flags.listen != "" {
		running++
		go func() { done <- server.ListenAndServe(ctx, flags.listen) }()
	}
	if flags.metricsListen != "" {
		running++
		go func() { done <- serveMetrics(ctx, flags.metricsListen, publisher, logger) }()
	}
	if flags.stdin {
		go func() { stdinDone <- server.ServeReader(stdin, stdout) }()
	}

	logger.Info("skyline relay running",
		"version", version.Short(),
		"host", config.Host,
		"port", config.Port,
		"listen", flags.listen,
		"stdin", flags.stdin,
		"metrics_listen", flags.metricsListen,
	)

	var result error
	select {
	case <-ctx.Done():
	case result = <-done:
		running--
	case result = <-stdinDone:
	}
	logger.Info("shutting down")
	cancel()

	for ; running > 0; running-- {
		if err := <-done; err != nil && result == nil {
			result = err
		}
	}

	logStats(logger, publisher)
	return result
}

func logStats(logger *slog.Logger, publisher *skyline.Publisher) {
	stats := publisher.Stats()
	logger.Info("skyline relay stopped",
		"sent", stats.Sent,
		"bytes_sent", stats.BytesSent,
		"dropped", stats.Dropped,
		"encode_errors", stats.EncodeErrors,
		"transport_errors", stats.TransportErrors,
	)
}
