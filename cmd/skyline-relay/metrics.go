// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bureau-foundation/skyline/lib/skyline"
)

// newMetricsHandler serves the publisher's counters alongside the Go
// runtime and process collectors.
func newMetricsHandler(publisher *skyline.Publisher) (http.Handler, error) {
	registry := prometheus.NewRegistry()
	if err := registry.Register(publisher); err != nil {
		return nil, fmt.Errorf("registering skyline collector: %w", err)
	}
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux, nil
}

// serveMetrics runs the metrics HTTP server on address until ctx is
// cancelled.
func serveMetrics(ctx context.Context, address string, publisher *skyline.Publisher, logger *slog.Logger) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", address, err)
	}
	return serveMetricsListener(ctx, listener, publisher, logger)
}

func serveMetricsListener(ctx context.Context, listener net.Listener, publisher *skyline.Publisher, logger *slog.Logger) error {
	handler, err := newMetricsHandler(publisher)
	if err != nil {
		listener.Close()
		return err
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listener ready", "address", listener.Addr().String())
	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
