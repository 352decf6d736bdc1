// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package skyline

import (
	"context"
	"errors"
	"log/slog"
	"net/netip"
	"sync"
	"testing"
	"time"

	"github.com/bureau-foundation/skyline/lib/codec"
	"github.com/bureau-foundation/skyline/lib/testutil"
)

// recordingHandler keeps every log record so tests can assert on what
// was logged without parsing text.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	h.mu.Lock()
	h.records = append(h.records, record)
	h.mu.Unlock()
	return nil
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	// Share the record slice with the parent so records logged through
	// logger.With(...) are visible to the test.
	return &derivedHandler{parent: h, attrs: attrs}
}

func (h *recordingHandler) WithGroup(string) slog.Handler { return h }

// recordsAt returns the records logged at level.
func (h *recordingHandler) recordsAt(level slog.Level) []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	var matched []slog.Record
	for _, record := range h.records {
		if record.Level == level {
			matched = append(matched, record)
		}
	}
	return matched
}

type derivedHandler struct {
	parent *recordingHandler
	attrs  []slog.Attr
}

func (d *derivedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return d.parent.Enabled(ctx, level)
}

func (d *derivedHandler) Handle(ctx context.Context, record slog.Record) error {
	record = record.Clone()
	record.AddAttrs(d.attrs...)
	return d.parent.Handle(ctx, record)
}

func (d *derivedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &derivedHandler{parent: d.parent, attrs: append(append([]slog.Attr(nil), d.attrs...), attrs...)}
}

func (d *derivedHandler) WithGroup(string) slog.Handler { return d }

// attr returns the value of key in record.
func attr(record slog.Record, key string) (slog.Value, bool) {
	var found slog.Value
	ok := false
	record.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			found, ok = a.Value, true
			return false
		}
		return true
	})
	return found, ok
}

func newRecordingLogger() (*slog.Logger, *recordingHandler) {
	handler := &recordingHandler{}
	return slog.New(handler), handler
}

// failingResolver fails every lookup, standing in for an unknown host.
type failingResolver struct{}

func (failingResolver) LookupNetIP(context.Context, string, string) ([]netip.Addr, error) {
	return nil, errors.New("no such host")
}

// staticResolver returns a fixed address list.
type staticResolver []netip.Addr

func (r staticResolver) LookupNetIP(context.Context, string, string) ([]netip.Addr, error) {
	return r, nil
}

// failingCodec rejects every data point.
type failingCodec struct{}

func (failingCodec) Name() string { return "failing" }

func (failingCodec) Encode(codec.Datapoint) ([]byte, error) {
	return nil, errors.New("refusing to encode")
}

func (failingCodec) Decode([]byte) (codec.Datapoint, error) {
	return codec.Datapoint{}, errors.New("refusing to decode")
}

var testEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// newTestEmitter returns a ready emitter pointed at a fresh loopback
// listener.
func newTestEmitter(t *testing.T, opts ...Option) (*Emitter, *testutil.UDPListener) {
	t.Helper()

	listener := testutil.ListenUDP(t, 1024)
	logger, _ := newRecordingLogger()
	opts = append([]Option{WithLogger(logger)}, opts...)

	emitter, err := NewEmitter(context.Background(), Config{Host: "127.0.0.1", Port: listener.Port()}, opts...)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	t.Cleanup(func() { emitter.Close() })
	return emitter, listener
}

// receive waits for one datagram and decodes it with c.
func receive(t *testing.T, listener *testutil.UDPListener, c codec.Codec) codec.Datapoint {
	t.Helper()

	payload := testutil.RequireReceive(t, listener.Datagrams, 5*time.Second, "waiting for datagram")
	point, err := c.Decode(payload)
	if err != nil {
		t.Fatalf("decoding datagram % x: %v", payload, err)
	}
	return point
}
