// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package skyline

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/bureau-foundation/skyline/lib/clock"
	"github.com/bureau-foundation/skyline/lib/netutil"
)

// failureLog logs send failures with a minimum spacing between lines.
// An unreachable endpoint fails every send; without spacing a busy
// host would write one error line per data point.
type failureLog struct {
	logger   *slog.Logger
	clock    clock.Clock
	interval time.Duration

	mu         sync.Mutex
	lastLogged time.Time
	hasLogged  bool
	suppressed uint64
}

func newFailureLog(logger *slog.Logger, c clock.Clock, interval time.Duration) *failureLog {
	return &failureLog{logger: logger, clock: c, interval: interval}
}

// report logs err unless another failure was logged within the
// interval, in which case it only counts it.
func (f *failureLog) report(err error, host string, port int) {
	suppressed, ok := f.admit()
	if !ok {
		return
	}
	f.logger.Error("skyline datagram dropped",
		"error", err,
		"reason", failureReason(err),
		"host", host,
		"port", port,
		"suppressed", suppressed,
	)
}

// admit decides whether the current failure is logged and returns the
// number of failures suppressed since the previous logged one.
func (f *failureLog) admit() (uint64, bool) {
	if f.interval <= 0 {
		return 0, true
	}

	now := f.clock.Now()

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.hasLogged && now.Sub(f.lastLogged) < f.interval {
		f.suppressed++
		return 0, false
	}
	suppressed := f.suppressed
	f.suppressed = 0
	f.lastLogged = now
	f.hasLogged = true
	return suppressed, true
}

func failureReason(err error) string {
	switch e := err.(type) {
	case *EncodingError:
		return "encoding"
	case *TransportError:
		if errors.Is(e.Err, ErrDatagramTooLarge) {
			return netutil.ReasonTooLarge
		}
		return netutil.DatagramFailure(e.Err)
	default:
		return netutil.ReasonOther
	}
}
