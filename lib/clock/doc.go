// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for testability.
//
// Production code accepts a Clock instead of calling time.Now
// directly. Real() provides the standard library behavior; Fake()
// provides a clock that moves only when the test advances it.
//
//	type limiter struct {
//	    clock clock.Clock
//	    // ...
//	}
//
//	l := &limiter{clock: clock.Real()}                                // production
//	l := &limiter{clock: clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))} // tests
//
// The forwarder never sleeps or waits on timers on its send path, so
// the abstraction covers reading the time only.
package clock
