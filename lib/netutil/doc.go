// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil classifies network errors for logging.
//
// [DatagramFailure] maps a failed UDP send to a short, stable reason
// string ("too_large", "refused", "unreachable", "closed", ...) so log
// lines can be filtered without parsing OS-specific error text.
//
// [IsExpectedCloseError] recognizes errors that occur during normal
// stream connection teardown (EOF, closed connection, broken pipe,
// connection reset) and should not be logged as failures.
package netutil
