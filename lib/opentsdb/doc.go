// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package opentsdb speaks the OpenTSDB telnet-style line protocol so the
// forwarder can run without a TSDB in front of it.
//
// Clients write newline-terminated commands:
//
//	put sys.cpu.user 1700000000 42.5 host=web01 cpu=0
//	version
//	exit
//
// Each put line becomes a [skyline.DataPoint] handed to a [Sink]. A
// successful put produces no response; a malformed one is answered
// with a "put: <reason>" line and the connection stays open, as
// OpenTSDB itself does.
package opentsdb
