// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Skyline-tap listens where Skyline would and prints every datagram it
// receives, one per line:
//
//	cpu.load.dc_b.host_a 1700000000 42.5
//
// Point the forwarder at the tap to see exactly what Skyline would be
// fed. Datagrams that do not decode are reported on stderr with their
// sender and skipped. With --codec cbor --diagnose the raw payload is
// printed in CBOR diagnostic notation instead.
package main
