// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec encodes and decodes Skyline datagram payloads.
//
// Every datagram carries one data point as a two-element array whose
// second element is itself a two-element array:
//
//	[name, [timestamp, value]]
//
// The name is a text string, the timestamp an integer, and the value
// either an integer or a float. The value keeps the representation the
// caller chose: [Int] values go out as integers, [Float] values as
// floats. Receivers must accept both.
//
// Two encodings share that structure:
//
//   - [Msgpack] is the default and what Skyline's UDP listener
//     unpacks. Integers use the smallest msgpack form; floats are
//     always float64.
//   - [CBOR] uses Core Deterministic Encoding (RFC 8949 §4.2), the
//     same configuration as every other Bureau CBOR producer. Floats
//     use the shortest form that round-trips exactly.
//
// Decoders validate the shape strictly (array lengths, element types,
// no trailing bytes) and report violations wrapped in
// [ErrMalformedDatagram].
package codec
