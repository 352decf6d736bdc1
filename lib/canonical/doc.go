// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package canonical flattens a metric name and its tag set into the
// single dotted identifier that Skyline indexes time series by.
//
// The flattened form is
//
//	<metric>.<key1>_<value1>.<key2>_<value2>...
//
// with tag keys in ascending byte order, so the same metric and tag
// contents always produce the same string regardless of how the tag
// map was built or iterated. Keys and values are copied verbatim: a
// "." or "_" inside a key or value appears unescaped in the result.
// Downstream consumers index on this exact form, so no escaping
// scheme is applied.
//
// This package has no Bureau-internal dependencies.
package canonical
