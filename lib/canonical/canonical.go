// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package canonical

import "sort"

// Name returns the flattened Skyline name for metric and tags. An
// empty or nil tag set returns metric unchanged.
//
//	Name("cpu.load", map[string]string{"host": "a", "dc": "b"})
//	// "cpu.load.dc_b.host_a"
func Name(metric string, tags map[string]string) string {
	if len(tags) == 0 {
		return metric
	}
	return string(AppendName(make([]byte, 0, nameLength(metric, tags)), metric, tags))
}

// AppendName appends the flattened name for metric and tags to dst
// and returns the extended buffer.
func AppendName(dst []byte, metric string, tags map[string]string) []byte {
	dst = append(dst, metric...)
	if len(tags) == 0 {
		return dst
	}

	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	// sort.Strings compares bytewise, which is the ordering the
	// flattened form is defined on.
	sort.Strings(keys)

	for _, key := range keys {
		dst = append(dst, '.')
		dst = append(dst, key...)
		dst = append(dst, '_')
		dst = append(dst, tags[key]...)
	}
	return dst
}

// nameLength is the exact length of the flattened name, used to size
// the buffer in a single allocation.
func nameLength(metric string, tags map[string]string) int {
	length := len(metric)
	for key, value := range tags {
		length += len(key) + len(value) + 2
	}
	return length
}
