// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package opentsdb

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bureau-foundation/skyline/lib/codec"
	"github.com/bureau-foundation/skyline/lib/skyline"
)

// ParsePut parses the arguments of a put command. The line may include
// or omit the leading "put" word.
func ParsePut(line string) (skyline.DataPoint, error) {
	fields := strings.Fields(line)
	if len(fields) > 0 && fields[0] == "put" {
		fields = fields[1:]
	}
	if len(fields) < 3 {
		return skyline.DataPoint{}, errors.New("not enough arguments (need metric, timestamp, and value)")
	}

	metric := fields[0]

	timestamp, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return skyline.DataPoint{}, fmt.Errorf("invalid timestamp %q", fields[1])
	}
	if timestamp < 0 {
		return skyline.DataPoint{}, fmt.Errorf("invalid timestamp %q: must be non-negative", fields[1])
	}

	value, err := parseValue(fields[2])
	if err != nil {
		return skyline.DataPoint{}, err
	}

	tags, err := parseTags(fields[3:])
	if err != nil {
		return skyline.DataPoint{}, err
	}

	return skyline.DataPoint{
		Metric:    metric,
		Timestamp: timestamp,
		Value:     value,
		Tags:      tags,
	}, nil
}

// parseValue keeps integers integral. Anything with a decimal point or
// exponent, or that overflows int64, is a float.
func parseValue(s string) (codec.Number, error) {
	if !strings.ContainsAny(s, ".eE") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return codec.Int(n), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return codec.Number{}, fmt.Errorf("invalid value %q", s)
	}
	return codec.Float(f), nil
}

func parseTags(fields []string) (map[string]string, error) {
	tags := make(map[string]string, len(fields))
	for _, field := range fields {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key == "" || value == "" {
			return nil, fmt.Errorf("invalid tag %q (expected key=value)", field)
		}
		if _, duplicate := tags[key]; duplicate {
			return nil, fmt.Errorf("duplicate tag %q", key)
		}
		tags[key] = value
	}
	return tags, nil
}
