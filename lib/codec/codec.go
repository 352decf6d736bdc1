// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrMalformedDatagram is wrapped by every decode error caused by a
// payload that does not have the [name, [timestamp, value]] shape.
var ErrMalformedDatagram = errors.New("malformed datagram")

// Codec converts a Datapoint to and from its datagram payload.
// Implementations are stateless and safe for concurrent use.
type Codec interface {
	// Name identifies the codec in flags and log output.
	Name() string

	// Encode returns the payload for point.
	Encode(point Datapoint) ([]byte, error)

	// Decode parses a payload produced by Encode (or by any other
	// producer of the same structure).
	Decode(data []byte) (Datapoint, error)
}

// Datapoint is the triple carried by one datagram.
type Datapoint struct {
	Name      string
	Timestamp int64
	Value     Number
}

// Number is an integer or floating-point value that remembers which.
// The zero value is the integer 0.
type Number struct {
	isFloat bool
	integer int64
	float   float64
}

// Int returns an integer Number.
func Int(value int64) Number { return Number{integer: value} }

// Float returns a floating-point Number.
func Float(value float64) Number { return Number{isFloat: true, float: value} }

// IsFloat reports whether n was constructed with Float.
func (n Number) IsFloat() bool { return n.isFloat }

// Int64 returns the integer value. Float values are truncated toward
// zero.
func (n Number) Int64() int64 {
	if n.isFloat {
		return int64(n.float)
	}
	return n.integer
}

// Float64 returns the value as a float64. Integers beyond ±2^53 lose
// precision.
func (n Number) Float64() float64 {
	if n.isFloat {
		return n.float
	}
	return float64(n.integer)
}

// String formats the value the way the OpenTSDB put protocol writes
// it: integers in base 10, floats in the shortest representation that
// parses back to the same value.
func (n Number) String() string {
	if n.isFloat {
		return strconv.FormatFloat(n.float, 'g', -1, 64)
	}
	return strconv.FormatInt(n.integer, 10)
}

// value returns the Go value handed to the underlying encoder.
func (n Number) value() any {
	if n.isFloat {
		return n.float
	}
	return n.integer
}

// ByName returns the codec registered under name ("msgpack" or
// "cbor").
func ByName(name string) (Codec, error) {
	switch name {
	case Msgpack.Name():
		return Msgpack, nil
	case CBOR.Name():
		return CBOR, nil
	default:
		return nil, fmt.Errorf("unknown codec %q (supported: %s, %s)", name, Msgpack.Name(), CBOR.Name())
	}
}

// malformed wraps a shape violation in ErrMalformedDatagram.
func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedDatagram, fmt.Sprintf(format, args...))
}

// timestampFrom converts a decoded integer to an int64 timestamp.
func timestampFrom(decoded any) (int64, error) {
	switch v := decoded.(type) {
	case int64:
		return v, nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, malformed("timestamp %d overflows int64", v)
		}
		return int64(v), nil
	default:
		return 0, malformed("timestamp is %T, want integer", decoded)
	}
}

// numberFrom converts a decoded integer or float to a Number.
func numberFrom(decoded any) (Number, error) {
	switch v := decoded.(type) {
	case int64:
		return Int(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return Number{}, malformed("value %d overflows int64", v)
		}
		return Int(int64(v)), nil
	case float64:
		return Float(v), nil
	case float32:
		return Float(float64(v)), nil
	default:
		return Number{}, malformed("value is %T, want integer or float", decoded)
	}
}
