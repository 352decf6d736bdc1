// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// CBOR encodes datagrams as CBOR arrays.
var CBOR Codec = cborCodec{}

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): smallest integer encoding, shortest
// lossless float encoding, no indefinite-length items. Same logical
// data always produces identical bytes.
var encMode cbor.EncMode

// decMode decodes integers into int64 (negative) or uint64
// (non-negative) and floats of any width into float64 when the target
// is any.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// A datagram is two nested arrays and three scalars. Anything
		// deeper is not a Skyline payload.
		MaxNestedLevels: 4,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

type cborCodec struct{}

func (cborCodec) Name() string { return "cbor" }

func (cborCodec) Encode(point Datapoint) ([]byte, error) {
	data, err := encMode.Marshal([]any{point.Name, []any{point.Timestamp, point.Value.value()}})
	if err != nil {
		return nil, fmt.Errorf("cbor: %w", err)
	}
	return data, nil
}

func (cborCodec) Decode(data []byte) (Datapoint, error) {
	var outer []any
	if err := decMode.Unmarshal(data, &outer); err != nil {
		var extraneous *cbor.ExtraneousDataError
		if errors.As(err, &extraneous) {
			return Datapoint{}, malformed("trailing bytes: %v", err)
		}
		return Datapoint{}, malformed("%v", err)
	}
	if len(outer) != 2 {
		return Datapoint{}, malformed("outer array has %d elements, want 2", len(outer))
	}

	name, ok := outer[0].(string)
	if !ok {
		return Datapoint{}, malformed("name is %T, want string", outer[0])
	}

	inner, ok := outer[1].([]any)
	if !ok {
		return Datapoint{}, malformed("point is %T, want array", outer[1])
	}
	if len(inner) != 2 {
		return Datapoint{}, malformed("point array has %d elements, want 2", len(inner))
	}

	timestamp, err := timestampFrom(inner[0])
	if err != nil {
		return Datapoint{}, err
	}
	value, err := numberFrom(inner[1])
	if err != nil {
		return Datapoint{}, err
	}

	return Datapoint{Name: name, Timestamp: timestamp, Value: value}, nil
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
