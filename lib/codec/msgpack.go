// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack encodes datagrams as MessagePack arrays.
var Msgpack Codec = msgpackCodec{}

type msgpackCodec struct{}

func (msgpackCodec) Name() string { return "msgpack" }

// Encode writes the array headers and scalars directly rather than
// marshaling a []any, so the integer/float distinction of the value is
// decided here and not by reflection.
func (msgpackCodec) Encode(point Datapoint) ([]byte, error) {
	var buffer bytes.Buffer
	buffer.Grow(len(point.Name) + 32)
	encoder := msgpack.NewEncoder(&buffer)

	if err := encoder.EncodeArrayLen(2); err != nil {
		return nil, fmt.Errorf("msgpack: encoding outer array: %w", err)
	}
	if err := encoder.EncodeString(point.Name); err != nil {
		return nil, fmt.Errorf("msgpack: encoding name: %w", err)
	}
	if err := encoder.EncodeArrayLen(2); err != nil {
		return nil, fmt.Errorf("msgpack: encoding point array: %w", err)
	}
	if err := encoder.EncodeInt(point.Timestamp); err != nil {
		return nil, fmt.Errorf("msgpack: encoding timestamp: %w", err)
	}

	var err error
	if point.Value.IsFloat() {
		err = encoder.EncodeFloat64(point.Value.Float64())
	} else {
		err = encoder.EncodeInt(point.Value.Int64())
	}
	if err != nil {
		return nil, fmt.Errorf("msgpack: encoding value: %w", err)
	}

	return buffer.Bytes(), nil
}

func (msgpackCodec) Decode(data []byte) (Datapoint, error) {
	reader := bytes.NewReader(data)
	decoder := msgpack.NewDecoder(reader)

	if err := expectArrayLen(decoder, "outer"); err != nil {
		return Datapoint{}, err
	}

	name, err := decoder.DecodeString()
	if err != nil {
		return Datapoint{}, malformed("name: %v", err)
	}

	if err := expectArrayLen(decoder, "point"); err != nil {
		return Datapoint{}, err
	}

	decodedTimestamp, err := decoder.DecodeInterfaceLoose()
	if err != nil {
		return Datapoint{}, malformed("timestamp: %v", err)
	}
	timestamp, err := timestampFrom(decodedTimestamp)
	if err != nil {
		return Datapoint{}, err
	}

	decodedValue, err := decoder.DecodeInterfaceLoose()
	if err != nil {
		return Datapoint{}, malformed("value: %v", err)
	}
	value, err := numberFrom(decodedValue)
	if err != nil {
		return Datapoint{}, err
	}

	if reader.Len() != 0 {
		return Datapoint{}, malformed("%d trailing bytes", reader.Len())
	}

	return Datapoint{Name: name, Timestamp: timestamp, Value: value}, nil
}

func expectArrayLen(decoder *msgpack.Decoder, which string) error {
	length, err := decoder.DecodeArrayLen()
	if err != nil {
		return malformed("%s array: %v", which, err)
	}
	if length != 2 {
		return malformed("%s array has %d elements, want 2", which, length)
	}
	return nil
}
