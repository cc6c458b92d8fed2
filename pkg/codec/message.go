// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	cderrors "github.com/boschglobal/dse.candb/pkg/errors"

	"github.com/boschglobal/dse.candb/pkg/db"
)

// startValueAttribute names the message attribute supplying a default
// raw value for signals omitted on encode.
const startValueAttribute = "GenSigStartValue"

// MessageCodec decodes and encodes whole frame payloads for one
// message. It holds no mutable state and is safe for concurrent use.
type MessageCodec struct {
	db      *db.Database
	message *db.Message
}

func NewMessageCodec(d *db.Database, m *db.Message) *MessageCodec {
	return &MessageCodec{db: d, message: m}
}

func (c *MessageCodec) Message() *db.Message {
	return c.message
}

// Decode extracts every signal active in the payload. For a
// multiplexed message the selector is decoded first and multiplexed
// signals whose switch does not match are omitted from the result;
// a non-matching signal is never an error.
func (c *MessageCodec) Decode(payload []byte) (map[string]SignalValue, error) {
	var selector uint64
	if mux := c.message.Multiplexor(); mux != nil {
		raw, err := ExtractRaw(mux, payload)
		if err != nil {
			return nil, err
		}
		selector = raw
	}
	values := map[string]SignalValue{}
	for _, s := range c.message.Signals {
		if !s.Mux.Matches(selector) {
			continue
		}
		v, err := DecodeSignal(s, payload)
		if err != nil {
			return nil, err
		}
		values[s.Name] = v
	}
	return values, nil
}

// Encode builds a zeroed payload of the message's DLC and injects the
// given physical values. The multiplexor value is resolved first so
// that only signals selected by it are encoded; values for signals the
// selector deactivates are skipped. A value naming a signal the
// message does not carry is an error, as is a missing value for an
// active signal without a start value attribute. The error paths
// allocate nothing visible to the caller.
func (c *MessageCodec) Encode(values map[string]float64) ([]byte, error) {
	for name := range values {
		if _, ok := c.message.SignalByName(name); !ok {
			return nil, cderrors.ErrSignalNotInMessage(name, c.message.Name)
		}
	}

	var selector uint64
	if mux := c.message.Multiplexor(); mux != nil {
		raw, err := c.rawFor(mux, values)
		if err != nil {
			return nil, err
		}
		selector = raw
	}

	payload := make([]byte, c.message.Length)
	for _, s := range c.message.Signals {
		if !s.Mux.Matches(selector) {
			continue
		}
		raw, err := c.rawFor(s, values)
		if err != nil {
			return nil, err
		}
		if err := InjectRaw(raw, s, payload); err != nil {
			return nil, err
		}
	}
	return payload, nil
}

// rawFor resolves the raw value for a signal on encode: the supplied
// physical value, else the signal's start value attribute.
func (c *MessageCodec) rawFor(s *db.Signal, values map[string]float64) (uint64, error) {
	if physical, ok := values[s.Name]; ok {
		return EncodeSignal(s, physical)
	}
	if raw, ok := c.startValue(s); ok {
		return raw & widthMask(s.Length), nil
	}
	return 0, cderrors.ErrSignalValueMissing(s.Name)
}

func (c *MessageCodec) startValue(s *db.Signal) (uint64, bool) {
	if c.db == nil {
		return 0, false
	}
	def, ok := c.db.AttributeDefinition(startValueAttribute)
	if !ok || def.Kind != db.ObjectSignal {
		return 0, false
	}
	v, err := db.Resolve(s, def)
	if err != nil {
		return 0, false
	}
	switch v.Type {
	case db.AttributeInt, db.AttributeHex, db.AttributeEnum:
		return uint64(v.Int), true
	case db.AttributeFloat:
		return uint64(int64(v.Float)), true
	}
	return 0, false
}
