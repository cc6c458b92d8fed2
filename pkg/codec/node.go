// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	cderrors "github.com/boschglobal/dse.candb/pkg/errors"

	"github.com/boschglobal/dse.candb/pkg/db"
)

// NodeCodec restricts encode and decode to one node's view of the
// bus: it encodes only messages the node transmits and decodes only
// signals the node receives.
type NodeCodec struct {
	db   *db.Database
	node string
}

func NewNodeCodec(d *db.Database, node string) *NodeCodec {
	return &NodeCodec{db: d, node: node}
}

func (c *NodeCodec) Node() string {
	return c.node
}

// EncodeForNode encodes a message payload on behalf of the node. The
// node must be the message's transmitter; supplying a value for a
// signal of a message the node does not transmit is rejected before
// any encoding happens.
func (c *NodeCodec) EncodeForNode(m *db.Message, values map[string]float64) ([]byte, error) {
	if !c.db.Transmits(c.node, m) {
		return nil, cderrors.NewCodecError(cderrors.ErrSignalNotOwnedByNode,
			m.Name+" is not transmitted by "+c.node)
	}
	return NewMessageCodec(c.db, m).Encode(values)
}

// DecodeForNode decodes a payload and filters the result to the
// signals whose receiver list names the node. Signals the node does
// not receive are silently excluded.
func (c *NodeCodec) DecodeForNode(m *db.Message, payload []byte) (map[string]SignalValue, error) {
	values, err := NewMessageCodec(c.db, m).Decode(payload)
	if err != nil {
		return nil, err
	}
	for name := range values {
		s, _ := m.SignalByName(name)
		if s == nil || !s.ReceivedBy(c.node) {
			delete(values, name)
		}
	}
	return values, nil
}
