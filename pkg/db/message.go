// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"github.com/elliotchance/orderedmap/v3"

	"github.com/boschglobal/dse.candb/pkg/frameid"
)

// Message is a CAN message: an arbitration id, a payload length and an
// ordered collection of signals. Transmitter is the sending node name,
// empty when the message has no sender.
type Message struct {
	Name        string
	RawID       uint32
	IsExtended  bool
	Length      uint8 // DLC, payload length in bytes
	Transmitter string
	Signals     []*Signal
	Groups      []*SignalGroup
	Comment     string

	attributes *orderedmap.OrderedMap[string, *Attribute]
	byName     map[string]*Signal
}

// SignalGroup names a set of signals that are updated together.
type SignalGroup struct {
	Name        string
	Repetitions uint32
	Signals     []string
}

func NewMessage(name string, rawID uint32, extended bool, length uint8) *Message {
	return &Message{
		Name:       name,
		RawID:      rawID,
		IsExtended: extended,
		Length:     length,
		attributes: newAttributeMap(),
		byName:     map[string]*Signal{},
	}
}

// AddSignal appends a signal, keeping the declaration order.
func (m *Message) AddSignal(s *Signal) *Message {
	if m.byName == nil {
		m.byName = map[string]*Signal{}
	}
	m.Signals = append(m.Signals, s)
	if _, ok := m.byName[s.Name]; !ok {
		m.byName[s.Name] = s
	}
	return m
}

func (m *Message) SignalByName(name string) (*Signal, bool) {
	s, ok := m.byName[name]
	return s, ok
}

// Multiplexor returns the message's selector signal, or nil when the
// message is not multiplexed.
func (m *Message) Multiplexor() *Signal {
	for _, s := range m.Signals {
		if s.Mux.Role == MuxSelector {
			return s
		}
	}
	return nil
}

// IsMultiplexed reports whether any signal is valid only for some
// selector values.
func (m *Message) IsMultiplexed() bool {
	return m.Multiplexor() != nil
}

// FrameID decodes the raw arbitration id under the given scheme.
func (m *Message) FrameID(scheme frameid.Scheme) (frameid.FrameId, error) {
	return frameid.Decode(m.RawID, m.IsExtended, scheme)
}

// DBCFrameID is the id as written in DBC text, with bit 31 marking an
// extended frame.
func (m *Message) DBCFrameID() uint32 {
	id := m.RawID
	if m.IsExtended {
		id |= 0x80000000
	}
	return id
}

func (m *Message) ObjectKind() ObjectKind {
	return ObjectMessage
}

func (m *Message) Attributes() *orderedmap.OrderedMap[string, *Attribute] {
	if m.attributes == nil {
		m.attributes = newAttributeMap()
	}
	return m.attributes
}

func (m *Message) SetAttribute(def *AttributeDefinition, v *Value) error {
	return setAttribute(m.Attributes(), def, v)
}

// Receivers is the union of all signal receiver node names, in first
// appearance order.
func (m *Message) Receivers() []string {
	seen := map[string]struct{}{}
	receivers := []string{}
	for _, s := range m.Signals {
		for _, r := range s.Receivers {
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			receivers = append(receivers, r)
		}
	}
	return receivers
}
