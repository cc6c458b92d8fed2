// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package db holds a DBC network description as a queryable object
// graph: nodes, messages, signals, value tables and attributes. The
// graph is populated by an external parser, checked once, and then
// treated as read only by the codec packages; concurrent reads need
// no locking.
package db

import (
	"github.com/elliotchance/orderedmap/v3"

	"github.com/boschglobal/dse.candb/pkg/frameid"
)

// ProtocolJ1939 is the ProtocolType value selecting J1939 arbitration
// id decoding.
const ProtocolJ1939 = "J1939"

type Database struct {
	Version string
	Comment string

	// Arbitration scheme configuration; stated by the source file,
	// never inferred from id bit patterns.
	ProtocolType      string
	UseGMParameterIDs bool

	nodes       []*Node
	messages    []*Message
	definitions *orderedmap.OrderedMap[string, *AttributeDefinition]
	valueTables map[string]*ValueTable
	attributes  *orderedmap.OrderedMap[string, *Attribute]

	nodeByName    map[string]*Node
	messageByName map[string]*Message
	messageByID   map[uint32]*Message
	txIndex       map[string]map[string]struct{} // node name -> message names
}

func NewDatabase() *Database {
	return &Database{
		definitions:   orderedmap.NewOrderedMap[string, *AttributeDefinition](),
		valueTables:   map[string]*ValueTable{},
		attributes:    newAttributeMap(),
		nodeByName:    map[string]*Node{},
		messageByName: map[string]*Message{},
		messageByID:   map[uint32]*Message{},
		txIndex:       map[string]map[string]struct{}{},
	}
}

// Scheme maps the database configuration flags to the arbitration id
// scheme.
func (d *Database) Scheme() frameid.Scheme {
	if d.UseGMParameterIDs {
		return frameid.SchemeGMParameterID
	}
	if d.ProtocolType == ProtocolJ1939 {
		return frameid.SchemeJ1939
	}
	return frameid.SchemeCAN
}

func (d *Database) ObjectKind() ObjectKind {
	return ObjectDatabase
}

func (d *Database) Attributes() *orderedmap.OrderedMap[string, *Attribute] {
	return d.attributes
}

func (d *Database) SetAttribute(def *AttributeDefinition, v *Value) error {
	return setAttribute(d.attributes, def, v)
}

// AddNode appends a node. Duplicate names are kept so that Check can
// report them; lookups resolve to the first occurrence.
func (d *Database) AddNode(n *Node) *Database {
	d.nodes = append(d.nodes, n)
	if _, ok := d.nodeByName[n.Name]; !ok {
		d.nodeByName[n.Name] = n
	}
	return d
}

func (d *Database) AddMessage(m *Message) *Database {
	d.messages = append(d.messages, m)
	if _, ok := d.messageByName[m.Name]; !ok {
		d.messageByName[m.Name] = m
	}
	if _, ok := d.messageByID[m.RawID]; !ok {
		d.messageByID[m.RawID] = m
	}
	if m.Transmitter != "" {
		if d.txIndex[m.Transmitter] == nil {
			d.txIndex[m.Transmitter] = map[string]struct{}{}
		}
		d.txIndex[m.Transmitter][m.Name] = struct{}{}
	}
	return d
}

func (d *Database) AddValueTable(t *ValueTable) *Database {
	d.valueTables[t.Name] = t
	return d
}

// DefineAttribute registers an attribute definition; the first
// definition of a name wins.
func (d *Database) DefineAttribute(def *AttributeDefinition) *Database {
	if d.definitions.Has(def.Name) {
		return d
	}
	d.definitions.Set(def.Name, def)
	return d
}

func (d *Database) Nodes() []*Node       { return d.nodes }
func (d *Database) Messages() []*Message { return d.messages }

func (d *Database) AttributeDefinition(name string) (*AttributeDefinition, bool) {
	return d.definitions.Get(name)
}

func (d *Database) NodeByName(name string) (*Node, bool) {
	n, ok := d.nodeByName[name]
	return n, ok
}

func (d *Database) MessageByName(name string) (*Message, bool) {
	m, ok := d.messageByName[name]
	return m, ok
}

// MessageByFrameID looks a message up by its raw arbitration id (the
// DBC extended marker bit is ignored).
func (d *Database) MessageByFrameID(raw uint32) (*Message, bool) {
	m, ok := d.messageByID[raw&0x1FFFFFFF]
	return m, ok
}

func (d *Database) ValueTableByName(name string) (*ValueTable, bool) {
	t, ok := d.valueTables[name]
	return t, ok
}

// Transmits reports whether the node is the message's sender.
func (d *Database) Transmits(node string, m *Message) bool {
	return m.Transmitter == node && node != ""
}

// Receives reports whether the node is listed as a receiver of any
// signal in the message.
func (d *Database) Receives(node string, m *Message) bool {
	for _, s := range m.Signals {
		if s.ReceivedBy(node) {
			return true
		}
	}
	return false
}

// TxMessages lists the messages the node transmits, in database order.
func (d *Database) TxMessages(node string) []*Message {
	names := d.txIndex[node]
	if len(names) == 0 {
		return nil
	}
	messages := []*Message{}
	for _, m := range d.messages {
		if _, ok := names[m.Name]; ok {
			messages = append(messages, m)
		}
	}
	return messages
}

// RxMessages lists the messages with at least one signal the node
// receives.
func (d *Database) RxMessages(node string) []*Message {
	messages := []*Message{}
	for _, m := range d.messages {
		if d.Receives(node, m) {
			messages = append(messages, m)
		}
	}
	return messages
}

// TxSignals lists every signal of every message the node transmits.
func (d *Database) TxSignals(node string) []*Signal {
	signals := []*Signal{}
	for _, m := range d.TxMessages(node) {
		signals = append(signals, m.Signals...)
	}
	return signals
}

// RxSignals lists every signal the node is a receiver of.
func (d *Database) RxSignals(node string) []*Signal {
	signals := []*Signal{}
	for _, m := range d.messages {
		for _, s := range m.Signals {
			if s.ReceivedBy(node) {
				signals = append(signals, s)
			}
		}
	}
	return signals
}
