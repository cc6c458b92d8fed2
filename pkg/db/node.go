// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"github.com/elliotchance/orderedmap/v3"
)

// Node is an ECU on the bus. Its transmit and receive sets are not
// stored on the node; they are derived through the database indices
// from Message.Transmitter and Signal.Receivers.
type Node struct {
	Name    string
	Comment string

	attributes *orderedmap.OrderedMap[string, *Attribute]
}

func NewNode(name string) *Node {
	return &Node{Name: name, attributes: newAttributeMap()}
}

func (n *Node) ObjectKind() ObjectKind {
	return ObjectNode
}

func (n *Node) Attributes() *orderedmap.OrderedMap[string, *Attribute] {
	if n.attributes == nil {
		n.attributes = newAttributeMap()
	}
	return n.attributes
}

func (n *Node) SetAttribute(def *AttributeDefinition, v *Value) error {
	return setAttribute(n.Attributes(), def, v)
}
