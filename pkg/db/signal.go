// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"github.com/elliotchance/orderedmap/v3"
)

// ByteOrder is the bit numbering of a signal within the payload.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota // Intel: start bit is the LSB
	BigEndian                     // Motorola: start bit is the MSB
)

// ValueKind is the raw interpretation of a signal's bits.
type ValueKind int

const (
	KindUnsigned ValueKind = iota
	KindSigned
	KindFloat  // IEEE-754 single, length must be 32
	KindDouble // IEEE-754 double, length must be 64
)

// MuxRole tags a signal's part in message multiplexing.
type MuxRole int

const (
	MuxNone     MuxRole = iota
	MuxSelector         // this signal's raw value selects the active branch
	MuxSelected         // valid only when the selector matches Ranges
)

// SwitchRange is an inclusive range of selector raw values. A plain
// multiplexed signal (SG_ m3) has Low == High; extended multiplexing
// (SG_MUL_VAL_) may span ranges.
type SwitchRange struct {
	Low  uint64
	High uint64
}

// Multiplexing is the multiplexer role variant of a signal.
type Multiplexing struct {
	Role   MuxRole
	Ranges []SwitchRange
}

func Multiplexor() Multiplexing {
	return Multiplexing{Role: MuxSelector}
}

func MultiplexedBy(switchValue uint64) Multiplexing {
	return Multiplexing{Role: MuxSelected, Ranges: []SwitchRange{{Low: switchValue, High: switchValue}}}
}

func MultiplexedByRange(ranges ...SwitchRange) Multiplexing {
	return Multiplexing{Role: MuxSelected, Ranges: ranges}
}

// Matches reports whether a selector raw value activates this signal.
// Signals without a MuxSelected role are always active.
func (m Multiplexing) Matches(selector uint64) bool {
	if m.Role != MuxSelected {
		return true
	}
	for _, r := range m.Ranges {
		if selector >= r.Low && selector <= r.High {
			return true
		}
	}
	return false
}

// Signal is a scaled bitfield within a message payload.
//
// Signal bit numbering in a message:
//
//	Byte:       0        1        2        3
//	       +--------+--------+--------+--- - -
//	       |        |        |        |
//	       +--------+--------+--------+--- - -
//	Bit:    7      0 15     8 23    16 31
//
// A little endian signal's Start is the index of its LSB and the value
// grows toward higher bit indexes. A big endian signal's Start is the
// index of its MSB and the value continues toward numerically lower
// in-byte positions, descending into the next byte.
type Signal struct {
	Name      string
	Start     uint8
	Length    uint8 // 1..64
	ByteOrder ByteOrder
	Kind      ValueKind
	Factor    float64
	Offset    float64
	Min       *float64
	Max       *float64
	Unit      string
	Receivers []string // node names
	Mux       Multiplexing
	Table     *ValueTable
	Comment   string

	attributes *orderedmap.OrderedMap[string, *Attribute]
}

// NewSignal returns an unsigned little endian signal with unit scaling.
func NewSignal(name string, start uint8, length uint8) *Signal {
	return &Signal{
		Name:       name,
		Start:      start,
		Length:     length,
		Factor:     1,
		attributes: newAttributeMap(),
	}
}

func (s *Signal) ObjectKind() ObjectKind {
	return ObjectSignal
}

func (s *Signal) Attributes() *orderedmap.OrderedMap[string, *Attribute] {
	if s.attributes == nil {
		s.attributes = newAttributeMap()
	}
	return s.attributes
}

// SetAttribute attaches an explicit attribute value; a nil value
// records the attachment without an override.
func (s *Signal) SetAttribute(def *AttributeDefinition, v *Value) error {
	return setAttribute(s.Attributes(), def, v)
}

// ReceivedBy reports whether the named node is a receiver of this
// signal.
func (s *Signal) ReceivedBy(node string) bool {
	for _, r := range s.Receivers {
		if r == node {
			return true
		}
	}
	return false
}

// ValueTable maps raw signal values to textual labels. Keys are
// unique; insertion order carries no meaning.
type ValueTable struct {
	Name   string
	labels map[int64]string
}

func NewValueTable(name string, labels map[int64]string) *ValueTable {
	t := &ValueTable{Name: name, labels: map[int64]string{}}
	for raw, label := range labels {
		t.labels[raw] = label
	}
	return t
}

func (t *ValueTable) Label(raw int64) (string, bool) {
	label, ok := t.labels[raw]
	return label, ok
}

// RawByLabel is the reverse lookup, used when encoding a choice
// string instead of a number.
func (t *ValueTable) RawByLabel(label string) (int64, bool) {
	for raw, l := range t.labels {
		if l == label {
			return raw, true
		}
	}
	return 0, false
}

func (t *ValueTable) Len() int {
	return len(t.labels)
}
