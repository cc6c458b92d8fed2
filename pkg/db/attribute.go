// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v3"

	cderrors "github.com/boschglobal/dse.candb/pkg/errors"
)

// ObjectKind identifies which object class an attribute definition
// applies to. The String form is the DBC object marker.
type ObjectKind int

const (
	ObjectDatabase ObjectKind = iota
	ObjectNode
	ObjectMessage
	ObjectSignal
	ObjectEnvVar
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectNode:
		return "BU_"
	case ObjectMessage:
		return "BO_"
	case ObjectSignal:
		return "SG_"
	case ObjectEnvVar:
		return "EV_"
	default:
		return ""
	}
}

// AttributeType is the value type of an attribute definition
// (INT, HEX, FLOAT, STRING, ENUM in DBC terms).
type AttributeType int

const (
	AttributeInt AttributeType = iota
	AttributeHex
	AttributeFloat
	AttributeString
	AttributeEnum
)

func (t AttributeType) String() string {
	switch t {
	case AttributeInt:
		return "INT"
	case AttributeHex:
		return "HEX"
	case AttributeFloat:
		return "FLOAT"
	case AttributeString:
		return "STRING"
	case AttributeEnum:
		return "ENUM"
	default:
		return ""
	}
}

// Value is a typed attribute value. Int carries INT, HEX and ENUM
// (choice index) values, Float carries FLOAT, Str carries STRING.
type Value struct {
	Type  AttributeType
	Int   int64
	Float float64
	Str   string
}

func IntValue(v int64) Value      { return Value{Type: AttributeInt, Int: v} }
func HexValue(v int64) Value      { return Value{Type: AttributeHex, Int: v} }
func FloatValue(v float64) Value  { return Value{Type: AttributeFloat, Float: v} }
func StringValue(v string) Value  { return Value{Type: AttributeString, Str: v} }
func EnumValue(choice int64) Value {
	return Value{Type: AttributeEnum, Int: choice}
}

// AttributeDefinition declares a named attribute, the object kind it
// attaches to, its value type and bounds, and an optional default.
type AttributeDefinition struct {
	Name    string
	Kind    ObjectKind
	Type    AttributeType
	Min     float64
	Max     float64
	Choices []string // enum index -> label
	Default *Value
}

// CheckValue verifies that a value carries the definition's type.
func (d *AttributeDefinition) CheckValue(v Value) error {
	if v.Type != d.Type {
		return cderrors.NewAttributeError(cderrors.ErrTypeMismatch,
			fmt.Sprintf("attribute %q expects %s, got %s", d.Name, d.Type, v.Type))
	}
	return nil
}

// Choice returns the label of an enum value.
func (d *AttributeDefinition) Choice(v Value) (string, bool) {
	if d.Type != AttributeEnum || v.Int < 0 || int(v.Int) >= len(d.Choices) {
		return "", false
	}
	return d.Choices[v.Int], true
}

// Attribute is an attribute value attached to one object. A nil Value
// means the object carries no override and the definition default
// applies.
type Attribute struct {
	Definition *AttributeDefinition
	Value      *Value
}

// AttributeOwner is implemented by every object that can carry
// attribute values (Database, Node, Message, Signal).
type AttributeOwner interface {
	ObjectKind() ObjectKind
	Attributes() *orderedmap.OrderedMap[string, *Attribute]
}

// Resolve computes the effective value of an attribute on an object:
// the explicit value when present, else the definition default, else
// ErrNoAttributeValue.
func Resolve(owner AttributeOwner, def *AttributeDefinition) (Value, error) {
	if att, ok := owner.Attributes().Get(def.Name); ok && att.Value != nil {
		if err := def.CheckValue(*att.Value); err != nil {
			return Value{}, err
		}
		return *att.Value, nil
	}
	if def.Default != nil {
		if err := def.CheckValue(*def.Default); err != nil {
			return Value{}, err
		}
		return *def.Default, nil
	}
	return Value{}, cderrors.NewAttributeError(cderrors.ErrNoAttributeValue,
		fmt.Sprintf("attribute %q", def.Name))
}

// ResolveAll resolves every attribute definition whose object kind
// matches the owner, whether or not the owner carries an explicit
// value. Definitions with neither value nor default are skipped.
func (d *Database) ResolveAll(owner AttributeOwner) map[string]Value {
	resolved := map[string]Value{}
	for name, def := range d.definitions.AllFromFront() {
		if def.Kind != owner.ObjectKind() {
			continue
		}
		v, err := Resolve(owner, def)
		if err != nil {
			continue
		}
		resolved[name] = v
	}
	return resolved
}

func newAttributeMap() *orderedmap.OrderedMap[string, *Attribute] {
	return orderedmap.NewOrderedMap[string, *Attribute]()
}

func setAttribute(m *orderedmap.OrderedMap[string, *Attribute], def *AttributeDefinition, v *Value) error {
	if v != nil {
		if err := def.CheckValue(*v); err != nil {
			return err
		}
	}
	m.Set(def.Name, &Attribute{Definition: def, Value: v})
	return nil
}
