// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boschglobal/dse.candb/pkg/errors"
)

func cycleTimeDef() *AttributeDefinition {
	def := IntValue(100)
	return &AttributeDefinition{
		Name:    "GenMsgCycleTime",
		Kind:    ObjectMessage,
		Type:    AttributeInt,
		Min:     0,
		Max:     60000,
		Default: &def,
	}
}

func TestResolveDefaultPropagation(t *testing.T) {
	def := cycleTimeDef()
	m := NewMessage("EngineStatus", 0x100, false, 8)

	// No explicit value: the definition default applies.
	v, err := Resolve(m, def)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), v.Int)

	// Explicit value wins over the default.
	explicit := IntValue(50)
	assert.NoError(t, m.SetAttribute(def, &explicit))
	v, err = Resolve(m, def)
	assert.NoError(t, err)
	assert.Equal(t, int64(50), v.Int)
}

func TestResolveNoAttributeValue(t *testing.T) {
	def := &AttributeDefinition{
		Name: "SendType",
		Kind: ObjectMessage,
		Type: AttributeString,
	}
	m := NewMessage("EngineStatus", 0x100, false, 8)

	_, err := Resolve(m, def)
	assert.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoAttributeValue)

	// Attaching without an override still resolves to nothing.
	assert.NoError(t, m.SetAttribute(def, nil))
	_, err = Resolve(m, def)
	assert.ErrorIs(t, err, errors.ErrNoAttributeValue)
}

func TestResolveTypeMismatch(t *testing.T) {
	def := cycleTimeDef()
	m := NewMessage("EngineStatus", 0x100, false, 8)

	wrong := StringValue("fast")
	err := m.SetAttribute(def, &wrong)
	assert.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTypeMismatch)
}

func TestResolveAll(t *testing.T) {
	d := NewDatabase()
	d.DefineAttribute(cycleTimeDef())
	d.DefineAttribute(&AttributeDefinition{
		Name: "GenMsgDelayTime",
		Kind: ObjectMessage,
		Type: AttributeInt,
		// No default, no explicit value: not resolvable.
	})
	nodeDef := StringValue("none")
	d.DefineAttribute(&AttributeDefinition{
		Name:    "NodeLayerModules",
		Kind:    ObjectNode,
		Type:    AttributeString,
		Default: &nodeDef,
	})

	m := NewMessage("EngineStatus", 0x100, false, 8)
	d.AddMessage(m)

	resolved := d.ResolveAll(m)
	assert.Equal(t, 1, len(resolved))
	assert.Equal(t, int64(100), resolved["GenMsgCycleTime"].Int)
}

func TestAttributeEnumChoice(t *testing.T) {
	def := &AttributeDefinition{
		Name:    "GenMsgSendType",
		Kind:    ObjectMessage,
		Type:    AttributeEnum,
		Choices: []string{"cyclic", "spontaneous", "IfActive"},
	}
	label, ok := def.Choice(EnumValue(1))
	assert.True(t, ok)
	assert.Equal(t, "spontaneous", label)

	_, ok = def.Choice(EnumValue(3))
	assert.False(t, ok)
}

func TestValueTable(t *testing.T) {
	vt := NewValueTable("Gear", map[int64]string{0: "Neutral", 1: "Drive", 2: "Reverse"})
	assert.Equal(t, 3, vt.Len())

	label, ok := vt.Label(1)
	assert.True(t, ok)
	assert.Equal(t, "Drive", label)

	_, ok = vt.Label(9)
	assert.False(t, ok)

	raw, ok := vt.RawByLabel("Reverse")
	assert.True(t, ok)
	assert.Equal(t, int64(2), raw)
}
