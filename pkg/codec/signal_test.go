// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package codec_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boschglobal/dse.candb/pkg/codec"
	"github.com/boschglobal/dse.candb/pkg/db"
	"github.com/boschglobal/dse.candb/pkg/errors"
)

func TestExtractRawByteOrder(t *testing.T) {
	payload := []byte{0x12, 0x34}

	// Motorola: start bit 7 is the MSB of byte 0.
	big := db.NewSignal("big", 7, 16)
	big.ByteOrder = db.BigEndian
	raw, err := codec.ExtractRaw(big, payload)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0x1234), raw)

	// Intel: start bit 0 is the LSB, bytes ascend.
	little := db.NewSignal("little", 0, 16)
	raw, err = codec.ExtractRaw(little, payload)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0x3412), raw)
}

func TestExtractRawUnaligned(t *testing.T) {
	// Intel signal crossing a byte boundary: bits 4..11.
	payload := []byte{0xF0, 0x0A}
	s := db.NewSignal("s", 4, 8)
	raw, err := codec.ExtractRaw(s, payload)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0xAF), raw)
}

func TestInjectRawRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		start uint8
		order db.ByteOrder
	}{
		{name: "little aligned", start: 8, order: db.LittleEndian},
		{name: "little unaligned", start: 3, order: db.LittleEndian},
		{name: "big aligned", start: 15, order: db.BigEndian},
		{name: "big unaligned", start: 12, order: db.BigEndian},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := db.NewSignal("s", tc.start, 13)
			s.ByteOrder = tc.order
			payload := make([]byte, 8)
			assert.NoError(t, codec.InjectRaw(0x155A, s, payload))
			raw, err := codec.ExtractRaw(s, payload)
			assert.NoError(t, err)
			assert.Equal(t, uint64(0x155A), raw)
		})
	}
}

func TestInjectRawLeavesOtherBits(t *testing.T) {
	payload := []byte{0xFF, 0xFF}
	s := db.NewSignal("s", 4, 8)
	assert.NoError(t, codec.InjectRaw(0x00, s, payload))
	assert.Equal(t, []byte{0x0F, 0xF0}, payload)
}

func TestExtractRawBitRange(t *testing.T) {
	s := db.NewSignal("s", 56, 16)
	_, err := codec.ExtractRaw(s, make([]byte, 8))
	assert.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrBitRangeExceeded)

	payload := []byte{0xAA, 0xAA}
	err = codec.InjectRaw(0, db.NewSignal("s", 8, 16), payload)
	assert.ErrorIs(t, err, errors.ErrBitRangeExceeded)
	assert.Equal(t, []byte{0xAA, 0xAA}, payload, "payload untouched")
}

func TestDecodeSignalSignExtension(t *testing.T) {
	s := db.NewSignal("s", 0, 4)
	s.Kind = db.KindSigned

	v, err := codec.DecodeSignal(s, []byte{0x08})
	assert.NoError(t, err)
	assert.Equal(t, float64(-8), v.Physical)

	v, err = codec.DecodeSignal(s, []byte{0x07})
	assert.NoError(t, err)
	assert.Equal(t, float64(7), v.Physical)
}

func TestDecodeSignalScaling(t *testing.T) {
	s := db.NewSignal("s", 0, 16)
	s.Factor = 0.125
	s.Offset = -40

	v, err := codec.DecodeSignal(s, []byte{0x40, 0x01}) // raw 0x0140 = 320
	assert.NoError(t, err)
	assert.Equal(t, uint64(320), v.Raw)
	assert.Equal(t, float64(0), v.Physical)
}

func TestDecodeSignalFloat(t *testing.T) {
	s := db.NewSignal("s", 0, 32)
	s.Kind = db.KindFloat
	s.Factor = 100 // floats skip scaling

	bits := math.Float32bits(1.5)
	payload := []byte{byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)}
	v, err := codec.DecodeSignal(s, payload)
	assert.NoError(t, err)
	assert.Equal(t, float64(1.5), v.Physical)
}

func TestDecodeSignalLabel(t *testing.T) {
	s := db.NewSignal("gear", 0, 4)
	s.Table = db.NewValueTable("Gear", map[int64]string{0: "Neutral", 1: "Drive"})

	v, err := codec.DecodeSignal(s, []byte{0x01})
	assert.NoError(t, err)
	assert.Equal(t, float64(1), v.Physical)
	assert.Equal(t, "Drive", v.Label)

	v, err = codec.DecodeSignal(s, []byte{0x05})
	assert.NoError(t, err)
	assert.Equal(t, "", v.Label, "no label for unmapped raw value")
}

func TestEncodeSignalRoundTrip(t *testing.T) {
	s := db.NewSignal("s", 0, 8)
	for v := 0; v <= 255; v++ {
		raw, err := codec.EncodeSignal(s, float64(v))
		assert.NoError(t, err)
		assert.Equal(t, uint64(v), raw)
	}
}

func TestEncodeSignalInverseScaling(t *testing.T) {
	s := db.NewSignal("s", 0, 16)
	s.Factor = 0.125
	s.Offset = -40

	raw, err := codec.EncodeSignal(s, 0)
	assert.NoError(t, err)
	assert.Equal(t, uint64(320), raw)
}

func TestEncodeSignalSigned(t *testing.T) {
	s := db.NewSignal("s", 0, 4)
	s.Kind = db.KindSigned

	raw, err := codec.EncodeSignal(s, -8)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0x8), raw)

	raw, err = codec.EncodeSignal(s, 7)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0x7), raw)

	_, err = codec.EncodeSignal(s, -9)
	assert.ErrorIs(t, err, errors.ErrValueOutOfRange)
	_, err = codec.EncodeSignal(s, 8)
	assert.ErrorIs(t, err, errors.ErrValueOutOfRange)
}

func TestEncodeSignalRangeRejected(t *testing.T) {
	s := db.NewSignal("s", 0, 8)
	min, max := 10.0, 20.0
	s.Min = &min
	s.Max = &max

	_, err := codec.EncodeSignal(s, 21)
	assert.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrValueOutOfRange)

	_, err = codec.EncodeSignal(s, 9)
	assert.ErrorIs(t, err, errors.ErrValueOutOfRange)

	raw, err := codec.EncodeSignal(s, 15)
	assert.NoError(t, err)
	assert.Equal(t, uint64(15), raw)
}

func TestEncodeSignalWidthOverflow(t *testing.T) {
	s := db.NewSignal("s", 0, 8)
	_, err := codec.EncodeSignal(s, 256)
	assert.ErrorIs(t, err, errors.ErrValueOutOfRange)
}

func TestEncodeSignalFloat(t *testing.T) {
	s := db.NewSignal("s", 0, 32)
	s.Kind = db.KindFloat
	raw, err := codec.EncodeSignal(s, 1.5)
	assert.NoError(t, err)
	assert.Equal(t, uint64(math.Float32bits(1.5)), raw)

	d := db.NewSignal("d", 0, 64)
	d.Kind = db.KindDouble
	raw, err = codec.EncodeSignal(d, -0.25)
	assert.NoError(t, err)
	assert.Equal(t, math.Float64bits(-0.25), raw)
}
