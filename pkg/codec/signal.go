// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package codec converts between CAN frame payloads and signal values
// described by a db.Database. Signal level functions operate on a raw
// uint64; the message and node codecs layer scaling, multiplexing and
// transmit/receive filtering on top.
package codec

import (
	"math"

	cderrors "github.com/boschglobal/dse.candb/pkg/errors"

	"github.com/boschglobal/dse.candb/pkg/db"
)

// SignalValue is one decoded signal: the raw bits as extracted from
// the payload, the scaled physical value, and the value table label
// when the raw value has one.
type SignalValue struct {
	Raw      uint64
	Physical float64
	Label    string
}

// ExtractRaw reads the signal's bits from payload. The returned value
// is not sign extended or scaled.
func ExtractRaw(s *db.Signal, payload []byte) (uint64, error) {
	if err := checkSpan(s, payload); err != nil {
		return 0, err
	}
	var raw uint64
	byteIdx := int(s.Start) / 8
	bitIdx := int(s.Start) % 8
	if s.ByteOrder == db.BigEndian {
		// Start is the MSB; walk descending bit positions, wrapping
		// to bit 7 of the next byte.
		for i := uint8(0); i < s.Length; i++ {
			bit := (payload[byteIdx] >> bitIdx) & 1
			raw = raw<<1 | uint64(bit)
			bitIdx--
			if bitIdx < 0 {
				bitIdx = 7
				byteIdx++
			}
		}
		return raw, nil
	}
	// Start is the LSB; bit i of the value is payload bit Start+i.
	for i := uint8(0); i < s.Length; i++ {
		bit := (payload[byteIdx] >> bitIdx) & 1
		raw |= uint64(bit) << i
		bitIdx++
		if bitIdx > 7 {
			bitIdx = 0
			byteIdx++
		}
	}
	return raw, nil
}

// InjectRaw writes the low Length bits of raw into payload at the
// signal's position. Other bits of the payload are left untouched.
func InjectRaw(raw uint64, s *db.Signal, payload []byte) error {
	if err := checkSpan(s, payload); err != nil {
		return err
	}
	byteIdx := int(s.Start) / 8
	bitIdx := int(s.Start) % 8
	if s.ByteOrder == db.BigEndian {
		for i := int(s.Length) - 1; i >= 0; i-- {
			bit := byte(raw>>i) & 1
			payload[byteIdx] &^= 1 << bitIdx
			payload[byteIdx] |= bit << bitIdx
			bitIdx--
			if bitIdx < 0 {
				bitIdx = 7
				byteIdx++
			}
		}
		return nil
	}
	for i := uint8(0); i < s.Length; i++ {
		bit := byte(raw>>i) & 1
		payload[byteIdx] &^= 1 << bitIdx
		payload[byteIdx] |= bit << bitIdx
		bitIdx++
		if bitIdx > 7 {
			bitIdx = 0
			byteIdx++
		}
	}
	return nil
}

// checkSpan rejects any access outside the payload before a single
// bit is read or written.
func checkSpan(s *db.Signal, payload []byte) error {
	bits := len(payload) * 8
	last := lastBitIndex(s)
	if int(s.Start)/8 >= len(payload) || last >= bits {
		return cderrors.NewCodecError(cderrors.ErrBitRangeExceeded, s.Name)
	}
	return nil
}

// lastBitIndex is the absolute payload bit index of the final bit the
// signal touches, in the byte order's walk direction.
func lastBitIndex(s *db.Signal) int {
	if s.ByteOrder == db.BigEndian {
		// msb in ascending numbering, then Length-1 steps forward.
		msb := 8*(int(s.Start)/8) + (7 - int(s.Start)%8)
		return msb + int(s.Length) - 1
	}
	return int(s.Start) + int(s.Length) - 1
}

// DecodeSignal extracts and scales one signal from payload.
func DecodeSignal(s *db.Signal, payload []byte) (SignalValue, error) {
	raw, err := ExtractRaw(s, payload)
	if err != nil {
		return SignalValue{}, err
	}
	v := SignalValue{Raw: raw}
	switch s.Kind {
	case db.KindFloat:
		if s.Length != 32 {
			return SignalValue{}, cderrors.ErrFloatWidth(s.Name, s.Length)
		}
		v.Physical = float64(math.Float32frombits(uint32(raw)))
	case db.KindDouble:
		if s.Length != 64 {
			return SignalValue{}, cderrors.ErrFloatWidth(s.Name, s.Length)
		}
		v.Physical = math.Float64frombits(raw)
	case db.KindSigned:
		signed := signExtend(raw, s.Length)
		v.Physical = float64(signed)*s.Factor + s.Offset
		if s.Table != nil {
			v.Label, _ = s.Table.Label(signed)
		}
		return v, nil
	default:
		v.Physical = float64(raw)*s.Factor + s.Offset
	}
	if s.Table != nil {
		v.Label, _ = s.Table.Label(int64(raw))
	}
	return v, nil
}

// EncodeSignal converts a physical value to the raw bits to inject.
// Values outside the declared min/max, and scaled values that do not
// fit the signal's width, are rejected.
func EncodeSignal(s *db.Signal, physical float64) (uint64, error) {
	if s.Min != nil && physical < *s.Min {
		return 0, cderrors.NewCodecError(cderrors.ErrValueOutOfRange, s.Name)
	}
	if s.Max != nil && physical > *s.Max {
		return 0, cderrors.NewCodecError(cderrors.ErrValueOutOfRange, s.Name)
	}
	switch s.Kind {
	case db.KindFloat:
		if s.Length != 32 {
			return 0, cderrors.ErrFloatWidth(s.Name, s.Length)
		}
		return uint64(math.Float32bits(float32(physical))), nil
	case db.KindDouble:
		if s.Length != 64 {
			return 0, cderrors.ErrFloatWidth(s.Name, s.Length)
		}
		return math.Float64bits(physical), nil
	}

	scaled := math.Round((physical - s.Offset) / s.Factor)
	mask := widthMask(s.Length)
	if s.Kind == db.KindSigned {
		min := -float64(uint64(1) << (s.Length - 1))
		max := float64(uint64(1)<<(s.Length-1)) - 1
		if scaled < min || scaled > max {
			return 0, cderrors.NewCodecError(cderrors.ErrValueOutOfRange, s.Name)
		}
		return uint64(int64(scaled)) & mask, nil
	}
	if scaled < 0 || scaled > float64(mask) {
		return 0, cderrors.NewCodecError(cderrors.ErrValueOutOfRange, s.Name)
	}
	return uint64(scaled), nil
}

func signExtend(raw uint64, length uint8) int64 {
	if length == 64 {
		return int64(raw)
	}
	if raw&(1<<(length-1)) != 0 {
		raw |= ^widthMask(length)
	}
	return int64(raw)
}

func widthMask(length uint8) uint64 {
	if length == 64 {
		return math.MaxUint64
	}
	return (uint64(1) << length) - 1
}
