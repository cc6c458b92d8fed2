// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package frameid

import "fmt"

// GMParameterID is GM's 11 bit identifier scheme: bits [10:8] request
// type, bits [7:0] arbitration id.
type GMParameterID struct {
	RequestType   uint8
	ArbitrationID uint8
}

func decodeGMParameterID(raw uint32) GMParameterID {
	return GMParameterID{
		RequestType:   uint8(raw >> 8),
		ArbitrationID: uint8(raw),
	}
}

func (f GMParameterID) Raw() uint32 {
	return uint32(f.RequestType)<<8 | uint32(f.ArbitrationID)
}

func (f GMParameterID) Extended() bool { return false }
func (f GMParameterID) isFrameId()     {}

func (f GMParameterID) String() string {
	return fmt.Sprintf("GMParameterId(request=0x%02X arb=0x%02X)", f.RequestType, f.ArbitrationID)
}

// GMParameterIDExtended is GM's 29 bit scheme: bits [28:26] priority,
// bits [25:13] parameter id, bits [12:0] source id.
type GMParameterIDExtended struct {
	Priority    uint8  // 0..7
	ParameterID uint16 // 13 bits
	SourceID    uint16 // 13 bits
}

func decodeGMParameterIDExtended(raw uint32) GMParameterIDExtended {
	return GMParameterIDExtended{
		Priority:    uint8(raw>>26) & 0x7,
		ParameterID: uint16(raw>>13) & 0x1FFF,
		SourceID:    uint16(raw) & 0x1FFF,
	}
}

func (f GMParameterIDExtended) Raw() uint32 {
	return uint32(f.Priority&0x7)<<26 |
		uint32(f.ParameterID&0x1FFF)<<13 |
		uint32(f.SourceID&0x1FFF)
}

func (f GMParameterIDExtended) Extended() bool { return true }
func (f GMParameterIDExtended) isFrameId()     {}

func (f GMParameterIDExtended) String() string {
	return fmt.Sprintf("GMParameterIdExtended(prio=0x%X pid=0x%04X src=0x%04X)",
		f.Priority, f.ParameterID, f.SourceID)
}
