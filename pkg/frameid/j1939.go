// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package frameid

import (
	"fmt"

	cderrors "github.com/boschglobal/dse.candb/pkg/errors"
)

// PDU2Threshold splits the PDU Format range: below it the frame is
// peer-to-peer (PDU1) and PDUSpecific addresses the destination, from
// it upward the frame is broadcast (PDU2) and PDUSpecific extends the
// PGN.
const PDU2Threshold = 240

// J1939 is a 29 bit identifier decoded per the SAE J1939 field layout:
// bits [28:26] priority, bit 25 reserved (EDP), bit 24 data page,
// bits [23:16] PDU Format, bits [15:8] PDU Specific, bits [7:0]
// source address.
type J1939 struct {
	Priority      uint8 // 0..7
	Reserved      uint8 // 0..1
	DataPage      uint8 // 0..1
	PDUFormat     uint8
	PDUSpecific   uint8
	SourceAddress uint8
}

func decodeJ1939(raw uint32) J1939 {
	return J1939{
		Priority:      uint8(raw>>26) & 0x7,
		Reserved:      uint8(raw>>25) & 0x1,
		DataPage:      uint8(raw>>24) & 0x1,
		PDUFormat:     uint8(raw >> 16),
		PDUSpecific:   uint8(raw >> 8),
		SourceAddress: uint8(raw),
	}
}

// J1939FromPGN builds an id carrying the given parameter group number
// with zero priority and source address.
func J1939FromPGN(pgn uint32) (J1939, error) {
	if pgn > 0x3FFFF {
		return J1939{}, cderrors.ErrInvalidPGN(pgn)
	}
	return J1939{
		Reserved:    uint8(pgn>>17) & 0x1,
		DataPage:    uint8(pgn>>16) & 0x1,
		PDUFormat:   uint8(pgn >> 8),
		PDUSpecific: uint8(pgn),
	}, nil
}

func (f J1939) Raw() uint32 {
	return uint32(f.Priority&0x7)<<26 |
		uint32(f.Reserved&0x1)<<25 |
		uint32(f.DataPage&0x1)<<24 |
		uint32(f.PDUFormat)<<16 |
		uint32(f.PDUSpecific)<<8 |
		uint32(f.SourceAddress)
}

func (f J1939) Extended() bool { return true }
func (f J1939) isFrameId()     {}

// IsBroadcast reports a PDU2 (broadcast) frame.
func (f J1939) IsBroadcast() bool {
	return f.PDUFormat >= PDU2Threshold
}

// PGN assembles the 18 bit parameter group number. For PDU1 frames the
// PDU Specific byte is a destination address and is excluded.
func (f J1939) PGN() uint32 {
	pgn := uint32(f.Reserved&0x1)<<17 |
		uint32(f.DataPage&0x1)<<16 |
		uint32(f.PDUFormat)<<8
	if f.IsBroadcast() {
		pgn |= uint32(f.PDUSpecific)
	}
	return pgn
}

// Destination returns the destination address of a PDU1 frame; PDU2
// frames address every node (0xFF).
func (f J1939) Destination() uint8 {
	if f.IsBroadcast() {
		return 0xFF
	}
	return f.PDUSpecific
}

func (f J1939) String() string {
	return fmt.Sprintf("J1939(prio=%d pgn=0x%05X sa=0x%02X)", f.Priority, f.PGN(), f.SourceAddress)
}
