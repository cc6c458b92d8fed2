// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package frameid classifies raw CAN arbitration identifiers into
// protocol specific variants. The scheme is stated by the database
// configuration, never inferred from the id's bit pattern: a J1939 id
// and a GM parameter id can both be structurally valid for the same
// 29 bits.
package frameid

import (
	"fmt"

	cderrors "github.com/boschglobal/dse.candb/pkg/errors"
)

const (
	MaxStandard = uint32(0x7FF)
	MaxExtended = uint32(0x1FFFFFFF)
)

// Scheme selects the arbitration-id decoding applied to extended
// frames.
type Scheme int

const (
	SchemeCAN Scheme = iota // plain 11/29 bit identifiers
	SchemeJ1939
	SchemeGMParameterID
)

func (s Scheme) String() string {
	switch s {
	case SchemeCAN:
		return "can"
	case SchemeJ1939:
		return "j1939"
	case SchemeGMParameterID:
		return "gmpid"
	default:
		return "unknown"
	}
}

// FrameId is the decoded arbitration id variant. The set of
// implementations is closed.
type FrameId interface {
	// Raw reassembles the wire identifier; decode(raw) round-trips.
	Raw() uint32
	// Extended reports a 29 bit identifier.
	Extended() bool

	isFrameId()
}

// Standard is a plain 11 bit identifier.
type Standard struct {
	ID uint32
}

func (f Standard) Raw() uint32    { return f.ID }
func (f Standard) Extended() bool { return false }
func (f Standard) isFrameId()     {}

func (f Standard) String() string {
	return fmt.Sprintf("0x%03X", f.ID)
}

// Extended29 is a plain 29 bit identifier not matching any vendor
// scheme.
type Extended29 struct {
	ID uint32
}

func (f Extended29) Raw() uint32    { return f.ID }
func (f Extended29) Extended() bool { return true }
func (f Extended29) isFrameId()     {}

func (f Extended29) String() string {
	return fmt.Sprintf("0x%08X", f.ID)
}

// Decode classifies a raw identifier under the given scheme. Ids wider
// than the declared frame format fail with ErrInvalidIdentifier.
func Decode(raw uint32, extended bool, scheme Scheme) (FrameId, error) {
	if !extended {
		if raw > MaxStandard {
			return nil, cderrors.NewFrameIdError(cderrors.ErrInvalidIdentifier,
				fmt.Sprintf("standard frame id 0x%x is more than 11 bits", raw))
		}
		if scheme == SchemeGMParameterID {
			return decodeGMParameterID(raw), nil
		}
		return Standard{ID: raw}, nil
	}
	if raw > MaxExtended {
		return nil, cderrors.NewFrameIdError(cderrors.ErrInvalidIdentifier,
			fmt.Sprintf("extended frame id 0x%x is more than 29 bits", raw))
	}
	switch scheme {
	case SchemeJ1939:
		return decodeJ1939(raw), nil
	case SchemeGMParameterID:
		return decodeGMParameterIDExtended(raw), nil
	default:
		return Extended29{ID: raw}, nil
	}
}

// DBCFrameID renders the id as DBC text does, with bit 31 set for
// extended frames.
func DBCFrameID(f FrameId) uint32 {
	raw := f.Raw()
	if f.Extended() {
		raw |= 0x80000000
	}
	return raw
}
