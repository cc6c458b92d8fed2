// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"fmt"

	cderrors "github.com/boschglobal/dse.candb/pkg/errors"

	"github.com/boschglobal/dse.candb/pkg/frameid"
)

// Check verifies the structural invariants of the object graph:
// name uniqueness, frame id widths, signal spans and overlaps, the
// multiplexing rules and attribute value types. Grammar level well
// formedness is the parser's concern and is not rechecked here.
// The first violation found is returned; nothing is repaired.
func (d *Database) Check() error {
	if err := d.checkNames(); err != nil {
		return err
	}
	for _, m := range d.messages {
		if err := d.checkMessage(m); err != nil {
			return err
		}
	}
	return d.checkAttributes()
}

func structural(format string, a ...any) error {
	return cderrors.NewDatabaseError(cderrors.ErrStructuralInvariant, fmt.Sprintf(format, a...))
}

func (d *Database) checkNames() error {
	nodeNames := map[string]struct{}{}
	for _, n := range d.nodes {
		if _, ok := nodeNames[n.Name]; ok {
			return structural("duplicate node name %q", n.Name)
		}
		nodeNames[n.Name] = struct{}{}
	}
	messageNames := map[string]struct{}{}
	for _, m := range d.messages {
		if _, ok := messageNames[m.Name]; ok {
			return structural("duplicate message name %q", m.Name)
		}
		messageNames[m.Name] = struct{}{}
	}
	return nil
}

func (d *Database) checkMessage(m *Message) error {
	maxID := frameid.MaxStandard
	if m.IsExtended {
		maxID = frameid.MaxExtended
	}
	if m.RawID > maxID {
		return structural("frame id 0x%x too wide in message %q", m.RawID, m.Name)
	}

	signalNames := map[string]struct{}{}
	var selector *Signal
	selected := []*Signal{}
	for _, s := range m.Signals {
		if _, ok := signalNames[s.Name]; ok {
			return structural("duplicate signal name %q in message %q", s.Name, m.Name)
		}
		signalNames[s.Name] = struct{}{}

		if err := checkSignal(m, s); err != nil {
			return err
		}
		switch s.Mux.Role {
		case MuxSelector:
			if selector != nil {
				return structural("message %q has more than one multiplexor (%q and %q)",
					m.Name, selector.Name, s.Name)
			}
			selector = s
		case MuxSelected:
			selected = append(selected, s)
		}
	}
	if len(selected) > 0 && selector == nil {
		return structural("message %q has multiplexed signals but no multiplexor", m.Name)
	}

	for _, g := range m.Groups {
		for _, name := range g.Signals {
			if _, ok := signalNames[name]; !ok {
				return structural("signal group %q names unknown signal %q in message %q",
					g.Name, name, m.Name)
			}
		}
	}

	return checkOverlap(m)
}

func checkSignal(m *Message, s *Signal) error {
	if s.Length < 1 || s.Length > 64 {
		return structural("signal %q length %d outside 1..64 in message %q", s.Name, s.Length, m.Name)
	}
	switch s.Kind {
	case KindFloat:
		if s.Length != 32 {
			return structural("float signal %q must be 32 bits in message %q", s.Name, m.Name)
		}
	case KindDouble:
		if s.Length != 64 {
			return structural("double signal %q must be 64 bits in message %q", s.Name, m.Name)
		}
	}

	bits := uint(m.Length) * 8
	for _, pos := range occupiedBits(s) {
		if pos >= bits {
			return structural("signal %q does not fit in message %q", s.Name, m.Name)
		}
	}
	return nil
}

// occupiedBits lists the absolute payload bit indexes (byte*8 + DBC
// in-byte position) covered by the signal, walking the byte order's
// bit numbering.
func occupiedBits(s *Signal) []uint {
	bits := make([]uint, 0, s.Length)
	byteIdx := uint(s.Start) / 8
	bitIdx := uint(s.Start) % 8
	for i := uint8(0); i < s.Length; i++ {
		bits = append(bits, byteIdx*8+bitIdx)
		if s.ByteOrder == BigEndian {
			if bitIdx == 0 {
				bitIdx = 7
				byteIdx++
			} else {
				bitIdx--
			}
		} else {
			if bitIdx == 7 {
				bitIdx = 0
				byteIdx++
			} else {
				bitIdx++
			}
		}
	}
	return bits
}

// checkOverlap rejects signals sharing payload bits unless they live
// in disjoint multiplex branches.
func checkOverlap(m *Message) error {
	for i, a := range m.Signals {
		for _, b := range m.Signals[i+1:] {
			if !bitsIntersect(a, b) {
				continue
			}
			if a.Mux.Role == MuxSelected && b.Mux.Role == MuxSelected && !rangesIntersect(a.Mux.Ranges, b.Mux.Ranges) {
				continue
			}
			return structural("signals %q and %q overlap in message %q", a.Name, b.Name, m.Name)
		}
	}
	return nil
}

func bitsIntersect(a, b *Signal) bool {
	occupied := map[uint]struct{}{}
	for _, pos := range occupiedBits(a) {
		occupied[pos] = struct{}{}
	}
	for _, pos := range occupiedBits(b) {
		if _, ok := occupied[pos]; ok {
			return true
		}
	}
	return false
}

func rangesIntersect(a, b []SwitchRange) bool {
	for _, ra := range a {
		for _, rb := range b {
			if ra.Low <= rb.High && rb.Low <= ra.High {
				return true
			}
		}
	}
	return false
}

func (d *Database) checkAttributes() error {
	owners := []AttributeOwner{d}
	for _, n := range d.nodes {
		owners = append(owners, n)
	}
	for _, m := range d.messages {
		owners = append(owners, m)
		for _, s := range m.Signals {
			owners = append(owners, s)
		}
	}
	for _, owner := range owners {
		for name, att := range owner.Attributes().AllFromFront() {
			if att.Definition == nil {
				return structural("attribute %q has no definition", name)
			}
			if att.Definition.Kind != owner.ObjectKind() {
				return structural("attribute %q (kind %s) attached to a %s object",
					name, att.Definition.Kind, owner.ObjectKind())
			}
			if att.Value != nil {
				if err := att.Definition.CheckValue(*att.Value); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
