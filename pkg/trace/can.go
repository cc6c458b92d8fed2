// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"fmt"
	"sort"

	"github.com/boschglobal/dse.candb/pkg/codec"
	"github.com/boschglobal/dse.candb/pkg/db"
	"github.com/boschglobal/dse.candb/pkg/stream"
)

// CanTraceData prints traced frames to stdout. When a Database is
// attached the message name and decoded signal values are appended to
// each line.
type CanTraceData struct {
	Name     string
	Wildcard bool
	Filter   map[uint32]bool
	Database *db.Database
}

// NewCanTrace builds a trace for one bus, filtered per the
// CANDB_TRACE_CAN_<bus> environment variable. Returns nil when
// tracing is not enabled for the bus.
func NewCanTrace(name string, bus string, d *db.Database) *CanTraceData {
	envName := fmt.Sprintf("CANDB_TRACE_CAN_%s", bus)
	wildcard, filter := GetTraceEnv(envName)
	if !wildcard && filter == nil {
		return nil
	}
	return &CanTraceData{Name: name, Wildcard: wildcard, Filter: filter, Database: d}
}

func (t *CanTraceData) TraceRX(frame stream.Frame) {
	t.traceCan("RX", frame)
}

func (t *CanTraceData) TraceTX(frame stream.Frame) {
	t.traceCan("TX", frame)
}

func (t *CanTraceData) traceCan(direction string, frame stream.Frame) {
	if !t.Wildcard {
		if !t.Filter[frame.ID] {
			return
		}
	}
	var b string
	for _, by := range frame.Payload {
		b += fmt.Sprintf("%02x ", by)
	}
	fmt.Printf("(%s) [%02x] %s %02x %d : %s: %s\n", t.Name,
		frame.ID, direction, frame.ID, len(frame.Payload), b, t.summary(frame))
}

// summary decodes the frame against the attached database; a frame
// with no matching message, or a decode error, yields an empty string.
func (t *CanTraceData) summary(frame stream.Frame) string {
	if t.Database == nil {
		return ""
	}
	m, ok := t.Database.MessageByFrameID(frame.ID)
	if !ok {
		return ""
	}
	values, err := codec.NewMessageCodec(t.Database, m).Decode(frame.Payload)
	if err != nil {
		return m.Name
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	s := m.Name
	for _, name := range names {
		s += fmt.Sprintf(" %s=%g", name, values[name].Physical)
	}
	return s
}
