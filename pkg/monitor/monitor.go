// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/boschglobal/dse.candb/pkg/codec"
	"github.com/boschglobal/dse.candb/pkg/db"
	"github.com/boschglobal/dse.candb/pkg/errors"
	"github.com/boschglobal/dse.candb/pkg/stream"
	"github.com/boschglobal/dse.candb/pkg/trace"
)

// Decoded is one decoded frame as published on the decoded channel.
type Decoded struct {
	Message string             `msgpack:"message"`
	FrameID uint32             `msgpack:"id"`
	Signals map[string]float64 `msgpack:"signals"`
	Labels  map[string]string  `msgpack:"labels"`
}

// Monitor pulls frame-stream buffers from a connection, decodes every
// frame against its database and republishes the physical values.
// When Node is set only the signals that node receives are published.
type Monitor struct {
	Name     string
	Bus      string
	Database *db.Database
	Node     string

	connection Connection

	codecs map[uint32]*codec.MessageCodec
	buffer []byte
	stream stream.FrameStream
	trace  *trace.CanTraceData
}

func NewMonitor(name string, bus string, d *db.Database, connection Connection) *Monitor {
	return &Monitor{
		Name:       name,
		Bus:        bus,
		Database:   d,
		connection: connection,
		codecs:     map[uint32]*codec.MessageCodec{},
	}
}

// Connect checks the configuration and establishes the connection.
func (m *Monitor) Connect() error {
	if len(m.Name) == 0 {
		return errors.ErrMonitorConfig("monitor name not configured")
	}
	if m.Database == nil {
		return errors.ErrMonitorConfig("monitor database not configured")
	}
	if m.Node != "" {
		if _, ok := m.Database.NodeByName(m.Node); !ok {
			return errors.ErrMonitorConfig(fmt.Sprintf("unknown node %q", m.Node))
		}
	}
	if m.connection == nil {
		return errors.ErrMonitorNoConnection
	}

	config := fmt.Sprintf("type=can;schema=fbs;interface=stream;bus=%s", m.Bus)
	if err := m.stream.Configure(config, &m.buffer); err != nil {
		return errors.ErrMonitorConfig(err.Error())
	}
	m.trace = trace.NewCanTrace(m.Name, m.Bus, m.Database)
	if m.trace != nil {
		m.stream.Trace(m.trace)
	}

	if err := m.connection.Connect([]string{m.Bus}); err != nil {
		return errors.ErrMonitorConnectFail(err)
	}
	return nil
}

// Step waits for one frame-stream buffer, decodes every frame it
// carries and publishes the decoded values. Frames with no matching
// message are logged and skipped; decode failures are returned typed.
func (m *Monitor) Step() error {
	msg, _, err := m.connection.WaitMessage(false)
	if err != nil {
		return err
	}
	m.buffer = msg
	frames, err := m.stream.Read()
	if err != nil {
		return errors.ErrMonitorStreamDecode(err)
	}

	for _, frame := range frames {
		message, ok := m.Database.MessageByFrameID(frame.ID)
		if !ok {
			slog.Info(fmt.Sprintf("Monitor: unknown frame id %02x, skipping", frame.ID))
			continue
		}
		values, err := m.decode(message, frame.Payload)
		if err != nil {
			return err
		}
		if err := m.publish(message, values); err != nil {
			return err
		}
	}
	return nil
}

func (m *Monitor) decode(message *db.Message, payload []byte) (map[string]codec.SignalValue, error) {
	if m.Node != "" {
		return codec.NewNodeCodec(m.Database, m.Node).DecodeForNode(message, payload)
	}
	c, ok := m.codecs[message.RawID]
	if !ok {
		c = codec.NewMessageCodec(m.Database, message)
		m.codecs[message.RawID] = c
	}
	return c.Decode(payload)
}

func (m *Monitor) publish(message *db.Message, values map[string]codec.SignalValue) error {
	decoded := Decoded{
		Message: message.Name,
		FrameID: message.RawID,
		Signals: map[string]float64{},
		Labels:  map[string]string{},
	}
	for name, v := range values {
		decoded.Signals[name] = v.Physical
		if v.Label != "" {
			decoded.Labels[name] = v.Label
		}
	}
	buf := new(bytes.Buffer)
	if err := msgpack.NewEncoder(buf).Encode(decoded); err != nil {
		return err
	}
	return m.connection.SendMessage(buf.Bytes(), m.Bus)
}

// Disconnect closes the connection.
func (m *Monitor) Disconnect() {
	if m.connection == nil {
		return
	}
	m.connection.Disconnect()
}
