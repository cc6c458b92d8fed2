// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package monitor_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/boschglobal/dse.candb/pkg/db"
	"github.com/boschglobal/dse.candb/pkg/errors"
	"github.com/boschglobal/dse.candb/pkg/monitor"
	"github.com/boschglobal/dse.candb/pkg/stream"
)

func monitorDatabase() *db.Database {
	d := db.NewDatabase()
	d.AddNode(db.NewNode("ECU"))
	d.AddNode(db.NewNode("DASH"))

	speed := db.NewSignal("VehicleSpeed", 0, 16)
	speed.Factor = 0.01
	speed.Receivers = []string{"DASH"}
	gear := db.NewSignal("Gear", 16, 4)
	gear.Table = db.NewValueTable("Gear", map[int64]string{0: "Neutral", 1: "Drive"})
	gear.Receivers = []string{"DASH"}

	status := db.NewMessage("VehicleStatus", 0x100, false, 3)
	status.Transmitter = "ECU"
	status.AddSignal(speed).AddSignal(gear)
	d.AddMessage(status)
	return d
}

func frameBuffer(t *testing.T, frames []stream.Frame) []byte {
	t.Helper()
	var buffer []byte
	fs := stream.FrameStream{}
	assert.NoError(t, fs.Configure("type=can;schema=fbs;interface=stream;bus=can0", &buffer))
	assert.NoError(t, fs.Write(frames))
	assert.NoError(t, fs.Flush())
	return buffer
}

func TestMonitorStep(t *testing.T) {
	d := monitorDatabase()
	stub := &monitor.StubConnection{}
	stub.PushMessage(frameBuffer(t, []stream.Frame{
		{ID: 0x100, Payload: []byte{0x4A, 0x06, 0x01}}, // speed 16.10, gear Drive
	}), "can0")

	mon := monitor.NewMonitor("test", "can0", d, stub)
	assert.NoError(t, mon.Connect())
	assert.NoError(t, mon.Step())

	// One decoded record published.
	published := stub.Trace[len(stub.Trace)-1]
	assert.Equal(t, "can0", published.Channel)

	var decoded monitor.Decoded
	assert.NoError(t, msgpack.NewDecoder(bytes.NewReader(published.Msg)).Decode(&decoded))
	assert.Equal(t, "VehicleStatus", decoded.Message)
	assert.Equal(t, uint32(0x100), decoded.FrameID)
	assert.InDelta(t, 16.10, decoded.Signals["VehicleSpeed"], 0.005)
	assert.Equal(t, float64(1), decoded.Signals["Gear"])
	assert.Equal(t, "Drive", decoded.Labels["Gear"])
}

func TestMonitorStepUnknownFrame(t *testing.T) {
	d := monitorDatabase()
	stub := &monitor.StubConnection{}
	stub.PushMessage(frameBuffer(t, []stream.Frame{
		{ID: 0x7FF, Payload: []byte{0x00}},
		{ID: 0x100, Payload: []byte{0x00, 0x00, 0x00}},
	}), "can0")

	mon := monitor.NewMonitor("test", "can0", d, stub)
	assert.NoError(t, mon.Connect())
	assert.NoError(t, mon.Step(), "unknown frames are skipped, not errors")

	// Only the known frame was published.
	count := 0
	for _, item := range stub.Trace {
		if item.Channel == "can0" && len(item.Msg) > 0 {
			count++
		}
	}
	assert.Equal(t, 2, count, "pushed buffer plus one decoded record")
}

func TestMonitorStepNoMessage(t *testing.T) {
	d := monitorDatabase()
	stub := &monitor.StubConnection{}
	mon := monitor.NewMonitor("test", "can0", d, stub)
	assert.NoError(t, mon.Connect())

	err := mon.Step()
	assert.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoMessage)
}

func TestMonitorNodeScope(t *testing.T) {
	d := monitorDatabase()
	stub := &monitor.StubConnection{}
	stub.PushMessage(frameBuffer(t, []stream.Frame{
		{ID: 0x100, Payload: []byte{0x4A, 0x06, 0x01}},
	}), "can0")

	mon := monitor.NewMonitor("test", "can0", d, stub)
	mon.Node = "ECU" // transmits but receives nothing
	assert.NoError(t, mon.Connect())
	assert.NoError(t, mon.Step())

	var decoded monitor.Decoded
	published := stub.Trace[len(stub.Trace)-1]
	assert.NoError(t, msgpack.NewDecoder(bytes.NewReader(published.Msg)).Decode(&decoded))
	assert.Equal(t, 0, len(decoded.Signals))
}

func TestMonitorConnectConfig(t *testing.T) {
	d := monitorDatabase()

	mon := monitor.NewMonitor("", "can0", d, &monitor.StubConnection{})
	assert.Error(t, mon.Connect(), "name required")

	mon = monitor.NewMonitor("test", "can0", nil, &monitor.StubConnection{})
	assert.Error(t, mon.Connect(), "database required")

	mon = monitor.NewMonitor("test", "can0", d, nil)
	err := mon.Connect()
	assert.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMonitorNoConnection)

	mon = monitor.NewMonitor("test", "can0", d, &monitor.StubConnection{})
	mon.Node = "GHOST"
	assert.Error(t, mon.Connect(), "unknown node rejected")
}
