// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package stream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boschglobal/dse.candb/pkg/stream"
)

func TestFrameStreamWriteRead(t *testing.T) {
	tests := []struct {
		name   string
		config string
		frames []stream.Frame
	}{
		{
			name:   "single frame",
			config: "type=can;schema=fbs;interface=stream",
			frames: []stream.Frame{
				{ID: 0x100, Payload: []byte{0x01, 0x02, 0x03, 0x04}},
			},
		},
		{
			name:   "mixed standard and extended",
			config: "type=can;schema=fbs;interface=stream;bus=can0",
			frames: []stream.Frame{
				{ID: 0x7DF, Payload: []byte{0x02, 0x01, 0x00}},
				{ID: 0x18FEF100, Extended: true, Payload: []byte{1, 2, 3, 4, 5, 6, 7, 8}},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := new([]byte)
			fs := stream.FrameStream{}
			assert.NoError(t, fs.Configure(tc.config, s))
			assert.NoError(t, fs.Write(tc.frames))
			assert.NoError(t, fs.Flush())
			assert.NotEmpty(t, *s)

			got, err := fs.Read()
			assert.NoError(t, err)
			assert.Equal(t, len(tc.frames), len(got))
			for i, frame := range got {
				assert.Equal(t, tc.frames[i].ID, frame.ID)
				assert.Equal(t, tc.frames[i].Extended, frame.Extended)
				assert.Equal(t, tc.frames[i].Payload, frame.Payload)
			}
		})
	}
}

func TestFrameStreamTruncate(t *testing.T) {
	s := new([]byte)
	fs := stream.FrameStream{}
	assert.NoError(t, fs.Configure("type=can;schema=fbs;interface=stream", s))
	assert.NoError(t, fs.Write([]stream.Frame{{ID: 1, Payload: []byte{0xFF}}}))
	assert.NoError(t, fs.Truncate())
	assert.Empty(t, *s)

	got, err := fs.Read()
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestFrameStreamConfig(t *testing.T) {
	tests := []struct {
		name      string
		config    string
		wantError bool
	}{
		{name: "valid", config: "type=can;schema=fbs;interface=stream"},
		{name: "with bus", config: "type=can;schema=fbs;interface=stream;bus=can0;bus_id=1"},
		{name: "empty", config: "", wantError: true},
		{name: "missing type", config: "schema=fbs;interface=stream", wantError: true},
		{name: "wrong type", config: "type=pdu;schema=fbs;interface=stream", wantError: true},
		{name: "wrong schema", config: "type=can;schema=json;interface=stream", wantError: true},
		{name: "wrong interface", config: "type=can;schema=fbs;interface=socket", wantError: true},
		{name: "unexpected parameter", config: "type=can;schema=fbs;interface=stream;foo=1", wantError: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := new([]byte)
			fs := stream.FrameStream{}
			err := fs.Configure(tc.config, s)
			if tc.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFrameStreamStat(t *testing.T) {
	s := new([]byte)
	fs := stream.FrameStream{}
	assert.NoError(t, fs.Configure("type=can;schema=fbs;interface=stream;bus=can0", s))

	bus, err := fs.Stat("bus")
	assert.NoError(t, err)
	assert.Equal(t, "can0", *bus)

	_, err = fs.Stat("node_id")
	assert.Error(t, err)
}
