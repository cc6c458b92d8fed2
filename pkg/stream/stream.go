// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package stream batches raw CAN frames into flatbuffers buffers, the
// transport format between a frame producer and a decoding consumer.
// Writes accumulate frames in a builder until Flush finalizes the
// buffer into the configured stream; Read walks the current buffer.
package stream

import (
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"
)

// Tracer observes frames as they pass through a FrameStream.
type Tracer interface {
	TraceRX(f Frame)
	TraceTX(f Frame)
}

type FrameStream struct {
	Name      string
	configMap map[string]*string
	builder   *flatbuffers.Builder
	frames    []flatbuffers.UOffsetT
	stream    *[]byte
	trace     Tracer
}

// Configure parses the config string and attaches the stream buffer.
// Must be called before any other method.
func (c *FrameStream) Configure(config string, stream *[]byte) error {
	if stream == nil {
		return fmt.Errorf("no stream provided")
	}
	var err error
	c.stream = stream
	c.builder = flatbuffers.NewBuilder(1024)

	c.configMap, err = DecodeConfig(config)
	if err != nil {
		return err
	}

	c.frames = make([]flatbuffers.UOffsetT, 0)
	return nil
}

func (c *FrameStream) Trace(t Tracer) {
	c.trace = t
}

// Read returns every frame in the current stream buffer.
func (c *FrameStream) Read() ([]Frame, error) {
	if len(*c.stream) < flatbuffers.SizeUint32 {
		return nil, nil
	}
	var frames []Frame
	batch := sizePrefixedRootAsBatch(*c.stream)
	for i := range batch.framesLength() {
		tab := new(canFrameTable)
		if !batch.frames(tab, i) {
			break
		}
		frame := Frame{
			ID:       tab.frameID(),
			Extended: tab.extended(),
			Payload:  tab.payload(),
		}
		if c.trace != nil {
			c.trace.TraceRX(frame)
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

// Write stages frames for the next Flush.
func (c *FrameStream) Write(frames []Frame) error {
	if frames == nil {
		return fmt.Errorf("no frames provided")
	}
	for _, frame := range frames {
		offset := buildCanFrame(c.builder, frame)
		if c.trace != nil {
			c.trace.TraceTX(frame)
		}
		c.frames = append(c.frames, offset)
	}
	return nil
}

// Flush finalizes the staged frames into the stream buffer.
func (c *FrameStream) Flush() error {
	batch := buildBatch(c.builder, c.frames)
	c.builder.FinishSizePrefixed(batch)
	buf := c.builder.FinishedBytes()
	c.builder.Reset()
	c.frames = c.frames[:0]
	if len(buf) == 0 {
		return nil
	}
	*c.stream = buf
	return nil
}

// Truncate discards the stream buffer and any staged frames.
func (c *FrameStream) Truncate() error {
	c.builder.Reset()
	*c.stream = make([]byte, 0)
	c.frames = make([]flatbuffers.UOffsetT, 0)
	return nil
}

// Stat returns a configuration parameter by name.
func (c *FrameStream) Stat(param string) (*string, error) {
	if _param := c.configMap[param]; _param != nil {
		return _param, nil
	}
	return nil, fmt.Errorf("parameter %s not found in frame stream", param)
}
