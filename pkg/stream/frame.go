// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// Frame is one raw CAN frame carried by the stream buffer.
type Frame struct {
	ID       uint32
	Extended bool
	Payload  []byte
}

// Buffer wire format (flatbuffers, size prefixed):
//
//	table CanFrame { frame_id:uint32; extended:bool; payload:[ubyte]; }
//	table FrameBatch { frames:[CanFrame]; }
//	root_type FrameBatch;
//
// The table accessors below follow the flatc generated layout so that
// buffers are interchangeable with any flatc produced reader.

const (
	canFrameIDSlot       = 4
	canFrameExtendedSlot = 6
	canFramePayloadSlot  = 8
	batchFramesSlot      = 4
)

type canFrameTable struct {
	tab flatbuffers.Table
}

func (rcv *canFrameTable) init(buf []byte, pos flatbuffers.UOffsetT) {
	rcv.tab.Bytes = buf
	rcv.tab.Pos = pos
}

func (rcv *canFrameTable) frameID() uint32 {
	if o := flatbuffers.UOffsetT(rcv.tab.Offset(canFrameIDSlot)); o != 0 {
		return rcv.tab.GetUint32(o + rcv.tab.Pos)
	}
	return 0
}

func (rcv *canFrameTable) extended() bool {
	if o := flatbuffers.UOffsetT(rcv.tab.Offset(canFrameExtendedSlot)); o != 0 {
		return rcv.tab.GetBool(o + rcv.tab.Pos)
	}
	return false
}

func (rcv *canFrameTable) payload() []byte {
	if o := flatbuffers.UOffsetT(rcv.tab.Offset(canFramePayloadSlot)); o != 0 {
		return rcv.tab.ByteVector(o + rcv.tab.Pos)
	}
	return nil
}

func buildCanFrame(b *flatbuffers.Builder, f Frame) flatbuffers.UOffsetT {
	payload := b.CreateByteVector(f.Payload)
	b.StartObject(3)
	b.PrependUint32Slot(0, f.ID, 0)
	b.PrependBoolSlot(1, f.Extended, false)
	b.PrependUOffsetTSlot(2, payload, 0)
	return b.EndObject()
}

type frameBatchTable struct {
	tab flatbuffers.Table
}

func sizePrefixedRootAsBatch(buf []byte) *frameBatchTable {
	n := flatbuffers.GetUOffsetT(buf[flatbuffers.SizeUint32:])
	batch := new(frameBatchTable)
	batch.tab.Bytes = buf
	batch.tab.Pos = n + flatbuffers.SizeUint32
	return batch
}

func (rcv *frameBatchTable) framesLength() int {
	if o := flatbuffers.UOffsetT(rcv.tab.Offset(batchFramesSlot)); o != 0 {
		return rcv.tab.VectorLen(o)
	}
	return 0
}

func (rcv *frameBatchTable) frames(obj *canFrameTable, j int) bool {
	if o := flatbuffers.UOffsetT(rcv.tab.Offset(batchFramesSlot)); o != 0 {
		x := rcv.tab.Vector(o)
		x += flatbuffers.UOffsetT(j) * 4
		x = rcv.tab.Indirect(x)
		obj.init(rcv.tab.Bytes, x)
		return true
	}
	return false
}

func buildBatch(b *flatbuffers.Builder, frames []flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	b.StartVector(4, len(frames), 4)
	for i := len(frames) - 1; i >= 0; i-- {
		b.PrependUOffsetT(frames[i])
	}
	vec := b.EndVector(len(frames))

	b.StartObject(1)
	b.PrependUOffsetTSlot(0, vec, 0)
	return b.EndObject()
}
