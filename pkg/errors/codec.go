// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package errors

import "fmt"

var (
	ErrBitRangeExceeded     = fmt.Errorf("signal span exceeds payload")
	ErrValueOutOfRange      = fmt.Errorf("value outside declared range")
	ErrSignalNotOwnedByNode = fmt.Errorf("signal not owned by node")
	ErrSignalNotInMessage   = func(signal string, message string) error {
		return NewCodecError(nil, fmt.Sprintf("signal %q not in message %q", signal, message))
	}
	ErrSignalValueMissing = func(signal string) error {
		return NewCodecError(nil, fmt.Sprintf("no value supplied for signal %q", signal))
	}
	ErrFloatWidth = func(signal string, length uint8) error {
		return NewCodecError(nil, fmt.Sprintf("float signal %q must be 32 or 64 bits, got %d", signal, length))
	}
)

type CodecError struct {
	msg string
	err error
}

func NewCodecError(e error, msg string) *CodecError {
	return &CodecError{msg: msg, err: e}
}

func (e *CodecError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("codec: %q - %v", e.msg, e.err)
	} else {
		return fmt.Sprintf("codec: %q", e.msg)
	}
}

func (e *CodecError) Unwrap() error {
	return e.err
}
