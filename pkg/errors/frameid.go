// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package errors

import "fmt"

var (
	ErrInvalidIdentifier = fmt.Errorf("identifier outside declared bit width")
	ErrUnknownScheme     = func(s string) error { return NewFrameIdError(nil, fmt.Sprintf("unknown arbitration scheme: %q", s)) }
	ErrInvalidPGN        = func(pgn uint32) error {
		return NewFrameIdError(nil, fmt.Sprintf("expected a parameter group number 0..0x3ffff, but got 0x%x", pgn))
	}
)

type FrameIdError struct {
	msg string
	err error
}

func NewFrameIdError(e error, msg string) *FrameIdError {
	return &FrameIdError{msg: msg, err: e}
}

func (e *FrameIdError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("frameid: %q - %v", e.msg, e.err)
	} else {
		return fmt.Sprintf("frameid: %q", e.msg)
	}
}

func (e *FrameIdError) Unwrap() error {
	return e.err
}
