// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package errors

import "fmt"

var (
	ErrMonitorNoConnection = fmt.Errorf("no connection")
	ErrMonitorConfig       = func(m string) error { return NewMonitorError(nil, m) }
	ErrMonitorConnectFail  = func(e error) error { return NewMonitorError(e, "connect failed") }
	ErrMonitorStreamDecode = func(e error) error { return NewMonitorError(e, "frame stream decode failed") }
)

type MonitorError struct {
	msg string
	err error
}

func NewMonitorError(e error, msg string) *MonitorError {
	return &MonitorError{msg: msg, err: e}
}

func (e *MonitorError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("monitor: %q - %v", e.msg, e.err)
	} else {
		return fmt.Sprintf("monitor: %q", e.msg)
	}
}

func (e *MonitorError) Unwrap() error {
	return e.err
}
