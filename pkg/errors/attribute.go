// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package errors

import "fmt"

var (
	ErrNoAttributeValue = fmt.Errorf("no attribute value and no default")
	ErrTypeMismatch     = fmt.Errorf("attribute value type mismatch")
)

type AttributeError struct {
	msg string
	err error
}

func NewAttributeError(e error, msg string) *AttributeError {
	return &AttributeError{msg: msg, err: e}
}

func (e *AttributeError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("attribute: %q - %v", e.msg, e.err)
	} else {
		return fmt.Sprintf("attribute: %q", e.msg)
	}
}

func (e *AttributeError) Unwrap() error {
	return e.err
}
