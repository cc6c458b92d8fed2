// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package errors

import "fmt"

var (
	ErrStructuralInvariant = fmt.Errorf("structural invariant violated")
	ErrUnknownMessage      = func(name string) error { return NewDatabaseError(nil, fmt.Sprintf("message not in database: %q", name)) }
	ErrUnknownNode         = func(name string) error { return NewDatabaseError(nil, fmt.Sprintf("node not in database: %q", name)) }
)

type DatabaseError struct {
	msg string
	err error
}

func NewDatabaseError(e error, msg string) *DatabaseError {
	return &DatabaseError{msg: msg, err: e}
}

func (e *DatabaseError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("database: %q - %v", e.msg, e.err)
	} else {
		return fmt.Sprintf("database: %q", e.msg)
	}
}

func (e *DatabaseError) Unwrap() error {
	return e.err
}
