// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind string

const (
	KindValidation      = ErrorKind("validation")
	KindConnection      = ErrorKind("connection")
	KindMailbox         = ErrorKind("mailbox")
	KindProtocol        = ErrorKind("protocol")
	KindParse           = ErrorKind("parse")
	KindNotFound        = ErrorKind("not_found")
	KindIndexOutOfRange = ErrorKind("index_out_of_range")
	KindSend            = ErrorKind("send")
	KindUnknown         = ErrorKind("unknown")
)

type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error classifies a failure of an operation. Parse errors are the only kind
// callers are expected to recover from.
type Error struct {
	Kind       ErrorKind
	Op         string
	Err        error
	Violations []FieldViolation
}

func (e *Error) Error() string {
	if e.Kind == KindValidation && len(e.Violations) > 0 {
		parts := make([]string, 0, len(e.Violations))
		for _, v := range e.Violations {
			parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
		}
		return fmt.Sprintf("invalid arguments for %s: %s", e.Op, strings.Join(parts, "; "))
	}

	if e.Err == nil {
		return fmt.Sprintf("%s failed (%s)", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func ValidationError(op string, violations ...FieldViolation) error {
	return &Error{Kind: KindValidation, Op: op, Violations: violations}
}

func ConnectionError(op string, err error) error {
	return newError(KindConnection, op, err)
}

func MailboxError(op string, err error) error {
	return newError(KindMailbox, op, err)
}

func ProtocolError(op string, err error) error {
	return newError(KindProtocol, op, err)
}

func ParseError(op string, err error) error {
	return newError(KindParse, op, err)
}

func NotFoundError(op string, err error) error {
	return newError(KindNotFound, op, err)
}

func IndexOutOfRangeError(op string, err error) error {
	return newError(KindIndexOutOfRange, op, err)
}

func SendError(op string, err error) error {
	return newError(KindSend, op, err)
}

// KindOf returns the kind of the first *Error in the chain of err.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Violations returns the field violations of a validation error.
func Violations(err error) []FieldViolation {
	var e *Error
	if errors.As(err, &e) {
		return e.Violations
	}
	return nil
}
