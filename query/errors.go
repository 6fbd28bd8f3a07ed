// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"errors"
	"fmt"

	"github.com/ivanfilho21/database/logger"
)

// Error kinds. Use errors.Is to check an *Error against them.
var (
	ErrSchema         = errors.New("query: schema error")
	ErrMissingObject  = errors.New("query: object is missing")
	ErrInvalidObject  = errors.New("query: object is invalid")
	ErrEmptyFilter    = errors.New("query: filter is empty")
	ErrMultipleRows   = errors.New("query: multiple rows")
	ErrConditionValue = errors.New("query: condition without value")
	ErrUnknownColumn  = errors.New("query: unknown column")
	ErrHydrate        = errors.New("query: model hydration")
)

// Error is a structured error of the engine.
type Error struct {
	Component string
	Op        string
	Msg       string
	Severity  logger.Level
	Err       error
}

// NewError creates an ERROR severity error.
func NewError(component string, op string, kind error, format string, args ...interface{}) *Error {
	return &Error{Component: component, Op: op, Msg: fmt.Sprintf(format, args...), Severity: logger.ERROR, Err: kind}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Component + " " + e.Op
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	return msg
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error {
	return e.Err
}
