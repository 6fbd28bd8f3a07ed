// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package types provides the SQL column type vocabulary.
package types

import (
	"strconv"
	"strings"
)

// Type is a SQL column type as it is rendered in a CREATE TABLE statement.
type Type string

// SQL types.
const (
	INT       Type = "INT"
	BIGINT    Type = "BIGINT"
	DECIMAL   Type = "DECIMAL(8, 4)"
	VARCHAR   Type = "VARCHAR"
	TEXT      Type = "TEXT"
	DATE      Type = "DATE"
	TIME      Type = "TIME"
	DATETIME  Type = "DATETIME"
	TIMESTAMP Type = "TIMESTAMP"
	SERIAL    Type = "SERIAL"
	BIGSERIAL Type = "BIGSERIAL"
)

// DefaultVarcharLength is used if a VARCHAR column has no length.
const DefaultVarcharLength = 255

// Raw returns a caller-supplied type. The string is rendered as it is.
func Raw(s string) Type {
	return Type(strings.TrimSpace(s))
}

// String returns the raw sql type.
func (t Type) String() string {
	return string(t)
}

// Serial reports if the database generates the value (SERIAL, BIGSERIAL).
func (t Type) Serial() bool {
	return t == SERIAL || t == BIGSERIAL
}

// Sized renders the type with the given length.
// The length is ignored if the type already carries one (DECIMAL(8, 4)).
// A VARCHAR without length gets DefaultVarcharLength.
func (t Type) Sized(length int) string {
	if strings.Contains(string(t), "(") {
		return string(t)
	}
	if length <= 0 && t == VARCHAR {
		length = DefaultVarcharLength
	}
	if length <= 0 {
		return string(t)
	}
	return string(t) + "(" + strconv.Itoa(length) + ")"
}
