// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"strings"

	"github.com/ivanfilho21/database/query/types"
)

// Key defines the role of a column.
type Key int

// Keys.
const (
	NONE Key = iota
	PRIMARY_KEY
)

// String returns the sql keyword of the key.
func (k Key) String() string {
	if k == PRIMARY_KEY {
		return "PRIMARY KEY"
	}
	return ""
}

// AutoIncrement is the extra modifier of generated integer columns.
const AutoIncrement = "AUTO_INCREMENT"

// Column represents a database table column.
// An empty Name marks an unused column and is skipped by all clause builders.
type Column struct {
	Name   string
	Type   types.Type
	Length int
	Key    Key
	Extra  string
}

// IsPrimary reports if the column is the primary key.
func (c Column) IsPrimary() bool {
	return c.Key == PRIMARY_KEY
}

// AutoIncrement reports if the database generates the value of the column.
func (c Column) AutoIncrement() bool {
	return strings.Contains(strings.ToUpper(c.Extra), AutoIncrement) || c.Type.Serial()
}

// Definition returns the CREATE TABLE fragment of the column.
// `name` TYPE[(length)] [PRIMARY KEY] [extra]
func (c Column) Definition(q Quoter) string {
	def := q.QuoteIdentifier(c.Name) + " " + c.Type.Sized(c.Length)
	if c.IsPrimary() {
		def += " " + c.Key.String()
	}
	if extra := strings.TrimSpace(c.Extra); extra != "" {
		def += " " + extra
	}
	return def
}

// Condition is a column bound to a query-time value.
// It is created per call and never written back into a schema.
type Condition struct {
	Column
	Value interface{}
	Like  bool
}

// NewCondition creates an equal condition of the column.
func NewCondition(c Column, value interface{}) Condition {
	return Condition{Column: c, Value: value}
}

// NewLike creates a LIKE condition of the column.
func NewLike(c Column, value interface{}) Condition {
	return Condition{Column: c, Value: value, Like: true}
}

// Operator returns LIKE or =.
func (c Condition) Operator() string {
	if c.Like {
		return "LIKE"
	}
	return "="
}

// BindValue returns the value to bind. LIKE values are wrapped in %.
func (c Condition) BindValue() interface{} {
	if c.Like && c.Value != nil {
		return "%" + toString(c.Value) + "%"
	}
	return c.Value
}

// Direction of an order.
type Direction string

// Directions.
const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// Order is a column with a sort direction.
type Order struct {
	Column
	Direction Direction
}

// NewOrder creates an order. An unknown direction becomes ASC.
func NewOrder(c Column, d Direction) Order {
	if d != DESC {
		d = ASC
	}
	return Order{Column: c, Direction: d}
}
