// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package table maps one database table to one model type.
//
// A Table owns the column schema and renders, binds and executes the CREATE, DROP, INSERT, UPDATE,
// DELETE and SELECT statements through a query.Builder. Rows are hydrated into new model instances.
// Query-time values travel in query.Condition copies, the schema itself is never changed by a query.
// A Table can be shared by concurrent callers.
package table

import (
	"errors"
	"strings"
	"sync"

	"github.com/ivanfilho21/database/logger"
	"github.com/ivanfilho21/database/query"
	"github.com/ivanfilho21/database/slicer"
	"github.com/ivanfilho21/database/stringer"
)

// Error messages.
var (
	ErrBuilder = errors.New("table: builder is nil")
)

// internals
const (
	component   = "table"
	wherePrefix = "where_"
)

// Option of a Table.
type Option func(o *options)

type options struct {
	modelName string
	logger    logger.Manager
	validate  bool
}

// WithModelName sets the model name. Default is the singular, capitalized table name.
func WithModelName(name string) Option {
	return func(o *options) {
		o.modelName = name
	}
}

// WithLogger sets the logger for the table errors.
func WithLogger(l logger.Manager) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithValidation enables or disables the validation before insert and update. Default is enabled.
func WithValidation(enabled bool) Option {
	return func(o *options) {
		o.validate = enabled
	}
}

// Table is the CRUD engine of the model type M.
type Table[M any] struct {
	mu        sync.RWMutex
	name      string
	columns   []query.Column
	modelName string

	builder  query.Builder
	logger   logger.Manager
	validate bool
}

// Select defines a read.
// Empty Columns select all columns (*), Where conditions are joined by AND.
// A Limit <= 0 means no limit.
type Select struct {
	Columns []query.Column
	Where   []query.Condition
	Order   []query.Order
	Limit   int
	Offset  int
}

// New creates a table.
// Error will return if the builder is nil, or a column name exists twice or a second primary key is added.
func New[M any](b query.Builder, name string, columns []query.Column, opts ...Option) (*Table[M], error) {
	if b == nil {
		return nil, ErrBuilder
	}

	o := options{validate: true}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Table[M]{
		name:      strings.TrimSpace(name),
		modelName: o.modelName,
		builder:   b,
		logger:    o.logger,
		validate:  o.validate,
	}
	if t.modelName == "" {
		t.modelName = stringer.ModelName(t.name)
	}

	for _, c := range columns {
		if err := t.AddColumn(c); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Name of the table.
func (t *Table[M]) Name() string {
	return t.name
}

// ModelName of the table.
func (t *Table[M]) ModelName() string {
	return t.modelName
}

// Builder returns the query.Builder of the table.
func (t *Table[M]) Builder() query.Builder {
	return t.builder
}

// Columns returns a copy of the schema.
func (t *Table[M]) Columns() []query.Column {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]query.Column(nil), t.columns...)
}

// AddColumn appends a column to the schema.
// Error will return if the name already exists or it is a second primary key.
func (t *Table[M]) AddColumn(c query.Column) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if c.Name != "" && slicer.IndexFunc(t.columns, func(e query.Column) bool { return e.Name == c.Name }) != -1 {
		return t.fail("add column", query.ErrSchema, "column %s already exists", c.Name)
	}
	if c.IsPrimary() {
		if pk, ok := primary(t.columns); ok {
			return t.fail("add column", query.ErrSchema, "column %s is a second primary key beside %s", c.Name, pk.Name)
		}
	}

	t.columns = append(t.columns, c)
	return nil
}

// FindColumn returns the schema column by name.
func (t *Table[M]) FindColumn(name string) (query.Column, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if name == "" {
		return query.Column{}, false
	}
	i := slicer.IndexFunc(t.columns, func(c query.Column) bool { return c.Name == name })
	if i == -1 {
		return query.Column{}, false
	}
	return t.columns[i], true
}

// Primary returns the primary key column.
func (t *Table[M]) Primary() (query.Column, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return primary(t.columns)
}

// Condition creates an equal condition on the column.
// Error will return if the column does not exist or the value is nil.
func (t *Table[M]) Condition(name string, value interface{}) (query.Condition, error) {
	return t.condition(name, value, false)
}

// Like creates a LIKE condition on the column. The value is bound as %value%.
// Error will return if the column does not exist or the value is nil.
func (t *Table[M]) Like(name string, value interface{}) (query.Condition, error) {
	return t.condition(name, value, true)
}

// Order creates an order on the column.
func (t *Table[M]) Order(name string, direction query.Direction) (query.Order, error) {
	c, ok := t.FindColumn(name)
	if !ok {
		return query.Order{}, t.fail("order", query.ErrUnknownColumn, "column %s", name)
	}
	return query.NewOrder(c, direction), nil
}

// Selection returns the schema columns by name, in the given order.
func (t *Table[M]) Selection(names ...string) ([]query.Column, error) {
	columns := make([]query.Column, 0, len(names))
	for _, name := range names {
		c, ok := t.FindColumn(name)
		if !ok {
			return nil, t.fail("selection", query.ErrUnknownColumn, "column %s", name)
		}
		columns = append(columns, c)
	}
	return columns, nil
}

func (t *Table[M]) condition(name string, value interface{}, like bool) (query.Condition, error) {
	c, ok := t.FindColumn(name)
	if !ok {
		return query.Condition{}, t.fail("condition", query.ErrUnknownColumn, "column %s", name)
	}
	if value == nil {
		return query.Condition{}, t.fail("condition", query.ErrConditionValue, "column %s", name)
	}
	if like {
		return query.NewLike(c, value), nil
	}
	return query.NewCondition(c, value), nil
}

// fail creates a query.Error and logs it on its severity.
func (t *Table[M]) fail(op string, kind error, format string, args ...interface{}) error {
	err := query.NewError(component, op, kind, t.name+": "+format, args...)
	if t.logger != nil {
		t.logger.WithFields(logger.Fields{"component": component, "op": op, "table": t.name, "model": t.modelName}).Log(err.Severity, err.Error())
	}
	return err
}

// primary returns the first primary key column.
func primary(columns []query.Column) (query.Column, bool) {
	i := slicer.IndexFunc(columns, func(c query.Column) bool { return c.IsPrimary() })
	if i == -1 {
		return query.Column{}, false
	}
	return columns[i], true
}
