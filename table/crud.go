// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package table

import (
	"context"
	"reflect"

	"github.com/ivanfilho21/database/query"
	"github.com/ivanfilho21/database/query/clause"
	"github.com/ivanfilho21/database/slicer"
	"github.com/ivanfilho21/database/structer"
)

// Create the table if it does not exist.
func (t *Table[M]) Create(ctx context.Context) error {
	columns := t.Columns()
	if err := t.checkSchema("create", columns, true); err != nil {
		return err
	}

	_, err := t.builder.Exec(ctx, "CREATE TABLE IF NOT EXISTS "+t.quotedName()+" ("+clause.FieldList(t.builder, columns, true, true)+")")
	return err
}

// Drop the table if it exists.
func (t *Table[M]) Drop(ctx context.Context) error {
	if err := t.checkSchema("drop", nil, false); err != nil {
		return err
	}

	_, err := t.builder.Exec(ctx, "DROP TABLE IF EXISTS "+t.quotedName())
	return err
}

// Count returns the number of rows.
// Only the primary key is selected, all columns if there is none.
func (t *Table[M]) Count(ctx context.Context) (int, error) {
	sel := Select{}
	if pk, ok := t.Primary(); ok {
		sel.Columns = []query.Column{pk}
	}

	rows, err := t.Read(ctx, sel)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Insert the object and return the generated id.
// Every schema column is bound with the value of obj, an auto increment column with a zero value is bound as NULL.
// obj can be a struct, a ptr to a struct or a map[string]interface{}.
func (t *Table[M]) Insert(ctx context.Context, obj interface{}) (int64, error) {
	const op = "insert"

	columns := t.Columns()
	if err := t.checkObject(ctx, op, columns, obj); err != nil {
		return 0, err
	}

	params := make([]query.Condition, 0, len(columns))
	for _, c := range columns {
		if c.Name == "" {
			continue
		}
		v := structer.Value(obj, c.Name)
		if c.AutoIncrement() && isZero(v) {
			v = nil
		}
		params = append(params, query.NewCondition(c, v))
	}

	stmt, bind := t.builder.RenderInsert(t.name, params)
	s, err := t.builder.Prepare(ctx, stmt)
	if err != nil {
		return 0, err
	}
	defer s.Close()

	for _, p := range bind {
		s.Bind(p.Name, p.Value)
	}

	pk, _ := t.Primary()
	return t.builder.InsertID(ctx, s, pk)
}

// Update the object and return the number of affected rows.
// Without a filter, the row with the primary key value of obj is updated.
// The primary key itself is never set.
func (t *Table[M]) Update(ctx context.Context, obj interface{}, where ...query.Condition) (int64, error) {
	const op = "update"

	columns := t.Columns()
	if err := t.checkObject(ctx, op, columns, obj); err != nil {
		return 0, err
	}

	if len(where) == 0 {
		pk, ok := primary(columns)
		if !ok {
			return 0, t.fail(op, query.ErrSchema, "no primary key for the default filter")
		}
		where = []query.Condition{query.NewCondition(pk, structer.Value(obj, pk.Name))}
	}
	if err := t.checkConditions(op, columns, where); err != nil {
		return 0, err
	}

	set := clause.PseudoAssignments(t.builder, columns, false)
	if set == "" {
		return 0, t.fail(op, query.ErrSchema, "no columns to update")
	}

	s, err := t.builder.Prepare(ctx, "UPDATE "+t.quotedName()+" SET "+set+" WHERE "+clause.WherePrefixed(t.builder, where, wherePrefix))
	if err != nil {
		return 0, err
	}
	defer s.Close()

	for _, c := range columns {
		if c.Name == "" || c.IsPrimary() {
			continue
		}
		s.Bind(c.Name, structer.Value(obj, c.Name))
	}
	bindWhere(s, where, wherePrefix)

	return rowsAffected(s.Exec(ctx))
}

// Delete the rows matching the filter and return the number of affected rows.
// An empty filter is rejected with query.ErrEmptyFilter, use DeleteAll instead.
func (t *Table[M]) Delete(ctx context.Context, where ...query.Condition) (int64, error) {
	const op = "delete"

	columns := t.Columns()
	if err := t.checkSchema(op, columns, false); err != nil {
		return 0, err
	}
	if len(where) == 0 {
		return 0, t.fail(op, query.ErrEmptyFilter, "use DeleteAll to delete all rows")
	}
	if err := t.checkConditions(op, columns, where); err != nil {
		return 0, err
	}

	s, err := t.builder.Prepare(ctx, "DELETE FROM "+t.quotedName()+" WHERE "+clause.WhereClause(t.builder, where))
	if err != nil {
		return 0, err
	}
	defer s.Close()

	bindWhere(s, where, "")

	return rowsAffected(s.Exec(ctx))
}

// DeleteAll deletes every row of the table.
func (t *Table[M]) DeleteAll(ctx context.Context) (int64, error) {
	if err := t.checkSchema("delete all", nil, false); err != nil {
		return 0, err
	}
	return rowsAffected(t.builder.Exec(ctx, "DELETE FROM "+t.quotedName()))
}

// Read returns a new model for every selected row.
// Zero rows return an empty slice.
func (t *Table[M]) Read(ctx context.Context, sel Select) ([]*M, error) {
	const op = "read"

	columns := t.Columns()
	if err := t.checkSchema(op, columns, false); err != nil {
		return nil, err
	}
	if err := t.checkSelect(op, columns, sel); err != nil {
		return nil, err
	}

	stmt := "SELECT " + clause.SelectList(t.builder, sel.Columns) + " FROM " + t.quotedName()
	if where := clause.WhereClause(t.builder, sel.Where); where != "" {
		stmt += " WHERE " + where
	}
	if order := clause.OrderClause(t.builder, sel.Order); order != "" {
		stmt += " " + order
	}
	if limit := clause.Limit(sel.Limit, sel.Offset); limit != "" {
		stmt += " " + limit
	}

	rows, err := t.rows(ctx, stmt, sel.Where)
	if err != nil {
		return nil, err
	}

	models := make([]*M, 0, len(rows))
	for _, row := range rows {
		m := new(M)
		if err := structer.Decode(row, m); err != nil {
			return nil, t.fail(op, query.ErrHydrate, "%s", err)
		}
		models = append(models, m)
	}
	return models, nil
}

// ReadOne returns the model of exactly one row.
// Zero rows return nil without an error, more than one row returns query.ErrMultipleRows.
// If no limit is set, LIMIT 2 is added.
func (t *Table[M]) ReadOne(ctx context.Context, sel Select) (*M, error) {
	if sel.Limit <= 0 {
		sel.Limit = 2
	}

	models, err := t.Read(ctx, sel)
	if err != nil {
		return nil, err
	}

	switch len(models) {
	case 0:
		return nil, nil
	case 1:
		return models[0], nil
	default:
		return nil, t.fail("read one", query.ErrMultipleRows, "%d rows", len(models))
	}
}

// rows runs an unparameterized query, or a prepared one if there are conditions.
func (t *Table[M]) rows(ctx context.Context, stmt string, where []query.Condition) ([]map[string]interface{}, error) {
	if len(where) == 0 {
		return t.builder.Query(ctx, stmt)
	}

	s, err := t.builder.Prepare(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	bindWhere(s, where, "")
	return s.All(ctx)
}

// bindWhere binds the condition values on the placeholder names of clause.Params.
func bindWhere(s *query.Stmt, where []query.Condition, prefix string) {
	for i, param := range clause.Params(where, prefix) {
		if param != "" {
			s.Bind(param, where[i].BindValue())
		}
	}
}

func (t *Table[M]) quotedName() string {
	return t.builder.QuoteIdentifier(t.name)
}

// checkSchema checks the table name and optionally the columns.
func (t *Table[M]) checkSchema(op string, columns []query.Column, needColumns bool) error {
	if t.name == "" {
		return t.fail(op, query.ErrSchema, "table name is missing")
	}
	if needColumns && clause.FieldList(t.builder, columns, true, false) == "" {
		return t.fail(op, query.ErrSchema, "columns are missing")
	}
	return nil
}

// checkObject checks the schema and the object of an insert or update.
func (t *Table[M]) checkObject(ctx context.Context, op string, columns []query.Column, obj interface{}) error {
	if err := t.checkSchema(op, columns, true); err != nil {
		return err
	}
	if isNil(obj) {
		return t.fail(op, query.ErrMissingObject, "object is nil")
	}
	if t.validate {
		if err := validateObject(ctx, columns, obj); err != nil {
			return t.fail(op, query.ErrInvalidObject, "%s", err)
		}
	}
	return nil
}

// checkConditions checks that every condition is a schema column with a value.
func (t *Table[M]) checkConditions(op string, columns []query.Column, where []query.Condition) error {
	for _, w := range where {
		if !hasColumn(columns, w.Name) {
			return t.fail(op, query.ErrUnknownColumn, "condition column %q", w.Name)
		}
		if w.Value == nil {
			return t.fail(op, query.ErrConditionValue, "condition column %s", w.Name)
		}
	}
	return nil
}

// checkSelect checks the conditions, selected and ordered columns.
func (t *Table[M]) checkSelect(op string, columns []query.Column, sel Select) error {
	for _, c := range sel.Columns {
		if !hasColumn(columns, c.Name) {
			return t.fail(op, query.ErrUnknownColumn, "select column %q", c.Name)
		}
	}
	for _, o := range sel.Order {
		if !hasColumn(columns, o.Name) {
			return t.fail(op, query.ErrUnknownColumn, "order column %q", o.Name)
		}
	}
	return t.checkConditions(op, columns, sel.Where)
}

func hasColumn(columns []query.Column, name string) bool {
	return name != "" && slicer.IndexFunc(columns, func(c query.Column) bool { return c.Name == name }) != -1
}

// rowsAffected is a helper for the exec results.
func rowsAffected(res interface{ RowsAffected() (int64, error) }, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// isNil reports a nil interface or a nil ptr, map, slice or interface.
func isNil(obj interface{}) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// isZero reports nil or the zero value of the type.
func isZero(v interface{}) bool {
	return v == nil || reflect.ValueOf(v).IsZero()
}
