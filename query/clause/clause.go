// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package clause assembles the SQL fragments of a table statement.
// Columns with an empty name are skipped by every function.
// Identifiers are quoted by the given query.Quoter, values are always bound as :name parameters.
package clause

import (
	"strconv"
	"strings"

	"github.com/ivanfilho21/database/query"
)

// Separators.
const (
	Comma = ", "
	And   = " AND "
)

// FieldList returns the comma separated column list.
// If fullInfo is true, the column definition is used instead of the quoted name.
// The primary key is skipped if includePK is false.
func FieldList(q query.Quoter, columns []query.Column, includePK bool, fullInfo bool) string {
	var fields string
	for _, c := range columns {
		if !eligible(c, includePK) {
			continue
		}
		if fullInfo {
			fields += c.Definition(q) + Comma
		} else {
			fields += q.QuoteIdentifier(c.Name) + Comma
		}
	}
	return TrimSuffix(fields, Comma)
}

// PseudoAssignments returns the `name` = :name list of INSERT ... SET and UPDATE statements.
func PseudoAssignments(q query.Quoter, columns []query.Column, includePK bool) string {
	var fields string
	for _, c := range columns {
		if !eligible(c, includePK) {
			continue
		}
		fields += q.QuoteIdentifier(c.Name) + " = :" + c.Name + Comma
	}
	return TrimSuffix(fields, Comma)
}

// Placeholders returns the :name list of an INSERT ... VALUES statement.
func Placeholders(columns []query.Column, includePK bool) string {
	var fields string
	for _, c := range columns {
		if !eligible(c, includePK) {
			continue
		}
		fields += ":" + c.Name + Comma
	}
	return TrimSuffix(fields, Comma)
}

// WhereClause returns the conditions joined by AND, without the WHERE keyword.
// An empty string returns if no condition qualifies.
func WhereClause(q query.Quoter, conditions []query.Condition) string {
	return WherePrefixed(q, conditions, "")
}

// WherePrefixed is like WhereClause but the placeholder names get the prefix.
// The placeholder names are the ones of Params.
func WherePrefixed(q query.Quoter, conditions []query.Condition, prefix string) string {
	var where string
	for i, param := range Params(conditions, prefix) {
		if param == "" {
			continue
		}
		where += q.QuoteIdentifier(conditions[i].Name) + " " + conditions[i].Operator() + " :" + param + And
	}
	return TrimSuffix(where, And)
}

// Params returns the placeholder name of every condition, in the same order.
// A column used by more than one condition gets a numbered suffix (email, email_2), which never
// collides with the name of another condition. Conditions without a name return "".
func Params(conditions []query.Condition, prefix string) []string {
	reserved := make(map[string]bool, len(conditions))
	for _, c := range conditions {
		if c.Name != "" {
			reserved[prefix+c.Name] = true
		}
	}

	used := make(map[string]bool, len(conditions))
	params := make([]string, len(conditions))
	for i, c := range conditions {
		if c.Name == "" {
			continue
		}
		param := prefix + c.Name
		if used[param] {
			for n := 2; ; n++ {
				param = prefix + c.Name + "_" + strconv.Itoa(n)
				if !used[param] && !reserved[param] {
					break
				}
			}
		}
		used[param] = true
		params[i] = param
	}
	return params
}

// OrderClause returns the ORDER BY clause or an empty string if no order qualifies.
func OrderClause(q query.Quoter, orders []query.Order) string {
	var order string
	for _, o := range orders {
		if o.Name == "" {
			continue
		}
		order += q.QuoteIdentifier(o.Name) + " " + string(query.NewOrder(o.Column, o.Direction).Direction) + Comma
	}
	order = TrimSuffix(order, Comma)
	if order == "" {
		return ""
	}
	return "ORDER BY " + order
}

// SelectList returns the quoted column names or * if none qualifies.
func SelectList(q query.Quoter, columns []query.Column) string {
	if fields := FieldList(q, columns, true, false); fields != "" {
		return fields
	}
	return "*"
}

// Limit returns the LIMIT clause. An empty string returns if limit is not positive.
func Limit(limit int, offset int) string {
	if limit <= 0 {
		return ""
	}
	l := "LIMIT " + strconv.Itoa(limit)
	if offset > 0 {
		l += " OFFSET " + strconv.Itoa(offset)
	}
	return l
}

// TrimSuffix removes one trailing separator.
func TrimSuffix(s string, sep string) string {
	if sep != "" && strings.HasSuffix(s, sep) {
		return s[:len(s)-len(sep)]
	}
	return s
}

// eligible reports if the column is rendered.
func eligible(c query.Column, includePK bool) bool {
	return c.Name != "" && (includePK || !c.IsPrimary())
}
