// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stringer converts between column, field, accessor and model names.
package stringer

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
	"github.com/serenize/snaker"
)

// getterPrefix of accessor methods.
const getterPrefix = "Get"

// SnakeToCamel of the given string, common initialisms are upper-cased (user_id -> UserID).
func SnakeToCamel(s string) string {
	return snaker.SnakeToCamel(s)
}

// Capitalize upper-cases the first letter of every underscore separated segment and joins them.
// first_name -> FirstName, user_profile_photo -> UserProfilePhoto, user_id -> UserId.
func Capitalize(s string) string {
	var b strings.Builder
	for _, segment := range strings.Split(s, "_") {
		if segment == "" {
			continue
		}
		b.WriteString(strcase.ToCamel(segment))
	}
	return b.String()
}

// Getter returns the accessor name of a column. Every segment is capitalized.
// An empty column name returns an empty string.
func Getter(column string) string {
	if column == "" {
		return ""
	}
	return getterPrefix + Capitalize(column)
}

// GoGetter returns the accessor name in Go initialism style (user_id -> GetUserID).
// An empty column name returns an empty string.
func GoGetter(column string) string {
	if column == "" {
		return ""
	}
	return getterPrefix + SnakeToCamel(column)
}

// ModelName derives a model name from a table name: the last segment is singularized and
// every segment capitalized (users -> User, order_items -> OrderItem).
func ModelName(table string) string {
	segments := strings.Split(table, "_")
	last := len(segments) - 1
	segments[last] = Singular(segments[last])
	return Capitalize(strings.Join(segments, "_"))
}

// Singular of the given string.
func Singular(s string) string {
	return inflection.Singular(s)
}
