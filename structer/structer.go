// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package structer bridges structs and table columns: column tags, value extraction, hydration and merging.
package structer

import (
	"strings"

	"github.com/imdario/mergo"
)

// tagSeparator of further tag values.
const tagSeparator = ";"

// TagName is the struct tag that maps a field to a column name (`db:"first_name"`).
// "-" ignores the field. Anything after a ";" is ignored.
const TagName = "db"

// Merge fills the zero-value fields of dst with the values of src.
func Merge(dst interface{}, src interface{}) error {
	return mergo.Merge(dst, src)
}

// ColumnName returns the column name of a `db` tag. "-" and an empty tag return "".
func ColumnName(tag string) string {
	name := strings.TrimSpace(strings.SplitN(tag, tagSeparator, 2)[0])
	if name == "-" {
		return ""
	}
	return name
}
