// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package structer

import (
	"reflect"

	"github.com/ivanfilho21/database/stringer"
)

// Value returns the value of a column property of obj.
//
// The lookup order is:
//   - map with string keys (or a ptr to it): the map entry of the property.
//   - accessor method Get<Property> (every "_" segment capitalized), or its Go initialism form (GetUserID).
//   - struct field with the exact name, a matching `db` tag or the camel-cased name.
//
// Nil returns if obj is nil or nothing matches.
func Value(obj interface{}, property string) interface{} {
	if obj == nil || property == "" {
		return nil
	}

	v := reflect.ValueOf(obj)
	elem := v
	for elem.Kind() == reflect.Ptr || elem.Kind() == reflect.Interface {
		if elem.IsNil() {
			return nil
		}
		elem = elem.Elem()
	}

	if elem.Kind() == reflect.Map {
		if elem.Type().Key().Kind() != reflect.String {
			return nil
		}
		mv := elem.MapIndex(reflect.ValueOf(property).Convert(elem.Type().Key()))
		if !mv.IsValid() {
			return nil
		}
		return mv.Interface()
	}

	if rv, ok := callGetter(v, property); ok {
		return rv
	}

	if elem.Kind() != reflect.Struct {
		return nil
	}

	f, ok := Field(elem.Type(), property)
	if !ok {
		return nil
	}
	// a nil embedded ptr has no value.
	fv, err := elem.FieldByIndexErr(f.Index)
	if err != nil {
		return nil
	}
	return fv.Interface()
}

// callGetter calls the first existing accessor of the property.
// A pointer receiver method is found when obj is addressable or already a pointer.
func callGetter(v reflect.Value, property string) (interface{}, bool) {
	candidates := []reflect.Value{v}
	if v.Kind() != reflect.Ptr {
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		candidates = append(candidates, ptr)
	}

	names := []string{stringer.Getter(property)}
	if goName := stringer.GoGetter(property); goName != names[0] {
		names = append(names, goName)
	}

	for _, name := range names {
		for _, c := range candidates {
			m := c.MethodByName(name)
			if !m.IsValid() {
				continue
			}
			if m.Type().NumIn() != 0 || m.Type().NumOut() == 0 {
				continue
			}
			if c.Kind() == reflect.Ptr && c.IsNil() {
				continue
			}
			return m.Call(nil)[0].Interface(), true
		}
	}
	return nil, false
}

// Field returns the exported struct field of a column.
// It matches the exact field name, a `db` tag or the camel-cased column name in that order.
func Field(t reflect.Type, column string) (reflect.StructField, bool) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || column == "" {
		return reflect.StructField{}, false
	}

	if f, ok := t.FieldByName(column); ok && f.PkgPath == "" {
		return f, true
	}

	var byCamel *reflect.StructField
	camel := []string{stringer.Capitalize(column), stringer.SnakeToCamel(column)}
	for _, f := range fields(t) {
		if ColumnName(f.Tag.Get(TagName)) == column {
			return f, true
		}
		if byCamel == nil && (f.Name == camel[0] || f.Name == camel[1]) && f.Tag.Get(TagName) != "-" {
			f := f
			byCamel = &f
		}
	}
	if byCamel != nil {
		return *byCamel, true
	}
	return reflect.StructField{}, false
}

// fields returns all exported fields, embedded structs and struct ptrs are flattened.
func fields(t reflect.Type) []reflect.StructField {
	var rv []reflect.StructField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if et := embeddedStruct(f); et != nil {
			for _, ef := range fields(et) {
				ef.Index = append([]int{i}, ef.Index...)
				rv = append(rv, ef)
			}
			continue
		}
		if f.PkgPath != "" {
			continue
		}
		rv = append(rv, f)
	}
	return rv
}

// embeddedStruct returns the struct type of an untagged embedded struct or exported struct ptr.
// An unexported ptr is skipped, it could not be allocated on hydration.
func embeddedStruct(f reflect.StructField) reflect.Type {
	if !f.Anonymous || f.Tag.Get(TagName) != "" {
		return nil
	}
	t := f.Type
	if t.Kind() == reflect.Ptr {
		if f.PkgPath != "" {
			return nil
		}
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return t
}
