// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package structer

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Error messages.
var (
	ErrDecodeTarget = errors.New("structer: decode target must be a non-nil ptr to a struct or map")
	ErrDecode       = "structer: column %s: %w"
)

// time layouts the drivers return for DATE, TIME, DATETIME and TIMESTAMP columns as text.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05",
}

var (
	scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()
	timeType    = reflect.TypeOf(time.Time{})
)

// Decode assigns the row values to the matching fields of the struct ptr.
// A column matches a field by `db` tag or camel-cased name (see Field). Unknown columns are ignored,
// NULL values leave the field untouched.
// Values are weakly typed: driver []byte becomes a string or number, sql.Scanner fields are scanned.
// A ptr to a map[string]interface{} receives the row as it is, []byte values as string.
func Decode(row map[string]interface{}, ptr interface{}) error {
	if m, ok := ptr.(*map[string]interface{}); ok && m != nil {
		if *m == nil {
			*m = make(map[string]interface{}, len(row))
		}
		for column, value := range row {
			if b, ok := value.([]byte); ok {
				value = string(b)
			}
			(*m)[column] = value
		}
		return nil
	}

	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrDecodeTarget
	}
	t := v.Elem().Type()

	for column, value := range row {
		if value == nil {
			continue
		}
		f, ok := Field(t, column)
		if !ok {
			continue
		}

		target := fieldByIndex(v.Elem(), f.Index)
		if err := decodeValue(value, target); err != nil {
			return fmt.Errorf(ErrDecode, column, err)
		}
	}
	return nil
}

// fieldByIndex is like reflect.Value.FieldByIndex but allocates nil embedded pointers.
func fieldByIndex(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}

// decodeValue writes a single driver value into the target field.
func decodeValue(value interface{}, target reflect.Value) error {
	// sql.Scanner fields (query.NullString, sql.NullInt64, ...) scan the raw driver value.
	if reflect.PtrTo(target.Type()).Implements(scannerType) {
		return target.Addr().Interface().(sql.Scanner).Scan(value)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			bytesHook,
			timeHook,
		),
		WeaklyTypedInput: true,
		Result:           target.Addr().Interface(),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(value)
}

// bytesHook converts driver []byte values into strings, unless the target is a byte slice.
func bytesHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	b, ok := data.([]byte)
	if !ok {
		return data, nil
	}
	if to.Kind() == reflect.Slice && to.Elem().Kind() == reflect.Uint8 {
		return data, nil
	}
	return string(b), nil
}

// timeHook parses textual date and time values into time.Time.
func timeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	s, ok := data.(string)
	if !ok || to != timeType {
		return data, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("structer: can not parse %q as time", s)
}
