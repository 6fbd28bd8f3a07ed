// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"database/sql/driver"
	"fmt"
	"time"

	"gopkg.in/guregu/null.v4"
)

// NullString wraps gopkg.in/guregu/null.String
type NullString null.String

// NullBool wraps gopkg.in/guregu/null.Bool
type NullBool null.Bool

// NullInt wraps gopkg.in/guregu/null.Int
type NullInt null.Int

// NullFloat wraps gopkg.in/guregu/null.Float
type NullFloat null.Float

// NullTime wraps gopkg.in/guregu/null.Time
type NullTime null.Time

// NewNullString creates a new NullString.
func NewNullString(s string, valid bool) NullString {
	return NullString(null.NewString(s, valid))
}

// NewNullBool creates a new NullBool.
func NewNullBool(b bool, valid bool) NullBool {
	return NullBool(null.NewBool(b, valid))
}

// NewNullInt creates a new NullInt.
func NewNullInt(i int64, valid bool) NullInt {
	return NullInt(null.NewInt(i, valid))
}

// NewNullFloat creates a new NullFloat.
func NewNullFloat(f float64, v bool) NullFloat {
	return NullFloat(null.NewFloat(f, v))
}

// NewNullTime creates a new NullTime.
func NewNullTime(t time.Time, valid bool) NullTime {
	return NullTime(null.NewTime(t, valid))
}

// The defined types lose the methods of gopkg.in/guregu/null, the JSON representation is delegated back.

// MarshalJSON implements json.Marshaler.
func (s NullString) MarshalJSON() ([]byte, error) { return null.String(s).MarshalJSON() }

// UnmarshalJSON implements json.Unmarshaler.
func (s *NullString) UnmarshalJSON(data []byte) error { return (*null.String)(s).UnmarshalJSON(data) }

// MarshalJSON implements json.Marshaler.
func (b NullBool) MarshalJSON() ([]byte, error) { return null.Bool(b).MarshalJSON() }

// UnmarshalJSON implements json.Unmarshaler.
func (b *NullBool) UnmarshalJSON(data []byte) error { return (*null.Bool)(b).UnmarshalJSON(data) }

// MarshalJSON implements json.Marshaler.
func (i NullInt) MarshalJSON() ([]byte, error) { return null.Int(i).MarshalJSON() }

// UnmarshalJSON implements json.Unmarshaler.
func (i *NullInt) UnmarshalJSON(data []byte) error { return (*null.Int)(i).UnmarshalJSON(data) }

// MarshalJSON implements json.Marshaler.
func (f NullFloat) MarshalJSON() ([]byte, error) { return null.Float(f).MarshalJSON() }

// UnmarshalJSON implements json.Unmarshaler.
func (f *NullFloat) UnmarshalJSON(data []byte) error { return (*null.Float)(f).UnmarshalJSON(data) }

// MarshalJSON implements json.Marshaler.
func (t NullTime) MarshalJSON() ([]byte, error) { return null.Time(t).MarshalJSON() }

// UnmarshalJSON implements json.Unmarshaler.
func (t *NullTime) UnmarshalJSON(data []byte) error { return (*null.Time)(t).UnmarshalJSON(data) }

// toString converts a bind value into its string form. driver.Valuer are resolved first.
func toString(v interface{}) string {
	if valuer, ok := v.(driver.Valuer); ok {
		if dv, err := valuer.Value(); err == nil && dv != nil {
			v = dv
		}
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprint(v)
}
