// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package table

import (
	"context"
	"database/sql/driver"
	"fmt"
	"reflect"
	"strconv"

	valid "github.com/go-playground/validator/v10"
	"github.com/ivanfilho21/database/query"
	"github.com/ivanfilho21/database/query/types"
	"github.com/ivanfilho21/database/structer"
)

// TagValidate is the struct tag of the validation rules.
const TagValidate = "validate"

// validate is a global instance.
var validate *valid.Validate

// init registers a global validator and the null types of the query package.
func init() {
	validate = valid.New()
	validate.SetTagName(TagValidate)
	validate.RegisterCustomTypeFunc(validateValuer, query.NullString{}, query.NullBool{}, query.NullInt{}, query.NullFloat{}, query.NullTime{})
}

// RegisterValidation will add a validation to the global validator.
func RegisterValidation(tag string, fn func(ctx context.Context, fl valid.FieldLevel) bool, callValidationEvenIfZero ...bool) error {
	return validate.RegisterValidationCtx(tag, fn, callValidationEvenIfZero...)
}

// Validate will return the global validate instance.
func Validate() *valid.Validate {
	return validate
}

// validateObject runs the struct validation and checks the VARCHAR length of the schema columns.
func validateObject(ctx context.Context, columns []query.Column, obj interface{}) error {
	if reflect.Indirect(reflect.ValueOf(obj)).Kind() == reflect.Struct {
		if err := validate.StructCtx(ctx, obj); err != nil {
			return err
		}
	}

	for _, c := range columns {
		if c.Name == "" || c.Type != types.VARCHAR {
			continue
		}
		s, ok := structer.Value(obj, c.Name).(string)
		if !ok {
			continue
		}
		length := c.Length
		if length <= 0 {
			length = types.DefaultVarcharLength
		}
		if err := validate.VarCtx(ctx, s, "max="+strconv.Itoa(length)); err != nil {
			return fmt.Errorf("column %s: %w", c.Name, err)
		}
	}
	return nil
}

// validateValuer is helper to register the null types of the query package.
func validateValuer(field reflect.Value) interface{} {
	if valuer, ok := field.Interface().(driver.Valuer); ok {
		val, err := valuer.Value()
		if err == nil {
			return val
		}
	}
	return nil
}
