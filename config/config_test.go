// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ivanfilho21/database/config"
	"github.com/ivanfilho21/database/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockInterface struct {
	mock.Mock
}

func (m *mockInterface) Parse(cfg interface{}, options interface{}) error {
	return m.Called(cfg, options).Error(0)
}

func TestLoad(t *testing.T) {
	asserts := assert.New(t)

	type Config struct {
		DSN string
	}
	cfg := Config{}
	options := "something"
	mockProvider := new(mockInterface)

	asserts.NoError(config.Register("config-mock", mockProvider))
	asserts.Equal(registry.ErrMandatoryArguments, config.Register("config-nil", nil))
	asserts.NoError(registry.Set("config-err-interface", ""))

	// error: no pointer
	err := config.Load("config-mock", cfg, options)
	asserts.Equal(config.ErrPointer, err)

	// error: nil
	err = config.Load("config-mock", nil, options)
	asserts.Equal(config.ErrPointer, err)

	// error: wrong type
	err = config.Load("config-err-interface", &cfg, options)
	asserts.Equal(config.ErrInterface, err)

	// error: provider does not exist
	err = config.Load("config-not-existing", &cfg, options)
	asserts.Error(err)
	asserts.Equal(fmt.Errorf("config: %w", errors.Unwrap(err)), err)

	// error: provider error
	mockProvider.On("Parse", &cfg, options).Once().Return(errors.New("an error"))
	err = config.Load("config-mock", &cfg, options)
	asserts.Equal(errors.New("an error"), err)

	// ok
	mockProvider.On("Parse", &cfg, options).Once().Return(nil)
	err = config.Load("config-mock", &cfg, options)
	asserts.NoError(err)

	mockProvider.AssertExpectations(t)
}
