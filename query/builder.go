// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package query is the driver layer of the table engine.
// Providers (mysql, postgres) register themselves and render the dialect specific parts,
// statements are executed over sqlx with named :param placeholders and logged with their duration.
package query

import (
	"errors"
	"fmt"

	"github.com/ivanfilho21/database/registry"
	"github.com/ivanfilho21/database/structer"
	"github.com/jmoiron/sqlx"
)

// internals
const (
	registryPrefix = "query_"
	dbExpr         = "!"
)

// Error messages.
var (
	ErrProviderFn = errors.New("query: provider must be a func(query.Config) (query.Provider, error)")
)

type providerFn func(Config) (Provider, error)

// init guards the registry entries of the query providers.
func init() {
	err := registry.Validator(registry.Validate{Prefix: registryPrefix, Fn: func(name string, value interface{}) error {
		if _, ok := value.(providerFn); !ok {
			return ErrProviderFn
		}
		return nil
	}})
	if err != nil {
		panic(err)
	}
}

// builder hides the provider Open and SetDB functions.
type builder struct {
	Provider
}

// Register the query provider.
func Register(name string, p func(Config) (Provider, error)) error {
	return registry.Set(registryPrefix+name, providerFn(p))
}

// New creates a new builder instance with the given query provider and configuration.
// Unset config fields are filled with the DefaultConfig.
// Error will return if the query provider was not registered, query provider factory or the query provider Open function will return one.
func New(name string, config Config) (Builder, error) {
	p, err := provider(name, config)
	if err != nil {
		return nil, err
	}

	// open the connection.
	err = p.Open()
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return &builder{Provider: p}, nil
}

// NewWithDB creates a new builder on an existing *sqlx.DB.
// The connection is not checked and no pool settings are changed.
func NewWithDB(name string, db *sqlx.DB, config Config) (Builder, error) {
	p, err := provider(name, config)
	if err != nil {
		return nil, err
	}
	p.SetDB(db)
	return &builder{Provider: p}, nil
}

// provider returns a provider instance.
func provider(name string, config Config) (Provider, error) {
	// check if the query provider is registered.
	r, err := registry.Get(registryPrefix + name)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	if config.Provider == "" {
		config.Provider = name
	}
	err = structer.Merge(&config, DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	// get the provider instance.
	p, err := r.(providerFn)(config)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return p, nil
}

// DbExpr expressions will not get quoted.
func DbExpr(s string) string {
	return dbExpr + s
}
