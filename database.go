// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package database opens the configured query builders and shares one logger between them.
//
// The Configuration can be embedded in an application config and loaded with the viper provider:
//
//	dbs, err := database.Load(viper.Options{FileName: "config.json", FilePath: ".", FileType: "json"})
//	b, err := dbs.Builder("main")
//	users, err := table.New[User](b, "users", columns)
package database

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/ivanfilho21/database/config"
	"github.com/ivanfilho21/database/config/viper"
	"github.com/ivanfilho21/database/logger"
	"github.com/ivanfilho21/database/logger/logrus"
	"github.com/ivanfilho21/database/query"
	"github.com/ivanfilho21/database/slicer"

	// registers the query providers.
	_ "github.com/ivanfilho21/database/query/mysql"
	_ "github.com/ivanfilho21/database/query/postgres"
)

// Error messages.
var (
	ErrConfig       = "database: config %#v is mandatory"
	ErrDuplicate    = "database: builder %s is configured twice"
	ErrUnknown      = "database: builder %s does not exist"
	ErrConfigStruct = errors.New("database: config does not embed database.Configuration")
)

// DefaultLogger is the registered logger name if Log.Name is empty.
const DefaultLogger = "database"

// Configuration of the databases.
// It can be embedded in an application config.
type Configuration struct {
	Databases []query.Config `mapstructure:"databases"`
	Log       Log            `mapstructure:"log"`
}

// Log configuration of the statement and error logger.
type Log struct {
	// Name of the registered logger, default "database".
	Name string `mapstructure:"name"`
	// Level TRACE, DEBUG, INFO, WARNING, ERROR or PANIC. Default is DEBUG.
	Level string `mapstructure:"level"`
	// JSON output.
	JSON bool `mapstructure:"json"`
	// Caller adds the file and line to the entries.
	Caller bool `mapstructure:"caller"`
}

// Databases holds the opened builders by name.
type Databases struct {
	mu       sync.RWMutex
	names    []string
	builders map[string]query.Builder
	logger   logger.Manager
}

// Load the configuration with the viper provider and open the databases.
func Load(opts viper.Options) (*Databases, error) {
	var cfg Configuration
	if err := config.Load(config.VIPER, &cfg, opts); err != nil {
		return nil, err
	}
	return New(cfg)
}

// New opens a builder for every configured database.
// cfg can be a Configuration or any struct embedding it.
// A database without a name is registered by its provider name.
// Error will return if the provider is missing, a name exists twice or a connection can not be opened.
// Already opened builders are closed on error.
func New(cfg interface{}) (*Databases, error) {
	c, err := configuration(cfg)
	if err != nil {
		return nil, err
	}

	l, err := newLogger(c.Log)
	if err != nil {
		return nil, err
	}

	d := &Databases{builders: make(map[string]query.Builder, len(c.Databases)), logger: l}
	for _, db := range c.Databases {
		if db.Provider == "" {
			_ = d.Close()
			return nil, fmt.Errorf(ErrConfig, "database:provider")
		}
		if db.Name == "" {
			db.Name = db.Provider
		}
		if _, exists := slicer.Exists(d.names, db.Name); exists {
			_ = d.Close()
			return nil, fmt.Errorf(ErrDuplicate, db.Name)
		}

		b, err := query.New(db.Provider, db)
		if err != nil {
			_ = d.Close()
			l.WithFields(logger.Fields{"component": "database", "builder": db.Name}).Error(err.Error())
			return nil, err
		}
		b.SetLogger(l.WithFields(logger.Fields{"builder": db.Name}))

		d.builders[db.Name] = b
		d.names = append(d.names, db.Name)
	}

	return d, nil
}

// Builder returns the builder by name.
func (d *Databases) Builder(name string) (query.Builder, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	b, ok := d.builders[name]
	if !ok {
		return nil, fmt.Errorf(ErrUnknown, name)
	}
	return b, nil
}

// Builders returns all builders in the configured order.
func (d *Databases) Builders() []query.Builder {
	d.mu.RLock()
	defer d.mu.RUnlock()
	rv := make([]query.Builder, 0, len(d.names))
	for _, name := range d.names {
		rv = append(rv, d.builders[name])
	}
	return rv
}

// Logger returns the shared logger.
func (d *Databases) Logger() logger.Manager {
	return d.logger
}

// Close all connections. The first error is returned.
func (d *Databases) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var rv error
	for _, name := range d.names {
		if err := d.builders[name].Close(); err != nil && rv == nil {
			rv = err
		}
	}
	d.names = nil
	d.builders = map[string]query.Builder{}
	return rv
}

// configuration checks if cfg is or embeds a Configuration.
func configuration(cfg interface{}) (Configuration, error) {
	switch c := cfg.(type) {
	case Configuration:
		return c, nil
	case *Configuration:
		if c != nil {
			return *c, nil
		}
		return Configuration{}, ErrConfigStruct
	}

	rv := reflect.Indirect(reflect.ValueOf(cfg))
	if rv.IsValid() && rv.Kind() == reflect.Struct {
		for i := 0; i < rv.NumField(); i++ {
			if !rv.Type().Field(i).IsExported() {
				continue
			}
			if c, ok := rv.Field(i).Interface().(Configuration); ok {
				return c, nil
			}
		}
	}
	return Configuration{}, ErrConfigStruct
}

// newLogger returns the registered logger or registers a logrus provider.
func newLogger(cfg Log) (logger.Manager, error) {
	lvl, err := logger.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	name := cfg.Name
	if name == "" {
		name = DefaultLogger
	}

	l, err := logger.Get(name)
	if err != nil {
		if err = logger.Register(name, logrus.New(logrus.Options{JSON: cfg.JSON, Out: os.Stderr})); err != nil {
			return nil, err
		}
		if l, err = logger.Get(name); err != nil {
			return nil, err
		}
	}

	l = l.New()
	l.SetLogLevel(lvl)
	l.SetCallerFields(cfg.Caller)
	return l, nil
}
