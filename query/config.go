// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import "time"

// Config sql struct.
type Config struct {
	Name     string `mapstructure:"name"`     // builder name, used by the database package.
	Provider string `mapstructure:"provider"` // registered query provider (mysql, postgres).
	Driver   string `mapstructure:"driver"`   // database/sql driver name, provider default if empty.

	Username string            `mapstructure:"username"`
	Password string            `mapstructure:"password"`
	Host     string            `mapstructure:"host"`
	Port     int               `mapstructure:"port"`
	Database string            `mapstructure:"database"`
	Params   map[string]string `mapstructure:"params"`

	MaxIdleConnections int           `mapstructure:"maxidleconnections"`
	MaxOpenConnections int           `mapstructure:"maxopenconnections"`
	MaxConnLifetime    time.Duration `mapstructure:"maxconnlifetime"`
	Timeout            string        `mapstructure:"timeout"`

	PreQuery []string `mapstructure:"prequery"`
}

// DefaultConfig returns the values which are used for all unset config fields.
func DefaultConfig() Config {
	return Config{
		Host:               "127.0.0.1",
		MaxIdleConnections: 2,
		Timeout:            "30s",
	}
}

// TimeoutDuration parses the timeout. An invalid or empty timeout returns 0.
func (c Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}
