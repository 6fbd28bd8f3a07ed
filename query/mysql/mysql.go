// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mysql is the MySQL provider of the query package.
// It registers itself as "mysql" and uses github.com/go-sql-driver/mysql.
package mysql

import (
	"errors"
	"net"
	"strconv"

	driver "github.com/go-sql-driver/mysql"
	"github.com/ivanfilho21/database/query"
	"github.com/ivanfilho21/database/query/clause"
	"github.com/ivanfilho21/database/slicer"
	"github.com/jmoiron/sqlx"
)

// internals
const (
	driverName   = "mysql"
	errDuplicate = 1062
)

type mysql struct {
	query.Base
}

// init registers the provider under mysql.
func init() {
	err := query.Register("mysql", newMysql)
	if err != nil {
		panic(err)
	}
}

// newMysql creates a new query.Provider.
func newMysql(config query.Config) (query.Provider, error) {
	mysqlBuilder := &mysql{}
	mysqlBuilder.Base.Provider = mysqlBuilder
	mysqlBuilder.Base.Config = config

	return mysqlBuilder, nil
}

// Config returns the query.Config.
func (m *mysql) Config() query.Config {
	return m.Base.Config
}

// QuoteIdentifierChar for mysql.
func (m *mysql) QuoteIdentifierChar() string {
	return "`"
}

// DSN returns the data source name of the configuration.
func DSN(cfg query.Config) string {
	c := driver.NewConfig()
	c.User = cfg.Username
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	c.DBName = cfg.Database
	c.ParseTime = true
	c.Timeout = cfg.TimeoutDuration()
	c.Params = map[string]string{"charset": "utf8"}
	for k, v := range cfg.Params {
		c.Params[k] = v
	}
	return c.FormatDSN()
}

// Open creates a new *sqlx.DB.
func (m *mysql) Open() error {
	name := m.Base.Config.Driver
	if name == "" {
		name = driverName
	}

	db, err := sqlx.Open(name, DSN(m.Base.Config))
	if err != nil {
		return err
	}

	m.SetDB(db)

	// call base Open function.
	return m.Base.Open()
}

// RenderInsert returns INSERT INTO `table` SET `col` = :col, ...
// All params are bound, an auto increment column bound with NULL lets mysql generate the id.
func (m *mysql) RenderInsert(table string, params []query.Condition) (string, []query.Condition) {
	columns := slicer.Map(params, func(p query.Condition) query.Column { return p.Column })
	return "INSERT INTO " + m.QuoteIdentifier(table) + " SET " + clause.PseudoAssignments(m, columns, true), params
}

// IsDuplicate reports a mysql duplicate entry error (1062).
func (m *mysql) IsDuplicate(err error) bool {
	var mErr *driver.MySQLError
	return errors.As(err, &mErr) && mErr.Number == errDuplicate
}
