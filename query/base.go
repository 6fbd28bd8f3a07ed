// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ivanfilho21/database/logger"
	"github.com/jmoiron/sqlx"
)

// Error messages.
var (
	ErrDbNotSet = errors.New("query: DB is not set")
)

// Base struct includes the configuration, logger and the statement execution.
// Providers embed it and set the Provider self reference.
type Base struct {
	db       *sqlx.DB
	Config   Config
	Logger   logger.Manager
	Provider Provider
}

// SetDB sets the *sqlx.DB.
func (b *Base) SetDB(db *sqlx.DB) {
	b.db = db
}

// DB returns the *sqlx.DB.
func (b *Base) DB() *sqlx.DB {
	return b.db
}

// Close the database.
func (b *Base) Close() error {
	if b.db == nil {
		return ErrDbNotSet
	}
	return b.db.Close()
}

// QuoteIdentifier quotes the identifier with the providers quote-identifier-character.
// If query.DbExpr was used, the string will not be quoted.
// "go.users u" will be converted to `go`.`users` `u`
func (b *Base) QuoteIdentifier(c string) string {
	if c == "" {
		return ""
	}

	// don't escape query.DbExpr()
	if c[0:1] == dbExpr {
		return c[1:]
	}

	char := b.Provider.QuoteIdentifierChar()

	// replace quote characters in the column name.
	c = strings.Replace(c, char, "", -1)

	// check if an alias was used
	alias := strings.Split(c, " ")
	var rv string
	for _, i := range strings.Split(alias[0], ".") {
		if rv != "" {
			rv += "."
		}
		rv += char + i + char
	}
	if len(alias) >= 2 {
		rv += " " + b.QuoteIdentifier(alias[len(alias)-1])
	}

	return rv
}

// Exec will execute the statement.
// If a logger is defined, the query will be logged on `DEBUG` lvl with a timer.
func (b *Base) Exec(ctx context.Context, stmt string) (sql.Result, error) {
	if b.db == nil {
		return nil, ErrDbNotSet
	}

	if b.Logger != nil {
		l := b.Logger.WithTimer()
		defer l.Debug(stmt)
	}

	return b.db.ExecContext(ctx, stmt)
}

// Query will return all rows of the statement as column => value maps.
// If a logger is defined, the query will be logged on `DEBUG` lvl with a timer.
func (b *Base) Query(ctx context.Context, stmt string) ([]map[string]interface{}, error) {
	if b.db == nil {
		return nil, ErrDbNotSet
	}

	if b.Logger != nil {
		l := b.Logger.WithTimer()
		defer l.Debug(stmt)
	}

	rows, err := b.db.QueryxContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	return scanAll(rows)
}

// Prepare creates a named statement.
// The statement must be closed after usage.
func (b *Base) Prepare(ctx context.Context, stmt string) (*Stmt, error) {
	if b.db == nil {
		return nil, ErrDbNotSet
	}

	named, err := b.db.PrepareNamedContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	return &Stmt{query: stmt, stmt: named, params: map[string]interface{}{}, logger: b.Logger}, nil
}

// InsertID executes the insert and returns the drivers LastInsertId.
// Providers which do not support LastInsertId must overwrite it.
func (b *Base) InsertID(ctx context.Context, stmt *Stmt, primary Column) (int64, error) {
	res, err := stmt.Exec(ctx)
	if err != nil {
		return 0, err
	}
	if primary.Name == "" {
		return 0, nil
	}
	return res.LastInsertId()
}

// Open will set some basic sql Settings and check the connection.
// all defined config.PreQuery will run here.
func (b *Base) Open() error {
	if b.db == nil {
		return ErrDbNotSet
	}

	// settings
	b.db.SetMaxIdleConns(b.Config.MaxIdleConnections) // go default 2
	b.db.SetMaxOpenConns(b.Config.MaxOpenConnections) // go default 0
	b.db.SetConnMaxLifetime(b.Config.MaxConnLifetime) // go default 0

	// check connection
	err := b.db.Ping()
	if err != nil {
		return err
	}

	// add pre query
	for _, v := range b.Config.PreQuery {
		_, err = b.Exec(context.Background(), v)
		if err != nil {
			return fmt.Errorf("query: %w", err)
		}
	}

	return nil
}

// SetLogger sets the statement logger.
func (b *Base) SetLogger(l logger.Manager) {
	b.Logger = l
}

// scanAll scans every row into a map and closes the rows.
func scanAll(rows *sqlx.Rows) ([]map[string]interface{}, error) {
	defer rows.Close()

	rv := make([]map[string]interface{}, 0)
	for rows.Next() {
		row := map[string]interface{}{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		rv = append(rv, row)
	}
	return rv, rows.Err()
}
