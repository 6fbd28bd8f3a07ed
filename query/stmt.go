// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"context"
	"database/sql"

	"github.com/ivanfilho21/database/logger"
	"github.com/jmoiron/sqlx"
)

// Stmt is a prepared statement with named :param placeholders.
// It is not safe for concurrent use and must be closed after usage.
type Stmt struct {
	query  string
	stmt   *sqlx.NamedStmt
	params map[string]interface{}
	logger logger.Manager
}

// Bind a value to the named parameter.
func (s *Stmt) Bind(name string, value interface{}) *Stmt {
	s.params[name] = value
	return s
}

// Exec executes the statement with the bound parameters.
func (s *Stmt) Exec(ctx context.Context) (sql.Result, error) {
	defer s.log()()
	return s.stmt.ExecContext(ctx, s.params)
}

// All returns all rows as column => value maps.
// Zero rows return an empty slice.
func (s *Stmt) All(ctx context.Context) ([]map[string]interface{}, error) {
	defer s.log()()
	rows, err := s.stmt.QueryxContext(ctx, s.params)
	if err != nil {
		return nil, err
	}
	return scanAll(rows)
}

// First returns the first row. sql.ErrNoRows will return if there is none.
func (s *Stmt) First(ctx context.Context) (map[string]interface{}, error) {
	defer s.log()()
	row := map[string]interface{}{}
	if err := s.stmt.QueryRowxContext(ctx, s.params).MapScan(row); err != nil {
		return nil, err
	}
	return row, nil
}

// Close the prepared statement.
func (s *Stmt) Close() error {
	return s.stmt.Close()
}

// log starts the timer and returns the function which writes the DEBUG entry.
func (s *Stmt) log() func() {
	if s.logger == nil {
		return func() {}
	}
	l := s.logger.WithTimer()
	return func() {
		l.WithFields(logger.Fields{"params": len(s.params)}).Debug(s.query)
	}
}
