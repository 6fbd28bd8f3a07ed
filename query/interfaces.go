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

// Quoter quotes identifiers in the dialect of the provider.
type Quoter interface {
	QuoteIdentifier(string) string
}

// Builder is the driver layer a table issues its statements through.
type Builder interface {
	Quoter
	Config() Config
	SetLogger(logger.Manager)
	DB() *sqlx.DB
	Close() error

	// Exec runs an unparameterized statement.
	Exec(ctx context.Context, stmt string) (sql.Result, error)
	// Query runs an unparameterized query and returns all rows.
	Query(ctx context.Context, stmt string) ([]map[string]interface{}, error)
	// Prepare creates a statement with :name placeholders.
	Prepare(ctx context.Context, stmt string) (*Stmt, error)

	// RenderInsert returns the INSERT statement of the table and the params which must be bound.
	RenderInsert(table string, params []Condition) (string, []Condition)
	// InsertID executes the prepared insert and returns the generated id of the primary column.
	InsertID(ctx context.Context, stmt *Stmt, primary Column) (int64, error)
	// IsDuplicate reports if the error is a unique constraint violation of the database.
	IsDuplicate(error) bool
}

// Provider is the interface a query provider must implement.
type Provider interface {
	Builder
	Open() error
	SetDB(*sqlx.DB)
	QuoteIdentifierChar() string
}
