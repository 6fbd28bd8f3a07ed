// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package postgres is the PostgreSQL provider of the query package.
// It registers itself as "postgres". The default driver is pgx (github.com/jackc/pgx/v5/stdlib),
// Config.Driver "postgres" switches to github.com/lib/pq.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/ivanfilho21/database/query"
	"github.com/ivanfilho21/database/query/clause"
	"github.com/ivanfilho21/database/slicer"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Error messages.
var (
	ErrInsertID = "postgres: can not convert returned id %v of type %T"
)

// internals
const driverName = "pgx"

type postgres struct {
	query.Base
}

// init registers the provider under postgres.
func init() {
	err := query.Register("postgres", newPostgres)
	if err != nil {
		panic(err)
	}
}

// newPostgres creates a new query.Provider.
func newPostgres(config query.Config) (query.Provider, error) {
	pgBuilder := &postgres{}
	pgBuilder.Base.Provider = pgBuilder
	pgBuilder.Base.Config = config

	return pgBuilder, nil
}

// Config returns the query.Config.
func (p *postgres) Config() query.Config {
	return p.Base.Config
}

// QuoteIdentifierChar for postgres.
func (p *postgres) QuoteIdentifierChar() string {
	return `"`
}

// QuoteIdentifier quotes every part of a schema.table identifier with pq.QuoteIdentifier.
// An alias and query.DbExpr are handled like in query.Base.
func (p *postgres) QuoteIdentifier(c string) string {
	if c == "" || strings.HasPrefix(c, "!") || strings.Contains(c, " ") {
		return p.Base.QuoteIdentifier(c)
	}
	parts := strings.Split(c, ".")
	for i := range parts {
		parts[i] = pq.QuoteIdentifier(parts[i])
	}
	return strings.Join(parts, ".")
}

// DSN returns the connection url of the configuration.
func DSN(cfg query.Config) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   cfg.Host,
		Path:   "/" + cfg.Database,
	}
	if cfg.Port > 0 {
		u.Host = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	}
	if cfg.Username != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	}

	params := url.Values{}
	params.Set("sslmode", "disable")
	if timeout := cfg.TimeoutDuration(); timeout > 0 {
		params.Set("connect_timeout", strconv.Itoa(int(timeout.Seconds())))
	}
	for k, v := range cfg.Params {
		params.Set(k, v)
	}
	u.RawQuery = params.Encode()

	return u.String()
}

// Open creates a new *sqlx.DB.
func (p *postgres) Open() error {
	name := p.Base.Config.Driver
	if name == "" {
		name = driverName
	}

	db, err := sqlx.Open(name, DSN(p.Base.Config))
	if err != nil {
		return err
	}

	p.SetDB(db)

	// call base Open function.
	return p.Base.Open()
}

// RenderInsert returns INSERT INTO "table" ("col", ...) VALUES (:col, ...) RETURNING "pk".
// Auto increment params without value are omitted, the database generates them.
func (p *postgres) RenderInsert(table string, params []query.Condition) (string, []query.Condition) {
	var primary string
	if i := slicer.IndexFunc(params, func(p query.Condition) bool { return p.IsPrimary() }); i != -1 {
		primary = params[i].Name
	}

	// generated values are left to the sequence.
	bind := slicer.Filter(params, func(p query.Condition) bool { return !p.AutoIncrement() || p.Value != nil })
	columns := slicer.Map(bind, func(p query.Condition) query.Column { return p.Column })

	stmt := "INSERT INTO " + p.QuoteIdentifier(table)
	if len(columns) == 0 {
		stmt += " DEFAULT VALUES"
	} else {
		stmt += " (" + clause.FieldList(p, columns, true, false) + ") VALUES (" + clause.Placeholders(columns, true) + ")"
	}
	if primary != "" {
		stmt += " RETURNING " + p.QuoteIdentifier(primary)
	}

	return stmt, bind
}

// InsertID reads the id of the RETURNING clause.
// Postgres drivers do not support LastInsertId.
func (p *postgres) InsertID(ctx context.Context, stmt *query.Stmt, primary query.Column) (int64, error) {
	if primary.Name == "" {
		_, err := stmt.Exec(ctx)
		return 0, err
	}

	row, err := stmt.First(ctx)
	if err != nil {
		return 0, err
	}

	switch id := row[primary.Name].(type) {
	case int64:
		return id, nil
	case int32:
		return int64(id), nil
	case int:
		return int64(id), nil
	case []byte:
		return strconv.ParseInt(string(id), 10, 64)
	case string:
		return strconv.ParseInt(id, 10, 64)
	default:
		return 0, fmt.Errorf(ErrInsertID, id, id)
	}
}

// IsDuplicate reports a unique violation of the pgx or lib/pq driver.
func (p *postgres) IsDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgerrcode.UniqueViolation
	}
	return false
}
