// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ivanfilho21/database/query"
	"github.com/ivanfilho21/database/query/postgres"
	"github.com/ivanfilho21/database/query/types"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func newBuilder(t *testing.T, driver string) (query.Builder, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatal(err)
	}
	b, err := query.NewWithDB("postgres", sqlx.NewDb(db, driver), query.Config{Driver: driver})
	if err != nil {
		t.Fatal(err)
	}
	return b, mock
}

func TestDSN(t *testing.T) {
	asserts := assert.New(t)

	dsn := postgres.DSN(query.Config{Username: "app", Password: "p@ss", Host: "db", Port: 5432, Database: "shop", Timeout: "30s", Params: map[string]string{"sslmode": "require"}})
	u, err := url.Parse(dsn)
	asserts.NoError(err)
	asserts.Equal("postgres", u.Scheme)
	asserts.Equal("db:5432", u.Host)
	asserts.Equal("/shop", u.Path)
	asserts.Equal("app", u.User.Username())
	pw, _ := u.User.Password()
	asserts.Equal("p@ss", pw)
	asserts.Equal("require", u.Query().Get("sslmode"))
	asserts.Equal("30", u.Query().Get("connect_timeout"))

	dsn = postgres.DSN(query.Config{Host: "localhost", Database: "shop"})
	asserts.Equal("postgres://localhost/shop?sslmode=disable", dsn)
}

func TestPostgres_QuoteIdentifier(t *testing.T) {
	asserts := assert.New(t)
	b, _ := newBuilder(t, "pgx")

	asserts.Equal(`"users"`, b.QuoteIdentifier("users"))
	asserts.Equal(`"public"."users"`, b.QuoteIdentifier("public.users"))
	asserts.Equal(`"we""ird"`, b.QuoteIdentifier(`we"ird`))
	asserts.Equal(`"public"."users" "u"`, b.QuoteIdentifier("public.users u"))
	asserts.Equal("now()", b.QuoteIdentifier(query.DbExpr("now()")))
}

func TestPostgres_Insert(t *testing.T) {
	asserts := assert.New(t)
	ctx := context.Background()

	id := query.Column{Name: "id", Type: types.SERIAL, Key: query.PRIMARY_KEY}
	name := query.Column{Name: "first_name", Type: types.VARCHAR}
	email := query.Column{Name: "email", Type: types.VARCHAR}

	for _, driver := range []string{"pgx", "postgres"} {
		b, mock := newBuilder(t, driver)

		stmt, bind := b.RenderInsert("users", []query.Condition{
			query.NewCondition(id, nil),
			query.NewCondition(name, "Ann"),
			query.NewCondition(email, "a@x.com"),
		})
		asserts.Equal(`INSERT INTO "users" ("first_name", "email") VALUES (:first_name, :email) RETURNING "id"`, stmt)
		asserts.Equal(2, len(bind))

		mock.ExpectPrepare(`INSERT INTO "users" ("first_name", "email") VALUES ($1, $2) RETURNING "id"`).
			ExpectQuery().WithArgs("Ann", "a@x.com").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

		s, err := b.Prepare(ctx, stmt)
		asserts.NoError(err)
		for _, p := range bind {
			s.Bind(p.Name, p.Value)
		}
		lastID, err := b.InsertID(ctx, s, id)
		asserts.NoError(err)
		asserts.Equal(int64(1), lastID)
		asserts.NoError(s.Close())
		asserts.NoError(mock.ExpectationsWereMet())
	}
}

func TestPostgres_InsertWithoutPrimary(t *testing.T) {
	asserts := assert.New(t)
	b, mock := newBuilder(t, "pgx")
	ctx := context.Background()

	stmt, _ := b.RenderInsert("logs", nil)
	asserts.Equal(`INSERT INTO "logs" DEFAULT VALUES`, stmt)

	// explicit primary value is kept.
	id := query.Column{Name: "id", Type: types.INT, Key: query.PRIMARY_KEY}
	stmt, bind := b.RenderInsert("logs", []query.Condition{query.NewCondition(id, 5)})
	asserts.Equal(`INSERT INTO "logs" ("id") VALUES (:id) RETURNING "id"`, stmt)
	asserts.Equal(1, len(bind))

	mock.ExpectPrepare(`INSERT INTO "logs" ("msg") VALUES ($1)`).
		ExpectExec().WithArgs("hello").
		WillReturnResult(sqlmock.NewResult(0, 1))
	stmt, bind = b.RenderInsert("logs", []query.Condition{query.NewCondition(query.Column{Name: "msg"}, "hello")})
	s, err := b.Prepare(ctx, stmt)
	asserts.NoError(err)
	for _, p := range bind {
		s.Bind(p.Name, p.Value)
	}
	lastID, err := b.InsertID(ctx, s, query.Column{})
	asserts.NoError(err)
	asserts.Equal(int64(0), lastID)
	asserts.NoError(mock.ExpectationsWereMet())
}

func TestPostgres_IsDuplicate(t *testing.T) {
	asserts := assert.New(t)
	b, _ := newBuilder(t, "pgx")

	asserts.True(b.IsDuplicate(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	asserts.True(b.IsDuplicate(fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})))
	asserts.False(b.IsDuplicate(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
	asserts.True(b.IsDuplicate(&pq.Error{Code: pq.ErrorCode(pgerrcode.UniqueViolation)}))
	asserts.False(b.IsDuplicate(&pq.Error{Code: pq.ErrorCode(pgerrcode.NotNullViolation)}))
	asserts.False(b.IsDuplicate(errors.New("23505")))
}
