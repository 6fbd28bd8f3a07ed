// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package structer_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ivanfilho21/database/structer"
	"github.com/stretchr/testify/assert"
)

// TestMerge tests the mergo.Merge wrapper.
func TestMerge(t *testing.T) {
	asserts := assert.New(t)

	type Foo struct {
		Host string
		Port int
	}

	dest := Foo{Host: "db"}
	err := structer.Merge(&dest, Foo{Host: "localhost", Port: 3306})
	asserts.NoError(err)
	asserts.Equal(Foo{Host: "db", Port: 3306}, dest)
}

func TestColumnName(t *testing.T) {
	asserts := assert.New(t)
	asserts.Equal("first_name", structer.ColumnName("first_name;primary"))
	asserts.Equal("email", structer.ColumnName(" email "))
	asserts.Equal("", structer.ColumnName("-"))
	asserts.Equal("", structer.ColumnName(""))
	asserts.Equal("", structer.ColumnName("-;primary"))
}

// getterUser exposes accessors only.
type getterUser struct {
	firstName string
	userID    int
}

func (u getterUser) GetFirstName() string { return "getter:" + u.firstName }
func (u *getterUser) GetUserID() int      { return u.userID }

// fieldUser exposes fields only.
type fieldUser struct {
	ID        int
	FirstName string
	Mail      string `db:"email"`
	Photo     string // user_profile_photo is not mapped
	Ignored   string `db:"-"`
}

type embedded struct {
	CreatedAt time.Time
}

type embeddingUser struct {
	embedded
	ID int
}

// Audit is embedded as ptr.
type Audit struct {
	Editor string `db:"edited_by"`
}

type auditedUser struct {
	*Audit
	ID int
}

func TestValue(t *testing.T) {
	asserts := assert.New(t)

	// accessor branch, value and pointer receivers.
	g := getterUser{firstName: "Ann", userID: 7}
	asserts.Equal("getter:Ann", structer.Value(g, "first_name"))
	asserts.Equal("getter:Ann", structer.Value(&g, "first_name"))
	asserts.Equal(7, structer.Value(&g, "user_id"))
	asserts.Equal(7, structer.Value(g, "user_id"))

	// field branch: camel name, tag and initialism.
	f := fieldUser{ID: 1, FirstName: "Ann", Mail: "a@x.com", Ignored: "x"}
	asserts.Equal("Ann", structer.Value(f, "first_name"))
	asserts.Equal("a@x.com", structer.Value(&f, "email"))
	asserts.Equal(1, structer.Value(f, "id"))
	asserts.Equal("Ann", structer.Value(f, "FirstName"))

	// nil branch
	asserts.Nil(structer.Value(f, "user_profile_photo"))
	asserts.Nil(structer.Value(f, "ignored"))
	asserts.Nil(structer.Value(nil, "id"))
	asserts.Nil(structer.Value(f, ""))
	asserts.Nil(structer.Value((*fieldUser)(nil), "id"))
	asserts.Nil(structer.Value(42, "id"))

	// map
	m := map[string]interface{}{"first_name": "Ann"}
	asserts.Equal("Ann", structer.Value(m, "first_name"))
	asserts.Nil(structer.Value(m, "email"))
	asserts.Equal("Ann", structer.Value(&m, "first_name"))
	asserts.Nil(structer.Value((*map[string]interface{})(nil), "first_name"))

	// embedded
	now := time.Now()
	e := embeddingUser{embedded: embedded{CreatedAt: now}, ID: 3}
	asserts.Equal(now, structer.Value(e, "created_at"))

	// embedded ptr
	a := auditedUser{Audit: &Audit{Editor: "Ann"}, ID: 4}
	asserts.Equal("Ann", structer.Value(a, "edited_by"))
	asserts.Equal("Ann", structer.Value(&a, "editor"))
	asserts.Nil(structer.Value(auditedUser{ID: 4}, "edited_by"))
}

type decodeTarget struct {
	ID        int
	FirstName string
	Mail      string `db:"email"`
	Score     float64
	Active    bool
	Born      time.Time
	Nick      sql.NullString
	Avatar    []byte
	Note      *string
}

func TestDecode(t *testing.T) {
	asserts := assert.New(t)

	born := time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)
	row := map[string]interface{}{
		"id":         int64(1),
		"first_name": []byte("Ann"),
		"email":      "a@x.com",
		"score":      []byte("1.5"),
		"active":     int64(1),
		"born":       born,
		"nick":       []byte("annie"),
		"avatar":     []byte{1, 2},
		"note":       "hello",
		"unknown":    "ignored",
	}

	var m decodeTarget
	err := structer.Decode(row, &m)
	asserts.NoError(err)
	asserts.Equal(1, m.ID)
	asserts.Equal("Ann", m.FirstName)
	asserts.Equal("a@x.com", m.Mail)
	asserts.Equal(1.5, m.Score)
	asserts.True(m.Active)
	asserts.Equal(born, m.Born)
	asserts.Equal(sql.NullString{String: "annie", Valid: true}, m.Nick)
	asserts.Equal([]byte{1, 2}, m.Avatar)
	if asserts.NotNil(m.Note) {
		asserts.Equal("hello", *m.Note)
	}

	// textual time and NULL values
	var m2 decodeTarget
	err = structer.Decode(map[string]interface{}{"born": []byte("1990-01-02 00:00:00"), "first_name": nil}, &m2)
	asserts.NoError(err)
	asserts.Equal(born, m2.Born)
	asserts.Equal("", m2.FirstName)

	// map target
	var row2 map[string]interface{}
	err = structer.Decode(map[string]interface{}{"id": int64(1), "first_name": []byte("Ann")}, &row2)
	asserts.NoError(err)
	asserts.Equal(map[string]interface{}{"id": int64(1), "first_name": "Ann"}, row2)

	// embedded ptr is allocated.
	var a auditedUser
	err = structer.Decode(map[string]interface{}{"id": int64(2), "edited_by": []byte("Ann")}, &a)
	asserts.NoError(err)
	asserts.Equal(2, a.ID)
	if asserts.NotNil(a.Audit) {
		asserts.Equal("Ann", a.Editor)
	}

	// error: wrong target
	asserts.Equal(structer.ErrDecodeTarget, structer.Decode(row, m))
	asserts.Equal(structer.ErrDecodeTarget, structer.Decode(row, nil))

	// error: type mismatch contains the column
	err = structer.Decode(map[string]interface{}{"id": "abc"}, &m)
	asserts.Error(err)
	asserts.Contains(err.Error(), "column id")
}
