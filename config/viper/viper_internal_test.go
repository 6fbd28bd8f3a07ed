// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package viper

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

type dbCfg struct {
	Provider string
	Host     string
	Username string
	Password string
	Port     int
}

func writeJSON(t *testing.T, dir string, user string) {
	file, _ := json.MarshalIndent(dbCfg{Provider: "mysql", Host: "localhost", Username: user, Port: 3306}, "", " ")
	if err := os.WriteFile(filepath.Join(dir, "db.json"), file, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestViperProvider_ParseOptions(t *testing.T) {
	asserts := assert.New(t)
	v := viperProvider{}
	c := dbCfg{}

	// error: wrong options type
	asserts.Equal(ErrOptions, v.Parse(&c, ""))

	// error: mandatory fields
	asserts.Equal(ErrMandatory, v.Parse(&c, Options{FilePath: ".", FileType: "json"}))
	asserts.Equal(ErrMandatory, v.Parse(&c, Options{FileName: "db.json", FileType: "json"}))
	asserts.Equal(ErrMandatory, v.Parse(&c, Options{FileName: "db.json", FilePath: "."}))

	// error: file does not exist
	err := v.Parse(&c, Options{FileName: "missing.json", FilePath: t.TempDir(), FileType: "json"})
	asserts.Error(err)
	asserts.Equal(fmt.Errorf("viper-provider: %w", errors.Unwrap(err)), err)
}

func TestViperProvider_Parse(t *testing.T) {
	asserts := assert.New(t)
	dir := t.TempDir()
	writeJSON(t, dir, "root")

	v := viperProvider{}
	c := &dbCfg{}
	opt := Options{FileName: "db.json", FilePath: dir, FileType: "json"}

	err := v.Parse(c, opt)
	asserts.NoError(err)
	asserts.Equal("mysql", c.Provider)
	asserts.Equal("root", c.Username)
	asserts.Equal(3306, c.Port)

	// the instance is re-used and re-assigned.
	c2 := &dbCfg{}
	err = v.Parse(c2, opt)
	asserts.NoError(err)
	name, _ := filepath.Abs(filepath.Join(dir, "db.json"))
	mu.Lock()
	asserts.True(fmt.Sprintf("%p", c2) == fmt.Sprintf("%p", vInstances[name].cfg))
	mu.Unlock()
}

func TestViperProvider_Watch(t *testing.T) {
	asserts := assert.New(t)
	dir := t.TempDir()
	writeJSON(t, dir, "root")

	var called int32
	v := viperProvider{}
	c := &dbCfg{}
	opt := Options{
		FileName: "db.json",
		FilePath: dir,
		FileType: "json",
		Watch:    true,
		WatchCallback: func(cfg interface{}, v *viper.Viper, e fsnotify.Event) {
			atomic.StoreInt32(&called, 1)
		},
	}
	asserts.NoError(v.Parse(c, opt))
	asserts.Equal("root", c.Username)

	writeJSON(t, dir, "admin")
	asserts.Eventually(func() bool { return atomic.LoadInt32(&called) == 1 }, 2*time.Second, 20*time.Millisecond)
}

func TestViperProvider_Env(t *testing.T) {
	asserts := assert.New(t)
	dir := t.TempDir()
	writeJSON(t, dir, "root")

	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "127.0.0.1")

	v := viperProvider{}
	c := &dbCfg{}
	err := v.Parse(c, Options{FileName: "db.json", FilePath: dir, FileType: "json", EnvPrefix: "db", EnvAutomatic: true})
	asserts.NoError(err)
	asserts.Equal("127.0.0.1", c.Host)
	asserts.Equal("secret", c.Password)

	// binding a single key
	dir2 := t.TempDir()
	writeJSON(t, dir2, "root")
	c = &dbCfg{}
	err = v.Parse(c, Options{FileName: "db.json", FilePath: dir2, FileType: "json", EnvPrefix: "db", EnvBind: []string{"password"}})
	asserts.NoError(err)
	asserts.Equal("localhost", c.Host)
	asserts.Equal("secret", c.Password)
}
