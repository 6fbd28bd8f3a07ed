// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logrus_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ivanfilho21/database/logger"
	"github.com/ivanfilho21/database/logger/logrus"
	"github.com/stretchr/testify/assert"
)

type mockWriter struct {
	messages []string
}

func (w *mockWriter) Write(p []byte) (n int, err error) {
	w.messages = append(w.messages, string(p))
	return len(p), nil
}

func TestProvider_Log(t *testing.T) {
	asserts := assert.New(t)
	w := &mockWriter{}

	prov := logrus.New(logrus.Options{Out: w})
	err := logger.Register("logrus", prov)
	asserts.NoError(err)

	log, err := logger.Get("logrus")
	asserts.NoError(err)
	log.SetLogLevel(logger.TRACE)

	log.WithFields(logger.Fields{"table": "users"}).Trace("Msg")
	log.WithFields(logger.Fields{"table": "users"}).Debug("Msg")
	log.WithFields(logger.Fields{"table": "users"}).Info("Msg")
	log.WithFields(logger.Fields{"table": "users"}).Warning("Msg")
	log.WithFields(logger.Fields{"table": "users"}).Error("Msg")
	asserts.Panics(func() { log.WithFields(logger.Fields{"table": "users"}).Panic("Msg") }, "The code did not panic")
	asserts.Equal(6, len(w.messages))
	asserts.True(strings.Contains(w.messages[0], "table=users"))
}

func TestProvider_JSON(t *testing.T) {
	asserts := assert.New(t)
	buf := &bytes.Buffer{}

	prov := logrus.New(logrus.Options{JSON: true, Out: buf})
	prov.Log(logger.Entry{Level: logger.INFO, Message: "CREATE TABLE", Fields: logger.Fields{"table": "users"}})

	var out map[string]interface{}
	asserts.NoError(json.Unmarshal(buf.Bytes(), &out))
	asserts.Equal("CREATE TABLE", out["msg"])
	asserts.Equal("users", out["table"])
	asserts.Equal("info", out["level"])
}
