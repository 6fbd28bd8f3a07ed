// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package logger provides an interface for logging. It wraps existing go loggers with that interface,
// so the log provider can be changed without touching the query or table packages.
// Log level, fields, a statement timer or caller information can be added.
package logger

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/ivanfilho21/database/registry"
)

// Error messages.
var (
	ErrProvider = errors.New("logger: provider does not implement logger.Manager")
	ErrLevel    = "logger: unknown level %#v"
)

// registryPrefix for the registry package.
const registryPrefix = "logger_"

// Level - the higher the more critical
const (
	TRACE Level = iota - 1
	DEBUG
	INFO
	WARNING
	ERROR
	PANIC
)

// Level of a log entry.
type Level int32

// String converts the level code.
func (lvl Level) String() string {
	switch lvl {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case PANIC:
		return "PANIC"
	default:
		return "unknown level"
	}
}

// ParseLevel converts a configuration string (case-insensitive) into a Level.
// An empty string is DEBUG.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TRACE, nil
	case "", "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARNING, nil
	case "ERROR":
		return ERROR, nil
	case "PANIC":
		return PANIC, nil
	}
	return DEBUG, fmt.Errorf(ErrLevel, s)
}

// Provider interface.
type Provider interface {
	Log(Entry)
}

// Manager interface.
type Manager interface {
	Trace(string)
	Debug(string)
	Info(msg string)
	Warning(msg string)
	Error(msg string)
	Panic(msg string)
	Log(lvl Level, msg string)

	New() Manager
	WithFields(Fields) Manager
	WithTimer() Manager

	SetCallerFields(bool)
	SetLogLevel(Level)
}

// Fields can be used to add more details to a log message.
type Fields map[string]interface{}

// Map converts the Fields to a map[string]interface{}.
func (f Fields) Map() map[string]interface{} {
	return f
}

// Entry struct holds all information for the log message.
type Entry struct {
	Level     Level
	Timestamp time.Time
	Message   string
	Fields    Fields
}

// manager struct holds the provider and fields information.
// callerInfo will add the runtime.Caller information for line number and file name.
// timer will be used for the statement duration.
type manager struct {
	provider Provider
	fields   Fields

	callerInfo bool
	timer      time.Time
	lvl        Level
}

// Register a new logger provider by name.
func Register(name string, provider Provider) error {
	return registry.Set(registryPrefix+name, &manager{provider: provider})
}

// Get a logger by the registered name.
// Default log level is DEBUG.
func Get(name string) (Manager, error) {
	m, err := registry.Get(registryPrefix + name)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	// the value could have been registered directly with registry.Set.
	if m, ok := m.(Manager); ok {
		return m, nil
	}

	return nil, ErrProvider
}

// SetCallerFields will add the fields "line" and "file" to the Entry.
func (m *manager) SetCallerFields(b bool) {
	m.callerInfo = b
}

// SetLogLevel will define the log level.
// Only messages equal or greater levels will be logged.
func (m *manager) SetLogLevel(lvl Level) {
	m.lvl = lvl
}

// New creates a new instance with the same level, fields and caller settings.
func (m manager) New() Manager {
	fields := make(Fields, len(m.fields))
	for k, v := range m.fields {
		fields[k] = v
	}
	return &manager{lvl: m.lvl, provider: m.provider, fields: fields, callerInfo: m.callerInfo}
}

// WithTimer will add the field "duration" to the next Entry.
// It will create a new instance.
func (m manager) WithTimer() Manager {
	instance := m.New().(*manager)
	instance.timer = time.Now()
	return instance
}

// WithFields will create a new Manager with the given fields merged into the existing ones.
// A running timer is kept.
func (m manager) WithFields(fields Fields) Manager {
	instance := m.New().(*manager)
	for k, v := range fields {
		instance.fields[k] = v
	}
	if !m.timer.IsZero() {
		instance.timer = m.timer
	}
	return instance
}

// Trace log.
func (m manager) Trace(msg string) { m.log(TRACE, msg) }

// Debug log.
func (m manager) Debug(msg string) { m.log(DEBUG, msg) }

// Info log.
func (m manager) Info(msg string) { m.log(INFO, msg) }

// Warning log.
func (m manager) Warning(msg string) { m.log(WARNING, msg) }

// Error log.
func (m manager) Error(msg string) { m.log(ERROR, msg) }

// Panic log.
func (m manager) Panic(msg string) { m.log(PANIC, msg) }

// Log a message with a dynamic level.
func (m manager) Log(lvl Level, msg string) { m.log(lvl, msg) }

func (m manager) log(lvl Level, msg string) {
	if lvl >= m.lvl {
		m.provider.Log(m.newEntry(msg, lvl))
	}
}

// newEntry is a helper to create a new Entry for the log provider.
func (m manager) newEntry(msg string, lvl Level) Entry {
	e := Entry{Message: msg, Level: lvl, Timestamp: time.Now()}

	e.Fields = make(Fields, len(m.fields)+3)
	for k, v := range m.fields {
		e.Fields[k] = v
	}

	if !m.timer.IsZero() {
		e.Fields["duration"] = time.Since(m.timer)
	}

	if m.callerInfo {
		// skip newEntry, log and the exported level func.
		_, file, line, _ := runtime.Caller(3)
		e.Fields["line"] = line
		e.Fields["file"] = file
	}

	return e
}
