// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides the structured logger of the module, a thin wrapper
// around log/slog with an extra trace level and legacy numeric verbosity.
package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"time"
)

const (
	LevelCrit  = slog.Level(12)
	LevelError = slog.LevelError
	LevelWarn  = slog.LevelWarn
	LevelInfo  = slog.LevelInfo
	LevelDebug = slog.LevelDebug
	LevelTrace = slog.Level(-8)

	levelMaxVerbosity = slog.Level(-10)

	timeFormat = "2006-01-02T15:04:05-0700"
)

// FromLegacyLevel converts from old Geth verbosity level constants
// to levels defined by slog.
func FromLegacyLevel(lvl int) slog.Level {
	switch lvl {
	case 0:
		return LevelCrit
	case 1:
		return LevelError
	case 2:
		return LevelWarn
	case 3:
		return LevelInfo
	case 4:
		return LevelDebug
	case 5:
		return LevelTrace
	default:
		break
	}

	if lvl > 5 {
		return LevelTrace
	}
	return LevelCrit
}

// LevelString returns a 5-character string containing the name of a Lvl.
func LevelString(l slog.Level) string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelCrit:
		return "crit"
	default:
		return "unknown"
	}
}

// Logger writes key/value pairs to a Handler.
type Logger interface {
	// With returns a new Logger that has this logger's attributes plus the given attributes.
	With(ctx ...interface{}) Logger

	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})

	// Crit logs at the crit level and exits the process.
	Crit(msg string, ctx ...interface{})
}

type logger struct {
	inner *slog.Logger
}

// NewLogger returns a logger for the given slog handler.
func NewLogger(h slog.Handler) Logger {
	return &logger{slog.New(h)}
}

func (l *logger) With(ctx ...interface{}) Logger {
	return &logger{l.inner.With(ctx...)}
}

func (l *logger) log(level slog.Level, msg string, ctx ...interface{}) {
	if !l.inner.Enabled(context.Background(), level) {
		return
	}
	r := slog.NewRecord(time.Now(), level, msg, 0)
	r.Add(ctx...)
	l.inner.Handler().Handle(context.Background(), r)
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.log(LevelTrace, msg, ctx...) }

func (l *logger) Debug(msg string, ctx ...interface{}) { l.log(LevelDebug, msg, ctx...) }

func (l *logger) Info(msg string, ctx ...interface{}) { l.log(LevelInfo, msg, ctx...) }

func (l *logger) Warn(msg string, ctx ...interface{}) { l.log(LevelWarn, msg, ctx...) }

func (l *logger) Error(msg string, ctx ...interface{}) { l.log(LevelError, msg, ctx...) }

func (l *logger) Crit(msg string, ctx ...interface{}) {
	l.log(LevelCrit, msg, ctx...)
	os.Exit(1)
}

var root atomic.Pointer[logger]

func init() {
	root.Store(&logger{slog.New(DiscardHandler())})
}

// SetDefault sets the default global logger.
func SetDefault(l Logger) {
	root.Store(l.(*logger))
}

// Root returns the root logger.
func Root() Logger {
	return root.Load()
}

// WithContext returns the root logger extended with the given attributes.
func WithContext(ctx ...interface{}) Logger {
	return Root().With(ctx...)
}
