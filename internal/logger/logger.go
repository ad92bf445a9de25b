// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package logger holds the logger shared by the viewport sub-packages.
//
// The root package configures it through viewport.SetLogger; camera,
// registry and primitive read it through Logger. Keeping the pointer here
// lets the sub-packages log without importing the root package.
package logger

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// loggerPtr stores the active logger. Accessed atomically for thread safety.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// Logger returns the current logger. It never returns nil.
func Logger() *slog.Logger { return loggerPtr.Load() }

// SetLogger replaces the current logger. Passing nil restores the
// silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Silent reports whether h is the default discarding handler.
func Silent(h slog.Handler) bool {
	_, ok := h.(nopHandler)
	return ok
}
