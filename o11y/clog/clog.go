// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package clog provides context aware logging.
// A logger with arbitrary labels is stored in each context, so that
// log entries carry the labels (e.g. the input file) automatically.
package clog

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// New creates a new logger writing to w at level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// NewContext sets the given logger to the context.
func NewContext(ctx context.Context, logger *log.Logger) context.Context {
	return log.WithContext(ctx, logger)
}

// NewSpan sets a new logger with the given labels to the context.
// keyvals are alternating keys and values.
func NewSpan(ctx context.Context, keyvals ...any) context.Context {
	return NewContext(ctx, FromContext(ctx).With(keyvals...))
}

// FromContext returns a logger in the context, or the default
// logger if it's not set.
func FromContext(ctx context.Context) *log.Logger {
	return log.FromContext(ctx)
}

// Debugf logs at debug log level in the manner of fmt.Printf.
func Debugf(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.Helper()
	if logger.GetLevel() > log.DebugLevel {
		return
	}
	logger.Debug(fmt.Sprintf(format, args...))
}

// Infof logs at info log level in the manner of fmt.Printf.
func Infof(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.Helper()
	logger.Info(fmt.Sprintf(format, args...))
}

// Warningf logs at warning log level in the manner of fmt.Printf.
func Warningf(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.Helper()
	logger.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs at error log level in the manner of fmt.Printf.
func Errorf(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.Helper()
	logger.Error(fmt.Sprintf(format, args...))
}
