// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// EnvDebug enables debug-level command logging when set to a non-empty
// value.
const EnvDebug = "ORAXEN_DEBUG"

// NewCommandLogger creates a structured logger for CLI command operations.
// When stderr is a terminal, uses slog.TextHandler for human-readable output.
// When stderr is piped or redirected (CI, scripts, server wrappers), uses
// slog.JSONHandler for machine-parseable output.
//
// Execute scopes the logger with the command path before calling Run:
//
//	logger.Info("updating config", "file", path, "option", key)
//	// command=items/list file=... option=...
func NewCommandLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv(EnvDebug) != "" {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
