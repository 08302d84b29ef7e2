// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texel

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestLogger_Default(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() = nil")
	}
	// Must not panic and must stay silent.
	l.Info("discarded")
	l.Debug("discarded")
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	Logger().Debug("repack", slog.String("format", "RGBA8Unorm"))
	if buf.Len() == 0 {
		t.Error("configured logger produced no output")
	}

	SetLogger(nil)
	buf.Reset()
	Logger().Info("discarded")
	if buf.Len() != 0 {
		t.Error("nil reset still wrote to the old logger")
	}
}
