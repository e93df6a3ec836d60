// SPDX-License-Identifier: Unlicense OR MIT

package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIsSilent(t *testing.T) {
	Set(nil)
	assert.False(t, Get().Enabled(context.Background(), slog.LevelError))
}

func TestSet(t *testing.T) {
	defer Set(nil)
	var buf bytes.Buffer
	Set(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	Get().Debug("negotiated", "version", "webgl2")
	assert.Contains(t, buf.String(), "version=webgl2")
}
