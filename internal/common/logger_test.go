package common

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	return &buf
}

func TestLogInfo(t *testing.T) {
	buf := captureLogs(t)

	LogInfo("Provider sync complete", Fields{"transactions": 12})

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "Provider sync complete")
	assert.Contains(t, out, "transactions=12")
}

func TestLogError(t *testing.T) {
	buf := captureLogs(t)

	LogError(errors.New("disk full"), "Save failed", Fields{"account_id": "acc-1"})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "Save failed")
	assert.Contains(t, out, "disk full")
	assert.Contains(t, out, "account_id=acc-1")
}
