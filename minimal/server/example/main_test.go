package main

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLogSendError(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	logSendError(nil)
	if buf.Len() != 0 {
		t.Fatalf("logged on success: %q", buf.String())
	}

	logSendError(errors.New("write response: broken pipe"))
	if !strings.Contains(buf.String(), "http error: write response: broken pipe") {
		t.Errorf("got %q", buf.String())
	}
}
