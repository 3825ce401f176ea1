package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newBufferLogger(buf *bytes.Buffer) *Logger {
	return &Logger{zl: zerolog.New(buf)}
}

func TestLogger_ErrorFieldRendered(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	logger.Error("Section fetch failed", "error", errors.New("connection refused"), "slot", "collections")

	line := buf.String()
	if !strings.Contains(line, `"error":"connection refused"`) {
		t.Errorf("Expected error rendered as string, got %s", line)
	}
	if !strings.Contains(line, `"slot":"collections"`) {
		t.Errorf("Expected slot field, got %s", line)
	}
}

func TestLogger_WithMergesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf).With("connection_id", "c1")

	logger.Info("Connection established", "endpoint", "http://localhost:8080")

	line := buf.String()
	for _, want := range []string{`"connection_id":"c1"`, `"endpoint":"http://localhost:8080"`} {
		if !strings.Contains(line, want) {
			t.Errorf("Expected %s in %s", want, line)
		}
	}
}

func TestLogger_OddTrailingFieldDropped(t *testing.T) {
	var buf bytes.Buffer
	newBufferLogger(&buf).Info("Message", "dangling")

	if strings.Contains(buf.String(), "dangling") {
		t.Errorf("Expected trailing odd field dropped, got %s", buf.String())
	}
}

func TestWithContext_CarriesIdentifiers(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithConnectionID(ctx, "c1")
	logger.WithContext(ctx).Info("Node expanded")

	line := buf.String()
	for _, want := range []string{`"request_id":"req-1"`, `"connection_id":"c1"`} {
		if !strings.Contains(line, want) {
			t.Errorf("Expected %s in %s", want, line)
		}
	}
}
