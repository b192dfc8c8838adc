package gamelog

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestReceivedLogsFixedFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	RequestReceived(logger, "127.0.0.1", "/api/v1/maps", "GET")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Message != "request received" {
		t.Fatalf("Message = %q, want %q", entries[0].Message, "request received")
	}

	fields := entries[0].ContextMap()
	if fields["ip"] != "127.0.0.1" || fields["URI"] != "/api/v1/maps" || fields["method"] != "GET" {
		t.Fatalf("fields = %+v, want ip/URI/method set", fields)
	}
}

func TestResponseSentLogsFixedFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ResponseSent(logger, time.Now().Add(-5*time.Millisecond), 200, "application/json")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Message != "response sent" {
		t.Fatalf("Message = %q, want %q", entries[0].Message, "response sent")
	}

	fields := entries[0].ContextMap()
	if fields["code"] != int64(200) {
		t.Fatalf("code = %v, want 200", fields["code"])
	}
}

func TestServerExitedWithError(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ServerExited(logger, 1, errors.New("boom"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["code"] != int64(1) {
		t.Fatalf("code = %v, want 1", fields["code"])
	}
}
