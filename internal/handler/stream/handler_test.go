package stream

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	sessionservice "github.com/havenlabs/haven/backend/internal/service/session"
)

func TestHandleStreamRequestEmitsEventSequence(t *testing.T) {
	manager := sessionservice.NewManager(sessionservice.Config{})
	handler := New(manager)

	session, err := manager.StartSession(context.Background(), "u1", 0, nil)
	if err != nil {
		t.Fatalf("StartSession err: %v", err)
	}

	rr := httptest.NewRecorder()
	if err := handler.HandleStreamRequest(context.Background(), rr, session.ID, "I feel anxious about exams"); err != nil {
		t.Fatalf("HandleStreamRequest err: %v", err)
	}

	body := rr.Body.String()
	for _, event := range []string{"event: start", "event: message", "event: emotion", "event: end"} {
		if !strings.Contains(body, event) {
			t.Fatalf("missing %q in stream output: %s", event, body)
		}
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type: %s", ct)
	}
}

func TestHandleStreamRequestCrisisEvent(t *testing.T) {
	manager := sessionservice.NewManager(sessionservice.Config{})
	handler := New(manager)

	session, err := manager.StartSession(context.Background(), "u1", 0, nil)
	if err != nil {
		t.Fatalf("StartSession err: %v", err)
	}

	rr := httptest.NewRecorder()
	if err := handler.HandleStreamRequest(context.Background(), rr, session.ID, "I want to end it all"); err != nil {
		t.Fatalf("HandleStreamRequest err: %v", err)
	}

	if !strings.Contains(rr.Body.String(), "event: crisis") {
		t.Fatalf("expected crisis event in stream output: %s", rr.Body.String())
	}
}

func TestHandleStreamRequestUnknownSession(t *testing.T) {
	manager := sessionservice.NewManager(sessionservice.Config{})
	handler := New(manager)

	rr := httptest.NewRecorder()
	err := handler.HandleStreamRequest(context.Background(), rr, "missing", "hello")
	if err == nil {
		t.Fatal("expected error for unknown session")
	}
	if !strings.Contains(rr.Body.String(), "session_not_found") {
		t.Fatalf("expected error event in stream output: %s", rr.Body.String())
	}
}
