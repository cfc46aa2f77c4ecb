package irisfast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestAutoEgressFallsBackToHTTP(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ws := NewWebSocket("ws://127.0.0.1:1", 0)
	eg := NewEgress(ModeAuto, false, NewClient(srv.URL), ws)
	if err := eg.SendText(context.Background(), "room", "hi"); err != nil {
		t.Fatalf("SendText: %v", err)
	}
	if err := eg.SendImage(context.Background(), "room", "aGk="); err != nil {
		t.Fatalf("SendImage: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("http calls = %d, want 2", calls.Load())
	}
}

func TestDryRunEgressSendsNothing(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	eg := NewEgress(ModeHTTP, true, NewClient(srv.URL), nil)
	if err := eg.SendText(context.Background(), "room", "hi"); err != nil {
		t.Fatalf("SendText: %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("dry run hit the server %d times", calls.Load())
	}
}

func TestWSEgressWithoutSocket(t *testing.T) {
	eg := NewEgress(ModeWS, false, nil, nil)
	if err := eg.SendText(context.Background(), "room", "hi"); err == nil {
		t.Fatalf("expected error without websocket")
	}
}
