package irisfast

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestClientSendMessage(t *testing.T) {
	var got ReplyRequest
	var header string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reply" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		header = r.Header.Get("X-User-Id")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", WithHeaderProvider(func() map[string]string {
		return map[string]string{"X-User-Id": "bot", "X-Empty": " "}
	}))
	if err := c.SendMessage(context.Background(), "room-1", "hello"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if got.Type != "text" || got.Room != "room-1" || got.Data != "hello" {
		t.Fatalf("payload = %+v", got)
	}
	if header != "bot" {
		t.Fatalf("X-User-Id = %q", header)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithRetry(3), WithTimeout(2*time.Second))
	if err := c.SendImage(context.Background(), "room", "aGVsbG8="); err != nil {
		t.Fatalf("SendImage: %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("calls = %d, want 3", calls.Load())
	}
}

func TestClientNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "bad room", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).SendMessage(context.Background(), "room", "x")
	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusBadRequest {
		t.Fatalf("err = %v, want StatusError 400", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestClientRejectsEmptyRoom(t *testing.T) {
	if err := NewClient("http://127.0.0.1:1").SendMessage(context.Background(), " ", "x"); err == nil {
		t.Fatalf("expected error for empty room")
	}
}

func TestMessageAccessors(t *testing.T) {
	room, sender := "방", "앨리스"
	m := &Message{Msg: "  !체스 현황 ", Room: &room, Sender: &sender, JSON: &MessageJSON{UserID: "42", ChatID: "1001"}}
	if m.Text() != "!체스 현황" || m.RoomID() != "1001" || m.SenderName() != "앨리스" || m.UserID() != "42" {
		t.Fatalf("accessors = %q %q %q %q", m.Text(), m.RoomID(), m.SenderName(), m.UserID())
	}
	m.JSON = nil
	if m.RoomID() != "방" || m.UserID() != "" {
		t.Fatalf("fallbacks = %q %q", m.RoomID(), m.UserID())
	}
	var nilMsg *Message
	if nilMsg.Text() != "" {
		t.Fatalf("nil message text")
	}
}
