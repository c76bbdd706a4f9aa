package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestSender(url string) *BrevoSender {
	s := NewBrevoSender("test-key", "DomainVetter", "reports@domainvetter.io")
	s.endpoint = url
	return s
}

func TestBrevoSenderSend(t *testing.T) {
	var got brevoEmail
	var gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	msg := Message{To: "user@example.com", Subject: "Report", HTML: "<p>hi</p>", Text: "hi"}
	if err := newTestSender(srv.URL).Send(context.Background(), msg); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotKey != "test-key" {
		t.Errorf("api-key header = %q", gotKey)
	}
	if len(got.To) != 1 || got.To[0].Email != "user@example.com" {
		t.Errorf("To = %+v", got.To)
	}
	if got.Sender.Email != "reports@domainvetter.io" {
		t.Errorf("Sender = %+v", got.Sender)
	}
	if got.HTMLContent != "<p>hi</p>" || got.TextContent != "hi" {
		t.Errorf("Content = %q / %q", got.HTMLContent, got.TextContent)
	}
}

func TestBrevoSenderRetriesServerError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := newTestSender(srv.URL).Send(context.Background(), Message{To: "a@b.c"})
	if err != nil {
		t.Fatalf("Send after retry: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, expected 2", attempts)
	}
}

func TestBrevoSenderDoesNotRetryBadRequest(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := newTestSender(srv.URL).Send(context.Background(), Message{To: "a@b.c"})
	if err == nil {
		t.Fatal("Expected error for 400 response")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, expected 1", attempts)
	}
}
