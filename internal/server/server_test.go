// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/btczview/internal/bridge"
	"github.com/jeranaias/btczview/internal/card"
	"github.com/jeranaias/btczview/internal/host"
	"github.com/jeranaias/btczview/internal/model"
	"github.com/jeranaias/btczview/internal/panels"
	"github.com/jeranaias/btczview/internal/sched"
	"github.com/jeranaias/btczview/internal/timeline"
)

// =============================================================================
// HELPERS
// =============================================================================

type fakeClipboard struct{ text string }

func (f *fakeClipboard) WriteAll(text string) error {
	f.text = text
	return nil
}

func newTestServer(t *testing.T, cfg Config) (*Server, *timeline.Controller, *bridge.Hub) {
	t.Helper()
	clock := sched.NewManual()
	hub := bridge.NewHub()
	chat := timeline.New(timeline.Options{
		Scheduler: clock,
		Bridge:    hub,
		Clipboard: &fakeClipboard{},
		Measurer:  timeline.MeasurerFunc(func(card.View, int) int { return 10 }),
	})
	set := panels.New(panels.Options{Scheduler: clock})
	t.Cleanup(func() {
		chat.Close()
		set.Close()
	})
	return New(cfg, host.New(chat, set, ""), chat, hub), chat, hub
}

func do(t *testing.T, h http.Handler, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// =============================================================================
// CALL TESTS
// =============================================================================

func TestHandleCall(t *testing.T) {
	s, chat, _ := newTestServer(t, Config{})
	h := s.Handler()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"add", `{"method":"addMessage","params":{"username":"alice","content":"hi","timestamp":"1"}}`, http.StatusNoContent},
		{"setter", `{"method":"setVolume","params":{"value":"12"}}`, http.StatusNoContent},
		{"unknown", `{"method":"doesNotExist"}`, http.StatusNotFound},
		{"bad params", `{"method":"markMessageAsSent","params":{}}`, http.StatusBadRequest},
		{"bad json", `{"method":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/call", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}

	if chat.Len() != 1 {
		t.Errorf("chat.Len() = %d, want 1", chat.Len())
	}
}

func TestHandleCall_BodyTooLarge(t *testing.T) {
	s, _, _ := newTestServer(t, Config{})
	body := `{"method":"showToast","params":{"value":"` + strings.Repeat("x", MaxRequestBodySize) + `"}}`
	rec := do(t, s.Handler(), http.MethodPost, "/v1/call", body)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestHandleCall_WrongMethod(t *testing.T) {
	s, _, _ := newTestServer(t, Config{})
	rec := do(t, s.Handler(), http.MethodGet, "/v1/call", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

// =============================================================================
// CLICK TESTS
// =============================================================================

func TestHandleClick(t *testing.T) {
	s, chat, _ := newTestServer(t, Config{})
	h := s.Handler()
	chat.Append(model.MessageRecord{UserType: model.UserYou, Username: "You", Content: "mine", Timestamp: "1"})
	chat.Append(model.MessageRecord{UserType: model.UserOther, Username: "bob", Content: "theirs", Timestamp: "2"})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"edit own", `{"timestamp":"1","target":"button","button":"edit"}`, http.StatusNoContent},
		{"locked while editing", `{"timestamp":"2","target":"button","button":"reply"}`, http.StatusConflict},
		{"missing card", `{"timestamp":"9","target":"button","button":"copy"}`, http.StatusNotFound},
		{"unknown button", `{"timestamp":"1","target":"button","button":"delete"}`, http.StatusBadRequest},
		{"link without url", `{"timestamp":"1","target":"link"}`, http.StatusBadRequest},
		{"bad json", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/click", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

// =============================================================================
// EVENT STREAM TESTS
// =============================================================================

func TestHandleEvents(t *testing.T) {
	s, chat, hub := newTestServer(t, Config{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	chat.Append(model.MessageRecord{UserType: model.UserYou, Username: "You", Content: "mine", Timestamp: "1"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/v1/events", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /v1/events: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q", ct)
	}

	r := bufio.NewReader(resp.Body)
	line, err := r.ReadString('\n')
	if err != nil || !strings.HasPrefix(line, ": subscribed") {
		t.Fatalf("first line = %q, err %v", line, err)
	}
	if hub.Subscribers() != 1 {
		t.Fatalf("Subscribers() = %d, want 1", hub.Subscribers())
	}

	if err := chat.ToggleEdit("1"); err != nil {
		t.Fatalf("ToggleEdit: %v", err)
	}

	for {
		line, err = r.ReadString('\n')
		if err != nil {
			t.Fatalf("reading stream: %v", err)
		}
		if strings.HasPrefix(line, "data: ") {
			break
		}
	}

	var ev bridge.Event
	if err := json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "data: ")), &ev); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if ev.Action != bridge.ActionEdit || ev.Timestamp != "1" || ev.Content != "mine" {
		t.Errorf("event = %+v", ev)
	}
}

// =============================================================================
// SNAPSHOT AND HEALTH TESTS
// =============================================================================

func TestHandleSnapshot(t *testing.T) {
	s, chat, _ := newTestServer(t, Config{})
	chat.Append(model.MessageRecord{Username: "alice", Content: "**hi**", Timestamp: "1"})

	rec := do(t, s.Handler(), http.MethodGet, "/v1/snapshot", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "<b>hi</b>") {
		t.Errorf("snapshot missing formatted body: %s", rec.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	s, _, _ := newTestServer(t, Config{})
	h := s.Handler()
	do(t, h, http.MethodPost, "/v1/call", `{"method":"nope"}`)

	rec := do(t, h, http.MethodGet, "/health", "")
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("Status = %q, want ok", resp.Status)
	}
	if resp.Calls != 1 || resp.Failed != 1 {
		t.Errorf("Calls/Failed = %d/%d, want 1/1", resp.Calls, resp.Failed)
	}
}

// =============================================================================
// MIDDLEWARE TESTS
// =============================================================================

func TestAuthMiddleware(t *testing.T) {
	s, _, _ := newTestServer(t, Config{Token: "secret"})
	h := s.Handler()

	tests := []struct {
		name   string
		header []string
		want   int
	}{
		{"no header", nil, http.StatusUnauthorized},
		{"wrong scheme", []string{"Authorization", "Basic secret"}, http.StatusUnauthorized},
		{"wrong token", []string{"Authorization", "Bearer nope"}, http.StatusUnauthorized},
		{"valid", []string{"Authorization", "Bearer secret"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/health", "", tt.header...)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestValidateBearerToken(t *testing.T) {
	tests := []struct {
		token, expected string
		want            bool
	}{
		{"abc", "abc", true},
		{"abc", "abd", false},
		{"", "", false},
		{"abc", "", false},
	}
	for _, tt := range tests {
		if got := ValidateBearerToken(tt.token, tt.expected); got != tt.want {
			t.Errorf("ValidateBearerToken(%q, %q) = %v, want %v", tt.token, tt.expected, got, tt.want)
		}
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	s, _, _ := newTestServer(t, Config{RatePerSec: 0.001, Burst: 2})
	h := s.Handler()

	for i := 0; i < 2; i++ {
		if rec := do(t, h, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
	rec := do(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := do(t, h, http.MethodGet, "/", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(mark("a"), mark("b"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	do(t, h, http.MethodGet, "/", "")
	if strings.Join(order, ",") != "a,b" {
		t.Errorf("order = %v, want [a b]", order)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		remote, xff, want string
	}{
		{"203.0.113.9:1234", "", "203.0.113.9"},
		{"203.0.113.9:1234", "198.51.100.1", "203.0.113.9"},
		{"127.0.0.1:1234", "198.51.100.1, 10.0.0.1", "198.51.100.1"},
		{"127.0.0.1:1234", "garbage", "127.0.0.1"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remote
		if tt.xff != "" {
			req.Header.Set("X-Forwarded-For", tt.xff)
		}
		if got := GetClientIP(req); got != tt.want {
			t.Errorf("GetClientIP(%s, %q) = %q, want %q", tt.remote, tt.xff, got, tt.want)
		}
	}
}
