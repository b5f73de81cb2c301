// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jeranaias/btczview/internal/bridge"
	"github.com/jeranaias/btczview/internal/card"
	"github.com/jeranaias/btczview/internal/host"
	"github.com/jeranaias/btczview/internal/timeline"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = "127.0.0.1:8791"

	// MaxRequestBodySize caps a call body (1MB). Chart series are the
	// largest payloads.
	MaxRequestBodySize = 1 * 1024 * 1024

	// KeepAliveInterval is how often an idle event stream sends a comment.
	KeepAliveInterval = 15 * time.Second
)

// ============================================================================
// SERVER
// ============================================================================

// Config configures a Server.
type Config struct {
	Addr  string
	Token string // bearer token; empty disables auth

	RatePerSec float64
	Burst      int
}

// Server is the HTTP transport between the host process and the view.
type Server struct {
	cfg      Config
	router   *http.ServeMux
	server   *http.Server
	dispatch *host.Dispatcher
	chat     *timeline.Controller
	hub      *bridge.Hub
	limiter  *RateLimiter
	started  time.Time

	calls  atomic.Int64
	failed atomic.Int64
}

// New returns a server. Zero config fields take defaults.
func New(cfg Config, d *host.Dispatcher, chat *timeline.Controller, hub *bridge.Hub) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 50
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 100
	}
	s := &Server{
		cfg:      cfg,
		router:   http.NewServeMux(),
		dispatch: d,
		chat:     chat,
		hub:      hub,
		limiter:  NewRateLimiter(cfg.RatePerSec, cfg.Burst),
		started:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// ============================================================================
// ROUTES
// ============================================================================

func (s *Server) setupRoutes() {
	s.router.HandleFunc("POST /v1/call", s.handleCall)
	s.router.HandleFunc("POST /v1/click", s.handleClick)
	s.router.HandleFunc("GET /v1/events", s.handleEvents)
	s.router.HandleFunc("GET /v1/snapshot", s.handleSnapshot)
	s.router.HandleFunc("GET /health", s.handleHealth)
}

// Handler returns the routes wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return Chain(
		RecoveryMiddleware(),
		SecurityHeadersMiddleware(),
		LoggingMiddleware(log.Default()),
		RateLimitMiddleware(s.limiter),
		AuthMiddleware(s.cfg.Token),
	)(s.router)
}

// ============================================================================
// CALL HANDLER
// ============================================================================

// handleCall handles POST /v1/call.
func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	s.calls.Add(1)
	err := s.dispatch.DispatchJSON(body)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, host.ErrUnknownMethod):
		s.failed.Add(1)
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, host.ErrBadParams):
		s.failed.Add(1)
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.failed.Add(1)
		log.Printf("CALL_FAILED | err=%v", err)
		s.writeError(w, http.StatusInternalServerError, "Call failed")
	}
}

// ============================================================================
// CLICK HANDLER
// ============================================================================

// ClickRequest is the body of POST /v1/click.
type ClickRequest struct {
	Timestamp string `json:"timestamp"`
	Target    string `json:"target"` // "button", "link" or ""
	Button    string `json:"button,omitempty"`
	URL       string `json:"url,omitempty"`
}

func (c ClickRequest) click() (timeline.Click, error) {
	ev := timeline.Click{Timestamp: c.Timestamp, URL: c.URL}
	switch strings.ToLower(c.Target) {
	case "button":
		ev.Target = timeline.TargetButton
		kind, ok := parseButton(c.Button)
		if !ok {
			return ev, fmt.Errorf("unknown button %q", c.Button)
		}
		ev.Button = kind
	case "link":
		ev.Target = timeline.TargetLink
		if c.URL == "" {
			return ev, errors.New("link click needs a url")
		}
	case "", "none":
		ev.Target = timeline.TargetNone
	default:
		return ev, fmt.Errorf("unknown target %q", c.Target)
	}
	return ev, nil
}

func parseButton(name string) (card.ButtonKind, bool) {
	for _, k := range []card.ButtonKind{card.ButtonEdit, card.ButtonReply, card.ButtonCopy} {
		if strings.EqualFold(name, k.String()) {
			return k, true
		}
	}
	return 0, false
}

// handleClick handles POST /v1/click.
func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	var req ClickRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	ev, err := req.click()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = s.chat.Click(ev)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, timeline.ErrActionsLocked), errors.Is(err, timeline.ErrButtonDisabled):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, timeline.ErrNotFound), errors.Is(err, timeline.ErrNoButton):
		s.writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("CLICK_FAILED | ts=%s err=%v", ev.Timestamp, err)
		s.writeError(w, http.StatusInternalServerError, "Click failed")
	}
}

// ============================================================================
// EVENT STREAM
// ============================================================================

// handleEvents handles GET /v1/events: one SSE data line per bridge event.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	sub := s.hub.Subscribe(bridge.DefaultBuffer)
	defer s.hub.Unsubscribe(sub)
	log.Printf("EVENTS_SUBSCRIBED | id=%s ip=%s", sub.ID, GetClientIP(r))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, ": subscribed %s\n\n", sub.ID)
	flusher.Flush()

	ticker := time.NewTicker(KeepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Printf("EVENTS_CLOSED | id=%s", sub.ID)
			return
		case <-ticker.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

// ============================================================================
// SNAPSHOT AND HEALTH
// ============================================================================

// handleSnapshot handles GET /v1/snapshot.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, s.chat.Snapshot().HTML())
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	Uptime      string `json:"uptime"`
	Messages    int    `json:"messages"`
	Subscribers int    `json:"subscribers"`
	Dropped     uint64 `json:"dropped"`
	Calls       int64  `json:"calls"`
	Failed      int64  `json:"failed"`
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Uptime:      time.Since(s.started).Round(time.Second).String(),
		Messages:    s.chat.Len(),
		Subscribers: s.hub.Subscribers(),
		Dropped:     s.hub.Dropped(),
		Calls:       s.calls.Load(),
		Failed:      s.failed.Load(),
	})
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ln)
}

// Serve serves on ln until Shutdown. It returns nil after a clean shutdown.
func (s *Server) Serve(ln net.Listener) error {
	// No write timeout: event streams stay open for the session.
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("SERVER_START | addr=%s auth=%t", ln.Addr(), s.cfg.Token != "")
	err := s.server.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	log.Printf("SERVER_SHUTDOWN | calls=%d failed=%d", s.calls.Load(), s.failed.Load())
	return s.server.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

// readBody reads a size-capped request body, answering 413 or 400 itself.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Request body exceeds maximum size of %d bytes", MaxRequestBodySize))
			return nil, false
		}
		log.Printf("Invalid request body: %v", err)
		s.writeError(w, http.StatusBadRequest, "Invalid request format")
		return nil, false
	}
	return body, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": message,
			"code":    status,
		},
	})
}
