// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server exposes the view to a host process over HTTP.
//
// # Endpoints
//
//   - POST /v1/call     - run one host call ({"method": ..., "params": ...})
//   - POST /v1/click    - simulate a user click on a card button or link
//   - GET  /v1/events   - bridge events as server-sent events
//   - GET  /v1/snapshot - the chat container as an HTML fragment
//   - GET  /health      - health check
//
// # Middleware
//
//   - Panic recovery with stack trace logging
//   - Security headers
//   - Request logging with timing information
//   - Per-client token bucket rate limiting
//   - Optional bearer token authentication with constant-time comparison
//
// # Usage
//
//	srv := server.New(server.Config{Addr: "127.0.0.1:8791"}, dispatcher, chat, hub)
//	go srv.Start()
//	defer srv.Shutdown(ctx)
package server
