// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package journal records a view session in SQLite.
//
// Every inbound host call and every outbound bridge event is appended to
// the current session in arrival order. A recorded session can be replayed
// into a fresh view, which reproduces the timeline and panels exactly since
// all state is derived from the call sequence.
//
// # Key Types
//
//   - Journal: the database handle and current session
//   - Session: one recorded run
//   - Entry: one call or event
package journal
