// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package bridge carries user intents from the views to the host process.
//
// The channel is one-way and fire-and-forget: Send never blocks and never
// reports failure. A Hub fans each Event out to attached sinks (an NDJSON
// writer, the session journal) and to live subscribers such as server-sent
// event streams. Slow subscribers lose events rather than stall the UI.
package bridge
