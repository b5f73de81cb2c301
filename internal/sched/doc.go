// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sched provides cancellable deferred tasks.
//
// A Scheduler runs a function after a delay. Real is backed by time.AfterFunc;
// Manual only fires when Advance is called, which makes timer-driven UI
// behavior deterministic in tests.
//
// A Group ties tasks to the lifetime of an owner (a message card, a panel
// box). Cancelling the group stops every pending task and refuses new ones,
// so a callback never runs against an owner that has been destroyed.
package sched
