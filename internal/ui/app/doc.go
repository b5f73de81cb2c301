// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package app is the Bubble Tea program of the terminal front-end.

It shows four tabs: Messages (the chat timeline), Home (market figures and
the price chart), Mining and Wallet. Host calls mutate the timeline and the
panels from other goroutines; they signal the program through a Notifier,
which coalesces bursts into a single RefreshMsg.

Input is guarded by Filter, installed with tea.WithFilter: right clicks are
dropped everywhere and keys are dropped unless they are quit keys, navigation
keys, or copy keys while the Messages tab is active.

Mouse clicks in the Messages tab are hit-tested against the rendered cards
and forwarded to the timeline as timeline.Click values.
*/
package app
