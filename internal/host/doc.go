// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package host dispatches inbound host calls to the chat timeline and the
// auxiliary panels.
//
// A call is a JSON envelope {"method": name, "params": {...}} where name is
// one of the webview's function names (addMessage, setBalances, ...). Every
// transport (HTTP, console, journal replay) goes through Dispatcher.
package host
