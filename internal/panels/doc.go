// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package panels holds the state of the auxiliary wallet views: market
// figures and the price chart on the home view, mining statistics, and
// wallet balances.
//
// Every setter takes the host's pre-formatted string. An empty value is
// the host's null and renders a placeholder dash instead of an error.
package panels
