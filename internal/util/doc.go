// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small file helpers shared by the config and cli
// packages.
//
//	// Crash-safe replace of a config or history file
//	err := util.AtomicWriteFile(path, data, 0600)
package util
