// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package timeline

import "strings"

// =============================================================================
// INPUT GUARD
// =============================================================================

// KeyGuard decides which key presses reach the views. Everything not on an
// allow-list is swallowed; copy keys only pass in the messages view.
type KeyGuard struct {
	copyKeys map[string]bool
	quitKeys map[string]bool
	navKeys  map[string]bool
}

// NewKeyGuard builds a guard from key names such as "ctrl+c".
func NewKeyGuard(copyKeys, quitKeys, navKeys []string) KeyGuard {
	return KeyGuard{
		copyKeys: keySet(copyKeys),
		quitKeys: keySet(quitKeys),
		navKeys:  keySet(navKeys),
	}
}

func keySet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[strings.ToLower(strings.TrimSpace(k))] = true
	}
	return set
}

// IsCopy reports whether key is a copy shortcut.
func (g KeyGuard) IsCopy(key string) bool { return g.copyKeys[strings.ToLower(key)] }

// IsQuit reports whether key quits the program.
func (g KeyGuard) IsQuit(key string) bool { return g.quitKeys[strings.ToLower(key)] }

// IsNav reports whether key switches or scrolls views.
func (g KeyGuard) IsNav(key string) bool { return g.navKeys[strings.ToLower(key)] }

// Allow reports whether key passes the guard.
func (g KeyGuard) Allow(key string, inMessages bool) bool {
	switch {
	case g.IsQuit(key), g.IsNav(key):
		return true
	case g.IsCopy(key):
		return inMessages
	}
	return false
}
