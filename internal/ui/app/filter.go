// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/btczview/internal/timeline"
)

// Filter returns the input guard for tea.WithFilter. Right clicks never
// reach the model; keys pass only when guard allows them for the active tab.
func Filter(guard timeline.KeyGuard) func(tea.Model, tea.Msg) tea.Msg {
	return func(m tea.Model, msg tea.Msg) tea.Msg {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			inMessages := true
			if am, ok := m.(Model); ok {
				inMessages = am.tab == TabMessages
			}
			if !guard.Allow(msg.String(), inMessages) {
				return nil
			}
		case tea.MouseMsg:
			if msg.Type == tea.MouseRight {
				return nil
			}
		}
		return msg
	}
}
