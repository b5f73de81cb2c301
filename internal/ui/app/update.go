// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/btczview/internal/timeline"
	"github.com/jeranaias/btczview/internal/ui/components"
)

// wheelStep is the number of lines one wheel notch scrolls.
const wheelStep = 3

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = m.chatHeight()
		m.chat.SetViewport(msg.Width, m.chatHeight())
		m.refresh()
		return m, nil

	case RefreshMsg:
		m.notifier.ack()
		m.refresh()
		return m, nil

	case ThemeMsg:
		if msg.Theme != nil {
			m.render.SetTheme(msg.Theme)
			m.spin.Style = msg.Theme.Sending
			m.refresh()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.sending() {
			m.refresh()
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.notice = ""

	if m.guard.IsQuit(key) {
		return m, tea.Quit
	}
	if m.tab == TabMessages && m.guard.IsCopy(key) {
		m.copyCard(m.copyTarget())
		m.refresh()
		return m, nil
	}

	switch key {
	case "tab":
		m.tab = (m.tab + 1) % tabCount
	case "shift+tab":
		m.tab = (m.tab + tabCount - 1) % tabCount
	case "pgup":
		m.scroll(-m.chatHeight())
	case "pgdown":
		m.scroll(m.chatHeight())
	case "home":
		if m.tab == TabMessages {
			m.chat.ScrollTo(0)
		}
	case "end":
		if m.tab == TabMessages {
			m.chat.ScrollToBottom()
		}
	}
	m.refresh()
	return m, nil
}

func (m *Model) scroll(delta int) {
	if m.tab == TabMessages {
		m.chat.ScrollBy(delta)
	}
}

func (m *Model) copyCard(ts string) {
	if ts == "" {
		return
	}
	if err := m.chat.Copy(ts); err != nil {
		m.reject(ts, err)
	}
}

// reject reports a refused action in the status line.
func (m *Model) reject(ts string, err error) {
	log.Printf("UI_ACTION_REJECTED | ts=%s error=%v", ts, err)
	switch {
	case errors.Is(err, timeline.ErrActionsLocked):
		m.notice = "Finish the current edit or reply first"
	case errors.Is(err, timeline.ErrButtonDisabled):
		m.notice = "Please wait, sending…"
	default:
		m.notice = err.Error()
	}
}

// =============================================================================
// MOUSE
// =============================================================================

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseWheelUp:
		m.scroll(-wheelStep)
	case tea.MouseWheelDown:
		m.scroll(wheelStep)
	case tea.MouseMotion:
		m.hover = ""
		if _, r, ok := m.hitTest(msg.X, msg.Y); ok && r.Target == timeline.TargetLink {
			m.hover = r.URL
		}
		return m, nil
	case tea.MouseLeft:
		m.notice = ""
		m.click(msg.X, msg.Y)
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

// click routes a left click: the tab bar switches tabs, the unread label
// jumps to the bottom, a card region becomes a timeline click.
func (m *Model) click(x, y int) {
	switch {
	case y == 0:
		if t, ok := tabAt(x); ok {
			m.tab = t
		}
		return
	case y == m.height-1:
		if m.tab == TabMessages && m.snap.Unread {
			m.chat.ScrollToBottom()
			m.chat.HideUnreadLabel()
		}
		return
	}
	p, r, ok := m.hitTest(x, y)
	if p.ts == "" {
		return
	}
	m.focus = p.ts
	if !ok {
		return
	}
	ev := timeline.Click{Timestamp: p.ts, Target: r.Target, Button: r.Button, URL: r.URL}
	if err := m.chat.Click(ev); err != nil {
		m.reject(p.ts, err)
	}
}

// hitTest resolves screen cell (x, y) in the Messages tab to the card under
// it and, when there is one, the clickable region.
func (m Model) hitTest(x, y int) (placedCard, components.Region, bool) {
	if m.tab != TabMessages || y < 1 || y > m.chatHeight() {
		return placedCard{}, components.Region{}, false
	}
	line := m.vp.YOffset + y - 1
	p, ok := m.cardAt(line)
	if !ok {
		return placedCard{}, components.Region{}, false
	}
	r, ok := p.card.Hit(line-p.top, x)
	return p, r, ok
}
