// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// RefreshMsg asks the program to redraw from the current controller and
// panel state.
type RefreshMsg struct{}

// Sender is the part of *tea.Program the Notifier needs.
type Sender interface {
	Send(msg tea.Msg)
}

// Notifier forwards change notifications to a running program. At most one
// RefreshMsg is in flight; further notifications before it is handled are
// folded into it.
type Notifier struct {
	mu      sync.Mutex
	sender  Sender
	pending atomic.Bool
}

// Attach sets the program that receives RefreshMsg.
func (n *Notifier) Attach(s Sender) {
	n.mu.Lock()
	n.sender = s
	n.mu.Unlock()
}

// Notify schedules a refresh. It never blocks, so it may be called from
// inside Update.
func (n *Notifier) Notify() {
	if !n.pending.CompareAndSwap(false, true) {
		return
	}
	n.mu.Lock()
	s := n.sender
	n.mu.Unlock()
	if s == nil {
		n.pending.Store(false)
		return
	}
	go s.Send(RefreshMsg{})
}

// ack re-arms Notify once a RefreshMsg is being handled.
func (n *Notifier) ack() {
	n.pending.Store(false)
}
