// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/btczview/internal/model"
	"github.com/jeranaias/btczview/internal/panels"
	"github.com/jeranaias/btczview/internal/timeline"
	"github.com/jeranaias/btczview/internal/ui/components"
	"github.com/jeranaias/btczview/internal/ui/styles"
)

// =============================================================================
// TABS
// =============================================================================

// Tab identifies a view.
type Tab int

const (
	TabMessages Tab = iota
	TabHome
	TabMining
	TabWallet
	tabCount
)

var tabNames = [...]string{"Messages", "Home", "Mining", "Wallet"}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return "Unknown"
	}
	return tabNames[t]
}

// PlaceholderText is shown in the Messages tab while the timeline is empty
// and the placeholder is attached.
const PlaceholderText = "No messages yet"

// Layout rows outside the scroll area: the tab bar and the status line.
const chromeRows = 2

// =============================================================================
// MODEL
// =============================================================================

// Options wire a Model to the timeline and the panels.
type Options struct {
	Chat     *timeline.Controller
	Panels   *panels.Set
	Renderer *components.CardRenderer
	Guard    timeline.KeyGuard
	Notifier *Notifier
}

// ThemeMsg switches the theme, e.g. after a config reload.
type ThemeMsg struct {
	Theme *styles.Theme
}

// placedCard is a rendered card at an absolute line of the timeline.
type placedCard struct {
	ts   string
	top  int
	card components.RenderedCard
}

// Model is the Bubble Tea model of the front-end.
type Model struct {
	chat     *timeline.Controller
	panels   *panels.Set
	render   *components.CardRenderer
	guard    timeline.KeyGuard
	notifier *Notifier

	tab    Tab
	width  int
	height int

	vp   viewport.Model
	spin spinner.Model

	snap   timeline.Snapshot
	placed []placedCard

	// hover is the URL under the pointer, shown in the status line.
	hover string
	// focus is the card targeted by the copy keys.
	focus string
	// notice is a transient status message, cleared by the next input.
	notice string
}

// New creates the model. The renderer must be the timeline's Measurer so
// that scroll geometry matches what is drawn.
func New(opts Options) Model {
	if opts.Notifier == nil {
		opts.Notifier = &Notifier{}
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Renderer.Theme().Sending

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = false

	return Model{
		chat:     opts.Chat,
		panels:   opts.Panels,
		render:   opts.Renderer,
		guard:    opts.Guard,
		notifier: opts.Notifier,
		vp:       vp,
		spin:     sp,
	}
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

// Tab returns the active tab.
func (m Model) Tab() Tab { return m.tab }

// chatHeight is the number of rows of the scroll area.
func (m Model) chatHeight() int {
	return max(m.height-chromeRows, 1)
}

// sending reports whether any card shows the spinner.
func (m Model) sending() bool {
	for _, v := range m.snap.Cards {
		if v.State == model.StateSending {
			return true
		}
	}
	return false
}

// refresh re-reads the timeline and lays out every card.
func (m *Model) refresh() {
	m.snap = m.chat.Snapshot()
	width := m.snap.Width
	if width <= 0 {
		width = m.width
	}

	var lines []string
	m.placed = m.placed[:0]
	if len(m.snap.Cards) == 0 && m.snap.Placeholder {
		lines = append(lines, m.render.Theme().Placeholder.Render(PlaceholderText))
	}
	frame := m.spin.View()
	for _, v := range m.snap.Cards {
		rc := m.render.Render(v, width, frame)
		m.placed = append(m.placed, placedCard{ts: v.Record.Timestamp, top: len(lines), card: rc})
		lines = append(lines, rc.Lines...)
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	m.vp.SetYOffset(m.snap.ScrollTop)

	if m.focus != "" {
		if _, ok := m.chat.Find(m.focus); !ok {
			m.focus = ""
		}
	}
}

// cardAt returns the card covering absolute timeline line.
func (m Model) cardAt(line int) (placedCard, bool) {
	for _, p := range m.placed {
		if line >= p.top && line < p.top+p.card.Height() {
			return p, true
		}
	}
	return placedCard{}, false
}

// copyTarget is the focused card, or the newest one.
func (m Model) copyTarget() string {
	if m.focus != "" {
		return m.focus
	}
	if n := len(m.snap.Cards); n > 0 {
		return m.snap.Cards[n-1].Record.Timestamp
	}
	return ""
}
