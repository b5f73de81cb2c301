// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/btczview/internal/ui/components"
)

// UnreadText is the label shown while unread messages are below the fold.
const UnreadText = "↓ New messages"

// tabPadding is the horizontal padding of each tab label, both sides.
const tabPadding = 2

// View renders the screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	var body string
	switch m.tab {
	case TabMessages:
		body = m.vp.View()
	case TabHome:
		body = m.homeView()
	case TabMining:
		body = components.RenderMining(m.render.Theme(), m.panels.Mining.View(), m.width)
	case TabWallet:
		body = components.RenderWallet(m.render.Theme(), m.panels.Wallet.View(), m.width)
	}
	body = lipgloss.NewStyle().Height(m.chatHeight()).MaxHeight(m.chatHeight()).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, m.tabBar(), body, m.statusBar())
}

func (m Model) homeView() string {
	th := m.render.Theme()
	market := components.RenderMarket(th, m.panels.Market.View(), m.width)
	chartHeight := m.chatHeight() - lipgloss.Height(market) - 4
	if chartHeight < 4 {
		return market
	}
	chart := components.RenderChart(th, m.panels.Chart.View(), m.width, chartHeight)
	return lipgloss.JoinVertical(lipgloss.Left, market, chart)
}

func (m Model) tabBar() string {
	th := m.render.Theme()
	var b strings.Builder
	for t := Tab(0); t < tabCount; t++ {
		style := th.Tab
		if t == m.tab {
			style = th.TabActive
		}
		b.WriteString(style.Render(t.String()))
	}
	return th.TabBar.Width(m.width).Render(ansi.Truncate(b.String(), m.width, ""))
}

// tabAt maps a tab bar column to its tab.
func tabAt(x int) (Tab, bool) {
	col := 0
	for t := Tab(0); t < tabCount; t++ {
		w := runewidth.StringWidth(t.String()) + 2*tabPadding
		if x >= col && x < col+w {
			return t, true
		}
		col += w
	}
	return 0, false
}

func (m Model) statusBar() string {
	th := m.render.Theme()

	var left string
	switch {
	case m.snap.ToastVisible:
		left = th.Toast.Render(m.snap.Toast)
	case m.hover != "":
		left = th.StatusLink.Render(m.hover)
	case m.notice != "":
		left = th.StatusBar.Render(" " + m.notice)
	default:
		left = th.StatusHint.Render(" tab: switch view · pgup/pgdown: scroll · ctrl+q: quit")
	}

	var right string
	if m.tab == TabMessages && m.snap.Unread {
		right = th.UnreadLabel.Render(UnreadText)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		left = ansi.Truncate(left, max(m.width-lipgloss.Width(right), 0), "…")
		gap = 0
	}
	return left + th.StatusBar.Render(strings.Repeat(" ", gap)) + right
}
