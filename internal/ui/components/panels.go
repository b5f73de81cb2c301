// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/btczview/internal/panels"
	"github.com/jeranaias/btczview/internal/ui/styles"
)

// =============================================================================
// KEY/VALUE PANELS
// =============================================================================

type row struct {
	label string
	value string
	style lipgloss.Style
}

func renderRows(th *styles.Theme, title string, rows []row, width int) string {
	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, runewidth.StringWidth(r.label))
	}
	lines := []string{th.PanelTitle.Render(title), ""}
	for _, r := range rows {
		pad := strings.Repeat(" ", labelWidth-runewidth.StringWidth(r.label))
		lines = append(lines, th.Label.Render(r.label)+pad+"  "+r.style.Render(r.value))
	}
	return th.PanelBox.Width(max(width-2, 20)).Render(strings.Join(lines, "\n"))
}

func fieldStyle(th *styles.Theme, f panels.Field) lipgloss.Style {
	if f.Color == "" {
		return th.Value
	}
	return th.Value.Foreground(lipgloss.Color(f.Color))
}

// RenderMarket draws the home view figures.
func RenderMarket(th *styles.Theme, v panels.MarketView, width int) string {
	circulating := v.Circulating.Text
	if v.CirculatingTooltip != "" {
		circulating += " (" + v.CirculatingTooltip + ")"
	}
	return renderRows(th, "BitcoinZ Market", []row{
		{"Price", v.Price.Text, fieldStyle(th, v.Price)},
		{"Market cap", v.MarketCap.Text, fieldStyle(th, v.MarketCap)},
		{"Volume 24h", v.Volume.Text, fieldStyle(th, v.Volume)},
		{"Change 24h", v.Change24h.Text, fieldStyle(th, v.Change24h)},
		{"Change 7d", v.Change7d.Text, fieldStyle(th, v.Change7d)},
		{"Circulating", circulating, fieldStyle(th, v.Circulating)},
		{"Next halving", v.NextHalving.Text, fieldStyle(th, v.NextHalving)},
		{"Deprecation", v.Deprecation.Text, fieldStyle(th, v.Deprecation)},
	}, width)
}

// RenderMining draws the mining statistics.
func RenderMining(th *styles.Theme, v panels.MiningView, width int) string {
	return renderRows(th, "Mining", []row{
		{"Total shares", v.TotalShares, th.Value},
		{"Hashrate", v.Hashrate, th.Value},
		{"Balance", v.Balance, th.Value},
		{"Immature", v.ImmatureBalance, th.Value},
		{"Paid", v.PaidBalance, th.Value},
		{"Estimated", v.EstimatedBTCZ, th.Value},
		{"Estimated value", v.EstimatedCurrency, th.Value},
	}, width)
}

// RenderWallet draws the wallet balances. The unconfirmed row is present
// only while shown, and faint while it fades.
func RenderWallet(th *styles.Theme, v panels.WalletView, width int) string {
	rows := []row{
		{"Total", v.Total, th.Value},
		{"Transparent", v.Transparent, th.Value},
		{"Shielded", v.Shielded, th.Value},
	}
	if v.UnconfirmedShown {
		style := th.Value.Foreground(styles.Amber)
		if v.UnconfirmedFading {
			style = th.Faded
		}
		rows = append(rows, row{"Unconfirmed", v.Unconfirmed, style})
	}
	return renderRows(th, "Wallet", rows, width)
}

// =============================================================================
// PRICE CHART
// =============================================================================

// chartGutter is the width of the y-axis tick column.
const chartGutter = 14

// RenderChart plots the price series as a dot line chart of
// the given size. The placeholder message is shown while the chart failed or
// has no series.
func RenderChart(th *styles.Theme, v panels.ChartView, width, height int) string {
	width = max(width-4, chartGutter+10)
	height = max(height, 4)

	if !v.HasSeries() {
		msg := v.Message
		if msg == "" {
			msg = panels.DefaultChartMessage
		}
		body := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, th.Placeholder.Render(msg))
		return th.PanelBox.Render(body)
	}

	plotW := width - chartGutter
	lo, hi := v.Bounds()
	span := hi - lo
	if span == 0 {
		span = math.Max(math.Abs(hi)*0.01, 1e-8)
	}

	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", plotW))
	}
	rowOf := func(p float64) int {
		f := (hi - p) / span
		return int(math.Round(f * float64(height-1)))
	}
	prev := -1
	for x := 0; x < plotW; x++ {
		i := x * (len(v.Data) - 1) / max(plotW-1, 1)
		if len(v.Data) == 1 {
			i = 0
		}
		y := rowOf(v.Data[i])
		grid[y][x] = '•'
		if prev >= 0 {
			for fill := min(prev, y) + 1; fill < max(prev, y); fill++ {
				grid[fill][x] = '│'
			}
		}
		prev = y
	}

	lines := []string{th.PanelTitle.Render(v.Label)}
	for y, cells := range grid {
		tick := ""
		switch y {
		case 0:
			tick = panels.FormatTick(hi)
		case height - 1:
			tick = panels.FormatTick(lo)
		}
		tick = runewidth.FillLeft(runewidth.Truncate(tick, chartGutter-2, ""), chartGutter-2) + " ┤"
		f := float64(y) / float64(max(height-1, 1))
		stroke := styles.Hex(panels.StrokeColor(f).Hex())
		lines = append(lines, th.Label.Render(tick)+stroke.Render(string(cells)))
	}
	lines = append(lines, strings.Repeat(" ", chartGutter)+axisLabels(v.Labels, plotW))
	return th.PanelBox.Render(strings.Join(lines, "\n"))
}

// axisLabels spreads the first, middle and last time labels across width.
func axisLabels(labels []string, width int) string {
	if len(labels) == 0 {
		return ""
	}
	first := labels[0]
	last := labels[len(labels)-1]
	if len(labels) == 1 {
		return first
	}
	mid := labels[len(labels)/2]
	gap := width - runewidth.StringWidth(first) - runewidth.StringWidth(mid) - runewidth.StringWidth(last)
	if gap < 2 {
		return runewidth.Truncate(first+" "+last, width, "")
	}
	left := gap / 2
	return first + strings.Repeat(" ", left) + mid + strings.Repeat(" ", gap-left) + last
}
