// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panels

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jeranaias/btczview/internal/model"
)

// =============================================================================
// CHART
// =============================================================================

// DefaultChartMessage is drawn in place of the chart when no data arrived.
const DefaultChartMessage = "Unable to load market data\nRetrying in 10 minutes..."

// TickThreshold is the value below which axis ticks show eight decimals.
const TickThreshold = 0.0001

// Gradient endpoints of the price line, top to bottom.
var (
	gradientTop    = colorful.Color{R: 3 / 255.0, G: 240 / 255.0, B: 252 / 255.0}
	gradientBottom = colorful.Color{R: 252 / 255.0, G: 3 / 255.0, B: 3 / 255.0}
)

// ChartView is a snapshot of the price chart.
type ChartView struct {
	// Failed is set while the placeholder is shown instead of a series.
	Failed  bool
	Message string

	Label    string // dataset label, "BTCZ/USD"
	Currency string
	Labels   []string
	Data     []float64

	// Created counts series creations, Updated in-place updates.
	Created int
	Updated int
}

// HasSeries reports whether a series is drawn.
func (v ChartView) HasSeries() bool {
	return !v.Failed && len(v.Data) > 0
}

// Bounds returns the minimum and maximum price.
func (v ChartView) Bounds() (lo, hi float64) {
	for i, p := range v.Data {
		if i == 0 || p < lo {
			lo = p
		}
		if i == 0 || p > hi {
			hi = p
		}
	}
	return lo, hi
}

// Tooltip returns the hover text of point i.
func (v ChartView) Tooltip(i int) string {
	if i < 0 || i >= len(v.Data) {
		return ""
	}
	return fmt.Sprintf("%s %.8f", v.Currency, v.Data[i])
}

// FormatTick formats a y-axis value. Small prices get eight decimals so
// sub-cent quotes do not collapse to zero.
func FormatTick(v float64) string {
	if v < TickThreshold {
		return strconv.FormatFloat(v, 'f', 8, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TimeLabel formats a unix-millisecond timestamp as H:MM.
func TimeLabel(ms int64, loc *time.Location) string {
	t := time.UnixMilli(ms).In(loc)
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}

// StrokeColor returns the line color at fraction f of the chart height,
// 0 at the top.
func StrokeColor(f float64) colorful.Color {
	f = max(0, min(1, f))
	return gradientTop.BlendLab(gradientBottom, f).Clamped()
}

// Chart holds the price chart.
type Chart struct {
	panel
	v       ChartView
	loc     *time.Location
	message string
}

// NewChart returns an empty chart. Labels are formatted in loc, or local
// time when loc is nil.
func NewChart(message string, loc *time.Location, onChange func()) *Chart {
	if message == "" {
		message = DefaultChartMessage
	}
	if loc == nil {
		loc = time.Local
	}
	return &Chart{panel: panel{onChange: onChange}, loc: loc, message: message}
}

// View returns a copy of the chart state.
func (c *Chart) View() ChartView {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.v
	v.Labels = append([]string(nil), c.v.Labels...)
	v.Data = append([]float64(nil), c.v.Data...)
	return v
}

// Render draws points, updating an existing series in place. An empty
// series shows the placeholder, which the next real series tears down.
func (c *Chart) Render(points []model.PricePoint, currency string) {
	c.update(func() {
		if len(points) == 0 {
			c.v.Failed = true
			c.v.Message = c.message
			c.v.Labels = nil
			c.v.Data = nil
			return
		}

		hadSeries := c.v.HasSeries()
		if c.v.Failed {
			c.v.Failed = false
			c.v.Message = ""
		}

		labels := make([]string, len(points))
		data := make([]float64, len(points))
		for i, p := range points {
			labels[i] = TimeLabel(p.TimeMs, c.loc)
			data[i] = p.Price
		}
		c.v.Labels = labels
		c.v.Data = data
		c.v.Currency = currency
		c.v.Label = "BTCZ/" + currency

		if hadSeries {
			c.v.Updated++
		} else {
			c.v.Created++
		}
	})
}
