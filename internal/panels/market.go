// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panels

// =============================================================================
// MARKET
// =============================================================================

// MarketView is a snapshot of the home view figures.
type MarketView struct {
	Price              Field
	MarketCap          Field
	Volume             Field
	Change24h          Field
	Change7d           Field
	Circulating        Field
	CirculatingTooltip string
	NextHalving        Field
	Deprecation        Field
}

// Market holds the home view figures.
type Market struct {
	panel
	v MarketView
}

// NewMarket returns a market view showing placeholders.
func NewMarket(onChange func()) *Market {
	m := &Market{panel: panel{onChange: onChange}}
	m.v = MarketView{
		Price:       Field{Text: Placeholder},
		MarketCap:   Field{Text: Placeholder},
		Volume:      Field{Text: Placeholder},
		Change24h:   Field{Text: Placeholder, Color: ColorNeutral},
		Change7d:    Field{Text: Placeholder, Color: ColorNeutral},
		Circulating: Field{Text: withUnit("", "BTCZ")},
		NextHalving: Field{Text: Placeholder},
		Deprecation: Field{Text: Placeholder},
	}
	return m
}

// View returns a copy of the figures.
func (m *Market) View() MarketView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.v
}

func (m *Market) SetBTCZPrice(v string) { m.update(func() { m.v.Price.Text = orDash(v) }) }
func (m *Market) SetMarketCap(v string) { m.update(func() { m.v.MarketCap.Text = orDash(v) }) }
func (m *Market) SetVolume(v string)    { m.update(func() { m.v.Volume.Text = orDash(v) }) }

// SetChange24h shows the 24 hour change, green when non-negative, red when
// negative and neutral when not a number.
func (m *Market) SetChange24h(v string) {
	m.update(func() { m.v.Change24h = Field{Text: orDash(v), Color: signColor(v)} })
}

// SetChange7d is SetChange24h for the 7 day change.
func (m *Market) SetChange7d(v string) {
	m.update(func() { m.v.Change7d = Field{Text: orDash(v), Color: signColor(v)} })
}

// SetCirculating shows the circulating supply in BTCZ.
func (m *Market) SetCirculating(v string) {
	m.update(func() { m.v.Circulating.Text = withUnit(v, "BTCZ") })
}

// SetCirculatingTooltip sets the hover text of the circulating supply.
func (m *Market) SetCirculatingTooltip(v string) {
	m.update(func() { m.v.CirculatingTooltip = v })
}

func (m *Market) SetNextHalving(v string) { m.update(func() { m.v.NextHalving.Text = orDash(v) }) }
func (m *Market) SetDeprecation(v string) { m.update(func() { m.v.Deprecation.Text = orDash(v) }) }
