// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panels

// =============================================================================
// MINING
// =============================================================================

// MiningView is a snapshot of the mining statistics.
type MiningView struct {
	TotalShares       string
	Hashrate          string
	Balance           string
	ImmatureBalance   string
	PaidBalance       string
	EstimatedBTCZ     string
	EstimatedCurrency string
}

// Mining holds the mining statistics.
type Mining struct {
	panel
	v MiningView
}

// NewMining returns mining statistics showing placeholders.
func NewMining(onChange func()) *Mining {
	return &Mining{
		panel: panel{onChange: onChange},
		v: MiningView{
			TotalShares:       Placeholder,
			Hashrate:          withUnit("", "Sol/s"),
			Balance:           withUnit("", "BTCZ"),
			ImmatureBalance:   withUnit("", "BTCZ"),
			PaidBalance:       withUnit("", "BTCZ"),
			EstimatedBTCZ:     withUnit("", "BTCZ"),
			EstimatedCurrency: Placeholder,
		},
	}
}

// View returns a copy of the statistics.
func (m *Mining) View() MiningView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.v
}

func (m *Mining) SetTotalShares(v string) { m.update(func() { m.v.TotalShares = orDash(v) }) }

// SetHashrate shows the host's formatted rate as is; only the placeholder
// carries a unit.
func (m *Mining) SetHashrate(v string) {
	m.update(func() {
		if v == "" {
			m.v.Hashrate = withUnit("", "Sol/s")
			return
		}
		m.v.Hashrate = v
	})
}

func (m *Mining) SetBalance(v string)         { m.update(func() { m.v.Balance = withUnit(v, "BTCZ") }) }
func (m *Mining) SetImmatureBalance(v string) { m.update(func() { m.v.ImmatureBalance = withUnit(v, "BTCZ") }) }
func (m *Mining) SetPaidBalance(v string)     { m.update(func() { m.v.PaidBalance = withUnit(v, "BTCZ") }) }
func (m *Mining) SetEstimatedBTCZ(v string)   { m.update(func() { m.v.EstimatedBTCZ = withUnit(v, "BTCZ") }) }

func (m *Mining) SetEstimatedCurrency(v string) {
	m.update(func() { m.v.EstimatedCurrency = orDash(v) })
}
