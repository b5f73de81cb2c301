// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package host

import (
	"encoding/json"
	"fmt"
)

// routes binds every method name to its operation.
func (d *Dispatcher) routes() map[string]handler {
	chat, p := d.chat, d.panels
	return map[string]handler{
		// Chat population
		"addMessage": message(func(m messageParams) { chat.Append(m.record()) }),
		"insertMessage": func(params json.RawMessage) error {
			var m messageParams
			if err := decode(params, &m); err != nil {
				return err
			}
			if m.Index == nil {
				return fmt.Errorf("%w: index is required", ErrBadParams)
			}
			if err := required("timestamp", m.Timestamp); err != nil {
				return err
			}
			chat.InsertAt(*m.Index, m.record())
			return nil
		},
		"addPendingMessage":   message(func(m messageParams) { chat.AddPending(m.record()) }),
		"markMessageAsSent":   byTimestamp(func(ts string) { chat.MarkSent(ts) }),
		"markMessageAsFailed": byTimestamp(func(ts string) { chat.MarkFailed(ts) }),
		"editMessage": func(params json.RawMessage) error {
			var e editParams
			if err := decode(params, &e); err != nil {
				return err
			}
			if err := required("timestamp", e.Timestamp); err != nil {
				return err
			}
			chat.Edit(string(e.Timestamp), string(e.Content), string(e.EditedTimestamp))
			return nil
		},
		"clearChat":          noArgs(chat.Clear),
		"restorePlaceholder": noArgs(chat.RestorePlaceholder),

		// Modes
		"cancelEdit":               noArgs(chat.CancelEdit),
		"cancelReply":              noArgs(chat.CancelReply),
		"disableCancelEditButton":  noArgs(func() { chat.SetCancelEditDisabled(true) }),
		"enableCancelEditButton":   noArgs(func() { chat.SetCancelEditDisabled(false) }),
		"disableCancelReplyButton": noArgs(func() { chat.SetCancelReplyDisabled(true) }),
		"enableCancelReplyButton":  noArgs(func() { chat.SetCancelReplyDisabled(false) }),

		// Scroll and overlays
		"showUnreadLabel": noArgs(func() { chat.UnreadVisibility() }),
		"hideUnreadLabel": noArgs(chat.HideUnreadLabel),
		"scrollToBottom":  noArgs(chat.ScrollToBottom),
		"showToast":       setter(chat.ShowToast),

		// Home
		"generateData": func(params json.RawMessage) error {
			var c chartParams
			if err := decode(params, &c); err != nil {
				return err
			}
			currency := string(c.Currency)
			if currency == "" {
				currency = d.currency
			}
			p.Chart.Render(c.Prices, currency)
			return nil
		},
		"setBTCZPrice":          setter(p.Market.SetBTCZPrice),
		"setMarketCap":          setter(p.Market.SetMarketCap),
		"setVolume":             setter(p.Market.SetVolume),
		"setChange24h":          setter(p.Market.SetChange24h),
		"setChange7d":           setter(p.Market.SetChange7d),
		"setCirculating":        setter(p.Market.SetCirculating),
		"setCirculatingTooltip": setter(p.Market.SetCirculatingTooltip),
		"setNextHalving":        setter(p.Market.SetNextHalving),
		"setDeprecation":        setter(p.Market.SetDeprecation),

		// Mining
		"setTotalShares":       setter(p.Mining.SetTotalShares),
		"setHashrate":          setter(p.Mining.SetHashrate),
		"setBalance":           setter(p.Mining.SetBalance),
		"setImmatureBalance":   setter(p.Mining.SetImmatureBalance),
		"setPaidBalance":       setter(p.Mining.SetPaidBalance),
		"setEstimatedBTCZ":     setter(p.Mining.SetEstimatedBTCZ),
		"setEstimatedCurrency": setter(p.Mining.SetEstimatedCurrency),

		// Wallet
		"setBalances": func(params json.RawMessage) error {
			var b balancesParams
			if err := decode(params, &b); err != nil {
				return err
			}
			p.Wallet.SetBalances(string(b.Total), string(b.Transparent), string(b.Shielded))
			return nil
		},
		"setUnconfirmedBalance": setter(p.Wallet.SetUnconfirmedBalance),
	}
}
