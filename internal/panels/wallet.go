// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panels

import (
	"regexp"
	"time"

	"github.com/jeranaias/btczview/internal/sched"
)

// =============================================================================
// WALLET
// =============================================================================

// HiddenAmount is the mask the host sends when balances are hidden.
const HiddenAmount = "*.********"

// UnconfirmedFade is how long the unconfirmed box fades before removal.
const UnconfirmedFade = 400 * time.Millisecond

// WalletView is a snapshot of the wallet balances.
type WalletView struct {
	Total       string
	Transparent string
	Shielded    string

	// Unconfirmed is shown while UnconfirmedShown is set. During the fade
	// out UnconfirmedFading is also set.
	Unconfirmed       string
	UnconfirmedShown  bool
	UnconfirmedFading bool
}

// Wallet holds the wallet balances.
type Wallet struct {
	panel
	v      WalletView
	timers *sched.Group
}

// NewWallet returns balances showing placeholders.
func NewWallet(s sched.Scheduler, onChange func()) *Wallet {
	if s == nil {
		s = sched.Real{}
	}
	return &Wallet{
		panel:  panel{onChange: onChange},
		v:      WalletView{Total: Placeholder, Transparent: Placeholder, Shielded: Placeholder},
		timers: sched.NewGroup(s),
	}
}

// View returns a copy of the balances.
func (w *Wallet) View() WalletView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.v
}

// SetBalances sets the three headline balances.
func (w *Wallet) SetBalances(total, transparent, shielded string) {
	w.update(func() {
		w.v.Total = orDash(total)
		w.v.Transparent = orDash(transparent)
		w.v.Shielded = orDash(shielded)
	})
}

var nonNumeric = regexp.MustCompile(`[^\d.-]`)

// unconfirmedVisible reports whether amount warrants the unconfirmed box.
func unconfirmedVisible(amount string) bool {
	if amount == HiddenAmount {
		return true
	}
	n, ok := parseFloatPrefix(nonNumeric.ReplaceAllString(amount, ""))
	return ok && n > 0
}

// SetUnconfirmedBalance shows the unconfirmed box for a positive or hidden
// amount. Otherwise a visible box fades out and is removed.
func (w *Wallet) SetUnconfirmedBalance(amount string) {
	w.update(func() {
		if unconfirmedVisible(amount) {
			w.timers.StopKey("remove")
			w.v.Unconfirmed = amount
			w.v.UnconfirmedShown = true
			w.v.UnconfirmedFading = false
			return
		}
		if !w.v.UnconfirmedShown || w.v.UnconfirmedFading {
			return
		}
		w.v.UnconfirmedFading = true
		w.timers.AfterKey("remove", UnconfirmedFade, func() {
			w.update(func() {
				w.v.UnconfirmedShown = false
				w.v.UnconfirmedFading = false
				w.v.Unconfirmed = ""
			})
		})
	})
}

// Close cancels the pending removal, if any.
func (w *Wallet) Close() {
	w.timers.Cancel()
}
